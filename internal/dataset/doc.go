// Package dataset holds the flat data model shared by fetchers and analyses,
// plus JSON and CSV persistence for it.
//
// Everything is plain rows: festivals with their lineups, setlists, releases,
// songs. Data lives for the duration of one batch run; files under the data
// directory are the only durability there is.
package dataset
