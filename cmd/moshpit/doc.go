// Command moshpit collects metal festival, artist, and lyric data from public
// APIs and scraped sites, caches every response, and runs comparative
// analyses over the collected data.
package main
