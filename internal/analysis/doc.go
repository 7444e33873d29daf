// Package analysis implements the comparative analyses over collected artist
// and festival data: festival twins, platform similarity and popularity,
// genre pushedness, release prediction, tour summaries, and lyric profiles.
//
// Every analysis is a pure function over dataset values so the commands stay
// thin and the arithmetic stays testable.
package analysis
