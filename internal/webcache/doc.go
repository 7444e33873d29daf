// Package webcache persists HTTP responses in SQLite so repeated batch runs
// never refetch what they already have.
//
// Rows are keyed by request URL and carry a format tag derived from the
// Content-Type header (json, xml, text, or bytes); binary bodies are stored
// base64 encoded. The cache is append-mostly: analyses read through it, the
// fetch command refreshes it, and purge trims by age.
//
// Schema changes bump the version in schema.go; the database is a cache, so a
// mismatch just means deleting it and refetching.
package webcache
