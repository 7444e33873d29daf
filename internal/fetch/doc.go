// Package fetch performs rate-limited HTTP GETs through the response cache.
//
// Every client in this repository funnels its requests through a fetch.Client
// so pacing, retries, and caching behave identically across sources. Cache
// hits skip the network entirely; misses pause for the configured delay, honor
// Retry-After on 429/503, and persist the response before returning it.
package fetch
