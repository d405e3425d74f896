// Package geocache maps IP addresses to geographic locations while
// keeping remote lookups to a minimum.
//
// Cache is the main entity. It owns an IP to Location mapping which is
// hydrated from a JSON file at construction and flushed back on Save.
// In cache-backed mode every answer comes from that mapping; in
// API-augmented mode a miss falls through to the remote provider and
// the fetched location is merged into the mapping before being
// returned.
//
// Batch operations fan lookups out over a worker pool and report one
// result per input position, so a single bad address never spoils the
// rest of a batch.
package geocache
