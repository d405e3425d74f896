// Peermap renders the peers of a node on a map of the world.
//
// Idea is simple: a peer-discovery log mentions IP addresses of remote
// peers. Each of those addresses has a geographic location, so the
// whole log can be drawn as a scatter of points. Remote geolocation
// lookups cost a network round trip, so answers are cached in a JSON
// file between runs and only addresses which were never seen before go
// to the provider.
//
// Tool itself is organized into 3 logical parts:
//
// # Geocache
//
// geocache is the main package of the application: the persistent IP
// to location mapping, the remote provider client and the logic which
// decides between a cache hit and a remote fetch.
//
// # Peerlog
//
// This package extracts candidate IP addresses from log lines. It does
// not care about any particular log format: the first dotted-quad
// token of a line wins.
//
// # Termmap
//
// Terminal output: a table of known locations and a coordinate plot.
//
// The main package itself wires the three together behind a CLI.
package main
