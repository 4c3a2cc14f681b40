// Package bundle persists a solved trap plus its extracted strategy to a
// BadgerDB directory, the same embedded-KV role storage.Storage plays for
// chessplay's preferences and stats: a small on-disk blob a CLI or service
// can reopen later without recomputing a fixed point.
package bundle
