// Package strategy extracts one canonical white reply per trap node: for
// every B-node in a trap.Set and every black successor W-node, the reply
// landing back in the trap that Preferences ranks best, ties broken by a
// fixed total order so extraction is reproducible.
package strategy
