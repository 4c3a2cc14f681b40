// Package buchi computes the tempo set: the subset of a trap.Set from
// which white can force infinitely many visits to accepting (pass-capable)
// W-nodes while never leaving the trap. This is the standard Büchi-game
// attractor fixed point, νX.μY, applied to the bipartite graph produced by
// package graph.
package buchi
