// Package graph builds the bipartite black-to-move / white-to-move
// transition graph the trap, Büchi and forced-mate solvers operate over.
// Nodes are referenced by dense integer indices into a state table, exactly
// as herohde/morlock's search.TranspositionTable is a solve-local, built-
// once, read-after-build structure -- but here the "table" is the whole
// graph, not just a move cache.
package graph
