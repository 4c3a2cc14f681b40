// Package mate computes exact forced-mate distances over a bounded
// universe by retrograde BFS: seed every in-universe checkmate B-node at
// distance 0, then alternately resolve W-nodes (white picks the best of
// its replies, an OR node: minimum over successors) and B-nodes (black
// picks adversarially among its moves, an AND node: maximum over
// successors), exactly as endgame tablebase generators compute
// distance-to-mate by working backward from terminal positions.
package mate
