// Package trap computes the maximal inescapable trap over a graph.Graph:
// the greatest fixed point of black-to-move states from which white always
// has a reply keeping play inside Domain. The algorithm is the classic
// counter-based worklist technique for alternation-free fixed points on
// AND/OR graphs (Liu-Smolka style local model checking), specialized to
// this bipartite B-node/W-node graph.
package trap
