// Package solver wires candidate generation, graph construction and the
// trap/Büchi/forced-mate fixed points into the three entry points the CLI
// layer consumes: SolveTrap, SolveTempo and SolveForcedMate.
package solver
