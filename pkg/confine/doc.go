// Package confine defines the scenario model -- states, the scenario
// configuration bundle, the Laws/Domain/Preferences capability hooks, and
// candidate-generation modes -- shared by the graph builder and the trap,
// Büchi and forced-mate solvers in its subpackages. It mirrors the role
// herohde/morlock's pkg/search plays for pkg/search/searchctl: a small,
// dependency-free core that the orchestrating subpackages build on, never
// the reverse.
package confine
