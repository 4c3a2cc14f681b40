package graph

import (
	"context"

	"github.com/loneking/confine/pkg/confine"
	"github.com/loneking/confine/pkg/coord"
	"github.com/loneking/confine/pkg/rules"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// Graph is the built-once, read-only-after-that bipartite transition
// graph. BStates and WStates are dense, index-addressable state tables;
// BSucc/WSucc hold index-to-index adjacency in the fixed geometric order
// movegen produced them in, so replaying a solve is deterministic.
type Graph struct {
	TrackAbsKing bool

	BStates []confine.State
	WStates []confine.State

	// BSucc[b] lists the W-node indices reachable by a single legal black
	// king step from B-node b.
	BSucc [][]int
	// WExternal[w] is true iff w's underlying state is outside Domain; its
	// white replies were never expanded.
	WExternal []bool
	// WSucc[w] lists the B-node indices reachable by a white reply (or a
	// pass) from W-node w.
	WSucc [][]int
	// WMoves[w] is the white move that produced the parallel entry in
	// WSucc[w], or nil for a pass reply.
	WMoves [][]*rules.Move
	// WPassTarget[w] is the B-node index reached by passing from w, or -1
	// if passing is unavailable or its target was excluded (stalemate).
	WPassTarget []int

	Counters confine.Counters
}

// Build materializes the transition graph reachable from candidates,
// honoring Scenario.Laws and Scenario.Domain and tracking resource
// counters. mode is a size/speed knob only -- correctness does not depend
// on it. Returns a *confine.SearchError (stage build_graph) on overflow.
func Build(ctx context.Context, s confine.Scenario, candidates []confine.State, mode CacheMode) (*Graph, error) {
	s = s.WithDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}

	b := &builder{
		s:              s,
		mode:           mode,
		g:              &Graph{TrackAbsKing: s.TrackAbsKing},
		bIndex:         map[string]int{},
		wIndex:         map[string]int{},
		blackMoveCache: map[string][]coord.Coord{},
		whiteMoveCache: map[string][]rules.Move{},
	}

	for _, c := range candidates {
		if i, ok := b.getOrCreateB(c); ok {
			b.bQueue = append(b.bQueue, i)
		}
		if err := b.checkStates(); err != nil {
			return nil, err
		}
	}
	logw.Debugf(ctx, "graph: seeded %v candidate states", len(candidates))

	for len(b.bQueue) > 0 || len(b.wQueue) > 0 {
		for len(b.bQueue) > 0 {
			if contextx.IsCancelled(ctx) {
				return b.g, nil
			}
			i := b.bQueue[0]
			b.bQueue = b.bQueue[1:]
			if err := b.expandB(i); err != nil {
				return nil, err
			}
		}
		for len(b.wQueue) > 0 {
			if contextx.IsCancelled(ctx) {
				return b.g, nil
			}
			i := b.wQueue[0]
			b.wQueue = b.wQueue[1:]
			if err := b.expandW(i); err != nil {
				return nil, err
			}
		}
	}

	logw.Debugf(ctx, "graph: built %v B-nodes, %v W-nodes, %v edges", len(b.g.BStates), len(b.g.WStates), b.g.Counters.Edges)
	return b.g, nil
}

type builder struct {
	s    confine.Scenario
	mode CacheMode
	g    *Graph

	bIndex map[string]int
	wIndex map[string]int

	blackMoveCache map[string][]coord.Coord
	whiteMoveCache map[string][]rules.Move

	bQueue []int
	wQueue []int
}

// step increments and checks the step counter once per node expansion --
// the coarse-grained cooperative yield point the resource model requires.
func (b *builder) step() error {
	b.g.Counters.Steps++
	if exceeded, limit := b.s.Limits.Exceeded(confine.MetricSteps, b.g.Counters.Steps); exceeded {
		return confine.NewResourceExhaustion(confine.StageBuildGraph, confine.MetricSteps, b.g.Counters.Steps, limit, b.g.Counters)
	}
	return nil
}

func (b *builder) checkStates() error {
	if exceeded, limit := b.s.Limits.Exceeded(confine.MetricStates, b.g.Counters.States); exceeded {
		return confine.NewResourceExhaustion(confine.StageBuildGraph, confine.MetricStates, b.g.Counters.States, limit, b.g.Counters)
	}
	return nil
}

func (b *builder) checkEdges() error {
	if exceeded, limit := b.s.Limits.Exceeded(confine.MetricEdges, b.g.Counters.Edges); exceeded {
		return confine.NewResourceExhaustion(confine.StageBuildGraph, confine.MetricEdges, b.g.Counters.Edges, limit, b.g.Counters)
	}
	return nil
}

func (b *builder) canon(state confine.State) confine.State {
	c := state.Canonical()
	if !b.s.TrackAbsKing {
		c.AbsKing = coord.Origin
	}
	return c
}

// getOrCreateB returns the dense index of state's B-node, creating it if
// absent. Returns ok=false iff the state is a dropped stalemate (no legal
// black moves and not in check, with RemoveStalemates set): such states
// are never indexed, so no edge ever points to them.
func (b *builder) getOrCreateB(state confine.State) (int, bool) {
	c := b.canon(state)
	key := c.Key(b.s.TrackAbsKing)
	if i, ok := b.bIndex[key]; ok {
		return i, true
	}

	if b.s.RemoveStalemates {
		legal := b.s.Rules.BlackLegalMoves(c.Pos)
		if len(legal) == 0 && !b.s.Rules.BlackInCheck(c.Pos) {
			return 0, false
		}
	}

	i := len(b.g.BStates)
	b.bIndex[key] = i
	b.g.BStates = append(b.g.BStates, c)
	b.g.BSucc = append(b.g.BSucc, nil)
	b.g.Counters.States++
	return i, true
}

func (b *builder) getOrCreateW(state confine.State) int {
	c := b.canon(state)
	key := c.Key(b.s.TrackAbsKing)
	if i, ok := b.wIndex[key]; ok {
		return i
	}

	i := len(b.g.WStates)
	b.wIndex[key] = i
	b.g.WStates = append(b.g.WStates, c)
	b.g.WSucc = append(b.g.WSucc, nil)
	b.g.WMoves = append(b.g.WMoves, nil)
	b.g.WExternal = append(b.g.WExternal, !b.s.Domain.Inside(c))
	b.g.WPassTarget = append(b.g.WPassTarget, -1)
	b.g.Counters.States++
	return i
}

func (b *builder) expandB(bi int) error {
	if err := b.step(); err != nil {
		return err
	}

	bState := b.g.BStates[bi]
	legal := b.blackMovesCached(bState)

	succ := make([]int, 0, len(legal))
	for _, delta := range legal {
		wState := confine.State{Pos: bState.Pos.Translate(delta), AbsKing: bState.AbsKing.Add(delta)}
		if !b.s.Laws.AllowBlackMove(bState, wState, delta) {
			continue
		}

		_, existed := b.wIndex[b.canon(wState).Key(b.s.TrackAbsKing)]
		wi := b.getOrCreateW(wState)
		if err := b.checkStates(); err != nil {
			return err
		}

		b.g.Counters.Edges++
		if err := b.checkEdges(); err != nil {
			return err
		}
		succ = append(succ, wi)

		if !existed && !b.g.WExternal[wi] {
			b.wQueue = append(b.wQueue, wi)
		}
	}
	b.g.BSucc[bi] = succ
	return nil
}

func (b *builder) expandW(wi int) error {
	if err := b.step(); err != nil {
		return err
	}
	if b.g.WExternal[wi] {
		return nil
	}

	wState := b.g.WStates[wi]
	moves := b.whiteMovesCached(wState)

	succ := make([]int, 0, len(moves)+1)
	moveRefs := make([]*rules.Move, 0, len(moves)+1)

	for idx := range moves {
		m := moves[idx]
		nbState := confine.State{Pos: b.s.Rules.Apply(wState.Pos, m), AbsKing: wState.AbsKing}
		if !b.s.Laws.AllowWhiteMove(wState, nbState, m) {
			continue
		}

		_, existed := b.bIndex[b.canon(nbState).Key(b.s.TrackAbsKing)]
		bi, ok := b.getOrCreateB(nbState)
		if !ok {
			continue // dropped stalemate target: no edge
		}
		if err := b.checkStates(); err != nil {
			return err
		}

		b.g.Counters.Edges++
		if err := b.checkEdges(); err != nil {
			return err
		}
		succ = append(succ, bi)
		moveRefs = append(moveRefs, &moves[idx])

		if !existed {
			b.bQueue = append(b.bQueue, bi)
		}
	}

	if b.s.WhiteCanPass && b.s.Laws.AllowPass(wState) {
		passTarget := confine.State{Pos: wState.Pos, AbsKing: wState.AbsKing}
		_, existed := b.bIndex[b.canon(passTarget).Key(b.s.TrackAbsKing)]
		bi, ok := b.getOrCreateB(passTarget)
		if ok {
			if err := b.checkStates(); err != nil {
				return err
			}
			b.g.Counters.Edges++
			if err := b.checkEdges(); err != nil {
				return err
			}
			succ = append(succ, bi)
			moveRefs = append(moveRefs, nil)
			b.g.WPassTarget[wi] = bi
			if !existed {
				b.bQueue = append(b.bQueue, bi)
			}
		}
	}

	b.g.WSucc[wi] = succ
	b.g.WMoves[wi] = moveRefs
	return nil
}

func (b *builder) blackMovesCached(state confine.State) []coord.Coord {
	if !b.mode.cachesBlack() {
		return b.s.Rules.BlackLegalMoves(state.Pos)
	}
	key := state.Key(b.s.TrackAbsKing)
	if v, ok := b.blackMoveCache[key]; ok {
		return v
	}
	v := b.s.Rules.BlackLegalMoves(state.Pos)
	if b.cacheHasRoom() {
		b.blackMoveCache[key] = v
		b.g.Counters.CacheEntries++
		b.g.Counters.CachedMoves += len(v)
	}
	return v
}

func (b *builder) whiteMovesCached(state confine.State) []rules.Move {
	if !b.mode.cachesWhite() {
		return b.s.Rules.WhitePseudoMoves(state.Pos)
	}
	key := state.Key(b.s.TrackAbsKing)
	if v, ok := b.whiteMoveCache[key]; ok {
		return v
	}
	v := b.s.Rules.WhitePseudoMoves(state.Pos)
	if b.cacheHasRoom() {
		b.whiteMoveCache[key] = v
		b.g.Counters.CacheEntries++
		b.g.Counters.CachedMoves += len(v)
	}
	return v
}

// cacheHasRoom reports whether another memoization entry would stay within
// MaxCacheEntries/MaxCachedMoves. Exceeding those limits degrades the build
// to uncached movegen instead of failing the solve outright -- the cache is
// a speed knob, not a correctness requirement.
func (b *builder) cacheHasRoom() bool {
	if exceeded, _ := b.s.Limits.Exceeded(confine.MetricCacheEntries, b.g.Counters.CacheEntries+1); exceeded {
		return false
	}
	if exceeded, _ := b.s.Limits.Exceeded(confine.MetricCachedMoves, b.g.Counters.CachedMoves+1); exceeded {
		return false
	}
	return true
}
