package confine

import (
	"context"

	"github.com/loneking/confine/pkg/coord"
	"github.com/loneking/confine/pkg/rules"
	"github.com/seekerror/stdlib/pkg/lang"
)

// CandidateGen produces the seed set of black-to-move states offered to the
// graph builder. Implementations need not canonicalize, dedupe or filter by
// Domain themselves -- GenerateCandidates does that uniformly for every
// mode, per the spec's closing note on candidate generation.
type CandidateGen interface {
	Generate(ctx context.Context, s Scenario) ([]State, error)
}

// Scenario bundles everything a solve needs: the movement Rules, the
// Laws/Domain/Preferences capability hooks, behavioral flags, the
// candidate-generation mode and the resource limits. Scenario values are
// immutable once built and safe to reuse across solves.
type Scenario struct {
	Rules            rules.Rules
	Laws             Laws
	Domain           Domain
	Preferences      Preferences
	TrackAbsKing     bool
	WhiteCanPass     bool
	RemoveStalemates bool
	AllowCaptures    bool
	CandidateGen     CandidateGen
	Limits           ResourceLimits
	Start            lang.Optional[State]
}

// WithDefaults fills in DefaultLaws/DefaultDomain/DefaultPreferences for
// any hook left nil, mirroring the spec's "allow everything" defaults.
func (s Scenario) WithDefaults() Scenario {
	if s.Laws == nil {
		s.Laws = DefaultLaws{}
	}
	if s.Domain == nil {
		s.Domain = DefaultDomain{}
	}
	if s.Preferences == nil {
		s.Preferences = DefaultPreferences{}
	}
	return s
}

// Validate checks the scenario-level invariants from the InvalidScenario
// taxonomy: a valid Rules/Layout, and track_abs_king=true whenever the
// candidate-generation mode is absolute-box shaped.
func (s Scenario) Validate() error {
	if err := s.Rules.Validate(); err != nil {
		return NewInvalidScenario(StageEnumerate, err.Error())
	}
	if _, ok := s.CandidateGen.(InAbsBox); ok && !s.TrackAbsKing {
		return NewInvalidScenario(StageEnumerate, "InAbsBox candidate generation requires track_abs_king=true")
	}
	if start, ok := s.Start.V(); ok {
		if !s.TrackAbsKing && start.AbsKing != coord.Origin {
			return NewInvalidState(StageEnumerate, "start state has non-origin abs_king but track_abs_king is false")
		}
		if !start.Pos.Equals(start.Pos.Canonicalize()) {
			return NewInvalidState(StageEnumerate, "start state is not in canonical form")
		}
	}
	return nil
}

// GenerateCandidates runs s.CandidateGen and then uniformly canonicalizes,
// pins AbsKing to the origin when TrackAbsKing is false, deduplicates and
// filters by Domain -- regardless of which mode produced the raw states.
func GenerateCandidates(ctx context.Context, s Scenario) ([]State, error) {
	s = s.WithDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}

	raw, err := s.CandidateGen.Generate(ctx, s)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(raw))
	out := make([]State, 0, len(raw))
	for _, c := range raw {
		c = c.Canonical()
		if !s.TrackAbsKing {
			c.AbsKing = coord.Origin
		}
		key := c.Key(s.TrackAbsKing)
		if seen[key] {
			continue
		}
		if !s.Domain.Inside(c) {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out, nil
}
