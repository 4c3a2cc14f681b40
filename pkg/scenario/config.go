// Package scenario loads the Scenario JSON config format into a
// confine.Scenario, the same decode-only-adapter role fen plays for
// board.Position: a package next to the core domain package that only
// translates an external format into the core's types.
package scenario

import (
	"encoding/json"
	"fmt"

	"github.com/loneking/confine/pkg/confine"
	"github.com/loneking/confine/pkg/piece"
	"github.com/loneking/confine/pkg/rules"
)

// Config is the on-disk Scenario JSON shape.
//
// Example:
//
//	{ "scenario": {
//	    "bound": 2, "move_bound": 1, "move_bound_mode": "inclusive",
//	    "pieces": { "white_king": false, "queens": 0, "rooks": 3, "bishops": 0, "knights": 0 },
//	    "allow_captures": true, "white_can_pass": true,
//	    "remove_stalemates": true } }
type Config struct {
	Scenario struct {
		Bound         int    `json:"bound"`
		MoveBound     int    `json:"move_bound"`
		MoveBoundMode string `json:"move_bound_mode"`
		Pieces        struct {
			WhiteKing bool `json:"white_king"`
			Queens    int  `json:"queens"`
			Rooks     int  `json:"rooks"`
			Bishops   int  `json:"bishops"`
			Knights   int  `json:"knights"`
		} `json:"pieces"`
		AllowCaptures    bool `json:"allow_captures"`
		WhiteCanPass     bool `json:"white_can_pass"`
		RemoveStalemates bool `json:"remove_stalemates"`
	} `json:"scenario"`
}

// Decode parses raw Scenario JSON into a Config.
func Decode(raw []byte) (Config, error) {
	var c Config
	if err := json.Unmarshal(raw, &c); err != nil {
		return Config{}, confine.NewInvalidScenario(confine.StageEnumerate, fmt.Sprintf("malformed scenario JSON: %v", err))
	}
	return c, nil
}

// Build translates a Config into a confine.Scenario ready for
// confine.GenerateCandidates, seeding an InLinfBound candidate generator
// sized to Bound. Returns InvalidScenario for anything rules.Rules.Validate
// or confine.Scenario.Validate would also reject, so callers get the same
// structured error regardless of whether the problem came from JSON or
// from direct construction.
func Build(c Config) (confine.Scenario, error) {
	mode, err := parseMoveBoundMode(c.Scenario.MoveBoundMode)
	if err != nil {
		return confine.Scenario{}, err
	}

	layout := piece.Layout{
		WhiteKing: c.Scenario.Pieces.WhiteKing,
		Queens:    c.Scenario.Pieces.Queens,
		Rooks:     c.Scenario.Pieces.Rooks,
		Bishops:   c.Scenario.Pieces.Bishops,
		Knights:   c.Scenario.Pieces.Knights,
	}
	r := rules.Rules{Layout: layout, MoveBound: c.Scenario.MoveBound, MoveBoundMode: mode}
	if err := r.Validate(); err != nil {
		return confine.Scenario{}, confine.NewInvalidScenario(confine.StageEnumerate, err.Error())
	}
	if c.Scenario.Bound < 0 {
		return confine.Scenario{}, confine.NewInvalidScenario(confine.StageEnumerate, "bound must be non-negative")
	}

	s := confine.Scenario{
		Rules:            r,
		Domain:           confine.LinfBox{Bound: c.Scenario.Bound},
		CandidateGen:     confine.InLinfBound{Bound: c.Scenario.Bound, AllowCaptures: c.Scenario.AllowCaptures},
		WhiteCanPass:     c.Scenario.WhiteCanPass,
		RemoveStalemates: c.Scenario.RemoveStalemates,
		AllowCaptures:    c.Scenario.AllowCaptures,
	}
	return s.WithDefaults(), nil
}

func parseMoveBoundMode(v string) (rules.MoveBoundMode, error) {
	switch v {
	case "", "inclusive":
		return rules.Inclusive, nil
	case "exclusive":
		return rules.Exclusive, nil
	default:
		return 0, confine.NewInvalidScenario(confine.StageEnumerate, fmt.Sprintf("unknown move_bound_mode %q", v))
	}
}
