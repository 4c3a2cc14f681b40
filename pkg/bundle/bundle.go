package bundle

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
	"github.com/dustin/go-humanize"
	"github.com/loneking/confine/pkg/confine"
	"github.com/loneking/confine/pkg/confine/graph"
	"github.com/loneking/confine/pkg/confine/strategy"
	"github.com/loneking/confine/pkg/confine/trap"
	"github.com/loneking/confine/pkg/rules"
	"github.com/seekerror/logw"
)

const (
	prefixTrap     = "t:"
	prefixReply    = "r:"
	keyManifest    = "m:manifest"
	trapMarkerByte = byte(1)
)

// Manifest records the bundle's shape, so a reader can sanity-check a
// bundle before trusting it against a live scenario.
type Manifest struct {
	TrackAbsKing bool `json:"track_abs_king"`
	TrapSize     int  `json:"trap_size"`
	StrategySize int  `json:"strategy_size"`
}

type moveRecord struct {
	Index int    `json:"index"`
	Kind  string `json:"kind"`
	FromX int8   `json:"from_x"`
	FromY int8   `json:"from_y"`
	ToX   int8   `json:"to_x"`
	ToY   int8   `json:"to_y"`
}

type replyRecord struct {
	Pass bool        `json:"pass,omitempty"`
	Move *moveRecord `json:"move,omitempty"`
}

// Write persists T's membership and strat's replies into a fresh BadgerDB
// directory at dir, overwriting anything already there.
func Write(ctx context.Context, dir string, s confine.Scenario, g *graph.Graph, T trap.Set, strat strategy.Strategy) error {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("bundle: open %v: %w", dir, err)
	}
	defer db.Close()

	if err := db.DropAll(); err != nil {
		return fmt.Errorf("bundle: clear %v: %w", dir, err)
	}

	wb := db.NewWriteBatch()
	defer wb.Cancel()

	trapSize := 0
	for bi, st := range g.BStates {
		if !T.Contains(bi) {
			continue
		}
		key := prefixTrap + st.Key(s.TrackAbsKing)
		if err := wb.Set([]byte(key), []byte{trapMarkerByte}); err != nil {
			return fmt.Errorf("bundle: write trap entry: %w", err)
		}
		trapSize++
	}

	strategySize := 0
	for wi, st := range g.WStates {
		reply, ok := strat.ReplyFor(wi)
		if !ok {
			continue
		}
		rec := replyRecord{}
		if reply.Move == nil {
			rec.Pass = true
		} else {
			rec.Move = &moveRecord{
				Index: reply.Move.Index,
				Kind:  reply.Move.Kind.String(),
				FromX: reply.Move.From.X,
				FromY: reply.Move.From.Y,
				ToX:   reply.Move.To.X,
				ToY:   reply.Move.To.Y,
			}
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("bundle: marshal reply: %w", err)
		}
		key := prefixReply + st.Key(s.TrackAbsKing)
		if err := wb.Set([]byte(key), data); err != nil {
			return fmt.Errorf("bundle: write reply entry: %w", err)
		}
		strategySize++
	}

	if err := wb.Flush(); err != nil {
		return fmt.Errorf("bundle: flush: %w", err)
	}

	manifest := Manifest{TrackAbsKing: s.TrackAbsKing, TrapSize: trapSize, StrategySize: strategySize}
	data, err := json.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("bundle: marshal manifest: %w", err)
	}
	if err := db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyManifest), data)
	}); err != nil {
		return fmt.Errorf("bundle: write manifest: %w", err)
	}

	if size, err := dirSize(dir); err == nil {
		logw.Infof(ctx, "bundle: wrote %v trap states and %v replies to %v (%v)", trapSize, strategySize, dir, humanize.Bytes(size))
	}
	return nil
}

func dirSize(dir string) (uint64, error) {
	var total uint64
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += uint64(info.Size())
		return nil
	})
	return total, err
}

// Bundle is a read-only handle onto a previously written bundle directory.
type Bundle struct {
	db       *badger.DB
	manifest Manifest
}

// Open opens the bundle directory at dir read-only and loads its manifest.
func Open(dir string) (*Bundle, error) {
	opts := badger.DefaultOptions(dir).WithReadOnly(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("bundle: open %v: %w", dir, err)
	}

	b := &Bundle{db: db}
	if err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyManifest))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &b.manifest)
		})
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("bundle: read manifest: %w", err)
	}
	return b, nil
}

// Close releases the underlying database handle.
func (b *Bundle) Close() error {
	return b.db.Close()
}

// Manifest returns the bundle's recorded shape.
func (b *Bundle) Manifest() Manifest {
	return b.manifest
}

// InTrap reports whether state was recorded as a member of the persisted
// trap. trackAbsKing must match the manifest's TrackAbsKing, matching how
// confine.State.Key requires the caller to know which framing it's keying
// under.
func (b *Bundle) InTrap(state confine.State, trackAbsKing bool) (bool, error) {
	key := prefixTrap + state.Key(trackAbsKing)
	found := false
	err := b.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return found, err
}

// Reply is the strategy response recorded for a white-to-move state: either
// a concrete Move, or Pass with Move left nil.
type Reply struct {
	Pass bool
	Move *rules.Move
}

// Reply looks up the recorded strategy response for state, reporting
// ok=false if state has no recorded reply (it was outside the trap, or the
// bundle was written without a strategy pass).
func (b *Bundle) Reply(state confine.State, trackAbsKing bool) (Reply, bool, error) {
	key := prefixReply + state.Key(trackAbsKing)
	var rec replyRecord
	found := false
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil || !found {
		return Reply{}, false, err
	}
	if rec.Pass {
		return Reply{Pass: true}, true, nil
	}
	m := &rules.Move{
		Index: rec.Move.Index,
		From:  coordOf(rec.Move.FromX, rec.Move.FromY),
		To:    coordOf(rec.Move.ToX, rec.Move.ToY),
	}
	kind, err := kindFromString(rec.Move.Kind)
	if err != nil {
		return Reply{}, false, err
	}
	m.Kind = kind
	return Reply{Move: m}, true, nil
}
