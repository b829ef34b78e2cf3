// Package persistence saves and restores running matches. A match is stored
// as a single msgpack snapshot of the game, the turn manager and the state
// machine position, plus a per-player overlay holding the fields the model
// marks transient (points, player state, offered actions, powerup hands).
package persistence

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"adrenaline/engine"
	"adrenaline/engine/model"
)

// ErrNoSnapshot is returned by Load when no snapshot has been written yet.
var ErrNoSnapshot = errors.New("no snapshot")

// NotTransientPlayer carries the per-player fields the game snapshot omits.
// The bot contributes an entry under model.BotName holding only its points.
type NotTransientPlayer struct {
	Username     string                 `msgpack:"username"`
	Points       int                    `msgpack:"points"`
	State        model.PlayerState      `msgpack:"state"`
	Actions      []model.PossibleAction `msgpack:"actions"`
	Powerups     []model.PowerupCard    `msgpack:"powerups"`
	SpawningCard *model.PowerupCard     `msgpack:"spawningCard"`
}

// Snapshot is one complete saved match.
type Snapshot struct {
	SavedAt time.Time                `msgpack:"savedAt"`
	Game    *model.Game              `msgpack:"game"`
	Turn    *engine.TurnManager      `msgpack:"turn"`
	State   engine.PossibleGameState `msgpack:"state"`
	Players []NotTransientPlayer     `msgpack:"players"`
}

// Capture builds a snapshot of a running match. The game manager must not be
// processing a request while this runs; the caller's actor loop guarantees it.
func Capture(gm *engine.GameManager) *Snapshot {
	g := gm.Game()
	snap := &Snapshot{
		SavedAt: time.Now().UTC(),
		Game:    g,
		Turn:    gm.TurnManager(),
		State:   gm.State(),
	}
	for _, p := range g.Players {
		snap.Players = append(snap.Players, NotTransientPlayer{
			Username:     p.Username,
			Points:       p.Points,
			State:        p.State,
			Actions:      actionList(p.Actions),
			Powerups:     append([]model.PowerupCard{}, p.Powerups...),
			SpawningCard: p.SpawningCard,
		})
	}
	if g.BotPresent && g.Bot != nil {
		snap.Players = append(snap.Players, NotTransientPlayer{
			Username: model.BotName,
			Points:   g.Bot.Points,
			State:    g.Bot.State,
			Actions:  actionList(g.Bot.Actions),
		})
	}
	return snap
}

// Restore reapplies the overlay onto the decoded game and rebuilds a game
// manager around it.
func (s *Snapshot) Restore(sink engine.Sink, rng *rand.Rand) (*engine.GameManager, error) {
	if s.Game == nil || s.Turn == nil {
		return nil, errors.New("snapshot incomplete")
	}
	for i := range s.Players {
		ntp := &s.Players[i]
		if ntp.Username == model.BotName {
			if s.Game.Bot == nil {
				return nil, fmt.Errorf("snapshot names the bot but the game has none")
			}
			s.Game.Bot.Points = ntp.Points
			s.Game.Bot.State = ntp.State
			s.Game.Bot.Actions = model.NewActionSet(ntp.Actions...)
			continue
		}
		p, err := s.Game.UserPlayerByUsername(ntp.Username)
		if err != nil {
			return nil, fmt.Errorf("snapshot player %s: %w", ntp.Username, err)
		}
		p.Points = ntp.Points
		p.State = ntp.State
		p.Actions = model.NewActionSet(ntp.Actions...)
		p.Powerups = append([]model.PowerupCard{}, ntp.Powerups...)
		p.SpawningCard = ntp.SpawningCard
	}
	return engine.RestoreGameManager(sink, s.Game, s.Turn, s.State, rng), nil
}

func actionList(set model.ActionSet) []model.PossibleAction {
	list := make([]model.PossibleAction, 0, len(set))
	for a := range set {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	return list
}

// Store writes snapshots to a single file, atomically via rename.
type Store struct {
	path string
}

func NewStore(path string) *Store { return &Store{path: path} }

func (st *Store) Save(snap *Snapshot) error {
	raw, err := msgpack.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if dir := filepath.Dir(st.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("snapshot dir: %w", err)
		}
	}
	tmp := st.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, st.path); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

func (st *Store) Load() (*Snapshot, error) {
	raw, err := os.ReadFile(st.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := msgpack.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

// Clear removes the snapshot once the match it belongs to is over.
func (st *Store) Clear() error {
	err := os.Remove(st.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
