package server

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adrenaline/engine"
	"adrenaline/engine/model"
	"adrenaline/engine/persistence"
)

type quietSink struct{}

func (quietSink) SendPrivateUpdates()        {}
func (quietSink) SendGrenadePrivateUpdates() {}
func (quietSink) Save()                      {}
func (quietSink) GameEnded([]string)         {}

// snapshotOnDisk writes a restorable mid-game snapshot the way a live match
// would have saved it.
func snapshotOnDisk(t *testing.T, dir, id string) {
	t.Helper()
	rng := rand.New(rand.NewSource(11))

	g := model.NewGame(model.MinKillShots)
	for i, username := range []string{"alice", "bob", "carol"} {
		require.NoError(t, g.AddPlayer(model.NewUserPlayer(username, model.PlayerColors[i])))
	}
	g.Map = &model.GameMap{ID: 1}
	g.Map.Squares[0][0] = &model.Square{Type: model.SquareSpawn, Room: model.RoomRed}
	g.Map.Squares[0][1] = &model.Square{Type: model.SquareTile, Room: model.RoomRed}
	g.WeaponDeck = model.NewDeck([]model.WeaponCard{}, rng)
	g.PowerupDeck = model.NewDeck([]model.PowerupCard{}, rng)
	g.AmmoTileDeck = model.NewDeck([]model.AmmoTile{}, rng)
	g.Started = true
	g.Players[0].FirstPlayer = true
	for _, p := range g.Players {
		p.State = model.PlayerPlaying
		p.Position = &model.Position{Row: 0, Col: 0}
	}

	tm := engine.NewTurnManager(g)
	tm.FirstTurn = false
	gm := engine.RestoreGameManager(quietSink{}, g, tm, engine.StateGameStarted, rng)

	store := persistence.NewStore(filepath.Join(dir, id+".snap"))
	require.NoError(t, store.Save(persistence.Capture(gm)))
}

func TestHubResume(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	snapshotOnDisk(t, dir, "rescued-match")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "corrupt.snap"), []byte("junk"), 0o644))

	h := NewHub(&fakeRecorder{}, dir)
	h.Resume()

	_, found := h.FindMatch("corrupt")
	assert.False(t, found, "unreadable snapshots are skipped")

	m, found := h.FindMatch("rescued-match")
	require.True(t, found)

	// the resumed actor is live: seated players reconnect, strangers bounce
	seated := newPlayer("alice", "alice", &fakeSession{})
	req := joinRequest{player: seated, errChan: make(chan error, 1)}
	m.joinRequests <- req
	assert.NoError(t, <-req.errChan)

	stranger := newPlayer("mallory", "mallory", &fakeSession{})
	req = joinRequest{player: stranger, errChan: make(chan error, 1)}
	m.joinRequests <- req
	assert.ErrorIs(t, <-req.errChan, ErrMatchStarted)
}
