package server

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adrenaline/engine"
	"adrenaline/engine/content"
	"adrenaline/engine/model"
)

func TestLobbySeats(t *testing.T) {
	t.Parallel()

	t.Run("The First Seat Hosts", func(t *testing.T) {
		t.Parallel()
		l := newLobbyState()
		assert.Empty(t, l.host())

		require.NoError(t, l.addSeat("alice"))
		require.NoError(t, l.addSeat("bob"))
		assert.Equal(t, "alice", l.host())

		l.dropSeat("alice")
		assert.Equal(t, "bob", l.host())
	})

	t.Run("Sitting Down Twice Keeps The Seat", func(t *testing.T) {
		t.Parallel()
		l := newLobbyState()
		require.NoError(t, l.addSeat("alice"))
		require.NoError(t, l.addSeat("alice"))
		assert.Equal(t, []string{"alice"}, l.seats)
	})

	t.Run("The Sixth Seat Is Refused", func(t *testing.T) {
		t.Parallel()
		l := newLobbyState()
		for i := 0; i < model.MaxPlayers; i++ {
			require.NoError(t, l.addSeat(fmt.Sprintf("player%d", i)))
		}
		assert.ErrorIs(t, l.addSeat("latecomer"), ErrMatchFull)
	})

	t.Run("Leaving Clears Every Vote", func(t *testing.T) {
		t.Parallel()
		l := newLobbyState()
		require.NoError(t, l.addSeat("alice"))
		require.NoError(t, l.pickColor("alice", model.PlayerColorBlue))
		l.mapVotes["alice"] = 3
		l.botVotes["alice"] = true

		l.dropSeat("alice")
		assert.Empty(t, l.seats)
		assert.Empty(t, l.colors)
		assert.Empty(t, l.mapVotes)
		assert.Empty(t, l.botVotes)
	})
}

func TestLobbyColors(t *testing.T) {
	t.Parallel()

	t.Run("Colors Are Exclusive", func(t *testing.T) {
		t.Parallel()
		l := newLobbyState()
		require.NoError(t, l.addSeat("alice"))
		require.NoError(t, l.addSeat("bob"))

		require.NoError(t, l.pickColor("alice", model.PlayerColorPurple))
		assert.EqualError(t, l.pickColor("bob", model.PlayerColorPurple), "color already taken")

		// repicking your own color or switching is fine
		require.NoError(t, l.pickColor("alice", model.PlayerColorPurple))
		require.NoError(t, l.pickColor("alice", model.PlayerColorBlue))
		require.NoError(t, l.pickColor("bob", model.PlayerColorPurple))
	})

	t.Run("Made Up Colors Are Refused", func(t *testing.T) {
		t.Parallel()
		l := newLobbyState()
		require.NoError(t, l.addSeat("alice"))
		assert.EqualError(t, l.pickColor("alice", model.PlayerColor("MAUVE")), "unknown color")
	})

	t.Run("Unpicked Seats Get The Free Colors In Order", func(t *testing.T) {
		t.Parallel()
		l := newLobbyState()
		for _, username := range []string{"alice", "bob", "carol"} {
			require.NoError(t, l.addSeat(username))
		}
		require.NoError(t, l.pickColor("alice", model.PlayerColorGreen))

		specs := l.assignColors()
		assert.Equal(t, []engine.PlayerSpec{
			{Username: "alice", Color: model.PlayerColorGreen},
			{Username: "bob", Color: model.PlayerColorYellow},
			{Username: "carol", Color: model.PlayerColorPurple},
		}, specs)
	})
}

func TestLobbyConfig(t *testing.T) {
	t.Parallel()

	t.Run("Defaults Without Any Vote", func(t *testing.T) {
		t.Parallel()
		l := newLobbyState()
		for _, username := range []string{"alice", "bob", "carol"} {
			require.NoError(t, l.addSeat(username))
		}

		cfg := l.config()
		assert.Equal(t, content.StartGameConfig{
			BotPresent:  false,
			KillShotNum: model.MaxKillShots,
			MapID:       content.MinMapID,
		}, cfg)
	})

	t.Run("The Most Voted Map Wins, Ties Break Low", func(t *testing.T) {
		t.Parallel()
		l := newLobbyState()
		for _, username := range []string{"alice", "bob", "carol"} {
			require.NoError(t, l.addSeat(username))
		}
		l.mapVotes["alice"] = 3
		l.mapVotes["bob"] = 2
		assert.Equal(t, 2, l.config().MapID, "one vote each, the lower id wins")

		l.mapVotes["carol"] = 3
		assert.Equal(t, 3, l.config().MapID)
	})

	t.Run("The Bot Needs A Strict Majority", func(t *testing.T) {
		t.Parallel()
		l := newLobbyState()
		for _, username := range []string{"alice", "bob", "carol", "dave"} {
			require.NoError(t, l.addSeat(username))
		}
		l.botVotes["alice"] = true
		l.botVotes["bob"] = true
		assert.False(t, l.config().BotPresent, "two of four is not a majority")

		l.botVotes["carol"] = true
		assert.True(t, l.config().BotPresent)
	})
}
