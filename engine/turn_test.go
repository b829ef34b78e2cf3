package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adrenaline/engine/model"
)

func ringGame(t *testing.T) (*model.Game, *TurnManager) {
	t.Helper()
	g := model.NewGame(model.MinKillShots)
	for i, username := range []string{"alice", "bob", "carol"} {
		require.NoError(t, g.AddPlayer(model.NewUserPlayer(username, model.PlayerColors[i])))
	}
	g.Players[0].FirstPlayer = true
	return g, NewTurnManager(g)
}

func TestTurnRing(t *testing.T) {
	t.Parallel()

	t.Run("The Ring Advances And Wraps", func(t *testing.T) {
		t.Parallel()
		_, tm := ringGame(t)
		assert.Equal(t, "alice", tm.Owner().Username)
		assert.True(t, tm.EndOfRound(), "the ring starts on the first player")

		tm.NextTurn()
		assert.Equal(t, "bob", tm.Owner().Username)
		assert.False(t, tm.EndOfRound())

		tm.NextTurn()
		tm.NextTurn()
		assert.Equal(t, "alice", tm.Owner().Username)
		assert.True(t, tm.EndOfRound())
	})

	t.Run("A Sub Turn Rebinds The Owner Without Moving The Ring", func(t *testing.T) {
		t.Parallel()
		_, tm := ringGame(t)

		tm.GiveTurn("carol")
		assert.Equal(t, "carol", tm.Owner().Username)
		assert.Equal(t, "alice", tm.RingOwner().Username)

		// handing the turn to the ring owner ends the sub-turn
		tm.GiveTurn("alice")
		assert.Empty(t, tm.SubOwner)
		assert.Equal(t, "alice", tm.Owner().Username)
	})

	t.Run("Advancing Clears Sub Turn And Second Action", func(t *testing.T) {
		t.Parallel()
		_, tm := ringGame(t)
		tm.GiveTurn("carol")
		tm.SecondAction = true

		tm.NextTurn()
		assert.Empty(t, tm.SubOwner)
		assert.False(t, tm.SecondAction)
		assert.Equal(t, "bob", tm.Owner().Username)
	})
}

func TestGrenadeQueue(t *testing.T) {
	t.Parallel()
	g, tm := ringGame(t)
	grenade := model.PowerupCard{Name: model.PowerupTagbackGrenade, Color: model.AmmoRed}

	bob, err := g.UserPlayerByUsername("bob")
	require.NoError(t, err)
	require.NoError(t, bob.AddPowerup(grenade))
	alice, err := g.UserPlayerByUsername("alice")
	require.NoError(t, err)
	require.NoError(t, alice.AddPowerup(grenade))

	// alice owns the ring, so her grenade never enters the queue; carol has
	// none and the bot cannot answer at all
	tm.SetDamagedPlayers([]string{"alice", "bob", "carol", model.BotName})
	assert.Equal(t, []string{"alice", "bob", "carol", model.BotName}, tm.DamagedPlayers)
	assert.Equal(t, []string{"bob"}, tm.GrenadePossibleUsers)
}

func TestFrenzyAssignment(t *testing.T) {
	t.Parallel()

	t.Run("The Activator Is Remembered Once", func(t *testing.T) {
		t.Parallel()
		_, tm := ringGame(t)
		tm.SetFrenzyActivator()
		tm.NextTurn()
		tm.SetFrenzyActivator()
		assert.Equal(t, "alice", tm.FrenzyActivator)

		tm.SetLastPlayer()
		assert.Equal(t, "alice", tm.LastPlayer)
	})

	t.Run("Boards Flip And Sets Split At The First Player", func(t *testing.T) {
		t.Parallel()
		g, tm := ringGame(t)
		alice, bob, carol := g.Players[0], g.Players[1], g.Players[2]
		bob.Board.AddDamage("carol", 2)
		require.NoError(t, alice.AddWeapon(model.WeaponCard{ID: "w1", State: model.WeaponUncharged}))

		// carol activated the frenzy: her ring position decides who still
		// acts before the first player's last turn
		tm.OwnerIndex = 2
		tm.SetFrenzyPlayers()

		assert.True(t, alice.Board.Flipped)
		assert.False(t, bob.Board.Flipped, "damaged boards wait for their reset")
		assert.Equal(t, model.WeaponSemiCharged, alice.Weapons[0].State)

		assert.True(t, alice.Actions.Has(model.ActionLightFrenzyShoot), "the first player closes the walk")
		assert.True(t, bob.Actions.Has(model.ActionLightFrenzyPick))
		assert.True(t, carol.Actions.Has(model.ActionLightFrenzyShoot))
	})
}
