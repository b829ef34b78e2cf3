package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adrenaline/engine/model"
)

func TestPickAmmoTile(t *testing.T) {
	t.Parallel()

	t.Run("The Tile Grants Its Cubes And Goes To The Discards", func(t *testing.T) {
		t.Parallel()
		g, rng := testGame(t)
		alice := player(t, g, "alice")
		g.Map.Squares[0][1].AmmoTile = &model.AmmoTile{Ammo: []model.Ammo{model.AmmoRed, model.AmmoRed, model.AmmoBlue}}

		pick := &PickAction{Player: alice, Kind: model.ActionMoveAndPick, Target: model.Position{Row: 0, Col: 1}, Rng: rng}
		require.NoError(t, pick.Validate(g))
		require.NoError(t, pick.Execute(g))

		assert.Equal(t, model.Position{Row: 0, Col: 1}, *alice.Position)
		assert.Equal(t, 3, alice.Board.Ammo.Count(model.AmmoRed))
		assert.Equal(t, 2, alice.Board.Ammo.Count(model.AmmoBlue))
		assert.Nil(t, g.Map.Squares[0][1].AmmoTile)
		assert.Len(t, g.AmmoTileDeck.Discards, 1)
	})

	t.Run("A Powerup Tile Draws A Card", func(t *testing.T) {
		t.Parallel()
		g, rng := testGame(t)
		alice := player(t, g, "alice")
		g.PowerupDeck.Cards = []model.PowerupCard{{Name: model.PowerupNewton, Color: model.AmmoYellow}}
		g.Map.Squares[0][1].AmmoTile = &model.AmmoTile{Ammo: []model.Ammo{model.AmmoRed, model.AmmoBlue}, Powerup: true}

		pick := &PickAction{Player: alice, Kind: model.ActionMoveAndPick, Target: model.Position{Row: 0, Col: 1}, Rng: rng}
		require.NoError(t, pick.Validate(g))
		require.NoError(t, pick.Execute(g))

		require.Len(t, alice.Powerups, 1)
		assert.Equal(t, model.PowerupNewton, alice.Powerups[0].Name)
	})

	t.Run("An Empty Tile Square Offers Nothing", func(t *testing.T) {
		t.Parallel()
		g, rng := testGame(t)
		alice := player(t, g, "alice")

		pick := &PickAction{Player: alice, Kind: model.ActionMoveAndPick, Target: model.Position{Row: 0, Col: 1}, Rng: rng}
		assert.ErrorIs(t, pick.Validate(g), ErrInvalidAction)
	})

	t.Run("The Pick Budget Binds The Move Leg", func(t *testing.T) {
		t.Parallel()
		g, rng := testGame(t)
		alice := player(t, g, "alice")
		g.Map.Squares[0][2].AmmoTile = &model.AmmoTile{Ammo: []model.Ammo{model.AmmoRed}}

		// (0,2) is two steps away, one too many for the normal pick
		pick := &PickAction{Player: alice, Kind: model.ActionMoveAndPick, Target: model.Position{Row: 0, Col: 2}, Rng: rng}
		assert.ErrorIs(t, pick.Validate(g), ErrInvalidAction)

		pick.Kind = model.ActionAdrenalinePick
		assert.NoError(t, pick.Validate(g))
	})
}

func TestPickWeapon(t *testing.T) {
	t.Parallel()

	shotgun := model.WeaponCard{
		Name: "shop shotgun", Color: model.AmmoYellow,
		GrabCost: []model.Ammo{model.AmmoYellow},
		State:    model.WeaponCharged,
	}

	t.Run("Buying Off The Spawn Square", func(t *testing.T) {
		t.Parallel()
		g, rng := testGame(t)
		alice := player(t, g, "alice")
		g.Map.Squares[0][0].Weapons = []model.WeaponCard{shotgun}

		pick := &PickAction{
			Player: alice, Kind: model.ActionMoveAndPick,
			Target:      model.Position{Row: 0, Col: 0},
			WeaponIndex: 0, DiscardWeapon: -1, Rng: rng,
		}
		require.NoError(t, pick.Validate(g))
		require.NoError(t, pick.Execute(g))

		require.Len(t, alice.Weapons, 1)
		assert.Equal(t, "shop shotgun", alice.Weapons[0].Name)
		assert.Equal(t, model.WeaponCharged, alice.Weapons[0].State)
		assert.Empty(t, g.Map.Squares[0][0].Weapons)
		assert.Zero(t, alice.Board.Ammo.Count(model.AmmoYellow))
	})

	t.Run("A Full Hand Requires A Trade", func(t *testing.T) {
		t.Parallel()
		g, rng := testGame(t)
		alice := player(t, g, "alice")
		for _, name := range []string{"first", "second", "third"} {
			require.NoError(t, alice.AddWeapon(model.WeaponCard{Name: name, State: model.WeaponCharged}))
		}
		g.Map.Squares[0][0].Weapons = []model.WeaponCard{shotgun}

		pick := &PickAction{
			Player: alice, Kind: model.ActionMoveAndPick,
			Target:      model.Position{Row: 0, Col: 0},
			WeaponIndex: 0, DiscardWeapon: -1, Rng: rng,
		}
		assert.ErrorIs(t, pick.Validate(g), ErrInvalidAction)

		pick.DiscardWeapon = 1
		require.NoError(t, pick.Validate(g))
		require.NoError(t, pick.Execute(g))

		assert.Equal(t, "shop shotgun", alice.Weapons[1].Name)
		// the traded weapon goes back on sale, uncharged
		require.Len(t, g.Map.Squares[0][0].Weapons, 1)
		assert.Equal(t, "second", g.Map.Squares[0][0].Weapons[0].Name)
		assert.Equal(t, model.WeaponUncharged, g.Map.Squares[0][0].Weapons[0].State)
	})

	t.Run("An Unaffordable Weapon Stays On The Square", func(t *testing.T) {
		t.Parallel()
		g, rng := testGame(t)
		alice := player(t, g, "alice")
		expensive := shotgun
		expensive.GrabCost = []model.Ammo{model.AmmoYellow, model.AmmoYellow}
		g.Map.Squares[0][0].Weapons = []model.WeaponCard{expensive}

		pick := &PickAction{
			Player: alice, Kind: model.ActionMoveAndPick,
			Target:      model.Position{Row: 0, Col: 0},
			WeaponIndex: 0, DiscardWeapon: -1, Rng: rng,
		}
		assert.ErrorIs(t, pick.Validate(g), ErrNotEnoughAmmo)
	})

	t.Run("A Payment Powerup Covers A Cube", func(t *testing.T) {
		t.Parallel()
		g, rng := testGame(t)
		alice := player(t, g, "alice")
		require.NoError(t, alice.AddPowerup(model.PowerupCard{Name: model.PowerupTeleporter, Color: model.AmmoYellow}))
		expensive := shotgun
		expensive.GrabCost = []model.Ammo{model.AmmoYellow, model.AmmoYellow}
		g.Map.Squares[0][0].Weapons = []model.WeaponCard{expensive}

		pick := &PickAction{
			Player: alice, Kind: model.ActionMoveAndPick,
			Target:      model.Position{Row: 0, Col: 0},
			WeaponIndex: 0, DiscardWeapon: -1,
			PaymentPowerups: []int{0}, Rng: rng,
		}
		require.NoError(t, pick.Validate(g))
		require.NoError(t, pick.Execute(g))

		assert.Empty(t, alice.Powerups)
		assert.Zero(t, alice.Board.Ammo.Count(model.AmmoYellow))
		assert.Len(t, g.PowerupDeck.Discards, 1)
	})

	t.Run("A Missing Weapon Index Is Rejected", func(t *testing.T) {
		t.Parallel()
		g, rng := testGame(t)
		alice := player(t, g, "alice")
		g.Map.Squares[0][0].Weapons = []model.WeaponCard{shotgun}

		pick := &PickAction{
			Player: alice, Kind: model.ActionMoveAndPick,
			Target:      model.Position{Row: 0, Col: 0},
			WeaponIndex: 2, DiscardWeapon: -1, Rng: rng,
		}
		assert.ErrorIs(t, pick.Validate(g), ErrInvalidAction)
	})
}
