package actions

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adrenaline/engine/model"
)

// testMap is two corridors of four squares. Spawn squares are starred, d
// marks a door, the outer border and the row below are walls and holes.
//
//	RED* --- RED  -d- BLUE --- BLUE*
//	 d                          d
//	YEL* --- YEL  -d- GRN  --- GRN
func testMap() *model.GameMap {
	sq := func(t model.SquareType, room model.RoomColor, n, e, s, w model.SquareAdjacency) *model.Square {
		return &model.Square{Type: t, Room: room, North: n, East: e, South: s, West: w}
	}
	wall, door, open := model.AdjacencyWall, model.AdjacencyDoor, model.AdjacencySquare

	m := &model.GameMap{ID: 1}
	m.Squares[0][0] = sq(model.SquareSpawn, model.RoomRed, wall, open, door, wall)
	m.Squares[0][1] = sq(model.SquareTile, model.RoomRed, wall, door, wall, open)
	m.Squares[0][2] = sq(model.SquareTile, model.RoomBlue, wall, open, wall, door)
	m.Squares[0][3] = sq(model.SquareSpawn, model.RoomBlue, wall, wall, door, open)
	m.Squares[1][0] = sq(model.SquareSpawn, model.RoomYellow, door, open, wall, wall)
	m.Squares[1][1] = sq(model.SquareTile, model.RoomYellow, wall, door, wall, open)
	m.Squares[1][2] = sq(model.SquareTile, model.RoomGreen, wall, open, wall, door)
	m.Squares[1][3] = sq(model.SquareTile, model.RoomGreen, door, wall, wall, open)
	return m
}

func at(row, col int) *model.Position {
	return &model.Position{Row: row, Col: col}
}

// testGame builds a started three-player game on testMap with everyone
// placed and playing. Decks start empty; tests stock what they need.
func testGame(t *testing.T) (*model.Game, *rand.Rand) {
	t.Helper()
	rng := rand.New(rand.NewSource(11))

	g := model.NewGame(model.MinKillShots)
	for i, username := range []string{"alice", "bob", "carol"} {
		require.NoError(t, g.AddPlayer(model.NewUserPlayer(username, model.PlayerColors[i])))
	}
	g.Map = testMap()
	g.WeaponDeck = model.NewDeck([]model.WeaponCard{}, rng)
	g.PowerupDeck = model.NewDeck([]model.PowerupCard{}, rng)
	g.AmmoTileDeck = model.NewDeck([]model.AmmoTile{}, rng)
	g.Started = true

	for i, p := range g.Players {
		p.State = model.PlayerPlaying
		p.Position = at(0, i)
	}
	return g, rng
}

func player(t *testing.T, g *model.Game, username string) *model.UserPlayer {
	t.Helper()
	p, err := g.UserPlayerByUsername(username)
	require.NoError(t, err)
	return p
}

func TestMoveAction(t *testing.T) {
	t.Parallel()

	t.Run("Three Steps Within The Normal Budget", func(t *testing.T) {
		t.Parallel()
		g, _ := testGame(t)
		alice := player(t, g, "alice")

		move := &MoveAction{Player: alice, Target: model.Position{Row: 0, Col: 3}, Kind: model.ActionMove}
		require.NoError(t, move.Validate(g))
		require.NoError(t, move.Execute(g))
		assert.Equal(t, model.Position{Row: 0, Col: 3}, *alice.Position)
	})

	t.Run("Four Steps Need The Frenzy Move", func(t *testing.T) {
		t.Parallel()
		g, _ := testGame(t)
		alice := player(t, g, "alice")
		target := model.Position{Row: 1, Col: 3}

		move := &MoveAction{Player: alice, Target: target, Kind: model.ActionMove}
		assert.ErrorIs(t, move.Validate(g), ErrInvalidAction)

		move.Kind = model.ActionFrenzyMove
		assert.NoError(t, move.Validate(g))
	})

	t.Run("Standing Still Is Not A Move", func(t *testing.T) {
		t.Parallel()
		g, _ := testGame(t)
		alice := player(t, g, "alice")

		move := &MoveAction{Player: alice, Target: *alice.Position, Kind: model.ActionMove}
		assert.ErrorIs(t, move.Validate(g), ErrInvalidAction)
	})

	t.Run("Holes Are Out Of Reach", func(t *testing.T) {
		t.Parallel()
		g, _ := testGame(t)
		alice := player(t, g, "alice")

		move := &MoveAction{Player: alice, Target: model.Position{Row: 2, Col: 0}, Kind: model.ActionMove}
		assert.ErrorIs(t, move.Validate(g), ErrInvalidAction)
	})

	t.Run("Only Move Kinds Are Accepted", func(t *testing.T) {
		t.Parallel()
		g, _ := testGame(t)
		alice := player(t, g, "alice")

		move := &MoveAction{Player: alice, Target: model.Position{Row: 0, Col: 1}, Kind: model.ActionShoot}
		assert.ErrorIs(t, move.Validate(g), ErrInvalidAction)
	})
}

func TestSpawnAction(t *testing.T) {
	t.Parallel()

	t.Run("Spawning Lands On The Matching Spawn Square", func(t *testing.T) {
		t.Parallel()
		g, _ := testGame(t)
		alice := player(t, g, "alice")
		alice.State = model.PlayerFirstSpawn
		alice.Position = nil

		spawn := &SpawnAction{Player: alice, Color: model.RoomYellow}
		require.NoError(t, spawn.Validate(g))
		require.NoError(t, spawn.Execute(g))

		assert.Equal(t, model.Position{Row: 1, Col: 0}, *alice.Position)
		assert.Equal(t, model.PlayerPlaying, alice.State)
	})

	t.Run("A Playing Player Cannot Spawn", func(t *testing.T) {
		t.Parallel()
		g, _ := testGame(t)
		alice := player(t, g, "alice")

		spawn := &SpawnAction{Player: alice, Color: model.RoomRed}
		assert.ErrorIs(t, spawn.Validate(g), ErrInvalidAction)
	})

	t.Run("Only Spawn Room Colors Are Valid", func(t *testing.T) {
		t.Parallel()
		g, _ := testGame(t)
		alice := player(t, g, "alice")
		alice.State = model.PlayerDead

		spawn := &SpawnAction{Player: alice, Color: model.RoomGreen}
		assert.ErrorIs(t, spawn.Validate(g), ErrInvalidAction)
	})
}

func TestBotSpawnAction(t *testing.T) {
	t.Parallel()

	t.Run("No Bot No Spawn", func(t *testing.T) {
		t.Parallel()
		g, _ := testGame(t)
		spawn := &BotSpawnAction{Color: model.RoomRed}
		assert.ErrorIs(t, spawn.Validate(g), ErrInvalidAction)
	})

	t.Run("The Bot Lands On The Chosen Spawn", func(t *testing.T) {
		t.Parallel()
		g, _ := testGame(t)
		g.BotPresent = true
		g.Bot = model.NewBot(model.PlayerColorGrey)

		spawn := &BotSpawnAction{Color: model.RoomBlue}
		require.NoError(t, spawn.Validate(g))
		require.NoError(t, spawn.Execute(g))

		assert.Equal(t, model.Position{Row: 0, Col: 3}, *g.Bot.Position)
		assert.Equal(t, model.PlayerPlaying, g.Bot.State)
	})
}

func TestBotAction(t *testing.T) {
	t.Parallel()

	botGame := func(t *testing.T) *model.Game {
		g, _ := testGame(t)
		g.BotPresent = true
		g.Bot = model.NewBot(model.PlayerColorGrey)
		g.Bot.Position = at(1, 0)
		g.Bot.State = model.PlayerPlaying
		return g
	}

	t.Run("The Bot Moves One Square And Hits A Visible Player", func(t *testing.T) {
		t.Parallel()
		g := botGame(t)
		owner := player(t, g, "bob")
		carol := player(t, g, "carol")
		carol.Position = at(1, 2)

		action := &BotAction{Owner: owner, Target: "carol", Dest: model.Position{Row: 1, Col: 1}}
		require.NoError(t, action.Validate(g), "the door at (1,1) reveals the green room")
		require.NoError(t, action.Execute(g))

		assert.Equal(t, model.Position{Row: 1, Col: 1}, *g.Bot.Position)
		assert.Equal(t, 1, carol.Board.DamageCount())
		assert.Equal(t, 1, carol.Board.MarkCount(model.BotName))
	})

	t.Run("Two Squares Is Too Far", func(t *testing.T) {
		t.Parallel()
		g := botGame(t)
		owner := player(t, g, "bob")

		action := &BotAction{Owner: owner, Target: "", Dest: model.Position{Row: 1, Col: 2}}
		assert.ErrorIs(t, action.Validate(g), ErrInvalidAction)
	})

	t.Run("The Target Must Be Visible From The Destination", func(t *testing.T) {
		t.Parallel()
		g := botGame(t)
		owner := player(t, g, "bob")

		// (1,1) has no door facing the red room, so alice stays hidden
		action := &BotAction{Owner: owner, Target: "alice", Dest: model.Position{Row: 1, Col: 1}}
		assert.ErrorIs(t, action.Validate(g), ErrInvalidAction)
	})
}

func TestReloadAction(t *testing.T) {
	t.Parallel()

	t.Run("Reload Charges And Pays", func(t *testing.T) {
		t.Parallel()
		g, _ := testGame(t)
		alice := player(t, g, "alice")
		require.NoError(t, alice.AddWeapon(model.WeaponCard{
			Name: "rusty gun", State: model.WeaponUncharged,
			ReloadCost: []model.Ammo{model.AmmoRed, model.AmmoBlue},
		}))

		reload := &ReloadAction{Player: alice, Weapons: []int{0}}
		require.NoError(t, reload.Validate(g))
		require.NoError(t, reload.Execute(g))

		assert.Equal(t, model.WeaponCharged, alice.Weapons[0].State)
		assert.Zero(t, alice.Board.Ammo.Count(model.AmmoRed))
		assert.Zero(t, alice.Board.Ammo.Count(model.AmmoBlue))
	})

	t.Run("A Charged Weapon Cannot Reload", func(t *testing.T) {
		t.Parallel()
		g, _ := testGame(t)
		alice := player(t, g, "alice")
		require.NoError(t, alice.AddWeapon(model.WeaponCard{Name: "gun", State: model.WeaponCharged}))

		reload := &ReloadAction{Player: alice, Weapons: []int{0}}
		assert.ErrorIs(t, reload.Validate(g), ErrWeaponAlreadyCharged)
	})

	t.Run("Missing Ammo Blocks The Reload", func(t *testing.T) {
		t.Parallel()
		g, _ := testGame(t)
		alice := player(t, g, "alice")
		require.NoError(t, alice.AddWeapon(model.WeaponCard{
			Name: "heavy gun", State: model.WeaponUncharged,
			ReloadCost: []model.Ammo{model.AmmoRed, model.AmmoRed},
		}))

		reload := &ReloadAction{Player: alice, Weapons: []int{0}}
		assert.ErrorIs(t, reload.Validate(g), ErrNotEnoughAmmo)
	})

	t.Run("Powerups Pay Their Color", func(t *testing.T) {
		t.Parallel()
		g, _ := testGame(t)
		alice := player(t, g, "alice")
		require.NoError(t, alice.AddWeapon(model.WeaponCard{
			Name: "heavy gun", State: model.WeaponUncharged,
			ReloadCost: []model.Ammo{model.AmmoRed, model.AmmoRed},
		}))
		require.NoError(t, alice.AddPowerup(model.PowerupCard{Name: model.PowerupNewton, Color: model.AmmoRed}))

		reload := &ReloadAction{Player: alice, Weapons: []int{0}, PaymentPowerups: []int{0}}
		require.NoError(t, reload.Validate(g))
		require.NoError(t, reload.Execute(g))

		assert.Empty(t, alice.Powerups)
		assert.Zero(t, alice.Board.Ammo.Count(model.AmmoRed))
		assert.Equal(t, 1, alice.Board.Ammo.Count(model.AmmoBlue))
	})

	t.Run("Duplicate Weapon Indexes Are Rejected", func(t *testing.T) {
		t.Parallel()
		g, _ := testGame(t)
		alice := player(t, g, "alice")
		require.NoError(t, alice.AddWeapon(model.WeaponCard{Name: "gun", State: model.WeaponUncharged}))

		reload := &ReloadAction{Player: alice, Weapons: []int{0, 0}}
		assert.ErrorIs(t, reload.Validate(g), ErrInvalidAction)
	})
}

func TestActionSets(t *testing.T) {
	t.Parallel()

	t.Run("Starting Set Includes The Spawn Choice", func(t *testing.T) {
		t.Parallel()
		p := model.NewUserPlayer("alice", model.PlayerColorYellow)
		SetStartingActions(p, false)

		assert.True(t, p.Actions.Has(model.ActionChooseSpawn))
		assert.True(t, p.Actions.Has(model.ActionMove))
		assert.True(t, p.Actions.Has(model.ActionMoveAndPick))
		assert.True(t, p.Actions.Has(model.ActionShoot))
		assert.False(t, p.Actions.Has(model.ActionBot))

		SetStartingActions(p, true)
		assert.True(t, p.Actions.Has(model.ActionBot))
	})

	t.Run("Three Damage Upgrades The Pick", func(t *testing.T) {
		t.Parallel()
		p := model.NewUserPlayer("alice", model.PlayerColorYellow)
		p.Board.AddDamage("bob", 3)
		SetPossibleActions(p, false)

		assert.True(t, p.Actions.Has(model.ActionAdrenalinePick))
		assert.False(t, p.Actions.Has(model.ActionMoveAndPick))
		assert.False(t, p.Actions.Has(model.ActionAdrenalineShoot))
	})

	t.Run("Six Damage Upgrades The Shoot", func(t *testing.T) {
		t.Parallel()
		p := model.NewUserPlayer("alice", model.PlayerColorYellow)
		p.Board.AddDamage("bob", 6)
		SetPossibleActions(p, false)

		assert.True(t, p.Actions.Has(model.ActionAdrenalinePick))
		assert.True(t, p.Actions.Has(model.ActionAdrenalineShoot))
		assert.True(t, p.Actions.Has(model.ActionShoot))
	})

	t.Run("Frenzy Sets Depend On The Seat", func(t *testing.T) {
		t.Parallel()
		p := model.NewUserPlayer("alice", model.PlayerColorYellow)

		SetFrenzyActions(p, true)
		assert.True(t, p.Actions.Has(model.ActionFrenzyMove))
		assert.True(t, p.Actions.Has(model.ActionFrenzyShoot))
		assert.False(t, HasSingleActionSet(p))

		SetFrenzyActions(p, false)
		assert.True(t, p.Actions.Has(model.ActionLightFrenzyPick))
		assert.True(t, p.Actions.Has(model.ActionLightFrenzyShoot))
		assert.True(t, HasSingleActionSet(p))
	})

	t.Run("Kind Selection Prefers The Stronger Variant", func(t *testing.T) {
		t.Parallel()
		p := model.NewUserPlayer("alice", model.PlayerColorYellow)
		p.Board.AddDamage("bob", 6)
		SetPossibleActions(p, false)

		kind, ok := ShootKind(p)
		require.True(t, ok)
		assert.Equal(t, model.ActionAdrenalineShoot, kind)

		kind, ok = PickKind(p)
		require.True(t, ok)
		assert.Equal(t, model.ActionAdrenalinePick, kind)

		kind, ok = MoveKind(p)
		require.True(t, ok)
		assert.Equal(t, model.ActionMove, kind)
	})

	t.Run("No Matching Kind Reports False", func(t *testing.T) {
		t.Parallel()
		p := model.NewUserPlayer("alice", model.PlayerColorYellow)
		p.Actions = model.NewActionSet(model.ActionReload)

		_, ok := ShootKind(p)
		assert.False(t, ok)
		_, ok = MoveKind(p)
		assert.False(t, ok)
	})
}
