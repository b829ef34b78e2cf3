package content

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adrenaline/engine/model"
)

func TestMapCatalog(t *testing.T) {
	t.Parallel()

	t.Run("All Four Layouts Parse", func(t *testing.T) {
		t.Parallel()
		for id := MinMapID; id <= MaxMapID; id++ {
			m, err := Map(id)
			require.NoError(t, err)
			assert.Equal(t, id, m.ID)
		}
		_, err := Map(MaxMapID + 1)
		assert.Error(t, err)
	})

	t.Run("Every Layout Has The Three Spawn Rooms", func(t *testing.T) {
		t.Parallel()
		for id := MinMapID; id <= MaxMapID; id++ {
			m, err := Map(id)
			require.NoError(t, err)
			for _, color := range []model.RoomColor{model.RoomRed, model.RoomBlue, model.RoomYellow} {
				_, err := m.SpawnSquare(color)
				assert.NoError(t, err, "map %d has no %s spawn", id, color)
			}
		}
	})

	t.Run("Open Sides Are Symmetric", func(t *testing.T) {
		t.Parallel()
		for id := MinMapID; id <= MaxMapID; id++ {
			m, err := Map(id)
			require.NoError(t, err)
			for row := 0; row < model.MapRows; row++ {
				for col := 0; col < model.MapCols; col++ {
					from := model.Position{Row: row, Col: col}
					if m.SquareAt(from) == nil {
						continue
					}
					for _, to := range []model.Position{
						{Row: row - 1, Col: col}, {Row: row + 1, Col: col},
						{Row: row, Col: col - 1}, {Row: row, Col: col + 1},
					} {
						if m.SquareAt(to) == nil {
							continue
						}
						forward := m.Distance(from, to) == 1
						backward := m.Distance(to, from) == 1
						assert.Equal(t, forward, backward, "map %d between %s and %s", id, from, to)
					}
				}
			}
		}
	})

	t.Run("Map Instances Do Not Share Squares", func(t *testing.T) {
		t.Parallel()
		a, err := Map(1)
		require.NoError(t, err)
		b, err := Map(1)
		require.NoError(t, err)

		pos, err := a.SpawnSquare(model.RoomRed)
		require.NoError(t, err)
		a.SquareAt(pos).Weapons = append(a.SquareAt(pos).Weapons, model.WeaponCard{Name: "marker"})
		assert.Empty(t, b.SquareAt(pos).Weapons)
	})
}

func TestCardCatalogs(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(5))

	t.Run("Twenty One Weapons All Charged", func(t *testing.T) {
		t.Parallel()
		deck := WeaponDeck(rng)
		assert.Equal(t, 21, deck.Remaining())
		ids := map[string]bool{}
		for _, w := range deck.Cards {
			assert.Equal(t, model.WeaponCharged, w.State)
			assert.False(t, ids[w.ID], "duplicate weapon id %s", w.ID)
			ids[w.ID] = true
		}
	})

	t.Run("Twenty Four Powerups Evenly Split", func(t *testing.T) {
		t.Parallel()
		deck := PowerupDeck(rng)
		assert.Equal(t, 24, deck.Remaining())

		kinds := map[string]int{}
		for _, c := range deck.Cards {
			kinds[c.Name]++
		}
		for _, name := range []string{
			model.PowerupTeleporter, model.PowerupNewton,
			model.PowerupTagbackGrenade, model.PowerupTargetingScope,
		} {
			assert.Equal(t, 6, kinds[name], "%s count", name)
		}
	})

	t.Run("Thirty Six Tiles Worth Three Tokens", func(t *testing.T) {
		t.Parallel()
		deck := AmmoTileDeck(rng)
		assert.Equal(t, 36, deck.Remaining())
		for _, tile := range deck.Cards {
			tokens := len(tile.Ammo)
			if tile.Powerup {
				tokens++
			}
			assert.Equal(t, 3, tokens)
		}
	})

	t.Run("Decks Do Not Share Card Slices", func(t *testing.T) {
		t.Parallel()
		a := WeaponDeck(rng)
		b := WeaponDeck(rng)
		a.Cards[0].Name = "tampered"

		for _, w := range b.Cards {
			assert.NotEqual(t, "tampered", w.Name)
		}
	})
}

func TestStartGameConfigNormalize(t *testing.T) {
	t.Parallel()

	cfg := StartGameConfig{KillShotNum: 0, MapID: 1}
	cfg.Normalize()
	assert.Equal(t, model.MinKillShots, cfg.KillShotNum)

	cfg = StartGameConfig{KillShotNum: model.MaxKillShots, MapID: 1}
	cfg.Normalize()
	assert.Equal(t, model.MaxKillShots, cfg.KillShotNum)

	cfg = StartGameConfig{KillShotNum: model.MaxKillShots + 1, MapID: 1}
	cfg.Normalize()
	assert.Equal(t, model.MinKillShots, cfg.KillShotNum)
}
