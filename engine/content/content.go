// Package content holds the embedded card and map catalogs every match is
// built from. The catalogs are parsed once at startup; accessors hand out
// fresh copies so matches never share mutable card state.
package content

import (
	"embed"
	"encoding/json"
	"fmt"
	"math/rand"

	"adrenaline/engine/model"
	"adrenaline/shared/logger"
)

//go:embed data/*.json
var dataFS embed.FS

const (
	MinMapID = 1
	MaxMapID = 4
)

// StartGameConfig is what a lobby hands the engine to build a match.
type StartGameConfig struct {
	BotPresent  bool `json:"botPresent"`
	KillShotNum int  `json:"killShotNum"`
	MapID       int  `json:"mapId"`
}

// Normalize clamps an out-of-range killshot count to the minimum. The map
// id is not clamped; an unknown map is rejected when the match is built.
func (c *StartGameConfig) Normalize() {
	if c.KillShotNum < model.MinKillShots || c.KillShotNum > model.MaxKillShots {
		c.KillShotNum = model.MinKillShots
	}
}

type mapCell struct {
	IsSpawn bool                  `json:"isSpawn"`
	Color   model.RoomColor       `json:"color"`
	North   model.SquareAdjacency `json:"north"`
	East    model.SquareAdjacency `json:"east"`
	South   model.SquareAdjacency `json:"south"`
	West    model.SquareAdjacency `json:"west"`
}

type mapEntry struct {
	ID  int          `json:"id"`
	Map [][]*mapCell `json:"map"`
}

var (
	mapCatalog     []mapEntry
	weaponCatalog  []model.WeaponCard
	powerupCatalog []model.PowerupCard
	tileCatalog    []model.AmmoTile
)

func init() {
	mustParse("data/maps.json", &mapCatalog)
	mustParse("data/weapons.json", &weaponCatalog)
	mustParse("data/powerups.json", &powerupCatalog)
	mustParse("data/ammotiles.json", &tileCatalog)
}

func mustParse(name string, out any) {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		logger.Fatalf("content catalog %s missing: %v", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		logger.Fatalf("content catalog %s corrupt: %v", name, err)
	}
}

// Map builds a fresh instance of one of the four preset layouts.
func Map(id int) (*model.GameMap, error) {
	for _, entry := range mapCatalog {
		if entry.ID != id {
			continue
		}
		m := &model.GameMap{ID: id}
		for row := 0; row < model.MapRows; row++ {
			for col := 0; col < model.MapCols; col++ {
				cell := entry.Map[row][col]
				if cell == nil {
					continue
				}
				sq := &model.Square{
					Type:  model.SquareTile,
					Room:  cell.Color,
					North: cell.North,
					East:  cell.East,
					South: cell.South,
					West:  cell.West,
				}
				if cell.IsSpawn {
					sq.Type = model.SquareSpawn
				}
				m.Squares[row][col] = sq
			}
		}
		return m, nil
	}
	return nil, fmt.Errorf("unknown map id %d", id)
}

// WeaponDeck builds a shuffled deck with one copy of every weapon, charged.
func WeaponDeck(rng *rand.Rand) *model.Deck[model.WeaponCard] {
	cards := make([]model.WeaponCard, len(weaponCatalog))
	copy(cards, weaponCatalog)
	for i := range cards {
		cards[i].State = model.WeaponCharged
	}
	return model.NewDeck(cards, rng)
}

// PowerupDeck builds the shuffled 24-card powerup deck.
func PowerupDeck(rng *rand.Rand) *model.Deck[model.PowerupCard] {
	cards := make([]model.PowerupCard, len(powerupCatalog))
	copy(cards, powerupCatalog)
	return model.NewDeck(cards, rng)
}

// AmmoTileDeck builds the shuffled 36-tile ammo deck.
func AmmoTileDeck(rng *rand.Rand) *model.Deck[model.AmmoTile] {
	cards := make([]model.AmmoTile, len(tileCatalog))
	copy(cards, tileCatalog)
	return model.NewDeck(cards, rng)
}
