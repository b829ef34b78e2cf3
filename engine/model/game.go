package model

import (
	"errors"
	"fmt"
	"math/rand"
)

const (
	MinPlayers      = 3
	MaxPlayers      = 5
	MinKillShots    = 5
	MaxKillShots    = 8
	WeaponsPerSpawn = 3
)

var (
	ErrGameAlreadyStarted    = errors.New("game already started")
	ErrGameNotStarted        = errors.New("game not started")
	ErrMaxPlayer             = errors.New("maximum number of players reached")
	ErrPlayerNotFound        = errors.New("player not found")
	ErrKillShotsTerminated   = errors.New("killshot track is full")
	ErrInvalidPlayerPosition = errors.New("invalid player position")
)

// TrackerPoints is the payout ladder for killshot-track ranking at endgame.
var TrackerPoints = []int{8, 6, 4, 2, 1, 1}

// Game is the authoritative world state. It provides query and mutation
// primitives only; every rule lives in the actions and engine packages.
type Game struct {
	State   GameState `json:"state" msgpack:"state"`
	Started bool      `json:"started" msgpack:"started"`

	Players    []*UserPlayer `json:"players" msgpack:"players"`
	BotPresent bool          `json:"botPresent" msgpack:"botPresent"`
	Bot        *Bot          `json:"bot" msgpack:"bot"`

	KillShotNum     int         `json:"killShotNum" msgpack:"killShotNum"`
	KillShotTrack   []*KillShot `json:"killShotTrack" msgpack:"killShotTrack"`
	FrenzyKillShots []KillShot  `json:"frenzyKillShots" msgpack:"frenzyKillShots"`

	WeaponDeck   *Deck[WeaponCard]  `json:"weaponDeck" msgpack:"weaponDeck"`
	PowerupDeck  *Deck[PowerupCard] `json:"powerupDeck" msgpack:"powerupDeck"`
	AmmoTileDeck *Deck[AmmoTile]    `json:"ammoTileDeck" msgpack:"ammoTileDeck"`

	Map *GameMap `json:"map" msgpack:"map"`
}

func NewGame(killShotNum int) *Game {
	return &Game{
		State:           GameNormal,
		Players:         []*UserPlayer{},
		KillShotNum:     killShotNum,
		KillShotTrack:   make([]*KillShot, killShotNum),
		FrenzyKillShots: []KillShot{},
	}
}

// AddPlayer joins a player before the game starts.
func (g *Game) AddPlayer(p *UserPlayer) error {
	if g.Started {
		return ErrGameAlreadyStarted
	}
	if len(g.Players) >= MaxPlayers || (g.BotPresent && len(g.Players) >= MaxPlayers-1) {
		return ErrMaxPlayer
	}
	g.Players = append(g.Players, p)
	return nil
}

// SetBot flags the bot's presence; the figure itself is built at start with
// the first unused color.
func (g *Game) SetBot(present bool) error {
	if g.Started {
		return ErrGameAlreadyStarted
	}
	if present && len(g.Players) >= MaxPlayers {
		return ErrMaxPlayer
	}
	g.BotPresent = present
	return nil
}

// Start marks the game started, picks a random first player and rotates the
// ring so that player leads, builds the bot and puts cards on every square.
// Decks must already be set.
func (g *Game) Start(rng *rand.Rand) error {
	if g.Started {
		return ErrGameAlreadyStarted
	}
	g.Started = true

	first := rng.Intn(len(g.Players))
	g.Players[first].FirstPlayer = true
	g.Players = append(g.Players[first:], g.Players[:first]...)

	if g.BotPresent {
		g.Bot = NewBot(g.firstUnusedColor())
	}

	g.distributeCards(rng)
	return nil
}

func (g *Game) firstUnusedColor() PlayerColor {
	used := map[PlayerColor]bool{}
	for _, p := range g.Players {
		used[p.Color] = true
	}
	for _, c := range PlayerColors {
		if !used[c] {
			return c
		}
	}
	return ""
}

func (g *Game) distributeCards(rng *rand.Rand) {
	for row := 0; row < MapRows; row++ {
		for col := 0; col < MapCols; col++ {
			sq := g.Map.Squares[row][col]
			if sq == nil {
				continue
			}
			g.refillSquare(sq, rng)
		}
	}
}

func (g *Game) refillSquare(sq *Square, rng *rand.Rand) {
	if sq.Type == SquareSpawn {
		for len(sq.Weapons) < WeaponsPerSpawn {
			w, ok := g.WeaponDeck.Draw(rng)
			if !ok {
				return
			}
			sq.Weapons = append(sq.Weapons, w)
		}
		return
	}
	if sq.AmmoTile == nil {
		if tile, ok := g.AmmoTileDeck.Draw(rng); ok {
			sq.AmmoTile = &tile
		}
	}
}

// RefillMap puts cards back on every square that lost one, drawing from the
// decks (discards are flushed back in when a deck runs dry).
func (g *Game) RefillMap(rng *rand.Rand) {
	g.distributeCards(rng)
}

// Spawn places a figure on a square of the map.
func (g *Game) Spawn(f *Figure, pos Position) error {
	if !g.Started {
		return ErrGameNotStarted
	}
	if g.Map.SquareAt(pos) == nil {
		return fmt.Errorf("%w: %s", ErrInvalidPlayerPosition, pos)
	}
	f.Position = &pos
	return nil
}

// PlayerByUsername resolves a username, including the bot's.
func (g *Game) PlayerByUsername(username string) (*Figure, error) {
	if g.BotPresent && username == BotName {
		return &g.Bot.Figure, nil
	}
	for _, p := range g.Players {
		if p.Username == username {
			return &p.Figure, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, username)
}

// UserPlayerByUsername resolves a username to a user player only.
func (g *Game) UserPlayerByUsername(username string) (*UserPlayer, error) {
	for _, p := range g.Players {
		if p.Username == username {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, username)
}

// FirstPlayer returns the player who leads the ring.
func (g *Game) FirstPlayer() *UserPlayer {
	for _, p := range g.Players {
		if p.FirstPlayer {
			return p
		}
	}
	return nil
}

// DeadPlayers lists the user players whose board crossed the threshold.
func (g *Game) DeadPlayers() []*UserPlayer {
	var dead []*UserPlayer
	for _, p := range g.Players {
		if p.Board.IsDead() {
			dead = append(dead, p)
		}
	}
	return dead
}

// BotIsDead reports whether the bot is present and crossed the threshold.
func (g *Game) BotIsDead() bool {
	return g.BotPresent && g.Bot.Board.IsDead()
}

// PlayersDamage snapshots every board's damage count, bot last; used to diff
// who a shoot actually damaged.
func (g *Game) PlayersDamage() []int {
	counts := make([]int, 0, len(g.Players)+1)
	for _, p := range g.Players {
		counts = append(counts, p.Board.DamageCount())
	}
	if g.BotPresent {
		counts = append(counts, g.Bot.Board.DamageCount())
	}
	return counts
}

// FiguresAt lists every figure standing on pos.
func (g *Game) FiguresAt(pos Position) []*Figure {
	var figures []*Figure
	for _, p := range g.Players {
		if p.Position != nil && *p.Position == pos {
			figures = append(figures, &p.Figure)
		}
	}
	if g.BotPresent && g.Bot.Position != nil && *g.Bot.Position == pos {
		figures = append(figures, &g.Bot.Figure)
	}
	return figures
}

// FiguresInRoom lists every figure inside the room of the given color.
func (g *Game) FiguresInRoom(color RoomColor) []*Figure {
	var figures []*Figure
	for _, p := range g.Players {
		if p.Position != nil && g.Map.SquareAt(*p.Position).Room == color {
			figures = append(figures, &p.Figure)
		}
	}
	if g.BotPresent && g.Bot.Position != nil && g.Map.SquareAt(*g.Bot.Position).Room == color {
		figures = append(figures, &g.Bot.Figure)
	}
	return figures
}

// RemainingSkulls counts the unfilled killshot slots.
func (g *Game) RemainingSkulls() int {
	left := 0
	for i := 0; i < g.KillShotNum; i++ {
		if g.KillShotTrack[i] == nil {
			left++
		}
	}
	return left
}

// AddKillShot fills the next track slot; during the frenzy the track is done
// and kills land on the frenzy list instead.
func (g *Game) AddKillShot(ks KillShot) error {
	if g.State == GameFinalFrenzy {
		g.FrenzyKillShots = append(g.FrenzyKillShots, ks)
		return nil
	}
	for i := 0; i < g.KillShotNum; i++ {
		if g.KillShotTrack[i] == nil {
			g.KillShotTrack[i] = &ks
			return nil
		}
	}
	return ErrKillShotsTerminated
}

// DrawPowerup never fails while any powerup exists: an empty pile flushes the
// discards back in.
func (g *Game) DrawPowerup(rng *rand.Rand) PowerupCard {
	card, _ := g.PowerupDeck.Draw(rng)
	return card
}
