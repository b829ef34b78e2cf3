package model

import "errors"

const (
	MaxWeapons  = 3
	MaxPowerups = 3
)

var (
	ErrMaxCardsInHand = errors.New("hand is full")
	ErrEmptyHand      = errors.New("no such card in hand")
)

// Figure is the state shared by user players and the bot.
//
// Points, State and Actions are transient at the persistence layer: they are
// reloaded from the NotTransientPlayer overlay, not from the game snapshot.
type Figure struct {
	Username    string       `json:"username" msgpack:"username"`
	Color       PlayerColor  `json:"color" msgpack:"color"`
	Position    *Position    `json:"position" msgpack:"position"`
	Board       *PlayerBoard `json:"board" msgpack:"board"`
	FirstPlayer bool         `json:"firstPlayer" msgpack:"firstPlayer"`

	Points  int         `json:"points" msgpack:"-"`
	State   PlayerState `json:"state" msgpack:"-"`
	Actions ActionSet   `json:"actions" msgpack:"-"`
}

func (f *Figure) AddPoints(n int) { f.Points += n }

// UserPlayer is a human-controlled figure with a hand of weapons and powerups.
type UserPlayer struct {
	Figure

	Weapons      []WeaponCard  `json:"weapons" msgpack:"weapons"`
	Powerups     []PowerupCard `json:"powerups" msgpack:"-"`
	SpawningCard *PowerupCard  `json:"spawningCard" msgpack:"-"`
}

func NewUserPlayer(username string, color PlayerColor) *UserPlayer {
	return &UserPlayer{
		Figure: Figure{
			Username: username,
			Color:    color,
			Board:    NewPlayerBoard(),
			State:    PlayerFirstSpawn,
			Actions:  NewActionSet(),
		},
		Weapons:  []WeaponCard{},
		Powerups: []PowerupCard{},
	}
}

func (p *UserPlayer) AddWeapon(w WeaponCard) error {
	if len(p.Weapons) >= MaxWeapons {
		return ErrMaxCardsInHand
	}
	p.Weapons = append(p.Weapons, w)
	return nil
}

// SwapWeapon replaces the weapon at index and returns the discarded one.
func (p *UserPlayer) SwapWeapon(index int, w WeaponCard) (WeaponCard, error) {
	if index < 0 || index >= len(p.Weapons) {
		return WeaponCard{}, ErrEmptyHand
	}
	old := p.Weapons[index]
	p.Weapons[index] = w
	return old, nil
}

func (p *UserPlayer) AddPowerup(c PowerupCard) error {
	if len(p.Powerups) >= MaxPowerups {
		return ErrMaxCardsInHand
	}
	p.Powerups = append(p.Powerups, c)
	return nil
}

func (p *UserPlayer) DiscardPowerup(index int) (PowerupCard, error) {
	if index < 0 || index >= len(p.Powerups) {
		return PowerupCard{}, ErrEmptyHand
	}
	c := p.Powerups[index]
	p.Powerups = append(p.Powerups[:index], p.Powerups[index+1:]...)
	return c, nil
}

// HasPowerup reports whether any powerup of the given name is held.
func (p *UserPlayer) HasPowerup(name string) bool {
	for _, c := range p.Powerups {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Bot is the rules-driven figure moved by the turn owner. Only its points are
// transient at the persistence layer.
type Bot struct {
	Figure
}

// BotName is the reserved username of the bot figure.
const BotName = "bot"

func NewBot(color PlayerColor) *Bot {
	return &Bot{
		Figure: Figure{
			Username: BotName,
			Color:    color,
			Board:    NewPlayerBoard(),
			State:    PlayerFirstSpawn,
			Actions:  NewActionSet(),
		},
	}
}
