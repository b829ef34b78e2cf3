package engine

import (
	"adrenaline/engine/actions"
	"adrenaline/engine/model"
)

// TurnManager keeps the ordered ring of players and the auxiliary pointers
// used by reactive sub-turns. Players are referenced by username so identity
// survives snapshots and reconnections.
type TurnManager struct {
	game *model.Game

	OwnerIndex int    `json:"ownerIndex" msgpack:"ownerIndex"`
	SubOwner   string `json:"subOwner" msgpack:"subOwner"`
	FirstTurn  bool   `json:"firstTurn" msgpack:"firstTurn"`

	LastPlayer      string `json:"lastPlayer" msgpack:"lastPlayer"`
	FrenzyActivator string `json:"frenzyActivator" msgpack:"frenzyActivator"`

	DamagedPlayers       []string `json:"damagedPlayers" msgpack:"damagedPlayers"`
	GrenadePossibleUsers []string `json:"grenadePossibleUsers" msgpack:"grenadePossibleUsers"`
	MarkedByGrenade      string   `json:"markedByGrenade" msgpack:"markedByGrenade"`
	MarkingBot           bool     `json:"markingBot" msgpack:"markingBot"`

	ArrivingState PossibleGameState `json:"arrivingState" msgpack:"arrivingState"`
	SubCounter    int               `json:"subCounter" msgpack:"subCounter"`
	DeathPlayers  []string          `json:"deathPlayers" msgpack:"deathPlayers"`
	SecondAction  bool              `json:"secondAction" msgpack:"secondAction"`
}

func NewTurnManager(g *model.Game) *TurnManager {
	return &TurnManager{game: g, FirstTurn: true}
}

// Bind reattaches the game after a snapshot reload.
func (tm *TurnManager) Bind(g *model.Game) { tm.game = g }

// Owner is the player whose round it is: the ring owner, or the sub-turn
// owner while a reactive sub-turn is in flight.
func (tm *TurnManager) Owner() *model.UserPlayer {
	if tm.SubOwner != "" {
		if p, err := tm.game.UserPlayerByUsername(tm.SubOwner); err == nil {
			return p
		}
	}
	return tm.game.Players[tm.OwnerIndex]
}

// RingOwner ignores any active sub-turn.
func (tm *TurnManager) RingOwner() *model.UserPlayer {
	return tm.game.Players[tm.OwnerIndex]
}

// NextTurn advances the ring, clearing any sub-turn rebinding.
func (tm *TurnManager) NextTurn() {
	tm.SubOwner = ""
	tm.OwnerIndex = (tm.OwnerIndex + 1) % len(tm.game.Players)
	tm.SecondAction = false
}

// EndOfRound reports whether the ring just wrapped back to the first player.
func (tm *TurnManager) EndOfRound() bool {
	return tm.game.Players[tm.OwnerIndex].FirstPlayer
}

// GiveTurn temporarily rebinds the owner without advancing the ring.
func (tm *TurnManager) GiveTurn(username string) {
	if username == tm.RingOwner().Username {
		tm.SubOwner = ""
		return
	}
	tm.SubOwner = username
}

func (tm *TurnManager) ResetCount()    { tm.SubCounter = 0 }
func (tm *TurnManager) IncreaseCount() { tm.SubCounter++ }

// SetDamagedPlayers records who the last shoot or bot action hurt and
// derives the grenade queue: damaged players holding a tagback grenade,
// excluding the turn owner and the bot.
func (tm *TurnManager) SetDamagedPlayers(usernames []string) {
	tm.DamagedPlayers = usernames
	tm.GrenadePossibleUsers = nil
	owner := tm.RingOwner().Username
	for _, username := range usernames {
		if username == owner || username == model.BotName {
			continue
		}
		p, err := tm.game.UserPlayerByUsername(username)
		if err != nil {
			continue
		}
		if p.HasPowerup(model.PowerupTagbackGrenade) {
			tm.GrenadePossibleUsers = append(tm.GrenadePossibleUsers, username)
		}
	}
}

// SetFrenzyActivator remembers who will be the terminal player when the
// frenzy arms during this pass.
func (tm *TurnManager) SetFrenzyActivator() {
	if tm.FrenzyActivator == "" {
		tm.FrenzyActivator = tm.RingOwner().Username
	}
}

// SetLastPlayer marks the frenzy activator as the terminal player of the
// frenzy ring: the game ends when their frenzy turn is over.
func (tm *TurnManager) SetLastPlayer() {
	if tm.FrenzyActivator == "" {
		tm.FrenzyActivator = tm.RingOwner().Username
	}
	tm.LastPlayer = tm.FrenzyActivator
}

// SetFrenzyPlayers flips every clean board, downgrades uncharged weapons to
// semi-charged and hands out the frenzy action sets. Players between the
// activator and the first player act before the first player's frenzy turn
// and get the two-action set; the rest get the single-action set.
func (tm *TurnManager) SetFrenzyPlayers() {
	for _, p := range tm.game.Players {
		p.Board.Flip()
		for i := range p.Weapons {
			if p.Weapons[i].State == model.WeaponUncharged {
				p.Weapons[i].State = model.WeaponSemiCharged
			}
		}
	}
	if tm.game.BotPresent {
		tm.game.Bot.Board.Flip()
	}

	beforeFirst := true
	n := len(tm.game.Players)
	for off := 1; off <= n; off++ {
		p := tm.game.Players[(tm.OwnerIndex+off)%n]
		if p.FirstPlayer {
			beforeFirst = false
		}
		actions.SetFrenzyActions(p, beforeFirst)
	}
}
