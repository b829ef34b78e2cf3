// Package actions holds the typed action descriptors of the rules engine.
// Every action validates against the game state without mutating it, then
// executes its mutation; the round manager never touches the world directly.
package actions

import (
	"errors"

	"adrenaline/engine/model"
)

var (
	ErrInvalidAction        = errors.New("invalid action")
	ErrInvalidPowerupAction = errors.New("invalid powerup action")
	ErrNotEnoughAmmo        = errors.New("not enough ammo")
	ErrWeaponAlreadyCharged = errors.New("weapon already charged")
	ErrWeaponNotCharged     = errors.New("weapon not charged")
)

// Action is a single validated mutation of the game state. Validate must be
// pure: no field of the game may change before Execute.
type Action interface {
	Validate(g *model.Game) error
	Execute(g *model.Game) error
}

// MoveBudgets is the table of step budgets per action kind. Shoot budgets are
// the optional move leg allowed before firing.
var MoveBudgets = map[model.PossibleAction]int{
	model.ActionMove:             3,
	model.ActionMoveAndPick:      1,
	model.ActionAdrenalinePick:   2,
	model.ActionShoot:            0,
	model.ActionAdrenalineShoot:  1,
	model.ActionFrenzyMove:       4,
	model.ActionFrenzyPick:       2,
	model.ActionFrenzyShoot:      1,
	model.ActionLightFrenzyPick:  3,
	model.ActionLightFrenzyShoot: 2,
	model.ActionBot:              1,
}

// frenzyShootKinds may fold a reload into the shoot itself.
func allowsReloadBeforeShoot(kind model.PossibleAction) bool {
	return kind == model.ActionFrenzyShoot || kind == model.ActionLightFrenzyShoot
}

// withinBudget reports whether the move leg of kind reaches target from the
// player's position.
func withinBudget(g *model.Game, from *model.Position, target model.Position, kind model.PossibleAction) bool {
	if from == nil {
		return false
	}
	dist := g.Map.Distance(*from, target)
	return dist >= 0 && dist <= MoveBudgets[kind]
}
