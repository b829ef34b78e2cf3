package actions

import "adrenaline/engine/model"

// Adrenaline thresholds: damage taken upgrades the pick at 3 and the shoot
// at 6.
const (
	adrenalinePickDamage  = 3
	adrenalineShootDamage = 6
)

// SetStartingActions gives a freshly spawning player their first-turn set.
func SetStartingActions(p *model.UserPlayer, botPresent bool) {
	set := model.NewActionSet(model.ActionChooseSpawn, model.ActionMove, model.ActionMoveAndPick, model.ActionShoot)
	if botPresent {
		set.Add(model.ActionBot)
	}
	p.Actions = set
}

// SetPossibleActions recomputes a playing player's normal-mode set from the
// damage on their board.
func SetPossibleActions(p *model.UserPlayer, botPresent bool) {
	set := model.NewActionSet(model.ActionMove, model.ActionShoot)

	if p.Board.DamageCount() >= adrenalinePickDamage {
		set.Add(model.ActionAdrenalinePick)
	} else {
		set.Add(model.ActionMoveAndPick)
	}
	if p.Board.DamageCount() >= adrenalineShootDamage {
		set.Add(model.ActionAdrenalineShoot)
	}
	if botPresent {
		set.Add(model.ActionBot)
	}
	p.Actions = set
}

// SetFrenzyActions gives a player their final-frenzy set. Players taking
// their frenzy turn before the first player get the two-action set; the
// first player and those after get the single stronger one.
func SetFrenzyActions(p *model.UserPlayer, beforeFirst bool) {
	if beforeFirst {
		p.Actions = model.NewActionSet(model.ActionFrenzyMove, model.ActionFrenzyPick, model.ActionFrenzyShoot)
		return
	}
	p.Actions = model.NewActionSet(model.ActionLightFrenzyPick, model.ActionLightFrenzyShoot)
}

// HasSingleActionSet reports whether the player's set spends the whole turn
// in one action (the light frenzy set).
func HasSingleActionSet(p *model.UserPlayer) bool {
	return p.Actions.Has(model.ActionLightFrenzyPick) || p.Actions.Has(model.ActionLightFrenzyShoot)
}

// Precedence tables order variants of the same verb; stronger kinds win.
var shootPrecedence = []model.PossibleAction{
	model.ActionAdrenalineShoot, model.ActionFrenzyShoot, model.ActionLightFrenzyShoot, model.ActionShoot,
}

var pickPrecedence = []model.PossibleAction{
	model.ActionAdrenalinePick, model.ActionFrenzyPick, model.ActionLightFrenzyPick, model.ActionMoveAndPick,
}

var movePrecedence = []model.PossibleAction{
	model.ActionFrenzyMove, model.ActionMove,
}

func pickKind(set model.ActionSet, precedence []model.PossibleAction) (model.PossibleAction, bool) {
	for _, kind := range precedence {
		if set.Has(kind) {
			return kind, true
		}
	}
	return "", false
}

// MoveKind selects the move variant the player may use right now.
func MoveKind(p *model.UserPlayer) (model.PossibleAction, bool) {
	return pickKind(p.Actions, movePrecedence)
}

func PickKind(p *model.UserPlayer) (model.PossibleAction, bool) {
	return pickKind(p.Actions, pickPrecedence)
}

func ShootKind(p *model.UserPlayer) (model.PossibleAction, bool) {
	return pickKind(p.Actions, shootPrecedence)
}
