package actions

import (
	"fmt"

	"adrenaline/engine/model"
)

// MoveAction walks the player to a reachable square within the budget of its
// action kind.
type MoveAction struct {
	Player *model.UserPlayer
	Target model.Position
	Kind   model.PossibleAction
}

func (a *MoveAction) Validate(g *model.Game) error {
	if a.Kind != model.ActionMove && a.Kind != model.ActionFrenzyMove {
		return fmt.Errorf("%w: %s is not a move kind", ErrInvalidAction, a.Kind)
	}
	if a.Player.Position != nil && *a.Player.Position == a.Target {
		return fmt.Errorf("%w: already there", ErrInvalidAction)
	}
	if !withinBudget(g, a.Player.Position, a.Target, a.Kind) {
		return fmt.Errorf("%w: target out of reach", ErrInvalidAction)
	}
	return nil
}

func (a *MoveAction) Execute(g *model.Game) error {
	a.Player.Position = &model.Position{Row: a.Target.Row, Col: a.Target.Col}
	return nil
}
