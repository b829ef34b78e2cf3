package actions

import (
	"fmt"

	"adrenaline/engine/model"
)

// Damage profile of the bot's attack.
const (
	botDamage = 1
	botMarks  = 1
)

// BotAction is the turn owner moving the bot up to one square and optionally
// having it attack a visible player.
type BotAction struct {
	Owner  *model.UserPlayer
	Target string // empty for a plain move
	Dest   model.Position
}

func (a *BotAction) Validate(g *model.Game) error {
	if !g.BotPresent || g.Bot.Position == nil {
		return fmt.Errorf("%w: bot not on the map", ErrInvalidAction)
	}
	if !withinBudget(g, g.Bot.Position, a.Dest, model.ActionBot) {
		return fmt.Errorf("%w: bot moves one square", ErrInvalidAction)
	}
	if a.Target == "" {
		return nil
	}

	target, err := g.UserPlayerByUsername(a.Target)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAction, a.Target)
	}
	if target.Position == nil || !g.Map.Visible(a.Dest, *target.Position) {
		return fmt.Errorf("%w: target not visible from there", ErrInvalidAction)
	}
	return nil
}

func (a *BotAction) Execute(g *model.Game) error {
	g.Bot.Position = &model.Position{Row: a.Dest.Row, Col: a.Dest.Col}
	if a.Target == "" {
		return nil
	}
	target, err := g.UserPlayerByUsername(a.Target)
	if err != nil {
		return err
	}
	target.Board.AddDamage(model.BotName, botDamage)
	target.Board.AddMark(model.BotName, botMarks)
	return nil
}
