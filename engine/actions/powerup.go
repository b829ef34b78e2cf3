package actions

import (
	"fmt"

	"adrenaline/engine/model"
)

// NewtonAction pushes another player 1 or 2 squares along one axis.
type NewtonAction struct {
	Player *model.UserPlayer
	Target string
	Dest   model.Position
}

func (a *NewtonAction) Validate(g *model.Game) error {
	if a.Target == a.Player.Username || a.Target == model.BotName {
		return fmt.Errorf("%w: newton moves another player", ErrInvalidPowerupAction)
	}
	victim, err := g.UserPlayerByUsername(a.Target)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPowerupAction, a.Target)
	}
	if victim.Position == nil {
		return fmt.Errorf("%w: target not on the map", ErrInvalidPowerupAction)
	}

	from := *victim.Position
	if from.Row != a.Dest.Row && from.Col != a.Dest.Col {
		return fmt.Errorf("%w: newton moves along one axis", ErrInvalidPowerupAction)
	}
	dist := g.Map.Distance(from, a.Dest)
	if dist < 1 || dist > 2 {
		return fmt.Errorf("%w: newton moves 1 or 2 squares", ErrInvalidPowerupAction)
	}
	return nil
}

func (a *NewtonAction) Execute(g *model.Game) error {
	victim, err := g.UserPlayerByUsername(a.Target)
	if err != nil {
		return err
	}
	victim.Position = &model.Position{Row: a.Dest.Row, Col: a.Dest.Col}
	return nil
}

// TeleporterAction moves the user anywhere on the map.
type TeleporterAction struct {
	Player *model.UserPlayer
	Dest   model.Position
}

func (a *TeleporterAction) Validate(g *model.Game) error {
	if g.Map.SquareAt(a.Dest) == nil {
		return fmt.Errorf("%w: no square at %s", ErrInvalidPowerupAction, a.Dest)
	}
	return nil
}

func (a *TeleporterAction) Execute(g *model.Game) error {
	a.Player.Position = &model.Position{Row: a.Dest.Row, Col: a.Dest.Col}
	return nil
}

// GrenadeAction marks the player who just damaged the user. The round
// manager picks the victim (turn owner or bot) and runs the reactive queue.
type GrenadeAction struct {
	User   *model.UserPlayer
	Victim *model.Figure
}

func (a *GrenadeAction) Validate(g *model.Game) error {
	if a.Victim == nil {
		return fmt.Errorf("%w: no one to mark", ErrInvalidPowerupAction)
	}
	return nil
}

func (a *GrenadeAction) Execute(g *model.Game) error {
	a.Victim.Board.AddMark(a.User.Username, 1)
	return nil
}

// ScopeAction adds one damage from the shooter to one previously damaged
// target, paid with one ammo cube of any color or one payment powerup. A
// payment powerup is only checked here; the round manager discards it
// together with the scopes so hand indexes stay valid across multiple uses.
type ScopeAction struct {
	Shooter *model.UserPlayer
	Target  *model.Figure

	AmmoColor      model.Ammo
	PaymentPowerup int // -1 when paying with ammo
}

func (a *ScopeAction) Validate(g *model.Game) error {
	if a.Target == nil {
		return fmt.Errorf("%w: no scope target", ErrInvalidPowerupAction)
	}
	if a.PaymentPowerup >= 0 {
		if a.PaymentPowerup >= len(a.Shooter.Powerups) {
			return fmt.Errorf("%w: bad payment powerup", ErrInvalidPowerupAction)
		}
		return nil
	}
	if a.Shooter.Board.Ammo.Count(a.AmmoColor) == 0 {
		return fmt.Errorf("%w: %s", ErrNotEnoughAmmo, a.AmmoColor)
	}
	return nil
}

func (a *ScopeAction) Execute(g *model.Game) error {
	if a.PaymentPowerup < 0 && !a.Shooter.Board.Ammo.Spend(a.AmmoColor) {
		return ErrNotEnoughAmmo
	}
	a.Target.Board.AddDamage(a.Shooter.Username, 1)
	return nil
}
