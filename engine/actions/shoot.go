package actions

import (
	"fmt"

	"adrenaline/engine/model"
)

// ShootRequest carries the targeting details of one shot, interpreted against
// the chosen effect's TargetSpec.
type ShootRequest struct {
	WeaponIndex int
	EffectIndex int

	TargetPlayers  []string
	TargetPosition *model.Position
	TargetRoom     model.RoomColor

	// move leg before firing, for adrenaline/frenzy kinds
	MovePosition *model.Position

	// frenzy shots may fold a reload of these hand weapons into the action
	ReloadWeapons   []int
	PaymentPowerups []int
}

// ShootAction fires one effect of a hand weapon. A single evaluator applies
// the effect's declarative targeting constraints and its damage/mark payload
// in declared order; weapons have no behavior of their own.
type ShootAction struct {
	Shooter *model.UserPlayer
	Kind    model.PossibleAction
	Request ShootRequest
}

func (a *ShootAction) Validate(g *model.Game) error {
	switch a.Kind {
	case model.ActionShoot, model.ActionAdrenalineShoot, model.ActionFrenzyShoot, model.ActionLightFrenzyShoot:
	default:
		return fmt.Errorf("%w: %s is not a shoot kind", ErrInvalidAction, a.Kind)
	}

	if a.Request.WeaponIndex < 0 || a.Request.WeaponIndex >= len(a.Shooter.Weapons) {
		return fmt.Errorf("%w: no weapon at index %d", ErrInvalidAction, a.Request.WeaponIndex)
	}
	weapon := &a.Shooter.Weapons[a.Request.WeaponIndex]

	if err := a.validateCharge(weapon); err != nil {
		return err
	}

	effect, ok := weapon.EffectAt(a.Request.EffectIndex)
	if !ok {
		return fmt.Errorf("%w: weapon has no effect %d", ErrInvalidAction, a.Request.EffectIndex)
	}

	from := a.Shooter.Position
	if a.Request.MovePosition != nil {
		if !withinBudget(g, from, *a.Request.MovePosition, a.Kind) {
			return fmt.Errorf("%w: move leg out of reach", ErrInvalidAction)
		}
		from = a.Request.MovePosition
	}

	cost := a.effectCost(effect, weapon)
	pay := payment{player: a.Shooter, cost: cost, paymentPowerups: a.Request.PaymentPowerups}
	if err := pay.check(); err != nil {
		return err
	}

	return a.validateTargets(g, effect, *from)
}

// validateCharge enforces the weapon state rules: normally a shot needs a
// charged weapon; frenzy kinds accept a rechargeable one when the request
// reloads it as part of the action.
func (a *ShootAction) validateCharge(weapon *model.WeaponCard) error {
	if weapon.State == model.WeaponCharged {
		for _, idx := range a.Request.ReloadWeapons {
			if idx == a.Request.WeaponIndex {
				return fmt.Errorf("%w: %s", ErrWeaponAlreadyCharged, weapon.Name)
			}
		}
		return nil
	}
	if !allowsReloadBeforeShoot(a.Kind) {
		return fmt.Errorf("%w: %s", ErrWeaponNotCharged, weapon.Name)
	}
	for _, idx := range a.Request.ReloadWeapons {
		if idx == a.Request.WeaponIndex {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrWeaponNotCharged, weapon.Name)
}

// effectCost sums what this shot costs: the chosen secondary effect's cost
// plus the reload costs folded into a frenzy shot.
func (a *ShootAction) effectCost(effect *model.Effect, weapon *model.WeaponCard) []model.Ammo {
	cost := append([]model.Ammo(nil), effect.Cost...)
	if allowsReloadBeforeShoot(a.Kind) {
		for _, idx := range a.Request.ReloadWeapons {
			if idx >= 0 && idx < len(a.Shooter.Weapons) && a.Shooter.Weapons[idx].Rechargeable() {
				cost = append(cost, a.Shooter.Weapons[idx].ReloadCost...)
			}
		}
	}
	return cost
}

func (a *ShootAction) validateTargets(g *model.Game, effect *model.Effect, from model.Position) error {
	spec := effect.Target
	switch spec.Kind {
	case model.TargetPlayers:
		return a.validatePlayerTargets(g, spec, from)

	case model.TargetSquare:
		if a.Request.TargetPosition == nil {
			return fmt.Errorf("%w: missing target square", ErrInvalidAction)
		}
		return checkSpot(g, spec, from, *a.Request.TargetPosition)

	case model.TargetRoom:
		if a.Request.TargetRoom == "" {
			return fmt.Errorf("%w: missing target room", ErrInvalidAction)
		}
		room := g.Map.Room(a.Request.TargetRoom)
		if len(room) == 0 {
			return fmt.Errorf("%w: no such room", ErrInvalidAction)
		}
		if g.Map.SquareAt(from).Room == a.Request.TargetRoom {
			return fmt.Errorf("%w: cannot target own room", ErrInvalidAction)
		}
		for _, pos := range room {
			if g.Map.Visible(from, pos) {
				return nil
			}
		}
		return fmt.Errorf("%w: room not visible", ErrInvalidAction)
	}
	return fmt.Errorf("%w: unknown target kind", ErrInvalidAction)
}

func (a *ShootAction) validatePlayerTargets(g *model.Game, spec model.TargetSpec, from model.Position) error {
	targets := a.Request.TargetPlayers
	if len(targets) == 0 || len(targets) > spec.MaxTargets {
		return fmt.Errorf("%w: wrong number of targets", ErrInvalidAction)
	}

	seen := map[string]bool{}
	squares := map[model.Position]bool{}
	for _, username := range targets {
		if username == a.Shooter.Username || seen[username] {
			return fmt.Errorf("%w: bad target %s", ErrInvalidAction, username)
		}
		seen[username] = true

		figure, err := g.PlayerByUsername(username)
		if err != nil || figure.Position == nil {
			return fmt.Errorf("%w: target %s not on the map", ErrInvalidAction, username)
		}
		if err := checkSpot(g, spec, from, *figure.Position); err != nil {
			return err
		}
		if spec.DistinctSquares && squares[*figure.Position] {
			return fmt.Errorf("%w: targets share a square", ErrInvalidAction)
		}
		squares[*figure.Position] = true
	}
	return nil
}

// checkSpot applies the distance and visibility constraints to one position.
func checkSpot(g *model.Game, spec model.TargetSpec, from, at model.Position) error {
	dist := g.Map.Distance(from, at)
	if dist < 0 || dist < spec.MinDistance {
		return fmt.Errorf("%w: target too close", ErrInvalidAction)
	}
	if spec.MaxDistance >= 0 && dist > spec.MaxDistance {
		return fmt.Errorf("%w: target out of range", ErrInvalidAction)
	}
	switch spec.Visibility {
	case model.VisibleTarget:
		if !g.Map.Visible(from, at) {
			return fmt.Errorf("%w: target not visible", ErrInvalidAction)
		}
	case model.HiddenTarget:
		if g.Map.Visible(from, at) {
			return fmt.Errorf("%w: target is visible", ErrInvalidAction)
		}
	}
	return nil
}

func (a *ShootAction) Execute(g *model.Game) error {
	weapon := &a.Shooter.Weapons[a.Request.WeaponIndex]
	effect, _ := weapon.EffectAt(a.Request.EffectIndex)

	if a.Request.MovePosition != nil {
		a.Shooter.Position = &model.Position{Row: a.Request.MovePosition.Row, Col: a.Request.MovePosition.Col}
	}

	if allowsReloadBeforeShoot(a.Kind) {
		for _, idx := range a.Request.ReloadWeapons {
			if idx >= 0 && idx < len(a.Shooter.Weapons) {
				a.Shooter.Weapons[idx].State = model.WeaponCharged
			}
		}
	}

	cost := a.effectCost(effect, weapon)
	pay := payment{player: a.Shooter, cost: cost, paymentPowerups: a.Request.PaymentPowerups}
	pay.spend(g)

	for i, figure := range a.resolveTargets(g) {
		figure.Board.AddDamage(a.Shooter.Username, effect.DamageFor(i))
		figure.Board.AddMark(a.Shooter.Username, effect.MarksFor(i))
	}

	weapon.State = model.WeaponUncharged
	return nil
}

// resolveTargets expands the request into concrete figures, in declared
// order; square and room effects hit everyone there except the shooter.
func (a *ShootAction) resolveTargets(g *model.Game) []*model.Figure {
	weapon := &a.Shooter.Weapons[a.Request.WeaponIndex]
	effect, _ := weapon.EffectAt(a.Request.EffectIndex)

	var figures []*model.Figure
	switch effect.Target.Kind {
	case model.TargetPlayers:
		for _, username := range a.Request.TargetPlayers {
			if figure, err := g.PlayerByUsername(username); err == nil {
				figures = append(figures, figure)
			}
		}
	case model.TargetSquare:
		for _, figure := range g.FiguresAt(*a.Request.TargetPosition) {
			if figure.Username != a.Shooter.Username {
				figures = append(figures, figure)
			}
		}
	case model.TargetRoom:
		for _, figure := range g.FiguresInRoom(a.Request.TargetRoom) {
			if figure.Username != a.Shooter.Username {
				figures = append(figures, figure)
			}
		}
	}
	return figures
}
