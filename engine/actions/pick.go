package actions

import (
	"fmt"
	"math/rand"

	"adrenaline/engine/model"
)

// PickAction moves the player within its kind's budget and picks up whatever
// the target square offers: the ammo tile of a tile square, or a weapon
// bought off a spawn square.
type PickAction struct {
	Player *model.UserPlayer
	Kind   model.PossibleAction
	Target model.Position

	// spawn square purchases
	WeaponIndex     int // index into the square's weapons, -1 for none
	DiscardWeapon   int // hand index handed back when the hand is full, -1 for none
	PaymentPowerups []int

	// Rng draws the powerup granted by an ammo tile.
	Rng *rand.Rand
}

func (a *PickAction) Validate(g *model.Game) error {
	switch a.Kind {
	case model.ActionMoveAndPick, model.ActionAdrenalinePick, model.ActionFrenzyPick, model.ActionLightFrenzyPick:
	default:
		return fmt.Errorf("%w: %s is not a pick kind", ErrInvalidAction, a.Kind)
	}
	if !withinBudget(g, a.Player.Position, a.Target, a.Kind) {
		return fmt.Errorf("%w: target out of reach", ErrInvalidAction)
	}

	sq := g.Map.SquareAt(a.Target)
	if sq.Type == model.SquareTile {
		if sq.AmmoTile == nil {
			return fmt.Errorf("%w: nothing to pick on %s", ErrInvalidAction, a.Target)
		}
		return nil
	}
	return a.validateWeaponBuy(sq)
}

func (a *PickAction) validateWeaponBuy(sq *model.Square) error {
	if a.WeaponIndex < 0 || a.WeaponIndex >= len(sq.Weapons) {
		return fmt.Errorf("%w: no weapon at index %d", ErrInvalidAction, a.WeaponIndex)
	}
	weapon := sq.Weapons[a.WeaponIndex]

	if len(a.Player.Weapons) >= model.MaxWeapons {
		if a.DiscardWeapon < 0 || a.DiscardWeapon >= len(a.Player.Weapons) {
			return fmt.Errorf("%w: hand full, discard required", ErrInvalidAction)
		}
	}

	pay := payment{player: a.Player, cost: weapon.GrabCost, paymentPowerups: a.PaymentPowerups}
	return pay.check()
}

func (a *PickAction) Execute(g *model.Game) error {
	a.Player.Position = &model.Position{Row: a.Target.Row, Col: a.Target.Col}
	sq := g.Map.SquareAt(a.Target)

	if sq.Type == model.SquareTile {
		tile := *sq.AmmoTile
		sq.AmmoTile = nil
		g.AmmoTileDeck.Discard(tile)

		for _, color := range tile.Ammo {
			a.Player.Board.Ammo.Add(color)
		}
		if tile.Powerup && len(a.Player.Powerups) < model.MaxPowerups {
			a.Player.AddPowerup(g.DrawPowerup(a.Rng))
		}
		return nil
	}

	weapon, _ := sq.RemoveWeapon(a.WeaponIndex)
	pay := payment{player: a.Player, cost: weapon.GrabCost, paymentPowerups: a.PaymentPowerups}
	pay.spend(g)

	weapon.State = model.WeaponCharged
	if len(a.Player.Weapons) >= model.MaxWeapons {
		old, err := a.Player.SwapWeapon(a.DiscardWeapon, weapon)
		if err != nil {
			return err
		}
		// the traded weapon goes back on the square, uncharged
		old.State = model.WeaponUncharged
		sq.Weapons = append(sq.Weapons, old)
		return nil
	}
	return a.Player.AddWeapon(weapon)
}
