package actions

import (
	"fmt"

	"adrenaline/engine/model"
)

// ReloadAction recharges one or more hand weapons, paying their reload costs
// with ammo and payment powerups.
type ReloadAction struct {
	Player          *model.UserPlayer
	Weapons         []int
	PaymentPowerups []int
}

func (a *ReloadAction) Validate(g *model.Game) error {
	if len(a.Weapons) == 0 {
		return fmt.Errorf("%w: nothing to reload", ErrInvalidAction)
	}

	var cost []model.Ammo
	seen := map[int]bool{}
	for _, idx := range a.Weapons {
		if idx < 0 || idx >= len(a.Player.Weapons) || seen[idx] {
			return fmt.Errorf("%w: bad weapon index %d", ErrInvalidAction, idx)
		}
		seen[idx] = true

		weapon := &a.Player.Weapons[idx]
		if !weapon.Rechargeable() {
			return fmt.Errorf("%w: %s", ErrWeaponAlreadyCharged, weapon.Name)
		}
		cost = append(cost, weapon.ReloadCost...)
	}

	pay := payment{player: a.Player, cost: cost, paymentPowerups: a.PaymentPowerups}
	return pay.check()
}

func (a *ReloadAction) Execute(g *model.Game) error {
	var cost []model.Ammo
	for _, idx := range a.Weapons {
		cost = append(cost, a.Player.Weapons[idx].ReloadCost...)
		a.Player.Weapons[idx].State = model.WeaponCharged
	}

	pay := payment{player: a.Player, cost: cost, paymentPowerups: a.PaymentPowerups}
	pay.spend(g)
	return nil
}
