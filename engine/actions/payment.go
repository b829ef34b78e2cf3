package actions

import (
	"fmt"
	"sort"

	"adrenaline/engine/model"
)

// payment resolves a cost against a player's ammo box plus powerups spent as
// cubes of their color. Validation and execution are split so actions stay
// pure until Execute.
type payment struct {
	player          *model.UserPlayer
	cost            []model.Ammo
	paymentPowerups []int
}

// check verifies indexes and coverage without touching the player.
func (pay payment) check() error {
	due := map[model.Ammo]int{}
	for _, c := range pay.cost {
		due[c]++
	}

	seen := map[int]bool{}
	for _, idx := range pay.paymentPowerups {
		if idx < 0 || idx >= len(pay.player.Powerups) || seen[idx] {
			return fmt.Errorf("%w: bad payment powerup index %d", ErrInvalidAction, idx)
		}
		seen[idx] = true
		color := pay.player.Powerups[idx].Color
		if due[color] == 0 {
			return fmt.Errorf("%w: powerup %d pays no due color", ErrInvalidAction, idx)
		}
		due[color]--
	}

	box := pay.player.Board.Ammo
	for color, n := range due {
		if box.Count(color) < n {
			return fmt.Errorf("%w: missing %s", ErrNotEnoughAmmo, color)
		}
	}
	return nil
}

// spend applies the payment: powerups go to the deck discards, the remainder
// comes out of the ammo box. Callers must have run check first.
func (pay payment) spend(g *model.Game) {
	due := map[model.Ammo]int{}
	for _, c := range pay.cost {
		due[c]++
	}

	// discard back to front so indexes stay stable
	idxs := append([]int(nil), pay.paymentPowerups...)
	sort.Sort(sort.Reverse(sort.IntSlice(idxs)))
	for _, idx := range idxs {
		card, _ := pay.player.DiscardPowerup(idx)
		g.PowerupDeck.Discard(card)
		due[card.Color]--
	}

	for color, n := range due {
		for i := 0; i < n; i++ {
			pay.player.Board.Ammo.Spend(color)
		}
	}
}
