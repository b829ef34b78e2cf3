package model

// Board limits. The 11th damage entry is the killshot, the 12th the overkill;
// nothing past 12 is ever recorded.
const (
	MaxDamage         = 12
	DeathThreshold    = 10
	MaxMarksPerDealer = 3
	MaxAmmoPerColor   = 3
)

// AmmoBox is the per-color ammo a player owns, each bounded at 3.
type AmmoBox struct {
	Red    int `json:"red" msgpack:"red"`
	Blue   int `json:"blue" msgpack:"blue"`
	Yellow int `json:"yellow" msgpack:"yellow"`
}

func (b *AmmoBox) Count(color Ammo) int {
	switch color {
	case AmmoRed:
		return b.Red
	case AmmoBlue:
		return b.Blue
	case AmmoYellow:
		return b.Yellow
	}
	return 0
}

// Add grants one cube of the color, clamped at the per-color bound.
func (b *AmmoBox) Add(color Ammo) {
	switch color {
	case AmmoRed:
		if b.Red < MaxAmmoPerColor {
			b.Red++
		}
	case AmmoBlue:
		if b.Blue < MaxAmmoPerColor {
			b.Blue++
		}
	case AmmoYellow:
		if b.Yellow < MaxAmmoPerColor {
			b.Yellow++
		}
	}
}

// Spend removes one cube; it reports false when none is available.
func (b *AmmoBox) Spend(color Ammo) bool {
	switch color {
	case AmmoRed:
		if b.Red > 0 {
			b.Red--
			return true
		}
	case AmmoBlue:
		if b.Blue > 0 {
			b.Blue--
			return true
		}
	case AmmoYellow:
		if b.Yellow > 0 {
			b.Yellow--
			return true
		}
	}
	return false
}

// PlayerBoard records the hits a player has taken. Damage and mark tokens are
// dealer usernames so identity survives reconnections.
type PlayerBoard struct {
	Damages []string `json:"damages" msgpack:"damages"`
	Marks   []string `json:"marks" msgpack:"marks"`
	Ammo    AmmoBox  `json:"ammo" msgpack:"ammo"`
	Skulls  int      `json:"skulls" msgpack:"skulls"`
	Flipped bool     `json:"flipped" msgpack:"flipped"`
}

func NewPlayerBoard() *PlayerBoard {
	return &PlayerBoard{
		Damages: []string{},
		Marks:   []string{},
		// starting loadout is one cube per color
		Ammo: AmmoBox{Red: 1, Blue: 1, Yellow: 1},
	}
}

func (pb *PlayerBoard) DamageCount() int { return len(pb.Damages) }

func (pb *PlayerBoard) MarkCount(dealer string) int {
	count := 0
	for _, m := range pb.Marks {
		if m == dealer {
			count++
		}
	}
	return count
}

// AddDamage applies n damage from dealer. The dealer's marks on this board
// convert to damage first, then the new damage lands; the list never grows
// past MaxDamage.
func (pb *PlayerBoard) AddDamage(dealer string, n int) {
	if n <= 0 {
		return
	}

	kept := pb.Marks[:0]
	for _, m := range pb.Marks {
		if m == dealer && len(pb.Damages) < MaxDamage {
			pb.Damages = append(pb.Damages, dealer)
		} else if m != dealer {
			kept = append(kept, m)
		}
	}
	pb.Marks = kept

	for i := 0; i < n && len(pb.Damages) < MaxDamage; i++ {
		pb.Damages = append(pb.Damages, dealer)
	}
}

// AddMark adds n marks from dealer, collapsing at 3 per dealer.
func (pb *PlayerBoard) AddMark(dealer string, n int) {
	for i := 0; i < n; i++ {
		if pb.MarkCount(dealer) >= MaxMarksPerDealer {
			return
		}
		pb.Marks = append(pb.Marks, dealer)
	}
}

// IsDead reports whether the board crossed the killshot threshold.
func (pb *PlayerBoard) IsDead() bool { return len(pb.Damages) > DeathThreshold }

// Killer returns the dealer of the killshot entry and whether an overkill
// entry follows it. Meaningful only on a dead board.
func (pb *PlayerBoard) Killer() (string, bool) {
	if !pb.IsDead() {
		return "", false
	}
	return pb.Damages[DeathThreshold], len(pb.Damages) > DeathThreshold+1
}

// FirstBlood returns the dealer of the first damage entry.
func (pb *PlayerBoard) FirstBlood() string {
	if len(pb.Damages) == 0 {
		return ""
	}
	return pb.Damages[0]
}

// Reset clears damage after a death, adding a skull. Marks stay.
func (pb *PlayerBoard) Reset() {
	pb.Damages = []string{}
	pb.Skulls++
}

// Flip switches a clean board to the frenzy scoring track.
func (pb *PlayerBoard) Flip() {
	if len(pb.Damages) == 0 {
		pb.Flipped = true
		pb.Skulls = 0
	}
}

// DamageOrder lists dealers by total damage dealt, strongest first; ties are
// broken by who dealt damage earliest.
func (pb *PlayerBoard) DamageOrder() []string {
	counts := map[string]int{}
	firstIdx := map[string]int{}
	order := []string{}
	for i, d := range pb.Damages {
		if counts[d] == 0 {
			firstIdx[d] = i
			order = append(order, d)
		}
		counts[d]++
	}

	for i := 1; i < len(order); i++ {
		for j := i; j > 0; j-- {
			a, b := order[j-1], order[j]
			if counts[b] > counts[a] || (counts[b] == counts[a] && firstIdx[b] < firstIdx[a]) {
				order[j-1], order[j] = b, a
			}
		}
	}
	return order
}
