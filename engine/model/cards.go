package model

// TargetKind says what a weapon effect aims at.
type TargetKind string

const (
	TargetPlayers TargetKind = "PLAYERS"
	TargetSquare  TargetKind = "SQUARE"
	TargetRoom    TargetKind = "ROOM"
)

// Visibility constrains a target relative to the shooter's square. Visible
// means same room or a room reachable through one of the square's doors.
type Visibility string

const (
	VisibleTarget Visibility = "VISIBLE"
	HiddenTarget  Visibility = "HIDDEN"
	AnyTarget     Visibility = "ANY"
)

// TargetSpec is the declarative targeting constraint of one weapon effect.
// Distances of -1 are unbounded.
type TargetSpec struct {
	Kind            TargetKind `json:"kind" msgpack:"kind"`
	MaxTargets      int        `json:"maxTargets" msgpack:"maxTargets"`
	MinDistance     int        `json:"minDistance" msgpack:"minDistance"`
	MaxDistance     int        `json:"maxDistance" msgpack:"maxDistance"`
	Visibility      Visibility `json:"visibility" msgpack:"visibility"`
	DistinctSquares bool       `json:"distinctSquares,omitempty" msgpack:"distinctSquares"`
}

// Effect is one staged effect of a weapon: a cost, a targeting constraint and
// a damage/mark payload applied per target in declared order. A single
// evaluator in the actions package interprets these; weapons carry no code.
type Effect struct {
	Description string     `json:"description,omitempty" msgpack:"description"`
	Cost        []Ammo     `json:"cost" msgpack:"cost"`
	Damage      []int      `json:"damage" msgpack:"damage"`
	Marks       []int      `json:"marks" msgpack:"marks"`
	Target      TargetSpec `json:"target" msgpack:"target"`
}

// DamageFor returns the damage dealt to the i-th target; payloads shorter
// than the target count repeat their last entry.
func (e *Effect) DamageFor(i int) int { return payloadAt(e.Damage, i) }

func (e *Effect) MarksFor(i int) int { return payloadAt(e.Marks, i) }

func payloadAt(payload []int, i int) int {
	if len(payload) == 0 {
		return 0
	}
	if i >= len(payload) {
		return payload[len(payload)-1]
	}
	return payload[i]
}

// WeaponCard is a weapon in a player's hand or on a spawn square. Grabbing a
// charged weapon costs GrabCost (the base cost minus one cube of the weapon's
// own color, already netted out in the catalog); recharging costs ReloadCost.
type WeaponCard struct {
	ID         string      `json:"id" msgpack:"id"`
	Name       string      `json:"name" msgpack:"name"`
	Color      Ammo        `json:"color" msgpack:"color"`
	GrabCost   []Ammo      `json:"grabCost" msgpack:"grabCost"`
	ReloadCost []Ammo      `json:"reloadCost" msgpack:"reloadCost"`
	Base       Effect      `json:"base" msgpack:"base"`
	Secondary  []Effect    `json:"secondary" msgpack:"secondary"`
	State      WeaponState `json:"state" msgpack:"state"`
}

// EffectAt returns effect 0 (base) or 1..len(Secondary) and false when the
// index is out of range.
func (w *WeaponCard) EffectAt(index int) (*Effect, bool) {
	if index == 0 {
		return &w.Base, true
	}
	if index < 0 || index > len(w.Secondary) {
		return nil, false
	}
	return &w.Secondary[index-1], true
}

// Rechargeable reports whether a reload would change the weapon's state.
func (w *WeaponCard) Rechargeable() bool {
	return w.State == WeaponUncharged || w.State == WeaponSemiCharged
}

// PowerupCard is one of the four powerup kinds; its color doubles as an ammo
// cube when paid and selects the spawn room when discarded at spawn.
type PowerupCard struct {
	Name  string `json:"name" msgpack:"name"`
	Color Ammo   `json:"color" msgpack:"color"`
}

// AmmoTile is a one-shot pickup granting three tokens: three cubes, or two
// cubes plus a powerup draw.
type AmmoTile struct {
	Ammo    []Ammo `json:"ammo" msgpack:"ammo"`
	Powerup bool   `json:"powerup" msgpack:"powerup"`
}
