package model

// Square is one cell of the map. Tile squares hold at most one ammo tile,
// spawn squares hold up to three weapons for sale.
type Square struct {
	Type  SquareType      `json:"type" msgpack:"type"`
	Room  RoomColor       `json:"room" msgpack:"room"`
	North SquareAdjacency `json:"north" msgpack:"north"`
	East  SquareAdjacency `json:"east" msgpack:"east"`
	South SquareAdjacency `json:"south" msgpack:"south"`
	West  SquareAdjacency `json:"west" msgpack:"west"`

	AmmoTile *AmmoTile    `json:"ammoTile,omitempty" msgpack:"ammoTile"`
	Weapons  []WeaponCard `json:"weapons,omitempty" msgpack:"weapons"`
}

// adjacency returns the side facing the given neighbour delta.
func (s *Square) adjacency(dRow, dCol int) SquareAdjacency {
	switch {
	case dRow == -1:
		return s.North
	case dRow == 1:
		return s.South
	case dCol == -1:
		return s.West
	case dCol == 1:
		return s.East
	}
	return AdjacencyNone
}

// Passable reports whether a figure can step across this side.
func Passable(a SquareAdjacency) bool {
	return a == AdjacencyDoor || a == AdjacencySquare
}

// RemoveWeapon takes the weapon at index off a spawn square.
func (s *Square) RemoveWeapon(index int) (WeaponCard, bool) {
	if index < 0 || index >= len(s.Weapons) {
		return WeaponCard{}, false
	}
	w := s.Weapons[index]
	s.Weapons = append(s.Weapons[:index], s.Weapons[index+1:]...)
	return w, true
}
