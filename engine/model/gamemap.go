package model

import (
	"errors"
	"fmt"
)

const (
	MapRows = 3
	MapCols = 4
)

var ErrInvalidSpawnColor = errors.New("no spawn square of that color")

// GameMap is the 3x4 grid of optional squares, one of four preset layouts.
type GameMap struct {
	ID      int                       `json:"id" msgpack:"id"`
	Squares [MapRows][MapCols]*Square `json:"squares" msgpack:"squares"`
}

// SquareAt returns the square at pos, nil for holes and off-grid positions.
func (m *GameMap) SquareAt(pos Position) *Square {
	if pos.Row < 0 || pos.Row >= MapRows || pos.Col < 0 || pos.Col >= MapCols {
		return nil
	}
	return m.Squares[pos.Row][pos.Col]
}

// SpawnSquare returns the position of the spawn square of the given color.
func (m *GameMap) SpawnSquare(color RoomColor) (Position, error) {
	for row := 0; row < MapRows; row++ {
		for col := 0; col < MapCols; col++ {
			sq := m.Squares[row][col]
			if sq != nil && sq.Type == SquareSpawn && sq.Room == color {
				return Position{Row: row, Col: col}, nil
			}
		}
	}
	return Position{}, fmt.Errorf("%w: %s", ErrInvalidSpawnColor, color)
}

// Room lists the positions of every square of the given room color.
func (m *GameMap) Room(color RoomColor) []Position {
	var room []Position
	for row := 0; row < MapRows; row++ {
		for col := 0; col < MapCols; col++ {
			sq := m.Squares[row][col]
			if sq != nil && sq.Room == color {
				room = append(room, Position{Row: row, Col: col})
			}
		}
	}
	return room
}

var steps = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Distance is the length of the shortest legal walk between two squares,
// honoring walls and holes; -1 when unreachable.
func (m *GameMap) Distance(from, to Position) int {
	if m.SquareAt(from) == nil || m.SquareAt(to) == nil {
		return -1
	}
	if from == to {
		return 0
	}

	type node struct {
		pos  Position
		dist int
	}
	visited := map[Position]bool{from: true}
	queue := []node{{from, 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		sq := m.SquareAt(cur.pos)

		for _, s := range steps {
			if !Passable(sq.adjacency(s[0], s[1])) {
				continue
			}
			next := Position{Row: cur.pos.Row + s[0], Col: cur.pos.Col + s[1]}
			if visited[next] || m.SquareAt(next) == nil {
				continue
			}
			if next == to {
				return cur.dist + 1
			}
			visited[next] = true
			queue = append(queue, node{next, cur.dist + 1})
		}
	}
	return -1
}

// Visible reports whether target can be seen from pos: same room, or in a
// room facing one of pos's doors.
func (m *GameMap) Visible(pos, target Position) bool {
	from := m.SquareAt(pos)
	at := m.SquareAt(target)
	if from == nil || at == nil {
		return false
	}
	if from.Room == at.Room {
		return true
	}
	for _, s := range steps {
		if from.adjacency(s[0], s[1]) != AdjacencyDoor {
			continue
		}
		next := m.SquareAt(Position{Row: pos.Row + s[0], Col: pos.Col + s[1]})
		if next != nil && next.Room == at.Room {
			return true
		}
	}
	return false
}
