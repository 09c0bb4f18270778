package maze

// Cell is an integer (x, y) coordinate on the grid, 0-indexed from the
// top-left corner. It is a plain value; two cells are equal when their
// coordinates are equal.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Translate returns the cell one step away in the given direction.
func (c Cell) Translate(d Direction) Cell {
	dx, dy := d.Delta()
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// ManhattanTo returns the Manhattan distance between c and other.
func (c Cell) ManhattanTo(other Cell) int {
	return abs(c.X-other.X) + abs(c.Y-other.Y)
}

// IsAdjacent reports whether other is exactly one axis step away from c.
func (c Cell) IsAdjacent(other Cell) bool {
	return c.ManhattanTo(other) == 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Direction is one of the four axis moves. Each direction carries its
// coordinate delta; the zero value is Up.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions enumerates the four directions in the fixed order used for
// deterministic tie-breaking everywhere in this module.
var Directions = [4]Direction{Up, Down, Left, Right}

// Delta returns the (dx, dy) step of the direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// String returns the canonical name of the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	}
	return "UNKNOWN"
}

// ParseDirection maps a canonical direction name to its Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "UP":
		return Up, true
	case "DOWN":
		return Down, true
	case "LEFT":
		return Left, true
	case "RIGHT":
		return Right, true
	}
	return 0, false
}

// DirectionBetween returns the direction leading from one cell to an
// adjacent cell. The second return value is false when the cells are not
// exactly one axis step apart.
func DirectionBetween(from, to Cell) (Direction, bool) {
	for _, d := range Directions {
		if from.Translate(d) == to {
			return d, true
		}
	}
	return 0, false
}
