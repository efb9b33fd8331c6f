package grid

// Direction enumerates the six neighbor directions of a cell.
type Direction uint8

const (
	XNeg Direction = iota
	XPos
	YNeg
	YPos
	ZNeg
	ZPos
)

var dirNames = [...]string{"x-", "x+", "y-", "y+", "z-", "z+"}

func (d Direction) String() string { return dirNames[d] }

// Axis reports which axis (0=x, 1=y, 2=z) the direction runs along.
func (d Direction) Axis() int { return int(d) / 2 }

// DirSet is a bitmask of directions.
type DirSet uint8

func (s DirSet) Has(d Direction) bool { return s&(1<<d) != 0 }

func (s DirSet) Count() int {
	n := 0
	for d := XNeg; d <= ZPos; d++ {
		if s.Has(d) {
			n++
		}
	}
	return n
}

func (s DirSet) Dirs() []Direction {
	out := make([]Direction, 0, 3)
	for d := XNeg; d <= ZPos; d++ {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// Class tags a cell by how many of its six neighbors fall outside the
// grid: 0 missing is interior, 1 face, 2 edge, 3 corner.
type Class uint8

const (
	Interior Class = iota
	Face
	Edge
	Corner
)

var classNames = [...]string{"interior", "face", "edge", "corner"}

func (c Class) String() string { return classNames[c] }

// Classify returns the class of cell (i,j,k) and the set of outward
// directions along which it touches the boundary. Pure function of the
// grid dimensions; a cell can be missing at most one neighbor per axis
// since every axis has at least 3 cells.
func (g Grid) Classify(i, j, k int) (Class, DirSet) {
	var missing DirSet
	if i == 0 {
		missing |= 1 << XNeg
	}
	if i == g.Nx-1 {
		missing |= 1 << XPos
	}
	if j == 0 {
		missing |= 1 << YNeg
	}
	if j == g.Ny-1 {
		missing |= 1 << YPos
	}
	if k == 0 {
		missing |= 1 << ZNeg
	}
	if k == g.Nz-1 {
		missing |= 1 << ZPos
	}
	return Class(missing.Count()), missing
}
