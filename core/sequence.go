package core

// SeqSize is the number of coil patterns in one cycle
const SeqSize = 8

// CoilSequence is an ordered half-step energization table.
// Each entry is a nibble; bit 0 drives coil A, bit 3 drives coil D.
type CoilSequence [SeqSize]uint8

// Direction selects which coil table a rotation uses
type Direction uint8

const (
	DirCW  Direction = 0 // Clockwise
	DirCCW Direction = 1 // Counter-clockwise
)

// Coil tables. Unexported so nothing can rewrite them at runtime;
// SequenceFor hands out copies.
var (
	seqCW  = CoilSequence{0x1, 0x3, 0x2, 0x6, 0x4, 0xc, 0x8, 0x9}
	seqCCW = CoilSequence{0x9, 0x8, 0xc, 0x4, 0x6, 0x2, 0x3, 0x1}
)

// SequenceFor returns the coil table for a direction
func SequenceFor(dir Direction) CoilSequence {
	if dir == DirCCW {
		return seqCCW
	}
	return seqCW
}

func (d Direction) String() string {
	switch d {
	case DirCW:
		return "CW"
	case DirCCW:
		return "CCW"
	default:
		return "UNKNOWN"
	}
}
