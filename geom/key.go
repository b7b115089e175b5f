package geom

import (
	"math"
	"math/big"
)

// Quantum is the grid that point keys snap to. Tile geometry is built from
// products of tile sizes and integer positions, so anything finer than this is
// arithmetic noise rather than a distinct vertex.
const Quantum = 1e-6

// keyScale is 1/Quantum, kept exact so integer coordinates round-trip.
const keyScale = 1e6

// Key identifies a point by its quantized coordinates. Two points that should
// be the same vertex get the same key even when their floats differ in the
// last bits.
type Key struct {
	X, Y int64
}

func KeyOf(p Point) Key {
	return Key{
		X: int64(math.Round(p.X * keyScale)),
		Y: int64(math.Round(p.Y * keyScale)),
	}
}

// Point returns the representative coordinate of the key.
func (k Key) Point() Point {
	return Point{X: float64(k.X) / keyScale, Y: float64(k.Y) / keyScale}
}

// Snap moves p onto the quantum grid. Snapped points that share a key are
// bitwise equal.
func Snap(p Point) Point {
	return KeyOf(p).Point()
}

// SameKey reports whether a and b quantize to the same vertex.
func SameKey(a, b Point) bool {
	return KeyOf(a) == KeyOf(b)
}

// Orient is the sign of Area(a, b, c) evaluated on the quantized coordinates:
// -1 for a convex counterclockwise turn, 1 for a reflex one and 0 when the
// keys are collinear. Points that sit on a common line in key space compare as
// collinear even when their floats do not.
func Orient(a, b, c Point) int {
	ka, kb, kc := KeyOf(a), KeyOf(b), KeyOf(c)
	return crossSign(kb.Y-ka.Y, kc.X-kb.X, kb.X-ka.X, kc.Y-kb.Y)
}

// crossSign is the sign of p*q - r*s, exact for any int64 inputs.
func crossSign(p, q, r, s int64) int {
	const small = 1 << 31
	if abs64(p) < small && abs64(q) < small && abs64(r) < small && abs64(s) < small {
		d := p*q - r*s
		switch {
		case d < 0:
			return -1
		case d > 0:
			return 1
		}
		return 0
	}
	var pq, rs big.Int
	pq.Mul(big.NewInt(p), big.NewInt(q))
	rs.Mul(big.NewInt(r), big.NewInt(s))
	return pq.Cmp(&rs)
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
