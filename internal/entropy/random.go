// Package entropy provides the deterministic random streams that drive map generation.
// Every consumer receives a Source explicitly; nothing here is global state.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"strconv"

	mrand "math/rand/v2"
)

// Source yields uniformly distributed floats in [0, 1).
// A single Source is consumed sequentially by mesh sampling, noise sub-seed
// derivation, mountain clustering and river growth, in that order.
type Source interface {
	Float64() float64
}

// Func adapts a plain function to a Source.
type Func func() float64

// Float64 calls f.
func (f Func) Float64() float64 { return f() }

// Alea is the Alea generator (Baagøe) seeded from a string, the same stream
// the map UI has always seeded with the decimal seed.
type Alea struct {
	s0, s1, s2 float64
	c          float64
}

const twoPow32Inv = 2.3283064365386963e-10 // 2^-32

// NewAlea seeds an Alea stream from the decimal representation of seed.
func NewAlea(seed int64) *Alea {
	return NewAleaString(strconv.FormatInt(seed, 10))
}

// NewAleaString seeds an Alea stream from an arbitrary string.
func NewAleaString(seed string) *Alea {
	m := newMash()
	a := &Alea{c: 1}
	a.s0 = m.sum(" ")
	a.s1 = m.sum(" ")
	a.s2 = m.sum(" ")

	a.s0 -= m.sum(seed)
	if a.s0 < 0 {
		a.s0++
	}
	a.s1 -= m.sum(seed)
	if a.s1 < 0 {
		a.s1++
	}
	a.s2 -= m.sum(seed)
	if a.s2 < 0 {
		a.s2++
	}
	return a
}

// Float64 returns the next value of the stream in [0, 1).
func (a *Alea) Float64() float64 {
	t := 2091639*a.s0 + a.c*twoPow32Inv
	a.s0 = a.s1
	a.s1 = a.s2
	// t is always in [0, 2091640), so the int32 truncation matches t|0.
	a.c = float64(int32(t))
	a.s2 = t - a.c
	return a.s2
}

// mash is the string hash used to derive Alea's initial state.
type mash struct {
	n float64
}

func newMash() *mash {
	return &mash{n: 0xefc8249d}
}

func (m *mash) sum(data string) float64 {
	for _, r := range data {
		m.n += float64(r)
		h := 0.02519603282416938 * m.n
		m.n = float64(toUint32(h))
		h -= m.n
		h *= m.n
		m.n = float64(toUint32(h))
		h -= m.n
		m.n += h * 0x100000000
	}
	return float64(toUint32(m.n)) * twoPow32Inv
}

// toUint32 reduces a non-negative float modulo 2^32 after truncation.
func toUint32(f float64) uint32 {
	return uint32(uint64(f))
}

// PCG wraps a math/rand/v2 PCG generator as a Source.
type PCG struct {
	r *mrand.Rand
}

// NewPCG creates a deterministic PCG-backed source.
func NewPCG(seed int64) *PCG {
	return &PCG{r: mrand.New(mrand.NewPCG(uint64(seed), 0))}
}

// Float64 returns the next value in [0, 1).
func (p *PCG) Float64() float64 {
	return p.r.Float64()
}

// Intn maps the next draw of src onto [0, n). n must be positive.
func Intn(src Source, n int) int {
	i := int(src.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// RandomSeed returns a non-zero seed drawn from crypto/rand.
// Used when a configuration asks for seed 0.
func RandomSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// This should never happen; fall back to a fixed seed.
		return 1
	}
	// Keep seeds in a range where seed*1e7 stays exact in a float64.
	seed := int64(binary.LittleEndian.Uint64(buf[:]) % 1_000_000)
	if seed == 0 {
		seed = 1
	}
	return seed
}
