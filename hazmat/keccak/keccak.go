// Package keccak implements the Keccak-f[1600] permutation: the full 24-round
// permutation from the original Keccak submission, not the round-reduced
// Keccak-p[1600,12] variant used by TurboSHAKE/KangarooTwelve-family
// constructions.
package keccak

import "github.com/klauspost/cpuid/v2"

// Lanes is the number of permutation lanes the host CPU can plausibly evaluate
// in parallel, based on detected vector-instruction support. It is advisory: no
// code path in this package batches permutations by SIMD width, so Lanes never
// changes the permutation's output. Callers that want to size a worker pool
// from it may.
var Lanes = 1

// SimdDetected reports whether the host CPU exposes vector extensions that a
// SIMD-accelerated Keccak implementation could exploit (AVX2/AVX-512 or SSE2 on
// amd64, SHA3 on arm64). It is informational only: this package's permutation is
// pure Go and its output never depends on SimdDetected.
var SimdDetected bool

func init() {
	switch {
	case cpuid.CPU.Has(cpuid.AVX512F) && cpuid.CPU.Has(cpuid.AVX512VL):
		SimdDetected = true
		Lanes = 4
	case cpuid.CPU.Has(cpuid.AVX2):
		SimdDetected = true
		Lanes = 4
	case cpuid.CPU.Has(cpuid.SHA3):
		SimdDetected = true
		Lanes = 2
	case cpuid.CPU.Has(cpuid.SSE2):
		SimdDetected = true
		Lanes = 2
	}
}

// rounds is the number of Keccak-f[1600] rounds. 24, the full permutation —
// this is not the 12-round Keccak-p[1600,12] reduced permutation.
const rounds = 24

// roundConstants are the standard Keccak-f[1600] round constants RC[0..23].
var roundConstants = [rounds]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808A, 0x8000000080008000,
	0x000000000000808B, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008A, 0x0000000000000088, 0x0000000080008009, 0x000000008000000A,
	0x000000008000808B, 0x800000000000008B, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800A, 0x800000008000000A,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// rhoOffsets are the standard Keccak ρ-step rotation offsets, indexed by lane
// position in the same [5][5] (x, y) layout as the state words below.
var rhoOffsets = [5][5]uint{
	{0, 36, 3, 41, 18},
	{1, 44, 10, 45, 2},
	{62, 6, 43, 15, 61},
	{28, 55, 25, 21, 56},
	{27, 20, 39, 8, 14},
}

// P1600 applies the Keccak-f[1600] permutation to state in place. state is the
// canonical byte serialization of the 25 64-bit lanes, each stored
// little-endian, in row-major (x, y) order: word (x, y) occupies bytes
// [8*(5*y+x) : 8*(5*y+x)+8].
func P1600(state *[200]byte) {
	var a [5][5]uint64
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			off := 8 * (5*y + x)
			a[x][y] = le64(state[off : off+8])
		}
	}

	permute(&a)

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			off := 8 * (5*y + x)
			putLE64(state[off:off+8], a[x][y])
		}
	}
}

// permute runs the 24-round Keccak-f[1600] step mapping over a, indexed a[x][y].
func permute(a *[5][5]uint64) {
	for round := 0; round < rounds; round++ {
		theta(a)
		rhoPi(a)
		chi(a)
		iota(a, round)
	}
}

// theta XORs each lane with the parity of the two neighboring columns, each
// rotated by one bit.
func theta(a *[5][5]uint64) {
	var c [5]uint64
	for x := 0; x < 5; x++ {
		c[x] = a[x][0] ^ a[x][1] ^ a[x][2] ^ a[x][3] ^ a[x][4]
	}

	var d [5]uint64
	for x := 0; x < 5; x++ {
		d[x] = c[(x+4)%5] ^ rotl64(c[(x+1)%5], 1)
	}

	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			a[x][y] ^= d[x]
		}
	}
}

// rhoPi applies ρ (per-lane rotation) and π (lane permutation) in one pass,
// writing into a fresh array since π moves every lane.
func rhoPi(a *[5][5]uint64) {
	var b [5][5]uint64
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			nx, ny := y, (2*x+3*y)%5
			b[nx][ny] = rotl64(a[x][y], rhoOffsets[x][y])
		}
	}
	*a = b
}

// chi applies the nonlinear row mapping a[x] ^= (^a[x+1]) & a[x+2].
func chi(a *[5][5]uint64) {
	var b [5][5]uint64
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			b[x][y] = a[x][y] ^ (^a[(x+1)%5][y] & a[(x+2)%5][y])
		}
	}
	*a = b
}

// iota XORs the round constant into lane (0, 0).
func iota(a *[5][5]uint64, round int) {
	a[0][0] ^= roundConstants[round]
}

func rotl64(x uint64, n uint) uint64 {
	if n == 0 {
		return x
	}
	return x<<n | x>>(64-n)
}

func le64(b []byte) uint64 {
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}

func putLE64(b []byte, x uint64) {
	b[0] = byte(x)
	b[1] = byte(x >> 8)
	b[2] = byte(x >> 16)
	b[3] = byte(x >> 24)
	b[4] = byte(x >> 32)
	b[5] = byte(x >> 40)
	b[6] = byte(x >> 48)
	b[7] = byte(x >> 56)
}
