// Package sponge implements the per-lane Keccak sponge state used by both the
// sequential and tree-parallel digest engines: absorb full rate blocks,
// absorb-and-pad a final partial block using the round-3 Keccak domain byte
// (0x01, not FIPS-202 SHA-3's 0x06), and squeeze output.
package sponge

import (
	"github.com/ardenhash/keccaktree/hazmat/keccak"
	"github.com/ardenhash/keccaktree/internal/mem"
)

// DomainByte is the Keccak round-3 submission's padding domain separator.
// FIPS-202 SHA-3 uses 0x06; this engine targets the earlier Keccak spec and
// therefore uses 0x01.
const DomainByte = 0x01

// maskedWords are the state-word indices forced to all-ones by Reset. This is
// the tree-hashing bit-inversion convention this engine preserves from its
// source material: ordinary Keccak starts from an all-zero state, but this
// engine's Reset leaves these six words inverted. It is part of the
// observable digest output, not an implementation detail.
var maskedWords = [6]int{1, 2, 8, 12, 17, 20}

// LaneState is one sponge lane: the 25-word Keccak-f[1600] state (stored as
// its canonical 200-byte serialization) plus a running count of message bytes
// absorbed since the last Reset.
type LaneState struct {
	s [200]byte
	t uint64
}

// Reset zeroes the lane and applies the initialization mask: words at indices
// {1, 2, 8, 12, 17, 20} become all-ones, the rest all-zero. The byte counter
// is cleared.
func (l *LaneState) Reset() {
	clear(l.s[:])
	for _, w := range maskedWords {
		off := 8 * w
		for i := off; i < off+8; i++ {
			l.s[i] = 0xFF
		}
	}
	l.t = 0
}

// BytesAbsorbed returns the number of message bytes absorbed via Absorb and
// AbsorbFinal since the last Reset. Personalization blocks absorbed via
// AbsorbPersonalization do not count.
func (l *LaneState) BytesAbsorbed() uint64 {
	return l.t
}

// AbsorbPersonalization XORs a full rate-byte personalization block into the
// state and permutes, without advancing the message-byte counter. len(block)
// must equal the caller's chosen rate.
func (l *LaneState) AbsorbPersonalization(block []byte) {
	l.absorb(block)
}

// Absorb XORs a full rate-byte message block into the state and permutes.
// len(block) must equal the caller's chosen rate.
func (l *LaneState) Absorb(block []byte) {
	l.absorb(block)
	l.t += uint64(len(block))
}

func (l *LaneState) absorb(block []byte) {
	mem.XORInPlace(l.s[:len(block)], block)
	keccak.P1600(&l.s)
}

// AbsorbFinal pads tail (the final, possibly-empty partial block, with
// len(tail) < rate) per the round-3 Keccak convention — append DomainByte,
// zero-fill to rate-1, XOR 0x80 into the last byte of the block — and
// permutes.
func (l *LaneState) AbsorbFinal(tail []byte, rate int) {
	mem.XORInPlace(l.s[:len(tail)], tail)
	l.s[len(tail)] ^= DomainByte
	l.s[rate-1] ^= 0x80
	keccak.P1600(&l.s)
	l.t += uint64(len(tail))
}

// Squeeze copies the first len(out) bytes of the state, in little-endian lane
// order, into out.
func (l *LaneState) Squeeze(out []byte) {
	copy(out, l.s[:len(out)])
}
