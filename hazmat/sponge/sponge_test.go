package sponge

import (
	"bytes"
	"testing"

	"golang.org/x/crypto/sha3"
)

// oneShotUnmasked absorbs msg into a LaneState that was never passed through
// Reset, so it starts from the plain all-zero Keccak state rather than this
// package's masked one. It exists only to cross-check the sponge's
// padding/absorb/squeeze mechanics against an external Keccak oracle,
// independent of the masking convention Reset applies.
func oneShotUnmasked(rate, digestSize int, msg []byte) []byte {
	var l LaneState
	for len(msg) >= rate {
		l.Absorb(msg[:rate])
		msg = msg[rate:]
	}
	l.AbsorbFinal(msg, rate)

	out := make([]byte, digestSize)
	l.Squeeze(out)
	return out
}

func TestUnmaskedSpongeMatchesKeccak256Oracle(t *testing.T) {
	for _, msg := range [][]byte{
		[]byte(""),
		[]byte("abc"),
		[]byte("the quick brown fox jumps over the lazy dog"),
		bytes.Repeat([]byte{0x61}, 135),
		bytes.Repeat([]byte{0x61}, 136),
		bytes.Repeat([]byte{0x61}, 137),
	} {
		want := sha3.NewLegacyKeccak256()
		want.Write(msg)
		wantSum := want.Sum(nil)

		got := oneShotUnmasked(136, 32, msg)
		if !bytes.Equal(got, wantSum) {
			t.Errorf("oneShotUnmasked(%q) = %x, want %x", msg, got, wantSum)
		}
	}
}

func TestUnmaskedSpongeMatchesKeccak512Oracle(t *testing.T) {
	for _, msg := range [][]byte{
		[]byte(""),
		[]byte("abc"),
		bytes.Repeat([]byte{0x61}, 71),
		bytes.Repeat([]byte{0x61}, 72),
		bytes.Repeat([]byte{0x61}, 73),
	} {
		want := sha3.NewLegacyKeccak512()
		want.Write(msg)
		wantSum := want.Sum(nil)

		got := oneShotUnmasked(72, 64, msg)
		if !bytes.Equal(got, wantSum) {
			t.Errorf("oneShotUnmasked(%q) = %x, want %x", msg, got, wantSum)
		}
	}
}

func TestMaskedResetChangesOutput(t *testing.T) {
	msg := []byte("abc")

	var masked LaneState
	masked.Reset()
	for len(msg) >= 136 {
		masked.Absorb(msg[:136])
		msg = msg[136:]
	}
	masked.AbsorbFinal(msg, 136)
	maskedOut := make([]byte, 32)
	masked.Squeeze(maskedOut)

	unmaskedOut := oneShotUnmasked(136, 32, []byte("abc"))

	if bytes.Equal(maskedOut, unmaskedOut) {
		t.Fatal("masked Reset produced the same output as the unmasked zero state; the initialization mask should change the digest")
	}
}

func TestSpongeDeterministic(t *testing.T) {
	msg := []byte("repeatable message")

	run := func() []byte {
		var l LaneState
		l.Reset()
		rem := msg
		for len(rem) >= 136 {
			l.Absorb(rem[:136])
			rem = rem[136:]
		}
		l.AbsorbFinal(rem, 136)
		out := make([]byte, 32)
		l.Squeeze(out)
		return out
	}

	a, b := run(), run()
	if !bytes.Equal(a, b) {
		t.Fatalf("sponge is not deterministic: %x != %x", a, b)
	}
}

func TestResetAppliesInitializationMask(t *testing.T) {
	var l LaneState
	l.Reset()

	for _, w := range maskedWords {
		off := 8 * w
		for i := off; i < off+8; i++ {
			if l.s[i] != 0xFF {
				t.Fatalf("word %d byte %d = %#x, want 0xff", w, i, l.s[i])
			}
		}
	}

	masked := make(map[int]bool, len(maskedWords))
	for _, w := range maskedWords {
		masked[w] = true
	}
	for w := 0; w < 25; w++ {
		if masked[w] {
			continue
		}
		off := 8 * w
		for i := off; i < off+8; i++ {
			if l.s[i] != 0 {
				t.Fatalf("word %d byte %d = %#x, want 0x00", w, i, l.s[i])
			}
		}
	}

	if l.BytesAbsorbed() != 0 {
		t.Fatalf("BytesAbsorbed() = %d, want 0", l.BytesAbsorbed())
	}
}

func TestAbsorbAdvancesByteCounter(t *testing.T) {
	var l LaneState
	l.Reset()

	block := make([]byte, 136)
	l.Absorb(block)
	if got := l.BytesAbsorbed(); got != 136 {
		t.Fatalf("BytesAbsorbed() after one block = %d, want 136", got)
	}

	l.AbsorbFinal(block[:10], 136)
	if got := l.BytesAbsorbed(); got != 146 {
		t.Fatalf("BytesAbsorbed() after final = %d, want 146", got)
	}
}

func TestAbsorbPersonalizationDoesNotCountAsMessageBytes(t *testing.T) {
	var l LaneState
	l.Reset()
	l.AbsorbPersonalization(make([]byte, 136))
	if got := l.BytesAbsorbed(); got != 0 {
		t.Fatalf("BytesAbsorbed() after personalization = %d, want 0", got)
	}
}
