// Package treehash implements the tree-parallel composition layer that sits
// on top of a sponge.LaneState: striping a parallel block across FanOut
// lanes, a bounded fork/join worker group to absorb those stripes
// concurrently, and the root-lane fan-in that folds the lanes' individual
// digests into one. This is the tree-hash mode's entire job; the sponge
// mechanics themselves live in hazmat/sponge.
package treehash

import (
	"encoding/binary"

	"golang.org/x/sync/errgroup"

	"github.com/ardenhash/keccaktree/hazmat/sponge"
)

// Params is the fixed-layout personalization record absorbed as the first
// block by every lane in parallel mode. Its serialization is part of the
// digest output: two implementations that disagree on this layout will
// produce different parallel-mode digests for the same input and FanOut.
type Params struct {
	// OutputBits is the digest width in bits (256 or 512).
	OutputBits uint16
	// FanOut is the configured number of parallel lanes.
	FanOut uint8
	// LeafSize is an informational hint, in kibibytes, of the leaf stripe
	// size, capped at 255. It does not need to exactly reproduce the real
	// leaf size; it exists so changing the leaf size changes the output.
	LeafSize uint8
	// TreeDepth is 1 for the single leaves-then-root topology this engine
	// implements, 0 when personalization is unused (sequential mode).
	TreeDepth uint8
}

// Marshal serializes p into a rate-byte block: OutputBits (u16 LE) || FanOut
// (u8) || LeafSize (u8) || TreeDepth (u8), zero-padded to rate. rate must be
// at least 5.
func (p Params) Marshal(rate int) []byte {
	buf := make([]byte, rate)
	binary.LittleEndian.PutUint16(buf[0:2], p.OutputBits)
	buf[2] = p.FanOut
	buf[3] = p.LeafSize
	buf[4] = p.TreeDepth
	return buf
}

// LeafSizeHint reduces a byte count to the capped kibibyte hint Params
// stores.
func LeafSizeHint(bytes int) uint8 {
	kib := bytes / 1024
	if kib > 255 {
		return 255
	}
	if kib < 1 {
		return 1
	}
	return uint8(kib)
}

// ProcessBlock absorbs one complete parallel block of rate*k bytes per lane,
// where k = len(block)/(len(lanes)*rate). Lane i absorbs stripe i: the bytes
// in block[i*stripeLen : (i+1)*stripeLen]. If len(lanes) == 1, the entire
// block is absorbed sequentially into the single lane. Permutation and
// absorption are infallible, so no error is returned; this function is
// internal and always called with pre-validated sizes. Sizes are not
// checked: bytes of a stripe past its last full rate block are not absorbed.
func ProcessBlock(lanes []*sponge.LaneState, block []byte, rate int) {
	n := len(lanes)
	if n == 1 {
		absorbStripe(lanes[0], block, rate)
		return
	}

	stripeLen := len(block) / n
	g := new(errgroup.Group)
	for i := 0; i < n; i++ {
		lane := lanes[i]
		stripe := block[i*stripeLen : (i+1)*stripeLen]
		g.Go(func() error {
			absorbStripe(lane, stripe, rate)
			return nil
		})
	}
	_ = g.Wait()
}

func absorbStripe(lane *sponge.LaneState, stripe []byte, rate int) {
	for len(stripe) >= rate {
		lane.Absorb(stripe[:rate])
		stripe = stripe[rate:]
	}
}

// FinalizeLeaves pads and squeezes each lane against its share of the
// buffered tail message bytes, returning the concatenation of all lane
// digests in ascending lane order — the root lane's input. Lane i owns
// buf[i*l : (i+1)*l), where l = len(buf)/len(lanes); any remainder bytes go
// to the last lane.
func FinalizeLeaves(lanes []*sponge.LaneState, buf []byte, rate, digestSize int) []byte {
	n := len(lanes)
	l := len(buf) / n
	staging := make([]byte, n*digestSize)

	g := new(errgroup.Group)
	for i := 0; i < n; i++ {
		lane := lanes[i]
		start := i * l
		end := start + l
		if i == n-1 {
			end = len(buf)
		}
		segment := buf[start:end]
		dst := staging[i*digestSize : (i+1)*digestSize]
		g.Go(func() error {
			finalizeLeaf(lane, segment, rate, dst)
			return nil
		})
	}
	_ = g.Wait()

	return staging
}

func finalizeLeaf(lane *sponge.LaneState, segment []byte, rate int, dst []byte) {
	for len(segment) >= rate {
		lane.Absorb(segment[:rate])
		segment = segment[rate:]
	}
	lane.AbsorbFinal(segment, rate)
	lane.Squeeze(dst)
}

// FoldRoot absorbs the concatenated leaf digests into a fresh root lane —
// reset and, if params is non-nil, personalized exactly like a leaf lane —
// and squeezes the final digest into out.
func FoldRoot(params *Params, rate int, leafDigests []byte, out []byte) {
	var root sponge.LaneState
	root.Reset()
	if params != nil {
		root.AbsorbPersonalization(params.Marshal(rate))
	}

	rem := leafDigests
	for len(rem) >= rate {
		root.Absorb(rem[:rate])
		rem = rem[rate:]
	}
	root.AbsorbFinal(rem, rate)
	root.Squeeze(out)
}
