// Package keccaktree implements the Keccak-256 and Keccak-512 message
// digests (the round-3 Keccak submission's domain padding, not FIPS-202
// SHA-3's) with an optional tree-parallel hashing mode: the input is striped
// across a configurable number of lanes, each lane sponges its stripe
// independently, and the lane digests are folded into a single output by a
// root lane. Changing the lane count deterministically changes the digest —
// the tree configuration is part of the personalization.
package keccaktree

import (
	"runtime"

	"github.com/ardenhash/keccaktree/hazmat/sponge"
	"github.com/ardenhash/keccaktree/hazmat/treehash"
)

// Digest is the capability set exposed by every algorithm/mode combination
// this package produces. A single Digest may be reused across any number of
// Update/Finalize or Compute cycles; Finalize implicitly resets the instance.
type Digest interface {
	// Name returns a human-readable algorithm name, e.g. "Keccak-256".
	Name() string
	// Enumeral returns the algorithm tag.
	Enumeral() Tag
	// BlockSize returns the sponge rate in bytes.
	BlockSize() int
	// DigestSize returns the output size in bytes.
	DigestSize() int
	// IsParallel reports whether this instance hashes in tree-parallel mode.
	IsParallel() bool
	// ParallelBlockSize returns the number of bytes consumed per fork/join
	// step in parallel mode (and equals BlockSize in sequential mode).
	ParallelBlockSize() int
	// ParallelProfile returns a live view of the tree-parallel configuration.
	ParallelProfile() *ParallelOptions

	// UpdateByte absorbs a single byte.
	UpdateByte(b byte) error
	// Update absorbs p in its entirety.
	Update(p []byte) error
	// UpdateAt absorbs buf[off : off+length], failing with ShortBuffer if
	// that range falls outside buf.
	UpdateAt(buf []byte, off, length int) error
	// Compute is Update(in) followed by Finalize(out, 0).
	Compute(in, out []byte) (int, error)
	// Finalize pads and squeezes the digest into out[outOffset:], returning
	// the number of bytes written (always DigestSize on success), then
	// resets the instance. The output length is checked before any state is
	// mutated, so a ShortBuffer failure leaves the instance usable.
	Finalize(out []byte, outOffset int) (int, error)

	// ParallelMaxDegree reconfigures FanOut, validates it, recomputes
	// ParallelBlockSize, and reinitializes state (as Reset would).
	ParallelMaxDegree(n int) error
	// Reset returns the instance to its freshly-constructed state.
	Reset()
	// Destroy zeroizes all lane state, the accumulation buffer, and
	// counters. Afterward Update, UpdateByte, UpdateAt, Compute, Finalize
	// and ParallelMaxDegree fail with InvalidState; methods that return no
	// error do not check for destruction.
	Destroy()
	// Clone returns an independent copy of the instance's current state.
	// Further Update/Finalize calls on either copy leave the other
	// unaffected, so callers can peek at a running digest with Clone
	// followed by Finalize without disturbing the original.
	Clone() Digest
}

type instance struct {
	tag        Tag
	rate       int
	digestSize int

	profile ParallelOptions
	params  *KeccakParams // nil in sequential mode

	lanes     []sponge.LaneState
	lanePtrs  []*sponge.LaneState
	buf       []byte
	msgLength int

	destroyed bool
}

func newSequential(tag Tag, rate, digestSize int) *instance {
	d := &instance{
		tag:        tag,
		rate:       rate,
		digestSize: digestSize,
		profile:    newSequentialProfile(rate),
	}
	d.lanes = make([]sponge.LaneState, 1)
	d.buf = make([]byte, d.profile.ParallelBlockSize())
	d.syncLanePtrs()
	d.Reset()
	return d
}

func newParallel(tag Tag, rate, digestSize, fanOut int) (*instance, error) {
	profile, err := newParallelProfile(rate, fanOut)
	if err != nil {
		return nil, err
	}
	params, err := NewKeccakParams(digestSize*8, clampFanOutByte(fanOut), treehash.LeafSizeHint(profile.blockSize/fanOut), 1)
	if err != nil {
		return nil, err
	}
	d := &instance{
		tag:        tag,
		rate:       rate,
		digestSize: digestSize,
		profile:    profile,
		params:     &params,
	}
	d.lanes = make([]sponge.LaneState, fanOut)
	d.buf = make([]byte, profile.ParallelBlockSize())
	d.syncLanePtrs()
	d.Reset()
	return d, nil
}

func newParallelWithParams(tag Tag, rate, digestSize int, params KeccakParams) (*instance, error) {
	fanOut := int(params.FanOut)
	profile, err := newParallelProfile(rate, fanOut)
	if err != nil {
		return nil, err
	}
	d := &instance{
		tag:        tag,
		rate:       rate,
		digestSize: digestSize,
		profile:    profile,
		params:     &params,
	}
	d.lanes = make([]sponge.LaneState, fanOut)
	d.buf = make([]byte, profile.ParallelBlockSize())
	d.syncLanePtrs()
	d.Reset()
	return d, nil
}

func (d *instance) syncLanePtrs() {
	d.lanePtrs = make([]*sponge.LaneState, len(d.lanes))
	for i := range d.lanes {
		d.lanePtrs[i] = &d.lanes[i]
	}
}

func (d *instance) Name() string {
	switch d.tag {
	case Keccak256:
		return "Keccak-256"
	case Keccak512:
		return "Keccak-512"
	default:
		return "unknown"
	}
}

func (d *instance) Enumeral() Tag                      { return d.tag }
func (d *instance) BlockSize() int                     { return d.rate }
func (d *instance) DigestSize() int                    { return d.digestSize }
func (d *instance) IsParallel() bool                   { return d.profile.IsParallel() }
func (d *instance) ParallelBlockSize() int              { return d.profile.ParallelBlockSize() }
func (d *instance) ParallelProfile() *ParallelOptions  { return &d.profile }

func (d *instance) checkAlive(op string) error {
	if d.destroyed {
		return newError(InvalidState, op, "instance has been destroyed")
	}
	return nil
}

// Reset returns every lane to the initialization-masked zero state and, in
// parallel mode, re-absorbs the personalization block into each lane before
// any message bytes arrive.
func (d *instance) Reset() {
	for i := range d.lanes {
		d.lanes[i].Reset()
		if d.profile.IsParallel() {
			d.lanes[i].AbsorbPersonalization(d.params.toTreeParams().Marshal(d.rate))
		}
	}
	d.msgLength = 0
}

func (d *instance) Destroy() {
	for i := range d.lanes {
		d.lanes[i] = sponge.LaneState{}
	}
	clear(d.buf)
	d.msgLength = 0
	d.destroyed = true
}

func (d *instance) UpdateByte(b byte) error {
	return d.Update([]byte{b})
}

func (d *instance) Update(p []byte) error {
	if err := d.checkAlive("Update"); err != nil {
		return err
	}

	blockSize := d.profile.ParallelBlockSize()
	for len(p) > 0 {
		space := blockSize - d.msgLength
		if len(p) < space {
			d.msgLength += copy(d.buf[d.msgLength:], p)
			return nil
		}
		copy(d.buf[d.msgLength:blockSize], p[:space])
		p = p[space:]
		d.processBlock()
		d.msgLength = 0
	}
	return nil
}

func (d *instance) UpdateAt(buf []byte, off, length int) error {
	if off < 0 || length < 0 || off+length > len(buf) {
		return newError(ShortBuffer, "Update", "offset/length exceed input buffer")
	}
	return d.Update(buf[off : off+length])
}

func (d *instance) processBlock() {
	block := d.buf[:d.profile.ParallelBlockSize()]
	treehash.ProcessBlock(d.lanePtrs, block, d.rate)
}

func (d *instance) Finalize(out []byte, outOffset int) (int, error) {
	if err := d.checkAlive("Finalize"); err != nil {
		return 0, err
	}
	if outOffset < 0 || len(out)-outOffset < d.digestSize {
		return 0, newError(ShortBuffer, "Finalize", "output slice too small at offset")
	}

	dst := out[outOffset : outOffset+d.digestSize]
	if !d.profile.IsParallel() {
		lane := &d.lanes[0]
		rem := d.buf[:d.msgLength]
		for len(rem) >= d.rate {
			lane.Absorb(rem[:d.rate])
			rem = rem[d.rate:]
		}
		lane.AbsorbFinal(rem, d.rate)
		lane.Squeeze(dst)
	} else {
		staging := treehash.FinalizeLeaves(d.lanePtrs, d.buf[:d.msgLength], d.rate, d.digestSize)
		tp := d.params.toTreeParams()
		treehash.FoldRoot(&tp, d.rate, staging, dst)
	}

	d.Reset()
	return d.digestSize, nil
}

func (d *instance) Compute(in, out []byte) (int, error) {
	if err := d.checkAlive("Compute"); err != nil {
		return 0, err
	}
	if err := d.Update(in); err != nil {
		return 0, err
	}
	return d.Finalize(out, 0)
}

// ParallelMaxDegree validates n (even, positive, at most the detected core
// count), updates FanOut, recomputes ParallelBlockSize preserving the current
// leaf-size-in-rate-blocks ratio, and reinitializes state.
func (d *instance) ParallelMaxDegree(n int) error {
	if err := d.checkAlive("ParallelMaxDegree"); err != nil {
		return err
	}
	if err := validateFanOut(n); err != nil {
		return err
	}

	leafBlocks := d.profile.ParallelBlockSize() / (d.profile.FanOut() * d.rate)
	if leafBlocks < 1 {
		leafBlocks = 1
	}
	newProfile := ParallelOptions{rate: d.rate, fanOut: n, blockSize: n * d.rate * leafBlocks}

	params, err := NewKeccakParams(d.digestSize*8, clampFanOutByte(n), treehash.LeafSizeHint(newProfile.blockSize/n), 1)
	if err != nil {
		return err
	}

	d.profile = newProfile
	d.params = &params
	d.lanes = make([]sponge.LaneState, n)
	d.buf = make([]byte, d.profile.ParallelBlockSize())
	d.syncLanePtrs()
	d.Reset()
	return nil
}

// Clone copies the lane states, accumulation buffer, and message length into
// a fresh instance that shares no backing storage with the original.
func (d *instance) Clone() Digest {
	clone := &instance{
		tag:        d.tag,
		rate:       d.rate,
		digestSize: d.digestSize,
		profile:    d.profile,
		msgLength:  d.msgLength,
		destroyed:  d.destroyed,
	}
	if d.params != nil {
		p := *d.params
		clone.params = &p
	}
	clone.lanes = make([]sponge.LaneState, len(d.lanes))
	copy(clone.lanes, d.lanes)
	clone.buf = make([]byte, len(d.buf))
	copy(clone.buf, d.buf)
	clone.syncLanePtrs()
	return clone
}

func detectedCores() int {
	return runtime.NumCPU()
}

// defaultFanOut picks a conservative even lane count for GetInstance(tag,
// parallel=true) when the caller hasn't specified one explicitly.
func defaultFanOut() int {
	n := detectedCores()
	if n%2 != 0 {
		n--
	}
	if n < 2 {
		n = 2
	}
	return n
}

func clampFanOutByte(n int) uint8 {
	if n > 255 {
		return 255
	}
	return uint8(n)
}
