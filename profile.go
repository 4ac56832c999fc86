package keccaktree

import "github.com/ardenhash/keccaktree/hazmat/keccak"

// defaultLeafBlocksPerLane is the number of rate-blocks each lane absorbs per
// parallel block by default — the "leaf size" in units of rate blocks.
const defaultLeafBlocksPerLane = 8

// ParallelOptions is a live view of a Digest's tree-parallel configuration.
// Obtain one via Digest.ParallelProfile; it reflects the Digest's current
// settings and changes in place when ParallelMaxDegree succeeds. Mutate it
// only through Digest.ParallelMaxDegree — direct field mutation is not
// possible since its fields are unexported.
type ParallelOptions struct {
	rate      int
	fanOut    int
	blockSize int // ParallelBlockSize
}

// FanOut is the number of parallel lanes. 1 means sequential mode.
func (p *ParallelOptions) FanOut() int { return p.fanOut }

// ParallelBlockSize is the number of bytes consumed by one fork/join step.
func (p *ParallelOptions) ParallelBlockSize() int { return p.blockSize }

// ParallelMinimumSize is FanOut * BlockSize: one rate-block per lane, the
// smallest legal ParallelBlockSize for the current FanOut.
func (p *ParallelOptions) ParallelMinimumSize() int { return p.fanOut * p.rate }

// IsParallel reports whether FanOut > 1.
func (p *ParallelOptions) IsParallel() bool { return p.fanOut > 1 }

// SimdDetected reports whether the host CPU exposes vector extensions a
// SIMD-accelerated permutation could exploit. Informational only: it never
// changes the digest output.
func (p *ParallelOptions) SimdDetected() bool { return keccak.SimdDetected }

func newSequentialProfile(rate int) ParallelOptions {
	return ParallelOptions{rate: rate, fanOut: 1, blockSize: rate}
}

func newParallelProfile(rate, fanOut int) (ParallelOptions, error) {
	if err := validateFanOut(fanOut); err != nil {
		return ParallelOptions{}, err
	}
	return ParallelOptions{
		rate:      rate,
		fanOut:    fanOut,
		blockSize: fanOut * rate * defaultLeafBlocksPerLane,
	}, nil
}

func validateFanOut(fanOut int) error {
	if fanOut <= 0 || fanOut%2 != 0 {
		return newError(InvalidParameter, "ParallelMaxDegree", "fan-out must be even and positive")
	}
	if fanOut > detectedCores() {
		return newError(InvalidParameter, "ParallelMaxDegree", "fan-out exceeds detected core count")
	}
	return nil
}
