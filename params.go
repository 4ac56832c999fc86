package keccaktree

import "github.com/ardenhash/keccaktree/hazmat/treehash"

// KeccakParams is the personalization record absorbed first by every lane in
// parallel mode. Changing any field deterministically changes every digest
// computed with it — that is the point: the tree configuration is part of
// the personalization, so two instances with different FanOut never collide.
type KeccakParams struct {
	// OutputBits is the digest width in bits: 256 or 512.
	OutputBits uint16
	// FanOut is the number of parallel lanes.
	FanOut uint8
	// LeafSize is an informational hint, in kibibytes, of the per-lane leaf
	// stripe size.
	LeafSize uint8
	// TreeDepth is 1 for this engine's single leaves-then-root topology.
	TreeDepth uint8
}

// NewKeccakParams validates and constructs a KeccakParams. outputBits must be
// 256 or 512; fanOut must be even and at least 2.
func NewKeccakParams(outputBits int, fanOut, leafSize, treeDepth uint8) (KeccakParams, error) {
	if outputBits != 256 && outputBits != 512 {
		return KeccakParams{}, newError(InvalidParameter, "NewKeccakParams", "outputBits must be 256 or 512")
	}
	if fanOut == 0 || fanOut%2 != 0 {
		return KeccakParams{}, newError(InvalidParameter, "NewKeccakParams", "fanOut must be even and positive")
	}
	return KeccakParams{
		OutputBits: uint16(outputBits),
		FanOut:     fanOut,
		LeafSize:   leafSize,
		TreeDepth:  treeDepth,
	}, nil
}

func (p KeccakParams) toTreeParams() treehash.Params {
	return treehash.Params{
		OutputBits: p.OutputBits,
		FanOut:     p.FanOut,
		LeafSize:   p.LeafSize,
		TreeDepth:  p.TreeDepth,
	}
}
