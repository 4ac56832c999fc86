package keccaktree

import "fmt"

// Tag identifies an algorithm this package can produce a Digest for.
type Tag int

const (
	// None is not a valid algorithm; GetInstance and friends reject it.
	None Tag = iota
	// Keccak256 is the 256-bit Keccak digest (136-byte rate).
	Keccak256
	// Keccak512 is the 512-bit Keccak digest (72-byte rate).
	Keccak512
)

func (t Tag) String() string {
	switch t {
	case Keccak256:
		return "Keccak256"
	case Keccak512:
		return "Keccak512"
	default:
		return "None"
	}
}

// GetInstance returns a new Digest for tag. If parallel is true, the
// instance uses tree-parallel hashing with a default FanOut derived from the
// detected core count; call ParallelMaxDegree afterward to change it, or use
// GetInstanceWithParams to pin an exact configuration up front.
func GetInstance(tag Tag, parallel bool) (Digest, error) {
	rate, digestSize, err := sizesFor("GetInstance", tag)
	if err != nil {
		return nil, err
	}
	if !parallel {
		return newSequential(tag, rate, digestSize), nil
	}
	return newParallel(tag, rate, digestSize, defaultFanOut())
}

// GetInstanceWithParams returns a new tree-parallel Digest for tag configured
// exactly as params specifies (FanOut is taken from params.FanOut).
func GetInstanceWithParams(tag Tag, params KeccakParams) (Digest, error) {
	rate, digestSize, err := sizesFor("GetInstanceWithParams", tag)
	if err != nil {
		return nil, err
	}
	return newParallelWithParams(tag, rate, digestSize, params)
}

// GetBlockSize returns the sponge rate, in bytes, for tag: 136 for
// Keccak256, 72 for Keccak512, 0 for None or an unrecognized tag.
func GetBlockSize(tag Tag) int {
	switch tag {
	case Keccak256:
		return 136
	case Keccak512:
		return 72
	default:
		return 0
	}
}

// GetDigestSize returns the output size, in bytes, for tag: 32 for
// Keccak256, 64 for Keccak512, 0 for None or an unrecognized tag.
func GetDigestSize(tag Tag) int {
	switch tag {
	case Keccak256:
		return 32
	case Keccak512:
		return 64
	default:
		return 0
	}
}

// GetPaddingSize returns 0 for both Keccak variants: the sponge absorbs
// padding into the rate block itself, so no trailing padding block is ever
// exposed to the caller.
func GetPaddingSize(tag Tag) int {
	return 0
}

func sizesFor(op string, tag Tag) (rate, digestSize int, err error) {
	switch tag {
	case Keccak256:
		return 136, 32, nil
	case Keccak512:
		return 72, 64, nil
	default:
		return 0, 0, newError(UnknownAlgorithm, op, fmt.Sprintf("tag %d", tag))
	}
}
