// Package digest adapts keccaktree's Digest type to the standard library's
// hash.Hash interface, so Keccak256 and Keccak512 can be used anywhere
// hash.Hash is expected.
package digest

import (
	"hash"

	"github.com/ardenhash/keccaktree"
)

// New returns a new hash.Hash instance backed by the given algorithm tag.
// It panics if tag is not Keccak256 or Keccak512 (keccaktree.GetInstance
// always accepts both in sequential mode); use keccaktree.GetInstance
// directly if you need to handle that error yourself.
func New(tag keccaktree.Tag) hash.Hash {
	d, err := keccaktree.GetInstance(tag, false)
	if err != nil {
		panic(err)
	}
	return &wrapper{d: d}
}

// NewParallel returns a new hash.Hash instance that hashes in tree-parallel
// mode with the given fan-out.
func NewParallel(tag keccaktree.Tag, fanOut int) (hash.Hash, error) {
	d, err := keccaktree.GetInstance(tag, true)
	if err != nil {
		return nil, err
	}
	if err := d.ParallelMaxDegree(fanOut); err != nil {
		return nil, err
	}
	return &wrapper{d: d}, nil
}

type wrapper struct {
	d keccaktree.Digest
}

func (w *wrapper) Write(p []byte) (n int, err error) {
	if err := w.d.Update(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Sum appends the digest of everything written so far to b and returns the
// resulting slice, leaving the receiver's state untouched: callers may keep
// writing afterward, per the hash.Hash contract.
func (w *wrapper) Sum(b []byte) []byte {
	clone := w.d.Clone()
	out := make([]byte, w.d.DigestSize())
	if _, err := clone.Finalize(out, 0); err != nil {
		panic(err)
	}
	return append(b, out...)
}

func (w *wrapper) Reset() {
	w.d.Reset()
}

func (w *wrapper) Size() int {
	return w.d.DigestSize()
}

func (w *wrapper) BlockSize() int {
	return w.d.BlockSize()
}

var _ hash.Hash = (*wrapper)(nil)
