package keccaktree_test

import (
	"fmt"

	"github.com/ardenhash/keccaktree"
)

func Example() {
	d, err := keccaktree.GetInstance(keccaktree.Keccak256, false)
	if err != nil {
		panic(err)
	}

	out := make([]byte, d.DigestSize())
	if _, err := d.Compute([]byte("abc"), out); err != nil {
		panic(err)
	}

	fmt.Println(len(out), d.Name())
	// Output: 32 Keccak-256
}

func ExampleDigest_streaming() {
	checksum := func(chunks ...string) []byte {
		d, err := keccaktree.GetInstance(keccaktree.Keccak256, false)
		if err != nil {
			panic(err)
		}
		for _, c := range chunks {
			if err := d.Update([]byte(c)); err != nil {
				panic(err)
			}
		}
		out := make([]byte, d.DigestSize())
		if _, err := d.Finalize(out, 0); err != nil {
			panic(err)
		}
		return out
	}

	chunked := checksum("a", "b", "c")
	oneShot := checksum("abc")

	fmt.Println(string(chunked) == string(oneShot))
	// Output: true
}

func ExampleGetInstanceWithParams() {
	params, err := keccaktree.NewKeccakParams(256, 4, 8, 1)
	if err != nil {
		panic(err)
	}

	d, err := keccaktree.GetInstanceWithParams(keccaktree.Keccak256, params)
	if err != nil {
		panic(err)
	}

	fmt.Println(d.IsParallel(), d.ParallelProfile().FanOut())
	// Output: true 4
}

func ExampleDigest_reuse() {
	d, err := keccaktree.GetInstance(keccaktree.Keccak256, false)
	if err != nil {
		panic(err)
	}

	first := make([]byte, d.DigestSize())
	if _, err := d.Compute([]byte("first message"), first); err != nil {
		panic(err)
	}

	// Finalize resets the instance, so it's ready for another message.
	second := make([]byte, d.DigestSize())
	if _, err := d.Compute([]byte("second message"), second); err != nil {
		panic(err)
	}

	fmt.Println(len(first), len(second), string(first) == string(second))
	// Output: 32 32 false
}
