// Package sample draws random integers from an injected io.Reader.
//
// Every generation step of the module takes its randomness through these
// helpers so that a seeded reader reproduces a whole run.
package sample

import (
	"errors"
	"io"
	"math/big"
)

var (
	one = big.NewInt(1)
)

// Below returns a uniform integer in [0, max) by rejection sampling bytes
// read from random. max must be positive.
func Below(random io.Reader, max *big.Int) (*big.Int, error) {
	if max.Sign() <= 0 {
		return nil, errors.New("sample: bound must be positive")
	}
	top := new(big.Int).Sub(max, one)
	bits := top.BitLen()
	if bits == 0 {
		return new(big.Int), nil
	}
	buf := make([]byte, (bits+7)/8)
	mask := byte(0xff >> uint(len(buf)*8-bits))
	v := new(big.Int)
	for {
		if _, err := io.ReadFull(random, buf); err != nil {
			return nil, err
		}
		buf[0] &= mask
		v.SetBytes(buf)
		if v.Cmp(max) < 0 {
			return v, nil
		}
	}
}

// Intn returns a uniform int in [0, n). n must be positive.
func Intn(random io.Reader, n int) (int, error) {
	if n <= 0 {
		return 0, errors.New("sample: bound must be positive")
	}
	v, err := Below(random, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// Bits returns a uniform integer in [0, 2^bits). bits = 0 yields 0.
func Bits(random io.Reader, bits int) (*big.Int, error) {
	if bits < 0 {
		return nil, errors.New("sample: negative bit length")
	}
	bound := new(big.Int).Lsh(one, uint(bits))
	return Below(random, bound)
}

// VariableBits draws a bit length uniformly from [0, maxBits) and then a
// uniform integer below 2^length. Small values are far more likely than
// under a uniform draw below 2^maxBits.
func VariableBits(random io.Reader, maxBits int) (*big.Int, error) {
	length, err := Intn(random, maxBits)
	if err != nil {
		return nil, err
	}
	return Bits(random, length)
}

// Range returns a uniform integer in [lo, hi]. It requires lo <= hi.
func Range(random io.Reader, lo, hi *big.Int) (*big.Int, error) {
	if lo.Cmp(hi) > 0 {
		return nil, errors.New("sample: empty range")
	}
	// width = hi - lo + 1
	width := new(big.Int).Sub(hi, lo)
	width.Add(width, one)
	r, err := Below(random, width)
	if err != nil {
		return nil, err
	}
	return r.Add(r, lo), nil
}

// ExactBits returns a random odd integer with exactly bits bits.
// bits must be at least 2.
func ExactBits(random io.Reader, bits int) (*big.Int, error) {
	if bits < 2 {
		return nil, errors.New("sample: need at least 2 bits")
	}
	buf := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(random, buf); err != nil {
		return nil, err
	}
	// Clear the excess high bits of the first byte, then force the top bit.
	excess := uint(len(buf)*8 - bits)
	buf[0] &= byte(0xff >> excess)
	buf[0] |= byte(0x80 >> excess)
	buf[len(buf)-1] |= 1
	return new(big.Int).SetBytes(buf), nil
}
