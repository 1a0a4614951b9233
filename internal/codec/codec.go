// Package codec converts integers to and from their big-endian two's
// complement byte encoding, the format of every stored value.
package codec

import (
	"encoding/hex"
	"errors"
	"math/big"
	"unicode"
	"unicode/utf8"
)

var (
	one = big.NewInt(1)

	// ErrEmptyEncoding is returned when decoding zero bytes.
	ErrEmptyEncoding = errors.New("codec: zero length integer encoding")
)

// ToBytes returns the minimal two's complement encoding of x.
// Zero encodes as a single 0x00 byte; a 0x00 sign byte is prepended to
// non-negative values whose top bit is set.
func ToBytes(x *big.Int) []byte {
	if x.Sign() >= 0 {
		b := x.Bytes()
		if len(b) == 0 || b[0]&0x80 != 0 {
			b = append([]byte{0}, b...)
		}
		return b
	}

	// Negative: invert the bytes of |x| - 1 over bitlen/8 + 1 bytes.
	t := new(big.Int).Neg(x)
	t.Sub(t, one)
	b := t.FillBytes(make([]byte, t.BitLen()/8+1))
	for i := range b {
		b[i] = ^b[i]
	}
	return b
}

// FromBytes decodes a two's complement encoding produced by ToBytes or by
// any other big-endian signed encoder.
func FromBytes(b []byte) (*big.Int, error) {
	if len(b) == 0 {
		return nil, ErrEmptyEncoding
	}
	if b[0]&0x80 == 0 {
		return new(big.Int).SetBytes(b), nil
	}

	inv := make([]byte, len(b))
	for i := range b {
		inv[i] = ^b[i]
	}
	x := new(big.Int).SetBytes(inv)
	x.Add(x, one)
	return x.Neg(x), nil
}

// FromUnsigned interprets b as a non-negative big-endian integer.
func FromUnsigned(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// Text renders the byte encoding of x for humans: the bytes as text when
// they form printable UTF-8, hex otherwise.
func Text(x *big.Int) string {
	b := ToBytes(x)
	if x.Sign() > 0 && len(b) > 1 && b[0] == 0 {
		b = b[1:]
	}
	if utf8.Valid(b) && printable(string(b)) {
		return string(b)
	}
	return "0x" + hex.EncodeToString(b)
}

func printable(s string) bool {
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
