// Package safeprime generates ElGamal domain parameters: a safe prime
// p = 2q + 1 and a generator g.
package safeprime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/smallyu/go-elgamal/internal/crypto/sample"
	"github.com/smallyu/go-elgamal/pkg/elg"
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// smallPrimes are the odd primes whose product fits in a uint64.
var smallPrimes = []uint64{3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53}

// smallPrimesProduct = 3 * 5 * ... * 53
var smallPrimesProduct = new(big.Int).SetUint64(16294579238595022365)

// SafePrime holds a Sophie Germain prime q and its safe prime p = 2q + 1.
type SafePrime struct {
	Q *big.Int
	P *big.Int
}

// Rounds converts a certainty (error probability <= 2^-certainty) into a
// Miller-Rabin round count for big.Int.ProbablyPrime.
func Rounds(certainty int) int {
	if certainty < 1 {
		return 1
	}
	return (certainty + 1) / 2
}

// ProbablyPrime reports whether n passes the primality test at certainty.
func ProbablyPrime(n *big.Int, certainty int) bool {
	return n != nil && n.Sign() > 0 && n.ProbablyPrime(Rounds(certainty))
}

// GenerateSafePrime searches for q with exactly bits bits such that q and
// 2q + 1 are both prime at the given certainty. A maxAttempts of 0 leaves the
// search unbounded; otherwise at most maxAttempts candidates q are drawn.
func GenerateSafePrime(ctx context.Context, random io.Reader, bits, certainty, maxAttempts int) (*SafePrime, error) {
	if bits < 2 {
		return nil, errors.New("safeprime: bits must be at least 2")
	}

	for attempt := 1; maxAttempts == 0 || attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// 1. Random odd candidate q of exactly the requested length
		q, err := sample.ExactBits(random, bits)
		if err != nil {
			return nil, err
		}

		// 2. Cheap filters before the expensive rounds
		if !sieve(q) {
			continue
		}
		if !q.ProbablyPrime(0) {
			continue
		}

		// 3. p = 2q + 1
		p := new(big.Int).Lsh(q, 1)
		p.Add(p, one)
		if !p.ProbablyPrime(0) {
			continue
		}

		// 4. Confirm both at the requested certainty
		if ProbablyPrime(q, certainty) && ProbablyPrime(p, certainty) {
			return &SafePrime{Q: q, P: p}, nil
		}
	}

	return nil, fmt.Errorf("safeprime: no safe prime after %d candidates: %w", maxAttempts, elg.ErrGenerationFailed)
}

// Verify checks that p is a safe prime at the given certainty.
func Verify(p *big.Int, certainty int) error {
	if p == nil || p.Cmp(big.NewInt(5)) < 0 {
		return fmt.Errorf("safeprime: modulus too small: %w", elg.ErrInvalidParams)
	}
	if !ProbablyPrime(p, certainty) {
		return fmt.Errorf("safeprime: p is not prime: %w", elg.ErrInvalidParams)
	}
	if !ProbablyPrime(Order(p), certainty) {
		return fmt.Errorf("safeprime: (p-1)/2 is not prime: %w", elg.ErrInvalidParams)
	}
	return nil
}

// Order returns q = (p - 1) / 2.
func Order(p *big.Int) *big.Int {
	q := new(big.Int).Sub(p, one)
	return q.Rsh(q, 1)
}

// sieve rejects q when q or 2q + 1 has a small odd prime factor.
// 2q + 1 = 0 mod r exactly when q = (r - 1) / 2 mod r.
func sieve(q *big.Int) bool {
	if q.IsUint64() && q.Uint64() <= smallPrimes[len(smallPrimes)-1] {
		// Tiny candidates collide with the sieve primes themselves.
		return true
	}
	m := new(big.Int).Mod(q, smallPrimesProduct).Uint64()
	for _, r := range smallPrimes {
		rem := m % r
		if rem == 0 || rem == (r-1)/2 {
			return false
		}
	}
	return true
}
