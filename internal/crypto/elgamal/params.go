// Package elgamal implements ElGamal key generation, encryption and
// decryption in the multiplicative group modulo a safe prime.
package elgamal

import (
	"fmt"
	"math/big"

	"github.com/smallyu/go-elgamal/internal/crypto/safeprime"
	"github.com/smallyu/go-elgamal/pkg/elg"
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// paramCheckRounds is the Miller-Rabin round count used when parameters are
// checked at the cipher boundary.
const paramCheckRounds = 20

// Params are the shared cyclic group parameters.
type Params struct {
	P *big.Int // safe prime modulus, P = 2Q + 1
	G *big.Int // generator
}

// NewParams copies p and g into a Params after validating them.
func NewParams(p, g *big.Int) (*Params, error) {
	if p == nil || g == nil {
		return nil, fmt.Errorf("elgamal: missing parameter: %w", elg.ErrInvalidParams)
	}
	params := &Params{
		P: new(big.Int).Set(p),
		G: new(big.Int).Set(g),
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}

// Q returns the order of the prime subgroup, (P - 1) / 2.
func (params *Params) Q() *big.Int {
	return safeprime.Order(params.P)
}

// GroupBits is the bit length of Q, the range private exponents are drawn from.
func (params *Params) GroupBits() int {
	return params.P.BitLen() - 1
}

// Validate checks that P is prime and G lies in (1, P).
// It does not run the generator test, see the safeprime package for that.
func (params *Params) Validate() error {
	if params == nil || params.P == nil || params.G == nil {
		return fmt.Errorf("elgamal: missing parameter: %w", elg.ErrInvalidParams)
	}
	if params.P.Cmp(big.NewInt(5)) < 0 {
		return fmt.Errorf("elgamal: modulus too small: %w", elg.ErrInvalidParams)
	}
	if !params.P.ProbablyPrime(paramCheckRounds) {
		return fmt.Errorf("elgamal: modulus is not prime: %w", elg.ErrInvalidParams)
	}
	if params.G.Cmp(two) < 0 || params.G.Cmp(params.P) >= 0 {
		return fmt.Errorf("elgamal: generator must be in (1, p): %w", elg.ErrInvalidParams)
	}
	return nil
}

// Equal reports whether both parameter sets describe the same group.
func (params *Params) Equal(other *Params) bool {
	if params == nil || other == nil {
		return params == other
	}
	return params.P.Cmp(other.P) == 0 && params.G.Cmp(other.G) == 0
}
