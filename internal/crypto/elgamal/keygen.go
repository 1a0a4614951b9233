package elgamal

import (
	"fmt"
	"io"
	"math/big"

	"github.com/smallyu/go-elgamal/internal/crypto/modexp"
	"github.com/smallyu/go-elgamal/internal/crypto/sample"
	"github.com/smallyu/go-elgamal/pkg/elg"
)

// PublicKey is a participant's shareable key, Y = G^X mod P.
type PublicKey struct {
	Params
	Y *big.Int
}

// PrivateKey holds the secret exponent X. It is never persisted.
type PrivateKey struct {
	PublicKey
	X *big.Int // 0 <= X < P - 1
}

// GenerateKey draws a private exponent for params. The bit length of X is
// uniform in [0, GroupBits) and X is redrawn until X < P - 1, so X = 0 or
// X = 1 can occur. A maxAttempts of 0 leaves the redraw loop unbounded.
func GenerateKey(random io.Reader, params *Params, maxAttempts int) (*PrivateKey, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	pMinus1 := new(big.Int).Sub(params.P, one)
	for attempt := 1; maxAttempts == 0 || attempt <= maxAttempts; attempt++ {
		x, err := sample.VariableBits(random, params.GroupBits())
		if err != nil {
			return nil, err
		}
		if x.Cmp(pMinus1) < 0 {
			return newPrivateKey(params, x), nil
		}
	}

	return nil, fmt.Errorf("elgamal: no private exponent after %d draws: %w", maxAttempts, elg.ErrGenerationFailed)
}

// NewPrivateKey builds a key pair from a known exponent x in [0, P-1).
func NewPrivateKey(params *Params, x *big.Int) (*PrivateKey, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if x == nil || x.Sign() < 0 || x.Cmp(new(big.Int).Sub(params.P, one)) >= 0 {
		return nil, fmt.Errorf("elgamal: private exponent must be in [0, p-1): %w", elg.ErrInvalidKey)
	}
	return newPrivateKey(params, new(big.Int).Set(x)), nil
}

func newPrivateKey(params *Params, x *big.Int) *PrivateKey {
	return &PrivateKey{
		PublicKey: PublicKey{
			Params: *params,
			Y:      modexp.ModPow(params.G, x, params.P), // y = g^x mod p
		},
		X: x,
	}
}

// Validate checks the range of Y.
func (pub *PublicKey) Validate() error {
	if err := pub.Params.Validate(); err != nil {
		return err
	}
	if pub.Y == nil || pub.Y.Sign() <= 0 || pub.Y.Cmp(pub.P) >= 0 {
		return fmt.Errorf("elgamal: public key must be in [1, p): %w", elg.ErrInvalidKey)
	}
	return nil
}

// Validate checks the range of X and that G^X mod P equals Y.
func (priv *PrivateKey) Validate() error {
	if err := priv.PublicKey.Validate(); err != nil {
		return err
	}
	if priv.X == nil || priv.X.Sign() < 0 || priv.X.Cmp(new(big.Int).Sub(priv.P, one)) >= 0 {
		return fmt.Errorf("elgamal: private exponent must be in [0, p-1): %w", elg.ErrInvalidKey)
	}
	if modexp.ModPow(priv.G, priv.X, priv.P).Cmp(priv.Y) != 0 {
		return fmt.Errorf("elgamal: g^x mod p != y: %w", elg.ErrKeyMismatch)
	}
	return nil
}

// Public returns the public half of the key pair.
func (priv *PrivateKey) Public() *PublicKey {
	return &priv.PublicKey
}
