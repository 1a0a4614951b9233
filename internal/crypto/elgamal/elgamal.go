package elgamal

import (
	"fmt"
	"io"
	"math/big"

	"github.com/monnand/dhkx"

	"github.com/smallyu/go-elgamal/internal/crypto/modexp"
	"github.com/smallyu/go-elgamal/pkg/elg"
)

// Ciphertext is an ElGamal ciphertext pair.
type Ciphertext struct {
	C1 *big.Int // g^k mod p
	C2 *big.Int // m * y^k mod p
}

// Encrypt encrypts m for recipient using the sender's private exponent as
// the ephemeral secret k. Both keys must belong to the same group.
// m must be in the range [0, p).
func Encrypt(recipient *PublicKey, sender *PrivateKey, m *big.Int) (*Ciphertext, error) {
	if sender == nil {
		return nil, fmt.Errorf("elgamal: missing sender key: %w", elg.ErrInvalidKey)
	}
	if err := sender.Validate(); err != nil {
		return nil, err
	}
	if recipient != nil && !recipient.Params.Equal(&sender.Params) {
		return nil, fmt.Errorf("elgamal: sender and recipient: %w", elg.ErrParamsMismatch)
	}
	return EncryptWithK(recipient, sender.X, m)
}

// EncryptWithK encrypts m for recipient with an explicit ephemeral exponent k.
// This is useful for tests and known-answer vectors; k must not be reused.
func EncryptWithK(recipient *PublicKey, k, m *big.Int) (*Ciphertext, error) {
	if err := checkEncryptArgs(recipient, m); err != nil {
		return nil, err
	}
	if k == nil || k.Sign() < 0 || k.Cmp(new(big.Int).Sub(recipient.P, one)) >= 0 {
		return nil, fmt.Errorf("elgamal: ephemeral exponent must be in [0, p-1): %w", elg.ErrInvalidKey)
	}

	// c1 = g^k mod p
	c1 := modexp.ModPow(recipient.G, k, recipient.P)

	// c2 = m * (y^k mod p) mod p
	c2 := modexp.FastModPowExtended(m, recipient.Y, k, recipient.P)

	return &Ciphertext{C1: c1, C2: c2}, nil
}

// EncryptFresh encrypts m for recipient with a fresh ephemeral secret drawn
// from random. The ephemeral key pair is a Diffie-Hellman key on the
// recipient's group; its shared value with Y masks the message.
func EncryptFresh(random io.Reader, recipient *PublicKey, m *big.Int) (*Ciphertext, error) {
	if err := checkEncryptArgs(recipient, m); err != nil {
		return nil, err
	}

	group := dhkx.CreateGroup(recipient.P, recipient.G)

	// 1. Ephemeral key: k in (0, p), c1 = g^k mod p
	ephemeral, err := group.GeneratePrivateKey(random)
	if err != nil {
		return nil, err
	}
	c1 := new(big.Int).SetBytes(ephemeral.Bytes())

	// 2. Shared value s = y^k mod p
	shared, err := group.ComputeKey(dhkx.NewPublicKey(recipient.Y.Bytes()), ephemeral)
	if err != nil {
		return nil, fmt.Errorf("elgamal: %v: %w", err, elg.ErrInvalidKey)
	}
	s := new(big.Int).SetBytes(shared.Bytes())

	// 3. c2 = m * s mod p
	c2 := new(big.Int).Mul(m, s)
	c2.Mod(c2, recipient.P)

	return &Ciphertext{C1: c1, C2: c2}, nil
}

// Decrypt recovers the plaintext of ct with priv.
// The inverse of the shared secret is c1^(p-1-x) mod p, since c1^(p-1) = 1.
func Decrypt(priv *PrivateKey, ct *Ciphertext) (*big.Int, error) {
	if priv == nil {
		return nil, fmt.Errorf("elgamal: missing private key: %w", elg.ErrInvalidKey)
	}
	if err := priv.Validate(); err != nil {
		return nil, err
	}
	if err := ct.Validate(&priv.Params); err != nil {
		return nil, err
	}

	// t = p - 1 - x
	t := new(big.Int).Sub(priv.P, one)
	t.Sub(t, priv.X)

	// s = c1^t mod p
	s := modexp.ModPow(ct.C1, t, priv.P)

	// m = s * c2 mod p
	m := new(big.Int).Mul(s, ct.C2)
	m.Mod(m, priv.P)

	return m, nil
}

// Validate checks that c1 is in [1, p) and c2 in [0, p).
func (ct *Ciphertext) Validate(params *Params) error {
	if ct == nil || ct.C1 == nil || ct.C2 == nil {
		return fmt.Errorf("elgamal: missing ciphertext component: %w", elg.ErrInvalidCiphertext)
	}
	if ct.C1.Sign() <= 0 || ct.C1.Cmp(params.P) >= 0 {
		return fmt.Errorf("elgamal: c1 must be in [1, p): %w", elg.ErrInvalidCiphertext)
	}
	if ct.C2.Sign() < 0 || ct.C2.Cmp(params.P) >= 0 {
		return fmt.Errorf("elgamal: c2 must be in [0, p): %w", elg.ErrInvalidCiphertext)
	}
	return nil
}

func checkEncryptArgs(recipient *PublicKey, m *big.Int) error {
	if recipient == nil {
		return fmt.Errorf("elgamal: missing recipient key: %w", elg.ErrInvalidKey)
	}
	if err := recipient.Validate(); err != nil {
		return err
	}
	if m == nil || m.Sign() < 0 || m.Cmp(recipient.P) >= 0 {
		return fmt.Errorf("elgamal: message m must be in range [0, p): %w", elg.ErrPlaintextOutOfRange)
	}
	return nil
}
