package safeprime

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/smallyu/go-elgamal/internal/crypto/modexp"
	"github.com/smallyu/go-elgamal/internal/crypto/sample"
	"github.com/smallyu/go-elgamal/pkg/elg"
)

// GeneratorTest selects the acceptance test used by FindGenerator.
type GeneratorTest int

const (
	// StandardTest samples r in [2, p-2] and accepts r^q mod p != 1.
	StandardTest GeneratorTest = iota
	// LegacyTest draws r with a random bit length and accepts it when
	// r^(p-1) mod q != 1.
	LegacyTest
)

func (t GeneratorTest) String() string {
	switch t {
	case StandardTest:
		return "standard"
	case LegacyTest:
		return "legacy"
	}
	return fmt.Sprintf("GeneratorTest(%d)", int(t))
}

// ParseGeneratorTest maps "standard" or "legacy" to a GeneratorTest.
func ParseGeneratorTest(s string) (GeneratorTest, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return StandardTest, nil
	case "legacy":
		return LegacyTest, nil
	}
	return 0, fmt.Errorf("safeprime: unknown generator test %q", s)
}

// IsGenerator applies the acceptance test of t to candidate r for the safe
// prime p. The result depends only on its inputs.
func IsGenerator(r, p *big.Int, t GeneratorTest) bool {
	if r == nil || p == nil || p.Cmp(big.NewInt(5)) < 0 {
		return false
	}
	// 1 never generates anything; 0 and values outside the group neither.
	if r.Cmp(two) < 0 || r.Cmp(p) >= 0 {
		return false
	}

	n := new(big.Int).Sub(p, one)
	q := new(big.Int).Rsh(n, 1)

	var b *big.Int
	switch t {
	case LegacyTest:
		// b = r^n mod q
		b = modexp.FastModPowExtended(one, r, n, q)
	default:
		if r.Cmp(n) >= 0 {
			return false
		}
		// b = r^q mod p
		b = modexp.FastModPowExtended(one, r, q, p)
	}
	return !modexp.IsOne(b)
}

// FindGenerator draws candidates until one passes the acceptance test of t.
// A maxAttempts of 0 leaves the search unbounded.
func FindGenerator(random io.Reader, p *big.Int, t GeneratorTest, maxAttempts int) (*big.Int, error) {
	if p == nil || p.Cmp(big.NewInt(5)) < 0 {
		return nil, errors.New("safeprime: modulus too small for a generator search")
	}
	// Below 2^3 the legacy bit lengths only reach 0 and 1, which are never accepted
	if t == LegacyTest && p.BitLen()-1 < 3 {
		return nil, fmt.Errorf("safeprime: modulus too small for the legacy sampler: %w", elg.ErrInvalidParams)
	}

	for attempt := 1; maxAttempts == 0 || attempt <= maxAttempts; attempt++ {
		r, err := candidate(random, p, t)
		if err != nil {
			return nil, err
		}
		if r == nil {
			continue
		}
		if IsGenerator(r, p, t) {
			return r, nil
		}
	}

	return nil, fmt.Errorf("safeprime: no generator after %d candidates: %w", maxAttempts, elg.ErrGenerationFailed)
}

// candidate returns the next sample for t, or nil when the draw is rejected
// before testing.
func candidate(random io.Reader, p *big.Int, t GeneratorTest) (*big.Int, error) {
	switch t {
	case LegacyTest:
		// Bit length uniform in [0, bits(q)), value uniform below 2^length.
		r, err := sample.VariableBits(random, p.BitLen()-1)
		if err != nil {
			return nil, err
		}
		if r.Cmp(p) >= 0 {
			return nil, nil
		}
		return r, nil
	default:
		// Uniform in [2, p-2]
		hi := new(big.Int).Sub(p, two)
		return sample.Range(random, two, hi)
	}
}
