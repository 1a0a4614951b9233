// Package digest produces the message the demonstration encrypts: the
// SHA-256 sum of an input, stored as a non-negative integer.
package digest

import (
	"crypto/sha256"
	"io"
	"math/big"
	"os"

	"github.com/pkg/errors"

	"github.com/smallyu/go-elgamal/internal/codec"
	"github.com/smallyu/go-elgamal/pkg/elg"
)

// Size is the length of a digest in bytes.
const Size = sha256.Size

// Reader hashes everything read from r.
func Reader(r io.Reader) ([]byte, error) {
	hash := sha256.New()
	if _, err := io.Copy(hash, r); err != nil {
		return nil, errors.Wrap(err, "digest")
	}
	return hash.Sum(nil), nil
}

// File hashes the file at path.
func File(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "digest")
	}
	defer f.Close()
	return Reader(f)
}

// Bytes hashes data.
func Bytes(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// Integer interprets a digest as an unsigned big-endian integer.
// The store adds a sign byte when the top bit is set, so the value never
// reads back as negative.
func Integer(sum []byte) *big.Int {
	return codec.FromUnsigned(sum)
}

// Save writes sum under name in s.
func Save(s elg.Store, name string, sum []byte) (*big.Int, error) {
	if len(sum) != Size {
		return nil, errors.Errorf("digest: expected %d bytes, got %d", Size, len(sum))
	}
	m := Integer(sum)
	if err := s.Save(name, m); err != nil {
		return nil, err
	}
	return m, nil
}
