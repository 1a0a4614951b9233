package elg

import "math/big"

// Well-known value names used by the demonstration.
const (
	NamePrime     = "prime"
	NameGenerator = "generator"
	NameMessage   = "sha256sum"
	NameDecrypted = "decryptedFile"
)

// Store persists integers under logical names.
// Implementations must never return a nil value together with a nil error.
type Store interface {
	// Load returns the integer saved under name.
	Load(name string) (*big.Int, error)

	// Save writes v under name, replacing any previous value.
	Save(name string, v *big.Int) error
}
