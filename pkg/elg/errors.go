package elg

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds returned across the module. Check them with errors.Is.
var (
	ErrStorage             = errors.New("storage failure")
	ErrInvalidParams       = errors.New("invalid domain parameter")
	ErrPlaintextOutOfRange = errors.New("plaintext out of range")
	ErrInvalidKey          = errors.New("invalid key")
	ErrKeyMismatch         = errors.New("private key does not match public key")
	ErrInvalidCiphertext   = errors.New("invalid ciphertext")
	ErrParamsMismatch      = errors.New("keys belong to different groups")
	ErrGenerationFailed    = errors.New("generation failed")
)

// StoreError represents a failure to load or save a named value.
// It allows callers to abort before an absent value reaches arithmetic.
type StoreError struct {
	Op   string // "load" or "save"
	Name string // logical name, e.g. "prime"
	Path string // resolved location, empty for in-memory stores
	Err  error
}

func (e *StoreError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Name, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is reports every StoreError as ErrStorage.
func (e *StoreError) Is(target error) bool {
	return target == ErrStorage
}

// NewStoreError creates a new StoreError.
func NewStoreError(op, name, path string, err error) *StoreError {
	return &StoreError{
		Op:   op,
		Name: name,
		Path: path,
		Err:  err,
	}
}
