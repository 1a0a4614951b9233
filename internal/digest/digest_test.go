package digest

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smallyu/go-elgamal/internal/store"
	"github.com/smallyu/go-elgamal/pkg/elg"
)

// sha256("abc")
const abcHex = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"

func TestBytes(t *testing.T) {
	if got := hex.EncodeToString(Bytes([]byte("abc"))); got != abcHex {
		t.Errorf("Expected %s, got %s", abcHex, got)
	}
}

func TestReaderAndFile(t *testing.T) {
	sum, err := Reader(strings.NewReader("abc"))
	if err != nil {
		t.Fatalf("Reader failed: %v", err)
	}
	if hex.EncodeToString(sum) != abcHex {
		t.Errorf("Reader digest mismatch")
	}

	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte("abc"), 0644); err != nil {
		t.Fatal(err)
	}
	sum, err = File(path)
	if err != nil {
		t.Fatalf("File failed: %v", err)
	}
	if hex.EncodeToString(sum) != abcHex {
		t.Errorf("File digest mismatch")
	}

	if _, err := File(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Errorf("Expected error for missing file")
	}
}

func TestSaveKeepsHighBitDigestNonNegative(t *testing.T) {
	// The digest of "abc" starts with 0xba, which would decode as negative
	// without a sign byte.
	s := store.NewMemStore()
	m, err := Save(s, elg.NameMessage, Bytes([]byte("abc")))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if m.Sign() <= 0 {
		t.Fatalf("Expected positive message, got %s", m)
	}

	raw, _ := s.Raw(elg.NameMessage)
	if len(raw) != Size+1 || raw[0] != 0 {
		t.Errorf("Expected sign byte before digest, got %x", raw)
	}

	loaded, err := s.Load(elg.NameMessage)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Cmp(m) != 0 {
		t.Errorf("Expected %s, got %s", m, loaded)
	}
}

func TestSaveRejectsWrongLength(t *testing.T) {
	if _, err := Save(store.NewMemStore(), elg.NameMessage, []byte{1, 2, 3}); err == nil {
		t.Errorf("Expected error for short digest")
	}
}
