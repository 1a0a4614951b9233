package modexp

import (
	"math/big"
	mrand "math/rand"
	"testing"
)

func TestFastModPowExtendedKnownValues(t *testing.T) {
	tests := []struct {
		name              string
		a, base, exp, mod int64
		want              int64
	}{
		{"c2 of the p=23 scenario", 10, 8, 3, 23, 14},
		{"a = 1 is plain modpow", 1, 5, 6, 23, 8},
		{"zero exponent", 7, 123, 0, 23, 7},
		{"zero base", 3, 0, 5, 23, 0},
		{"a reduced", 100, 2, 1, 23, 100 * 2 % 23},
		{"modulus one", 5, 4, 3, 1, 0},
		{"base larger than modulus", 1, 30, 2, 23, 49 % 23},
		{"fermat", 1, 5, 22, 23, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FastModPowExtended(big.NewInt(tt.a), big.NewInt(tt.base), big.NewInt(tt.exp), big.NewInt(tt.mod))
			if got.Int64() != tt.want {
				t.Errorf("Expected %d, got %s", tt.want, got)
			}
		})
	}
}

func TestFastModPowExtendedMatchesExp(t *testing.T) {
	r := mrand.New(mrand.NewSource(7))
	for i := 0; i < 300; i++ {
		a := new(big.Int).Rand(r, new(big.Int).Lsh(one, 300))
		base := new(big.Int).Rand(r, new(big.Int).Lsh(one, 300))
		exp := new(big.Int).Rand(r, new(big.Int).Lsh(one, uint(r.Intn(300))))
		mod := new(big.Int).Rand(r, new(big.Int).Lsh(one, 256))
		mod.Add(mod, big.NewInt(2)) // modulus > 1

		want := new(big.Int).Exp(base, exp, mod)
		want.Mul(want, a)
		want.Mod(want, mod)

		got := FastModPowExtended(a, base, exp, mod)
		if got.Cmp(want) != 0 {
			t.Fatalf("mismatch for a=%s base=%s exp=%s mod=%s: got %s want %s", a, base, exp, mod, got, want)
		}
	}
}

func TestFastModPowExtendedNegativeOperands(t *testing.T) {
	mod := big.NewInt(23)
	// (-3) * (-2)^3 = 24 = 1 mod 23
	got := FastModPowExtended(big.NewInt(-3), big.NewInt(-2), big.NewInt(3), mod)
	if got.Int64() != 1 {
		t.Errorf("Expected 1, got %s", got)
	}
}

func TestFastModPowExtendedDoesNotMutate(t *testing.T) {
	a, base, exp, mod := big.NewInt(10), big.NewInt(8), big.NewInt(3), big.NewInt(23)
	FastModPowExtended(a, base, exp, mod)
	if a.Int64() != 10 || base.Int64() != 8 || exp.Int64() != 3 || mod.Int64() != 23 {
		t.Errorf("inputs were modified: %s %s %s %s", a, base, exp, mod)
	}
}

func TestModPow(t *testing.T) {
	if got := ModPow(big.NewInt(5), big.NewInt(3), big.NewInt(23)); got.Int64() != 10 {
		t.Errorf("Expected 10, got %s", got)
	}
	if got := ModPow(big.NewInt(10), big.NewInt(16), big.NewInt(23)); got.Int64() != 4 {
		t.Errorf("Expected 4, got %s", got)
	}
}

func TestPanics(t *testing.T) {
	cases := map[string]func(){
		"zero modulus":      func() { FastModPowExtended(one, one, one, big.NewInt(0)) },
		"negative modulus":  func() { ModPow(one, one, big.NewInt(-5)) },
		"negative exponent": func() { FastModPowExtended(one, one, big.NewInt(-1), big.NewInt(23)) },
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			fn()
		})
	}
}

func FuzzFastModPowExtended(f *testing.F) {
	f.Add([]byte{10}, []byte{8}, []byte{3}, []byte{23})
	f.Add([]byte{0}, []byte{0}, []byte{0}, []byte{2})
	f.Add([]byte{0xff, 0xff}, []byte{0x12, 0x34}, []byte{0xde, 0xad, 0xbe, 0xef}, []byte{0xff, 0xfb})

	f.Fuzz(func(t *testing.T, aB, baseB, expB, modB []byte) {
		mod := new(big.Int).SetBytes(modB)
		if mod.Cmp(one) <= 0 {
			return
		}
		a := new(big.Int).SetBytes(aB)
		base := new(big.Int).SetBytes(baseB)
		exp := new(big.Int).SetBytes(expB)

		want := new(big.Int).Exp(base, exp, mod)
		want.Mul(want, a)
		want.Mod(want, mod)

		if got := FastModPowExtended(a, base, exp, mod); got.Cmp(want) != 0 {
			t.Fatalf("got %s want %s", got, want)
		}
	})
}
