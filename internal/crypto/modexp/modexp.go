// Package modexp implements the modular exponentiation routines used by the
// parameter generator and the cipher.
package modexp

import "math/big"

var (
	one = big.NewInt(1)
)

// ModPow returns base^exp mod mod.
func ModPow(base, exp, mod *big.Int) *big.Int {
	checkArgs(exp, mod)
	return new(big.Int).Exp(base, exp, mod)
}

// FastModPowExtended returns a * (base^exp mod mod) mod mod.
//
// The exponent is consumed from its least significant bit upward with
// square-and-multiply; the product with a is folded in after the last bit.
// The cost is O(bitlen(exp)) modular multiplications.
func FastModPowExtended(a, base, exp, mod *big.Int) *big.Int {
	checkArgs(exp, mod)

	x := big.NewInt(1)
	power := new(big.Int).Mod(base, mod)
	for i := 0; i < exp.BitLen(); i++ {
		if exp.Bit(i) == 1 {
			x.Mul(x, power)
			x.Mod(x, mod)
		}
		power.Mul(power, power)
		power.Mod(power, mod)
	}

	// Extended step: x = a * x mod m
	x.Mul(a, x)
	x.Mod(x, mod)
	return x
}

// IsOne reports whether v == 1.
func IsOne(v *big.Int) bool {
	return v.Cmp(one) == 0
}

func checkArgs(exp, mod *big.Int) {
	if mod.Sign() <= 0 {
		panic("modexp: modulus must be positive")
	}
	if exp.Sign() < 0 {
		panic("modexp: negative exponent")
	}
}
