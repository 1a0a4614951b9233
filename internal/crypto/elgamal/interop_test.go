package elgamal

import (
	"bytes"
	"crypto/rand"
	"io"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	openpgp "golang.org/x/crypto/openpgp/elgamal"
)

// pkcs1Pad builds the 0x02 || PS || 0x00 || msg block expected by the
// OpenPGP ElGamal implementation, as an integer.
func pkcs1Pad(t *testing.T, msg []byte, p *big.Int) *big.Int {
	t.Helper()
	k := (p.BitLen() + 7) / 8
	require.LessOrEqual(t, len(msg), k-11, "message too long for modulus")

	em := make([]byte, k-1)
	em[0] = 2
	ps := em[1 : len(em)-len(msg)-1]
	_, err := io.ReadFull(rand.Reader, ps)
	require.NoError(t, err)
	for i := range ps {
		for ps[i] == 0 {
			_, err = io.ReadFull(rand.Reader, ps[i:i+1])
			require.NoError(t, err)
		}
	}
	em[len(em)-len(msg)-1] = 0
	copy(em[len(em)-len(msg):], msg)
	return new(big.Int).SetBytes(em)
}

func toOpenPGP(priv *PrivateKey) *openpgp.PrivateKey {
	return &openpgp.PrivateKey{
		PublicKey: openpgp.PublicKey{G: priv.G, P: priv.P, Y: priv.Y},
		X:         priv.X,
	}
}

func TestInteropOpenPGPDecryptsOurs(t *testing.T) {
	params := generatedParams(t, 512)
	alice, err := GenerateKey(rand.Reader, params, 100)
	require.NoError(t, err)
	bob, err := GenerateKey(rand.Reader, params, 100)
	require.NoError(t, err)

	msg := []byte("i am a squid")
	m := pkcs1Pad(t, msg, params.P)

	for name, encrypt := range map[string]func() (*Ciphertext, error){
		"sender key": func() (*Ciphertext, error) { return Encrypt(alice.Public(), bob, m) },
		"fresh":      func() (*Ciphertext, error) { return EncryptFresh(rand.Reader, alice.Public(), m) },
	} {
		t.Run(name, func(t *testing.T) {
			ct, err := encrypt()
			require.NoError(t, err)

			out, err := openpgp.Decrypt(toOpenPGP(alice), ct.C1, ct.C2)
			require.NoError(t, err)
			assert.Equal(t, msg, out)
		})
	}
}

func TestInteropWeDecryptOpenPGP(t *testing.T) {
	params := generatedParams(t, 512)
	alice, err := GenerateKey(rand.Reader, params, 100)
	require.NoError(t, err)

	msg := []byte("hello, elgamal")
	pub := toOpenPGP(alice).PublicKey
	c1, c2, err := openpgp.Encrypt(rand.Reader, &pub, msg)
	require.NoError(t, err)

	m, err := Decrypt(alice, &Ciphertext{C1: c1, C2: c2})
	require.NoError(t, err)

	em := m.Bytes()
	require.NotEmpty(t, em)
	assert.Equal(t, byte(2), em[0])
	assert.True(t, bytes.HasSuffix(em, append([]byte{0}, msg...)))
}
