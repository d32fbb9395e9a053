package sra

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mentalpoker/sra/big"
)

// The worked example: p = 23, e = 7, d = 19 (7*19 = 133 = 6*22+1).
func testKeypair23() *Keypair {
	return &Keypair{
		EncKey: big.NewInt(7),
		DecKey: big.NewInt(19),
		Prime:  big.NewInt(23),
	}
}

func TestTransformVectors(t *testing.T) {
	kp := testKeypair23()

	c := kp.Encrypt(big.NewInt(5))
	require.Equal(t, int64(17), c.Int64()) // 5^7 mod 23

	m := kp.Decrypt(big.NewInt(17))
	require.Equal(t, int64(5), m.Int64()) // 17^19 mod 23
}

func TestRoundTrip(t *testing.T) {
	kp := testKeypair23()
	for m := int64(1); m < 23; m++ {
		v := big.NewInt(m)
		require.Zero(t, v.Cmp(kp.Decrypt(kp.Encrypt(v))), "m=%d", m)
		require.Zero(t, v.Cmp(kp.Encrypt(kp.Decrypt(v))), "m=%d", m)
	}
}

func TestCommutativity(t *testing.T) {
	p := big.NewInt(23)
	a, err := GenerateKeypair(p, nil)
	require.NoError(t, err)
	b, err := GenerateKeypair(p, nil)
	require.NoError(t, err)

	for m := int64(1); m < 23; m++ {
		v := big.NewInt(m)
		// mask under a then b, unmask under a then b
		masked := b.Encrypt(a.Encrypt(v))
		out := b.Decrypt(a.Decrypt(masked))
		require.Zero(t, v.Cmp(out), "m=%d", m)
	}
}

func TestCommutativityLarge(t *testing.T) {
	p, ok := new(big.Int).SetString("ffffffffffffffffffffffffffffff61", 16)
	require.True(t, ok)
	require.True(t, p.ProbablyPrime(64))

	a, err := GenerateKeypair(p, nil)
	require.NoError(t, err)
	b, err := GenerateKeypair(p, nil)
	require.NoError(t, err)

	m := big.NewInt(0xdeadbeef)
	masked := b.Encrypt(a.Encrypt(m))
	require.Zero(t, m.Cmp(a.Decrypt(b.Decrypt(masked))))
}
