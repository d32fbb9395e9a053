package sra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentalpoker/sra/big"
)

func TestNewGroup(t *testing.T) {
	// 23 = 2*11 + 1 with 11 prime
	g, err := NewGroup(big.NewInt(23))
	require.NoError(t, err)
	require.Equal(t, int64(11), g.Order.Int64())
	require.Equal(t, int64(4), g.G.Int64())
}

func TestNewGroupRejects(t *testing.T) {
	_, err := NewGroup(big.NewInt(21)) // composite
	require.ErrorIs(t, err, ErrInvalidPrime)
	_, err = NewGroup(big.NewInt(29)) // prime, but 14 is not
	require.Error(t, err)
}

func TestGroupExpMatchesNaive(t *testing.T) {
	g, err := NewGroup(big.NewInt(1019)) // 509 prime
	require.NoError(t, err)

	ret := new(big.Int)
	for e := int64(0); e < 64; e++ {
		exp := big.NewInt(e)
		want := new(big.Int).Exp(g.G, exp, g.P)
		assert.Zero(t, want.Cmp(g.Exp(ret, exp)), "e=%d", e)
	}
}

func TestGroupIsResidue(t *testing.T) {
	g, err := NewGroup(big.NewInt(23))
	require.NoError(t, err)

	assert.True(t, g.IsResidue(big.NewInt(4)))
	assert.False(t, g.IsResidue(big.NewInt(5)))
	assert.False(t, g.IsResidue(big.NewInt(23)))
	assert.True(t, g.IsResidue(big.NewInt(27))) // 27 = 4 (mod 23)
}

func TestRandomResidue(t *testing.T) {
	g, err := NewGroup(big.NewInt(1019))
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		r, err := g.RandomResidue(nil)
		require.NoError(t, err)
		require.True(t, g.IsResidue(r), "sampled %v", r)

		e, err := CheckResidue(r, g.P)
		require.NoError(t, err)
		require.Equal(t, int64(1), e.Int64())
	}
}
