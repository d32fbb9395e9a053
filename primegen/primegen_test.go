package primegen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mentalpoker/sra/big"
)

func TestGenerate(t *testing.T) {
	for _, bits := range []uint{2, 8, 64, 128} {
		p, err := Generate(bits, nil, nil)
		require.NoError(t, err)
		require.NotNil(t, p)
		require.Equal(t, int(bits), p.BitLen(), "wrong size for %d bits", bits)
		require.True(t, p.ProbablyPrime(100), "generated number was not prime")
	}
}

func TestGenerateTooSmall(t *testing.T) {
	_, err := Generate(1, nil, nil)
	require.Error(t, err)
	_, err = Generate(0, nil, nil)
	require.Error(t, err)
}

func TestGenerateStopped(t *testing.T) {
	stop := make(chan struct{})
	close(stop)
	p, err := Generate(1024, nil, stop)
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestGenerateConcurrent(t *testing.T) {
	stop := make(chan struct{})
	ints, errs := GenerateConcurrent(128, stop)
	select {
	case p := <-ints:
		require.Equal(t, 128, p.BitLen())
		require.True(t, p.ProbablyPrime(100))
	case err := <-errs:
		t.Fatal(err)
	}
	close(stop)
}

func TestIsPrime(t *testing.T) {
	require.True(t, IsPrime(big.NewInt(23)))
	require.False(t, IsPrime(big.NewInt(21)))
}
