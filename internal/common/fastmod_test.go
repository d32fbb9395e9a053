package common

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mentalpoker/sra/big"
)

func TestFastMod(t *testing.T) {
	randomSource := rand.New(rand.NewSource(1))

	moduli := []*big.Int{
		big.NewInt(23),
		// 2^61 - 1, the fast path's favorite shape
		new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 61), big.NewInt(1)),
		// a modulus with no 2^b - c shape, exercising the fallback
		new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 127), new(big.Int).Lsh(big.NewInt(1), 90)),
	}
	limit := new(big.Int).Lsh(big.NewInt(1), 256)

	for _, p := range moduli {
		var fm FastMod
		fm.Set(p)
		for i := 0; i < 200; i++ {
			x := new(big.Int)
			x.Go().Rand(randomSource, limit.Go())
			want := new(big.Int).Mod(x, p)
			got := fm.Mod(new(big.Int), x)
			assert.Zero(t, want.Cmp(got), "x=%v p=%v", x, p)
		}
	}
}
