package common

import (
	"github.com/mentalpoker/sra/big"
)

// SmallPrimes is a list of small prime numbers that allows us to rapidly
// exclude some fraction of composite candidates when searching for a random
// prime. This list is truncated at the point where SmallPrimesProduct exceeds
// a uint64. It does not include two because the prime search skips even
// candidates up front.
var SmallPrimes = []uint8{
	3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53,
}

// SmallPrimesProduct is the product of the values in SmallPrimes and allows us
// to reduce a candidate prime by this number and then determine whether it's
// coprime with all the elements of SmallPrimes without further big.Int
// operations.
var SmallPrimesProduct = new(big.Int).SetUint64(16294579238595022365)

// HasSmallFactor reports whether x has a factor in SmallPrimes while not
// being that prime itself, so small primes survive the sieve. This check is
// much cheaper than a Miller-Rabin round.
func HasSmallFactor(x *big.Int) bool {
	mod := new(big.Int).Mod(x, SmallPrimesProduct).Uint64()
	for _, prime := range SmallPrimes {
		if mod%uint64(prime) == 0 && (x.BitLen() > 6 || x.Uint64() != uint64(prime)) {
			return true
		}
	}
	return false
}
