package sra

import (
	"github.com/go-errors/errors"

	"github.com/mentalpoker/sra/big"
	"github.com/mentalpoker/sra/internal/common"
	"github.com/mentalpoker/sra/primegen"
)

// QuadResidueSeries returns the first n quadratic residues modulo prime found
// by scanning upward from (prime-1)/2 - 1, testing each candidate against
// Euler's criterion. The output is strictly increasing.
//
// Despite serving an operation named "random", the series is fully
// deterministic in prime and n. The scan origin and order are part of the
// wire contract: peers regenerate the identical series from the same prime,
// so the card codes need never travel.
func QuadResidueSeries(prime *big.Int, n int) ([]*big.Int, error) {
	if n < 0 {
		return nil, errors.Errorf("cannot generate %d residues", n)
	}
	if prime.Cmp(bigTwo) <= 0 || prime.Bit(0) == 0 || !primegen.IsPrime(prime) {
		return nil, ErrInvalidPrime
	}

	phi := new(big.Int).Sub(prime, bigOne)
	exp := new(big.Int).Rsh(phi, 1)
	candidate := new(big.Int).Sub(exp, bigOne)

	// Half of the nonzero residue classes are quadratic residues, so the
	// expected scan length is a shade over 2n. The budget only trips when a
	// caller asks a tiny prime for more residues than exist nearby.
	budget := 16*n + 4096

	out := make([]*big.Int, 0, n)
	e := new(big.Int)
	for i := 0; i < budget && len(out) < n; i++ {
		e.Exp(candidate, exp, prime)
		if e.Cmp(bigOne) == 0 {
			out = append(out, new(big.Int).Set(candidate))
		}
		candidate.Add(candidate, bigOne)
	}
	if len(out) < n {
		return nil, ErrNonTerminating
	}
	return out, nil
}

// CheckResidues classifies each value by Euler's criterion, returning
// v^((prime-1)/2) mod prime per value: 1 when v is a quadratic residue
// modulo prime, prime-1 when it is not (prime being an odd prime). Elements
// are independent; order does not matter and callers may split the batch
// across goroutines.
func CheckResidues(values []*big.Int, prime *big.Int) ([]*big.Int, error) {
	if prime.Cmp(bigTwo) <= 0 || prime.Bit(0) == 0 || !primegen.IsPrime(prime) {
		return nil, ErrInvalidPrime
	}

	exp := new(big.Int).Rsh(new(big.Int).Sub(prime, bigOne), 1)

	// Values may be much wider than the modulus; one cheap reduction up
	// front beats handing the full width to Exp.
	var pm common.FastMod
	pm.Set(prime)

	out := make([]*big.Int, len(values))
	for i, v := range values {
		r := pm.Mod(new(big.Int), v)
		out[i] = r.Exp(r, exp, prime)
	}
	return out, nil
}

// CheckResidue is the single-value form of CheckResidues.
func CheckResidue(v, prime *big.Int) (*big.Int, error) {
	out, err := CheckResidues([]*big.Int{v}, prime)
	if err != nil {
		return nil, err
	}
	return out[0], nil
}
