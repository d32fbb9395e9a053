package sra

import (
	"github.com/bwesterb/go-exptable"
	"github.com/go-errors/errors"

	"github.com/mentalpoker/sra/big"
	"github.com/mentalpoker/sra/internal/common"
	"github.com/mentalpoker/sra/primegen"
)

// Group is the subgroup of quadratic residues modulo a safe prime P. For a
// safe prime the residues form a cyclic group of prime order (P-1)/2, so any
// residue other than 1 generates all of them; we fix G = 4 = 2^2, the
// smallest nontrivial square.
type Group struct {
	P     *big.Int
	Order *big.Int
	G     *big.Int

	GTable exptable.Table
	PMod   common.FastMod
}

// NewGroup validates that prime is a safe prime and precomputes the
// fixed-base exponentiation table for the generator.
func NewGroup(prime *big.Int) (*Group, error) {
	if prime.Cmp(bigTwo) <= 0 || prime.Bit(0) == 0 || !primegen.IsPrime(prime) {
		return nil, ErrInvalidPrime
	}
	order := new(big.Int).Rsh(prime, 1)
	if !primegen.IsPrime(order) {
		return nil, errors.New("modulus is not a safe prime")
	}

	g := &Group{
		P:     new(big.Int).Set(prime),
		Order: order,
		G:     big.NewInt(4),
	}
	g.GTable.Compute(g.G.Go(), g.P.Go(), 7)
	g.PMod.Set(g.P)
	return g, nil
}

// Exp sets ret to G^exp mod P using the precomputed table and returns ret.
func (g *Group) Exp(ret, exp *big.Int) *big.Int {
	var e big.Int
	e.Mod(exp, g.Order)
	g.GTable.Exp(ret.Go(), e.Go())
	return ret
}

// RandomResidue samples a uniform element of the residue subgroup by raising
// the generator to a uniform exponent.
func (g *Group) RandomResidue(source *common.Source) (*big.Int, error) {
	if source == nil {
		source = common.DefaultSource()
	}
	max := new(big.Int).Sub(g.Order, bigOne)
	r, err := source.Uniform(max)
	if err != nil {
		return nil, err
	}
	res := new(big.Int)
	g.GTable.Exp(res.Go(), r.Go())
	return res, nil
}

// IsResidue reports whether v is a quadratic residue modulo P. Multiples of
// P are not group members and report false.
func (g *Group) IsResidue(v *big.Int) bool {
	r := g.PMod.Mod(new(big.Int), v)
	if r.Sign() == 0 {
		return false
	}
	return common.LegendreSymbol(r, g.P) == 1
}
