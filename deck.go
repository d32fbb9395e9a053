package sra

import (
	"github.com/go-errors/errors"

	"github.com/mentalpoker/sra/big"
	"github.com/mentalpoker/sra/internal/common"
)

// Deck is an ordered list of card codes over a shared prime modulus. Codes
// are always quadratic residues, so masking cannot leak a card's identity
// through its residue class.
type Deck struct {
	Prime *big.Int   `json:"prime"`
	Cards []*big.Int `json:"cards"`
}

// NewDeck deals n distinct card codes: the successive powers G^1..G^n of the
// group generator. Distinctness holds because the generator's order exceeds
// n, which is required.
func NewDeck(g *Group, n int) (*Deck, error) {
	if n < 1 {
		return nil, errors.Errorf("deck size %d out of range", n)
	}
	if big.NewInt(int64(n)).Cmp(g.Order) >= 0 {
		return nil, errors.Errorf("deck size %d exceeds the group order", n)
	}

	d := &Deck{
		Prime: new(big.Int).Set(g.P),
		Cards: make([]*big.Int, n),
	}
	e := new(big.Int)
	for i := range d.Cards {
		card := new(big.Int)
		g.GTable.Exp(card.Go(), e.SetInt64(int64(i+1)).Go())
		d.Cards[i] = card
	}
	return d, nil
}

// Mask returns a new deck with every card encrypted under kp. Masking with
// several players' keypairs composes in any order.
func (d *Deck) Mask(kp *Keypair) (*Deck, error) {
	return d.transform(kp, kp.Encrypt)
}

// Unmask returns a new deck with every card decrypted under kp.
func (d *Deck) Unmask(kp *Keypair) (*Deck, error) {
	return d.transform(kp, kp.Decrypt)
}

func (d *Deck) transform(kp *Keypair, f func(*big.Int) *big.Int) (*Deck, error) {
	if kp.Prime == nil || d.Prime.Cmp(kp.Prime) != 0 {
		return nil, errors.New("keypair modulus does not match the deck")
	}
	out := &Deck{
		Prime: d.Prime,
		Cards: make([]*big.Int, len(d.Cards)),
	}
	for i, c := range d.Cards {
		out.Cards[i] = f(c)
	}
	return out, nil
}

// Shuffle permutes the deck in place with a Fisher-Yates walk over the
// source. A nil source falls back to the process default.
func (d *Deck) Shuffle(source *common.Source) error {
	if source == nil {
		source = common.DefaultSource()
	}
	max := new(big.Int)
	for i := len(d.Cards) - 1; i > 0; i-- {
		j, err := source.Uniform(max.SetInt64(int64(i)))
		if err != nil {
			return err
		}
		k := int(j.Int64())
		d.Cards[i], d.Cards[k] = d.Cards[k], d.Cards[i]
	}
	return nil
}
