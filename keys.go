package sra

import (
	"encoding/json"

	"github.com/go-errors/errors"

	"github.com/mentalpoker/sra/big"
	"github.com/mentalpoker/sra/internal/common"
	"github.com/mentalpoker/sra/primegen"
)

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)

// Keypair is a commutative encryption/decryption exponent pair over a prime
// modulus, satisfying EncKey*DecKey = 1 (mod Prime-1). Because the transform
// is plain modular exponentiation, either exponent can play the encryption
// role and the other the decryption role; the fields are fixed in value once
// generated but interchangeable by role swap.
//
// Keys are ephemeral: nothing in this package stores them.
type Keypair struct {
	EncKey *big.Int
	DecKey *big.Int
	Prime  *big.Int

	// Radix is the base used for all three fields when the keypair crosses
	// the boundary. The zero value renders as decimal.
	Radix big.Radix
}

// Downward steps the invertibility search may take before giving up. Since
// half of all residues are coprime with any even modulus at worst, the bound
// is never reached for a genuine prime modulus.
const maxInverseSteps = 1 << 16

// GenerateKeypair derives a fresh keypair for the given odd prime modulus.
// A nil source falls back to the process default.
//
// The encryption exponent starts as a random integer of the same bit length
// as prime-1 (top bit forced) and walks downward until it is invertible
// modulo prime-1. The walk makes keys just below densely non-invertible
// stretches slightly more likely than a uniform draw would; that bias is
// acceptable for this protocol.
func GenerateKeypair(prime *big.Int, source *common.Source) (*Keypair, error) {
	if source == nil {
		source = common.DefaultSource()
	}
	if prime.Cmp(bigTwo) <= 0 || prime.Bit(0) == 0 || !primegen.IsPrime(prime) {
		return nil, ErrInvalidPrime
	}

	phi := new(big.Int).Sub(prime, bigOne)
	enc, err := source.Bits(uint(phi.BitLen()))
	if err != nil {
		return nil, err
	}

	for i := 0; i < maxInverseSteps && enc.Sign() > 0; i++ {
		if dec, ok := common.ModInverse(enc, phi); ok {
			return &Keypair{
				EncKey: enc,
				DecKey: dec,
				Prime:  new(big.Int).Set(prime),
				Radix:  big.Dec,
			}, nil
		}
		enc.Sub(enc, bigOne)
	}

	return nil, ErrNonTerminating
}

// Validate checks that the modulus is an odd prime and that the exponents are
// multiplicative inverses modulo Prime-1.
func (kp *Keypair) Validate() error {
	if kp.EncKey == nil || kp.DecKey == nil || kp.Prime == nil {
		return errors.New("incomplete keypair")
	}
	if kp.Prime.Cmp(bigTwo) <= 0 || kp.Prime.Bit(0) == 0 || !primegen.IsPrime(kp.Prime) {
		return ErrInvalidPrime
	}
	phi := new(big.Int).Sub(kp.Prime, bigOne)
	check := new(big.Int).Mul(kp.EncKey, kp.DecKey)
	check.Mod(check, phi)
	if check.Cmp(bigOne) != 0 {
		return errors.New("exponents are not inverses modulo prime-1")
	}
	return nil
}

// Swapped returns the keypair with the exponent roles exchanged. The result
// shares the underlying integers; it decrypts what the original encrypts.
func (kp *Keypair) Swapped() *Keypair {
	return &Keypair{
		EncKey: kp.DecKey,
		DecKey: kp.EncKey,
		Prime:  kp.Prime,
		Radix:  kp.Radix,
	}
}

// wire form; all three fields share one radix
type keypairJSON struct {
	EncKey string `json:"encKey"`
	DecKey string `json:"decKey"`
	Prime  string `json:"prime"`
}

// MarshalJSON renders all three fields as strings in the keypair's radix.
func (kp *Keypair) MarshalJSON() ([]byte, error) {
	if kp.EncKey == nil || kp.DecKey == nil || kp.Prime == nil {
		return nil, errors.New("incomplete keypair")
	}
	return json.Marshal(keypairJSON{
		EncKey: kp.EncKey.Tagged(kp.Radix),
		DecKey: kp.DecKey.Tagged(kp.Radix),
		Prime:  kp.Prime.Tagged(kp.Radix),
	})
}

// UnmarshalJSON parses the wire form, inferring the shared radix from the
// encKey field.
func (kp *Keypair) UnmarshalJSON(b []byte) error {
	var wire keypairJSON
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	enc, radix, err := big.ParseTagged(wire.EncKey)
	if err != nil {
		return err
	}
	dec, _, err := big.ParseTagged(wire.DecKey)
	if err != nil {
		return err
	}
	prime, _, err := big.ParseTagged(wire.Prime)
	if err != nil {
		return err
	}
	kp.EncKey, kp.DecKey, kp.Prime, kp.Radix = enc, dec, prime, radix
	return nil
}
