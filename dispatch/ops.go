package dispatch

import (
	"context"
	"strconv"

	"github.com/go-errors/errors"

	sra "github.com/mentalpoker/sra"
	"github.com/mentalpoker/sra/big"
	"github.com/mentalpoker/sra/primegen"
)

// randomPrime(bitLength, radix = 16) -> [prime]
func (e *Engine) randomPrime(ctx context.Context, params []string) ([]string, error) {
	if len(params) < 1 || len(params) > 2 {
		return nil, errors.Errorf("randomPrime takes 1 or 2 parameters, got %d", len(params))
	}
	bits, err := strconv.ParseUint(params[0], 10, 16)
	if err != nil {
		return nil, errors.Errorf("bad bit length %q", params[0])
	}
	radix := big.Hex
	if len(params) == 2 {
		switch params[1] {
		case "10":
			radix = big.Dec
		case "16":
			radix = big.Hex
		default:
			return nil, errors.Errorf("unsupported radix %q", params[1])
		}
	}

	p, err := primegen.Generate(uint(bits), e.source, ctx.Done())
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ctx.Err()
	}
	return []string{p.Tagged(radix)}, nil
}

// checkPrime(prime) -> ["true"|"false"]
func checkPrime(params []string) ([]string, error) {
	if len(params) != 1 {
		return nil, errors.Errorf("checkPrime takes 1 parameter, got %d", len(params))
	}
	p, _, err := big.ParseTagged(params[0])
	if err != nil {
		return nil, err
	}
	return []string{strconv.FormatBool(primegen.IsPrime(p))}, nil
}

// randomKeypair(prime) -> [encKey, decKey, prime], all in the prime's radix
func (e *Engine) randomKeypair(params []string) ([]string, error) {
	if len(params) != 1 {
		return nil, errors.Errorf("randomKeypair takes 1 parameter, got %d", len(params))
	}
	p, radix, err := big.ParseTagged(params[0])
	if err != nil {
		return nil, err
	}
	kp, err := sra.GenerateKeypair(p, e.source)
	if err != nil {
		return nil, err
	}
	return []string{
		kp.EncKey.Tagged(radix),
		kp.DecKey.Tagged(radix),
		kp.Prime.Tagged(radix),
	}, nil
}

// randomQuadResidues(prime, numValues) -> residues in the prime's radix
func randomQuadResidues(params []string) ([]string, error) {
	if len(params) != 2 {
		return nil, errors.Errorf("randomQuadResidues takes 2 parameters, got %d", len(params))
	}
	p, radix, err := big.ParseTagged(params[0])
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(params[1])
	if err != nil || n < 0 {
		return nil, errors.Errorf("bad residue count %q", params[1])
	}
	series, err := sra.QuadResidueSeries(p, n)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(series))
	for i, v := range series {
		out[i] = v.Tagged(radix)
	}
	return out, nil
}

// checkResidues(residues..., prime) -> classifications, each in its value's
// own radix. The prime travels last, after the values it classifies.
func checkResidues(params []string) ([]string, error) {
	if len(params) < 2 {
		return nil, errors.Errorf("checkResidues takes values and a prime, got %d parameters", len(params))
	}
	p, _, err := big.ParseTagged(params[len(params)-1])
	if err != nil {
		return nil, err
	}

	values := make([]*big.Int, len(params)-1)
	radixes := make([]big.Radix, len(values))
	for i, s := range params[:len(params)-1] {
		if values[i], radixes[i], err = big.ParseTagged(s); err != nil {
			return nil, err
		}
	}

	results, err := sra.CheckResidues(values, p)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Tagged(radixes[i])
	}
	return out, nil
}

// encrypt/decrypt(value, encKey, decKey, prime) -> [result], in the value's
// radix. The keypair's shared radix is carried by its key fields; it does
// not affect the result's rendering.
func transform(params []string, encrypt bool) ([]string, error) {
	if len(params) != 4 {
		return nil, errors.Errorf("transform takes 4 parameters, got %d", len(params))
	}
	value, radix, err := big.ParseTagged(params[0])
	if err != nil {
		return nil, err
	}
	enc, keyRadix, err := big.ParseTagged(params[1])
	if err != nil {
		return nil, err
	}
	dec, _, err := big.ParseTagged(params[2])
	if err != nil {
		return nil, err
	}
	prime, _, err := big.ParseTagged(params[3])
	if err != nil {
		return nil, err
	}

	kp := &sra.Keypair{EncKey: enc, DecKey: dec, Prime: prime, Radix: keyRadix}
	if err := kp.Validate(); err != nil {
		return nil, err
	}

	var result *big.Int
	if encrypt {
		result = kp.Encrypt(value)
	} else {
		result = kp.Decrypt(value)
	}
	return []string{result.Tagged(radix)}, nil
}
