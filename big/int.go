// Package big contains a mostly API-compatible "math/big".Int whose string
// form carries the radix convention of the engine boundary: hexadecimal
// values are prefixed with "0x", decimal values are bare digit strings.
package big

import (
	cryptorand "crypto/rand"
	"encoding/json"
	"io"
	"math/big"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/go-errors/errors"
)

// Radix is the numeral base of an integer's string form on the boundary.
// Arithmetic never depends on it; it only governs parsing and rendering.
type Radix int

const (
	Dec Radix = 10
	Hex Radix = 16
)

const hexPrefix = "0x"

// ErrMalformed is returned when a boundary string is not a valid nonnegative
// integer in either supported radix.
var ErrMalformed = errors.New("malformed number string")

// Int is an API-compatible "math/big".Int. Only supports positive integers.
type Int big.Int

// ParseTagged parses a boundary string, inferring the radix from its prefix:
// a leading "0x" means base 16 (the prefix is stripped before parsing),
// anything else is read as base 10.
func ParseTagged(s string) (*Int, Radix, error) {
	radix := Dec
	digits := s
	if strings.HasPrefix(s, hexPrefix) {
		radix = Hex
		digits = s[len(hexPrefix):]
	}
	if digits == "" {
		return nil, radix, ErrMalformed
	}
	i, ok := new(Int).SetString(digits, int(radix))
	if !ok || i.Sign() < 0 {
		return nil, radix, ErrMalformed
	}
	return i, radix, nil
}

// Tagged renders i in the given radix, adding the "0x" prefix for base 16 so
// that ParseTagged recovers both the value and the radix.
func (i *Int) Tagged(r Radix) string {
	if r == Hex {
		return hexPrefix + i.Text(16)
	}
	return i.Text(10)
}

// MarshalText implements encoding.TextMarshaler, rendering i as a decimal
// string. Negative values never cross the boundary and are rejected.
func (i *Int) MarshalText() ([]byte, error) {
	if i.Sign() == -1 {
		return nil, errors.New("marshaling negative integers is not supported")
	}
	return []byte(i.Text(10)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting either a
// decimal or a "0x"-prefixed hexadecimal string.
func (i *Int) UnmarshalText(b []byte) error {
	parsed, _, err := ParseTagged(string(b))
	if err != nil {
		return err
	}
	i.Set(parsed)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler. Quoted input goes through
// ParseTagged; unquoted input is decoded as an ordinary JSON big integer.
func (i *Int) UnmarshalJSON(b []byte) error {
	if b[0] != '"' {
		return json.Unmarshal(b, i.Go())
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return i.UnmarshalText([]byte(s))
}

// MarshalCBOR implements cbor.Marshaler, encoding i as a big-endian byte
// string so that encodings stay tag-free and deterministic.
func (i *Int) MarshalCBOR() ([]byte, error) {
	if i.Sign() == -1 {
		return nil, errors.New("marshaling negative integers is not supported")
	}
	return cbor.Marshal(i.Bytes())
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (i *Int) UnmarshalCBOR(data []byte) error {
	var bts []byte
	if err := cbor.Unmarshal(data, &bts); err != nil {
		return err
	}
	i.SetBytes(bts)
	return nil
}

// RandInt wraps "crypto/rand".Int:
// returns a uniform random value in [0, max). It panics if max <= 0.
func RandInt(rnd io.Reader, max *Int) (*Int, error) {
	i, err := cryptorand.Int(rnd, max.Go())
	return Convert(i), err
}

// Convert from a "math/big".Int
func Convert(x *big.Int) *Int {
	return (*Int)(x)
}

// Convert to a "math/big".Int
func (i *Int) Go() *big.Int {
	return (*big.Int)(i)
}

// "math/big".Int API
// We are liberal with using the conversion functions above; these are inlined
// by the compiler.

func NewInt(x int64) *Int { return Convert(big.NewInt(x)) }

func (i *Int) Bit(j int) uint           { return i.Go().Bit(j) }
func (i *Int) Bytes() []byte            { return i.Go().Bytes() }
func (i *Int) BitLen() int              { return i.Go().BitLen() }
func (i *Int) Int64() int64             { return i.Go().Int64() }
func (i *Int) Uint64() uint64           { return i.Go().Uint64() }
func (i *Int) IsInt64() bool            { return i.Go().IsInt64() }
func (i *Int) Sign() int                { return i.Go().Sign() }
func (i *Int) Cmp(y *Int) int           { return i.Go().Cmp(y.Go()) }
func (i *Int) ProbablyPrime(n int) bool { return i.Go().ProbablyPrime(n) }
func (i *Int) String() string           { return i.Go().String() }
func (i *Int) Text(base int) string     { return i.Go().Text(base) }
func (i *Int) SetInt64(x int64) *Int    { return Convert(i.Go().SetInt64(x)) }
func (i *Int) SetUint64(x uint64) *Int  { return Convert(i.Go().SetUint64(x)) }
func (i *Int) Set(x *Int) *Int          { return Convert(i.Go().Set(x.Go())) }
func (i *Int) Add(x, y *Int) *Int       { return Convert(i.Go().Add(x.Go(), y.Go())) }
func (i *Int) Sub(x, y *Int) *Int       { return Convert(i.Go().Sub(x.Go(), y.Go())) }
func (i *Int) Mul(x, y *Int) *Int       { return Convert(i.Go().Mul(x.Go(), y.Go())) }
func (i *Int) Quo(x, y *Int) *Int       { return Convert(i.Go().Quo(x.Go(), y.Go())) }
func (i *Int) Rem(x, y *Int) *Int       { return Convert(i.Go().Rem(x.Go(), y.Go())) }
func (i *Int) Div(x, y *Int) *Int       { return Convert(i.Go().Div(x.Go(), y.Go())) }
func (i *Int) Mod(x, y *Int) *Int       { return Convert(i.Go().Mod(x.Go(), y.Go())) }
func (i *Int) SetBytes(buf []byte) *Int { return Convert(i.Go().SetBytes(buf)) }
func (i *Int) Lsh(x *Int, n uint) *Int  { return Convert(i.Go().Lsh(x.Go(), n)) }
func (i *Int) Rsh(x *Int, n uint) *Int  { return Convert(i.Go().Rsh(x.Go(), n)) }
func (i *Int) And(x, y *Int) *Int       { return Convert(i.Go().And(x.Go(), y.Go())) }
func (i *Int) Exp(x, y, m *Int) *Int {
	return Convert(i.Go().Exp(x.Go(), y.Go(), m.Go()))
}
func (i *Int) GCD(x, y, a, b *Int) *Int {
	return Convert(i.Go().GCD(x.Go(), y.Go(), a.Go(), b.Go()))
}
func (i *Int) ModInverse(g, n *Int) *Int {
	return Convert(i.Go().ModInverse(g.Go(), n.Go()))
}
func (i *Int) SetString(s string, base int) (*Int, bool) {
	z, b := i.Go().SetString(s, base)
	return Convert(z), b
}
func (i *Int) DivMod(x, y, m *Int) (*Int, *Int) {
	z, w := i.Go().DivMod(x.Go(), y.Go(), m.Go())
	return Convert(z), Convert(w)
}
