package common

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/go-errors/errors"

	"github.com/mentalpoker/sra/big"
)

// CPRNG is a simple thread-safe cryptographically secure pseudo-random number
// generator. Implemented with AES in counter mode with the seed as key and an
// atomic uint64 as counter.
type CPRNG struct {
	block   cipher.Block
	counter uint64
}

func NewCPRNG(seed *[32]byte) (*CPRNG, error) {
	c, err := aes.NewCipher(seed[:])
	if err != nil {
		return nil, err
	}
	return &CPRNG{
		block:   c,
		counter: 0,
	}, nil
}

func (c *CPRNG) Read(buf []byte) (n int, err error) {
	var pt, ct [16]byte
	n = len(buf)
	if n == 0 {
		return
	}

	// Number of blocks required
	nBlocks := uint64(((len(buf) - 1) / 16) + 1)

	// Atomically increment counter by the number of blocks and set iv to
	// the first available block.
	iv := atomic.AddUint64(&c.counter, nBlocks) - nBlocks
	for {
		binary.LittleEndian.PutUint64(pt[:], iv)
		iv++

		// Still 16 bytes to go?  Then encrypt directly into buf.
		if len(buf) >= 16 {
			c.block.Encrypt(buf, pt[:])
			buf = buf[16:]
			continue
		}
		if len(buf) == 0 {
			break
		}

		// Otherwise, encrypt into ct and copy into buf.
		c.block.Encrypt(ct[:], pt[:])
		copy(buf, ct[:len(buf)])
		break
	}
	return
}

// Source draws the random integers the engine needs. The reader determines
// the quality of the randomness; every operation takes the Source it should
// use, so tests can inject a deterministic reader instead of flipping
// process-wide state.
type Source struct {
	rnd    io.Reader
	secure bool
}

// NewSource wraps rnd. The secure flag only records whether the reader is
// cryptographically strong; the engine works either way but callers can
// refuse to deal with a weak source.
func NewSource(rnd io.Reader, secure bool) *Source {
	return &Source{rnd: rnd, secure: secure}
}

var defaultSource *Source

func init() {
	var seed [32]byte
	_, err := rand.Reader.Read(seed[:])
	if err != nil {
		panic(fmt.Sprintf("Failed to generate seed for CPRNG: %v", err))
	}
	cprng, err := NewCPRNG(&seed)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize CPRNG: %v", err))
	}
	defaultSource = NewSource(cprng, true)
}

// DefaultSource returns the process-wide source, backed by a CPRNG seeded
// from crypto/rand at startup. It is fixed for the process lifetime and
// read-only after init.
func DefaultSource() *Source {
	return defaultSource
}

// Secure reports whether the source was constructed over a cryptographically
// strong reader.
func (s *Source) Secure() bool {
	return s.secure
}

// Uniform returns a uniform random integer in [0, max], inclusive, via
// rejection sampling over the underlying reader.
func (s *Source) Uniform(max *big.Int) (*big.Int, error) {
	if max == nil || max.Sign() < 0 {
		return nil, errors.New("uniform draw needs a nonnegative bound")
	}
	bound := new(big.Int).Add(max, bigONE)
	return big.RandInt(s.rnd, bound)
}

// Bits returns a random integer of exactly n bits: the most significant bit
// is forced to 1 and the remaining n-1 bits are uniform.
func (s *Source) Bits(n uint) (*big.Int, error) {
	if n == 0 {
		return nil, errors.New("zero-width random draw")
	}
	top := new(big.Int).Lsh(bigONE, n-1)
	offset, err := big.RandInt(s.rnd, top)
	if err != nil {
		return nil, err
	}
	return offset.Add(offset, top), nil
}
