// Package primegen produces random probable primes of an exact bit length.
//
// The search draws a candidate with its top bit forced to 1 and walks
// downward one step at a time until the primality test passes. The walk is
// not uniform over primes of the requested size: a prime sitting below a wide
// composite gap is found more often than its neighbors. That bias is part of
// the protocol's generation contract and is harmless for its purposes.
package primegen

import (
	"runtime"
	"sync"

	"github.com/go-errors/errors"

	"github.com/mentalpoker/sra/big"
	"github.com/mentalpoker/sra/internal/common"
)

// Rounds of Miller-Rabin used everywhere a primality decision is needed.
// The provider's test is treated as ground truth at this strength.
const Rounds = 40

// ErrNonTerminating is returned when a search runs out of its step budget
// before finding a prime.
var ErrNonTerminating = errors.New("prime search exceeded its step bound")

// IsPrime reports whether x is probably prime.
func IsPrime(x *big.Int) bool {
	return x.ProbablyPrime(Rounds)
}

// Generate returns a random probable prime of exactly the given bit length.
// A nil source falls back to the process default.
//
// If the downward walk crosses the power-of-two boundary the candidate would
// shrink below the requested size, so the search redraws instead of returning
// an undersized prime. The walk is bounded; by the prime number theorem the
// budget of 100*bits steps is orders of magnitude beyond the expected gap, so
// ErrNonTerminating only fires on degenerate input.
//
// To cancel the search, send a struct{} on the stop parameter or close() it.
// A cancelled search returns nil, nil.
func Generate(bits uint, source *common.Source, stop <-chan struct{}) (*big.Int, error) {
	if bits < 2 {
		return nil, errors.Errorf("prime size must be at least 2 bits, got %d", bits)
	}
	if source == nil {
		source = common.DefaultSource()
	}

	var (
		one = big.NewInt(1)
		two = big.NewInt(2)
	)

	candidate, err := source.Bits(bits)
	if err != nil {
		return nil, err
	}

	budget := 100 * int(bits)
	for i := 0; i < budget; i++ {
		// Check for cancellation every so often, including before any work.
		if stop != nil && i%256 == 0 {
			select {
			case <-stop:
				return nil, nil
			default:
			}
		}

		if candidate.BitLen() < int(bits) {
			// Decrementing crossed the power-of-two boundary; the result
			// would be shorter than requested, so start over.
			if candidate, err = source.Bits(bits); err != nil {
				return nil, err
			}
		}

		odd := candidate.Bit(0) == 1 || candidate.Cmp(two) == 0
		if odd && !common.HasSmallFactor(candidate) && candidate.ProbablyPrime(Rounds) {
			return candidate, nil
		}

		candidate.Sub(candidate, one)
	}

	return nil, ErrNonTerminating
}

// GenerateConcurrent concurrently and continuously generates primes of the
// given bit length on all CPU cores, until the stop channel receives a struct
// or is closed. If an error is encountered, generation is stopped in all
// goroutines, and the error is sent on the second return parameter.
func GenerateConcurrent(bits uint, stop chan struct{}) (<-chan *big.Int, <-chan error) {
	count := runtime.GOMAXPROCS(0)
	ints := make(chan *big.Int, count)
	errs := make(chan error, count)

	// The goroutines below need a channel that is close()d to stop them all:
	// just sending a struct{}{} would stop one but not the rest. Instead of
	// requiring the caller to close() the stop parameter we use our own chan,
	// so that all goroutines stop whether the caller close()s or sends.
	stopped := make(chan struct{})
	var once sync.Once
	halt := func() { once.Do(func() { close(stopped) }) }
	go func() {
		select {
		case <-stop:
			halt()
		case <-stopped: // also closed by a goroutine that hit an error
		}
	}()

	for i := 0; i < count; i++ {
		go func() {
			for {
				x, err := Generate(bits, nil, stopped)
				if err != nil {
					errs <- err
					halt()
					return
				}
				if x == nil {
					// stopped mid-search
					return
				}

				// Only send the result and continue generating if we have
				// not been told to stop.
				select {
				case <-stopped:
					return
				default:
					ints <- x
					continue
				}
			}
		}()
	}

	return ints, errs
}
