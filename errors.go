package sra

import (
	"github.com/go-errors/errors"

	"github.com/mentalpoker/sra/big"
)

// Boundary error taxonomy. A missing modular inverse during keypair
// generation is retried internally and never surfaces.
var (
	// ErrInvalidPrime is returned when a modulus that must be an odd prime
	// is not; operations fail fast instead of computing on garbage.
	ErrInvalidPrime = errors.New("modulus is not an odd prime")

	// ErrNonTerminating is returned when a bounded search exhausts its step
	// budget before producing what was asked for.
	ErrNonTerminating = errors.New("search exceeded its step bound")

	// ErrMalformedNumber is the boundary parsing failure, re-exported so
	// callers need not import the big package to match it.
	ErrMalformedNumber = big.ErrMalformed
)
