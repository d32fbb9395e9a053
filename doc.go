// Package sra implements the arithmetic core of the SRA commutative
// cryptosystem used by mental-poker style card protocols: random prime
// generation, commutative keypair derivation, quadratic-residue series and
// classification, and modular-exponentiation masking. Values cross the
// process boundary as radix-tagged strings; see the big and dispatch
// packages for the conventions.
package sra
