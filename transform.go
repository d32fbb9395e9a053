package sra

import (
	"github.com/mentalpoker/sra/big"
)

// Encrypt raises m to the encryption exponent modulo the keypair's prime.
// For 0 < m < prime the transform is inverted by Decrypt, and transforms
// under different keypairs over the same prime commute, which is what lets
// several players mask the same value in any order.
func (kp *Keypair) Encrypt(m *big.Int) *big.Int {
	return new(big.Int).Exp(m, kp.EncKey, kp.Prime)
}

// Decrypt raises c to the decryption exponent modulo the keypair's prime,
// inverting Encrypt by Fermat's little theorem.
func (kp *Keypair) Decrypt(c *big.Int) *big.Int {
	return new(big.Int).Exp(c, kp.DecKey, kp.Prime)
}
