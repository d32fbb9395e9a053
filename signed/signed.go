// Package signed authenticates the protocol messages players exchange:
// masked decks, residue lists and public keypair halves travel as
// ECDSA-signed CBOR so a player cannot swap cards in transit. It contains
// (1) convenience functions for ECDSA key handling and for signing and
// verifying byte slices;
// (2) functions for marshaling structs to signed bytes, and verifying and
// unmarshaling signed bytes back to structs.
package signed

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/asn1"
	"math/big"

	"github.com/go-errors/errors"

	"github.com/mentalpoker/sra/cbor"
)

type (
	// Message is a signed message, created and signed by MarshalSign, and
	// verified and parsed by UnmarshalVerify.
	Message []byte

	// message-signature tuple
	tuple struct {
		Msg, Sig []byte
	}
)

// GenerateKey creates a fresh P-256 identity key for a player.
func GenerateKey() (*ecdsa.PrivateKey, error) {
	return ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
}

// Identity key (un)marshaling, for exchanging verification keys before play.

func UnmarshalPublicKey(bts []byte) (*ecdsa.PublicKey, error) {
	genericPk, err := x509.ParsePKIXPublicKey(bts)
	if err != nil {
		return nil, err
	}
	pk, ok := genericPk.(*ecdsa.PublicKey)
	if !ok {
		return nil, errors.New("invalid ecdsa public key")
	}
	return pk, nil
}

func MarshalPublicKey(pk *ecdsa.PublicKey) ([]byte, error) {
	return x509.MarshalPKIXPublicKey(pk)
}

// Sign and verify bytes

func Sign(sk *ecdsa.PrivateKey, bts []byte) ([]byte, error) {
	hash := sha256.Sum256(bts)
	r, s, err := ecdsa.Sign(rand.Reader, sk, hash[:])
	if err != nil {
		return nil, err
	}
	return asn1.Marshal([]*big.Int{r, s})
}

func Verify(pk *ecdsa.PublicKey, bts []byte, signature []byte) error {
	ints := make([]*big.Int, 2)
	_, err := asn1.Unmarshal(signature, &ints)
	if err != nil {
		return err
	}
	hash := sha256.Sum256(bts)
	if !ecdsa.Verify(pk, hash[:], ints[0], ints[1]) {
		return errors.New("ecdsa signature was invalid")
	}
	return nil
}

// create, verify and (un)marshal signed messages

// MarshalSign marshals the message to deterministic CBOR, signs the resulting
// bytes, and returns signed message bytes suitable for verifying with
// UnmarshalVerify.
func MarshalSign(sk *ecdsa.PrivateKey, message interface{}) (Message, error) {
	bts, err := cbor.Marshal(message)
	if err != nil {
		return nil, err
	}

	signature, err := Sign(sk, bts)
	if err != nil {
		return nil, err
	}

	// encode and return message-signature pair
	return cbor.Marshal(&tuple{bts, signature})
}

// UnmarshalVerify verifies the signature of a Message created by MarshalSign,
// and unmarshals the message bytes into dst.
func UnmarshalVerify(pk *ecdsa.PublicKey, signed Message, dst interface{}) error {
	var tmp tuple
	if err := cbor.Unmarshal(signed, &tmp); err != nil {
		return err
	}

	if err := Verify(pk, tmp.Msg, tmp.Sig); err != nil {
		return err
	}

	return cbor.Unmarshal(tmp.Msg, dst)
}
