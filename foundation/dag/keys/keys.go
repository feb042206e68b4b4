// Package keys provides the Ed25519 signing primitives used to establish
// transaction authenticity.
package keys

import (
	"crypto/ed25519"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// PublicKeySize is the length in bytes of a public key.
const PublicKeySize = 32

// SignatureSize is the length in bytes of a signature.
const SignatureSize = 64

// SecretKeySize is the length in bytes of the private scalar.
const SecretKeySize = 32

// =============================================================================

// PublicKey is a 32 byte Ed25519 public key. Value type, byte-equality
// comparable, usable as a map key.
type PublicKey [PublicKeySize]byte

// PublicKeyFromBytes constructs a public key from a raw 32 byte slice.
func PublicKeyFromBytes(data []byte) (PublicKey, error) {
	if len(data) != PublicKeySize {
		return PublicKey{}, fmt.Errorf("public key must be %d bytes, got %d", PublicKeySize, len(data))
	}

	var pub PublicKey
	copy(pub[:], data)
	return pub, nil
}

// PublicKeyFromString constructs a public key from its hex string form.
func PublicKeyFromString(s string) (PublicKey, error) {
	data, err := hexutil.Decode(s)
	if err != nil {
		return PublicKey{}, fmt.Errorf("decoding public key: %w", err)
	}

	return PublicKeyFromBytes(data)
}

// Verify reports whether the signature over the message was produced by the
// private key matching this public key. It is a pure predicate and never
// returns an error for malformed input.
func (pub PublicKey) Verify(message []byte, sig Signature) bool {
	return ed25519.Verify(ed25519.PublicKey(pub[:]), message, sig[:])
}

// Bytes returns the public key as a byte slice.
func (pub PublicKey) Bytes() []byte {
	return append([]byte(nil), pub[:]...)
}

// String implements the fmt.Stringer interface.
func (pub PublicKey) String() string {
	return hexutil.Encode(pub[:])
}

// MarshalText implements the encoding.TextMarshaler interface.
func (pub PublicKey) MarshalText() ([]byte, error) {
	return []byte(hexutil.Encode(pub[:])), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (pub *PublicKey) UnmarshalText(data []byte) error {
	p, err := PublicKeyFromString(string(data))
	if err != nil {
		return err
	}

	*pub = p
	return nil
}

// =============================================================================

// Signature is a 64 byte Ed25519 signature.
type Signature [SignatureSize]byte

// SignatureFromBytes constructs a signature from a raw 64 byte slice.
func SignatureFromBytes(data []byte) (Signature, error) {
	if len(data) != SignatureSize {
		return Signature{}, fmt.Errorf("signature must be %d bytes, got %d", SignatureSize, len(data))
	}

	var sig Signature
	copy(sig[:], data)
	return sig, nil
}

// String implements the fmt.Stringer interface.
func (sig Signature) String() string {
	return hexutil.Encode(sig[:])
}

// MarshalText implements the encoding.TextMarshaler interface.
func (sig Signature) MarshalText() ([]byte, error) {
	return []byte(hexutil.Encode(sig[:])), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (sig *Signature) UnmarshalText(data []byte) error {
	raw, err := hexutil.Decode(string(data))
	if err != nil {
		return fmt.Errorf("decoding signature: %w", err)
	}

	s, err := SignatureFromBytes(raw)
	if err != nil {
		return err
	}

	*sig = s
	return nil
}

// =============================================================================

// KeyPair holds a private scalar and its public key. The private scalar is
// never serialized into transaction data.
type KeyPair struct {
	priv ed25519.PrivateKey
	pub  PublicKey
}

// Generate creates a new random key pair.
func Generate() (KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return KeyPair{}, fmt.Errorf("generating key pair: %w", err)
	}

	var kp KeyPair
	kp.priv = priv
	copy(kp.pub[:], pub)
	return kp, nil
}

// FromSecretBytes restores a key pair from its 32 byte private scalar.
func FromSecretBytes(data []byte) (KeyPair, error) {
	if len(data) != SecretKeySize {
		return KeyPair{}, fmt.Errorf("secret key must be %d bytes, got %d", SecretKeySize, len(data))
	}

	priv := ed25519.NewKeyFromSeed(data)

	var kp KeyPair
	kp.priv = priv
	copy(kp.pub[:], priv.Public().(ed25519.PublicKey))
	return kp, nil
}

// PublicKey returns the public half of the pair.
func (kp KeyPair) PublicKey() PublicKey {
	return kp.pub
}

// SecretBytes returns the 32 byte private scalar for keystore persistence.
func (kp KeyPair) SecretBytes() []byte {
	return append([]byte(nil), kp.priv.Seed()...)
}

// Sign produces a deterministic signature over the message bytes.
func (kp KeyPair) Sign(message []byte) Signature {
	var sig Signature
	copy(sig[:], ed25519.Sign(kp.priv, message))
	return sig
}
