// Package testutils provides packet protection for tests, examples and
// benchmarks: a ChaCha20-Poly1305 based Sealer / Opener pair.
package testutils

import (
	"crypto/cipher"
	"encoding/binary"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/quic-go/quicwire/internal/protocol"
)

// An AEAD seals and opens packet payloads with ChaCha20-Poly1305,
// deriving the nonce from the packet number.
type AEAD struct {
	aead cipher.AEAD
}

// NewAEAD creates a new AEAD. The key must be chacha20poly1305.KeySize bytes.
func NewAEAD(key []byte) (*AEAD, error) {
	c, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	return &AEAD{aead: c}, nil
}

func (a *AEAD) nonce(pn protocol.PacketNumber) []byte {
	n := make([]byte, chacha20poly1305.NonceSize)
	binary.BigEndian.PutUint64(n[len(n)-8:], uint64(pn))
	return n
}

// Seal encrypts src and appends the result to dst.
func (a *AEAD) Seal(dst, src []byte, pn protocol.PacketNumber, associatedData []byte) []byte {
	return a.aead.Seal(dst, a.nonce(pn), src, associatedData)
}

// Open decrypts src and appends the result to dst.
func (a *AEAD) Open(dst, src []byte, pn protocol.PacketNumber, associatedData []byte) ([]byte, error) {
	return a.aead.Open(dst, a.nonce(pn), src, associatedData)
}

// Overhead returns the size of the authentication tag.
func (a *AEAD) Overhead() int {
	return a.aead.Overhead()
}
