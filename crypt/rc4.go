// Package crypt implements the key derivation and stream transform used by
// BIFF8 RC4 protected workbooks, and the CryptoAPI encryption header codec.
//
// The record layer never decrypts anything itself: it hands stream bytes
// and their absolute stream offsets to a StreamCipher.
package crypt

import (
	"bytes"
	"crypto/md5"
	"crypto/rc4"
	"encoding/binary"
	"fmt"

	"golang.org/x/text/encoding/unicode"

	"github.com/yamitzky/biffkit-go/codec"
)

// DefaultPassword is the password Excel uses for workbooks that are
// encrypted without a user supplied password.
const DefaultPassword = "VelvetSweatshop"

const (
	rc4BlockSize      = 1024
	passwordHashBytes = 5
	keyDigestLength   = 5
	saltLength        = 16
)

// StreamCipher transforms stream bytes in place. streamOffset is the
// position of data[0] within the whole stream. Applying the transform twice
// restores the input.
type StreamCipher interface {
	Transform(data []byte, streamOffset int)
}

// Biff8RC4Key is the 40-bit key digest of a BIFF8 RC4 workbook.
type Biff8RC4Key struct {
	digest [keyDigestLength]byte
}

// NewBiff8RC4Key derives the key for password and the 16 byte salt stored
// in the FILEPASS record.
func NewBiff8RC4Key(password string, salt []byte) (*Biff8RC4Key, error) {
	if len(salt) != saltLength {
		return nil, codec.Errorf(codec.ErrEncryption, "salt must be %d bytes, got %d", saltLength, len(salt))
	}
	pw, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(password))
	if err != nil {
		return nil, codec.Errorf(codec.ErrEncryption, "encoding password: %v", err)
	}
	passwordHash := md5.Sum(pw)

	h := md5.New()
	for i := 0; i < 16; i++ {
		h.Write(passwordHash[:passwordHashBytes])
		h.Write(salt)
	}
	k := &Biff8RC4Key{}
	copy(k.digest[:], h.Sum(nil))
	return k, nil
}

func (k *Biff8RC4Key) blockCipher(block int) *rc4.Cipher {
	var buf [keyDigestLength + 4]byte
	copy(buf[:], k.digest[:])
	binary.LittleEndian.PutUint32(buf[keyDigestLength:], uint32(block))
	key := md5.Sum(buf[:])
	c, err := rc4.NewCipher(key[:])
	if err != nil {
		// a 16 byte key is always valid
		panic(fmt.Sprintf("rc4: %v", err))
	}
	return c
}

// Validate checks the encrypted verifier and verifier hash of a FILEPASS
// record against the key.
func (k *Biff8RC4Key) Validate(encVerifier, encVerifierHash []byte) bool {
	if len(encVerifier) != 16 || len(encVerifierHash) != 16 {
		return false
	}
	c := k.blockCipher(0)
	verifier := make([]byte, 16)
	c.XORKeyStream(verifier, encVerifier)
	hash := make([]byte, 16)
	c.XORKeyStream(hash, encVerifierHash)
	want := md5.Sum(verifier)
	return bytes.Equal(want[:], hash)
}

// EncryptVerifier produces the encrypted verifier and verifier hash that
// Validate accepts for the given 16 byte plain verifier.
func (k *Biff8RC4Key) EncryptVerifier(verifier []byte) (encVerifier, encVerifierHash []byte) {
	c := k.blockCipher(0)
	encVerifier = make([]byte, len(verifier))
	c.XORKeyStream(encVerifier, verifier)
	sum := md5.Sum(verifier)
	encVerifierHash = make([]byte, len(sum))
	c.XORKeyStream(encVerifierHash, sum[:])
	return encVerifier, encVerifierHash
}

// Transform XORs data with the key stream at streamOffset. The key is
// replaced every 1024 bytes of stream.
func (k *Biff8RC4Key) Transform(data []byte, streamOffset int) {
	var discard [rc4BlockSize]byte
	for len(data) > 0 {
		block := streamOffset / rc4BlockSize
		within := streamOffset % rc4BlockSize
		n := rc4BlockSize - within
		if n > len(data) {
			n = len(data)
		}
		c := k.blockCipher(block)
		c.XORKeyStream(discard[:within], discard[:within])
		c.XORKeyStream(data[:n], data[:n])
		data = data[n:]
		streamOffset += n
	}
}
