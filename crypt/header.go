package crypt

import (
	"fmt"

	"github.com/yamitzky/biffkit-go/codec"
)

// Cipher algorithm ids.
const (
	CipherRC4    = 0x6801
	CipherAES128 = 0x660E
	CipherAES192 = 0x660F
	CipherAES256 = 0x6610
)

// Hash algorithm ids.
const (
	HashMD5  = 0x8003
	HashSHA1 = 0x8004
)

// Cipher provider types.
const (
	ProviderRC4 = 0x0001
	ProviderAES = 0x0018
)

// Encryption header flags.
const (
	FlagCryptoAPI = 0x04
	FlagDocProps  = 0x08
	FlagExternal  = 0x10
	FlagAES       = 0x20
)

// defaultKeySize is the key size in bits implied by a stored zero.
const defaultKeySize = 0x28

// StandardEncryptionHeader is the CryptoAPI EncryptionHeader structure.
type StandardEncryptionHeader struct {
	Flags           uint32
	SizeExtra       uint32
	CipherAlgorithm uint32
	HashAlgorithm   uint32
	// KeySize is the stored key size in bits; zero means 40.
	KeySize        uint32
	CipherProvider uint32
	Reserved1      uint32
	Reserved2      uint32
	CSPName        string
	// NoCSPName is set when the header ends without a provider name.
	NoCSPName bool
	// Trailing holds bytes after the provider name terminator.
	Trailing []byte
}

// NewStandardEncryptionHeader returns a header for the given algorithms.
func NewStandardEncryptionHeader(cipherAlg, hashAlg, keyBits uint32, cspName string) *StandardEncryptionHeader {
	h := &StandardEncryptionHeader{
		Flags:           FlagCryptoAPI,
		CipherAlgorithm: cipherAlg,
		HashAlgorithm:   hashAlg,
		KeySize:         keyBits,
		CipherProvider:  ProviderRC4,
		CSPName:         cspName,
	}
	if cipherAlg != CipherRC4 {
		h.Flags |= FlagAES
		h.CipherProvider = ProviderAES
	}
	return h
}

// ReadStandardEncryptionHeader decodes a header block of known size.
func ReadStandardEncryptionHeader(data []byte) (*StandardEncryptionHeader, error) {
	c := codec.NewCursor(data)
	h := &StandardEncryptionHeader{}
	for _, f := range []*uint32{&h.Flags, &h.SizeExtra, &h.CipherAlgorithm, &h.HashAlgorithm,
		&h.KeySize, &h.CipherProvider, &h.Reserved1, &h.Reserved2} {
		v, err := c.ReadU32()
		if err != nil {
			return nil, fmt.Errorf("reading encryption header: %w", err)
		}
		*f = v
	}
	if c.Remaining() == 0 {
		h.NoCSPName = true
		return h, nil
	}
	var name []uint16
	for {
		u, err := c.ReadU16()
		if err != nil {
			return nil, fmt.Errorf("reading provider name: %w", err)
		}
		if u == 0 {
			break
		}
		name = append(name, u)
	}
	nameCursor := codec.NewCursor(unitsToBytes(name))
	s, err := nameCursor.ReadUnicodeLE(len(name))
	if err != nil {
		return nil, err
	}
	h.CSPName = s
	if c.Remaining() > 0 {
		h.Trailing = c.ReadRemainder()
	}
	return h, nil
}

func unitsToBytes(units []uint16) []byte {
	w := codec.NewWriter(2 * len(units))
	for _, u := range units {
		w.WriteU16(u)
	}
	return w.Bytes()
}

// EffectiveKeySize returns the key size in bits.
func (h *StandardEncryptionHeader) EffectiveKeySize() uint32 {
	if h.KeySize == 0 {
		return defaultKeySize
	}
	return h.KeySize
}

// Bytes returns the header block without its size prefix.
func (h *StandardEncryptionHeader) Bytes() []byte {
	w := codec.NewWriter(64)
	for _, v := range []uint32{h.Flags, h.SizeExtra, h.CipherAlgorithm, h.HashAlgorithm,
		h.KeySize, h.CipherProvider, h.Reserved1, h.Reserved2} {
		w.WriteU32(v)
	}
	if !h.NoCSPName {
		w.WriteUnicodeLE(h.CSPName)
		w.WriteU16(0)
		w.WriteBytes(h.Trailing)
	}
	return w.Bytes()
}

// Write writes the header block preceded by its 32-bit size.
func (h *StandardEncryptionHeader) Write(w *codec.Writer) {
	b := h.Bytes()
	w.WriteU32(uint32(len(b)))
	w.WriteBytes(b)
}

// CipherName returns a readable name for the cipher algorithm.
func (h *StandardEncryptionHeader) CipherName() string {
	switch h.CipherAlgorithm {
	case CipherRC4:
		return "RC4"
	case CipherAES128:
		return "AES-128"
	case CipherAES192:
		return "AES-192"
	case CipherAES256:
		return "AES-256"
	}
	return fmt.Sprintf("0x%04X", h.CipherAlgorithm)
}
