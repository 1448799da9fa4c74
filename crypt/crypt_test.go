package crypt

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamitzky/biffkit-go/codec"
)

var testSalt = []byte{
	0x10, 0x21, 0x32, 0x43, 0x54, 0x65, 0x76, 0x87,
	0x98, 0xA9, 0xBA, 0xCB, 0xDC, 0xED, 0xFE, 0x0F,
}

func TestRC4KeyValidate(t *testing.T) {
	key, err := NewBiff8RC4Key("secret", testSalt)
	require.NoError(t, err)

	verifier := bytes.Repeat([]byte{0x5A}, 16)
	encVerifier, encHash := key.EncryptVerifier(verifier)
	assert.True(t, key.Validate(encVerifier, encHash))
	assert.NotEqual(t, verifier, encVerifier)

	wrong, err := NewBiff8RC4Key("Secret", testSalt)
	require.NoError(t, err)
	assert.False(t, wrong.Validate(encVerifier, encHash))

	assert.False(t, key.Validate(encVerifier[:8], encHash))
}

func TestRC4KeyRejectsShortSalt(t *testing.T) {
	_, err := NewBiff8RC4Key(DefaultPassword, testSalt[:8])
	assert.ErrorIs(t, err, codec.ErrEncryption)
}

func TestTransformIsPositional(t *testing.T) {
	key, err := NewBiff8RC4Key(DefaultPassword, testSalt)
	require.NoError(t, err)

	plain := make([]byte, 3000)
	for i := range plain {
		plain[i] = byte(i * 7)
	}

	whole := append([]byte(nil), plain...)
	key.Transform(whole, 0)
	assert.NotEqual(t, plain, whole)

	// transforming in uneven pieces gives the same bytes as one pass
	pieces := append([]byte(nil), plain...)
	for _, cut := range [][2]int{{0, 4}, {4, 1020}, {1020, 1030}, {1030, 2500}, {2500, 3000}} {
		key.Transform(pieces[cut[0]:cut[1]], cut[0])
	}
	assert.Equal(t, whole, pieces)

	key.Transform(whole, 0)
	assert.Equal(t, plain, whole)
}

func TestStandardEncryptionHeaderRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		header *StandardEncryptionHeader
	}{
		{"with provider", NewStandardEncryptionHeader(CipherRC4, HashSHA1, 128, "Microsoft Enhanced Cryptographic Provider v1.0")},
		{"default key size", &StandardEncryptionHeader{Flags: FlagCryptoAPI, CipherAlgorithm: CipherRC4, HashAlgorithm: HashSHA1, CipherProvider: ProviderRC4, CSPName: "x"}},
		{"no provider", &StandardEncryptionHeader{Flags: FlagCryptoAPI, CipherAlgorithm: CipherRC4, NoCSPName: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.header.Bytes()
			got, err := ReadStandardEncryptionHeader(b)
			require.NoError(t, err)
			assert.Equal(t, tt.header, got)
			assert.Equal(t, b, got.Bytes())

			w := codec.NewWriter(0)
			got.Write(w)
			size, err := codec.NewCursor(w.Bytes()).ReadU32()
			require.NoError(t, err)
			assert.Equal(t, uint32(len(b)), size)
			assert.Equal(t, len(b)+4, w.Len())
		})
	}
}

func TestEffectiveKeySize(t *testing.T) {
	h := &StandardEncryptionHeader{}
	assert.Equal(t, uint32(0x28), h.EffectiveKeySize())
	assert.Equal(t, "RC4", NewStandardEncryptionHeader(CipherRC4, HashSHA1, 40, "").CipherName())
	aes := NewStandardEncryptionHeader(CipherAES128, HashSHA1, 128, "")
	assert.Equal(t, "AES-128", aes.CipherName())
	assert.Equal(t, uint32(ProviderAES), aes.CipherProvider)
}

func TestReadStandardEncryptionHeaderTruncated(t *testing.T) {
	_, err := ReadStandardEncryptionHeader(make([]byte, 10))
	assert.ErrorIs(t, err, codec.ErrTruncatedInput)
}
