package biff

import (
	"github.com/yamitzky/biffkit-go/codec"
	"github.com/yamitzky/biffkit-go/crypt"
)

// FILEPASS encryption types
const (
	FILEPASS_XOR = 0
	FILEPASS_RC4 = 1
)

// FilePassRecord announces that the rest of the stream is encrypted and
// carries the salt and verifier needed to check a password.
type FilePassRecord struct {
	EncryptionType uint16

	// XOR obfuscation
	XORKey      uint16
	XORVerifier uint16

	// RC4
	MajorVersion uint16
	MinorVersion uint16

	// RC4 standard encryption (version 1.1)
	Salt         []byte
	Verifier     []byte
	VerifierHash []byte

	// RC4 CryptoAPI encryption (versions 2.2, 3.2, 4.2)
	Flags        uint32
	Header       *crypt.StandardEncryptionHeader
	VerifierData []byte

	// Unparsed holds the body of variants this package does not decode.
	Unparsed []byte
}

// NewRC4FilePassRecord returns a standard RC4 FILEPASS for the key derived
// from password and salt, using verifier as the plain verifier.
func NewRC4FilePassRecord(password string, salt, verifier []byte) (*FilePassRecord, error) {
	key, err := crypt.NewBiff8RC4Key(password, salt)
	if err != nil {
		return nil, err
	}
	encVerifier, encHash := key.EncryptVerifier(verifier)
	return &FilePassRecord{
		EncryptionType: FILEPASS_RC4,
		MajorVersion:   1,
		MinorVersion:   1,
		Salt:           append([]byte(nil), salt...),
		Verifier:       encVerifier,
		VerifierHash:   encHash,
	}, nil
}

func readFilePassRecord(in *RecordInput) (Record, error) {
	r := &FilePassRecord{}
	var err error
	if r.EncryptionType, err = in.ReadU16(); err != nil {
		return nil, err
	}
	switch r.EncryptionType {
	case FILEPASS_XOR:
		if r.XORKey, err = in.ReadU16(); err != nil {
			return nil, err
		}
		if r.XORVerifier, err = in.ReadU16(); err != nil {
			return nil, err
		}
	case FILEPASS_RC4:
		if r.MajorVersion, err = in.ReadU16(); err != nil {
			return nil, err
		}
		if r.MinorVersion, err = in.ReadU16(); err != nil {
			return nil, err
		}
		switch {
		case r.IsStandardRC4():
			for _, f := range []*[]byte{&r.Salt, &r.Verifier, &r.VerifierHash} {
				if *f, err = in.ReadBytes(16); err != nil {
					return nil, err
				}
			}
		case r.IsCryptoAPI():
			if r.Flags, err = in.ReadU32(); err != nil {
				return nil, err
			}
			size, err := in.ReadU32()
			if err != nil {
				return nil, err
			}
			block, err := in.ReadBytes(int(size))
			if err != nil {
				return nil, err
			}
			if r.Header, err = crypt.ReadStandardEncryptionHeader(block); err != nil {
				return nil, err
			}
			r.VerifierData = in.ReadRemainder()
		default:
			in.Warn("unknown RC4 encryption version", "major", r.MajorVersion, "minor", r.MinorVersion)
			r.Unparsed = in.ReadRemainder()
		}
	default:
		in.Warn("unknown encryption type", "type", r.EncryptionType)
		r.Unparsed = in.ReadRemainder()
	}
	return r, nil
}

// IsStandardRC4 reports whether the record uses BIFF8 RC4 encryption.
func (r *FilePassRecord) IsStandardRC4() bool {
	return r.EncryptionType == FILEPASS_RC4 && r.MajorVersion == 1 && r.MinorVersion == 1
}

// IsCryptoAPI reports whether the record uses RC4 CryptoAPI encryption.
func (r *FilePassRecord) IsCryptoAPI() bool {
	return r.EncryptionType == FILEPASS_RC4 && r.MajorVersion >= 2 && r.MajorVersion <= 4 && r.MinorVersion == 2
}

func (r *FilePassRecord) Sid() uint16 { return XL_FILEPASS }

func (r *FilePassRecord) Serialize(out *codec.Writer) error {
	out.WriteU16(r.EncryptionType)
	switch {
	case r.EncryptionType == FILEPASS_XOR:
		out.WriteU16(r.XORKey)
		out.WriteU16(r.XORVerifier)
	case r.EncryptionType == FILEPASS_RC4:
		out.WriteU16(r.MajorVersion)
		out.WriteU16(r.MinorVersion)
		switch {
		case r.IsStandardRC4():
			out.WriteBytes(r.Salt)
			out.WriteBytes(r.Verifier)
			out.WriteBytes(r.VerifierHash)
		case r.IsCryptoAPI():
			out.WriteU32(r.Flags)
			if r.Header != nil {
				r.Header.Write(out)
			} else {
				out.WriteU32(0)
			}
			out.WriteBytes(r.VerifierData)
		}
	}
	out.WriteBytes(r.Unparsed)
	return nil
}

// StreamCipher derives the stream cipher for password, checking it against
// the stored verifier. An empty password selects crypt.DefaultPassword.
func (r *FilePassRecord) StreamCipher(password string) (crypt.StreamCipher, error) {
	if !r.IsStandardRC4() {
		if r.EncryptionType == FILEPASS_XOR {
			return nil, codec.Errorf(codec.ErrEncryption, "XOR obfuscation is not supported")
		}
		return nil, codec.Errorf(codec.ErrEncryption, "RC4 encryption version %d.%d is not supported", r.MajorVersion, r.MinorVersion)
	}
	if password == "" {
		password = crypt.DefaultPassword
	}
	key, err := crypt.NewBiff8RC4Key(password, r.Salt)
	if err != nil {
		return nil, err
	}
	if !key.Validate(r.Verifier, r.VerifierHash) {
		return nil, codec.Errorf(codec.ErrEncryption, "password does not match the workbook")
	}
	return key, nil
}
