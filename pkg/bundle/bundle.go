package bundle

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"
)

// Bundle binary layout (all integers little-endian):
//
//	0:4    magic "RMOD"
//	4:6    version (u16) — 1 unsigned, 2 HMAC-SHA256 signed
//	6:10   manifest length (u32)
//	10:14  payload length (u32)
//	14:..  manifest bytes, then payload bytes
//	tail   32-byte signature, present iff version == 2
const (
	HeaderLen    = 14
	SignatureLen = 32

	VersionUnsigned uint16 = 1
	VersionSigned   uint16 = 2
)

var magic = []byte("RMOD")

var (
	// ErrFormat covers a malformed header: short buffer, bad magic, or an
	// unknown version.
	ErrFormat = errors.New("invalid bundle format")
	// ErrTruncated means the declared lengths exceed the actual buffer.
	ErrTruncated = errors.New("truncated bundle")
	// ErrSignature means the trailing byte count is wrong or the MAC does
	// not match.
	ErrSignature = errors.New("bundle signature invalid")
	// ErrEncoding means the manifest bytes are not valid UTF-8.
	ErrEncoding = errors.New("manifest not utf-8")
	// ErrEmptyInput means a zero-length manifest or payload at pack time.
	ErrEmptyInput = errors.New("empty input")
)

// Bundle is the decoded form of a module bundle.
type Bundle struct {
	Version  uint16
	Manifest []byte
	Payload  []byte
	// Verified is true only for a version-2 bundle whose signature matched.
	Verified bool
}

// Encode packs manifest and payload into bundle bytes. A non-empty key
// produces a signed version-2 bundle; a nil or empty key produces version 1.
// Both manifest and payload must be non-empty.
func Encode(manifest, payload, key []byte) ([]byte, error) {
	if len(manifest) == 0 {
		return nil, fmt.Errorf("manifest is empty: %w", ErrEmptyInput)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("payload is empty: %w", ErrEmptyInput)
	}

	version := VersionUnsigned
	if len(key) > 0 {
		version = VersionSigned
	}

	buf := make([]byte, 0, HeaderLen+len(manifest)+len(payload)+SignatureLen)
	buf = append(buf, magic...)
	buf = binary.LittleEndian.AppendUint16(buf, version)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(manifest)))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(payload)))
	buf = append(buf, manifest...)
	buf = append(buf, payload...)
	if version == VersionSigned {
		buf = append(buf, Sign(key, manifest, payload)...)
	}
	return buf, nil
}

// Decode splits bundle bytes into header, manifest, payload and, for version
// 2, checks the trailing signature against key before anything downstream
// sees the manifest. The declared lengths must account for every byte after
// the header: version 1 tolerates no trailing bytes, version 2 requires
// exactly 32.
func Decode(data, key []byte) (*Bundle, error) {
	if len(data) < HeaderLen {
		return nil, fmt.Errorf("bundle too small: %w", ErrFormat)
	}
	if !bytes.Equal(data[:4], magic) {
		return nil, fmt.Errorf("invalid magic: %w", ErrFormat)
	}
	version := binary.LittleEndian.Uint16(data[4:6])
	if version != VersionUnsigned && version != VersionSigned {
		return nil, fmt.Errorf("unsupported version %d: %w", version, ErrFormat)
	}
	manifestLen := binary.LittleEndian.Uint32(data[6:10])
	payloadLen := binary.LittleEndian.Uint32(data[10:14])

	// 64-bit arithmetic so hostile length fields cannot overflow.
	manifestEnd := uint64(HeaderLen) + uint64(manifestLen)
	payloadEnd := manifestEnd + uint64(payloadLen)
	if payloadEnd > uint64(len(data)) {
		return nil, fmt.Errorf("declared %d manifest + %d payload bytes: %w",
			manifestLen, payloadLen, ErrTruncated)
	}

	manifest := data[HeaderLen:manifestEnd]
	payload := data[manifestEnd:payloadEnd]

	verified := false
	switch version {
	case VersionUnsigned:
		if payloadEnd != uint64(len(data)) {
			return nil, fmt.Errorf("trailing bytes in v1 bundle: %w", ErrFormat)
		}
	case VersionSigned:
		if uint64(len(data))-payloadEnd != SignatureLen {
			return nil, fmt.Errorf("invalid signature length: %w", ErrSignature)
		}
		signature := data[payloadEnd:]
		if !VerifyMAC(key, manifest, payload, signature) {
			return nil, fmt.Errorf("signature mismatch: %w", ErrSignature)
		}
		verified = true
	}

	if !utf8.Valid(manifest) {
		return nil, fmt.Errorf("manifest bytes: %w", ErrEncoding)
	}

	return &Bundle{
		Version:  version,
		Manifest: manifest,
		Payload:  payload,
		Verified: verified,
	}, nil
}
