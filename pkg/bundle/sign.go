package bundle

import (
	"crypto/hmac"
	"crypto/sha256"
)

// Sign computes HMAC-SHA256(key, manifest ‖ payload), the 32-byte signature
// appended to version-2 bundles.
func Sign(key, manifest, payload []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(manifest)
	mac.Write(payload)
	return mac.Sum(nil)
}

// VerifyMAC recomputes the signature and compares in constant time.
func VerifyMAC(key, manifest, payload, signature []byte) bool {
	return hmac.Equal(signature, Sign(key, manifest, payload))
}
