// Package resolver turns provider asset descriptions into ordered,
// playable format lists.
package resolver

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Key-derivation secret for obfuscated stream tokens. A protocol
// constant, not configuration; if the provider rotates it, this is
// the only place to touch.
const cryptSecret = "sRBzYNXBzkKgnjj8pGtkACch"

// DecryptError reports a stream token that could not be resolved into
// a playable URI. The coordinator recovers it as a per-link skip.
type DecryptError struct {
	Reason string
	Err    error
}

func (e *DecryptError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decrypt uri: %s: %s", e.Reason, e.Err)
	}

	return "decrypt uri: " + e.Reason
}

func (e *DecryptError) Unwrap() error {
	return e.Err
}

// DecryptURI resolves an obfuscated stream token into a plain URI.
//
// The token is hex text in a fixed frame: a 2-digit tag (ignored), an
// 8-digit big-endian ciphertext length, the ciphertext itself, and
// the trailing IV. The IV doubles as key material: the AES-256 key is
// the SHA-256 of the IV's hex text joined to the shared secret with
// ":". After CBC decryption the trailing padding is stripped by the
// count in the final byte (the count is trusted, the padding content
// is not checked) and the plaintext is cut at the first "?", which
// carries a volatile query string the provider always discards.
func DecryptURI(token string) (string, error) {
	if len(token) < 10 {
		return "", &DecryptError{Reason: "token shorter than its header"}
	}

	length, err := strconv.ParseInt(token[2:10], 16, 64)
	if err != nil {
		return "", &DecryptError{Reason: "malformed ciphertext length", Err: err}
	}

	n := int(length)
	if n <= 0 || 10+n > len(token) {
		return "", &DecryptError{Reason: fmt.Sprintf("ciphertext length %d overruns token", n)}
	}

	ciphertext, err := hex.DecodeString(token[10 : 10+n])
	if err != nil {
		return "", &DecryptError{Reason: "malformed ciphertext", Err: err}
	}

	ivHex := token[10+n:]
	iv, err := hex.DecodeString(ivHex)
	if err != nil {
		return "", &DecryptError{Reason: "malformed iv", Err: err}
	}

	if len(iv) != aes.BlockSize {
		return "", &DecryptError{Reason: fmt.Sprintf("iv is %d bytes, want %d", len(iv), aes.BlockSize)}
	}

	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", &DecryptError{Reason: "ciphertext is not whole blocks"}
	}

	key := sha256.Sum256([]byte(ivHex + ":" + cryptSecret))

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return "", &DecryptError{Reason: "cipher init", Err: err}
	}

	plain := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, ciphertext)

	// Trailing padding: the final byte declares how many bytes to drop.
	pad := int(plain[len(plain)-1])
	if pad == 0 || pad > len(plain) {
		return "", &DecryptError{Reason: fmt.Sprintf("padding of %d bytes in %d-byte plaintext", pad, len(plain))}
	}

	uri, _, _ := strings.Cut(string(plain[:len(plain)-pad]), "?")

	return uri, nil
}
