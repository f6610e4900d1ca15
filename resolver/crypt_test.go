package resolver

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

const testIVHex = "000102030405060708090a0b0c0d0e0f"

func TestDecryptURI(t *testing.T) {
	Convey("DecryptURI", t, func() {
		Convey("Round-trips an encrypted uri", func() {
			token := encryptToken("https://example/video.mp4?sig=abc", testIVHex)

			uri, err := DecryptURI(token)
			So(err, ShouldBeNil)
			So(uri, ShouldEqual, "https://example/video.mp4")
		})

		Convey("Keeps a uri without a query string intact", func() {
			token := encryptToken("rtmp://example/stream", testIVHex)

			uri, err := DecryptURI(token)
			So(err, ShouldBeNil)
			So(uri, ShouldEqual, "rtmp://example/stream")
		})

		Convey("Ignores the leading tag", func() {
			token := encryptToken("https://example/a.mp4", testIVHex)
			token = "ff" + token[2:]

			uri, err := DecryptURI(token)
			So(err, ShouldBeNil)
			So(uri, ShouldEqual, "https://example/a.mp4")
		})

		Convey("Rejects a token shorter than its header", func() {
			_, err := DecryptURI("0000001")
			shouldBeDecryptError(err)
		})

		Convey("Rejects a malformed length field", func() {
			_, err := DecryptURI("00zzzzzzzz" + testIVHex)
			shouldBeDecryptError(err)
		})

		Convey("Rejects a length that overruns the token", func() {
			_, err := DecryptURI("00ffffffff" + "aabb" + testIVHex)
			shouldBeDecryptError(err)
		})

		Convey("Rejects non-hex ciphertext", func() {
			token := encryptToken("https://example/a.mp4", testIVHex)
			_, err := DecryptURI(token[:10] + "zz" + token[12:])
			shouldBeDecryptError(err)
		})

		Convey("Rejects a truncated iv", func() {
			token := encryptToken("https://example/a.mp4", testIVHex)
			_, err := DecryptURI(token[:len(token)-2])
			shouldBeDecryptError(err)
		})

		Convey("Rejects a padding count larger than the plaintext", func() {
			// A single zero block decrypts to garbage whose final byte
			// is overwhelmingly unlikely to be a valid count, so build
			// the case directly: encrypt a block ending in 0xff.
			raw := bytes.Repeat([]byte{0xff}, aes.BlockSize)
			token := encryptRaw(raw, testIVHex)

			_, err := DecryptURI(token)
			shouldBeDecryptError(err)
		})

		Convey("Rejects a zero padding count", func() {
			raw := append(bytes.Repeat([]byte{'a'}, aes.BlockSize-1), 0x00)
			token := encryptRaw(raw, testIVHex)

			_, err := DecryptURI(token)
			shouldBeDecryptError(err)
		})
	})
}

func shouldBeDecryptError(err error) {
	So(err, ShouldNotBeNil)

	var decryptErr *DecryptError
	So(errors.As(err, &decryptErr), ShouldBeTrue)
}

// encryptToken frames plaintext the way the provider does: padded,
// AES-256-CBC encrypted under the derived key, hex encoded and
// wrapped in the tag/length/ciphertext/iv layout.
func encryptToken(plaintext, ivHex string) string {
	pad := aes.BlockSize - len(plaintext)%aes.BlockSize
	padded := append([]byte(plaintext), bytes.Repeat([]byte{byte(pad)}, pad)...)

	return encryptRaw(padded, ivHex)
}

func encryptRaw(padded []byte, ivHex string) string {
	key := sha256.Sum256([]byte(ivHex + ":" + cryptSecret))
	block := lo.Must(aes.NewCipher(key[:]))
	iv := lo.Must(hex.DecodeString(ivHex))

	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)

	ciphertext := hex.EncodeToString(out)

	return fmt.Sprintf("00%08x%s%s", len(ciphertext), ciphertext, ivHex)
}
