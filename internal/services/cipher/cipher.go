package cipher

import (
	"bytes"
	"crypto/aes"
	gocipher "crypto/cipher"
	"crypto/sha256"
	"fmt"
	"unicode/utf8"

	"github.com/mcoot/fantasy-keepers/internal/dependencies/random"
	"github.com/mcoot/fantasy-keepers/internal/model"
)

// IVSize is the AES block size; every record carries a fresh IV of this length
const IVSize = aes.BlockSize

// Cipher encrypts keeper lists with a password-derived AES-256-CBC key
// Confidentiality only: there is no MAC, so tampering is detected only by
// padding or UTF-8 checks
type Cipher struct {
	random random.Random
}

// New creates a Cipher drawing IVs from rnd
func New(rnd random.Random) *Cipher {
	return &Cipher{random: rnd}
}

// DeriveKey reduces a password to a 32-byte AES-256 key (SHA-256)
func DeriveKey(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return sum[:]
}

// Encrypt returns the hex(iv):hex(ciphertext) blob for plaintext
func (c *Cipher) Encrypt(plaintext, password string) (string, error) {
	record, err := c.Seal(plaintext, password)
	if err != nil {
		return "", err
	}
	return record.String(), nil
}

// Seal encrypts plaintext under a new random IV
func (c *Cipher) Seal(plaintext, password string) (model.EncryptedKeeperRecord, error) {
	iv, err := c.random.Bytes(IVSize)
	if err != nil {
		return model.EncryptedKeeperRecord{}, fmt.Errorf("generate iv: %w", err)
	}

	block, err := aes.NewCipher(DeriveKey(password))
	if err != nil {
		return model.EncryptedKeeperRecord{}, err
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	gocipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return model.EncryptedKeeperRecord{IV: iv, Ciphertext: ciphertext}, nil
}

// Decrypt parses a blob and decrypts it with password
// Wrong passwords and corrupted blobs both return model.ErrDecryption
func (c *Cipher) Decrypt(blob, password string) (string, error) {
	record, err := model.ParseEncryptedKeeperRecord(blob)
	if err != nil {
		return "", err
	}
	return c.Open(record, password)
}

// Open decrypts a parsed record
func (c *Cipher) Open(record model.EncryptedKeeperRecord, password string) (string, error) {
	if len(record.IV) != IVSize {
		return "", fmt.Errorf("%w: bad iv length", model.ErrDecryption)
	}
	if len(record.Ciphertext) == 0 || len(record.Ciphertext)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: bad ciphertext length", model.ErrDecryption)
	}

	block, err := aes.NewCipher(DeriveKey(password))
	if err != nil {
		return "", err
	}

	plain := make([]byte, len(record.Ciphertext))
	gocipher.NewCBCDecrypter(block, record.IV).CryptBlocks(plain, record.Ciphertext)

	plain, ok := pkcs7Unpad(plain, aes.BlockSize)
	if !ok || !utf8.Valid(plain) {
		return "", model.ErrDecryption
	}
	return string(plain), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, bool) {
	if len(data) == 0 {
		return nil, false
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, false
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, false
		}
	}
	return data[:len(data)-n], true
}
