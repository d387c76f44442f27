// SPDX-License-Identifier: GPL-3.0-only

package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"plmobile-server/commons"

	"github.com/alexedwards/argon2id"
)

var ErrNoPepper = errors.New("HASHING_PEPPER is not set, number hashes are unkeyed and can be reversed by brute force")

func NewCrypto() *Crypto {
	return &Crypto{
		ArgonTime:     uint32(commons.GetEnvInt("ARGON2_TIME", 1)),
		ArgonMemory:   uint32(commons.GetEnvInt("ARGON2_MEMORY", 65536)),
		ArgonThreads:  uint8(commons.GetEnvInt("ARGON2_THREADS", 2)),
		ArgonKeyLen:   uint32(commons.GetEnvInt("ARGON2_KEYLEN", 32)),
		ArgonSaltLen:  uint32(commons.GetEnvInt("ARGON2_SALTLEN", 16)),
		HashingPepper: commons.GetEnv("HASHING_PEPPER"),
	}
}

func (c *Crypto) HashAPIKey(key string) (string, error) {
	commons.Logger.Debug("Hashing API key")
	params := &argon2id.Params{
		Memory:      c.ArgonMemory,
		Iterations:  c.ArgonTime,
		Parallelism: c.ArgonThreads,
		SaltLength:  c.ArgonSaltLen,
		KeyLength:   c.ArgonKeyLen,
	}
	hash, err := argon2id.CreateHash(key, params)
	if err != nil {
		return "", err
	}
	commons.Logger.Debug("API key hashed")
	return hash, nil
}

func (c *Crypto) VerifyAPIKey(key, encodedHash string) error {
	commons.Logger.Debug("Verifying API key")
	match, err := argon2id.ComparePasswordAndHash(key, encodedHash)
	if err != nil {
		return err
	}
	if !match {
		return fmt.Errorf("api key verification failed")
	}
	return nil
}

// HashData returns a keyed digest of data using the configured pepper.
func (c *Crypto) HashData(data []byte, algorithm string) ([]byte, error) {
	switch algorithm {
	case "HMAC-SHA-256":
		mac := hmac.New(sha256.New, []byte(c.HashingPepper))
		mac.Write(data)
		return mac.Sum(nil), nil
	default:
		return nil, fmt.Errorf("unsupported hashing algorithm: %s", algorithm)
	}
}

func (c *Crypto) VerifyHash(data, expected []byte, algorithm string) (bool, error) {
	actual, err := c.HashData(data, algorithm)
	if err != nil {
		return false, err
	}
	return hmac.Equal(actual, expected), nil
}

// CheckPepper returns ErrNoPepper when no hashing pepper is configured.
func (c *Crypto) CheckPepper() error {
	if c.HashingPepper == "" {
		return ErrNoPepper
	}
	return nil
}

// HashNumber is the hex HMAC of a normalized number, used wherever a number
// must be correlated without being stored in clear.
func (c *Crypto) HashNumber(normalized string) string {
	sum, _ := c.HashData([]byte(normalized), "HMAC-SHA-256")
	return hex.EncodeToString(sum)
}

func GenerateRandomString(prefix string, length int, encoding string) (string, error) {
	supported_encodings := []string{"hex", "base64"}

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	switch encoding {
	case "hex":
		return prefix + hex.EncodeToString(b), nil
	case "base64":
		return prefix + base64.StdEncoding.EncodeToString(b), nil
	default:
		return "", fmt.Errorf("unsupported encoding: %s, Supported encodings are: %s", encoding, supported_encodings)
	}
}
