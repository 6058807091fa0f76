package otp

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"time"
)

const (
	DefaultCodeLength = 6
	DefaultTTL        = 10 * time.Minute

	tokenBytes = 32
)

// FullCode is a freshly generated OTP: the short numeric code shown to the
// user, the raw link token, the hash that goes to storage, and the expiry.
type FullCode struct {
	Code      string
	Token     string
	TokenHash string
	ExpiresAt time.Time
}

// Generator produces OTP codes and opaque tokens. It holds no state and is
// safe for concurrent use.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateCode returns a fixed-length string of uniformly random decimal
// digits.
func (g *Generator) GenerateCode(length int) (string, error) {
	if length <= 0 {
		length = DefaultCodeLength
	}
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// GenerateToken returns a hex-encoded opaque token with 32 bytes of entropy.
func (g *Generator) GenerateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashToken is the one-way digest used both for storage and lookup; the raw
// token never reaches the database.
func (g *Generator) HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// GenerateFullCode composes a code, a token and its hash with an expiry of
// now + ttl.
func (g *Generator) GenerateFullCode(length int, ttl time.Duration) (*FullCode, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	code, err := g.GenerateCode(length)
	if err != nil {
		return nil, err
	}
	token, err := g.GenerateToken()
	if err != nil {
		return nil, err
	}
	return &FullCode{
		Code:      code,
		Token:     token,
		TokenHash: g.HashToken(token),
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}
