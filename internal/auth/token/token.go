// Package token issues and verifies the reporter identity proof attached to
// non-anonymous report submissions.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// proofTTL bounds how long an issued proof stays verifiable. A proof only
// needs to survive one submission attempt.
const proofTTL = 15 * time.Minute

// Signer mints and verifies identity proofs with an HMAC secret.
type Signer struct {
	secret []byte
}

// NewSigner creates a signer from the shared access secret.
func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// IssueProof mints a short-lived proof binding the submission to a reporter.
func (s *Signer) IssueProof(reporterID uuid.UUID, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   reporterID.String(),
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(proofTTL).Unix(),
	}

	proof, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign identity proof: %w", err)
	}
	return proof, nil
}

// VerifyProof validates a proof and returns the reporter it was issued to.
func (s *Signer) VerifyProof(proof string) (uuid.UUID, error) {
	parsed, err := jwt.Parse(proof, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, fmt.Errorf("invalid identity proof: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fmt.Errorf("invalid identity proof claims")
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, fmt.Errorf("identity proof missing subject: %w", err)
	}

	reporterID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("identity proof subject is not a reporter id: %w", err)
	}
	return reporterID, nil
}

// GenerateRandomToken returns a URL-safe random token of size bytes.
func GenerateRandomToken(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashSHA256 returns the hex SHA-256 digest of a token, for storage.
func HashSHA256(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}
