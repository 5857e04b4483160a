package token

import (
	"testing"

	"github.com/google/uuid"
)

func TestIdentityProofRoundTrip(t *testing.T) {
	signer := NewSigner("test-secret")
	reporterID := uuid.New()

	proof, err := signer.IssueProof(reporterID, "reporter@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := signer.VerifyProof(proof)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != reporterID {
		t.Fatalf("expected %s, got %s", reporterID, got)
	}
}

func TestVerifyProof_WrongSecretRejected(t *testing.T) {
	proof, err := NewSigner("secret-a").IssueProof(uuid.New(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := NewSigner("secret-b").VerifyProof(proof); err == nil {
		t.Fatal("expected proof signed with another secret to be rejected")
	}
}

func TestGenerateRandomToken_Unique(t *testing.T) {
	a, err := GenerateRandomToken(32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := GenerateRandomToken(32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Fatal("expected distinct tokens")
	}
	if HashSHA256(a) == HashSHA256(b) {
		t.Fatal("expected distinct hashes")
	}
}
