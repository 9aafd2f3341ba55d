package auth

import (
	"testing"
	"time"

	"github.com/reviewhub/review-service/internal/models"
)

func TestTokenIssuer_MintVerify(t *testing.T) {
	issuer := NewTokenIssuer("test-signing-secret", time.Hour)
	user := &models.User{ID: 7, Username: "bob", Role: models.RoleUser}

	token, err := issuer.Mint(user)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if claims.UserID != user.ID {
		t.Errorf("expected user ID %d, got %d", user.ID, claims.UserID)
	}
	if claims.Username != user.Username {
		t.Errorf("expected username %q, got %q", user.Username, claims.Username)
	}
}

func TestTokenIssuer_DistinctSecrets(t *testing.T) {
	user := &models.User{ID: 7, Username: "bob"}

	a := NewTokenIssuer("secret-a", time.Hour)
	b := NewTokenIssuer("secret-b", time.Hour)

	token, err := a.Mint(user)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	if _, err := b.Verify(token); err == nil {
		t.Error("token signed with one secret must not verify under another")
	}
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := NewTokenIssuer("test-signing-secret", -time.Minute)
	user := &models.User{ID: 7, Username: "bob"}

	token, err := issuer.Mint(user)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	if _, err := issuer.Verify(token); err != ErrExpiredToken {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestTokenIssuer_Garbage(t *testing.T) {
	issuer := NewTokenIssuer("test-signing-secret", time.Hour)

	for _, token := range []string{"", "not.a.token", "a.b.c"} {
		if _, err := issuer.Verify(token); err == nil {
			t.Errorf("token %q must not verify", token)
		}
	}
}
