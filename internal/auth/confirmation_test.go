package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/reviewhub/review-service/internal/models"
)

func newTestIssuer(validity time.Duration) *CodeIssuer {
	return NewCodeIssuer("test-confirmation-secret", validity)
}

func testUser() *models.User {
	return &models.User{
		ID:       42,
		Username: "bob",
		Email:    "b@x.com",
		Role:     models.RoleUser,
		IsActive: false,
	}
}

func TestCodeIssuer_IssueValidate(t *testing.T) {
	issuer := newTestIssuer(time.Hour)
	user := testUser()

	code := issuer.Issue(user)
	if code == "" {
		t.Fatal("issued code should not be empty")
	}

	if !issuer.Validate(user, code) {
		t.Error("freshly issued code should validate for the same user state")
	}
}

func TestCodeIssuer_ValidateRejectsOtherUser(t *testing.T) {
	issuer := newTestIssuer(time.Hour)
	user := testUser()

	code := issuer.Issue(user)

	other := testUser()
	other.ID = 43
	other.Username = "alice"

	if issuer.Validate(other, code) {
		t.Error("code issued for one user must not validate for another")
	}
}

func TestCodeIssuer_FingerprintChangeInvalidates(t *testing.T) {
	issuer := newTestIssuer(time.Hour)
	user := testUser()

	code := issuer.Issue(user)
	if !issuer.Validate(user, code) {
		t.Fatal("code should validate before activation")
	}

	// Consuming the code flips is_active, which changes the fingerprint.
	user.IsActive = true

	if issuer.Validate(user, code) {
		t.Error("code must become invalid once the activation flag flips")
	}

	// A re-issued code is derived from the new fingerprint and works again.
	fresh := issuer.Issue(user)
	if !issuer.Validate(user, fresh) {
		t.Error("code issued for the active state should validate")
	}
}

func TestCodeIssuer_Expiry(t *testing.T) {
	issuer := newTestIssuer(10 * time.Minute)
	user := testUser()

	issued := time.Now()
	issuer.now = func() time.Time { return issued }
	code := issuer.Issue(user)

	issuer.now = func() time.Time { return issued.Add(5 * time.Minute) }
	if !issuer.Validate(user, code) {
		t.Error("code inside the validity window should validate")
	}

	issuer.now = func() time.Time { return issued.Add(11 * time.Minute) }
	if issuer.Validate(user, code) {
		t.Error("code past the validity window must be rejected")
	}
}

func TestCodeIssuer_ValidateRejectsGarbage(t *testing.T) {
	issuer := newTestIssuer(time.Hour)
	user := testUser()

	cases := []string{
		"",
		"not-a-code",
		"zzzzzzzzzzzzzzzzzzzz",
		strings.Repeat("a", 100),
		issuer.Issue(user) + "x",
	}

	for _, code := range cases {
		if issuer.Validate(user, code) {
			t.Errorf("code %q must not validate", code)
		}
	}
}

func TestCodeIssuer_DistinctSecrets(t *testing.T) {
	user := testUser()

	a := NewCodeIssuer("secret-a", time.Hour)
	b := NewCodeIssuer("secret-b", time.Hour)

	code := a.Issue(user)
	if b.Validate(user, code) {
		t.Error("code signed with one secret must not validate under another")
	}
}

func TestCodeIssuer_FutureTimestampRejected(t *testing.T) {
	issuer := newTestIssuer(time.Hour)
	user := testUser()

	issued := time.Now()
	issuer.now = func() time.Time { return issued.Add(time.Hour) }
	code := issuer.Issue(user)

	issuer.now = func() time.Time { return issued }
	if issuer.Validate(user, code) {
		t.Error("code with a timestamp in the future must be rejected")
	}
}
