package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/reviewhub/review-service/internal/models"
)

const codeDigestLen = 20

// CodeIssuer derives single-use confirmation codes from a server-side secret
// and the user's identity plus activation-state fingerprint. Nothing is
// persisted: a code stays valid as long as the fingerprint it was derived
// from still matches and the issue timestamp is inside the validity window.
// Activating the account changes the fingerprint, which retires every code
// issued before the flip.
type CodeIssuer struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// NewCodeIssuer creates a code issuer. The secret must be injected from
// configuration; validity bounds how long an issued code can be redeemed.
func NewCodeIssuer(secret string, validity time.Duration) *CodeIssuer {
	return &CodeIssuer{
		secret:   []byte(secret),
		validity: validity,
		now:      time.Now,
	}
}

// Issue produces the confirmation code for the user's current state.
func (ci *CodeIssuer) Issue(user *models.User) string {
	ts := ci.now().Unix()
	return fmt.Sprintf("%s-%s", strconv.FormatInt(ts, 36), ci.digest(user, ts))
}

// Validate reports whether code matches what Issue would have produced for
// this user's current state fingerprint within the validity window. Unknown
// timestamps, expired codes and digest mismatches are all just "false" so
// callers cannot tell which check failed.
func (ci *CodeIssuer) Validate(user *models.User, code string) bool {
	if user == nil || code == "" {
		return false
	}

	tsPart, digestPart, ok := strings.Cut(code, "-")
	if !ok {
		return false
	}

	ts, err := strconv.ParseInt(tsPart, 36, 64)
	if err != nil {
		return false
	}

	now := ci.now().Unix()
	if ts > now || now-ts > int64(ci.validity.Seconds()) {
		return false
	}

	expected := ci.digest(user, ts)
	return hmac.Equal([]byte(expected), []byte(digestPart))
}

// digest binds the code to the user's identity and mutable state. The
// is_active flag is part of the fingerprint on purpose: consuming a code
// flips the flag, which invalidates the code for the same transition.
func (ci *CodeIssuer) digest(user *models.User, ts int64) string {
	mac := hmac.New(sha256.New, ci.secret)
	fmt.Fprintf(mac, "%d|%s|%s|%t|%d", user.ID, user.Username, user.Email, user.IsActive, ts)
	return hex.EncodeToString(mac.Sum(nil))[:codeDigestLen]
}
