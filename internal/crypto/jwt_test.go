package crypto

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testIdentity = Identity{UserID: "5d0c8c47-3f1e-4f43-9a43-0c6b1f0a3e11", Email: "vera@example.com", Name: "Vera"}

func TestTokenIssuerRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue(testIdentity)
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	claims, err := issuer.Validate(token)
	if err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if claims.UserID != testIdentity.UserID {
		t.Errorf("Validate() UserID = %q, want %q", claims.UserID, testIdentity.UserID)
	}
	if claims.Email != testIdentity.Email || claims.Name != testIdentity.Name {
		t.Errorf("Validate() identity = %q/%q, want %q/%q", claims.Email, claims.Name, testIdentity.Email, testIdentity.Name)
	}
}

func TestTokenIssuerSevenDayExpiry(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 7*24*time.Hour)
	start := time.Date(2026, 2, 15, 9, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return start }

	token, err := issuer.Issue(testIdentity)
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	issuer.now = func() time.Time { return start.Add(6 * 24 * time.Hour) }
	if _, err := issuer.Validate(token); err != nil {
		t.Errorf("Validate() after 6 days: unexpected error %v", err)
	}

	issuer.now = func() time.Time { return start.Add(8 * 24 * time.Hour) }
	if _, err := issuer.Validate(token); err != ErrInvalidToken {
		t.Errorf("Validate() after 8 days = %v, want ErrInvalidToken", err)
	}
}

func TestTokenIssuerRejects(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	now := time.Now()

	sign := func(claims Claims, secret string) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		if err != nil {
			t.Fatalf("SignedString() unexpected error: %v", err)
		}
		return s
	}
	valid := func() Claims {
		return Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    tokenIssuer,
				Audience:  jwt.ClaimStrings{tokenAudience},
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(now),
			},
			UserID: "u1",
		}
	}

	wrongIssuer := valid()
	wrongIssuer.Issuer = "someone-else"
	wrongAudience := valid()
	wrongAudience.Audience = jwt.ClaimStrings{"other-api"}
	noSubject := valid()
	noSubject.UserID = ""

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-valid-token"},
		{"wrong secret", sign(valid(), "other-secret")},
		{"wrong issuer", sign(wrongIssuer, "test-secret")},
		{"wrong audience", sign(wrongAudience, "test-secret")},
		{"missing user id", sign(noSubject, "test-secret")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := issuer.Validate(tt.token); err != ErrInvalidToken {
				t.Errorf("Validate() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}
