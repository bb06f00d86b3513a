package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/escusoft/escuela-backend/internal/config"
)

func newTestAuth(expiry time.Duration) *AuthService {
	return NewAuthService(&config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  expiry,
		BcryptCost: 4,
	})
}

func TestVerifyHeaderFreshToken(t *testing.T) {
	auth := newTestAuth(8 * time.Hour)

	token, err := auth.GenerateToken("ana")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := auth.VerifyHeader("Bearer " + token)
	if err != nil {
		t.Fatalf("VerifyHeader: %v", err)
	}
	if claims.Username != "ana" {
		t.Errorf("username = %q, want ana", claims.Username)
	}

	exp := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if exp != 8*time.Hour {
		t.Errorf("token lifetime = %v, want 8h", exp)
	}
}

func TestVerifyHeaderMissing(t *testing.T) {
	auth := newTestAuth(time.Hour)

	if _, err := auth.VerifyHeader(""); !errors.Is(err, ErrMissingAuthHeader) {
		t.Errorf("empty header: got %v, want ErrMissingAuthHeader", err)
	}
}

func TestVerifyHeaderMalformed(t *testing.T) {
	auth := newTestAuth(time.Hour)
	token, _ := auth.GenerateToken("ana")

	for _, header := range []string{
		token,              // no scheme
		"Basic " + token,   // wrong scheme
		"Bearer",           // scheme without token
		"Bearer not.a.jwt", // garbage token
	} {
		if _, err := auth.VerifyHeader(header); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("header %q: got %v, want ErrTokenInvalid", header, err)
		}
	}
}

func TestVerifyHeaderExpired(t *testing.T) {
	auth := newTestAuth(-time.Minute)

	token, err := auth.GenerateToken("ana")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := auth.VerifyHeader("Bearer " + token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expired token: got %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyHeaderTamperedSignature(t *testing.T) {
	auth := newTestAuth(time.Hour)

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Username: "ana",
	})
	forged, err := other.SignedString([]byte("another-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := auth.VerifyHeader("Bearer " + forged); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("forged token: got %v, want ErrTokenInvalid", err)
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	auth := newTestAuth(time.Hour)

	hash, err := auth.HashPassword("secreta")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if strings.Contains(hash, "secreta") {
		t.Fatal("hash contains the plaintext password")
	}

	if err := auth.CheckPassword(hash, "secreta"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := auth.CheckPassword(hash, "otra"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
}
