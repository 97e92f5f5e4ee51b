package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campuslink/association-api/internal/core/domain"
)

func TestTokenService_IssueVerify_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", 7*24*time.Hour)
	user := &domain.User{ID: "user_1", Roles: []domain.Role{domain.RoleStudent, domain.RoleClubLead}}

	token, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.SubjectID != "user_1" {
		t.Fatalf("unexpected subject: %s", claims.SubjectID)
	}
	if len(claims.Roles) != 2 || claims.Roles[0] != domain.RoleStudent || claims.Roles[1] != domain.RoleClubLead {
		t.Fatalf("unexpected role snapshot: %v", claims.Roles)
	}
}

func TestTokenService_Verify_Expired(t *testing.T) {
	// Constructed directly to bypass the TTL clamp in NewTokenService.
	svc := &TokenService{secret: []byte("secret"), ttl: -time.Minute}

	token, err := svc.Issue(&domain.User{ID: "user_1", Roles: []domain.Role{domain.RoleStudent}})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := svc.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenService_Verify_WithinWindow(t *testing.T) {
	svc := &TokenService{secret: []byte("secret"), ttl: time.Second}

	token, err := svc.Issue(&domain.User{ID: "user_1", Roles: []domain.Role{domain.RoleStudent}})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := svc.Verify(token); err != nil {
		t.Fatalf("token should verify before expiry: %v", err)
	}
}

func TestTokenService_Verify_Tampered(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue(&domain.User{ID: "user_1", Roles: []domain.Role{domain.RoleStudent}})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	// Flip one character in each segment of the compact form.
	for _, pos := range []int{5, len(token) / 2, len(token) - 2} {
		raw := []byte(token)
		if raw[pos] == 'A' {
			raw[pos] = 'B'
		} else {
			raw[pos] = 'A'
		}
		if string(raw) == token {
			continue
		}
		if _, err := svc.Verify(string(raw)); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for tampered token at %d, got %v", pos, err)
		}
	}
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a", time.Hour).Issue(&domain.User{ID: "u", Roles: []domain.Role{domain.RoleStudent}})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := NewTokenService("secret-b", time.Hour).Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestTokenService_Verify_RejectsUnsignedAlg(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "user_1"})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := svc.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for alg=none, got %v", err)
	}
}
