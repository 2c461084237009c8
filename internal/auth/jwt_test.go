// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/carterperez-dev/gerenciador/internal/config"
	"github.com/carterperez-dev/gerenciador/internal/core"
)

func testJWTConfig(t *testing.T, accessExpire time.Duration) config.JWTConfig {
	t.Helper()

	dir := t.TempDir()
	cfg := config.JWTConfig{
		PrivateKeyPath:     filepath.Join(dir, "private.pem"),
		PublicKeyPath:      filepath.Join(dir, "public.pem"),
		AccessTokenExpire:  accessExpire,
		RefreshTokenExpire: 168 * time.Hour,
		Issuer:             "gerenciador",
		Audience:           "gerenciador-api",
	}

	if err := GenerateKeyPair(cfg.PrivateKeyPath, cfg.PublicKeyPath); err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}

	return cfg
}

func TestAccessTokenRoundTrip(t *testing.T) {
	cfg := testJWTConfig(t, 15*time.Minute)

	manager, err := NewJWTManager(cfg)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	signed, err := manager.CreateAccessToken(AccessTokenClaims{
		UserID: "user-1",
		Role:   "admin",
	})
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}

	claims, err := manager.VerifyAccessToken(context.Background(), signed)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "user-1")
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q, want %q", claims.Role, "admin")
	}
	if claims.TokenID == "" {
		t.Error("TokenID is empty, want a jti")
	}
}

func TestVerifyAccessTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig(t, -time.Minute)

	manager, err := NewJWTManager(cfg)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	signed, err := manager.CreateAccessToken(AccessTokenClaims{
		UserID: "user-1",
		Role:   "user",
	})
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}

	_, err = manager.VerifyAccessToken(context.Background(), signed)
	if !errors.Is(err, core.ErrTokenExpired) {
		t.Errorf("VerifyAccessToken error = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyAccessTokenRejectsForeignSignature(t *testing.T) {
	cfgA := testJWTConfig(t, 15*time.Minute)
	cfgB := testJWTConfig(t, 15*time.Minute)

	managerA, err := NewJWTManager(cfgA)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	managerB, err := NewJWTManager(cfgB)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	signed, err := managerA.CreateAccessToken(AccessTokenClaims{
		UserID: "user-1",
		Role:   "user",
	})
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}

	_, err = managerB.VerifyAccessToken(context.Background(), signed)
	if !errors.Is(err, core.ErrTokenInvalid) {
		t.Errorf("VerifyAccessToken error = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyAccessTokenRejectsGarbage(t *testing.T) {
	cfg := testJWTConfig(t, 15*time.Minute)

	manager, err := NewJWTManager(cfg)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	_, err = manager.VerifyAccessToken(context.Background(), "not-a-token")
	if !errors.Is(err, core.ErrTokenInvalid) {
		t.Errorf("VerifyAccessToken error = %v, want ErrTokenInvalid", err)
	}
}

func TestCreateRefreshToken(t *testing.T) {
	cfg := testJWTConfig(t, 15*time.Minute)

	manager, err := NewJWTManager(cfg)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	data, err := manager.CreateRefreshToken("user-1", "")
	if err != nil {
		t.Fatalf("CreateRefreshToken: %v", err)
	}

	if data.Token == "" {
		t.Fatal("Token is empty")
	}
	if data.Hash != core.HashToken(data.Token) {
		t.Error("Hash does not match HashToken of the raw token")
	}
	if data.FamilyID == "" {
		t.Error("FamilyID not generated for new session")
	}
	if !data.ExpiresAt.After(time.Now().Add(167 * time.Hour)) {
		t.Errorf("ExpiresAt = %v, want roughly a week out", data.ExpiresAt)
	}

	rotated, err := manager.CreateRefreshToken("user-1", data.FamilyID)
	if err != nil {
		t.Fatalf("CreateRefreshToken rotation: %v", err)
	}
	if rotated.FamilyID != data.FamilyID {
		t.Errorf("rotation FamilyID = %q, want %q", rotated.FamilyID, data.FamilyID)
	}
	if rotated.Token == data.Token {
		t.Error("rotation reused the same raw token")
	}
}
