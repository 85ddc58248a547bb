package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/aangan-site/aangan-api/internal/config"
	"github.com/aangan-site/aangan-api/internal/models"
	"github.com/aangan-site/aangan-api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T) (*AuthService, repository.AdminRepository) {
	t.Helper()

	dsn := fmt.Sprintf("file:authsvc_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret-key"
	cfg.JWT.ExpireMinutes = 15

	repo := repository.NewAdminRepository(db)
	return NewAuthService(cfg, repo), repo
}

func seedAdmin(t *testing.T, svc *AuthService, repo repository.AdminRepository, email, password string) *models.Admin {
	t.Helper()

	hash, err := svc.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	admin := &models.Admin{Email: email, PasswordHash: hash}
	if err := repo.Create(admin); err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	return admin
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, repo := newAuthService(t)
	seedAdmin(t, svc, repo, "admin@aangan.in", "correct-horse")

	if _, _, _, err := svc.Login("admin@aangan.in", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := svc.Login("nobody@aangan.in", "correct-horse"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestLoginIssuesShortLivedToken(t *testing.T) {
	svc, repo := newAuthService(t)
	seedAdmin(t, svc, repo, "admin@aangan.in", "correct-horse")

	admin, token, expiresAt, err := svc.Login("admin@aangan.in", "correct-horse")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}
	if admin.LastLoginAt == nil {
		t.Fatalf("expected last login timestamp to be set")
	}

	ttl := time.Until(expiresAt)
	if ttl < 14*time.Minute || ttl > 16*time.Minute {
		t.Fatalf("unexpected token lifetime: %v", ttl)
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.AdminID != admin.ID || claims.Email != admin.Email {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if claims.TokenVersion != admin.TokenVersion {
		t.Fatalf("token version mismatch: %d != %d", claims.TokenVersion, admin.TokenVersion)
	}
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	svc, _ := newAuthService(t)

	if _, err := svc.ParseJWT("not.a.token"); err == nil {
		t.Fatalf("expected parse error for garbage token")
	}
}

func TestChangePasswordBumpsTokenVersion(t *testing.T) {
	svc, repo := newAuthService(t)
	admin := seedAdmin(t, svc, repo, "admin@aangan.in", "old-pass")

	if err := svc.ChangePassword(admin.ID, "nope", "new-pass"); err != ErrInvalidPassword {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}

	before := admin.TokenVersion
	if err := svc.ChangePassword(admin.ID, "old-pass", "new-pass"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	updated, err := repo.GetByID(admin.ID)
	if err != nil || updated == nil {
		t.Fatalf("reload admin failed: %v", err)
	}
	if updated.TokenVersion != before+1 {
		t.Fatalf("expected token version bump, got %d", updated.TokenVersion)
	}
	if updated.TokenInvalidBefore == nil {
		t.Fatalf("expected token invalidation cutoff to be set")
	}

	if _, _, _, err := svc.Login("admin@aangan.in", "old-pass"); err != ErrInvalidCredentials {
		t.Fatalf("old password should no longer work, got %v", err)
	}
	if _, _, _, err := svc.Login("admin@aangan.in", "new-pass"); err != nil {
		t.Fatalf("new password login failed: %v", err)
	}
}

func TestLogoutSetsInvalidationCutoff(t *testing.T) {
	svc, repo := newAuthService(t)
	admin := seedAdmin(t, svc, repo, "admin@aangan.in", "pass")

	if err := svc.Logout(admin.ID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	updated, err := repo.GetByID(admin.ID)
	if err != nil || updated == nil {
		t.Fatalf("reload admin failed: %v", err)
	}
	if updated.TokenInvalidBefore == nil {
		t.Fatalf("expected invalidation cutoff after logout")
	}
	if time.Since(*updated.TokenInvalidBefore) > time.Minute {
		t.Fatalf("cutoff too old: %v", updated.TokenInvalidBefore)
	}

	if err := svc.Logout(9999); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for unknown admin, got %v", err)
	}
}
