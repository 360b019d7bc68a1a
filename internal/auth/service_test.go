package auth

import (
	"context"
	"io"
	"testing"

	"github.com/ghorkotha/ghorkotha-backend/pkg/config"
	"github.com/ghorkotha/ghorkotha-backend/pkg/db/models"
	pkgerrors "github.com/ghorkotha/ghorkotha-backend/pkg/errors"
	"github.com/ghorkotha/ghorkotha-backend/pkg/logger"
	"github.com/ghorkotha/ghorkotha-backend/pkg/security"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func authTestPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func setupAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS admin_users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  last_login DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func seedAdmin(t *testing.T, db *gorm.DB, email, password string, active bool) *models.AdminUser {
	t.Helper()

	hash, err := security.HashPassword(password, authTestPasswordConfig())
	require.NoError(t, err)

	admin := models.AdminUser{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		IsActive:     active,
	}
	require.NoError(t, db.Create(&admin).Error)
	return &admin
}

func newTestService(t *testing.T, db *gorm.DB) *Service {
	t.Helper()

	svc, err := NewService(
		db,
		config.JWTConfig{Secret: "test-secret", Issuer: "ghorkotha-test", ExpirationMinutes: 60},
		authTestPasswordConfig(),
		logger.New(logger.Options{Level: zerolog.Disabled, Output: io.Discard}),
	)
	require.NoError(t, err)
	return svc
}

func TestLoginSuccess(t *testing.T) {
	db := setupAuthTestDB(t)
	admin := seedAdmin(t, db, "admin@ghorkotha.test", "s3cret-pass", true)
	svc := newTestService(t, db)

	result, err := svc.Login(context.Background(), "Admin@Ghorkotha.Test", "s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.Equal(t, admin.ID, result.Admin.ID)
	require.NotNil(t, result.Admin.LastLogin)

	claims, err := svc.Verify(result.Token)
	require.NoError(t, err)
	require.Equal(t, admin.ID, claims.AdminID)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupAuthTestDB(t)
	seedAdmin(t, db, "admin@ghorkotha.test", "s3cret-pass", true)
	svc := newTestService(t, db)

	_, err := svc.Login(context.Background(), "admin@ghorkotha.test", "wrong")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestLoginUnknownEmailMatchesWrongPasswordError(t *testing.T) {
	db := setupAuthTestDB(t)
	seedAdmin(t, db, "admin@ghorkotha.test", "s3cret-pass", true)
	svc := newTestService(t, db)
	ctx := context.Background()

	_, unknownErr := svc.Login(ctx, "nobody@ghorkotha.test", "whatever")
	_, wrongErr := svc.Login(ctx, "admin@ghorkotha.test", "wrong")
	require.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestLoginInactiveAdmin(t *testing.T) {
	db := setupAuthTestDB(t)
	seedAdmin(t, db, "retired@ghorkotha.test", "s3cret-pass", false)
	svc := newTestService(t, db)

	_, err := svc.Login(context.Background(), "retired@ghorkotha.test", "s3cret-pass")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestVerifyRejectsGarbageToken(t *testing.T) {
	svc := newTestService(t, setupAuthTestDB(t))

	_, err := svc.Verify("not-a-token")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}
