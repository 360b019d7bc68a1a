package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	pkgauth "github.com/ghorkotha/ghorkotha-backend/pkg/auth"
	"github.com/ghorkotha/ghorkotha-backend/pkg/config"
	"github.com/ghorkotha/ghorkotha-backend/pkg/db/models"
	pkgerrors "github.com/ghorkotha/ghorkotha-backend/pkg/errors"
	"github.com/ghorkotha/ghorkotha-backend/pkg/logger"
	"github.com/ghorkotha/ghorkotha-backend/pkg/security"
	"gorm.io/gorm"
)

// LoginResult carries the minted session for a successful login.
type LoginResult struct {
	Token string            `json:"token"`
	Admin *models.AdminUser `json:"admin"`
}

// Service authenticates admin panel users.
type Service struct {
	dbh         *gorm.DB
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	logg        *logger.Logger
	now         func() time.Time
}

// NewService builds the admin auth service.
func NewService(dbh *gorm.DB, jwtCfg config.JWTConfig, passwordCfg config.PasswordConfig, logg *logger.Logger) (*Service, error) {
	if dbh == nil {
		return nil, fmt.Errorf("db handle required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{
		dbh:         dbh,
		jwtCfg:      jwtCfg,
		passwordCfg: passwordCfg,
		logg:        logg,
		now:         time.Now,
	}, nil
}

// Login verifies the credentials and mints a session token. Unknown
// emails and wrong passwords produce the same error so the endpoint
// does not leak which admin accounts exist.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	var admin models.AdminUser
	err := s.dbh.WithContext(ctx).Where("email = ?", email).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load admin user")
	}
	if !admin.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	ok, err := security.VerifyPassword(password, admin.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	token, err := pkgauth.MintAdminToken(s.jwtCfg, s.now(), admin.ID, admin.Email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session token")
	}

	loginAt := s.now()
	if err := s.dbh.WithContext(ctx).Model(&admin).Update("last_login", loginAt).Error; err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("record admin last login: %v", err))
	}
	admin.LastLogin = &loginAt

	s.logg.Info(s.logg.WithAdminID(ctx, admin.ID.String()), "admin logged in")
	return &LoginResult{Token: token, Admin: &admin}, nil
}

// Verify parses a bearer token back into admin claims.
func (s *Service) Verify(tokenString string) (*pkgauth.AdminClaims, error) {
	claims, err := pkgauth.ParseAdminToken(s.jwtCfg, tokenString)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid session token")
	}
	return claims, nil
}
