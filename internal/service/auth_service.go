package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"ai-intake-be/internal/config"
	"ai-intake-be/internal/dto"
	"ai-intake-be/internal/pkg/logger"
	"ai-intake-be/internal/pkg/serverutils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const adminTokenTTL = 24 * time.Hour

// IAuthService issues dashboard tokens from env-configured credentials.
// There is no user table; a single admin identity gates the whole surface.
type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	admin config.AdminConfig
	log   logger.ILogger
	now   func() time.Time
}

func NewAuthService(admin config.AdminConfig, log logger.ILogger) IAuthService {
	return &authService{
		admin: admin,
		log:   log,
		now:   time.Now,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.admin.Username == "" || s.admin.Password == "" {
		return nil, serverutils.ErrUnauthorized
	}

	userOk := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.admin.Username)) == 1
	if !userOk || !s.passwordMatches(req.Password) {
		s.log.Warn("auth", "Failed admin login attempt", map[string]interface{}{
			"username": req.Username,
		})
		return nil, serverutils.ErrUnauthorized
	}

	now := s.now()
	claims := jwt.MapClaims{
		"sub":  s.admin.Username,
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  now.Add(adminTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.admin.JWTSecret))
	if err != nil {
		return nil, err
	}

	s.log.Info("auth", "Admin logged in", map[string]interface{}{"username": req.Username})
	return &dto.LoginResponse{AccessToken: signed}, nil
}

// passwordMatches accepts either a bcrypt hash or a plaintext value in the
// configured password, so operators can start simple and harden later.
func (s *authService) passwordMatches(candidate string) bool {
	if strings.HasPrefix(s.admin.Password, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(s.admin.Password), []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(s.admin.Password)) == 1
}
