package admin

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CheckinService/internal/service/admin/models"
	"github.com/m04kA/SMC-CheckinService/pkg/auth"
)

const tokenType = "Bearer"

// Service вход единственного администратора
type Service struct {
	email        string
	passwordHash string
	issuer       TokenIssuer
	logger       Logger
}

// NewService создает сервис входа; passwordHash - bcrypt-хэш пароля администратора
func NewService(email, passwordHash string, issuer TokenIssuer, logger Logger) *Service {
	return &Service{
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: passwordHash,
		issuer:       issuer,
		logger:       logger,
	}
}

// Login проверяет учетные данные и выпускает токен с ролью admin.
// bcrypt выполняется при любом email, чтобы время ответа не выдавало существование адреса.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.email)) == 1
	passwordErr := auth.CheckPassword(s.passwordHash, req.Password)

	if !emailOK || passwordErr != nil {
		s.logger.Warn("Login: rejected credentials for email=%s", email)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.issuer.IssueToken(s.email, auth.RoleAdmin, s.email)
	if err != nil {
		s.logger.Error("Login: failed to issue token: %v", err)
		return nil, fmt.Errorf("%w: Login - issue token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: admin %s signed in, token expires at %s", s.email, expiresAt.Format("2006-01-02 15:04:05"))
	return &models.LoginResponse{
		AccessToken: token,
		TokenType:   tokenType,
		ExpiresAt:   expiresAt,
	}, nil
}
