package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"comboshare/internal/config"
	"comboshare/internal/logging"
	"comboshare/internal/microservices/http-api/dto"
	"comboshare/internal/microservices/http-api/models"
	"comboshare/internal/microservices/http-api/repository"
	"comboshare/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrNameRequired       = errors.New("name is required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionExpired     = errors.New("session expired")
)

const MinPasswordLength = 6

// dummyHash keeps failed logins for unknown emails as slow as wrong passwords.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e"

// Principal is the authenticated caller of a request.
type Principal struct {
	User      *models.User
	SessionID string
	IsAdmin   bool
}

// LoginResult carries the signed session token.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
	IsAdmin   bool
}

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*Principal, error)
	Me(ctx context.Context, userID string) (*models.User, bool, error)
	IsAdmin(email string) bool
}

type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	admins      config.AdminSet
	secret      []byte
	sessionTTL  time.Duration
	now         func() time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		admins:      cfg.Admins(),
		secret:      []byte(cfg.SessionSecret),
		sessionTTL:  cfg.SessionTTL,
		now:         time.Now,
	}
}

// Register creates an account with a bcrypt-hashed password.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	email := config.NormalizeEmail(req.Email)
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if len(req.Password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Name:     name,
		Password: hashed,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// a concurrent register with the same email loses on the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	logging.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Login replaces every existing session of the user with a fresh one.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, config.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = auth.VerifyPassword(dummyHash, password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	session := &models.Session{
		UserID:    user.ID,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessionRepo.ReplaceForUser(ctx, session); err != nil {
		return nil, err
	}
	if err := s.userRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		logging.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record last login")
	}

	token, err := s.sign(session, user, now)
	if err != nil {
		return nil, err
	}

	logging.Info().Str("user_id", user.ID).Msg("user logged in")
	return &LoginResult{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      user,
		IsAdmin:   s.admins.IsAdmin(user.Email),
	}, nil
}

func (s *authService) sign(session *models.Session, user *models.User, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sid":   session.ID,
		"sub":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   session.ExpiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// parse verifies the signature and returns the session and user ids.
func (s *authService) parse(tokenString string) (string, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrSessionExpired
		}
		return "", "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", ErrInvalidToken
	}
	sid, _ := claims["sid"].(string)
	sub, _ := claims["sub"].(string)
	if sid == "" || sub == "" {
		return "", "", ErrInvalidToken
	}
	return sid, sub, nil
}

// Logout deletes the session behind token. An already expired token still logs out.
func (s *authService) Logout(ctx context.Context, token string) error {
	sid, _, err := s.parse(token)
	if err != nil {
		if errors.Is(err, ErrSessionExpired) {
			return nil
		}
		return err
	}
	return s.sessionRepo.Delete(ctx, sid)
}

func (s *authService) Authenticate(ctx context.Context, token string) (*Principal, error) {
	sid, sub, err := s.parse(token)
	if err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.FindByID(ctx, sid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, err
	}
	if session.UserID != sub {
		return nil, ErrInvalidToken
	}
	if session.Expired(s.now()) {
		return nil, ErrSessionExpired
	}

	user := session.User
	return &Principal{
		User:      &user,
		SessionID: session.ID,
		IsAdmin:   s.admins.IsAdmin(user.Email),
	}, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*models.User, bool, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrSessionExpired
		}
		return nil, false, err
	}
	return user, s.admins.IsAdmin(user.Email), nil
}

func (s *authService) IsAdmin(email string) bool {
	return s.admins.IsAdmin(email)
}
