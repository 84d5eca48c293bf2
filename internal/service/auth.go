package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/firesalehomes/firesale/internal/model"
	"github.com/firesalehomes/firesale/internal/repository"
	"github.com/firesalehomes/firesale/internal/validation"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("an account with this email already exists")
	ErrInvalidResetToken  = errors.New("invalid or expired reset link")
)

const sessionCookieName = "investor_token"

type AuthService struct {
	investorRepository   repository.InvestorRepository
	resetTokenRepository repository.ResetTokenRepository
	emailService         *EmailService
	jwtSecret            string
	isProduction         bool
	jwtExpiry            time.Duration
	resetTokenExpiry     time.Duration
	now                  func() time.Time
}

func NewAuthService(
	investorRepository repository.InvestorRepository,
	resetTokenRepository repository.ResetTokenRepository,
	emailService *EmailService,
	jwtSecret string,
	isProduction bool,
	jwtExpiry time.Duration,
	resetTokenExpiry time.Duration,
) *AuthService {
	return &AuthService{
		investorRepository:   investorRepository,
		resetTokenRepository: resetTokenRepository,
		emailService:         emailService,
		jwtSecret:            jwtSecret,
		isProduction:         isProduction,
		jwtExpiry:            jwtExpiry,
		resetTokenExpiry:     resetTokenExpiry,
		now:                  time.Now,
	}
}

type SignupInput struct {
	Email    string
	Password string
	Name     string
	Company  string
	Phone    string
}

func (s *AuthService) Signup(input SignupInput) (*model.Investor, error) {
	input.Email = validation.NormalizeEmail(input.Email)
	input.Name = validation.Sanitize(input.Name)
	input.Company = validation.Sanitize(input.Company)

	if err := validation.ValidateEmail(input.Email); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := validation.ValidatePassword(input.Password); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := validation.ValidateName(input.Name); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := validation.ValidateCompany(input.Company); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := validation.ValidatePhone(input.Phone); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	passwordHash, err := s.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	investor := &model.Investor{
		Email:        input.Email,
		PasswordHash: passwordHash,
		Name:         input.Name,
		CreatedAt:    s.now(),
	}
	if input.Company != "" {
		investor.Company = &input.Company
	}
	if input.Phone != "" {
		investor.Phone = &input.Phone
	}

	err = s.investorRepository.Create(investor)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create investor: %w", err)
	}

	slog.Info("investor signed up", "investor_id", investor.ID, "email", investor.Email)
	return investor, nil
}

func (s *AuthService) Login(email, password string) (*model.Investor, error) {
	email = validation.NormalizeEmail(email)

	investor, err := s.investorRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrInvestorNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get investor: %w", err)
	}

	err = s.ComparePassword(password, investor.PasswordHash)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return investor, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// GenerateResetToken returns an opaque random token for the reset flow.
func (s *AuthService) GenerateResetToken() (string, error) {
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func (s *AuthService) GenerateJWT(investor *model.Investor) (string, error) {
	claims := jwt.MapClaims{
		"investor_id": investor.ID,
		"email":       investor.Email,
		"exp":         s.now().Add(s.jwtExpiry).Unix(),
		"iat":         s.now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyJWT resolves a session token to an investor id. Any verification
// failure returns an error; callers treat that as "no investor".
func (s *AuthService) VerifyJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return "", fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	investorID, ok := claims["investor_id"].(string)
	if !ok || investorID == "" {
		return "", errors.New("token missing investor_id")
	}

	return investorID, nil
}

func (s *AuthService) SetSessionCookie(w http.ResponseWriter, token string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Expires:  expiry,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionCookieName is exposed for the auth middleware.
func (s *AuthService) SessionCookieName() string {
	return sessionCookieName
}

// SessionExpiry returns the absolute expiry for a session issued now.
func (s *AuthService) SessionExpiry() time.Time {
	return s.now().Add(s.jwtExpiry)
}

// RequestPasswordReset issues a reset token and emails it. It succeeds
// silently for unknown addresses so the endpoint cannot be used to probe
// which emails are registered. Issuing a new token deletes older tokens for
// the same email, keeping at most one live token per address.
func (s *AuthService) RequestPasswordReset(email string) error {
	email = validation.NormalizeEmail(email)

	err := validation.ValidateEmail(email)
	if err != nil {
		return &ValidationError{Message: err.Error()}
	}

	investor, err := s.investorRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrInvestorNotFound) {
			slog.Info("password reset requested for unknown email", "email", email)
			return nil
		}
		return fmt.Errorf("failed to look up investor: %w", err)
	}

	resetToken, err := s.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	err = s.resetTokenRepository.DeleteByEmail(email)
	if err != nil {
		slog.Warn("failed to delete old reset tokens", "error", err, "email", email)
	}

	token := &model.PasswordResetToken{
		Email:     email,
		Token:     resetToken,
		CreatedAt: s.now(),
		ExpiresAt: s.now().Add(s.resetTokenExpiry),
	}
	err = s.resetTokenRepository.Create(token)
	if err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	err = s.emailService.SendPasswordResetEmail(email, investor.Name, resetToken)
	if err != nil {
		slog.Error("failed to send password reset email", "error", err, "email", email)
		return fmt.Errorf("failed to send email: %w", err)
	}

	slog.Info("password reset link sent", "email", email)
	return nil
}

// ResetPassword consumes a reset token and sets the new password. Expired
// tokens are deleted on detection; a consumed token cannot be reused.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	if token == "" {
		return &ValidationError{Message: "token is required"}
	}

	err := validation.ValidatePassword(newPassword)
	if err != nil {
		return &ValidationError{Message: err.Error()}
	}

	resetToken, err := s.resetTokenRepository.ByToken(token)
	if err != nil {
		if errors.Is(err, repository.ErrResetTokenNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	if resetToken.Expired(s.now()) {
		err = s.resetTokenRepository.DeleteByToken(token)
		if err != nil {
			slog.Warn("failed to delete expired reset token", "error", err)
		}
		return ErrInvalidResetToken
	}

	passwordHash, err := s.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.investorRepository.UpdatePasswordByEmail(resetToken.Email, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	err = s.resetTokenRepository.DeleteByToken(token)
	if err != nil {
		slog.Warn("failed to delete used reset token", "error", err)
	}

	slog.Info("password reset completed", "email", resetToken.Email)
	return nil
}
