package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fintrack/internal/auth"
	"fintrack/internal/email"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/validator"
)

const resetCodeTTL = 15 * time.Minute

// authService handles registration, login, token refresh, and the password
// recovery flow.
type authService struct {
	db     *gorm.DB
	mailer email.Sender
}

// NewAuthService creates a new AuthServicer.
func NewAuthService(db *gorm.DB, mailer email.Sender) AuthServicer {
	return &authService{db: db, mailer: mailer}
}

// Register creates a new user and issues a token pair. A taken email fails
// with DUPLICATE_EMAIL.
func (s *authService) Register(name, email, password string) (*TokenPair, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if !validator.Email(email) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "a valid email is required")
	}
	if !validator.Password(password) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "password must be between 8 and 128 characters")
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", strings.ToLower(email)).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Name:     name,
		Email:    strings.ToLower(email),
		Password: string(hashedPassword),
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.issueTokenPair(user)
}

// Login verifies the credentials and issues a token pair. An unknown email
// fails with USER_NOT_FOUND, a wrong password with INVALID_CREDENTIALS.
func (s *authService) Login(email, password string) (*TokenPair, error) {
	user, err := s.findByEmail(email)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokenPair(user)
}

// RefreshToken verifies the presented refresh token and rotates the pair:
// a new access and refresh token are issued and the stored refresh-token
// hash is replaced. Every verification failure collapses into INVALID_TOKEN
// so the internal cause is not leaked.
func (s *authService) RefreshToken(refreshToken string) (*TokenPair, error) {
	claims, err := auth.ValidateToken(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	var user models.User
	if err := s.db.Where("id = ?", claims.UserID).First(&user).Error; err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	// A rotated-out token no longer matches the stored hash.
	if user.RefreshTokenHash != auth.HashToken(refreshToken) {
		return nil, apperrors.ErrInvalidToken
	}

	return s.issueTokenPair(&user)
}

// ForgotPassword starts the password recovery flow. It always reports
// success, even for unknown emails, so the response shape cannot be used to
// enumerate accounts. For a known account it persists a numeric one-time
// code with a 15-minute expiry and dispatches it by email.
func (s *authService) ForgotPassword(emailAddr string) (bool, error) {
	var user models.User
	if err := s.db.Where("email = ?", strings.ToLower(emailAddr)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return true, nil
		}
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	code, err := generateResetCode()
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	expiry := time.Now().Add(resetCodeTTL)

	err = s.db.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"reset_code":        code,
		"reset_code_expiry": expiry,
	}).Error
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.mailer.SendResetCode(user.Email, code); err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return true, nil
}

// ResetPassword completes the recovery flow. A missing account, missing,
// mismatched, or expired code, and a password/confirmation mismatch all
// fail with the same INVALID_RESET_CODE error.
func (s *authService) ResetPassword(emailAddr, code, password, confirmPassword string) (bool, error) {
	var user models.User
	err := s.db.Where("email = ?", strings.ToLower(emailAddr)).First(&user).Error
	if err != nil ||
		user.ResetCode == nil ||
		user.ResetCodeExpiry == nil ||
		*user.ResetCode != code ||
		user.ResetCodeExpiry.Before(time.Now()) ||
		password != confirmPassword {
		return false, apperrors.ErrInvalidResetCode
	}

	if !validator.Password(password) {
		return false, apperrors.WithMessage(apperrors.ErrInvalidInput, "password must be between 8 and 128 characters")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err = s.db.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"password":          string(hashedPassword),
		"reset_code":        nil,
		"reset_code_expiry": nil,
	}).Error
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return true, nil
}

func (s *authService) findByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// issueTokenPair mints an access/refresh pair and stores the hash of the
// refresh token on the user, invalidating the previously issued one.
func (s *authService) issueTokenPair(user *models.User) (*TokenPair, error) {
	token, err := auth.GenerateAccessToken(user)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	refreshToken, err := auth.GenerateRefreshToken(user)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	hash := auth.HashToken(refreshToken)
	if err := s.db.Model(&models.User{}).Where("id = ?", user.ID).Update("refresh_token_hash", hash).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	user.RefreshTokenHash = hash

	return &TokenPair{
		Token:        token,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// generateResetCode returns a random six-digit numeric code.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
