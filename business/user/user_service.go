package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"rajwen/domain"
	"rajwen/pkg/logger"
	"rajwen/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/pobyzaarif/goshortcute"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, message string) error
}

// SessionRepository contract interface
type SessionRepository interface {
	StoreSession(ctx context.Context, session domain.Session, ttl time.Duration) error
	ValidateToken(ctx context.Context, token string) (string, error)
	DeleteSession(ctx context.Context, userID, token string) error
}

// ErrInvalidCredentials carries the exact message returned to the client on
// a failed signin.
var ErrInvalidCredentials = errors.New("Invalid credentials")

const (
	resetCodeTTL           = 15 // minutes
	SubjectPasswordReset   = "Reset Your Rajwen Password"
	EmailBodyPasswordReset = `Hello %v, open the link below to choose a new password.</br></br>%v</br>note: the link is only valid for %v minutes`
)

type userService struct {
	userRepo         UserRepository
	validate         *validator.Validate
	notifRepo        NotificationRepository
	sessionRepo      SessionRepository
	appResetKey      string
	appDeploymentUrl string
}

func NewUserService(
	userRepo UserRepository,
	validate *validator.Validate,
	notifRepo NotificationRepository,
	sessionRepo SessionRepository,
	appResetKey string,
	appDeploymentUrl string,
) *userService {
	return &userService{
		userRepo:         userRepo,
		validate:         validate,
		notifRepo:        notifRepo,
		sessionRepo:      sessionRepo,
		appResetKey:      appResetKey,
		appDeploymentUrl: appDeploymentUrl,
	}
}

// issueToken signs a JWT for the user and stores the matching session so the
// auth middleware can reject tokens invalidated by logout.
func (s *userService) issueToken(ctx context.Context, user domain.User, ipAddress, userAgent string) (string, error) {
	userIDStr := strconv.FormatUint(uint64(user.ID), 10)

	token, err := utils.GenerateJWT(userIDStr, user.Role)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return "", errors.New("failed to generate token")
	}

	now := time.Now()
	session := domain.Session{
		UserID:    userIDStr,
		Role:      user.Role,
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(utils.TokenTTL),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
	if err := s.sessionRepo.StoreSession(ctx, session, utils.TokenTTL); err != nil {
		logger.Error("Failed to store session", err)
		return "", errors.New("failed to store session")
	}

	return token, nil
}

func (s *userService) Register(ctx context.Context, user *domain.User, ipAddress, userAgent string) (string, domain.User, error) {
	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		logger.Error("Invalid email format", err)
		return "", domain.User{}, errors.New("invalid email format")
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		logger.Error("Invalid user password", err)
		return "", domain.User{}, errors.New("password must be at least 6 characters")
	}

	existingUser, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existingUser.ID > 0 {
		logger.Error("Email already exists")
		return "", domain.User{}, errors.New("email already exists")
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return "", domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		Name:     user.Name,
		Email:    user.Email,
		Password: passwordHash,
		Role:     domain.RoleUser,
		Phone:    user.Phone,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", err)
		return "", domain.User{}, err
	}

	token, err := s.issueToken(ctx, newUser, ipAddress, userAgent)
	if err != nil {
		return "", domain.User{}, err
	}

	newUser.Password = ""
	return token, newUser, nil
}

func (s *userService) Login(ctx context.Context, email, password, ipAddress, userAgent string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("Invalid user credentials", err)
		return "", domain.User{}, ErrInvalidCredentials
	}

	if ok := utils.CheckPassword(password, user.Password); !ok {
		logger.Error("User password incorrect")
		return "", domain.User{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user, ipAddress, userAgent)
	if err != nil {
		return "", domain.User{}, err
	}

	user.Password = ""
	return token, user, nil
}

func (s *userService) Logout(ctx context.Context, userID uint, token string) error {
	userIDStr := strconv.FormatUint(uint64(userID), 10)

	if err := s.sessionRepo.DeleteSession(ctx, userIDStr, token); err != nil {
		logger.Error("Failed to delete session", err)
		return err
	}

	return nil
}

// ValidateToken exposes the session lookup to the auth middleware.
func (s *userService) ValidateToken(ctx context.Context, token string) (string, error) {
	return s.sessionRepo.ValidateToken(ctx, token)
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get user by ID", err)
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}

func (s *userService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("Forgot password for unknown email", err)
		return err
	}

	expAt := time.Now().Add(time.Duration(time.Minute * resetCodeTTL)).Unix()

	resetCode := fmt.Sprintf("%v|%v", user.Email, expAt)
	resetCodeEncrypt, err := goshortcute.AESCBCEncrypt([]byte(resetCode), []byte(s.appResetKey))
	if err != nil {
		logger.Error("Failed to encrypt reset code", err)
		return errors.New("failed to build reset code")
	}
	strEncode := goshortcute.StringtoBase64Encode(resetCodeEncrypt)
	resetLink := s.appDeploymentUrl + "/reset-password?code=" + strEncode

	err = s.notifRepo.SendEmail(user.Name, user.Email, SubjectPasswordReset,
		fmt.Sprintf(EmailBodyPasswordReset, user.Name, resetLink, resetCodeTTL))
	if err != nil {
		logger.Warn("Failed to send reset email", err)
		return errors.New("failed to send reset email")
	}

	return nil
}

func (s *userService) ResetPassword(ctx context.Context, code, newPassword string) error {
	if err := s.validate.Var(newPassword, "required,min=6"); err != nil {
		logger.Error("Invalid new password", err)
		return errors.New("password must be at least 6 characters")
	}

	strDecode := goshortcute.StringtoBase64Decode(code)
	resetCodeDecrypt, err := goshortcute.AESCBCDecrypt([]byte(strDecode), []byte(s.appResetKey))
	if err != nil {
		logger.Error("Reset password error", err)
		return errors.New("invalid or expired reset code")
	}

	resetCode := strings.Split(resetCodeDecrypt, "|")
	if len(resetCode) != 2 {
		logger.Error("Reset password error", resetCodeDecrypt)
		return errors.New("invalid or expired reset code")
	}

	email := resetCode[0]
	expAtStr := resetCode[1]

	ts, err := strconv.ParseInt(expAtStr, 10, 64)
	if err != nil {
		logger.Error("Reset password error", resetCodeDecrypt)
		return errors.New("invalid or expired reset code")
	}
	expAt := time.Unix(ts, 0)
	if time.Now().After(expAt) {
		return errors.New("invalid or expired reset code")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("Reset password error", err)
		return errors.New("invalid or expired reset code")
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return errors.New("failed to hash password")
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		logger.Error("Failed to update password", err)
		return err
	}

	return nil
}
