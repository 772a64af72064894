package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"offerPilot/domain"
	"offerPilot/pkg/logger"
	"offerPilot/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/pobyzaarif/goshortcute"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	UpdateEmailVerification(ctx context.Context, id uint, isVerified bool) error
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, message string) (err error)
}

type userService struct {
	userRepo             UserRepository
	validate             *validator.Validate
	notifRepo            NotificationRepository
	emailVerificationKey string
	deploymentUrl        string
}

const (
	verificationCodeTTLMinutes = 5
	SubjectActivateAccount     = "Activate your offerPilot account"
	EmailBodyActivateAccount   = `Hi %v, activate your account by opening the link below.</br></br>%v</br>Note: the link is only valid for %v minutes.`
)

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

func NewUserService(
	userRepo UserRepository,
	validate *validator.Validate,
	notifRepo NotificationRepository,
	emailVerificationKey string,
	deploymentUrl string,
) *userService {
	return &userService{
		userRepo:             userRepo,
		validate:             validate,
		notifRepo:            notifRepo,
		emailVerificationKey: emailVerificationKey,
		deploymentUrl:        deploymentUrl,
	}
}

func (s *userService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		return domain.User{}, errors.New("invalid email format")
	}
	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		return domain.User{}, errors.New("password must be at least 6 characters")
	}

	existing, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existing.ID > 0 {
		return domain.User{}, errors.New("email already exists")
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", "error", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		FullName:   user.FullName,
		Email:      user.Email,
		Password:   passwordHash,
		IsVerified: false,
		Role:       RoleMember,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", "error", err)
		return domain.User{}, err
	}

	expAt := time.Now().Add(verificationCodeTTLMinutes * time.Minute).Unix()
	verificationCode := fmt.Sprintf("%v|%v", newUser.Email, expAt)
	encrypted, err := goshortcute.AESCBCEncrypt([]byte(verificationCode), []byte(s.emailVerificationKey))
	if err != nil {
		return domain.User{}, fmt.Errorf("encrypt verification code: %w", err)
	}
	encoded := goshortcute.StringtoBase64Encode(encrypted)
	activationLink := s.deploymentUrl + "/api/v1/users/email-verification/" + encoded

	body := fmt.Sprintf(EmailBodyActivateAccount, newUser.FullName, activationLink, verificationCodeTTLMinutes)
	if err := s.notifRepo.SendEmail(newUser.FullName, newUser.Email, SubjectActivateAccount, body); err != nil {
		logger.Warn("Failed to send verification email", "error", err)
	}

	newUser.Password = ""
	return newUser, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", domain.User{}, errors.New("invalid credentials")
	}

	if ok := utils.CheckPassword(password, user.Password); !ok {
		return "", domain.User{}, errors.New("invalid credentials")
	}

	if !user.IsVerified {
		return "", domain.User{}, errors.New("email address has not been verified")
	}

	token, err := utils.GenerateJWT(strconv.FormatUint(uint64(user.ID), 10), user.Role)
	if err != nil {
		logger.Error("Failed to generate token", "error", err)
		return "", domain.User{}, errors.New("failed to generate token")
	}

	user.Password = ""
	return token, user, nil
}

func (s *userService) VerifyEmail(ctx context.Context, encodedCode string) error {
	decoded := goshortcute.StringtoBase64Decode(encodedCode)
	decrypted, err := goshortcute.AESCBCDecrypt([]byte(decoded), []byte(s.emailVerificationKey))
	if err != nil {
		return errors.New("invalid or expired url")
	}

	parts := strings.Split(decrypted, "|")
	if len(parts) != 2 {
		return errors.New("invalid or expired url")
	}

	email := parts[0]
	ts, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return errors.New("invalid or expired url")
	}
	if time.Now().After(time.Unix(ts, 0)) {
		return errors.New("invalid or expired url")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return errors.New("failed to get user by email")
	}
	if user.IsVerified {
		return errors.New("invalid or expired url")
	}

	return s.userRepo.UpdateEmailVerification(ctx, user.ID, true)
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}
