package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"eatwise/internal/models/db_models"
	"eatwise/internal/models/request_models"
	"eatwise/internal/models/response_models"
	"eatwise/internal/repositories"
	"eatwise/pkg/logger"
	mem "eatwise/pkg/memcache"
	"eatwise/pkg/utils"
)

const (
	otpLength = 6
	// wrong guesses allowed before a code is discarded
	maxOTPAttempts = 5
)

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (string, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) error
	ForgotPassword(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error
	GetProfile(ctx context.Context, accountID string) (*response_models.AccountResponse, error)
	// UpdateProfile changes the names present in the request and returns the
	// updated profile.
	UpdateProfile(ctx context.Context, accountID string, request request_models.UpdateProfileRequest) (*response_models.AccountResponse, error)
}

type AccountService struct {
	accountRepo  repositories.AccountRepository
	answerRepo   repositories.AnswerRepository
	behaviorRepo repositories.BehaviorRepository
	otps         mem.OTPStore
	mail         IMailService
	tokens       *utils.TokenIssuer
	otpTTL       time.Duration
	admins       map[string]struct{}
	log          *logger.Logger
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	answerRepo repositories.AnswerRepository,
	behaviorRepo repositories.BehaviorRepository,
	otps mem.OTPStore,
	mail IMailService,
	tokens *utils.TokenIssuer,
	otpTTL time.Duration,
	adminEmails []string,
	log *logger.Logger,
) AccountServiceInterface {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		admins[normalizeEmail(e)] = struct{}{}
	}
	return &AccountService{
		accountRepo:  accountRepo,
		answerRepo:   answerRepo,
		behaviorRepo: behaviorRepo,
		otps:         otps,
		mail:         mail,
		tokens:       tokens,
		otpTTL:       otpTTL,
		admins:       admins,
		log:          log,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// roleFor grants the admin role to emails listed in ADMIN_EMAILS.
func (a *AccountService) roleFor(email string) string {
	if _, ok := a.admins[email]; ok {
		return db_models.RoleAdmin
	}
	return db_models.RoleUser
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (string, error) {
	startTime := time.Now()

	account, err := a.accountRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		a.log.Error("find account failed", "error", err)
		return "", utils.ErrDatabaseError
	}
	if account == nil {
		return "", utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return "", utils.ErrInvalidCredentials
	}

	token, err := a.tokens.CreateToken(account.ID, account.Role)
	if err != nil {
		a.log.Error("sign token failed", "error", err)
		return "", utils.ErrInvalidCredentials
	}

	a.log.Debug("login", "account_id", account.ID, "took", time.Since(startTime))
	return token, nil
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) error {
	email := normalizeEmail(request.Email)

	existingAccount, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		a.log.Error("find account failed", "error", err)
		return utils.ErrDatabaseError
	}
	if existingAccount != nil {
		return utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	newAccount := &db_models.Account{
		FirstName:    strings.TrimSpace(request.FirstName),
		LastName:     strings.TrimSpace(request.LastName),
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         a.roleFor(email),
	}

	if err := a.accountRepo.Insert(ctx, newAccount); err != nil {
		a.log.Error("insert account failed", "error", err)
		return utils.ErrDatabaseError
	}
	a.log.Info("account created", "account_id", newAccount.ID)
	return nil
}

// ForgotPassword mails a fresh OTP, replacing any earlier one for the email.
func (a *AccountService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		a.log.Error("find account failed", "error", err)
		return utils.ErrDatabaseError
	}
	if account == nil {
		return utils.ErrAccountNotFound
	}

	otp, err := utils.GenerateOtpCode(otpLength)
	if err != nil {
		return err
	}
	if err := a.otps.Set(ctx, email, otp, a.otpTTL); err != nil {
		a.log.Error("store otp failed", "error", err)
		return err
	}
	if err := a.mail.SendOTP(email, otp, a.otpTTL); err != nil {
		a.log.Error("send otp mail failed", "account_id", account.ID, "error", err)
		return err
	}
	return nil
}

// VerifyOTP checks a code without consuming it. Each wrong guess counts
// against the code; after maxOTPAttempts the code is discarded.
func (a *AccountService) VerifyOTP(ctx context.Context, email, otp string) error {
	email = normalizeEmail(email)
	stored, ok, err := a.otps.Peek(ctx, email)
	if err != nil {
		a.log.Error("read otp failed", "error", err)
		return err
	}
	if !ok {
		return utils.ErrInvalidOTP
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(otp)) != 1 {
		left, err := a.otps.Fail(ctx, email, maxOTPAttempts)
		if err != nil {
			a.log.Error("record otp failure failed", "error", err)
			return err
		}
		if left == 0 {
			a.log.Warn("otp discarded after too many attempts")
		}
		return utils.ErrInvalidOTP
	}
	return nil
}

// ResetPassword checks the OTP, consumes it and stores the new password.
func (a *AccountService) ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error {
	email := normalizeEmail(request.Email)
	if err := a.VerifyOTP(ctx, email, request.OTP); err != nil {
		return err
	}
	// another reset or a fresh code may have replaced it in between
	consumed, err := a.otps.Consume(ctx, email)
	if err != nil {
		return err
	}
	if consumed == "" || subtle.ConstantTimeCompare([]byte(consumed), []byte(request.OTP)) != 1 {
		return utils.ErrInvalidOTP
	}

	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return utils.ErrAccountNotFound
	}

	hashed, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if err := a.accountRepo.UpdatePassword(ctx, account.ID.String(), hashed); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrAccountNotFound
		}
		a.log.Error("update password failed", "error", err)
		return utils.ErrDatabaseError
	}
	a.log.Info("password reset", "account_id", account.ID)
	return nil
}

func (a *AccountService) GetProfile(ctx context.Context, accountID string) (*response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindById(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	submitted, err := a.answerRepo.ExistsForAccount(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	behaviors, err := a.behaviorRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.AccountResponse{
		ID:                account.ID.String(),
		FirstName:         account.FirstName,
		LastName:          account.LastName,
		Email:             account.Email,
		Role:              account.Role,
		SurveyCompleted:   submitted,
		BehaviorsSelected: len(behaviors) > 0,
		CreatedAt:         utils.FormatRFC3339(account.CreatedAt),
	}, nil
}

func (a *AccountService) UpdateProfile(ctx context.Context, accountID string, request request_models.UpdateProfileRequest) (*response_models.AccountResponse, error) {
	names := make(map[string]string, 2)
	for col, v := range map[string]*string{"first_name": request.FirstName, "last_name": request.LastName} {
		if v == nil {
			continue
		}
		name := strings.TrimSpace(*v)
		if name == "" {
			return nil, fmt.Errorf("%w: %s must not be blank", utils.ErrInvalidProfile, col)
		}
		names[col] = name
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: nothing to update", utils.ErrInvalidProfile)
	}

	if err := a.accountRepo.UpdateNames(ctx, accountID, names); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrAccountNotFound
		}
		a.log.Error("update profile failed", "account_id", accountID, "error", err)
		return nil, utils.ErrDatabaseError
	}
	a.log.Info("profile updated", "account_id", accountID)
	return a.GetProfile(ctx, accountID)
}
