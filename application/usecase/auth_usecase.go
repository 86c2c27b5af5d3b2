package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/techpro/techpromanager/application/port/inbound"
	"github.com/techpro/techpromanager/application/port/outbound"
	"github.com/techpro/techpromanager/domain/entity"
	apperr "github.com/techpro/techpromanager/domain/error"
	"github.com/techpro/techpromanager/domain/valueobject"
	"github.com/techpro/techpromanager/infrastructure/service/logger"
)

// dummyPassword is hashed once and verified against when the email is unknown,
// so both login failure paths run one key derivation.
const dummyPassword = "techpromanager-timing-equalizer"

// fallbackDummySecret is a well-formed salt:key pair (16 and 64 zero bytes)
// so a verify against it still runs the full derivation.
var fallbackDummySecret = strings.Repeat("00", 16) + ":" + strings.Repeat("00", 64)

type AuthUseCase struct {
	userRepo        outbound.UserRepository
	tokenService    outbound.TokenService
	passwordService outbound.PasswordService
	accessTokenTTL  time.Duration
	logger          logger.Logger
	dummySecret     string
}

func NewAuthUseCase(
	userRepo outbound.UserRepository,
	tokenService outbound.TokenService,
	passwordService outbound.PasswordService,
	accessTokenTTL time.Duration,
	log logger.Logger,
) *AuthUseCase {
	uc := &AuthUseCase{
		userRepo:        userRepo,
		tokenService:    tokenService,
		passwordService: passwordService,
		accessTokenTTL:  accessTokenTTL,
		logger:          log,
	}

	hash, err := passwordService.HashPassword(dummyPassword)
	if err != nil || hash == "" {
		log.Error(context.Background(), "failed to prepare dummy secret, using fallback", err, nil)
		hash = fallbackDummySecret
	}
	uc.dummySecret = hash
	return uc
}

func (uc *AuthUseCase) Register(ctx context.Context, req inbound.RegisterRequest) (*inbound.UserResponse, error) {
	reg, err := valueobject.NewRegistration(req.Name, req.Email, req.Password)
	if err != nil {
		return nil, apperr.ErrInvalidRequest(err.Error())
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, reg.Email())
	if err != nil {
		return nil, apperr.ErrInternalServerError("check email", err)
	}
	if exists {
		logger.LogAuthEvent(ctx, uc.logger, "register", "", "", false, map[string]interface{}{"reason": "duplicate_email"})
		return nil, apperr.ErrDuplicateEmail(reg.Email())
	}

	hash, err := uc.passwordService.HashPassword(reg.Password())
	if err != nil {
		return nil, apperr.ErrInternalServerError("hash password", err)
	}

	user := entity.NewMember(reg.Name(), reg.Email(), hash)
	if err := uc.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, outbound.ErrUserAlreadyExists) {
			return nil, apperr.ErrDuplicateEmail(reg.Email())
		}
		return nil, apperr.ErrInternalServerError("create user", err)
	}

	logger.LogAuthEvent(ctx, uc.logger, "register", user.ID, "", true, nil)
	resp := inbound.NewUserResponse(user)
	return &resp, nil
}

// Login never tells the caller whether the email exists.
func (uc *AuthUseCase) Login(ctx context.Context, req inbound.LoginRequest) (*inbound.LoginResponse, error) {
	creds, err := valueobject.NewCredentials(req.Email, req.Password)
	if err != nil {
		return nil, apperr.ErrInvalidRequest(err.Error())
	}

	user, err := uc.userRepo.FindByEmail(ctx, creds.Email())
	if err != nil {
		if !errors.Is(err, outbound.ErrUserNotFound) {
			return nil, apperr.ErrInternalServerError("find user", err)
		}
		uc.passwordService.VerifyPassword(uc.dummySecret, creds.Password())
		logger.LogAuthEvent(ctx, uc.logger, "login", "", "", false, map[string]interface{}{"reason": "unknown_email"})
		return nil, apperr.ErrInvalidCredentials("unknown email")
	}

	if !uc.passwordService.VerifyPassword(user.PasswordHash, creds.Password()) {
		logger.LogAuthEvent(ctx, uc.logger, "login", user.ID, "", false, map[string]interface{}{"reason": "wrong_password"})
		return nil, apperr.ErrInvalidCredentials("wrong password")
	}

	token, err := uc.tokenService.GenerateAccessToken(outbound.TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, apperr.ErrInternalServerError("issue token", err)
	}

	logger.LogAuthEvent(ctx, uc.logger, "login", user.ID, "", true, nil)
	return &inbound.LoginResponse{
		Token:     token,
		ExpiresIn: int(uc.accessTokenTTL.Seconds()),
		User:      inbound.NewUserResponse(user),
	}, nil
}

func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*inbound.UserResponse, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			return nil, apperr.ErrAccountUnavailable(userID)
		}
		return nil, apperr.ErrInternalServerError("find user", err)
	}
	resp := inbound.NewUserResponse(user)
	return &resp, nil
}

func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, req inbound.ChangePasswordRequest) error {
	if req.CurrentPassword == "" {
		return apperr.ErrMissingField("current_password")
	}
	if err := valueobject.ValidatePassword(req.NewPassword); err != nil {
		return apperr.ErrInvalidRequest(err.Error())
	}

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			return apperr.ErrAccountUnavailable(userID)
		}
		return apperr.ErrInternalServerError("find user", err)
	}

	if !uc.passwordService.VerifyPassword(user.PasswordHash, req.CurrentPassword) {
		logger.LogAuthEvent(ctx, uc.logger, "change_password", user.ID, "", false, map[string]interface{}{"reason": "wrong_password"})
		return apperr.ErrInvalidRequest("Current password is incorrect")
	}

	hash, err := uc.passwordService.HashPassword(req.NewPassword)
	if err != nil {
		return apperr.ErrInternalServerError("hash password", err)
	}
	user.ChangePassword(hash)

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return apperr.ErrInternalServerError("update user", err)
	}

	logger.LogAuthEvent(ctx, uc.logger, "change_password", user.ID, "", true, nil)
	return nil
}
