package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"merkato-backend/internal/domain"
	"merkato-backend/pkg/logger"
	"merkato-backend/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrEmailNotVerified = errors.New("email not verified")

type AuthUsecase struct {
	userRepo          domain.UserRepository
	validate          *validator.Validate
	sessionExpiry     time.Duration
	sessionRefreshAge time.Duration
}

func NewAuthUsecase(userRepo domain.UserRepository, sessionExpiry, sessionRefreshAge time.Duration) *AuthUsecase {
	v := validator.New()
	// Ethiopian mobile format, shared with the storefront forms.
	_ = v.RegisterValidation("et_phone", func(fl validator.FieldLevel) bool {
		return utils.IsValidPhone(fl.Field().String())
	})

	return &AuthUsecase{
		userRepo:          userRepo,
		validate:          v,
		sessionExpiry:     sessionExpiry,
		sessionRefreshAge: sessionRefreshAge,
	}
}

// RegisterRequest carries the mandatory profile fields of the signup form.
// Avatar is the only optional one.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Username    string `json:"username" validate:"required,min=3"`
	PhoneNumber string `json:"phoneNumber" validate:"required,et_phone"`
	BirthDate   string `json:"birthDate" validate:"required,datetime=2006-01-02"`
	Avatar      string `json:"avatar" validate:"omitempty,url"`
}

// Register creates a user with a hashed password and an email verification
// token. Login stays blocked until the address is verified.
func (u *AuthUsecase) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, err
	}

	taken, err := u.userRepo.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("username %q is already taken", req.Username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     req.Username,
		PhoneNumber:  req.PhoneNumber,
		BirthDate:    req.BirthDate,
		Avatar:       req.Avatar,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token := utils.GenerateUUID()
	if err := u.userRepo.SaveVerificationToken(ctx, user.ID, token, time.Now().Add(24*time.Hour)); err != nil {
		return nil, err
	}
	// Mail delivery happens out of process; the token is logged so dev
	// environments can verify without an SMTP setup.
	logger.Info().Str("user_id", user.ID).Str("token", token).Msg("verification token issued")

	return user, nil
}

// VerifyEmail consumes a verification token and marks the account verified.
func (u *AuthUsecase) VerifyEmail(ctx context.Context, token string) error {
	userID, err := u.userRepo.ConsumeVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("invalid or expired verification token")
		}
		return err
	}
	return u.userRepo.MarkEmailVerified(ctx, userID)
}

// Login checks the credentials and issues a fresh session.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (*domain.Session, *domain.User, error) {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.EmailVerified {
		return nil, nil, ErrEmailNotVerified
	}

	now := time.Now()
	session, err := u.issueSession(user.ID, user.Email, now, now)
	if err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

// Refresh re-issues a session that is inside its lifetime but older than the
// refresh window; younger sessions come back unchanged. The original issue
// time survives every refresh.
func (u *AuthUsecase) Refresh(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := utils.ValidateSessionToken(token)
	if err != nil {
		return nil, err
	}

	session := sessionFromClaims(token, claims)
	now := time.Now()
	if session.Expired(now) {
		return nil, fmt.Errorf("session expired")
	}
	if !session.NeedsRefresh(now, u.sessionRefreshAge) {
		return session, nil
	}

	return u.issueSession(claims.UserID, claims.Email, claims.IssuedAt, now)
}

// SessionFromToken validates a raw token into a session object.
func (u *AuthUsecase) SessionFromToken(token string) (*domain.Session, error) {
	claims, err := utils.ValidateSessionToken(token)
	if err != nil {
		return nil, err
	}
	return sessionFromClaims(token, claims), nil
}

func (u *AuthUsecase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}

// ProfileUpdateRequest mirrors the editable subset of the profile.
type ProfileUpdateRequest struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required,et_phone"`
	BirthDate   string `json:"birthDate" validate:"required,datetime=2006-01-02"`
}

func (u *AuthUsecase) UpdateProfile(ctx context.Context, userID string, req ProfileUpdateRequest) (*domain.User, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.PhoneNumber = req.PhoneNumber
	user.BirthDate = req.BirthDate
	if err := u.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetAvatar stores the uploaded avatar's public URL on the profile.
func (u *AuthUsecase) SetAvatar(ctx context.Context, userID, avatarURL string) error {
	return u.userRepo.SetAvatar(ctx, userID, avatarURL)
}

func (u *AuthUsecase) issueSession(userID, email string, issuedAt, refreshedAt time.Time) (*domain.Session, error) {
	token, err := utils.GenerateSessionToken(userID, email, issuedAt, refreshedAt, u.sessionExpiry)
	if err != nil {
		return nil, err
	}
	return &domain.Session{
		Token:       token,
		UserID:      userID,
		Email:       email,
		IssuedAt:    issuedAt,
		RefreshedAt: refreshedAt,
		ExpiresAt:   refreshedAt.Add(u.sessionExpiry),
	}, nil
}

func sessionFromClaims(token string, claims *utils.SessionClaims) *domain.Session {
	return &domain.Session{
		Token:       token,
		UserID:      claims.UserID,
		Email:       claims.Email,
		IssuedAt:    claims.IssuedAt,
		RefreshedAt: claims.RefreshedAt,
		ExpiresAt:   claims.ExpiresAt,
	}
}
