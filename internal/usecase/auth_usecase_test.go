package usecase

import (
	"context"
	"testing"
	"time"

	"merkato-backend/internal/domain"
	"merkato-backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users  map[string]*domain.User
	tokens map[string]string // token -> userID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[string]*domain.User),
		tokens: make(map[string]string),
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	for _, u := range f.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, user *domain.User) error {
	stored, ok := f.users[user.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.FirstName = user.FirstName
	stored.LastName = user.LastName
	stored.PhoneNumber = user.PhoneNumber
	stored.BirthDate = user.BirthDate
	return nil
}

func (f *fakeUserRepo) SetAvatar(ctx context.Context, id, avatarURL string) error {
	if u, ok := f.users[id]; ok {
		u.Avatar = avatarURL
		return nil
	}
	return domain.ErrNotFound
}

func (f *fakeUserRepo) MarkEmailVerified(ctx context.Context, id string) error {
	if u, ok := f.users[id]; ok {
		u.EmailVerified = true
		return nil
	}
	return domain.ErrNotFound
}

func (f *fakeUserRepo) SaveVerificationToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	f.tokens[token] = userID
	return nil
}

func (f *fakeUserRepo) ConsumeVerificationToken(ctx context.Context, token string) (string, error) {
	userID, ok := f.tokens[token]
	if !ok {
		return "", domain.ErrNotFound
	}
	delete(f.tokens, token)
	return userID, nil
}

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		Email:       "abebe@example.com",
		Password:    "secret-pass-1",
		FirstName:   "Abebe",
		LastName:    "Bikila",
		Username:    "abebe",
		PhoneNumber: "0911234567",
		BirthDate:   "1990-05-01",
	}
}

func TestRegisterHashesPasswordAndIssuesToken(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUsecase(repo, 7*24*time.Hour, 24*time.Hour)

	user, err := uc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	stored := repo.users[user.ID]
	require.NotNil(t, stored)
	assert.False(t, stored.EmailVerified)
	assert.NotEqual(t, "secret-pass-1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret-pass-1")))
	assert.Len(t, repo.tokens, 1)
}

func TestRegisterRejectsBadInput(t *testing.T) {
	uc := NewAuthUsecase(newFakeUserRepo(), 7*24*time.Hour, 24*time.Hour)
	ctx := context.Background()

	bad := validRegisterRequest()
	bad.Email = "not-an-email"
	_, err := uc.Register(ctx, bad)
	assert.Error(t, err)

	bad = validRegisterRequest()
	bad.PhoneNumber = "0811234567"
	_, err = uc.Register(ctx, bad)
	assert.Error(t, err)

	bad = validRegisterRequest()
	bad.Password = "short"
	_, err = uc.Register(ctx, bad)
	assert.Error(t, err)
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	uc := NewAuthUsecase(newFakeUserRepo(), 7*24*time.Hour, 24*time.Hour)
	ctx := context.Background()

	_, err := uc.Register(ctx, validRegisterRequest())
	require.NoError(t, err)

	second := validRegisterRequest()
	second.Email = "other@example.com"
	_, err = uc.Register(ctx, second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already taken")
}

func TestLoginLifecycle(t *testing.T) {
	utils.SetSecret("test-secret")
	repo := newFakeUserRepo()
	uc := NewAuthUsecase(repo, 7*24*time.Hour, 24*time.Hour)
	ctx := context.Background()

	user, err := uc.Register(ctx, validRegisterRequest())
	require.NoError(t, err)

	// Unverified accounts cannot log in.
	_, _, err = uc.Login(ctx, user.Email, "secret-pass-1")
	assert.ErrorIs(t, err, ErrEmailNotVerified)

	// Consume the issued token.
	var token string
	for tok := range repo.tokens {
		token = tok
	}
	require.NoError(t, uc.VerifyEmail(ctx, token))

	// Token is single use.
	assert.Error(t, uc.VerifyEmail(ctx, token))

	_, _, err = uc.Login(ctx, user.Email, "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = uc.Login(ctx, "nobody@example.com", "secret-pass-1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	session, loggedIn, err := uc.Login(ctx, user.Email, "secret-pass-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.UserID)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, session.Token)
	assert.False(t, session.Expired(time.Now()))
}

func TestRefreshPreservesIssuedAt(t *testing.T) {
	utils.SetSecret("test-secret")
	uc := NewAuthUsecase(newFakeUserRepo(), 7*24*time.Hour, 24*time.Hour)
	ctx := context.Background()

	// A session last refreshed two days ago is past the refresh window.
	issued := time.Now().Add(-72 * time.Hour).Truncate(time.Second)
	refreshed := time.Now().Add(-48 * time.Hour).Truncate(time.Second)
	token, err := utils.GenerateSessionToken("user-1", "u@example.com", issued, refreshed, 7*24*time.Hour)
	require.NoError(t, err)

	session, err := uc.Refresh(ctx, token)
	require.NoError(t, err)
	assert.NotEqual(t, token, session.Token)
	assert.Equal(t, issued.Unix(), session.IssuedAt.Unix())
	assert.True(t, session.RefreshedAt.After(refreshed))
}

func TestRefreshKeepsYoungSession(t *testing.T) {
	utils.SetSecret("test-secret")
	uc := NewAuthUsecase(newFakeUserRepo(), 7*24*time.Hour, 24*time.Hour)

	now := time.Now().Truncate(time.Second)
	token, err := utils.GenerateSessionToken("user-1", "u@example.com", now, now, 7*24*time.Hour)
	require.NoError(t, err)

	session, err := uc.Refresh(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, token, session.Token)
}

func TestUpdateProfile(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUsecase(repo, 7*24*time.Hour, 24*time.Hour)
	ctx := context.Background()

	user, err := uc.Register(ctx, validRegisterRequest())
	require.NoError(t, err)

	updated, err := uc.UpdateProfile(ctx, user.ID, ProfileUpdateRequest{
		FirstName:   "Almaz",
		LastName:    "Ayana",
		PhoneNumber: "+251912345678",
		BirthDate:   "1991-11-21",
	})
	require.NoError(t, err)
	assert.Equal(t, "Almaz", updated.FirstName)
	assert.Equal(t, "Almaz", repo.users[user.ID].FirstName)

	_, err = uc.UpdateProfile(ctx, user.ID, ProfileUpdateRequest{
		FirstName:   "Almaz",
		LastName:    "Ayana",
		PhoneNumber: "invalid",
		BirthDate:   "1991-11-21",
	})
	assert.Error(t, err)
}
