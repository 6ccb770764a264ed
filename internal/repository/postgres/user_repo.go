package postgres

import (
	"context"
	"time"

	"merkato-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, password_hash, first_name, last_name, username,
	phone_number, birth_date, avatar, email_verified, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Username, &u.PhoneNumber, &u.BirthDate, &u.Avatar, &u.EmailVerified,
		&u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, first_name, last_name,
		                   username, phone_number, birth_date, avatar)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.Username, user.PhoneNumber, user.BirthDate, user.Avatar)
	return row.Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &u, nil
}

func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	return exists, err
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	row := r.db.QueryRow(ctx, `
		UPDATE users
		SET first_name = $2, last_name = $3, phone_number = $4, birth_date = $5,
		    updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		user.ID, user.FirstName, user.LastName, user.PhoneNumber, user.BirthDate)
	return mapNoRows(row.Scan(&user.UpdatedAt))
}

func (r *userRepository) SetAvatar(ctx context.Context, id, avatarURL string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET avatar = $2, updated_at = now() WHERE id = $1`, id, avatarURL)
	return err
}

func (r *userRepository) MarkEmailVerified(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET email_verified = true, updated_at = now() WHERE id = $1`, id)
	return err
}

func (r *userRepository) SaveVerificationToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO verification_tokens (token, user_id, expires_at)
		VALUES ($1, $2, $3)`, token, userID, expiresAt)
	return err
}

// ConsumeVerificationToken deletes a live token and returns the user it
// belonged to. Expired or unknown tokens come back as ErrNotFound.
func (r *userRepository) ConsumeVerificationToken(ctx context.Context, token string) (string, error) {
	var userID string
	err := r.db.QueryRow(ctx, `
		DELETE FROM verification_tokens
		WHERE token = $1 AND expires_at > now()
		RETURNING user_id`, token).Scan(&userID)
	if err != nil {
		return "", mapNoRows(err)
	}
	return userID, nil
}
