package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/data/entity"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*entity.User, error)
	FindByFacebookID(ctx context.Context, facebookID string) (*entity.User, error)
	FindAll(ctx context.Context) ([]*entity.User, error)
	Create(ctx context.Context, email string) (*entity.User, error)
	CreateWithGoogle(ctx context.Context, signup *entity.SocialSignup) (*entity.User, error)
	CreateWithFacebook(ctx context.Context, signup *entity.SocialSignup) (*entity.User, error)
	LinkGoogleAccount(ctx context.Context, userID int64, googleID string) error
	LinkFacebookAccount(ctx context.Context, userID int64, facebookID string) error
	UpdateFromGoogle(ctx context.Context, userID int64, patch *entity.ProfilePatch) error
	UpdateFromFacebook(ctx context.Context, userID int64, patch *entity.ProfilePatch) error
	MarkEmailVerified(ctx context.Context, userID int64) error
	UpdateLastLogin(ctx context.Context, userID int64) error
	UpdateActiveStatus(ctx context.Context, userID int64, isActive bool) error
	UpdateName(ctx context.Context, userID int64, name string) error
	VerifyOnboardingStatus(ctx context.Context, userID int64) (bool, error)
}

const userColumns = `id, email, google_id, facebook_id, name, first_name, last_name,
	       profile_photo, date_of_birth, gender, phone_number, state, district,
	       email_verified, auth_provider, onboarding_completed, is_active,
	       created_at, last_login`

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.GoogleID,
		&user.FacebookID,
		&user.Name,
		&user.FirstName,
		&user.LastName,
		&user.ProfilePhoto,
		&user.DateOfBirth,
		&user.Gender,
		&user.PhoneNumber,
		&user.State,
		&user.District,
		&user.EmailVerified,
		&user.AuthProvider,
		&user.OnboardingCompleted,
		&user.IsActive,
		&user.CreatedAt,
		&user.LastLogin,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID accepts the raw id string from a token or path parameter.
// Malformed input means "no such user", not an error.
func (r *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	userID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, nil
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by ID", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("find user by ID %d: %w", userID, err)
	}

	return user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return user, nil
}

func (r *userRepository) FindByGoogleID(ctx context.Context, googleID string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE google_id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, googleID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by google ID", zap.Error(err))
		return nil, fmt.Errorf("find user by google ID: %w", err)
	}

	return user, nil
}

func (r *userRepository) FindByFacebookID(ctx context.Context, facebookID string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE facebook_id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, facebookID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by facebook ID", zap.Error(err))
		return nil, fmt.Errorf("find user by facebook ID: %w", err)
	}

	return user, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			r.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}

	return users, nil
}

// Create bootstraps a bare user for the email OTP path.
func (r *userRepository) Create(ctx context.Context, email string) (*entity.User, error) {
	query := `
		INSERT INTO users (email, email_verified, auth_provider, onboarding_completed, is_active, created_at)
		VALUES ($1, false, 'email', false, true, NOW())
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		r.log.Error("Failed to create user", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("create user %s: %w", email, err)
	}

	return user, nil
}

// CreateWithGoogle creates a first-time Google signup. Onboarding is an
// explicit in-app step, so the row is never created completed even when
// the provider supplied a full name.
func (r *userRepository) CreateWithGoogle(ctx context.Context, signup *entity.SocialSignup) (*entity.User, error) {
	query := `
		INSERT INTO users (email, google_id, name, first_name, last_name, profile_photo,
		                   email_verified, auth_provider, onboarding_completed, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'google', false, true, NOW())
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query,
		signup.Email,
		signup.ProviderID,
		signup.Name,
		signup.FirstName,
		signup.LastName,
		signup.ProfilePhoto,
		signup.Email != nil,
	))
	if err != nil {
		r.log.Error("Failed to create google user", zap.Error(err))
		return nil, fmt.Errorf("create google user: %w", err)
	}

	return user, nil
}

// CreateWithFacebook creates a first-time Facebook signup. Email may be
// nil when the permission was withheld; email_verified is true only when
// an email actually came back from the provider.
func (r *userRepository) CreateWithFacebook(ctx context.Context, signup *entity.SocialSignup) (*entity.User, error) {
	query := `
		INSERT INTO users (email, facebook_id, name, first_name, last_name, profile_photo,
		                   email_verified, auth_provider, onboarding_completed, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'facebook', false, true, NOW())
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query,
		signup.Email,
		signup.ProviderID,
		signup.Name,
		signup.FirstName,
		signup.LastName,
		signup.ProfilePhoto,
		signup.Email != nil,
	))
	if err != nil {
		r.log.Error("Failed to create facebook user", zap.Error(err))
		return nil, fmt.Errorf("create facebook user: %w", err)
	}

	return user, nil
}

// LinkGoogleAccount attaches a Google identity to a row found by email
// match. Google always supplies a verified email, so the row's email is
// marked verified as well.
func (r *userRepository) LinkGoogleAccount(ctx context.Context, userID int64, googleID string) error {
	query := `
		UPDATE users
		SET google_id = $2, auth_provider = 'google', email_verified = true
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, userID, googleID)
	if err != nil {
		r.log.Error("Failed to link google account", zap.Error(err), zap.Int64("user_id", userID))
		return fmt.Errorf("link google account to user %d: %w", userID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", userID)
	}

	return nil
}

// LinkFacebookAccount attaches a Facebook identity. The email flag is
// only raised when the row already has an email; we cannot verify an
// address the provider never supplied.
func (r *userRepository) LinkFacebookAccount(ctx context.Context, userID int64, facebookID string) error {
	query := `
		UPDATE users
		SET facebook_id = $2,
		    auth_provider = 'facebook',
		    email_verified = (email IS NOT NULL)
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, userID, facebookID)
	if err != nil {
		r.log.Error("Failed to link facebook account", zap.Error(err), zap.Int64("user_id", userID))
		return fmt.Errorf("link facebook account to user %d: %w", userID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", userID)
	}

	return nil
}

// applyPatch writes only the fields the provider actually returned.
// COALESCE keeps the stored value wherever the patch field is nil.
func (r *userRepository) applyPatch(ctx context.Context, userID int64, patch *entity.ProfilePatch) error {
	query := `
		UPDATE users
		SET name          = COALESCE($2, name),
		    first_name    = COALESCE($3, first_name),
		    last_name     = COALESCE($4, last_name),
		    profile_photo = COALESCE($5, profile_photo),
		    email         = COALESCE($6, email)
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, userID,
		patch.Name, patch.FirstName, patch.LastName, patch.ProfilePhoto, patch.Email)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", userID)
	}
	return nil
}

func (r *userRepository) UpdateFromGoogle(ctx context.Context, userID int64, patch *entity.ProfilePatch) error {
	if err := r.applyPatch(ctx, userID, patch); err != nil {
		r.log.Error("Failed to update user from google", zap.Error(err), zap.Int64("user_id", userID))
		return fmt.Errorf("update user %d from google: %w", userID, err)
	}
	return nil
}

func (r *userRepository) UpdateFromFacebook(ctx context.Context, userID int64, patch *entity.ProfilePatch) error {
	if err := r.applyPatch(ctx, userID, patch); err != nil {
		r.log.Error("Failed to update user from facebook", zap.Error(err), zap.Int64("user_id", userID))
		return fmt.Errorf("update user %d from facebook: %w", userID, err)
	}
	return nil
}

func (r *userRepository) MarkEmailVerified(ctx context.Context, userID int64) error {
	query := `UPDATE users SET email_verified = true WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		r.log.Error("Failed to mark email verified", zap.Error(err), zap.Int64("user_id", userID))
		return fmt.Errorf("mark email verified for user %d: %w", userID, err)
	}
	return nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	query := `UPDATE users SET last_login = NOW() WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		r.log.Error("Failed to update last login", zap.Error(err), zap.Int64("user_id", userID))
		return fmt.Errorf("update last login for user %d: %w", userID, err)
	}
	return nil
}

func (r *userRepository) UpdateActiveStatus(ctx context.Context, userID int64, isActive bool) error {
	query := `UPDATE users SET is_active = $2 WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, userID, isActive); err != nil {
		r.log.Error("Failed to update active status", zap.Error(err), zap.Int64("user_id", userID))
		return fmt.Errorf("update active status for user %d: %w", userID, err)
	}
	return nil
}

// UpdateName is the canonical "onboarding finished" trigger.
func (r *userRepository) UpdateName(ctx context.Context, userID int64, name string) error {
	query := `UPDATE users SET name = $2, onboarding_completed = true WHERE id = $1`

	result, err := r.db.Exec(ctx, query, userID, name)
	if err != nil {
		r.log.Error("Failed to update name", zap.Error(err), zap.Int64("user_id", userID))
		return fmt.Errorf("update name for user %d: %w", userID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", userID)
	}
	return nil
}

// VerifyOnboardingStatus re-derives completion from the stored name and
// persists the corrected flag. Callers trust a stored true and only call
// this when the flag reads false, which self-heals a stale false without
// flip-flopping a finished onboarding.
func (r *userRepository) VerifyOnboardingStatus(ctx context.Context, userID int64) (bool, error) {
	query := `
		UPDATE users
		SET onboarding_completed = (name IS NOT NULL AND name <> '')
		WHERE id = $1
		RETURNING onboarding_completed
	`

	var completed bool
	err := r.db.QueryRow(ctx, query, userID).Scan(&completed)
	if err == pgx.ErrNoRows {
		return false, fmt.Errorf("user %d not found", userID)
	}
	if err != nil {
		r.log.Error("Failed to verify onboarding status", zap.Error(err), zap.Int64("user_id", userID))
		return false, fmt.Errorf("verify onboarding status for user %d: %w", userID, err)
	}

	return completed, nil
}
