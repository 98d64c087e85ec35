package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/data/entity"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OTPRepository interface {
	Create(ctx context.Context, userID int64, email, code string, expiresAt time.Time) (*entity.OTP, error)
	FindByCodeAndEmail(ctx context.Context, code, email string) (*entity.OTP, error)
	MarkAsUsed(ctx context.Context, otpID int64) error
	InvalidateUserOTPs(ctx context.Context, userID int64, email string) error
	CountRecent(ctx context.Context, email string, window time.Duration) (int, error)
}

type otpRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOTPRepository(db database.PgxIface, log *zap.Logger) OTPRepository {
	return &otpRepository{
		db:  db,
		log: log.With(zap.String("repository", "otp")),
	}
}

func (r *otpRepository) Create(ctx context.Context, userID int64, email, code string, expiresAt time.Time) (*entity.OTP, error) {
	query := `
		INSERT INTO otps (user_id, email, code, expires_at, used, created_at)
		VALUES ($1, $2, $3, $4, false, NOW())
		RETURNING id, user_id, email, code, expires_at, used, created_at
	`

	var otp entity.OTP
	err := r.db.QueryRow(ctx, query, userID, email, code, expiresAt).Scan(
		&otp.ID,
		&otp.UserID,
		&otp.Email,
		&otp.Code,
		&otp.ExpiresAt,
		&otp.Used,
		&otp.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create OTP",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("create OTP for %s: %w", email, err)
	}

	return &otp, nil
}

// FindByCodeAndEmail returns the most recent unused, unexpired OTP for
// the pair, or nil. Wrong code and expired code are indistinguishable on
// purpose so the caller can only report a generic failure.
func (r *otpRepository) FindByCodeAndEmail(ctx context.Context, code, email string) (*entity.OTP, error) {
	query := `
		SELECT id, user_id, email, code, expires_at, used, created_at
		FROM otps
		WHERE code = $1
		  AND email = $2
		  AND used = false
		  AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`

	var otp entity.OTP
	err := r.db.QueryRow(ctx, query, code, email).Scan(
		&otp.ID,
		&otp.UserID,
		&otp.Email,
		&otp.Code,
		&otp.ExpiresAt,
		&otp.Used,
		&otp.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find OTP",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find OTP for %s: %w", email, err)
	}

	return &otp, nil
}

func (r *otpRepository) MarkAsUsed(ctx context.Context, otpID int64) error {
	query := `
		UPDATE otps
		SET used = true
		WHERE id = $1
	`

	if _, err := r.db.Exec(ctx, query, otpID); err != nil {
		r.log.Error("Failed to mark OTP as used",
			zap.Error(err),
			zap.Int64("otp_id", otpID),
		)
		return fmt.Errorf("mark OTP %d as used: %w", otpID, err)
	}

	return nil
}

// InvalidateUserOTPs supersedes every outstanding code for the identity
// so at most one unused OTP is valid at a time.
func (r *otpRepository) InvalidateUserOTPs(ctx context.Context, userID int64, email string) error {
	query := `
		UPDATE otps
		SET used = true
		WHERE user_id = $1 AND email = $2 AND used = false
	`

	if _, err := r.db.Exec(ctx, query, userID, email); err != nil {
		r.log.Error("Failed to invalidate OTPs",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("email", email),
		)
		return fmt.Errorf("invalidate OTPs for %s: %w", email, err)
	}

	return nil
}

// CountRecent counts OTPs created for the email within the trailing
// window. Used as a courtesy rate limit; the check and the following
// insert are not atomic, so the cap is soft under concurrency.
func (r *otpRepository) CountRecent(ctx context.Context, email string, window time.Duration) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM otps
		WHERE email = $1 AND created_at > NOW() - $2::interval
	`

	var count int
	err := r.db.QueryRow(ctx, query, email, window.String()).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count recent OTPs",
			zap.Error(err),
			zap.String("email", email),
		)
		return 0, fmt.Errorf("count recent OTPs for %s: %w", email, err)
	}

	return count, nil
}
