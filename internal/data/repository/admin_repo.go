package repository

import (
	"context"
	"fmt"

	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/data/entity"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AdminRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Admin, error)
	FindByEmail(ctx context.Context, email string) (*entity.Admin, error)
	FindAll(ctx context.Context) ([]*entity.Admin, error)
	CountSuperAdmins(ctx context.Context) (int, error)
	Create(ctx context.Context, email, passwordHash string, adminType entity.AdminType) (*entity.Admin, error)
	UpdateEmail(ctx context.Context, id int64, email string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateType(ctx context.Context, id int64, adminType entity.AdminType) error
	UpdateActiveStatus(ctx context.Context, id int64, isActive bool) error
	UpdateLastLogin(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

const adminColumns = `id, email, password, type, is_active, created_at, last_login`

type adminRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAdminRepository(db database.PgxIface, log *zap.Logger) AdminRepository {
	return &adminRepository{
		db:  db,
		log: log.With(zap.String("repository", "admin")),
	}
}

func scanAdmin(row pgx.Row) (*entity.Admin, error) {
	var admin entity.Admin
	err := row.Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.Type,
		&admin.IsActive,
		&admin.CreatedAt,
		&admin.LastLogin,
	)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) FindByID(ctx context.Context, id int64) (*entity.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`

	admin, err := scanAdmin(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find admin by ID", zap.Error(err), zap.Int64("admin_id", id))
		return nil, fmt.Errorf("find admin by ID %d: %w", id, err)
	}

	return admin, nil
}

func (r *adminRepository) FindByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE email = $1`

	admin, err := scanAdmin(r.db.QueryRow(ctx, query, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find admin by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("find admin by email %s: %w", email, err)
	}

	return admin, nil
}

func (r *adminRepository) FindAll(ctx context.Context) ([]*entity.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list admins", zap.Error(err))
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer rows.Close()

	var admins []*entity.Admin
	for rows.Next() {
		admin, err := scanAdmin(rows)
		if err != nil {
			r.log.Error("Failed to scan admin row", zap.Error(err))
			return nil, fmt.Errorf("scan admin row: %w", err)
		}
		admins = append(admins, admin)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate admin rows: %w", err)
	}

	return admins, nil
}

func (r *adminRepository) CountSuperAdmins(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM admins WHERE type = 'super_admin'`

	var count int
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count super admins", zap.Error(err))
		return 0, fmt.Errorf("count super admins: %w", err)
	}

	return count, nil
}

func (r *adminRepository) Create(ctx context.Context, email, passwordHash string, adminType entity.AdminType) (*entity.Admin, error) {
	query := `
		INSERT INTO admins (email, password, type, is_active, created_at)
		VALUES ($1, $2, $3, true, NOW())
		RETURNING ` + adminColumns

	admin, err := scanAdmin(r.db.QueryRow(ctx, query, email, passwordHash, adminType))
	if err != nil {
		r.log.Error("Failed to create admin", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("create admin %s: %w", email, err)
	}

	return admin, nil
}

func (r *adminRepository) UpdateEmail(ctx context.Context, id int64, email string) error {
	return r.exec(ctx, `UPDATE admins SET email = $2 WHERE id = $1`, "update admin email", id, email)
}

func (r *adminRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return r.exec(ctx, `UPDATE admins SET password = $2 WHERE id = $1`, "update admin password", id, passwordHash)
}

func (r *adminRepository) UpdateType(ctx context.Context, id int64, adminType entity.AdminType) error {
	return r.exec(ctx, `UPDATE admins SET type = $2 WHERE id = $1`, "update admin type", id, adminType)
}

func (r *adminRepository) UpdateActiveStatus(ctx context.Context, id int64, isActive bool) error {
	return r.exec(ctx, `UPDATE admins SET is_active = $2 WHERE id = $1`, "update admin active status", id, isActive)
}

func (r *adminRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	query := `UPDATE admins SET last_login = NOW() WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		r.log.Error("Failed to update admin last login", zap.Error(err), zap.Int64("admin_id", id))
		return fmt.Errorf("update admin %d last login: %w", id, err)
	}
	return nil
}

func (r *adminRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM admins WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete admin", zap.Error(err), zap.Int64("admin_id", id))
		return fmt.Errorf("delete admin %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("admin %d not found", id)
	}

	r.log.Info("Admin deleted", zap.Int64("admin_id", id))
	return nil
}

func (r *adminRepository) exec(ctx context.Context, query, op string, id int64, arg any) error {
	result, err := r.db.Exec(ctx, query, id, arg)
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err), zap.Int64("admin_id", id))
		return fmt.Errorf("%s %d: %w", op, id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("admin %d not found", id)
	}
	return nil
}
