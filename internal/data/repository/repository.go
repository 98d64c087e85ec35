package repository

import (
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User  UserRepository
	OTP   OTPRepository
	Admin AdminRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:  NewUserRepository(db, log),
		OTP:   NewOTPRepository(db, log),
		Admin: NewAdminRepository(db, log),
	}
}
