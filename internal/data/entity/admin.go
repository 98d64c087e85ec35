package entity

import "time"

type AdminType string

const (
	AdminTypeUser  AdminType = "user"
	AdminTypeSuper AdminType = "super_admin"
)

type Admin struct {
	ID           int64      `db:"id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password"`
	Type         AdminType  `db:"type"`
	IsActive     bool       `db:"is_active"`
	CreatedAt    time.Time  `db:"created_at"`
	LastLogin    *time.Time `db:"last_login"`
}
