package utils

import "context"

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	AdminIDKey   contextKey = "admin_id"
	AdminTypeKey contextKey = "admin_type"
)

func SetUserContext(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}

func SetAdminContext(ctx context.Context, adminID int64, adminType string) context.Context {
	ctx = context.WithValue(ctx, AdminIDKey, adminID)
	return context.WithValue(ctx, AdminTypeKey, adminType)
}

func GetAdminIDFromContext(ctx context.Context) (int64, bool) {
	adminID, ok := ctx.Value(AdminIDKey).(int64)
	return adminID, ok
}

func GetAdminTypeFromContext(ctx context.Context) (string, bool) {
	adminType, ok := ctx.Value(AdminTypeKey).(string)
	return adminType, ok
}
