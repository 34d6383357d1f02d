package admin_list_users

import (
	"context"

	authsvc "github.com/m04kA/CourtBook-ReservationService/internal/service/auth"
)

type AuthService interface {
	ListUsers(ctx context.Context) (*authsvc.UserListResponse, error)
}

type Logger interface {
	Error(format string, v ...interface{})
}
