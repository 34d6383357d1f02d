package register_user

import (
	"context"

	authsvc "github.com/m04kA/CourtBook-ReservationService/internal/service/auth"
)

type AuthService interface {
	Register(ctx context.Context, req *authsvc.RegisterRequest) (*authsvc.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
