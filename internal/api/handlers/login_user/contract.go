package login_user

import (
	"context"

	authsvc "github.com/m04kA/CourtBook-ReservationService/internal/service/auth"
)

type AuthService interface {
	Login(ctx context.Context, req *authsvc.LoginRequest) (*authsvc.LoginResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
