package auth

import (
	"context"

	"github.com/m04kA/CourtBook-ReservationService/internal/domain"
)

// Identity проверенная личность запроса.
// Кладется в контекст middleware'ом после проверки токена;
// сервис никогда не читает глобальное состояние сессии.
type Identity struct {
	UserID string
	Role   domain.UserRole
}

// IsAdmin возвращает true для администратора
func (i Identity) IsAdmin() bool {
	return i.Role == domain.RoleAdmin
}

type identityCtxKey struct{}

// WithIdentity кладет identity в контекст запроса
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, identity)
}

// FromContext возвращает identity из контекста запроса
func FromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey{}).(Identity)
	return identity, ok
}
