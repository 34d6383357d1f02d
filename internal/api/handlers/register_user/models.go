package register_user

import (
	authsvc "github.com/m04kA/CourtBook-ReservationService/internal/service/auth"
)

// RegisterRequest HTTP request model
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RegisterRequest) ToServiceRequest() *authsvc.RegisterRequest {
	return &authsvc.RegisterRequest{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
	}
}
