package auth

import "time"

// RegisterRequest запрос на регистрацию пользователя
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

// LoginRequest запрос на вход
type LoginRequest struct {
	Email    string
	Password string
}

// UserResponse данные пользователя (без хэша пароля)
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginResponse ответ на успешный вход
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserListResponse ответ со списком пользователей (для админской панели)
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}
