package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	authtoken "github.com/m04kA/CourtBook-ReservationService/internal/auth"
	"github.com/m04kA/CourtBook-ReservationService/internal/domain"
	userRepo "github.com/m04kA/CourtBook-ReservationService/internal/infra/storage/user"
)

const minPasswordLength = 8

// Service сервис регистрации и входа.
// Криптография делегирована bcrypt и golang-jwt.
type Service struct {
	userRepo  UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(userRepo UserRepository, jwtSecret string, tokenTTL time.Duration, logger Logger) *Service {
	return &Service{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Register регистрирует нового пользователя с ролью user
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*UserResponse, error) {
	if err := validateRegisterRequest(req); err != nil {
		s.logger.Warn("Register: validation failed: %v", err)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Register: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: hash password: %v", ErrInternal, err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			s.logger.Warn("Register: email already taken: %s", user.Email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("Register: repository error: %v", err)
		return nil, fmt.Errorf("%w: create user: %v", ErrInternal, err)
	}

	s.logger.Info("Register: created user id=%s", created.ID)
	return fromDomainUser(created), nil
}

// Login проверяет учетные данные и выпускает токен доступа.
// Неизвестный email и неверный пароль неразличимы для вызывающего.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown email")
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error: %v", err)
		return nil, fmt.Errorf("%w: get user: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for user id=%s", user.ID)
		return nil, ErrInvalidCredentials
	}

	token, err := authtoken.CreateToken(s.jwtSecret, user, s.tokenTTL)
	if err != nil {
		s.logger.Error("Login: failed to issue token for user id=%s: %v", user.ID, err)
		return nil, fmt.Errorf("%w: issue token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: user id=%s logged in", user.ID)
	return &LoginResponse{
		Token: token,
		User:  *fromDomainUser(user),
	}, nil
}

// ListUsers возвращает всех пользователей для админской панели
func (s *Service) ListUsers(ctx context.Context) (*UserListResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListUsers: repository error: %v", err)
		return nil, fmt.Errorf("%w: list users: %v", ErrInternal, err)
	}

	resp := &UserListResponse{Users: make([]UserResponse, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, *fromDomainUser(u))
	}
	return resp, nil
}

// EnsureAdmin создает администратора при старте сервиса, если его еще нет.
// Вызывается из main при заполненной конфигурации [auth].
func (s *Service) EnsureAdmin(ctx context.Context, name, email, password string) error {
	email = normalizeEmail(email)

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, userRepo.ErrUserNotFound) {
		return fmt.Errorf("%w: check admin: %v", ErrInternal, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: hash admin password: %v", ErrInternal, err)
	}

	admin := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}

	if _, err := s.userRepo.Create(ctx, admin); err != nil {
		// Конкурентный старт другого экземпляра мог успеть раньше
		if errors.Is(err, userRepo.ErrEmailTaken) {
			return nil
		}
		return fmt.Errorf("%w: create admin: %v", ErrInternal, err)
	}

	s.logger.Info("EnsureAdmin: seeded admin account %s", email)
	return nil
}

func validateRegisterRequest(req *RegisterRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	email := normalizeEmail(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}
	if len(req.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func fromDomainUser(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
