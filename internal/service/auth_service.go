package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// ErrInvalidCredentials неверная пара email/пароль или битый токен
var ErrInvalidCredentials = errors.New("invalid credentials")

// Claims полезная нагрузка токена
type Claims struct {
	UserID string
	Role   domain.Role
}

// AuthService регистрация, вход и проверка HS256-токенов
type AuthService struct {
	users    repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(users repository.UserRepository, secret string) *AuthService {
	return &AuthService{users: users, secret: []byte(secret), tokenTTL: 24 * time.Hour}
}

// Register создаёт пользователя с ролью user. Повторный email даёт
// repository.ErrAlreadyExists.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	u := domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Addresses:    []domain.Address{},
	}
	if err := s.users.Create(ctx, &u); err != nil {
		return nil, "", err
	}
	token, err := s.issueToken(u)
	if err != nil {
		return nil, "", err
	}
	return &u, token, nil
}

// Login не различает "нет такого email" и "неверный пароль"
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrInvalidInput
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.issueToken(*u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// ForgotPassword проверяет только существование адреса; письмо не
// отправляется, как и в исходной системе
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return ErrInvalidInput
	}
	_, err := s.users.GetByEmail(ctx, email)
	return err
}

// CurrentUser резолвит пользователя по токену
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, claims.UserID)
}

func (s *AuthService) issueToken(u domain.User) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID,
		"role":    string(u.Role),
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokenTTL).Unix(),
	})
	return t.SignedString(s.secret)
}

// ParseToken проверяет подпись и срок, возвращает claims
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" {
		return nil, ErrInvalidCredentials
	}
	return &Claims{UserID: userID, Role: domain.Role(role)}, nil
}
