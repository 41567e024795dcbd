package service

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// UserUpdate частичное обновление профиля
type UserUpdate struct {
	Name  *string
	Email *string
	Role  *domain.Role
}

// AddressUpdate частичное обновление адреса
type AddressUpdate struct {
	Street    *string
	City      *string
	State     *string
	ZipCode   *string
	Country   *string
	IsDefault *bool
}

// UserService профиль и адресная книга. У пользователя не больше
// одного адреса по умолчанию: установка флага снимает его с остальных.
type UserService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Update(ctx context.Context, id string, upd UserUpdate) (*domain.User, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if u.Name == "" || u.Email == "" {
		return nil, ErrInvalidInput
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// AddAddress добавляет адрес; первый адрес автоматически становится
// адресом по умолчанию
func (s *UserService) AddAddress(ctx context.Context, userID string, a domain.Address) (*domain.User, error) {
	if userID == "" || a.Street == "" || a.City == "" {
		return nil, ErrInvalidInput
	}
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	a.ID = uuid.NewString()
	if len(u.Addresses) == 0 {
		a.IsDefault = true
	}
	if a.IsDefault {
		clearDefault(u.Addresses)
	}
	u.Addresses = append(u.Addresses, a)
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) UpdateAddress(ctx context.Context, userID, addressID string, upd AddressUpdate) (*domain.User, error) {
	if userID == "" || addressID == "" {
		return nil, ErrInvalidInput
	}
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, a := range u.Addresses {
		if a.ID == addressID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, repository.ErrNotFound
	}
	a := &u.Addresses[idx]
	if upd.Street != nil {
		a.Street = *upd.Street
	}
	if upd.City != nil {
		a.City = *upd.City
	}
	if upd.State != nil {
		a.State = *upd.State
	}
	if upd.ZipCode != nil {
		a.ZipCode = *upd.ZipCode
	}
	if upd.Country != nil {
		a.Country = *upd.Country
	}
	if upd.IsDefault != nil && *upd.IsDefault {
		clearDefault(u.Addresses)
		a.IsDefault = true
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteAddress удаляет адрес; отсутствие адреса не считается ошибкой
func (s *UserService) DeleteAddress(ctx context.Context, userID, addressID string) (*domain.User, error) {
	if userID == "" || addressID == "" {
		return nil, ErrInvalidInput
	}
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := u.Addresses[:0]
	for _, a := range u.Addresses {
		if a.ID != addressID {
			out = append(out, a)
		}
	}
	u.Addresses = out
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func clearDefault(addrs []domain.Address) {
	for i := range addrs {
		addrs[i].IsDefault = false
	}
}
