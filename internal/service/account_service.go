package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"auth_service/internal/model"
	"auth_service/internal/repository"
	"auth_service/internal/utils"

	"github.com/google/uuid"
)

var (
	ErrDuplicatePhoneNumber = errors.New("account with this phone number already exists")
	ErrInvalidRole          = errors.New("invalid role")
	ErrInvalidStatus        = errors.New("invalid status")
)

// AccountService defines CRUD operations over accounts with soft delete
type AccountService interface {
	Create(ctx context.Context, req model.CreateAccountRequest) (*model.Account, error)
	Update(ctx context.Context, id int64, req model.UpdateAccountRequest) (*model.Account, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*model.Account, error)
	GetAll(ctx context.Context) ([]model.Account, error)
	EnsureAdmin(ctx context.Context, phoneNumber, password string) error
}

type accountService struct {
	repo repository.AccountRepository
}

// NewAccountService creates a new AccountService
func NewAccountService(repo repository.AccountRepository) AccountService {
	return &accountService{repo: repo}
}

// Create validates the role, hashes the password and persists a new account
func (s *accountService) Create(ctx context.Context, req model.CreateAccountRequest) (*model.Account, error) {
	role, err := model.ParseRole(req.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, req.Role)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &model.Account{
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: hashedPassword,
		Role:         role,
		Status:       model.StatusActive,
	}

	if err := s.repo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicatePhoneNumber) {
			return nil, ErrDuplicatePhoneNumber
		}
		return nil, fmt.Errorf("failed to create account in repository: %w", err)
	}
	return account, nil
}

// Update applies the fields present in the request onto an existing
// account. A password in the request is always rehashed; the raw value
// never reaches the store.
func (s *accountService) Update(ctx context.Context, id int64, req model.UpdateAccountRequest) (*model.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find account for update: %w", err)
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	if req.PhoneNumber != nil {
		account.PhoneNumber = *req.PhoneNumber
	}
	if req.Password != nil {
		hashedPassword, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		account.PasswordHash = hashedPassword
	}
	if req.Role != nil {
		role, err := model.ParseRole(*req.Role)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRole, *req.Role)
		}
		account.Role = role
	}
	if req.Status != nil {
		status := model.Status(*req.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
		}
		account.Status = status
	}

	if err := s.repo.Update(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicatePhoneNumber) {
			return nil, ErrDuplicatePhoneNumber
		}
		if errors.Is(err, repository.ErrNotFound) {
			// Deleted between the read above and the write
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to update account in repository: %w", err)
	}
	return account, nil
}

// Delete soft-deletes an account: the deleted flag is set and a fresh
// random marker is stamped, but the row is retained.
func (s *accountService) Delete(ctx context.Context, id int64) error {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find account for deletion: %w", err)
	}
	if account == nil {
		return ErrAccountNotFound
	}

	deleteCode := uuid.New().String()
	if err := s.repo.SoftDelete(ctx, id, deleteCode); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("failed to soft delete account: %w", err)
	}
	return nil
}

// EnsureAdmin seeds an initial ADMIN account if the phone number is not
// taken yet. Without it a fresh deployment has no principal allowed to
// call the account CRUD endpoints.
func (s *accountService) EnsureAdmin(ctx context.Context, phoneNumber, password string) error {
	existing, err := s.repo.FindByPhone(ctx, phoneNumber)
	if err != nil {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}
	if existing != nil {
		log.Printf("Admin account %s already exists", phoneNumber)
		return nil
	}

	_, err = s.Create(ctx, model.CreateAccountRequest{
		PhoneNumber: phoneNumber,
		Password:    password,
		Role:        string(model.RoleAdmin),
	})
	if err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}
	log.Printf("Admin account %s seeded", phoneNumber)
	return nil
}

// Get returns a non-deleted account by ID
func (s *accountService) Get(ctx context.Context, id int64) (*model.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find account by ID: %w", err)
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

// GetAll returns all non-deleted accounts
func (s *accountService) GetAll(ctx context.Context) ([]model.Account, error) {
	accounts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}
