package repository

import (
	"context"
	"errors"
	"fmt"

	"auth_service/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicatePhoneNumber is returned when an insert or update violates
	// the phone number uniqueness constraint
	ErrDuplicatePhoneNumber = errors.New("phone number already taken")

	// ErrNotFound is returned by writes that matched no live row, e.g. when
	// the account was deleted between a read and the write
	ErrNotFound = errors.New("account not found")
)

// DB is the subset of pgxpool.Pool used by repositories. pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AccountRepository defines operations for account data. All lookups
// exclude soft-deleted records.
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	FindByPhone(ctx context.Context, phoneNumber string) (*model.Account, error)
	FindByID(ctx context.Context, id int64) (*model.Account, error)
	FindAll(ctx context.Context) ([]model.Account, error)
	Update(ctx context.Context, account *model.Account) error
	SoftDelete(ctx context.Context, id int64, deleteCode string) error
}

type accountRepository struct {
	db DB
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db DB) AccountRepository {
	return &accountRepository{db: db}
}

const accountColumns = `id, phone_number, password_hash, role, status, deleted, delete_code, created_at, updated_at`

func scanAccount(row pgx.Row, a *model.Account) error {
	return row.Scan(&a.ID, &a.PhoneNumber, &a.PasswordHash, &a.Role, &a.Status,
		&a.Deleted, &a.DeleteCode, &a.CreatedAt, &a.UpdatedAt)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Create inserts a new account into the database
func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	sql := `INSERT INTO accounts (phone_number, password_hash, role, status)
            VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql, account.PhoneNumber, account.PasswordHash, account.Role, account.Status).
		Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicatePhoneNumber
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// FindByPhone retrieves a non-deleted account by phone number
func (r *accountRepository) FindByPhone(ctx context.Context, phoneNumber string) (*model.Account, error) {
	account := &model.Account{}
	sql := `SELECT ` + accountColumns + ` FROM accounts WHERE phone_number = $1 AND NOT deleted`
	err := scanAccount(r.db.QueryRow(ctx, sql, phoneNumber), account)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found is not an error for this method's contract, service layer handles it
		}
		return nil, fmt.Errorf("failed to find account by phone: %w", err)
	}
	return account, nil
}

// FindByID retrieves a non-deleted account by ID
func (r *accountRepository) FindByID(ctx context.Context, id int64) (*model.Account, error) {
	account := &model.Account{}
	sql := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 AND NOT deleted`
	err := scanAccount(r.db.QueryRow(ctx, sql, id), account)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find account by ID: %w", err)
	}
	return account, nil
}

// FindAll retrieves all non-deleted accounts
func (r *accountRepository) FindAll(ctx context.Context) ([]model.Account, error) {
	sql := `SELECT ` + accountColumns + ` FROM accounts WHERE NOT deleted ORDER BY id`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	// Non-nil so an empty table serializes as [] rather than null
	accounts := []model.Account{}
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.PhoneNumber, &a.PasswordHash, &a.Role, &a.Status,
			&a.Deleted, &a.DeleteCode, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// Update persists mutable fields of an existing non-deleted account
func (r *accountRepository) Update(ctx context.Context, account *model.Account) error {
	sql := `UPDATE accounts
            SET phone_number = $1, password_hash = $2, role = $3, status = $4, updated_at = NOW()
            WHERE id = $5 AND NOT deleted RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql, account.PhoneNumber, account.PasswordHash, account.Role, account.Status, account.ID).
		Scan(&account.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if isUniqueViolation(err) {
			return ErrDuplicatePhoneNumber
		}
		return fmt.Errorf("failed to update account: %w", err)
	}
	return nil
}

// SoftDelete marks an account deleted and stamps the invalidation marker.
// The row is retained.
func (r *accountRepository) SoftDelete(ctx context.Context, id int64, deleteCode string) error {
	sql := `UPDATE accounts SET deleted = TRUE, delete_code = $1, updated_at = NOW() WHERE id = $2 AND NOT deleted`
	cmdTag, err := r.db.Exec(ctx, sql, deleteCode, id)
	if err != nil {
		return fmt.Errorf("failed to soft delete account: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
