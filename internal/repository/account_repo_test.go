package repository

import (
	"context"
	"testing"
	"time"

	"auth_service/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var accountRows = []string{"id", "phone_number", "password_hash", "role", "status", "deleted", "delete_code", "created_at", "updated_at"}

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, AccountRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewAccountRepository(mock)
}

func TestAccountRepository_Create(t *testing.T) {
	mock, repo := newMockRepo(t)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO accounts \(phone_number, password_hash, role, status\)`).
		WithArgs("+998901234567", "hash", model.RoleUser, model.StatusActive).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))

	account := &model.Account{
		PhoneNumber:  "+998901234567",
		PasswordHash: "hash",
		Role:         model.RoleUser,
		Status:       model.StatusActive,
	}
	err := repo.Create(context.Background(), account)

	require.NoError(t, err)
	assert.Equal(t, int64(1), account.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Create_DuplicatePhone(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO accounts`).
		WithArgs("+998901234567", "hash", model.RoleUser, model.StatusActive).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_phone_number_key"})

	err := repo.Create(context.Background(), &model.Account{
		PhoneNumber:  "+998901234567",
		PasswordHash: "hash",
		Role:         model.RoleUser,
		Status:       model.StatusActive,
	})

	assert.ErrorIs(t, err, ErrDuplicatePhoneNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_FindByPhone(t *testing.T) {
	mock, repo := newMockRepo(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE phone_number = \$1 AND NOT deleted`).
		WithArgs("+998901234567").
		WillReturnRows(pgxmock.NewRows(accountRows).
			AddRow(int64(7), "+998901234567", "hash", model.RoleAdmin, model.StatusActive, false, (*string)(nil), now, now))

	account, err := repo.FindByPhone(context.Background(), "+998901234567")

	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, int64(7), account.ID)
	assert.Equal(t, model.RoleAdmin, account.Role)
	assert.Nil(t, account.DeleteCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_FindByPhone_NotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE phone_number = \$1 AND NOT deleted`).
		WithArgs("+998900000000").
		WillReturnError(pgx.ErrNoRows)

	account, err := repo.FindByPhone(context.Background(), "+998900000000")

	// Not found is nil, nil by contract; the service layer decides what it means
	assert.NoError(t, err)
	assert.Nil(t, account)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_FindByID_NotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE id = \$1 AND NOT deleted`).
		WithArgs(int64(42)).
		WillReturnError(pgx.ErrNoRows)

	account, err := repo.FindByID(context.Background(), 42)

	assert.NoError(t, err)
	assert.Nil(t, account)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_FindAll(t *testing.T) {
	mock, repo := newMockRepo(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE NOT deleted ORDER BY id`).
		WillReturnRows(pgxmock.NewRows(accountRows).
			AddRow(int64(1), "+998901111111", "hash1", model.RoleUser, model.StatusActive, false, (*string)(nil), now, now).
			AddRow(int64(2), "+998902222222", "hash2", model.RoleAdmin, model.StatusInactive, false, (*string)(nil), now, now))

	accounts, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "+998901111111", accounts[0].PhoneNumber)
	assert.Equal(t, model.RoleAdmin, accounts[1].Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Update_DuplicatePhone(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`UPDATE accounts`).
		WithArgs("+998902222222", "hash", model.RoleUser, model.StatusActive, int64(1)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Update(context.Background(), &model.Account{
		ID:           1,
		PhoneNumber:  "+998902222222",
		PasswordHash: "hash",
		Role:         model.RoleUser,
		Status:       model.StatusActive,
	})

	assert.ErrorIs(t, err, ErrDuplicatePhoneNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_SoftDelete(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec(`UPDATE accounts SET deleted = TRUE, delete_code = \$1`).
		WithArgs("some-uuid", int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.SoftDelete(context.Background(), 1, "some-uuid")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_SoftDelete_NotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	// Already-deleted or missing rows match nothing
	mock.ExpectExec(`UPDATE accounts SET deleted = TRUE, delete_code = \$1`).
		WithArgs("some-uuid", int64(42)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.SoftDelete(context.Background(), 42, "some-uuid")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Update_NotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	// The row vanished (e.g. soft-deleted concurrently) between read and write
	mock.ExpectQuery(`UPDATE accounts`).
		WithArgs("+998901234567", "hash", model.RoleUser, model.StatusActive, int64(42)).
		WillReturnError(pgx.ErrNoRows)

	err := repo.Update(context.Background(), &model.Account{
		ID:           42,
		PhoneNumber:  "+998901234567",
		PasswordHash: "hash",
		Role:         model.RoleUser,
		Status:       model.StatusActive,
	})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_FindAll_Empty(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE NOT deleted ORDER BY id`).
		WillReturnRows(pgxmock.NewRows(accountRows))

	accounts, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	// Non-nil so the handler serializes an empty list as [], not null
	assert.NotNil(t, accounts)
	assert.Len(t, accounts, 0)
	assert.NoError(t, mock.ExpectationsWereMet())
}
