package user

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jbaptiste/paybuddy/pkg/domain/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

func userColumns() []string {
	return []string{"id", "username", "email", "password", "auth_provider", "balance_cents", "created_at", "updated_at"}
}

func TestGet_MapsRowToDTO(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(id, "alice", "alice@example.com", "hash", "LOCAL", int64(12345), now, now))

	u, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "LOCAL", u.Provider)
	assert.Equal(t, int64(12345), u.Balance.Cents())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NotFoundIsNilNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows(userColumns()))

	u, err := repo.Get(context.Background(), id)
	assert.NoError(t, err)
	assert.Nil(t, u)
}

func TestGetForUpdate_LocksRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 .* FOR UPDATE`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(id, "alice", "alice@example.com", "hash", "LOCAL", int64(1000), now, now))

	u, err := repo.GetForUpdate(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBalance(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)
	id := uuid.New()

	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateBalance(context.Background(), id, money.FromCents(8000))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBalance_MissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)

	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateBalance(context.Background(), uuid.New(), money.FromCents(8000))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListConnections_OrderedByInsertion(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)
	ownerID := uuid.New()
	first, second := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT users\.id, users\.username, users\.email FROM "users" JOIN user_connections uc ON uc\.connection_id = users\.id WHERE uc\.user_id = \$1 ORDER BY uc\.created_at ASC`).
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email"}).
			AddRow(first, "bob", "bob@example.com").
			AddRow(second, "carol", "carol@example.com"))

	contacts, err := repo.ListConnections(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "bob", contacts[0].Username)
	assert.Equal(t, "carol", contacts[1].Username)
}

func TestHasConnection(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)
	ownerID, targetID := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "user_connections"`).
		WithArgs(ownerID, targetID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := repo.HasConnection(context.Background(), ownerID, targetID)
	require.NoError(t, err)
	assert.True(t, ok)
}
