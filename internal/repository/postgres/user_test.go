package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_EnsureUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	mock.ExpectExec("INSERT INTO users").
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, repo.EnsureUser(context.Background(), 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetAnchor(t *testing.T) {
	tests := []struct {
		name     string
		rows     *sqlmock.Rows
		expected int
	}{
		{
			name:     "anchor stored",
			rows:     sqlmock.NewRows([]string{"ui_message_id"}).AddRow(123),
			expected: 123,
		},
		{
			name:     "anchor null",
			rows:     sqlmock.NewRows([]string{"ui_message_id"}).AddRow(nil),
			expected: 0,
		},
		{
			name:     "user unknown",
			rows:     sqlmock.NewRows([]string{"ui_message_id"}),
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			repo := NewUserRepo(db)

			mock.ExpectQuery("SELECT ui_message_id FROM users").
				WithArgs(int64(42)).
				WillReturnRows(tt.rows)

			anchor, err := repo.GetAnchor(context.Background(), 42)

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, anchor)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepo_SetAnchor(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	mock.ExpectExec("UPDATE users SET ui_message_id").
		WithArgs(int64(123), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.SetAnchor(context.Background(), 42, 123))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_SetAnchor_Clear(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	mock.ExpectExec("UPDATE users SET ui_message_id").
		WithArgs(nil, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.SetAnchor(context.Background(), 42, 0))
	assert.NoError(t, mock.ExpectationsWereMet())
}
