package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRepo_GetCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCartRepo(db)

	mock.ExpectQuery("SELECT ci.product_id, ci.qty, p.title").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(cartColumns()).
			AddRow(2, 1, "Gadget", 1250, 3, true).
			AddRow(1, 2, "Widget", 300, 5, true))

	items, err := repo.GetCart(context.Background(), 42)

	assert.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(2), items[0].ProductID)
	assert.Equal(t, int64(600), items[1].LineTotal())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepo_GetQty_Absent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCartRepo(db)

	mock.ExpectQuery("SELECT qty FROM cart_items").
		WithArgs(int64(42), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"qty"}))

	qty, err := repo.GetQty(context.Background(), 42, 1)

	assert.NoError(t, err)
	assert.Equal(t, 0, qty)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepo_SetQty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCartRepo(db)

	mock.ExpectExec("INSERT INTO cart_items").
		WithArgs(int64(42), int64(1), 3).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, repo.SetQty(context.Background(), 42, 1, 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepo_SetQty_ZeroDeletes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCartRepo(db)

	// qty <= 0 must delete the line, never store it
	mock.ExpectExec("DELETE FROM cart_items").
		WithArgs(int64(42), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.SetQty(context.Background(), 42, 1, 0))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepo_Clear(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCartRepo(db)

	mock.ExpectExec("DELETE FROM cart_items WHERE user_id").
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	assert.NoError(t, repo.Clear(context.Background(), 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}
