package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopbot/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFields = domain.OrderFields{
	Name:           "Alice",
	Phone:          "+380501112233",
	City:           "Kyiv",
	DeliveryMethod: domain.DeliveryCourier,
	Address:        "Khreshchatyk 1, apt 2",
	Comment:        "call first",
}

func cartColumns() []string {
	return []string{"product_id", "qty", "title", "price_cents", "stock", "is_active"}
}

func TestOrderRepo_CreateFromCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepo(db)
	userID := int64(42)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT ci.product_id, ci.qty, p.title, p.price_cents, p.stock, p.is_active FROM cart_items").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows(cartColumns()).
			AddRow(1, 2, "Widget", 300, 5, true).
			AddRow(2, 1, "Gadget", 1250, 3, true))
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(userID, string(domain.StatusNew), testFields.Name, testFields.Phone, testFields.City,
			string(testFields.DeliveryMethod), testFields.Address, testFields.Comment).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(int64(7), int64(1), "Widget", int64(300), 2, int64(600)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE products SET stock = stock -").
		WithArgs(2, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(int64(7), int64(2), "Gadget", int64(1250), 1, int64(1250)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("UPDATE products SET stock = stock -").
		WithArgs(1, int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE orders SET total_cents").
		WithArgs(int64(1850), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM cart_items").
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	orderID, total, err := repo.CreateFromCart(context.Background(), userID, testFields)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), orderID)
	assert.Equal(t, int64(1850), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_CreateFromCart_EmptyCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT ci.product_id").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(cartColumns()))
	mock.ExpectRollback()

	_, _, err = repo.CreateFromCart(context.Background(), 42, testFields)

	assert.ErrorIs(t, err, domain.ErrCartEmpty)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_CreateFromCart_StockNotEnough(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepo(db)

	// qty 10 against stock 4: nothing may be written
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT ci.product_id").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(cartColumns()).
			AddRow(2, 10, "Gadget", 500, 4, true))
	mock.ExpectRollback()

	_, _, err = repo.CreateFromCart(context.Background(), 42, testFields)

	assert.ErrorIs(t, err, domain.ErrStockNotEnough)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_CreateFromCart_InactiveProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepo(db)

	// second line inactive aborts the whole commit
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT ci.product_id").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(cartColumns()).
			AddRow(1, 1, "Widget", 300, 5, true).
			AddRow(2, 1, "Gadget", 500, 4, false))
	mock.ExpectRollback()

	_, _, err = repo.CreateFromCart(context.Background(), 42, testFields)

	assert.ErrorIs(t, err, domain.ErrProductInactive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_CreateFromCart_InfraFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepo(db)
	boom := errors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT ci.product_id").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(cartColumns()).
			AddRow(1, 2, "Widget", 300, 5, true))
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnError(boom)
	mock.ExpectRollback()

	_, _, err = repo.CreateFromCart(context.Background(), 42, testFields)

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepo(db)
	now := time.Now()

	columns := []string{"id", "user_id", "status", "payment_method", "name", "phone", "city", "delivery_method", "address", "comment", "total_cents", "created_at"}
	mock.ExpectQuery("SELECT id, user_id, status").
		WithArgs(int64(42), 10).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(7, 42, "NEW", "", "Alice", "+380501112233", "Kyiv", "courier", "Khreshchatyk 1", "", 1850, now))

	orders, err := repo.ListByUser(context.Background(), 42, 10)

	assert.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, domain.StatusNew, orders[0].Status)
	assert.Equal(t, int64(1850), orders[0].TotalCents)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_Get_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepo(db)

	mock.ExpectQuery("SELECT id, user_id, status").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	order, err := repo.Get(context.Background(), 99)

	assert.NoError(t, err)
	assert.Nil(t, order)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_Lines(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepo(db)

	mock.ExpectQuery("SELECT id, order_id, product_id").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "title", "price_cents", "qty", "line_total_cents"}).
			AddRow(1, 7, 1, "Widget", 300, 2, 600))

	lines, err := repo.Lines(context.Background(), 7)

	assert.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, lines[0].LineTotalCents, lines[0].PriceCents*int64(lines[0].Qty))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_SetStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepo(db)

	mock.ExpectExec("UPDATE orders SET status").
		WithArgs("PAID", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.SetStatus(context.Background(), 7, domain.StatusPaid))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_Stats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepo(db)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count", "sum"}).AddRow(3, 5400))

	stats, err := repo.Stats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 3, stats.OrdersCount)
	assert.Equal(t, int64(5400), stats.RevenueCents)
	assert.NoError(t, mock.ExpectationsWereMet())
}
