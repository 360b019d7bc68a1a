package products

import (
	"context"
	"io"
	"testing"
	"time"

	pkgerrors "github.com/ghorkotha/ghorkotha-backend/pkg/errors"
	"github.com/ghorkotha/ghorkotha-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubCategoryChecker struct {
	exists bool
}

func (s stubCategoryChecker) Exists(context.Context, uuid.UUID) (bool, error) {
	return s.exists, nil
}

func newTestService(t *testing.T, categoriesExist bool) (*Service, *gorm.DB) {
	t.Helper()

	db := setupProductsTestDB(t)
	svc, err := NewService(NewRepository(db), stubCategoryChecker{exists: categoriesExist}, logger.New(logger.Options{Level: zerolog.Disabled, Output: io.Discard}))
	require.NoError(t, err)
	return svc, db
}

func TestServiceCreateAndGet(t *testing.T) {
	svc, _ := newTestService(t, true)
	ctx := context.Background()

	created, err := svc.Create(ctx, Input{Name: "Clay Pot", NameBN: "মাটির হাঁড়ি", Price: 250, StockQuantity: 10})
	require.NoError(t, err)
	require.True(t, created.IsActive)

	got, err := svc.Get(ctx, created.ID, false)
	require.NoError(t, err)
	require.Equal(t, "Clay Pot", got.Name)
}

func TestServiceCreateRejectsUnknownCategory(t *testing.T) {
	svc, _ := newTestService(t, false)

	categoryID := uuid.New()
	_, err := svc.Create(context.Background(), Input{Name: "p", Price: 1, CategoryID: &categoryID})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceCreateRejectsNegativePrice(t *testing.T) {
	svc, _ := newTestService(t, true)

	_, err := svc.Create(context.Background(), Input{Name: "p", Price: -5})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceGetHidesInactiveFromStorefront(t *testing.T) {
	svc, db := newTestService(t, true)
	ctx := context.Background()

	row := seedProduct(t, db, "hidden", time.Now(), nil)
	require.NoError(t, db.Model(row).Update("is_active", false).Error)

	_, err := svc.Get(ctx, row.ID, false)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	got, err := svc.Get(ctx, row.ID, true)
	require.NoError(t, err)
	require.False(t, got.IsActive)
}

func TestServiceDeleteDeactivatesWhenOrdered(t *testing.T) {
	svc, db := newTestService(t, true)
	ctx := context.Background()

	created, err := svc.Create(ctx, Input{Name: "ordered once", Price: 99})
	require.NoError(t, err)

	require.NoError(t, db.Exec(
		`INSERT INTO order_items (id, order_id, product_id, product_name, product_price, quantity, subtotal)
		 VALUES (?, ?, ?, ?, ?, 1, ?)`,
		uuid.NewString(), uuid.NewString(), created.ID, created.Name, created.Price, created.Price,
	).Error)

	require.NoError(t, svc.Delete(ctx, created.ID))

	got, err := svc.Get(ctx, created.ID, true)
	require.NoError(t, err)
	require.False(t, got.IsActive)
}

func TestServiceDeleteRemovesUnorderedProduct(t *testing.T) {
	svc, _ := newTestService(t, true)
	ctx := context.Background()

	created, err := svc.Create(ctx, Input{Name: "never ordered", Price: 99})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID, true)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
