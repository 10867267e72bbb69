package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"sellerboost-api/internal/model"
	"sellerboost-api/pkg/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHistory() (*HistoryService, *fakeStore) {
	store := &fakeStore{pc: &model.ProductContext{Product: testProduct(), Seller: testSeller()}}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"c1", "c2", "c3"} {
		store.records = append(store.records, &model.ContentRecord{
			ID:            id,
			ProductID:     "product-1",
			SellerID:      "seller-1",
			DateGenerated: base.Add(time.Duration(i) * time.Hour),
		})
	}
	return NewHistoryService(store), store
}

func TestHistory_List(t *testing.T) {
	svc, _ := newHistory()

	records, err := svc.List(context.Background(), principal, "product-1", 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "c3", records[0].ID)
	assert.Equal(t, "c2", records[1].ID)
}

func TestHistory_Latest(t *testing.T) {
	svc, _ := newHistory()

	rec, err := svc.Latest(context.Background(), principal, "product-1")
	require.NoError(t, err)
	assert.Equal(t, "c3", rec.ID)
}

func TestHistory_LatestEmpty(t *testing.T) {
	svc, store := newHistory()
	store.records = nil

	_, err := svc.Latest(context.Background(), principal, "product-1")
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
}

func TestHistory_OwnershipEnforced(t *testing.T) {
	svc, _ := newHistory()

	_, err := svc.List(context.Background(), &model.Principal{UserID: "intruder"}, "product-1", 10)
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))

	_, err = svc.Latest(context.Background(), &model.Principal{UserID: "intruder"}, "product-1")
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
}

func TestHistory_StoreFailure(t *testing.T) {
	svc, store := newHistory()
	store.listErr = errors.New("connection lost")

	_, err := svc.List(context.Background(), principal, "product-1", 0)
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindInternal))
}
