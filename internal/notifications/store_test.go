package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStoreCreateAndListUnread(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	first, err := store.Create(ctx, CreateRequest{LeadID: uuid.New(), Type: TypeDueToday}, now)
	require.NoError(t, err)
	second, err := store.Create(ctx, CreateRequest{LeadID: uuid.New(), Type: TypeOverdueFollowUp}, now.Add(time.Minute))
	require.NoError(t, err)

	unread, err := store.ListUnread(ctx)
	require.NoError(t, err)
	require.Len(t, unread, 2)
	assert.Equal(t, second.ID, unread[0].ID, "newest first")
	assert.Equal(t, first.ID, unread[1].ID)

	count, err := store.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestInMemoryStoreListUnreadCapped(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < UnreadLimit+10; i++ {
		_, err := store.Create(ctx, CreateRequest{LeadID: uuid.New(), Type: TypeDueToday}, now.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
	}

	unread, err := store.ListUnread(ctx)
	require.NoError(t, err)
	assert.Len(t, unread, UnreadLimit)

	count, err := store.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, UnreadLimit+10, count)
}

func TestInMemoryStoreListCreatedBetween(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	dayStart := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := store.Create(ctx, CreateRequest{LeadID: uuid.New(), Type: TypeDueToday}, dayStart.Add(-time.Minute))
	require.NoError(t, err)
	inWindow, err := store.Create(ctx, CreateRequest{LeadID: uuid.New(), Type: TypeDueToday}, dayStart.Add(10*time.Hour))
	require.NoError(t, err)
	_, err = store.Create(ctx, CreateRequest{LeadID: uuid.New(), Type: TypeDueToday}, dayStart.Add(24*time.Hour))
	require.NoError(t, err)

	got, err := store.ListCreatedBetween(ctx, dayStart, dayStart.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, inWindow.ID, got[0].ID)
}

func TestInMemoryStoreMarkRead(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	n, err := store.Create(ctx, CreateRequest{LeadID: uuid.New(), Type: TypeArrivalReminder}, time.Now())
	require.NoError(t, err)

	require.NoError(t, store.MarkRead(ctx, n.ID))
	count, err := store.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	assert.ErrorIs(t, store.MarkRead(ctx, uuid.New()), ErrNotificationNotFound)
}

func TestInMemoryStoreMarkAllRead(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < 3; i++ {
		_, err := store.Create(ctx, CreateRequest{LeadID: uuid.New(), Type: TypeDueToday}, now)
		require.NoError(t, err)
	}

	updated, err := store.MarkAllRead(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated)

	updated, err = store.MarkAllRead(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)
}
