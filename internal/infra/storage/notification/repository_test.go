package notification_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	"github.com/m04kA/SMC-SmartScheduler/internal/infra/storage/notification"
	"github.com/m04kA/SMC-SmartScheduler/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-SmartScheduler/pkg/ptr"
)

var now = time.Date(2025, 5, 5, 12, 0, 0, 0, time.UTC)

func TestRepository(t *testing.T) {
	repo := notification.NewRepository(storagetest.Open(t), storagetest.Builder())
	ctx := context.Background()

	userID := int64(1)
	past, err := repo.Create(ctx, &domain.Notification{
		UserID:        &userID,
		Type:          domain.NotificationTypeTask,
		TargetID:      10,
		Message:       "standup",
		ScheduledTime: now.Add(-time.Hour),
	})
	require.NoError(t, err)

	future, err := repo.Create(ctx, &domain.Notification{
		Type:          domain.NotificationTypeDeadline,
		TargetID:      3,
		Message:       "report due",
		ScheduledTime: now.Add(time.Hour),
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, past.ID)
	require.NoError(t, err)
	assert.Equal(t, "standup", got.Message)
	assert.Equal(t, int64(1), *got.UserID)
	assert.False(t, got.Sent)
	assert.False(t, got.Read)

	require.NoError(t, repo.MarkSent(ctx, past.ID))
	require.NoError(t, repo.MarkRead(ctx, past.ID))
	got, err = repo.GetByID(ctx, past.ID)
	require.NoError(t, err)
	assert.True(t, got.Sent)
	assert.True(t, got.Read)

	tests := []struct {
		name   string
		filter domain.NotificationFilter
		want   []int64
	}{
		{name: "all", filter: domain.NotificationFilter{}, want: []int64{past.ID, future.ID}},
		{name: "by user", filter: domain.NotificationFilter{UserID: &userID}, want: []int64{past.ID}},
		{name: "unsent", filter: domain.NotificationFilter{Sent: ptr.Ptr(false)}, want: []int64{future.ID}},
		{name: "read", filter: domain.NotificationFilter{Read: ptr.Ptr(true)}, want: []int64{past.ID}},
		{name: "upcoming", filter: domain.NotificationFilter{Upcoming: true, Now: now}, want: []int64{future.ID}},
		{name: "limit", filter: domain.NotificationFilter{Limit: 1}, want: []int64{past.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)

			ids := make([]int64, 0, len(list))
			for _, n := range list {
				ids = append(ids, n.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	require.NoError(t, repo.Delete(ctx, future.ID))
	_, err = repo.GetByID(ctx, future.ID)
	assert.ErrorIs(t, err, notification.ErrNotificationNotFound)
	assert.ErrorIs(t, repo.MarkSent(ctx, future.ID), notification.ErrNotificationNotFound)
}
