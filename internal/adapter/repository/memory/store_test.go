package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/team-pulse/internal/domain/entities"
	"github.com/johnquangdev/team-pulse/internal/domain/repositories"
	"github.com/johnquangdev/team-pulse/internal/domain/repositories/repotest"
)

func TestStore(t *testing.T) {
	repotest.Run(t, func(t *testing.T) repositories.Store {
		return NewStore()
	})
}

func TestBulkCreateRejectsDuplicateSequence(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	m := &entities.Meeting{Title: "Sync"}
	require.NoError(t, store.Meetings().Create(ctx, m))
	sp, err := store.Speakers().FindOrCreate(ctx, "Alice")
	require.NoError(t, err)

	err = store.Messages().BulkCreate(ctx, []*entities.Message{
		{MeetingID: m.ID, SpeakerID: sp.ID, Content: "one", SequenceOrder: 1},
		{MeetingID: m.ID, SpeakerID: sp.ID, Content: "two", SequenceOrder: 1},
	})
	require.Error(t, err)

	messages, err := store.Messages().ListByMeeting(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestReturnedMeetingsAreDetached(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	m := &entities.Meeting{Title: "Sync"}
	require.NoError(t, store.Meetings().Create(ctx, m))

	got, err := store.Meetings().FindByID(ctx, m.ID)
	require.NoError(t, err)
	got.Title = "Changed"

	again, err := store.Meetings().FindByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sync", again.Title)
}

func TestTransactionHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewStore().WithinTransaction(ctx, func(tx repositories.Store) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
