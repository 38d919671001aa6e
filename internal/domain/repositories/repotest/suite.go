// Package repotest holds behaviour checks shared by every Store implementation.
package repotest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/johnquangdev/team-pulse/internal/domain/entities"
	"github.com/johnquangdev/team-pulse/internal/domain/repositories"
)

// Factory returns a fresh, empty store for one test
type Factory func(t *testing.T) repositories.Store

// Run exercises a Store implementation
func Run(t *testing.T, newStore Factory) {
	t.Run("meeting round trip with metrics", func(t *testing.T) {
		testMeetingRoundTrip(t, newStore(t))
	})
	t.Run("missing meeting", func(t *testing.T) {
		testMissingMeeting(t, newStore(t))
	})
	t.Run("speaker find or create", func(t *testing.T) {
		testSpeakerFindOrCreate(t, newStore(t))
	})
	t.Run("concurrent speaker creation", func(t *testing.T) {
		testConcurrentSpeakers(t, newStore(t))
	})
	t.Run("list ordering", func(t *testing.T) {
		testListOrdering(t, newStore(t))
	})
	t.Run("replace metrics", func(t *testing.T) {
		testReplaceMetrics(t, newStore(t))
	})
	t.Run("delete keeps speakers", func(t *testing.T) {
		testDeleteKeepsSpeakers(t, newStore(t))
	})
	t.Run("transaction rollback", func(t *testing.T) {
		testTransactionRollback(t, newStore(t))
	})
}

func meetingOn(day int, title string) *entities.Meeting {
	date := time.Date(2025, time.April, 1, 9, 0, 0, 0, time.UTC).AddDate(0, 0, day)
	return entities.NewMeeting(title, date, "Alice: hello there\nBob: hi Alice")
}

func seedMeeting(t *testing.T, store repositories.Store, m *entities.Meeting, speakers ...string) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.Meetings().Create(ctx, m))

	var messages []*entities.Message
	var metrics []*entities.SpeakerMetric
	for i, name := range speakers {
		sp, err := store.Speakers().FindOrCreate(ctx, name)
		require.NoError(t, err)
		score := 0.1 * float64(i+1)
		messages = append(messages, &entities.Message{
			MeetingID:      m.ID,
			SpeakerID:      sp.ID,
			Content:        "message from " + name,
			SequenceOrder:  i + 1,
			WordCount:      3,
			SentimentScore: &score,
		})
		metrics = append(metrics, &entities.SpeakerMetric{
			SpeakerID:               sp.ID,
			TotalMessages:           1,
			TotalWords:              3,
			ParticipationPercentage: float64(10 * (i + 1)),
			EngagementScore:         50,
			AvgSentiment:            &score,
		})
	}
	require.NoError(t, store.Messages().BulkCreate(ctx, messages))
	require.NoError(t, store.Metrics().ReplaceForMeeting(ctx, m.ID, metrics))

	sentiment := 0.2
	balance := 0.8
	label := entities.SentimentPositive
	m.TotalMessages = len(speakers)
	m.TotalWords = 3 * len(speakers)
	m.AvgSentiment = &sentiment
	m.ParticipationBalance = &balance
	m.SentimentLabel = &label
	m.SentimentDistribution = datatypes.NewJSONType(entities.SentimentDistribution{Positive: len(speakers)})
	require.NoError(t, store.Meetings().UpdateAggregates(ctx, m))
}

func testMeetingRoundTrip(t *testing.T, store repositories.Store) {
	ctx := context.Background()
	m := meetingOn(0, "Planning")
	seedMeeting(t, store, m, "Alice", "Bob")

	got, err := store.Meetings().FindByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Planning", got.Title)
	assert.True(t, got.Analyzed())
	assert.Equal(t, 2, got.TotalMessages)
	assert.InDelta(t, 0.2, got.SentimentValue(), 1e-9)
	assert.Equal(t, entities.SentimentPositive, got.LabelValue())
	assert.Equal(t, 2, got.SentimentDistribution.Data().Positive)

	require.Len(t, got.Metrics, 2)
	assert.Equal(t, "Bob", got.Metrics[0].SpeakerName())
	assert.Equal(t, "Alice", got.Metrics[1].SpeakerName())

	withMessages, err := store.Meetings().FindWithMessages(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, withMessages.Messages, 2)
	assert.Equal(t, 1, withMessages.Messages[0].SequenceOrder)
	assert.Equal(t, "message from Alice", withMessages.Messages[0].Content)

	messages, err := store.Messages().ListByMeeting(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	require.NotNil(t, messages[1].Speaker)
	assert.Equal(t, "Bob", messages[1].Speaker.Name)
}

func testMissingMeeting(t *testing.T, store repositories.Store) {
	ctx := context.Background()
	m := meetingOn(0, "Ghost")

	_, err := store.Meetings().FindByID(ctx, m.ID)
	assert.ErrorIs(t, err, entities.ErrMeetingNotFound)

	assert.ErrorIs(t, store.Meetings().Delete(ctx, m.ID), entities.ErrMeetingNotFound)
	assert.ErrorIs(t, store.Meetings().UpdateAggregates(ctx, m), entities.ErrMeetingNotFound)

	_, err = store.Speakers().FindByName(ctx, "Nobody")
	assert.ErrorIs(t, err, entities.ErrSpeakerNotFound)
}

func testSpeakerFindOrCreate(t *testing.T, store repositories.Store) {
	ctx := context.Background()

	first, err := store.Speakers().FindOrCreate(ctx, "Alice")
	require.NoError(t, err)
	second, err := store.Speakers().FindOrCreate(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	_, err = store.Speakers().FindOrCreate(ctx, "  ")
	assert.ErrorIs(t, err, entities.ErrInvalidSpeaker)

	_, err = store.Speakers().FindOrCreate(ctx, "Bob")
	require.NoError(t, err)

	all, err := store.Speakers().List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Alice", all[0].Name)
	assert.Equal(t, "Bob", all[1].Name)
}

func testConcurrentSpeakers(t *testing.T, store repositories.Store) {
	ctx := context.Background()
	const workers = 8

	ids := make([]string, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sp, err := store.Speakers().FindOrCreate(ctx, "Carol")
			errs[i] = err
			if err == nil {
				ids[i] = sp.ID.String()
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}
	all, err := store.Speakers().List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func testListOrdering(t *testing.T, store repositories.Store) {
	ctx := context.Background()
	for i, title := range []string{"First", "Second", "Third", "Fourth"} {
		seedMeeting(t, store, meetingOn(i*7, title), "Alice", "Bob")
	}

	recent, err := store.Meetings().ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Fourth", recent[0].Title)
	assert.Equal(t, "Third", recent[1].Title)
	assert.Len(t, recent[0].Metrics, 2)

	all, err := store.Meetings().ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	from := meetingOn(7, "").Date
	to := meetingOn(21, "").Date
	between, err := store.Meetings().ListBetween(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, between, 2)
	assert.Equal(t, "Second", between[0].Title)
	assert.Equal(t, "Third", between[1].Title)
}

func testReplaceMetrics(t *testing.T, store repositories.Store) {
	ctx := context.Background()
	m := meetingOn(0, "Retro")
	seedMeeting(t, store, m, "Alice", "Bob")

	dave, err := store.Speakers().FindOrCreate(ctx, "Dave")
	require.NoError(t, err)
	require.NoError(t, store.Metrics().ReplaceForMeeting(ctx, m.ID, []*entities.SpeakerMetric{
		{SpeakerID: dave.ID, TotalMessages: 4, ParticipationPercentage: 100},
	}))

	metrics, err := store.Metrics().ListByMeeting(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, metrics, 1)
	assert.Equal(t, "Dave", metrics[0].SpeakerName())
	assert.Equal(t, m.ID, metrics[0].MeetingID)
}

func testDeleteKeepsSpeakers(t *testing.T, store repositories.Store) {
	ctx := context.Background()
	m := meetingOn(0, "Standup")
	seedMeeting(t, store, m, "Alice", "Bob")

	require.NoError(t, store.Meetings().Delete(ctx, m.ID))

	_, err := store.Meetings().FindByID(ctx, m.ID)
	assert.ErrorIs(t, err, entities.ErrMeetingNotFound)

	messages, err := store.Messages().ListByMeeting(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, messages)

	metrics, err := store.Metrics().ListByMeeting(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, metrics)

	speakers, err := store.Speakers().List(ctx)
	require.NoError(t, err)
	assert.Len(t, speakers, 2)
}

func testTransactionRollback(t *testing.T, store repositories.Store) {
	ctx := context.Background()
	m := meetingOn(0, "Doomed")
	boom := errors.New("boom")

	err := store.WithinTransaction(ctx, func(tx repositories.Store) error {
		require.NoError(t, tx.Meetings().Create(ctx, m))
		_, err := tx.Speakers().FindOrCreate(ctx, "Erin")
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = store.Meetings().FindByID(ctx, m.ID)
	assert.ErrorIs(t, err, entities.ErrMeetingNotFound)
	_, err = store.Speakers().FindByName(ctx, "Erin")
	assert.ErrorIs(t, err, entities.ErrSpeakerNotFound)

	kept := meetingOn(1, "Kept")
	err = store.WithinTransaction(ctx, func(tx repositories.Store) error {
		seedMeeting(t, tx, kept, "Frank")
		return nil
	})
	require.NoError(t, err)

	got, err := store.Meetings().FindByID(ctx, kept.ID)
	require.NoError(t, err)
	assert.Len(t, got.Metrics, 1)
}
