package repositories

import "context"

// Store groups the repositories used by one analysis pass and provides the
// atomic boundary around it.
type Store interface {
	Meetings() MeetingRepository
	Speakers() SpeakerRepository
	Messages() MessageRepository
	Metrics() SpeakerMetricRepository

	// WithinTransaction runs fn against a transactional Store. Any error returned by fn
	// rolls back every write made through the transactional Store.
	WithinTransaction(ctx context.Context, fn func(tx Store) error) error
}
