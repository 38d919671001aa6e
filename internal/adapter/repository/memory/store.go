// Package memory provides an in-process Store used by tests and by the
// "memory" database driver.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/team-pulse/internal/domain/entities"
	"github.com/johnquangdev/team-pulse/internal/domain/repositories"
)

type state struct {
	meetings     map[uuid.UUID]entities.Meeting
	speakers     map[uuid.UUID]entities.Speaker
	speakerNames map[string]uuid.UUID
	messages     map[uuid.UUID][]entities.Message
	metrics      map[uuid.UUID][]entities.SpeakerMetric
}

func newState() *state {
	return &state{
		meetings:     make(map[uuid.UUID]entities.Meeting),
		speakers:     make(map[uuid.UUID]entities.Speaker),
		speakerNames: make(map[string]uuid.UUID),
		messages:     make(map[uuid.UUID][]entities.Message),
		metrics:      make(map[uuid.UUID][]entities.SpeakerMetric),
	}
}

func (st *state) clone() *state {
	c := newState()
	for k, v := range st.meetings {
		c.meetings[k] = v
	}
	for k, v := range st.speakers {
		c.speakers[k] = v
	}
	for k, v := range st.speakerNames {
		c.speakerNames[k] = v
	}
	for k, v := range st.messages {
		c.messages[k] = append([]entities.Message(nil), v...)
	}
	for k, v := range st.metrics {
		c.metrics[k] = append([]entities.SpeakerMetric(nil), v...)
	}
	return c
}

// Store keeps every entity in maps guarded by one mutex. A transaction works on a
// copy of the state and swaps it in on success, so a failed pass leaves nothing behind.
type Store struct {
	mu   *sync.Mutex
	st   *state
	inTx bool
	now  func() time.Time
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		mu:  &sync.Mutex{},
		st:  newState(),
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) lock() {
	if !s.inTx {
		s.mu.Lock()
	}
}

func (s *Store) unlock() {
	if !s.inTx {
		s.mu.Unlock()
	}
}

func (s *Store) Meetings() repositories.MeetingRepository { return meetingRepo{s} }
func (s *Store) Speakers() repositories.SpeakerRepository { return speakerRepo{s} }
func (s *Store) Messages() repositories.MessageRepository { return messageRepo{s} }
func (s *Store) Metrics() repositories.SpeakerMetricRepository { return metricRepo{s} }

// WithinTransaction runs fn against a private copy of the state and commits it
// only when fn succeeds. Nested calls join the outer transaction.
func (s *Store) WithinTransaction(ctx context.Context, fn func(tx repositories.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Store{mu: s.mu, st: s.st.clone(), inTx: true, now: s.now}
	if err := fn(tx); err != nil {
		return err
	}
	s.st = tx.st
	return nil
}

// withMetrics returns a detached copy of the meeting with metrics attached,
// highest participation first
func (s *Store) withMetrics(m entities.Meeting) *entities.Meeting {
	out := m
	out.Messages = nil
	out.Metrics = nil
	for _, metric := range s.st.metrics[m.ID] {
		metric.Speaker = s.speakerPtr(metric.SpeakerID)
		out.Metrics = append(out.Metrics, metric)
	}
	sort.SliceStable(out.Metrics, func(i, j int) bool {
		return out.Metrics[i].ParticipationPercentage > out.Metrics[j].ParticipationPercentage
	})
	return &out
}

func (s *Store) speakerPtr(id uuid.UUID) *entities.Speaker {
	sp, ok := s.st.speakers[id]
	if !ok {
		return nil
	}
	return &sp
}

type meetingRepo struct{ s *Store }

func (r meetingRepo) Create(ctx context.Context, meeting *entities.Meeting) error {
	if meeting == nil {
		return fmt.Errorf("meeting cannot be nil")
	}
	r.s.lock()
	defer r.s.unlock()

	if meeting.ID == uuid.Nil {
		meeting.ID = uuid.New()
	}
	if _, exists := r.s.st.meetings[meeting.ID]; exists {
		return fmt.Errorf("meeting %s already exists", meeting.ID)
	}
	now := r.s.now()
	meeting.CreatedAt = now
	meeting.UpdatedAt = now

	stored := *meeting
	stored.Messages = nil
	stored.Metrics = nil
	r.s.st.meetings[meeting.ID] = stored
	return nil
}

func (r meetingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	r.s.lock()
	defer r.s.unlock()

	m, ok := r.s.st.meetings[id]
	if !ok {
		return nil, entities.ErrMeetingNotFound
	}
	return r.s.withMetrics(m), nil
}

func (r meetingRepo) FindWithMessages(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	r.s.lock()
	defer r.s.unlock()

	m, ok := r.s.st.meetings[id]
	if !ok {
		return nil, entities.ErrMeetingNotFound
	}
	out := r.s.withMetrics(m)
	for _, msg := range r.s.st.messages[id] {
		msg.Speaker = r.s.speakerPtr(msg.SpeakerID)
		out.Messages = append(out.Messages, msg)
	}
	sort.SliceStable(out.Messages, func(i, j int) bool {
		return out.Messages[i].SequenceOrder < out.Messages[j].SequenceOrder
	})
	return out, nil
}

func (r meetingRepo) ListRecent(ctx context.Context, limit int) ([]*entities.Meeting, error) {
	r.s.lock()
	defer r.s.unlock()

	out := make([]*entities.Meeting, 0, len(r.s.st.meetings))
	for _, m := range r.s.st.meetings {
		out = append(out, r.s.withMetrics(m))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r meetingRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*entities.Meeting, error) {
	r.s.lock()
	defer r.s.unlock()

	var out []*entities.Meeting
	for _, m := range r.s.st.meetings {
		if !m.Date.Before(from) && m.Date.Before(to) {
			out = append(out, r.s.withMetrics(m))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (r meetingRepo) UpdateAggregates(ctx context.Context, meeting *entities.Meeting) error {
	if meeting == nil {
		return fmt.Errorf("meeting cannot be nil")
	}
	r.s.lock()
	defer r.s.unlock()

	m, ok := r.s.st.meetings[meeting.ID]
	if !ok {
		return entities.ErrMeetingNotFound
	}
	m.TotalMessages = meeting.TotalMessages
	m.TotalWords = meeting.TotalWords
	m.AvgSentiment = meeting.AvgSentiment
	m.SentimentLabel = meeting.SentimentLabel
	m.ParticipationBalance = meeting.ParticipationBalance
	m.SentimentDistribution = meeting.SentimentDistribution
	m.UpdatedAt = r.s.now()
	r.s.st.meetings[meeting.ID] = m
	meeting.UpdatedAt = m.UpdatedAt
	return nil
}

func (r meetingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.lock()
	defer r.s.unlock()

	if _, ok := r.s.st.meetings[id]; !ok {
		return entities.ErrMeetingNotFound
	}
	delete(r.s.st.meetings, id)
	delete(r.s.st.messages, id)
	delete(r.s.st.metrics, id)
	return nil
}

type speakerRepo struct{ s *Store }

func (r speakerRepo) FindOrCreate(ctx context.Context, name string) (*entities.Speaker, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, entities.ErrInvalidSpeaker
	}
	r.s.lock()
	defer r.s.unlock()

	if id, ok := r.s.st.speakerNames[name]; ok {
		return r.s.speakerPtr(id), nil
	}
	sp := entities.NewSpeaker(name)
	sp.CreatedAt = r.s.now()
	r.s.st.speakers[sp.ID] = *sp
	r.s.st.speakerNames[name] = sp.ID
	return r.s.speakerPtr(sp.ID), nil
}

func (r speakerRepo) FindByName(ctx context.Context, name string) (*entities.Speaker, error) {
	r.s.lock()
	defer r.s.unlock()

	id, ok := r.s.st.speakerNames[name]
	if !ok {
		return nil, entities.ErrSpeakerNotFound
	}
	return r.s.speakerPtr(id), nil
}

func (r speakerRepo) List(ctx context.Context) ([]*entities.Speaker, error) {
	r.s.lock()
	defer r.s.unlock()

	out := make([]*entities.Speaker, 0, len(r.s.st.speakers))
	for id := range r.s.st.speakers {
		out = append(out, r.s.speakerPtr(id))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type messageRepo struct{ s *Store }

func (r messageRepo) BulkCreate(ctx context.Context, messages []*entities.Message) error {
	r.s.lock()
	defer r.s.unlock()

	// validate first so a rejected batch writes nothing
	seen := make(map[uuid.UUID]map[int]bool)
	for _, msg := range messages {
		if _, ok := r.s.st.meetings[msg.MeetingID]; !ok {
			return fmt.Errorf("message references unknown meeting %s", msg.MeetingID)
		}
		if _, ok := r.s.st.speakers[msg.SpeakerID]; !ok {
			return fmt.Errorf("message references unknown speaker %s", msg.SpeakerID)
		}
		if seen[msg.MeetingID] == nil {
			seen[msg.MeetingID] = make(map[int]bool)
			for _, existing := range r.s.st.messages[msg.MeetingID] {
				seen[msg.MeetingID][existing.SequenceOrder] = true
			}
		}
		if seen[msg.MeetingID][msg.SequenceOrder] {
			return fmt.Errorf("duplicate sequence %d for meeting %s", msg.SequenceOrder, msg.MeetingID)
		}
		seen[msg.MeetingID][msg.SequenceOrder] = true
	}

	now := r.s.now()
	for _, msg := range messages {
		if msg.ID == uuid.Nil {
			msg.ID = uuid.New()
		}
		msg.CreatedAt = now
		stored := *msg
		stored.Speaker = nil
		r.s.st.messages[msg.MeetingID] = append(r.s.st.messages[msg.MeetingID], stored)
	}
	return nil
}

func (r messageRepo) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.Message, error) {
	r.s.lock()
	defer r.s.unlock()

	stored := r.s.st.messages[meetingID]
	out := make([]*entities.Message, 0, len(stored))
	for _, msg := range stored {
		msg := msg
		msg.Speaker = r.s.speakerPtr(msg.SpeakerID)
		out = append(out, &msg)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SequenceOrder < out[j].SequenceOrder })
	return out, nil
}

type metricRepo struct{ s *Store }

func (r metricRepo) ReplaceForMeeting(ctx context.Context, meetingID uuid.UUID, metrics []*entities.SpeakerMetric) error {
	r.s.lock()
	defer r.s.unlock()

	if _, ok := r.s.st.meetings[meetingID]; !ok {
		return entities.ErrMeetingNotFound
	}
	seen := make(map[uuid.UUID]bool, len(metrics))
	for _, m := range metrics {
		if seen[m.SpeakerID] {
			return fmt.Errorf("duplicate metric for speaker %s in meeting %s", m.SpeakerID, meetingID)
		}
		seen[m.SpeakerID] = true
	}

	replaced := make([]entities.SpeakerMetric, 0, len(metrics))
	for _, m := range metrics {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		m.MeetingID = meetingID
		stored := *m
		stored.Speaker = nil
		replaced = append(replaced, stored)
	}
	r.s.st.metrics[meetingID] = replaced
	return nil
}

func (r metricRepo) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.SpeakerMetric, error) {
	r.s.lock()
	defer r.s.unlock()

	stored := r.s.st.metrics[meetingID]
	out := make([]*entities.SpeakerMetric, 0, len(stored))
	for _, m := range stored {
		m := m
		m.Speaker = r.s.speakerPtr(m.SpeakerID)
		out = append(out, &m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ParticipationPercentage > out[j].ParticipationPercentage
	})
	return out, nil
}
