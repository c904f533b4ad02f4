// File: services/dialogue/session.go
package dialogue

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Stage identifies where a booking conversation currently is.
type Stage string

const (
	StageStart            Stage = "start"
	StageSelectTimeframe  Stage = "select_timeframe"
	StageSelectDate       Stage = "select_date"
	StageSelectTime       Stage = "select_time"
	StageConfirmSelection Stage = "confirm_selection"
	StageCollectName      Stage = "collect_name"
	StageCollectEmail     Stage = "collect_email"
	StageCollectTopic     Stage = "collect_topic"
	StageComplete         Stage = "complete"
)

// CandidateDate is one selectable day offered to the user.
type CandidateDate struct {
	Date          time.Time `json:"date"`
	FormattedDate string    `json:"formattedDate"`
}

// Draft accumulates the booking details collected so far.
type Draft struct {
	Date          time.Time `json:"date"`
	FormattedDate string    `json:"formattedDate"`
	FormattedTime string    `json:"formattedTime"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Topic         string    `json:"topic"`
}

// Session is the per-conversation booking state. It is serialized as JSON
// when stored in Redis, so changes here must stay backward compatible within
// a session's TTL.
type Session struct {
	Stage Stage           `json:"stage"`
	Dates []CandidateDate `json:"dates,omitempty"`
	Times []string        `json:"times,omitempty"`
	Draft Draft           `json:"draft"`
}

// SessionStore holds booking sessions keyed by conversation session id.
// Get returns nil when no session exists.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*Session, error)
	Put(ctx context.Context, sessionID string, session *Session) error
	Delete(ctx context.Context, sessionID string) error
}

// MemorySessionStore keeps sessions in a process-local map. Sessions are
// lost on restart, which simply drops the user back to free-form chat.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*Session)}
}

func (s *MemorySessionStore) Get(_ context.Context, sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	cp := *sess
	return &cp, nil
}

func (s *MemorySessionStore) Put(_ context.Context, sessionID string, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *session
	s.sessions[sessionID] = &cp
	return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

const sessionKeyPrefix = "booking:session:"

// RedisSessionStore persists sessions in Redis with a TTL, so a widget
// conversation survives server restarts and horizontal scaling.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisSessionStore) Put(ctx context.Context, sessionID string, session *Session) error {
	b, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+sessionID, b, s.ttl).Err()
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
