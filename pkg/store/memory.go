package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nchci/hciflow/pkg/models"
	"github.com/robfig/cron/v3"
)

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Memory is the in-process store used by tests and single-instance
// deployments. Entries are kept serialized, same as the redis store, so a
// reader never shares a pointer with a concurrent writer. A janitor sweeps
// expired entries once a minute so the maps stay bounded even when users
// abandon journeys.
type Memory struct {
	ttl time.Duration

	mu        sync.RWMutex
	sessions  map[string]memoryEntry
	workflows map[string]memoryEntry

	janitor *cron.Cron
}

// NewMemory creates a memory store. A zero ttl disables expiry.
func NewMemory(ttl time.Duration) *Memory {
	m := &Memory{
		ttl:       ttl,
		sessions:  make(map[string]memoryEntry),
		workflows: make(map[string]memoryEntry),
	}

	if ttl > 0 {
		m.janitor = cron.New()
		_, _ = m.janitor.AddFunc("@every 1m", m.sweep)
		m.janitor.Start()
	}

	return m
}

func (m *Memory) expiry() time.Time {
	if m.ttl <= 0 {
		return time.Time{}
	}

	return time.Now().Add(m.ttl)
}

func (m *Memory) sweep() {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	for userID, entry := range m.sessions {
		if entry.expired(now) {
			delete(m.sessions, userID)
		}
	}

	for userID, entry := range m.workflows {
		if entry.expired(now) {
			delete(m.workflows, userID)
		}
	}
}

func (m *Memory) put(table map[string]memoryEntry, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	table[key] = memoryEntry{payload: payload, expiresAt: m.expiry()}

	return nil
}

func (m *Memory) get(table map[string]memoryEntry, key string, target any) error {
	m.mu.RLock()
	entry, ok := table[key]
	m.mu.RUnlock()

	if !ok || entry.expired(time.Now()) {
		return ErrNotFound
	}

	if err := json.Unmarshal(entry.payload, target); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}

	return nil
}

func (m *Memory) PutSession(_ context.Context, userID string, session *models.Session) error {
	return m.put(m.sessions, userID, session)
}

func (m *Memory) Session(_ context.Context, userID string) (*models.Session, error) {
	var session models.Session
	if err := m.get(m.sessions, userID, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

func (m *Memory) PutActiveWorkflow(_ context.Context, userID string, workflow *models.ActiveWorkflow) error {
	return m.put(m.workflows, userID, workflow)
}

func (m *Memory) ActiveWorkflow(_ context.Context, userID string) (*models.ActiveWorkflow, error) {
	var workflow models.ActiveWorkflow
	if err := m.get(m.workflows, userID, &workflow); err != nil {
		return nil, err
	}

	return &workflow, nil
}

func (m *Memory) DeleteJourney(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
	delete(m.workflows, userID)

	return nil
}

func (m *Memory) HealthCheck(_ context.Context) error {
	return nil
}

func (m *Memory) Close(_ context.Context) error {
	if m.janitor != nil {
		m.janitor.Stop()
	}

	return nil
}
