package server

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/goliatone/go-houseprice/pkg/orchestrator"
)

// WidgetFactory builds the widget for a new session.
type WidgetFactory func() *orchestrator.Orchestrator

// Sessions maps session ids to widget instances. The least recently used
// session is dropped once the store is full.
type Sessions struct {
	mu      sync.Mutex
	cache   *lru.Cache[string, *orchestrator.Orchestrator]
	factory WidgetFactory
}

// NewSessions creates a store holding at most size widgets.
func NewSessions(size int, factory WidgetFactory, logger *zap.Logger) (*Sessions, error) {
	if factory == nil {
		return nil, fmt.Errorf("server: widget factory is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cache, err := lru.NewWithEvict[string, *orchestrator.Orchestrator](size, func(id string, _ *orchestrator.Orchestrator) {
		logger.Debug("session evicted", zap.String("session", id))
	})
	if err != nil {
		return nil, fmt.Errorf("server: session cache: %w", err)
	}
	return &Sessions{cache: cache, factory: factory}, nil
}

// Lookup returns the widget for id, creating a session under a fresh id when
// id is empty or unknown. created reports whether a new session was made.
func (s *Sessions) Lookup(id string) (sessionID string, widget *orchestrator.Orchestrator, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if widget, ok := s.cache.Get(id); ok {
			return id, widget, false
		}
	}

	sessionID = uuid.NewString()
	widget = s.factory()
	s.cache.Add(sessionID, widget)
	return sessionID, widget, true
}

// Len reports the number of live sessions.
func (s *Sessions) Len() int {
	return s.cache.Len()
}
