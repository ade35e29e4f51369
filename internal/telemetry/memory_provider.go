package telemetry

import (
	"context"
	"fmt"
	"sync"

	"github.com/yourusername/rainline/internal/models"
)

const memoryProviderName = "memory"

type sessionKey struct {
	year    int
	event   string
	session models.SessionType
}

// MemoryProvider holds schedules and sessions in memory. It backs tests and
// replays of previously captured data.
type MemoryProvider struct {
	mu        sync.RWMutex
	schedules map[int][]models.Event
	sessions  map[sessionKey]*models.Session
	failures  map[sessionKey]error
	loads     map[sessionKey]int
}

// NewMemoryProvider creates an empty in-memory provider
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		schedules: make(map[int][]models.Event),
		sessions:  make(map[sessionKey]*models.Session),
		failures:  make(map[sessionKey]error),
		loads:     make(map[sessionKey]int),
	}
}

// Name returns the provider name
func (p *MemoryProvider) Name() string {
	return memoryProviderName
}

// AddEvent appends an event to a season schedule
func (p *MemoryProvider) AddEvent(year int, event models.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.schedules[year] = append(p.schedules[year], event)
}

// AddSession registers a loadable session
func (p *MemoryProvider) AddSession(session *models.Session) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sessions[sessionKey{session.Year, session.EventName, session.Type}] = session
}

// FailSession makes every load of the session return err
func (p *MemoryProvider) FailSession(year int, eventName string, sessionType models.SessionType, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failures[sessionKey{year, eventName, sessionType}] = err
}

// LoadCount returns how often a session was requested
func (p *MemoryProvider) LoadCount(year int, eventName string, sessionType models.SessionType) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loads[sessionKey{year, eventName, sessionType}]
}

// EventSchedule returns the stored schedule
func (p *MemoryProvider) EventSchedule(ctx context.Context, year int, includeTesting bool) ([]models.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()

	events := make([]models.Event, 0, len(p.schedules[year]))
	for _, e := range p.schedules[year] {
		if e.IsTesting() && !includeTesting {
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

// LoadSession returns the stored session
func (p *MemoryProvider) LoadSession(ctx context.Context, year int, eventName string, sessionType models.SessionType) (*models.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := sessionKey{year, eventName, sessionType}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loads[key]++

	if err, ok := p.failures[key]; ok {
		return nil, err
	}
	session, ok := p.sessions[key]
	if !ok {
		return nil, NewProviderError(p.Name(), ErrCodeNotFound, fmt.Sprintf("no %s session for %s %d", sessionType, eventName, year), nil)
	}
	return session, nil
}
