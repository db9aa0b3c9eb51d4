// Package state records the outcome of the latest successful fetch of each
// table view. Collections themselves are never kept: every mount starts from
// an empty collection and discards it once rendered.
package state

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/octofit/octofit-web/pkg/record"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

type Store interface {
	// Set notes that view fetched c successfully.
	Set(view string, c record.Collection)

	// Entry returns what was noted for view, and false when the view has
	// never fetched successfully.
	Entry(view string) (Entry, bool)

	Stats() Statistics
}

type Entry struct {
	Records   int
	UpdatedAt time.Time
}

type Statistics struct {
	TotalUpdates int
	Views        int
	Records      int
}

var _ Store = &Memory{}

// Memory is an in-process Store.
type Memory struct {
	log zerolog.Logger

	mu      sync.RWMutex
	entries map[string]Entry

	updates *int32
}

func (m *Memory) Set(view string, c record.Collection) {
	atomic.AddInt32(m.updates, 1)

	m.mu.Lock()
	m.entries[view] = Entry{
		Records:   len(c),
		UpdatedAt: time.Now().UTC(),
	}
	m.mu.Unlock()

	m.log.Debug().Str("view", view).Int("records", len(c)).Msg("view fetched")
}

func (m *Memory) Entry(view string) (Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[view]

	return e, ok
}

func (m *Memory) Stats() Statistics {
	updates := atomic.LoadInt32(m.updates)

	m.mu.RLock()
	defer m.mu.RUnlock()

	records := 0
	for _, e := range m.entries {
		records += e.Records
	}

	return Statistics{
		TotalUpdates: int(updates),
		Views:        len(m.entries),
		Records:      records,
	}
}

func NewMemory(log zerolog.Logger) *Memory {
	return &Memory{
		log:     log,
		entries: map[string]Entry{},
		updates: new(int32),
	}
}

// Metrics exposes the statistics of s as collectors.
func Metrics(s Store) []prometheus.Collector {
	stat := func(name, help string, value func(Statistics) int) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "octofit_web",
			Subsystem: "view_state",
			Name:      name,
			Help:      help,
		}, func() float64 {
			return float64(value(s.Stats()))
		})
	}

	return []prometheus.Collector{
		stat("updates_total", "Successful fetches across all views.", func(st Statistics) int { return st.TotalUpdates }),
		stat("views", "Views that have fetched successfully at least once.", func(st Statistics) int { return st.Views }),
		stat("records", "Records returned by the latest successful fetch of each view, summed.", func(st Statistics) int { return st.Records }),
	}
}
