package clipboard

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/clipstash/clipstash/internal/history"
	"github.com/clipstash/clipstash/internal/metrics"
	"github.com/clipstash/clipstash/internal/types"
)

// DefaultPollInterval is how often the monitor samples the clipboard.
const DefaultPollInterval = 500 * time.Millisecond

// Monitor polls the system clipboard on a fixed interval and feeds
// changed content through extract, dedup, and append. The monitor's own
// writes are not re-ingested: a self-initiated write moves the last-seen
// sample to the written text so the echo reads as no change, and an
// armed one-poll window covers clipboards that hand back a transformed
// copy of the write. An external change racing that window can still be
// credited as the echo; the window is a single boolean, not a queue.
type Monitor struct {
	interval  time.Duration
	clipboard Clipboard
	extractor *Extractor
	store     *history.Store
	metrics   *metrics.Recorder
	logger    *zap.Logger

	mu         sync.Mutex
	suppressed bool
	lastSeen   string
	running    bool
	cancel     context.CancelFunc
	done       chan struct{}
}

// MonitorConfig holds configuration for Monitor initialization. Store is
// required; everything else has a default. Metrics may be nil.
type MonitorConfig struct {
	Interval  time.Duration
	Clipboard Clipboard
	Extractor *Extractor
	Store     *history.Store
	Metrics   *metrics.Recorder
	Logger    *zap.Logger
}

// NewMonitor creates a monitor around the given history store.
func NewMonitor(config MonitorConfig) (*Monitor, error) {
	if config.Store == nil {
		return nil, errors.New("history store is required")
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	interval := config.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	clip := config.Clipboard
	if clip == nil {
		clip = NewSystemClipboard()
	}

	extractor := config.Extractor
	if extractor == nil {
		extractor = NewExtractor(logger)
	}

	return &Monitor{
		interval:  interval,
		clipboard: clip,
		extractor: extractor,
		store:     config.Store,
		metrics:   config.Metrics,
		logger:    logger,
	}, nil
}

// Start launches the polling loop. The last stored entry seeds the
// last-seen sample so a restart does not re-ingest the final capture of
// the previous session.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return errors.New("monitor already running")
	}
	m.running = true
	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})
	m.mu.Unlock()

	m.logger.Info("Starting clipboard monitor",
		zap.Duration("interval", m.interval))

	entries, err := m.store.LoadAll()
	if err != nil {
		m.logger.Error("Failed to load history for last-seen seed", zap.Error(err))
	} else if len(entries) > 0 {
		m.mu.Lock()
		m.lastSeen = entries[0].Content
		m.mu.Unlock()
	}

	go m.loop(ctx)
	return nil
}

// Stop cancels the polling loop and waits for it to exit. No in-flight
// ingest is interrupted; cancellation lands between ticks.
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	done := m.done
	m.running = false
	m.cancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	m.logger.Info("Clipboard monitor stopped")
}

// MarkSuppressed opens the echo window: the next clipboard sample,
// changed or not, is attributed to a self-initiated write and is not
// ingested. The window closes on that sample.
func (m *Monitor) MarkSuppressed() {
	m.mu.Lock()
	m.suppressed = true
	m.mu.Unlock()
}

// CopyToClipboard writes text to the system clipboard without the write
// coming back as a capture. The last-seen sample moves to the written
// text before the write, so the echo compares equal even when the text
// is already the newest sample; the echo window covers writes the
// clipboard hands back transformed. A failed write rolls both back.
func (m *Monitor) CopyToClipboard(text string) error {
	m.mu.Lock()
	prev := m.lastSeen
	m.suppressed = true
	m.lastSeen = text
	m.mu.Unlock()

	if err := m.clipboard.Write(text); err != nil {
		m.mu.Lock()
		m.suppressed = false
		m.lastSeen = prev
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *Monitor) loop(ctx context.Context) {
	defer close(m.done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.poll()
		}
	}
}

// poll samples the clipboard once. Outside the echo window the last-seen
// sample is updated on every observed change, whatever the ingest
// outcome. An open window closes on the first sample whether or not it
// differs, and that sample is never ingested; last-seen stays pinned at
// the written text, so a change that outlives the window comes back on
// the next poll, where a persisting echo falls to dedup and a raced
// external copy is captured.
func (m *Monitor) poll() {
	text, err := m.clipboard.Read()
	if err != nil {
		m.logger.Error("Failed to read clipboard", zap.Error(err))
		return
	}

	m.mu.Lock()
	changed := text != m.lastSeen
	echo := m.suppressed
	m.suppressed = false
	if changed && !echo {
		m.lastSeen = text
	}
	m.mu.Unlock()

	if echo {
		if changed {
			m.logger.Debug("Skipped self-triggered clipboard change")
		}
		m.metrics.IncSuppressed()
		return
	}
	if !changed {
		return
	}
	m.ingest(text)
}

// ingest runs one changed sample through the capture pipeline. The raw
// sample is stripped of surrounding whitespace at acquisition, so a
// whitespace-only clipboard never becomes an entry.
func (m *Monitor) ingest(raw string) {
	raw = strings.TrimSpace(raw)
	content, kind := m.extractor.Extract(raw)
	if content == "" {
		m.logger.Debug("Ignoring empty clipboard content")
		return
	}

	dup, err := m.store.IsDuplicate(content)
	if err != nil {
		m.logger.Error("Failed to check for duplicate", zap.Error(err))
		return
	}
	if dup {
		m.logger.Debug("Duplicate content ignored", zap.String("kind", string(kind)))
		m.metrics.IncDuplicates()
		return
	}

	entry := &types.Entry{
		Timestamp: time.Now(),
		Content:   content,
	}
	if err := m.store.Append(entry); err != nil {
		m.logger.Error("Failed to store capture", zap.Error(err))
		return
	}

	m.metrics.IncCaptured(kind)
	m.logger.Info("Clipboard content captured",
		zap.String("kind", string(kind)),
		zap.String("hash", entry.Hash))
}
