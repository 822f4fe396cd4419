package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/clipstash/clipstash/internal/types"
	"github.com/clipstash/clipstash/pkg/compression"
)

const (
	defaultMaxEntries = 1000
)

// ErrNotFound is returned by mutating operations when no stored entry
// matches any of the given identities.
var ErrNotFound = errors.New("no matching entries")

// TagMode selects how UpdateTags combines new tags with existing ones.
type TagMode string

const (
	TagModeAdd     TagMode = "add"     // union, case-insensitive
	TagModeReplace TagMode = "replace" // discard old tags
)

// Store is the append-only history log. One file, one mutex: every
// operation takes the lock once around its whole read-or-write pass, and
// every mutation is a full read-transform-write under that single
// acquisition. Rewrites go through a temp file renamed over the log, so a
// crash mid-write never truncates it. The lock guards intra-process races
// only; the store assumes this process owns the file.
type Store struct {
	path          string
	maxEntries    int
	warnThreshold int
	logger        *zap.Logger

	mu     sync.Mutex
	warned bool
}

// StoreConfig holds configuration for Store initialization.
type StoreConfig struct {
	Path          string
	MaxEntries    int
	WarnThreshold int
	Logger        *zap.Logger
}

// record pairs a raw line with its decoded entry; entry is nil for lines
// that failed to decode. Rewrites emit raw for untouched entries so a
// mutation never reformats lines it did not change.
type record struct {
	raw   string
	entry *types.Entry
}

// NewStore opens (creating if absent) the history log at config.Path.
func NewStore(config StoreConfig) (*Store, error) {
	if config.Path == "" {
		return nil, errors.New("history file path is required")
	}

	maxEntries := config.MaxEntries
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}

	warnThreshold := config.WarnThreshold
	if warnThreshold <= 0 || warnThreshold > maxEntries {
		warnThreshold = maxEntries * 9 / 10
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if dir := filepath.Dir(config.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	if _, err := os.Stat(config.Path); os.IsNotExist(err) {
		f, err := os.OpenFile(config.Path, os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return nil, fmt.Errorf("failed to create history file: %w", err)
		}
		if err := f.Close(); err != nil {
			return nil, fmt.Errorf("failed to create history file: %w", err)
		}
	}

	return &Store{
		path:          config.Path,
		maxEntries:    maxEntries,
		warnThreshold: warnThreshold,
		logger:        logger,
	}, nil
}

// Path returns the location of the log file.
func (s *Store) Path() string {
	return s.path
}

// Append sanitizes and writes one entry to the end of the log, then
// enforces capacity. A zero timestamp is stamped with the current time.
// Existing content is never rewritten by an append.
func (s *Store) Append(entry *types.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	entry.Content = Sanitize(entry.Content)
	entry.Tags = MergeTags(entry.Tags, nil)
	entry.Hash = EntryHash(entry)

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	if _, err := f.WriteString(Encode(entry)); err != nil {
		f.Close()
		return fmt.Errorf("failed to append entry: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close history file: %w", err)
	}

	s.logger.Debug("Entry appended",
		zap.String("hash", entry.Hash),
		zap.Int("content_length", len(entry.Content)),
		zap.Int("tags", len(entry.Tags)))

	return s.enforceCapacityLocked()
}

// LoadAll returns every valid entry, newest first. Malformed lines are
// skipped and logged; a plain load never removes them from disk.
func (s *Store) LoadAll() ([]*types.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readLocked()
	if err != nil {
		return nil, err
	}

	entries := make([]*types.Entry, 0, len(records))
	for _, rec := range records {
		if rec.entry != nil {
			entries = append(entries, rec.entry)
		}
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// IsDuplicate reports whether the candidate content, after sanitization,
// exactly matches the content of any stored entry. The scan is linear;
// the capacity cap keeps it bounded.
func (s *Store) IsDuplicate(content string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := Sanitize(content)
	records, err := s.readLocked()
	if err != nil {
		return false, err
	}
	for _, rec := range records {
		if rec.entry != nil && rec.entry.Content == candidate {
			return true, nil
		}
	}
	return false, nil
}

// UpdateTags applies tags to every entry matching one of the identities.
// Mode add merges case-insensitively preserving first-seen order; mode
// replace discards the old tags. Each matching entry is processed
// independently; the count of updated entries is returned. When nothing
// matches the file is left untouched and ErrNotFound is returned.
func (s *Store) UpdateTags(ids []types.Identity, tags []string, mode TagMode) (int, error) {
	if mode != TagModeAdd && mode != TagModeReplace {
		return 0, fmt.Errorf("invalid tag mode %q", mode)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readLocked()
	if err != nil {
		return 0, err
	}

	wanted := identitySet(ids)
	updated := 0
	lines := make([]string, 0, len(records))
	for _, rec := range records {
		if rec.entry == nil {
			s.logger.Warn("Dropping malformed line on rewrite")
			continue
		}
		if !wanted[rec.entry.Identity()] {
			lines = append(lines, rec.raw)
			continue
		}
		if mode == TagModeReplace {
			rec.entry.Tags = MergeTags(tags, nil)
		} else {
			rec.entry.Tags = MergeTags(rec.entry.Tags, tags)
		}
		lines = append(lines, strings.TrimSuffix(Encode(rec.entry), "\n"))
		updated++
	}

	if updated == 0 {
		return 0, ErrNotFound
	}
	if err := s.writeLocked(lines); err != nil {
		return 0, err
	}
	s.rearmWarningLocked(len(lines))

	s.logger.Info("Tags updated",
		zap.Int("entries", updated),
		zap.String("mode", string(mode)))
	return updated, nil
}

// Delete removes every entry whose identity is in ids, leaving the
// remaining lines in their original relative order. Returns the number
// of entries removed, or ErrNotFound when nothing matched.
func (s *Store) Delete(ids []types.Identity) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readLocked()
	if err != nil {
		return 0, err
	}

	wanted := identitySet(ids)
	removed := 0
	lines := make([]string, 0, len(records))
	for _, rec := range records {
		if rec.entry == nil {
			s.logger.Warn("Dropping malformed line on rewrite")
			continue
		}
		if wanted[rec.entry.Identity()] {
			removed++
			continue
		}
		lines = append(lines, rec.raw)
	}

	if removed == 0 {
		return 0, ErrNotFound
	}
	if err := s.writeLocked(lines); err != nil {
		return 0, err
	}
	s.rearmWarningLocked(len(lines))

	s.logger.Info("Entries deleted", zap.Int("entries", removed))
	return removed, nil
}

// Clear truncates the log to zero bytes and re-arms the capacity
// warning. The file itself is kept.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.path, nil, 0600); err != nil {
		return fmt.Errorf("failed to clear history file: %w", err)
	}
	s.warned = false
	s.logger.Info("History cleared")
	return nil
}

// Export writes the selected entries (all valid entries when ids is
// empty) to dst in the on-disk line format, oldest first. With compress
// the output is gzip-wrapped. Returns the number of entries written.
func (s *Store) Export(dst string, ids []types.Identity, compress bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readLocked()
	if err != nil {
		return 0, err
	}

	wanted := identitySet(ids)
	count := 0
	var sb strings.Builder
	for _, rec := range records {
		if rec.entry == nil {
			continue
		}
		if len(ids) > 0 && !wanted[rec.entry.Identity()] {
			continue
		}
		sb.WriteString(Encode(rec.entry))
		count++
	}
	if len(ids) > 0 && count == 0 {
		return 0, ErrNotFound
	}

	data := []byte(sb.String())
	if compress {
		data, err = compression.Compress(data)
		if err != nil {
			return 0, fmt.Errorf("failed to compress export: %w", err)
		}
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write export file: %w", err)
	}

	s.logger.Info("History exported",
		zap.String("destination", dst),
		zap.Int("entries", count),
		zap.Bool("compressed", compress))
	return count, nil
}

// EnforceCapacity applies the warn-then-trim policy immediately.
// Append already runs it after every write.
func (s *Store) EnforceCapacity() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enforceCapacityLocked()
}

// ResetWarning re-arms the capacity warning without waiting for the
// count to drop below the threshold. Called when the surrounding view
// is explicitly restored.
func (s *Store) ResetWarning() {
	s.mu.Lock()
	s.warned = false
	s.mu.Unlock()
}

// Count returns the number of non-blank lines in the log, malformed
// lines included. This is the count capacity enforcement sees.
func (s *Store) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readLocked()
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// Stats summarizes the current log contents.
type Stats struct {
	Total     int    `json:"total"`
	Tagged    int    `json:"tagged"`
	Malformed int    `json:"malformed,omitempty"`
	Oldest    string `json:"oldest,omitempty"`
	Newest    string `json:"newest,omitempty"`
}

// Stats scans the log and reports entry counts and the time span covered.
func (s *Store) Stats() (*Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readLocked()
	if err != nil {
		return nil, err
	}

	stats := &Stats{}
	for _, rec := range records {
		if rec.entry == nil {
			stats.Malformed++
			continue
		}
		if stats.Total == 0 {
			stats.Oldest = rec.entry.FormattedTime()
		}
		stats.Newest = rec.entry.FormattedTime()
		stats.Total++
		if len(rec.entry.Tags) > 0 {
			stats.Tagged++
		}
	}
	return stats, nil
}

// ResolvePrefixes maps hash prefixes to entry identities against an
// already loaded entry list. A prefix matching two different hashes is
// ambiguous; a prefix matching nothing is an error. Entries that share
// one hash (same timestamp and content) resolve to one identity.
func ResolvePrefixes(entries []*types.Entry, prefixes []string) ([]types.Identity, error) {
	var ids []types.Identity
	for _, prefix := range prefixes {
		prefix = strings.ToLower(strings.TrimSpace(prefix))
		if prefix == "" {
			continue
		}
		var matched *types.Entry
		for _, entry := range entries {
			if !strings.HasPrefix(entry.Hash, prefix) {
				continue
			}
			if matched != nil && matched.Hash != entry.Hash {
				return nil, fmt.Errorf("hash prefix %q is ambiguous", prefix)
			}
			if matched == nil {
				matched = entry
				ids = append(ids, entry.Identity())
			}
		}
		if matched == nil {
			return nil, fmt.Errorf("no entry matches hash prefix %q", prefix)
		}
	}
	return ids, nil
}

func (s *Store) enforceCapacityLocked() error {
	records, err := s.readLocked()
	if err != nil {
		return err
	}
	count := len(records)

	s.rearmWarningLocked(count)
	if count >= s.warnThreshold && !s.warned {
		s.warned = true
		s.logger.Warn("History approaching capacity",
			zap.Int("count", count),
			zap.Int("max", s.maxEntries))
	}

	if count > s.maxEntries {
		kept := make([]record, 0, count)
		for _, rec := range records {
			if rec.entry == nil {
				s.logger.Warn("Dropping malformed line on rewrite")
				continue
			}
			kept = append(kept, rec)
		}
		if len(kept) > s.maxEntries {
			kept = kept[len(kept)-s.maxEntries:]
		}
		lines := make([]string, 0, len(kept))
		for _, rec := range kept {
			lines = append(lines, rec.raw)
		}
		if err := s.writeLocked(lines); err != nil {
			return err
		}
		s.logger.Info("History trimmed to capacity",
			zap.Int("dropped", count-len(lines)),
			zap.Int("kept", len(lines)))
	}
	return nil
}

// rearmWarningLocked re-arms the capacity warning once the line count
// falls below the threshold, so the next approach warns again.
func (s *Store) rearmWarningLocked(count int) {
	if count < s.warnThreshold {
		s.warned = false
	}
}

// readLocked reads and decodes the whole log, oldest first. Blank lines
// are ignored; undecodable lines come back with a nil entry. Missing
// file reads as an empty log.
func (s *Store) readLocked() ([]record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	var records []record
	for i, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, err := Decode(line)
		if err != nil {
			s.logger.Warn("Skipping malformed history line",
				zap.Int("line", i+1),
				zap.Error(err))
			records = append(records, record{raw: line})
			continue
		}
		records = append(records, record{raw: line, entry: entry})
	}
	return records, nil
}

// writeLocked replaces the log with the given lines via a temp file in
// the same directory renamed over the original.
func (s *Store) writeLocked(lines []string) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".history-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	for _, line := range lines {
		if _, err := tmp.WriteString(line + "\n"); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write temp file: %w", err)
		}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace history file: %w", err)
	}
	return nil
}

func identitySet(ids []types.Identity) map[types.Identity]bool {
	set := make(map[types.Identity]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
