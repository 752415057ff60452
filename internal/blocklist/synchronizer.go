package blocklist

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"walletwatch/internal/api"
	"walletwatch/internal/telemetry"
)

// Validation and synchronization errors. Validation errors are local and
// never reach the network.
var (
	ErrEmptyAddress     = errors.New("address is required")
	ErrInvalidAddress   = errors.New("address must be 26-64 alphanumeric characters")
	ErrDuplicateAddress = errors.New("address is already on the blocklist")
	ErrAddFailed        = errors.New("failed to add address")
	ErrRemoveFailed     = errors.New("failed to remove address")
)

// The one character class covers hex and base58-style identifiers.
var (
	addressPattern = regexp.MustCompile(`^[0-9a-zA-Z]{26,64}$`)
	numericPattern = regexp.MustCompile(`^[0-9]+$`)
)

// Synchronizer keeps an ordered local cache of blocked addresses (newest
// first) consistent with the remote store. The server is authoritative: the
// cache is rebuilt wholesale on Load and mutated incrementally on Add/Remove.
type Synchronizer struct {
	gateway *api.Client

	// RollbackOnError keeps a locally cached entry whose server-side delete
	// failed. The default (false) preserves optimistic removal: the entry
	// leaves the cache regardless of the network outcome.
	RollbackOnError bool

	mu       sync.Mutex
	entries  []Entry
	inflight map[string]struct{}
}

// NewSynchronizer creates a synchronizer with an empty cache.
func NewSynchronizer(gateway *api.Client) *Synchronizer {
	return &Synchronizer{
		gateway:  gateway,
		inflight: make(map[string]struct{}),
	}
}

// Entries returns a snapshot of the cache, newest first.
func (s *Synchronizer) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]Entry, len(s.entries))
	copy(snapshot, s.entries)
	return snapshot
}

// Load fetches the full remote list and replaces the cache. Failures leave
// the cache at its prior value and are only logged; a load whose context was
// canceled while in flight never mutates the cache.
func (s *Synchronizer) Load(ctx context.Context) {
	body, err := s.gateway.Get(ctx, "/v1/blocklist")
	if err != nil {
		telemetry.LogError("failed to load blocklist", err)
		return
	}
	if ctx.Err() != nil {
		// The consumer went away while the response was in flight.
		return
	}

	entries, err := Normalize(body)
	if err != nil {
		telemetry.LogError("failed to parse blocklist", err)
		return
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	telemetry.BlocklistSize.Set(float64(len(entries)))
}

// Add validates raw locally, creates the entry remotely, and prepends the
// created record to the cache. Validation failures are returned before any
// network call; a duplicate of an entry still being created is rejected too.
func (s *Synchronizer) Add(ctx context.Context, raw string) error {
	addr := strings.TrimSpace(raw)
	if addr == "" {
		return ErrEmptyAddress
	}
	if !addressPattern.MatchString(addr) {
		return ErrInvalidAddress
	}

	s.mu.Lock()
	if s.containsLocked(addr) {
		s.mu.Unlock()
		return ErrDuplicateAddress
	}
	if _, busy := s.inflight[addr]; busy {
		s.mu.Unlock()
		return ErrDuplicateAddress
	}
	s.inflight[addr] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inflight, addr)
		s.mu.Unlock()
	}()

	body, err := s.gateway.Post(ctx, "/v1/blocklist", map[string]string{"address": addr})
	if err != nil {
		telemetry.LogError("failed to add address", err, "address", addr)
		return ErrAddFailed
	}

	created := NormalizeCreated(body, addr)

	s.mu.Lock()
	s.entries = append([]Entry{created}, s.entries...)
	size := len(s.entries)
	s.mu.Unlock()
	telemetry.BlocklistSize.Set(float64(size))
	return nil
}

// Remove deletes entry on the server and drops it from the cache. By default
// the local removal is optimistic: server failures are logged but the entry
// leaves the cache anyway. With RollbackOnError set, a server failure keeps
// the entry and returns ErrRemoveFailed.
func (s *Synchronizer) Remove(ctx context.Context, entry Entry) error {
	if err := s.deleteRemote(ctx, entry); err != nil {
		telemetry.LogError("failed to delete from server", err, "address", entry.Address)
		if s.RollbackOnError {
			return ErrRemoveFailed
		}
	}

	s.removeLocal(entry)
	return nil
}

// deleteRemote tries the documented delete strategies in order, first success
// wins: by identifier path, by numeric-looking address path, or by address
// path with a body-delete fallback.
func (s *Synchronizer) deleteRemote(ctx context.Context, entry Entry) error {
	if entry.ID != nil {
		_, err := s.gateway.Delete(ctx, "/v1/blocklist/"+url.PathEscape(*entry.ID), nil)
		return err
	}

	if numericPattern.MatchString(entry.Address) {
		_, err := s.gateway.Delete(ctx, "/v1/blocklist/"+url.PathEscape(entry.Address), nil)
		return err
	}

	if entry.Address != "" {
		if _, err := s.gateway.Delete(ctx, "/v1/blocklist/"+url.PathEscape(entry.Address), nil); err == nil {
			return nil
		}
		_, err := s.gateway.Delete(ctx, "/v1/blocklist", map[string]string{"address": entry.Address})
		return err
	}

	_, err := s.gateway.Delete(ctx, "/v1/blocklist", map[string]string{"address": entry.Address})
	return err
}

// removeLocal drops entry from the cache, matching by identifier when the
// caller supplied one and by address otherwise.
func (s *Synchronizer) removeLocal(entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	for _, existing := range s.entries {
		if entry.ID != nil {
			if existing.ID != nil && *existing.ID == *entry.ID {
				continue
			}
		} else if existing.Address == entry.Address {
			continue
		}
		kept = append(kept, existing)
	}
	s.entries = kept
	telemetry.BlocklistSize.Set(float64(len(kept)))
}

func (s *Synchronizer) containsLocked(addr string) bool {
	for _, existing := range s.entries {
		if existing.Address == addr {
			return true
		}
	}
	return false
}
