package engine

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// FeedbackEntry is one recorded feedback signal. Entries live in process
// memory only and are lost on restart; they never influence scoring unless
// the caller folds them back into the experience history it resupplies.
type FeedbackEntry struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ExperienceID string    `json:"experience_id"`
	Tag          string    `json:"tag"`
	RecordedAt   time.Time `json:"recorded_at"`
}

// FeedbackLog is a volatile, mutex-guarded feedback store keyed by caller
// identity. Multiple requests for the same user may race; the lock keeps
// per-user append order consistent.
type FeedbackLog struct {
	mu         sync.Mutex
	entries    map[string][]FeedbackEntry
	maxPerUser int
	maxAge     time.Duration
	now        func() time.Time
}

// NewFeedbackLog creates a log that keeps at most maxPerUser entries per
// user and drops entries older than maxAge on Prune. Non-positive limits
// disable the respective bound.
func NewFeedbackLog(maxPerUser int, maxAge time.Duration) *FeedbackLog {
	return &FeedbackLog{
		entries:    make(map[string][]FeedbackEntry),
		maxPerUser: maxPerUser,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Record appends a feedback entry for the user and returns it with a
// freshly minted ID. Unknown tags are accepted as-is.
func (l *FeedbackLog) Record(userID, experienceID, tag string) FeedbackEntry {
	entry := FeedbackEntry{
		ID:           ulid.Make().String(),
		UserID:       userID,
		ExperienceID: experienceID,
		Tag:          tag,
		RecordedAt:   l.now().UTC(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	list := append(l.entries[userID], entry)
	if l.maxPerUser > 0 && len(list) > l.maxPerUser {
		list = list[len(list)-l.maxPerUser:]
	}
	l.entries[userID] = list

	return entry
}

// Entries returns a copy of the user's feedback history, oldest first.
func (l *FeedbackLog) Entries(userID string) []FeedbackEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	list := l.entries[userID]
	out := make([]FeedbackEntry, len(list))
	copy(out, list)
	return out
}

// Len returns the total number of retained entries across all users.
func (l *FeedbackLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for _, list := range l.entries {
		n += len(list)
	}
	return n
}

// Prune drops entries older than maxAge and returns how many were removed.
// Users left with no entries are deleted from the map.
func (l *FeedbackLog) Prune() int {
	if l.maxAge <= 0 {
		return 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().UTC().Add(-l.maxAge)
	removed := 0
	for userID, list := range l.entries {
		kept := list[:0]
		for _, entry := range list {
			if entry.RecordedAt.Before(cutoff) {
				removed++
				continue
			}
			kept = append(kept, entry)
		}
		if len(kept) == 0 {
			delete(l.entries, userID)
			continue
		}
		l.entries[userID] = kept
	}
	return removed
}
