// Package roster holds the participant collection with email de-duplication.
package roster

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/okian/teamup/internal/domain/model"
	"github.com/okian/teamup/pkg/metrics"
)

// Roster is an ordered participant collection keyed by email.
type Roster interface {
	// Add appends p unless its email (case-insensitive) or id is already present.
	Add(ctx context.Context, p *model.Participant) error

	// SeenEmail reports whether a participant with this email is held.
	SeenEmail(email string) bool

	FindByID(id string) (*model.Participant, bool)

	// All returns the participants in insertion order. The slice is a copy.
	All() []*model.Participant

	Clear()
	Size() int
}

// inMemoryRoster keeps insertion order in a slice and indexes it by email and id.
type inMemoryRoster struct {
	mu      sync.RWMutex
	list    []*model.Participant
	byEmail map[string]*model.Participant
	byID    map[string]*model.Participant
	maxSize int // 0 or negative = unbounded
}

// NewInMemoryRoster creates an empty roster.
func NewInMemoryRoster(opts ...Option) Roster {
	r := &inMemoryRoster{}

	for _, opt := range opts {
		opt(r)
	}

	r.byEmail = make(map[string]*model.Participant)
	r.byID = make(map[string]*model.Participant)

	return r
}

// EmailKey normalizes an email for comparison.
func EmailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *inMemoryRoster) Add(ctx context.Context, p *model.Participant) error {
	if p == nil {
		return ErrNilParticipant
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := EmailKey(p.Email)
	if _, exists := r.byEmail[key]; exists {
		metrics.RecordRosterDuplicate()
		return fmt.Errorf("%w: %s", ErrDuplicateEmail, p.Email)
	}
	if _, exists := r.byID[p.ID]; exists {
		metrics.RecordRosterDuplicate()
		return fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
	}
	if r.maxSize > 0 && len(r.list) >= r.maxSize {
		return fmt.Errorf("%w: max %d", ErrRosterFull, r.maxSize)
	}

	r.list = append(r.list, p)
	r.byEmail[key] = p
	r.byID[p.ID] = p
	metrics.UpdateRosterSize(len(r.list))
	return nil
}

func (r *inMemoryRoster) SeenEmail(email string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byEmail[EmailKey(email)]
	return ok
}

func (r *inMemoryRoster) FindByID(id string) (*model.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	return p, ok
}

func (r *inMemoryRoster) All() []*model.Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Participant, len(r.list))
	copy(out, r.list)
	return out
}

func (r *inMemoryRoster) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.list = nil
	r.byEmail = make(map[string]*model.Participant)
	r.byID = make(map[string]*model.Participant)
	metrics.UpdateRosterSize(0)
}

func (r *inMemoryRoster) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.list)
}

// MergeByEmail concatenates the lists keeping the first participant seen for each email.
func MergeByEmail(lists ...[]*model.Participant) []*model.Participant {
	seen := make(map[string]struct{})
	var out []*model.Participant
	for _, list := range lists {
		for _, p := range list {
			if p == nil {
				continue
			}
			key := EmailKey(p.Email)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}
