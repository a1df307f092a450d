// Package session holds the ephemeral state of one invoice reconciliation
// session. Sessions live only in process memory: abandoning one leaves no
// trace beyond whatever inventory records were actually created.
package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"printstock/internal/domain"
)

// Progress is the (completed, total) creation counter polled during commit.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Session is the working memory of one reconciliation flow. A session is
// created in the review phase (a failed parse never produces a session) and
// moves review -> creating -> done exactly once.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu           sync.Mutex
	phase        domain.SessionPhase
	fileName     string
	archiveKey   string
	invoice      *domain.ParsedInvoice
	snapshot     domain.InventorySnapshot
	decisions    map[int]*domain.Decision
	resolutions  []domain.Resolution
	progress     Progress
	createdCount int
	cancel       context.CancelFunc
}

// New creates a session in the review phase.
func New(invoice *domain.ParsedInvoice, snapshot domain.InventorySnapshot, decisions map[int]*domain.Decision, fileName, archiveKey string) *Session {
	return &Session{
		ID:         uuid.New(),
		CreatedAt:  time.Now().UTC(),
		phase:      domain.PhaseReview,
		fileName:   fileName,
		archiveKey: archiveKey,
		invoice:    invoice,
		snapshot:   snapshot,
		decisions:  decisions,
	}
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() domain.SessionPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// FileName returns the original upload file name.
func (s *Session) FileName() string {
	return s.fileName
}

// ArchiveKey returns the object storage key of the archived upload, if any.
func (s *Session) ArchiveKey() string {
	return s.archiveKey
}

// Invoice returns the parsed invoice. It is immutable after session creation.
func (s *Session) Invoice() *domain.ParsedInvoice {
	return s.invoice
}

// Snapshot returns the inventory snapshot loaded at session start.
func (s *Session) Snapshot() domain.InventorySnapshot {
	return s.snapshot
}

// Decisions returns copies of all decisions ordered by item index.
func (s *Session) Decisions() []domain.Decision {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Decision, 0, len(s.decisions))
	for _, d := range s.decisions {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemIndex < out[j].ItemIndex })
	return out
}

// UpdateDecision applies a patch to the decision for the given item index.
// Only valid in the review phase. Returns a copy of the updated decision.
func (s *Session) UpdateDecision(index int, patch domain.DecisionPatch) (*domain.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != domain.PhaseReview {
		return nil, domain.ErrSessionPhase
	}
	d, ok := s.decisions[index]
	if !ok {
		return nil, domain.ErrDecisionNotFound
	}
	d.Apply(patch)
	cp := *d
	return &cp, nil
}

// BeginCommit transitions review -> creating, fixes the progress total to the
// number of create decisions, and returns a commit context derived from
// parent. Abandoning the session cancels it. A second call, or a call on a
// session not in review, fails with ErrSessionPhase.
func (s *Session) BeginCommit(parent context.Context) (context.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != domain.PhaseReview {
		return nil, domain.ErrSessionPhase
	}
	total := 0
	for _, d := range s.decisions {
		if d.Action == domain.ActionCreate {
			total++
		}
	}
	s.phase = domain.PhaseCreating
	s.progress = Progress{Completed: 0, Total: total}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	return ctx, nil
}

// RecordResolution appends one resolution; countsCreation marks an attempted
// creation call and advances the progress counter whether or not it succeeded.
func (s *Session) RecordResolution(res domain.Resolution, countsCreation bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolutions = append(s.resolutions, res)
	if countsCreation {
		s.progress.Completed++
	}
	if res.Created {
		s.createdCount++
	}
}

// FinishCommit transitions creating -> done.
func (s *Session) FinishCommit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = domain.PhaseDone
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Progress returns the creation counter and current phase.
func (s *Session) Progress() (Progress, domain.SessionPhase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress, s.phase
}

// CreatedCount returns the number of successfully created inventory records.
func (s *Session) CreatedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createdCount
}

// Resolutions returns the resolution list in original invoice order. Only
// valid once the session is done.
func (s *Session) Resolutions() ([]domain.Resolution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != domain.PhaseDone {
		return nil, domain.ErrNotReconciled
	}
	out := make([]domain.Resolution, len(s.resolutions))
	copy(out, s.resolutions)
	return out, nil
}

// Cancel aborts an in-flight commit, if any.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
