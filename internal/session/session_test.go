package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printstock/internal/domain"
	"printstock/internal/session"
)

func newTestSession(decisions map[int]*domain.Decision) *session.Session {
	invoice := &domain.ParsedInvoice{Items: []domain.ParsedItem{{Description: "Black PLA"}}}
	return session.New(invoice, domain.InventorySnapshot{}, decisions, "invoice.pdf", "")
}

func createDecision(index int) *domain.Decision {
	return &domain.Decision{
		ItemIndex: index,
		Action:    domain.ActionCreate,
		Category:  domain.ItemKindMaterial,
	}
}

func TestSession_StartsInReview(t *testing.T) {
	s := newTestSession(nil)
	assert.Equal(t, domain.PhaseReview, s.Phase())
	assert.Equal(t, "invoice.pdf", s.FileName())
}

func TestSession_UpdateDecision(t *testing.T) {
	s := newTestSession(map[int]*domain.Decision{0: createDecision(0)})

	link := domain.ActionLink
	d, err := s.UpdateDecision(0, domain.DecisionPatch{Action: &link})
	require.NoError(t, err)
	assert.Equal(t, domain.ActionLink, d.Action)

	_, err = s.UpdateDecision(7, domain.DecisionPatch{})
	assert.ErrorIs(t, err, domain.ErrDecisionNotFound)
}

func TestSession_UpdateDecisionOnlyInReview(t *testing.T) {
	s := newTestSession(map[int]*domain.Decision{0: createDecision(0)})
	_, err := s.BeginCommit(context.Background())
	require.NoError(t, err)

	_, err = s.UpdateDecision(0, domain.DecisionPatch{})
	assert.ErrorIs(t, err, domain.ErrSessionPhase)
}

func TestSession_BeginCommitFixesTotal(t *testing.T) {
	linked := createDecision(1)
	linked.Action = domain.ActionLink
	s := newTestSession(map[int]*domain.Decision{
		0: createDecision(0),
		1: linked,
		2: createDecision(2),
	})

	_, err := s.BeginCommit(context.Background())
	require.NoError(t, err)

	progress, phase := s.Progress()
	assert.Equal(t, domain.PhaseCreating, phase)
	assert.Equal(t, session.Progress{Completed: 0, Total: 2}, progress)

	// A commit cannot be started twice.
	_, err = s.BeginCommit(context.Background())
	assert.ErrorIs(t, err, domain.ErrSessionPhase)
}

func TestSession_RecordResolutionAdvancesProgress(t *testing.T) {
	s := newTestSession(map[int]*domain.Decision{0: createDecision(0)})
	_, err := s.BeginCommit(context.Background())
	require.NoError(t, err)

	// Matched and linked items never move the creation counter.
	s.RecordResolution(domain.Resolution{ItemIndex: 0}, false)
	progress, _ := s.Progress()
	assert.Equal(t, 0, progress.Completed)

	// Failed creation attempts still count as completed.
	s.RecordResolution(domain.Resolution{ItemIndex: 1, Error: "boom"}, true)
	s.RecordResolution(domain.Resolution{ItemIndex: 2, Created: true}, true)
	progress, _ = s.Progress()
	assert.Equal(t, 2, progress.Completed)
	assert.Equal(t, 1, s.CreatedCount())
}

func TestSession_ResolutionsOnlyWhenDone(t *testing.T) {
	s := newTestSession(map[int]*domain.Decision{0: createDecision(0)})

	_, err := s.Resolutions()
	assert.ErrorIs(t, err, domain.ErrNotReconciled)

	_, err = s.BeginCommit(context.Background())
	require.NoError(t, err)
	s.RecordResolution(domain.Resolution{ItemIndex: 0, Created: true}, true)
	s.FinishCommit()

	assert.Equal(t, domain.PhaseDone, s.Phase())
	resolutions, err := s.Resolutions()
	require.NoError(t, err)
	require.Len(t, resolutions, 1)
	assert.Equal(t, 0, resolutions[0].ItemIndex)
}

func TestSession_CancelAbortsCommitContext(t *testing.T) {
	s := newTestSession(map[int]*domain.Decision{0: createDecision(0)})
	ctx, err := s.BeginCommit(context.Background())
	require.NoError(t, err)
	require.NoError(t, ctx.Err())

	s.Cancel()
	assert.Error(t, ctx.Err())
}

func TestStore_PutGetDelete(t *testing.T) {
	store := session.NewStore()
	s := newTestSession(nil)

	store.Put(s)
	assert.Equal(t, 1, store.Len())

	got, err := store.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, store.Delete(s.ID))
	assert.Equal(t, 0, store.Len())

	_, err = store.Get(s.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, store.Delete(s.ID), domain.ErrSessionNotFound)
}

func TestStore_DeleteCancelsInFlightCommit(t *testing.T) {
	store := session.NewStore()
	s := newTestSession(map[int]*domain.Decision{0: createDecision(0)})
	store.Put(s)

	ctx, err := s.BeginCommit(context.Background())
	require.NoError(t, err)

	require.NoError(t, store.Delete(s.ID))
	assert.Error(t, ctx.Err())
}
