package editflow

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DJRivera25/blogctl/internal/errors"
)

// harness tracks every side effect a machine can trigger
type harness struct {
	committed Draft

	saves     int
	saveErr   error
	lastDraft Draft

	refetches  int
	refetchErr error

	deletes   int
	deleteErr error

	confirms   int
	confirmAns bool
	confirmErr error

	canEdit   bool
	canDelete bool
}

func (h *harness) machine() *Machine {
	return New(Config{
		Snapshot:  func() Draft { return h.committed },
		CanEdit:   func() bool { return h.canEdit },
		CanDelete: func() bool { return h.canDelete },
		Save: func(ctx context.Context, draft Draft) error {
			h.saves++
			h.lastDraft = draft
			return h.saveErr
		},
		Refetch: func(ctx context.Context) error {
			h.refetches++
			return h.refetchErr
		},
		Delete: func(ctx context.Context) error {
			h.deletes++
			return h.deleteErr
		},
		Confirm: func(ctx context.Context, title, message string) (bool, error) {
			h.confirms++
			return h.confirmAns, h.confirmErr
		},
		ConfirmTitle:   "Delete this?",
		ConfirmMessage: "You won't be able to undo this action.",
	})
}

func newHarness() *harness {
	return &harness{
		committed: Draft{"title": "Post", "content": "Body"},
		canEdit:   true,
		canDelete: true,
	}
}

func TestBeginEditCopiesSnapshot(t *testing.T) {
	h := newHarness()
	m := h.machine()

	require.NoError(t, m.BeginEdit())
	assert.Equal(t, StateEditing, m.State())
	assert.Equal(t, Draft{"title": "Post", "content": "Body"}, m.Draft())

	// Draft edits never leak into the committed entity.
	require.NoError(t, m.ChangeDraft("title", "Changed"))
	assert.Equal(t, "Post", h.committed["title"])
	assert.Equal(t, "Changed", m.Draft()["title"])
}

func TestBeginEditUnreachableWithoutPermission(t *testing.T) {
	h := newHarness()
	h.canEdit = false
	m := h.machine()

	err := m.BeginEdit()
	require.Error(t, err)
	assert.True(t, errors.IsForbidden(err))
	assert.Equal(t, StateViewing, m.State())
}

func TestBeginEditOnlyFromViewing(t *testing.T) {
	h := newHarness()
	m := h.machine()
	require.NoError(t, m.BeginEdit())

	err := m.BeginEdit()
	require.Error(t, err)
	assert.Equal(t, StateEditing, m.State())
}

func TestChangeDraftRequiresEditing(t *testing.T) {
	m := newHarness().machine()
	require.Error(t, m.ChangeDraft("title", "x"))
}

func TestCancelDiscardsDraftWithoutNetwork(t *testing.T) {
	h := newHarness()
	m := h.machine()
	require.NoError(t, m.BeginEdit())
	require.NoError(t, m.ChangeDraft("title", "Changed"))

	require.NoError(t, m.Cancel())

	assert.Equal(t, StateViewing, m.State())
	assert.Nil(t, m.Draft())
	assert.Equal(t, 0, h.saves)
	assert.Equal(t, 0, h.refetches)
}

func TestSubmitSavesThenRefetches(t *testing.T) {
	h := newHarness()
	m := h.machine()
	require.NoError(t, m.BeginEdit())
	require.NoError(t, m.ChangeDraft("title", "Changed"))

	require.NoError(t, m.Submit(context.Background()))

	assert.Equal(t, StateViewing, m.State())
	assert.Equal(t, 1, h.saves)
	assert.Equal(t, "Changed", h.lastDraft["title"])
	// The committed entity comes from a fresh read, never the local draft.
	assert.Equal(t, 1, h.refetches)
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	h := newHarness()
	h.saveErr = errors.NewNetworkError(fmt.Errorf("connection reset"))
	m := h.machine()
	require.NoError(t, m.BeginEdit())
	require.NoError(t, m.ChangeDraft("title", "Changed"))

	err := m.Submit(context.Background())
	require.Error(t, err)

	// Still editing, draft intact, no refetch: the user can retry
	// without re-entering input.
	assert.Equal(t, StateEditing, m.State())
	assert.Equal(t, "Changed", m.Draft()["title"])
	assert.Equal(t, 0, h.refetches)

	// A retry after the failure goes through.
	h.saveErr = nil
	require.NoError(t, m.Submit(context.Background()))
	assert.Equal(t, StateViewing, m.State())
	assert.Equal(t, 2, h.saves)
}

func TestSubmitRequiresEditing(t *testing.T) {
	h := newHarness()
	m := h.machine()

	err := m.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, h.saves)
}

func TestRequestDeleteConfirmedDeletes(t *testing.T) {
	h := newHarness()
	h.confirmAns = true
	m := h.machine()

	require.NoError(t, m.RequestDelete(context.Background()))

	assert.Equal(t, StateRemoved, m.State())
	assert.Equal(t, 1, h.confirms)
	assert.Equal(t, 1, h.deletes)
}

func TestRequestDeleteDeniedDoesNothing(t *testing.T) {
	h := newHarness()
	h.confirmAns = false
	m := h.machine()

	require.NoError(t, m.RequestDelete(context.Background()))

	assert.Equal(t, StateViewing, m.State())
	assert.Equal(t, 1, h.confirms)
	assert.Equal(t, 0, h.deletes)
}

func TestRequestDeleteWithoutConfirmHookIsDenied(t *testing.T) {
	h := newHarness()
	m := New(Config{
		Snapshot:  func() Draft { return h.committed },
		CanEdit:   func() bool { return true },
		CanDelete: func() bool { return true },
		Save:      func(ctx context.Context, draft Draft) error { return nil },
		Delete: func(ctx context.Context) error {
			h.deletes++
			return nil
		},
	})

	require.NoError(t, m.RequestDelete(context.Background()))

	assert.Equal(t, StateViewing, m.State())
	assert.Equal(t, 0, h.deletes)

	// The machine stays usable afterwards.
	require.NoError(t, m.BeginEdit())
	assert.Equal(t, StateEditing, m.State())
}

func TestRequestDeleteUnreachableWithoutPermission(t *testing.T) {
	h := newHarness()
	h.canDelete = false
	m := h.machine()

	err := m.RequestDelete(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsForbidden(err))
	assert.Equal(t, 0, h.confirms)
	assert.Equal(t, 0, h.deletes)
}

func TestRequestDeleteFailureStaysViewing(t *testing.T) {
	h := newHarness()
	h.confirmAns = true
	h.deleteErr = errors.NewNetworkError(fmt.Errorf("boom"))
	m := h.machine()

	err := m.RequestDelete(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateViewing, m.State())
}

func TestRequestDeleteNotOfferedWhileEditing(t *testing.T) {
	h := newHarness()
	h.confirmAns = true
	m := h.machine()
	require.NoError(t, m.BeginEdit())

	err := m.RequestDelete(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, h.deletes)
}

func TestSubmitsAreSequentialPerMachine(t *testing.T) {
	h := newHarness()
	m := h.machine()
	require.NoError(t, m.BeginEdit())

	release := make(chan struct{})
	started := make(chan struct{})
	m.cfg.Save = func(ctx context.Context, draft Draft) error {
		close(started)
		<-release
		return nil
	}

	done := make(chan error, 1)
	go func() { done <- m.Submit(context.Background()) }()
	<-started

	// While the first submit is in flight, a second one is refused.
	err := m.Submit(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "in flight")

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, StateViewing, m.State())
}

func TestRefetchFailureSurfacesAfterSave(t *testing.T) {
	h := newHarness()
	h.refetchErr = errors.NewNetworkError(fmt.Errorf("refetch failed"))
	m := h.machine()
	require.NoError(t, m.BeginEdit())

	err := m.Submit(context.Background())
	require.Error(t, err)
	// The save succeeded; the machine is back to viewing even though the
	// refresh needs to be retried by the caller.
	assert.Equal(t, StateViewing, m.State())
	assert.Equal(t, 1, h.saves)
}

func TestConfirmGateErrorSkipsDelete(t *testing.T) {
	h := newHarness()
	h.confirmErr = fmt.Errorf("prompt failed")
	m := h.machine()

	err := m.RequestDelete(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, h.deletes)
	assert.Equal(t, StateViewing, m.State())
	assert.False(t, m.Busy())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "viewing", StateViewing.String())
	assert.Equal(t, "editing", StateEditing.String())
	assert.Equal(t, "removed", StateRemoved.String())
}
