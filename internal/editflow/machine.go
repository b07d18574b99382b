// Package editflow implements the per-entity edit lifecycle: a machine owns
// the transition between read-only display and in-place editing, and
// sequences every mutation with a mandatory authoritative refetch.
//
// One machine is created per editable entity (one blog post, one comment)
// and discarded after a successful delete. Machines stay pure with respect
// to presentation: callers decide how to surface returned errors.
package editflow

import (
	"context"
	"sync"

	"github.com/DJRivera25/blogctl/internal/errors"
)

// State is the lifecycle position of one editable entity
type State int

const (
	// StateViewing is read-only display of the committed entity
	StateViewing State = iota
	// StateEditing holds local draft fields not yet submitted
	StateEditing
	// StateRemoved is terminal; the machine is discarded, never reused
	StateRemoved
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateViewing:
		return "viewing"
	case StateEditing:
		return "editing"
	case StateRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Draft mirrors the entity's editable fields while in StateEditing
type Draft map[string]string

func (d Draft) clone() Draft {
	out := make(Draft, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// ConfirmFunc is the confirmation gate: it blocks until the user decides and
// reports whether they confirmed. Destructive operations run only after an
// explicit true.
type ConfirmFunc func(ctx context.Context, title, message string) (bool, error)

// Config wires a machine to its entity
type Config struct {
	// Snapshot returns the committed entity's editable fields; copied into
	// the draft when editing begins.
	Snapshot func() Draft

	// CanEdit and CanDelete gate which transitions are offered at all
	CanEdit   func() bool
	CanDelete func() bool

	// Save submits the draft through the repository
	Save func(ctx context.Context, draft Draft) error

	// Refetch re-reads authoritative state after a successful save. The
	// committed entity is always replaced by a fresh read, never by the
	// local draft: the backend owns updatedAt and any normalization.
	Refetch func(ctx context.Context) error

	// Delete removes the entity through the repository
	Delete func(ctx context.Context) error

	// Confirm is the gate consulted before Delete
	Confirm ConfirmFunc

	// ConfirmTitle and ConfirmMessage describe the pending delete to the user
	ConfirmTitle   string
	ConfirmMessage string
}

// Machine is the edit state machine for one entity
type Machine struct {
	mu    sync.Mutex
	state State
	draft Draft
	busy  bool

	cfg Config
}

// New creates a machine in StateViewing
func New(cfg Config) *Machine {
	return &Machine{state: StateViewing, cfg: cfg}
}

// State returns the current state
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Busy reports whether a submit or delete is in flight
func (m *Machine) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy
}

// Draft returns a copy of the draft fields, or nil outside StateEditing
func (m *Machine) Draft() Draft {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateEditing {
		return nil
	}
	return m.draft.clone()
}

// CanEdit reports whether editing is offered for this entity
func (m *Machine) CanEdit() bool {
	return m.cfg.CanEdit != nil && m.cfg.CanEdit()
}

// CanDelete reports whether deletion is offered for this entity
func (m *Machine) CanDelete() bool {
	return m.cfg.CanDelete != nil && m.cfg.CanDelete()
}

// BeginEdit moves Viewing to Editing, copying the committed fields into the
// draft. Unreachable when the permission check denies editing.
func (m *Machine) BeginEdit() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateViewing {
		return errors.New(errors.ErrCodeEditTransition, "editing can only start from viewing")
	}
	if !m.CanEdit() {
		return errors.NewForbiddenError("edit this entry")
	}

	m.draft = m.cfg.Snapshot().clone()
	m.state = StateEditing
	return nil
}

// ChangeDraft mutates one draft field. The committed entity is untouched.
func (m *Machine) ChangeDraft(field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateEditing {
		return errors.New(errors.ErrCodeEditTransition, "no edit in progress")
	}
	m.draft[field] = value
	return nil
}

// Cancel discards the draft and returns to Viewing without any network call
func (m *Machine) Cancel() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateEditing {
		return errors.New(errors.ErrCodeEditTransition, "no edit in progress")
	}
	if m.busy {
		return errors.New(errors.ErrCodeEditBusy, "a submission is in flight")
	}
	m.draft = nil
	m.state = StateViewing
	return nil
}

// Submit saves the draft and, on success, replaces the committed entity with
// a fresh read. On a repository failure the machine stays in Editing with the
// draft intact so the user can retry without re-entering input.
func (m *Machine) Submit(ctx context.Context) error {
	m.mu.Lock()
	if m.state != StateEditing {
		m.mu.Unlock()
		return errors.New(errors.ErrCodeEditTransition, "no edit in progress")
	}
	if m.busy {
		m.mu.Unlock()
		return errors.New(errors.ErrCodeEditBusy, "a submission is already in flight")
	}
	m.busy = true
	draft := m.draft.clone()
	m.mu.Unlock()

	err := m.cfg.Save(ctx, draft)

	m.mu.Lock()
	m.busy = false
	if err != nil {
		m.mu.Unlock()
		return err
	}
	m.draft = nil
	m.state = StateViewing
	m.mu.Unlock()

	if m.cfg.Refetch != nil {
		return m.cfg.Refetch(ctx)
	}
	return nil
}

// RequestDelete routes through the confirmation gate and deletes the entity
// on an explicit yes. Denial changes nothing and issues no network call.
func (m *Machine) RequestDelete(ctx context.Context) error {
	m.mu.Lock()
	if m.state != StateViewing {
		m.mu.Unlock()
		return errors.New(errors.ErrCodeEditTransition, "deletion can only start from viewing")
	}
	if m.busy {
		m.mu.Unlock()
		return errors.New(errors.ErrCodeEditBusy, "an operation is already in flight")
	}
	if !m.CanDelete() {
		m.mu.Unlock()
		return errors.NewForbiddenError("delete this entry")
	}
	m.busy = true
	m.mu.Unlock()

	// No confirmation hook means no way to say yes.
	var confirmed bool
	var err error
	if m.cfg.Confirm != nil {
		confirmed, err = m.cfg.Confirm(ctx, m.cfg.ConfirmTitle, m.cfg.ConfirmMessage)
	}

	if err != nil || !confirmed {
		m.mu.Lock()
		m.busy = false
		m.mu.Unlock()
		return err
	}

	err = m.cfg.Delete(ctx)

	m.mu.Lock()
	m.busy = false
	if err != nil {
		m.mu.Unlock()
		return err
	}
	m.state = StateRemoved
	m.mu.Unlock()
	return nil
}
