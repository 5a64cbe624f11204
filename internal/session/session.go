package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/FabricioUDB/control-gastos/internal"
	"github.com/FabricioUDB/control-gastos/internal/core/events"
	"github.com/FabricioUDB/control-gastos/internal/ledger"
)

// RemoteLedger is the store that owns the authoritative expense records.
// Every call can fail; the session maps failures to its status signal and
// never applies a local mutation before the remote call succeeded.
type RemoteLedger interface {
	LoadPeriod(ctx context.Context, userID string, start, end time.Time) ([]ledger.Record, error)
	Create(ctx context.Context, userID string, record ledger.Record) (string, error)
	Update(ctx context.Context, userID, id string, patch ledger.Patch) error
	Delete(ctx context.Context, userID, id string) error
}

type StatusKind string

const (
	StatusIdle    StatusKind = "idle"
	StatusLoading StatusKind = "loading"
	StatusError   StatusKind = "error"
	StatusInfo    StatusKind = "info"
)

type Status struct {
	Kind    StatusKind `json:"kind"`
	Message string     `json:"message,omitempty"`
}

// Snapshot is the full derived view handed to observers: the filtered
// record list plus the aggregates computed over the whole loaded period.
type Snapshot struct {
	UserID        string               `json:"user_id"`
	Year          int                  `json:"year"`
	Month         int                  `json:"month"`
	Records       []ledger.Record      `json:"records"`
	GrandTotal    float64              `json:"grand_total"`
	CategoryStats []ledger.CategoryStat `json:"category_stats"`
	Categories    []string             `json:"categories"`
	Filter        *string              `json:"filter"`
	Status        Status               `json:"status"`
}

// Session owns the ledger state for one signed-in identity. It is built at
// sign-in and discarded at sign-out; an instance is never reused across
// identities, which is what keeps records from leaking between accounts.
// All intents are serialized by a single owner lock, so no two mutations
// ever interleave on the same state.
type Session struct {
	userID string
	remote RemoteLedger
	bus    *events.Bus
	logger *slog.Logger
	loc    *time.Location

	mu      sync.Mutex
	state   *ledger.State
	filter  *ledger.Filter
	status  Status
	year    int
	month   int
	loadGen uint64
	closed  bool
}

func New(userID string, remote RemoteLedger, bus *events.Bus, logger *slog.Logger, loc *time.Location) *Session {
	if loc == nil {
		loc = time.Local
	}
	return &Session{
		userID: userID,
		remote: remote,
		bus:    bus,
		logger: logger,
		loc:    loc,
		state:  ledger.NewState(),
		filter: ledger.NewFilter(),
		status: Status{Kind: StatusIdle},
	}
}

func (s *Session) UserID() string {
	return s.userID
}

// LoadMonth replaces ledger state with the records for (year, month). Each
// load carries a generation tag: if the user switched months or signed out
// while the request was in flight, the late response is discarded instead of
// being applied to state it no longer belongs to. On failure the previous
// state stays visible.
func (s *Session) LoadMonth(ctx context.Context, year, month int) error {
	start, end, err := ledger.MonthRange(year, month, s.loc)
	if err != nil {
		s.setStatus(ctx, Status{Kind: StatusError, Message: err.Error()})
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return internal.ErrNoSession
	}
	s.loadGen++
	gen := s.loadGen
	s.status = Status{Kind: StatusLoading}
	s.mu.Unlock()
	s.publishChanged(ctx)

	records, err := s.remote.LoadPeriod(ctx, s.userID, start, end)

	s.mu.Lock()
	if s.closed || gen != s.loadGen {
		s.mu.Unlock()
		s.logger.Debug("discarding stale period load",
			"user_id", s.userID, "year", year, "month", month)
		return nil
	}
	if err != nil {
		s.status = Status{Kind: StatusError, Message: "could not load expenses"}
		s.mu.Unlock()
		s.publishChanged(ctx)
		s.logger.Error("period load failed", "error", err, "user_id", s.userID,
			"year", year, "month", month)
		return internal.NewRemoteError("could not load expenses", internal.ErrCodeRemoteLoad, err)
	}

	s.year, s.month = year, month
	s.state.Load(start, end, records)
	s.filter.Clear()
	s.status = Status{Kind: StatusIdle}
	s.mu.Unlock()
	s.publishChanged(ctx)

	s.logger.Info("period loaded", "user_id", s.userID,
		"year", year, "month", month, "records", len(records))
	return nil
}

// AddExpense validates the form, persists the record remotely and, on
// success, inserts it into the visible list when it belongs to the loaded
// month. A record dated outside the viewed month is accepted upstream but
// stays hidden until that month is loaded.
func (s *Session) AddExpense(ctx context.Context, form ExpenseForm) (ledger.Record, error) {
	record, err := form.ToRecord(time.Now())
	if err != nil {
		s.setStatus(ctx, Status{Kind: StatusError, Message: err.Error()})
		return ledger.Record{}, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ledger.Record{}, internal.ErrNoSession
	}

	id, err := s.remote.Create(ctx, s.userID, record)
	if err != nil {
		s.status = Status{Kind: StatusError, Message: "could not save expense"}
		s.mu.Unlock()
		s.publishChanged(ctx)
		s.logger.Error("expense create failed", "error", err, "user_id", s.userID)
		return ledger.Record{}, internal.NewRemoteError("could not save expense", internal.ErrCodeRemoteCreate, err)
	}

	record.ID = id
	visible := s.state.InsertLocal(record)
	s.status = Status{Kind: StatusInfo, Message: "expense added"}
	s.mu.Unlock()

	s.publishMutation(ctx, events.TypeExpenseCreated, record)
	s.publishChanged(ctx)
	s.logger.Info("expense added", "user_id", s.userID, "expense_id", id,
		"amount", record.Amount, "visible", visible)
	return record, nil
}

// EditExpense patches name, category, amount and note of an existing record.
// Occurrence and creation timestamps are never touched. A record missing
// from the visible list is a local no-op, but the remote update is still
// attempted since the authoritative copy lives server-side.
func (s *Session) EditExpense(ctx context.Context, id string, form ExpenseForm) error {
	patch, err := form.ToPatch()
	if err != nil {
		s.setStatus(ctx, Status{Kind: StatusError, Message: err.Error()})
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return internal.ErrNoSession
	}

	if err := s.remote.Update(ctx, s.userID, id, patch); err != nil {
		s.status = Status{Kind: StatusError, Message: "could not update expense"}
		s.mu.Unlock()
		s.publishChanged(ctx)
		s.logger.Error("expense update failed", "error", err,
			"user_id", s.userID, "expense_id", id)
		return internal.NewRemoteError("could not update expense", internal.ErrCodeRemoteUpdate, err)
	}

	updated := s.state.UpdateLocal(id, patch)
	s.status = Status{Kind: StatusInfo, Message: "expense updated"}
	var record ledger.Record
	if updated {
		record, _ = s.state.Find(id)
	}
	s.mu.Unlock()

	if updated {
		s.publishMutation(ctx, events.TypeExpenseUpdated, record)
	}
	s.publishChanged(ctx)
	s.logger.Info("expense updated", "user_id", s.userID, "expense_id", id,
		"visible", updated)
	return nil
}

// DeleteExpense removes the record remotely and, on success, locally.
// Deleting an ID absent from the visible list leaves state unchanged.
func (s *Session) DeleteExpense(ctx context.Context, id string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return internal.ErrNoSession
	}

	if err := s.remote.Delete(ctx, s.userID, id); err != nil {
		s.status = Status{Kind: StatusError, Message: "could not delete expense"}
		s.mu.Unlock()
		s.publishChanged(ctx)
		s.logger.Error("expense delete failed", "error", err,
			"user_id", s.userID, "expense_id", id)
		return internal.NewRemoteError("could not delete expense", internal.ErrCodeRemoteDelete, err)
	}

	removed := s.state.DeleteLocal(id)
	s.status = Status{Kind: StatusInfo, Message: "expense deleted"}
	s.mu.Unlock()

	if removed {
		s.publishMutation(ctx, events.TypeExpenseDeleted, ledger.Record{ID: id})
	}
	s.publishChanged(ctx)
	s.logger.Info("expense deleted", "user_id", s.userID, "expense_id", id,
		"was_visible", removed)
	return nil
}

// SetFilter applies the toggle semantics of the category filter and
// recomputes the visible view.
func (s *Session) SetFilter(ctx context.Context, category *string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.filter.Set(category)
	s.mu.Unlock()
	s.publishChanged(ctx)
}

// SignOut discards all per-identity state. The session is closed for good:
// in-flight loads for it are dropped on arrival and further intents fail
// with ErrNoSession.
func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.loadGen++
	s.state = ledger.NewState()
	s.filter = ledger.NewFilter()
	s.status = Status{Kind: StatusIdle}
	s.year, s.month = 0, 0
}

// Snapshot derives the current view: filtered record list plus aggregates
// over the entire loaded period.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	all := s.state.Records()
	return Snapshot{
		UserID:        s.userID,
		Year:          s.year,
		Month:         s.month,
		Records:       s.filter.Apply(all),
		GrandTotal:    ledger.GrandTotal(all),
		CategoryStats: ledger.CategoryStats(all),
		Categories:    ledger.DistinctCategories(all),
		Filter:        s.filter.Active(),
		Status:        s.status,
	}
}

func (s *Session) setStatus(ctx context.Context, status Status) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.status = status
	s.mu.Unlock()
	s.publishChanged(ctx)
}

// publishChanged emits the fresh snapshot synchronously so observers see
// state changes in the order they were applied.
func (s *Session) publishChanged(ctx context.Context) {
	if s.bus == nil {
		return
	}
	_ = s.bus.PublishSync(ctx, events.NewEvent(events.TypeLedgerChanged, s.Snapshot()))
}

func (s *Session) publishMutation(ctx context.Context, eventType string, record ledger.Record) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.NewEvent(eventType, record))
}
