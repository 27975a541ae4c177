// Package session implements the lifecycle of a single scan request: a small
// state machine driven by user action on one side and network completion on
// the other. At most one scan is in flight per session; late completions for
// a superseded request are matched by sequence number and discarded.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/ayeshahabib/scamshield/internal/logging"
	"github.com/ayeshahabib/scamshield/internal/model"
	"github.com/ayeshahabib/scamshield/internal/risk"
)

// Status is the lifecycle state of the session.
type Status int

const (
	StatusIdle Status = iota
	StatusScanning
	StatusSettled
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusScanning:
		return "scanning"
	case StatusSettled:
		return "settled"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	// ErrEmptyInput is returned by Start for blank or whitespace-only content.
	ErrEmptyInput = errors.New("session: content is empty")

	// ErrScanInFlight is returned by Start while a scan is already running.
	// In-flight scans are never replaced or queued.
	ErrScanInFlight = errors.New("session: a scan is already in flight")
)

// FailureMessage is the generic user-facing text for any transport failure.
// Internal detail goes to the logger only.
const FailureMessage = "unable to complete scan"

// Scanner is the network collaborator that performs the scan. It owns
// timeouts; the session only consumes its outcome.
type Scanner interface {
	Scan(ctx context.Context, content string) (*model.ScanResult, error)
}

// RecordFunc is invoked exactly once per successful settle with the
// normalized result, typically to push it into a history store.
type RecordFunc func(model.ScanResult)

// Snapshot is a point-in-time copy of the session state.
type Snapshot struct {
	Status       Status
	Result       *model.ScanResult
	ErrMessage   string
	PendingInput string
}

// Session is the lifecycle state container. It is exclusively owned by one
// view; a mutex makes the transition function safe against the completion
// goroutine.
type Session struct {
	scanner Scanner
	record  RecordFunc
	logger  logging.Logger
	now     func() time.Time

	mu           sync.Mutex
	seq          uint64
	status       Status
	result       *model.ScanResult
	errMsg       string
	pendingInput string
	discarded    uint64
	done         chan struct{}
}

// New creates an idle session. record may be nil when no history is kept.
func New(scanner Scanner, record RecordFunc, logger logging.Logger) *Session {
	if logger == nil {
		logger = logging.NewStdoutLogger("session")
	}
	return &Session{
		scanner: scanner,
		record:  record,
		logger:  logger.With(logging.Field{Key: "component", Value: "session"}),
		now:     time.Now,
		status:  StatusIdle,
	}
}

// Start validates the input and, if accepted, transitions to Scanning and
// dispatches the scan asynchronously. It returns the sequence number tagged
// to this request; completions carrying any other sequence are discarded.
func (s *Session) Start(ctx context.Context, raw string) (uint64, error) {
	content := strings.TrimSpace(raw)
	if content == "" {
		return 0, ErrEmptyInput
	}

	s.mu.Lock()
	if s.status == StatusScanning {
		s.mu.Unlock()
		return 0, ErrScanInFlight
	}
	s.seq++
	seq := s.seq
	s.status = StatusScanning
	s.result = nil
	s.errMsg = ""
	s.pendingInput = content
	s.done = make(chan struct{})
	s.mu.Unlock()

	s.logger.Debug("scan started",
		logging.Field{Key: "seq", Value: seq})

	if s.scanner != nil {
		go s.dispatch(ctx, seq, content)
	}
	return seq, nil
}

func (s *Session) dispatch(ctx context.Context, seq uint64, content string) {
	res, err := s.scanner.Scan(ctx, content)
	if err != nil {
		s.logger.Warn("scan failed",
			logging.Field{Key: "seq", Value: seq},
			logging.Field{Key: "error", Value: err.Error()})
		s.OnFailure(seq, FailureMessage)
		return
	}
	s.OnSuccess(seq, *res)
}

// OnSuccess settles the request tagged seq. The score is clamped and the
// settle timestamp stamped before the result is published; the history hook
// fires exactly once. Completions that do not match the current in-flight
// request are discarded.
func (s *Session) OnSuccess(seq uint64, res model.ScanResult) {
	s.mu.Lock()
	if seq != s.seq || s.status != StatusScanning {
		s.discarded++
		s.mu.Unlock()
		s.logger.Debug("stale scan response discarded",
			logging.Field{Key: "seq", Value: seq})
		return
	}

	res = res.Copy()
	res.RiskScore = risk.Clamp(res.RiskScore)
	if res.Timestamp.IsZero() {
		res.Timestamp = s.now()
	}

	s.status = StatusSettled
	s.result = &res
	s.errMsg = ""
	done := s.done
	record := s.record
	s.mu.Unlock()

	s.logger.Info("scan settled",
		logging.Field{Key: "seq", Value: seq},
		logging.Field{Key: "risk_score", Value: res.RiskScore},
		logging.Field{Key: "tier", Value: risk.Classify(res.RiskScore).String()})

	if record != nil {
		record(res.Copy())
	}
	if done != nil {
		close(done)
	}
}

// OnFailure moves the request tagged seq to Failed. History is untouched and
// nothing is retried; the user must re-invoke Start. Stale completions are
// discarded the same way as in OnSuccess.
func (s *Session) OnFailure(seq uint64, msg string) {
	s.mu.Lock()
	if seq != s.seq || s.status != StatusScanning {
		s.discarded++
		s.mu.Unlock()
		s.logger.Debug("stale scan failure discarded",
			logging.Field{Key: "seq", Value: seq})
		return
	}
	s.status = StatusFailed
	s.errMsg = msg
	s.result = nil
	done := s.done
	s.mu.Unlock()

	if done != nil {
		close(done)
	}
}

// Run is a convenience for one-shot callers (the CLI): Start plus blocking
// until that request settles or ctx expires.
func (s *Session) Run(ctx context.Context, raw string) (Snapshot, error) {
	_, err := s.Start(ctx, raw)
	if err != nil {
		return s.CurrentSnapshot(), err
	}

	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	select {
	case <-done:
	case <-ctx.Done():
		return s.CurrentSnapshot(), ctx.Err()
	}
	return s.CurrentSnapshot(), nil
}

// CurrentSnapshot returns a copy of the session state. The returned result is
// detached from the session's own copy.
func (s *Session) CurrentSnapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Status:       s.status,
		ErrMessage:   s.errMsg,
		PendingInput: s.pendingInput,
	}
	if s.result != nil {
		cp := s.result.Copy()
		snap.Result = &cp
	}
	return snap
}

// Discarded reports how many stale or duplicate completions this session has
// ignored.
func (s *Session) Discarded() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.discarded
}

// SetClock overrides the settle-timestamp clock. Test hook.
func (s *Session) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now != nil {
		s.now = now
	}
}
