// Package supervisor owns the backend process handle for the host session.
//
// Ownership boundary:
// - launch plan execution (one attempt, one mode)
// - the single process handle, behind a lock
// - kill-and-reap at host exit
//
// The supervisor does not restart, health-check, or re-launch the backend.
package supervisor

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nexadesk/hostctl/internal/observability"
)

var ErrAlreadyLaunched = errors.New("backend already launched")

// Handle is the opaque reference to the running backend process. Zero or
// one exists per host session.
type Handle struct {
	ID   string
	PID  int
	Mode Mode
	proc Process
}

// Process is the minimal reap surface of an OS process, narrowed so
// shutdown ordering works against fakes as well as real children.
type Process interface {
	Kill() error
	Wait() error
}

// NewHandle builds a handle around a started process, for Starter
// implementations.
func NewHandle(id string, pid int, mode Mode, proc Process) *Handle {
	return &Handle{ID: id, PID: pid, Mode: mode, proc: proc}
}

// Supervisor holds the session's single optional handle. The mutex
// guarantees launch and shutdown never observe the slot concurrently.
type Supervisor struct {
	mu      sync.Mutex
	handle  *Handle
	starter Starter
	log     zerolog.Logger
}

func New(log zerolog.Logger) *Supervisor {
	return NewWithStarter(ExecStarter{}, log)
}

func NewWithStarter(starter Starter, log zerolog.Logger) *Supervisor {
	return &Supervisor{starter: starter, log: log}
}

// Launch runs the plan and stores the resulting handle. Single-shot: a
// second launch against a held handle fails regardless of mode.
func (s *Supervisor) Launch(plan Plan) (*Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle != nil {
		return nil, ErrAlreadyLaunched
	}
	handle, err := s.starter.Start(plan)
	if err != nil {
		observability.RecordLaunch(string(plan.Mode), false)
		return nil, err
	}
	s.handle = handle
	observability.RecordLaunch(string(plan.Mode), true)
	observability.SetBackendRunning(true)
	s.log.Info().
		Str("launch_id", handle.ID).
		Int("pid", handle.PID).
		Str("mode", string(handle.Mode)).
		Msg("supervisor.Launch backend spawned")
	return handle, nil
}

// Shutdown forcefully kills the stored process and synchronously waits for
// it to be reaped, so host teardown cannot race a half-reaped child. With
// no handle it is a no-op. Kill and wait failures are logged and swallowed;
// teardown must not block on them.
func (s *Supervisor) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle == nil {
		return
	}
	start := time.Now()
	s.log.Info().
		Str("launch_id", s.handle.ID).
		Int("pid", s.handle.PID).
		Msg("supervisor.Shutdown stopping backend process")
	if err := s.handle.proc.Kill(); err != nil {
		s.log.Warn().Err(err).Msg("supervisor.Shutdown kill failed")
	}
	if err := s.handle.proc.Wait(); err != nil {
		s.log.Warn().Err(err).Msg("supervisor.Shutdown wait failed")
	}
	s.handle = nil
	observability.RecordShutdown(time.Since(start))
	observability.SetBackendRunning(false)
}

// Status is the host-facing snapshot of the handle slot.
type Status struct {
	Running  bool   `json:"running"`
	LaunchID string `json:"launch_id,omitempty"`
	PID      int    `json:"pid,omitempty"`
	Mode     string `json:"mode,omitempty"`
}

func (s *Supervisor) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle == nil {
		return Status{}
	}
	return Status{
		Running:  true,
		LaunchID: s.handle.ID,
		PID:      s.handle.PID,
		Mode:     string(s.handle.Mode),
	}
}
