package service

import (
	"sync"
	"time"
)

// sessionRuntime is the mutual-exclusion boundary for one session. Every
// state transition and ledger mutation for the session runs under mu;
// reads take the read side so they never observe a half-applied score
// delta. Sessions are independent units of concurrency, so there is one
// runtime per session and no cross-session locking.
type sessionRuntime struct {
	mu sync.RWMutex

	// closeTimer fires when the open question's time budget elapses. It is
	// stopped when the question closes early (all answers in, or the host
	// forces progress). Set and cleared only while mu is held.
	closeTimer *time.Timer
}

func (rt *sessionRuntime) armCloseTimer(d time.Duration, fn func()) {
	rt.stopCloseTimer()
	rt.closeTimer = time.AfterFunc(d, fn)
}

func (rt *sessionRuntime) stopCloseTimer() {
	if rt.closeTimer != nil {
		rt.closeTimer.Stop()
		rt.closeTimer = nil
	}
}

// RuntimeRegistry hands out the runtime for a session, creating it
// lazily on first use.
type RuntimeRegistry struct {
	mu       sync.Mutex
	runtimes map[string]*sessionRuntime
}

func NewRuntimeRegistry() *RuntimeRegistry {
	return &RuntimeRegistry{runtimes: make(map[string]*sessionRuntime)}
}

func (r *RuntimeRegistry) get(sessionID string) *sessionRuntime {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt, ok := r.runtimes[sessionID]
	if !ok {
		rt = &sessionRuntime{}
		r.runtimes[sessionID] = rt
	}
	return rt
}

func (r *RuntimeRegistry) drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rt, ok := r.runtimes[sessionID]; ok {
		rt.stopCloseTimer()
		delete(r.runtimes, sessionID)
	}
}
