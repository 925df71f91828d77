package parentgate

import (
	"sync"
	"time"
)

// Alert is the "come here" signal a child raises to call a parent to
// the device. The signal clears itself after the configured duration,
// or earlier when a parent acknowledges it.
type Alert struct {
	mu       sync.Mutex
	duration time.Duration
	timers   map[string]*time.Timer
	active   map[string]bool
}

// NewAlert creates an attention alert with the given auto-clear duration
func NewAlert(duration time.Duration) *Alert {
	return &Alert{
		duration: duration,
		timers:   make(map[string]*time.Timer),
		active:   make(map[string]bool),
	}
}

// Raise activates the alert for a profile. Raising again while active
// restarts the auto-clear timer.
func (a *Alert) Raise(profileName string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if t, ok := a.timers[profileName]; ok {
		t.Stop()
	}
	a.active[profileName] = true
	a.timers[profileName] = time.AfterFunc(a.duration, func() {
		a.clear(profileName)
	})
}

// Acknowledge clears the alert before the timer fires
func (a *Alert) Acknowledge(profileName string) {
	a.mu.Lock()
	if t, ok := a.timers[profileName]; ok {
		t.Stop()
	}
	a.mu.Unlock()
	a.clear(profileName)
}

// IsActive reports whether the alert is currently raised for a profile
func (a *Alert) IsActive(profileName string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active[profileName]
}

func (a *Alert) clear(profileName string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.active, profileName)
	delete(a.timers, profileName)
}
