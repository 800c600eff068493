package session

import "time"

const (
	MaxLoginAttempts = 5
	LockoutDuration  = 3 * time.Minute
)

// Lockout tracks failed logins for one session. It is either counting
// (Attempts in 0..MaxLoginAttempts-1, Until zero) or locked (Attempts zero,
// Until set). A lock whose Until has passed counts as unlocked with zero
// attempts.
type Lockout struct {
	Attempts int       `json:"logInAttempts,omitempty"`
	Until    time.Time `json:"logInTimeout,omitzero"`
}

// Locked reports whether logins are suspended at now.
func (l Lockout) Locked(now time.Time) bool {
	return !l.Until.IsZero() && now.Before(l.Until)
}

// Remaining is the time left on an active lock, or zero.
func (l Lockout) Remaining(now time.Time) time.Duration {
	if !l.Locked(now) {
		return 0
	}
	return l.Until.Sub(now)
}

// Fail records one failed attempt at now and returns the next lockout state.
func (l Lockout) Fail(now time.Time) Lockout {
	if !l.Until.IsZero() {
		if l.Locked(now) {
			return l
		}
		l = Lockout{}
	}

	l.Attempts++
	if l.Attempts >= MaxLoginAttempts {
		return Lockout{Until: now.Add(LockoutDuration)}
	}
	return l
}
