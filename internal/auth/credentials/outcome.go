package credentials

import "lingo-service/internal/users"

type Result int

const (
	// OK means the credentials matched and the session is now authenticated.
	OK Result = iota
	// NotFound covers both an unknown email and a wrong password.
	NotFound
	// Throttled means the session is locked out.
	Throttled
)

func (r Result) String() string {
	switch r {
	case OK:
		return "ok"
	case NotFound:
		return "not_found"
	case Throttled:
		return "throttled"
	default:
		return "unknown"
	}
}

type Outcome struct {
	Result  Result
	Message string      // set when Throttled
	User    *users.User // set when OK
}
