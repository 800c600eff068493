package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/crypto/bcrypt"

	"lingo-service/internal/auth"
	"lingo-service/internal/logger"
	"lingo-service/internal/session"
	"lingo-service/internal/users"
)

// UserLookup is the slice of the user store the login flow needs.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*users.User, error)
}

type Service struct {
	users UserLookup

	dummyOnce sync.Once
	dummyHash string
}

func NewService(users UserLookup) *Service {
	return &Service{users: users}
}

// LogIn checks credentials against the lockout state of one session and
// returns the outcome together with the session state to persist.
//
// A locked session is rejected before any lookup and its state is left
// untouched. Unknown emails and wrong passwords both yield NotFound; only
// wrong passwords count towards the lockout. On success the returned state
// carries the new identity and nothing else.
func (s *Service) LogIn(
	ctx context.Context,
	st session.State,
	email string,
	password string,
	now time.Time,
) (Outcome, session.State, error) {

	// 1. Lockout gate
	if st.Lockout.Locked(now) {
		return Outcome{
			Result:  Throttled,
			Message: ThrottleMessage(st.Lockout.Remaining(now)),
		}, st, nil
	}

	// 2. Find user
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, users.ErrNotFound) {
		s.burnHash(password)
		return Outcome{Result: NotFound}, st, nil
	}
	if err != nil {
		return Outcome{}, st, fmt.Errorf("login lookup: %w", err)
	}

	// 3. Verify password
	ok, err := VerifyPassword(user.PasswordHash, password)
	if err != nil {
		logger.Error("stored password hash unusable", map[string]any{
			"user_id": user.ID,
			"error":   err.Error(),
		})
	}

	// 4. Count the failure
	if !ok {
		next := st
		next.Lockout = st.Lockout.Fail(now)
		if next.Lockout.Locked(now) {
			logger.Warn("login locked out", map[string]any{
				"until": next.Lockout.Until,
			})
		}
		return Outcome{Result: NotFound}, next, nil
	}

	// 5. Replace the whole state with the new identity
	next := session.State{
		User: &auth.Identity{
			UserID: user.ID,
			Email:  user.Email,
		},
	}
	return Outcome{Result: OK, User: user}, next, nil
}

// ThrottleMessage tells a locked-out client how long to wait. The wait is
// rounded up: to whole minutes from one minute on, to whole seconds below.
func ThrottleMessage(remaining time.Duration) string {
	unit := time.Second
	if remaining >= time.Minute {
		unit = time.Minute
	}
	if r := remaining % unit; r != 0 || remaining <= 0 {
		remaining += unit - r
	}

	var base time.Time
	wait := strings.TrimSpace(humanize.RelTime(base, base.Add(remaining), "", ""))
	return fmt.Sprintf("You have %s remaining.", wait)
}

// burnHash runs one bcrypt comparison against a fixed hash, keeping
// unknown-email logins as slow as wrong-password ones.
func (s *Service) burnHash(password string) {
	s.dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("lingo-service-dummy"), bcrypt.DefaultCost)
		if err == nil {
			s.dummyHash = string(h)
		}
	})
	if s.dummyHash != "" {
		_ = bcrypt.CompareHashAndPassword([]byte(s.dummyHash), []byte(password))
	}
}
