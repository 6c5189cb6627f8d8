package session

import (
	"context"
	"time"

	"github.com/dmitrijs2005/propkeeper/internal/logging"
)

// Status is the tri-state session status.
type Status int

const (
	StatusUnauthenticated Status = iota
	StatusActive
	StatusExpired
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusExpired:
		return "expired"
	default:
		return "unauthenticated"
	}
}

// State is the result of one session evaluation. Claims is non-nil only
// when Status is StatusActive.
type State struct {
	Status Status
	Claims *Claims
}

// Manager is the canonical source of "am I logged in". It derives the state
// from the token store, the claims decoder and the wall clock on every call;
// nothing is cached between evaluations.
type Manager struct {
	store TokenStore
	log   logging.Logger
	now   func() time.Time
}

func NewManager(store TokenStore, log logging.Logger) *Manager {
	return &Manager{store: store, log: log, now: time.Now}
}

// Evaluate returns the current session state.
//
// An absent token is Unauthenticated. A token that cannot be decoded or
// whose expiry is not in the future is Expired, and the stored token is
// cleared as a side effect (fail closed). Otherwise the session is Active
// with the decoded claims.
func (m *Manager) Evaluate(ctx context.Context) State {
	token, err := m.store.Get(ctx)
	if err != nil {
		m.log.Error(ctx, "token store read failed", "error", err)
		return State{Status: StatusUnauthenticated}
	}
	if token == "" {
		return State{Status: StatusUnauthenticated}
	}

	claims, err := DecodeClaims(token)
	if err != nil {
		m.log.Warn(ctx, "discarding undecodable token", "error", err)
		if err := m.store.Clear(ctx); err != nil {
			m.log.Error(ctx, "token clear failed", "error", err)
		}
		return State{Status: StatusExpired}
	}

	if claims.ExpiredAt(m.now()) {
		m.log.Info(ctx, "session expired", "user_id", claims.UserID)
		if err := m.store.Clear(ctx); err != nil {
			m.log.Error(ctx, "token clear failed", "error", err)
		}
		return State{Status: StatusExpired}
	}

	return State{Status: StatusActive, Claims: claims}
}
