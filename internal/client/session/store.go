package session

import (
	"context"

	"github.com/dmitrijs2005/propkeeper/internal/client/repositories/localstate"
	"github.com/dmitrijs2005/propkeeper/internal/common"
)

// TokenStore holds the current bearer token. It is a pure storage primitive:
// no validation happens here.
//
// Get returns the empty string when no token is stored. Set overwrites any
// prior value (last-writer-wins). Clear is idempotent.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// LocalTokenStore keeps the token in the client-local database so the
// session survives process restarts.
type LocalTokenStore struct {
	repo localstate.Repository
}

func NewLocalTokenStore(repo localstate.Repository) *LocalTokenStore {
	return &LocalTokenStore{repo: repo}
}

func (s *LocalTokenStore) Get(ctx context.Context) (string, error) {
	value, err := s.repo.Get(ctx, common.TokenStorageKey)
	if err != nil {
		return "", err
	}
	return string(value), nil
}

func (s *LocalTokenStore) Set(ctx context.Context, token string) error {
	return s.repo.Set(ctx, common.TokenStorageKey, []byte(token))
}

func (s *LocalTokenStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, common.TokenStorageKey)
}
