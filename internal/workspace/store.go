package workspace

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pkgerrors "github.com/angelmondragon/erp-records-backend/pkg/errors"
	"github.com/angelmondragon/erp-records-backend/pkg/redis"
)

// Store persists workspace state between requests.
type Store interface {
	Load(ctx context.Context, sessionID string) (State, bool, error)
	Save(ctx context.Context, state State) error
}

type redisStore struct {
	client redis.WorkspaceStore
	ttl    time.Duration
}

// NewRedisStore keeps each session's state as JSON under its workspace key.
// Every load or save pushes the expiry out by ttl. Entries that no longer
// decode are deleted and reported as missing.
func NewRedisStore(client redis.WorkspaceStore, ttl time.Duration) (Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &redisStore{client: client, ttl: ttl}, nil
}

func (s *redisStore) Load(ctx context.Context, sessionID string) (State, bool, error) {
	key := s.client.WorkspaceKey(sessionID)
	raw, err := s.client.Get(ctx, key)
	if err != nil {
		if redis.IsMiss(err) {
			return State{}, false, nil
		}
		return State{}, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load workspace")
	}

	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		// an undecodable entry is dropped so the session starts over
		if delErr := s.client.Del(ctx, key); delErr != nil {
			return State{}, false, pkgerrors.Wrap(pkgerrors.CodeDependency, delErr, "drop corrupt workspace")
		}
		return State{}, false, nil
	}
	if s.ttl > 0 {
		if _, err := s.client.Expire(ctx, key, s.ttl); err != nil {
			return State{}, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refresh workspace ttl")
		}
	}
	return state, true, nil
}

func (s *redisStore) Save(ctx context.Context, state State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode workspace")
	}
	if err := s.client.Set(ctx, s.client.WorkspaceKey(state.SessionID), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save workspace")
	}
	return nil
}
