package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/cardstackgames/president-client/internal/entity"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository persists the seat held in a game so a restarted client
// resumes instead of re-joining.
type SessionRepository interface {
	Save(ctx context.Context, record *entity.SessionRecord) error
	GetByGameID(ctx context.Context, gameID string) (*entity.SessionRecord, error)
	DeleteByGameID(ctx context.Context, gameID string) error
}

type dbSession struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) SessionRepository {
	return &dbSession{
		client: client,
	}
}

func (that *dbSession) Save(ctx context.Context, record *entity.SessionRecord) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	sessionKey := "session:" + record.GameID
	if err = that.client.Set(ctx, sessionKey, recordJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	return nil
}

func (that *dbSession) GetByGameID(ctx context.Context, gameID string) (*entity.SessionRecord, error) {
	sessionKey := "session:" + gameID

	response, err := that.client.Get(ctx, sessionKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	record := &entity.SessionRecord{}
	if err = json.Unmarshal([]byte(response), record); err != nil {
		return nil, fmt.Errorf("could not unmarshal session: %w", err)
	}

	return record, nil
}

func (that *dbSession) DeleteByGameID(ctx context.Context, gameID string) error {
	sessionKey := "session:" + gameID

	if err := that.client.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
