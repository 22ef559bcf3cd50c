package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/isg-quiz-bot/internal/infra/redis"
	"github.com/aliskhannn/isg-quiz-bot/internal/repository"
)

type fakeClient struct {
	values map[string]string
	ttl    map[string]time.Duration
	err    error
}

func newFakeClient() *fakeClient {
	return &fakeClient{values: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeClient) Get(_ context.Context, key string) *goredis.StringCmd {
	if f.err != nil {
		return goredis.NewStringResult("", f.err)
	}
	v, ok := f.values[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (f *fakeClient) Set(_ context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd {
	if f.err != nil {
		return goredis.NewStatusResult("", f.err)
	}
	f.values[key] = string(value.([]byte))
	f.ttl[key] = expiration
	return goredis.NewStatusResult("OK", nil)
}

func TestSessionStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	store := redis.NewSessionStore(client)

	_, err := store.Load(ctx, "isg3.txt_shuffleData")
	require.ErrorIs(t, err, repository.ErrSessionNotFound)

	snap := &entities.PersistedSession{
		ShuffledQuestions: []entities.Question{
			entities.NewQuestion(nil, "Birinci", []string{"a", "b", "c", "d"}, 0),
			entities.NewQuestion(nil, "İkinci", []string{"a", "b", "c", "d"}, 1),
		},
		CurrentIndex: 1,
	}
	require.NoError(t, store.Save(ctx, "isg3.txt_shuffleData", snap))
	assert.Zero(t, client.ttl["isg3.txt_shuffleData"])

	got, err := store.Load(ctx, "isg3.txt_shuffleData")
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

func TestSessionStore_Errors(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	store := redis.NewSessionStore(client)

	client.values["k"] = "garbage"
	_, err := store.Load(ctx, "k")
	assert.ErrorIs(t, err, repository.ErrCorruptSession)

	client.err = errors.New("i/o timeout")
	_, err = store.Load(ctx, "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrSessionNotFound)
}
