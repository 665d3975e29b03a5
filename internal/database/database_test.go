package database

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	v, err := Retry(context.Background(), "fake", 3, time.Millisecond, func(ctx context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("not yet")
		}
		return 42, nil
	})
	require.NoError(t, err)
	require.Equal(t, 42, v)
	require.Equal(t, 3, calls)
}

func TestRetry_GivesUp(t *testing.T) {
	calls := 0
	_, err := Retry(context.Background(), "fake", 2, time.Millisecond, func(ctx context.Context) (string, error) {
		calls++
		return "", errors.New("down")
	})
	require.EqualError(t, err, "down")
	require.Equal(t, 2, calls)
}

func TestRetry_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Retry(ctx, "fake", 5, time.Hour, func(ctx context.Context) (int, error) {
		return 0, errors.New("down")
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestConnectPostgres_Unreachable(t *testing.T) {
	_, err := ConnectPostgres(context.Background(), "postgres://u:p@127.0.0.1:1/db?connect_timeout=1", 2*time.Second)
	require.Error(t, err)
}

func TestConnectMongo_Integration(t *testing.T) {
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}
	client, err := ConnectMongo(context.Background(), uri, 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, client.Disconnect(context.Background()))
}

func TestConnectMongo_Unreachable(t *testing.T) {
	_, err := ConnectMongo(context.Background(), "mongodb://127.0.0.1:1/?connectTimeoutMS=200", 500*time.Millisecond)
	require.Error(t, err)
	require.Contains(t, err.Error(), "mongo")
}
