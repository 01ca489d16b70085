package backend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdash/internal/dataset"
	"salesdash/internal/user"
)

func TestLoader(t *testing.T) {
	ctx := context.Background()
	calls := 0
	fail := false

	loader := NewLoader(FetcherFunc(func(ctx context.Context) (*dataset.Snapshot, error) {
		calls++
		if fail {
			return nil, errors.New("backend down")
		}
		return &dataset.Snapshot{Users: []user.User{{ID: 1}}}, nil
	}))
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	loader.now = func() time.Time { return at }

	assert.Nil(t, loader.State().Snapshot)

	snap, err := loader.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Users, 1)
	assert.False(t, loader.State().Loading)
	assert.NotNil(t, loader.State().Snapshot)
	assert.Equal(t, at, loader.State().LoadedAt)

	fail = true
	_, err = loader.Load(ctx)
	require.Error(t, err)

	state := loader.State()
	assert.Nil(t, state.Snapshot)
	assert.EqualError(t, state.Err, "backend down")
	assert.Equal(t, 2, calls)
}

func TestLoader_Concurrent(t *testing.T) {
	ctx := context.Background()
	slowStarted := make(chan struct{})
	releaseSlow := make(chan struct{})
	slowDone := make(chan error, 1)

	first := true
	loader := NewLoader(FetcherFunc(func(ctx context.Context) (*dataset.Snapshot, error) {
		if first {
			first = false
			close(slowStarted)
			<-releaseSlow
			return nil, errors.New("stale failure")
		}
		return &dataset.Snapshot{Users: []user.User{{ID: 2}}}, nil
	}))

	go func() {
		_, err := loader.Load(ctx)
		slowDone <- err
	}()
	<-slowStarted

	t.Run("Loading holds while another load is in flight", func(t *testing.T) {
		_, err := loader.Load(ctx)
		require.NoError(t, err)

		state := loader.State()
		assert.True(t, state.Loading)
		assert.Equal(t, 1, state.InFlight)
		require.NotNil(t, state.Snapshot)
	})

	t.Run("Older load does not overwrite newer outcome", func(t *testing.T) {
		close(releaseSlow)
		require.Error(t, <-slowDone)

		state := loader.State()
		assert.False(t, state.Loading)
		assert.NoError(t, state.Err)
		require.NotNil(t, state.Snapshot)
		assert.Equal(t, int64(2), state.Snapshot.Users[0].ID)
	})
}
