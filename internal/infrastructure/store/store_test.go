package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type recordingObserver struct {
	mu  sync.Mutex
	ops []string
}

func (o *recordingObserver) ObserveStore(op string, _ time.Duration, _ error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ops = append(o.ops, op)
}

// MockBackend counts backend calls.
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *MockBackend) Set(ctx context.Context, key string, value []byte) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *MockBackend) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockBackend) Keys(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBackend) Close() error { return nil }

func TestJSONRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var got profile
	found, err := s.GetJSON(ctx, KeyUserProfile, &got)
	require.NoError(t, err)
	assert.False(t, found)

	want := profile{Name: "User", Email: "user@example.com"}
	require.NoError(t, s.SetJSON(ctx, KeyUserProfile, want))

	found, err = s.GetJSON(ctx, KeyUserProfile, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)
}

func TestGetJSONCorrupt(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.SetString(ctx, KeyDesktopIcons, "{not json"))

	var icons []map[string]interface{}
	found, err := s.GetJSON(ctx, KeyDesktopIcons, &icons)
	assert.False(t, found)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestStringValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, found, err := s.GetString(ctx, KeyTheme)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.SetString(ctx, KeyTheme, "dark"))
	v, found, err := s.GetString(ctx, KeyTheme)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "dark", v)
}

func TestClearSessionKeepsOtherKeys(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, key := range AllKeys {
		require.NoError(t, s.SetString(ctx, key, "x"))
	}
	require.NoError(t, s.ClearSession(ctx))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, len(AllKeys)-len(SessionKeys))
	assert.NotContains(t, keys, KeyRecentItems)
	assert.NotContains(t, keys, KeySystemState)
	assert.Contains(t, keys, KeyFileSystem)
	assert.Contains(t, keys, KeyDesktopIcons)
}

func TestCacheServesRepeatReads(t *testing.T) {
	ctx := context.Background()
	backend := new(MockBackend)
	backend.On("Get", mock.Anything, KeyTheme).Return([]byte("dark"), nil).Once()
	backend.On("Delete", mock.Anything, KeyTheme).Return(nil).Once()

	s := New(backend, WithCache())
	for i := 0; i < 3; i++ {
		v, found, err := s.GetString(ctx, KeyTheme)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "dark", v)
	}

	require.NoError(t, s.Delete(ctx, KeyTheme))
	backend.On("Get", mock.Anything, KeyTheme).Return(nil, ErrNotFound).Once()
	_, found, err := s.GetString(ctx, KeyTheme)
	require.NoError(t, err)
	assert.False(t, found)

	backend.AssertExpectations(t)
}

func TestFailedSetIsNotCached(t *testing.T) {
	ctx := context.Background()
	backend := new(MockBackend)
	boom := errors.New("disk full")
	backend.On("Set", mock.Anything, KeyTheme, []byte("dark")).Return(boom)
	backend.On("Get", mock.Anything, KeyTheme).Return(nil, ErrNotFound)

	s := New(backend, WithCache())
	err := s.SetString(ctx, KeyTheme, "dark")
	assert.ErrorIs(t, err, boom)

	_, found, err := s.GetString(ctx, KeyTheme)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestObserverSeesOperations(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	s := New(NewMemory(), WithObserver(obs))

	require.NoError(t, s.SetString(ctx, KeyTheme, "dark"))
	_, _, err := s.GetString(ctx, KeyTheme)
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, KeyTheme))
	_, err = s.Keys(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"set", "get", "delete", "keys"}, obs.ops)
}

func TestLoadTreatsCorruptAsAbsent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.SetString(ctx, KeyTasks, "[{"))

	var tasks []map[string]interface{}
	found, err := s.Load(ctx, KeyTasks, &tasks)
	require.NoError(t, err)
	assert.False(t, found)
}

// pausingBackend stops the first Get of key after it has read the value
// and waits for release before returning it.
type pausingBackend struct {
	*Memory
	key     string
	once    sync.Once
	reached chan struct{}
	release chan struct{}
}

func newPausingBackend(key string) *pausingBackend {
	return &pausingBackend{
		Memory:  NewMemory(),
		key:     key,
		reached: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (b *pausingBackend) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := b.Memory.Get(ctx, key)
	if key == b.key {
		b.once.Do(func() {
			close(b.reached)
			<-b.release
		})
	}
	return raw, err
}

func TestCacheRacingWrites(t *testing.T) {
	tests := []struct {
		name      string
		write     func(ctx context.Context, s *Store) error
		wantFound bool
		want      string
	}{
		{
			name:  "cleared session stays cleared",
			write: func(ctx context.Context, s *Store) error { return s.ClearSession(ctx) },
		},
		{
			name:      "newer value wins",
			write:     func(ctx context.Context, s *Store) error { return s.SetString(ctx, KeyRecentItems, `[]`) },
			wantFound: true,
			want:      `[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			backend := newPausingBackend(KeyRecentItems)
			require.NoError(t, backend.Memory.Set(ctx, KeyRecentItems, []byte(`[{"title":"old"}]`)))
			s := New(backend, WithCache())

			done := make(chan struct{})
			go func() {
				defer close(done)
				_, _, _ = s.GetString(ctx, KeyRecentItems)
			}()

			<-backend.reached
			require.NoError(t, tt.write(ctx, s))
			close(backend.release)
			<-done

			v, found, err := s.GetString(ctx, KeyRecentItems)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.want, v)
		})
	}
}
