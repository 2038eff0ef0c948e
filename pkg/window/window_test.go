package window

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stiflerGit/fpscounter/pkg/clock"
)

func contents(w *Window) []clock.Instant {
	var got []clock.Instant
	w.Do(func(i clock.Instant) {
		got = append(got, i)
	})
	return got
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		wantErr  bool
	}{
		{
			name:     "nominal",
			capacity: 10,
		},
		{
			name:     "single slot",
			capacity: 1,
		},
		{
			name:     "zero capacity",
			capacity: 0,
			wantErr:  true,
		},
		{
			name:     "negative capacity",
			capacity: -3,
			wantErr:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.capacity)
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.capacity, got.Cap())
			require.Equal(t, 0, got.Len())
		})
	}
}

func TestWindow_PushPop(t *testing.T) {
	w, err := New(3)
	require.NoError(t, err)

	_, ok := w.Front()
	require.False(t, ok)
	_, ok = w.Back()
	require.False(t, ok)
	_, ok = w.PopFront()
	require.False(t, ok)

	require.NoError(t, w.PushBack(1))
	require.NoError(t, w.PushBack(2))
	require.NoError(t, w.PushBack(3))
	require.True(t, w.Full())
	require.ErrorIs(t, w.PushBack(4), ErrFull)
	require.Equal(t, []clock.Instant{1, 2, 3}, contents(w))

	front, ok := w.PopFront()
	require.True(t, ok)
	require.Equal(t, clock.Instant(1), front)

	// wraps around the end of the storage
	require.NoError(t, w.PushBack(4))
	require.Equal(t, []clock.Instant{2, 3, 4}, contents(w))

	back, ok := w.Back()
	require.True(t, ok)
	require.Equal(t, clock.Instant(4), back)
	front, ok = w.Front()
	require.True(t, ok)
	require.Equal(t, clock.Instant(2), front)
}

func TestWindow_EvictBefore(t *testing.T) {
	tests := []struct {
		name      string
		instants  []clock.Instant
		cutoff    clock.Instant
		wantN     int
		wantAfter []clock.Instant
	}{
		{
			name:      "empty",
			cutoff:    10,
			wantN:     0,
			wantAfter: nil,
		},
		{
			name:      "keeps instants on the cutoff",
			instants:  []clock.Instant{5, 10, 10, 12},
			cutoff:    10,
			wantN:     1,
			wantAfter: []clock.Instant{10, 10, 12},
		},
		{
			name:      "evicts everything",
			instants:  []clock.Instant{1, 2, 3},
			cutoff:    100,
			wantN:     3,
			wantAfter: nil,
		},
		{
			name:      "nothing stale",
			instants:  []clock.Instant{50, 60},
			cutoff:    0,
			wantN:     0,
			wantAfter: []clock.Instant{50, 60},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := New(4)
			require.NoError(t, err)
			for _, i := range tt.instants {
				require.NoError(t, w.PushBack(i))
			}

			require.Equal(t, tt.wantN, w.EvictBefore(tt.cutoff))
			require.Equal(t, tt.wantAfter, contents(w))
		})
	}
}

func TestWindow_Reset(t *testing.T) {
	w, err := New(2)
	require.NoError(t, err)
	require.NoError(t, w.PushBack(1))
	w.PopFront()
	require.NoError(t, w.PushBack(2))

	w.Reset()
	require.Equal(t, 0, w.Len())
	require.Equal(t, 2, w.Cap())

	require.NoError(t, w.PushBack(7))
	require.Equal(t, []clock.Instant{7}, contents(w))
}
