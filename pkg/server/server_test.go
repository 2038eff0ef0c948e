package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/stiflerGit/fpscounter/pkg/clock"
)

func newTestServer(t *testing.T, clk *clock.ManualClock, options ...Option) *httptest.Server {
	t.Helper()

	options = append([]Option{
		WithClockFactory(func() clock.Clock { return clk }),
	}, options...)

	s, err := New(options...)
	require.NoError(t, err)

	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url string, v interface{}) int {
	t.Helper()

	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	if v != nil && len(body) > 0 {
		require.NoError(t, json.Unmarshal(body, v), string(body))
	}
	return res.StatusCode
}

func TestNew(t *testing.T) {
	_, err := New(WithMaxFPS(0))
	require.Error(t, err)

	s, err := New()
	require.NoError(t, err)
	require.Equal(t, defaultMaxFPS, s.counters.MaxFPS())
}

func TestServer(t *testing.T) {
	clk := clock.NewManualClock(1000)
	ts := newTestServer(t, clk, WithMaxFPS(10))

	tests := []struct {
		stream string
		want   []int
	}{
		{
			stream: "main",
			want:   []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 10, 10},
		},
		{
			stream: "hud",
			want:   []int{1, 2},
		},
	}

	for _, tt := range tests {
		for i, want := range tt.want {
			response := Response{}
			status := do(t, http.MethodPost, ts.URL+"/streams/"+tt.stream+"/frames", &response)
			require.Equal(t, http.StatusOK, status)

			require.Equal(t, tt.stream, response.Stream)
			require.Equal(t, want, response.FPS, "at request %d", i)
			require.Equal(t, 10, response.MaxFPS)
			require.Equal(t, want == 10, response.Capped)
		}
	}

	var streams []string
	require.Equal(t, http.StatusOK, do(t, http.MethodGet, ts.URL+"/streams", &streams))
	require.Equal(t, []string{"hud", "main"}, streams)

	info := StreamInfo{}
	require.Equal(t, http.StatusOK, do(t, http.MethodGet, ts.URL+"/streams/main", &info))
	require.Equal(t, "main", info.Stream)
	require.Equal(t, 10, info.Frames)
	require.Equal(t, 10, info.MaxFPS)

	// a second later the old frames are gone
	clk.Advance(1100 * time.Millisecond)
	response := Response{}
	require.Equal(t, http.StatusOK, do(t, http.MethodPost, ts.URL+"/streams/main/frames", &response))
	require.Equal(t, 1, response.FPS)

	require.Equal(t, http.StatusNoContent, do(t, http.MethodDelete, ts.URL+"/streams/main", nil))
	require.Equal(t, http.StatusNotFound, do(t, http.MethodDelete, ts.URL+"/streams/main", nil))

	errResponse := ErrorResponse{}
	require.Equal(t, http.StatusNotFound, do(t, http.MethodGet, ts.URL+"/streams/main", &errResponse))
	require.Contains(t, errResponse.Error, "not found")
}

func TestServer_Errors(t *testing.T) {
	tests := []struct {
		name       string
		options    []Option
		prepare    func(clk *clock.ManualClock)
		requests   int
		wantStatus int
	}{
		{
			name:       "strict capacity",
			options:    []Option{WithMaxFPS(3), WithStrictCapacity()},
			requests:   4,
			wantStatus: http.StatusTooManyRequests,
		},
		{
			name:    "clock failure",
			options: []Option{WithMaxFPS(3)},
			prepare: func(clk *clock.ManualClock) {
				clk.Fail(nil)
			},
			requests:   1,
			wantStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clk := clock.NewManualClock(1000)
			ts := newTestServer(t, clk, tt.options...)
			if tt.prepare != nil {
				tt.prepare(clk)
			}

			var status int
			errResponse := ErrorResponse{}
			for i := 0; i < tt.requests; i++ {
				status = do(t, http.MethodPost, ts.URL+"/streams/s/frames", &errResponse)
			}
			require.Equal(t, tt.wantStatus, status)
			require.NotEmpty(t, errResponse.Error)
		})
	}
}

func TestServer_MaxStreams(t *testing.T) {
	ts := newTestServer(t, clock.NewManualClock(1000), WithMaxStreams(1))

	require.Equal(t, http.StatusOK, do(t, http.MethodPost, ts.URL+"/streams/a/frames", nil))
	require.Equal(t, http.StatusServiceUnavailable, do(t, http.MethodPost, ts.URL+"/streams/b/frames", nil))
}

func TestServer_WebSocket(t *testing.T) {
	clk := clock.NewManualClock(1000)
	ts := newTestServer(t, clk, WithMaxFPS(5))

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/streams/cam/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	for _, want := range []int{1, 2, 3, 4, 5, 5} {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("frame")))

		response := Response{}
		require.NoError(t, conn.ReadJSON(&response))
		require.Equal(t, "cam", response.Stream)
		require.Equal(t, want, response.FPS)
	}

	clk.Fail(nil)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("frame")))
	errResponse := ErrorResponse{}
	require.NoError(t, conn.ReadJSON(&errResponse))
	require.Contains(t, errResponse.Error, "clock unavailable")

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
}
