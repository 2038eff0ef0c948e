// Package server exposes frame counters over HTTP and WebSocket.
//
// Remote render loops report each drawn frame on a named stream and get back
// the frames per second of that stream:
//
//	POST   /streams/{stream}/frames  record a frame
//	GET    /streams/{stream}/ws      record a frame per WebSocket message
//	GET    /streams/{stream}         snapshot of the stream
//	DELETE /streams/{stream}         forget the stream
//	GET    /streams                  list the streams
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/stiflerGit/fpscounter/pkg/clock"
	"github.com/stiflerGit/fpscounter/pkg/fps"
)

const (
	defaultMaxFPS = 240

	maxMessageSize = 512
)

// Response is the answer to every recorded frame.
type Response struct {
	Stream string `json:"stream"`
	FPS    int    `json:"fps"`
	MaxFPS int    `json:"max_fps"`
	Capped bool   `json:"capped"`
}

// StreamInfo is the answer to GET /streams/{stream}.
type StreamInfo struct {
	Stream string `json:"stream"`
	fps.Snapshot
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

type Server struct {
	counters *fps.Map
	mux      *http.ServeMux
	upgrader websocket.Upgrader

	maxFPS     int
	maxStreams int
	strict     bool
	newClock   func() clock.Clock

	logger zerolog.Logger
}

func New(options ...Option) (*Server, error) {
	s := &Server{
		maxFPS: defaultMaxFPS,
		newClock: func() clock.Clock {
			return clock.NewStdClock()
		},
		logger: zerolog.Nop(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	for _, opt := range options {
		opt(s)
	}

	counters, err := fps.NewMap(s.maxFPS,
		fps.WithClockFactory(s.newClock),
		fps.WithMaxStreams(s.maxStreams),
		fps.WithCounterOptions(fps.WithLogger(s.logger)),
	)
	if err != nil {
		return nil, fmt.Errorf("creating counters: %v", err)
	}
	s.counters = counters

	s.mux = http.NewServeMux()
	s.mux.HandleFunc("POST /streams/{stream}/frames", s.handleFrame)
	s.mux.HandleFunc("GET /streams/{stream}/ws", s.handleWebSocket)
	s.mux.HandleFunc("GET /streams/{stream}", s.handleStream)
	s.mux.HandleFunc("DELETE /streams/{stream}", s.handleRemove)
	s.mux.HandleFunc("GET /streams", s.handleList)

	return s, nil
}

func (s *Server) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	s.mux.ServeHTTP(resp, req)
}

// record ticks the counter of stream and returns the HTTP status matching the
// outcome.
func (s *Server) record(stream string) (Response, int, error) {
	c, err := s.counters.Get(stream)
	if err != nil {
		return Response{}, http.StatusServiceUnavailable, err
	}

	var n int
	if s.strict {
		n, err = c.TryTick()
	} else {
		n, err = c.TryTickMax()
	}

	var clockErr *fps.ClockError
	switch {
	case errors.Is(err, fps.ErrMaxFPS):
		return Response{}, http.StatusTooManyRequests, err
	case errors.As(err, &clockErr):
		s.logger.Error().Err(err).Str("stream", stream).Msg("recording frame")
		return Response{}, http.StatusInternalServerError, err
	case err != nil:
		return Response{}, http.StatusInternalServerError, err
	}

	return Response{
		Stream: stream,
		FPS:    n,
		MaxFPS: c.MaxFPS(),
		Capped: n == c.MaxFPS(),
	}, http.StatusOK, nil
}

func (s *Server) handleFrame(resp http.ResponseWriter, req *http.Request) {
	stream := req.PathValue("stream")

	r, status, err := s.record(stream)
	if err != nil {
		s.writeError(resp, status, err)
		return
	}

	s.logger.Debug().Str("stream", stream).Int("fps", r.FPS).Msg("frame")
	s.writeJSON(resp, http.StatusOK, r)
}

func (s *Server) handleStream(resp http.ResponseWriter, req *http.Request) {
	stream := req.PathValue("stream")

	c, ok := s.counters.Lookup(stream)
	if !ok {
		s.writeError(resp, http.StatusNotFound, fmt.Errorf("stream %q not found", stream))
		return
	}

	s.writeJSON(resp, http.StatusOK, StreamInfo{Stream: stream, Snapshot: c.Snapshot()})
}

func (s *Server) handleRemove(resp http.ResponseWriter, req *http.Request) {
	stream := req.PathValue("stream")

	if !s.counters.Remove(stream) {
		s.writeError(resp, http.StatusNotFound, fmt.Errorf("stream %q not found", stream))
		return
	}

	s.logger.Info().Str("stream", stream).Msg("stream removed")
	resp.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleList(resp http.ResponseWriter, req *http.Request) {
	s.writeJSON(resp, http.StatusOK, s.counters.Keys())
}

func (s *Server) handleWebSocket(resp http.ResponseWriter, req *http.Request) {
	stream := req.PathValue("stream")

	conn, err := s.upgrader.Upgrade(resp, req, nil)
	if err != nil {
		// Upgrade already replied to the client
		s.logger.Warn().Err(err).Str("stream", stream).Msg("upgrading connection")
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)

	s.logger.Info().Str("stream", stream).Str("remote", req.RemoteAddr).Msg("websocket opened")

	for {
		if _, _, err = conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn().Err(err).Str("stream", stream).Msg("reading message")
			}
			break
		}

		var msg interface{}
		r, _, rerr := s.record(stream)
		if rerr != nil {
			msg = ErrorResponse{Error: rerr.Error()}
		} else {
			msg = r
		}

		if err = conn.WriteJSON(msg); err != nil {
			s.logger.Warn().Err(err).Str("stream", stream).Msg("writing message")
			break
		}
	}

	s.logger.Info().Str("stream", stream).Msg("websocket closed")
}

func (s *Server) writeError(resp http.ResponseWriter, status int, err error) {
	s.writeJSON(resp, status, ErrorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(resp http.ResponseWriter, status int, v interface{}) {
	bytes, err := json.Marshal(v)
	if err != nil {
		s.logger.Error().Err(err).Msg("marshalling response")
		resp.WriteHeader(http.StatusInternalServerError)
		return
	}

	resp.Header().Set("Content-Type", "application/json")
	resp.WriteHeader(status)
	if _, err = resp.Write(bytes); err != nil {
		s.logger.Warn().Err(err).Msg("writing response")
	}
}
