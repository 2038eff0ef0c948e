package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/stiflerGit/fpscounter/pkg/server"
)

type remoteFlags struct {
	Address string `help:"address of the server" default:"http://localhost:8080"`
	Stream  string `help:"name of the stream frames are reported on" default:"default"`
}

func (f remoteFlags) url(scheme, suffix string) (string, error) {
	u, err := url.Parse(f.Address)
	if err != nil {
		return "", fmt.Errorf("parsing address %s: %w", f.Address, err)
	}
	if scheme != "" {
		u.Scheme = scheme
	}
	base := strings.TrimSuffix(u.Path, "/") + "/streams/"
	u.Path = base + f.Stream + suffix
	u.RawPath = base + url.PathEscape(f.Stream) + suffix
	return u.String(), nil
}

type httpCmd struct {
	Loop   loopFlags   `embed:""`
	Remote remoteFlags `embed:""`
}

func (c *httpCmd) Run(ctx context.Context, logger zerolog.Logger) error {
	addr, err := c.Remote.url("", "/frames")
	if err != nil {
		return err
	}

	return c.Loop.run(ctx, func(i int) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, addr, nil)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return fmt.Errorf("doing post request to %s: %w", addr, err)
		}
		defer resp.Body.Close()

		bytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response body: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			errResponse := server.ErrorResponse{}
			_ = json.Unmarshal(bytes, &errResponse)
			return fmt.Errorf("server replied %s: %s", resp.Status, errResponse.Error)
		}

		response := server.Response{}
		if err = json.Unmarshal(bytes, &response); err != nil {
			return fmt.Errorf("unmarshalling response: %w", err)
		}

		logResponse(logger, i, response)
		return nil
	})
}

type wsCmd struct {
	Loop   loopFlags   `embed:""`
	Remote remoteFlags `embed:""`
}

func (c *wsCmd) Run(ctx context.Context, logger zerolog.Logger) error {
	scheme := "ws"
	if strings.HasPrefix(c.Remote.Address, "https") {
		scheme = "wss"
	}

	addr, err := c.Remote.url(scheme, "/ws")
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, addr, nil)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", addr, err)
	}
	defer conn.Close()

	err = c.Loop.run(ctx, func(i int) error {
		if err := conn.WriteMessage(websocket.TextMessage, []byte("frame")); err != nil {
			return fmt.Errorf("writing message: %w", err)
		}

		var raw json.RawMessage
		if err := conn.ReadJSON(&raw); err != nil {
			return fmt.Errorf("reading message: %w", err)
		}

		errResponse := server.ErrorResponse{}
		if json.Unmarshal(raw, &errResponse) == nil && errResponse.Error != "" {
			return fmt.Errorf("server replied: %s", errResponse.Error)
		}

		response := server.Response{}
		if err := json.Unmarshal(raw, &response); err != nil {
			return fmt.Errorf("unmarshalling response: %w", err)
		}

		logResponse(logger, i, response)
		return nil
	})

	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if werr := conn.WriteMessage(websocket.CloseMessage, closeMsg); werr != nil {
		logger.Debug().Err(werr).Msg("closing websocket")
	}

	return err
}

func logResponse(logger zerolog.Logger, frame int, r server.Response) {
	logger.Info().
		Int("frame", frame).
		Str("stream", r.Stream).
		Int("fps", r.FPS).
		Bool("capped", r.Capped).
		Msg("frames per second")
}
