package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/stiflerGit/fpscounter/internal/logging"
	"github.com/stiflerGit/fpscounter/pkg/server"
)

const shutdownTimeout = 5 * time.Second

var cli struct {
	Addr       string `help:"address on which start the server" default:"localhost:8080" env:"FPS_ADDR"`
	MaxFPS     int    `help:"highest frame rate measured per stream" default:"240" env:"FPS_MAX_FPS" name:"max-fps"`
	MaxStreams int    `help:"maximum number of streams tracked, 0 for no limit" default:"0" env:"FPS_MAX_STREAMS"`
	Strict     bool   `help:"reject frames past max-fps with 429 instead of capping the reading" env:"FPS_STRICT"`
	LogLevel   string `help:"log level" default:"info" enum:"trace,debug,info,warn,error" env:"FPS_LOG_LEVEL"`
	LogFormat  string `help:"log format" default:"console" enum:"console,json" env:"FPS_LOG_FORMAT"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("fps-server"),
		kong.Description("Measure the frames per second of remote render loops."),
	)

	logger, err := logging.Stderr(cli.LogLevel, cli.LogFormat)
	kctx.FatalIfErrorf(err)

	options := []server.Option{
		server.WithMaxFPS(cli.MaxFPS),
		server.WithMaxStreams(cli.MaxStreams),
		server.WithLogger(logger),
	}
	if cli.Strict {
		options = append(options, server.WithStrictCapacity())
	}

	myServer, err := server.New(options...)
	if err != nil {
		logger.Fatal().Err(err).Msg("creating new server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:              cli.Addr,
		Handler:           myServer,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutting down server")
		}
	}()

	logger.Info().Str("addr", cli.Addr).Int("max_fps", cli.MaxFPS).Msg("starting server")

	if err = httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("serving")
	}

	logger.Info().Msg("server stopped")
}
