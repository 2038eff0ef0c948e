package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/stiflerGit/fpscounter/internal/logging"
)

var cli struct {
	LogLevel  string `help:"log level" default:"info" enum:"trace,debug,info,warn,error"`
	LogFormat string `help:"log format" default:"console" enum:"console,json"`

	Local localCmd `cmd:"" help:"run a render loop and measure it locally"`
	HTTP  httpCmd  `cmd:"" name:"http" help:"report every frame to a server with a POST request"`
	WS    wsCmd    `cmd:"" name:"ws" help:"report every frame to a server over a websocket"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("fps-client"),
		kong.Description("Drive a render loop and print its frames per second."),
	)

	logger, err := logging.Stderr(cli.LogLevel, cli.LogFormat)
	kctx.FatalIfErrorf(err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.FatalIfErrorf(kctx.Run(logger))
}
