package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/riftcraft/rift/server"
	"github.com/riftcraft/rift/server/console"
)

func main() {
	confPath := flag.String("config", "rift.toml", "path to the server's TOML config file")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	userConf, err := server.Load(*confPath)
	if err != nil {
		log.Error("load config", "err", err)
		os.Exit(1)
	}

	cfg := server.DefaultAdapter{User: userConf, Log: log}
	srv := server.New(cfg, 20, log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cons := console.New(srv, log)
	go cons.Run(ctx)

	log.Info("starting server", "address", userConf.Network.Address)
	srv.Run(ctx)
	log.Info("server stopped")
}
