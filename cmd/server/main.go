package main

import (
	"flag"
	"net"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"headsuppoker-server/internal/config"
	"headsuppoker-server/pkg/poker/holdem"
	"headsuppoker-server/pkg/room"
)

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", "", "the listen address (overrides the config)")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()

	listenAddr := cfg.Addr
	if *addr != "" {
		listenAddr = *addr
	}

	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		logrus.WithError(err).Fatal("could not listen")
	}
	defer func() { _ = listener.Close() }()

	logrus.WithFields(logrus.Fields{
		"addr":    listener.Addr().String(),
		"version": Version,
	}).Info("waiting for two players")

	registry, err := room.Accept(listener, cfg.JoinTimeout(), logrus.StandardLogger())
	if err != nil {
		logrus.WithError(err).Fatal("could not seat two players")
	}

	dealer, err := room.NewDealer(logrus.StandardLogger(), registry, holdem.Options{
		SmallBlind:    cfg.Game.SmallBlind,
		BigBlind:      cfg.Game.BigBlind,
		StartingChips: cfg.Game.StartingChips,
	}, cfg.TurnTimeout(), cfg.ContinueTimeout())
	if err != nil {
		logrus.WithError(err).Fatal("could not start the match")
	}

	if err := dealer.Run(); err != nil {
		logrus.WithError(err).Fatal("match aborted")
	}

	logrus.Info("match finished")
}

func setupLogger() {
	if lvl := config.Instance().LogLevel; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
