package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"worldbridge/internal/agent"
	"worldbridge/internal/bus"
	"worldbridge/internal/config"
	"worldbridge/internal/engine"
	"worldbridge/internal/network"
	"worldbridge/internal/server"
	"worldbridge/internal/version"
	"worldbridge/pkg/logger"
)

func main() {
	// 1. Конфигурация: окружение, потом флаги
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal("Config error: ", err)
	}

	flag.IntVar(&cfg.Bots, "bots", cfg.Bots, "Number of patrol bots (0 for an empty world)")
	flag.StringVar(&cfg.Port, "port", cfg.Port, "HTTP port for spectators and debug endpoints")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		logger.Log.Fatal("Config error: ", err)
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)
	logger.Log.Info("Starting World Bridge...")
	logger.Log.Info(version.Current().String())

	// 2. Мир и шина
	eventBus := bus.New()
	world := engine.BuildWorld(cfg, eventBus)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// 3. Цикл симуляции
	g.Go(func() error { return world.Run(ctx) })

	// 4. Акторы, каждый в своей горутине
	for _, a := range world.Actors() {
		io, err := agent.NewBridge(world, a.ID)
		if err != nil {
			logger.Log.WithError(err).Fatal("Bridge error")
		}
		route := agent.PatrolRoute(a.Body.Cell(), world.Areas)
		bot := agent.NewBot(io, route, cfg.ThinkDelay)
		g.Go(func() error { return bot.Run(ctx) })
	}

	// 5. Зрители
	srv := server.New(world, network.NewBroadcaster(), cfg.Port)
	g.Go(func() error { return srv.Run(ctx) })
	g.Go(func() error { return srv.RunFrames(ctx, cfg.FrameEvery) })

	logger.Log.WithFields(logrus.Fields{
		"bots":      cfg.Bots,
		"port":      cfg.Port,
		"tick_rate": cfg.TickRate,
		"step":      cfg.StepDuration,
	}).Info("World is running")

	// Graceful Shutdown
	if err := g.Wait(); err != nil {
		logger.Log.Fatal("Server error: ", err)
	}

	logger.Log.WithField("sequence", eventBus.Sequence()).Info("Done.")
}
