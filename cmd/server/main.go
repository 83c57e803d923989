package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gws "github.com/huddle-rtc/huddle/internal/adapter/driven/gateway/ws"
	"github.com/huddle-rtc/huddle/internal/adapter/driven/identity/token"
	"github.com/huddle-rtc/huddle/internal/adapter/driven/persistence/postgres"
	handler "github.com/huddle-rtc/huddle/internal/adapter/driving/http"
	"github.com/huddle-rtc/huddle/internal/config"
	"github.com/huddle-rtc/huddle/internal/core/service"
	clog "github.com/huddle-rtc/huddle/internal/log"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	clog.Init(cfg.Env)

	gdb, err := postgres.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}
	if err := postgres.Migrate(gdb); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	registry := gws.NewRegistry()
	verifier := token.NewVerifier(cfg.TokenSecret)

	roomService := service.NewRoomService(postgres.NewRoomRepository(gdb))
	userService := service.NewUserService(postgres.NewUserRepository(gdb))
	relayService := service.NewRelayService(registry)

	h := handler.NewHandler(cfg, verifier, roomService, userService, relayService)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: h.NewRouter(),
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
