// Command server runs the people directory admin API.
//
// @title        People Directory Admin API
// @version      1.0
// @description  CRUD backend for a directory of people records with
// @description  session-based admin authentication and an audit log.
// @BasePath     /api
//
// @securityDefinitions.apikey  SessionCookie
// @in                          header
// @name                        Cookie
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/peopledir/people-api/internal/api"
	mongodb "github.com/peopledir/people-api/internal/infrastructure/db/mongo"
	redisdb "github.com/peopledir/people-api/internal/infrastructure/db/redis"
	"github.com/peopledir/people-api/internal/pkg/config"
	"github.com/peopledir/people-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() {
		_ = rdb.Close()
	}()

	if err := mongodb.NewAdminRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create admin indexes")
	}
	if err := mongodb.NewAuditRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create audit indexes")
	}
	if err := mongodb.Seed(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("failed to seed database")
	}

	e := api.NewRouter(db, rdb, cfg, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
