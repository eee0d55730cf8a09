package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	routes "github.com/mnuddindev/secondbrain/internal/api"
	v1 "github.com/mnuddindev/secondbrain/internal/api/v1"
	"github.com/mnuddindev/secondbrain/internal/config"
	"github.com/mnuddindev/secondbrain/internal/db"
	"github.com/mnuddindev/secondbrain/internal/store"
	"github.com/mnuddindev/secondbrain/pkg/logger"
	"github.com/mnuddindev/secondbrain/pkg/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	log, err := logger.NewLogger(ctx, logger.WithOutputDir(cfg.LogDir))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer log.Close()

	redisClient, err := db.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Error(ctx).WithMeta(utils.Map{"error": err.Error()}).Logs("Failed to initialize Redis")
		panic(err)
	}
	defer redisClient.Close(log)

	gormDB, err := db.NewDB(
		ctx,
		cfg.DatabaseDSN,
		store.Models(),
		db.WithLogger(log),
	)
	if err != nil {
		log.Error(ctx).WithMeta(utils.Map{"error": err.Error()}).Logs("Failed to initialize PostgreSQL database")
		panic("DB init failed")
	}
	defer db.CloseDB(gormDB, log)

	stores := store.NewStores(gormDB)
	api := v1.NewAPI(cfg, redisClient, log, stores)
	defer api.Recorder.Close()

	app := fiber.New(fiber.Config{
		ErrorHandler: utils.HandleError,
	})
	routes.NewRoutes(app, api, log)

	go func() {
		<-ctx.Done()
		log.Info(context.Background()).Logs("Shutting down server")
		app.Shutdown()
	}()

	if err := app.Listen(cfg.ServerAddr); err != nil {
		log.Error(ctx).WithMeta(utils.Map{"error": err.Error()}).Logs("Server stopped")
	}
}
