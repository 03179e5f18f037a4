package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jhoicas/inventario-hardware/internal/application/builds"
	"github.com/jhoicas/inventario-hardware/internal/application/inventory"
	"github.com/jhoicas/inventario-hardware/internal/application/ports"
	"github.com/jhoicas/inventario-hardware/internal/application/trade"
	"github.com/jhoicas/inventario-hardware/internal/domain/build"
	"github.com/jhoicas/inventario-hardware/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-hardware/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/inventario-hardware/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/inventario-hardware/internal/interfaces/http"
	"github.com/jhoicas/inventario-hardware/pkg/config"
	"github.com/jhoicas/inventario-hardware/pkg/logger"
	"github.com/jhoicas/inventario-hardware/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migración del esquema")
	}

	// Borradores del editor: Redis si está disponible; si no, memoria del proceso.
	var drafts ports.DraftStore
	pingCtx, cancelPing := context.WithTimeout(ctx, 3*time.Second)
	rdb, err := infraredis.NewClient(pingCtx, cfg.Redis)
	cancelPing()
	if err != nil {
		log.Warn().Err(err).Msg("Redis no disponible, borradores en memoria (se pierden al reiniciar)")
		drafts = memory.NewDraftStore()
	} else {
		defer rdb.Close()
		drafts = infraredis.NewDraftStore(rdb)
	}

	m := metrics.New(strings.ReplaceAll(cfg.App.Name, "-", "_"))
	itemRepo := postgres.NewItemRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	itemUC := inventory.NewItemUseCase(itemRepo, txRunner, log, m)
	buildUC := builds.NewBuildUseCase(itemRepo, txRunner, drafts, builds.Config{
		Options: build.Options{
			MaxNameLength:        cfg.Build.NameMaxLength,
			EnforceRequiredSlots: cfg.Build.EnforceRequiredSlots,
		},
		DraftTTL: cfg.Build.DraftTTL(),
	}, log, m)
	tradeUC := trade.NewTradeUseCase(itemRepo, txRunner, log, m)

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		AppName:   cfg.App.Name,
		ItemUC:    itemUC,
		BuildUC:   buildUC,
		TradeUC:   tradeUC,
		JWTSecret: cfg.JWT.Secret,
		Log:       log,
		Metrics:   m,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
