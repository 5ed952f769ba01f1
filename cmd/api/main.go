package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/voyago/travelbot/backend/internal/config"
	"github.com/voyago/travelbot/backend/internal/handler"
	"github.com/voyago/travelbot/backend/internal/model/booking"
	"github.com/voyago/travelbot/backend/internal/service/dialogue"
	"github.com/voyago/travelbot/backend/internal/service/offers"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// Offer assembly pipeline: live positions plus currency rates.
	positionClient := offers.NewOpenSkyClient(cfg.OpenSkyBaseURL, cfg.UpstreamTimeout, logger)
	rateClient := offers.NewExchangeRateClient(cfg.ExchangeRateURL, cfg.UpstreamTimeout, logger)
	offerService := offers.NewService(positionClient, rateClient, logger)

	// One dialogue engine per booking domain, same machine shape.
	rideCatalog := booking.NewRideCatalog(booking.SeedRides())
	flightEngine := dialogue.NewEngine(dialogue.NewFlightDomain(offerService, cfg.SearchTimeout, logger))
	cabEngine := dialogue.NewEngine(dialogue.NewCabDomain(rideCatalog))
	dialogueService := dialogue.NewService(logger, flightEngine, cabEngine)

	router := handler.NewRouter(dialogueService, offerService, rideCatalog, logger)

	startServer(ctx, cfg.Addr(), router, logger)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		zapCfg := zap.NewProductionConfig()
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		return zapCfg.Build()
	}

	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapCfg.Build()
}

func startServer(ctx context.Context, addr string, router http.Handler, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("travelbot backend listening", zap.String("addr", addr))
	if err := runServer(ctx, srv); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
