package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/zvrva/ticketing/config"
	"github.com/zvrva/ticketing/internal/bootstrap"
	"github.com/zvrva/ticketing/internal/cache"
	"github.com/zvrva/ticketing/internal/credential"
	"github.com/zvrva/ticketing/internal/kafka"
	"github.com/zvrva/ticketing/internal/repository"
	"github.com/zvrva/ticketing/internal/service/auth"
	"github.com/zvrva/ticketing/internal/service/catalog"
	"github.com/zvrva/ticketing/internal/service/issuance"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis,
		time.Duration(cfg.Cache.FlightsTTLSeconds)*time.Second,
		time.Duration(cfg.Cache.ReportTTLSeconds)*time.Second,
	)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	issuanceRepo := repository.NewIssuanceRepository(pool)
	itineraryRepo := repository.NewItineraryRepository(pool)
	rateRepo := repository.NewRateRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	employeeRepo := repository.NewEmployeeRepository(pool)

	issuanceService := issuance.NewService(
		issuanceRepo,
		itineraryRepo,
		rateRepo,
		credential.NewGenerator(clockwork.NewRealClock()),
		issuance.WithProducer(producer, cfg.Kafka.TicketTopic),
		issuance.WithReportInvalidator(redisCache),
	)
	catalogService := catalog.NewCatalogService(flightRepo, ticketRepo, redisCache)
	authService := auth.NewService(employeeRepo, []byte(cfg.Auth.Secret), time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)

	if err := bootstrap.Run(ctx, cfg, authService, issuanceService, catalogService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
