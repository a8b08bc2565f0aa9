package main

import (
	"context"
	"fmt"
	"log"

	"github.com/labstack/echo/v4"

	"github.com/cklam2/canteen/internal/auth"
	"github.com/cklam2/canteen/internal/cart"
	"github.com/cklam2/canteen/internal/config"
	"github.com/cklam2/canteen/internal/events"
	"github.com/cklam2/canteen/internal/httpserver"
	"github.com/cklam2/canteen/internal/logging"
	"github.com/cklam2/canteen/internal/menu"
	"github.com/cklam2/canteen/internal/order"
	"github.com/cklam2/canteen/internal/repo"
	"github.com/cklam2/canteen/internal/search"
	"github.com/cklam2/canteen/pkg/db"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustNonEmpty(cfg.APIToken, "API_TOKEN")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)

	gdb, err := db.Open(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kp.Close()
		publisher = kp
	} else {
		logger.Warn("KAFKA_BROKERS not set, order events disabled")
	}

	var searchClient *search.Client
	if cfg.ESURL != "" {
		searchClient, err = search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword, cfg.ESIndex)
		if err != nil {
			logger.Error("elasticsearch unavailable, menu search disabled", "error", err)
			searchClient = nil
		}
	} else {
		logger.Warn("ES_URL not set, menu search disabled")
	}

	gormRepo := &repo.GormRepo{DB: gdb}
	carts := cart.NewStore()

	orderSvc := &order.Service{Repo: gormRepo, Events: publisher}
	authSvc := &auth.Service{Repo: gormRepo, JWTSecret: cfg.JWTSecret}
	menuSvc := &menu.Service{Repo: gormRepo}
	if searchClient != nil {
		menuSvc.Indexer = searchClient
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(httpserver.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:  &httpserver.AuthHTTP{Svc: authSvc},
		MenuHandler:  &httpserver.MenuHTTP{Svc: menuSvc},
		CartHandler:  &httpserver.CartHTTP{Carts: carts, Repo: gormRepo, Orders: orderSvc},
		OrderHandler: &httpserver.OrderHTTP{Svc: orderSvc},
		AdminHandler: &httpserver.AdminHTTP{Orders: orderSvc, Menu: menuSvc, Repo: gormRepo, Search: searchClient},
		APIHandler:   &httpserver.APIHTTP{Repo: gormRepo},
		JWTSecret:    cfg.JWTSecret,
		APIToken:     cfg.APIToken,
	})

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.ServerPort)))
}
