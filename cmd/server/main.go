package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"cafirm-backend/internal/config"
	"cafirm-backend/internal/db"
	"cafirm-backend/internal/fixtures"
	"cafirm-backend/internal/handler"
	"cafirm-backend/internal/ports"
	"cafirm-backend/internal/repository"
	"cafirm-backend/internal/repository/pg"
	"cafirm-backend/internal/server"
)

type stores struct {
	clients   ports.ClientStore
	services  ports.ServiceStore
	tickets   ports.TicketStore
	documents ports.DocumentStore
	users     ports.UserStore
	health    ports.HealthChecker
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	data, err := fixtures.Load()
	if err != nil {
		logger.Error("failed to load fixtures", "err", err)
		os.Exit(1)
	}

	var st stores
	switch cfg.DataBackend {
	case config.BackendPostgres:
		pool, err := db.New(ctx, cfg)
		if err != nil {
			logger.Error("failed to connect database", "err", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pool.InitSchema(ctx); err != nil {
			logger.Error("failed to init schema", "err", err)
			os.Exit(1)
		}
		if err := pool.Seed(ctx, data); err != nil {
			logger.Error("failed to seed database", "err", err)
			os.Exit(1)
		}
		st = stores{
			clients:   pg.ClientRepository{DB: pool},
			services:  pg.ServiceRepository{DB: pool},
			tickets:   pg.TicketRepository{DB: pool},
			documents: pg.DocumentRepository{DB: pool},
			users:     pg.UserRepository{DB: pool},
			health:    pool,
		}
	default:
		delays := repository.Delays{}
		if cfg.MockLatency {
			delays = repository.DefaultDelays
		}
		st = stores{
			clients:   repository.ClientRepository{Data: data, Delays: delays},
			services:  repository.ServiceRepository{Data: data, Delays: delays},
			tickets:   repository.TicketRepository{Data: data, Delays: delays},
			documents: repository.DocumentRepository{Data: data, Delays: delays},
			users:     repository.UserRepository{Data: data, Delays: delays},
			health:    repository.Health{Data: data},
		}
	}

	healthHandler := handler.HealthHandler{Store: st.health}
	dashboardHandler := handler.DashboardHandler{Clients: st.clients, Services: st.services, Tickets: st.tickets, Documents: st.documents}
	clientHandler := handler.ClientHandler{Clients: st.clients, Services: st.services, Tickets: st.tickets, Documents: st.documents}
	serviceHandler := handler.ServiceHandler{Repo: st.services}
	ticketHandler := handler.TicketHandler{Repo: st.tickets}
	documentHandler := handler.DocumentHandler{Repo: st.documents}
	userHandler := handler.UserHandler{Repo: st.users}
	docsHandler := handler.DocsHandler{OpenAPIPath: cfg.OpenAPIPath}

	router := server.NewRouter(logger, healthHandler, dashboardHandler, clientHandler, serviceHandler, ticketHandler, documentHandler, userHandler, docsHandler)

	if err := server.Start(ctx, cfg, router, logger); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
