package main

import (
	"log"
	"net/http"

	"github.com/ivanoskov/fivest/internal/auth"
	"github.com/ivanoskov/fivest/internal/charts"
	"github.com/ivanoskov/fivest/internal/config"
	"github.com/ivanoskov/fivest/internal/repository"
	"github.com/ivanoskov/fivest/internal/server"
	"github.com/ivanoskov/fivest/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	repo, err := repository.NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey)
	if err != nil {
		log.Fatal(err)
	}

	sessions := auth.NewProvider(cfg.SupabaseProjectRef, cfg.SupabaseKey)
	tracker := service.NewExpenseTracker(repo)
	srv := server.NewServer(tracker, sessions, charts.NewChartGenerator())

	log.Printf("Сервер запущен на порту %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, srv.Handler()); err != nil {
		log.Fatal(err)
	}
}
