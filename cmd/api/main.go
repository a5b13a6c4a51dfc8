package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vaughan-dsouza/GoTodo/internal/config"
	"github.com/vaughan-dsouza/GoTodo/internal/db"
	"github.com/vaughan-dsouza/GoTodo/internal/handlers"
	"github.com/vaughan-dsouza/GoTodo/internal/middleware"
	"github.com/vaughan-dsouza/GoTodo/internal/store"
)

func main() {
	cfg := config.MustLoad()

	dbConn, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer dbConn.Close()

	if err := db.Migrate(context.Background(), dbConn); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	h := handlers.NewHandler(store.New(dbConn), store.NewSeededBookStore(), cfg)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(logger))
	r.Mount("/", h.Routes())

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
