package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/bracket-cli/internal/model"
	"github.com/sells-group/bracket-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for simulation requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initSimulator(ctx, "serve")
		if err != nil {
			return err
		}
		defer env.Close()

		// Set up routes
		mux := http.NewServeMux()

		mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
		})

		mux.HandleFunc("POST /simulate", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Year int `json:"year"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
				return
			}

			if req.Year == 0 {
				http.Error(w, `{"error":"year is required"}`, http.StatusBadRequest)
				return
			}

			// Run the simulation asynchronously
			go func() {
				result, err := env.Sim.Run(ctx, req.Year)
				if err != nil {
					zap.L().Error("simulation request failed",
						zap.Int("year", req.Year),
						zap.Error(err),
					)
					return
				}
				zap.L().Info("simulation request complete",
					zap.Int("year", req.Year),
					zap.String("champion", result.Champion),
				)
			}()

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusAccepted)
			json.NewEncoder(w).Encode(map[string]any{
				"status": "accepted",
				"year":   req.Year,
			})
		})

		mux.HandleFunc("GET /runs", func(w http.ResponseWriter, r *http.Request) {
			filter := store.RunFilter{Limit: 50}
			if y := r.URL.Query().Get("year"); y != "" {
				year, convErr := strconv.Atoi(y)
				if convErr != nil {
					http.Error(w, `{"error":"invalid year"}`, http.StatusBadRequest)
					return
				}
				filter.Year = year
			}
			if s := r.URL.Query().Get("status"); s != "" {
				filter.Status = model.RunStatus(s)
			}

			runs, listErr := env.Store.ListRuns(r.Context(), filter)
			if listErr != nil {
				zap.L().Error("list runs failed", zap.Error(listErr))
				http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(runs)
		})

		mux.HandleFunc("GET /runs/{id}", func(w http.ResponseWriter, r *http.Request) {
			run, getErr := env.Store.GetRun(r.Context(), r.PathValue("id"))
			if getErr != nil {
				http.Error(w, `{"error":"run not found"}`, http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(run)
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
