package commands

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/signalsfoundry/neo-explorer/internal/api"
	"github.com/signalsfoundry/neo-explorer/internal/logging"
	"github.com/signalsfoundry/neo-explorer/internal/observability"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		addr        string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog over HTTP with Prometheus metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
			if err != nil {
				return err
			}
			defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

			collector, err := observability.NewCatalogCollector(nil)
			if err != nil {
				return err
			}

			catalog, err := loadCatalog(ctx)
			if err != nil {
				return err
			}
			neos, approaches := catalog.Len()
			collector.SetCatalogSize(neos, approaches)

			metricsSrv := serveMetrics(metricsAddr, collector)

			apiSrv := &http.Server{
				Addr:    addr,
				Handler: api.NewServer(catalog, log, collector),
			}
			log.Info(ctx, "starting API server",
				logging.String("addr", addr),
				logging.Int("neos", neos),
				logging.Int("approaches", approaches),
			)
			go func() {
				if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error(ctx, "API server exited", logging.Err(err))
				}
			}()

			stopCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()
			<-stopCtx.Done()

			log.Info(ctx, "shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = apiSrv.Shutdown(shutdownCtx)
			if metricsSrv != nil {
				_ = metricsSrv.Shutdown(shutdownCtx)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "HTTP address for the catalog API")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "HTTP address for Prometheus /metrics")
	return cmd
}

func serveMetrics(addr string, collector *observability.CatalogCollector) *http.Server {
	if collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.Err(err))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}
