package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iov-one/charity/app"
	"github.com/iov-one/charity/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func serveCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose Prometheus metrics until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := e.logger()
			if err != nil {
				return err
			}
			reg := prometheus.NewRegistry()
			reg.MustRegister(prometheus.NewGoCollector())

			engine, closeDB, err := e.openEngine(app.WithMetrics(app.NewMetrics(reg)))
			if err != nil {
				return err
			}
			defer closeDB()

			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			srv := &http.Server{
				Addr:    e.conf.GetString("metrics.bind"),
				Handler: mux,
			}

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(stop)

			failed := make(chan error, 1)
			go func() {
				logger.Info("Serving metrics", "bind", srv.Addr, "chain", engine.ChainID())
				failed <- srv.ListenAndServe()
			}()

			select {
			case err := <-failed:
				return errors.Wrap(errors.ErrInput, err.Error())
			case <-stop:
				logger.Info("Shutting down")
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(ctx)
			}
		},
	}
	cmd.Flags().String("bind", "localhost:9100", "address of the metrics server")
	_ = e.conf.BindPFlag("metrics.bind", cmd.Flags().Lookup("bind"))
	return cmd
}
