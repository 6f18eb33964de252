package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/app"
	"github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/config"
	"github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/data"
	"github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/logger"
	"github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/pipeline"
	"github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/web"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()
	var cfgFile string

	root := &cobra.Command{
		Use:          "bcpredict",
		Short:        "Breast cancer prediction demo: random forest over a local CSV",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "bcpredict.yaml", "config file (yaml, toml or json)")
	root.PersistentFlags().String("data", "", "dataset CSV path (overrides data.path)")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	mustBind(v, "data.path", root.PersistentFlags().Lookup("data"))
	mustBind(v, "log.level", root.PersistentFlags().Lookup("log-level"))

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Train once and serve the Prediction, Insights and Feature Info views",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, lggr, err := setup(v, cfgFile)
			if err != nil {
				return err
			}
			defer lggr.Sync() //nolint:errcheck
			return serveHTTP(cmd.Context(), cfg, lggr)
		},
	}
	serve.Flags().String("addr", "", "listen address (overrides http.addr)")
	mustBind(v, "http.addr", serve.Flags().Lookup("addr"))

	train := &cobra.Command{
		Use:   "train",
		Short: "Train once and print held-out metrics and the feature schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, lggr, err := setup(v, cfgFile)
			if err != nil {
				return err
			}
			defer lggr.Sync() //nolint:errcheck
			st, err := app.Bootstrap(data.NewCache(), cfg.Data.Path, trainConfig(cfg), lggr)
			if err != nil {
				return err
			}
			if st.Halted() {
				return st.Halt
			}
			printReport(cmd, st.Trained)
			return nil
		},
	}

	root.AddCommand(serve, train)
	return root
}

func mustBind(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

func setup(v *viper.Viper, cfgFile string) (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, nil, err
	}
	lggr, err := logger.New(cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	return cfg, lggr.Named("bcpredict"), nil
}

func trainConfig(cfg *config.Config) pipeline.TrainConfig {
	return pipeline.TrainConfig{
		Seed:        cfg.Model.Seed,
		TestRatio:   cfg.Model.TestRatio,
		NEstimators: cfg.Model.NEstimators,
	}
}

func serveHTTP(ctx context.Context, cfg *config.Config, lggr logger.Logger) error {
	st, err := app.Bootstrap(data.NewCache(), cfg.Data.Path, trainConfig(cfg), lggr.Named("startup"))
	if err != nil {
		lggr.Errorw("Startup failed", "err", err)
		return err
	}

	srv, err := web.NewServer(st, lggr.Named("web"))
	if err != nil {
		return err
	}
	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		lggr.Infow("Listening", "addr", cfg.HTTP.Addr, "halted", st.Halted())
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	lggr.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

func printReport(cmd *cobra.Command, tr *pipeline.Trained) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Train size: %d, Test size: %d\n", tr.TrainSize, tr.TestSize)
	fmt.Fprintf(out, "Accuracy:  %.2f%%\n", tr.Accuracy*100)
	fmt.Fprintf(out, "Precision: %.4f  Recall: %.4f  F1: %.4f\n", tr.Precision, tr.Recall, tr.F1)
	fmt.Fprintln(out, "\nFeatures:")
	for _, c := range tr.Schema.Columns {
		name := c.Raw
		if c.Display != c.Raw {
			name = c.Display + " (" + c.Raw + ")"
		}
		fmt.Fprintf(out, "  %-45s min=%-10.4g mean=%-10.4g max=%.4g\n", name, c.Min, c.Mean, c.Max)
	}
}
