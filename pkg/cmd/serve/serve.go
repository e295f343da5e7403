package serve

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kreyling/cragg/internal/assets"
	"github.com/kreyling/cragg/internal/config"
)

const shutdownTimeout = 10 * time.Second

type Input struct {
	address string
}

func NewCmdServe() *cobra.Command {
	data := Input{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the live dashboard over HTTP, recomputed on every request.",
		Run: func(cmd *cobra.Command, args []string) {
			if err := runServer(cmd.Context(), &data); err != nil {
				log.Error(errors.Wrap(err, "server failed"))
				os.Exit(1)
			}
		},
		Args: cobra.NoArgs,
	}

	cmd.Flags().StringVarP(
		&data.address, "address", "a", "0.0.0.0:5050",
		"HTTP server address. Example: --address 127.0.0.1:8080",
	)
	return cmd
}

func runServer(ctx context.Context, input *Input) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	tmpl, err := assets.ReadFile(assets.DashboardTemplate)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              input.address,
		Handler:           NewRouter(cfg.Collector(nil), cfg.JenkinsJob(), tmpl),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Infof("Serving dashboard of %s on http://%s", cfg.JenkinsJob().URL(), input.address)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}
