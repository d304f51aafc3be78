package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/andrew-torda/seqperplex/pkg/config"
	"github.com/andrew-torda/seqperplex/pkg/web"
)

func newServeCmd(a *app) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web front end",
		Long: `
Serve a page where sequences can be pasted in, a kind of perplexity
chosen and the results looked at as a chart or downloaded as csv.
The server stops on an interrupt or SIGTERM, after waiting for
requests that are running.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.bind(cmd.Flags(), map[string]string{
				"addr": "serve.addr",
				"port": "serve.port",
				"site": "serve.site",
			})
			if err != nil {
				return err
			}
			cfg, err := a.config()
			if err != nil {
				return usageError{err}
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			logger := log.New(os.Stderr, log.Prefix(), log.Ldate|log.Ltime)
			return Serve(ctx, cfg, logger, nil)
		},
	}
	f := serveCmd.Flags()
	f.String("addr", "", "address to listen on, all interfaces if empty")
	f.Int("port", 9019, "port to listen on")
	f.String("site", "Positional Perplexity", "site name for page titles")
	return serveCmd
}

// Serve runs the web front end until ctx is done, then shuts it down
// gracefully. If ready is not nil, it gets the listening address once
// the server accepts connections.
func Serve(ctx context.Context, cfg *config.Config, logger *log.Logger, ready chan<- net.Addr) error {
	global := web.NewGlobal(cfg.Serve.Site, cfg.ChartOpts(), logger)
	global.Kind = cfg.KindValue()
	global.Policy = cfg.Policy()
	global.Upper = cfg.Upper

	routing, err := web.Router(global)
	if err != nil {
		return err
	}
	addr := net.JoinHostPort(cfg.Serve.Addr, strconv.Itoa(cfg.Serve.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	srv := &http.Server{Handler: routing}

	logger.Println("Launching", global.Site)
	logger.Printf("Starting HTTP server on %s, charts %s x %s pixels\n", ln.Addr(),
		humanize.Comma(int64(global.Chart.Width)), humanize.Comma(int64(global.Chart.Height)))
	if ready != nil {
		ready <- ln.Addr()
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Println("Shutting down, waiting up to", cfg.Serve.Shutdown)
	shutCtx, cancel := context.WithTimeout(context.Background(), cfg.Serve.Shutdown)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
