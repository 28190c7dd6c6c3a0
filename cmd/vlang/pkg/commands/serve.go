package commands

import (
	"context"
	"crypto/tls"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vlang-lab/vlang/cmd/vlang/pkg/types"
	"github.com/vlang-lab/vlang/internal/server"
)

// ServeCommand exposes run, check and ast over HTTP/3 and HTTP/1.1.
type ServeCommand struct {
	*BaseCommand
}

// NewServeCommand creates a new serve command handler.
func NewServeCommand() *ServeCommand {
	return &ServeCommand{
		BaseCommand: NewBaseCommand("Serve the interpreter over HTTP/3",
			usageFor("serve", "[--addr host:port] [--http1 host:port] [--cert file --key file] [--max-body n] [--timeout d]")),
	}
}

// Execute implements the CommandHandler interface. Without --cert and
// --key a self-signed certificate for the listen host is generated.
func (c *ServeCommand) Execute(ctx *types.Context, args []string) error {
	cfg := ctx.Config.Serve
	fs := c.flags(ctx, "serve")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP/3 (UDP) listen address")
	fs.StringVar(&cfg.HTTP1Addr, "http1", cfg.HTTP1Addr, "HTTP/1.1 (TCP) listen address, empty to disable")
	fs.StringVar(&cfg.Cert, "cert", cfg.Cert, "TLS certificate file")
	fs.StringVar(&cfg.Key, "key", cfg.Key, "TLS key file")
	fs.Int64Var(&cfg.MaxBody, "max-body", cfg.MaxBody, "maximum request body in bytes")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "maximum evaluation time per run request")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return types.UsageError("%s", c.Usage())
	}
	if (cfg.Cert == "") != (cfg.Key == "") {
		return types.UsageError("--cert and --key must be given together")
	}

	tlsCfg, err := serverTLS(cfg.Addr, cfg.Cert, cfg.Key)
	if err != nil {
		return err
	}
	if cfg.Cert == "" {
		ctx.Logger.Warn("using a self-signed certificate")
	}

	s := &server.Server{
		Addr:      cfg.Addr,
		HTTP1Addr: cfg.HTTP1Addr,
		TLS:       tlsCfg,
		Handler: server.NewHandler(server.Options{
			MaxBody:        cfg.MaxBody,
			FloatPrecision: ctx.Config.FloatPrecision,
			MaxCallDepth:   ctx.Config.MaxCallDepth,
			Timeout:        cfg.Timeout,
			Logger:         ctx.Logger,
		}),
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Serve(sigCtx, ctx, s)
}

// Serve starts s and blocks until runCtx is done or a listener fails.
func Serve(runCtx context.Context, ctx *types.Context, s *server.Server) error {
	h3, h1, err := s.Start()
	if err != nil {
		return err
	}
	ctx.Logger.Info("listening on https://%s (HTTP/3)", h3)
	if h1 != "" {
		ctx.Logger.Info("listening on http://%s (HTTP/1.1)", h1)
	}

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error { return s.Wait(gctx) })
	g.Go(func() error {
		<-gctx.Done()
		ctx.Logger.Info("shutting down")
		return nil
	})
	return g.Wait()
}

func serverTLS(addr, cert, key string) (*tls.Config, error) {
	if cert != "" {
		return server.LoadTLS(cert, key)
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil || host == "" {
		host = "localhost"
	}
	return server.SelfSignedTLS([]string{host}, 24*time.Hour)
}
