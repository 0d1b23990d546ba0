package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/common"
	"github.com/gaze-network/tzbot/common/errs"
	"github.com/gaze-network/tzbot/internal/config"
	"github.com/gaze-network/tzbot/modules/tipbot"
	"github.com/gaze-network/tzbot/pkg/automaxprocs"
	"github.com/gaze-network/tzbot/pkg/errorhandler"
	"github.com/gaze-network/tzbot/pkg/logger"
	"github.com/gaze-network/tzbot/pkg/logger/slogx"
	"github.com/gaze-network/tzbot/pkg/middleware/requestcontext"
	"github.com/gaze-network/tzbot/pkg/middleware/requestlogger"
	"github.com/gaze-network/tzbot/pkg/tezos/keychain"
	"github.com/gaze-network/tzbot/pkg/tezos/rpc"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Register Modules
var Modules = do.Package(
	do.LazyNamed(common.ModuleTipbot.String(), tipbot.New),
)

func NewRunCommand() *cobra.Command {
	// Create command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Start tzbot HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := automaxprocs.Init(); err != nil {
				logger.Error("Failed to set GOMAXPROCS", slogx.Error(err))
			}
			return runHandler(cmd, args)
		},
	}

	// Add local flags
	flags := runCmd.Flags()
	flags.Int("port", 8080, "HTTP server port")
	flags.String("wallet", "", "keychain entry used to send tips")
	flags.String("database", "", "tip ledger database, E.g. `postgres`. Tips are disabled if empty")

	// Bind flags to configuration
	config.BindPFlag("http_server.port", flags.Lookup("port"))
	config.BindPFlag("modules.tipbot.wallet", flags.Lookup("wallet"))
	config.BindPFlag("modules.tipbot.database", flags.Lookup("database"))

	return runCmd
}

const (
	shutdownTimeout = 60 * time.Second
)

func runHandler(cmd *cobra.Command, _ []string) error {
	conf := config.Load()

	// Validate inputs and configurations
	{
		if !conf.Network.IsSupported() {
			return errors.Wrapf(errs.Unsupported, "%q network is not supported", conf.Network.String())
		}
	}

	// Initialize application process context
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx, slogx.Stringer("network", conf.Network))

	injector := do.New(Modules)
	do.ProvideValue(injector, conf)
	do.ProvideValue(injector, ctx)

	// Initialize Tezos node client
	do.Provide(injector, func(i do.Injector) (*rpc.Client, error) {
		conf := do.MustInvoke[config.Config](i)

		client, err := newNodeClient(conf)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		// Check Tezos node connection
		{
			start := time.Now()
			nodeURL := conf.TezosNode.NodeURL(conf.Network)
			logger.InfoContext(ctx, "Connecting to Tezos node...", slogx.String("url", nodeURL))
			head, err := client.Head(ctx)
			if err != nil {
				return nil, errors.Wrapf(err, "can't connect to Tezos node %q", nodeURL)
			}
			logger.InfoContext(ctx, "Connected to Tezos node",
				slog.Duration("latency", time.Since(start)),
				slog.Int64("level", head.Level),
				slogx.String("protocol", head.Protocol),
			)
		}

		return client, nil
	})

	// Initialize keychain
	do.Provide(injector, func(i do.Injector) (*keychain.Keychain, error) {
		conf := do.MustInvoke[config.Config](i)
		return loadKeychain(conf)
	})

	// Initialize HTTP server
	do.Provide(injector, func(i do.Injector) (*fiber.App, error) {
		app := fiber.New(fiber.Config{
			AppName:      "tzbot",
			ErrorHandler: errorhandler.NewHTTPErrorHandler(),
		})
		app.
			Use(favicon.New()).
			Use(cors.New()).
			Use(requestid.New()).
			Use(requestcontext.New(
				requestcontext.WithRequestId(),
				requestcontext.WithNetwork(conf.Network.String()),
			)).
			Use(requestlogger.New(conf.HTTPServer.Logger)).
			Use(fiberrecover.New(fiberrecover.Config{
				EnableStackTrace: true,
				StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
					buf := make([]byte, 1024) // bufLen = 1024
					buf = buf[:runtime.Stack(buf, false)]
					logger.ErrorContext(c.UserContext(), "Something went wrong, panic in http handler", errors.Newf("panic: %v", e), slog.String("stacktrace", string(buf)))
				},
			})).
			Use(compress.New(compress.Config{
				Level: compress.LevelDefault,
			}))

		// Health check
		app.Get("/", func(c *fiber.Ctx) error {
			return errors.WithStack(c.SendStatus(http.StatusOK))
		})

		return app, nil
	})

	// Run modules
	if _, err := do.InvokeNamed[*tipbot.Tipbot](injector, common.ModuleTipbot.String()); err != nil {
		return errors.Wrap(err, "can't init tipbot module")
	}

	// Run API server
	httpServer := do.MustInvoke[*fiber.App](injector)
	go func() {
		// stop main process if API stopped
		defer stop()

		logger.InfoContext(ctx, "Started HTTP server", slog.Int("port", conf.HTTPServer.Port))
		if err := httpServer.Listen(fmt.Sprintf(":%d", conf.HTTPServer.Port)); err != nil {
			logger.PanicContext(ctx, "Something went wrong, error during running HTTP server", slogx.Error(err))
		}
	}()

	logger.InfoContext(ctx, "tzbot started")

	// Wait for interrupt signal to gracefully stop the server
	<-ctx.Done()

	// Force shutdown if timeout exceeded or got signal again
	go func() {
		defer os.Exit(1)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		select {
		case <-ctx.Done():
			logger.FatalContext(ctx, "Received exit signal again. Force shutdown...")
		case <-time.After(shutdownTimeout + 15*time.Second):
			logger.FatalContext(ctx, "Shutdown timeout exceeded. Force shutdown...")
		}
	}()

	if err := httpServer.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.ErrorContext(ctx, "Failed to shutdown HTTP server", err)
	}
	if err := injector.Shutdown(); err != nil {
		logger.PanicContext(ctx, "Failed while gracefully shutting down", slogx.Error(err))
	}

	return nil
}
