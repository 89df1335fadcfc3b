package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/auditai/pkg/cli/config"
	"github.com/secmon-lab/auditai/pkg/repository/cache"
	"github.com/secmon-lab/auditai/pkg/service/auditapi"
	"github.com/secmon-lab/auditai/pkg/usecase"
	"github.com/secmon-lab/auditai/pkg/utils/errutil"
	"github.com/secmon-lab/auditai/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func Run(ctx context.Context, args []string, version string) error {
	return run(ctx, args, version, os.Stdout)
}

func run(ctx context.Context, args []string, version string, w io.Writer) error {
	if _, err := config.LoadEnvFile(args); err != nil {
		return err
	}

	// Commands stop cooperatively on interrupt; upload finishes the row in
	// flight and reports the rest as skipped.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g := &global{version: version}
	var closer func()
	flushSentry := func() {}

	flags := []cli.Flag{
		config.EnvFileFlag(),
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "TOML configuration file",
			Sources:     cli.EnvVars("AUDITAI_CONFIG"),
			Destination: &g.configPath,
		},
	}
	flags = append(flags, g.logger.Flags()...)
	flags = append(flags, g.sentry.Flags()...)
	flags = append(flags, g.api.Flags()...)
	flags = append(flags, g.ingest.Flags()...)

	app := &cli.Command{
		Name:    "auditai",
		Usage:   "Client for the AuditAI audit and compliance API",
		Version: version,
		Writer:  w,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := g.logger.Configure()
			if err != nil {
				return ctx, err
			}
			closer = f

			flush, err := g.sentry.Configure(version)
			if err != nil {
				return ctx, err
			}
			flushSentry = flush

			logging.Default().Debug("Starting auditai",
				"logger", g.logger,
				"api", g.api,
				"ingest", g.ingest,
				"sentry", g.sentry,
			)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if closer != nil {
				closer()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(g),
			cmdUpload(g),
			cmdMatrix(g),
			cmdExport(g),
			cmdFeedback(g),
			cmdRegister(g),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		_ = errutil.Handle(ctx, err, "failed to run app")
		flushSentry()
		return err
	}
	flushSentry()

	return nil
}

// global carries the root flags shared by every subcommand
type global struct {
	version    string
	configPath string
	logger     config.Logger
	sentry     config.Sentry
	api        config.API
	ingest     config.Ingest
}

// setup merges the config file into the flags and builds the API client
// and use cases.
func (g *global) setup(c *cli.Command) (*usecase.UseCases, *auditapi.Client, error) {
	file, err := config.LoadFile(g.configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := g.api.Merge(c, file); err != nil {
		return nil, nil, err
	}
	g.ingest.Merge(c, file)

	client, err := g.api.Configure()
	if err != nil {
		return nil, nil, err
	}
	opts, err := g.ingest.Configure()
	if err != nil {
		return nil, nil, goerr.Wrap(err, "invalid ingestion settings")
	}

	return usecase.New(client, opts...), client, nil
}

// withSession scopes the retrieval cache to one command invocation
func withSession(ctx context.Context, client *auditapi.Client) context.Context {
	session := cache.New(client)
	ctx = cache.With(ctx, session)
	return logging.With(ctx, logging.Default().With("session", session.ID()))
}
