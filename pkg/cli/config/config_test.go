package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/auditai/pkg/cli/config"
	"github.com/secmon-lab/auditai/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "auditai.toml", `
[api]
base_url = "http://localhost:8000"
timeout = "5s"

[ingest]
submit_rate = 2.5
timezone = "America/Sao_Paulo"
`)

	f, err := config.LoadFile(path)
	gt.NoError(t, err).Required()
	gt.Value(t, f.API.BaseURL).Equal("http://localhost:8000")
	gt.Value(t, f.API.Timeout).Equal("5s")
	gt.Value(t, f.Ingest.SubmitRate).Equal(2.5)
	gt.Value(t, f.Ingest.Timezone).Equal("America/Sao_Paulo")
}

func TestLoadFile_Errors(t *testing.T) {
	empty, err := config.LoadFile("")
	gt.NoError(t, err).Required()
	gt.Value(t, empty.API.BaseURL).Equal("")

	_, err = config.LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	gt.Error(t, err)

	_, err = config.LoadFile(writeFile(t, "bad.toml", "[api]\nbase_uri = \"x\"\n"))
	gt.Error(t, err).Is(config.ErrInvalidConfig)
}

func runWithFlags(t *testing.T, flags []cli.Flag, args []string, action cli.ActionFunc) {
	t.Helper()
	cmd := &cli.Command{Name: "test", Flags: flags, Action: action}
	gt.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...))).Required()
}

func TestAPI_Merge(t *testing.T) {
	file := &config.File{API: config.FileAPI{BaseURL: "http://from-file", Timeout: "7s"}}

	t.Run("file fills unset flags", func(t *testing.T) {
		var api config.API
		runWithFlags(t, api.Flags(), nil, func(ctx context.Context, c *cli.Command) error {
			return api.Merge(c, file)
		})
		gt.Value(t, api.BaseURLForTest()).Equal("http://from-file")
		gt.Value(t, api.TimeoutForTest()).Equal(7 * time.Second)
	})

	t.Run("flags win over file", func(t *testing.T) {
		var api config.API
		runWithFlags(t, api.Flags(), []string{"--api-base-url", "http://from-flag", "--api-timeout", "1s"},
			func(ctx context.Context, c *cli.Command) error {
				return api.Merge(c, file)
			})
		gt.Value(t, api.BaseURLForTest()).Equal("http://from-flag")
		gt.Value(t, api.TimeoutForTest()).Equal(time.Second)
	})

	t.Run("invalid file timeout", func(t *testing.T) {
		var api config.API
		var mergeErr error
		runWithFlags(t, api.Flags(), nil, func(ctx context.Context, c *cli.Command) error {
			mergeErr = api.Merge(c, &config.File{API: config.FileAPI{Timeout: "soon"}})
			return nil
		})
		gt.Error(t, mergeErr).Is(config.ErrInvalidConfig)
	})
}

func TestAPI_Configure(t *testing.T) {
	var api config.API
	runWithFlags(t, api.Flags(), []string{"--api-base-url", "http://localhost:9999/"}, func(ctx context.Context, c *cli.Command) error {
		return nil
	})

	client, err := api.Configure()
	gt.NoError(t, err).Required()
	gt.Value(t, client.BaseURL()).Equal("http://localhost:9999")
}

func TestIngest_Configure(t *testing.T) {
	opts, err := config.NewIngestForTest(0, "America/Sao_Paulo").Configure()
	gt.NoError(t, err).Required()
	gt.Array(t, opts).Length(1)

	opts, err = config.NewIngestForTest(3, "").Configure()
	gt.NoError(t, err).Required()
	gt.Array(t, opts).Length(2)

	_, err = config.NewIngestForTest(0, "Mars/Olympus").Configure()
	gt.Error(t, err).Is(config.ErrInvalidFlag)

	_, err = config.NewIngestForTest(-1, "UTC").Configure()
	gt.Error(t, err).Is(config.ErrInvalidFlag)
}

func TestIngest_Merge(t *testing.T) {
	var ingest config.Ingest
	runWithFlags(t, ingest.Flags(), []string{"--timezone", "Europe/Lisbon"}, func(ctx context.Context, c *cli.Command) error {
		ingest.Merge(c, &config.File{Ingest: config.FileIngest{SubmitRate: 4, Timezone: "UTC"}})
		return nil
	})
	gt.Value(t, ingest.TimezoneForTest()).Equal("Europe/Lisbon")
	gt.Value(t, ingest.SubmitRateForTest()).Equal(4.0)
}

func TestLogger_Configure(t *testing.T) {
	prev := logging.Default()
	t.Cleanup(func() { logging.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "auditai.log")
	closer, err := config.NewLoggerForTest("debug", "json", path).Configure()
	gt.NoError(t, err).Required()

	logging.Default().Info("hello", "client", "Acme")
	closer()

	raw, err := os.ReadFile(path)
	gt.NoError(t, err).Required()
	gt.String(t, string(raw)).Contains(`"msg":"hello"`)

	_, err = config.NewLoggerForTest("verbose", "json", "stderr").Configure()
	gt.Error(t, err).Is(config.ErrInvalidFlag)

	_, err = config.NewLoggerForTest("info", "xml", "stderr").Configure()
	gt.Error(t, err).Is(config.ErrInvalidFlag)
}

func TestLoadEnvFile(t *testing.T) {
	path := writeFile(t, ".env", "AUDITAI_TEST_FROM_DOTENV=loaded\n")
	t.Setenv("AUDITAI_ENV_FILE", "")
	t.Cleanup(func() { _ = os.Unsetenv("AUDITAI_TEST_FROM_DOTENV") })

	got, err := config.LoadEnvFile([]string{"auditai", "--env-file", path, "matrix"})
	gt.NoError(t, err).Required()
	gt.Value(t, got).Equal(path)
	gt.Value(t, os.Getenv("AUDITAI_TEST_FROM_DOTENV")).Equal("loaded")

	got, err = config.LoadEnvFile([]string{"auditai", "matrix"})
	gt.NoError(t, err).Required()
	gt.Value(t, got).Equal("")

	_, err = config.LoadEnvFile([]string{"auditai", "--env-file=" + filepath.Join(t.TempDir(), "none")})
	gt.Error(t, err)
}
