package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/auditai/pkg/usecase"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"
)

// Ingest holds flags shared by batch upload and single registration
type Ingest struct {
	submitRate float64
	timezone   string
}

func (x *Ingest) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.FloatFlag{
			Name:        "submit-rate",
			Usage:       "Maximum rows submitted per second during upload (0 = unlimited)",
			Category:    "Ingestion",
			Sources:     cli.EnvVars("AUDITAI_SUBMIT_RATE"),
			Destination: &x.submitRate,
		},
		&cli.StringFlag{
			Name:        "timezone",
			Usage:       "Time zone for dates without an offset (IANA name)",
			Category:    "Ingestion",
			Value:       "UTC",
			Sources:     cli.EnvVars("AUDITAI_TIMEZONE"),
			Destination: &x.timezone,
		},
	}
}

func (x Ingest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("submit-rate", x.submitRate),
		slog.String("timezone", x.timezone),
	)
}

// Merge applies file values for flags the user did not set
func (x *Ingest) Merge(c *cli.Command, file *File) {
	if file == nil {
		return
	}
	if !c.IsSet("submit-rate") && file.Ingest.SubmitRate != 0 {
		x.submitRate = file.Ingest.SubmitRate
	}
	if !c.IsSet("timezone") && file.Ingest.Timezone != "" {
		x.timezone = file.Ingest.Timezone
	}
}

// Configure returns use case options for time zone and pacing
func (x *Ingest) Configure() ([]usecase.Option, error) {
	if x.submitRate < 0 {
		return nil, goerr.Wrap(ErrInvalidFlag, "submit rate must not be negative", goerr.V(FlagKey, "submit-rate"))
	}

	loc := time.UTC
	if x.timezone != "" {
		l, err := time.LoadLocation(x.timezone)
		if err != nil {
			return nil, goerr.Wrap(ErrInvalidFlag, "unknown time zone",
				goerr.V(FlagKey, "timezone"), goerr.V("timezone", x.timezone))
		}
		loc = l
	}

	opts := []usecase.Option{usecase.WithLocation(loc)}
	if x.submitRate > 0 {
		opts = append(opts, usecase.WithSubmitLimiter(rate.NewLimiter(rate.Limit(x.submitRate), 1)))
	}
	return opts, nil
}
