package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/auditai/pkg/service/auditapi"
	"github.com/urfave/cli/v3"
)

// API holds flags for the external audit API client
type API struct {
	baseURL   string
	timeout   time.Duration
	userAgent string
}

func (x *API) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "api-base-url",
			Usage:       "Base URL of the audit API",
			Category:    "Audit API",
			Value:       auditapi.DefaultBaseURL,
			Sources:     cli.EnvVars("AUDITAI_API_BASE_URL"),
			Destination: &x.baseURL,
		},
		&cli.DurationFlag{
			Name:        "api-timeout",
			Usage:       "Timeout of a single audit API request",
			Category:    "Audit API",
			Value:       auditapi.DefaultTimeout,
			Sources:     cli.EnvVars("AUDITAI_API_TIMEOUT"),
			Destination: &x.timeout,
		},
		&cli.StringFlag{
			Name:        "api-user-agent",
			Usage:       "User-Agent sent to the audit API",
			Category:    "Audit API",
			Value:       "auditai",
			Sources:     cli.EnvVars("AUDITAI_API_USER_AGENT"),
			Destination: &x.userAgent,
		},
	}
}

func (x API) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("base-url", x.baseURL),
		slog.Duration("timeout", x.timeout),
	)
}

// Merge applies file values for flags the user did not set
func (x *API) Merge(c *cli.Command, file *File) error {
	if file == nil {
		return nil
	}
	if !c.IsSet("api-base-url") && file.API.BaseURL != "" {
		x.baseURL = file.API.BaseURL
	}
	if !c.IsSet("api-user-agent") && file.API.UserAgent != "" {
		x.userAgent = file.API.UserAgent
	}
	if !c.IsSet("api-timeout") && file.API.Timeout != "" {
		d, err := time.ParseDuration(file.API.Timeout)
		if err != nil || d <= 0 {
			return goerr.Wrap(ErrInvalidConfig, "invalid api.timeout", goerr.V("timeout", file.API.Timeout))
		}
		x.timeout = d
	}
	return nil
}

// Configure creates the audit API client
func (x *API) Configure() (*auditapi.Client, error) {
	if x.timeout <= 0 {
		return nil, goerr.Wrap(ErrInvalidFlag, "timeout must be positive", goerr.V(FlagKey, "api-timeout"))
	}
	client, err := auditapi.New(x.baseURL,
		auditapi.WithTimeout(x.timeout),
		auditapi.WithUserAgent(x.userAgent),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create audit API client")
	}
	return client, nil
}
