package config

import (
	"bytes"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// File is the optional TOML configuration. Command line flags and
// environment variables take precedence over values set here.
//
//	[api]
//	base_url = "https://auditai-api.onrender.com"
//	timeout = "30s"
//	user_agent = "auditai"
//
//	[ingest]
//	submit_rate = 2.0
//	timezone = "America/Sao_Paulo"
type File struct {
	API    FileAPI    `toml:"api"`
	Ingest FileIngest `toml:"ingest"`
}

type FileAPI struct {
	BaseURL   string `toml:"base_url"`
	Timeout   string `toml:"timeout"`
	UserAgent string `toml:"user_agent"`
}

type FileIngest struct {
	SubmitRate float64 `toml:"submit_rate"`
	Timezone   string  `toml:"timezone"`
}

// LoadFile reads a TOML configuration file. An empty path yields an empty
// configuration.
func LoadFile(path string) (*File, error) {
	var f File
	if path == "" {
		return &f, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	dec := toml.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse config file",
			goerr.V(ConfigPathKey, path), goerr.V("cause", err.Error()))
	}
	return &f, nil
}
