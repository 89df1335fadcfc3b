package config

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidFlag   = goerr.New("invalid flag value")
	ErrInvalidConfig = goerr.New("invalid configuration")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	FlagKey       = "flag"
)
