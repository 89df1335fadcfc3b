package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const envFileFlag = "env-file"

// EnvFileFlag declares --env-file so the parser accepts it. The file itself
// is loaded by LoadEnvFile before flags are parsed.
func EnvFileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    envFileFlag,
		Usage:   "dotenv file with AUDITAI_* variables, loaded before other flags",
		Sources: cli.EnvVars("AUDITAI_ENV_FILE"),
	}
}

// LoadEnvFile finds --env-file in args (or AUDITAI_ENV_FILE) and loads it.
// Variables already present in the environment are not overwritten.
func LoadEnvFile(args []string) (string, error) {
	path := os.Getenv("AUDITAI_ENV_FILE")
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		if v, ok := strings.CutPrefix(name, envFileFlag+"="); ok {
			path = v
			continue
		}
		if name == envFileFlag && i+1 < len(args) {
			path = args[i+1]
			i++
		}
	}

	if path == "" {
		return "", nil
	}
	if err := godotenv.Load(path); err != nil {
		return path, goerr.Wrap(err, "failed to load env file", goerr.V(ConfigPathKey, path))
	}
	return path, nil
}
