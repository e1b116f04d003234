package configloader

import (
	"os"
	"strings"
)

// envVarPrefix is the prefix for all gojslint environment variables.
const envVarPrefix = "GOJSLINT_"

// Environment variable names.
const (
	EnvConfig   = envVarPrefix + "CONFIG"
	EnvLogLevel = envVarPrefix + "LOG_LEVEL"
)

// ExplicitPathFromEnv returns the config path named by GOJSLINT_CONFIG, or "".
func ExplicitPathFromEnv() string {
	return strings.TrimSpace(os.Getenv(EnvConfig))
}

// LogLevelFromEnv returns the lower-cased GOJSLINT_LOG_LEVEL value, or "".
func LogLevelFromEnv() string {
	return strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogLevel)))
}

// ListEnvVars returns the supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		EnvConfig:   "Path to a configuration file; same as --config",
		EnvLogLevel: "Log level: debug, info, warn or error",
	}
}
