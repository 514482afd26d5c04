// Package config resolves the effective configuration from environment
// variables and CLI flags. The record is built once at startup and
// read-only afterwards.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
)

// Environment variables recognized by the resolver.
const (
	EnvAPIBase        = "OPENAI_API_BASE"
	EnvAPIToken       = "OPENAI_API_TOKEN"
	EnvModelName      = "OPENAI_MODEL_NAME"
	EnvAPIProxy       = "OPENAI_API_PROXY"
	EnvRequestTimeout = "OPENAI_REQUEST_TIMEOUT"
	EnvSignoff        = "AIGITCOMMIT_SIGNOFF"
)

// DefaultModel is used when OPENAI_MODEL_NAME is not set.
const DefaultModel = "gpt-5"

// Format selects how the generated message is rendered to stdout.
type Format string

const (
	FormatPlain Format = "plain"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// Config holds the effective configuration for one invocation.
type Config struct {
	BaseURL string
	Token   string
	Model   string
	Proxy   string
	Timeout time.Duration // zero means no request timeout

	RepoPath string
	Verbose  bool
	Signoff  bool
	Format   Format

	Copy       bool
	Commit     bool
	Yes        bool
	SavePath   string
	CheckEnv   bool
	CheckModel bool
}

// FromEnv resolves the environment-derived part of the configuration.
// Unknown variables are ignored; a malformed timeout falls back to no
// timeout; an empty token is permitted so --check-env still works.
func FromEnv() *Config {
	return &Config{
		BaseURL:  getEnv(EnvAPIBase, ""),
		Token:    getEnv(EnvAPIToken, ""),
		Model:    getEnv(EnvModelName, DefaultModel),
		Proxy:    getEnv(EnvAPIProxy, ""),
		Timeout:  getEnvMillis(EnvRequestTimeout),
		Signoff:  getEnvBool(EnvSignoff, false),
		RepoPath: ".",
		Format:   FormatTable,
	}
}

// EnvStatus is the resolved state of one recognized environment variable,
// reported by --check-env. Secret values are never echoed.
type EnvStatus struct {
	Name  string
	Value string
}

// CheckEnv reports each recognized variable and its effective value.
func CheckEnv() []EnvStatus {
	mask := func(val string) string {
		if val == "" {
			return "(not set)"
		}
		return "(set)"
	}

	return []EnvStatus{
		{EnvAPIBase, getEnv(EnvAPIBase, "(not set)")},
		{EnvAPIToken, mask(os.Getenv(EnvAPIToken))},
		{EnvModelName, getEnv(EnvModelName, "(not set, default "+DefaultModel+")")},
		{EnvAPIProxy, getEnv(EnvAPIProxy, "(not set)")},
		{EnvRequestTimeout, getEnv(EnvRequestTimeout, "(not set)")},
		{EnvSignoff, getEnv(EnvSignoff, "(not set)")},
	}
}

// getEnv retrieves an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultValue
}

// getEnvBool treats 1/true/yes/on (case-insensitive) as true.
func getEnvBool(key string, defaultValue bool) bool {
	val, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// getEnvMillis parses a millisecond duration; malformed or non-positive
// values mean no timeout.
func getEnvMillis(key string) time.Duration {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return 0
	}
	ms, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil || ms <= 0 {
		logger.Warnf("ignoring malformed %s value %q", key, val)
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}
