// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"flag"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port     int    `envconfig:"port" default:"8080"`
	APIToken string `envconfig:"api_token" default:""`

	AAPBaseURL       string `envconfig:"aap_base_url" validate:"required,url"`
	AAPToken         string `envconfig:"aap_token" default:""`
	AAPClientID      string `envconfig:"aap_client_id" default:""`
	AAPClientSecret  string `envconfig:"aap_client_secret" default:""`
	AAPTLSSkipVerify bool   `envconfig:"aap_tls_skip_verify" default:"false"`

	AAPPageSize        int           `envconfig:"aap_page_size" default:"100"`
	AAPMaxPages        int           `envconfig:"aap_max_pages" default:"0"`
	AAPPollInterval    time.Duration `envconfig:"aap_poll_interval" default:"2s"`
	AAPMaxPollDuration time.Duration `envconfig:"aap_max_poll_duration" default:"0"`

	SyncOrganizations      string `envconfig:"sync_organizations" default:""`
	SyncUserAndTeamDetails bool   `envconfig:"sync_user_and_team_details" default:"true"`
	SyncSchedule           string `envconfig:"sync_schedule" default:""`

	GithubUsername string `envconfig:"github_username" default:""`
	GithubToken    string `envconfig:"github_token" default:""`
	GitlabUsername string `envconfig:"gitlab_username" default:""`
	GitlabToken    string `envconfig:"gitlab_token" default:""`

	DSN               string        `envconfig:"DSN" default:""`
	DBMaxConns        int           `envconfig:"db_max_conns" default:"10"`
	DBMinConns        int           `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`
}

// Validate checks the validate struct tags with go-playground/validator.
func (s *EnvSpec) Validate() error {
	return validator.New().Struct(s)
}

// Organizations splits the comma-separated sync_organizations value,
// dropping empty entries.
func (s *EnvSpec) Organizations() []string {
	orgs := make([]string, 0)
	for _, o := range strings.Split(s.SyncOrganizations, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			orgs = append(orgs, trimmed)
		}
	}

	return orgs
}

type Flags struct {
	ShowVersion bool
}

func NewFlags() *Flags {
	f := new(Flags)

	flag.BoolVar(&f.ShowVersion, "version", false, "Show the app version and exit")
	flag.Parse()

	return f
}
