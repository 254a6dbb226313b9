// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "aap-sync-service",
	Short: "Synchronize organizations, teams and users from an Ansible Automation Platform deployment",
	Long: `aap-sync-service keeps a local catalog of organizations, teams, users and
role assignments in sync with a remote Ansible Automation Platform
deployment, and manages projects, execution environments, job templates
and job executions on it.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
