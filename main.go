// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package main

import (
	"fmt"

	"github.com/canonical/aap-sync-service/cmd"
	"github.com/canonical/aap-sync-service/internal/config"
)

var version = "dev"

func main() {
	flags := config.NewFlags()

	if flags.ShowVersion {
		fmt.Printf("App Version: %s\n", version)
		return
	}

	cmd.Execute()
}
