// Copyright (C) 2025 JK8789 (jk8789@users.noreply.github.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// apkstudy drives the regional app-library study pipeline: it turns
// pre-extracted class lists into prefix inventories, matches them
// against a known-library dictionary under a chosen policy, and rolls
// the per-app results up into the comparative region tables.
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for APKSTUDY_CONFIG and friends. A missing file
	// is the normal case.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
