// Copyright (C) 2025 JK8789 (jk8789@users.noreply.github.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JK8789/thesis-apk-study/cmd/apkstudy/config"
	"github.com/JK8789/thesis-apk-study/pkg/logging"
)

// --- Global Command Variables ---
var (
	configPath string
	policyName string // CLI override for match.policy (exact/d3/longest)

	cfg    config.StudyConfig
	logger *logging.Logger

	rootCmd = &cobra.Command{
		Use:   "apkstudy",
		Short: "A cli for the two-region mobile app library study",
		Long: `apkstudy compares the third-party library footprint of paired
				application builds across two regional stores. It consumes
				pre-extracted class lists and produces the study's CSV tables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Global(configPath)
			if err != nil {
				return err
			}
			if policyName != "" {
				cfg.Match.Policy = policyName
			}
			logger = logging.New(logging.Config{
				Level:   logging.ParseLevel(cfg.Log.Level),
				LogDir:  cfg.Log.Dir,
				Service: "apkstudy",
			})
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Close()
			}
		},
	}

	extractCmd = &cobra.Command{
		Use:   "extract",
		Short: "Build per-app prefix inventories from extracted class lists",
		Run:   runExtract, // Defined in cmd_extract.go
	}

	matchCmd = &cobra.Command{
		Use:   "match",
		Short: "Match prefix inventories against the library dictionary",
		Run:   runMatch, // Defined in cmd_match.go
	}

	taxonomyCmd = &cobra.Command{
		Use:   "taxonomy",
		Short: "Classify observed library prefixes into functional types",
		Run:   runTaxonomy, // Defined in cmd_taxonomy.go
	}

	analyzeCmd = &cobra.Command{
		Use:   "analyze",
		Short: "Produce the region comparison tables over matched libraries",
		Run:   runAnalyze, // Defined in cmd_analyze.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to the apkstudy config file (default apkstudy.yaml, or APKSTUDY_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&policyName, "policy", "",
		"Override the matching policy: 'exact', 'd3', or 'longest'")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(taxonomyCmd)
	rootCmd.AddCommand(analyzeCmd)
}

// fatal logs the error and stops the process. Missing required inputs
// and schema mismatches land here; malformed individual rows do not.
func fatal(msg string, err error) {
	logger.Error(msg, "error", err)
	_ = logger.Close()
	fmt.Fprintf(os.Stderr, "apkstudy: %s: %v\n", msg, err)
	os.Exit(1)
}
