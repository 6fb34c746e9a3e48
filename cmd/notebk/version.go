package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"notebk/internal/config"
)

func newVersionCmd(jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			info := versionInfo(config.Version)
			if *jsonOutput {
				return print(true, info, "")
			}
			fmt.Printf("notebk %s\ncommit: %s\nbuilt at: %s\n", info["version"], config.Commit, config.Date)
			return nil
		},
	}
}

// versionInfo labels builds whose version string is not a semantic version
// as development builds.
func versionInfo(version string) map[string]string {
	info := map[string]string{
		"version": version,
		"commit":  config.Commit,
		"date":    config.Date,
		"channel": "release",
	}
	if !semver.IsValid(version) {
		info["version"] = "devel (" + version + ")"
		info["channel"] = "dev"
		return info
	}
	info["version"] = semver.Canonical(version)
	if pre := semver.Prerelease(version); pre != "" {
		info["channel"] = strings.TrimPrefix(pre, "-")
	}
	return info
}
