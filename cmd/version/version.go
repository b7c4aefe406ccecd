// Package version handles the version command
package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/janbuchar/firefly-iii-fio-importer/internal/buildinfo"
)

// Cmd represents the version command
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print the importer version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(buildinfo.String())
	},
}
