package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/beka-birhanu/vinom-explorer/script"
	"github.com/spf13/cobra"
)

var scriptCmd = &cobra.Command{
	Use:   "script <file>...",
	Short: "Replay scenario scripts against a fresh explorer",
	Long: `script runs each file statement by statement, printing every popped cell, frontier
size, cost and dump the script asks for. A failed expectation stops the file and the
command exits non-zero.`,
	Example: "  vinom-explorer script script/testdata/*.mouse",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			if err := runScript(cmd, path); err != nil {
				appLogger.Error(err.Error())
				failed++
				continue
			}
			appLogger.Debug(fmt.Sprintf("%s passed", path))
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d scripts failed", failed, len(args))
		}
		return nil
	},
}

func runScript(cmd *cobra.Command, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	s, err := script.Parse(filepath.Base(path), string(src))
	if err != nil {
		return err
	}
	if len(cmd.Flags().Args()) > 1 {
		fmt.Fprintf(cmd.OutOrStdout(), "== %s\n", path)
	}
	return s.Run(cmd.OutOrStdout())
}
