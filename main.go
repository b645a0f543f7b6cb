package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/beka-birhanu/vinom-explorer/config"
	logger "github.com/beka-birhanu/vinom-explorer/infrastruture/log"
	"github.com/spf13/cobra"
)

var (
	appLogger *logger.Logger
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "vinom-explorer",
	Short: "Explore unknown mazes with a frontier driven robot",
	Long: `vinom-explorer keeps a robot's knowledge of a maze it is discovering and decides
where the robot goes next. It can host runs behind an HTTP API, simulate runs over
generated mazes and replay scenario scripts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		appLogger, err = logger.New("APP", config.ColorGreen, os.Stderr)
		if err != nil {
			return err
		}
		appLogger.SetDebug(verbose)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug messages")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scriptCmd)
	rootCmd.AddCommand(tokenCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
