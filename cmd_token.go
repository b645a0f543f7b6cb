package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-explorer/config"
	"github.com/beka-birhanu/vinom-explorer/infrastruture/token"
	"github.com/spf13/cobra"
)

var (
	tokenTTL     time.Duration
	tokenSubject string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print an operator token for the run API",
	Long: `token signs a bearer token with JWT_SECRET and JWT_ISSUER, the same settings the
server verifies with.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokenTTL <= 0 {
			return errors.New("--ttl must be positive")
		}
		cfg := config.Load()
		tokenizer := token.NewJwtService(cfg.JWTSecret, cfg.JWTIssuer)

		t, err := tokenizer.Generate(map[string]interface{}{"sub": tokenSubject}, tokenTTL)
		if err != nil {
			return fmt.Errorf("signing token: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), t)
		return err
	},
}

func init() {
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "operator", "Subject claim of the token")
}
