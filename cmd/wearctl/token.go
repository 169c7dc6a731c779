package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ggyyuubb/wearther/internal/bootstrap"
	"github.com/ggyyuubb/wearther/internal/domain/auth"
	"github.com/ggyyuubb/wearther/internal/infra/config"
	"github.com/ggyyuubb/wearther/pkg/logger"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for a user",
	Long:  "Signs a token with the configured AUTH_JWT_SECRET so the user can call the HTTP API.",
	RunE:  runToken,
}

var tokenUser string

func init() {
	tokenCmd.Flags().StringVarP(&tokenUser, "user", "u", "", "User id to embed as the token subject (required)")
	markRequired(tokenCmd, "user")

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	svc := auth.NewService(bootstrap.ProvideAuthConfig(cfg), logger.NewTo(os.Stderr))
	token, err := svc.IssueToken(tokenUser)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
