package main

import (
	"errors"
	"fmt"

	"github.com/jekabolt/shopdesk-reports/internal/auth/jwt"
	"github.com/spf13/cobra"
)

var (
	tokenCmd = &cobra.Command{
		Use:   "token <operator>",
		Short: "Issue an API token for a console operator",
		Args:  cobra.ExactArgs(1),
		RunE:  token,
	}
)

func token(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	ja := jwt.New(cfg.Auth)
	if ja == nil {
		return errors.New("auth.jwt_secret is not set")
	}
	tok, err := jwt.NewToken(ja, cfg.Auth.TTL, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), tok)
	return nil
}
