package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"stream/pkg/sessions"
)

func newTokenCmd(a *app) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
		revoke  string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for local development, or revoke one",
		RunE: func(cmd *cobra.Command, args []string) error {
			sm := sessions.NewManager(a.cfg.JWTSecret, a.redisPool())

			if revoke != "" {
				if err := sm.Revoke(revoke); err != nil {
					return err
				}
				a.log.Infof("main: token %s revoked", revoke)
				return nil
			}

			token, err := sm.CreateToken(subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "dev", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	cmd.Flags().StringVar(&revoke, "revoke", "", "token id (jti) to revoke instead of minting")
	return cmd
}
