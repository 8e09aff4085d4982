package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bloomviewer/internal/auth"
	"bloomviewer/internal/config"
)

func tokenCommand() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an editor access token",
		Long:  `Signs an RS256 token with the editor role using JWT_PRIVATE_KEY_PATH, for calling mutating routes when AUTH_ENABLED is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if ttl <= 0 {
				ttl = cfg.AccessTokenTTL
			}

			jwtMgr, err := auth.NewJWTManager(cfg.JWTPrivateKeyPath, cfg.JWTPublicKeyPath, cfg.JWTIssuer)
			if err != nil {
				return err
			}
			tok, exp, err := jwtMgr.IssueToken(subject, ttl, auth.RoleEditor)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), tok)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", exp.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "editor", "Token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (default: ACCESS_TOKEN_MINUTES)")
	return cmd
}
