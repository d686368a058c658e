package main

import (
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tcp_snm/lcbot/internal/service"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lcbot",
		Short: "LeetCode practice bot backend",
		Long: `lcbot posts LeetCode problems to a chat channel, tracks who solved them
through reactions and serves the leaderboard.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the http api and the weekly scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbURL := os.Getenv("DB_URL")
			if dbURL == "" {
				return fmt.Errorf("DB_URL not found in environment")
			}
			pool, err := initDatabase(cmd.Context(), dbURL)
			if err != nil {
				return err
			}
			pool.Close()
			log.Info("schema is up to date")
			return nil
		},
	}

	var ttl time.Duration
	tokenCmd := &cobra.Command{
		Use:   "token [relay-name]",
		Short: "Mint a relay token signed with JWT_SECRET",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, expiry, err := service.GenerateRelayToken(args[0], ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", expiry.Format(time.RFC3339))
			return nil
		},
	}
	tokenCmd.Flags().DurationVar(&ttl, "ttl", 365*24*time.Hour, "token lifetime")

	var weekly bool
	publishCmd := &cobra.Command{
		Use:   "publish",
		Short: "Post one unposted problem now and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			setLogLevel(cfg.LogLevel)
			svc, err := initServices(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer svc.pool.Close()

			problem, err := svc.problems.PublishUnsolved(cmd.Context(), weekly)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "posted #%s %s\n", problem.ID, problem.Title)
			return nil
		},
	}
	publishCmd.Flags().BoolVar(&weekly, "weekly", false, "use the weekly announcement and ping the role")

	rootCmd.AddCommand(serveCmd, migrateCmd, tokenCmd, publishCmd)
	return rootCmd
}
