// quizmon is the operational companion to the quiz API: it watches the
// health endpoint, inspects backup submissions, and mints admin tokens.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/purelife/compass/internal/backup"
	"github.com/purelife/compass/internal/middleware"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var baseURL string
	var timeout time.Duration

	root := &cobra.Command{
		Use:           "quizmon",
		Short:         "Operational tooling for the compass quiz API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&baseURL, "base-url", "http://localhost:3000", "API base URL")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Second, "per-request timeout")

	root.AddCommand(newWatchCmd(&baseURL, &timeout))
	root.AddCommand(newBackupsCmd(&baseURL, &timeout))
	root.AddCommand(newTokenCmd())
	root.AddCommand(newHashKeyCmd())
	return root
}

func newWatchCmd(baseURL *string, timeout *time.Duration) *cobra.Command {
	var interval time.Duration
	var maxResponseTime time.Duration
	var maxConsecutiveFailures int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the health endpoint and report degradations",
		RunE: func(cmd *cobra.Command, args []string) error {
			mon := NewMonitor(*baseURL, *timeout, Thresholds{
				ResponseTime:        maxResponseTime,
				ConsecutiveFailures: maxConsecutiveFailures,
			})
			return mon.Run(cmd.Context(), interval, cmd.OutOrStdout())
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 30*time.Second, "check interval")
	cmd.Flags().DurationVar(&maxResponseTime, "max-response-time", time.Second, "alert threshold for response time")
	cmd.Flags().IntVar(&maxConsecutiveFailures, "max-consecutive-failures", 3, "alert threshold for consecutive failures")
	return cmd
}

func newBackupsCmd(baseURL *string, timeout *time.Duration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backups",
		Short: "Inspect and prune backed-up submissions",
	}

	var token string
	list := &cobra.Command{
		Use:   "list",
		Short: "Fetch backup submissions from the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, *baseURL+"/api/backup-submissions", nil)
			if err != nil {
				return err
			}
			if token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}
			httpc := &http.Client{Timeout: *timeout}
			resp, err := httpc.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("backend returned status %d: %s", resp.StatusCode, body)
			}
			var pretty json.RawMessage
			if err := json.NewDecoder(resp.Body).Decode(&pretty); err != nil {
				return err
			}
			out, err := json.MarshalIndent(pretty, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	list.Flags().StringVar(&token, "token", "", "admin bearer token (required in production)")

	var dbPath string
	var maxAgeDays int
	purge := &cobra.Command{
		Use:   "purge",
		Short: "Delete backup records older than the cutoff from the local store",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := backup.OpenSQLite(dbPath, zap.NewNop())
			if err != nil {
				return err
			}
			defer store.Close()
			removed, err := store.Purge(time.Duration(maxAgeDays) * 24 * time.Hour)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d record(s)\n", removed)
			return nil
		},
	}
	purge.Flags().StringVar(&dbPath, "db", "", "path to the backup sqlite database")
	purge.Flags().IntVar(&maxAgeDays, "max-age-days", 7, "remove records older than this many days")
	_ = purge.MarkFlagRequired("db")

	cmd.AddCommand(list, purge)
	return cmd
}

func newTokenCmd() *cobra.Command {
	var secret string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an admin token for the backup endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = os.Getenv("COMPASS_JWT_SECRET")
			}
			if secret == "" {
				return fmt.Errorf("--secret or COMPASS_JWT_SECRET is required")
			}
			token, err := middleware.SignAdminToken([]byte(secret), ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "JWT signing secret (defaults to COMPASS_JWT_SECRET)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}

func newHashKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-key <key>",
		Short: "Produce the bcrypt hash for COMPASS_ADMIN_KEY_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcrypt.GenerateFromPassword([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return nil
		},
	}
}
