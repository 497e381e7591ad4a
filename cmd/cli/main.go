package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/manav-coupa/store-management/internal/adapter/drive"
	"github.com/manav-coupa/store-management/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "store-cli",
		Short: "Store management CLI tool",
		Long:  `A command line interface for the store management ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the store management API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(customersCmd(), statsCmd(), backupCmd(), driveCmd(), migrateCmd())

	return rootCmd
}

func customersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "Customer operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all customers with balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := apiGet("/api/v1/customers/")
			if err != nil {
				return err
			}

			var resp struct {
				Customers []struct {
					ID      int64  `json:"id"`
					Name    string `json:"name"`
					Mobile  string `json:"mobile"`
					Balance string `json:"balance"`
				} `json:"customers"`
				Total int64 `json:"total"`
			}
			if err := json.Unmarshal(body, &resp); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			fmt.Printf("%-6s %-24s %-12s %s\n", "ID", "NAME", "MOBILE", "BALANCE")
			for _, c := range resp.Customers {
				fmt.Printf("%-6d %-24s %-12s %s\n", c.ID, truncate(c.Name, 24), c.Mobile, c.Balance)
			}
			fmt.Printf("\nTotal: %d\n", resp.Total)
			return nil
		},
	})

	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show ledger-wide dashboard statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := apiGet("/api/v1/customers/dashboard-stats")
			if err != nil {
				return err
			}

			var stats map[string]any
			if err := json.Unmarshal(body, &stats); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			printJSON(stats)
			return nil
		},
	}
}

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Backup operations",
	}

	cmd.AddCommand(backupTriggerCmd(), backupStatusCmd())

	return cmd
}

func backupTriggerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trigger",
		Short: "Run a manual backup now",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := apiPost("/api/v1/backup/trigger")
			if err != nil {
				return err
			}

			var resp map[string]any
			if err := json.Unmarshal(body, &resp); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			printJSON(resp)
			return nil
		},
	}
}

func backupStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show backup configuration and the last run",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := apiGet("/api/v1/backup/status")
			if err != nil {
				return err
			}

			var resp map[string]any
			if err := json.Unmarshal(body, &resp); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			printJSON(resp)
			return nil
		},
	}
}

func driveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drive",
		Short: "Google Drive operations",
	}

	var credentialsPath, tokenPath string

	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Run the interactive Drive OAuth flow and store a token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return drive.Authorize(context.Background(), drive.Config{
				CredentialsPath: credentialsPath,
				TokenPath:       tokenPath,
			})
		},
	}
	authCmd.Flags().StringVar(&credentialsPath, "credentials", "credentials.json", "OAuth client credentials file")
	authCmd.Flags().StringVar(&tokenPath, "token", "drive_token.json", "Where to store the OAuth token")

	cmd.AddCommand(authCmd)

	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration operations",
	}

	var databaseURL, path string

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postgres.RunMigrations(databaseURL, path)
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postgres.RunMigrationsDown(databaseURL, path)
		},
	}

	for _, c := range []*cobra.Command{upCmd, downCmd} {
		c.Flags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL")
		c.Flags().StringVar(&path, "path", "internal/infrastructure/postgres/migrations", "Migrations directory")
	}

	cmd.AddCommand(upCmd, downCmd)

	return cmd
}

func apiGet(path string) ([]byte, error) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return readAPIResponse(resp)
}

func apiPost(path string) ([]byte, error) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", nil)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return readAPIResponse(resp)
}

func readAPIResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("request failed (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
