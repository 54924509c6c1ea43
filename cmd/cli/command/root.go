package command

// root.go defines the root command for the comboshare CLI and the global flags.

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"comboshare/cmd/cli/authentication"
	"comboshare/cmd/cli/command/client"
)

var (
	apiURL  string        // Global flag for API server URL
	timeout time.Duration // per-command request deadline
)

var (
	success = color.New(color.FgGreen).SprintFunc()
	warn    = color.New(color.FgYellow).SprintFunc()
	faint   = color.New(color.Faint).SprintFunc()
	bold    = color.New(color.Bold).SprintFunc()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "comboshare",
	Short: "comboshare - combo sharing site from the command line",
	Long: `comboshare talks to the combo sharing API. Use it to:
- Search and rank combos by character, tags, damage and cost
- Submit your own combos
- Rate, favorite and comment on combos
- Moderate content (admins)

Use "comboshare [command] --help" to see all available commands.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command. Called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("✗ %v", err))
		os.Exit(1)
	}
}

func init() {
	defaultAPI := "http://localhost:8080"
	if v := os.Getenv("COMBOSHARE_API"); v != "" {
		defaultAPI = v
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultAPI, "API server URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")

	rootCmd.AddCommand(authCmd, comboCmd, rateCmd, favoriteCmd, commentCmd, adminCmd, catalogCmd)
}

// GetClient returns a client that sends the stored token when there is one.
func GetClient() *client.HTTPClient {
	c := client.NewHTTPClient(apiURL)
	if creds, err := authentication.GetToken(); err == nil {
		c.SetToken(creds.Token)
	}
	return c
}

// GetAuthenticatedClient fails early when no usable token is stored.
func GetAuthenticatedClient() (*client.HTTPClient, error) {
	creds, err := authentication.GetToken()
	if err != nil {
		return nil, err
	}
	c := client.NewHTTPClient(apiURL)
	c.SetToken(creds.Token)
	return c, nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

func parseIDArg(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id: %q", what, arg)
	}
	return id, nil
}
