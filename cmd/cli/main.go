// Command finhealth is the command-line client of the finhealth API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirasaad/finhealth/pkg/client"
	"github.com/amirasaad/finhealth/pkg/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const defaultServer = "http://localhost:3000"

var (
	serverURL   string
	sessionPath string
	noColor     bool
)

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "finhealth",
		Short: "Track income, expenses, budgets and goals from the terminal",
		Long: `finhealth talks to a finhealth API server.

Log in once; the token is kept in your user config directory and used by
every other command.`,
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}
	root.PersistentFlags().StringVar(&serverURL, "server",
		config.GetEnv("FINHEALTH_URL", defaultServer), "API base URL (env FINHEALTH_URL)")
	root.PersistentFlags().StringVar(&sessionPath, "session", "", "token file (default: <user config dir>/finhealth/session.json)")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	root.AddCommand(registerCmd())
	root.AddCommand(loginCmd())
	root.AddCommand(logoutCmd())
	root.AddCommand(txCmd())
	root.AddCommand(importCmd())
	root.AddCommand(dashboardCmd())
	root.AddCommand(trendsCmd())
	root.AddCommand(insightsCmd())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Sprint("error: ")+err.Error())
		os.Exit(1)
	}
}

// newClient builds an API client carrying the stored token, if any.
func newClient() (*client.Client, *session, error) {
	sess, err := loadSession(sessionPath)
	if err != nil {
		return nil, nil, err
	}
	opts := []client.Option{}
	if sess.Token != "" && sess.Server == serverURL {
		opts = append(opts, client.WithToken(sess.Token))
	}
	return client.New(serverURL, opts...), sess, nil
}

// authedClient is newClient for commands that need a login.
func authedClient() (*client.Client, error) {
	c, _, err := newClient()
	if err != nil {
		return nil, err
	}
	if c.Token() == "" {
		return nil, fmt.Errorf("not logged in to %s; run `finhealth login`", serverURL)
	}
	return c, nil
}
