package main

import (
	"fmt"
	"os"

	"github.com/amirasaad/finhealth/pkg/currency"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show this month's totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := authedClient()
			if err != nil {
				return err
			}
			d, err := c.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			code := currency.DefaultCurrency
			if u, err := c.Profile(cmd.Context()); err == nil && u.Preferences.Currency != "" {
				code = u.Preferences.Currency
			}
			renderDashboard(os.Stdout, d, code)
			return nil
		},
	}
}

func trendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trends",
		Short: "Show six months of expenses by category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := authedClient()
			if err != nil {
				return err
			}
			rows, err := c.Trends(cmd.Context())
			if err != nil {
				return err
			}
			renderTrends(os.Stdout, rows)
			return nil
		},
	}
}

func insightsCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show recent insights and spending predictions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := authedClient()
			if err != nil {
				return err
			}
			list, err := c.Insights(cmd.Context())
			if err != nil {
				return err
			}
			preds, err := c.Predictions(cmd.Context(), days)
			if err != nil {
				return err
			}
			renderInsights(os.Stdout, list)
			os.Stdout.WriteString("\n") //nolint:errcheck
			renderPredictions(os.Stdout, preds)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "maximum predictions (server default when 0)")
	cmd.AddCommand(&cobra.Command{
		Use:   "read <id>",
		Short: "Mark an insight as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid insight id %q", args[0])
			}
			c, err := authedClient()
			if err != nil {
				return err
			}
			if err := c.MarkInsightRead(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println(successStyle.Sprint("Marked as read."))
			return nil
		},
	})
	return cmd
}
