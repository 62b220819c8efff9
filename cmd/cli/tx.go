package main

import (
	"fmt"
	"os"

	"github.com/amirasaad/finhealth/pkg/client"
	"github.com/amirasaad/finhealth/pkg/domain/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transactions"},
		Short:   "Add, list and delete transactions",
	}
	cmd.AddCommand(txAddCmd(), txListCmd(), txDeleteCmd())
	return cmd
}

func txAddCmd() *cobra.Command {
	var (
		in     client.TransactionInput
		income bool
		tags   []string
	)
	cmd := &cobra.Command{
		Use:   "add <amount> <description>",
		Short: "Record a transaction",
		Example: `  finhealth tx add 12.50 "Lunch" --category Food
  finhealth tx add 2000 "April salary" --category Salary --income --date 2024-04-01`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[0])
			}
			in.Amount = amount.Abs()
			in.Description = args[1]
			in.Tags = tags
			if income {
				in.Type = transaction.Income
			}
			c, err := authedClient()
			if err != nil {
				return err
			}
			t, err := c.CreateTransaction(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s %s %s\n", successStyle.Sprint("Recorded"), signed(t), t.Description, subtleStyle.Sprint(t.ID))
			return nil
		},
	}
	cmd.Flags().StringVarP(&in.Category, "category", "c", "", "category")
	cmd.Flags().StringVarP(&in.Date, "date", "d", "", "date (YYYY-MM-DD), default today")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "free-form notes")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag, repeatable")
	cmd.Flags().BoolVar(&income, "income", false, "record as income instead of expense")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func txListCmd() *cobra.Command {
	var (
		q   client.TransactionQuery
		typ string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q.Type = transaction.Type(typ)
			c, err := authedClient()
			if err != nil {
				return err
			}
			page, err := c.ListTransactions(cmd.Context(), q)
			if err != nil {
				return err
			}
			renderTransactions(os.Stdout, page)
			return nil
		},
	}
	cmd.Flags().StringVarP(&q.Category, "category", "c", "", "only this category")
	cmd.Flags().StringVarP(&typ, "type", "t", "", "income or expense")
	cmd.Flags().StringVar(&q.StartDate, "from", "", "dated on or after (YYYY-MM-DD)")
	cmd.Flags().StringVar(&q.EndDate, "to", "", "dated on or before (YYYY-MM-DD)")
	cmd.Flags().IntVarP(&q.Limit, "limit", "n", 20, "page size (max 100)")
	cmd.Flags().IntVar(&q.Offset, "offset", 0, "rows to skip")
	return cmd
}

func txDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			c, err := authedClient()
			if err != nil {
				return err
			}
			if err := c.DeleteTransaction(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println(successStyle.Sprint("Deleted"))
			return nil
		},
	}
}
