package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/amirasaad/finhealth/pkg/client"
	"github.com/amirasaad/finhealth/pkg/ofx"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import <files.ofx...>",
		Short: "Import OFX/QFX bank statements",
		Long: `Parse OFX or QFX statements exported from your bank and upload every
transaction in one request. Debits become expenses and credits income.
The upload is all or nothing.`,
		Example: `  finhealth import ~/Downloads/checking_2024-04.qfx
  finhealth import ~/Downloads/*.ofx --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandFiles(args)
			if err != nil {
				return err
			}
			rows, err := parseStatements(files, os.Stderr)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Println(warningStyle.Sprint("No transactions found."))
				return nil
			}
			if dryRun {
				fmt.Println(subtleStyle.Sprintf("Dry run: %d transactions parsed, nothing uploaded.", len(rows)))
				return nil
			}

			c, err := authedClient()
			if err != nil {
				return err
			}
			created, err := c.ImportTransactions(cmd.Context(), rows)
			var apiErr *client.APIError
			if errors.As(err, &apiErr) && len(apiErr.RowErrors()) > 0 {
				for _, r := range apiErr.RowErrors() {
					desc := ""
					if r.Index >= 0 && r.Index < len(rows) {
						desc = rows[r.Index].Description
					}
					fmt.Fprintf(os.Stderr, "  row %d (%s): %s\n", r.Index, desc, r.Error)
				}
				return fmt.Errorf("import rejected, nothing was saved")
			}
			if err != nil {
				return err
			}
			fmt.Println(successStyle.Sprintf("Imported %d transactions.", len(created)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse only, do not upload")
	return cmd
}

// expandFiles resolves glob patterns, keeping literal paths that exist.
func expandFiles(args []string) ([]string, error) {
	var files []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err != nil {
				return nil, fmt.Errorf("no such file: %s", pattern)
			}
			matches = []string{pattern}
		}
		files = append(files, matches...)
	}
	return files, nil
}

// parseStatements reads every file into import rows. Lines seen in an
// earlier file (same account and FITID) are skipped.
func parseStatements(files []string, progress io.Writer) ([]client.TransactionInput, error) {
	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription("[cyan]Parsing statements[reset]"),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(progress) }),
	)
	seen := make(map[string]bool)
	var rows []client.TransactionInput
	for _, path := range files {
		entries, err := parseFile(path)
		if err != nil {
			_ = bar.Exit()
			return nil, err
		}
		for _, e := range entries {
			key := e.Account + "/" + e.FITID
			if e.FITID != "" && seen[key] {
				continue
			}
			seen[key] = true
			rows = append(rows, toInput(e))
		}
		_ = bar.Add(1)
	}
	return rows, nil
}

func parseFile(path string) ([]ofx.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck
	entries, err := ofx.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return entries, nil
}

func toInput(e ofx.Entry) client.TransactionInput {
	in := client.TransactionInput{
		Amount:      e.Amount,
		Description: e.Description,
		Category:    e.Category,
		Type:        e.Type,
		Date:        e.Date.Format("2006-01-02"),
	}
	if e.CheckNumber != "" {
		in.Notes = "check " + e.CheckNumber
	}
	if e.Account != "" {
		in.Tags = []string{"ofx", "acct:" + e.Account}
	}
	return in
}
