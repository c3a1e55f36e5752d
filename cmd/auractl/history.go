package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/randomtoy/auradream/internal/domain"
)

func newHistoryCmd(env func(context.Context) (*environment, error)) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [id]",
		Short: "List journaled dreams, or show one by id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := env(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				entry, err := e.svc.Dream(cmd.Context(), args[0])
				if err != nil {
					return journalHint(err)
				}
				printEntry(out, entry)
				return nil
			}

			entries, err := e.svc.Dreams(cmd.Context(), limit)
			if err != nil {
				return journalHint(err)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCREATED\tSOURCE\tSTYLE\tDREAM")
			for _, entry := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					entry.ID,
					entry.CreatedAt.Local().Format("2006-01-02 15:04"),
					entry.Analysis.Source,
					entry.Style,
					excerpt(entry.Text, 40),
				)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "maximum number of dreams to list")
	return cmd
}

// journalHint points at the setting that enables the journal.
func journalHint(err error) error {
	if errors.Is(err, domain.ErrJournalDisabled) {
		return fmt.Errorf("%w: set JOURNAL_PATH", err)
	}
	return err
}

func excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
