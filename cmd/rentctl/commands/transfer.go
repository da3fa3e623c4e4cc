package commands

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/rentbook/internal/export"
	"github.com/MrJamesThe3rd/rentbook/internal/importer"
)

func importCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import data from files",
	}

	cmd.AddCommand(importLedgerCmd(a))

	return cmd
}

func importLedgerCmd(a *app) *cobra.Command {
	var (
		format string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "ledger <file>",
		Short: "Book every row of a ledger or bank statement CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if _, err := a.actorWithRole(ctx, staff...); err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening file: %w", err)
			}
			defer f.Close()

			res, err := a.imports.Parse(f, importer.Format(format))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Detected %s layout (%s), %d rows skipped\n", res.Format, res.Charset, res.Skipped)

			rows := make([][]string, 0, len(res.Entries))
			for _, e := range res.Entries {
				rows = append(rows, []string{e.Date.String(), e.Description, money(e.Amount), string(e.Type)})
			}

			printTable(out, []string{"DATE", "DESCRIPTION", "AMOUNT", "TYPE"}, rows)

			if dryRun {
				fmt.Fprintln(out, "Dry run, nothing booked")
				return nil
			}

			entries, err := a.rental.AddLedgerEntries(ctx, res.Entries)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Booked %d entries\n", len(entries))

			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "rentbook, signed or split (detected when empty)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and print without booking")

	return cmd
}

func exportCmd(a *app) *cobra.Command {
	var (
		dir    string
		stdout bool
	)

	cmd := &cobra.Command{
		Use:       "export [payments|ledger|maintenance]...",
		Short:     "Write store tables as CSV",
		ValidArgs: []string{string(export.KindPayments), string(export.KindLedger), string(export.KindMaintenance)},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			actor, err := a.actor(ctx)
			if err != nil {
				return err
			}

			kinds := make([]export.Kind, 0, len(args))
			for _, arg := range args {
				kind, err := export.ParseKind(arg)
				if err != nil {
					return err
				}

				kinds = append(kinds, kind)
			}

			if len(kinds) == 0 {
				kinds = export.Kinds
			}

			if slices.Contains(kinds, export.KindLedger) {
				if _, err := a.actorWithRole(ctx, staff...); err != nil {
					return err
				}
			}

			if stdout {
				if len(kinds) != 1 {
					return fmt.Errorf("--stdout takes exactly one table")
				}

				return a.exports.Write(ctx, cmd.OutOrStdout(), actor, kinds[0])
			}

			paths, err := a.exports.WriteDir(ctx, dir, actor, kinds...)
			if err != nil {
				return err
			}

			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "out", "o", ".", "output directory")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "write a single table to stdout")

	return cmd
}
