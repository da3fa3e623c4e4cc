package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

func reportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print summaries of the store",
	}

	cmd.AddCommand(
		dashboardCmd(a),
		occupancyCmd(a),
		revenueCmd(a),
		profitCmd(a),
		ownerCmd(a),
	)

	return cmd
}

func dashboardCmd(a *app) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Counts and paid revenue per month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			actor, err := a.actor(ctx)
			if err != nil {
				return err
			}

			d, err := a.reports.Dashboard(ctx, actor, year)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			printTable(out, []string{"METRIC", "VALUE"}, [][]string{
				{"Properties", fmt.Sprint(d.Properties)},
				{"Units", fmt.Sprint(d.Units)},
				{"Occupied", fmt.Sprint(d.OccupiedUnits)},
				{"Vacant", fmt.Sprint(d.VacantUnits)},
				{"Tenants", fmt.Sprint(d.Tenants)},
				{"Leases", fmt.Sprint(d.Leases)},
				{"Open requests", fmt.Sprint(d.OpenRequests)},
				{"Revenue", money(d.Revenue)},
			})

			rows := make([][]string, 0, len(d.MonthlyRevenue))
			for i, cents := range d.MonthlyRevenue {
				rows = append(rows, []string{time.Month(i + 1).String(), money(cents)})
			}

			printTable(out, []string{fmt.Sprint(d.Year), "REVENUE"}, rows)

			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "year for the monthly buckets (default current year)")

	return cmd
}

func occupancyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "occupancy",
		Short: "Occupied and vacant units per property",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if _, err := a.actorWithRole(ctx, staff...); err != nil {
				return err
			}

			occ, err := a.reports.Occupancy(ctx)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(occ))
			for _, o := range occ {
				rows = append(rows, []string{
					o.Property,
					fmt.Sprint(o.Units),
					fmt.Sprint(o.Occupied),
					fmt.Sprint(o.Vacant),
					fmt.Sprintf("%d%%", o.Rate),
				})
			}

			printTable(cmd.OutOrStdout(), []string{"PROPERTY", "UNITS", "OCCUPIED", "VACANT", "RATE"}, rows)

			return nil
		},
	}
}

func revenueCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "revenue",
		Short: "Paid revenue per property",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			actor, err := a.actorWithRole(ctx, staff...)
			if err != nil {
				return err
			}

			rev, err := a.reports.Revenue(ctx, actor)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(rev))
			for _, r := range rev {
				rows = append(rows, []string{r.Property, money(r.Revenue)})
			}

			printTable(cmd.OutOrStdout(), []string{"PROPERTY", "REVENUE"}, rows)

			return nil
		},
	}
}

func profitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profit",
		Short: "Income, expenses and net result from the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if _, err := a.actorWithRole(ctx, staff...); err != nil {
				return err
			}

			pl, err := a.reports.ProfitLoss(ctx)
			if err != nil {
				return err
			}

			printTable(cmd.OutOrStdout(), []string{"", "AMOUNT"}, [][]string{
				{"Income", money(pl.Income)},
				{"Expenses", money(pl.Expense)},
				{"Net", money(pl.Net)},
			})

			return nil
		},
	}
}

func ownerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "owner",
		Short: "Properties owned by the logged-in owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			actor, err := a.actorWithRole(ctx, rental.RoleOwner)
			if err != nil {
				return err
			}

			props, err := a.reports.Owner(ctx, actor)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(props))
			for _, p := range props {
				rows = append(rows, []string{p.Property, p.Address, fmt.Sprint(p.Units), fmt.Sprint(p.Occupied), money(p.Revenue)})
			}

			printTable(cmd.OutOrStdout(), []string{"PROPERTY", "ADDRESS", "UNITS", "OCCUPIED", "REVENUE"}, rows)

			return nil
		},
	}
}
