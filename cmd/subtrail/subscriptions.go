package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/subtrail/subtrail/internal/cli"
	"github.com/subtrail/subtrail/internal/model"
)

func subscriptionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subscriptions",
		Aliases: []string{"subs"},
		Short:   "Manage tracked subscriptions",
	}

	cmd.AddCommand(subscriptionsListCmd())
	cmd.AddCommand(subscriptionsCancelCmd())
	cmd.AddCommand(subscriptionsDeleteCmd())

	return cmd
}

func subscriptionsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked subscriptions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			all, _ := cmd.Flags().GetBool("all")

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			subs, err := store.ListSubscriptions(ctx)
			if err != nil {
				return err
			}

			if !all {
				active := subs[:0]
				for _, s := range subs {
					if s.Status == model.StatusActive {
						active = append(active, s)
					}
				}
				subs = active
			}

			if len(subs) == 0 {
				fmt.Println(cli.FormatInfo("No subscriptions tracked yet. Run 'subtrail scan' to find some."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCOST\tCYCLE\tSTATUS\tRENEWS")

			monthly := decimal.Zero
			for _, s := range subs {
				renews := "-"
				if s.RenewalDate != nil {
					renews = s.RenewalDate.Format("2006-01-02")
				}
				status := string(s.Status)
				if s.Status == model.StatusCanceled && s.StatusEffectiveDate != nil {
					status += " (" + s.StatusEffectiveDate.Format("2006-01-02") + ")"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					s.Name, s.Cost.StringFixed(2), s.BillingCycle, status, renews)

				if s.Status == model.StatusActive && s.BillingCycle == "monthly" {
					monthly = monthly.Add(s.Cost)
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if monthly.IsPositive() {
				fmt.Println()
				fmt.Println(cli.StyleTitle("Monthly total: $" + monthly.StringFixed(2)))
			}
			return nil
		},
	}

	cmd.Flags().Bool("all", false, "include canceled subscriptions")
	return cmd
}

func subscriptionsCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <name>",
		Short: "Mark a subscription as canceled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			now := time.Now()
			if err := store.UpdateSubscriptionStatus(ctx, args[0], model.StatusCanceled, &now); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Marked " + args[0] + " as canceled."))
			return nil
		},
	}
}

func subscriptionsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove a subscription entirely",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteSubscription(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Deleted " + args[0] + "."))
			return nil
		},
	}
}
