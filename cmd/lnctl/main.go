// Command lnctl inspects the seeded organization and demo reports offline.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/aggregation"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/organization"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/report"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/user"
	"github.com/lastnext24/lastnext24-backend-go/internal/fixtures"
	"github.com/lastnext24/lastnext24-backend-go/internal/repository/kvstore"
	aggregationService "github.com/lastnext24/lastnext24-backend-go/internal/service/aggregation"
	organizationService "github.com/lastnext24/lastnext24-backend-go/internal/service/organization"
	reportService "github.com/lastnext24/lastnext24-backend-go/internal/service/report"
	"github.com/lastnext24/lastnext24-backend-go/internal/service/visibility"
	"github.com/spf13/cobra"
)

const demoDate = "2025-09-11"

type app struct {
	dir      *user.Directory
	source   report.Source
	resolver *visibility.Resolver
	orgSvc   organization.Service
	aggSvc   aggregation.Service
}

func newApp() *app {
	dir := fixtures.Directory()
	source := reportService.NewMergedSource(fixtures.DemoReports(), kvstore.NewReportRepository(kvstore.NewMemoryStore()))
	return &app{
		dir:      dir,
		source:   source,
		resolver: visibility.NewResolver(dir),
		orgSvc:   organizationService.NewOrganizationService(dir, fixtures.Projects(), source),
		aggSvc:   aggregationService.NewAggregationService(nil, time.Second),
	}
}

func main() {
	if err := newRootCommand(newApp()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "lnctl",
		Short:         "Inspect the LastNext24 organization and demo reports",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newTreeCommand(a), newVisibleCommand(a), newAggregateCommand(a))
	return root
}

func newTreeCommand(a *app) *cobra.Command {
	var role, userID, date string
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the org tree a role can browse, with reports for the date",
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, err := a.orgSvc.BuildTree(cmd.Context(), user.Role(role), userID, date)
			if err != nil {
				return err
			}
			printTree(cmd.OutOrStdout(), nodes, 0)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", string(user.RoleCTO), "session role (CTO, VP, Director, Manager, Engineer)")
	cmd.Flags().StringVar(&userID, "user", "", "session user id")
	cmd.Flags().StringVar(&date, "date", demoDate, "report date (YYYY-MM-DD)")
	return cmd
}

func printTree(w io.Writer, nodes []organization.TreeNode, depth int) {
	for _, n := range nodes {
		fmt.Fprintf(w, "%*s- %s (%s, %s) reports=%d\n", depth*2, "", n.User.Name, n.User.Role, n.User.ID, len(n.Reports))
		printTree(w, n.Children, depth+1)
	}
}

func newVisibleCommand(a *app) *cobra.Command {
	var role, userID, date string
	cmd := &cobra.Command{
		Use:   "visible",
		Short: "List the reports a role may see on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := a.source.AllReports(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), a.resolver.Resolve(all, user.Role(role), userID, date))
		},
	}
	cmd.Flags().StringVar(&role, "role", string(user.RoleManager), "session role")
	cmd.Flags().StringVar(&userID, "user", "", "session user id")
	cmd.Flags().StringVar(&date, "date", demoDate, "report date (YYYY-MM-DD)")
	return cmd
}

func newAggregateCommand(a *app) *cobra.Command {
	var managerID, date string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Aggregate a manager's direct reports for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			manager, err := a.orgSvc.GetUser(ctx, managerID)
			if err != nil {
				return fmt.Errorf("%s: %w", managerID, err)
			}
			members, reports, err := a.orgSvc.TeamReports(ctx, manager.ID, date)
			if err != nil {
				return err
			}
			result := a.aggSvc.Aggregate(ctx, aggregation.AggregationRequest{
				Reports:     reports,
				TeamMembers: members,
				ManagerRole: manager.Role,
				Date:        date,
			})
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), result.AggregatedContent)
			return err
		},
	}
	cmd.Flags().StringVar(&managerID, "manager", "mgr-001", "manager user id")
	cmd.Flags().StringVar(&date, "date", demoDate, "report date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full aggregation as JSON")
	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
