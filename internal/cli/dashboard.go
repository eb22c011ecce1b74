package cli

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// newDashboardCmd creates the dashboard command. The route is limited to
// admins and managers.
func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show workload statistics (admin and manager)",
		RunE:  runDashboard,
	}
}

func runDashboard(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	allow, err := rt.navigate(ctx, "dashboard")
	if err != nil || !allow {
		return err
	}

	stats, err := rt.client.DashboardStats(ctx)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(map[string]any{"stats": stats})
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Open tickets\t%d\n", stats.OpenTickets)
	fmt.Fprintf(w, "In progress\t%d\n", stats.InProgressTickets)
	fmt.Fprintf(w, "Closed tickets\t%d\n", stats.ClosedTickets)
	fmt.Fprintf(w, "Projects\t%d\n", stats.TotalProjects)
	fmt.Fprintf(w, "Users\t%d\n", stats.TotalUsers)
	w.Flush()

	if len(stats.TicketsByPriority) > 0 {
		fmt.Println("\nTickets by priority:")
		priorities := make([]string, 0, len(stats.TicketsByPriority))
		for p := range stats.TicketsByPriority {
			priorities = append(priorities, p)
		}
		sort.Strings(priorities)
		for _, p := range priorities {
			fmt.Printf("  %s: %d\n", p, stats.TicketsByPriority[p])
		}
	}
	return nil
}
