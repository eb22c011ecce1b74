package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yamadatarousan/ticket-manager/internal/api"
)

// newTicketsCmd creates the tickets command group
func newTicketsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "Browse and manage tickets",
		Long: `Browse and manage tickets.

Examples:
  # List open high-priority tickets
  ticketctl tickets list --status open --priority high

  # Show a single ticket
  ticketctl tickets get 42

  # Create a ticket
  ticketctl tickets create --title "Broken login form" --priority high

  # Close a ticket
  ticketctl tickets update 42 --status closed`,
	}
	cmd.AddCommand(newTicketsListCmd())
	cmd.AddCommand(newTicketsGetCmd())
	cmd.AddCommand(newTicketsCreateCmd())
	cmd.AddCommand(newTicketsUpdateCmd())
	cmd.AddCommand(newTicketsDeleteCmd())
	return cmd
}

func newTicketsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tickets",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			allow, err := rt.navigate(ctx, "tickets")
			if err != nil || !allow {
				return err
			}

			filter := api.TicketFilter{}
			filter.Status, _ = cmd.Flags().GetString("status")
			filter.Priority, _ = cmd.Flags().GetString("priority")
			filter.Assignee, _ = cmd.Flags().GetString("assignee")
			filter.Page, _ = cmd.Flags().GetInt("page")
			filter.PerPage, _ = cmd.Flags().GetInt("per-page")

			return renderTicketList(ctx, rt, filter)
		},
	}
	cmd.Flags().String("status", "", "Filter by status (open, in_progress, closed)")
	cmd.Flags().String("priority", "", "Filter by priority (low, medium, high)")
	cmd.Flags().String("assignee", "", "Filter by assignee")
	cmd.Flags().Int("page", 0, "Page number")
	cmd.Flags().Int("per-page", 0, "Items per page")
	return cmd
}

func newTicketsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			allow, err := rt.navigate(ctx, "tickets")
			if err != nil || !allow {
				return err
			}

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ticket, err := rt.client.GetTicket(ctx, id)
			if err != nil {
				return err
			}

			if jsonOutput {
				printJSON(map[string]any{"ticket": ticket})
				return nil
			}
			printTicket(ticket)
			return nil
		},
	}
}

func newTicketsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a ticket",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			allow, err := rt.navigate(ctx, "tickets")
			if err != nil || !allow {
				return err
			}

			input := api.TicketInput{}
			input.Title, _ = cmd.Flags().GetString("title")
			input.Description, _ = cmd.Flags().GetString("description")
			input.Priority, _ = cmd.Flags().GetString("priority")
			input.ProjectID, _ = cmd.Flags().GetInt64("project")
			if input.Title == "" {
				return fmt.Errorf("--title is required")
			}

			ticket, err := rt.client.CreateTicket(ctx, input)
			if err != nil {
				return err
			}

			if jsonOutput {
				printJSON(map[string]any{"ticket": ticket})
				return nil
			}
			okLabel.Printf("✓ Created ticket #%d\n", ticket.ID)
			return nil
		},
	}
	cmd.Flags().String("title", "", "Ticket title")
	cmd.Flags().String("description", "", "Ticket description")
	cmd.Flags().String("priority", "", "Ticket priority (low, medium, high)")
	cmd.Flags().Int64("project", 0, "Project the ticket belongs to")
	return cmd
}

func newTicketsUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			allow, err := rt.navigate(ctx, "tickets")
			if err != nil || !allow {
				return err
			}

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			input := api.TicketInput{}
			input.Title, _ = cmd.Flags().GetString("title")
			input.Description, _ = cmd.Flags().GetString("description")
			input.Status, _ = cmd.Flags().GetString("status")
			input.Priority, _ = cmd.Flags().GetString("priority")
			if cmd.Flags().Changed("assignee") {
				assignee, _ := cmd.Flags().GetInt64("assignee")
				input.AssigneeID = &assignee
			}

			ticket, err := rt.client.UpdateTicket(ctx, id, input)
			if err != nil {
				return err
			}

			if jsonOutput {
				printJSON(map[string]any{"ticket": ticket})
				return nil
			}
			okLabel.Printf("✓ Updated ticket #%d\n", ticket.ID)
			return nil
		},
	}
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("status", "", "New status (open, in_progress, closed)")
	cmd.Flags().String("priority", "", "New priority (low, medium, high)")
	cmd.Flags().Int64("assignee", 0, "Assignee user ID")
	return cmd
}

func newTicketsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			allow, err := rt.navigate(ctx, "tickets")
			if err != nil || !allow {
				return err
			}

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := rt.client.DeleteTicket(ctx, id); err != nil {
				return err
			}

			if jsonOutput {
				printJSON(map[string]int64{"deleted": id})
				return nil
			}
			okLabel.Printf("✓ Deleted ticket #%d\n", id)
			return nil
		},
	}
}

// renderTicketList fetches and prints a ticket list; also used as the default
// landing screen after a soft redirect.
func renderTicketList(ctx context.Context, rt *runtime, filter api.TicketFilter) error {
	page, err := rt.client.ListTickets(ctx, filter)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(map[string]any{
			"items": page.Items,
			"total": page.Total,
			"page":  page.Page,
		})
		return nil
	}

	if len(page.Items) == 0 {
		fmt.Println("No tickets found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPRIORITY")
	for _, t := range page.Items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", t.ID, t.Title, t.Status, t.Priority)
	}
	w.Flush()
	if page.TotalPages > 1 {
		fmt.Printf("\nPage %d of %d (%d tickets)\n", page.Page, page.TotalPages, page.Total)
	}
	return nil
}

func printTicket(t api.Ticket) {
	fmt.Printf("Ticket #%d: %s\n", t.ID, t.Title)
	fmt.Printf("Status: %s\n", t.Status)
	fmt.Printf("Priority: %s\n", t.Priority)
	if t.ProjectID != 0 {
		fmt.Printf("Project: %d\n", t.ProjectID)
	}
	if t.AssigneeID != nil {
		fmt.Printf("Assignee: %d\n", *t.AssigneeID)
	}
	if t.Description != "" {
		fmt.Printf("\n%s\n", t.Description)
	}
}

// parseID parses a numeric resource ID argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %s", arg)
	}
	return id, nil
}
