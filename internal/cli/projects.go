package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yamadatarousan/ticket-manager/internal/api"
)

// newProjectsCmd creates the projects command group
func newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Browse and manage projects",
	}
	cmd.AddCommand(newProjectsListCmd())
	cmd.AddCommand(newProjectsGetCmd())
	cmd.AddCommand(newProjectsCreateCmd())
	cmd.AddCommand(newProjectsUpdateCmd())
	cmd.AddCommand(newProjectsDeleteCmd())
	return cmd
}

func newProjectsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			allow, err := rt.navigate(ctx, "projects")
			if err != nil || !allow {
				return err
			}

			pageNum, _ := cmd.Flags().GetInt("page")
			perPage, _ := cmd.Flags().GetInt("per-page")
			return renderProjectList(ctx, rt, pageNum, perPage)
		},
	}
	cmd.Flags().Int("page", 0, "Page number")
	cmd.Flags().Int("per-page", 0, "Items per page")
	return cmd
}

func newProjectsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			allow, err := rt.navigate(ctx, "projects")
			if err != nil || !allow {
				return err
			}

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			project, err := rt.client.GetProject(ctx, id)
			if err != nil {
				return err
			}

			if jsonOutput {
				printJSON(map[string]any{"project": project})
				return nil
			}
			fmt.Printf("Project #%d: %s\n", project.ID, project.Name)
			if project.Status != "" {
				fmt.Printf("Status: %s\n", project.Status)
			}
			if project.Description != "" {
				fmt.Printf("\n%s\n", project.Description)
			}
			return nil
		},
	}
}

func newProjectsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			allow, err := rt.navigate(ctx, "projects")
			if err != nil || !allow {
				return err
			}

			input := api.ProjectInput{}
			input.Name, _ = cmd.Flags().GetString("name")
			input.Description, _ = cmd.Flags().GetString("description")
			if input.Name == "" {
				return fmt.Errorf("--name is required")
			}

			project, err := rt.client.CreateProject(ctx, input)
			if err != nil {
				return err
			}

			if jsonOutput {
				printJSON(map[string]any{"project": project})
				return nil
			}
			okLabel.Printf("✓ Created project #%d\n", project.ID)
			return nil
		},
	}
	cmd.Flags().String("name", "", "Project name")
	cmd.Flags().String("description", "", "Project description")
	return cmd
}

func newProjectsUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			allow, err := rt.navigate(ctx, "projects")
			if err != nil || !allow {
				return err
			}

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			input := api.ProjectInput{}
			input.Name, _ = cmd.Flags().GetString("name")
			input.Description, _ = cmd.Flags().GetString("description")
			input.Status, _ = cmd.Flags().GetString("status")

			project, err := rt.client.UpdateProject(ctx, id, input)
			if err != nil {
				return err
			}

			if jsonOutput {
				printJSON(map[string]any{"project": project})
				return nil
			}
			okLabel.Printf("✓ Updated project #%d\n", project.ID)
			return nil
		},
	}
	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("status", "", "New status (active, archived)")
	return cmd
}

func newProjectsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			allow, err := rt.navigate(ctx, "projects")
			if err != nil || !allow {
				return err
			}

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := rt.client.DeleteProject(ctx, id); err != nil {
				return err
			}

			if jsonOutput {
				printJSON(map[string]int64{"deleted": id})
				return nil
			}
			okLabel.Printf("✓ Deleted project #%d\n", id)
			return nil
		},
	}
}

// renderProjectList fetches and prints a project list; also an alternate
// default landing screen.
func renderProjectList(ctx context.Context, rt *runtime, pageNum, perPage int) error {
	page, err := rt.client.ListProjects(ctx, pageNum, perPage)
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
		fmt.Println("No projects found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS")
	for _, p := range page.Items {
		fmt.Fprintf(w, "%d\t%s\t%s\n", p.ID, p.Name, p.Status)
	}
	w.Flush()
	if page.TotalPages > 1 {
		fmt.Printf("\nPage %d of %d (%d projects)\n", page.Page, page.TotalPages, page.Total)
	}
	return nil
}
