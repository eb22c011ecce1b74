package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yamadatarousan/ticket-manager/internal/api"
)

// newCommentsCmd creates the comments command group
func newCommentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Read and add ticket comments",
		Long: `Read and add ticket comments.

Examples:
  ticketctl comments list --ticket 42
  ticketctl comments add --ticket 42 --body "Reproduced on staging"`,
	}
	cmd.AddCommand(newCommentsListCmd())
	cmd.AddCommand(newCommentsAddCmd())
	return cmd
}

func newCommentsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the comments on a ticket",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			allow, err := rt.navigate(ctx, "comments")
			if err != nil || !allow {
				return err
			}

			ticketID, _ := cmd.Flags().GetInt64("ticket")
			if ticketID <= 0 {
				return fmt.Errorf("--ticket is required")
			}
			pageNum, _ := cmd.Flags().GetInt("page")
			perPage, _ := cmd.Flags().GetInt("per-page")

			page, err := rt.client.ListComments(ctx, ticketID, pageNum, perPage)
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
				fmt.Printf("No comments on ticket #%d.\n", ticketID)
				return nil
			}
			for _, c := range page.Items {
				author := c.Author
				if author == "" {
					author = fmt.Sprintf("user %d", c.AuthorID)
				}
				fmt.Printf("[%s] %s\n", c.CreatedAt.Local().Format("2006-01-02 15:04"), author)
				fmt.Printf("  %s\n\n", c.Body)
			}
			return nil
		},
	}
	cmd.Flags().Int64("ticket", 0, "Ticket the comments belong to")
	cmd.Flags().Int("page", 0, "Page number")
	cmd.Flags().Int("per-page", 0, "Items per page")
	return cmd
}

func newCommentsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a comment to a ticket",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			allow, err := rt.navigate(ctx, "comments")
			if err != nil || !allow {
				return err
			}

			ticketID, _ := cmd.Flags().GetInt64("ticket")
			body, _ := cmd.Flags().GetString("body")
			if ticketID <= 0 {
				return fmt.Errorf("--ticket is required")
			}
			if body == "" {
				return fmt.Errorf("--body is required")
			}

			comment, err := rt.client.AddComment(ctx, ticketID, api.CommentInput{Body: body})
			if err != nil {
				return err
			}

			if jsonOutput {
				printJSON(map[string]any{"comment": comment})
				return nil
			}
			okLabel.Printf("✓ Comment #%d added to ticket #%d\n", comment.ID, ticketID)
			return nil
		},
	}
	cmd.Flags().Int64("ticket", 0, "Ticket to comment on")
	cmd.Flags().String("body", "", "Comment text")
	return cmd
}
