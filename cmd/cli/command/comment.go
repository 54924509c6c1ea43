package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Read and write combo comments",
}

var commentAddCmd = &cobra.Command{
	Use:   "add [combo-id] [text]",
	Short: "Comment on a combo",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		comboID, err := parseIDArg(args[0], "combo")
		if err != nil {
			return err
		}
		c, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		comment, err := c.AddComment(ctx, comboID, args[1])
		if err != nil {
			return fmt.Errorf("failed to add comment: %w", err)
		}
		fmt.Println(success(fmt.Sprintf("✓ Comment #%d posted", comment.ID)))
		return nil
	},
}

var commentListCmd = &cobra.Command{
	Use:   "list [combo-id]",
	Short: "List comments on a combo, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		comboID, err := parseIDArg(args[0], "combo")
		if err != nil {
			return err
		}
		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")

		ctx, cancel := commandContext(cmd)
		defer cancel()

		res, err := GetClient().ListComments(ctx, comboID, page, pageSize)
		if err != nil {
			return err
		}
		if len(res.Data) == 0 {
			fmt.Println(warn("no comments yet"))
			return nil
		}
		for _, cm := range res.Data {
			fmt.Printf("%s %s %s\n", bold(cm.AuthorName), faint(cm.CreatedAt.Local().Format("2006-01-02 15:04")), faint(fmt.Sprintf("#%d", cm.ID)))
			fmt.Printf("  %s\n", cm.Body)
		}
		fmt.Println(faint(fmt.Sprintf("page %d/%d, %d comments", res.Page, res.TotalPages, res.Total)))
		return nil
	},
}

var commentDeleteCmd = &cobra.Command{
	Use:   "delete [comment-id]",
	Short: "Delete one of your comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		commentID, err := parseIDArg(args[0], "comment")
		if err != nil {
			return err
		}
		c, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		if err := c.DeleteComment(ctx, commentID); err != nil {
			return err
		}
		fmt.Println(success("✓ Comment deleted"))
		return nil
	},
}

func init() {
	commentCmd.AddCommand(commentAddCmd, commentListCmd, commentDeleteCmd)
	commentListCmd.Flags().IntP("page", "p", 1, "Page number")
	commentListCmd.Flags().Int("page-size", 20, "Comments per page")
}
