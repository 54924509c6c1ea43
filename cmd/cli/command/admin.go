package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

// admin.go exposes the moderation endpoints. The server rejects non-admin sessions.

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Moderate combos and comments",
}

// moderationCmd builds "publish|unpublish|delete|restore" subcommands for one target.
func moderationCmd(use, target string) *cobra.Command {
	parent := &cobra.Command{Use: use, Short: "Moderate " + target}

	actions := []struct {
		use, action, done string
		publish            bool
	}{
		{"publish", "publish", "published", true},
		{"unpublish", "publish", "unpublished", false},
		{"delete", "delete", "deleted", false},
		{"restore", "restore", "restored", false},
	}
	for _, a := range actions {
		parent.AddCommand(&cobra.Command{
			Use:   a.use + " [id]",
			Short: a.use + " a " + use,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseIDArg(args[0], use)
				if err != nil {
					return err
				}
				c, err := GetAuthenticatedClient()
				if err != nil {
					return err
				}
				ctx, cancel := commandContext(cmd)
				defer cancel()

				res, err := c.Moderate(ctx, target, a.action, id, a.publish)
				if err != nil {
					return err
				}
				fmt.Println(success(fmt.Sprintf("✓ %s #%d %s", use, res.ID, a.done)))
				fmt.Println(faint(fmt.Sprintf("published=%t deleted=%t", res.IsPublished, res.Deleted)))
				return nil
			},
		})
	}
	return parent
}

func init() {
	adminCmd.AddCommand(moderationCmd("combo", "combos"), moderationCmd("comment", "comments"))
}
