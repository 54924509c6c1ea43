package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

var favoriteCmd = &cobra.Command{
	Use:   "favorite [combo-id]",
	Short: "Add or remove a combo from your favorites",
	Args:  cobra.ExactArgs(1),
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

		res, err := c.ToggleFavorite(ctx, comboID)
		if err != nil {
			return err
		}
		if res.Favorited {
			fmt.Println(success("★ Added to favorites"))
		} else {
			fmt.Println(success("☆ Removed from favorites"))
		}
		fmt.Printf("%d favorites\n", res.Count)
		return nil
	},
}
