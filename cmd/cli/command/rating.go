package command

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"comboshare/internal/microservices/http-api/dto"
)

var rateCmd = &cobra.Command{
	Use:   "rate",
	Short: "Rate combos (1-5)",
}

var rateSetCmd = &cobra.Command{
	Use:   "set [combo-id] [value]",
	Short: "Rate a combo from 1 to 5, replacing your previous rating",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		comboID, err := parseIDArg(args[0], "combo")
		if err != nil {
			return err
		}
		value, err := strconv.Atoi(args[1])
		if err != nil || value < 1 || value > 5 {
			return fmt.Errorf("rating must be between 1 and 5")
		}

		c, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		res, err := c.SetRating(ctx, comboID, value)
		if err != nil {
			return fmt.Errorf("failed to rate combo: %w", err)
		}
		fmt.Println(success("✓ Rating submitted"))
		printRating(res)
		return nil
	},
}

var rateClearCmd = &cobra.Command{
	Use:   "clear [combo-id]",
	Short: "Remove your rating",
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

		res, err := c.ClearRating(ctx, comboID)
		if err != nil {
			return err
		}
		fmt.Println(success("✓ Rating removed"))
		printRating(res)
		return nil
	},
}

func printRating(r *dto.RatingSummaryResponse) {
	fmt.Printf("average %.2f from %d votes\n", r.Average, r.Count)
}

func init() {
	rateCmd.AddCommand(rateSetCmd, rateClearCmd)
}
