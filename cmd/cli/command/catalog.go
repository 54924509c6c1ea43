package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse characters and moves",
}

var charactersCmd = &cobra.Command{
	Use:   "characters",
	Short: "List characters",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		chars, err := GetClient().Characters(ctx)
		if err != nil {
			return err
		}
		for _, ch := range chars {
			fmt.Printf("%4d  %s %s\n", ch.ID, bold(ch.Name), faint(ch.Slug))
		}
		return nil
	},
}

var movesCmd = &cobra.Command{
	Use:   "moves [character-id]",
	Short: "List a character's moves",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0], "character")
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		moves, err := GetClient().Moves(ctx, id)
		if err != nil {
			return err
		}
		for _, m := range moves {
			input := ""
			if m.Input != nil {
				input = *m.Input
			}
			fmt.Printf("%4d  %-28s %s\n", m.ID, m.Name, faint(input))
		}
		return nil
	},
}

var lookupsCmd = &cobra.Command{
	Use:   "lookups",
	Short: "List condition and attribute ids for combo create",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		res, err := GetClient().Lookups(ctx)
		if err != nil {
			return err
		}
		fmt.Println(bold("conditions"))
		for _, l := range res.Conditions {
			fmt.Printf("%4d  %s\n", l.ID, l.Type)
		}
		fmt.Println(bold("attributes"))
		for _, l := range res.Attributes {
			fmt.Printf("%4d  %s\n", l.ID, l.Type)
		}
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(charactersCmd, movesCmd, lookupsCmd)
}
