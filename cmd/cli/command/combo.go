package command

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"comboshare/internal/microservices/http-api/dto"
)

// combo.go handles searching, showing and submitting combos.

var comboCmd = &cobra.Command{
	Use:   "combo",
	Short: "Search, show and submit combos",
}

var comboSearchCmd = &cobra.Command{
	Use:   "search [keywords]",
	Short: "Search combos with filters and ranking",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := searchQuery(cmd.Flags(), args)

		ctx, cancel := commandContext(cmd)
		defer cancel()

		res, err := GetClient().SearchCombos(ctx, query)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		printSummaries(os.Stdout, res.Items)
		fmt.Println(faint(fmt.Sprintf("page %d/%d, %d combos, sort %s %s", res.Page, res.Pages, res.Total, res.Sort, res.Dir)))
		return nil
	},
}

var comboShowCmd = &cobra.Command{
	Use:   "show [combo-id]",
	Short: "Show one combo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0], "combo")
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		c, err := GetClient().GetCombo(ctx, id)
		if err != nil {
			return err
		}

		fmt.Printf("%s #%d  %s (%s)\n", bold(c.CharacterName), c.ID, c.PlayStyle, c.Version)
		fmt.Println(c.ComboText)
		fmt.Printf("starter: %s  damage: %s  drive: %d  super: %d\n", c.Starter, damageText(c.Damage), c.DriveCost, c.SuperCost)
		fmt.Printf("rating: %.2f (%d votes)  favorites: %d  comments: %d\n", c.RatingAverage, c.RatingCount, c.FavoriteCount, c.CommentCount)
		if len(c.Tags) > 0 {
			fmt.Printf("tags: %s\n", strings.Join(c.Tags, ", "))
		}
		if c.Description != nil {
			fmt.Println(*c.Description)
		}
		if c.VideoURL != nil {
			fmt.Println(faint(*c.VideoURL))
		}
		for _, s := range c.Steps {
			line := fmt.Sprintf("  %d.", s.Order)
			if s.MoveName != nil {
				line += " " + *s.MoveName
			}
			if s.Note != nil {
				line += " " + faint(*s.Note)
			}
			fmt.Println(line)
		}
		if c.MyRating != nil {
			fmt.Printf("your rating: %d\n", *c.MyRating)
		}
		if c.Favorited {
			fmt.Println(success("★ in your favorites"))
		}
		return nil
	},
}

var comboCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Submit a new combo",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := createRequest(cmd.Flags())
		if err != nil {
			return err
		}
		c, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		combo, err := c.CreateCombo(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to create combo: %w", err)
		}
		fmt.Println(success(fmt.Sprintf("✓ Combo #%d created", combo.ID)))
		return nil
	},
}

var comboMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List combos you submitted",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")

		ctx, cancel := commandContext(cmd)
		defer cancel()

		res, err := c.MyCombos(ctx, page, pageSize)
		if err != nil {
			return err
		}
		printSummaries(os.Stdout, res.Data)
		fmt.Println(faint(fmt.Sprintf("page %d/%d, %d combos", res.Page, res.TotalPages, res.Total)))
		return nil
	},
}

var comboPicksCmd = &cobra.Command{
	Use:   "picks",
	Short: "Show the top rated combos per character",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		picks, err := GetClient().Picks(ctx)
		if err != nil {
			return err
		}
		for _, p := range picks {
			fmt.Println(bold(p.CharacterName))
			printSummaries(os.Stdout, p.Combos)
		}
		return nil
	},
}

// searchQuery maps command flags to the API's query parameters. Unset flags are left out.
func searchQuery(flags *pflag.FlagSet, args []string) url.Values {
	q := url.Values{}
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		q.Set("q", strings.TrimSpace(args[0]))
	}
	for flag, param := range map[string]string{
		"character":  "characterId",
		"mode":       "mode",
		"min-damage": "minDamage",
		"max-damage": "maxDamage",
		"max-drive":  "maxDrive",
		"max-super":  "maxSuper",
		"sort":       "sort",
		"dir":        "dir",
		"page":       "page",
		"take":       "take",
	} {
		if f := flags.Lookup(flag); f != nil && f.Changed {
			q.Set(param, f.Value.String())
		}
	}
	if tags, _ := flags.GetStringSlice("tag"); len(tags) > 0 {
		q["tags"] = tags
	}
	return q
}

func createRequest(flags *pflag.FlagSet) (*dto.CreateComboDTO, error) {
	var req dto.CreateComboDTO
	req.CharacterID, _ = flags.GetInt64("character")
	req.PlayStyle, _ = flags.GetString("style")
	req.ComboText, _ = flags.GetString("text")
	req.Tags, _ = flags.GetStringSlice("tag")
	if strings.TrimSpace(req.ComboText) == "" {
		return nil, fmt.Errorf("--text is required")
	}

	optInt := func(name string) *int {
		if f := flags.Lookup(name); f != nil && f.Changed {
			v, _ := flags.GetInt(name)
			return &v
		}
		return nil
	}
	optString := func(name string) *string {
		if f := flags.Lookup(name); f != nil && f.Changed {
			v, _ := flags.GetString(name)
			return &v
		}
		return nil
	}

	req.Damage = optInt("damage")
	req.DriveCost = optInt("drive")
	req.SuperCost = optInt("super")
	req.Version = optString("version")
	req.Description = optString("description")
	req.VideoURL = optString("video")
	optID := func(name string) *int64 {
		if f := flags.Lookup(name); f != nil && f.Changed {
			v, _ := flags.GetInt64(name)
			return &v
		}
		return nil
	}
	req.ParentComboID = optID("parent")
	req.ConditionID = optID("condition")
	req.AttributeID = optID("attribute")
	return &req, nil
}

func printSummaries(w io.Writer, items []dto.ComboSummary) {
	if len(items) == 0 {
		fmt.Fprintln(w, warn("no combos found"))
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCHARACTER\tSTARTER\tDAMAGE\tRATING\tFAV\tCOMBO")
	for _, c := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.2f (%d)\t%d\t%s\n",
			c.ID, c.CharacterName, c.Starter, damageText(c.Damage), c.RatingAverage, c.RatingCount, c.FavoriteCount, truncate(c.ComboText, 48))
	}
	_ = tw.Flush()
}

func damageText(d *int) string {
	if d == nil {
		return "-"
	}
	return strconv.Itoa(*d)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func init() {
	comboCmd.AddCommand(comboSearchCmd, comboShowCmd, comboCreateCmd, comboMineCmd, comboPicksCmd)

	sf := comboSearchCmd.Flags()
	sf.Int64P("character", "c", 0, "Character id")
	sf.StringSliceP("tag", "t", nil, "Tag name or id (repeatable)")
	sf.String("mode", "and", "Tag match mode: and | or")
	sf.Int("min-damage", 0, "Minimum damage")
	sf.Int("max-damage", 0, "Maximum damage")
	sf.Int("max-drive", 0, "Maximum drive gauge cost")
	sf.Int("max-super", 0, "Maximum super gauge cost")
	sf.StringP("sort", "s", "created", "created | damage | drive | super | popular | rating | recommend")
	sf.String("dir", "desc", "asc | desc")
	sf.IntP("page", "p", 1, "Page number")
	sf.Int("take", 50, "Results per page")

	cf := comboCreateCmd.Flags()
	cf.Int64P("character", "c", 0, "Character id")
	cf.String("style", "CLASSIC", "Play style: MODERN | CLASSIC")
	cf.String("text", "", "Combo notation, e.g. \"2LP > 2MP xx 236HP\"")
	cf.Int("damage", 0, "Damage")
	cf.Int("drive", 0, "Drive gauge cost (0-6)")
	cf.Int("super", 0, "Super gauge cost (0-3)")
	cf.String("version", "", "Game version")
	cf.String("description", "", "Description")
	cf.String("video", "", "Video URL")
	cf.Int64("parent", 0, "Parent combo id for variations")
	cf.Int64("condition", 0, "Condition id (see catalog lookups)")
	cf.Int64("attribute", 0, "Attribute id (see catalog lookups)")
	cf.StringSliceP("tag", "t", nil, "Tag (repeatable)")
	_ = comboCreateCmd.MarkFlagRequired("character")

	comboMineCmd.Flags().IntP("page", "p", 1, "Page number")
	comboMineCmd.Flags().Int("page-size", 20, "Results per page")
}
