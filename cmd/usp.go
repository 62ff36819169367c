package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Soborbo/ventilatorhaz-leirasok/internal/library"
	"github.com/Soborbo/ventilatorhaz-leirasok/internal/model"
	"github.com/Soborbo/ventilatorhaz-leirasok/internal/usp"
)

var uspCmd = &cobra.Command{
	Use:   "usp",
	Short: "Match and curate the product's USP marketing blocks",
}

var uspMatchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match library entries against the product and pre-select the first eight",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		sess, err := loadSession(ctx, st)
		if err != nil {
			return err
		}

		lib, err := library.LoadUspLibrary(cfg.Library.UspLibraryPath)
		if err != nil {
			return err
		}

		matched := usp.Match(lib, sess.Values())
		sel := usp.NewSession(sess.ProductName)
		sel.AutoSelect(matched)

		if sess.Phase < model.PhaseUsp {
			sess.Phase = model.PhaseUsp
		}
		if err := saveSelection(ctx, st, sess, sel); err != nil {
			return err
		}

		zap.L().Info("usp blocks matched",
			zap.String("session_id", sess.ID),
			zap.Int("matched", len(matched)),
			zap.Int("selected", len(sel.Selected)),
		)
		return printJSON(map[string]any{
			"matched":   len(matched),
			"selected":  sel.Selected,
			"available": sel.Available,
		})
	},
}

var uspListCmd = &cobra.Command{
	Use:   "list",
	Short: "List selected and available USP blocks",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		sess, err := loadSession(ctx, st)
		if err != nil {
			return err
		}
		return printJSON(map[string]any{
			"selected":  sess.Selected,
			"available": sess.Available,
		})
	},
}

var (
	uspID          string
	uspOnDuplicate string
)

var uspSelectCmd = &cobra.Command{
	Use:   "select",
	Short: "Select an available USP block, resolving SEO duplicates",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		sess, err := loadSession(ctx, st)
		if err != nil {
			return err
		}

		var block *model.UspBlock
		for i := range sess.Available {
			if sess.Available[i].ID == uspID {
				block = &sess.Available[i]
				break
			}
		}
		if block == nil {
			return eris.Errorf("no available usp block with id %q", uspID)
		}

		sel := uspSession(sess)
		flow, err := usp.BeginSelect(ctx, sel, st, *block)
		if err != nil {
			return err
		}

		if flow.State() == usp.FlowDuplicateFound {
			report := flow.Report()
			zap.L().Warn("usp already used on other products",
				zap.String("usp_id", uspID),
				zap.Strings("used_by", report.UsedBy),
			)
			switch uspOnDuplicate {
			case "accept":
				if err := flow.Accept(ctx); err != nil {
					return err
				}
			case "rephrase":
				ex, err := newExtractor()
				if err != nil {
					return err
				}
				for flow.State() == usp.FlowDuplicateFound {
					if err := flow.Rephrase(ctx, ex); err != nil {
						return err
					}
				}
			case "cancel", "":
				flow.Cancel()
			default:
				return eris.Errorf("unknown --on-duplicate value %q", uspOnDuplicate)
			}
		}

		if err := saveSelection(ctx, st, sess, sel); err != nil {
			return err
		}
		return printJSON(map[string]any{
			"state":     flow.State().String(),
			"candidate": flow.Candidate(),
			"report":    flow.Report(),
			"selected":  len(sel.Selected),
		})
	},
}

var uspDeselectCmd = &cobra.Command{
	Use:   "deselect",
	Short: "Move a selected USP block back to the available pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		sess, err := loadSession(ctx, st)
		if err != nil {
			return err
		}

		sel := uspSession(sess)
		if !sel.Deselect(uspID) {
			return eris.Errorf("no selected usp block with id %q", uspID)
		}
		if err := saveSelection(ctx, st, sess, sel); err != nil {
			return err
		}
		return printJSON(map[string]any{"selected": len(sel.Selected)})
	},
}

var (
	uspMoveIndex int
	uspMoveDir   string
)

var uspMoveCmd = &cobra.Command{
	Use:   "move",
	Short: "Move a selected USP block up or down one position",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		sess, err := loadSession(ctx, st)
		if err != nil {
			return err
		}

		dir := usp.Down
		if uspMoveDir == "up" {
			dir = usp.Up
		} else if uspMoveDir != "down" {
			return eris.Errorf("direction must be up or down, got %q", uspMoveDir)
		}

		sel := uspSession(sess)
		sel.Move(uspMoveIndex, dir)
		if err := saveSelection(ctx, st, sess, sel); err != nil {
			return err
		}
		return printJSON(sel.Selected)
	},
}

var uspStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show selection counts and whether generation may proceed",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		sess, err := loadSession(ctx, st)
		if err != nil {
			return err
		}

		sel := uspSession(sess)
		return printJSON(map[string]any{
			"selected":    len(sel.Selected),
			"available":   len(sel.Available),
			"max":         usp.MaxSelected,
			"can_proceed": sel.CanProceed(),
			"advisory":    sel.Advisory(),
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{uspMatchCmd, uspListCmd, uspSelectCmd, uspDeselectCmd, uspMoveCmd, uspStatusCmd} {
		c.Flags().StringVar(&sessionFlag, "session", "", "session id (default: latest)")
		uspCmd.AddCommand(c)
	}

	uspSelectCmd.Flags().StringVar(&uspID, "id", "", "usp block id (required)")
	uspSelectCmd.Flags().StringVar(&uspOnDuplicate, "on-duplicate", "cancel", "duplicate resolution: accept|rephrase|cancel")
	_ = uspSelectCmd.MarkFlagRequired("id")

	uspDeselectCmd.Flags().StringVar(&uspID, "id", "", "usp block id (required)")
	_ = uspDeselectCmd.MarkFlagRequired("id")

	uspMoveCmd.Flags().IntVar(&uspMoveIndex, "index", 0, "zero-based index of the selected block")
	uspMoveCmd.Flags().StringVar(&uspMoveDir, "dir", "up", "direction: up|down")

	rootCmd.AddCommand(uspCmd)
}
