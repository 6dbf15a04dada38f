package cli

import (
	"cyclet/internal/ledger"

	"github.com/spf13/cobra"
)

func newCyclesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cycles",
		Short: "Record and inspect cycle entries",
	}
	cmd.AddCommand(newCyclesAddCmd(app))
	cmd.AddCommand(newCyclesDeleteCmd(app))
	cmd.AddCommand(newCyclesListCmd(app))
	return cmd
}

func newCyclesAddCmd(app *App) *cobra.Command {
	var start string
	var end string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a cycle (spacing to the previous start is computed)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t := session(db)
			rec, err := t.AddCycle(start, end)
			if err != nil {
				return writeErr(cmd, err)
			}
			applySession(db, t)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": rec})
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newCyclesDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <start-date>",
		Short: "Delete the cycle starting on the given date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t := session(db)
			rec, err := t.DeleteCycle(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			applySession(db, t)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": rec})
		},
	}
	return cmd
}

func newCyclesListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded cycles in chronological order",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := ledger.New(db.Cycles).Chronological()
			return writeOut(cmd, app, map[string]any{
				"data": out,
				"meta": map[string]any{"count": len(out)},
			})
		},
	}
	return cmd
}
