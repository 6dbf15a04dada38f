package cli

import (
	"github.com/spf13/cobra"
)

func newUndoCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Reverse the most recent ledger change",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t := session(db)
			act, err := t.Undo()
			if err != nil {
				return writeErr(cmd, err)
			}
			applySession(db, t)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": act})
		},
	}
	return cmd
}

func newRedoCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "redo",
		Short: "Re-apply the most recently undone change",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t := session(db)
			act, err := t.Redo()
			if err != nil {
				return writeErr(cmd, err)
			}
			applySession(db, t)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": act})
		},
	}
	return cmd
}
