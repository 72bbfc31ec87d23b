package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/aeskafi/HistoryManager/internal/app"
	histerrors "github.com/aeskafi/HistoryManager/internal/errors"
	"github.com/aeskafi/HistoryManager/internal/history"
)

// promptConfirm asks on the terminal before the history file is replaced.
func promptConfirm() app.ConfirmFunc {
	return func(stats history.Stats) (bool, error) {
		if stats.Removed() == 0 {
			return true, nil
		}

		proceed := false
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Rewrite shell history?").
					Description(fmt.Sprintf("%d duplicate and %d blank lines will be removed; %d lines kept.",
						stats.Duplicates, stats.Blank, stats.Kept)).
					Affirmative("Rewrite").
					Negative("Cancel").
					Value(&proceed),
			),
		).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return false, nil
			}
			return false, fmt.Errorf("form error: %w: %w", histerrors.ErrCanceled, err)
		}
		return proceed, nil
	}
}
