package cli

import (
	"context"

	"github.com/dmitrijs2005/doccatalog/internal/client/store"
)

// confirmer returns the gate used in front of destructive commands.
//
//   - -y given: every question is answered yes.
//   - stdin is not a terminal: every question is answered no, so scripted
//     input never deletes by accident.
//   - otherwise the user is asked.
func (a *App) confirmer() store.Confirmer {
	return store.ConfirmFunc(func(ctx context.Context, prompt string) (bool, error) {
		if a.config.AutoConfirm {
			return true, nil
		}
		if !isTerminal() {
			a.logger.Warn(ctx, "confirmation declined, stdin is not a terminal (use -y)", "prompt", prompt)
			return false, nil
		}
		return GetConfirmation(a.reader, prompt, a.out)
	})
}
