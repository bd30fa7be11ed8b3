package browser

import (
	"github.com/playwright-community/playwright-go"
)

// AlertChoice selects how the next native dialog is answered.
type AlertChoice struct {
	// Accept confirms the dialog. When false it is dismissed.
	Accept bool

	// PromptText is typed into prompt dialogs before accepting. Ignored when
	// Accept is false.
	PromptText string
}

// HandleAlert registers a standing handler answering every subsequent native
// dialog on the page with the given choice. Registration wins over the
// automation layer's default dismissal and stays in effect until the page
// closes.
func (a *Actions) HandleAlert(choice AlertChoice) {
	a.log.Infof("Registering dialog handler (accept=%t)", choice.Accept)

	a.page().OnDialog(func(dialog playwright.Dialog) {
		a.log.Infof("Dialog of type %s: %s", dialog.Type(), dialog.Message())

		var err error
		switch {
		case choice.Accept && choice.PromptText != "":
			err = dialog.Accept(choice.PromptText)
		case choice.Accept:
			err = dialog.Accept()
		default:
			err = dialog.Dismiss()
		}
		if err != nil {
			a.log.Warnf("Failed to answer dialog: %v", err)
		}
	})
}
