package browser

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// Session is the browser/context/page triple bound to one worker. It is
// created by Driver.Initialize and destroyed by Driver.Teardown; it is never
// recreated implicitly in between.
type Session struct {
	// Worker is the identity of the worker this session is bound to.
	Worker string

	// Browser is the launched browser instance.
	Browser playwright.Browser

	// Context is the isolated browsing context.
	Context playwright.BrowserContext

	// Page is the active page. NewPage rebinds this; earlier pages stay in
	// pages and remain open until teardown.
	Page playwright.Page

	// CreatedAt is when the session was initialized.
	CreatedAt time.Time

	// pages holds every page opened in this session, active one included.
	pages []playwright.Page
}

// Pages returns every page opened in this session, oldest first.
func (s *Session) Pages() []playwright.Page {
	out := make([]playwright.Page, len(s.pages))
	copy(out, s.pages)
	return out
}
