package browser

import (
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/waypoint/pkg/config"
	"github.com/entrhq/waypoint/pkg/logging"
)

// Driver owns the sessions of all workers in the process. Each worker is
// bound to at most one Session at a time; a worker must tear its session down
// before initializing a new one. Sessions are fully independent: the driver
// guards only the worker-to-session map, never the sessions themselves, since
// a session is only ever touched by its own worker.
type Driver struct {
	mu       sync.RWMutex
	cfg      *config.Config
	sessions map[string]*Session
	log      *logging.Logger
}

// NewDriver creates a driver with no active sessions.
func NewDriver(cfg *config.Config) *Driver {
	log, _ := logging.NewLogger("driver")
	return &Driver{
		cfg:      cfg,
		sessions: make(map[string]*Session),
		log:      log,
	}
}

// Initialize launches a browser of the requested kind, opens an isolated
// context and a page, and binds the triple to the worker. Launch failures
// are propagated, not retried; nothing is bound on failure.
func (d *Driver) Initialize(worker, kind string) (*Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.sessions[worker]; exists {
		return nil, fmt.Errorf("worker %q already has an active session", worker)
	}

	d.log.Infof("Initializing %s session for worker %s", kind, worker)

	pw, err := Engine()
	if err != nil {
		return nil, err
	}

	browser, err := launchBrowser(pw, kind, d.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	context, err := newContext(browser, d.cfg)
	if err != nil {
		_ = browser.Close()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		_ = context.Close()
		_ = browser.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	page.SetDefaultTimeout(d.cfg.ElementTimeout)
	page.SetDefaultNavigationTimeout(d.cfg.NavigationTimeout)

	session := &Session{
		Worker:    worker,
		Browser:   browser,
		Context:   context,
		Page:      page,
		CreatedAt: time.Now(),
		pages:     []playwright.Page{page},
	}
	d.sessions[worker] = session

	d.log.Infof("Session ready for worker %s", worker)
	return session, nil
}

// Current returns the session bound to the worker. A missing session is a
// programming error on the caller's side, not a recoverable condition.
func (d *Driver) Current(worker string) (*Session, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	session, ok := d.sessions[worker]
	return session, ok
}

// NewPage opens an additional page in the worker's existing context and makes
// it the active page. Earlier pages stay open until teardown.
func (d *Driver) NewPage(worker string) (playwright.Page, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	session, ok := d.sessions[worker]
	if !ok {
		return nil, fmt.Errorf("worker %q has no active session", worker)
	}

	page, err := session.Context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	page.SetDefaultTimeout(d.cfg.ElementTimeout)
	page.SetDefaultNavigationTimeout(d.cfg.NavigationTimeout)

	session.Page = page
	session.pages = append(session.pages, page)
	return page, nil
}

// Teardown closes the worker's pages, then context, then browser, and clears
// the binding. Idempotent: a worker without a session is a no-op, and close
// errors on already-closed resources are ignored. Safe to call after a
// partially failed Initialize, which leaves no binding behind.
func (d *Driver) Teardown(worker string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	session, ok := d.sessions[worker]
	if !ok {
		return nil
	}

	d.log.Infof("Tearing down session for worker %s", worker)
	closeSession(session)
	delete(d.sessions, worker)
	return nil
}

// TeardownAll tears down every active session. Used at process shutdown.
func (d *Driver) TeardownAll() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for worker, session := range d.sessions {
		closeSession(session)
		delete(d.sessions, worker)
	}
}

// HasSessions reports whether any worker currently holds a session.
func (d *Driver) HasSessions() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.sessions) > 0
}

func closeSession(session *Session) {
	for _, page := range session.pages {
		_ = page.Close()
	}
	if session.Context != nil {
		_ = session.Context.Close()
	}
	if session.Browser != nil {
		_ = session.Browser.Close()
	}
}
