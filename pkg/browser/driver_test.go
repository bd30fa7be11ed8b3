package browser

import (
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/waypoint/pkg/config"
)

type closingPage struct {
	playwright.Page
	name string
	log  *[]string
}

func (p *closingPage) Close(options ...playwright.PageCloseOptions) error {
	*p.log = append(*p.log, "page:"+p.name)
	return nil
}

type closingContext struct {
	playwright.BrowserContext
	log *[]string
}

func (c *closingContext) Close(options ...playwright.BrowserContextCloseOptions) error {
	*c.log = append(*c.log, "context")
	return nil
}

type closingBrowser struct {
	playwright.Browser
	log *[]string
}

func (b *closingBrowser) Close(options ...playwright.BrowserCloseOptions) error {
	*b.log = append(*b.log, "browser")
	return nil
}

// bindFakeSession attaches a session built from recording fakes directly to
// the driver, standing in for a successful Initialize.
func bindFakeSession(d *Driver, worker string, pageNames ...string) *[]string {
	log := &[]string{}

	pages := make([]playwright.Page, 0, len(pageNames))
	for _, name := range pageNames {
		pages = append(pages, &closingPage{name: name, log: log})
	}

	session := &Session{
		Worker:    worker,
		Browser:   &closingBrowser{log: log},
		Context:   &closingContext{log: log},
		Page:      pages[len(pages)-1],
		CreatedAt: time.Now(),
		pages:     pages,
	}
	d.sessions[worker] = session
	return log
}

func TestTeardownClosesPagesThenContextThenBrowser(t *testing.T) {
	d := NewDriver(config.Default())
	log := bindFakeSession(d, "w1", "first", "second")

	require.NoError(t, d.Teardown("w1"))

	assert.Equal(t, []string{"page:first", "page:second", "context", "browser"}, *log)
	_, ok := d.Current("w1")
	assert.False(t, ok)
}

func TestTeardownIsIdempotent(t *testing.T) {
	d := NewDriver(config.Default())
	log := bindFakeSession(d, "w1", "only")

	require.NoError(t, d.Teardown("w1"))
	require.NoError(t, d.Teardown("w1"))

	assert.Len(t, *log, 3, "a second teardown must not close anything again")
}

func TestTeardownUnknownWorker(t *testing.T) {
	d := NewDriver(config.Default())

	assert.NoError(t, d.Teardown("never-initialized"))
}

func TestWorkersAreIsolated(t *testing.T) {
	d := NewDriver(config.Default())
	logA := bindFakeSession(d, "worker-a", "a")
	logB := bindFakeSession(d, "worker-b", "b")

	require.NoError(t, d.Teardown("worker-a"))

	assert.NotEmpty(t, *logA)
	assert.Empty(t, *logB, "tearing down one worker must not touch another's session")

	_, ok := d.Current("worker-b")
	assert.True(t, ok)
}

func TestCurrentMissingSession(t *testing.T) {
	d := NewDriver(config.Default())

	session, ok := d.Current("w1")
	assert.Nil(t, session)
	assert.False(t, ok)
}

func TestNewPageWithoutSession(t *testing.T) {
	d := NewDriver(config.Default())

	_, err := d.NewPage("w1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no active session")
}

func TestInitializeRefusesDuplicateWorker(t *testing.T) {
	d := NewDriver(config.Default())
	bindFakeSession(d, "w1", "only")

	_, err := d.Initialize("w1", "chromium")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already has an active session")
}

func TestTeardownAll(t *testing.T) {
	d := NewDriver(config.Default())
	bindFakeSession(d, "w1", "a")
	bindFakeSession(d, "w2", "b")
	require.True(t, d.HasSessions())

	d.TeardownAll()

	assert.False(t, d.HasSessions())
}

func TestSessionPagesReturnsCopy(t *testing.T) {
	d := NewDriver(config.Default())
	bindFakeSession(d, "w1", "a", "b")

	session, ok := d.Current("w1")
	require.True(t, ok)

	pages := session.Pages()
	require.Len(t, pages, 2)

	pages[0] = nil
	assert.NotNil(t, session.pages[0], "mutating the returned slice must not affect the session")
}
