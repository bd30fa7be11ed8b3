package locators

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeComponent(t *testing.T, dir, component, content string) {
	t.Helper()
	path := filepath.Join(dir, component+".json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestLocatorLookup(t *testing.T) {
	dir := t.TempDir()
	writeComponent(t, dir, "login", `{
		"username": {"type": "id", "value": "user-field"},
		"submit": "button[type=submit]"
	}`)

	store := NewStore(dir)

	tests := []struct {
		name    string
		locator string
		want    string
	}{
		{name: "object entry renders as type=value", locator: "username", want: "id=user-field"},
		{name: "string entry passes through", locator: "submit", want: "button[type=submit]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Locator("login", tt.locator)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocatorMissing(t *testing.T) {
	dir := t.TempDir()
	writeComponent(t, dir, "login", `{"submit": "#go"}`)

	store := NewStore(dir)

	_, err := store.Locator("login", "cancel")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancel")

	_, err = store.Locator("checkout", "submit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checkout")
}

func TestLocatorMalformed(t *testing.T) {
	dir := t.TempDir()
	writeComponent(t, dir, "bad", `{"broken": {"type": "id"}}`)
	writeComponent(t, dir, "invalid", `not json at all`)

	store := NewStore(dir)

	_, err := store.Locator("bad", "broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type and value")

	_, err = store.Locator("invalid", "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestAll(t *testing.T) {
	dir := t.TempDir()
	writeComponent(t, dir, "cart", `{
		"checkout": "#checkout",
		"total": {"type": "css", "value": ".cart-total"}
	}`)

	store := NewStore(dir)

	all, err := store.All("cart")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"checkout": "#checkout",
		"total":    "css=.cart-total",
	}, all)
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	writeComponent(t, dir, "login", `{"submit": "#go"}`)

	store := NewStore(dir)

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{name: "component reference resolves", ref: "login.submit", want: "#go"},
		{name: "unknown reference passes through", ref: "login.cancel", want: "login.cancel"},
		{name: "raw selector passes through", ref: "#plain", want: "#plain"},
		{name: "dotted css class passes through", ref: "div.card.active", want: "div.card.active"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, store.Resolve(tt.ref))
		})
	}
}

func TestCacheAndReset(t *testing.T) {
	dir := t.TempDir()
	writeComponent(t, dir, "login", `{"submit": "#v1"}`)

	store := NewStore(dir)

	got, err := store.Locator("login", "submit")
	require.NoError(t, err)
	assert.Equal(t, "#v1", got)

	// A rewrite is invisible until the cache is dropped.
	writeComponent(t, dir, "login", `{"submit": "#v2"}`)

	got, err = store.Locator("login", "submit")
	require.NoError(t, err)
	assert.Equal(t, "#v1", got)

	store.Reset()

	got, err = store.Locator("login", "submit")
	require.NoError(t, err)
	assert.Equal(t, "#v2", got)
}
