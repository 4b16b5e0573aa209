package web

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{
		"campaigns/index.tmpl",
		"campaigns/show.tmpl",
		"campaigns/form.tmpl",
		"errors/status.tmpl",
		"auth/login.tmpl",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "errors/status.tmpl", map[string]interface{}{
		"Title":   "Not Found",
		"Status":  404,
		"Message": "The requested page could not be found.",
		"Flash":   "",
	}))
	assert.Contains(t, buf.String(), "<h1>404</h1>")
}

func TestFuncs(t *testing.T) {
	d := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	var missing *time.Time

	assert.Equal(t, "2030-06-01", formatDate(&d))
	assert.Equal(t, "2030-06-01", formatDate(d))
	assert.Equal(t, "-", formatDate(missing))
	assert.Equal(t, "-", formatDate(time.Time{}))

	assert.Equal(t, "$12.50", formatMoney(decimal.RequireFromString("12.5")))

	assert.Equal(t, 50, progress(decimal.NewFromInt(50), decimal.NewFromInt(100)))
	assert.Equal(t, 100, progress(decimal.NewFromInt(500), decimal.NewFromInt(100)))
	assert.Equal(t, 0, progress(decimal.NewFromInt(5), decimal.Zero))
}
