package locale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heritage-catalog-service/internal/locale"
)

// TestLoad tests reading embedded string tables
func TestLoad(t *testing.T) {
	en, err := locale.Load("EN")
	require.NoError(t, err)
	assert.Equal(t, "EN", en.Name)
	assert.NotEmpty(t, en.Strings.Greeting)
	assert.NotEmpty(t, en.Buttons.ShowList)
	assert.Contains(t, en.Strings.Found, "%count%")

	ru, err := locale.Load("RU")
	require.NoError(t, err)
	assert.Equal(t, "RU", ru.Name)
	assert.NotEmpty(t, ru.Strings.Greeting)
	assert.NotEqual(t, en.Strings.Greeting, ru.Strings.Greeting)
}

// TestLoad_Unknown tests the error for a missing table
func TestLoad_Unknown(t *testing.T) {
	_, err := locale.Load("XX")
	assert.Error(t, err)
}

// TestLoadAll tests that every embedded table parses
func TestLoadAll(t *testing.T) {
	tables, err := locale.LoadAll()
	require.NoError(t, err)
	assert.Contains(t, tables, "EN")
	assert.Contains(t, tables, "RU")

	for code, table := range tables {
		assert.NotEmpty(t, table.Strings.Greeting, "greeting missing for %s", code)
		assert.NotEmpty(t, table.Words.And, "and word missing for %s", code)
		assert.NotEmpty(t, table.Words.Or, "or word missing for %s", code)
	}
}

// TestSupported tests the sorted list of available languages
func TestSupported(t *testing.T) {
	codes := locale.Supported()
	assert.Equal(t, []string{"EN", "RU"}, codes)
}

// TestFill tests placeholder substitution
func TestFill(t *testing.T) {
	out := locale.Fill("Sites %start%-%end% of %total%", map[string]string{
		"start": "1",
		"end":   "10",
		"total": "25",
	})
	assert.Equal(t, "Sites 1-10 of 25", out)

	// незнакомые плейсхолдеры остаются как есть
	out = locale.Fill("Found: %count%", map[string]string{"other": "x"})
	assert.Equal(t, "Found: %count%", out)
}
