package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	assert.Equal(t, "That user is already muted.", T("mute.already_muted", "en", nil))
	assert.Equal(t, "Bu kullanıcı zaten susturulmuş.", T("mute.already_muted", "tr", nil))
}

func TestSubstitution(t *testing.T) {
	got := T("mute.footer", "en", map[string]string{"userId": "42"})
	assert.Equal(t, "User ID: 42", got)
}

func TestFallbacks(t *testing.T) {
	// unknown locale falls back to English
	assert.Equal(t, "Reason", T("mute.reason", "de", nil))
	// unknown key falls back to the key itself
	assert.Equal(t, "mute.no_such_key", T("mute.no_such_key", "en", nil))
}

func TestCatalogsAgree(t *testing.T) {
	assert.True(t, Supported("en"))
	assert.True(t, Supported("tr"))

	// every English key must have a Turkish counterpart
	for key := range catalogs["en"] {
		_, ok := catalogs["tr"][key]
		assert.True(t, ok, "missing tr translation for %s", key)
	}
}
