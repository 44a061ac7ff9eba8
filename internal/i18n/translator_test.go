package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslatorLocalizes(t *testing.T) {
	tr, err := New(nil)
	require.NoError(t, err)

	assert.Equal(t, "Clear the terminal", tr.T("en", "cmd.clear", nil))
	assert.Equal(t, "Limpia la terminal", tr.T("es", "cmd.clear", nil))
	assert.Equal(t, "مسح الطرفية", tr.T("ar", "cmd.clear", nil))
}

func TestTranslatorTemplates(t *testing.T) {
	tr, err := New(nil)
	require.NoError(t, err)

	got := tr.T("en", "terminal.not_recognized", map[string]any{"Input": "foo"})
	assert.Equal(t, `The term 'foo' is not recognized. Type "help" or "cls".`, got)

	got = tr.T("es", "terminal.not_recognized", map[string]any{"Input": "foo"})
	assert.Contains(t, got, "'foo'")
	assert.Contains(t, got, `"help"`)
	assert.Contains(t, got, `"cls"`)
}

func TestTranslatorFallbacks(t *testing.T) {
	tr, err := New(nil)
	require.NoError(t, err)

	assert.Equal(t, "Clear the terminal", tr.T("fr", "cmd.clear", nil))
	assert.Equal(t, "no.such.message", tr.T("en", "no.such.message", nil))
	assert.Equal(t, "", tr.T("en", "", nil))
}

func TestBind(t *testing.T) {
	tr := MustNew(nil)
	es := tr.Bind("es")
	assert.Equal(t, "Alias de help", es("cmd.ls", nil))
}
