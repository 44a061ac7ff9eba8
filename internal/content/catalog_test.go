package content

import (
	"bytes"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func embeddedRaws(t *testing.T) map[Locale][]byte {
	t.Helper()
	raws := make(map[Locale][]byte, len(Locales))
	for _, l := range Locales {
		data, err := fs.ReadFile(embedded, "locales/"+l.String()+".toml")
		require.NoError(t, err)
		raws[l] = data
	}
	return raws
}

func TestEmbeddedCatalogValidates(t *testing.T) {
	cat, err := LoadEmbedded()
	require.NoError(t, err)

	for _, l := range Locales {
		tree := cat.Get(l)
		require.NotNil(t, tree, l)
		assert.Len(t, tree.Nav.Items, 6, l)
		assert.Len(t, tree.Projects.Items, 6, l)
		assert.NotEmpty(t, tree.Hero.Greeting, l)
	}

	assert.Equal(t, "Hello, I'm", cat.Get(English).Hero.Greeting)
	assert.Equal(t, "Hola, soy", cat.Get(Spanish).Hero.Greeting)
	assert.Equal(t, "مرحباً، أنا", cat.Get(Arabic).Hero.Greeting)
}

func TestUntranslatedDataIsSharedAcrossLocales(t *testing.T) {
	cat, err := LoadEmbedded()
	require.NoError(t, err)

	en := cat.Get(English)
	for _, l := range Locales[1:] {
		if diff := cmp.Diff(en.Projects.Items, cat.Get(l).Projects.Items); diff != "" {
			t.Errorf("%s projects differ from en (-en +%s):\n%s", l, l, diff)
		}
		assert.Equal(t, en.Meta, cat.Get(l).Meta, l)
	}
}

func TestGetFallsBackToEnglish(t *testing.T) {
	cat, err := LoadEmbedded()
	require.NoError(t, err)

	assert.Same(t, cat.Get(English), cat.Get(Locale("fr")))
	assert.Same(t, cat.Get(English), cat.Get(Locale("")))
}

func TestParseReportsEveryDefect(t *testing.T) {
	raws := embeddedRaws(t)

	es := string(raws[Spanish])
	es = strings.Replace(es, "greeting = \"Hola, soy\"\n", "", 1)
	es = strings.Replace(es, "[contact.form]\n", "[contact.form]\nsubmit_later = 1\n", 1)
	raws[Spanish] = []byte(es)

	ar := string(raws[Arabic])
	cut := strings.LastIndex(ar, "[[projects.items]]")
	end := strings.Index(ar, "[experience]")
	require.True(t, cut > 0 && end > cut)
	raws[Arabic] = []byte(ar[:cut] + ar[end:])

	_, err := Parse(raws)
	require.Error(t, err)

	errs := multierr.Errors(err)
	require.Len(t, errs, 2)

	var defect *Defect
	require.True(t, errors.As(errs[0], &defect))
	assert.Equal(t, Spanish, defect.Locale)
	assert.Contains(t, defect.Problem, "unknown keys")

	require.True(t, errors.As(errs[1], &defect))
	assert.Equal(t, Arabic, defect.Locale)
	assert.Equal(t, "projects.items", defect.Path)
	assert.Contains(t, defect.Problem, "expected 6 entries, found 5")
}

func TestParseReportsMissingAndUnexpectedKeys(t *testing.T) {
	raws := embeddedRaws(t)
	es := string(raws[Spanish])
	es = strings.Replace(es, "greeting = \"Hola, soy\"\n", "", 1)
	raws[Spanish] = []byte(es)

	_, err := Parse(raws)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "es.toml: hero.greeting: missing key")
}

func TestParseChecksEnglishAgainstSchema(t *testing.T) {
	raws := embeddedRaws(t)
	for _, l := range Locales {
		raws[l] = bytes.Replace(raws[l], []byte("phone = \"+1 (555) 123-4567\"\n"), nil, 1)
	}

	_, err := Parse(raws)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "en.toml: meta.phone: missing key")
}

func TestParseRejectsKindMismatch(t *testing.T) {
	raws := embeddedRaws(t)
	raws[Spanish] = bytes.Replace(raws[Spanish], []byte("featured = true"), []byte("featured = \"yes\""), 1)

	_, err := Parse(raws)
	require.Error(t, err)
	var defect *Defect
	require.True(t, errors.As(err, &defect))
	assert.Equal(t, Spanish, defect.Locale)
}

func TestParseRejectsDuplicateSlugs(t *testing.T) {
	raws := embeddedRaws(t)
	for _, l := range Locales {
		raws[l] = bytes.Replace(raws[l], []byte(`slug = "ecommerce"`), []byte(`slug = "collab-tool"`), 1)
	}

	_, err := Parse(raws)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
	assert.Contains(t, err.Error(), "duplicate slug collab-tool")
}

func TestParseReportsMissingLocale(t *testing.T) {
	raws := embeddedRaws(t)
	delete(raws, Arabic)

	_, err := Parse(raws)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ar.toml: missing locale file")
}

func TestFindProject(t *testing.T) {
	cat, err := LoadEmbedded()
	require.NoError(t, err)
	projects := cat.Get(English).Projects

	bySlug, ok := projects.FindProject("ai-task-manager")
	require.True(t, ok)
	byID, ok := projects.FindProject("2")
	require.True(t, ok)
	assert.Equal(t, bySlug, byID)

	_, ok = projects.FindProject("nope")
	assert.False(t, ok)
}

func TestNavAnchor(t *testing.T) {
	assert.Equal(t, "about", NavItem{Href: "#about"}.Anchor())
	assert.Equal(t, "https://x", NavItem{Href: "https://x"}.Anchor())
}

func TestExportFormats(t *testing.T) {
	cat, err := LoadEmbedded()
	require.NoError(t, err)
	tree := cat.Get(Spanish)

	var out bytes.Buffer
	require.NoError(t, Export(&out, tree, FormatJSON))
	assert.Contains(t, out.String(), `"siteName": "DevPortfolio"`)

	out.Reset()
	require.NoError(t, Export(&out, tree, FormatYAML))
	assert.Contains(t, out.String(), "site_name: DevPortfolio")

	out.Reset()
	require.NoError(t, Export(&out, tree, FormatTOML))
	assert.Contains(t, out.String(), "Hola, soy")

	assert.Error(t, Export(&out, tree, Format("xml")))
}
