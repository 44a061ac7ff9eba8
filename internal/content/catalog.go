package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"
)

//go:embed locales/*.toml
var embedded embed.FS

// Defect describes one structural problem found while loading a locale file.
type Defect struct {
	Locale  Locale
	Path    string
	Problem string
}

func (d *Defect) Error() string {
	if d.Path == "" {
		return fmt.Sprintf("%s.toml: %s", d.Locale, d.Problem)
	}
	return fmt.Sprintf("%s.toml: %s: %s", d.Locale, d.Path, d.Problem)
}

// Catalog holds one validated content tree per supported locale.
type Catalog struct {
	trees map[Locale]*Content
}

// LoadEmbedded loads the locale files compiled into the binary.
func LoadEmbedded() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "locales")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// LoadDir loads <dir>/{en,es,ar}.toml.
func LoadDir(dir string) (*Catalog, error) {
	return Load(os.DirFS(dir))
}

// Load reads and validates every locale file in fsys. All defects are
// reported together; the catalog is nil when any exist.
func Load(fsys fs.FS) (*Catalog, error) {
	raws := make(map[Locale][]byte, len(Locales))
	var errs error
	for _, l := range Locales {
		data, err := fs.ReadFile(fsys, l.String()+".toml")
		if err != nil {
			errs = multierr.Append(errs, &Defect{Locale: l, Problem: err.Error()})
			continue
		}
		raws[l] = data
	}
	if errs != nil {
		return nil, errs
	}
	return Parse(raws)
}

// Parse validates raw TOML documents keyed by locale. The en document is
// checked against the Content schema and every other locale against en.
func Parse(raws map[Locale][]byte) (*Catalog, error) {
	cat := &Catalog{trees: make(map[Locale]*Content, len(Locales))}
	shapes := make(map[Locale]map[string]any, len(Locales))

	var errs error
	for _, l := range Locales {
		data, ok := raws[l]
		if !ok {
			errs = multierr.Append(errs, &Defect{Locale: l, Problem: "missing locale file"})
			continue
		}

		var shape map[string]any
		if err := toml.Unmarshal(data, &shape); err != nil {
			errs = multierr.Append(errs, &Defect{Locale: l, Problem: describeDecodeError(err)})
			continue
		}

		var c Content
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&c); err != nil {
			errs = multierr.Append(errs, &Defect{Locale: l, Problem: describeDecodeError(err)})
			continue
		}

		shapes[l] = shape
		cat.trees[l] = &c
		errs = multierr.Append(errs, checkProjects(l, &c))
	}

	if en, ok := shapes[English]; ok {
		errs = multierr.Append(errs, schemaDefects(English, "", en, reflect.TypeOf(Content{})))
		for _, l := range Locales[1:] {
			if shape, ok := shapes[l]; ok {
				errs = multierr.Append(errs, shapeDefects(l, "", en, shape))
			}
		}
	}

	if errs != nil {
		return nil, errs
	}
	return cat, nil
}

// Get returns the tree for l, falling back to en for unknown codes.
func (c *Catalog) Get(l Locale) *Content {
	if tree, ok := c.trees[l]; ok {
		return tree
	}
	return c.trees[DefaultLocale]
}

// Catalog lets a fixed catalog act as a content source.
func (c *Catalog) Catalog() *Catalog { return c }

func describeDecodeError(err error) string {
	var strict *toml.StrictMissingError
	if errors.As(err, &strict) {
		return "unknown keys: " + strings.TrimSpace(strict.String())
	}
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return fmt.Sprintf("line %d column %d: %s", row, col, decodeErr.Error())
	}
	return err.Error()
}

func checkProjects(l Locale, c *Content) error {
	var errs error
	slugs := make(map[string]bool, len(c.Projects.Items))
	ids := make(map[int]bool, len(c.Projects.Items))
	for i, p := range c.Projects.Items {
		path := fmt.Sprintf("projects.items[%d]", i)
		if p.Slug == "" {
			errs = multierr.Append(errs, &Defect{Locale: l, Path: path + ".slug", Problem: "empty slug"})
		} else if slugs[p.Slug] {
			errs = multierr.Append(errs, &Defect{Locale: l, Path: path + ".slug", Problem: "duplicate slug " + p.Slug})
		}
		if ids[p.ID] {
			errs = multierr.Append(errs, &Defect{Locale: l, Path: path + ".id", Problem: "duplicate id " + itoa(p.ID)})
		}
		slugs[p.Slug] = true
		ids[p.ID] = true
	}
	return errs
}

// schemaDefects reports every struct field of t that has no key in raw.
func schemaDefects(l Locale, prefix string, raw map[string]any, t reflect.Type) error {
	var errs error
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		key := strings.Split(f.Tag.Get("toml"), ",")[0]
		if key == "" || key == "-" {
			continue
		}
		path := join(prefix, key)
		value, ok := raw[key]
		if !ok {
			errs = multierr.Append(errs, &Defect{Locale: l, Path: path, Problem: "missing key"})
			continue
		}

		ft := f.Type
		switch {
		case ft.Kind() == reflect.Struct:
			if sub, ok := value.(map[string]any); ok {
				errs = multierr.Append(errs, schemaDefects(l, path, sub, ft))
			}
		case ft.Kind() == reflect.Slice && ft.Elem().Kind() == reflect.Struct:
			items, _ := value.([]any)
			for j, item := range items {
				if sub, ok := item.(map[string]any); ok {
					errs = multierr.Append(errs, schemaDefects(l, fmt.Sprintf("%s[%d]", path, j), sub, ft.Elem()))
				}
			}
		}
	}
	return errs
}

// shapeDefects compares the key tree of got against want. Tables must carry
// the same keys, arrays of tables the same length, and leaves the same kind.
func shapeDefects(l Locale, path string, want, got any) error {
	switch w := want.(type) {
	case map[string]any:
		g, ok := got.(map[string]any)
		if !ok {
			return &Defect{Locale: l, Path: path, Problem: "expected a table, found " + kindOf(got)}
		}
		var errs error
		for _, key := range sortedKeys(w) {
			gv, ok := g[key]
			if !ok {
				errs = multierr.Append(errs, &Defect{Locale: l, Path: join(path, key), Problem: "missing key"})
				continue
			}
			errs = multierr.Append(errs, shapeDefects(l, join(path, key), w[key], gv))
		}
		for _, key := range sortedKeys(g) {
			if _, ok := w[key]; !ok {
				errs = multierr.Append(errs, &Defect{Locale: l, Path: join(path, key), Problem: "unexpected key"})
			}
		}
		return errs
	case []any:
		g, ok := got.([]any)
		if !ok {
			return &Defect{Locale: l, Path: path, Problem: "expected an array, found " + kindOf(got)}
		}
		if !tableArray(w) {
			return nil
		}
		if len(g) != len(w) {
			return &Defect{Locale: l, Path: path, Problem: fmt.Sprintf("expected %d entries, found %d", len(w), len(g))}
		}
		var errs error
		for i := range w {
			errs = multierr.Append(errs, shapeDefects(l, fmt.Sprintf("%s[%d]", path, i), w[i], g[i]))
		}
		return errs
	default:
		if kindOf(want) != kindOf(got) {
			return &Defect{Locale: l, Path: path, Problem: fmt.Sprintf("expected %s, found %s", kindOf(want), kindOf(got))}
		}
		return nil
	}
}

func tableArray(items []any) bool {
	for _, item := range items {
		if _, ok := item.(map[string]any); ok {
			return true
		}
	}
	return false
}

func kindOf(v any) string {
	switch v.(type) {
	case map[string]any:
		return "table"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int64, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
