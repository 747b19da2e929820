package i18n

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownLocale is returned when a request path does not start with a
// supported locale segment. Callers must fail closed (not found), never
// substitute a fallback.
var ErrUnknownLocale = errors.New("i18n: unknown locale")

// Bundle holds one message catalog per supported locale. Keys are dotted
// paths ("section.subsection.key") mapping to string templates with named
// {param} placeholders.
type Bundle struct {
	dict      map[string]map[string]string
	fallback  string
	supported map[string]struct{}
	order     []string
}

// Load reads locale catalogs from dir, one "<locale>.json" file per supported
// locale. Every supported locale must have a catalog; a missing or malformed
// file is a hard error, not a runtime fork.
func Load(dir string, fallback string, supported []string) (*Bundle, error) {
	if len(supported) == 0 {
		supported = []string{"bg", "en"}
	}
	b := &Bundle{
		dict:      map[string]map[string]string{},
		fallback:  fallback,
		supported: map[string]struct{}{},
		order:     append([]string(nil), supported...),
	}
	for _, l := range supported {
		b.supported[l] = struct{}{}
		raw, err := os.ReadFile(filepath.Join(dir, l+".json"))
		if err != nil {
			return nil, fmt.Errorf("load locale %s: %w", l, err)
		}
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", l, err)
		}
		b.dict[l] = m
	}
	if _, ok := b.dict[fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %s not loaded", fallback)
	}
	return b, nil
}

// Supported returns the supported locale tags in declaration order.
func (b *Bundle) Supported() []string {
	return append([]string(nil), b.order...)
}

// Fallback returns the configured default locale.
func (b *Bundle) Fallback() string { return b.fallback }

// IsSupported reports whether the tag names a supported locale.
func (b *Bundle) IsSupported(lang string) bool {
	_, ok := b.supported[lang]
	return ok
}

// Resolve extracts the locale from a request path of the form
// "/{locale}/rest...". The first segment must match a supported locale
// exactly; anything else returns ErrUnknownLocale.
func (b *Bundle) Resolve(path string) (string, error) {
	seg := firstSegment(path)
	if seg == "" || !b.IsSupported(seg) {
		return "", fmt.Errorf("%w: %q", ErrUnknownLocale, seg)
	}
	return seg, nil
}

func firstSegment(path string) string {
	p := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(p, '/'); i != -1 {
		p = p[:i]
	}
	return p
}

// T returns the message for key in lang. A missing key renders as the raw
// key path and is logged; it must never blank out or crash the page.
func (b *Bundle) T(lang, key string) string {
	if lang != "" {
		if m, ok := b.dict[lang]; ok {
			if v, ok := m[key]; ok {
				return v
			}
		}
	}
	log.Printf("i18n: missing key %q for locale %q", key, lang)
	return key
}

// TP resolves key in lang and interpolates named {param} placeholders.
// Unknown placeholders are left intact so defects stay visible.
func (b *Bundle) TP(lang, key string, params map[string]string) string {
	msg := b.T(lang, key)
	if len(params) == 0 {
		return msg
	}
	for name, val := range params {
		msg = strings.ReplaceAll(msg, "{"+name+"}", val)
	}
	return msg
}

// Keys returns the sorted key set of the catalog for lang. Used by the
// catalog-parity test.
func (b *Bundle) Keys(lang string) []string {
	m := b.dict[lang]
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
