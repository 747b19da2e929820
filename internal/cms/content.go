// Package cms loads localized markdown content pages from disk.
package cms

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

// ErrPageNotFound is returned when no content file exists for the slug/locale
// pair.
var ErrPageNotFound = errors.New("cms: page not found")

const defaultCacheTTL = 5 * time.Minute

// Page is a localized static content page sourced from a markdown file with
// YAML front matter.
type Page struct {
	Slug      string
	Lang      string
	Title     string
	Summary   string
	Body      template.HTML
	UpdatedAt time.Time
}

type frontMatter struct {
	Title     string `yaml:"title"`
	Summary   string `yaml:"summary"`
	UpdatedAt string `yaml:"updated_at"`
}

// Store reads content from <dir>/<slug>.<lang>.md, renders markdown to
// sanitized HTML and caches the result for a short window. Construct once at
// startup and inject where needed.
type Store struct {
	dir      string
	cacheTTL time.Duration
	now      func() time.Time

	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	page    Page
	expires time.Time
}

// NewStore constructs a content store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{
		dir:      dir,
		cacheTTL: defaultCacheTTL,
		now:      time.Now,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
		sanitizer: bluemonday.UGCPolicy(),
		cache:     map[string]cacheEntry{},
	}
}

// SetCacheTTL overrides the cache freshness window, mainly for tests.
func (s *Store) SetCacheTTL(d time.Duration) {
	s.mu.Lock()
	s.cacheTTL = d
	s.mu.Unlock()
}

// GetPage returns the content page for slug in lang.
func (s *Store) GetPage(slug, lang string) (Page, error) {
	key := slug + "." + lang
	if page, ok := s.cached(key); ok {
		return page, nil
	}

	page, err := s.readPage(slug, lang)
	if err != nil {
		return Page{}, err
	}
	s.store(key, page)
	return page, nil
}

func (s *Store) readPage(slug, lang string) (Page, error) {
	if !validSlug(slug) {
		return Page{}, fmt.Errorf("%w: %s/%s", ErrPageNotFound, slug, lang)
	}
	raw, err := os.ReadFile(filepath.Join(s.dir, slug+"."+lang+".md"))
	if err != nil {
		if os.IsNotExist(err) {
			return Page{}, fmt.Errorf("%w: %s/%s", ErrPageNotFound, slug, lang)
		}
		return Page{}, fmt.Errorf("cms: read %s.%s: %w", slug, lang, err)
	}

	meta, body := splitFrontMatter(string(raw))
	var fm frontMatter
	if meta != "" {
		if err := yaml.Unmarshal([]byte(meta), &fm); err != nil {
			return Page{}, fmt.Errorf("cms: front matter %s.%s: %w", slug, lang, err)
		}
	}

	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(body), &buf); err != nil {
		return Page{}, fmt.Errorf("cms: render %s.%s: %w", slug, lang, err)
	}
	sanitized := s.sanitizer.SanitizeBytes(buf.Bytes())

	return Page{
		Slug:      slug,
		Lang:      lang,
		Title:     fm.Title,
		Summary:   fm.Summary,
		Body:      template.HTML(sanitized),
		UpdatedAt: parseDate(fm.UpdatedAt),
	}, nil
}

func (s *Store) cached(key string) (Page, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.cache[key]
	if !ok || s.now().After(entry.expires) {
		return Page{}, false
	}
	return entry.page, true
}

func (s *Store) store(key string, page Page) {
	s.mu.Lock()
	s.cache[key] = cacheEntry{page: page, expires: s.now().Add(s.cacheTTL)}
	s.mu.Unlock()
}

func splitFrontMatter(input string) (meta, body string) {
	if !strings.HasPrefix(input, "---\n") {
		return "", input
	}
	rest := input[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return "", input
	}
	meta = rest[:end]
	body = rest[end+len("\n---"):]
	return meta, strings.TrimPrefix(body, "\n")
}

func parseDate(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func validSlug(slug string) bool {
	if slug == "" {
		return false
	}
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
		default:
			return false
		}
	}
	return true
}
