package cms

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writePage(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestGetPageRendersSanitizedMarkdown(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePage(t, dir, "services.en.md", `---
title: Services
summary: What we do
updated_at: 2026-05-14
---
## Diagnostics

Some **bold** text.

<script>alert("x")</script>
`)

	store := NewStore(dir)
	page, err := store.GetPage("services", "en")
	require.NoError(t, err)
	require.Equal(t, "Services", page.Title)
	require.Equal(t, "What we do", page.Summary)
	require.Equal(t, 2026, page.UpdatedAt.Year())

	body := string(page.Body)
	require.Contains(t, body, "<h2")
	require.Contains(t, body, "<strong>bold</strong>")
	require.NotContains(t, body, "<script>")
}

func TestGetPageMissingLocale(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	_, err := store.GetPage("services", "bg")
	require.ErrorIs(t, err, ErrPageNotFound)
}

func TestGetPageRejectsTraversalSlugs(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	_, err := store.GetPage("../etc/passwd", "en")
	require.ErrorIs(t, err, ErrPageNotFound)
}

func TestCacheHonorsFreshnessWindow(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePage(t, dir, "services.en.md", "---\ntitle: One\n---\nbody")

	store := NewStore(dir)
	now := time.Now()
	store.now = func() time.Time { return now }

	first, err := store.GetPage("services", "en")
	require.NoError(t, err)
	require.Equal(t, "One", first.Title)

	writePage(t, dir, "services.en.md", "---\ntitle: Two\n---\nbody")

	// within the window the cached copy is served
	cached, err := store.GetPage("services", "en")
	require.NoError(t, err)
	require.Equal(t, "One", cached.Title)

	now = now.Add(defaultCacheTTL + time.Second)
	fresh, err := store.GetPage("services", "en")
	require.NoError(t, err)
	require.Equal(t, "Two", fresh.Title)

	require.True(t, strings.Contains(string(fresh.Body), "body"))
}
