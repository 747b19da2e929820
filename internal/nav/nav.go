package nav

import "strings"

// Item represents a top-level navigation item. Path is locale-relative,
// e.g. "/services".
type Item struct {
	Path     string
	LabelKey string
}

// RenderedItem is a view model for templates. Label is already localized;
// templates never reach back into the catalog.
type RenderedItem struct {
	Href   string
	Label  string
	Active bool
}

// LocaleLink points at the same page in another locale.
type LocaleLink struct {
	Locale string
	Href   string
	Active bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: "", LabelKey: "nav.home"},
	{Path: "/services", LabelKey: "nav.services"},
	{Path: "/booking", LabelKey: "nav.booking"},
	{Path: "/contact", LabelKey: "nav.contact"},
}

// Build renders navigation items for the given locale with active state
// derived from the current request path. translate resolves label keys so
// all text flows in from the caller.
func Build(locale, currentPath string, translate func(key string) string) []RenderedItem {
	rest := stripLocale(currentPath, locale)
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		href := "/" + locale + it.Path
		if it.Path == "" {
			href = "/" + locale
		}
		items = append(items, RenderedItem{
			Href:   href,
			Label:  translate(it.LabelKey),
			Active: isActive(it.Path, rest),
		})
	}
	return items
}

// LocaleSwitch builds links to the current page in each supported locale,
// preserving the sub-path after the locale segment.
func LocaleSwitch(currentPath, activeLocale string, supported []string) []LocaleLink {
	rest := stripLocale(currentPath, activeLocale)
	links := make([]LocaleLink, 0, len(supported))
	for _, l := range supported {
		href := "/" + l + rest
		links = append(links, LocaleLink{Locale: l, Href: href, Active: l == activeLocale})
	}
	return links
}

func stripLocale(path, locale string) string {
	prefix := "/" + locale
	if path == prefix {
		return ""
	}
	if strings.HasPrefix(path, prefix+"/") {
		return strings.TrimPrefix(path, prefix)
	}
	return path
}

func isActive(itemPath, rest string) bool {
	if itemPath == "" {
		return rest == "" || rest == "/"
	}
	return rest == itemPath || strings.HasPrefix(rest, itemPath+"/")
}
