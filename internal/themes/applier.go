package themes

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ghorkotha/ghorkotha-backend/pkg/colorspace"
	"github.com/ghorkotha/ghorkotha-backend/pkg/db/models"
)

// cssVar pairs a custom property name with the palette field feeding it.
type cssVar struct {
	name  string
	value func(models.ThemeSetting) string
}

// The popover variables have no dedicated columns and reuse the card
// palette, matching how the storefront components share surfaces.
var cssVars = []cssVar{
	{"--background", func(t models.ThemeSetting) string { return t.BackgroundColor }},
	{"--foreground", func(t models.ThemeSetting) string { return t.ForegroundColor }},
	{"--card", func(t models.ThemeSetting) string { return t.CardColor }},
	{"--card-foreground", func(t models.ThemeSetting) string { return t.CardForeground }},
	{"--popover", func(t models.ThemeSetting) string { return t.CardColor }},
	{"--popover-foreground", func(t models.ThemeSetting) string { return t.CardForeground }},
	{"--primary", func(t models.ThemeSetting) string { return t.PrimaryColor }},
	{"--primary-foreground", func(t models.ThemeSetting) string { return t.PrimaryForeground }},
	{"--secondary", func(t models.ThemeSetting) string { return t.SecondaryColor }},
	{"--secondary-foreground", func(t models.ThemeSetting) string { return t.SecondaryForeground }},
	{"--muted", func(t models.ThemeSetting) string { return t.MutedColor }},
	{"--muted-foreground", func(t models.ThemeSetting) string { return t.MutedForeground }},
	{"--accent", func(t models.ThemeSetting) string { return t.AccentColor }},
	{"--accent-foreground", func(t models.ThemeSetting) string { return t.AccentForeground }},
	{"--destructive", func(t models.ThemeSetting) string { return t.DestructiveColor }},
	{"--destructive-foreground", func(t models.ThemeSetting) string { return t.DestructiveForeground }},
	{"--border", func(t models.ThemeSetting) string { return t.BorderColor }},
	{"--input", func(t models.ThemeSetting) string { return t.InputColor }},
	{"--ring", func(t models.ThemeSetting) string { return t.RingColor }},
}

// Applier renders the active palette as a :root stylesheet. It stays
// inert until the first Apply so a half-initialized server never serves
// a palette that disagrees with what the poller will load moments
// later.
type Applier struct {
	mu               sync.RWMutex
	converter        *colorspace.Converter
	current          models.ThemeSetting
	ready            bool
	appliedAt        time.Time
	transitionWindow time.Duration
	now              func() time.Time
}

// NewApplier builds an applier with a bounded conversion cache.
func NewApplier(converter *colorspace.Converter, transitionWindow time.Duration) *Applier {
	return &Applier{
		converter:        converter,
		transitionWindow: transitionWindow,
		now:              time.Now,
	}
}

// Apply installs the palette. A nil theme applies the built-in default
// palette, the storefront's no-active-theme state.
func (a *Applier) Apply(theme *models.ThemeSetting) {
	next := DefaultPalette()
	if theme != nil {
		next = *theme
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.current = next
	a.ready = true
	a.appliedAt = a.now()
}

// Ready reports whether a palette has been applied yet.
func (a *Applier) Ready() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.ready
}

// Current returns the palette last applied and whether one exists.
func (a *Applier) Current() (models.ThemeSetting, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current, a.ready
}

// Variables renders the palette as ordered CSS custom property
// declarations, with every color converted to OKLCH.
func (a *Applier) Variables(theme models.ThemeSetting) []string {
	decls := make([]string, 0, len(cssVars))
	for _, v := range cssVars {
		decls = append(decls, fmt.Sprintf("%s: %s;", v.name, a.converter.Convert(v.value(theme))))
	}
	return decls
}

// Stylesheet renders the :root block for the applied palette. Within
// the transition window after an apply it also emits a global
// transition rule so color changes fade instead of snapping. Before the
// first apply it returns an empty sheet.
func (a *Applier) Stylesheet() string {
	a.mu.RLock()
	theme, ready := a.current, a.ready
	inWindow := a.ready && a.now().Sub(a.appliedAt) <= a.transitionWindow
	a.mu.RUnlock()

	if !ready {
		return ""
	}

	var sheet strings.Builder
	sheet.WriteString(":root {\n")
	for _, decl := range a.Variables(theme) {
		sheet.WriteString("  ")
		sheet.WriteString(decl)
		sheet.WriteString("\n")
	}
	sheet.WriteString("}\n")

	if inWindow {
		sheet.WriteString("* {\n  transition: background-color 0.2s ease, border-color 0.2s ease, color 0.2s ease;\n}\n")
	}
	return sheet.String()
}
