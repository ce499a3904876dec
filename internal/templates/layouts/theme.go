package layouts

import (
	"fmt"
	"strings"

	"github.com/codr1/futplan/internal/models"
)

// Theme holds the console palette as hex colors.
type Theme struct {
	PrimaryColor   string
	SecondaryColor string
	AccentColor    string
	DangerColor    string
}

func DefaultTheme() Theme {
	return Theme{
		PrimaryColor:   models.DefaultUniformColor,
		SecondaryColor: "#0f172a",
		AccentColor:    "#f59e0b",
		DangerColor:    "#dc2626",
	}
}

func getThemeCssVars(theme *Theme) string {
	defaultTheme := DefaultTheme()
	primary := defaultTheme.PrimaryColor
	secondary := defaultTheme.SecondaryColor
	accent := defaultTheme.AccentColor
	danger := defaultTheme.DangerColor

	if theme != nil {
		primary = themeColorOrDefault(theme.PrimaryColor, primary)
		secondary = themeColorOrDefault(theme.SecondaryColor, secondary)
		accent = themeColorOrDefault(theme.AccentColor, accent)
		danger = themeColorOrDefault(theme.DangerColor, danger)
	}

	return fmt.Sprintf(
		":root{--theme-primary:%s;--theme-secondary:%s;--theme-accent:%s;--theme-danger:%s;}",
		primary,
		secondary,
		accent,
		danger,
	)
}

func themeColorOrDefault(value string, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	if !models.IsHexColor(trimmed) {
		return fallback
	}
	return trimmed
}
