package theme

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// EditorTheme extends the default Fyne theme with the editor's accent colours.
type EditorTheme struct {
	fyne.Theme
}

// NewEditorTheme creates the editor theme
func NewEditorTheme() *EditorTheme {
	return &EditorTheme{
		Theme: theme.DefaultTheme(),
	}
}

// Color returns a custom color for the given name
func (t *EditorTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x39, G: 0x6c, B: 0xd8, A: 0xff}
	case theme.ColorNameHyperlink:
		return color.NRGBA{R: 0x24, G: 0xc8, B: 0xdb, A: 0xff}
	default:
		return t.Theme.Color(name, variant)
	}
}

// Size returns a custom size for the given name
func (t *EditorTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 6
	case theme.SizeNameScrollBar:
		return 8
	default:
		return t.Theme.Size(name)
	}
}
