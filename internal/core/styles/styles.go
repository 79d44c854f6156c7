// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"
	"sort"

	lipgloss "charm.land/lipgloss/v2"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    color.Color
	Secondary  color.Color
	Foreground color.Color
	Muted      color.Color
	Background color.Color
	Surface    color.Color
	Success    color.Color
	Warning    color.Color
	Error      color.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
	},
	"indigo": {
		Primary:    lipgloss.Color("#4f46e5"),
		Secondary:  lipgloss.Color("#818cf8"),
		Foreground: lipgloss.Color("#e5e7eb"),
		Muted:      lipgloss.Color("#6b7280"),
		Background: lipgloss.Color("#111827"),
		Surface:    lipgloss.Color("#374151"),
		Success:    lipgloss.Color("#10b981"),
		Warning:    lipgloss.Color("#f59e0b"),
		Error:      lipgloss.Color("#ef4444"),
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style

	// Modal styles.
	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ModalHelpStyle  lipgloss.Style

	// Feedback header.
	FeedbackTitleStyle lipgloss.Style
	FeedbackMetaStyle  lipgloss.Style
	CategoryBadgeStyle lipgloss.Style

	// Comment list.
	SectionTitleStyle   lipgloss.Style
	CommentAuthorStyle  lipgloss.Style
	CommentTimeStyle    lipgloss.Style
	CommentEditedStyle  lipgloss.Style
	CommentBodyStyle    lipgloss.Style
	CommentCardStyle    lipgloss.Style
	CommentCardSelected lipgloss.Style
	AvatarStyle         lipgloss.Style
	EmptyTitleStyle     lipgloss.Style
	EmptyHintStyle      lipgloss.Style

	// Inline markup rendered in the terminal dialect.
	MarkupCodeStyle    lipgloss.Style
	MarkupMentionStyle lipgloss.Style

	// Composer and inline editor.
	EditorStyle        lipgloss.Style
	EditorFocusedStyle lipgloss.Style
	ToolbarStyle       lipgloss.Style
	CounterStyle       lipgloss.Style
	CounterWarnStyle   lipgloss.Style
	ErrorTextStyle     lipgloss.Style
	PreviewLabelStyle  lipgloss.Style
	PlaceholderStyle   lipgloss.Style
	HelpStyle          lipgloss.Style

	// Toasts.
	ToastSuccessStyle lipgloss.Style
	ToastInfoStyle    lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style

	// CLI printer.
	SuccessStyle lipgloss.Style
	InfoStyle    lipgloss.Style
	WarnStyle    lipgloss.Style
	ErrorStyle   lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)

	FeedbackTitleStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true)
	FeedbackMetaStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	CategoryBadgeStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorSurface).
		Foreground(ColorSecondary)

	SectionTitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		MarginTop(1)
	CommentAuthorStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true)
	CommentTimeStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	CommentEditedStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)
	CommentBodyStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	CommentCardStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(ColorSurface).
		PaddingLeft(1)
	CommentCardSelected = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)
	AvatarStyle = lipgloss.NewStyle().
		Background(ColorPrimary).
		Foreground(ColorBackground).
		Bold(true).
		Padding(0, 1)
	EmptyTitleStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	EmptyHintStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	MarkupCodeStyle = lipgloss.NewStyle().
		Background(ColorSurface).
		Foreground(ColorSecondary)
	MarkupMentionStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	EditorStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSurface)
	EditorFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary)
	ToolbarStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	CounterStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	CounterWarnStyle = lipgloss.NewStyle().
		Foreground(ColorWarning)
	ErrorTextStyle = lipgloss.NewStyle().
		Foreground(ColorError)
	PreviewLabelStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)
	PlaceholderStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)
	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	toast := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Foreground(ColorForeground)
	ToastSuccessStyle = toast.BorderForeground(ColorSuccess)
	ToastInfoStyle = toast.BorderForeground(ColorPrimary)
	ToastWarningStyle = toast.BorderForeground(ColorWarning)
	ToastErrorStyle = toast.BorderForeground(ColorError)

	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	InfoStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
	WarnStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	ErrorStyle = lipgloss.NewStyle().Foreground(ColorError)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

func colorHexPtr(c color.Color) *string {
	if c == nil {
		return nil
	}
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return nil
	}
	hex := cc.Hex()
	return &hex
}

// GlamourStyle returns a Glamour style config derived from the active theme.
func GlamourStyle() glamouransi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig

	fg := colorHexPtr(ColorForeground)
	primary := colorHexPtr(ColorPrimary)
	secondary := colorHexPtr(ColorSecondary)
	muted := colorHexPtr(ColorMuted)

	cfg.Document.Color = fg
	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = primary
	cfg.H2.Color = primary
	cfg.H3.Color = primary

	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted

	cfg.Link.Color = secondary
	cfg.LinkText.Color = secondary

	cfg.Code.Color = secondary
	cfg.CodeBlock.Color = muted

	return cfg
}
