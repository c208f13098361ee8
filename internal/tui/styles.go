package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary     = lipgloss.Color("#00BFFF") // cyan, primary accent
	colorAccent      = lipgloss.Color("#FFD700") // gold, sharp features
	colorSuccess     = lipgloss.Color("#00E676") // green, smooth regions
	colorDanger      = lipgloss.Color("#FF5252") // red, non-manifold warnings
	colorMuted       = lipgloss.Color("#636363") // gray, de-emphasized
	colorMutedLight  = lipgloss.Color("#8C8C8C") // lighter gray, normal text
	colorWhite       = lipgloss.Color("#EEEEEE") // off-white, primary text
	colorBrightWhite = lipgloss.Color("#FFFFFF") // pure white, emphatic text
	colorSurface     = lipgloss.Color("#1E1E2E") // dark surface, status bar background
)

// Selection indicator prepended to the active row.
const selectionIndicator = "▎"

// Status bar styles.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1)

	styleStatusLabel = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleStatusValue = lipgloss.NewStyle().
				Foreground(colorWhite)
)

// Level list row styles.
var (
	styleRowSelected = lipgloss.NewStyle().
				Foreground(colorBrightWhite).
				Bold(true)

	styleRowNormal = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleSelectionIndicator = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)
)

// Detail panel styles.
var (
	styleDetailBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorMuted).
				Padding(0, 1)

	styleDetailTitle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleDetailLabel = lipgloss.NewStyle().
				Foreground(colorMuted)

	styleDetailSharp = lipgloss.NewStyle().
				Foreground(colorAccent)

	styleDetailSmooth = lipgloss.NewStyle().
				Foreground(colorSuccess)

	styleDetailWarn = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)
)

// Footer style for the key hint line.
var (
	styleFooter = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleFooterKey = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)
)
