package tui

import "github.com/caixinha/caixinha/internal/tui/tuistyles"

// Styles used directly by the root model
var (
	TitleStyle     = tuistyles.TitleStyle
	SubtitleStyle  = tuistyles.SubtitleStyle
	StatusBarStyle = tuistyles.StatusBarStyle
	BorderStyle    = tuistyles.BorderStyle
	ErrorStyle     = tuistyles.ErrorStyle
)
