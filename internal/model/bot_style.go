package model

// BotStyle names a bot decision policy
type BotStyle string

// Known bot styles
const (
	BotStyleEasy     BotStyle = "easy"
	BotStyleStandard BotStyle = "standard"
	BotStyleGreedy   BotStyle = "greedy"
)

// DefaultBotStyle is used when a bot has no (or an unknown) style
const DefaultBotStyle = BotStyleStandard

// BotStyleDisplayName returns a human-readable label for a style
func BotStyleDisplayName(style BotStyle) string {
	switch style {
	case BotStyleEasy:
		return "Easy"
	case BotStyleStandard:
		return "Standard"
	case BotStyleGreedy:
		return "Greedy"
	default:
		return string(style)
	}
}

// ValidBotStyles returns all valid bot style names
func ValidBotStyles() []BotStyle {
	return []BotStyle{BotStyleEasy, BotStyleStandard, BotStyleGreedy}
}

// IsValidBotStyle reports whether style names a known policy
func IsValidBotStyle(style BotStyle) bool {
	switch style {
	case BotStyleEasy, BotStyleStandard, BotStyleGreedy:
		return true
	}
	return false
}
