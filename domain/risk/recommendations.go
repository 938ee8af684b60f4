package risk

// tierRecommendations assembles the score-tier boilerplate shared by every
// model. escalate is the first line for HIGH/CRITICAL, maintain for lower
// tiers. Order matters for display; model-specific conditionals append after.
func tierRecommendations(level RiskLevel, escalate, maintain string) []string {
	switch level {
	case RiskCritical:
		return []string{
			"Seek medical evaluation promptly - multiple risk factors need attention",
			escalate,
		}
	case RiskHigh:
		return []string{escalate}
	case RiskModerate:
		return []string{maintain}
	default:
		return []string{"Maintain current healthy habits"}
	}
}
