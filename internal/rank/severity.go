package rank

// Severity is the three-level classification derived from a score.
type Severity string

// Severity levels and their fixed score thresholds.
const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"

	highThreshold   = 50.0
	mediumThreshold = 20.0
)

// Classify maps a score to its severity: high at 50 and above,
// medium at 20 and above, low below that.
func Classify(score float64) Severity {
	switch {
	case score >= highThreshold:
		return SeverityHigh
	case score >= mediumThreshold:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
