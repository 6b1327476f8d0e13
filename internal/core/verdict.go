package core

// LowEscalationCount is the number of findings at LOW or above that turns
// an otherwise LOW-only scan into a WARNING.
const LowEscalationCount = 3

// DetermineVerdict reduces findings to a single verdict.
func DetermineVerdict(findings []Finding) Verdict {
	if len(findings) == 0 {
		return VerdictSafe
	}

	maxSeverity := SeverityInfo
	for _, f := range findings {
		if f.Severity > maxSeverity {
			maxSeverity = f.Severity
		}
	}

	switch {
	case maxSeverity >= SeverityHigh:
		return VerdictDanger
	case maxSeverity >= SeverityMedium:
		return VerdictWarning
	case maxSeverity >= SeverityLow:
		lowCount := 0
		for _, f := range findings {
			if f.Severity >= SeverityLow {
				lowCount++
			}
		}
		if lowCount >= LowEscalationCount {
			return VerdictWarning
		}
		return VerdictSafe
	default:
		return VerdictSafe
	}
}
