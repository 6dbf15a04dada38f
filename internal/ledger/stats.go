package ledger

// Stats is the analytics summary over the whole ledger. Spacing aggregates
// consider only positive spacing values; SpacingSamples says how many there
// were, so callers can tell "no data" from "average happens to be zero".
type Stats struct {
	Count          int     `json:"count"`
	DurationAvg    float64 `json:"durationAvg"`
	DurationMin    int     `json:"durationMin"`
	DurationMax    int     `json:"durationMax"`
	SpacingAvg     float64 `json:"spacingAvg"`
	SpacingMin     int     `json:"spacingMin"`
	SpacingMax     int     `json:"spacingMax"`
	SpacingSamples int     `json:"spacingSamples"`
}

func (l *Ledger) Stats() Stats {
	st := Stats{Count: len(l.records)}
	if st.Count == 0 {
		return st
	}

	durSum := 0
	spSum := 0
	for i, c := range l.records {
		durSum += c.DurationDays
		if i == 0 || c.DurationDays < st.DurationMin {
			st.DurationMin = c.DurationDays
		}
		if i == 0 || c.DurationDays > st.DurationMax {
			st.DurationMax = c.DurationDays
		}
		if c.SpacingDays > 0 {
			spSum += c.SpacingDays
			if st.SpacingSamples == 0 || c.SpacingDays < st.SpacingMin {
				st.SpacingMin = c.SpacingDays
			}
			if st.SpacingSamples == 0 || c.SpacingDays > st.SpacingMax {
				st.SpacingMax = c.SpacingDays
			}
			st.SpacingSamples++
		}
	}
	st.DurationAvg = float64(durSum) / float64(st.Count)
	if st.SpacingSamples > 0 {
		st.SpacingAvg = float64(spSum) / float64(st.SpacingSamples)
	}
	return st
}
