package transcript

// Segment is a maximal run of consecutive tokens attributed to one
// speaker.
type Segment struct {
	Speaker   string
	StartTime float64
	TextParts []string
}

// GroupBySpeaker groups consecutive tokens sharing a speaker label into
// ordered segments. Tokens missing text or a start timestamp are
// skipped. A new segment opens whenever the speaker label changes; the
// segment's start time is the first contributing token's start.
func GroupBySpeaker(tokens []any) []Segment {
	var segments []Segment
	var current *Segment

	for _, token := range tokens {
		view := viewOf(token)
		if !view.usableForText() {
			continue
		}

		if current == nil || current.Speaker != view.speaker {
			if current != nil {
				segments = append(segments, *current)
			}
			current = &Segment{
				Speaker:   view.speaker,
				StartTime: *view.start,
				TextParts: []string{view.text},
			}
			continue
		}
		current.TextParts = append(current.TextParts, view.text)
	}

	if current != nil {
		segments = append(segments, *current)
	}
	return segments
}

// CountUniqueSpeakers returns the number of distinct speaker labels in
// the token sequence, counting the unknown-speaker sentinel as one.
func CountUniqueSpeakers(tokens []any) int {
	speakers := make(map[string]struct{})
	for _, token := range tokens {
		speakers[viewOf(token).speaker] = struct{}{}
	}
	return len(speakers)
}
