package transcript

import "encoding/json"

// SpeakerUnknown is the sentinel label applied to tokens without a
// speaker attribution.
const SpeakerUnknown = "speaker_unknown"

// Word is the record-shaped token produced by the transcription client.
// Start and End are pointers because the API omits timestamps for some
// token kinds (spacing, audio events).
type Word struct {
	Text      string   `json:"text"`
	Type      string   `json:"type,omitempty"`
	Start     *float64 `json:"start,omitempty"`
	End       *float64 `json:"end,omitempty"`
	SpeakerID string   `json:"speaker_id,omitempty"`
}

// Attr reads a named field from a token regardless of its shape. Two
// shapes are supported: a generic map (as decoded from cached JSON) and
// the Word record. Absent fields, nil values, and unrecognized token
// shapes all yield def; Attr never panics.
func Attr(token any, name string, def any) any {
	switch t := token.(type) {
	case map[string]any:
		if value, ok := t[name]; ok && value != nil {
			return value
		}
		return def
	case Word:
		return wordAttr(&t, name, def)
	case *Word:
		if t == nil {
			return def
		}
		return wordAttr(t, name, def)
	default:
		return def
	}
}

func wordAttr(w *Word, name string, def any) any {
	switch name {
	case "text":
		return w.Text
	case "type":
		return w.Type
	case "start":
		if w.Start == nil {
			return def
		}
		return *w.Start
	case "end":
		if w.End == nil {
			return def
		}
		return *w.End
	case "speaker_id":
		if w.SpeakerID == "" {
			return def
		}
		return w.SpeakerID
	default:
		return def
	}
}

// attrString returns the named field as a string, or "" when absent or
// not string-valued.
func attrString(token any, name string) string {
	value, _ := Attr(token, name, nil).(string)
	return value
}

// attrSeconds returns the named field as seconds, or nil when the field
// is absent or not numeric. JSON decoding may surface numbers as
// float64 or json.Number depending on the decoder, so both are handled.
func attrSeconds(token any, name string) *float64 {
	switch v := Attr(token, name, nil).(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return &f
		}
		return nil
	default:
		return nil
	}
}

// tokenView is the filtered, uniform read of one token used by the
// grouping and analysis passes. Pointer fields are nil when the token
// did not carry the bound.
type tokenView struct {
	text    string
	start   *float64
	end     *float64
	speaker string
}

func viewOf(token any) tokenView {
	view := tokenView{
		text:    attrString(token, "text"),
		start:   attrSeconds(token, "start"),
		end:     attrSeconds(token, "end"),
		speaker: attrString(token, "speaker_id"),
	}
	if view.speaker == "" {
		view.speaker = SpeakerUnknown
	}
	return view
}

// usableForText reports whether the token carries enough information
// for speaker grouping: non-empty text and a start timestamp.
func (v tokenView) usableForText() bool {
	return v.text != "" && v.start != nil
}

// usableForCue reports whether the token carries enough information for
// subtitle packing: text plus both timestamps.
func (v tokenView) usableForCue() bool {
	return v.text != "" && v.start != nil && v.end != nil
}
