package ediwire

import "strings"

// unescape resolves release-character escapes: each occurrence of the
// release character followed by a delimiter, or by the release character
// itself, is replaced with the literal character. A zero release rune
// leaves the text untouched.
func unescape(text string, d Delimiters) string {
	if d.Release == 0 {
		return text
	}
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == d.Release && i+1 < len(runes) {
			next := runes[i+1]
			if next == d.Element || next == d.Component ||
				next == d.Segment || next == d.Release {
				b.WriteRune(next)
				i++
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// splitComponents turns one element chunk into an Element, splitting on the
// component separator only when the chunk actually contains it. A zero
// component rune disables composite splitting entirely.
func splitComponents(chunk string, d Delimiters) Element {
	if d.Component != 0 && strings.ContainsRune(chunk, d.Component) {
		return Element(strings.Split(chunk, string(d.Component)))
	}
	return Element{chunk}
}

// tokenizeX12 splits raw interchange text into segments using the X12
// convention: the tag is the text before the first element separator.
// Empty chunks between segment terminators are skipped.
func tokenizeX12(text string, d Delimiters) []*Segment {
	chunks := strings.Split(unescape(text, d), string(d.Segment))
	segments := make([]*Segment, 0, len(chunks))
	for _, chunk := range chunks {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		fields := strings.Split(chunk, string(d.Element))
		seg := &Segment{Tag: fields[0]}
		for _, f := range fields[1:] {
			seg.Elements = append(seg.Elements, splitComponents(f, d))
		}
		segments = append(segments, seg)
	}
	return segments
}

// tokenizeEdifact splits raw interchange text into segments using the
// EDIFACT convention: a fixed three-character tag, then element chunks.
// The element separator directly after the tag is a delimiter, not a
// leading empty element. Chunks shorter than a tag are skipped. Any UNA
// service-string advice is stripped first; it is metadata, not a segment.
func tokenizeEdifact(text string, d Delimiters) []*Segment {
	text = stripServiceAdvice(text, d)
	chunks := strings.Split(unescape(text, d), string(d.Segment))
	segments := make([]*Segment, 0, len(chunks))
	for _, chunk := range chunks {
		chunk = strings.TrimSpace(chunk)
		if len(chunk) < edifactTagLength {
			continue
		}
		seg := &Segment{Tag: chunk[:edifactTagLength]}
		rest := strings.TrimPrefix(chunk[edifactTagLength:], string(d.Element))
		if rest != "" {
			for _, f := range strings.Split(rest, string(d.Element)) {
				seg.Elements = append(seg.Elements, splitComponents(f, d))
			}
		}
		segments = append(segments, seg)
	}
	return segments
}

// stripServiceAdvice removes a leading UNA segment, through the first
// segment terminator.
func stripServiceAdvice(text string, d Delimiters) string {
	if !strings.HasPrefix(text, unaSegmentID) {
		return text
	}
	if i := strings.IndexRune(text, d.Segment); i >= 0 {
		return text[i+1:]
	}
	return text
}
