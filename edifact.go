package ediwire

import (
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// EdifactParser parses UN/EDIFACT interchanges. Like X12Parser, it holds
// only immutable default configuration and may be shared across
// goroutines.
type EdifactParser struct {
	// Defaults is the delimiter set used when no UNA service-string
	// advice is present. The zero value falls back to
	// EdifactDefaultDelimiters.
	Defaults Delimiters
	// Logger, when set, receives informational parse events.
	Logger *zap.Logger
}

// NewEdifactParser returns a parser configured with the UNOA default
// separator set.
func NewEdifactParser() *EdifactParser {
	return &EdifactParser{Defaults: EdifactDefaultDelimiters}
}

func (p *EdifactParser) log() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

func (p *EdifactParser) defaults() Delimiters {
	if p.Defaults == (Delimiters{}) {
		return EdifactDefaultDelimiters
	}
	return p.Defaults
}

// DetectDelimiters reads the separator set from UNA service-string advice
// when present. The six characters after the tag are read positionally in
// their as-received order: component separator, data-element separator
// (ignored), decimal mark (ignored), release character, element separator,
// segment terminator. A span containing the default segment terminator is
// treated as absent advice. Detection never fails; without usable advice
// the parser defaults are returned.
func (p *EdifactParser) DetectDelimiters(content string) Delimiters {
	d := p.defaults()
	window := content
	if len(window) > unaWindow {
		window = window[:unaWindow]
	}
	idx := strings.Index(window, unaSegmentID)
	if idx < 0 || len(content) < idx+edifactTagLength+unaServiceLength {
		p.log().Info("no UNA service advice, using default EDIFACT separators")
		return d
	}
	svc := content[idx+edifactTagLength : idx+edifactTagLength+unaServiceLength]
	if strings.ContainsRune(svc, EdifactDefaultDelimiters.Segment) {
		p.log().Info("UNA service advice truncated, using default EDIFACT separators")
		return d
	}
	d.Component = rune(svc[unaPosComponent])
	d.Release = rune(svc[unaPosRelease])
	d.Element = rune(svc[unaPosElement])
	d.Segment = rune(svc[unaPosSegment])
	p.log().Info("detected EDIFACT separators from UNA",
		zap.String("element", string(d.Element)),
		zap.String("component", string(d.Component)),
		zap.String("segment", string(d.Segment)),
		zap.String("release", string(d.Release)))
	return d
}

// Parse tokenizes the given interchange text and reconstructs its
// UNB/UNZ, UNH/UNT hierarchy. The only error returned is for
// empty/whitespace-only input.
func (p *EdifactParser) Parse(content string) (*EdifactEnvelope, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: %w", ParseError, ErrEmptyInput)
	}
	content = strings.TrimLeftFunc(content, unicode.IsSpace)
	d := p.DetectDelimiters(content)
	env := buildEdifactEnvelope(tokenizeEdifact(content, d))
	env.Delimiters = d
	p.log().Info("parsed EDIFACT interchange",
		zap.Int("messages", len(env.Messages)))
	return env, nil
}

// buildEdifactEnvelope mirrors the X12 builder without a group layer:
// UNB/UNZ are captured regardless of state, UNH opens a message (taking
// its type and version from the UNH composite), UNT closes it. A UNH
// before the previous message closed is recorded for the Validator.
func buildEdifactEnvelope(segments []*Segment) *EdifactEnvelope {
	env := &EdifactEnvelope{}

	var msg *Message
	for _, seg := range segments {
		switch seg.Tag {
		case unbSegmentID:
			env.Header = seg
		case unzSegmentID:
			env.Trailer = seg
		case unhSegmentID:
			if msg != nil {
				env.unterminated = append(env.unterminated, msg.Type)
			}
			version := seg.Component(unhIndexType, 1)
			if version == "" {
				version = "D"
			}
			msg = &Message{
				Type:      seg.Component(unhIndexType, 0),
				Version:   version,
				Reference: seg.Element(unhIndexReference),
				Header:    seg,
			}
		case untSegmentID:
			if msg == nil {
				continue
			}
			msg.Trailer = seg
			env.Messages = append(env.Messages, msg)
			msg = nil
		default:
			if msg != nil {
				msg.Segments = append(msg.Segments, seg)
			}
		}
	}
	if msg != nil {
		env.unterminated = append(env.unterminated, msg.Type)
	}
	return env
}
