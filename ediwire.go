// Package ediwire parses, validates and transforms ANSI X12 and UN/EDIFACT
// interchanges. It tokenizes a delimiter-separated byte stream into an
// envelope/transaction/segment/element hierarchy, auto-detecting the
// delimiters from the stream itself, and applies per-transaction-type
// extraction and validation rules.
//
// The engine is deliberately permissive: out-of-range element access yields
// an empty-string default, malformed segments degrade rather than fail, and
// structural anomalies surface as ValidationResult entries instead of parse
// errors. The only error the parse path propagates is ErrEmptyInput.
package ediwire

import (
	"errors"
	"strings"
)

var (
	// ParseError wraps errors returned from the parse path.
	ParseError = errors.New("parse error")
	// ErrEmptyInput is returned when an interchange is empty or
	// whitespace-only before tokenization begins.
	ErrEmptyInput = errors.New("empty EDI content")
)

// Format identifies the wire format of an interchange.
type Format uint

const (
	FormatUnknown Format = iota
	FormatX12
	FormatEdifact
)

func (f Format) String() string {
	return [...]string{"UNKNOWN", "X12", "EDIFACT"}[f]
}

// DetectFormat inspects the opening bytes of an interchange and reports
// which wire format it carries. X12 interchanges open with an ISA segment;
// EDIFACT interchanges open with UNA service-string advice or a UNB header.
func DetectFormat(content string) Format {
	content = strings.TrimSpace(content)
	switch {
	case strings.HasPrefix(content, isaSegmentID):
		return FormatX12
	case strings.HasPrefix(content, unbSegmentID), strings.HasPrefix(content, unaSegmentID):
		return FormatEdifact
	default:
		return FormatUnknown
	}
}

// Delimiters is the separator set used to tokenize one interchange. A zero
// Component or Release rune means the format (or this particular stream)
// does not use that role.
type Delimiters struct {
	Element   rune
	Component rune
	Segment   rune
	Release   rune
}

// X12DefaultDelimiters is the delimiter set assumed for X12 when the ISA
// header cannot be read positionally. X12 carries no release character in
// this model; literal separators inside data are not representable.
var X12DefaultDelimiters = Delimiters{
	Element: '*',
	Segment: '~',
}

// EdifactDefaultDelimiters is the UNOA default separator set, used when no
// UNA service-string advice is present.
var EdifactDefaultDelimiters = Delimiters{
	Element:   '+',
	Component: ':',
	Segment:   '\'',
	Release:   '?',
}

// Element is a single data element within a segment: either a simple value
// (one component) or a composite value (ordered components).
type Element []string

// Component returns the component at the given 0-indexed position, or the
// empty string if the position is out of range.
func (e Element) Component(i int) string {
	if i < 0 || i >= len(e) {
		return ""
	}
	return e[i]
}

// IsComposite reports whether the element holds more than one component.
func (e Element) IsComposite() bool {
	return len(e) > 1
}

// Segment is a tagged, ordered sequence of elements. The tag is not part
// of the element list: Element(1) is the first element after the tag.
type Segment struct {
	Tag      string
	Elements []Element
}

// ElementOK returns the simple value (first component) of the element at
// the given 1-indexed position, and whether the position was in range.
func (s *Segment) ElementOK(position int) (string, bool) {
	if s == nil || position < 1 || position > len(s.Elements) {
		return "", false
	}
	return s.Elements[position-1].Component(0), true
}

// Element returns the simple value of the element at the given 1-indexed
// position, defaulting to the empty string when out of range. Trading
// partner data is routinely short; absence is a validation concern, not an
// access failure.
func (s *Segment) Element(position int) string {
	v, _ := s.ElementOK(position)
	return v
}

// Component returns the component at the 0-indexed component position
// within the 1-indexed element position, defaulting to the empty string.
func (s *Segment) Component(position, component int) string {
	if s == nil || position < 1 || position > len(s.Elements) {
		return ""
	}
	return s.Elements[position-1].Component(component)
}

// ElementCount returns the number of elements following the tag.
func (s *Segment) ElementCount() int {
	if s == nil {
		return 0
	}
	return len(s.Elements)
}

// Transaction is one X12 transaction set. Segments holds the segments
// strictly between ST and SE; the boundary segments themselves are retained
// in Header and Trailer for envelope validation.
type Transaction struct {
	// Type is the transaction set code declared in ST01 ("850", "810", ...)
	Type string
	// ControlNumber is the transaction set control number from ST02
	ControlNumber string
	Segments      []*Segment
	Header        *Segment
	Trailer       *Segment
}

// GetSegments returns all segments with the given tag, in order.
func (t *Transaction) GetSegments(tag string) []*Segment {
	var matched []*Segment
	for _, seg := range t.Segments {
		if seg.Tag == tag {
			matched = append(matched, seg)
		}
	}
	return matched
}

// GetSegment returns the first segment with the given tag, or nil.
func (t *Transaction) GetSegment(tag string) *Segment {
	for _, seg := range t.Segments {
		if seg.Tag == tag {
			return seg
		}
	}
	return nil
}

// Message is one EDIFACT message. Segments holds the segments strictly
// between UNH and UNT; the boundary segments are retained in Header and
// Trailer.
type Message struct {
	// Type is the message type from the UNH composite ("ORDERS", ...)
	Type string
	// Version is the message version from the UNH composite, "D" if absent
	Version string
	// Reference is the message reference number from UNH01
	Reference string
	Segments  []*Segment
	Header    *Segment
	Trailer   *Segment
}

// GetSegments returns all segments with the given tag, in order.
func (m *Message) GetSegments(tag string) []*Segment {
	var matched []*Segment
	for _, seg := range m.Segments {
		if seg.Tag == tag {
			matched = append(matched, seg)
		}
	}
	return matched
}

// GetSegment returns the first segment with the given tag, or nil.
func (m *Message) GetSegment(tag string) *Segment {
	for _, seg := range m.Segments {
		if seg.Tag == tag {
			return seg
		}
	}
	return nil
}

// FunctionalGroup is the X12 GS/GE grouping layer between the interchange
// and its transaction sets.
type FunctionalGroup struct {
	Header       *Segment // GS
	Trailer      *Segment // GE
	Transactions []*Transaction
}

// X12Envelope is a parsed X12 interchange. Transactions is the flat list of
// every completed transaction set, regardless of grouping.
type X12Envelope struct {
	Header           *Segment // ISA
	Trailer          *Segment // IEA
	FunctionalGroups []*FunctionalGroup
	Transactions     []*Transaction
	// Delimiters is the separator set the interchange was tokenized with.
	Delimiters Delimiters

	// builder anomalies, surfaced by the Validator as warnings
	unterminated          []string
	danglingGroupTrailers int
	unclosedGroups        int
}

// SenderID returns the interchange sender ID from ISA06, trimmed of the
// fixed-width padding. Derived lazily; never stored.
func (e *X12Envelope) SenderID() string {
	return strings.TrimSpace(e.Header.Element(isaIndexSenderID))
}

// ReceiverID returns the interchange receiver ID from ISA08, trimmed.
func (e *X12Envelope) ReceiverID() string {
	return strings.TrimSpace(e.Header.Element(isaIndexReceiverID))
}

// EdifactEnvelope is a parsed EDIFACT interchange. EDIFACT has no grouping
// layer in this model; messages attach directly to the interchange.
type EdifactEnvelope struct {
	Header     *Segment // UNB
	Trailer    *Segment // UNZ
	Messages   []*Message
	Delimiters Delimiters

	unterminated []string
}

// SenderID returns the interchange sender identification from the first
// component of UNB02.
func (e *EdifactEnvelope) SenderID() string {
	return e.Header.Component(unbIndexSender, 0)
}

// ReceiverID returns the interchange recipient identification from the
// first component of UNB03.
func (e *EdifactEnvelope) ReceiverID() string {
	return e.Header.Component(unbIndexReceiver, 0)
}
