package ediwire

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// X12Parser parses ANSI X12 interchanges. It holds only immutable default
// configuration; each Parse call derives its own delimiter set from the
// input, so a single instance may be shared across goroutines.
type X12Parser struct {
	// Defaults is the delimiter set used when the ISA header cannot be
	// read positionally. The zero value falls back to
	// X12DefaultDelimiters.
	Defaults Delimiters
	// Logger, when set, receives informational parse events.
	Logger *zap.Logger
}

// NewX12Parser returns a parser configured with X12DefaultDelimiters.
func NewX12Parser() *X12Parser {
	return &X12Parser{Defaults: X12DefaultDelimiters}
}

func (p *X12Parser) log() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

func (p *X12Parser) defaults() Delimiters {
	if p.Defaults == (Delimiters{}) {
		return X12DefaultDelimiters
	}
	return p.Defaults
}

// DetectDelimiters reads the element and segment separators from the
// fixed-width ISA header: the byte immediately after the three-character
// tag is the element separator, and the final byte of the 106-byte header
// is the segment terminator. The fixed-width span carries no release
// character, so the release role keeps its default. Detection never
// fails; when no ISA header is found within the opening bytes, or the
// candidate separators coincide, the parser defaults are returned.
func (p *X12Parser) DetectDelimiters(content string) Delimiters {
	d := p.defaults()
	window := content
	if len(window) > detectWindow {
		window = window[:detectWindow]
	}
	idx := strings.Index(window, isaSegmentID)
	if idx < 0 || len(content) <= idx+isaSegmentSeparatorOffset {
		p.log().Info("ISA header not found, using default X12 separators",
			zap.String("element", string(d.Element)),
			zap.String("segment", string(d.Segment)))
		return d
	}
	element := rune(content[idx+isaElementSeparatorOffset])
	segment := rune(content[idx+isaSegmentSeparatorOffset])
	if element == segment {
		p.log().Info("ISA header not fixed-width, using default X12 separators")
		return d
	}
	d.Element = element
	d.Segment = segment
	p.log().Info("detected X12 separators",
		zap.String("element", string(d.Element)),
		zap.String("segment", string(d.Segment)))
	return d
}

// Parse tokenizes the given interchange text and reconstructs its
// ISA/IEA, GS/GE, ST/SE hierarchy. The only error returned is for
// empty/whitespace-only input; structural anomalies are recorded on the
// envelope and reported by the Validator.
func (p *X12Parser) Parse(content string) (*X12Envelope, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: %w", ParseError, ErrEmptyInput)
	}
	d := p.DetectDelimiters(content)
	env := buildX12Envelope(tokenizeX12(content, d))
	env.Delimiters = d
	p.log().Info("parsed X12 interchange",
		zap.Int("transactions", len(env.Transactions)),
		zap.Int("functionalGroups", len(env.FunctionalGroups)))
	return env, nil
}

// buildX12Envelope runs a single forward pass over the token stream.
// ISA/IEA are captured regardless of state and do not change state. A GE
// with no open group, a GS before the previous group closed, and an ST
// before the previous transaction closed are recorded on the envelope for
// the Validator rather than treated as fatal.
func buildX12Envelope(segments []*Segment) *X12Envelope {
	env := &X12Envelope{}

	var group *FunctionalGroup
	var txn *Transaction
	for _, seg := range segments {
		switch seg.Tag {
		case isaSegmentID:
			env.Header = seg
		case ieaSegmentID:
			env.Trailer = seg
		case gsSegmentID:
			if group != nil {
				env.unclosedGroups++
			}
			group = &FunctionalGroup{Header: seg}
		case geSegmentID:
			if group == nil {
				env.danglingGroupTrailers++
				continue
			}
			group.Trailer = seg
			env.FunctionalGroups = append(env.FunctionalGroups, group)
			group = nil
		case stSegmentID:
			if txn != nil {
				env.unterminated = append(env.unterminated, txn.Type)
			}
			txn = &Transaction{
				Type:          seg.Element(stIndexTransactionSetCode),
				ControlNumber: seg.Element(stIndexControlNumber),
				Header:        seg,
			}
		case seSegmentID:
			if txn == nil {
				continue
			}
			txn.Trailer = seg
			env.Transactions = append(env.Transactions, txn)
			if group != nil {
				group.Transactions = append(group.Transactions, txn)
			}
			txn = nil
		default:
			if txn != nil {
				txn.Segments = append(txn.Segments, seg)
			}
		}
	}
	if txn != nil {
		env.unterminated = append(env.unterminated, txn.Type)
	}
	if group != nil {
		env.unclosedGroups++
	}
	return env
}
