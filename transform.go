package ediwire

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoTransactions is returned when an X12 interchange holds no
	// completed transaction set to transform.
	ErrNoTransactions = errors.New("no transactions found in X12 content")
	// ErrNoMessages is returned when an EDIFACT interchange holds no
	// completed message to transform.
	ErrNoMessages = errors.New("no messages found in EDIFACT content")
)

// Transformer converts between X12 and EDIFACT renditions of a business
// document, and applies declarative field mappings to generic data. The
// correspondence table is fixed: BEG maps to BGM, N1 to NAD, PO1 to
// LIN+QTY, and back. Target envelopes are synthesized; the source
// envelope's metadata is not a complete substitute for the target
// format's envelope fields.
type Transformer struct {
	// Logger, when set, receives informational transform events.
	Logger *zap.Logger
	// Now supplies timestamps for synthesized envelope segments.
	// Defaults to time.Now.
	Now func() time.Time

	x12     *X12Parser
	edifact *EdifactParser
}

// NewTransformer returns a Transformer with default parsers.
func NewTransformer() *Transformer {
	return &Transformer{
		x12:     NewX12Parser(),
		edifact: NewEdifactParser(),
	}
}

func (t *Transformer) log() *zap.Logger {
	if t.Logger == nil {
		return zap.NewNop()
	}
	return t.Logger
}

func (t *Transformer) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

// X12ToEdifact parses an X12 interchange, maps its first transaction set
// into EDIFACT segment vocabulary as the given message type, and
// serializes the result inside a synthesized UNB/UNZ envelope.
func (t *Transformer) X12ToEdifact(content string, messageType string) (string, error) {
	env, err := t.x12.Parse(content)
	if err != nil {
		return "", err
	}
	if len(env.Transactions) == 0 {
		return "", ErrNoTransactions
	}
	txn := env.Transactions[0]
	segments := t.transactionToEdifactSegments(txn, messageType)
	t.log().Info("transformed X12 to EDIFACT",
		zap.String("transactionType", txn.Type),
		zap.String("messageType", messageType))
	return t.renderEdifactInterchange(env, segments), nil
}

// EdifactToX12 parses an EDIFACT interchange, maps its first message into
// X12 segment vocabulary as the given transaction set type, and serializes
// the result inside a synthesized ISA/IEA envelope.
func (t *Transformer) EdifactToX12(content string, transactionType string) (string, error) {
	env, err := t.edifact.Parse(content)
	if err != nil {
		return "", err
	}
	if len(env.Messages) == 0 {
		return "", ErrNoMessages
	}
	msg := env.Messages[0]
	segments := t.messageToX12Segments(msg, transactionType)
	t.log().Info("transformed EDIFACT to X12",
		zap.String("messageType", msg.Type),
		zap.String("transactionType", transactionType))
	return t.renderX12Interchange(env, segments), nil
}

// transactionToEdifactSegments maps one transaction set into a UNH/UNT
// bounded segment list using the fixed correspondence table.
func (t *Transformer) transactionToEdifactSegments(txn *Transaction, messageType string) []*Segment {
	now := t.now()
	ref := "MSG" + now.Format("20060102150405")

	segments := []*Segment{{
		Tag: unhSegmentID,
		Elements: []Element{
			{ref},
			{messageType, "D", "96A", "UN"},
		},
	}}

	if txn.Type == "850" {
		if beg := txn.GetSegment("BEG"); beg != nil {
			segments = append(segments, &Segment{
				Tag: "BGM",
				Elements: []Element{
					{"220"},
					{beg.Element(3)},
					{"9"},
				},
			})
		}
	}

	segments = append(segments, &Segment{
		Tag:      "DTM",
		Elements: []Element{{"137", now.Format("20060102")}},
	})

	for _, n1 := range txn.GetSegments("N1") {
		segments = append(segments, &Segment{
			Tag: "NAD",
			Elements: []Element{
				{n1.Element(1)},
				{n1.Element(2)},
				{n1.Element(4)},
			},
		})
	}

	for _, po1 := range txn.GetSegments("PO1") {
		segments = append(segments, &Segment{
			Tag: "LIN",
			Elements: []Element{
				{po1.Element(1)},
				{},
				{po1.Element(7)},
			},
		})
		segments = append(segments, &Segment{
			Tag: "QTY",
			Elements: []Element{
				{"21"},
				{po1.Element(2)},
			},
		})
	}

	segments = append(segments, &Segment{
		Tag: untSegmentID,
		Elements: []Element{
			{strconv.Itoa(len(segments) + 1)},
			{ref},
		},
	})
	return segments
}

// messageToX12Segments maps one message into an ST/SE bounded segment
// list using the fixed correspondence table.
func (t *Transformer) messageToX12Segments(msg *Message, transactionType string) []*Segment {
	control := "0001"
	if len(msg.Segments) > 0 {
		if ref := msg.Segments[0].Component(1, 0); ref != "" {
			control = ref
		}
	}

	segments := []*Segment{{
		Tag:      stSegmentID,
		Elements: []Element{{transactionType}, {control}},
	}}

	if transactionType == "850" {
		if bgm := msg.GetSegment("BGM"); bgm != nil {
			segments = append(segments, &Segment{
				Tag: "BEG",
				Elements: []Element{
					{"00"},
					{"SA"},
					{bgm.Component(2, 0)},
					{""},
					{bgm.Component(4, 0)},
				},
			})
		}
	}

	for _, nad := range msg.GetSegments("NAD") {
		segments = append(segments, &Segment{
			Tag: "N1",
			Elements: []Element{
				{nad.Component(1, 0)},
				{nad.Component(2, 0)},
				{""},
				{nad.Component(3, 0)},
			},
		})
	}

	for _, lin := range msg.GetSegments("LIN") {
		segments = append(segments, &Segment{
			Tag: "PO1",
			Elements: []Element{
				{lin.Component(1, 0)},
				{""},
				{""},
				{""},
				{""},
				{""},
				{lin.Component(3, 0)},
			},
		})
	}

	segments = append(segments, &Segment{
		Tag:      seSegmentID,
		Elements: []Element{{strconv.Itoa(len(segments) + 1)}, {control}},
	})
	return segments
}

// renderEdifactInterchange serializes the message segments inside a
// synthesized UNA/UNB/UNZ envelope, carrying the source interchange's
// sender and receiver identifiers over.
func (t *Transformer) renderEdifactInterchange(src *X12Envelope, segments []*Segment) string {
	now := t.now()
	sender := src.SenderID()
	if sender == "" {
		sender = "SENDER"
	}
	receiver := src.ReceiverID()
	if receiver == "" {
		receiver = "RECEIVER"
	}

	d := EdifactDefaultDelimiters
	lines := []string{"UNA:+.? '"}
	lines = append(lines, formatSegment(&Segment{
		Tag: unbSegmentID,
		Elements: []Element{
			{"UNOA", "2"},
			{sender, ""},
			{receiver, ""},
			{now.Format("060102"), now.Format("1504")},
			{"0001"},
		},
	}, d))
	for _, seg := range segments {
		lines = append(lines, formatSegment(seg, d))
	}
	lines = append(lines, formatSegment(&Segment{
		Tag:      unzSegmentID,
		Elements: []Element{{"1"}, {"0001"}},
	}, d))
	return strings.Join(lines, "\n")
}

// renderX12Interchange serializes the transaction segments inside a
// synthesized ISA/GS/GE/IEA envelope. ISA sender/receiver fields are
// fixed-width, truncated and right-padded to fifteen characters.
func (t *Transformer) renderX12Interchange(src *EdifactEnvelope, segments []*Segment) string {
	now := t.now()
	sender := src.SenderID()
	if sender == "" {
		sender = "SENDER"
	}
	receiver := src.ReceiverID()
	if receiver == "" {
		receiver = "RECEIVER"
	}

	d := X12DefaultDelimiters
	lines := []string{formatSegment(&Segment{
		Tag: isaSegmentID,
		Elements: []Element{
			{"00"}, {strings.Repeat(" ", 10)},
			{"00"}, {strings.Repeat(" ", 10)},
			{"ZZ"}, {padID(sender)},
			{"ZZ"}, {padID(receiver)},
			{now.Format("060102")}, {now.Format("1504")},
			{"^"}, {"00501"}, {"000000001"}, {"0"}, {"P"}, {":"},
		},
	}, d)}
	lines = append(lines, formatSegment(&Segment{
		Tag: gsSegmentID,
		Elements: []Element{
			{"PO"}, {"SENDER"}, {"RECEIVER"},
			{now.Format("20060102")}, {now.Format("150405")},
			{"1"}, {"X"}, {"005010"},
		},
	}, d))
	for _, seg := range segments {
		lines = append(lines, formatSegment(seg, d))
	}
	lines = append(lines, formatSegment(&Segment{
		Tag:      geSegmentID,
		Elements: []Element{{"1"}, {"1"}},
	}, d))
	lines = append(lines, formatSegment(&Segment{
		Tag:      ieaSegmentID,
		Elements: []Element{{"1"}, {"000000001"}},
	}, d))
	return strings.Join(lines, "\n")
}

// formatSegment serializes one segment with the given delimiters,
// joining composite components with the component separator.
func formatSegment(seg *Segment, d Delimiters) string {
	var b strings.Builder
	b.WriteString(seg.Tag)
	for _, elem := range seg.Elements {
		b.WriteRune(d.Element)
		for i, c := range elem {
			if i > 0 {
				b.WriteRune(d.Component)
			}
			b.WriteString(c)
		}
	}
	b.WriteRune(d.Segment)
	return b.String()
}

// padID truncates and right-pads an interchange ID to the fixed ISA
// element width.
func padID(id string) string {
	if len(id) > 15 {
		id = id[:15]
	}
	return fmt.Sprintf("%-15s", id)
}

// FieldMapping describes how one target field is produced: a dotted source
// path, an optional transform from the fixed vocabulary (uppercase,
// lowercase, trim, date:<layout>), and a default applied when the source
// value is absent.
type FieldMapping struct {
	Source    string `yaml:"source" json:"source"`
	Transform string `yaml:"transform,omitempty" json:"transform,omitempty"`
	Default   any    `yaml:"default,omitempty" json:"default,omitempty"`
}

// MappingConfig maps dotted target paths to their field mappings.
type MappingConfig map[string]FieldMapping

// LoadMappingConfig decodes a YAML mapping configuration.
func LoadMappingConfig(data []byte) (MappingConfig, error) {
	var cfg MappingConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decoding mapping config: %w", err)
	}
	return cfg, nil
}

// ApplyMapping reads values out of data by each mapping's dotted source
// path, applies the configured transform, and writes them into a fresh
// nested result by the dotted target path, creating intermediate
// containers on demand.
func (t *Transformer) ApplyMapping(data map[string]any, cfg MappingConfig) map[string]any {
	result := map[string]any{}
	for targetPath, mapping := range cfg {
		var value any
		if mapping.Source != "" {
			value = getNestedValue(data, mapping.Source)
		}
		if value == nil {
			value = mapping.Default
		}
		if value != nil && mapping.Transform != "" {
			value = applyTransform(value, mapping.Transform)
		}
		setNestedValue(result, targetPath, value)
	}
	return result
}

// getNestedValue reads a value by dotted path, returning nil when any
// intermediate step is missing or not a map.
func getNestedValue(data map[string]any, path string) any {
	var value any = data
	for _, key := range strings.Split(path, ".") {
		m, ok := value.(map[string]any)
		if !ok {
			return nil
		}
		value = m[key]
	}
	return value
}

// setNestedValue writes a value by dotted path, creating intermediate
// maps on demand. An intermediate key holding a non-map value is
// overwritten with a map.
func setNestedValue(data map[string]any, path string, value any) {
	keys := strings.Split(path, ".")
	current := data
	for _, key := range keys[:len(keys)-1] {
		next, ok := current[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[key] = next
		}
		current = next
	}
	current[keys[len(keys)-1]] = value
}

// applyTransform applies one of the fixed transform vocabulary entries.
// date:<layout> parses the value with the given reference layout and
// reformats it as yyyymmdd; an unparseable value passes through
// unchanged, as does an unknown transform name.
func applyTransform(value any, transform string) any {
	s := fmt.Sprint(value)
	switch {
	case transform == "uppercase":
		return strings.ToUpper(s)
	case transform == "lowercase":
		return strings.ToLower(s)
	case transform == "trim":
		return strings.TrimSpace(s)
	case strings.HasPrefix(transform, "date:"):
		layout := strings.TrimPrefix(transform, "date:")
		parsed, err := time.Parse(layout, s)
		if err != nil {
			return value
		}
		return parsed.Format("20060102")
	default:
		return value
	}
}
