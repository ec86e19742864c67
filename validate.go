package ediwire

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Severity classifies a validation finding.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
	SeverityInfo    Severity = "INFO"
)

// Issue is a single validation finding. Segment, Position and Rule are
// optional context: the originating segment tag, the segment position
// within the interchange, and the identifier of the violated rule.
type Issue struct {
	Level    Severity `json:"level"`
	Message  string   `json:"message"`
	Segment  string   `json:"segment,omitempty"`
	Position int      `json:"position,omitempty"`
	Rule     string   `json:"rule,omitempty"`
}

// ValidationResult accumulates findings from one validate pass. Validity
// is derived, never stored: the result is valid iff the error list is
// empty, so adding an error always flips validity and adding a warning
// never does.
type ValidationResult struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// IsValid reports whether no errors were recorded.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// AddError records the issue at error severity.
func (r *ValidationResult) AddError(i Issue) {
	i.Level = SeverityError
	r.Errors = append(r.Errors, i)
}

// AddWarning records the issue at warning severity.
func (r *ValidationResult) AddWarning(i Issue) {
	i.Level = SeverityWarning
	r.Warnings = append(r.Warnings, i)
}

// Summary returns the validation result in the mapping shape downstream
// collaborators consume.
func (r *ValidationResult) Summary() map[string]any {
	return map[string]any{
		"is_valid":      r.IsValid(),
		"error_count":   len(r.Errors),
		"warning_count": len(r.Warnings),
		"errors":        issueMaps(r.Errors),
		"warnings":      issueMaps(r.Warnings),
	}
}

func issueMaps(issues []Issue) []map[string]any {
	out := make([]map[string]any, 0, len(issues))
	for _, i := range issues {
		out = append(out, map[string]any{
			"level":    string(i.Level),
			"message":  i.Message,
			"segment":  i.Segment,
			"position": i.Position,
			"rule":     i.Rule,
		})
	}
	return out
}

// Validator checks interchanges for structural integrity and per-type
// business rules. It never stops at the first finding; every error and
// warning across the interchange is accumulated in one pass. A Validator
// holds only immutable configuration and may be shared across goroutines.
type Validator struct {
	x12     *X12Parser
	edifact *EdifactParser
	log     *zap.Logger
}

// NewValidator returns a Validator using default parsers. The logger may
// be nil.
func NewValidator(logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{
		x12:     NewX12Parser(),
		edifact: NewEdifactParser(),
		log:     logger,
	}
}

// Validate auto-detects the interchange format and validates it. Empty
// content and unknown formats are themselves validation errors, not
// failures.
func (v *Validator) Validate(content string) *ValidationResult {
	result := &ValidationResult{}
	if strings.TrimSpace(content) == "" {
		result.AddError(Issue{Message: "Empty EDI content"})
		return result
	}
	switch format := DetectFormat(content); format {
	case FormatX12:
		return v.ValidateX12(content)
	case FormatEdifact:
		return v.ValidateEdifact(content)
	default:
		result.AddError(Issue{
			Message: fmt.Sprintf("Unknown or unsupported EDI type: %s", format),
		})
		return result
	}
}

// ValidateX12 parses and validates one X12 interchange.
func (v *Validator) ValidateX12(content string) *ValidationResult {
	result := &ValidationResult{}
	env, err := v.x12.Parse(content)
	if err != nil {
		result.AddError(Issue{Message: fmt.Sprintf("Parse error: %v", err)})
		return result
	}
	v.ValidateX12Envelope(env, result)
	v.log.Debug("validated X12 interchange",
		zap.Bool("valid", result.IsValid()),
		zap.Int("errors", len(result.Errors)),
		zap.Int("warnings", len(result.Warnings)))
	return result
}

// ValidateX12Envelope runs the structural and business-rule tracks over an
// already-built envelope, appending findings to result. Validation reads
// the envelope without mutating it, so repeated calls yield identical
// findings.
func (v *Validator) ValidateX12Envelope(env *X12Envelope, result *ValidationResult) {
	if env.Header == nil {
		result.AddError(Issue{Message: "Missing ISA segment (interchange header)"})
	} else {
		if env.Header.ElementCount() < isaElementCount {
			result.AddError(Issue{
				Message: fmt.Sprintf("ISA segment has insufficient elements (expected %d)", isaElementCount),
				Segment: isaSegmentID,
			})
		}
		if env.SenderID() == "" {
			result.AddError(Issue{Message: "Missing sender ID in ISA segment", Segment: isaSegmentID})
		}
		if env.ReceiverID() == "" {
			result.AddError(Issue{Message: "Missing receiver ID in ISA segment", Segment: isaSegmentID})
		}
	}
	if env.Trailer == nil {
		result.AddWarning(Issue{Message: "Missing IEA segment (interchange trailer)"})
	}

	for i := 0; i < env.danglingGroupTrailers; i++ {
		result.AddWarning(Issue{
			Message: "GE trailer found with no open functional group",
			Segment: geSegmentID,
			Rule:    RuleDanglingGroupTrailer,
		})
	}
	for i := 0; i < env.unclosedGroups; i++ {
		result.AddWarning(Issue{
			Message: "Functional group missing GE trailer",
			Segment: gsSegmentID,
			Rule:    RuleUnclosedGroup,
		})
	}
	for _, txnType := range env.unterminated {
		result.AddWarning(Issue{
			Message: fmt.Sprintf("Unterminated transaction set (type %s): no SE trailer before end of interchange", txnType),
			Segment: stSegmentID,
			Rule:    RuleUnterminatedTransaction,
		})
	}

	if len(env.FunctionalGroups) == 0 {
		result.AddWarning(Issue{Message: "No functional groups found"})
	}
	if len(env.Transactions) == 0 {
		result.AddWarning(Issue{Message: "No transactions found"})
		return
	}
	for _, txn := range env.Transactions {
		v.validateTransaction(txn, result)
	}
}

func (v *Validator) validateTransaction(txn *Transaction, result *ValidationResult) {
	if txn.Header == nil {
		result.AddError(Issue{
			Message: "Transaction missing ST segment",
			Rule:    RuleSTSERequired,
		})
	} else if declared := txn.Header.Element(stIndexTransactionSetCode); declared != txn.Type {
		result.AddError(Issue{
			Message: fmt.Sprintf("Transaction type mismatch: ST segment has %s, expected %s", declared, txn.Type),
			Segment: stSegmentID,
		})
	}

	if txn.Trailer == nil {
		result.AddError(Issue{
			Message: "Transaction missing SE segment",
			Rule:    RuleSTSERequired,
		})
	} else {
		checkSegmentCount(txn.Trailer, seIndexSegmentCount, len(txn.Segments)+2, seSegmentID, result)
	}

	applyBusinessRules(x12BusinessRules[txn.Type], txn, result)
	if txn.Type == "850" && len(txn.GetSegments("PO1")) == 0 {
		result.AddWarning(Issue{Message: "850 transaction has no line items (PO1 segments)"})
	}
}

// ValidateEdifact parses and validates one EDIFACT interchange.
func (v *Validator) ValidateEdifact(content string) *ValidationResult {
	result := &ValidationResult{}
	env, err := v.edifact.Parse(content)
	if err != nil {
		result.AddError(Issue{Message: fmt.Sprintf("Parse error: %v", err)})
		return result
	}
	v.ValidateEdifactEnvelope(env, result)
	v.log.Debug("validated EDIFACT interchange",
		zap.Bool("valid", result.IsValid()),
		zap.Int("errors", len(result.Errors)),
		zap.Int("warnings", len(result.Warnings)))
	return result
}

// ValidateEdifactEnvelope runs the structural and business-rule tracks
// over an already-built envelope, appending findings to result.
func (v *Validator) ValidateEdifactEnvelope(env *EdifactEnvelope, result *ValidationResult) {
	if env.Header == nil {
		result.AddError(Issue{Message: "Missing UNB segment (interchange header)"})
	} else {
		if env.SenderID() == "" {
			result.AddError(Issue{Message: "Missing sender ID in UNB segment", Segment: unbSegmentID})
		}
		if env.ReceiverID() == "" {
			result.AddError(Issue{Message: "Missing receiver ID in UNB segment", Segment: unbSegmentID})
		}
	}
	if env.Trailer == nil {
		result.AddWarning(Issue{Message: "Missing UNZ segment (interchange trailer)"})
	}

	for _, msgType := range env.unterminated {
		result.AddWarning(Issue{
			Message: fmt.Sprintf("Unterminated message (type %s): no UNT trailer before end of interchange", msgType),
			Segment: unhSegmentID,
			Rule:    RuleUnterminatedMessage,
		})
	}

	if len(env.Messages) == 0 {
		result.AddWarning(Issue{Message: "No messages found"})
		return
	}
	for _, msg := range env.Messages {
		v.validateMessage(msg, result)
	}
}

func (v *Validator) validateMessage(msg *Message, result *ValidationResult) {
	if msg.Header == nil {
		result.AddError(Issue{
			Message: "Message missing UNH segment",
			Rule:    RuleUNHUNTRequired,
		})
	} else if declared := msg.Header.Component(unhIndexType, 0); declared != msg.Type {
		result.AddError(Issue{
			Message: fmt.Sprintf("Message type mismatch: UNH has %s, expected %s", declared, msg.Type),
			Segment: unhSegmentID,
		})
	}

	if msg.Trailer == nil {
		result.AddError(Issue{
			Message: "Message missing UNT segment",
			Rule:    RuleUNHUNTRequired,
		})
	} else {
		checkSegmentCount(msg.Trailer, untIndexSegmentCount, len(msg.Segments)+2, untSegmentID, result)
	}

	applyBusinessRules(edifactBusinessRules[msg.Type], msg, result)
}

// checkSegmentCount compares the declared trailer count against the actual
// captured count, header and trailer included. Many senders miscount, so
// a mismatch is only a warning.
func checkSegmentCount(trailer *Segment, position, actual int, tag string, result *ValidationResult) {
	declared := trailer.Element(position)
	if declared == "" {
		return
	}
	n, err := strconv.Atoi(declared)
	if err != nil {
		result.AddWarning(Issue{
			Message: fmt.Sprintf("Segment count in %s is not numeric: %q", tag, declared),
			Segment: tag,
		})
		return
	}
	if n != actual {
		result.AddWarning(Issue{
			Message: fmt.Sprintf("Segment count mismatch: %s indicates %d, actual count is %d", tag, n, actual),
			Segment: tag,
		})
	}
}
