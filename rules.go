package ediwire

// segmentSource is the read surface shared by Transaction and Message, so
// one rule evaluator covers both formats.
type segmentSource interface {
	GetSegment(tag string) *Segment
	GetSegments(tag string) []*Segment
}

// businessRule is one required-segment check for a transaction or message
// type. When Field is non-zero, the value at that 1-indexed element (and
// 0-indexed Component) is additionally required; an empty value raises an
// issue at FieldSeverity.
type businessRule struct {
	Tag            string
	Rule           string
	MissingMessage string
	Field          int
	Component      int
	FieldMessage   string
	FieldSeverity  Severity
}

var x12BusinessRules = map[string][]businessRule{
	"850": {
		{
			Tag:            "BEG",
			Rule:           RuleBEGRequired850,
			MissingMessage: "850 transaction missing BEG segment",
			Field:          3,
			FieldMessage:   "BEG segment missing purchase order number",
			FieldSeverity:  SeverityError,
		},
	},
	"855": {
		{
			Tag:            "BAK",
			Rule:           RuleBAKRequired855,
			MissingMessage: "855 transaction missing BAK segment",
		},
	},
	"810": {
		{
			Tag:            "BIG",
			Rule:           RuleBIGRequired810,
			MissingMessage: "810 transaction missing BIG segment",
			Field:          2,
			FieldMessage:   "BIG segment missing invoice number",
			FieldSeverity:  SeverityError,
		},
	},
}

var edifactBusinessRules = map[string][]businessRule{
	"ORDERS": {
		{
			Tag:            "BGM",
			Rule:           RuleBGMRequiredOrders,
			MissingMessage: "ORDERS message missing BGM segment",
			Field:          2,
			FieldMessage:   "BGM segment missing order number",
			FieldSeverity:  SeverityWarning,
		},
	},
	"DESADV": {
		{
			Tag:            "BGM",
			Rule:           RuleBGMRequiredDesadv,
			MissingMessage: "DESADV message missing BGM segment",
		},
	},
	"INVOIC": {
		{
			Tag:            "BGM",
			Rule:           RuleBGMRequiredInvoic,
			MissingMessage: "INVOIC message missing BGM segment",
			Field:          2,
			FieldMessage:   "BGM segment missing invoice number",
			FieldSeverity:  SeverityError,
		},
	},
}

// applyBusinessRules evaluates the rule list against the segment source,
// accumulating findings without stopping at the first one.
func applyBusinessRules(rules []businessRule, src segmentSource, result *ValidationResult) {
	for _, rule := range rules {
		seg := src.GetSegment(rule.Tag)
		if seg == nil {
			result.AddError(Issue{
				Message: rule.MissingMessage,
				Rule:    rule.Rule,
			})
			continue
		}
		if rule.Field == 0 {
			continue
		}
		if seg.Component(rule.Field, rule.Component) != "" {
			continue
		}
		issue := Issue{Message: rule.FieldMessage, Segment: rule.Tag}
		if rule.FieldSeverity == SeverityWarning {
			result.AddWarning(issue)
		} else {
			result.AddError(issue)
		}
	}
}
