package ediwire

const (
	isaSegmentID = "ISA"
	ieaSegmentID = "IEA"
	gsSegmentID  = "GS"
	geSegmentID  = "GE"
	stSegmentID  = "ST"
	seSegmentID  = "SE"

	unaSegmentID = "UNA"
	unbSegmentID = "UNB"
	unzSegmentID = "UNZ"
	unhSegmentID = "UNH"
	untSegmentID = "UNT"

	// The ISA header is fixed-width: 106 bytes including the
	// 3-character tag. The element separator immediately follows the
	// tag and the segment terminator is the final byte.
	isaElementSeparatorOffset = 3
	isaSegmentSeparatorOffset = 105
	isaElementCount           = 16

	// detectWindow bounds how far into the stream delimiter detection
	// looks for the ISA header.
	detectWindow = 200
	// unaWindow bounds the search for UNA service-string advice.
	unaWindow = 20
	// unaServiceLength is the number of separator characters following
	// the UNA tag.
	unaServiceLength = 6

	edifactTagLength = 3
)

// 1-indexed ISA element positions (ISA01..ISA16)
const (
	isaIndexAuthQualifier = iota + 1
	isaIndexAuthInfo
	isaIndexSecurityQualifier
	isaIndexSecurityInfo
	isaIndexSenderIDQualifier
	isaIndexSenderID
	isaIndexReceiverIDQualifier
	isaIndexReceiverID
	isaIndexDate
	isaIndexTime
	isaIndexRepetitionSeparator
	isaIndexVersion
	isaIndexControlNumber
	isaIndexAckRequested
	isaIndexUsageIndicator
	isaIndexComponentSeparator
)

const (
	stIndexTransactionSetCode = iota + 1
	stIndexControlNumber
)

const (
	seIndexSegmentCount = iota + 1
	seIndexControlNumber
)

// 1-indexed UNB element positions
const (
	unbIndexSyntax = iota + 1
	unbIndexSender
	unbIndexReceiver
	unbIndexDateTime
	unbIndexControlRef
)

const (
	unhIndexReference = iota + 1
	unhIndexType
)

const (
	untIndexSegmentCount = iota + 1
	untIndexReference
)

// UNA service-string positions, as received. Position 1 nominally carries
// the data-element separator and position 2 the decimal mark; both are
// ignored and the element separator is read from position 4.
const (
	unaPosComponent = 0
	unaPosRelease   = 3
	unaPosElement   = 4
	unaPosSegment   = 5
)

// Validation rule identifiers.
const (
	RuleSTSERequired            = "ST_SE_REQUIRED"
	RuleUNHUNTRequired          = "UNH_UNT_REQUIRED"
	RuleBEGRequired850          = "BEG_REQUIRED_850"
	RuleBAKRequired855          = "BAK_REQUIRED_855"
	RuleBIGRequired810          = "BIG_REQUIRED_810"
	RuleBGMRequiredOrders       = "BGM_REQUIRED_ORDERS"
	RuleBGMRequiredDesadv       = "BGM_REQUIRED_DESADV"
	RuleBGMRequiredInvoic       = "BGM_REQUIRED_INVOIC"
	RuleUnterminatedTransaction = "UNTERMINATED_TRANSACTION"
	RuleUnterminatedMessage     = "UNTERMINATED_MESSAGE"
	RuleDanglingGroupTrailer    = "DANGLING_GROUP_TRAILER"
	RuleUnclosedGroup           = "UNCLOSED_GROUP"
)
