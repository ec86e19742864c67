package ediwire

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestX12ToEdifact(t *testing.T) {
	tr := NewTransformer()
	tr.Now = fixedNow

	out, err := tr.X12ToEdifact(sample850(), "ORDERS")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "UNA:+.? '"))
	assert.Contains(t, out, "UNB+UNOA:2+SENDERID:+RECEIVERID:+250101:1200+0001'")
	assert.Contains(t, out, "UNH+MSG20250101120000+ORDERS:D:96A:UN'")
	assert.Contains(t, out, "BGM+220+PO123456+9'")
	assert.Contains(t, out, "DTM+137:20250101'")
	assert.Contains(t, out, "NAD+BY+Acme Corporation+'")
	assert.Contains(t, out, "LIN+1++SKU1'")
	assert.Contains(t, out, "QTY+21+10'")
	assert.Contains(t, out, "UNT+7+MSG20250101120000'")
}

func TestX12ToEdifactRoundTrip(t *testing.T) {
	tr := NewTransformer()
	tr.Now = fixedNow

	out, err := tr.X12ToEdifact(sample850(), "ORDERS")
	require.NoError(t, err)

	env, err := NewEdifactParser().Parse(out)
	require.NoError(t, err)
	assert.Equal(t, "SENDERID", env.SenderID())
	assert.Equal(t, "RECEIVERID", env.ReceiverID())
	require.Len(t, env.Messages, 1)
	assert.Equal(t, "ORDERS", env.Messages[0].Type)

	result := NewValidator(nil).Validate(out)
	assert.True(t, result.IsValid())
	assert.Empty(t, result.Warnings)
}

func TestEdifactToX12(t *testing.T) {
	tr := NewTransformer()
	tr.Now = fixedNow

	out, err := tr.EdifactToX12(sampleOrders, "850")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 2)
	assert.Len(t, lines[0], 106, "synthesized ISA is fixed-width")
	assert.Contains(t, out, "ST*850*220~")
	assert.Contains(t, out, "BEG*00*SA*ORD123**~")
	assert.Contains(t, out, "N1*BY*12345**Acme~")
	assert.Contains(t, out, "PO1*1******SKU1~")
	assert.Contains(t, out, "SE*5*220~")
}

func TestEdifactToX12RoundTrip(t *testing.T) {
	tr := NewTransformer()
	tr.Now = fixedNow

	out, err := tr.EdifactToX12(sampleOrders, "850")
	require.NoError(t, err)

	env, err := NewX12Parser().Parse(out)
	require.NoError(t, err)
	assert.Equal(t, "SENDER", env.SenderID())
	assert.Equal(t, "RECEIVER", env.ReceiverID())
	require.Len(t, env.Transactions, 1)
	assert.Equal(t, "850", env.Transactions[0].Type)
	assert.Equal(t, "ORD123", env.Transactions[0].GetSegment("BEG").Element(3))

	result := NewValidator(nil).Validate(out)
	assert.True(t, result.IsValid())
	assert.Empty(t, result.Warnings)
}

func TestTransformEmptyEnvelopes(t *testing.T) {
	tr := NewTransformer()

	_, err := tr.X12ToEdifact(sampleISA+"\nIEA*1*000000001~", "ORDERS")
	assert.ErrorIs(t, err, ErrNoTransactions)

	_, err = tr.EdifactToX12("UNB+UNOA:2+S:+R:+250101:1200+1'UNZ+0+1'", "850")
	assert.ErrorIs(t, err, ErrNoMessages)
}

func TestTransformEmptyInput(t *testing.T) {
	tr := NewTransformer()

	_, err := tr.X12ToEdifact("", "ORDERS")
	assert.ErrorIs(t, err, ParseError)

	_, err = tr.EdifactToX12("  ", "850")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestFormatSegment(t *testing.T) {
	assert.Equal(t, "UNB+UNOA:2+SENDER:'",
		formatSegment(&Segment{
			Tag:      "UNB",
			Elements: []Element{{"UNOA", "2"}, {"SENDER", ""}},
		}, EdifactDefaultDelimiters))
	assert.Equal(t, "BEG*00*SA*PO1~",
		formatSegment(&Segment{
			Tag:      "BEG",
			Elements: []Element{{"00"}, {"SA"}, {"PO1"}},
		}, X12DefaultDelimiters))
}

func TestPadID(t *testing.T) {
	assert.Equal(t, "SENDER         ", padID("SENDER"))
	assert.Len(t, padID("AVERYLONGINTERCHANGEID"), 15)
}

func TestApplyMapping(t *testing.T) {
	tr := NewTransformer()
	data := map[string]any{
		"data": map[string]any{
			"po_number": "po123456",
			"po_date":   "01/15/2025",
			"buyer":     map[string]any{"name": "  Acme  "},
		},
	}
	cfg := MappingConfig{
		"order.number":  {Source: "data.po_number", Transform: "uppercase"},
		"order.date":    {Source: "data.po_date", Transform: "date:01/02/2006"},
		"customer.name": {Source: "data.buyer.name", Transform: "trim"},
		"channel":       {Source: "data.channel", Default: "EDI"},
		"missing":       {Source: "data.absent"},
	}

	result := tr.ApplyMapping(data, cfg)

	order, ok := result["order"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "PO123456", order["number"])
	assert.Equal(t, "20250115", order["date"])
	customer := result["customer"].(map[string]any)
	assert.Equal(t, "Acme", customer["name"])
	assert.Equal(t, "EDI", result["channel"])
	assert.Contains(t, result, "missing")
	assert.Nil(t, result["missing"])
}

func TestApplyMappingTransformEdgeCases(t *testing.T) {
	tr := NewTransformer()
	data := map[string]any{"v": "Value", "d": "not-a-date"}

	result := tr.ApplyMapping(data, MappingConfig{
		"lower":   {Source: "v", Transform: "lowercase"},
		"unknown": {Source: "v", Transform: "rot13"},
		"baddate": {Source: "d", Transform: "date:20060102"},
	})

	assert.Equal(t, "value", result["lower"])
	assert.Equal(t, "Value", result["unknown"], "unknown transforms pass the value through")
	assert.Equal(t, "not-a-date", result["baddate"], "unparseable dates pass through")
}

func TestApplyMappingDoesNotMutateInput(t *testing.T) {
	tr := NewTransformer()
	data := map[string]any{"a": "1"}

	result := tr.ApplyMapping(data, MappingConfig{"b": {Source: "a"}})

	assert.Equal(t, map[string]any{"a": "1"}, data)
	assert.Equal(t, map[string]any{"b": "1"}, result)
}

func TestLoadMappingConfig(t *testing.T) {
	cfg, err := LoadMappingConfig([]byte(`
order.number:
  source: data.po_number
  transform: uppercase
customer.name:
  source: data.parties
  default: UNKNOWN
`))
	require.NoError(t, err)
	require.Len(t, cfg, 2)
	assert.Equal(t, FieldMapping{Source: "data.po_number", Transform: "uppercase"}, cfg["order.number"])
	assert.Equal(t, "UNKNOWN", cfg["customer.name"].Default)
}

func TestLoadMappingConfigInvalid(t *testing.T) {
	_, err := LoadMappingConfig([]byte("order: [not: valid"))
	assert.Error(t, err)
}

func TestGetNestedValue(t *testing.T) {
	data := map[string]any{"a": map[string]any{"b": "v"}}

	assert.Equal(t, "v", getNestedValue(data, "a.b"))
	assert.Nil(t, getNestedValue(data, "a.x"))
	assert.Nil(t, getNestedValue(data, "a.b.c"), "descending through a leaf yields nil")
}

func TestSetNestedValue(t *testing.T) {
	data := map[string]any{}
	setNestedValue(data, "a.b.c", "v")
	assert.Equal(t, map[string]any{"a": map[string]any{"b": map[string]any{"c": "v"}}}, data)

	setNestedValue(data, "a.b", "leaf")
	assert.Equal(t, "leaf", data["a"].(map[string]any)["b"])
}
