package ediwire

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestX12DetectDelimitersFromHeader(t *testing.T) {
	p := NewX12Parser()

	d := p.DetectDelimiters(sample850())
	assert.Equal(t, '*', d.Element)
	assert.Equal(t, '~', d.Segment)
	assert.Equal(t, rune(0), d.Release, "X12 header carries no release character")
}

func TestX12DetectDelimitersNonstandard(t *testing.T) {
	content := strings.ReplaceAll(strings.ReplaceAll(sampleISA, "*", "|"), "~", ">")

	d := NewX12Parser().DetectDelimiters(content)
	assert.Equal(t, '|', d.Element)
	assert.Equal(t, '>', d.Segment)
}

func TestX12DetectDelimitersFallback(t *testing.T) {
	p := NewX12Parser()
	for _, content := range []string{
		"",
		"GS*PO*SENDER~",
		"ISA*00*short~",
	} {
		d := p.DetectDelimiters(content)
		assert.Equal(t, X12DefaultDelimiters, d)
	}
}

func TestX12ParseEmptyInput(t *testing.T) {
	p := NewX12Parser()
	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := p.Parse(content)
		require.Error(t, err)
		assert.ErrorIs(t, err, ParseError)
		assert.ErrorIs(t, err, ErrEmptyInput)
	}
}

func TestX12Parse850(t *testing.T) {
	env, err := NewX12Parser().Parse(sample850())
	require.NoError(t, err)

	require.NotNil(t, env.Header)
	require.NotNil(t, env.Trailer)
	assert.Equal(t, "ISA", env.Header.Tag)
	assert.Equal(t, "IEA", env.Trailer.Tag)
	assert.Equal(t, "SENDERID", env.SenderID(), "fixed-width padding is trimmed")
	assert.Equal(t, "RECEIVERID", env.ReceiverID())

	require.Len(t, env.FunctionalGroups, 1)
	require.Len(t, env.Transactions, 1)
	assert.Same(t, env.Transactions[0], env.FunctionalGroups[0].Transactions[0])

	txn := env.Transactions[0]
	assert.Equal(t, "850", txn.Type)
	assert.Equal(t, "0001", txn.ControlNumber)
	require.NotNil(t, txn.Header)
	require.NotNil(t, txn.Trailer)

	// ST and SE bound the set; only the interior segments are collected
	require.Len(t, txn.Segments, 3)
	assert.Equal(t, "PO123456", txn.GetSegment("BEG").Element(3))
	assert.Equal(t, "Acme Corporation", txn.GetSegment("N1").Element(2))
	require.Len(t, txn.GetSegments("PO1"), 1)
}

func TestX12ParseNonstandardDelimiters(t *testing.T) {
	content := strings.ReplaceAll(strings.ReplaceAll(sample850(), "*", "|"), "~", ">")

	env, err := NewX12Parser().Parse(content)
	require.NoError(t, err)
	require.Len(t, env.Transactions, 1)
	assert.Equal(t, "850", env.Transactions[0].Type)
	assert.Equal(t, "SENDERID", env.SenderID())
	assert.Equal(t, Delimiters{Element: '|', Segment: '>'}, env.Delimiters)
}

func TestX12ParseUnterminatedTransaction(t *testing.T) {
	content := strings.Replace(sample850(), "SE*5*0001~\n", "", 1)

	env, err := NewX12Parser().Parse(content)
	require.NoError(t, err, "anomalies are recorded, not fatal")
	assert.Empty(t, env.Transactions, "a set with no SE never completes")
	assert.Equal(t, []string{"850"}, env.unterminated)
}

func TestX12ParseDanglingGroupTrailer(t *testing.T) {
	content := sampleISA + "\nGE*1*1~\nIEA*1*000000001~"

	env, err := NewX12Parser().Parse(content)
	require.NoError(t, err)
	assert.Equal(t, 1, env.danglingGroupTrailers)
	assert.Empty(t, env.FunctionalGroups)
}

func TestX12ParseUnclosedGroup(t *testing.T) {
	content := strings.Replace(sample850(), "GE*1*1~\n", "", 1)

	env, err := NewX12Parser().Parse(content)
	require.NoError(t, err)
	assert.Equal(t, 1, env.unclosedGroups)
	assert.Empty(t, env.FunctionalGroups)
	require.Len(t, env.Transactions, 1, "completed sets survive the broken group")
}

func TestX12ParseMultipleTransactions(t *testing.T) {
	content := strings.Join([]string{
		sampleISA,
		"GS*PO*SENDER*RECEIVER*20250101*1200*1*X*005010~",
		"ST*850*0001~",
		"BEG*00*SA*PO1~",
		"SE*3*0001~",
		"ST*855*0002~",
		"BAK*00*AD*PO1*20250102~",
		"SE*3*0002~",
		"GE*2*1~",
		"IEA*1*000000001~",
	}, "\n")

	env, err := NewX12Parser().Parse(content)
	require.NoError(t, err)
	require.Len(t, env.Transactions, 2)
	assert.Equal(t, "850", env.Transactions[0].Type)
	assert.Equal(t, "855", env.Transactions[1].Type)
	assert.Equal(t, "0002", env.Transactions[1].ControlNumber)
}
