package ofx

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/cadence/internal/common"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-15.99
<FITID>2024011501
<NAME>NETFLIX.COM
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>-125.00
<FITID>2024012001
<NAME>POS PURCHASE Whole Foods Market
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEP
<DTPOSTED>20240125120000[0:GMT]
<TRNAMT>2500.00
<FITID>2024012501
<NAME>PAYROLL DEPOSIT
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>USD
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240110120000[0:GMT]
<TRNAMT>-9.99
<FITID>CC2024011001
<NAME>SPOTIFY USA
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-40.00
<FITID>CC2024011501
<NAME>FITLIFE GYM MEMBERSHIP
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-500.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParseFile(t *testing.T) {
	tests := []struct {
		name          string
		ofxData       string
		expectedCount int
		expectedError bool
	}{
		{
			name:          "valid bank statement",
			ofxData:       sampleBankOFX,
			expectedCount: 2, // the payroll deposit is not an expense
			expectedError: false,
		},
		{
			name:          "valid credit card statement",
			ofxData:       sampleCreditCardOFX,
			expectedCount: 2,
			expectedError: false,
		},
		{
			name:          "invalid OFX data",
			ofxData:       "not valid OFX",
			expectedCount: 0,
			expectedError: true,
		},
		{
			name:          "empty OFX",
			ofxData:       "",
			expectedCount: 0,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewParser()
			reader := strings.NewReader(tt.ofxData)

			expenses, err := parser.ParseFile(context.Background(), reader)

			if tt.expectedError {
				assert.ErrorIs(t, err, common.ErrInvalidImport)
			} else {
				require.NoError(t, err)
				assert.Len(t, expenses, tt.expectedCount)
			}
		})
	}
}

func TestParseBankExpenses(t *testing.T) {
	parser := NewParser()
	reader := strings.NewReader(sampleBankOFX)

	expenses, err := parser.ParseFile(context.Background(), reader)
	require.NoError(t, err)
	require.Len(t, expenses, 2)

	netflix := expenses[0]
	assert.Equal(t, "2024011501", netflix.ID)
	assert.Equal(t, "NETFLIX.COM", netflix.Title)
	assert.InDelta(t, 15.99, netflix.Amount, 0.001, "debits come back as positive amounts")
	assert.False(t, netflix.IsRecurring)
	// Compare date components, ignoring timezone
	assert.Equal(t, 2024, netflix.Date.Year())
	assert.Equal(t, time.January, netflix.Date.Month())
	assert.Equal(t, 15, netflix.Date.Day())

	groceries := expenses[1]
	assert.Equal(t, "Whole Foods Market", groceries.Title, "processor prefix is stripped")
	assert.InDelta(t, 125.00, groceries.Amount, 0.001)
}

func TestParseCreditCardExpenses(t *testing.T) {
	parser := NewParser()
	reader := strings.NewReader(sampleCreditCardOFX)

	expenses, err := parser.ParseFile(context.Background(), reader)
	require.NoError(t, err)
	require.Len(t, expenses, 2)

	assert.Equal(t, "CC2024011001", expenses[0].ID)
	assert.Equal(t, "SPOTIFY USA", expenses[0].Title)
	assert.InDelta(t, 9.99, expenses[0].Amount, 0.001)
	assert.Equal(t, "FITLIFE GYM MEMBERSHIP", expenses[1].Title)
}

func TestPreprocessOFX(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "fixes mixed-case severity",
			input:    "<SEVERITY>Info</SEVERITY>",
			expected: "<SEVERITY>INFO</SEVERITY>",
		},
		{
			name:     "fixes missing closing bracket",
			input:    "<STMTTRN\n<TRNTYPE>DEBIT",
			expected: "<STMTTRN>\n<TRNTYPE>DEBIT",
		},
		{
			name:     "strips leading whitespace",
			input:    "\n\n  OFXHEADER:100",
			expected: "OFXHEADER:100",
		},
		{
			name:     "leaves well-formed content alone",
			input:    "<NAME>NETFLIX.COM",
			expected: "<NAME>NETFLIX.COM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parser.preprocessOFX(tt.input))
		})
	}
}

func TestExtractTitle(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name     string
		tx       ofxgo.Transaction
		expected string
	}{
		{
			name: "prefers payee name",
			tx: ofxgo.Transaction{
				Name:  ofxgo.String("RAW DESCRIPTOR 123"),
				Payee: &ofxgo.Payee{Name: ofxgo.String("Netflix")},
			},
			expected: "Netflix",
		},
		{
			name: "falls back to memo for generic names",
			tx: ofxgo.Transaction{
				Name: ofxgo.String("DEBIT"),
				Memo: ofxgo.String("Monthly Gym Membership"),
			},
			expected: "Monthly Gym Membership",
		},
		{
			name: "keeps specific name over memo",
			tx: ofxgo.Transaction{
				Name: ofxgo.String("SPOTIFY USA"),
				Memo: ofxgo.String("something else"),
			},
			expected: "SPOTIFY USA",
		},
		{
			name: "strips processor prefix",
			tx: ofxgo.Transaction{
				Name: ofxgo.String("CHECK CARD Whole Foods"),
			},
			expected: "Whole Foods",
		},
		{
			name: "strips leading date pattern",
			tx: ofxgo.Transaction{
				Name: ofxgo.String("01/15 Blue Bottle Coffee"),
			},
			expected: "Blue Bottle Coffee",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parser.extractTitle(tt.tx))
		})
	}
}

func TestIsGenericDescription(t *testing.T) {
	assert.True(t, isGenericDescription("DEBIT"))
	assert.True(t, isGenericDescription("purchase"))
	assert.True(t, isGenericDescription("Card Purchase"))
	assert.False(t, isGenericDescription("NETFLIX.COM"))
	assert.False(t, isGenericDescription("DEBIT NETFLIX"))
}
