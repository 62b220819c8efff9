package ofx

import (
	"strings"
	"testing"
	"time"

	"github.com/amirasaad/finhealth/pkg/domain/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = `OFXHEADER:100
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
<DTSERVER>20240415120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
`

const bankStatement = header + `<BANKMSGSRSV1>
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
<DTSTART>20240401120000[0:GMT]
<DTEND>20240430120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240402120000[0:GMT]
<TRNAMT>-25.50
<FITID>A1
<NAME>POS PURCHASE 04/02 GROCER
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240401120000[0:GMT]
<TRNAMT>2000.00
<FITID>A2
<NAME>ACME PAYROLL
</STMTTRN>
<STMTTRN>
<TRNTYPE>FEE
<DTPOSTED>20240405120000[0:GMT]
<TRNAMT>-3.00
<FITID>A3
<NAME>DEBIT
<MEMO>Monthly maintenance
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240402120000[0:GMT]
<TRNAMT>-25.50
<FITID>A1
<NAME>POS PURCHASE 04/02 GROCER
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240430120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const cardStatement = header + `<CREDITCARDMSGSRSV1>
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
<DTSTART>20240401120000[0:GMT]
<DTEND>20240430120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240410120000[0:GMT]
<TRNAMT>-15.00
<FITID>CC1
<NAME>NETFLIX.COM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-15.00
<DTASOF>20240430120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParse_BankStatement(t *testing.T) {
	entries, err := Parse(strings.NewReader(bankStatement))
	require.NoError(t, err)
	require.Len(t, entries, 3, "repeated FITID is dropped")

	grocer := entries[0]
	assert.Equal(t, "A1", grocer.FITID)
	assert.Equal(t, "1234567890", grocer.Account)
	assert.Equal(t, "GROCER", grocer.Description)
	assert.Equal(t, "25.5", grocer.Amount.String())
	assert.Equal(t, transaction.Expense, grocer.Type)
	assert.Equal(t, DefaultCategory, grocer.Category)
	assert.Equal(t, time.Date(2024, time.April, 2, 12, 0, 0, 0, time.UTC), grocer.Date)

	salary := entries[1]
	assert.Equal(t, transaction.Income, salary.Type)
	assert.Equal(t, "2000", salary.Amount.String())

	fee := entries[2]
	assert.Equal(t, "Bank Fees", fee.Category)
	assert.Equal(t, "Monthly maintenance", fee.Description)
}

func TestParse_CreditCardStatement(t *testing.T) {
	entries, err := Parse(strings.NewReader(cardStatement))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "NETFLIX.COM", entries[0].Description)
	assert.Equal(t, transaction.Expense, entries[0].Type)
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "not valid OFX"} {
		_, err := Parse(strings.NewReader(input))
		assert.Error(t, err, input)
	}
}

func TestNormalize(t *testing.T) {
	in := "\n\n<SEVERITY>Warn</SEVERITY>\n<CODE\n"
	assert.Equal(t, "<SEVERITY>WARN</SEVERITY>\n<CODE>\n", normalize(in))
}
