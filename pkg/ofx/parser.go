// Package ofx turns OFX/QFX bank and credit card statements into
// transaction rows ready for a bulk import.
package ofx

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/amirasaad/finhealth/pkg/domain/transaction"
	"github.com/shopspring/decimal"
)

// DefaultCategory is assigned when the statement gives no hint.
const DefaultCategory = "Uncategorized"

// ErrNoStatements is returned for a file with neither bank nor credit card statements.
var ErrNoStatements = errors.New("ofx: no statements found")

// Entry is one statement line. Amount is always positive; the sign of the
// original amount selects Type.
type Entry struct {
	FITID       string
	Account     string
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	Category    string
	Type        transaction.Type
	CheckNumber string
}

var (
	severityRe = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	openTagRe  = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	datePrefix = regexp.MustCompile(`^\d{2}/\d{2}\s+`)
)

var categoryByTrnType = map[string]string{
	"INT":    "Interest",
	"DIV":    "Interest",
	"FEE":    "Bank Fees",
	"SRVCHG": "Bank Fees",
	"ATM":    "Cash",
	"CASH":   "Cash",
	"CHECK":  "Checks",
}

var descriptionPrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
}

// normalize repairs the SGML quirks some banks emit.
func normalize(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRe.ReplaceAllStringFunc(content, strings.ToUpper)
	return openTagRe.ReplaceAllString(content, "$1>")
}

// Parse reads a whole statement file. Lines repeated with the same FITID
// within one account are returned once.
func Parse(r io.Reader) ([]Entry, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read ofx: %w", err)
	}
	resp, err := ofxgo.ParseResponse(strings.NewReader(normalize(string(content))))
	if err != nil {
		return nil, fmt.Errorf("parse ofx: %w", err)
	}

	var (
		entries    []Entry
		statements int
		seen       = make(map[string]bool)
	)
	add := func(account string, list *ofxgo.TransactionList) {
		statements++
		if list == nil {
			return
		}
		for _, t := range list.Transactions {
			e := convert(t, account)
			key := account + "/" + e.FITID
			if e.FITID != "" && seen[key] {
				continue
			}
			seen[key] = true
			entries = append(entries, e)
		}
	}
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			add(string(stmt.BankAcctFrom.AcctID), stmt.BankTranList)
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			add(string(stmt.CCAcctFrom.AcctID), stmt.BankTranList)
		}
	}
	if statements == 0 {
		return nil, ErrNoStatements
	}
	return entries, nil
}

func convert(t ofxgo.Transaction, account string) Entry {
	amount := decimal.NewFromBigRat(&t.TrnAmt.Rat, 2)
	typ := transaction.Income
	if amount.IsNegative() {
		typ = transaction.Expense
		amount = amount.Neg()
	}
	trnType := t.TrnType.String()
	category, ok := categoryByTrnType[trnType]
	if !ok {
		category = DefaultCategory
	}
	return Entry{
		FITID:       string(t.FiTID),
		Account:     account,
		Date:        t.DtPosted.UTC(),
		Amount:      amount,
		Description: describe(t),
		Category:    category,
		Type:        typ,
		CheckNumber: string(t.CheckNum),
	}
}

// describe picks the payee, then the name, falling back to the memo for
// generic names, and strips card-network prefixes.
func describe(t ofxgo.Transaction) string {
	if t.Payee != nil && t.Payee.Name != "" {
		return strings.TrimSpace(string(t.Payee.Name))
	}
	name := strings.TrimSpace(string(t.Name))
	if t.Memo != "" && isGeneric(name) {
		name = strings.TrimSpace(string(t.Memo))
	}
	upper := strings.ToUpper(name)
	for _, p := range descriptionPrefixes {
		if strings.HasPrefix(upper, p) {
			name = name[len(p):]
			break
		}
	}
	name = datePrefix.ReplaceAllString(name, "")
	if name == "" {
		name = t.TrnType.String()
	}
	return name
}

func isGeneric(name string) bool {
	switch strings.ToUpper(name) {
	case "", "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}
