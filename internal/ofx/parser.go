// Package ofx imports OFX/QFX bank statements as expense records.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/ledgerline/cadence/internal/common"
	"github.com/ledgerline/cadence/internal/model"
)

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// Fix mixed-case SEVERITY values (should be INFO, WARN, or ERROR)
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, func(match string) string {
		return strings.ToUpper(match)
	})

	// Fix missing closing angle brackets in SGML-style OFX files
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile parses an OFX/QFX file and returns the debits as expenses.
// Credits (deposits, refunds) are skipped: the detector only reasons about
// money going out.
func (p *Parser) ParseFile(_ context.Context, reader io.Reader) ([]model.Expense, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	processedContent := p.preprocessOFX(string(content))

	resp, err := ofxgo.ParseResponse(strings.NewReader(processedContent))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidImport, err)
	}

	var expenses []model.Expense
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			expenses = append(expenses, p.processTransactions(stmt.BankTranList)...)
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			expenses = append(expenses, p.processTransactions(stmt.BankTranList)...)
		}
	}

	slog.Info("Parsed OFX file",
		"expenses", len(expenses),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return expenses, nil
}

// processTransactions converts the debit entries of a transaction list.
func (p *Parser) processTransactions(list *ofxgo.TransactionList) []model.Expense {
	if list == nil {
		return nil
	}

	var expenses []model.Expense
	for _, ofxTx := range list.Transactions {
		amount, _ := ofxTx.TrnAmt.Float64()
		if amount >= 0 {
			// OFX uses negative amounts for debits; anything else is money in.
			continue
		}

		expense := model.Expense{
			ID:     string(ofxTx.FiTID),
			Date:   ofxTx.DtPosted.Time,
			Title:  p.extractTitle(ofxTx),
			Amount: -amount,
		}
		if expense.ID == "" {
			expense.ID = expense.GenerateID()
		}

		expenses = append(expenses, expense)
	}

	return expenses
}

// extractTitle tries to get a clean payee name from OFX data.
func (p *Parser) extractTitle(tx ofxgo.Transaction) string {
	// Prefer PAYEE if available (cleaner merchant name)
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)

	// Use MEMO field if NAME is generic
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}

	name = strings.TrimSpace(name)

	// Remove common processor prefixes
	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}

	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Clean up date patterns like "MM/DD " at the beginning
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT",
		"CREDIT",
		"PURCHASE",
		"PAYMENT",
		"POS TRANSACTION",
		"CARD PURCHASE",
	}

	upperName := strings.ToUpper(name)
	for _, g := range generic {
		if upperName == g {
			return true
		}
	}
	return false
}
