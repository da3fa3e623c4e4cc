package importer

import "strings"

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSigned is one signed column; negative values are expenses.
	amountSigned amountMode = iota
	// amountSplit is a pair of debit and credit columns.
	amountSplit
	// amountTyped is an unsigned amount plus an Income/Expense column.
	amountTyped
)

// Profile describes the column layout of a ledger CSV.
type Profile struct {
	Format     Format
	DateCol    string
	DescCol    string
	AmountMode amountMode
	AmountCol  string
	TypeCol    string
	DebitCol   string
	CreditCol  string
}

func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountSigned:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	case amountTyped:
		cols = append(cols, p.AmountCol, p.TypeCol)
	}

	return cols
}

// profiles is tried in order; more specific layouts come first.
var profiles = []Profile{
	{
		Format:     FormatRentbook,
		DateCol:    "date",
		DescCol:    "description",
		AmountMode: amountTyped,
		AmountCol:  "amount",
		TypeCol:    "type",
	},
	{
		Format:     FormatSplit,
		DateCol:    "date",
		DescCol:    "description",
		AmountMode: amountSplit,
		DebitCol:   "debit",
		CreditCol:  "credit",
	},
	{
		Format:     FormatSigned,
		DateCol:    "date",
		DescCol:    "description",
		AmountMode: amountSigned,
		AmountCol:  "amount",
	},
}

// headerName folds a header cell for matching.
func headerName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
