// Package importer turns ledger CSV exports into ledger entry params.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/MrJamesThe3rd/rentbook/internal/encoding"
	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

// Format names a supported column layout.
type Format string

const (
	// FormatAuto tries every known layout.
	FormatAuto     Format = ""
	FormatRentbook Format = "rentbook"
	FormatSigned   Format = "signed"
	FormatSplit    Format = "split"
)

// Result is the outcome of parsing one file.
type Result struct {
	Format  Format
	Charset string
	Entries []rental.LedgerParams
	Skipped int
}

var (
	delimiters  = []rune{',', ';', '\t'}
	dateLayouts = []string{"2006-01-02", "02-01-2006", "02/01/2006", "2006/01/02", "02.01.2006"}
)

type Service struct {
	profiles []Profile
}

func NewService() *Service {
	return &Service{profiles: profiles}
}

// Parse reads a CSV, finds the header row of a supported layout and returns
// one entry per data row. Rows without a parseable date or with a zero amount
// are skipped; a dated row without a description is an error.
func (s *Service) Parse(r io.Reader, format Format) (*Result, error) {
	utf8r, charset, err := enc.Detect(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	raw, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	candidates, err := s.candidates(format)
	if err != nil {
		return nil, err
	}

	for _, comma := range delimiters {
		rows, err := readRows(raw, comma)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(candidates, rows)
		if profile == nil {
			continue
		}

		res, err := parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
		if err != nil {
			return nil, err
		}

		res.Charset = charset

		return res, nil
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return &Result{Format: format, Charset: charset}, nil
	}

	return nil, fmt.Errorf("%w: no supported ledger columns found", rental.ErrValidation)
}

func (s *Service) candidates(format Format) ([]Profile, error) {
	if format == FormatAuto {
		return s.profiles, nil
	}

	for _, p := range s.profiles {
		if p.Format == format {
			return []Profile{p}, nil
		}
	}

	return nil, fmt.Errorf("%w: unknown import format %q", rental.ErrValidation, format)
}

func readRows(raw []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return rows, nil
}

// colIndex maps folded header names to their position in the row.
type colIndex map[string]int

func detectProfile(candidates []Profile, rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := headerName(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range candidates {
			if matchesProfile(&candidates[i], cols) {
				return &candidates[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) (*Result, error) {
	res := &Result{Format: p.Format}

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		date, ok := parseDate(cellValue(row, cols[p.DateCol]))
		if !ok {
			res.Skipped++
			continue
		}

		desc := cellValue(row, cols[p.DescCol])
		if desc == "" {
			return nil, fmt.Errorf("%w: row %d: missing description", rental.ErrValidation, rowNum)
		}

		amount, typ, ok, err := rowAmount(p, cols, row)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", rental.ErrValidation, rowNum, err)
		}

		if !ok {
			res.Skipped++
			continue
		}

		res.Entries = append(res.Entries, rental.LedgerParams{
			Date:        date,
			Description: desc,
			Amount:      amount,
			Type:        typ,
		})
	}

	return res, nil
}

func parseDate(s string) (rental.Date, bool) {
	if s == "" {
		return rental.Date{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return rental.DateOf(t), true
		}
	}

	return rental.Date{}, false
}

// rowAmount returns ok=false for rows that carry no amount.
func rowAmount(p *Profile, cols colIndex, row []string) (int64, rental.LedgerType, bool, error) {
	switch p.AmountMode {
	case amountSigned:
		return signedAmount(cellValue(row, cols[p.AmountCol]))

	case amountSplit:
		debit, _, ok, err := signedAmount(cellValue(row, cols[p.DebitCol]))
		if err != nil || ok {
			return debit, rental.LedgerExpense, ok, err
		}

		credit, _, ok, err := signedAmount(cellValue(row, cols[p.CreditCol]))
		if err != nil || !ok {
			return 0, "", false, err
		}

		return credit, rental.LedgerIncome, true, nil

	case amountTyped:
		cents, _, ok, err := signedAmount(cellValue(row, cols[p.AmountCol]))
		if err != nil || !ok {
			return 0, "", ok, err
		}

		typ, err := ledgerType(cellValue(row, cols[p.TypeCol]))
		if err != nil {
			return 0, "", false, err
		}

		return cents, typ, true, nil
	}

	return 0, "", false, nil
}

// signedAmount parses a signed amount cell into an absolute value and the
// direction it implies.
func signedAmount(s string) (int64, rental.LedgerType, bool, error) {
	if s == "" {
		return 0, "", false, nil
	}

	cents, err := parseAmount(s)
	if err != nil {
		return 0, "", false, err
	}

	switch {
	case cents < 0:
		return -cents, rental.LedgerExpense, true, nil
	case cents > 0:
		return cents, rental.LedgerIncome, true, nil
	}

	return 0, "", false, nil
}

func ledgerType(s string) (rental.LedgerType, error) {
	switch strings.ToLower(s) {
	case "income":
		return rental.LedgerIncome, nil
	case "expense":
		return rental.LedgerExpense, nil
	}

	return "", fmt.Errorf("unknown ledger type %q", s)
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
