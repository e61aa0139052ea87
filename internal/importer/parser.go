package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNoHeader = errors.New("no supported header found: expected issue, role and estimation columns")

// Row is one issue read from an export, before it is bound to a project.
type Row struct {
	Line        int
	IssueID     string
	Role        string
	Estimation  int // minutes
	PullRequest bool
}

// RowError reports a data row that could not be read.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Parser reads issue exports. The charset, the delimiter and the column
// layout are detected from the input.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse returns the valid rows and a RowError for each malformed one.
func (p *Parser) Parse(r io.Reader) ([]Row, []*RowError, error) {
	utf8r, charset, err := utf8Reader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("detecting encoding: %w", err)
	}

	br := bufio.NewReader(utf8r)

	comma, err := sniffDelimiter(br)
	if err != nil {
		return nil, nil, err
	}

	slog.Debug("parsing issue export", "charset", charset, "delimiter", string(comma))

	reader := csv.NewReader(br)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var (
		records [][]string
		lines   []int
	)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, nil, fmt.Errorf("reading csv: %w", err)
		}

		line, _ := reader.FieldPos(0)
		records = append(records, record)
		lines = append(lines, line)
	}

	profile, cols, headerIdx := detectProfile(records)
	if profile == nil {
		return nil, nil, ErrNoHeader
	}

	rows, rowErrs := parseRows(profile, cols, records[headerIdx+1:], lines[headerIdx+1:])

	return rows, rowErrs, nil
}

// sniffDelimiter picks ';' or ',', whichever is more frequent in the head of
// the input.
func sniffDelimiter(br *bufio.Reader) (rune, error) {
	head, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return 0, fmt.Errorf("peeking input: %w", err)
	}

	if bytes.Count(head, []byte{','}) > bytes.Count(head, []byte{';'}) {
		return ',', nil
	}

	return ';', nil
}

type colIndex map[string]int

func detectProfile(records [][]string) (*Profile, colIndex, int) {
	for rowIdx, record := range records {
		cols := make(colIndex)

		for i, cell := range record {
			if name := strings.ToLower(strings.TrimSpace(cell)); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
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

// parseRows reads the data rows. lines holds the 1-based line number of each
// record, used in error messages.
func parseRows(p *Profile, cols colIndex, records [][]string, lines []int) ([]Row, []*RowError) {
	var (
		rows []Row
		errs []*RowError
	)

	prIdx, hasPR := cols[p.PullRequestCol]

	for i, record := range records {
		line := lines[i]

		issue := strings.TrimPrefix(cellValue(record, cols[p.IssueCol]), "#")
		if issue == "" {
			continue
		}

		role := strings.ToUpper(cellValue(record, cols[p.RoleCol]))
		if role == "" {
			errs = append(errs, &RowError{Line: line, Err: errors.New("missing role")})
			continue
		}

		estimation, err := parseEstimation(cellValue(record, cols[p.EstimationCol]), p.Unit)
		if err != nil {
			errs = append(errs, &RowError{Line: line, Err: err})
			continue
		}

		rows = append(rows, Row{
			Line:        line,
			IssueID:     issue,
			Role:        role,
			Estimation:  estimation,
			PullRequest: hasPR && p.isPullRequest(cellValue(record, prIdx)),
		})
	}

	return rows, errs
}

// parseEstimation returns the estimation in minutes.
func parseEstimation(s string, unit estimationUnit) (int, error) {
	if s == "" {
		return 0, errors.New("missing estimation")
	}

	switch unit {
	case hours:
		h, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
		if err != nil {
			return 0, fmt.Errorf("invalid estimation %q: %w", s, err)
		}

		if h.IsNegative() {
			return 0, fmt.Errorf("negative estimation %q", s)
		}

		return int(h.Mul(decimal.NewFromInt(60)).Round(0).IntPart()), nil
	default:
		if n, err := strconv.Atoi(s); err == nil {
			if n < 0 {
				return 0, fmt.Errorf("negative estimation %q", s)
			}

			return n, nil
		}

		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("invalid estimation %q: %w", s, err)
		}

		if d < 0 {
			return 0, fmt.Errorf("negative estimation %q", s)
		}

		return int(d.Round(time.Minute) / time.Minute), nil
	}
}

func cellValue(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[idx])
}
