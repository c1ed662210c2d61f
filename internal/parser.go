package internal

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ParseResult carries the charges from one export plus per-row problems.
// Charges hold only negative-amount rows; payments and refunds are counted
// in Dropped. Skipped lists malformed rows so callers can report them
// instead of losing them silently.
type ParseResult struct {
	Charges []Transaction
	Skipped []SkippedRow
	Dropped int // zero/positive rows: payments and refunds, not charges
}

// SkippedRow records a row the parser could not use.
type SkippedRow struct {
	Row    int // 1-based row number in the input file
	Reason string
}

// Parser parses a transaction export into a ParseResult.
type Parser interface {
	Parse(path string) (*ParseResult, error)
}

// ParserFunc is a function that implements Parser.
type ParserFunc func(path string) (*ParseResult, error)

func (f ParserFunc) Parse(path string) (*ParseResult, error) {
	return f(path)
}

// parsers is the registry of available parsers
var parsers = map[string]Parser{}

// RegisterParser registers a parser with the given name.
func RegisterParser(name string, p Parser) {
	parsers[name] = p
}

// GetParser returns the parser for the given source type.
func GetParser(source string) (Parser, error) {
	p, ok := parsers[source]
	if !ok {
		return nil, fmt.Errorf("unknown source type: %s (available: %v)", source, AvailableSources())
	}
	return p, nil
}

// AvailableSources returns the registered source types, sorted.
func AvailableSources() []string {
	var sources []string
	for name := range parsers {
		sources = append(sources, name)
	}
	sort.Strings(sources)
	return sources
}

// IsKnownParser returns true if the name is a registered parser.
func IsKnownParser(name string) bool {
	_, ok := parsers[name]
	return ok
}

// DetectSource infers the source type from the file extension.
// Spreadsheet exports map to "xlsx"; everything else is treated as the
// credit card CSV format.
func DetectSource(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return SourceXLSX
	}
	return SourceCSV
}
