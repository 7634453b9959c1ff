package numeral

import (
	"fmt"
	"strings"
)

const (
	// MinValue is the smallest number that has a Roman representation.
	MinValue = 1
	// MaxValue is the largest number representable without symbols above M.
	MaxValue = 3999
)

// symbolTable is ordered by strictly decreasing value. Subtractive pairs are
// first-class entries so the greedy loop never special-cases them.
var symbolTable = []Symbol{
	{Value: 1000, Text: "M"},
	{Value: 900, Text: "CM"},
	{Value: 500, Text: "D"},
	{Value: 400, Text: "CD"},
	{Value: 100, Text: "C"},
	{Value: 90, Text: "XC"},
	{Value: 50, Text: "L"},
	{Value: 40, Text: "XL"},
	{Value: 10, Text: "X"},
	{Value: 9, Text: "IX"},
	{Value: 5, Text: "V"},
	{Value: 4, Text: "IV"},
	{Value: 1, Text: "I"},
}

type greedyConverter struct{}

// New creates a Converter that substitutes the largest fitting symbol first.
func New() Converter {
	return greedyConverter{}
}

// Symbols returns a copy of the symbol table in descending value order.
func Symbols() []Symbol {
	out := make([]Symbol, len(symbolTable))
	copy(out, symbolTable)
	return out
}

func (greedyConverter) Convert(n int) (string, error) {
	if err := Validate(n); err != nil {
		return "", err
	}

	var b strings.Builder
	remaining := n
	for cursor := 0; remaining > 0; {
		sym := symbolTable[cursor]
		if remaining >= sym.Value {
			b.WriteString(sym.Text)
			remaining -= sym.Value
			continue
		}
		cursor++
	}

	return b.String(), nil
}

// Validate reports whether n lies in the representable range.
func Validate(n int) error {
	if n < MinValue || n > MaxValue {
		return fmt.Errorf("convert %d: %w", n, ErrOutOfRange)
	}
	return nil
}

// IsNumeral reports whether s is non-empty and uses only Roman symbols.
// It does not check that s is in canonical form.
func IsNumeral(s string) bool {
	if s == "" {
		return false
	}
	return strings.Trim(s, "MDCLXVI") == ""
}
