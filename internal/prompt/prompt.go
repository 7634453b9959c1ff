// Package prompt implements the interactive surface: it asks for one number,
// converts it and prints the numeral.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/eugenenazirov/roman-numerals/internal/numeral"
)

const (
	// Prompt is written before reading input.
	Prompt = "Enter number: "
	// ResultPrefix precedes the converted numeral in the output.
	ResultPrefix = "Roman Numeral: "
)

// ErrInvalidInput is returned when the input does not hold an integer.
var ErrInvalidInput = errors.New("invalid integer input")

// Run prompts on out, reads a single integer token from in and writes the
// converted numeral. Only the first token is used.
func Run(in io.Reader, out io.Writer, conv numeral.Converter) error {
	if _, err := io.WriteString(out, Prompt); err != nil {
		return fmt.Errorf("write prompt: %w", err)
	}

	n, err := ReadInt(in)
	if err != nil {
		return err
	}

	result, err := conv.Convert(n)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(out, "%s%s\n", ResultPrefix, result); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// ReadInt reads the first whitespace-delimited token from in and parses it as
// a base-10 integer.
func ReadInt(in io.Reader) (int, error) {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)

	if !scanner.Scan() {
		err := scanner.Err()
		if errors.Is(err, bufio.ErrTooLong) {
			return 0, fmt.Errorf("%w: token too long", ErrInvalidInput)
		}
		if err != nil {
			return 0, fmt.Errorf("read input: %w", err)
		}
		return 0, fmt.Errorf("%w: no input", ErrInvalidInput)
	}

	token := scanner.Text()
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInput, token)
	}
	return n, nil
}
