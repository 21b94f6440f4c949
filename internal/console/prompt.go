// Package console handles the interactive province prompt.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PromptRegion writes the question and the accepted codes to out, then reads a
// single whitespace-delimited token from in and returns it uppercased. An empty
// input yields "", which callers treat as an unrecognised region.
func PromptRegion(in io.Reader, out io.Writer, codes []string) (string, error) {
	if _, err := fmt.Fprintln(out, "Please enter your province/territory of residence:"); err != nil {
		return "", err
	}
	if _, err := fmt.Fprintln(out, strings.Join(codes, ", ")); err != nil {
		return "", err
	}

	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("read region: %w", err)
		}
		return "", nil
	}
	return strings.ToUpper(scanner.Text()), nil
}
