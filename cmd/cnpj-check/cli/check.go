// Package cli implements the cnpj-check command.
package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/consulta-cnpj/consulta-cnpj/internal/cnpj"
)

// CheckOptions defines available flags for the check command.
type CheckOptions struct {
	Complete   bool
	JSONOutput bool
	Args       []string
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
}

// CheckResult describes one line of JSON output.
type CheckResult struct {
	Input     string `json:"input"`
	Formatted string `json:"formatted,omitempty"`
	Valid     bool   `json:"valid"`
	Reason    string `json:"reason,omitempty"`
}

// Check validates (or completes) every identifier from Args, or from Stdin
// when no arguments are given. It returns 0 when every input passed, 10 when
// any failed and 1 on usage or I/O errors.
func Check(opts CheckOptions) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	inputs := opts.Args
	if len(inputs) == 0 {
		if opts.Stdin == nil {
			_, _ = fmt.Fprintln(opts.Stderr, "cnpj-check: no input")
			return 1
		}
		var err error
		inputs, err = readLines(opts.Stdin)
		if err != nil {
			_, _ = fmt.Fprintf(opts.Stderr, "cnpj-check: read stdin: %v\n", err)
			return 1
		}
	}

	enc := json.NewEncoder(opts.Stdout)
	failed := false
	for _, input := range inputs {
		res := evaluate(input, opts.Complete)
		if !res.Valid {
			failed = true
		}
		if opts.JSONOutput {
			if err := enc.Encode(res); err != nil {
				_, _ = fmt.Fprintf(opts.Stderr, "cnpj-check: encode json: %v\n", err)
				return 1
			}
			continue
		}
		renderHuman(opts.Stdout, res)
	}
	if failed {
		return 10
	}
	return 0
}

func evaluate(input string, complete bool) CheckResult {
	res := CheckResult{Input: input}
	if complete {
		full, err := cnpj.Complete(input)
		if err != nil {
			res.Reason = err.Error()
			return res
		}
		res.Formatted = cnpj.Format(full)
		res.Valid = true
		return res
	}
	if err := cnpj.Validate(input); err != nil {
		res.Reason = err.Error()
		return res
	}
	res.Formatted = cnpj.Format(cnpj.Clean(input))
	res.Valid = true
	return res
}

func renderHuman(w io.Writer, res CheckResult) {
	if res.Valid {
		_, _ = fmt.Fprintf(w, "%s\tvalid\n", res.Formatted)
		return
	}
	_, _ = fmt.Fprintf(w, "%s\tinvalid\t%s\n", res.Input, res.Reason)
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
