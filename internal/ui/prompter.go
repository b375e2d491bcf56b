package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter reads free-text answers from the terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter reading from in and writing prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask prints the label and returns the trimmed answer.
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	return p.readLine()
}

// AskDefault prints the label with a default value; an empty answer
// returns the default.
func (p *Prompter) AskDefault(label, defaultValue string) (string, error) {
	fmt.Fprintf(p.out, "%s [%s]: ", label, defaultValue)
	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

// Confirm asks a yes/no question and loops until the answer is
// recognisable. An empty answer returns the default.
func (p *Prompter) Confirm(label string, defaultYes bool) (bool, error) {
	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}

	for {
		fmt.Fprintf(p.out, "%s [%s]: ", label, hint)
		answer, err := p.readLine()
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please answer y or n.")
	}
}

// readLine treats end of input as an empty answer so the Ask variants
// fall back to their defaults.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
