package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// affirmatives is the fixed vocabulary of answers that mean "yes".
// Matching is exact and case-sensitive: anything else, including the empty
// string, is "no". An unrecognized answer is always treated as a refusal.
var affirmatives = []string{"y", "Y", "yes", "Yes", "YES"}

// IsAffirmative reports whether the answer exactly matches one of the fixed
// affirmative tokens. No trimming or case folding is applied.
func IsAffirmative(answer string) bool {
	for _, token := range affirmatives {
		if answer == token {
			return true
		}
	}
	return false
}

// Asker is a source of answers to yes/no questions. The interactive
// implementation reads the terminal; the fixed implementation returns a
// canned answer so non-interactive runs (CI) never block on a prompt.
type Asker interface {
	Ask(question string) (string, error)
}

// StdinAsker prints the question and reads one line from its input.
type StdinAsker struct {
	in *bufio.Reader
}

// NewStdinAsker returns an Asker reading from standard input.
func NewStdinAsker() *StdinAsker {
	return &StdinAsker{in: bufio.NewReader(os.Stdin)}
}

// NewReaderAsker returns an Asker reading from r.
func NewReaderAsker(r io.Reader) *StdinAsker {
	return &StdinAsker{in: bufio.NewReader(r)}
}

// Ask prints the question and returns the next input line without its
// trailing newline. EOF with no input yields an empty answer, not an error,
// so a closed stdin behaves like declining.
func (a *StdinAsker) Ask(question string) (string, error) {
	fmt.Print(question)
	line, err := a.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

// FixedAsker answers every question with the same canned string.
type FixedAsker struct {
	Answer string
}

// Ask returns the canned answer without prompting.
func (a FixedAsker) Ask(string) (string, error) {
	return a.Answer, nil
}
