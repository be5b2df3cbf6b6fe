package review

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/term"
)

var errInterrupted = errors.New("interrupted")

// input reads learner responses. Single-key prompts use ReadKey; answers
// that need several tokens use ReadLine.
type input interface {
	ReadKey() (rune, error)
	ReadLine() (string, error)
}

// lineInput reads whole lines. ReadKey takes the first non-space character
// of the next line.
type lineInput struct {
	r *bufio.Reader
}

func newLineInput(r io.Reader) *lineInput {
	return &lineInput{r: bufio.NewReader(r)}
}

func (l *lineInput) ReadKey() (rune, error) {
	for {
		line, err := l.ReadLine()
		if err != nil {
			return 0, err
		}
		for _, r := range line {
			if !unicode.IsSpace(r) {
				return unicode.ToLower(r), nil
			}
		}
	}
}

func (l *lineInput) ReadLine() (string, error) {
	line, err := l.r.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// rawInput puts the terminal in raw mode for single keys so the learner does
// not need to press enter.
type rawInput struct {
	fd   int
	line *lineInput
}

func newRawInput(fd int, r io.Reader) *rawInput {
	return &rawInput{fd: fd, line: newLineInput(r)}
}

func (t *rawInput) ReadKey() (rune, error) {
	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return 0, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer term.Restore(t.fd, state)

	b, err := t.line.r.ReadByte()
	if err != nil {
		return 0, err
	}
	switch b {
	case 3, 4: // ctrl-c, ctrl-d
		return 0, errInterrupted
	}
	return unicode.ToLower(rune(b)), nil
}

func (t *rawInput) ReadLine() (string, error) {
	return t.line.ReadLine()
}
