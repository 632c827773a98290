package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	apperrors "github.com/agbru/frankestudy/internal/errors"
)

// The interactive questions, asked in this order.
const (
	GeneratePrompt = "Do you want to generate all figures for FrankeFunction? (y/n)"
	ShowPrompt     = "Do you want to show all figures? (y/n)"
)

// WrongInputMessage is printed when an answer is neither "y" nor "n".
const WrongInputMessage = "Wrong input, must be 'y' or 'n'. Exiting run. "

// GetBool interprets a y/n answer. Anything other than exactly "y" or "n"
// is an InputError carrying WrongInputMessage.
func GetBool(answer string) (bool, error) {
	switch answer {
	case "y":
		return true, nil
	case "n":
		return false, nil
	}
	return false, apperrors.InputError{Answer: answer, Message: WrongInputMessage}
}

// AskBool writes question to out, reads one line from in and interprets it
// with GetBool. Only the line terminator is stripped, so " y" is rejected.
func AskBool(in *bufio.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprint(out, question)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	return GetBool(strings.TrimRight(line, "\r\n"))
}

// Answers holds the outcome of the two prompts.
type Answers struct {
	Generate bool
	Show     bool
}

// AskAnswers runs the prompt sequence. The show question is only asked
// when generation was accepted.
func AskAnswers(in io.Reader, out io.Writer) (Answers, error) {
	r := bufio.NewReader(in)
	generate, err := AskBool(r, out, GeneratePrompt)
	if err != nil || !generate {
		return Answers{}, err
	}
	show, err := AskBool(r, out, ShowPrompt)
	if err != nil {
		return Answers{}, err
	}
	fmt.Fprintln(out)
	return Answers{Generate: true, Show: show}, nil
}
