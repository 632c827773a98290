package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	apperrors "github.com/agbru/frankestudy/internal/errors"
)

func TestGetBool(t *testing.T) {
	t.Parallel()
	tests := []struct {
		answer  string
		want    bool
		wantErr bool
	}{
		{"y", true, false},
		{"n", false, false},
		{"Y", false, true},
		{"yes", false, true},
		{"", false, true},
		{" n", false, true},
		{"x", false, true},
	}
	for _, tt := range tests {
		t.Run("answer "+tt.answer, func(t *testing.T) {
			t.Parallel()
			got, err := GetBool(tt.answer)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetBool(%q) error = %v, wantErr %v", tt.answer, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("GetBool(%q) = %v, want %v", tt.answer, got, tt.want)
			}
			if err == nil {
				return
			}
			var inputErr apperrors.InputError
			if !errors.As(err, &inputErr) || inputErr.Answer != tt.answer {
				t.Errorf("error %v is not an InputError for %q", err, tt.answer)
			}
			if err.Error() != WrongInputMessage {
				t.Errorf("message = %q, want %q", err.Error(), WrongInputMessage)
			}
			if apperrors.ExitCode(err) != apperrors.ExitErrorInput {
				t.Errorf("ExitCode() = %d, want %d", apperrors.ExitCode(err), apperrors.ExitErrorInput)
			}
		})
	}
}

func TestAskBoolStripsLineEndings(t *testing.T) {
	t.Parallel()
	for _, input := range []string{"y\n", "y\r\n", "y"} {
		var out bytes.Buffer
		got, err := AskBool(bufio.NewReader(strings.NewReader(input)), &out, "Q?")
		if err != nil || !got {
			t.Errorf("AskBool(%q) = %v, %v; want true, nil", input, got, err)
		}
		if out.String() != "Q?" {
			t.Errorf("prompt written as %q", out.String())
		}
	}
}

func TestAskAnswers(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		input      string
		want       Answers
		wantErr    bool
		wantPrompt string
	}{
		{"generate and show", "y\ny\n", Answers{Generate: true, Show: true}, false, GeneratePrompt + ShowPrompt + "\n"},
		{"generate only", "y\nn\n", Answers{Generate: true}, false, GeneratePrompt + ShowPrompt + "\n"},
		{"decline", "n\n", Answers{}, false, GeneratePrompt},
		{"wrong first answer", "x\n", Answers{}, true, GeneratePrompt},
		{"wrong second answer", "y\nmaybe\n", Answers{}, true, GeneratePrompt + ShowPrompt},
		{"no input", "", Answers{}, true, GeneratePrompt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			got, err := AskAnswers(strings.NewReader(tt.input), &out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AskAnswers() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("AskAnswers() = %+v, want %+v", got, tt.want)
			}
			if out.String() != tt.wantPrompt {
				t.Errorf("output = %q, want %q", out.String(), tt.wantPrompt)
			}
		})
	}
}
