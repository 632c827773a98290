package main

import (
	"context"
	"os"

	"github.com/agbru/frankestudy/internal/app"
	apperrors "github.com/agbru/frankestudy/internal/errors"
)

func main() {
	application, err := app.New(os.Args, os.Stderr, app.WithTerminal(os.Stdout))
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.ExitCode(err))
	}

	exitCode := application.Run(context.Background(), os.Stdout)
	os.Exit(exitCode)
}
