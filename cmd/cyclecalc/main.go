// Command cyclecalc detects cycles in deterministic discrete-state
// sequences and resolves states at arbitrary iteration indices.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/agbru/cyclecalc/internal/app"
	apperrors "github.com/agbru/cyclecalc/internal/errors"
)

func main() {
	// --version works in any position, before any config validation.
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		os.Exit(apperrors.ExitSuccess)
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(apperrors.ExitErrorConfig)
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
