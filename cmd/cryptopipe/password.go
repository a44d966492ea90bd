package main

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// resolvePassword returns the password bytes for a session: the contents
// of passwordFile if given, an interactive terminal prompt if stdin is a
// TTY and no file was given, or an empty password otherwise — matching the
// original CLI's "default password is empty" behavior while adding secure
// interactive entry as a supplemental ambient CLI concern.
func resolvePassword(passwordFile string) ([]byte, error) {
	if passwordFile != "" {
		return readFileOrEmpty(passwordFile)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, nil
	}

	fmt.Fprint(os.Stderr, "Password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}
	return pw, nil
}
