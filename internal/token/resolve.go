// Package token resolves an API auth token from multiple sources.
//
// Priority order:
//  1. Explicit flag value (--auth)
//  2. .env file in the working directory (API_TOKEN=... / DEVKIT_TOKEN=...)
//  3. Environment variables ($API_TOKEN / $DEVKIT_TOKEN)
//  4. Interactive masked prompt (terminal)
package token

import (
	"fmt"
	"os"
	"syscall"

	"github.com/devkit-cli/devkit/internal/envfile"
	"github.com/devkit-cli/devkit/internal/prompt"
	"golang.org/x/term"
)

// envKeys are checked, in order, in both the env file and the process env.
var envKeys = []string{"API_TOKEN", "DEVKIT_TOKEN"}

// ResolveResult contains the resolved token and its source.
type ResolveResult struct {
	Token  string
	Source string // "flag", "envfile", "environment", "prompt"
}

// Resolve attempts to find an auth token using the priority chain.
// dir and envFile locate the .env file to consult (envFile defaults to ".env").
// Returns an error only if no token can be obtained.
func Resolve(flagValue, dir, envFile string) (*ResolveResult, error) {
	// 1. Explicit flag
	if flagValue != "" {
		return &ResolveResult{Token: flagValue, Source: "flag"}, nil
	}

	// 2. .env file
	if envFile == "" {
		envFile = ".env"
	}
	if store, err := envfile.Load(dir, envFile); err == nil {
		for _, key := range envKeys {
			if v, ok := store.Get(key); ok && v != "" {
				return &ResolveResult{Token: v, Source: "envfile"}, nil
			}
		}
	}

	// 3. Environment variables
	for _, key := range envKeys {
		if v := os.Getenv(key); v != "" {
			return &ResolveResult{Token: v, Source: "environment"}, nil
		}
	}

	// 4. Interactive masked prompt
	if !term.IsTerminal(int(syscall.Stdin)) {
		return nil, fmt.Errorf("no auth token found and stdin is not a terminal.\n"+
			"Provide one via --auth, %s in %s, or $API_TOKEN", envKeys[0], envFile)
	}

	tok, err := prompt.ReadSecret("API auth token")
	if err != nil {
		return nil, err
	}
	if tok == "" {
		return nil, fmt.Errorf("no token provided")
	}
	return &ResolveResult{Token: tok, Source: "prompt"}, nil
}
