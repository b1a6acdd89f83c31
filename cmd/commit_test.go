package cmd

import (
	"strings"
	"testing"
)

func resetCommitFlags(t *testing.T) {
	t.Helper()
	origType, origScope, origSubject := commitType, commitScope, commitSubject
	origBody, origBreaking, origRefs := commitBody, commitBreaking, commitRefs
	origCopy, origRun := commitCopy, commitRun
	t.Cleanup(func() {
		commitType, commitScope, commitSubject = origType, origScope, origSubject
		commitBody, commitBreaking, commitRefs = origBody, origBreaking, origRefs
		commitCopy, commitRun = origCopy, origRun
	})
}

func TestCommitCmd_Registered(t *testing.T) {
	found := false
	for _, sub := range rootCmd.Commands() {
		if sub.Name() == "commit" {
			found = true
			break
		}
	}
	if !found {
		t.Error("'commit' command not registered on root")
	}
}

func TestRunCommit_FlagDriven(t *testing.T) {
	resetCommitFlags(t)
	commitType = "fix"
	commitScope = "env"
	commitSubject = "handle empty values"
	commitCopy = false
	commitRun = false

	if err := runCommit(commitCmd, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCommit_SubjectTooLong(t *testing.T) {
	resetCommitFlags(t)
	commitType = "fix"
	commitSubject = strings.Repeat("a", 80)

	err := runCommit(commitCmd, nil)
	if err == nil {
		t.Fatal("expected error for over-long subject")
	}
	if !strings.Contains(err.Error(), "max 72") {
		t.Errorf("unexpected error message: %v", err)
	}
}
