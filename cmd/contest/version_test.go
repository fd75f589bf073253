package main

import "testing"

func TestVersionString(t *testing.T) {
	oldVersion, oldCommit := buildVersion, buildCommitID
	t.Cleanup(func() {
		buildVersion, buildCommitID = oldVersion, oldCommit
	})

	buildVersion = "1.2.3"
	buildCommitID = "abc123"
	if got := versionString(); got != "contest 1.2.3 (commit abc123)" {
		t.Fatalf("unexpected version string %q", got)
	}
}
