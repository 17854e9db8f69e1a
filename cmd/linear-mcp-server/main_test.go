package main

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_RootCmdVersion(t *testing.T) {
	expectedVersion := fmt.Sprintf("Version: %s\nCommit: %s\nBuild Date: %s", version, commit, date)
	actualVersion := rootCmd.Version

	assert.Equal(t, expectedVersion, actualVersion)
}

func Test_WordSepNormalizeFunc(t *testing.T) {
	normalized := wordSepNormalizeFunc(nil, "dynamic_toolsets")
	assert.Equal(t, "dynamic-toolsets", string(normalized))

	normalized = wordSepNormalizeFunc(nil, "read-only")
	assert.Equal(t, "read-only", string(normalized))
}
