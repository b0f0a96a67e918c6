package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	tests := []struct {
		name         string
		args         []string
		expectedExit int
	}{
		{
			name:         "version always succeeds",
			args:         []string{"hex", "version"},
			expectedExit: 0,
		},
		{
			name:         "get without a manifest fails",
			args:         []string{"hex", "get"},
			expectedExit: 1,
		},
		{
			name:         "unknown command fails",
			args:         []string{"hex", "frobnicate"},
			expectedExit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()

			originalWd, _ := os.Getwd()
			if err := os.Chdir(tmpDir); err != nil {
				t.Fatalf("failed to chdir: %v", err)
			}
			defer func() {
				_ = os.Chdir(originalWd)
			}()

			os.Args = tt.args
			assert.Equal(t, tt.expectedExit, run())
		})
	}
}
