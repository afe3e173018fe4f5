package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wavesel/wavesel/internal/testcases"
)

func TestList(t *testing.T) {
	exitCode, stdOut, stdErr := runMain(t, []string{"-list"})
	require.Equal(t, 0, exitCode)
	require.Equal(t, "", stdErr)
	for _, tc := range testcases.All {
		require.Contains(t, stdOut, tc.Name+"\n")
	}
}

func TestHelp(t *testing.T) {
	exitCode, _, stdErr := runMain(t, []string{"-h"})
	require.Equal(t, 0, exitCode)
	require.Contains(t, stdErr, "wavesel CLI\n\nUsage:")
}

func TestCompile(t *testing.T) {
	tests := []struct {
		args     []string
		contains []string
	}{
		{
			args:     []string{"-case", "uniform_if"},
			contains: []string{"p_startpgm", "p_cbranch_z", "s_endpgm"},
		},
		{
			args:     []string{"-case", "shuffle", "-gfx", "gfx10.3", "-wave", "32"},
			contains: []string{"ds_bpermute_b32"},
		},
		{
			args:     []string{"-case", "f64_floor", "-gfx", "gfx6"},
			contains: []string{"v_lshr_b64"},
		},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.args[1], func(t *testing.T) {
			exitCode, stdOut, stdErr := runMain(t, tt.args)
			require.Equal(t, 0, exitCode, stdErr)
			require.Equal(t, "", stdErr)
			for _, s := range tt.contains {
				require.Contains(t, stdOut, s)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		message string
		args    []string
	}{
		{
			message: "missing shader name",
			args:    []string{},
		},
		{
			message: "unknown shader, see -list",
			args:    []string{"-case", "bears"},
		},
		{
			message: `invalid hardware generation "gfx11"`,
			args:    []string{"-case", "empty", "-gfx", "gfx11"},
		},
		{
			message: "wave32 needs gfx10 or later",
			args:    []string{"-case", "empty", "-wave", "32"},
		},
		{
			message: "unsupported ffma",
			args:    []string{"-case", "f16_fma"},
		},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.message, func(t *testing.T) {
			exitCode, _, stdErr := runMain(t, tt.args)
			require.Equal(t, 1, exitCode)
			require.Contains(t, stdErr, tt.message)
		})
	}
}

func runMain(t *testing.T, args []string) (int, string, string) {
	t.Helper()

	exitCode := -1
	stdOut := &bytes.Buffer{}
	stdErr := &bytes.Buffer{}
	doMain(args, stdOut, stdErr, func(code int) {
		exitCode = code
	})
	require.NotEqual(t, -1, exitCode)

	return exitCode, stdOut.String(), stdErr.String()
}
