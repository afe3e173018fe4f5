package wavesel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wavesel/wavesel/gcn"
	"github.com/wavesel/wavesel/internal/isel"
	"github.com/wavesel/wavesel/internal/iselapi"
)

func TestCompilerConfig(t *testing.T) {
	tests := []struct {
		name     string
		with     func(CompilerConfig) CompilerConfig
		expected *compilerConfig
	}{
		{
			name: "gfx level",
			with: func(c CompilerConfig) CompilerConfig { return c.WithGfxLevel(gcn.GFX10_3) },
			expected: &compilerConfig{
				gfxLevel: gcn.GFX10_3, waveSize: 64, divergence: true, validate: iselapi.ValidationEnabled,
			},
		},
		{
			name: "wave size",
			with: func(c CompilerConfig) CompilerConfig { return c.WithWaveSize(32) },
			expected: &compilerConfig{
				gfxLevel: gcn.GFX9, waveSize: 32, divergence: true, validate: iselapi.ValidationEnabled,
			},
		},
		{
			name: "denormals",
			with: func(c CompilerConfig) CompilerConfig { return c.WithDenormFlush32(true).WithDenormFlush64(true) },
			expected: &compilerConfig{
				gfxLevel: gcn.GFX9, waveSize: 64, flushDenorm32: true, flushDenorm64: true, divergence: true,
				validate: iselapi.ValidationEnabled,
			},
		},
		{
			name: "analysis off",
			with: func(c CompilerConfig) CompilerConfig { return c.WithDivergenceAnalysis(false).WithValidation(false) },
			expected: &compilerConfig{
				gfxLevel: gcn.GFX9, waveSize: 64,
			},
		},
		{
			name: "workgroup size",
			with: func(c CompilerConfig) CompilerConfig { return c.WithWorkgroupSize(256) },
			expected: &compilerConfig{
				gfxLevel: gcn.GFX9, waveSize: 64, divergence: true, validate: iselapi.ValidationEnabled,
				workgroupSize: 256,
			},
		},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			input := NewCompilerConfig()
			rc := tc.with(input)
			require.Equal(t, tc.expected, rc)
			// The original is not modified.
			require.Equal(t, defaultConfig, input)
		})
	}
}

func TestCompilerConfig_options(t *testing.T) {
	c := NewCompilerConfig().
		WithGfxLevel(gcn.GFX10).
		WithWaveSize(32).
		WithDenormFlush64(true).
		WithWorkgroupSize(128).(*compilerConfig)
	require.Equal(t, &isel.Options{
		GfxLevel:        gcn.GFX10,
		WaveSize:        32,
		FlushDenorm1664: true,
		WorkgroupSize:   128,
		Divergence:      true,
		Validate:        iselapi.ValidationEnabled,
	}, c.options())
}
