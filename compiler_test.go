package wavesel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wavesel/wavesel/gcn"
	"github.com/wavesel/wavesel/internal/isel"
	"github.com/wavesel/wavesel/internal/testcases"
	"github.com/wavesel/wavesel/ir"
)

func TestCompiler_Compile(t *testing.T) {
	for _, gfx := range []gcn.GfxLevel{gcn.GFX9, gcn.GFX10_3} {
		c := NewCompiler(NewCompilerConfig().WithGfxLevel(gfx))
		for _, tc := range []testcases.TestCase{testcases.DivergentIf, testcases.Texture, testcases.MergedVSGS} {
			t.Run(gfx.String()+"/"+tc.Name, func(t *testing.T) {
				p, err := c.Compile(context.Background(), tc.Build()...)
				require.NoError(t, err)
				require.Equal(t, gfx, p.GfxLevel)
				require.NoError(t, p.Validate())
			})
		}
	}
}

func TestCompiler_Compile_errors(t *testing.T) {
	vs := func() *ir.Shader { return testcases.VertexExport.Build()[0] }
	fs := func() *ir.Shader { return testcases.FragmentNull.Build()[0] }

	tests := []struct {
		name        string
		config      CompilerConfig
		shaders     []*ir.Shader
		expectedErr string
	}{
		{
			name:        "no shaders",
			config:      NewCompilerConfig(),
			expectedErr: "no shaders to compile",
		},
		{
			name:        "nil shader",
			config:      NewCompilerConfig(),
			shaders:     []*ir.Shader{vs(), nil},
			expectedErr: "shader 1 is nil",
		},
		{
			name:        "wave size",
			config:      NewCompilerConfig().WithWaveSize(16),
			shaders:     []*ir.Shader{vs()},
			expectedErr: "invalid wave size 16",
		},
		{
			name:        "wave32 before gfx10",
			config:      NewCompilerConfig().WithWaveSize(32),
			shaders:     []*ir.Shader{vs()},
			expectedErr: "wave32 needs gfx10 or later, got gfx9",
		},
		{
			name:        "workgroup size",
			config:      NewCompilerConfig().WithWorkgroupSize(-1),
			shaders:     []*ir.Shader{vs()},
			expectedErr: "invalid workgroup size -1",
		},
		{
			name:        "stages",
			config:      NewCompilerConfig(),
			shaders:     []*ir.Shader{vs(), fs()},
			expectedErr: "cannot run in one program",
		},
		{
			name:        "merged before gfx9",
			config:      NewCompilerConfig().WithGfxLevel(gcn.GFX8),
			shaders:     testcases.MergedVSGS.Build(),
			expectedErr: "merged stages need gfx9 or later, got gfx8",
		},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCompiler(tc.config).Compile(context.Background(), tc.shaders...)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.expectedErr)
		})
	}
}

func TestCompiler_Compile_diagnostic(t *testing.T) {
	c := NewCompiler(NewCompilerConfig().WithGfxLevel(gcn.GFX9))
	p, err := c.Compile(context.Background(), testcases.HalfFMA.Build()...)
	require.Nil(t, p)
	require.Error(t, err)

	var d *isel.Diagnostic
	require.ErrorAs(t, err, &d)
	require.Equal(t, "ffma", d.Op)
	require.Contains(t, err.Error(), "stage cs")
	require.Contains(t, err.Error(), "unsupported ffma")
}

func TestNewCompiler_nilConfig(t *testing.T) {
	c := NewCompiler(nil)
	require.Equal(t, defaultConfig, c.config)
	require.NotSame(t, defaultConfig, c.config)
}
