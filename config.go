package wavesel

import (
	"github.com/wavesel/wavesel/gcn"
	"github.com/wavesel/wavesel/internal/isel"
	"github.com/wavesel/wavesel/internal/iselapi"
)

// CompilerConfig controls how shaders are lowered, with the default implementation as
// NewCompilerConfig.
//
// Note: CompilerConfig is immutable. Each WithXXX function returns a new instance including the
// corresponding change.
type CompilerConfig interface {
	// WithGfxLevel selects the hardware generation. Defaults to gcn.GFX9.
	WithGfxLevel(gcn.GfxLevel) CompilerConfig

	// WithWaveSize selects the number of lanes of a wave: 32 or 64. Defaults to 64.
	//
	// Note: wave32 needs gcn.GFX10 or later. Compiler.Compile fails otherwise.
	WithWaveSize(int) CompilerConfig

	// WithDenormFlush32 flushes 32-bit denormals even when a shader asks to keep them.
	WithDenormFlush32(bool) CompilerConfig

	// WithDenormFlush64 flushes 16-bit and 64-bit denormals even when a shader asks to keep them.
	WithDenormFlush64(bool) CompilerConfig

	// WithDivergenceAnalysis computes which values differ between lanes before lowering. Defaults
	// to true. When disabled, the ir.Def Divergent flags set by the caller are used as-is.
	WithDivergenceAnalysis(bool) CompilerConfig

	// WithValidation checks the control-flow invariants of every lowered program. Defaults to
	// true.
	WithValidation(bool) CompilerConfig

	// WithWorkgroupSize overrides the number of invocations of a workgroup. Zero, the default,
	// uses the size the shader declares.
	WithWorkgroupSize(int) CompilerConfig
}

type compilerConfig struct {
	gfxLevel      gcn.GfxLevel
	waveSize      int
	flushDenorm32 bool
	flushDenorm64 bool
	divergence    bool
	validate      bool
	workgroupSize int
}

// defaultConfig is the base of every CompilerConfig.
var defaultConfig = &compilerConfig{
	gfxLevel:   gcn.GFX9,
	waveSize:   64,
	divergence: true,
	validate:   iselapi.ValidationEnabled,
}

// NewCompilerConfig returns a CompilerConfig with the defaults documented on each WithXXX
// function.
func NewCompilerConfig() CompilerConfig {
	return defaultConfig.clone()
}

// clone makes a deep copy of this compiler config.
func (c *compilerConfig) clone() *compilerConfig {
	ret := *c
	return &ret
}

// WithGfxLevel implements CompilerConfig.WithGfxLevel
func (c *compilerConfig) WithGfxLevel(gfx gcn.GfxLevel) CompilerConfig {
	ret := c.clone()
	ret.gfxLevel = gfx
	return ret
}

// WithWaveSize implements CompilerConfig.WithWaveSize
func (c *compilerConfig) WithWaveSize(size int) CompilerConfig {
	ret := c.clone()
	ret.waveSize = size
	return ret
}

// WithDenormFlush32 implements CompilerConfig.WithDenormFlush32
func (c *compilerConfig) WithDenormFlush32(flush bool) CompilerConfig {
	ret := c.clone()
	ret.flushDenorm32 = flush
	return ret
}

// WithDenormFlush64 implements CompilerConfig.WithDenormFlush64
func (c *compilerConfig) WithDenormFlush64(flush bool) CompilerConfig {
	ret := c.clone()
	ret.flushDenorm64 = flush
	return ret
}

// WithDivergenceAnalysis implements CompilerConfig.WithDivergenceAnalysis
func (c *compilerConfig) WithDivergenceAnalysis(enabled bool) CompilerConfig {
	ret := c.clone()
	ret.divergence = enabled
	return ret
}

// WithValidation implements CompilerConfig.WithValidation
func (c *compilerConfig) WithValidation(enabled bool) CompilerConfig {
	ret := c.clone()
	ret.validate = enabled
	return ret
}

// WithWorkgroupSize implements CompilerConfig.WithWorkgroupSize
func (c *compilerConfig) WithWorkgroupSize(size int) CompilerConfig {
	ret := c.clone()
	ret.workgroupSize = size
	return ret
}

func (c *compilerConfig) options() *isel.Options {
	return &isel.Options{
		GfxLevel:        c.gfxLevel,
		WaveSize:        c.waveSize,
		FlushDenorm32:   c.flushDenorm32,
		FlushDenorm1664: c.flushDenorm64,
		WorkgroupSize:   c.workgroupSize,
		Divergence:      c.divergence,
		Validate:        c.validate,
	}
}
