package wavesel

import (
	"context"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/wavesel/wavesel/gcn"
	"github.com/wavesel/wavesel/internal/isel"
	"github.com/wavesel/wavesel/ir"
)

// Compiler lowers shaders into GCN programs. It is safe for concurrent use: every Compile
// builds a new gcn.Program.
type Compiler struct {
	config *compilerConfig
}

// NewCompiler returns a Compiler using config. A nil config uses NewCompilerConfig.
func NewCompiler(config CompilerConfig) *Compiler {
	if config == nil {
		config = NewCompilerConfig()
	}
	return &Compiler{config: config.(*compilerConfig).clone()}
}

// Compile lowers shaders into one program. A single shader runs as its own hardware stage.
// Two shaders are merged: a vertex or tessellation evaluation shader followed by a tessellation
// control or geometry shader, passing its outputs to the second through LDS.
//
// Shaders are not modified except for the Divergent flags of their values, which are
// recomputed when divergence analysis is enabled. Inputs the selector has no lowering for fail
// with an error wrapping an *isel.Diagnostic.
func (c *Compiler) Compile(ctx context.Context, shaders ...*ir.Shader) (p *gcn.Program, err error) {
	cfg := c.config
	hw, err := c.validate(shaders)
	if err != nil {
		return nil, err
	}

	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "isel: compile", "stage", hw, "shaders", len(shaders), "gfx", cfg.gfxLevel, "wave", cfg.waveSize)
	defer tr.Finish("err", &err)

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		d, ok := r.(*isel.Diagnostic)
		if !ok {
			panic(r)
		}
		p, err = nil, errors.Wrap(d, "stage %v", hw)
	}()

	return isel.Select(ctx, shaders, cfg.options()), nil
}

func (c *Compiler) validate(shaders []*ir.Shader) (gcn.HWStage, error) {
	cfg := c.config
	if len(shaders) == 0 {
		return 0, errors.New("no shaders to compile")
	}
	switch {
	case cfg.gfxLevel < gcn.GFX6 || cfg.gfxLevel > gcn.GFX10_3:
		return 0, errors.New("unsupported hardware generation %v", cfg.gfxLevel)
	case cfg.waveSize != 32 && cfg.waveSize != 64:
		return 0, errors.New("invalid wave size %d", cfg.waveSize)
	case cfg.waveSize == 32 && cfg.gfxLevel < gcn.GFX10:
		return 0, errors.New("wave32 needs gfx10 or later, got %v", cfg.gfxLevel)
	case cfg.workgroupSize < 0:
		return 0, errors.New("invalid workgroup size %d", cfg.workgroupSize)
	}

	stages := make([]ir.Stage, len(shaders))
	for i, sh := range shaders {
		if sh == nil {
			return 0, errors.New("shader %d is nil", i)
		}
		stages[i] = sh.Stage
	}
	hw, ok := isel.HWStageOf(stages)
	if !ok {
		return 0, errors.New("stages %v cannot run in one program", stages)
	}
	if len(shaders) > 1 && cfg.gfxLevel < gcn.GFX9 {
		return 0, errors.New("merged stages need gfx9 or later, got %v", cfg.gfxLevel)
	}
	return hw, nil
}
