package isel

import (
	"context"

	"tlog.app/go/tlog"

	"github.com/wavesel/wavesel/gcn"
	"github.com/wavesel/wavesel/internal/divergence"
	"github.com/wavesel/wavesel/internal/iselapi"
	"github.com/wavesel/wavesel/ir"
)

// maxMergedWorkgroupSize is the workgroup size assumed for merged stages, which the hardware
// launches with up to this many invocations.
const maxMergedWorkgroupSize = 256

// HWStageOf returns the hardware stage running the given API stages, which run in this order
// in one program.
func HWStageOf(stages []ir.Stage) (gcn.HWStage, bool) {
	switch len(stages) {
	case 1:
		switch stages[0] {
		case ir.StageVertex, ir.StageTessEval:
			return gcn.HWStageVS, true
		case ir.StageTessCtrl:
			return gcn.HWStageHS, true
		case ir.StageGeometry:
			return gcn.HWStageGS, true
		case ir.StageFragment:
			return gcn.HWStageFS, true
		case ir.StageCompute:
			return gcn.HWStageCS, true
		}
	case 2:
		switch {
		case stages[0] == ir.StageVertex && stages[1] == ir.StageTessCtrl:
			return gcn.HWStageHS, true
		case (stages[0] == ir.StageVertex || stages[0] == ir.StageTessEval) && stages[1] == ir.StageGeometry:
			return gcn.HWStageGS, true
		}
	}
	return 0, false
}

// Select lowers shaders into one program. More than one shader makes a merged program, where
// each stage runs on its own subset of the lanes and passes its outputs to the next one
// through LDS.
//
// Inputs the selector has no lowering for panic with a *Diagnostic.
func Select(ctx context.Context, shaders []*ir.Shader, opts *Options) *gcn.Program {
	stages := make([]ir.Stage, len(shaders))
	for i, sh := range shaders {
		stages[i] = sh.Stage
	}
	hw, ok := HWStageOf(stages)
	if !ok {
		panic("BUG: unsupported stage combination")
	}

	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "isel: select", "stage", hw, "gfx", opts.GfxLevel, "wave", opts.WaveSize)
	defer tr.Finish()

	p := gcn.NewProgram(opts.GfxLevel, opts.WaveSize, hw)
	p.NumStages = len(shaders)
	p.FloatMode = gcn.FloatMode{PreserveDenorm32: !opts.FlushDenorm32, PreserveDenorm1664: !opts.FlushDenorm1664}
	shared := 0
	for _, sh := range shaders {
		p.FloatMode.PreserveDenorm32 = p.FloatMode.PreserveDenorm32 && sh.FloatControls.PreserveDenorm32
		p.FloatMode.PreserveDenorm1664 = p.FloatMode.PreserveDenorm1664 && sh.FloatControls.PreserveDenorm1664
		shared = max(shared, sh.SharedBytes)
		p.Config.ScratchBytesPerWave = max(p.Config.ScratchBytesPerWave, sh.ScratchBytes*opts.WaveSize)
	}
	p.WorkgroupSize = workgroupSize(shaders, opts)

	ioBase := (shared + 15) &^ 15
	p.Config.LDSBytes = shared
	for _, sh := range shaders[:len(shaders)-1] {
		p.Config.LDSBytes = max(p.Config.LDSBytes, ioBase+sh.NumOutputs*outputStride*p.WorkgroupSize)
	}

	if opts.Divergence {
		for _, sh := range shaders {
			res := divergence.Analyze(ctx, sh, opts.WaveSize)
			if tr.If(iselapi.TopicDivergence) {
				tr.Printw("divergence", "shader", sh.Name, "divergent_defs", res.NumDivergent,
					"divergent_ifs", len(res.DivergentIfs), "divergent_loops", len(res.DivergentLoops))
			}
		}
	}

	args := declareArgs(p, stages)
	cur := p.CreateBlock()
	cur.Kind = gcn.BlockKindTopLevel

	for i, sh := range shaders {
		s := newSelector(p, opts, sh, args, tr)
		s.stageIndex = i
		s.ioBase = ioBase
		if i > 0 {
			s.prevOutputs = shaders[i-1].NumOutputs
		}
		s.assignTemps()
		s.setBlock(cur)
		if i == 0 {
			s.emitStartPgm()
			s.appendLogicalStart()
		}
		s.lowerStage()
		if i == len(shaders)-1 {
			s.emitEndPgm()
		}
		cur = s.block
	}

	p.ComputeSuccessors()
	if iselapi.PrintProgram || tr.If(iselapi.TopicDump) {
		tr.Printw("program", "blocks", p.NumBlocks(), "temps", p.NumTemps(), "dump", p.Format())
	}
	if opts.Validate {
		if err := p.Validate(); err != nil {
			panic("BUG: invalid program: " + err.Error())
		}
	}
	return p
}

func workgroupSize(shaders []*ir.Shader, opts *Options) int {
	if opts.WorkgroupSize != 0 {
		return opts.WorkgroupSize
	}
	if len(shaders) > 1 {
		return maxMergedWorkgroupSize
	}
	sh := shaders[0]
	if sh.Stage != ir.StageCompute {
		return opts.WaveSize
	}
	size := 1
	for _, d := range sh.WorkgroupSize {
		size *= max(d, 1)
	}
	return size
}
