package isel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wavesel/wavesel/gcn"
	"github.com/wavesel/wavesel/internal/testcases"
	"github.com/wavesel/wavesel/ir"
)

func lower(t *testing.T, tc testcases.TestCase, gfx gcn.GfxLevel, wave int) *gcn.Program {
	t.Helper()
	p := Select(context.Background(), tc.Build(), &Options{GfxLevel: gfx, WaveSize: wave, Divergence: true, Validate: true})
	require.NoError(t, p.Validate())
	return p
}

// selectDiagnostic lowers shaders and returns the diagnostic it raised, if any.
func selectDiagnostic(shaders []*ir.Shader, opts *Options) (d *Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			d = r.(*Diagnostic)
		}
	}()
	Select(context.Background(), shaders, opts)
	return nil
}

func instrsNamed(p *gcn.Program, name string) []*gcn.Instruction {
	var ret []*gcn.Instruction
	for _, blk := range p.Blocks() {
		for _, instr := range blk.Instructions {
			if instr.Opcode.String() == name {
				ret = append(ret, instr)
			}
		}
	}
	return ret
}

// execWritesIn returns the instructions of blk with opcode op writing exec.
func execWritesIn(blk *gcn.Block, op gcn.Opcode) []*gcn.Instruction {
	var ret []*gcn.Instruction
	for _, instr := range blk.Instructions {
		if instr.Opcode == op && writesExec(instr) {
			ret = append(ret, instr)
		}
	}
	return ret
}

func blocksOfKind(p *gcn.Program, kind gcn.BlockKind) []*gcn.Block {
	var ret []*gcn.Block
	for _, blk := range p.Blocks() {
		if blk.Has(kind) {
			ret = append(ret, blk)
		}
	}
	return ret
}

func readsExec(instr *gcn.Instruction) bool {
	for _, o := range instr.Operands {
		if !o.IsTemp() && o.IsFixed() && o.PhysReg() == gcn.Exec {
			return true
		}
	}
	return false
}

func writesExec(instr *gcn.Instruction) bool {
	for _, d := range instr.Definitions {
		if d.IsFixed() && d.PhysReg() == gcn.Exec {
			return true
		}
	}
	return false
}

func TestSelect_AllCases(t *testing.T) {
	for _, cfg := range []struct {
		gfx  gcn.GfxLevel
		wave int
	}{
		{gfx: gcn.GFX8, wave: 64},
		{gfx: gcn.GFX9, wave: 64},
		{gfx: gcn.GFX10, wave: 64},
		{gfx: gcn.GFX10_3, wave: 32},
	} {
		for _, tc := range testcases.All {
			switch {
			case tc.Name == testcases.HalfFMA.Name:
				continue
			case tc.Name == testcases.MergedVSGS.Name && cfg.gfx < gcn.GFX9:
				continue
			}
			t.Run(cfg.gfx.String()+"/"+tc.Name, func(t *testing.T) {
				p := lower(t, tc, cfg.gfx, cfg.wave)
				require.Equal(t, "p_startpgm", p.Block(0).Instructions[0].Opcode.String())
				last := p.Block(p.NumBlocks() - 1)
				require.Equal(t, gcn.OpSEndpgm, last.Instructions[len(last.Instructions)-1].Opcode)
				require.Empty(t, last.LinearSuccs)
			})
		}
	}
}

func TestSelect_UniformIf(t *testing.T) {
	p := lower(t, testcases.UniformIf, gcn.GFX9, 64)
	require.Equal(t, 4, p.NumBlocks())

	entry := p.Block(0)
	require.True(t, entry.Has(gcn.BlockKindUniform))
	br := entry.Instructions[len(entry.Instructions)-1]
	require.Equal(t, gcn.OpPCbranchZ, br.Opcode)
	require.Equal(t, [2]int{2, 1}, br.Targets)
	require.Equal(t, gcn.SCC, br.Operands[0].PhysReg())

	endif := p.Block(3)
	require.Equal(t, []int{1, 2}, endif.LinearPreds)
	require.Equal(t, []int{1, 2}, endif.LogicalPreds)
	require.True(t, endif.Has(gcn.BlockKindTopLevel))
	require.True(t, endif.Instructions[0].IsPhi())
}

func TestSelect_DivergentIf(t *testing.T) {
	p := lower(t, testcases.DivergentIf, gcn.GFX9, 64)
	require.Equal(t, 7, p.NumBlocks())

	entry := p.Block(0)
	require.True(t, entry.Has(gcn.BlockKindBranch))
	require.Equal(t, []int{1, 2}, entry.LinearSuccs)
	require.Equal(t, []int{1, 4}, entry.LogicalSuccs)
	br := entry.Instructions[len(entry.Instructions)-1]
	require.Equal(t, gcn.OpPCbranchZ, br.Opcode)
	require.True(t, readsExec(br))
	saveExec := entry.Instructions[len(entry.Instructions)-2]
	require.Equal(t, gcn.OpSAndSaveexecB64, saveExec.Opcode)
	require.True(t, writesExec(saveExec))

	invert := p.Block(3)
	require.True(t, invert.Has(gcn.BlockKindInvert))
	require.Equal(t, []int{1, 2}, invert.LinearPreds)
	flip := invert.Instructions[len(invert.Instructions)-2]
	require.Equal(t, gcn.OpSAndn2B64, flip.Opcode)
	require.True(t, writesExec(flip))
	require.True(t, readsExec(flip))
	require.Equal(t, saveExec.Result(), flip.Operands[0].Temp())
	invertBr := invert.Instructions[len(invert.Instructions)-1]
	require.Equal(t, gcn.OpPCbranchZ, invertBr.Opcode)
	require.True(t, readsExec(invertBr))

	endif := p.Block(6)
	require.True(t, endif.Has(gcn.BlockKindMerge))
	require.Equal(t, []int{4, 5}, endif.LinearPreds)
	require.Equal(t, []int{1, 4}, endif.LogicalPreds)
	phi := endif.Instructions[0]
	require.Equal(t, gcn.OpPPhi, phi.Opcode)
	require.Equal(t, gcn.RegTypeVGPR, phi.Definitions[0].RegClass().Type())
	restore := execWritesIn(endif, gcn.OpSMovB64)
	require.Len(t, restore, 1)
	require.True(t, writesExec(restore[0]))
	require.Equal(t, saveExec.Result(), restore[0].Operands[0].Temp())
}

func TestSelect_DivergentIfWave32(t *testing.T) {
	p := lower(t, testcases.DivergentIf, gcn.GFX10_3, 32)
	entry := p.Block(0)
	saveExec := entry.Instructions[len(entry.Instructions)-2]
	require.Equal(t, gcn.OpSAndSaveexecB32, saveExec.Opcode)
	require.Equal(t, gcn.S1, saveExec.Definitions[0].RegClass())
	require.Len(t, execWritesIn(p.Block(3), gcn.OpSAndn2B32), 1)
	require.Len(t, execWritesIn(p.Block(6), gcn.OpSMovB32), 1)
}

func TestSelect_Loops(t *testing.T) {
	t.Run("uniform break", func(t *testing.T) {
		p := lower(t, testcases.UniformLoop, gcn.GFX9, 64)
		require.Equal(t, 6, p.NumBlocks())
		require.True(t, p.Block(0).Has(gcn.BlockKindLoopPreheader))
		header := p.Block(1)
		require.True(t, header.Has(gcn.BlockKindLoopHeader))
		require.Equal(t, []int{0, 4}, header.LinearPreds)
		require.Equal(t, gcn.OpPLinearPhi, header.Instructions[0].Opcode)

		require.True(t, p.Block(2).Has(gcn.BlockKindBreak|gcn.BlockKindUniform))
		require.True(t, p.Block(4).Has(gcn.BlockKindContinue))
		exit := p.Block(5)
		require.True(t, exit.Has(gcn.BlockKindLoopExit))
		require.Equal(t, []int{2}, exit.LinearPreds)
	})
	t.Run("divergent break", func(t *testing.T) {
		p := lower(t, testcases.DivergentBreak, gcn.GFX9, 64)
		require.Equal(t, 11, p.NumBlocks())
		brk := p.Block(2)
		require.True(t, brk.Has(gcn.BlockKindBreak))
		require.False(t, brk.Has(gcn.BlockKindUniform))
		require.True(t, readsExec(brk.Instructions[len(brk.Instructions)-1]))
		require.Equal(t, []int{3, 4}, brk.LinearSuccs)

		exit := p.Block(10)
		require.True(t, exit.Has(gcn.BlockKindLoopExit))
		require.Equal(t, []int{3}, exit.LinearPreds)
		require.Equal(t, []int{2}, exit.LogicalPreds)
		require.Equal(t, []int{0, 9}, p.Block(1).LinearPreds)
	})
	t.Run("divergent continue", func(t *testing.T) {
		p := lower(t, testcases.DivergentContinue, gcn.GFX9, 64)
		header := p.Block(1)
		require.Len(t, header.LinearPreds, 3)
		require.Len(t, header.LogicalPreds, 3)
	})
	t.Run("discard", func(t *testing.T) {
		p := lower(t, testcases.DiscardInLoop, gcn.GFX9, 64)
		latches := blocksOfKind(p, gcn.BlockKindContinueOrBreak)
		require.Len(t, latches, 1)
		br := latches[0].Instructions[len(latches[0].Instructions)-1]
		require.Equal(t, gcn.OpPCbranchZ, br.Opcode)
		require.True(t, readsExec(br))
		require.True(t, p.UsesDiscard)
		require.NotEmpty(t, instrsNamed(p, "p_discard_if"))
	})
}

func TestSelect_Atomic(t *testing.T) {
	for _, tc := range []struct {
		tc      testcases.TestCase
		expDefs int
	}{
		{tc: testcases.AtomicUnused, expDefs: 0},
		{tc: testcases.AtomicUsed, expDefs: 1},
	} {
		t.Run(tc.tc.Name, func(t *testing.T) {
			p := lower(t, tc.tc, gcn.GFX9, 64)
			atomics := instrsNamed(p, "buffer_atomic_add")
			require.Len(t, atomics, 1)
			require.Len(t, atomics[0].Definitions, tc.expDefs)
			require.Equal(t, tc.expDefs == 1, atomics[0].Mem.GLC)
		})
	}
}

func TestSelect_Load12Bytes(t *testing.T) {
	for _, tc := range []struct {
		gfx    gcn.GfxLevel
		expOps []string
	}{
		{gfx: gcn.GFX6, expOps: []string{"buffer_load_dwordx2", "buffer_load_dword"}},
		{gfx: gcn.GFX9, expOps: []string{"buffer_load_dwordx3"}},
	} {
		t.Run(tc.gfx.String(), func(t *testing.T) {
			p := lower(t, testcases.Load12, tc.gfx, 64)
			require.Empty(t, instrsNamed(p, "buffer_load_dwordx4"))
			for _, name := range tc.expOps {
				require.Len(t, instrsNamed(p, name), 1, name)
			}
		})
	}
}

func TestSelect_Subgroup(t *testing.T) {
	t.Run("vote any", func(t *testing.T) {
		for _, wave := range []int{32, 64} {
			p := lower(t, testcases.VoteAny, gcn.GFX10, wave)
			name := "s_and_b64"
			if wave == 32 {
				name = "s_and_b32"
			}
			var withExec int
			for _, instr := range instrsNamed(p, name) {
				if readsExec(instr) {
					withExec++
				}
			}
			require.NotZero(t, withExec)
		}
	})
	t.Run("shuffle", func(t *testing.T) {
		for _, tc := range []struct {
			gfx    gcn.GfxLevel
			wave   int
			expOp  string
			absent string
		}{
			{gfx: gcn.GFX9, wave: 64, expOp: "ds_bpermute_b32", absent: "p_bpermute"},
			{gfx: gcn.GFX10, wave: 32, expOp: "ds_bpermute_b32", absent: "p_bpermute"},
			{gfx: gcn.GFX10, wave: 64, expOp: "p_bpermute", absent: "ds_bpermute_b32"},
		} {
			p := lower(t, testcases.Shuffle, tc.gfx, tc.wave)
			require.Len(t, instrsNamed(p, tc.expOp), 1)
			require.Empty(t, instrsNamed(p, tc.absent))
		}
	})
	t.Run("clustered reduce", func(t *testing.T) {
		for _, tc := range []struct {
			gfx   gcn.GfxLevel
			wave  int
			shift string
		}{
			{gfx: gcn.GFX7, wave: 64, shift: "v_lshr_b64"},
			{gfx: gcn.GFX9, wave: 64, shift: "v_lshrrev_b64"},
			{gfx: gcn.GFX10, wave: 32, shift: "v_lshrrev_b32"},
		} {
			t.Run(tc.shift, func(t *testing.T) {
				p := lower(t, testcases.ClusteredReduce, tc.gfx, tc.wave)

				reduces := instrsNamed(p, "p_reduce")
				require.Len(t, reduces, 1)
				require.Equal(t, 4, reduces[0].Reduce.ClusterSize)

				// A lane id and a shift per boolean reduction, on top of the invocation index.
				require.GreaterOrEqual(t, len(instrsNamed(p, "v_mbcnt_lo_u32_b32")), 4)
				require.GreaterOrEqual(t, len(instrsNamed(p, tc.shift)), 3)
				require.Len(t, instrsNamed(p, "v_bcnt_u32_b32"), 1)
				orn2 := "s_orn2_b64"
				if tc.wave == 32 {
					orn2 = "s_orn2_b32"
				}
				require.Len(t, instrsNamed(p, orn2), 1)
				require.True(t, readsExec(instrsNamed(p, orn2)[0]))
			})
		}
	})
}

func TestSelect_Exports(t *testing.T) {
	t.Run("vertex", func(t *testing.T) {
		p := lower(t, testcases.VertexExport, gcn.GFX9, 64)
		exps := instrsNamed(p, "exp")
		require.Len(t, exps, 2)
		require.Equal(t, gcn.ExpTargetPos0, exps[0].Exp.Target)
		require.True(t, exps[0].Exp.Done)
		require.Equal(t, gcn.ExpTargetParam, exps[1].Exp.Target)
		require.Equal(t, uint8(0xf), exps[1].Exp.EnabledMask)
	})
	t.Run("fragment null", func(t *testing.T) {
		p := lower(t, testcases.FragmentNull, gcn.GFX9, 64)
		exps := instrsNamed(p, "exp")
		require.Len(t, exps, 1)
		require.Equal(t, gcn.ExpTargetNull, exps[0].Exp.Target)
		require.True(t, exps[0].Exp.Done)
		require.True(t, exps[0].Exp.ValidMask)
		require.NotEmpty(t, blocksOfKind(p, gcn.BlockKindExportEnd))
	})
	t.Run("fragment mrt", func(t *testing.T) {
		p := lower(t, testcases.Texture, gcn.GFX9, 64)
		exps := instrsNamed(p, "exp")
		require.Len(t, exps, 1)
		require.Equal(t, gcn.ExpTargetMRT0, exps[0].Exp.Target)
		require.True(t, exps[0].Exp.ValidMask)
		require.NotEmpty(t, instrsNamed(p, "v_interp_p1_f32"))
		require.NotEmpty(t, instrsNamed(p, "image_sample"))
	})
}

func TestSelect_MergedStages(t *testing.T) {
	p := lower(t, testcases.MergedVSGS, gcn.GFX9, 64)
	require.Equal(t, gcn.HWStageGS, p.Stage)
	require.Equal(t, 2, p.NumStages)
	require.NotEmpty(t, instrsNamed(p, "ds_write_b32"))
	require.NotEmpty(t, instrsNamed(p, "ds_read_b32"))
	require.Len(t, instrsNamed(p, "s_barrier"), 1)
	// Both stages run under their own lane mask.
	require.Len(t, blocksOfKind(p, gcn.BlockKindInvert), 2)
	require.GreaterOrEqual(t, p.Config.LDSBytes, 2*outputStride*maxMergedWorkgroupSize)
}

func TestSelect_SharedMemory(t *testing.T) {
	p := lower(t, testcases.SharedMemory, gcn.GFX9, 64)
	require.Equal(t, 512, p.Config.LDSBytes)
	require.Equal(t, 128, p.WorkgroupSize)
	require.Len(t, instrsNamed(p, "s_barrier"), 1)
	require.Len(t, instrsNamed(p, "ds_write_b32"), 1)
	require.Len(t, instrsNamed(p, "ds_read_b32"), 1)
}

func TestSelect_Diagnostic(t *testing.T) {
	d := selectDiagnostic(testcases.HalfFMA.Build(), &Options{GfxLevel: gcn.GFX9, WaveSize: 64, Divergence: true})
	require.NotNil(t, d)
	require.Equal(t, "ffma", d.Op)
	require.Contains(t, d.Error(), "unsupported ffma: no 16-bit fused multiply-add")
	require.Regexp(t, `\(\w+\.go:[1-9]\d*\)$`, d.Error())

	d = selectDiagnostic(testcases.VoteAny.Build(), &Options{GfxLevel: gcn.GFX9, WaveSize: 64, Divergence: true})
	require.Nil(t, d)
}

func TestSelect_FloatMode(t *testing.T) {
	build := func() []*ir.Shader {
		shaders := testcases.Float64Floor.Build()
		shaders[0].FloatControls = ir.FloatControls{PreserveDenorm32: true, PreserveDenorm1664: true}
		return shaders
	}
	p := Select(context.Background(), build(), &Options{GfxLevel: gcn.GFX9, WaveSize: 64})
	require.Equal(t, gcn.FloatMode{PreserveDenorm32: true, PreserveDenorm1664: true}, p.FloatMode)

	p = Select(context.Background(), build(), &Options{GfxLevel: gcn.GFX9, WaveSize: 64, FlushDenorm1664: true})
	require.Equal(t, gcn.FloatMode{PreserveDenorm32: true}, p.FloatMode)
}

func TestSelect_Float64FloorOnGFX6(t *testing.T) {
	p := lower(t, testcases.Float64Floor, gcn.GFX6, 64)
	require.Empty(t, instrsNamed(p, "v_floor_f64"))
	require.NotEmpty(t, instrsNamed(p, "v_lshr_b64"))

	p = lower(t, testcases.Float64Floor, gcn.GFX7, 64)
	require.Len(t, instrsNamed(p, "v_floor_f64"), 1)
}

func TestHWStageOf(t *testing.T) {
	for _, tc := range []struct {
		stages []ir.Stage
		exp    gcn.HWStage
		ok     bool
	}{
		{stages: []ir.Stage{ir.StageCompute}, exp: gcn.HWStageCS, ok: true},
		{stages: []ir.Stage{ir.StageFragment}, exp: gcn.HWStageFS, ok: true},
		{stages: []ir.Stage{ir.StageTessEval}, exp: gcn.HWStageVS, ok: true},
		{stages: []ir.Stage{ir.StageVertex, ir.StageTessCtrl}, exp: gcn.HWStageHS, ok: true},
		{stages: []ir.Stage{ir.StageTessEval, ir.StageGeometry}, exp: gcn.HWStageGS, ok: true},
		{stages: []ir.Stage{ir.StageGeometry, ir.StageVertex}},
		{stages: []ir.Stage{ir.StageVertex, ir.StageFragment}},
		{stages: nil},
	} {
		hw, ok := HWStageOf(tc.stages)
		require.Equal(t, tc.ok, ok, tc.stages)
		if ok {
			require.Equal(t, tc.exp, hw)
		}
	}
}
