package gcn

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestBuilder(gfx GfxLevel, wave int) *Builder {
	p := NewProgram(gfx, wave, HWStageCS)
	return NewBuilder(p, p.CreateBlock())
}

func TestBuilder_SOP2AddsSCC(t *testing.T) {
	b := newTestBuilder(GFX9, 64)
	a, c := b.Tmp(S2), b.Tmp(S2)
	instr := b.SOP2(b.LaneOp(OpSAndB64), b.Def(S2), OperandTemp(a), OperandTemp(c))
	require.Len(t, instr.Definitions, 2)
	require.Equal(t, SCC, instr.Definitions[1].PhysReg())
	require.True(t, instr.Definitions[1].IsFixed())
	require.Equal(t, "%3:s2, %4:s1:scc = s_and_b64 %1:s2, %2:s2", instr.String())

	instr = b.SOP2(OpSCselectB32, b.Def(S1), OperandConst(1), OperandConst(0), OperandSCC(instr.Definitions[1].Temp()))
	require.Len(t, instr.Definitions, 1)
}

func TestBuilder_LaneOp(t *testing.T) {
	require.Equal(t, OpSAndB64, newTestBuilder(GFX10, 64).LaneOp(OpSAndB64))
	require.Equal(t, OpSAndB32, newTestBuilder(GFX10, 32).LaneOp(OpSAndB64))
	require.Equal(t, OpSBcnt1I32B32, newTestBuilder(GFX10, 32).LaneOp(OpSBcnt1I32B64))
	require.Panics(t, func() { newTestBuilder(GFX10, 32).LaneOp(OpSLoadDword) })
}

func TestBuilder_ArityAndClass(t *testing.T) {
	b := newTestBuilder(GFX9, 64)
	require.Panics(t, func() { b.Create(OpSCmpEqU32, FormatSOPC, 1, 1) })

	v := b.Tmp(V1)
	// Reading a v1 Temp as if it were s1 is an invariant violation.
	require.Panics(t, func() {
		b.VOP1(OpVMovB32, b.Def(V1), OperandTemp(NewTemp(v.ID(), S1)))
	})
}

func TestBuilder_Branch(t *testing.T) {
	for _, tc := range []struct {
		name        string
		op          Opcode
		taken, fall int
		cond        []Operand
	}{
		{name: "unconditional", op: OpPBranch, taken: 3, fall: -1},
		{name: "on exec", op: OpPCbranchZ, taken: 4, fall: 2, cond: []Operand{newTestBuilder(GFX9, 64).Exec()}},
		{name: "unknown targets", op: OpPCbranchNz, taken: -1, fall: -1, cond: []Operand{OperandConst(0)}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBuilder(GFX9, 64)
			instr := b.Branch(tc.op, tc.taken, tc.fall, tc.cond...)
			require.Equal(t, [2]int{tc.taken, tc.fall}, instr.Targets)
			require.Len(t, instr.Operands, len(tc.cond))
			require.Empty(t, instr.Definitions)
			blk := b.Block()
			require.Same(t, instr, blk.Instructions[len(blk.Instructions)-1])
		})
	}
}

func TestBuilder_VAdd32(t *testing.T) {
	for _, tc := range []struct {
		name     string
		gfx      GfxLevel
		carryOut bool
		exp      Opcode
		numDefs  int
	}{
		{name: "gfx9", gfx: GFX9, exp: OpVAddU32, numDefs: 1},
		{name: "gfx9 carry", gfx: GFX9, carryOut: true, exp: OpVAddCoU32, numDefs: 2},
		{name: "gfx8", gfx: GFX8, exp: OpVAddCoU32, numDefs: 2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBuilder(tc.gfx, 64)
			s, v := b.Tmp(S1), b.Tmp(V1)
			instr := b.VAdd32(b.Def(V1), OperandTemp(v), OperandTemp(s), tc.carryOut)
			require.Equal(t, tc.exp, instr.Opcode)
			require.Len(t, instr.Definitions, tc.numDefs)
			// The vgpr must be the second source of the VOP2 encoding.
			require.Equal(t, s, instr.Operands[0].Temp())
			require.Equal(t, v, instr.Operands[1].Temp())
		})
	}
}

func TestBuilder_VAdd32_BothScalar(t *testing.T) {
	b := newTestBuilder(GFX9, 64)
	s0, s1 := b.Tmp(S1), b.Tmp(S1)
	instr := b.VAdd32(b.Def(V1), OperandTemp(s0), OperandTemp(s1), false)
	require.Equal(t, OpVAddU32, instr.Opcode)
	require.Equal(t, RegTypeVGPR, instr.Operands[1].RegClass().Type())
	// One copy for the second operand and the add itself.
	require.Len(t, b.Block().Instructions, 2)
	require.Equal(t, OpPParallelcopy, b.Block().Instructions[0].Opcode)
}

func TestBuilder_VOP3Promotion(t *testing.T) {
	b := newTestBuilder(GFX9, 64)
	s0, s1 := b.Tmp(S1), b.Tmp(S1)
	instr := b.VOP3(OpVAddF32, b.Def(V1), OperandTemp(s0), OperandTemp(s1))
	require.Equal(t, FormatVOP2|FormatVOP3, instr.Format)
	instr.VOP3.Neg[0] = true
	instr.VOP3.Abs[1] = true
	require.Equal(t, "%3:v1 = v_add_f32 -%1:s1, |%2:s1|", instr.String())
	require.Panics(t, func() { b.VOP3(OpVMadmkF32, b.Def(V1), OperandTemp(s0)) })
}

func TestBuilder_InsertPhi(t *testing.T) {
	b := newTestBuilder(GFX9, 64)
	b.Pseudo(OpPLogicalStart, nil)
	phi1 := b.Create(OpPPhi, FormatPseudo, 0, 1)
	phi1.Definitions[0] = b.Def(V1)
	b.InsertPhi(phi1)
	phi2 := b.Create(OpPLinearPhi, FormatPseudo, 0, 1)
	phi2.Definitions[0] = b.Def(S1)
	b.InsertPhi(phi2)

	instrs := b.Block().Instructions
	require.Len(t, instrs, 3)
	require.Same(t, phi1, instrs[0])
	require.Same(t, phi2, instrs[1])
	require.Equal(t, OpPLogicalStart, instrs[2].Opcode)
	require.Panics(t, func() { b.InsertPhi(instrs[2]) })
}

func TestBuilder_Vectors(t *testing.T) {
	b := newTestBuilder(GFX9, 64)
	x, y := b.Tmp(V1), b.Tmp(V1)
	vec := b.CreateVector(b.Def(V2), OperandTemp(x), OperandTemp(y)).Result()
	require.Equal(t, V2, vec.RegClass())
	require.Panics(t, func() { b.CreateVector(b.Def(V3), OperandTemp(x), OperandTemp(y)) })
	split := b.SplitVector([]Definition{b.Def(V1), b.Def(V1)}, OperandTemp(vec))
	require.Len(t, split.Definitions, 2)
	require.Panics(t, func() { b.SplitVector([]Definition{b.Def(V1)}, OperandTemp(vec)) })
	ext := b.ExtractVector(b.Def(V1), OperandTemp(vec), 1)
	require.Equal(t, uint32(1), ext.Operands[1].Constant())
}

func TestBuilder_AsUniform(t *testing.T) {
	b := newTestBuilder(GFX9, 64)
	v := b.Tmp(V2)
	s := b.AsUniform(OperandTemp(v))
	require.Equal(t, S2, s.RegClass())
	require.Equal(t, OpPAsUniform, b.Block().Instructions[0].Opcode)
}
