package ir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func indices(blocks []*Block) []int {
	ret := make([]int, 0, len(blocks))
	for _, b := range blocks {
		if b != nil {
			ret = append(ret, b.Index)
		}
	}
	return ret
}

func TestBuilder_If(t *testing.T) {
	b := NewBuilder("if", StageCompute)
	cond := b.ALU(OpIEq, b.Imm32(1), b.Imm32(2))
	entry := b.CurrentBlock()
	b.PushIf(cond)
	one := b.Imm32(1)
	thenEnd := b.CurrentBlock()
	b.PushElse()
	two := b.Imm32(2)
	elseEnd := b.CurrentBlock()
	b.PopIf()
	phi := b.Phi(1, 32)
	b.AddPhiSrc(phi, thenEnd, one)
	b.AddPhiSrc(phi, elseEnd, two)
	s := b.Finish()

	require.Equal(t, 4, s.NumBlocks)
	require.Equal(t, 0, entry.Index)
	require.Equal(t, []int{1, 2}, indices(entry.Succs[:]))
	require.Equal(t, []int{3}, indices(thenEnd.Succs[:]))
	require.Equal(t, []int{3}, indices(elseEnd.Succs[:]))
	require.Equal(t, []int{1, 2}, indices(phi.Block.Preds))
	require.Equal(t, []*If{s.Body[1].(*If)}, cond.IfUses())
	require.Equal(t, []*Instr{phi}, one.Uses())
	require.Equal(t, 1, cond.BitSize)
}

func TestBuilder_Loop(t *testing.T) {
	b := NewBuilder("loop", StageCompute)
	init := b.Imm32(0)
	preheader := b.CurrentBlock()
	b.PushLoop()
	header := b.CurrentBlock()
	phi := b.Phi(1, 32)
	b.AddPhiSrc(phi, preheader, init)
	next := b.ALU(OpIAdd, phi.Def, b.Imm32(1))
	done := b.ALU(OpUGe, next, b.Imm32(10))
	b.PushIf(done)
	b.Break()
	b.PushElse()
	b.PopIf()
	latch := b.CurrentBlock()
	b.AddPhiSrc(phi, latch, next)
	b.PopLoop()
	exit := b.CurrentBlock()
	s := b.Finish()

	// preheader, header, then, else, latch, exit
	require.Equal(t, 6, s.NumBlocks)
	require.Equal(t, []int{header.Index}, indices(preheader.Succs[:]))
	require.Equal(t, []int{0, 4}, indices(header.Preds))
	require.Equal(t, []int{header.Index}, indices(latch.Succs[:]))
	require.Equal(t, []int{2}, indices(exit.Preds))
	require.Equal(t, 5, exit.Index)
	require.True(t, s.Blocks()[2].EndsWithJump())
	require.Len(t, next.Uses(), 2)
}

func TestBuilder_Misuse(t *testing.T) {
	b := NewBuilder("bad", StageCompute)
	require.Panics(t, func() { b.Break() })
	require.Panics(t, func() { b.ALU(OpIAdd, b.Imm32(1)) })
	require.Panics(t, func() { b.PopIf() })
	b.Imm32(1)
	require.Panics(t, func() { b.Phi(1, 32) })
	b.PushLoop()
	require.Panics(t, func() { b.Finish() })
	b.Break()
	require.Panics(t, func() { b.Imm32(3) })
}

func TestALUOp_ResultSize(t *testing.T) {
	b := NewBuilder("alu", StageCompute)
	x64 := b.ImmF64(1.5)
	c := b.ImmBool(true)
	for _, tc := range []struct {
		name  string
		def   *Def
		bits  int
		comps int
	}{
		{name: "same as src", def: b.ALU(OpFFloor, x64), bits: 64, comps: 1},
		{name: "compare", def: b.ALU(OpFLt, x64, x64), bits: 1, comps: 1},
		{name: "bcsel", def: b.ALU(OpBCsel, c, x64, x64), bits: 64, comps: 1},
		{name: "conversion", def: b.ALU(OpF2F32, x64), bits: 32, comps: 1},
		{name: "vec3", def: b.Vec(b.Imm32(1), b.Imm32(2), b.Imm32(3)), bits: 32, comps: 3},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.bits, tc.def.BitSize)
			require.Equal(t, tc.comps, tc.def.NumComponents)
		})
	}
}

func TestIntrinsic_Atomic(t *testing.T) {
	op, ok := IntrinsicSharedAtomicUMax.Atomic()
	require.True(t, ok)
	require.Equal(t, AtomicUMax, op)
	op, ok = IntrinsicImageAtomicCompSwap.Atomic()
	require.True(t, ok)
	require.Equal(t, AtomicCompSwap, op)
	_, ok = IntrinsicLoadSSBO.Atomic()
	require.False(t, ok)
	require.Equal(t, "ssbo_atomic_add", IntrinsicSSBOAtomicAdd.String())
}

func TestInstr_Align(t *testing.T) {
	for _, tc := range []struct {
		mul, offset, exp int
	}{
		{mul: 16, offset: 0, exp: 16},
		{mul: 16, offset: 4, exp: 4},
		{mul: 16, offset: 8, exp: 8},
		{mul: 8, offset: 6, exp: 2},
	} {
		instr := &Instr{AlignMul: tc.mul, AlignOffset: tc.offset}
		require.Equal(t, tc.exp, instr.Align())
	}
	require.Equal(t, 4, (&Instr{}).Align())
}
