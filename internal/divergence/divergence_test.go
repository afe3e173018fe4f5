package divergence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wavesel/wavesel/ir"
)

func TestAnalyze_Sources(t *testing.T) {
	for _, tc := range []struct {
		name      string
		build     func(b *ir.Builder) *ir.Def
		divergent bool
	}{
		{
			name:  "constant",
			build: func(b *ir.Builder) *ir.Def { return b.Imm32(7) },
		},
		{
			name: "local invocation id",
			build: func(b *ir.Builder) *ir.Def {
				return b.Intrinsic(ir.IntrinsicLoadLocalInvocationID, 3, 32).Def
			},
			divergent: true,
		},
		{
			name: "workgroup id plus constant",
			build: func(b *ir.Builder) *ir.Def {
				id := b.Channel(b.Intrinsic(ir.IntrinsicLoadWorkgroupID, 3, 32).Def, 0)
				return b.ALU(ir.OpIAdd, id, b.Imm32(1))
			},
		},
		{
			name: "ssbo load at divergent offset",
			build: func(b *ir.Builder) *ir.Def {
				idx := b.Channel(b.Intrinsic(ir.IntrinsicLoadLocalInvocationID, 3, 32).Def, 0)
				return b.Intrinsic(ir.IntrinsicLoadSSBO, 1, 32, idx).Def
			},
			divergent: true,
		},
		{
			name: "volatile ssbo load",
			build: func(b *ir.Builder) *ir.Def {
				ld := b.Intrinsic(ir.IntrinsicLoadSSBO, 1, 32, b.Imm32(0))
				ld.Access = ir.AccessVolatile
				return ld.Def
			},
			divergent: true,
		},
		{
			name: "atomic",
			build: func(b *ir.Builder) *ir.Def {
				return b.Intrinsic(ir.IntrinsicSSBOAtomicAdd, 1, 32, b.Imm32(0), b.Imm32(1)).Def
			},
			divergent: true,
		},
		{
			name: "full reduction",
			build: func(b *ir.Builder) *ir.Def {
				idx := b.Channel(b.Intrinsic(ir.IntrinsicLoadLocalInvocationID, 3, 32).Def, 0)
				red := b.Intrinsic(ir.IntrinsicReduce, 1, 32, idx)
				red.ReduceOp = ir.OpIAdd
				return red.Def
			},
		},
		{
			name: "clustered reduction",
			build: func(b *ir.Builder) *ir.Def {
				idx := b.Channel(b.Intrinsic(ir.IntrinsicLoadLocalInvocationID, 3, 32).Def, 0)
				red := b.Intrinsic(ir.IntrinsicReduce, 1, 32, idx)
				red.ReduceOp = ir.OpIAdd
				red.ClusterSize = 4
				return red.Def
			},
			divergent: true,
		},
		{
			name: "read first invocation",
			build: func(b *ir.Builder) *ir.Def {
				idx := b.Channel(b.Intrinsic(ir.IntrinsicLoadLocalInvocationID, 3, 32).Def, 0)
				return b.Intrinsic(ir.IntrinsicReadFirstInvocation, 1, 32, idx).Def
			},
		},
		{
			name: "derivative of uniform",
			build: func(b *ir.Builder) *ir.Def {
				return b.ALU(ir.OpFddx, b.ImmF32(1))
			},
			divergent: true,
		},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			b := ir.NewBuilder(tc.name, ir.StageCompute)
			d := tc.build(b)
			s := b.Finish()
			Analyze(context.Background(), s, 64)
			require.Equal(t, tc.divergent, d.Divergent)
		})
	}
}

func TestAnalyze_DivergentIfPhi(t *testing.T) {
	b := ir.NewBuilder("if", ir.StageCompute)
	idx := b.Channel(b.Intrinsic(ir.IntrinsicLoadLocalInvocationID, 3, 32).Def, 0)
	cond := b.ALU(ir.OpULt, idx, b.Imm32(4))
	n := b.PushIf(cond)
	thenBlk := b.CurrentBlock()
	one := b.Imm32(1)
	b.PushElse()
	elseBlk := b.CurrentBlock()
	two := b.Imm32(2)
	b.PopIf()
	phi := b.Phi(1, 32)
	b.AddPhiSrc(phi, thenBlk, one)
	b.AddPhiSrc(phi, elseBlk, two)
	s := b.Finish()

	res := Analyze(context.Background(), s, 64)
	require.True(t, cond.Divergent)
	require.False(t, one.Divergent)
	require.False(t, two.Divergent)
	require.True(t, phi.Def.Divergent)
	require.True(t, res.DivergentIfs[n])
}

func TestAnalyze_UniformIfPhi(t *testing.T) {
	b := ir.NewBuilder("if", ir.StageCompute)
	wg := b.Channel(b.Intrinsic(ir.IntrinsicLoadWorkgroupID, 3, 32).Def, 0)
	cond := b.ALU(ir.OpIEq, wg, b.Imm32(0))
	n := b.PushIf(cond)
	thenBlk := b.CurrentBlock()
	one := b.Imm32(1)
	b.PushElse()
	elseBlk := b.CurrentBlock()
	two := b.Imm32(2)
	b.PopIf()
	phi := b.Phi(1, 32)
	b.AddPhiSrc(phi, thenBlk, one)
	b.AddPhiSrc(phi, elseBlk, two)
	s := b.Finish()

	res := Analyze(context.Background(), s, 64)
	require.False(t, phi.Def.Divergent)
	require.False(t, res.DivergentIfs[n])
}

func TestAnalyze_DivergentLoop(t *testing.T) {
	// i = 0; loop { if (i >= tid) break; i++ } ; use i after the loop.
	b := ir.NewBuilder("loop", ir.StageCompute)
	tid := b.Channel(b.Intrinsic(ir.IntrinsicLoadLocalInvocationID, 3, 32).Def, 0)
	zero := b.Imm32(0)
	pre := b.CurrentBlock()
	loop := b.PushLoop()
	i := b.Phi(1, 32)
	done := b.ALU(ir.OpUGe, i.Def, tid)
	b.PushIf(done)
	b.Break()
	b.PushElse()
	b.PopIf()
	next := b.ALU(ir.OpIAdd, i.Def, b.Imm32(1))
	latch := b.CurrentBlock()
	b.PopLoop()
	b.AddPhiSrc(i, pre, zero)
	b.AddPhiSrc(i, latch, next)
	b.ALU(ir.OpIAdd, i.Def, i.Def)
	s := b.Finish()

	res := Analyze(context.Background(), s, 64)
	require.True(t, res.DivergentLoops[loop])
	require.True(t, i.Def.Divergent)
	require.True(t, next.Divergent)
	require.True(t, done.Divergent)
}

func TestAnalyze_UniformLoop(t *testing.T) {
	b := ir.NewBuilder("loop", ir.StageCompute)
	n := b.Channel(b.Intrinsic(ir.IntrinsicLoadNumWorkgroups, 3, 32).Def, 0)
	zero := b.Imm32(0)
	pre := b.CurrentBlock()
	loop := b.PushLoop()
	i := b.Phi(1, 32)
	done := b.ALU(ir.OpUGe, i.Def, n)
	b.PushIf(done)
	b.Break()
	b.PushElse()
	b.PopIf()
	next := b.ALU(ir.OpIAdd, i.Def, b.Imm32(1))
	latch := b.CurrentBlock()
	b.PopLoop()
	b.AddPhiSrc(i, pre, zero)
	b.AddPhiSrc(i, latch, next)
	s := b.Finish()

	res := Analyze(context.Background(), s, 64)
	require.False(t, res.DivergentLoops[loop])
	require.False(t, i.Def.Divergent)
	require.False(t, next.Divergent)
}
