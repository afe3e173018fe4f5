// Package testcases holds small shaders exercising each part of the selector. They are shared by
// the tests and the command line tool.
package testcases

import (
	"github.com/wavesel/wavesel/ir"
)

// TestCase is a named set of shaders lowered into one program.
type TestCase struct {
	Name string
	// Build returns fresh shaders. Lowering writes the divergence of their values, so a built
	// shader is not shared between compilations.
	Build func() []*ir.Shader
}

var (
	Empty = TestCase{Name: "empty", Build: single(func(b *ir.Builder) {})}

	UniformIf = TestCase{Name: "uniform_if", Build: single(func(b *ir.Builder) {
		cond := b.ALU(ir.OpIEq, pushConstant(b, 0), b.Imm32(0))
		ifThenElse(b, cond, b.Imm32(1), b.Imm32(2))
	})}

	DivergentIf = TestCase{Name: "divergent_if", Build: single(func(b *ir.Builder) {
		idx := b.Intrinsic(ir.IntrinsicLoadLocalInvocationIndex, 1, 32).Def
		cond := b.ALU(ir.OpULt, idx, b.Imm32(16))
		ifThenElse(b, cond, b.Imm32(1), b.Imm32(2))
	})}

	NestedIf = TestCase{Name: "nested_if", Build: single(func(b *ir.Builder) {
		idx := b.Intrinsic(ir.IntrinsicLoadLocalInvocationIndex, 1, 32).Def
		outer := b.ALU(ir.OpIEq, pushConstant(b, 0), b.Imm32(0))
		b.PushIf(outer)
		inner := b.ALU(ir.OpULt, idx, b.Imm32(7))
		b.PushIf(inner)
		storeSSBO(b, idx, 0)
		b.PopIf()
		b.PushElse()
		storeSSBO(b, b.Imm32(3), 4)
		b.PopIf()
	})}

	UniformLoop = TestCase{Name: "uniform_loop", Build: single(func(b *ir.Builder) {
		n := pushConstant(b, 0)
		counterLoop(b, n)
	})}

	DivergentBreak = TestCase{Name: "divergent_break", Build: single(func(b *ir.Builder) {
		n := b.Intrinsic(ir.IntrinsicLoadLocalInvocationIndex, 1, 32).Def
		counterLoop(b, n)
	})}

	DivergentContinue = TestCase{Name: "divergent_continue", Build: single(func(b *ir.Builder) {
		idx := b.Intrinsic(ir.IntrinsicLoadLocalInvocationIndex, 1, 32).Def
		n := pushConstant(b, 0)
		zero := b.Imm32(0)
		entry := b.CurrentBlock()
		b.PushLoop()
		i := b.Phi(1, 32)
		done := b.ALU(ir.OpUGe, i.Def, n)
		b.PushIf(done)
		b.Break()
		b.PopIf()
		next := b.ALU(ir.OpIAdd, i.Def, b.Imm32(1))
		odd := b.ALU(ir.OpIAnd, b.ALU(ir.OpIXor, idx, i.Def), b.Imm32(1))
		b.PushIf(b.ALU(ir.OpINe, odd, b.Imm32(0)))
		cont := b.CurrentBlock()
		b.Continue()
		b.PopIf()
		storeSSBOAt(b, i.Def, idx)
		latch := b.CurrentBlock()
		b.PopLoop()
		b.AddPhiSrc(i, entry, zero)
		b.AddPhiSrc(i, cont, next)
		b.AddPhiSrc(i, latch, next)
	})}

	DiscardInLoop = TestCase{Name: "discard_in_loop", Build: func() []*ir.Shader {
		b := ir.NewBuilder("discard_in_loop", ir.StageFragment)
		coord := b.Intrinsic(ir.IntrinsicLoadFragCoord, 4, 32).Def
		x := b.Channel(coord, 0)
		n := pushConstant(b, 0)
		zero := b.Imm32(0)
		entry := b.CurrentBlock()
		b.PushLoop()
		i := b.Phi(1, 32)
		done := b.ALU(ir.OpUGe, i.Def, n)
		b.PushIf(done)
		b.Break()
		b.PopIf()
		f := b.ALU(ir.OpU2F32, i.Def)
		b.Intrinsic(ir.IntrinsicDiscardIf, 0, 0, b.ALU(ir.OpFLt, x, f))
		next := b.ALU(ir.OpIAdd, i.Def, b.Imm32(1))
		latch := b.CurrentBlock()
		b.PopLoop()
		b.AddPhiSrc(i, entry, zero)
		b.AddPhiSrc(i, latch, next)
		b.Intrinsic(ir.IntrinsicStoreOutput, 0, 0, coord)
		s := b.Finish()
		s.NumOutputs = 1
		return []*ir.Shader{s}
	}}

	AtomicUnused = TestCase{Name: "atomic_unused", Build: single(func(b *ir.Builder) {
		a := b.Intrinsic(ir.IntrinsicSSBOAtomicAdd, 1, 32, b.Imm32(16), b.Imm32(1))
		a.Binding = ir.Binding{Set: 0, Binding: 1}
	})}

	AtomicUsed = TestCase{Name: "atomic_used", Build: single(func(b *ir.Builder) {
		a := b.Intrinsic(ir.IntrinsicSSBOAtomicAdd, 1, 32, b.Imm32(16), b.Imm32(1))
		a.Binding = ir.Binding{Set: 0, Binding: 1}
		storeSSBO(b, a.Def, 0)
	})}

	Load12 = TestCase{Name: "load_12_bytes", Build: single(func(b *ir.Builder) {
		idx := b.Intrinsic(ir.IntrinsicLoadLocalInvocationIndex, 1, 32).Def
		offset := b.ALU(ir.OpIMul, idx, b.Imm32(12))
		ld := b.Intrinsic(ir.IntrinsicLoadSSBO, 3, 32, offset)
		ld.Binding = ir.Binding{Set: 0, Binding: 1}
		ld.AlignMul = 4
		st := b.Intrinsic(ir.IntrinsicStoreSSBO, 0, 0, ld.Def, offset)
		st.AlignMul = 4
	})}

	SharedMemory = TestCase{Name: "shared_memory", Build: func() []*ir.Shader {
		b := ir.NewBuilder("shared_memory", ir.StageCompute)
		idx := b.Intrinsic(ir.IntrinsicLoadLocalInvocationIndex, 1, 32).Def
		addr := b.ALU(ir.OpIShl, idx, b.Imm32(2))
		b.Intrinsic(ir.IntrinsicStoreShared, 0, 0, idx, addr).AlignMul = 4
		b.Intrinsic(ir.IntrinsicMemoryBarrierShared, 0, 0)
		b.Intrinsic(ir.IntrinsicControlBarrier, 0, 0)
		other := b.ALU(ir.OpIXor, addr, b.Imm32(4))
		ld := b.Intrinsic(ir.IntrinsicLoadShared, 1, 32, other)
		ld.AlignMul = 4
		storeSSBOAt(b, ld.Def, idx)
		s := b.Finish()
		s.WorkgroupSize = [3]int{128, 1, 1}
		s.SharedBytes = 512
		return []*ir.Shader{s}
	}}

	VoteAny = TestCase{Name: "vote_any", Build: single(func(b *ir.Builder) {
		idx := b.Intrinsic(ir.IntrinsicLoadLocalInvocationIndex, 1, 32).Def
		anySet := b.Intrinsic(ir.IntrinsicVoteAny, 1, 1, b.ALU(ir.OpIEq, idx, pushConstant(b, 0))).Def
		storeSSBO(b, b.ALU(ir.OpB2I32, anySet), 0)
	})}

	Ballot = TestCase{Name: "ballot", Build: single(func(b *ir.Builder) {
		idx := b.Intrinsic(ir.IntrinsicLoadSubgroupInvocation, 1, 32).Def
		odd := b.ALU(ir.OpINe, b.ALU(ir.OpIAnd, idx, b.Imm32(1)), b.Imm32(0))
		mask := b.Intrinsic(ir.IntrinsicBallot, 1, 64, odd).Def
		storeSSBO(b, mask, 0)
	})}

	Shuffle = TestCase{Name: "shuffle", Build: single(func(b *ir.Builder) {
		idx := b.Intrinsic(ir.IntrinsicLoadSubgroupInvocation, 1, 32).Def
		src := b.ALU(ir.OpIXor, idx, b.Imm32(5))
		v := b.Intrinsic(ir.IntrinsicShuffle, 1, 32, idx, src).Def
		storeSSBOAt(b, v, idx)
	})}

	Reduce = TestCase{Name: "reduce", Build: single(func(b *ir.Builder) {
		idx := b.Intrinsic(ir.IntrinsicLoadSubgroupInvocation, 1, 32).Def
		r := b.Intrinsic(ir.IntrinsicReduce, 1, 32, idx)
		r.ReduceOp = ir.OpIAdd
		scan := b.Intrinsic(ir.IntrinsicExclusiveScan, 1, 32, idx)
		scan.ReduceOp = ir.OpIAdd
		storeSSBO(b, r.Def, 0)
		storeSSBOAt(b, scan.Def, idx)
	})}

	ClusteredReduce = TestCase{Name: "clustered_reduce", Build: single(func(b *ir.Builder) {
		idx := b.Intrinsic(ir.IntrinsicLoadSubgroupInvocation, 1, 32).Def
		sum := b.Intrinsic(ir.IntrinsicReduce, 1, 32, idx)
		sum.ReduceOp = ir.OpIAdd
		sum.ClusterSize = 4
		odd := b.ALU(ir.OpINe, b.ALU(ir.OpIAnd, idx, b.Imm32(1)), b.Imm32(0))
		all := b.Intrinsic(ir.IntrinsicReduce, 1, 1, odd)
		all.ReduceOp = ir.OpIAnd
		all.ClusterSize = 8
		anySet := b.Intrinsic(ir.IntrinsicReduce, 1, 1, odd)
		anySet.ReduceOp = ir.OpIOr
		anySet.ClusterSize = 8
		parity := b.Intrinsic(ir.IntrinsicReduce, 1, 1, odd)
		parity.ReduceOp = ir.OpIXor
		parity.ClusterSize = 2
		storeSSBOAt(b, sum.Def, idx)
		flags := b.ALU(ir.OpIOr, b.ALU(ir.OpB2I32, all.Def), b.ALU(ir.OpIShl, b.ALU(ir.OpB2I32, anySet.Def), b.Imm32(1)))
		flags = b.ALU(ir.OpIOr, flags, b.ALU(ir.OpIShl, b.ALU(ir.OpB2I32, parity.Def), b.Imm32(2)))
		storeSSBOAt(b, flags, b.ALU(ir.OpIAdd, idx, b.Imm32(64)))
	})}

	Texture = TestCase{Name: "texture", Build: func() []*ir.Shader {
		b := ir.NewBuilder("texture", ir.StageFragment)
		bary := b.Intrinsic(ir.IntrinsicLoadBarycentricPixel, 2, 32).Def
		uv := b.Intrinsic(ir.IntrinsicLoadInterpolatedInput, 2, 32, bary)
		uv.Base = 1
		tex := b.Tex(ir.TexInfo{Op: ir.TexOpTex, Texture: ir.Binding{Set: 1}, Sampler: ir.Binding{Set: 1, Binding: 1}},
			ir.Dim2D, false, 4, 32, []ir.TexSrcType{ir.TexSrcCoord}, uv.Def)
		b.Intrinsic(ir.IntrinsicStoreOutput, 0, 0, tex.Def)
		s := b.Finish()
		s.NumOutputs = 1
		return []*ir.Shader{s}
	}}

	ImageStore = TestCase{Name: "image_store", Build: single(func(b *ir.Builder) {
		id := b.Intrinsic(ir.IntrinsicLoadLocalInvocationID, 3, 32).Def
		coord := b.Vec(b.Channel(id, 0), b.Channel(id, 1))
		ld := b.Intrinsic(ir.IntrinsicImageLoad, 4, 32, coord, b.Imm32(0))
		ld.Binding = ir.Binding{Set: 1}
		ld.Dim = ir.Dim2D
		st := b.Intrinsic(ir.IntrinsicImageStore, 0, 0, coord, b.Imm32(0), ld.Def)
		st.Binding = ir.Binding{Set: 1, Binding: 1}
		st.Dim = ir.Dim2D
	})}

	VertexExport = TestCase{Name: "vertex_export", Build: func() []*ir.Shader {
		return []*ir.Shader{vertexShader("vertex_export")}
	}}

	FragmentNull = TestCase{Name: "fragment_null_export", Build: func() []*ir.Shader {
		b := ir.NewBuilder("fragment_null_export", ir.StageFragment)
		b.Intrinsic(ir.IntrinsicDiscard, 0, 0)
		return []*ir.Shader{b.Finish()}
	}}

	MergedVSGS = TestCase{Name: "merged_vs_gs", Build: func() []*ir.Shader {
		vs := vertexShader("merged_vs")
		b := ir.NewBuilder("merged_gs", ir.StageGeometry)
		pos := b.Intrinsic(ir.IntrinsicLoadInput, 4, 32)
		color := b.Intrinsic(ir.IntrinsicLoadInput, 4, 32)
		color.Base = 1
		b.Intrinsic(ir.IntrinsicStoreOutput, 0, 0, pos.Def)
		out := b.Intrinsic(ir.IntrinsicStoreOutput, 0, 0, color.Def)
		out.Base = 1
		gs := b.Finish()
		gs.NumOutputs = 2
		return []*ir.Shader{vs, gs}
	}}

	Float64Floor = TestCase{Name: "f64_floor", Build: single(func(b *ir.Builder) {
		ld := b.Intrinsic(ir.IntrinsicLoadSSBO, 1, 64, b.Imm32(0))
		ld.Binding = ir.Binding{Set: 0, Binding: 1}
		ld.AlignMul = 8
		floor := b.ALU(ir.OpFFloor, ld.Def)
		st := b.Intrinsic(ir.IntrinsicStoreSSBO, 0, 0, floor, b.Imm32(8))
		st.AlignMul = 8
	})}

	HalfFMA = TestCase{Name: "f16_fma", Build: single(func(b *ir.Builder) {
		idx := b.Intrinsic(ir.IntrinsicLoadLocalInvocationIndex, 1, 32).Def
		h := b.ALU(ir.OpF2F16, b.ALU(ir.OpU2F32, idx))
		fma := b.ALU(ir.OpFFma, h, h, h)
		storeSSBOAt(b, b.ALU(ir.OpF2F32, fma), idx)
	})}
)

// All lists every test case.
var All = []TestCase{
	Empty, UniformIf, DivergentIf, NestedIf, UniformLoop, DivergentBreak, DivergentContinue,
	DiscardInLoop, AtomicUnused, AtomicUsed, Load12, SharedMemory, VoteAny, Ballot, Shuffle,
	Reduce, ClusteredReduce, Texture, ImageStore, VertexExport, FragmentNull, MergedVSGS, Float64Floor, HalfFMA,
}

// Lookup returns the test case named name.
func Lookup(name string) (TestCase, bool) {
	for _, tc := range All {
		if tc.Name == name {
			return tc, true
		}
	}
	return TestCase{}, false
}

// single builds a compute shader with a 64-invocation workgroup.
func single(body func(b *ir.Builder)) func() []*ir.Shader {
	return func() []*ir.Shader {
		b := ir.NewBuilder("main", ir.StageCompute)
		body(b)
		s := b.Finish()
		s.WorkgroupSize = [3]int{64, 1, 1}
		return []*ir.Shader{s}
	}
}

func pushConstant(b *ir.Builder, offset uint32) *ir.Def {
	ld := b.Intrinsic(ir.IntrinsicLoadPushConstant, 1, 32, b.Imm32(offset))
	ld.AlignMul = 4
	return ld.Def
}

func storeSSBO(b *ir.Builder, v *ir.Def, offset uint32) {
	st := b.Intrinsic(ir.IntrinsicStoreSSBO, 0, 0, v, b.Imm32(offset))
	st.AlignMul = 4
}

// storeSSBOAt stores v at the index-th dword.
func storeSSBOAt(b *ir.Builder, v, index *ir.Def) {
	st := b.Intrinsic(ir.IntrinsicStoreSSBO, 0, 0, v, b.ALU(ir.OpIShl, index, b.Imm32(2)))
	st.AlignMul = 4
}

// ifThenElse stores then or els depending on cond, through a phi at the merge.
func ifThenElse(b *ir.Builder, cond, then, els *ir.Def) {
	b.PushIf(cond)
	thenBlk := b.CurrentBlock()
	b.PushElse()
	elseBlk := b.CurrentBlock()
	b.PopIf()
	phi := b.Phi(1, 32)
	b.AddPhiSrc(phi, thenBlk, then)
	b.AddPhiSrc(phi, elseBlk, els)
	storeSSBO(b, phi.Def, 0)
}

// counterLoop counts from zero to n, storing the counter every iteration.
func counterLoop(b *ir.Builder, n *ir.Def) {
	zero := b.Imm32(0)
	entry := b.CurrentBlock()
	b.PushLoop()
	i := b.Phi(1, 32)
	done := b.ALU(ir.OpUGe, i.Def, n)
	b.PushIf(done)
	b.Break()
	b.PopIf()
	storeSSBOAt(b, i.Def, i.Def)
	next := b.ALU(ir.OpIAdd, i.Def, b.Imm32(1))
	latch := b.CurrentBlock()
	b.PopLoop()
	b.AddPhiSrc(i, entry, zero)
	b.AddPhiSrc(i, latch, next)
}

// vertexShader fetches a position and a color and exports both.
func vertexShader(name string) *ir.Shader {
	b := ir.NewBuilder(name, ir.StageVertex)
	pos := b.Intrinsic(ir.IntrinsicLoadInput, 4, 32)
	color := b.Intrinsic(ir.IntrinsicLoadInput, 4, 32)
	color.Base = 1
	b.Intrinsic(ir.IntrinsicStoreOutput, 0, 0, pos.Def)
	out := b.Intrinsic(ir.IntrinsicStoreOutput, 0, 0, color.Def)
	out.Base = 1
	s := b.Finish()
	s.NumOutputs = 2
	return s
}
