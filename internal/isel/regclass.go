package isel

import (
	"github.com/wavesel/wavesel/gcn"
	"github.com/wavesel/wavesel/ir"
)

// vgprIntrinsics always produce per-lane registers, whatever the divergence of the result:
// their hardware instructions only write vgprs.
var vgprIntrinsics = map[ir.Intrinsic]bool{
	ir.IntrinsicLoadShared:               true,
	ir.IntrinsicLoadScratch:              true,
	ir.IntrinsicLoadGlobal:               true,
	ir.IntrinsicImageLoad:                true,
	ir.IntrinsicImageSize:                true,
	ir.IntrinsicLoadInput:                true,
	ir.IntrinsicLoadInterpolatedInput:    true,
	ir.IntrinsicLoadBarycentricPixel:     true,
	ir.IntrinsicLoadFragCoord:            true,
	ir.IntrinsicLoadLocalInvocationID:    true,
	ir.IntrinsicLoadLocalInvocationIndex: true,
	ir.IntrinsicLoadVertexID:             true,
	ir.IntrinsicLoadInstanceID:           true,
	ir.IntrinsicLoadSampleID:             true,
	ir.IntrinsicLoadSubgroupInvocation:   true,
	ir.IntrinsicShuffle:                  true,
	ir.IntrinsicQuadBroadcast:            true,
	ir.IntrinsicQuadSwapHorizontal:       true,
	ir.IntrinsicQuadSwapVertical:         true,
	ir.IntrinsicQuadSwapDiagonal:         true,
	ir.IntrinsicInclusiveScan:            true,
	ir.IntrinsicExclusiveScan:            true,
}

// vgprALUOps compute through VALU instructions even on uniform operands.
func vgprALUOp(op ir.ALUOp) bool {
	switch op {
	case ir.OpI2F32, ir.OpU2F32, ir.OpI2F64, ir.OpU2F64, ir.OpF2F16, ir.OpF2F32, ir.OpF2F64, ir.OpPackHalf2x16:
		return true
	}
	return op.IsFloat()
}

// regClassFor returns the class holding numComponents values of bitSize bits in the given file.
func regClassFor(t gcn.RegType, numComponents, bitSize int) gcn.RegClass {
	bytes := numComponents * bitSize / 8
	if bitSize < 8 {
		bytes = numComponents
	}
	if t == gcn.RegTypeVGPR {
		return gcn.NewSubdwordRegClass(bytes)
	}
	return gcn.NewRegClass(gcn.RegTypeSGPR, (bytes+3)/4)
}

// assignTemps gives every IR value its Temp. The register file of a value can depend on values
// defined later through phis, so classes are iterated to a fixpoint. A value only ever moves
// from sgpr to vgpr, which bounds the iteration.
func (s *selector) assignTemps() {
	rcs := make([]gcn.RegClass, s.shader.NumDefs)
	blocks := s.shader.Blocks()
	for changed := true; changed; {
		changed = false
		for _, blk := range blocks {
			for _, instr := range blk.Instrs {
				if instr.Def == nil {
					continue
				}
				rc := s.regClassOf(instr, rcs)
				if rc != rcs[instr.Def.Index] {
					rcs[instr.Def.Index] = rc
					changed = true
				}
			}
		}
	}
	for i, rc := range rcs {
		if rc != gcn.RegClassInvalid {
			s.temps[i] = s.prog.NewTemp(rc)
		}
	}
}

func (s *selector) regClassOf(instr *ir.Instr, rcs []gcn.RegClass) gcn.RegClass {
	d := instr.Def
	if d.BitSize == 1 {
		if d.NumComponents != 1 {
			unsupported(instr.Type, "boolean vectors")
		}
		if d.Divergent {
			return s.prog.LaneMask
		}
		return gcn.S1
	}

	isVGPR := func(src ir.Src) bool { return rcs[src.Def.Index].Type() == gcn.RegTypeVGPR }
	t := gcn.RegTypeSGPR
	if d.Divergent {
		t = gcn.RegTypeVGPR
	}
	switch instr.Type {
	case ir.InstrALU:
		if vgprALUOp(instr.ALU) {
			t = gcn.RegTypeVGPR
			break
		}
		srcs := instr.Srcs
		if instr.ALU == ir.OpBCsel {
			srcs = srcs[1:]
		}
		for _, src := range srcs {
			if isVGPR(src) {
				t = gcn.RegTypeVGPR
			}
		}
	case ir.InstrPhi:
		for _, p := range instr.Phi {
			if isVGPR(p.Src) {
				t = gcn.RegTypeVGPR
			}
		}
	case ir.InstrTex:
		t = gcn.RegTypeVGPR
	case ir.InstrIntrinsic:
		if _, ok := instr.Intrinsic.Atomic(); ok || vgprIntrinsics[instr.Intrinsic] {
			t = gcn.RegTypeVGPR
		}
	}
	return regClassFor(t, d.NumComponents, d.BitSize)
}
