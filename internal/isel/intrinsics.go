package isel

import (
	"github.com/wavesel/wavesel/gcn"
	"github.com/wavesel/wavesel/ir"
)

// visitIntrinsic lowers an intrinsic instruction.
func (s *selector) visitIntrinsic(instr *ir.Instr) {
	if op, ok := instr.Intrinsic.Atomic(); ok {
		switch {
		case instr.Intrinsic <= ir.IntrinsicSSBOAtomicCompSwap:
			s.visitSSBOAtomic(instr, op)
		case instr.Intrinsic <= ir.IntrinsicSharedAtomicCompSwap:
			s.visitSharedAtomic(instr, op)
		case instr.Intrinsic <= ir.IntrinsicGlobalAtomicCompSwap:
			s.visitGlobalAtomic(instr, op)
		default:
			s.visitImageAtomic(instr, op)
		}
		return
	}

	switch instr.Intrinsic {
	case ir.IntrinsicLoadSSBO:
		s.visitLoadBuffer(instr, gcn.BarrierBuffer)
	case ir.IntrinsicLoadUBO:
		s.visitLoadBuffer(instr, 0)
	case ir.IntrinsicStoreSSBO:
		s.visitStoreSSBO(instr)
	case ir.IntrinsicLoadPushConstant:
		s.visitLoadPushConstant(instr)
	case ir.IntrinsicLoadShared:
		s.visitLoadShared(instr)
	case ir.IntrinsicStoreShared:
		s.visitStoreShared(instr)
	case ir.IntrinsicLoadGlobal:
		s.visitLoadGlobal(instr)
	case ir.IntrinsicStoreGlobal:
		s.visitStoreGlobal(instr)
	case ir.IntrinsicLoadScratch:
		s.visitLoadScratch(instr)
	case ir.IntrinsicStoreScratch:
		s.visitStoreScratch(instr)

	case ir.IntrinsicImageLoad:
		s.visitImageLoad(instr)
	case ir.IntrinsicImageStore:
		s.visitImageStore(instr)
	case ir.IntrinsicImageSize:
		s.visitImageSize(instr)

	case ir.IntrinsicControlBarrier:
		s.visitControlBarrier()
	case ir.IntrinsicMemoryBarrier, ir.IntrinsicMemoryBarrierBuffer, ir.IntrinsicMemoryBarrierImage,
		ir.IntrinsicMemoryBarrierShared, ir.IntrinsicGroupMemoryBarrier:
		s.visitMemoryBarrier(instr)

	case ir.IntrinsicDiscard, ir.IntrinsicDiscardIf:
		s.visitDiscard(instr)

	case ir.IntrinsicLoadLocalInvocationID:
		s.visitLoadArg(instr, s.args.localInvocationIDs)
	case ir.IntrinsicLoadWorkgroupID:
		s.visitLoadArg(instr, s.args.workgroupIDs)
	case ir.IntrinsicLoadNumWorkgroups:
		s.visitLoadArg(instr, s.args.numWorkgroups)
	case ir.IntrinsicLoadLocalInvocationIndex:
		s.visitLocalInvocationIndex(instr)
	case ir.IntrinsicLoadSubgroupInvocation:
		s.visitSubgroupInvocation(instr)
	case ir.IntrinsicLoadSubgroupSize:
		s.emitMove(s.temp(instr.Def), gcn.OperandConst(uint32(s.prog.WaveSize)))
	case ir.IntrinsicLoadVertexID:
		s.visitLoadArg(instr, s.args.vertexID)
	case ir.IntrinsicLoadInstanceID:
		s.visitLoadArg(instr, s.args.instanceID)
	case ir.IntrinsicLoadFragCoord:
		s.visitLoadArg(instr, s.args.fragCoord)
	case ir.IntrinsicLoadFrontFace:
		s.visitFrontFace(instr)
	case ir.IntrinsicLoadSampleID:
		s.visitSampleID(instr)
	case ir.IntrinsicLoadHelperInvocation:
		s.visitHelperInvocation(instr)

	case ir.IntrinsicLoadInput:
		s.visitLoadInput(instr)
	case ir.IntrinsicLoadBarycentricPixel:
		s.visitLoadArg(instr, s.args.baryPersp)
	case ir.IntrinsicLoadInterpolatedInput:
		s.visitInterpolatedInput(instr)
	case ir.IntrinsicStoreOutput:
		s.visitStoreOutput(instr)

	case ir.IntrinsicReduce:
		s.visitReduce(instr)
	case ir.IntrinsicInclusiveScan, ir.IntrinsicExclusiveScan:
		s.visitScan(instr)
	case ir.IntrinsicBallot:
		s.visitBallot(instr)
	case ir.IntrinsicVoteAny, ir.IntrinsicVoteAll:
		s.visitVote(instr)
	case ir.IntrinsicElect:
		s.visitElect(instr)
	case ir.IntrinsicFirstInvocation:
		s.visitFirstInvocation(instr)
	case ir.IntrinsicReadInvocation, ir.IntrinsicReadFirstInvocation:
		s.visitReadInvocation(instr)
	case ir.IntrinsicShuffle:
		s.visitShuffle(instr)
	case ir.IntrinsicQuadBroadcast, ir.IntrinsicQuadSwapHorizontal, ir.IntrinsicQuadSwapVertical, ir.IntrinsicQuadSwapDiagonal:
		s.visitQuad(instr)

	default:
		unsupported(instr.Intrinsic, "unknown intrinsic")
	}
}

// visitDiscard kills the lanes whose condition is set. The lanes stay in exec until the block
// is lowered, so the loops around it have to test for an empty exec at their back-edge.
func (s *selector) visitDiscard(instr *ir.Instr) {
	b := s.b
	cond := s.laneMaskConst(true)
	if instr.Intrinsic == ir.IntrinsicDiscardIf {
		cond = operand(s.boolLM(instr.Srcs[0]))
	}
	if s.stage != ir.StageFragment {
		unsupported(instr.Intrinsic, "not available in %s shaders", s.stage)
	}
	lm := b.SOP2(b.LaneOp(gcn.OpSAndB64), b.Def(s.prog.LaneMask), cond, b.Exec()).Result()
	b.Pseudo(gcn.OpPDiscardIf, nil, operand(lm))

	s.block.Kind |= gcn.BlockKindUsesDiscardIf
	s.prog.UsesDiscard = true
	s.prog.NeedsExactExec = true
	if s.cf.loopNestDepth > 0 || s.cf.parentIfDivergent {
		s.cf.execPotentiallyEmptyDiscard = true
	}
}
