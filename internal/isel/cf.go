package isel

import (
	"github.com/wavesel/wavesel/gcn"
	"github.com/wavesel/wavesel/internal/iselapi"
	"github.com/wavesel/wavesel/ir"
)

// visitCFList lowers a control-flow list. Nothing after a uniform jump is reachable.
func (s *selector) visitCFList(list []ir.Node) {
	for _, n := range list {
		if s.cf.hasBranch {
			return
		}
		switch n := n.(type) {
		case *ir.Block:
			s.visitBlock(n)
		case *ir.If:
			s.visitIf(n)
		case *ir.Loop:
			s.visitLoop(n)
		}
	}
}

func (s *selector) visitBlock(blk *ir.Block) {
	s.irBlock = blk
	for _, instr := range blk.Instrs {
		switch instr.Type {
		case ir.InstrALU:
			s.visitALU(instr)
		case ir.InstrIntrinsic:
			s.visitIntrinsic(instr)
		case ir.InstrTex:
			s.visitTex(instr)
		case ir.InstrLoadConst:
			s.visitLoadConst(instr)
		case ir.InstrUndef:
			s.visitUndef(instr)
		case ir.InstrPhi:
			s.visitPhi(instr)
		case ir.InstrJump:
			s.irToBlock[blk.Index] = s.block.Index
			s.visitJump(instr)
			return
		default:
			unsupported(instr.Type, "unknown instruction")
		}
	}
	s.irToBlock[blk.Index] = s.block.Index
}

// ifContext is the state of an if-statement being lowered.
type ifContext struct {
	cond  gcn.Temp
	ifIdx int
	// savedExec is the exec mask on entry of a divergent if, restored at the merge.
	savedExec gcn.Temp
	// branch is the conditional branch ending the block before the if.
	branch *gcn.Instruction
	invert *pendingBlock
	endif  *pendingBlock

	thenHasBranch       bool
	thenBranchDivergent bool

	divergentOld  bool
	discardOld    bool
	breakOld      bool
	breakDepthOld int
}

func (s *selector) visitIf(n *ir.If) {
	var ic ifContext
	if !n.Condition.Def.Divergent {
		s.beginUniformIfThen(&ic, s.boolSCC(n.Condition))
		s.visitCFList(n.Then)
		s.beginUniformIfElse(&ic)
		s.visitCFList(n.Else)
		s.endUniformIf(&ic)
		return
	}
	s.beginDivergentIfThen(&ic, s.boolLM(n.Condition))
	s.visitCFList(n.Then)
	s.beginDivergentIfElse(&ic)
	s.visitCFList(n.Else)
	s.endDivergentIf(&ic)
}

func (s *selector) beginUniformIfThen(ic *ifContext, cond gcn.Temp) {
	s.appendLogicalEnd()
	s.block.Kind |= gcn.BlockKindUniform
	ic.cond = cond
	ic.ifIdx = s.block.Index
	ic.branch = s.b.Branch(gcn.OpPCbranchZ, -1, -1, gcn.OperandSCC(cond))
	ic.endif = newPendingBlock(s.cf.loopNestDepth, s.block.Kind&gcn.BlockKindTopLevel)

	s.cf.hasBranch = false
	s.cf.parentLoop.hasDivergentBranch = false

	then := s.createBlock()
	ic.branch.Targets[1] = then.Index
	addEdge(ic.ifIdx, then)
	s.setBlock(then)
	s.appendLogicalStart()
}

func (s *selector) beginUniformIfElse(ic *ifContext) {
	then := s.block
	ic.thenHasBranch = s.cf.hasBranch
	ic.thenBranchDivergent = s.cf.parentLoop.hasDivergentBranch
	if !ic.thenHasBranch {
		s.appendLogicalEnd()
		s.branchPending(ic.endif)
		addLinearEdge(then.Index, &ic.endif.Block)
		if !ic.thenBranchDivergent {
			addLogicalEdge(then.Index, &ic.endif.Block)
		}
		then.Kind |= gcn.BlockKindUniform
	}

	s.cf.hasBranch = false
	s.cf.parentLoop.hasDivergentBranch = false

	els := s.createBlock()
	ic.branch.Targets[0] = els.Index
	addEdge(ic.ifIdx, els)
	s.setBlock(els)
	s.appendLogicalStart()
}

func (s *selector) endUniformIf(ic *ifContext) {
	els := s.block
	if !s.cf.hasBranch {
		s.appendLogicalEnd()
		s.branchPending(ic.endif)
		addLinearEdge(els.Index, &ic.endif.Block)
		if !s.cf.parentLoop.hasDivergentBranch {
			addLogicalEdge(els.Index, &ic.endif.Block)
		}
		els.Kind |= gcn.BlockKindUniform
	}
	s.cf.hasBranch = s.cf.hasBranch && ic.thenHasBranch
	s.cf.parentLoop.hasDivergentBranch = s.cf.parentLoop.hasDivergentBranch && ic.thenBranchDivergent

	if !s.cf.hasBranch {
		s.setBlock(s.insertPending(ic.endif))
		s.appendLogicalStart()
	}
}

// beginDivergentIfThen narrows exec to the lanes taking the then-side and ends the current
// block with the branch skipping it when no lane is left. Both sides are entered in order.
func (s *selector) beginDivergentIfThen(ic *ifContext, cond gcn.Temp) {
	s.appendLogicalEnd()
	s.block.Kind |= gcn.BlockKindBranch
	ic.cond = cond
	ic.ifIdx = s.block.Index
	ic.savedExec = s.andSaveExec(cond)
	ic.branch = s.b.Branch(gcn.OpPCbranchZ, -1, -1, s.b.Exec())
	ic.invert = newPendingBlock(s.cf.loopNestDepth, gcn.BlockKindInvert)
	ic.endif = newPendingBlock(s.cf.loopNestDepth, gcn.BlockKindMerge|s.block.Kind&gcn.BlockKindTopLevel)

	ic.discardOld = s.cf.execPotentiallyEmptyDiscard
	ic.breakOld = s.cf.execPotentiallyEmptyBreak
	ic.breakDepthOld = s.cf.execPotentiallyEmptyBreakDepth
	ic.divergentOld = s.cf.parentIfDivergent
	s.cf.parentIfDivergent = true
	s.cf.execPotentiallyEmptyDiscard = false
	s.cf.execPotentiallyEmptyBreak = false
	s.cf.execPotentiallyEmptyBreakDepth = noBreakDepth

	then := s.createBlock()
	ic.branch.Targets[1] = then.Index
	addEdge(ic.ifIdx, then)
	s.setBlock(then)
	s.appendLogicalStart()
}

func (s *selector) beginDivergentIfElse(ic *ifContext) {
	then := s.block
	s.appendLogicalEnd()
	s.branchPending(ic.invert)
	addLinearEdge(then.Index, &ic.invert.Block)
	if !s.cf.parentLoop.hasDivergentBranch {
		addLogicalEdge(then.Index, &ic.endif.Block)
	}
	then.Kind |= gcn.BlockKindUniform
	if s.cf.hasBranch {
		panic("BUG: uniform jump under divergent control flow")
	}
	ic.thenBranchDivergent = s.cf.parentLoop.hasDivergentBranch
	s.cf.parentLoop.hasDivergentBranch = false

	thenLinear := s.createBlock()
	thenLinear.Kind |= gcn.BlockKindUniform
	ic.branch.Targets[0] = thenLinear.Index
	addLinearEdge(ic.ifIdx, thenLinear)
	s.setBlock(thenLinear)
	s.branchPending(ic.invert)
	addLinearEdge(thenLinear.Index, &ic.invert.Block)

	invert := s.insertPending(ic.invert)
	s.setBlock(invert)
	// The else-side runs on the lanes that entered the if but not the then-side.
	s.b.SOP2(s.b.LaneOp(gcn.OpSAndn2B64), s.b.ExecDef(), operand(ic.savedExec), s.b.Exec())
	invertBranch := s.b.Branch(gcn.OpPCbranchZ, -1, -1, s.b.Exec())

	ic.discardOld = ic.discardOld || s.cf.execPotentiallyEmptyDiscard
	ic.breakOld = ic.breakOld || s.cf.execPotentiallyEmptyBreak
	ic.breakDepthOld = min(ic.breakDepthOld, s.cf.execPotentiallyEmptyBreakDepth)
	s.cf.execPotentiallyEmptyDiscard = false
	s.cf.execPotentiallyEmptyBreak = false
	s.cf.execPotentiallyEmptyBreakDepth = noBreakDepth

	els := s.createBlock()
	invertBranch.Targets[1] = els.Index
	addLogicalEdge(ic.ifIdx, els)
	addLinearEdge(invert.Index, els)
	s.setBlock(els)
	s.appendLogicalStart()
	ic.branch = invertBranch
	ic.ifIdx = invert.Index
}

func (s *selector) endDivergentIf(ic *ifContext) {
	els := s.block
	s.appendLogicalEnd()
	s.branchPending(ic.endif)
	addLinearEdge(els.Index, &ic.endif.Block)
	if !s.cf.parentLoop.hasDivergentBranch {
		addLogicalEdge(els.Index, &ic.endif.Block)
	}
	els.Kind |= gcn.BlockKindUniform
	if s.cf.hasBranch {
		panic("BUG: uniform jump under divergent control flow")
	}
	s.cf.parentLoop.hasDivergentBranch = s.cf.parentLoop.hasDivergentBranch && ic.thenBranchDivergent

	elseLinear := s.createBlock()
	elseLinear.Kind |= gcn.BlockKindUniform
	ic.branch.Targets[0] = elseLinear.Index
	addLinearEdge(ic.ifIdx, elseLinear)
	s.setBlock(elseLinear)
	s.branchPending(ic.endif)
	addLinearEdge(elseLinear.Index, &ic.endif.Block)

	s.setBlock(s.insertPending(ic.endif))
	s.b.SOP1(s.b.LaneOp(gcn.OpSMovB64), s.b.ExecDef(), operand(ic.savedExec))
	s.appendLogicalStart()

	s.cf.parentIfDivergent = ic.divergentOld
	s.cf.execPotentiallyEmptyDiscard = s.cf.execPotentiallyEmptyDiscard || ic.discardOld
	s.cf.execPotentiallyEmptyBreak = s.cf.execPotentiallyEmptyBreak || ic.breakOld
	s.cf.execPotentiallyEmptyBreakDepth = min(ic.breakDepthOld, s.cf.execPotentiallyEmptyBreakDepth)
	if s.block.LoopNestDepth == s.cf.execPotentiallyEmptyBreakDepth && !s.cf.parentIfDivergent {
		s.cf.execPotentiallyEmptyBreak = false
		s.cf.execPotentiallyEmptyBreakDepth = noBreakDepth
	}
	// Uniform control flow never runs with an empty exec.
	if s.cf.loopNestDepth == 0 && !s.cf.parentIfDivergent {
		s.cf.execPotentiallyEmptyDiscard = false
		s.cf.execPotentiallyEmptyBreak = false
		s.cf.execPotentiallyEmptyBreakDepth = noBreakDepth
	}
}

// andSaveExec narrows exec to the lanes of cond and returns the previous mask.
func (s *selector) andSaveExec(cond gcn.Temp) gcn.Temp {
	b := s.b
	instr := b.Create(b.LaneOp(gcn.OpSAndSaveexecB64), gcn.FormatSOP1, 1, 3)
	instr.Operands[0] = operand(cond)
	instr.Definitions[0] = b.Def(s.prog.LaneMask)
	instr.Definitions[1] = b.ExecDef()
	instr.Definitions[2] = b.SCCDef()
	return b.Insert(instr).Result()
}

// loopContext holds the state of the enclosing loop while a nested one is lowered.
type loopContext struct {
	exit         *pendingBlock
	parentOld    loopInfo
	divergentOld bool
}

func (s *selector) visitLoop(n *ir.Loop) {
	var lc loopContext
	s.beginLoop(&lc, ir.FirstBlock(n.Body))
	s.visitCFList(n.Body)
	s.endLoop(&lc)
}

func (s *selector) beginLoop(lc *loopContext, irHeader *ir.Block) {
	s.appendLogicalEnd()
	s.block.Kind |= gcn.BlockKindLoopPreheader | gcn.BlockKindUniform
	preheader := s.block
	br := s.b.Branch(gcn.OpPBranch, -1, -1)

	lc.exit = newPendingBlock(s.cf.loopNestDepth, gcn.BlockKindLoopExit|preheader.Kind&gcn.BlockKindTopLevel)
	s.cf.loopNestDepth++
	header := s.createBlock()
	header.Kind |= gcn.BlockKindLoopHeader
	br.Targets[0] = header.Index
	addEdge(preheader.Index, header)

	lc.parentOld = s.cf.parentLoop
	lc.divergentOld = s.cf.parentIfDivergent
	s.cf.parentLoop = loopInfo{header: header.Index, exit: lc.exit, irHeader: irHeader}
	s.cf.parentIfDivergent = false

	s.setBlock(header)
	s.appendLogicalStart()
}

func (s *selector) endLoop(lc *loopContext) {
	headerIdx := s.cf.parentLoop.header
	if !s.cf.hasBranch {
		s.appendLogicalEnd()
		idx := s.block.Index
		if s.cf.execPotentiallyEmptyDiscard || s.cf.execPotentiallyEmptyBreak {
			// An empty exec never takes a divergent break, so leave the loop when it happens
			// instead of continuing forever.
			s.block.Kind |= gcn.BlockKindContinueOrBreak | gcn.BlockKindUniform
			br := s.b.Branch(gcn.OpPCbranchZ, -1, -1, s.b.Exec())

			breakBlk := s.createBlock()
			breakBlk.Kind |= gcn.BlockKindUniform
			br.Targets[0] = breakBlk.Index
			addLinearEdge(idx, breakBlk)
			s.setBlock(breakBlk)
			s.branchPending(lc.exit)
			addLinearEdge(breakBlk.Index, &lc.exit.Block)

			contBlk := s.createBlock()
			contBlk.Kind |= gcn.BlockKindUniform
			br.Targets[1] = contBlk.Index
			addLinearEdge(idx, contBlk)
			s.setBlock(contBlk)
			s.branch(s.prog.Block(headerIdx))
			addLinearEdge(contBlk.Index, s.prog.Block(headerIdx))
			if !s.cf.parentLoop.hasDivergentBranch {
				addLogicalEdge(idx, s.prog.Block(headerIdx))
			}
		} else {
			s.block.Kind |= gcn.BlockKindContinue | gcn.BlockKindUniform
			s.branch(s.prog.Block(headerIdx))
			if !s.cf.parentLoop.hasDivergentBranch {
				addEdge(idx, s.prog.Block(headerIdx))
			} else {
				addLinearEdge(idx, s.prog.Block(headerIdx))
			}
		}
	}
	s.cf.hasBranch = false

	depth := s.cf.loopNestDepth
	s.resolveHeaderPhis(s.prog.Block(headerIdx), s.cf.parentLoop.phis)
	if s.tr.If(iselapi.TopicCF) {
		s.tr.Printw("loop", "header", headerIdx, "depth", depth, "back_edges", len(s.prog.Block(headerIdx).LinearPreds)-1)
	}

	s.cf.loopNestDepth--
	s.cf.parentLoop = lc.parentOld
	s.cf.parentIfDivergent = lc.divergentOld
	if s.cf.execPotentiallyEmptyBreakDepth >= depth {
		s.cf.execPotentiallyEmptyBreak = false
		s.cf.execPotentiallyEmptyBreakDepth = noBreakDepth
	}
	if s.cf.loopNestDepth == 0 && !s.cf.parentIfDivergent {
		s.cf.execPotentiallyEmptyDiscard = false
	}

	if len(lc.exit.LinearPreds) == 0 {
		panic("BUG: loop without an exit")
	}
	s.setBlock(s.insertPending(lc.exit))
	s.appendLogicalStart()
}

// visitJump lowers break and continue. A jump all active lanes take leaves the list directly.
// Otherwise the jumping lanes are masked off by the exec lowering and the rest continue in a
// new block.
func (s *selector) visitJump(instr *ir.Instr) {
	l := &s.cf.parentLoop
	if l.exit == nil {
		panic("BUG: jump outside of a loop")
	}
	s.appendLogicalEnd()
	idx := s.block.Index

	var target *gcn.Block
	switch instr.Jump {
	case ir.JumpBreak:
		target = &l.exit.Block
		addLogicalEdge(idx, target)
		s.block.Kind |= gcn.BlockKindBreak
		if !s.cf.parentIfDivergent && !l.hasDivergentContinue {
			s.block.Kind |= gcn.BlockKindUniform
			s.cf.hasBranch = true
			s.branchPending(l.exit)
			addLinearEdge(idx, target)
			return
		}
		l.hasDivergentBranch = true
		if !s.cf.execPotentiallyEmptyBreak {
			s.cf.execPotentiallyEmptyBreak = true
			s.cf.execPotentiallyEmptyBreakDepth = s.block.LoopNestDepth
		}
	case ir.JumpContinue:
		target = s.prog.Block(l.header)
		addLogicalEdge(idx, target)
		s.block.Kind |= gcn.BlockKindContinue
		if !s.cf.parentIfDivergent {
			s.block.Kind |= gcn.BlockKindUniform
			s.cf.hasBranch = true
			s.branch(target)
			addLinearEdge(idx, target)
			return
		}
		l.hasDivergentContinue = true
		l.hasDivergentBranch = true
	}

	// The jump and the fallthrough each get a helper block, so no edge is critical.
	br := s.b.Branch(gcn.OpPCbranchZ, -1, -1, s.b.Exec())
	jump := s.createBlock()
	jump.Kind |= gcn.BlockKindUniform
	br.Targets[0] = jump.Index
	addLinearEdge(idx, jump)
	s.setBlock(jump)
	if instr.Jump == ir.JumpBreak {
		s.branchPending(l.exit)
		addLinearEdge(jump.Index, &l.exit.Block)
	} else {
		s.branch(s.prog.Block(l.header))
		addLinearEdge(jump.Index, s.prog.Block(l.header))
	}

	cont := s.createBlock()
	br.Targets[1] = cont.Index
	addLinearEdge(idx, cont)
	s.setBlock(cont)
	s.appendLogicalStart()
}

// mergedStageMask returns the lanes running stage i of a merged program. The hardware reports
// the lane count of each stage in one byte of the merged wave info.
func (s *selector) mergedStageMask(i int) gcn.Temp {
	b := s.b
	count := b.SOP2(gcn.OpSBfeU32, b.Def(gcn.S1), operand(s.args.mergedWaveInfo), gcn.OperandConst(uint32(8*i)|8<<16)).Result()
	mask := b.SOP2(gcn.OpSBfmB64, b.Def(gcn.S2), operand(count), gcn.OperandConst(0)).Result()
	if s.prog.WaveSize == 32 {
		return s.emitExtractVector(mask, 0, gcn.S1)
	}
	// s_bfm cannot produce a full mask.
	all := b.SOPC(gcn.OpSBitcmp1B32, operand(count), gcn.OperandConst(6)).Result()
	return b.SOP2(gcn.OpSCselectB64, b.Def(gcn.S2), s.laneMaskConst(true), operand(mask), gcn.OperandSCC(all)).Result()
}

// lowerStage lowers the body of the shader and its outputs. Stages of a merged program only
// run on the lanes the hardware assigned to them.
func (s *selector) lowerStage() {
	if s.prog.NumStages == 1 {
		s.visitCFList(s.shader.Body)
		s.emitOutputs()
		return
	}
	var ic ifContext
	s.beginDivergentIfThen(&ic, s.mergedStageMask(s.stageIndex))
	s.visitCFList(s.shader.Body)
	s.emitOutputs()
	s.beginDivergentIfElse(&ic)
	s.endDivergentIf(&ic)
	if s.passesOutputsThroughLDS() {
		s.b.Barrier(gcn.OpPMemoryBarrierShared)
		s.b.SOPP(gcn.OpSBarrier, 0)
	}
}
