package isel

import (
	"github.com/wavesel/wavesel/gcn"
	"github.com/wavesel/wavesel/ir"
)

// shaderArgs are the values the hardware preloads into registers when a wave starts. They are
// all defined by p_startpgm at the start of the program. Arguments a stage does not receive are
// invalid Temps.
type shaderArgs struct {
	// ringOffsets points to the ring descriptors, the scratch ring first.
	ringOffsets   gcn.Temp
	descSets      [maxDescriptorSets]gcn.Temp
	pushConstants gcn.Temp
	// vertexBuffers points to one 16-byte buffer descriptor per vertex input location.
	vertexBuffers gcn.Temp
	numWorkgroups gcn.Temp
	workgroupIDs  gcn.Temp
	// tgSize holds the index of the wave in the workgroup in bits 6 to 11.
	tgSize gcn.Temp
	// mergedWaveInfo holds the number of active lanes of each merged stage, one byte each, and
	// the wave index in the workgroup in bits 24 to 27.
	mergedWaveInfo gcn.Temp
	primMask       gcn.Temp
	scratchOffset  gcn.Temp

	localInvocationIDs gcn.Temp
	vertexID           gcn.Temp
	instanceID         gcn.Temp
	baryPersp          gcn.Temp
	fragCoord          gcn.Temp
	frontFace          gcn.Temp
	// ancillary holds the sample index in bits 8 to 11.
	ancillary gcn.Temp

	defs []gcn.Definition
	// numSGPRs and numVGPRs count the registers allocated so far.
	numSGPRs, numVGPRs int
}

func (a *shaderArgs) sgpr(p *gcn.Program, rc gcn.RegClass) gcn.Temp {
	t := p.NewTemp(rc)
	a.defs = append(a.defs, gcn.Def(t).Fixed(gcn.SGPR(a.numSGPRs)))
	a.numSGPRs += rc.Size()
	return t
}

func (a *shaderArgs) vgpr(p *gcn.Program, rc gcn.RegClass) gcn.Temp {
	t := p.NewTemp(rc)
	a.defs = append(a.defs, gcn.Def(t).Fixed(gcn.VGPR(a.numVGPRs)))
	a.numVGPRs += rc.Size()
	return t
}

// declareArgs lays out the arguments of a program running the given stages. User SGPRs come
// first, then the system SGPRs, with the scratch offset last.
func declareArgs(p *gcn.Program, stages []ir.Stage) *shaderArgs {
	a := &shaderArgs{}
	first, last := stages[0], stages[len(stages)-1]

	a.ringOffsets = a.sgpr(p, gcn.S2)
	for i := range a.descSets {
		a.descSets[i] = a.sgpr(p, gcn.S2)
	}
	a.pushConstants = a.sgpr(p, gcn.S2)
	if first == ir.StageVertex {
		a.vertexBuffers = a.sgpr(p, gcn.S2)
	}
	if first == ir.StageCompute {
		a.numWorkgroups = a.sgpr(p, gcn.S3)
		a.workgroupIDs = a.sgpr(p, gcn.S3)
		a.tgSize = a.sgpr(p, gcn.S1)
	}
	if len(stages) > 1 {
		a.mergedWaveInfo = a.sgpr(p, gcn.S1)
	}
	if last == ir.StageFragment {
		a.primMask = a.sgpr(p, gcn.S1)
	}
	a.scratchOffset = a.sgpr(p, gcn.S1)

	switch first {
	case ir.StageCompute:
		a.localInvocationIDs = a.vgpr(p, gcn.V3)
	case ir.StageVertex:
		a.vertexID = a.vgpr(p, gcn.V1)
		a.instanceID = a.vgpr(p, gcn.V1)
	case ir.StageFragment:
		a.baryPersp = a.vgpr(p, gcn.V2)
		a.fragCoord = a.vgpr(p, gcn.V4)
		a.frontFace = a.vgpr(p, gcn.V1)
		a.ancillary = a.vgpr(p, gcn.V1)
	}
	return a
}

// emitStartPgm defines every argument.
func (s *selector) emitStartPgm() {
	s.b.Pseudo(gcn.OpPStartpgm, s.args.defs)
	if s.shader.ScratchBytes > 0 && s.prog.GfxLevel >= gcn.GFX9 {
		s.b.Pseudo(gcn.OpPInitScratch, []gcn.Definition{s.b.Def(gcn.S2), s.b.SCCDef()}, operand(s.args.ringOffsets), operand(s.args.scratchOffset))
	}
}

// argOf returns an argument, rejecting stages that do not receive it.
func (s *selector) argOf(instr *ir.Instr, arg gcn.Temp) gcn.Temp {
	if !arg.Valid() {
		unsupported(instr.Intrinsic, "not available in %s shaders", s.stage)
	}
	return arg
}

// visitLoadArg copies an argument into the result of instr.
func (s *selector) visitLoadArg(instr *ir.Instr, arg gcn.Temp) {
	arg = s.argOf(instr, arg)
	dst := s.temp(instr.Def)
	if dst.Bytes() != arg.Bytes() {
		unsupported(instr.Intrinsic, "%d-bit result", instr.Def.BitSize)
	}
	s.emitMove(dst, operand(arg))
}

// threadIDInGroup returns the index of the lane in the workgroup.
func (s *selector) threadIDInGroup() gcn.Temp {
	b := s.b
	id := s.emitMbcnt(s.laneMaskConst(true))
	var waveIdx gcn.Temp
	switch {
	case s.args.tgSize.Valid():
		waveIdx = b.SOP2(gcn.OpSBfeU32, b.Def(gcn.S1), operand(s.args.tgSize), gcn.OperandConst(6|6<<16)).Result()
	case s.args.mergedWaveInfo.Valid():
		waveIdx = b.SOP2(gcn.OpSBfeU32, b.Def(gcn.S1), operand(s.args.mergedWaveInfo), gcn.OperandConst(24|4<<16)).Result()
	default:
		return id
	}
	shift := uint32(6)
	if s.prog.WaveSize == 32 {
		shift = 5
	}
	base := b.SOP2(gcn.OpSLshlB32, b.Def(gcn.S1), operand(waveIdx), gcn.OperandConst(shift)).Result()
	return b.VOP2(gcn.OpVOrB32, b.Def(gcn.V1), operand(base), operand(id)).Result()
}

func (s *selector) visitLocalInvocationIndex(instr *ir.Instr) {
	s.emitMove(s.temp(instr.Def), operand(s.threadIDInGroup()))
}

// visitLaneMaskResult writes the lane mask lm to the boolean result of instr.
func (s *selector) visitLaneMaskResult(instr *ir.Instr, lm gcn.Temp) {
	dst := s.temp(instr.Def)
	if isLaneMask(instr.Def) {
		s.b.Copy(gcn.Def(dst), operand(lm))
		return
	}
	s.laneMaskToBool(lm, dst)
}

func (s *selector) visitFrontFace(instr *ir.Instr) {
	b := s.b
	ff := s.argOf(instr, s.args.frontFace)
	lm := b.VOPC(gcn.OpVCmpLgU32, b.Def(s.prog.LaneMask), gcn.OperandConst(0), operand(ff)).Result()
	s.visitLaneMaskResult(instr, lm)
}

func (s *selector) visitSampleID(instr *ir.Instr) {
	anc := s.argOf(instr, s.args.ancillary)
	dst := s.temp(instr.Def)
	s.valuInto(dst, func(d gcn.Definition) {
		s.b.VOP3(gcn.OpVBfeU32, d, operand(anc), gcn.OperandConst(8), gcn.OperandConst(4))
	})
}

func (s *selector) visitHelperInvocation(instr *ir.Instr) {
	b := s.b
	lm := b.Pseudo(gcn.OpPIsHelper, []gcn.Definition{b.Def(s.prog.LaneMask)}, b.Exec()).Result()
	s.block.Kind |= gcn.BlockKindNeedsLowering
	s.prog.NeedsExactExec = true
	s.visitLaneMaskResult(instr, lm)
}

// outputStride is the LDS footprint of one output slot of one invocation.
const outputStride = 16

// passesOutputsThroughLDS reports whether the stage hands its outputs to the next merged stage.
func (s *selector) passesOutputsThroughLDS() bool {
	return s.stageIndex+1 < s.prog.NumStages
}

// readsInputsFromLDS reports whether the stage reads the outputs of the previous merged stage.
func (s *selector) readsInputsFromLDS() bool {
	return s.stageIndex > 0
}

// ldsIOAddress returns the LDS address of the outputs of this invocation relative to ioBase,
// with numOutputs slots per invocation.
func (s *selector) ldsIOAddress(numOutputs int) gcn.Temp {
	b := s.b
	stride := uint32(numOutputs * outputStride)
	return b.VOP2(gcn.OpVMulU32U24, b.Def(gcn.V1), gcn.OperandConst(stride), operand(s.threadIDInGroup())).Result()
}

func (s *selector) visitLoadInput(instr *ir.Instr) {
	dst := s.temp(instr.Def)
	if instr.Def.BitSize != 32 {
		unsupported(instr.Intrinsic, "%d-bit input", instr.Def.BitSize)
	}
	n := instr.Def.NumComponents
	switch {
	case s.readsInputsFromLDS():
		addr := s.ldsIOAddress(s.prevOutputs)
		off := uint32(s.ioBase + instr.Base*outputStride + instr.Component*4)
		s.emitLoad(s.sharedAccess(addr, off, n*4, 4, 4), dst)
	case s.stage == ir.StageVertex:
		rsrc := s.b.Tmp(gcn.S4)
		s.emitSMEMLoad(s.argOf(instr, s.args.vertexBuffers), false, gcn.TempInvalid, uint32(instr.Base*16), rsrc, memFlags{canReorder: true})
		fetched := s.b.Tmp(gcn.V4)
		s.bufferFormatLoad(fetched, rsrc, s.argOf(instr, s.args.vertexID))
		s.emitSplitVector(fetched, 4)
		if instr.Component+n > 4 {
			panic("BUG: vertex input components out of range")
		}
		comps := make([]gcn.Temp, n)
		for i := range comps {
			comps[i] = s.emitExtractVector(fetched, instr.Component+i, gcn.V1)
		}
		s.writeComponents(dst, comps)
	case s.stage == ir.StageFragment:
		comps := make([]gcn.Temp, n)
		for i := range comps {
			comps[i] = s.b.VINTRP(gcn.OpVInterpMovF32, s.b.Def(gcn.V1), uint8(instr.Base), uint8(instr.Component+i),
				gcn.OperandConst(2), s.m0PrimMask(instr)).Result()
		}
		s.writeComponents(dst, comps)
	default:
		unsupported(instr.Intrinsic, "inputs of %s shaders", s.stage)
	}
}

// writeComponents writes the v1 components comps to dst.
func (s *selector) writeComponents(dst gcn.Temp, comps []gcn.Temp) {
	if len(comps) == 1 {
		s.emitMove(dst, operand(comps[0]))
		return
	}
	if !isVGPR(dst) {
		for i, c := range comps {
			comps[i] = s.b.AsUniform(operand(c))
		}
	}
	s.createVector(dst, comps...)
}

// m0PrimMask returns the primitive mask in m0, where interpolation reads the attribute data.
func (s *selector) m0PrimMask(instr *ir.Instr) gcn.Operand {
	return operand(s.argOf(instr, s.args.primMask)).Fixed(gcn.M0)
}

func (s *selector) visitInterpolatedInput(instr *ir.Instr) {
	b := s.b
	dst := s.temp(instr.Def)
	if instr.Def.BitSize != 32 {
		unsupported(instr.Intrinsic, "%d-bit interpolation", instr.Def.BitSize)
	}
	bary := s.getALUSrcN(instr.Srcs[0], 2)
	s.emitSplitVector(bary, 2)
	i := s.emitExtractVector(bary, 0, gcn.V1)
	j := s.emitExtractVector(bary, 1, gcn.V1)
	m0 := s.m0PrimMask(instr)
	comps := make([]gcn.Temp, instr.Def.NumComponents)
	for c := range comps {
		attr, comp := uint8(instr.Base), uint8(instr.Component+c)
		p1 := b.VINTRP(gcn.OpVInterpP1F32, b.Def(gcn.V1), attr, comp, operand(i), m0).Result()
		comps[c] = b.VINTRP(gcn.OpVInterpP2F32, b.Def(gcn.V1), attr, comp, operand(j), m0, operand(p1)).Result()
	}
	s.writeComponents(dst, comps)
}

// visitStoreOutput records the written components. They are exported at the end of the stage.
func (s *selector) visitStoreOutput(instr *ir.Instr) {
	value := instr.Srcs[0].Def
	if value.BitSize != 32 {
		unsupported(instr.Intrinsic, "%d-bit output", value.BitSize)
	}
	mask := instr.WriteMask
	if mask == 0 {
		mask = 1<<value.NumComponents - 1
	}
	src := s.getALUSrcN(instr.Srcs[0], value.NumComponents)
	s.emitSplitVector(src, value.NumComponents)
	slot := instr.Base
	if s.outputs[slot] == nil {
		s.outputs[slot] = &[4]gcn.Operand{}
	}
	for i := 0; i < value.NumComponents; i++ {
		if mask&(1<<i) == 0 {
			continue
		}
		c := instr.Component + i
		if c >= 4 {
			panic("BUG: output component out of range")
		}
		s.outputs[slot][c] = operand(s.emitExtractVector(src, i, gcn.V1))
		s.outputMask[slot] |= 1 << c
	}
}

// emitExport inserts an export of up to four values.
func (s *selector) emitExport(target, mask uint8, vals [4]gcn.Operand, done, validMask bool) *gcn.Instruction {
	b := s.b
	instr := b.Create(gcn.OpExp, gcn.FormatEXP, 4, 0)
	for i, v := range vals {
		switch {
		case mask&(1<<i) == 0:
			instr.Operands[i] = gcn.OperandUndef(gcn.V1)
		case v.IsTemp() && v.RegClass() != gcn.V1:
			instr.Operands[i] = operand(s.b.AsVGPR(v))
		default:
			instr.Operands[i] = v
		}
	}
	instr.Exp = gcn.ExpInfo{Target: target, EnabledMask: mask, Done: done, ValidMask: validMask}
	return b.Insert(instr)
}

// positionSlot is the output slot holding the position of pre-rasterization stages. The slots
// after it are parameters.
const positionSlot = 0

// emitOutputs exports what the stage stored, or hands it to the next merged stage.
func (s *selector) emitOutputs() {
	switch {
	case s.passesOutputsThroughLDS():
		s.storeOutputsToLDS()
	case s.stage == ir.StageFragment:
		s.emitFSExports()
	case s.stage == ir.StageCompute:
	default:
		s.emitVSExports()
	}
}

func (s *selector) storeOutputsToLDS() {
	if len(s.outputMask) == 0 {
		return
	}
	addr := s.ldsIOAddress(s.shader.NumOutputs)
	for slot := 0; slot < s.shader.NumOutputs; slot++ {
		mask := s.outputMask[slot]
		for c := 0; c < 4; c++ {
			if mask&(1<<c) == 0 {
				continue
			}
			v := s.b.AsVGPR(s.outputs[slot][c])
			s.emitDS(memOp{op: gcn.OpDsWriteB32, bytes: 4, align: 4}, nil, addr, uint32(s.ioBase+slot*outputStride+c*4), v)
		}
	}
}

func (s *selector) emitVSExports() {
	posMask, ok := s.outputMask[positionSlot]
	if !ok {
		// The rasterizer always needs a position.
		posMask = 0xf
		s.outputs[positionSlot] = &[4]gcn.Operand{gcn.OperandConst(0), gcn.OperandConst(0), gcn.OperandConst(0), gcn.OperandConst(0x3f800000)}
	}
	s.emitExport(gcn.ExpTargetPos0, posMask, *s.outputs[positionSlot], true, false)
	for slot := positionSlot + 1; slot < s.shader.NumOutputs; slot++ {
		mask, ok := s.outputMask[slot]
		if !ok {
			continue
		}
		s.emitExport(gcn.ExpTargetParam+uint8(slot-1), mask, *s.outputs[slot], false, false)
	}
}

func (s *selector) emitFSExports() {
	last := -1
	for slot := 0; slot < s.shader.NumOutputs && slot < 8; slot++ {
		if s.outputMask[slot] != 0 {
			last = slot
		}
	}
	if last < 0 {
		s.emitExport(gcn.ExpTargetNull, 0, [4]gcn.Operand{}, true, true)
	} else {
		for slot := 0; slot <= last; slot++ {
			mask := s.outputMask[slot]
			if mask == 0 {
				continue
			}
			s.emitExport(gcn.ExpTargetMRT0+uint8(slot), mask, *s.outputs[slot], slot == last, slot == last)
		}
	}
	s.block.Kind |= gcn.BlockKindExportEnd
}

// emitEndPgm ends the program.
func (s *selector) emitEndPgm() {
	s.appendLogicalEnd()
	s.block.Kind |= gcn.BlockKindUniform
	s.b.SOPP(gcn.OpSEndpgm, 0)
}
