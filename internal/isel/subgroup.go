package isel

import (
	"github.com/wavesel/wavesel/gcn"
	"github.com/wavesel/wavesel/ir"
)

// reduceOp returns the reduction of op on bitSize-bit values.
func reduceOp(op ir.ALUOp, bitSize int) gcn.ReduceOp {
	intIdx := map[int]gcn.ReduceOp{8: 0, 16: 1, 32: 2, 64: 3}
	floatIdx := map[int]gcn.ReduceOp{16: 0, 32: 1, 64: 2}
	ints := map[ir.ALUOp]gcn.ReduceOp{
		ir.OpIAdd: gcn.ReduceIAdd8, ir.OpIMul: gcn.ReduceIMul8,
		ir.OpIMin: gcn.ReduceIMin8, ir.OpIMax: gcn.ReduceIMax8,
		ir.OpUMin: gcn.ReduceUMin8, ir.OpUMax: gcn.ReduceUMax8,
		ir.OpIAnd: gcn.ReduceIAnd8, ir.OpIOr: gcn.ReduceIOr8, ir.OpIXor: gcn.ReduceIXor8,
	}
	floats := map[ir.ALUOp]gcn.ReduceOp{
		ir.OpFAdd: gcn.ReduceFAdd16, ir.OpFMul: gcn.ReduceFMul16,
		ir.OpFMin: gcn.ReduceFMin16, ir.OpFMax: gcn.ReduceFMax16,
	}
	if base, ok := ints[op]; ok {
		if i, ok := intIdx[bitSize]; ok {
			return base + i
		}
	}
	if base, ok := floats[op]; ok {
		if i, ok := floatIdx[bitSize]; ok {
			return base + i
		}
	}
	unsupported(op, "%d-bit reduction", bitSize)
	return 0
}

// emitMbcnt returns the number of lanes below the current one set in mask.
func (s *selector) emitMbcnt(mask gcn.Operand) gcn.Temp {
	b := s.b
	if s.prog.WaveSize == 32 {
		return b.VOP3(gcn.OpVMbcntLoU32B32, b.Def(gcn.V1), mask, gcn.OperandConst(0)).Result()
	}
	var lo, hi gcn.Operand
	if mask.IsConstant() {
		lo, hi = gcn.OperandConst(uint32(mask.Constant64())), gcn.OperandConst(uint32(mask.Constant64()>>32))
	} else {
		l, h := s.split2(mask.Temp())
		lo, hi = operand(l), operand(h)
	}
	cnt := b.VOP3(gcn.OpVMbcntLoU32B32, b.Def(gcn.V1), lo, gcn.OperandConst(0)).Result()
	return b.VOP3(gcn.OpVMbcntHiU32B32, b.Def(gcn.V1), hi, operand(cnt)).Result()
}

// activeMask returns mask & exec. The scc result is set when any active lane is set.
func (s *selector) activeMask(mask gcn.Temp) (gcn.Temp, gcn.Temp) {
	and := s.b.SOP2(s.b.LaneOp(gcn.OpSAndB64), s.b.Def(s.prog.LaneMask), operand(mask), s.b.Exec())
	return and.Result(), and.Definitions[1].Temp()
}

func (s *selector) clusterSize(instr *ir.Instr) int {
	if instr.ClusterSize == 0 || instr.ClusterSize > s.prog.WaveSize {
		return s.prog.WaveSize
	}
	return instr.ClusterSize
}

func (s *selector) visitReduce(instr *ir.Instr) {
	dst := s.temp(instr.Def)
	src := instr.Srcs[0]
	cluster := s.clusterSize(instr)
	if src.Def.BitSize == 1 {
		s.emitBoolReduce(instr, cluster)
		return
	}
	if cluster == s.prog.WaveSize && !src.Def.Divergent && s.emitUniformReduce(instr, dst) {
		return
	}
	s.emitReduction(gcn.OpPReduce, instr, dst, cluster)
}

// emitUniformReduce folds a full reduction of a uniform value. It reports false when the
// operation needs the general path.
func (s *selector) emitUniformReduce(instr *ir.Instr, dst gcn.Temp) bool {
	b := s.b
	val := s.getALUSrc(instr.Srcs[0])
	switch instr.ReduceOp {
	case ir.OpIAnd, ir.OpIOr, ir.OpIMin, ir.OpIMax, ir.OpUMin, ir.OpUMax, ir.OpFMin, ir.OpFMax:
		s.emitWQM(val, dst, false)
		return true
	case ir.OpIAdd, ir.OpIXor:
		if instr.Def.BitSize != 32 || isVGPR(val) {
			return false
		}
		cnt := b.SOP1(b.LaneOp(gcn.OpSBcnt1I32B64), b.Def(gcn.S1), b.Exec()).Result()
		if instr.ReduceOp == ir.OpIXor {
			cnt = b.SOP2(gcn.OpSAndB32, b.Def(gcn.S1), operand(cnt), gcn.OperandConst(1)).Result()
		}
		res := b.SOP2(gcn.OpSMulI32, b.Def(gcn.S1), operand(val), operand(cnt)).Result()
		s.emitWQM(res, dst, false)
		return true
	}
	return false
}

// emitReduction inserts a reduction or scan pseudo instruction, expanded after register
// allocation. It needs a lane-mask and two linear vgpr temporaries.
func (s *selector) emitReduction(op gcn.Opcode, instr *ir.Instr, dst gcn.Temp, cluster int) {
	b := s.b
	src := s.asVGPR(s.getALUSrc(instr.Srcs[0]))
	defs := []gcn.Definition{gcn.Def(dst), b.Def(s.prog.LaneMask), {}, b.SCCDef(), {}}
	r := b.Pseudo(op, defs, operand(src), gcn.OperandUndef(gcn.LinearV2), gcn.OperandUndef(gcn.LinearV1))
	r.Reduce = gcn.ReduceInfo{Op: reduceOp(instr.ReduceOp, instr.Def.BitSize), ClusterSize: cluster}
	s.prog.NeedsWQM = s.prog.NeedsWQM || s.stage == ir.StageFragment
}

// emitBoolReduce reduces a boolean over the whole wave, or over each cluster of lanes.
func (s *selector) emitBoolReduce(instr *ir.Instr, cluster int) {
	b := s.b
	lm := s.boolLM(instr.Srcs[0])
	if cluster != s.prog.WaveSize {
		res := s.emitClusteredBoolReduce(instr.ReduceOp, lm, cluster)
		dst := s.temp(instr.Def)
		if isLaneMask(instr.Def) {
			b.Copy(gcn.Def(dst), operand(res))
		} else {
			s.laneMaskToBool(res, dst)
		}
		return
	}
	var res gcn.Temp
	switch instr.ReduceOp {
	case ir.OpIOr, ir.OpUMax, ir.OpIMax:
		_, res = s.activeMask(lm)
	case ir.OpIAnd, ir.OpUMin, ir.OpIMin:
		// All active lanes are set when none is clear.
		n := b.SOP2(b.LaneOp(gcn.OpSAndn2B64), b.Def(s.prog.LaneMask), b.Exec(), operand(lm))
		res = b.SOPC(gcn.OpSCmpEqU32, operand(n.Definitions[1].Temp()), gcn.OperandConst(0)).Result()
	case ir.OpIXor, ir.OpIAdd:
		active, _ := s.activeMask(lm)
		cnt := b.SOP1(b.LaneOp(gcn.OpSBcnt1I32B64), b.Def(gcn.S1), operand(active)).Result()
		res = b.SOP2(gcn.OpSAndB32, b.Def(gcn.S1), operand(cnt), gcn.OperandConst(1)).Definitions[1].Temp()
	default:
		unsupported(instr.ReduceOp, "boolean reduction")
	}
	s.storeBool(instr, res)
}

// emitClusteredBoolReduce returns the lane mask of the reduction of each cluster of lanes. Every
// lane shifts its cluster's bits of the mask down with the cluster offset
// lane_id & ^(cluster-1), so a compare on the low cluster bits gives the result.
func (s *selector) emitClusteredBoolReduce(op ir.ALUOp, lm gcn.Temp, cluster int) gcn.Temp {
	b := s.b
	if cluster == 1 {
		return lm
	}
	laneID := s.emitMbcnt(s.laneMaskConst(true))
	clusterOffset := b.VOP2(gcn.OpVAndB32, b.Def(gcn.V1), gcn.OperandConst(^uint32(cluster-1)), operand(laneID)).Result()

	var masked gcn.Temp
	switch op {
	case ir.OpIAnd, ir.OpUMin, ir.OpIMin:
		// Inactive lanes must not clear the result.
		masked = b.SOP2(b.LaneOp(gcn.OpSOrn2B64), b.Def(s.prog.LaneMask), operand(lm), b.Exec()).Result()
	case ir.OpIOr, ir.OpUMax, ir.OpIMax, ir.OpIXor, ir.OpIAdd:
		masked, _ = s.activeMask(lm)
	default:
		unsupported(op, "boolean reduction")
	}

	var bits gcn.Temp
	switch {
	case s.prog.GfxLevel <= gcn.GFX7:
		bits = b.VOP3(gcn.OpVLshrB64, b.Def(gcn.V2), operand(masked), operand(clusterOffset)).Result()
	case s.prog.WaveSize == 64:
		bits = b.VOP3(gcn.OpVLshrrevB64, b.Def(gcn.V2), operand(clusterOffset), operand(masked)).Result()
	default:
		bits = b.VOP3(gcn.OpVLshrrevB32, b.Def(gcn.V1), operand(clusterOffset), operand(masked)).Result()
	}
	if bits.Size() == 2 {
		bits = s.emitExtractVector(bits, 0, gcn.V1)
	}
	clusterMask := uint32(1)<<uint(cluster) - 1
	if clusterMask != ^uint32(0) {
		bits = b.VOP2(gcn.OpVAndB32, b.Def(gcn.V1), gcn.OperandConst(clusterMask), operand(bits)).Result()
	}

	res := b.Tmp(s.prog.LaneMask)
	switch op {
	case ir.OpIAnd, ir.OpUMin, ir.OpIMin:
		b.VOPC(gcn.OpVCmpEqU32, gcn.Def(res), gcn.OperandConst(clusterMask), operand(bits))
	case ir.OpIOr, ir.OpUMax, ir.OpIMax:
		b.VOPC(gcn.OpVCmpLgU32, gcn.Def(res), gcn.OperandConst(0), operand(bits))
	default:
		cnt := b.VOP3(gcn.OpVBcntU32B32, b.Def(gcn.V1), operand(bits), gcn.OperandConst(0)).Result()
		odd := b.VOP2(gcn.OpVAndB32, b.Def(gcn.V1), gcn.OperandConst(1), operand(cnt)).Result()
		b.VOPC(gcn.OpVCmpLgU32, gcn.Def(res), gcn.OperandConst(0), operand(odd))
	}
	return res
}

// storeBool writes the scalar boolean val to the result of instr, broadcasting it when the
// result is a lane mask.
func (s *selector) storeBool(instr *ir.Instr, val gcn.Temp) {
	dst := s.temp(instr.Def)
	if isLaneMask(instr.Def) {
		s.boolToLaneMask(val, dst)
		return
	}
	s.emitWQM(val, dst, false)
}

func (s *selector) visitScan(instr *ir.Instr) {
	dst := s.temp(instr.Def)
	op := gcn.OpPInclusiveScan
	if instr.Intrinsic == ir.IntrinsicExclusiveScan {
		op = gcn.OpPExclusiveScan
	}
	if instr.Srcs[0].Def.BitSize == 1 {
		s.emitBoolScan(instr, dst, op == gcn.OpPExclusiveScan)
		return
	}
	s.emitReduction(op, instr, dst, s.prog.WaveSize)
}

// emitBoolScan counts the set lanes below each lane with mbcnt.
func (s *selector) emitBoolScan(instr *ir.Instr, dst gcn.Temp, exclusive bool) {
	b := s.b
	lm := s.boolLM(instr.Srcs[0])
	lmOp := b.LaneOp(gcn.OpSAndB64)
	var counted gcn.Temp
	if instr.ReduceOp == ir.OpIAnd {
		counted = b.SOP2(b.LaneOp(gcn.OpSAndn2B64), b.Def(s.prog.LaneMask), b.Exec(), operand(lm)).Result()
	} else {
		counted, _ = s.activeMask(lm)
	}
	cnt := s.emitMbcnt(operand(counted))

	excl := b.Tmp(s.prog.LaneMask)
	switch instr.ReduceOp {
	case ir.OpIOr:
		b.VOPC(gcn.OpVCmpLgU32, gcn.Def(excl), gcn.OperandConst(0), operand(cnt))
	case ir.OpIAnd:
		b.VOPC(gcn.OpVCmpEqU32, gcn.Def(excl), gcn.OperandConst(0), operand(cnt))
	case ir.OpIXor:
		odd := b.VOP2(gcn.OpVAndB32, b.Def(gcn.V1), gcn.OperandConst(1), operand(cnt)).Result()
		b.VOPC(gcn.OpVCmpLgU32, gcn.Def(excl), gcn.OperandConst(0), operand(odd))
	default:
		unsupported(instr.ReduceOp, "boolean scan")
	}
	if exclusive {
		b.Copy(gcn.Def(dst), operand(excl))
		return
	}
	switch instr.ReduceOp {
	case ir.OpIOr:
		lmOp = b.LaneOp(gcn.OpSOrB64)
	case ir.OpIXor:
		lmOp = b.LaneOp(gcn.OpSXorB64)
	}
	b.SOP2(lmOp, gcn.Def(dst), operand(excl), operand(lm))
}

func (s *selector) visitBallot(instr *ir.Instr) {
	b := s.b
	dst := s.temp(instr.Def)
	active, _ := s.activeMask(s.boolLM(instr.Srcs[0]))
	switch {
	case dst.Size() == active.Size():
		s.emitWQM(active, dst, false)
	case dst.Size() == 2:
		b.CreateVector(gcn.Def(dst), operand(active), gcn.OperandConst(0))
	default:
		unsupported(instr.Intrinsic, "%d-bit ballot in wave%d", instr.Def.BitSize, s.prog.WaveSize)
	}
}

func (s *selector) visitVote(instr *ir.Instr) {
	b := s.b
	dst := s.temp(instr.Def)
	src := instr.Srcs[0]
	if !isLaneMask(src.Def) {
		s.emitWQM(s.temp(src.Def), dst, false)
		return
	}
	lm := s.temp(src.Def)
	if instr.Intrinsic == ir.IntrinsicVoteAny {
		_, anySet := s.activeMask(lm)
		s.emitWQM(anySet, dst, false)
		return
	}
	n := b.SOP2(b.LaneOp(gcn.OpSAndn2B64), b.Def(s.prog.LaneMask), b.Exec(), operand(lm))
	all := b.SOPC(gcn.OpSCmpEqU32, operand(n.Definitions[1].Temp()), gcn.OperandConst(0)).Result()
	s.emitWQM(all, dst, false)
}

// firstLane returns the index of the first active lane.
func (s *selector) firstLane() gcn.Temp {
	return s.b.SOP1(s.b.LaneOp(gcn.OpSFf1I32B64), s.b.Def(gcn.S1), s.b.Exec()).Result()
}

func (s *selector) visitElect(instr *ir.Instr) {
	b := s.b
	dst := s.temp(instr.Def)
	one := gcn.OperandConstSized(1, s.prog.LaneMask.Bytes())
	b.SOP2(b.LaneOp(gcn.OpSLshlB64), gcn.Def(dst), one, operand(s.firstLane()))
}

func (s *selector) visitFirstInvocation(instr *ir.Instr) {
	s.emitWQM(s.firstLane(), s.temp(instr.Def), false)
}

// readLane reads src from one lane into the scalar dst. An invalid lane reads the first
// active lane.
func (s *selector) readLane(src, dst gcn.Temp, lane gcn.Operand, first bool) {
	b := s.b
	if !isVGPR(src) {
		s.emitMove(dst, operand(src))
		return
	}
	read := func(v gcn.Temp) gcn.Temp {
		if first {
			return b.VOP1(gcn.OpVReadfirstlaneB32, b.Def(gcn.S1), operand(v)).Result()
		}
		return b.VOP3(gcn.OpVReadlaneB32, b.Def(gcn.S1), operand(v), lane).Result()
	}
	if src.Size() == 1 && !src.RegClass().IsSubdword() {
		res := read(src)
		s.emitMove(dst, operand(res))
		return
	}
	if src.RegClass().IsSubdword() {
		wide := b.Tmp(gcn.V1)
		b.VOP1(gcn.OpVMovB32, gcn.Def(wide), operand(src))
		s.emitMove(dst, operand(read(wide)))
		return
	}
	s.emitSplitVector(src, src.Size())
	elems := make([]gcn.Temp, src.Size())
	for i := range elems {
		elems[i] = read(s.emitExtractVector(src, i, gcn.V1))
	}
	s.createVector(dst, elems...)
}

// laneBool returns the bit of the lane mask lm at lane as a scalar boolean.
func (s *selector) laneBool(lm gcn.Temp, lane gcn.Operand) gcn.Temp {
	return s.b.SOPC(s.b.LaneOp(gcn.OpSBitcmp1B64), operand(lm), lane).Result()
}

func (s *selector) visitReadInvocation(instr *ir.Instr) {
	dst := s.temp(instr.Def)
	src := instr.Srcs[0]
	var lane gcn.Operand
	first := instr.Intrinsic == ir.IntrinsicReadFirstInvocation
	if first {
		lane = operand(s.firstLane())
	} else if v, ok := constSrc(instr.Srcs[1]); ok {
		lane = gcn.OperandConst(uint32(v))
	} else {
		lane = operand(s.b.AsUniform(operand(s.getALUSrc(instr.Srcs[1]))))
	}
	if src.Def.BitSize == 1 {
		if !isLaneMask(src.Def) {
			s.emitMove(dst, operand(s.temp(src.Def)))
			return
		}
		s.storeBool(instr, s.laneBool(s.temp(src.Def), lane))
		return
	}
	s.readLane(s.getALUSrcN(src, src.Def.NumComponents), dst, lane, first)
}

// boolToVGPR returns the lane mask lm as 0 or 1 per lane.
func (s *selector) boolToVGPR(lm gcn.Temp) gcn.Temp {
	return s.b.VOP3(gcn.OpVCndmaskB32, s.b.Def(gcn.V1), gcn.OperandConst(0), gcn.OperandConst(1), operand(lm)).Result()
}

// vgprToBool writes the lanes of v that are not zero to the lane mask dst.
func (s *selector) vgprToBool(v, dst gcn.Temp) {
	s.b.VOPC(gcn.OpVCmpLgU32, gcn.Def(dst), gcn.OperandConst(0), operand(v))
}

// perDword applies f to each dword of src and writes the results to dst. Booleans go through a
// 0 or 1 vgpr.
func (s *selector) perDword(srcDef *ir.Def, src, dst gcn.Temp, f func(v gcn.Temp) gcn.Temp) {
	b := s.b
	if srcDef.BitSize == 1 {
		s.vgprToBool(f(s.boolToVGPR(s.boolLM(ir.SrcOf(srcDef)))), dst)
		return
	}
	src = s.asVGPR(src)
	switch {
	case src.RegClass().IsSubdword():
		wide := b.Tmp(gcn.V1)
		b.VOP1(gcn.OpVMovB32, gcn.Def(wide), operand(src))
		r := f(wide)
		s.valuInto(dst, func(d gcn.Definition) { b.ExtractVector(d, operand(r), 0) })
	case src.Size() == 1:
		s.emitMove(dst, operand(f(src)))
	default:
		s.emitSplitVector(src, src.Size())
		elems := make([]gcn.Temp, src.Size())
		for i := range elems {
			elems[i] = f(s.emitExtractVector(src, i, gcn.V1))
		}
		if isVGPR(dst) {
			s.createVector(dst, elems...)
			return
		}
		tmp := b.Tmp(dst.RegClass().AsVGPR())
		s.createVector(tmp, elems...)
		s.emitMove(dst, operand(tmp))
	}
}

// bpermute reads v from the lane index, given in bytes.
func (s *selector) bpermute(index, v gcn.Temp) gcn.Temp {
	b := s.b
	gfx := s.prog.GfxLevel
	if gfx == gcn.GFX8 || gfx == gcn.GFX9 || s.prog.WaveSize == 32 && gfx >= gcn.GFX10 {
		return b.Instr(gcn.OpDsBpermuteB32, []gcn.Definition{b.Def(gcn.V1)}, operand(index), operand(v)).Result()
	}
	// ds_bpermute cannot cross the halves of a wave64 on GFX10 and does not exist before GFX8.
	// The pseudo is expanded into a readlane loop or a permute of both halves.
	defs := []gcn.Definition{b.Def(gcn.V1), b.Def(s.prog.LaneMask), b.SCCDef()}
	return b.Pseudo(gcn.OpPBpermute, defs, operand(index), operand(v)).Result()
}

func (s *selector) visitShuffle(instr *ir.Instr) {
	b := s.b
	dst := s.temp(instr.Def)
	src := instr.Srcs[0]
	laneSrc := instr.Srcs[1]
	if !src.Def.Divergent {
		if src.Def.BitSize == 1 {
			s.storeBool(instr, s.temp(src.Def))
			return
		}
		s.emitMove(dst, operand(s.getALUSrcN(src, src.Def.NumComponents)))
		return
	}
	if !laneSrc.Def.Divergent {
		lane := operand(b.AsUniform(operand(s.getALUSrc(laneSrc))))
		if src.Def.BitSize == 1 {
			s.storeBool(instr, s.laneBool(s.temp(src.Def), lane))
			return
		}
		uni := b.Tmp(gcn.NewRegClass(gcn.RegTypeSGPR, (dst.Bytes()+3)/4))
		s.readLane(s.getALUSrcN(src, src.Def.NumComponents), uni, lane, false)
		if dst.RegClass().IsSubdword() {
			s.valuInto(dst, func(d gcn.Definition) { b.ExtractVector(d, operand(s.asVGPR(uni)), 0) })
			return
		}
		s.emitMove(dst, operand(uni))
		return
	}
	lane := s.asVGPR(s.getALUSrc(laneSrc))
	index := b.VOP2(gcn.OpVLshlrevB32, b.Def(gcn.V1), gcn.OperandConst(2), operand(lane)).Result()
	var val gcn.Temp
	if src.Def.BitSize != 1 {
		val = s.getALUSrcN(src, src.Def.NumComponents)
	}
	s.perDword(src.Def, val, dst, func(v gcn.Temp) gcn.Temp { return s.bpermute(index, v) })
}

// quadPerm applies a quad permutation to v.
func (s *selector) quadPerm(v gcn.Temp, ctrl gcn.DPPCtrl) gcn.Temp {
	b := s.b
	if s.prog.GfxLevel >= gcn.GFX8 {
		return b.VOP1DPP(gcn.OpVMovB32, b.Def(gcn.V1), operand(v), ctrl, 0xf, 0xf, false).Result()
	}
	return s.dsSwizzle(v, 1<<15|uint16(ctrl))
}

func (s *selector) visitQuad(instr *ir.Instr) {
	b := s.b
	dst := s.temp(instr.Def)
	src := instr.Srcs[0]
	var ctrl gcn.DPPCtrl
	switch instr.Intrinsic {
	case ir.IntrinsicQuadSwapHorizontal:
		ctrl = gcn.DPPQuadPerm(1, 0, 3, 2)
	case ir.IntrinsicQuadSwapVertical:
		ctrl = gcn.DPPQuadPerm(2, 3, 0, 1)
	case ir.IntrinsicQuadSwapDiagonal:
		ctrl = gcn.DPPQuadPerm(3, 2, 1, 0)
	case ir.IntrinsicQuadBroadcast:
		v, ok := constSrc(instr.Srcs[1])
		if !ok {
			unsupported(instr.Intrinsic, "non-constant quad lane")
		}
		l := uint8(v)
		ctrl = gcn.DPPQuadPerm(l, l, l, l)
	}
	var val gcn.Temp
	if src.Def.BitSize != 1 {
		val = s.getALUSrcN(src, src.Def.NumComponents)
	}
	tmp := dst
	if src.Def.BitSize != 1 && isVGPR(dst) {
		tmp = b.Tmp(dst.RegClass())
	}
	s.perDword(src.Def, val, tmp, func(v gcn.Temp) gcn.Temp { return s.quadPerm(v, ctrl) })
	if tmp != dst {
		s.emitWQM(tmp, dst, true)
	} else {
		s.prog.NeedsWQM = s.prog.NeedsWQM || s.stage == ir.StageFragment
	}
}

// visitSubgroupInvocation returns the index of each lane in the wave.
func (s *selector) visitSubgroupInvocation(instr *ir.Instr) {
	all := s.laneMaskConst(true)
	s.emitMove(s.temp(instr.Def), operand(s.emitMbcnt(all)))
}
