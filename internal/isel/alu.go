package isel

import (
	"github.com/wavesel/wavesel/gcn"
	"github.com/wavesel/wavesel/ir"
)

// constSrc returns the constant component read by src.
func constSrc(src ir.Src) (uint64, bool) {
	p := src.Def.Parent
	if p == nil || p.Type != ir.InstrLoadConst {
		return 0, false
	}
	return p.Values[src.Swizzle[0]], true
}

// isLaneMask reports whether the boolean d lives in a lane mask rather than a scalar 0 or 1.
func isLaneMask(d *ir.Def) bool { return d.BitSize == 1 && d.Divergent }

func (s *selector) laneMaskConst(set bool) gcn.Operand {
	switch {
	case !set:
		return gcn.OperandConstSized(0, s.prog.LaneMask.Bytes())
	case s.prog.WaveSize == 64:
		return gcn.OperandConst64(^uint64(0))
	default:
		return gcn.OperandConst(^uint32(0))
	}
}

// boolToLaneMask broadcasts the scalar boolean val to every lane. An invalid dst allocates one.
func (s *selector) boolToLaneMask(val, dst gcn.Temp) gcn.Temp {
	if !dst.Valid() {
		dst = s.b.Tmp(s.prog.LaneMask)
	}
	s.b.SOP2(s.b.LaneOp(gcn.OpSCselectB64), gcn.Def(dst), s.laneMaskConst(true), s.laneMaskConst(false), gcn.OperandSCC(val))
	return dst
}

// laneMaskToBool reduces a lane mask to a scalar boolean set when any active lane is.
func (s *selector) laneMaskToBool(val, dst gcn.Temp) gcn.Temp {
	tmp := s.b.Tmp(gcn.S1)
	s.b.InstrFormat(s.b.LaneOp(gcn.OpSAndB64), gcn.FormatSOP2,
		[]gcn.Definition{s.b.Def(s.prog.LaneMask), gcn.Def(tmp).Fixed(gcn.SCC)},
		[]gcn.Operand{operand(val), s.b.Exec()})
	return s.emitWQM(tmp, dst, false)
}

// boolLM returns the boolean src as a lane mask.
func (s *selector) boolLM(src ir.Src) gcn.Temp {
	t := s.temp(src.Def)
	if isLaneMask(src.Def) {
		return t
	}
	return s.boolToLaneMask(t, gcn.Temp(0))
}

// boolSCC returns the boolean src as a scalar 0 or 1.
func (s *selector) boolSCC(src ir.Src) gcn.Temp {
	t := s.temp(src.Def)
	if !isLaneMask(src.Def) {
		return t
	}
	return s.laneMaskToBool(t, gcn.Temp(0))
}

// emitWQM marks src as computed in whole quad mode, which fragment shaders need for
// derivatives. Other stages just copy. An invalid dst returns a fresh Temp or src itself.
func (s *selector) emitWQM(src, dst gcn.Temp, needsWQM bool) gcn.Temp {
	if s.stage != ir.StageFragment {
		if !dst.Valid() {
			return src
		}
		s.b.Copy(gcn.Def(dst), operand(src))
		return dst
	}
	if !dst.Valid() {
		dst = s.b.Tmp(src.RegClass())
	}
	s.b.Pseudo(gcn.OpPWqm, []gcn.Definition{gcn.Def(dst)}, operand(src))
	s.prog.NeedsWQM = s.prog.NeedsWQM || needsWQM
	return dst
}

// sopSCC emits a SALU instruction whose scc result defines the scalar boolean dst. rc is the
// class of the ordinary result, ignored for comparisons.
func (s *selector) sopSCC(op gcn.Opcode, rc gcn.RegClass, dst gcn.Temp, srcs ...gcn.Operand) *gcn.Instruction {
	defs := []gcn.Definition{gcn.Def(dst).Fixed(gcn.SCC)}
	if op.Format() != gcn.FormatSOPC {
		defs = []gcn.Definition{s.b.Def(rc), defs[0]}
	}
	return s.b.InstrFormat(op, op.Format(), defs, srcs)
}

func (s *selector) aluUnsupported(instr *ir.Instr, dst gcn.Temp) {
	unsupported(instr.ALU, "%d-bit result in %s", instr.Def.BitSize, dst.RegClass())
}

// need16 rejects 16-bit vector arithmetic on generations without it.
func (s *selector) need16(instr *ir.Instr, dst gcn.Temp) {
	if s.prog.GfxLevel < gcn.GFX8 || dst.RegClass() != gcn.V2B {
		s.aluUnsupported(instr, dst)
	}
}

// emitVOP2 writes op(src0, src1) to the vgpr dst. Only the first operand of VOP2 may be
// scalar: commutative operations are swapped, others fall back to VOP3.
func (s *selector) emitVOP2(op gcn.Opcode, dst, src0, src1 gcn.Temp, commutative, flushDenorms bool) {
	b := s.b
	if !isVGPR(src1) {
		switch {
		case commutative && isVGPR(src0):
			src0, src1 = src1, src0
		case isVGPR(src0):
			b.VOP3(op, gcn.Def(dst), operand(src0), operand(src1))
			return
		default:
			src1 = s.asVGPR(src1)
		}
	}
	if flushDenorms && s.prog.GfxLevel < gcn.GFX9 {
		tmp := b.VOP2(op, b.Def(gcn.V1), operand(src0), operand(src1)).Result()
		b.VOP2(gcn.OpVMulF32, gcn.Def(dst), gcn.OperandConst(0x3f800000), operand(tmp))
		return
	}
	b.VOP2(op, gcn.Def(dst), operand(src0), operand(src1))
}

// emitVOP3A writes op(srcs...) to the vgpr dst, moving operands to vgprs so that at most one
// is scalar.
func (s *selector) emitVOP3A(op gcn.Opcode, dst gcn.Temp, flushDenorms bool, srcs ...gcn.Temp) {
	b := s.b
	ops := make([]gcn.Operand, len(srcs))
	var scalar gcn.Temp
	for i, t := range srcs {
		if !isVGPR(t) {
			if scalar.Valid() && scalar != t {
				t = s.asVGPR(t)
			} else {
				scalar = t
			}
		}
		ops[i] = operand(t)
	}
	if flushDenorms && s.prog.GfxLevel < gcn.GFX9 {
		tmp := b.VOP3(op, b.Def(dst.RegClass()), ops...).Result()
		if dst.Size() == 1 {
			b.VOP2(gcn.OpVMulF32, gcn.Def(dst), gcn.OperandConst(0x3f800000), operand(tmp))
		} else {
			b.VOP3(gcn.OpVMulF64, gcn.Def(dst), gcn.OperandConst64(0x3ff0000000000000), operand(tmp))
		}
		return
	}
	b.VOP3(op, gcn.Def(dst), ops...)
}

// emitVOPC writes the comparison op(src0, src1) to the lane mask dst. A scalar second
// operand is moved first by mirroring the comparison.
func (s *selector) emitVOPC(op gcn.Opcode, dst, src0, src1 gcn.Temp) {
	if !isVGPR(src1) {
		if isVGPR(src0) {
			swapped, ok := op.SwappedCompare()
			if !ok {
				panic("BUG: " + op.String() + " cannot be mirrored")
			}
			op, src0, src1 = swapped, src1, src0
		} else {
			src1 = s.asVGPR(src1)
		}
	}
	s.b.VOPC(op, gcn.Def(dst), operand(src0), operand(src1))
}

func (s *selector) aluVOP1(instr *ir.Instr, op gcn.Opcode, dst gcn.Temp) {
	src := s.getALUSrc(instr.Srcs[0])
	s.valuInto(dst, func(d gcn.Definition) { s.b.VOP1(op, d, operand(src)) })
}

func (s *selector) aluVOP2(instr *ir.Instr, op gcn.Opcode, dst gcn.Temp, commutative, swapSrcs, flushDenorms bool) {
	src0, src1 := s.getALUSrc(instr.Srcs[0]), s.getALUSrc(instr.Srcs[1])
	if swapSrcs {
		src0, src1 = src1, src0
	}
	s.emitVOP2(op, dst, src0, src1, commutative, flushDenorms)
}

func (s *selector) aluVOP3A(instr *ir.Instr, op gcn.Opcode, dst gcn.Temp, flushDenorms bool) {
	srcs := make([]gcn.Temp, len(instr.Srcs))
	for i, src := range instr.Srcs {
		srcs[i] = s.getALUSrc(src)
	}
	s.emitVOP3A(op, dst, flushDenorms, srcs...)
}

func (s *selector) aluSOP2(instr *ir.Instr, op gcn.Opcode, dst gcn.Temp) {
	s.b.SOP2(op, gcn.Def(dst), operand(s.getALUSrc(instr.Srcs[0])), operand(s.getALUSrc(instr.Srcs[1])))
}

// extend32 widens a sub-dword integer to 32 bits.
func (s *selector) extend32(t gcn.Temp, bitSize int, signed bool) gcn.Temp {
	b := s.b
	if bitSize >= 32 {
		return t
	}
	if isVGPR(t) {
		op := gcn.OpVBfeU32
		if signed {
			op = gcn.OpVBfeI32
		}
		return b.VOP3(op, b.Def(gcn.V1), operand(t), gcn.OperandConst(0), gcn.OperandConst(uint32(bitSize))).Result()
	}
	if signed {
		op := gcn.OpSSextI32I16
		if bitSize == 8 {
			op = gcn.OpSSextI32I8
		}
		return b.SOP1(op, b.Def(gcn.S1), operand(t)).Result()
	}
	return b.SOP2(gcn.OpSAndB32, b.Def(gcn.S1), operand(t), gcn.OperandConst(1<<bitSize-1)).Result()
}

// halves returns the dwords of a 64-bit operand.
func (s *selector) halves(o gcn.Operand) (lo, hi gcn.Operand) {
	if o.IsConstant() {
		v := o.Constant64()
		return gcn.OperandConst(uint32(v)), gcn.OperandConst(uint32(v >> 32))
	}
	l, h := s.split2(o.Temp())
	return operand(l), operand(h)
}

func isVGPROperand(o gcn.Operand) bool {
	return o.IsTemp() && o.RegClass().Type() == gcn.RegTypeVGPR
}

func (s *selector) visitALU(instr *ir.Instr) {
	dst := s.temp(instr.Def)
	b := s.b
	srcs := instr.Srcs
	switch instr.ALU {
	case ir.OpVec2, ir.OpVec3, ir.OpVec4:
		s.emitVec(instr, dst)
	case ir.OpMov:
		s.emitMove(dst, operand(s.getALUSrc(srcs[0])))

	case ir.OpIAnd, ir.OpIOr, ir.OpIXor:
		ops := map[ir.ALUOp][3]gcn.Opcode{
			ir.OpIAnd: {gcn.OpSAndB32, gcn.OpSAndB64, gcn.OpVAndB32},
			ir.OpIOr:  {gcn.OpSOrB32, gcn.OpSOrB64, gcn.OpVOrB32},
			ir.OpIXor: {gcn.OpSXorB32, gcn.OpSXorB64, gcn.OpVXorB32},
		}[instr.ALU]
		if instr.Def.BitSize == 1 {
			s.emitBoolLogic(instr, dst, ops[0], ops[1])
			break
		}
		s.emitBitwise(instr, dst, ops[0], ops[1], ops[2])
	case ir.OpINot:
		s.emitINot(instr, dst)
	case ir.OpIAdd, ir.OpISub:
		sub := instr.ALU == ir.OpISub
		s.emitIAdd(instr, dst, operand(s.getALUSrc(srcs[0])), operand(s.getALUSrc(srcs[1])), sub)
	case ir.OpINeg:
		zero := gcn.OperandConstSized(0, 4)
		if instr.Def.BitSize == 64 {
			zero = gcn.OperandConst64(0)
		}
		s.emitIAdd(instr, dst, zero, operand(s.getALUSrc(srcs[0])), true)
	case ir.OpIMul:
		switch dst.RegClass() {
		case gcn.S1:
			s.aluSOP2(instr, gcn.OpSMulI32, dst)
		case gcn.V1:
			s.aluVOP3A(instr, gcn.OpVMulLoU32, dst, false)
		default:
			s.need16(instr, dst)
			s.aluVOP2(instr, gcn.OpVMulLoU16, dst, true, false, false)
		}
	case ir.OpUMulHigh, ir.OpIMulHigh:
		sop, vop := gcn.OpSMulHiU32, gcn.OpVMulHiU32
		if instr.ALU == ir.OpIMulHigh {
			sop, vop = gcn.OpSMulHiI32, gcn.OpVMulHiI32
		}
		switch {
		case dst.RegClass() == gcn.V1:
			s.aluVOP3A(instr, vop, dst, false)
		case dst.RegClass() == gcn.S1 && s.prog.GfxLevel >= gcn.GFX9:
			s.aluSOP2(instr, sop, dst)
		case dst.RegClass() == gcn.S1:
			a, c := s.getALUSrc(srcs[0]), s.asVGPR(s.getALUSrc(srcs[1]))
			s.valuInto(dst, func(d gcn.Definition) { b.VOP3(vop, d, operand(a), operand(c)) })
		default:
			s.aluUnsupported(instr, dst)
		}
	case ir.OpIMin, ir.OpIMax, ir.OpUMin, ir.OpUMax:
		s.emitMinMax(instr, dst)
	case ir.OpIShl, ir.OpIShr, ir.OpUShr:
		s.emitShift(instr, dst)
	case ir.OpIAbs:
		s.emitIAbs(instr, dst)
	case ir.OpISign:
		s.emitISign(instr, dst)
	case ir.OpUBitfieldExtract, ir.OpIBitfieldExtract:
		s.emitBitfieldExtract(instr, dst)
	case ir.OpBitfieldInsert:
		s.emitBitfieldInsert(instr, dst)
	case ir.OpBitfieldReverse:
		switch dst.RegClass() {
		case gcn.S1:
			b.SOP1(gcn.OpSBrevB32, gcn.Def(dst), operand(s.getALUSrc(srcs[0])))
		case gcn.V1:
			s.aluVOP1(instr, gcn.OpVBfrevB32, dst)
		default:
			s.aluUnsupported(instr, dst)
		}
	case ir.OpBitCount:
		s.emitBitCount(instr, dst)
	case ir.OpFindLSB:
		src := s.extend32(s.getALUSrc(srcs[0]), srcs[0].Def.BitSize, false)
		switch {
		case src.RegClass() == gcn.S1:
			b.SOP1(gcn.OpSFf1I32B32, gcn.Def(dst), operand(src))
		case src.RegClass() == gcn.S2:
			b.SOP1(gcn.OpSFf1I32B64, gcn.Def(dst), operand(src))
		case src.RegClass() == gcn.V1:
			s.valuInto(dst, func(d gcn.Definition) { b.VOP1(gcn.OpVFfblB32, d, operand(src)) })
		default:
			s.aluUnsupported(instr, dst)
		}
	case ir.OpUFindMSB, ir.OpIFindMSB:
		s.emitFindMSB(instr, dst)

	case ir.OpFLt, ir.OpFGe, ir.OpFEq, ir.OpFNeu, ir.OpILt, ir.OpIGe, ir.OpULt, ir.OpUGe:
		s.emitComparison(instr, dst, comparisons[instr.ALU])
	case ir.OpIEq, ir.OpINe:
		if srcs[0].Def.BitSize == 1 {
			s.emitBoolEquality(instr, dst)
			break
		}
		s.emitComparison(instr, dst, comparisons[instr.ALU])
	case ir.OpBCsel:
		s.emitBCsel(instr, dst)

	default:
		switch {
		case instr.ALU.IsFloat():
			s.visitFloatALU(instr, dst)
		default:
			s.visitConversion(instr, dst)
		}
	}
}

func (s *selector) emitVec(instr *ir.Instr, dst gcn.Temp) {
	b := s.b
	n := instr.Def.NumComponents
	bitSize := instr.Def.BitSize
	elems := make([]gcn.Temp, n)
	for i := range elems {
		elems[i] = s.getALUSrc(instr.Srcs[i])
	}
	if bitSize >= 32 || isVGPR(dst) {
		rc := elemRegClass(dst.Type(), bitSize/8)
		for i, e := range elems {
			if e.RegClass() != rc && rc.IsSubdword() {
				elems[i] = s.emitExtractVector(e, 0, rc)
			} else if dst.Type() == gcn.RegTypeSGPR && isVGPR(e) {
				elems[i] = s.b.AsUniform(operand(e))
			}
		}
		s.createVector(dst, elems...)
		return
	}

	// Scalar sub-dword components are packed into dwords.
	mask := gcn.OperandConst(1<<bitSize - 1)
	words := make([]gcn.Temp, dst.Size())
	for i, e := range elems {
		bit := i * bitSize
		if (bit+bitSize)%32 != 0 {
			e = b.SOP2(gcn.OpSAndB32, b.Def(gcn.S1), operand(e), mask).Result()
		}
		if bit%32 == 0 {
			words[bit/32] = e
			continue
		}
		e = b.SOP2(gcn.OpSLshlB32, b.Def(gcn.S1), operand(e), gcn.OperandConst(uint32(bit%32))).Result()
		words[bit/32] = b.SOP2(gcn.OpSOrB32, b.Def(gcn.S1), operand(words[bit/32]), operand(e)).Result()
	}
	if len(words) == 1 {
		b.Copy(gcn.Def(dst), operand(words[0]))
		return
	}
	s.createVector(dst, words...)
}

// emitBoolLogic applies a bitwise operation to booleans. Lane masks use the lane-mask form of
// op64; scalar booleans are 0 or 1, so the 32-bit form keeps them canonical.
func (s *selector) emitBoolLogic(instr *ir.Instr, dst gcn.Temp, op32, op64 gcn.Opcode) {
	if isLaneMask(instr.Def) {
		a, c := s.boolLM(instr.Srcs[0]), s.boolLM(instr.Srcs[1])
		s.b.SOP2(s.b.LaneOp(op64), gcn.Def(dst), operand(a), operand(c))
		return
	}
	a, c := s.temp(instr.Srcs[0].Def), s.temp(instr.Srcs[1].Def)
	s.sopSCC(op32, gcn.S1, dst, operand(a), operand(c))
}

func (s *selector) emitBoolEquality(instr *ir.Instr, dst gcn.Temp) {
	eq := instr.ALU == ir.OpIEq
	if isLaneMask(instr.Def) {
		op := gcn.OpSXorB64
		if eq {
			op = gcn.OpSXnorB64
		}
		a, c := s.boolLM(instr.Srcs[0]), s.boolLM(instr.Srcs[1])
		s.b.SOP2(s.b.LaneOp(op), gcn.Def(dst), operand(a), operand(c))
		return
	}
	op := gcn.OpSCmpLgU32
	if eq {
		op = gcn.OpSCmpEqU32
	}
	s.sopSCC(op, gcn.S1, dst, operand(s.boolSCC(instr.Srcs[0])), operand(s.boolSCC(instr.Srcs[1])))
}

func (s *selector) emitBitwise(instr *ir.Instr, dst gcn.Temp, sop32, sop64, vop gcn.Opcode) {
	b := s.b
	switch {
	case dst.RegClass() == gcn.S1:
		s.aluSOP2(instr, sop32, dst)
	case dst.RegClass() == gcn.S2:
		s.aluSOP2(instr, sop64, dst)
	case dst.Size() == 1:
		s.aluVOP2(instr, vop, dst, true, false, false)
	case dst.RegClass() == gcn.V2:
		a0, a1 := s.split2(s.getALUSrc(instr.Srcs[0]))
		c0, c1 := s.split2(s.getALUSrc(instr.Srcs[1]))
		lo, hi := b.Tmp(gcn.V1), b.Tmp(gcn.V1)
		s.emitVOP2(vop, lo, a0, c0, true, false)
		s.emitVOP2(vop, hi, a1, c1, true, false)
		s.createVector(dst, lo, hi)
	default:
		s.aluUnsupported(instr, dst)
	}
}

func (s *selector) emitINot(instr *ir.Instr, dst gcn.Temp) {
	b := s.b
	if instr.Def.BitSize == 1 {
		if isLaneMask(instr.Def) {
			tmp := b.SOP1(b.LaneOp(gcn.OpSNotB64), b.Def(s.prog.LaneMask), operand(s.boolLM(instr.Srcs[0]))).Result()
			b.SOP2(b.LaneOp(gcn.OpSAndB64), gcn.Def(dst), operand(tmp), b.Exec())
			return
		}
		s.sopSCC(gcn.OpSXorB32, gcn.S1, dst, operand(s.temp(instr.Srcs[0].Def)), gcn.OperandConst(1))
		return
	}
	src := s.getALUSrc(instr.Srcs[0])
	switch {
	case dst.RegClass() == gcn.S1:
		b.SOP1(gcn.OpSNotB32, gcn.Def(dst), operand(src))
	case dst.RegClass() == gcn.S2:
		b.SOP1(gcn.OpSNotB64, gcn.Def(dst), operand(src))
	case dst.Size() == 1:
		b.VOP1(gcn.OpVNotB32, gcn.Def(dst), operand(src))
	case dst.RegClass() == gcn.V2:
		lo, hi := s.split2(src)
		s.createVector(dst,
			b.VOP1(gcn.OpVNotB32, b.Def(gcn.V1), operand(lo)).Result(),
			b.VOP1(gcn.OpVNotB32, b.Def(gcn.V1), operand(hi)).Result())
	default:
		s.aluUnsupported(instr, dst)
	}
}

// emitIAdd writes a+c, or a-c when sub is set.
func (s *selector) emitIAdd(instr *ir.Instr, dst gcn.Temp, a, c gcn.Operand, sub bool) {
	b := s.b
	switch {
	case dst.RegClass() == gcn.S1:
		op := gcn.OpSAddU32
		if sub {
			op = gcn.OpSSubU32
		}
		b.SOP2(op, gcn.Def(dst), a, c)
	case dst.RegClass() == gcn.V1:
		if sub {
			b.VSub32(gcn.Def(dst), a, c, false)
		} else {
			b.VAdd32(gcn.Def(dst), a, c, false)
		}
	case dst.RegClass() == gcn.V2B:
		s.need16(instr, dst)
		av, cv := b.AsVGPR(a), b.AsVGPR(c)
		if sub {
			s.emitVOP2(gcn.OpVSubU16, dst, av, cv, false, false)
		} else {
			s.emitVOP2(gcn.OpVAddU16, dst, av, cv, true, false)
		}
	case dst.RegClass() == gcn.S2:
		a0, a1 := s.halves(a)
		c0, c1 := s.halves(c)
		op0, op1 := gcn.OpSAddU32, gcn.OpSAddcU32
		if sub {
			op0, op1 = gcn.OpSSubU32, gcn.OpSSubbU32
		}
		lo, carry := b.Tmp(gcn.S1), b.Tmp(gcn.S1)
		b.InstrFormat(op0, gcn.FormatSOP2, []gcn.Definition{gcn.Def(lo), gcn.Def(carry).Fixed(gcn.SCC)}, []gcn.Operand{a0, c0})
		hi := b.SOP2(op1, b.Def(gcn.S1), a1, c1, gcn.OperandSCC(carry)).Result()
		s.createVector(dst, lo, hi)
	case dst.RegClass() == gcn.V2:
		a0, a1 := s.halves(a)
		c0, c1 := s.halves(c)
		lo := b.Tmp(gcn.V1)
		var carry gcn.Temp
		var hi gcn.Temp
		if sub {
			carry = b.VSub32(gcn.Def(lo), a0, c0, true).Definitions[1].Temp()
			if !isVGPROperand(c1) {
				c1 = operand(b.AsVGPR(c1))
			}
			hi = b.VOP2(gcn.OpVSubbCoU32, b.Def(gcn.V1), a1, c1, operand(carry)).Result()
		} else {
			carry = b.VAdd32(gcn.Def(lo), a0, c0, true).Definitions[1].Temp()
			if !isVGPROperand(c1) {
				if isVGPROperand(a1) {
					a1, c1 = c1, a1
				} else {
					c1 = operand(b.AsVGPR(c1))
				}
			}
			hi = b.VOP2(gcn.OpVAddcCoU32, b.Def(gcn.V1), a1, c1, operand(carry)).Result()
		}
		s.createVector(dst, lo, hi)
	default:
		s.aluUnsupported(instr, dst)
	}
}

func (s *selector) emitMinMax(instr *ir.Instr, dst gcn.Temp) {
	type ops struct{ s32, v32, v16 gcn.Opcode }
	var o ops
	signed := false
	switch instr.ALU {
	case ir.OpIMin:
		o, signed = ops{gcn.OpSMinI32, gcn.OpVMinI32, gcn.OpVMinI16}, true
	case ir.OpIMax:
		o, signed = ops{gcn.OpSMaxI32, gcn.OpVMaxI32, gcn.OpVMaxI16}, true
	case ir.OpUMin:
		o = ops{gcn.OpSMinU32, gcn.OpVMinU32, gcn.OpVMinU16}
	case ir.OpUMax:
		o = ops{gcn.OpSMaxU32, gcn.OpVMaxU32, gcn.OpVMaxU16}
	}
	bitSize := instr.Def.BitSize
	switch {
	case dst.RegClass() == gcn.S1:
		a := s.extend32(s.getALUSrc(instr.Srcs[0]), bitSize, signed)
		c := s.extend32(s.getALUSrc(instr.Srcs[1]), bitSize, signed)
		s.b.SOP2(o.s32, gcn.Def(dst), operand(a), operand(c))
	case dst.RegClass() == gcn.V1:
		s.aluVOP2(instr, o.v32, dst, true, false, false)
	default:
		s.need16(instr, dst)
		s.aluVOP2(instr, o.v16, dst, true, false, false)
	}
}

func (s *selector) emitShift(instr *ir.Instr, dst gcn.Temp) {
	type ops struct{ s32, s64, v16, v32, v64rev, v64 gcn.Opcode }
	var o ops
	signed := false
	switch instr.ALU {
	case ir.OpIShl:
		o = ops{gcn.OpSLshlB32, gcn.OpSLshlB64, gcn.OpVLshlrevB16, gcn.OpVLshlrevB32, gcn.OpVLshlrevB64, gcn.OpVLshlB64}
	case ir.OpIShr:
		o, signed = ops{gcn.OpSAshrI32, gcn.OpSAshrI64, gcn.OpVAshrrevI16, gcn.OpVAshrrevI32, gcn.OpVAshrrevI64, gcn.OpVAshrI64}, true
	case ir.OpUShr:
		o = ops{gcn.OpSLshrB32, gcn.OpSLshrB64, gcn.OpVLshrrevB16, gcn.OpVLshrrevB32, gcn.OpVLshrrevB64, gcn.OpVLshrB64}
	}
	val := s.getALUSrc(instr.Srcs[0])
	amt := s.getALUSrc(instr.Srcs[1])
	if amt.Size() == 2 {
		amt = s.emitExtractVector(amt, 0, gcn.NewRegClass(amt.Type(), 1))
	}
	b := s.b
	switch {
	case dst.RegClass() == gcn.S1:
		if instr.ALU != ir.OpIShl {
			val = s.extend32(val, instr.Def.BitSize, signed)
		}
		b.SOP2(o.s32, gcn.Def(dst), operand(val), operand(amt))
	case dst.RegClass() == gcn.S2:
		b.SOP2(o.s64, gcn.Def(dst), operand(val), operand(amt))
	case dst.RegClass() == gcn.V1:
		s.emitVOP2(o.v32, dst, amt, val, false, false)
	case dst.RegClass() == gcn.V2 && s.prog.GfxLevel >= gcn.GFX8:
		s.emitVOP3A(o.v64rev, dst, false, amt, val)
	case dst.RegClass() == gcn.V2:
		s.emitVOP3A(o.v64, dst, false, val, amt)
	default:
		s.need16(instr, dst)
		s.emitVOP2(o.v16, dst, amt, val, false, false)
	}
}

func (s *selector) emitIAbs(instr *ir.Instr, dst gcn.Temp) {
	b := s.b
	src := s.getALUSrc(instr.Srcs[0])
	switch {
	case dst.RegClass() == gcn.S1:
		b.SOP1(gcn.OpSAbsI32, gcn.Def(dst), operand(s.extend32(src, instr.Def.BitSize, true)))
	case dst.RegClass() == gcn.V1:
		neg := b.VSub32(b.Def(gcn.V1), gcn.OperandConst(0), operand(src), false).Result()
		s.emitVOP2(gcn.OpVMaxI32, dst, src, neg, true, false)
	default:
		s.need16(instr, dst)
		neg := b.Tmp(gcn.V2B)
		s.emitVOP2(gcn.OpVSubU16, neg, b.AsVGPR(gcn.OperandConstSized(0, 2)), s.asVGPR(src), false, false)
		s.emitVOP2(gcn.OpVMaxI16, dst, src, neg, true, false)
	}
}

func (s *selector) emitISign(instr *ir.Instr, dst gcn.Temp) {
	b := s.b
	src := s.getALUSrc(instr.Srcs[0])
	switch dst.RegClass() {
	case gcn.S1:
		src = s.extend32(src, instr.Def.BitSize, true)
		tmp := b.SOP2(gcn.OpSMaxI32, b.Def(gcn.S1), operand(src), gcn.OperandConst(0xffffffff)).Result()
		b.SOP2(gcn.OpSMinI32, gcn.Def(dst), operand(tmp), gcn.OperandConst(1))
	case gcn.S2:
		neg := b.SOP2(gcn.OpSAshrI64, b.Def(gcn.S2), operand(src), gcn.OperandConst(63)).Result()
		var nonZero gcn.Temp
		if s.prog.GfxLevel >= gcn.GFX8 {
			nonZero = b.SOPC(gcn.OpSCmpLgU64, operand(src), gcn.OperandConst64(0)).Result()
		} else {
			nonZero = b.SOP2(gcn.OpSOrB64, b.Def(gcn.S2), operand(src), gcn.OperandConst64(0)).Definitions[1].Temp()
		}
		// scc is zero-extended to 64 bits.
		b.SOP2(gcn.OpSOrB64, gcn.Def(dst), operand(neg), gcn.OperandSCC(nonZero))
	case gcn.V1:
		b.VOP3(gcn.OpVMed3I32, gcn.Def(dst), gcn.OperandConst(0xffffffff), operand(src), gcn.OperandConst(1))
	case gcn.V2:
		src = s.asVGPR(src)
		upper := s.emitExtractVector(src, 1, gcn.V1)
		neg := b.VOP2(gcn.OpVAshrrevI32, b.Def(gcn.V1), gcn.OperandConst(31), operand(upper)).Result()
		notPositive := b.VOPC(gcn.OpVCmpGeI64, b.Def(s.prog.LaneMask), gcn.OperandConst(0), operand(src)).Result()
		lo := b.VOP3(gcn.OpVCndmaskB32, b.Def(gcn.V1), gcn.OperandConst(1), operand(neg), operand(notPositive)).Result()
		hi := b.VOP3(gcn.OpVCndmaskB32, b.Def(gcn.V1), gcn.OperandConst(0), operand(neg), operand(notPositive)).Result()
		s.createVector(dst, lo, hi)
	default:
		s.aluUnsupported(instr, dst)
	}
}

func (s *selector) emitBitfieldExtract(instr *ir.Instr, dst gcn.Temp) {
	b := s.b
	unsigned := instr.ALU == ir.OpUBitfieldExtract
	switch dst.RegClass() {
	case gcn.S1:
		base := s.getALUSrc(instr.Srcs[0])
		var extract gcn.Operand
		offset, constOffset := constSrc(instr.Srcs[1])
		width, constWidth := constSrc(instr.Srcs[2])
		switch {
		case constOffset && constWidth:
			extract = gcn.OperandConst(uint32(width)<<16 | uint32(offset))
		default:
			var w gcn.Operand
			if constWidth {
				w = gcn.OperandConst(uint32(width) << 16)
			} else {
				w = operand(b.SOP2(gcn.OpSLshlB32, b.Def(gcn.S1), operand(s.getALUSrc(instr.Srcs[2])), gcn.OperandConst(16)).Result())
			}
			extract = operand(b.SOP2(gcn.OpSOrB32, b.Def(gcn.S1), operand(s.getALUSrc(instr.Srcs[1])), w).Result())
		}
		op := gcn.OpSBfeI32
		if unsigned {
			op = gcn.OpSBfeU32
		}
		b.SOP2(op, gcn.Def(dst), operand(base), extract)
	case gcn.V1:
		op := gcn.OpVBfeI32
		if unsigned {
			op = gcn.OpVBfeU32
		}
		s.aluVOP3A(instr, op, dst, false)
	default:
		s.aluUnsupported(instr, dst)
	}
}

// emitBitfieldInsert computes (base & ~mask) | ((insert << offset) & mask) with mask covering
// bits [offset, offset+bits).
func (s *selector) emitBitfieldInsert(instr *ir.Instr, dst gcn.Temp) {
	b := s.b
	base := s.getALUSrc(instr.Srcs[0])
	insert := s.getALUSrc(instr.Srcs[1])
	offset := s.getALUSrc(instr.Srcs[2])
	width := s.getALUSrc(instr.Srcs[3])
	switch dst.RegClass() {
	case gcn.S1:
		mask := b.SOP2(gcn.OpSBfmB32, b.Def(gcn.S1), operand(width), operand(offset)).Result()
		ins := b.SOP2(gcn.OpSLshlB32, b.Def(gcn.S1), operand(insert), operand(offset)).Result()
		ins = b.SOP2(gcn.OpSAndB32, b.Def(gcn.S1), operand(ins), operand(mask)).Result()
		rest := b.SOP2(gcn.OpSAndn2B32, b.Def(gcn.S1), operand(base), operand(mask)).Result()
		b.SOP2(gcn.OpSOrB32, gcn.Def(dst), operand(ins), operand(rest))
	case gcn.V1:
		mask := b.Tmp(gcn.V1)
		s.emitVOP3A(gcn.OpVBfmB32, mask, false, width, offset)
		ins := b.Tmp(gcn.V1)
		s.emitVOP2(gcn.OpVLshlrevB32, ins, offset, insert, false, false)
		s.emitVOP3A(gcn.OpVBfiB32, dst, false, mask, ins, base)
	default:
		s.aluUnsupported(instr, dst)
	}
}

func (s *selector) emitBitCount(instr *ir.Instr, dst gcn.Temp) {
	b := s.b
	src := s.extend32(s.getALUSrc(instr.Srcs[0]), instr.Srcs[0].Def.BitSize, false)
	switch {
	case src.RegClass() == gcn.S1:
		b.SOP1(gcn.OpSBcnt1I32B32, gcn.Def(dst), operand(src))
	case src.RegClass() == gcn.S2:
		b.SOP1(gcn.OpSBcnt1I32B64, gcn.Def(dst), operand(src))
	case src.RegClass() == gcn.V1:
		s.valuInto(dst, func(d gcn.Definition) {
			b.VOP3(gcn.OpVBcntU32B32, d, operand(src), gcn.OperandConst(0))
		})
	case src.RegClass() == gcn.V2:
		lo, hi := s.split2(src)
		s.valuInto(dst, func(d gcn.Definition) {
			t := b.VOP3(gcn.OpVBcntU32B32, b.Def(gcn.V1), operand(lo), gcn.OperandConst(0)).Result()
			b.VOP3(gcn.OpVBcntU32B32, d, operand(hi), operand(t))
		})
	default:
		s.aluUnsupported(instr, dst)
	}
}

// emitFindMSB converts the count of leading bits the hardware returns into a bit index,
// keeping -1 for inputs without one.
func (s *selector) emitFindMSB(instr *ir.Instr, dst gcn.Temp) {
	b := s.b
	unsigned := instr.ALU == ir.OpUFindMSB
	src := s.extend32(s.getALUSrc(instr.Srcs[0]), instr.Srcs[0].Def.BitSize, !unsigned)
	switch {
	case src.Type() == gcn.RegTypeSGPR && (src.Size() == 1 || unsigned):
		op := gcn.OpSFlbitI32
		switch {
		case src.Size() == 2:
			op = gcn.OpSFlbitI32B64
		case unsigned:
			op = gcn.OpSFlbitI32B32
		}
		rev := b.SOP1(op, b.Def(gcn.S1), operand(src)).Result()
		msb, borrow := b.Tmp(gcn.S1), b.Tmp(gcn.S1)
		b.InstrFormat(gcn.OpSSubU32, gcn.FormatSOP2, []gcn.Definition{gcn.Def(msb), gcn.Def(borrow).Fixed(gcn.SCC)},
			[]gcn.Operand{gcn.OperandConst(uint32(src.Size()*32 - 1)), operand(rev)})
		b.SOP2(gcn.OpSCselectB32, gcn.Def(dst), gcn.OperandConst(0xffffffff), operand(msb), gcn.OperandSCC(borrow))
	case src.RegClass() == gcn.V1:
		op := gcn.OpVFfbhI32
		if unsigned {
			op = gcn.OpVFfbhU32
		}
		rev := b.VOP1(op, b.Def(gcn.V1), operand(src)).Result()
		msb := b.Tmp(gcn.V1)
		borrow := b.VSub32(gcn.Def(msb), gcn.OperandConst(31), operand(rev), true).Definitions[1].Temp()
		s.valuInto(dst, func(d gcn.Definition) {
			b.VOP3(gcn.OpVCndmaskB32, d, operand(msb), gcn.OperandConst(0xffffffff), operand(borrow))
		})
	default:
		s.aluUnsupported(instr, dst)
	}
}

type cmpOps struct {
	v16, v32, v64 gcn.Opcode
	s32, s64      gcn.Opcode
	signed        bool
}

var comparisons = map[ir.ALUOp]cmpOps{
	ir.OpFLt:  {gcn.OpVCmpLtF16, gcn.OpVCmpLtF32, gcn.OpVCmpLtF64, gcn.OpInvalid, gcn.OpInvalid, false},
	ir.OpFGe:  {gcn.OpVCmpGeF16, gcn.OpVCmpGeF32, gcn.OpVCmpGeF64, gcn.OpInvalid, gcn.OpInvalid, false},
	ir.OpFEq:  {gcn.OpVCmpEqF16, gcn.OpVCmpEqF32, gcn.OpVCmpEqF64, gcn.OpInvalid, gcn.OpInvalid, false},
	ir.OpFNeu: {gcn.OpVCmpNeqF16, gcn.OpVCmpNeqF32, gcn.OpVCmpNeqF64, gcn.OpInvalid, gcn.OpInvalid, false},
	ir.OpILt:  {gcn.OpVCmpLtI16, gcn.OpVCmpLtI32, gcn.OpVCmpLtI64, gcn.OpSCmpLtI32, gcn.OpInvalid, true},
	ir.OpIGe:  {gcn.OpVCmpGeI16, gcn.OpVCmpGeI32, gcn.OpVCmpGeI64, gcn.OpSCmpGeI32, gcn.OpInvalid, true},
	ir.OpIEq:  {gcn.OpVCmpEqI16, gcn.OpVCmpEqI32, gcn.OpVCmpEqI64, gcn.OpSCmpEqI32, gcn.OpSCmpEqU64, false},
	ir.OpINe:  {gcn.OpVCmpLgI16, gcn.OpVCmpLgI32, gcn.OpVCmpLgI64, gcn.OpSCmpLgI32, gcn.OpSCmpLgU64, false},
	ir.OpULt:  {gcn.OpVCmpLtU16, gcn.OpVCmpLtU32, gcn.OpVCmpLtU64, gcn.OpSCmpLtU32, gcn.OpInvalid, false},
	ir.OpUGe:  {gcn.OpVCmpGeU16, gcn.OpVCmpGeU32, gcn.OpVCmpGeU64, gcn.OpSCmpGeU32, gcn.OpInvalid, false},
}

// emitComparison selects between a SALU and a VALU comparison. The SALU form needs scalar
// operands and a uniform result.
func (s *selector) emitComparison(instr *ir.Instr, dst gcn.Temp, c cmpOps) {
	b := s.b
	bitSize := instr.Srcs[0].Def.BitSize
	src0 := s.getALUSrc(instr.Srcs[0])
	src1 := s.getALUSrc(instr.Srcs[1])
	float := instr.ALU >= ir.OpFLt && instr.ALU <= ir.OpFNeu
	vgprSrc := isVGPR(src0) || isVGPR(src1)

	var vop, sop gcn.Opcode
	switch bitSize {
	case 64:
		vop, sop = c.v64, c.s64
		if s.prog.GfxLevel < gcn.GFX8 {
			sop = gcn.OpInvalid
		}
	case 32:
		vop, sop = c.v32, c.s32
	default:
		switch {
		case bitSize == 16 && s.prog.GfxLevel >= gcn.GFX8 && (vgprSrc || float || isLaneMask(instr.Def)):
			vop, sop = c.v16, gcn.OpInvalid
		case float:
			unsupported(instr.ALU, "16-bit float comparison on %s", s.prog.GfxLevel)
		default:
			src0 = s.extend32(src0, bitSize, c.signed)
			src1 = s.extend32(src1, bitSize, c.signed)
			vop, sop = c.v32, c.s32
		}
	}

	useVALU := sop == gcn.OpInvalid || isLaneMask(instr.Def) || vgprSrc
	switch {
	case useVALU && isLaneMask(instr.Def):
		s.emitVOPC(vop, dst, src0, src1)
	case useVALU:
		mask := b.Tmp(s.prog.LaneMask)
		s.emitVOPC(vop, mask, src0, src1)
		s.laneMaskToBool(mask, dst)
	case isLaneMask(instr.Def):
		cmp := b.SOPC(sop, operand(src0), operand(src1)).Result()
		s.boolToLaneMask(cmp, dst)
	default:
		s.sopSCC(sop, gcn.S1, dst, operand(src0), operand(src1))
	}
}

// emitBCsel selects between two values. Vector results use v_cndmask per dword, scalar ones
// s_cselect on a scalar condition, and lane-mask results combine the masks bitwise.
func (s *selector) emitBCsel(instr *ir.Instr, dst gcn.Temp) {
	b := s.b
	cond := instr.Srcs[0]
	if isVGPR(dst) {
		mask := s.boolLM(cond)
		then := s.asVGPR(s.getALUSrc(instr.Srcs[1]))
		els := s.asVGPR(s.getALUSrc(instr.Srcs[2]))
		switch dst.Size() {
		case 1:
			b.VOP2(gcn.OpVCndmaskB32, gcn.Def(dst), operand(els), operand(then), operand(mask))
		case 2:
			then0, then1 := s.split2(then)
			els0, els1 := s.split2(els)
			lo := b.VOP2(gcn.OpVCndmaskB32, b.Def(gcn.V1), operand(els0), operand(then0), operand(mask)).Result()
			hi := b.VOP2(gcn.OpVCndmaskB32, b.Def(gcn.V1), operand(els1), operand(then1), operand(mask)).Result()
			s.createVector(dst, lo, hi)
		default:
			s.aluUnsupported(instr, dst)
		}
		return
	}

	if instr.Def.BitSize == 1 && isLaneMask(instr.Def) {
		c := s.boolLM(cond)
		then := s.boolLM(instr.Srcs[1])
		els := s.boolLM(instr.Srcs[2])
		if c != then {
			then = b.SOP2(b.LaneOp(gcn.OpSAndB64), b.Def(s.prog.LaneMask), operand(c), operand(then)).Result()
		}
		if c == els {
			b.SOP1(b.LaneOp(gcn.OpSMovB64), gcn.Def(dst), operand(then))
			return
		}
		rest := b.SOP2(b.LaneOp(gcn.OpSAndn2B64), b.Def(s.prog.LaneMask), operand(els), operand(c)).Result()
		b.SOP2(b.LaneOp(gcn.OpSOrB64), gcn.Def(dst), operand(then), operand(rest))
		return
	}

	if cond.Def.Divergent {
		panic("BUG: scalar select on a divergent condition")
	}
	then := s.getALUSrc(instr.Srcs[1])
	els := s.getALUSrc(instr.Srcs[2])
	if instr.Def.BitSize == 1 {
		then, els = s.boolSCC(instr.Srcs[1]), s.boolSCC(instr.Srcs[2])
	}
	op := gcn.OpSCselectB32
	switch dst.RegClass() {
	case gcn.S1:
	case gcn.S2:
		op = gcn.OpSCselectB64
	default:
		s.aluUnsupported(instr, dst)
	}
	b.SOP2(op, gcn.Def(dst), operand(then), operand(els), gcn.OperandSCC(s.temp(cond.Def)))
}
