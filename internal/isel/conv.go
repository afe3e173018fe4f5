package isel

import (
	"github.com/wavesel/wavesel/gcn"
	"github.com/wavesel/wavesel/ir"
)

// visitConversion lowers boolean, numeric and packing conversions.
func (s *selector) visitConversion(instr *ir.Instr, dst gcn.Temp) {
	b := s.b
	src := instr.Srcs[0]
	srcBits := src.Def.BitSize

	switch instr.ALU {
	case ir.OpB2F32, ir.OpB2I32:
		one := uint32(1)
		if instr.ALU == ir.OpB2F32 {
			one = 0x3f800000
		}
		if isVGPR(dst) {
			b.VOP3(gcn.OpVCndmaskB32, gcn.Def(dst), gcn.OperandConst(0), gcn.OperandConst(one), operand(s.boolLM(src)))
			break
		}
		// Scalar booleans are already 0 or 1.
		val := s.boolSCC(src)
		if one == 1 {
			b.Copy(gcn.Def(dst), operand(val))
		} else {
			b.SOP2(gcn.OpSMulI32, gcn.Def(dst), gcn.OperandConst(one), operand(val))
		}
	case ir.OpI2B1:
		s.emitI2B(instr, dst)
	case ir.OpF2I32, ir.OpF2U32:
		signed := instr.ALU == ir.OpF2I32
		val := s.getALUSrc(src)
		var op gcn.Opcode
		switch srcBits {
		case 16:
			val = b.VOP1(gcn.OpVCvtF32F16, b.Def(gcn.V1), operand(val)).Result()
			fallthrough
		case 32:
			op = gcn.OpVCvtU32F32
			if signed {
				op = gcn.OpVCvtI32F32
			}
		case 64:
			op = gcn.OpVCvtU32F64
			if signed {
				op = gcn.OpVCvtI32F64
			}
		default:
			s.aluUnsupported(instr, dst)
		}
		s.valuInto(dst, func(d gcn.Definition) { b.VOP1(op, d, operand(val)) })
	case ir.OpI2F32, ir.OpU2F32:
		signed := instr.ALU == ir.OpI2F32
		val := s.getALUSrc(src)
		switch {
		case srcBits == 8 && !signed && isVGPR(val):
			b.VOP1(gcn.OpVCvtF32Ubyte0, gcn.Def(dst), operand(val))
		case srcBits <= 32:
			val = s.extend32(val, srcBits, signed)
			op := gcn.OpVCvtF32U32
			if signed {
				op = gcn.OpVCvtF32I32
			}
			b.VOP1(op, gcn.Def(dst), operand(val))
		default:
			unsupported(instr.ALU, "64-bit integer source")
		}
	case ir.OpI2F64, ir.OpU2F64:
		signed := instr.ALU == ir.OpI2F64
		hiOp := gcn.OpVCvtF64U32
		if signed {
			hiOp = gcn.OpVCvtF64I32
		}
		val := s.getALUSrc(src)
		if srcBits <= 32 {
			b.VOP1(hiOp, gcn.Def(dst), operand(s.extend32(val, srcBits, signed)))
			break
		}
		// x = hi * 2^32 + lo
		lo, hi := s.split2(val)
		flo := b.VOP1(gcn.OpVCvtF64U32, b.Def(gcn.V2), operand(lo)).Result()
		fhi := b.VOP1(hiOp, b.Def(gcn.V2), operand(hi)).Result()
		fhi = b.VOP3(gcn.OpVLdexpF64, b.Def(gcn.V2), operand(fhi), gcn.OperandConst(32)).Result()
		b.VOP3(gcn.OpVAddF64, gcn.Def(dst), operand(fhi), operand(flo))
	case ir.OpF2F16, ir.OpF2F32, ir.OpF2F64:
		s.emitFloatResize(instr, dst)
	case ir.OpI2I8, ir.OpI2I16, ir.OpI2I32, ir.OpI2I64, ir.OpU2U8, ir.OpU2U16, ir.OpU2U32, ir.OpU2U64:
		s.emitIntResize(instr, dst)
	case ir.OpPackHalf2x16:
		vec := s.getALUSrcN(src, 2)
		s.emitSplitVector(vec, 2)
		rc := gcn.NewRegClass(vec.Type(), 1)
		x, y := s.emitExtractVector(vec, 0, rc), s.emitExtractVector(vec, 1, rc)
		s.emitVOP3A(gcn.OpVCvtPkrtzF16F32, dst, false, x, y)
	case ir.OpPack64_2x32Split:
		lo, hi := s.getALUSrc(src), s.getALUSrc(instr.Srcs[1])
		if isVGPR(dst) {
			lo, hi = s.asVGPR(lo), s.asVGPR(hi)
		}
		s.createVector(dst, lo, hi)
	case ir.OpUnpack64_2x32SplitX, ir.OpUnpack64_2x32SplitY:
		val := s.getALUSrc(src)
		idx := 0
		if instr.ALU == ir.OpUnpack64_2x32SplitY {
			idx = 1
		}
		s.emitSplitVector(val, 2)
		s.emitMove(dst, operand(s.emitExtractVector(val, idx, gcn.NewRegClass(val.Type(), 1))))
	default:
		s.aluUnsupported(instr, dst)
	}
}

// emitI2B compares an integer against zero.
func (s *selector) emitI2B(instr *ir.Instr, dst gcn.Temp) {
	b := s.b
	src := instr.Srcs[0]
	val := s.getALUSrc(src)
	bits := src.Def.BitSize
	if bits < 32 {
		val = s.extend32(val, bits, false)
	}
	if isLaneMask(instr.Def) || isVGPR(val) {
		op := gcn.OpVCmpLgU32
		if bits == 64 {
			op = gcn.OpVCmpLgU64
		}
		mask := dst
		if !isLaneMask(instr.Def) {
			mask = b.Tmp(s.prog.LaneMask)
		}
		b.VOPC(op, gcn.Def(mask), gcn.OperandConstSized(0, val.Bytes()), operand(s.asVGPR(val)))
		if mask != dst {
			s.laneMaskToBool(mask, dst)
		}
		return
	}
	switch {
	case bits < 64:
		s.sopSCC(gcn.OpSCmpLgU32, gcn.S1, dst, operand(val), gcn.OperandConst(0))
	case s.prog.GfxLevel >= gcn.GFX8:
		s.sopSCC(gcn.OpSCmpLgU64, gcn.S2, dst, operand(val), gcn.OperandConst64(0))
	default:
		s.sopSCC(gcn.OpSOrB64, gcn.S2, dst, operand(val), gcn.OperandConst64(0))
	}
}

func (s *selector) emitFloatResize(instr *ir.Instr, dst gcn.Temp) {
	b := s.b
	val := s.getALUSrc(instr.Srcs[0])
	from := instr.Srcs[0].Def.BitSize
	to := instr.Def.BitSize
	if (to == 16 || from == 16) && s.prog.GfxLevel < gcn.GFX8 {
		unsupported(instr.ALU, "16-bit floats on %s", s.prog.GfxLevel)
	}
	switch {
	case from == to:
		b.Copy(gcn.Def(dst), operand(val))
	case from == 64 && to == 16:
		val = b.VOP1(gcn.OpVCvtF32F64, b.Def(gcn.V1), operand(val)).Result()
		b.VOP1(gcn.OpVCvtF16F32, gcn.Def(dst), operand(val))
	case from == 16 && to == 64:
		val = b.VOP1(gcn.OpVCvtF32F16, b.Def(gcn.V1), operand(val)).Result()
		b.VOP1(gcn.OpVCvtF64F32, gcn.Def(dst), operand(val))
	default:
		ops := map[[2]int]gcn.Opcode{
			{32, 16}: gcn.OpVCvtF16F32,
			{16, 32}: gcn.OpVCvtF32F16,
			{64, 32}: gcn.OpVCvtF32F64,
			{32, 64}: gcn.OpVCvtF64F32,
		}
		b.VOP1(ops[[2]int{from, to}], gcn.Def(dst), operand(val))
	}
}

// emitIntResize truncates or extends an integer. Narrowed scalar values keep garbage in the
// unused high bits, which every consumer of a sub-dword sgpr value ignores.
func (s *selector) emitIntResize(instr *ir.Instr, dst gcn.Temp) {
	b := s.b
	val := s.getALUSrc(instr.Srcs[0])
	from := instr.Srcs[0].Def.BitSize
	to := instr.Def.BitSize
	signed := instr.ALU <= ir.OpI2I64

	if from == to {
		s.emitMove(dst, operand(val))
		return
	}
	if to < from {
		if from == 64 {
			s.emitSplitVector(val, 2)
			val = s.emitExtractVector(val, 0, gcn.NewRegClass(val.Type(), 1))
		}
		switch {
		case val.RegClass() == dst.RegClass() || !isVGPR(dst):
			s.emitMove(dst, operand(val))
		default:
			b.ExtractVector(gcn.Def(dst), operand(s.asVGPR(val)), 0)
		}
		return
	}

	val = s.extend32(val, from, signed)
	switch {
	case to == 64:
		hi := gcn.OperandConst(0)
		if signed {
			if isVGPR(val) {
				hi = operand(b.VOP2(gcn.OpVAshrrevI32, b.Def(gcn.V1), gcn.OperandConst(31), operand(val)).Result())
			} else {
				hi = operand(b.SOP2(gcn.OpSAshrI32, b.Def(gcn.S1), operand(val), gcn.OperandConst(31)).Result())
			}
		}
		if isVGPR(dst) {
			val = s.asVGPR(val)
		}
		b.CreateVector(gcn.Def(dst), operand(val), hi)
	case dst.RegClass().IsSubdword():
		b.ExtractVector(gcn.Def(dst), operand(s.asVGPR(val)), 0)
	default:
		s.emitMove(dst, operand(val))
	}
}

// visitLoadConst materializes a constant. Constants are uniform and live in sgprs.
func (s *selector) visitLoadConst(instr *ir.Instr) {
	b := s.b
	d := instr.Def
	dst := s.temp(d)
	if d.BitSize == 1 {
		v := uint32(0)
		if instr.Values[0] != 0 {
			v = 1
		}
		if isLaneMask(d) {
			b.SOP1(b.LaneOp(gcn.OpSMovB64), gcn.Def(dst), s.laneMaskConst(v == 1))
			return
		}
		b.SOP1(gcn.OpSMovB32, gcn.Def(dst), gcn.OperandConst(v))
		return
	}
	if d.NumComponents == 1 && d.BitSize == 64 {
		b.Copy(gcn.Def(dst), gcn.OperandConst64(instr.Values[0]))
		return
	}
	dwords := packDwords(instr.Values, d.BitSize)
	if dst.Type() == gcn.RegTypeVGPR && dst.RegClass().IsSubdword() {
		b.Copy(gcn.Def(dst), gcn.OperandConstSized(uint64(dwords[0]), dst.Bytes()))
		return
	}
	if len(dwords) == 1 {
		b.Copy(gcn.Def(dst), gcn.OperandConst(dwords[0]))
		return
	}
	ops := make([]gcn.Operand, len(dwords))
	for i, w := range dwords {
		ops[i] = gcn.OperandConst(w)
	}
	b.CreateVector(gcn.Def(dst), ops...)
}

// packDwords lays out constant components in little-endian dwords.
func packDwords(values []uint64, bitSize int) []uint32 {
	totalBits := len(values) * bitSize
	dwords := make([]uint32, (totalBits+31)/32)
	for i, v := range values {
		if bitSize < 64 {
			v &= 1<<bitSize - 1
		}
		pos := i * bitSize
		for off := 0; off < bitSize; off += 32 {
			dwords[(pos+off)/32] |= uint32(v>>off) << ((pos + off) % 32)
		}
	}
	return dwords
}

// visitUndef gives an undefined value a zero definition.
func (s *selector) visitUndef(instr *ir.Instr) {
	dst := s.temp(instr.Def)
	switch {
	case dst.Bytes()%4 != 0 && dst.Bytes() > 2:
		s.b.Copy(gcn.Def(dst), gcn.OperandUndef(dst.RegClass()))
		return
	case dst.Bytes() <= 4:
		s.b.Copy(gcn.Def(dst), gcn.OperandConstSized(0, dst.Bytes()))
		return
	}
	ops := make([]gcn.Operand, dst.Size())
	for i := range ops {
		ops[i] = gcn.OperandConst(0)
	}
	s.b.CreateVector(gcn.Def(dst), ops...)
}
