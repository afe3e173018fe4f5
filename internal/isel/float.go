package isel

import (
	"github.com/wavesel/wavesel/gcn"
	"github.com/wavesel/wavesel/ir"
)

type floatOps struct{ f16, f32, f64 gcn.Opcode }

func (o floatOps) pick(rc gcn.RegClass) gcn.Opcode {
	switch rc {
	case gcn.V2B:
		return o.f16
	case gcn.V1:
		return o.f32
	case gcn.V2:
		return o.f64
	}
	return gcn.OpInvalid
}

var unaryFloatOps = map[ir.ALUOp]floatOps{
	ir.OpFRcp:       {gcn.OpVRcpF16, gcn.OpVRcpF32, gcn.OpVRcpF64},
	ir.OpFRsq:       {gcn.OpVRsqF16, gcn.OpVRsqF32, gcn.OpVRsqF64},
	ir.OpFSqrt:      {gcn.OpVSqrtF16, gcn.OpVSqrtF32, gcn.OpVSqrtF64},
	ir.OpFExp2:      {gcn.OpVExpF16, gcn.OpVExpF32, gcn.OpInvalid},
	ir.OpFLog2:      {gcn.OpVLogF16, gcn.OpVLogF32, gcn.OpInvalid},
	ir.OpFFract:     {gcn.OpVFractF16, gcn.OpVFractF32, gcn.OpVFractF64},
	ir.OpFFloor:     {gcn.OpVFloorF16, gcn.OpVFloorF32, gcn.OpVFloorF64},
	ir.OpFCeil:      {gcn.OpVCeilF16, gcn.OpVCeilF32, gcn.OpVCeilF64},
	ir.OpFTrunc:     {gcn.OpVTruncF16, gcn.OpVTruncF32, gcn.OpVTruncF64},
	ir.OpFRoundEven: {gcn.OpVRndneF16, gcn.OpVRndneF32, gcn.OpVRndneF64},
}

var binaryFloatOps = map[ir.ALUOp]floatOps{
	ir.OpFAdd:   {gcn.OpVAddF16, gcn.OpVAddF32, gcn.OpVAddF64},
	ir.OpFMul:   {gcn.OpVMulF16, gcn.OpVMulF32, gcn.OpVMulF64},
	ir.OpFMin:   {gcn.OpVMinF16, gcn.OpVMinF32, gcn.OpVMinF64},
	ir.OpFMax:   {gcn.OpVMaxF16, gcn.OpVMaxF32, gcn.OpVMaxF64},
	ir.OpFLdexp: {gcn.OpVLdexpF16, gcn.OpVLdexpF32, gcn.OpVLdexpF64},
}

// visitFloatALU lowers floating-point operations. Their results always live in vgprs.
func (s *selector) visitFloatALU(instr *ir.Instr, dst gcn.Temp) {
	b := s.b
	rc := dst.RegClass()
	if !isVGPR(dst) {
		panic("BUG: scalar float result")
	}
	if rc == gcn.V2B && s.prog.GfxLevel < gcn.GFX8 {
		unsupported(instr.ALU, "16-bit float arithmetic on %s", s.prog.GfxLevel)
	}
	flush32, flush64 := !s.prog.FloatMode.PreserveDenorm32, !s.prog.FloatMode.PreserveDenorm1664

	switch instr.ALU {
	case ir.OpFAdd, ir.OpFMul, ir.OpFMin, ir.OpFMax, ir.OpFLdexp:
		op := binaryFloatOps[instr.ALU].pick(rc)
		minMax := instr.ALU == ir.OpFMin || instr.ALU == ir.OpFMax
		switch {
		case op == gcn.OpInvalid:
			s.aluUnsupported(instr, dst)
		case instr.ALU == ir.OpFLdexp && rc != gcn.V2B:
			s.aluVOP3A(instr, op, dst, false)
		case rc == gcn.V2:
			s.aluVOP3A(instr, op, dst, minMax && flush64)
		case rc == gcn.V1:
			s.aluVOP2(instr, op, dst, instr.ALU != ir.OpFLdexp, false, minMax && flush32)
		default:
			s.aluVOP2(instr, op, dst, instr.ALU != ir.OpFLdexp, false, false)
		}
	case ir.OpFSub:
		src0, src1 := s.getALUSrc(instr.Srcs[0]), s.getALUSrc(instr.Srcs[1])
		switch rc {
		case gcn.V2B:
			s.emitVOP2(gcn.OpVSubF16, dst, src0, src1, false, false)
		case gcn.V1:
			if isVGPR(src1) || !isVGPR(src0) {
				s.emitVOP2(gcn.OpVSubF32, dst, src0, src1, false, false)
			} else {
				s.emitVOP2(gcn.OpVSubrevF32, dst, src1, src0, false, false)
			}
		case gcn.V2:
			add := b.VOP3(gcn.OpVAddF64, gcn.Def(dst), operand(s.asVGPR(src0)), operand(s.asVGPR(src1)))
			add.VOP3.Neg[1] = true
		}
	case ir.OpFFma:
		switch rc {
		case gcn.V1:
			s.aluVOP3A(instr, gcn.OpVFmaF32, dst, false)
		case gcn.V2:
			s.aluVOP3A(instr, gcn.OpVFmaF64, dst, false)
		default:
			unsupported(instr.ALU, "no 16-bit fused multiply-add")
		}
	case ir.OpFNeg, ir.OpFAbs:
		s.emitSignBit(instr, dst, flush32, flush64)
	case ir.OpFSat:
		src := s.getALUSrc(instr.Srcs[0])
		switch rc {
		case gcn.V2B:
			mul := b.VOP3(gcn.OpVMulF16, gcn.Def(dst), gcn.OperandConst(0x3c00), operand(src))
			mul.VOP3.Clamp = true
		case gcn.V1:
			b.VOP3(gcn.OpVMed3F32, gcn.Def(dst), gcn.OperandConst(0), gcn.OperandConst(0x3f800000), operand(src))
		case gcn.V2:
			add := b.VOP3(gcn.OpVAddF64, gcn.Def(dst), operand(src), gcn.OperandConst64(0))
			add.VOP3.Clamp = true
		}
	case ir.OpFSin, ir.OpFCos:
		src := s.asVGPR(s.getALUSrc(instr.Srcs[0]))
		var mulOp, fractOp, op gcn.Opcode
		var invTwoPi uint32
		switch rc {
		case gcn.V1:
			mulOp, fractOp, op, invTwoPi = gcn.OpVMulF32, gcn.OpVFractF32, gcn.OpVSinF32, 0x3e22f983
			if instr.ALU == ir.OpFCos {
				op = gcn.OpVCosF32
			}
		case gcn.V2B:
			mulOp, fractOp, op, invTwoPi = gcn.OpVMulF16, gcn.OpVFractF16, gcn.OpVSinF16, 0x3118
			if instr.ALU == ir.OpFCos {
				op = gcn.OpVCosF16
			}
		default:
			s.aluUnsupported(instr, dst)
		}
		tmp := b.VOP2(mulOp, b.Def(rc), gcn.OperandConst(invTwoPi), operand(src)).Result()
		// Before GFX9 the hardware only accepts inputs in [-256, 256].
		if s.prog.GfxLevel < gcn.GFX9 {
			tmp = b.VOP1(fractOp, b.Def(rc), operand(tmp)).Result()
		}
		b.VOP1(op, gcn.Def(dst), operand(tmp))
	case ir.OpFFloor, ir.OpFCeil, ir.OpFTrunc, ir.OpFRoundEven:
		if rc == gcn.V2 && s.prog.GfxLevel < gcn.GFX7 {
			src := s.getALUSrc(instr.Srcs[0])
			switch instr.ALU {
			case ir.OpFFloor:
				s.emitFloorF64(dst, src)
			case ir.OpFCeil:
				s.emitCeilF64(dst, src)
			case ir.OpFTrunc:
				s.emitTruncF64(gcn.Def(dst), src)
			default:
				s.emitRoundEvenF64(dst, src)
			}
			break
		}
		s.aluVOP1(instr, unaryFloatOps[instr.ALU].pick(rc), dst)
	case ir.OpFRcp, ir.OpFRsq, ir.OpFSqrt, ir.OpFExp2, ir.OpFLog2, ir.OpFFract:
		op := unaryFloatOps[instr.ALU].pick(rc)
		if op == gcn.OpInvalid {
			s.aluUnsupported(instr, dst)
		}
		s.aluVOP1(instr, op, dst)
	case ir.OpFSign:
		s.emitFSign(instr, dst)
	case ir.OpFddx, ir.OpFddy, ir.OpFddxFine, ir.OpFddyFine, ir.OpFddxCoarse, ir.OpFddyCoarse:
		s.emitDerivative(instr, dst)
	default:
		s.aluUnsupported(instr, dst)
	}
}

// emitSignBit negates or clears the sign of a float. When denormals must be flushed the
// sign is changed with a multiplication, which flushes, instead of a bit operation.
func (s *selector) emitSignBit(instr *ir.Instr, dst gcn.Temp, flush32, flush64 bool) {
	b := s.b
	neg := instr.ALU == ir.OpFNeg
	src := s.asVGPR(s.getALUSrc(instr.Srcs[0]))
	bitOp, mask16, mask32 := gcn.OpVAndB32, uint32(0x7fff), uint32(0x7fffffff)
	if neg {
		bitOp, mask16, mask32 = gcn.OpVXorB32, 0x8000, 0x80000000
	}
	switch dst.RegClass() {
	case gcn.V2B:
		b.VOP2(bitOp, gcn.Def(dst), gcn.OperandConst(mask16), operand(src))
	case gcn.V1:
		switch {
		case flush32 && neg:
			b.VOP2(gcn.OpVMulF32, gcn.Def(dst), gcn.OperandConst(0xbf800000), operand(src))
		case flush32:
			mul := b.VOP3(gcn.OpVMulF32, gcn.Def(dst), gcn.OperandConst(0x3f800000), operand(src))
			mul.VOP3.Abs[1] = true
		default:
			b.VOP2(bitOp, gcn.Def(dst), gcn.OperandConst(mask32), operand(src))
		}
	case gcn.V2:
		if flush64 {
			src = b.VOP3(gcn.OpVMulF64, b.Def(gcn.V2), gcn.OperandConst64(0x3ff0000000000000), operand(src)).Result()
		}
		lo, hi := s.split2(src)
		hi = b.VOP2(bitOp, b.Def(gcn.V1), gcn.OperandConst(mask32), operand(hi)).Result()
		s.createVector(dst, lo, hi)
	default:
		s.aluUnsupported(instr, dst)
	}
}

// emitFSign selects 1.0 for positive inputs and -1.0 for negative ones, keeping zeros.
func (s *selector) emitFSign(instr *ir.Instr, dst gcn.Temp) {
	b := s.b
	lm := s.prog.LaneMask
	src := s.asVGPR(s.getALUSrc(instr.Srcs[0]))
	switch dst.RegClass() {
	case gcn.V1:
		cond := b.VOPC(gcn.OpVCmpNltF32, b.Def(lm), gcn.OperandConst(0), operand(src)).Result()
		src = b.VOP2(gcn.OpVCndmaskB32, b.Def(gcn.V1), gcn.OperandConst(0x3f800000), operand(src), operand(cond)).Result()
		cond = b.VOPC(gcn.OpVCmpLeF32, b.Def(lm), gcn.OperandConst(0), operand(src)).Result()
		b.VOP2(gcn.OpVCndmaskB32, gcn.Def(dst), gcn.OperandConst(0xbf800000), operand(src), operand(cond))
	case gcn.V2B:
		cond := b.VOPC(gcn.OpVCmpNltF16, b.Def(lm), gcn.OperandConst(0), operand(src)).Result()
		src = b.VOP2(gcn.OpVCndmaskB32, b.Def(gcn.V2B), gcn.OperandConst(0x3c00), operand(src), operand(cond)).Result()
		cond = b.VOPC(gcn.OpVCmpLeF16, b.Def(lm), gcn.OperandConst(0), operand(src)).Result()
		b.VOP2(gcn.OpVCndmaskB32, gcn.Def(dst), gcn.OperandConst(0xbc00), operand(src), operand(cond))
	case gcn.V2:
		cond := b.VOPC(gcn.OpVCmpNltF64, b.Def(lm), gcn.OperandConst(0), operand(src)).Result()
		one := b.VMov(gcn.OperandConst(0x3ff00000))
		upper := b.VOP2(gcn.OpVCndmaskB32, b.Def(gcn.V1), operand(one), operand(s.emitExtractVector(src, 1, gcn.V1)), operand(cond)).Result()
		cond = b.VOPC(gcn.OpVCmpLeF64, b.Def(lm), gcn.OperandConst(0), operand(src)).Result()
		minusOne := b.VMov(gcn.OperandConst(0xbff00000))
		upper = b.VOP2(gcn.OpVCndmaskB32, b.Def(gcn.V1), operand(minusOne), operand(upper), operand(cond)).Result()
		b.CreateVector(gcn.Def(dst), gcn.OperandConst(0), operand(upper))
	default:
		s.aluUnsupported(instr, dst)
	}
}

// emitDerivative subtracts the value of one lane of the quad from another. GFX8 reads the
// neighbor with DPP, older generations with ds_swizzle.
func (s *selector) emitDerivative(instr *ir.Instr, dst gcn.Temp) {
	b := s.b
	if dst.RegClass() != gcn.V1 {
		s.aluUnsupported(instr, dst)
	}
	src := s.asVGPR(s.getALUSrc(instr.Srcs[0]))
	var ctrl1, ctrl2 gcn.DPPCtrl
	switch instr.ALU {
	case ir.OpFddxFine:
		ctrl1, ctrl2 = gcn.DPPQuadPerm(0, 0, 2, 2), gcn.DPPQuadPerm(1, 1, 3, 3)
	case ir.OpFddyFine:
		ctrl1, ctrl2 = gcn.DPPQuadPerm(0, 1, 0, 1), gcn.DPPQuadPerm(2, 3, 2, 3)
	case ir.OpFddx, ir.OpFddxCoarse:
		ctrl1, ctrl2 = gcn.DPPQuadPerm(0, 0, 0, 0), gcn.DPPQuadPerm(1, 1, 1, 1)
	default:
		ctrl1, ctrl2 = gcn.DPPQuadPerm(0, 0, 0, 0), gcn.DPPQuadPerm(2, 2, 2, 2)
	}

	var diff gcn.Temp
	if s.prog.GfxLevel >= gcn.GFX8 {
		tl := b.VOP1DPP(gcn.OpVMovB32, b.Def(gcn.V1), operand(src), ctrl1, 0xf, 0xf, false).Result()
		diff = b.VOP2DPP(gcn.OpVSubF32, b.Def(gcn.V1), operand(src), operand(tl), ctrl2, 0xf, 0xf, false).Result()
	} else {
		tl := s.dsSwizzle(src, 1<<15|uint16(ctrl1))
		tr := s.dsSwizzle(src, 1<<15|uint16(ctrl2))
		diff = b.VOP2(gcn.OpVSubF32, b.Def(gcn.V1), operand(tr), operand(tl)).Result()
	}
	s.emitWQM(diff, dst, true)
}

func (s *selector) dsSwizzle(src gcn.Temp, pattern uint16) gcn.Temp {
	sw := s.b.Instr(gcn.OpDsSwizzleB32, []gcn.Definition{s.b.Def(gcn.V1)}, operand(src))
	sw.Mem.Offset = int32(pattern)
	return sw.Result()
}
