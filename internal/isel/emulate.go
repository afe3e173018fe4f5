package isel

import "github.com/wavesel/wavesel/gcn"

// GFX6 has no 64-bit trunc, floor, ceil or rndne. These sequences compute them exactly with
// integer operations on the two halves of the value.

// emitTruncF64 clears the fraction bits below the binary point.
func (s *selector) emitTruncF64(dst gcn.Definition, src gcn.Temp) {
	b := s.b
	src = s.asVGPR(src)
	lo, hi := s.split2(src)

	exp := b.VOP3(gcn.OpVBfeU32, b.Def(gcn.V1), operand(hi), gcn.OperandConst(20), gcn.OperandConst(11)).Result()
	exp = b.VSub32(b.Def(gcn.V1), operand(exp), gcn.OperandConst(1023), false).Result()

	fraction := b.CreateVector(b.Def(gcn.V2), gcn.OperandConst(^uint32(0)), gcn.OperandConst(0x000fffff)).Result()
	mask := b.VOP3(gcn.OpVLshrB64, b.Def(gcn.V2), operand(fraction), operand(exp)).Result()
	maskLo, maskHi := s.split2(mask)
	notLo := b.VOP1(gcn.OpVNotB32, b.Def(gcn.V1), operand(maskLo)).Result()
	notHi := b.VOP1(gcn.OpVNotB32, b.Def(gcn.V1), operand(maskHi)).Result()
	newLo := b.VOP2(gcn.OpVAndB32, b.Def(gcn.V1), operand(lo), operand(notLo)).Result()
	newHi := b.VOP2(gcn.OpVAndB32, b.Def(gcn.V1), operand(hi), operand(notHi)).Result()

	// |x| < 1 truncates to a zero of the same sign.
	sign := b.VOP2(gcn.OpVAndB32, b.Def(gcn.V1), gcn.OperandConst(0x80000000), operand(hi)).Result()
	lm := s.prog.LaneMask
	expNeg := b.VOPC(gcn.OpVCmpGtI32, b.Def(lm), gcn.OperandConst(0), operand(exp)).Result()
	newLo = b.VOP3(gcn.OpVCndmaskB32, b.Def(gcn.V1), operand(newLo), gcn.OperandConst(0), operand(expNeg)).Result()
	newHi = b.VOP2(gcn.OpVCndmaskB32, b.Def(gcn.V1), operand(newHi), operand(sign), operand(expNeg)).Result()

	// Values with no fraction bits, infinities and NaNs pass through.
	expBig := b.VOPC(gcn.OpVCmpLtI32, b.Def(lm), gcn.OperandConst(51), operand(exp)).Result()
	newLo = b.VOP2(gcn.OpVCndmaskB32, b.Def(gcn.V1), operand(newLo), operand(lo), operand(expBig)).Result()
	newHi = b.VOP2(gcn.OpVCndmaskB32, b.Def(gcn.V1), operand(newHi), operand(hi), operand(expBig)).Result()

	b.CreateVector(dst, operand(newLo), operand(newHi))
}

// emitFloorF64 adjusts the truncation of negative non-integers down by one.
func (s *selector) emitFloorF64(dst, src gcn.Temp) {
	s.emitAdjustedTrunc(dst, src, gcn.OpVCmpGtF64, 0xbff0000000000000)
}

// emitCeilF64 adjusts the truncation of positive non-integers up by one.
func (s *selector) emitCeilF64(dst, src gcn.Temp) {
	s.emitAdjustedTrunc(dst, src, gcn.OpVCmpLtF64, 0x3ff0000000000000)
}

func (s *selector) emitAdjustedTrunc(dst, src gcn.Temp, cmp gcn.Opcode, one uint64) {
	b := s.b
	src = s.asVGPR(src)
	t := b.Tmp(gcn.V2)
	s.emitTruncF64(gcn.Def(t), src)

	cond := b.VOPC(cmp, b.Def(s.prog.LaneMask), operand(t), operand(src)).Result()
	adj := b.VOP3(gcn.OpVAddF64, b.Def(gcn.V2), operand(t), gcn.OperandConst64(one)).Result()
	tLo, tHi := s.split2(t)
	aLo, aHi := s.split2(adj)
	lo := b.VOP2(gcn.OpVCndmaskB32, b.Def(gcn.V1), operand(tLo), operand(aLo), operand(cond)).Result()
	hi := b.VOP2(gcn.OpVCndmaskB32, b.Def(gcn.V1), operand(tHi), operand(aHi), operand(cond)).Result()
	s.createVector(dst, lo, hi)
}

// emitRoundEvenF64 rounds by adding and subtracting 2^52 with the sign of x, which leaves no
// fraction bits under round-to-nearest-even.
func (s *selector) emitRoundEvenF64(dst, src gcn.Temp) {
	b := s.b
	src = s.asVGPR(src)
	lo, hi := s.split2(src)

	magMask := b.SOP1(gcn.OpSBrevB32, b.Def(gcn.S1), gcn.OperandConst(0xfffffffe)).Result()
	twoPow52 := b.VMov(gcn.OperandConst(0x43300000))
	bias := b.VOP3(gcn.OpVBfiB32, b.Def(gcn.V1), operand(magMask), operand(twoPow52), operand(hi)).Result()
	biasVec := b.CreateVector(b.Def(gcn.V2), gcn.OperandConst(0), operand(bias)).Result()
	tmp := b.VOP3(gcn.OpVAddF64, b.Def(gcn.V2), operand(src), operand(biasVec)).Result()
	sub := b.VOP3(gcn.OpVAddF64, b.Def(gcn.V2), operand(tmp), operand(biasVec))
	sub.VOP3.Neg[1] = true
	tLo, tHi := s.split2(sub.Result())
	// Results rounding to zero keep the sign of x.
	tHi = b.VOP3(gcn.OpVBfiB32, b.Def(gcn.V1), operand(magMask), operand(tHi), operand(hi)).Result()

	// |x| > 2^52 - 0.5 is already integral.
	limit := b.CreateVector(b.Def(gcn.V2), gcn.OperandConst(^uint32(0)), gcn.OperandConst(0x432fffff)).Result()
	cmp := b.VOP3(gcn.OpVCmpGtF64, b.Def(s.prog.LaneMask), operand(src), operand(limit))
	cmp.VOP3.Abs[0] = true
	cond := cmp.Result()

	rlo := b.VOP2(gcn.OpVCndmaskB32, b.Def(gcn.V1), operand(tLo), operand(lo), operand(cond)).Result()
	rhi := b.VOP2(gcn.OpVCndmaskB32, b.Def(gcn.V1), operand(tHi), operand(hi), operand(cond)).Result()
	s.createVector(dst, rlo, rhi)
}
