package isel

import (
	"math/bits"

	"github.com/wavesel/wavesel/gcn"
	"github.com/wavesel/wavesel/ir"
)

func operand(t gcn.Temp) gcn.Operand { return gcn.OperandTemp(t) }

func isVGPR(t gcn.Temp) bool { return t.Type() == gcn.RegTypeVGPR }

func (s *selector) asVGPR(t gcn.Temp) gcn.Temp { return s.b.AsVGPR(operand(t)) }

// emitMove writes src into dst. A per-lane src is read from the first active lane when dst is
// scalar.
func (s *selector) emitMove(dst gcn.Temp, src gcn.Operand) {
	if dst.Type() == gcn.RegTypeSGPR && src.IsTemp() && src.RegClass().Type() == gcn.RegTypeVGPR {
		s.b.Pseudo(gcn.OpPAsUniform, []gcn.Definition{gcn.Def(dst)}, src)
		return
	}
	s.b.Copy(gcn.Def(dst), src)
}

// valuInto runs emit with a vgpr definition standing for dst. When dst is scalar the result is
// read back from the first active lane.
func (s *selector) valuInto(dst gcn.Temp, emit func(d gcn.Definition)) {
	if isVGPR(dst) {
		emit(gcn.Def(dst))
		return
	}
	tmp := s.b.Tmp(dst.RegClass().AsVGPR())
	emit(gcn.Def(tmp))
	s.b.Pseudo(gcn.OpPAsUniform, []gcn.Definition{gcn.Def(dst)}, operand(tmp))
}

// emitExtractVector returns element idx of src, where elements have class rc.
func (s *selector) emitExtractVector(src gcn.Temp, idx int, rc gcn.RegClass) gcn.Temp {
	if src.RegClass() == rc {
		if idx != 0 {
			panic("BUG: extracting element of a scalar value")
		}
		return src
	}
	if (idx+1)*rc.Bytes() > src.Bytes() {
		panic("BUG: element out of range")
	}
	if elems, ok := s.allocatedVec[src.ID()]; ok && idx < len(elems) && elems[idx].Bytes() == rc.Bytes() {
		elem := elems[idx]
		switch {
		case elem.RegClass() == rc:
			return elem
		case rc.Type() == gcn.RegTypeSGPR:
			return s.b.AsUniform(operand(elem))
		default:
			return s.b.CopyTmp(operand(elem), rc)
		}
	}
	if rc.IsSubdword() {
		src = s.asVGPR(src)
	}
	if src.Bytes() == rc.Bytes() {
		return s.b.CopyTmp(operand(src), rc)
	}
	return s.b.ExtractVector(s.b.Def(rc), operand(src), uint32(idx)).Result()
}

// emitSplitVector splits vec into n elements and remembers them, so later extractions reuse
// the split.
func (s *selector) emitSplitVector(vec gcn.Temp, n int) {
	if n == 1 {
		return
	}
	if _, ok := s.allocatedVec[vec.ID()]; ok {
		return
	}
	var rc gcn.RegClass
	if n > vec.Size() {
		if vec.Type() == gcn.RegTypeSGPR {
			s.emitSplitVector(vec, vec.Size())
			return
		}
		rc = gcn.NewSubdwordRegClass(vec.Bytes() / n)
	} else {
		if vec.Size()%n != 0 {
			panic("BUG: uneven vector split")
		}
		rc = gcn.NewRegClass(vec.Type(), vec.Size()/n)
	}
	elems := make([]gcn.Temp, n)
	defs := make([]gcn.Definition, n)
	for i := range elems {
		elems[i] = s.b.Tmp(rc)
		defs[i] = gcn.Def(elems[i])
	}
	s.b.SplitVector(defs, operand(vec))
	s.allocatedVec[vec.ID()] = elems
}

// createVector writes the concatenation of elems to dst and remembers the elements.
func (s *selector) createVector(dst gcn.Temp, elems ...gcn.Temp) {
	ops := make([]gcn.Operand, len(elems))
	for i, e := range elems {
		ops[i] = operand(e)
	}
	s.b.CreateVector(gcn.Def(dst), ops...)
	s.allocatedVec[dst.ID()] = elems
}

// split2 returns the two halves of a 64-bit value.
func (s *selector) split2(t gcn.Temp) (lo, hi gcn.Temp) {
	rc := gcn.NewRegClass(t.Type(), t.Size()/2)
	return s.emitExtractVector(t, 0, rc), s.emitExtractVector(t, 1, rc)
}

// elemRegClass returns the class of one component of v held in file t.
func elemRegClass(t gcn.RegType, elemBytes int) gcn.RegClass {
	if t == gcn.RegTypeVGPR {
		return gcn.NewSubdwordRegClass(elemBytes)
	}
	return gcn.NewRegClass(gcn.RegTypeSGPR, (elemBytes+3)/4)
}

// getALUSrc returns the component src selects. Sub-dword components of scalar vectors are
// packed, so they are shifted down with a bitfield extract.
func (s *selector) getALUSrc(src ir.Src) gcn.Temp {
	return s.getALUSrcN(src, 1)
}

// getALUSrcN returns the n components src selects starting at its first swizzle.
func (s *selector) getALUSrcN(src ir.Src, n int) gcn.Temp {
	vec := s.temp(src.Def)
	comps := src.Def.NumComponents
	swz := int(src.Swizzle[0])
	if comps == n && identitySwizzle(src.Swizzle, n) {
		return vec
	}
	if src.Def.BitSize == 1 {
		panic("BUG: swizzled boolean")
	}
	elemBytes := src.Def.BitSize / 8
	if n > 1 {
		s.emitSplitVector(vec, comps)
		elems := make([]gcn.Temp, n)
		for i := range elems {
			elems[i] = s.getALUSrc(ir.Comp(src.Def, int(src.Swizzle[i])))
		}
		dst := s.b.Tmp(regClassFor(vec.Type(), n, src.Def.BitSize))
		s.createVector(dst, elems...)
		return dst
	}
	if elemBytes < 4 && vec.Type() == gcn.RegTypeSGPR {
		bitSize := src.Def.BitSize
		if vec.Size() > 1 {
			perDword := 32 / bitSize
			vec = s.emitExtractVector(vec, swz/perDword, gcn.S1)
			swz %= perDword
		}
		if swz == 0 {
			return vec
		}
		return s.b.SOP2(gcn.OpSBfeU32, s.b.Def(gcn.S1), operand(vec), gcn.OperandConst(uint32(bitSize<<16|bitSize*swz))).Result()
	}
	s.emitSplitVector(vec, comps)
	return s.emitExtractVector(vec, swz, elemRegClass(vec.Type(), elemBytes))
}

func identitySwizzle(swz [4]uint8, n int) bool {
	for i := 0; i < n; i++ {
		if int(swz[i]) != i {
			return false
		}
	}
	return true
}

// expandVector writes the n-component dst from src, which holds only the components set in
// mask. Missing components are zero.
func (s *selector) expandVector(src, dst gcn.Temp, n int, mask uint32) {
	s.emitSplitVector(src, bits.OnesCount32(mask))
	if n == 1 {
		s.emitMove(dst, operand(src))
		return
	}
	compBytes := dst.Bytes() / n
	srcRC := elemRegClass(src.Type(), compBytes)
	dstRC := elemRegClass(dst.Type(), compBytes)
	ops := make([]gcn.Operand, n)
	elems := make([]gcn.Temp, 0, n)
	k := 0
	for i := 0; i < n; i++ {
		if mask&(1<<i) == 0 {
			ops[i] = gcn.OperandConstSized(0, compBytes)
			continue
		}
		e := s.emitExtractVector(src, k, srcRC)
		k++
		if dst.Type() == gcn.RegTypeSGPR && isVGPR(e) {
			e = s.b.AsUniform(operand(e))
		} else if e.RegClass() != dstRC && dstRC.Type() == gcn.RegTypeVGPR {
			e = s.b.CopyTmp(operand(e), dstRC)
		}
		ops[i] = operand(e)
		elems = append(elems, e)
	}
	s.b.CreateVector(gcn.Def(dst), ops...)
	if len(elems) == n {
		s.allocatedVec[dst.ID()] = elems
	}
}
