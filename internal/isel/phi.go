package isel

import (
	"github.com/wavesel/wavesel/gcn"
	"github.com/wavesel/wavesel/internal/iselapi"
	"github.com/wavesel/wavesel/ir"
)

// visitPhi lowers a phi. The predecessors of a loop header are only known once its body is
// lowered, so header phis are resolved by endLoop.
func (s *selector) visitPhi(instr *ir.Instr) {
	if l := &s.cf.parentLoop; l.irHeader != nil && instr.Block == l.irHeader {
		l.phis = append(l.phis, instr)
		return
	}
	s.emitPhi(instr, s.block)
}

// isLogicalPhi reports whether the phi of d follows the logical CFG. Linear phis carry uniform
// sgpr values, which have to be valid along every path the wave takes.
func isLogicalPhi(d *ir.Def, rc gcn.RegClass) bool {
	return !rc.IsLinear() || d.Divergent
}

// emitPhi inserts the phi of instr at the start of blk. Instructions it needs besides phis go
// right after the phis of blk.
func (s *selector) emitPhi(instr *ir.Instr, blk *gcn.Block) {
	dst := s.temp(instr.Def)
	logical := isLogicalPhi(instr.Def, dst.RegClass())
	preds := blk.LinearPreds
	op := gcn.OpPLinearPhi
	if logical {
		preds = blk.LogicalPreds
		op = gcn.OpPPhi
	}

	ops := make([]gcn.Operand, len(preds))
	defined := 0
	for i, pred := range preds {
		src, ok := s.phiSource(instr, pred, logical)
		if !ok || src.Def.Parent != nil && src.Def.Parent.Type == ir.InstrUndef {
			ops[i] = gcn.OperandUndef(dst.RegClass())
			continue
		}
		ops[i] = s.phiOperand(src, instr.Def, dst.RegClass(), pred)
		defined++
	}
	if s.tr.If(iselapi.TopicPhi) {
		s.tr.Printw("phi", "def", instr.Def.Index, "bb", blk.Index, "logical", logical, "preds", preds, "defined", defined)
	}

	save := s.block
	s.setBlock(blk)
	defer s.setBlock(save)

	before := len(blk.Instructions) - countPhis(blk)
	switch {
	case defined == 0:
		s.materializeZero(dst)
	case s.scalarizePhi(op, dst, ops):
	default:
		s.insertPhi(op, dst, ops)
		return
	}
	phis := countPhis(blk)
	moveInstructions(blk, phis+before, phis)
}

func countPhis(blk *gcn.Block) int {
	n := 0
	for n < len(blk.Instructions) && blk.Instructions[n].IsPhi() {
		n++
	}
	return n
}

// moveInstructions moves the instructions of blk from index from to its end so they start at
// index at.
func moveInstructions(blk *gcn.Block, from, at int) {
	instrs := blk.Instructions
	if at >= from {
		return
	}
	moved := append([]*gcn.Instruction(nil), instrs[from:]...)
	copy(instrs[at+len(moved):], instrs[at:from])
	copy(instrs[at:], moved)
}

// blockEnd returns the index of the instructions closing blk: its branch and the end of its
// logical region.
func blockEnd(blk *gcn.Block) int {
	at := len(blk.Instructions)
	for at > 0 {
		switch blk.Instructions[at-1].Opcode {
		case gcn.OpPBranch, gcn.OpPCbranchZ, gcn.OpPCbranchNz, gcn.OpPLogicalEnd:
			at--
			continue
		}
		break
	}
	return at
}

// phiSource returns the incoming value of instr arriving from the gcn block pred. Linear
// predecessors can be helper blocks with no IR counterpart; their single predecessor chain is
// followed back to a block that has one.
func (s *selector) phiSource(instr *ir.Instr, pred int, logical bool) (ir.Src, bool) {
	for {
		for _, ps := range instr.Phi {
			if s.irToBlock[ps.Pred.Index] == pred {
				return ps.Src, true
			}
		}
		if logical {
			return ir.Src{}, false
		}
		blk := s.prog.Block(pred)
		if len(blk.LinearPreds) != 1 {
			return ir.Src{}, false
		}
		pred = blk.LinearPreds[0]
	}
}

// phiOperand returns the operand of an incoming value of the phi of dst. Constants stay
// constants. A value in a different register file than the phi is converted at the end of its
// predecessor.
func (s *selector) phiOperand(src ir.Src, dst *ir.Def, rc gcn.RegClass, pred int) gcn.Operand {
	laneMask := isLaneMask(dst)
	if c, ok := constSrc(src); ok && src.Def.NumComponents == 1 {
		switch {
		case laneMask:
			return s.laneMaskConst(c != 0)
		case rc.Size() <= 2:
			return gcn.OperandConstSized(c, rc.Bytes())
		}
	}
	t := s.temp(src.Def)
	if t.RegClass() == rc && laneMask == isLaneMask(src.Def) {
		return operand(t)
	}

	blk := s.prog.Block(pred)
	save := s.block
	s.setBlock(blk)
	defer s.setBlock(save)
	from, end := len(blk.Instructions), blockEnd(blk)
	switch {
	case laneMask:
		t = s.boolToLaneMask(t, gcn.TempInvalid)
	case t.Type() == gcn.RegTypeSGPR && rc.Type() == gcn.RegTypeVGPR && rc.Bytes() < t.Bytes():
		t = s.emitExtractVector(t, 0, rc)
	case t.Type() == gcn.RegTypeSGPR && rc.Type() == gcn.RegTypeVGPR && rc.Bytes() == t.Bytes():
		t = s.b.CopyTmp(operand(t), rc)
	default:
		panic("BUG: phi operand " + t.String() + " does not match " + rc.String())
	}
	moveInstructions(blk, from, end)
	return operand(t)
}

func (s *selector) insertPhi(op gcn.Opcode, dst gcn.Temp, ops []gcn.Operand) *gcn.Instruction {
	phi := s.b.Create(op, gcn.FormatPseudo, len(ops), 1)
	copy(phi.Operands, ops)
	phi.Definitions[0] = gcn.Def(dst)
	return s.b.InsertPhi(phi)
}

// materializeZero defines dst as zero. Composite values are built from zero dwords.
func (s *selector) materializeZero(dst gcn.Temp) {
	rc := dst.RegClass()
	if rc.Size() <= 2 || rc.IsSubdword() {
		s.b.Copy(gcn.Def(dst), gcn.OperandConstSized(0, rc.Bytes()))
		return
	}
	ops := make([]gcn.Operand, rc.Size())
	for i := range ops {
		ops[i] = gcn.OperandConst(0)
	}
	s.b.CreateVector(gcn.Def(dst), ops...)
}

// scalarizePhi splits a phi of vectors into one phi per element when every incoming vector
// was built from elements already. The vector is recomposed after the phis and its elements
// stay available to extractions.
func (s *selector) scalarizePhi(op gcn.Opcode, dst gcn.Temp, ops []gcn.Operand) bool {
	if dst.Size() < 2 {
		return false
	}
	n := -1
	for _, o := range ops {
		if !o.IsTemp() {
			if o.IsUndefined() {
				continue
			}
			return false
		}
		elems, ok := s.allocatedVec[o.TempID()]
		if !ok || n != -1 && len(elems) != n {
			return false
		}
		n = len(elems)
	}
	if n < 2 {
		return false
	}
	var elemRC gcn.RegClass
	for _, o := range ops {
		if o.IsTemp() {
			elemRC = s.allocatedVec[o.TempID()][0].RegClass()
			break
		}
	}
	for _, o := range ops {
		if !o.IsTemp() {
			continue
		}
		for _, e := range s.allocatedVec[o.TempID()] {
			if e.RegClass() != elemRC {
				return false
			}
		}
	}

	elems := make([]gcn.Temp, n)
	for i := range elems {
		elemOps := make([]gcn.Operand, len(ops))
		for j, o := range ops {
			if o.IsTemp() {
				elemOps[j] = operand(s.allocatedVec[o.TempID()][i])
			} else {
				elemOps[j] = gcn.OperandUndef(elemRC)
			}
		}
		elems[i] = s.b.Tmp(elemRC)
		s.insertPhi(op, elems[i], elemOps)
	}
	s.createVector(dst, elems...)
	return true
}

// resolveHeaderPhis inserts the deferred phis of a loop header once all its predecessors are
// known.
func (s *selector) resolveHeaderPhis(header *gcn.Block, phis []*ir.Instr) {
	for _, phi := range phis {
		s.emitPhi(phi, header)
	}
}
