package isel

import (
	"github.com/wavesel/wavesel/gcn"
	"github.com/wavesel/wavesel/ir"
)

// atomicOps are the 32 and 64-bit forms of an atomic in one memory format.
type atomicOps struct {
	op32, op64 gcn.Opcode
}

func (a atomicOps) pick(bitSize int) gcn.Opcode {
	if bitSize == 64 {
		return a.op64
	}
	return a.op32
}

var bufferAtomics = [...]atomicOps{
	ir.AtomicAdd:      {gcn.OpBufferAtomicAdd, gcn.OpBufferAtomicAddX2},
	ir.AtomicIMin:     {gcn.OpBufferAtomicSmin, gcn.OpBufferAtomicSminX2},
	ir.AtomicUMin:     {gcn.OpBufferAtomicUmin, gcn.OpBufferAtomicUminX2},
	ir.AtomicIMax:     {gcn.OpBufferAtomicSmax, gcn.OpBufferAtomicSmaxX2},
	ir.AtomicUMax:     {gcn.OpBufferAtomicUmax, gcn.OpBufferAtomicUmaxX2},
	ir.AtomicAnd:      {gcn.OpBufferAtomicAnd, gcn.OpBufferAtomicAndX2},
	ir.AtomicOr:       {gcn.OpBufferAtomicOr, gcn.OpBufferAtomicOrX2},
	ir.AtomicXor:      {gcn.OpBufferAtomicXor, gcn.OpBufferAtomicXorX2},
	ir.AtomicExchange: {gcn.OpBufferAtomicSwap, gcn.OpBufferAtomicSwapX2},
	ir.AtomicCompSwap: {gcn.OpBufferAtomicCmpswap, gcn.OpBufferAtomicCmpswapX2},
}

var globalAtomics = [...]atomicOps{
	ir.AtomicAdd:      {gcn.OpGlobalAtomicAdd, gcn.OpGlobalAtomicAddX2},
	ir.AtomicIMin:     {gcn.OpGlobalAtomicSmin, gcn.OpGlobalAtomicSminX2},
	ir.AtomicUMin:     {gcn.OpGlobalAtomicUmin, gcn.OpGlobalAtomicUminX2},
	ir.AtomicIMax:     {gcn.OpGlobalAtomicSmax, gcn.OpGlobalAtomicSmaxX2},
	ir.AtomicUMax:     {gcn.OpGlobalAtomicUmax, gcn.OpGlobalAtomicUmaxX2},
	ir.AtomicAnd:      {gcn.OpGlobalAtomicAnd, gcn.OpGlobalAtomicAndX2},
	ir.AtomicOr:       {gcn.OpGlobalAtomicOr, gcn.OpGlobalAtomicOrX2},
	ir.AtomicXor:      {gcn.OpGlobalAtomicXor, gcn.OpGlobalAtomicXorX2},
	ir.AtomicExchange: {gcn.OpGlobalAtomicSwap, gcn.OpGlobalAtomicSwapX2},
	ir.AtomicCompSwap: {gcn.OpGlobalAtomicCmpswap, gcn.OpGlobalAtomicCmpswapX2},
}

var flatAtomics = [...]atomicOps{
	ir.AtomicAdd:      {gcn.OpFlatAtomicAdd, gcn.OpFlatAtomicAddX2},
	ir.AtomicIMin:     {gcn.OpFlatAtomicSmin, gcn.OpFlatAtomicSminX2},
	ir.AtomicUMin:     {gcn.OpFlatAtomicUmin, gcn.OpFlatAtomicUminX2},
	ir.AtomicIMax:     {gcn.OpFlatAtomicSmax, gcn.OpFlatAtomicSmaxX2},
	ir.AtomicUMax:     {gcn.OpFlatAtomicUmax, gcn.OpFlatAtomicUmaxX2},
	ir.AtomicAnd:      {gcn.OpFlatAtomicAnd, gcn.OpFlatAtomicAndX2},
	ir.AtomicOr:       {gcn.OpFlatAtomicOr, gcn.OpFlatAtomicOrX2},
	ir.AtomicXor:      {gcn.OpFlatAtomicXor, gcn.OpFlatAtomicXorX2},
	ir.AtomicExchange: {gcn.OpFlatAtomicSwap, gcn.OpFlatAtomicSwapX2},
	ir.AtomicCompSwap: {gcn.OpFlatAtomicCmpswap, gcn.OpFlatAtomicCmpswapX2},
}

// dsAtomics holds the forms without and with a returned value. LDS exchange always returns.
var dsAtomics = [...][2]atomicOps{
	ir.AtomicAdd:      {{gcn.OpDsAddU32, gcn.OpDsAddU64}, {gcn.OpDsAddRtnU32, gcn.OpDsAddRtnU64}},
	ir.AtomicIMin:     {{gcn.OpDsMinI32, gcn.OpDsMinI64}, {gcn.OpDsMinRtnI32, gcn.OpDsMinRtnI64}},
	ir.AtomicUMin:     {{gcn.OpDsMinU32, gcn.OpDsMinU64}, {gcn.OpDsMinRtnU32, gcn.OpDsMinRtnU64}},
	ir.AtomicIMax:     {{gcn.OpDsMaxI32, gcn.OpDsMaxI64}, {gcn.OpDsMaxRtnI32, gcn.OpDsMaxRtnI64}},
	ir.AtomicUMax:     {{gcn.OpDsMaxU32, gcn.OpDsMaxU64}, {gcn.OpDsMaxRtnU32, gcn.OpDsMaxRtnU64}},
	ir.AtomicAnd:      {{gcn.OpDsAndB32, gcn.OpDsAndB64}, {gcn.OpDsAndRtnB32, gcn.OpDsAndRtnB64}},
	ir.AtomicOr:       {{gcn.OpDsOrB32, gcn.OpDsOrB64}, {gcn.OpDsOrRtnB32, gcn.OpDsOrRtnB64}},
	ir.AtomicXor:      {{gcn.OpDsXorB32, gcn.OpDsXorB64}, {gcn.OpDsXorRtnB32, gcn.OpDsXorRtnB64}},
	ir.AtomicExchange: {{gcn.OpInvalid, gcn.OpInvalid}, {gcn.OpDsWrxchgRtnB32, gcn.OpDsWrxchgRtnB64}},
	ir.AtomicCompSwap: {{gcn.OpDsCmpstB32, gcn.OpDsCmpstB64}, {gcn.OpDsCmpstRtnB32, gcn.OpDsCmpstRtnB64}},
}

// atomicData returns the data operand of an atomic whose data sources start at first. Compare
// and swap takes the new value and the compared one packed together.
func (s *selector) atomicData(instr *ir.Instr, op ir.AtomicOp, first int) gcn.Temp {
	data := s.asVGPR(s.getALUSrc(instr.Srcs[first]))
	if op != ir.AtomicCompSwap {
		return data
	}
	swap := s.asVGPR(s.getALUSrc(instr.Srcs[first+1]))
	vec := s.b.Tmp(gcn.NewRegClass(gcn.RegTypeVGPR, data.Size()*2))
	s.createVector(vec, swap, data)
	return vec
}

// atomicDefs returns the definition of the value an atomic returns, or none when it is unused.
func (s *selector) atomicDefs(instr *ir.Instr) []gcn.Definition {
	if !instr.Def.HasUses() {
		return nil
	}
	return []gcn.Definition{gcn.Def(s.temp(instr.Def))}
}

func markAtomic(instr *gcn.Instruction, returns bool, barrier gcn.BarrierKind) {
	instr.Mem.GLC = returns
	instr.Mem.DisableWQM = true
	instr.Mem.Barrier = barrier
}

// splitImmOffset returns the register part and the encodable immediate of offset + c.
func (s *selector) splitImmOffset(offset gcn.Temp, c, limit uint32, scalar bool) (gcn.Temp, uint32) {
	if c <= limit {
		return offset, c
	}
	imm := c & limit
	return s.addOffset(offset, c-imm, scalar), imm
}

func (s *selector) visitSSBOAtomic(instr *ir.Instr, op ir.AtomicOp) {
	bitSize := instr.Srcs[1].Def.BitSize
	data := s.atomicData(instr, op, 1)
	rsrc := s.loadBufferDesc(instr.Binding)
	offset, c := s.memOffset(instr.Srcs[0], instr.Base)
	offset, imm := s.splitImmOffset(offset, c, 0xfff, false)
	defs := s.atomicDefs(instr)
	mi := s.emitMUBUF(bufferAtomics[op].pick(bitSize), defs, rsrc, offset, gcn.OperandConst(0), imm, data, memFlags{})
	markAtomic(mi, len(defs) > 0, gcn.BarrierBuffer)
	s.prog.NeedsExactExec = true
}

func (s *selector) visitSharedAtomic(instr *ir.Instr, op ir.AtomicOp) {
	bitSize := instr.Srcs[1].Def.BitSize
	offset, c := s.memOffset(instr.Srcs[0], instr.Base)
	if !offset.Valid() {
		offset = s.b.VMov(gcn.OperandConst(0))
	}
	offset, imm := s.splitImmOffset(s.asVGPR(offset), c, 0xffff, false)

	defs := s.atomicDefs(instr)
	rtn := 0
	if len(defs) > 0 || op == ir.AtomicExchange {
		rtn = 1
	}
	if rtn == 1 && len(defs) == 0 {
		defs = []gcn.Definition{s.b.Def(gcn.NewRegClass(gcn.RegTypeVGPR, bitSize/32))}
	}
	data := []gcn.Temp{s.asVGPR(s.getALUSrc(instr.Srcs[1]))}
	if op == ir.AtomicCompSwap {
		data = append(data, s.asVGPR(s.getALUSrc(instr.Srcs[2])))
	}
	ds := s.emitDS(memOp{op: dsAtomics[op][rtn].pick(bitSize)}, defs, offset, imm, data...)
	ds.Mem.CanReorder = false
	s.prog.NeedsExactExec = true
}

func (s *selector) visitGlobalAtomic(instr *ir.Instr, op ir.AtomicOp) {
	bitSize := instr.Srcs[1].Def.BitSize
	data := s.atomicData(instr, op, 1)
	addr := s.asVGPR(s.getALUSrc(instr.Srcs[0]))
	defs := s.atomicDefs(instr)
	gfx := s.prog.GfxLevel

	var mi *gcn.Instruction
	switch {
	case gfx >= gcn.GFX9:
		limit := uint32(0xfff)
		if gfx >= gcn.GFX10 {
			limit = 0x7ff
		}
		var imm uint32
		addr, imm = s.splitImmOffset(addr, uint32(instr.Base), limit, false)
		mi = s.b.Instr(globalAtomics[op].pick(bitSize), defs, operand(addr), gcn.OperandUndef(gcn.S2), operand(data))
		mi.Mem.Offset = int32(imm)
	case gfx >= gcn.GFX7:
		addr, _ = s.splitImmOffset(addr, uint32(instr.Base), 0, false)
		mi = s.b.Instr(flatAtomics[op].pick(bitSize), defs, operand(addr), gcn.OperandUndef(gcn.S2), operand(data))
	default:
		addr, imm := s.splitImmOffset(addr, uint32(instr.Base), 0xfff, false)
		mi = s.emitMUBUF(bufferAtomics[op].pick(bitSize), defs, s.gfx6GlobalRsrc(), addr, gcn.OperandConst(0), imm, data, memFlags{})
	}
	markAtomic(mi, len(defs) > 0, gcn.BarrierBuffer)
	s.prog.NeedsExactExec = true
}
