package isel

import (
	"fmt"

	"github.com/wavesel/wavesel/gcn"
	"github.com/wavesel/wavesel/internal/iselapi"
	"github.com/wavesel/wavesel/ir"
)

// memOp is a candidate instruction for one chunk of a memory access.
type memOp struct {
	op    gcn.Opcode
	bytes int
	// align is the alignment the instruction requires.
	align int
	// pair marks ds_read2 and ds_write2, which access two elements of bytes/2 each.
	pair bool
}

// memFormat is a family of memory instructions sharing an addressing mode.
type memFormat struct {
	name string
	// loads and stores list the instructions by decreasing size.
	loads, stores []memOp
	// maxOffset is the mask of encodable immediate offsets, one less than a power of two.
	maxOffset uint32
	// immWithReg is set when the immediate offset can be combined with a register offset.
	immWithReg bool
	// scalar formats return their result in sgprs.
	scalar bool
}

// pickMemOp returns the largest instruction for the next chunk of an access.
func pickMemOp(name string, ops []memOp, remaining, align, compBytes int) memOp {
	for _, m := range ops {
		if m.bytes > remaining || m.align > align {
			continue
		}
		if m.bytes%compBytes != 0 && compBytes%m.bytes != 0 {
			continue
		}
		return m
	}
	panic(fmt.Sprintf("BUG: no %s access for %d bytes aligned to %d", name, remaining, align))
}

// chunkAlign returns the alignment of the chunk starting done bytes into an access aligned to
// align.
func chunkAlign(align, done int) int {
	if done == 0 {
		return align
	}
	if low := done & -done; low < align {
		return low
	}
	return align
}

func smemFormat(gfx gcn.GfxLevel, buffer bool) *memFormat {
	f := &memFormat{name: "smem", scalar: true, maxOffset: 0xfffff}
	if gfx < gcn.GFX8 {
		// GFX6 and GFX7 encode a dword count in 8 bits.
		f.maxOffset = 0x3ff
	}
	ops := [...]gcn.Opcode{gcn.OpSLoadDwordx16, gcn.OpSLoadDwordx8, gcn.OpSLoadDwordx4, gcn.OpSLoadDwordx2, gcn.OpSLoadDword}
	if buffer {
		ops = [...]gcn.Opcode{gcn.OpSBufferLoadDwordx16, gcn.OpSBufferLoadDwordx8, gcn.OpSBufferLoadDwordx4, gcn.OpSBufferLoadDwordx2, gcn.OpSBufferLoadDword}
	}
	for i, op := range ops {
		f.loads = append(f.loads, memOp{op: op, bytes: 64 >> i, align: 4})
	}
	return f
}

type vmemOps struct {
	x4, x3, x2, dword, short, byte gcn.Opcode
}

var (
	mubufLoads   = vmemOps{gcn.OpBufferLoadDwordx4, gcn.OpBufferLoadDwordx3, gcn.OpBufferLoadDwordx2, gcn.OpBufferLoadDword, gcn.OpBufferLoadUshort, gcn.OpBufferLoadUbyte}
	mubufStores  = vmemOps{gcn.OpBufferStoreDwordx4, gcn.OpBufferStoreDwordx3, gcn.OpBufferStoreDwordx2, gcn.OpBufferStoreDword, gcn.OpBufferStoreShort, gcn.OpBufferStoreByte}
	globalLoads  = vmemOps{gcn.OpGlobalLoadDwordx4, gcn.OpGlobalLoadDwordx3, gcn.OpGlobalLoadDwordx2, gcn.OpGlobalLoadDword, gcn.OpGlobalLoadUshort, gcn.OpGlobalLoadUbyte}
	globalStores = vmemOps{gcn.OpGlobalStoreDwordx4, gcn.OpGlobalStoreDwordx3, gcn.OpGlobalStoreDwordx2, gcn.OpGlobalStoreDword, gcn.OpGlobalStoreShort, gcn.OpGlobalStoreByte}
	flatLoads    = vmemOps{gcn.OpFlatLoadDwordx4, gcn.OpFlatLoadDwordx3, gcn.OpFlatLoadDwordx2, gcn.OpFlatLoadDword, gcn.OpFlatLoadUshort, gcn.OpFlatLoadUbyte}
	flatStores   = vmemOps{gcn.OpFlatStoreDwordx4, gcn.OpFlatStoreDwordx3, gcn.OpFlatStoreDwordx2, gcn.OpFlatStoreDword, gcn.OpFlatStoreShort, gcn.OpFlatStoreByte}
	// Scratch has no sub-dword instructions in this backend.
	scratchLoads  = vmemOps{gcn.OpScratchLoadDwordx4, gcn.OpScratchLoadDwordx3, gcn.OpScratchLoadDwordx2, gcn.OpScratchLoadDword, gcn.OpInvalid, gcn.OpInvalid}
	scratchStores = vmemOps{gcn.OpScratchStoreDwordx4, gcn.OpScratchStoreDwordx3, gcn.OpScratchStoreDwordx2, gcn.OpScratchStoreDword, gcn.OpInvalid, gcn.OpInvalid}
)

func (v vmemOps) list(gfx gcn.GfxLevel, dwordsOnly bool) []memOp {
	ops := []memOp{{op: v.x4, bytes: 16, align: 4}}
	// GFX6 has no three-dword accesses.
	if gfx >= gcn.GFX7 {
		ops = append(ops, memOp{op: v.x3, bytes: 12, align: 4})
	}
	ops = append(ops, memOp{op: v.x2, bytes: 8, align: 4}, memOp{op: v.dword, bytes: 4, align: 4})
	if !dwordsOnly && v.short != gcn.OpInvalid {
		ops = append(ops, memOp{op: v.short, bytes: 2, align: 2}, memOp{op: v.byte, bytes: 1, align: 1})
	}
	return ops
}

func mubufFormat(gfx gcn.GfxLevel, dwordsOnly bool) *memFormat {
	return &memFormat{
		name:       "mubuf",
		loads:      mubufLoads.list(gfx, dwordsOnly),
		stores:     mubufStores.list(gfx, dwordsOnly),
		maxOffset:  0xfff,
		immWithReg: true,
	}
}

// globalFormat addresses memory with a 64-bit pointer. GFX6 uses MUBUF with addr64.
func globalFormat(gfx gcn.GfxLevel) *memFormat {
	switch {
	case gfx >= gcn.GFX9:
		f := &memFormat{name: "global", loads: globalLoads.list(gfx, false), stores: globalStores.list(gfx, false), maxOffset: 0xfff, immWithReg: true}
		if gfx >= gcn.GFX10 {
			f.maxOffset = 0x7ff
		}
		return f
	case gfx >= gcn.GFX7:
		return &memFormat{name: "flat", loads: flatLoads.list(gfx, false), stores: flatStores.list(gfx, false)}
	default:
		return mubufFormat(gfx, false)
	}
}

func scratchFormat(gfx gcn.GfxLevel) *memFormat {
	if gfx < gcn.GFX9 {
		return mubufFormat(gfx, true)
	}
	f := &memFormat{name: "scratch", loads: scratchLoads.list(gfx, true), stores: scratchStores.list(gfx, true), maxOffset: 0xfff, immWithReg: true}
	if gfx >= gcn.GFX10 {
		f.maxOffset = 0x7ff
	}
	return f
}

func dsFormat(gfx gcn.GfxLevel) *memFormat {
	f := &memFormat{name: "ds", maxOffset: 0xffff, immWithReg: true}
	if gfx >= gcn.GFX7 {
		f.loads = append(f.loads, memOp{op: gcn.OpDsReadB128, bytes: 16, align: 16})
		f.stores = append(f.stores, memOp{op: gcn.OpDsWriteB128, bytes: 16, align: 16})
	}
	f.loads = append(f.loads, memOp{op: gcn.OpDsRead2B64, bytes: 16, align: 8, pair: true})
	f.stores = append(f.stores, memOp{op: gcn.OpDsWrite2B64, bytes: 16, align: 8, pair: true})
	if gfx >= gcn.GFX7 {
		f.loads = append(f.loads, memOp{op: gcn.OpDsReadB96, bytes: 12, align: 16})
		f.stores = append(f.stores, memOp{op: gcn.OpDsWriteB96, bytes: 12, align: 16})
	}
	f.loads = append(f.loads,
		memOp{op: gcn.OpDsReadB64, bytes: 8, align: 8},
		memOp{op: gcn.OpDsRead2B32, bytes: 8, align: 4, pair: true},
		memOp{op: gcn.OpDsReadB32, bytes: 4, align: 4},
		memOp{op: gcn.OpDsReadU16, bytes: 2, align: 2},
		memOp{op: gcn.OpDsReadU8, bytes: 1, align: 1})
	f.stores = append(f.stores,
		memOp{op: gcn.OpDsWriteB64, bytes: 8, align: 8},
		memOp{op: gcn.OpDsWrite2B32, bytes: 8, align: 4, pair: true},
		memOp{op: gcn.OpDsWriteB32, bytes: 4, align: 4},
		memOp{op: gcn.OpDsWriteB16, bytes: 2, align: 2},
		memOp{op: gcn.OpDsWriteB8, bytes: 1, align: 1})
	return f
}

// memFlags are the cache and ordering bits of an access.
type memFlags struct {
	glc        bool
	canReorder bool
	barrier    gcn.BarrierKind
}

func (f memFlags) apply(instr *gcn.Instruction) {
	instr.Mem.GLC = f.glc
	instr.Mem.CanReorder = f.canReorder
	instr.Mem.Barrier = f.barrier
}

func accessFlags(access ir.Access, barrier gcn.BarrierKind) memFlags {
	return memFlags{
		glc:        access&(ir.AccessCoherent|ir.AccessVolatile) != 0,
		canReorder: access.CanReorder(),
		barrier:    barrier,
	}
}

// chunkEmitter inserts the instruction of one chunk. offset is the register part of the address
// and may be invalid. def is the result of loads, data the value of stores.
type chunkEmitter func(m memOp, def gcn.Definition, offset gcn.Temp, imm uint32, data gcn.Temp) *gcn.Instruction

// memAccess is a load or store split into chunks.
type memAccess struct {
	format    *memFormat
	bytes     int
	compBytes int
	align     int
	// offset is the register part of the address, invalid when the address is constant.
	offset      gcn.Temp
	constOffset uint32
	emit        chunkEmitter

	folded map[uint32]gcn.Temp
}

// foldOffset splits constOffset into an immediate the instruction encodes and an excess added
// to the register offset.
func (s *selector) foldOffset(acc *memAccess, constOffset uint32, m memOp) (gcn.Temp, uint32) {
	limit := acc.format.maxOffset
	if acc.offset.Valid() && !acc.format.immWithReg {
		limit = 0
	}
	if m.pair {
		elem := uint32(m.bytes / 2)
		if constOffset%elem == 0 && constOffset/elem+1 <= 0xff {
			return acc.offset, constOffset
		}
		limit = 0
	}
	if constOffset <= limit {
		return acc.offset, constOffset
	}
	imm := constOffset & limit
	if !acc.format.immWithReg {
		// The register replaces the immediate, so it carries the whole offset.
		imm = 0
	}
	excess := constOffset - imm
	if t, ok := acc.folded[excess]; ok {
		return t, imm
	}
	if s.tr.If(iselapi.TopicMem) {
		s.tr.Printw("fold offset", "format", acc.format.name, "offset", constOffset, "excess", excess, "imm", imm)
	}
	t := s.addOffset(acc.offset, excess, acc.format.scalar)
	if acc.folded == nil {
		acc.folded = map[uint32]gcn.Temp{}
	}
	acc.folded[excess] = t
	return t, imm
}

// addOffset returns base + c. An invalid base becomes the constant itself.
func (s *selector) addOffset(base gcn.Temp, c uint32, scalar bool) gcn.Temp {
	b := s.b
	switch {
	case !base.Valid() && scalar:
		return b.SOP1(gcn.OpSMovB32, b.Def(gcn.S1), gcn.OperandConst(c)).Result()
	case !base.Valid():
		return b.VMov(gcn.OperandConst(c))
	case base.RegClass() == gcn.S1:
		return b.SOP2(gcn.OpSAddU32, b.Def(gcn.S1), operand(base), gcn.OperandConst(c)).Result()
	case base.RegClass() == gcn.V1:
		return b.VAdd32(b.Def(gcn.V1), operand(base), gcn.OperandConst(c), false).Result()
	case base.RegClass() == gcn.S2:
		lo, hi := s.split2(base)
		add := b.SOP2(gcn.OpSAddU32, b.Def(gcn.S1), operand(lo), gcn.OperandConst(c))
		hiSum := b.SOP2(gcn.OpSAddcU32, b.Def(gcn.S1), operand(hi), gcn.OperandConst(0), gcn.OperandSCC(add.Definitions[1].Temp())).Result()
		return b.CreateVector(b.Def(gcn.S2), operand(add.Result()), operand(hiSum)).Result()
	case base.RegClass() == gcn.V2:
		lo, hi := s.split2(base)
		add := b.VAdd32(b.Def(gcn.V1), operand(lo), gcn.OperandConst(c), true)
		hiSum := b.VOP2(gcn.OpVAddcCoU32, b.Def(gcn.V1), gcn.OperandConst(0), operand(hi), operand(add.Definitions[1].Temp())).Result()
		return b.CreateVector(b.Def(gcn.V2), operand(add.Result()), operand(hiSum)).Result()
	}
	panic("BUG: offset of class " + base.RegClass().String())
}

func (acc *memAccess) chunkRC(bytes int) gcn.RegClass {
	if acc.format.scalar {
		return gcn.NewRegClass(gcn.RegTypeSGPR, bytes/4)
	}
	return gcn.NewSubdwordRegClass(bytes)
}

// emitLoad loads acc.bytes bytes into dst, using the largest instructions the alignment allows.
func (s *selector) emitLoad(acc *memAccess, dst gcn.Temp) {
	b := s.b
	var chunks []gcn.Temp
	for done := 0; done < acc.bytes; {
		m := pickMemOp(acc.format.name, acc.format.loads, acc.bytes-done, chunkAlign(acc.align, done), acc.compBytes)
		rc := acc.chunkRC(m.bytes)
		def := b.Def(rc)
		if m.bytes == acc.bytes && rc == dst.RegClass() {
			def = gcn.Def(dst)
		}
		offset, imm := s.foldOffset(acc, acc.constOffset+uint32(done), m)
		chunks = append(chunks, acc.emit(m, def, offset, imm, gcn.TempInvalid).Result())
		done += m.bytes
	}
	if s.tr.If(iselapi.TopicMem) {
		s.tr.Printw("load", "format", acc.format.name, "bytes", acc.bytes, "align", acc.align, "chunks", len(chunks))
	}
	if len(chunks) == 1 && chunks[0] == dst {
		return
	}

	res := dst
	if isVGPR(chunks[0]) && !isVGPR(dst) {
		res = b.Tmp(gcn.NewSubdwordRegClass(acc.bytes))
	}
	if len(chunks) == 1 {
		b.Copy(gcn.Def(res), operand(chunks[0]))
	} else {
		ops := make([]gcn.Operand, len(chunks))
		perComp := true
		for i, c := range chunks {
			ops[i] = operand(c)
			perComp = perComp && c.Bytes() == acc.compBytes
		}
		b.CreateVector(gcn.Def(res), ops...)
		if perComp && res == dst {
			s.allocatedVec[dst.ID()] = chunks
		}
	}
	if res != dst {
		b.Pseudo(gcn.OpPAsUniform, []gcn.Definition{gcn.Def(dst)}, operand(res))
	}
}

// emitStore stores the components of data selected by writeMask. Every consecutive run of
// written components is chunked separately.
func (s *selector) emitStore(acc *memAccess, data gcn.Temp, numComps int, writeMask uint8) {
	data = s.asVGPR(data)
	comps := []gcn.Temp{data}
	if numComps > 1 {
		s.emitSplitVector(data, numComps)
		rc := gcn.NewSubdwordRegClass(acc.compBytes)
		comps = make([]gcn.Temp, numComps)
		for i := range comps {
			comps[i] = s.emitExtractVector(data, i, rc)
		}
	}
	if writeMask == 0 {
		writeMask = 1<<numComps - 1
	}
	base := acc.constOffset
	for start := 0; start < numComps; {
		if writeMask&(1<<start) == 0 {
			start++
			continue
		}
		end := start
		for end < numComps && writeMask&(1<<end) != 0 {
			end++
		}
		runStart, runBytes := start*acc.compBytes, (end-start)*acc.compBytes
		align := chunkAlign(acc.align, runStart)
		for done := 0; done < runBytes; {
			m := pickMemOp(acc.format.name, acc.format.stores, runBytes-done, chunkAlign(align, done), acc.compBytes)
			off := runStart + done
			offset, imm := s.foldOffset(acc, base+uint32(off), m)
			acc.emit(m, gcn.Definition{}, offset, imm, s.storeChunk(comps, acc.compBytes, off, m.bytes))
			done += m.bytes
		}
		if s.tr.If(iselapi.TopicMem) {
			s.tr.Printw("store", "format", acc.format.name, "offset", base+uint32(runStart), "bytes", runBytes)
		}
		start = end
	}
}

// storeChunk returns the size bytes of the value starting at byte off.
func (s *selector) storeChunk(comps []gcn.Temp, compBytes, off, size int) gcn.Temp {
	b := s.b
	first := off / compBytes
	if off%compBytes == 0 && size%compBytes == 0 {
		n := size / compBytes
		if n == 1 {
			return comps[first]
		}
		ops := make([]gcn.Operand, n)
		for i := range ops {
			ops[i] = operand(comps[first+i])
		}
		return b.CreateVector(b.Def(gcn.NewSubdwordRegClass(size)), ops...).Result()
	}
	if size > compBytes {
		panic("BUG: store chunk straddles components")
	}
	return b.ExtractVector(b.Def(gcn.NewSubdwordRegClass(size)), operand(comps[first]), uint32(off%compBytes/size)).Result()
}

// splitPair returns the halves of the data of ds_write2.
func (s *selector) splitPair(data gcn.Temp) (gcn.Temp, gcn.Temp) {
	rc := gcn.NewSubdwordRegClass(data.Bytes() / 2)
	s.emitSplitVector(data, 2)
	return s.emitExtractVector(data, 0, rc), s.emitExtractVector(data, 1, rc)
}

// memOffset returns the register and constant parts of an offset source plus base.
func (s *selector) memOffset(src ir.Src, base int) (gcn.Temp, uint32) {
	if v, ok := constSrc(src); ok {
		return gcn.TempInvalid, uint32(v) + uint32(base)
	}
	return s.getALUSrc(src), uint32(base)
}

// Descriptor sets hold one 64-byte slot per binding. Buffers use the first 16 bytes, images the
// first 32 and samplers the 16 bytes at samplerDescOffset.
const (
	maxDescriptorSets = 4
	descriptorStride  = 64
	samplerDescOffset = 32
)

// loadDescriptor loads bytes of the descriptor of binding starting at off.
func (s *selector) loadDescriptor(binding ir.Binding, off, bytes int) gcn.Temp {
	if binding.Set < 0 || binding.Set >= maxDescriptorSets {
		unsupported(ir.InstrIntrinsic, "descriptor set %d", binding.Set)
	}
	dst := s.b.Tmp(gcn.NewRegClass(gcn.RegTypeSGPR, bytes/4))
	s.emitSMEMLoad(s.args.descSets[binding.Set], false, gcn.TempInvalid, uint32(binding.Binding*descriptorStride+off), dst, memFlags{canReorder: true})
	return dst
}

func (s *selector) loadBufferDesc(binding ir.Binding) gcn.Temp {
	return s.loadDescriptor(binding, 0, 16)
}

// emitSMEMLoad loads dst from a pointer or buffer descriptor through the scalar cache.
func (s *selector) emitSMEMLoad(base gcn.Temp, buffer bool, offset gcn.Temp, constOffset uint32, dst gcn.Temp, flags memFlags) {
	b := s.b
	if offset.Valid() && isVGPR(offset) {
		offset = b.AsUniform(operand(offset))
	}
	acc := &memAccess{
		format:      smemFormat(s.prog.GfxLevel, buffer),
		bytes:       dst.Bytes(),
		compBytes:   4,
		align:       4,
		offset:      offset,
		constOffset: constOffset,
	}
	acc.emit = func(m memOp, def gcn.Definition, off gcn.Temp, imm uint32, _ gcn.Temp) *gcn.Instruction {
		offOp := gcn.OperandConst(imm)
		if off.Valid() {
			if imm != 0 {
				panic("BUG: smem offset with both a register and an immediate")
			}
			offOp = operand(off)
		}
		instr := b.Instr(m.op, []gcn.Definition{def}, operand(base), offOp)
		flags.apply(instr)
		// Only GFX8 and later bypass the scalar cache for coherent loads.
		instr.Mem.GLC = flags.glc && s.prog.GfxLevel >= gcn.GFX8
		return instr
	}
	s.emitLoad(acc, dst)
}

// emitMUBUF inserts a buffer instruction. A vgpr offset is passed as the address, an sgpr one as
// soffset.
func (s *selector) emitMUBUF(op gcn.Opcode, defs []gcn.Definition, rsrc gcn.Temp, offset gcn.Temp, soffset gcn.Operand, imm uint32, data gcn.Temp, flags memFlags) *gcn.Instruction {
	vaddr := gcn.OperandUndef(gcn.V1)
	offen, addr64 := false, false
	if offset.Valid() {
		switch {
		case offset.RegClass() == gcn.V2:
			vaddr, addr64 = operand(offset), true
		case isVGPR(offset):
			vaddr, offen = operand(offset), true
		case soffset.IsConstant() && soffset.Constant() == 0:
			soffset = operand(offset)
		default:
			vaddr, offen = operand(s.asVGPR(offset)), true
		}
	}
	ops := []gcn.Operand{operand(rsrc), vaddr, soffset}
	if data.Valid() {
		ops = append(ops, operand(data))
	}
	instr := s.b.Instr(op, defs, ops...)
	instr.Mem.Offset = int32(imm)
	instr.Mem.Offen = offen
	instr.Mem.Addr64 = addr64
	flags.apply(instr)
	if data.Valid() {
		instr.Mem.DisableWQM = true
		s.prog.NeedsExactExec = true
	}
	return instr
}

func defsOf(def gcn.Definition) []gcn.Definition {
	if def.IsTemp() {
		return []gcn.Definition{def}
	}
	return nil
}

// bufferAccess returns an access through a buffer descriptor.
func (s *selector) bufferAccess(rsrc gcn.Temp, offset gcn.Temp, constOffset uint32, bytes, compBytes, align int, flags memFlags) *memAccess {
	acc := &memAccess{
		format:      mubufFormat(s.prog.GfxLevel, false),
		bytes:       bytes,
		compBytes:   compBytes,
		align:       align,
		offset:      offset,
		constOffset: constOffset,
	}
	acc.emit = func(m memOp, def gcn.Definition, off gcn.Temp, imm uint32, data gcn.Temp) *gcn.Instruction {
		return s.emitMUBUF(m.op, defsOf(def), rsrc, off, gcn.OperandConst(0), imm, data, flags)
	}
	return acc
}

func loadSize(d *ir.Def) (bytes, compBytes int) {
	compBytes = d.BitSize / 8
	return d.NumComponents * compBytes, compBytes
}

// visitLoadBuffer lowers load_ssbo and load_ubo. Uniform, dword-aligned loads go through the
// scalar cache.
func (s *selector) visitLoadBuffer(instr *ir.Instr, barrier gcn.BarrierKind) {
	dst := s.temp(instr.Def)
	rsrc := s.loadBufferDesc(instr.Binding)
	offset, constOffset := s.memOffset(instr.Srcs[0], instr.Base)
	bytes, compBytes := loadSize(instr.Def)
	align := instr.Align()
	flags := accessFlags(instr.Access, barrier)
	if barrier == 0 {
		flags.canReorder = true
	}
	if !isVGPR(dst) && bytes%4 == 0 && align >= 4 {
		s.emitSMEMLoad(rsrc, true, offset, constOffset, dst, flags)
		return
	}
	s.emitLoad(s.bufferAccess(rsrc, offset, constOffset, bytes, compBytes, align, flags), dst)
}

func (s *selector) visitStoreSSBO(instr *ir.Instr) {
	value := instr.Srcs[0].Def
	data := s.getALUSrcN(instr.Srcs[0], value.NumComponents)
	rsrc := s.loadBufferDesc(instr.Binding)
	offset, constOffset := s.memOffset(instr.Srcs[1], instr.Base)
	bytes, compBytes := loadSize(value)
	acc := s.bufferAccess(rsrc, offset, constOffset, bytes, compBytes, instr.Align(), accessFlags(instr.Access, gcn.BarrierBuffer))
	s.emitStore(acc, data, value.NumComponents, instr.WriteMask)
}

// visitLoadPushConstant loads from the push constant block. Divergent offsets read it through
// the vector memory path.
func (s *selector) visitLoadPushConstant(instr *ir.Instr) {
	dst := s.temp(instr.Def)
	offset, constOffset := s.memOffset(instr.Srcs[0], instr.Base)
	bytes, compBytes := loadSize(instr.Def)
	flags := memFlags{canReorder: true}
	if !isVGPR(dst) && bytes%4 == 0 && instr.Align() >= 4 {
		s.emitSMEMLoad(s.args.pushConstants, false, offset, constOffset, dst, flags)
		return
	}
	addr := s.args.pushConstants
	if offset.Valid() {
		addr = s.addPointerOffset(addr, offset)
	}
	s.emitLoad(s.globalAccess(addr, constOffset, bytes, compBytes, instr.Align(), flags), dst)
}

// addPointerOffset returns the vgpr address ptr + offset.
func (s *selector) addPointerOffset(ptr, offset gcn.Temp) gcn.Temp {
	b := s.b
	lo, hi := s.split2(ptr)
	add := b.VAdd32(b.Def(gcn.V1), operand(lo), operand(offset), true)
	hiSum := b.VOP2(gcn.OpVAddcCoU32, b.Def(gcn.V1), gcn.OperandConst(0), operand(s.asVGPR(hi)), operand(add.Definitions[1].Temp())).Result()
	return b.CreateVector(b.Def(gcn.V2), operand(add.Result()), operand(hiSum)).Result()
}

// globalAccess returns an access through a 64-bit address.
func (s *selector) globalAccess(addr gcn.Temp, constOffset uint32, bytes, compBytes, align int, flags memFlags) *memAccess {
	b := s.b
	addr = s.asVGPR(addr)
	f := globalFormat(s.prog.GfxLevel)
	acc := &memAccess{format: f, bytes: bytes, compBytes: compBytes, align: align, offset: addr, constOffset: constOffset}
	if s.prog.GfxLevel < gcn.GFX7 {
		rsrc := s.gfx6GlobalRsrc()
		acc.emit = func(m memOp, def gcn.Definition, off gcn.Temp, imm uint32, data gcn.Temp) *gcn.Instruction {
			return s.emitMUBUF(m.op, defsOf(def), rsrc, off, gcn.OperandConst(0), imm, data, flags)
		}
		return acc
	}
	acc.emit = func(m memOp, def gcn.Definition, off gcn.Temp, imm uint32, data gcn.Temp) *gcn.Instruction {
		ops := []gcn.Operand{operand(off), gcn.OperandUndef(gcn.S2)}
		if data.Valid() {
			ops = append(ops, operand(data))
		}
		instr := b.Instr(m.op, defsOf(def), ops...)
		instr.Mem.Offset = int32(imm)
		flags.apply(instr)
		if data.Valid() {
			instr.Mem.DisableWQM = true
			s.prog.NeedsExactExec = true
		}
		return instr
	}
	return acc
}

// gfx6GlobalRsrc returns a buffer descriptor with a zero base covering the whole address space,
// for addr64 accesses.
func (s *selector) gfx6GlobalRsrc() gcn.Temp {
	const dataFormat32NumFormatFloat = 7<<12 | 4<<15
	return s.b.CreateVector(s.b.Def(gcn.S4), gcn.OperandConst(0), gcn.OperandConst(0), gcn.OperandConst(^uint32(0)), gcn.OperandConst(dataFormat32NumFormatFloat)).Result()
}

func (s *selector) visitLoadGlobal(instr *ir.Instr) {
	dst := s.temp(instr.Def)
	bytes, compBytes := loadSize(instr.Def)
	acc := s.globalAccess(s.getALUSrc(instr.Srcs[0]), uint32(instr.Base), bytes, compBytes, instr.Align(), accessFlags(instr.Access, gcn.BarrierBuffer))
	s.emitLoad(acc, dst)
}

func (s *selector) visitStoreGlobal(instr *ir.Instr) {
	value := instr.Srcs[0].Def
	data := s.getALUSrcN(instr.Srcs[0], value.NumComponents)
	bytes, compBytes := loadSize(value)
	acc := s.globalAccess(s.getALUSrc(instr.Srcs[1]), uint32(instr.Base), bytes, compBytes, instr.Align(), accessFlags(instr.Access, gcn.BarrierBuffer))
	s.emitStore(acc, data, value.NumComponents, instr.WriteMask)
}

// ldsM0 returns the m0 operand DS instructions read before GFX9, where m0 bounds LDS accesses.
func (s *selector) ldsM0() (gcn.Operand, bool) {
	if s.prog.GfxLevel >= gcn.GFX9 {
		return gcn.Operand{}, false
	}
	m0 := s.b.SOPK(gcn.OpSMovkI32, s.b.DefFixed(gcn.S1, gcn.M0), 0xffff).Result()
	return operand(m0).Fixed(gcn.M0), true
}

// emitDS inserts a DS instruction. Pairs split imm into the two element offsets.
func (s *selector) emitDS(m memOp, defs []gcn.Definition, addr gcn.Temp, imm uint32, data ...gcn.Temp) *gcn.Instruction {
	ops := []gcn.Operand{operand(s.asVGPR(addr))}
	for _, d := range data {
		ops = append(ops, operand(d))
	}
	if m0, ok := s.ldsM0(); ok {
		ops = append(ops, m0)
	}
	instr := s.b.Instr(m.op, defs, ops...)
	if m.pair {
		elem := uint32(m.bytes / 2)
		instr.Mem.Offset0 = uint8(imm / elem)
		instr.Mem.Offset1 = uint8(imm/elem + 1)
	} else {
		instr.Mem.Offset = int32(imm)
	}
	instr.Mem.Barrier = gcn.BarrierShared
	instr.Mem.CanReorder = true
	return instr
}

func (s *selector) sharedAccess(addr gcn.Temp, constOffset uint32, bytes, compBytes, align int) *memAccess {
	if !addr.Valid() {
		addr = s.b.VMov(gcn.OperandConst(0))
	}
	acc := &memAccess{format: dsFormat(s.prog.GfxLevel), bytes: bytes, compBytes: compBytes, align: align, offset: s.asVGPR(addr), constOffset: constOffset}
	acc.emit = func(m memOp, def gcn.Definition, off gcn.Temp, imm uint32, data gcn.Temp) *gcn.Instruction {
		switch {
		case !data.Valid():
			return s.emitDS(m, defsOf(def), off, imm)
		case m.pair:
			d0, d1 := s.splitPair(data)
			return s.emitDS(m, nil, off, imm, d0, d1)
		default:
			return s.emitDS(m, nil, off, imm, data)
		}
	}
	return acc
}

func (s *selector) visitLoadShared(instr *ir.Instr) {
	dst := s.temp(instr.Def)
	offset, constOffset := s.memOffset(instr.Srcs[0], instr.Base)
	bytes, compBytes := loadSize(instr.Def)
	s.emitLoad(s.sharedAccess(offset, constOffset, bytes, compBytes, instr.Align()), dst)
}

func (s *selector) visitStoreShared(instr *ir.Instr) {
	value := instr.Srcs[0].Def
	data := s.getALUSrcN(instr.Srcs[0], value.NumComponents)
	offset, constOffset := s.memOffset(instr.Srcs[1], instr.Base)
	bytes, compBytes := loadSize(value)
	s.emitStore(s.sharedAccess(offset, constOffset, bytes, compBytes, instr.Align()), data, value.NumComponents, instr.WriteMask)
}

// scratchAccess addresses private memory. GFX9 has scratch instructions, older generations
// use MUBUF with the scratch ring descriptor and the per-wave scratch offset.
func (s *selector) scratchAccess(offset gcn.Temp, constOffset uint32, bytes, compBytes, align int) *memAccess {
	b := s.b
	if offset.Valid() {
		offset = s.asVGPR(offset)
	}
	acc := &memAccess{format: scratchFormat(s.prog.GfxLevel), bytes: bytes, compBytes: compBytes, align: align, offset: offset, constOffset: constOffset}
	flags := memFlags{canReorder: true}
	if s.prog.GfxLevel < gcn.GFX9 {
		rsrc := s.scratchRsrc()
		soffset := operand(s.args.scratchOffset)
		acc.emit = func(m memOp, def gcn.Definition, off gcn.Temp, imm uint32, data gcn.Temp) *gcn.Instruction {
			vaddr := off
			if !vaddr.Valid() {
				vaddr = b.VMov(gcn.OperandConst(0))
			}
			return s.emitMUBUF(m.op, defsOf(def), rsrc, vaddr, soffset, imm, data, flags)
		}
		return acc
	}
	acc.emit = func(m memOp, def gcn.Definition, off gcn.Temp, imm uint32, data gcn.Temp) *gcn.Instruction {
		vaddr := gcn.OperandUndef(gcn.V1)
		if off.Valid() {
			vaddr = operand(off)
		}
		ops := []gcn.Operand{vaddr, gcn.OperandUndef(gcn.S1)}
		if data.Valid() {
			ops = append(ops, operand(data))
		}
		instr := b.Instr(m.op, defsOf(def), ops...)
		instr.Mem.Offset = int32(imm)
		flags.apply(instr)
		return instr
	}
	return acc
}

// scratchRsrc loads the scratch ring descriptor from the ring offsets.
func (s *selector) scratchRsrc() gcn.Temp {
	rsrc := s.b.Tmp(gcn.S4)
	s.emitSMEMLoad(s.args.ringOffsets, false, gcn.TempInvalid, 0, rsrc, memFlags{canReorder: true})
	return rsrc
}

// checkScratchAccess rejects the sub-dword accesses scratch has no instructions for.
func checkScratchAccess(instr *ir.Instr, bytes int) {
	if bytes%4 != 0 || instr.Align() < 4 {
		unsupported(instr.Intrinsic, "%d byte scratch access aligned to %d", bytes, instr.Align())
	}
}

func (s *selector) visitLoadScratch(instr *ir.Instr) {
	dst := s.temp(instr.Def)
	offset, constOffset := s.memOffset(instr.Srcs[0], instr.Base)
	bytes, compBytes := loadSize(instr.Def)
	checkScratchAccess(instr, bytes)
	s.emitLoad(s.scratchAccess(offset, constOffset, bytes, compBytes, instr.Align()), dst)
}

func (s *selector) visitStoreScratch(instr *ir.Instr) {
	value := instr.Srcs[0].Def
	data := s.getALUSrcN(instr.Srcs[0], value.NumComponents)
	offset, constOffset := s.memOffset(instr.Srcs[1], instr.Base)
	bytes, compBytes := loadSize(value)
	checkScratchAccess(instr, bytes)
	s.emitStore(s.scratchAccess(offset, constOffset, bytes, compBytes, instr.Align()), data, value.NumComponents, instr.WriteMask)
}

// visitMemoryBarrier lowers the memory barrier intrinsics.
func (s *selector) visitMemoryBarrier(instr *ir.Instr) {
	switch instr.Intrinsic {
	case ir.IntrinsicMemoryBarrier, ir.IntrinsicGroupMemoryBarrier:
		s.b.Barrier(gcn.OpPMemoryBarrierCommon)
	case ir.IntrinsicMemoryBarrierBuffer:
		s.b.Barrier(gcn.OpPMemoryBarrierBuffer)
	case ir.IntrinsicMemoryBarrierImage:
		s.b.Barrier(gcn.OpPMemoryBarrierImage)
	case ir.IntrinsicMemoryBarrierShared:
		s.b.Barrier(gcn.OpPMemoryBarrierShared)
	}
}

// visitControlBarrier waits for the other waves of the workgroup. A workgroup that fits in one
// wave needs no s_barrier.
func (s *selector) visitControlBarrier() {
	if s.prog.WorkgroupSize > s.prog.WaveSize {
		s.b.SOPP(gcn.OpSBarrier, 0)
	}
}
