package isel

import (
	"fmt"

	"github.com/wavesel/wavesel/gcn"
	"github.com/wavesel/wavesel/internal/iselapi"
	"github.com/wavesel/wavesel/ir"
)

// sampleVariant selects the sample opcode. lod is one of the lod constants below.
type sampleVariant struct {
	lod     int
	compare bool
	offset  bool
}

const (
	lodImplicit = iota
	lodBias
	lodExplicit
	lodZero
	lodDerivs
)

var sampleOps = map[sampleVariant]gcn.Opcode{
	{lodImplicit, false, false}: gcn.OpImageSample,
	{lodImplicit, true, false}:  gcn.OpImageSampleC,
	{lodImplicit, false, true}:  gcn.OpImageSampleO,
	{lodImplicit, true, true}:   gcn.OpImageSampleCO,
	{lodBias, false, false}:     gcn.OpImageSampleB,
	{lodBias, true, false}:      gcn.OpImageSampleCB,
	{lodBias, false, true}:      gcn.OpImageSampleBO,
	{lodBias, true, true}:       gcn.OpImageSampleCBO,
	{lodExplicit, false, false}: gcn.OpImageSampleL,
	{lodExplicit, true, false}:  gcn.OpImageSampleCL,
	{lodExplicit, false, true}:  gcn.OpImageSampleLO,
	{lodExplicit, true, true}:   gcn.OpImageSampleCLO,
	{lodZero, false, false}:     gcn.OpImageSampleLz,
	{lodZero, true, false}:      gcn.OpImageSampleCLz,
	{lodZero, false, true}:      gcn.OpImageSampleLzO,
	{lodZero, true, true}:       gcn.OpImageSampleCLzO,
	{lodDerivs, false, false}:   gcn.OpImageSampleD,
	{lodDerivs, true, false}:    gcn.OpImageSampleCD,
	{lodDerivs, false, true}:    gcn.OpImageSampleDO,
	{lodDerivs, true, true}:     gcn.OpImageSampleCDO,
}

var gatherOps = map[sampleVariant]gcn.Opcode{
	{lodImplicit, false, false}: gcn.OpImageGather4,
	{lodImplicit, true, false}:  gcn.OpImageGather4C,
	{lodImplicit, false, true}:  gcn.OpImageGather4O,
	{lodImplicit, true, true}:   gcn.OpImageGather4CO,
	{lodZero, false, false}:     gcn.OpImageGather4Lz,
	{lodZero, true, false}:      gcn.OpImageGather4CLz,
	{lodZero, false, true}:      gcn.OpImageGather4LzO,
	{lodZero, true, true}:       gcn.OpImageGather4CLzO,
}

var imageAtomics = [...]gcn.Opcode{
	ir.AtomicAdd:      gcn.OpImageAtomicAdd,
	ir.AtomicIMin:     gcn.OpImageAtomicSmin,
	ir.AtomicUMin:     gcn.OpImageAtomicUmin,
	ir.AtomicIMax:     gcn.OpImageAtomicSmax,
	ir.AtomicUMax:     gcn.OpImageAtomicUmax,
	ir.AtomicAnd:      gcn.OpImageAtomicAnd,
	ir.AtomicOr:       gcn.OpImageAtomicOr,
	ir.AtomicXor:      gcn.OpImageAtomicXor,
	ir.AtomicExchange: gcn.OpImageAtomicSwap,
	ir.AtomicCompSwap: gcn.OpImageAtomicCmpswap,
}

// imageDim returns the hardware dimension of an image and whether it is layered.
func imageDim(op fmt.Stringer, dim ir.ImageDim, isArray bool) (gcn.ImageDim, bool) {
	switch dim {
	case ir.Dim1D:
		if isArray {
			return gcn.ImageDim1DArray, true
		}
		return gcn.ImageDim1D, false
	case ir.Dim2D:
		if isArray {
			return gcn.ImageDim2DArray, true
		}
		return gcn.ImageDim2D, false
	case ir.Dim3D:
		return gcn.ImageDim3D, false
	case ir.DimMS:
		if isArray {
			return gcn.ImageDim2DArrayMSAA, true
		}
		return gcn.ImageDim2DMSAA, false
	}
	unsupported(op, "image dimension %d", dim)
	return 0, false
}

// coordCount returns the number of address components of the coordinates.
func coordCount(dim ir.ImageDim, isArray bool) int {
	n := map[ir.ImageDim]int{ir.Dim1D: 1, ir.Dim2D: 2, ir.Dim3D: 3, ir.DimMS: 2, ir.DimBuffer: 1}[dim]
	if isArray {
		n++
	}
	return n
}

func (s *selector) loadImageDesc(binding ir.Binding, dim ir.ImageDim) gcn.Temp {
	if dim == ir.DimBuffer {
		return s.loadDescriptor(binding, 0, 16)
	}
	return s.loadDescriptor(binding, 0, 32)
}

func (s *selector) loadSamplerDesc(binding ir.Binding) gcn.Temp {
	return s.loadDescriptor(binding, samplerDescOffset, 16)
}

// vgprComponents returns the first n components of src as v1 values.
func (s *selector) vgprComponents(src ir.Src, n int) []gcn.Temp {
	if src.Def.BitSize != 32 {
		unsupported(ir.InstrTex, "%d-bit image address", src.Def.BitSize)
	}
	ret := make([]gcn.Temp, n)
	for i := range ret {
		ret[i] = s.asVGPR(s.getALUSrc(ir.Comp(src.Def, int(src.Swizzle[i]))))
	}
	return ret
}

// packTexOffset packs the 6-bit texel offsets into one dword, one byte per coordinate.
func (s *selector) packTexOffset(src ir.Src) gcn.Temp {
	b := s.b
	n := src.Def.NumComponents
	var packed uint32
	allConst := true
	for i := 0; i < n; i++ {
		v, ok := constSrc(ir.Comp(src.Def, int(src.Swizzle[i])))
		if !ok {
			allConst = false
			break
		}
		packed |= (uint32(v) & 0x3f) << (8 * i)
	}
	if allConst {
		return b.VMov(gcn.OperandConst(packed))
	}
	var acc gcn.Temp
	for i, c := range s.vgprComponents(src, n) {
		t := b.VOP2(gcn.OpVAndB32, b.Def(gcn.V1), gcn.OperandConst(0x3f), operand(c)).Result()
		if i > 0 {
			t = b.VOP2(gcn.OpVLshlrevB32, b.Def(gcn.V1), gcn.OperandConst(uint32(8*i)), operand(t)).Result()
			t = b.VOP2(gcn.OpVOrB32, b.Def(gcn.V1), operand(acc), operand(t)).Result()
		}
		acc = t
	}
	return acc
}

// emitMIMG inserts an image instruction. The address components are packed into one vector.
func (s *selector) emitMIMG(op gcn.Opcode, def gcn.Definition, rsrc, sampler gcn.Temp, data gcn.Temp, addr []gcn.Temp) *gcn.Instruction {
	b := s.b
	samp := gcn.OperandUndef(gcn.S4)
	if sampler.Valid() {
		samp = operand(sampler)
	}
	vdata := gcn.OperandUndef(gcn.V1)
	if data.Valid() {
		vdata = operand(data)
	}
	var vaddr gcn.Operand
	if len(addr) == 1 {
		vaddr = operand(addr[0])
	} else {
		vec := b.Tmp(gcn.NewRegClass(gcn.RegTypeVGPR, len(addr)))
		s.createVector(vec, addr...)
		vaddr = operand(vec)
	}
	var defs []gcn.Definition
	if def.IsTemp() {
		defs = []gcn.Definition{def}
	}
	instr := b.Instr(op, defs, operand(rsrc), samp, vdata, vaddr)
	if s.tr.If(iselapi.TopicMem) {
		s.tr.Printw("mimg", "op", op, "addr", len(addr))
	}
	return instr
}

// texResult runs emit with a definition for the returned components, padding the result to the
// components of dst when the instruction returns fewer.
func (s *selector) texResult(dst gcn.Temp, numReturned int, emit func(def gcn.Definition)) {
	if dst.Size() == numReturned {
		s.valuInto(dst, emit)
		return
	}
	tmp := s.b.Tmp(gcn.NewRegClass(gcn.RegTypeVGPR, numReturned))
	emit(gcn.Def(tmp))
	s.expandVector(tmp, dst, dst.Size(), 1<<numReturned-1)
}

func (s *selector) visitTex(instr *ir.Instr) {
	tex := instr.Tex
	dst := s.temp(instr.Def)
	if instr.Def.BitSize != 32 {
		unsupported(tex.Op, "%d-bit texture result", instr.Def.BitSize)
	}
	if instr.Dim == ir.DimBuffer {
		s.visitBufferFetch(instr, dst)
		return
	}
	dim, da := imageDim(tex.Op, instr.Dim, instr.IsArray)
	rsrc := s.loadImageDesc(tex.Texture, instr.Dim)

	src := func(t ir.TexSrcType) (ir.Src, bool) {
		if i := tex.SrcIndex(t); i >= 0 {
			return instr.Srcs[i], true
		}
		return ir.Src{}, false
	}
	coordSrc, ok := src(ir.TexSrcCoord)
	if tex.Op != ir.TexOpTxs && !ok {
		panic("BUG: texture instruction without coordinates")
	}

	var addr []gcn.Temp
	variant := sampleVariant{lod: lodImplicit}
	if s.stage != ir.StageFragment {
		variant.lod = lodZero
	}
	if off, ok := src(ir.TexSrcOffset); ok {
		variant.offset = true
		addr = append(addr, s.packTexOffset(off))
	}
	if bias, ok := src(ir.TexSrcBias); ok {
		variant.lod = lodBias
		addr = append(addr, s.vgprComponents(bias, 1)...)
	}
	if cmp, ok := src(ir.TexSrcComparator); ok {
		variant.compare = true
		addr = append(addr, s.vgprComponents(cmp, 1)...)
	}
	if ddx, ok := src(ir.TexSrcDdx); ok {
		ddy, _ := src(ir.TexSrcDdy)
		variant.lod = lodDerivs
		addr = append(addr, s.vgprComponents(ddx, ddx.Def.NumComponents)...)
		addr = append(addr, s.vgprComponents(ddy, ddy.Def.NumComponents)...)
	}
	numCoords := coordCount(instr.Dim, instr.IsArray)

	var lodSrc ir.Src
	hasLod := false
	if l, ok := src(ir.TexSrcLod); ok {
		if v, isConst := constSrc(l); isConst && v == 0 {
			variant.lod = lodZero
		} else {
			lodSrc, hasLod = l, true
			variant.lod = lodExplicit
		}
	}

	returned := instr.Def.NumComponents
	dmask := uint8(1<<returned - 1)
	var op gcn.Opcode
	switch tex.Op {
	case ir.TexOpTex, ir.TexOpTxb, ir.TexOpTxl, ir.TexOpTxd:
		op = sampleOps[variant]
		if tex.IsShadow {
			returned, dmask = 1, 1
		}
	case ir.TexOpTg4:
		if variant.lod != lodImplicit && variant.lod != lodZero {
			unsupported(tex.Op, "gather with explicit lod")
		}
		op = gatherOps[variant]
		returned = 4
		dmask = 1 << tex.Component
		if tex.IsShadow {
			dmask = 1
		}
	case ir.TexOpLod:
		op = gcn.OpImageGetLod
		returned, dmask = 2, 0x3
	case ir.TexOpTxf, ir.TexOpTxfMS:
		if variant.offset {
			unsupported(tex.Op, "texel fetch with offset")
		}
		addr = nil
		op = gcn.OpImageLoad
		if hasLod {
			op = gcn.OpImageLoadMip
		}
	case ir.TexOpTxs:
		s.emitResinfo(instr, dst, rsrc, dim, da, tex.SrcIndex(ir.TexSrcLod))
		return
	default:
		unsupported(tex.Op, "texture operation")
	}

	addr = append(addr, s.vgprComponents(coordSrc, numCoords)...)
	if tex.Op == ir.TexOpTxfMS {
		ms, ok := src(ir.TexSrcMSIndex)
		if !ok {
			panic("BUG: txf_ms without a sample index")
		}
		addr = append(addr, s.vgprComponents(ms, 1)...)
	}
	if hasLod {
		addr = append(addr, s.vgprComponents(lodSrc, 1)...)
	}

	sampler := gcn.TempInvalid
	if tex.Op != ir.TexOpTxf && tex.Op != ir.TexOpTxfMS {
		sampler = s.loadSamplerDesc(tex.Sampler)
	}
	s.texResult(dst, returned, func(def gcn.Definition) {
		mi := s.emitMIMG(op, def, rsrc, sampler, gcn.TempInvalid, addr)
		mi.MIMG.Dim = dim
		mi.MIMG.DA = da
		mi.MIMG.DMask = dmask
		mi.MIMG.Unrm = tex.Op == ir.TexOpTxf || tex.Op == ir.TexOpTxfMS
		mi.MIMG.Barrier = gcn.BarrierImage
		if variant.lod == lodImplicit || variant.lod == lodBias || tex.Op == ir.TexOpLod {
			s.prog.NeedsWQM = true
		}
	})
}

// emitResinfo returns the size of an image level. The lod source index is -1 for level 0.
func (s *selector) emitResinfo(instr *ir.Instr, dst, rsrc gcn.Temp, dim gcn.ImageDim, da bool, lodIdx int) {
	lod := s.b.VMov(gcn.OperandConst(0))
	if lodIdx >= 0 {
		lod = s.vgprComponents(instr.Srcs[lodIdx], 1)[0]
	}
	n := instr.Def.NumComponents
	s.texResult(dst, n, func(def gcn.Definition) {
		mi := s.emitMIMG(gcn.OpImageGetResinfo, def, rsrc, gcn.TempInvalid, gcn.TempInvalid, []gcn.Temp{lod})
		mi.MIMG.Dim = dim
		mi.MIMG.DA = da
		mi.MIMG.DMask = uint8(1<<n - 1)
	})
}

// visitBufferFetch loads texels of a buffer image through the format conversion of MUBUF.
func (s *selector) visitBufferFetch(instr *ir.Instr, dst gcn.Temp) {
	tex := instr.Tex
	if tex.Op != ir.TexOpTxf {
		unsupported(tex.Op, "buffer texture")
	}
	rsrc := s.loadImageDesc(tex.Texture, ir.DimBuffer)
	idx := s.vgprComponents(instr.Srcs[tex.SrcIndex(ir.TexSrcCoord)], 1)[0]
	s.bufferFormatLoad(dst, rsrc, idx)
}

func (s *selector) bufferFormatLoad(dst, rsrc, idx gcn.Temp) {
	s.texResult(dst, 4, func(def gcn.Definition) {
		mi := s.b.Instr(gcn.OpBufferLoadFormatXyzw, []gcn.Definition{def}, operand(rsrc), operand(idx), gcn.OperandConst(0))
		mi.Mem.Idxen = true
		mi.Mem.Barrier = gcn.BarrierImage
		mi.Mem.CanReorder = true
	})
}

// imageAddr returns the address of an image intrinsic: the coordinates, then the sample index
// of multisampled images.
func (s *selector) imageAddr(instr *ir.Instr) []gcn.Temp {
	addr := s.vgprComponents(instr.Srcs[0], coordCount(instr.Dim, instr.IsArray))
	if instr.Dim == ir.DimMS {
		addr = append(addr, s.vgprComponents(instr.Srcs[1], 1)...)
	}
	return addr
}

func imageFlags(mi *gcn.Instruction, dim gcn.ImageDim, da bool, access ir.Access) {
	mi.MIMG.Dim = dim
	mi.MIMG.DA = da
	mi.MIMG.GLC = access&(ir.AccessCoherent|ir.AccessVolatile) != 0
	mi.MIMG.Unrm = true
	mi.MIMG.Barrier = gcn.BarrierImage
}

func (s *selector) visitImageLoad(instr *ir.Instr) {
	dst := s.temp(instr.Def)
	if instr.Dim == ir.DimBuffer {
		rsrc := s.loadImageDesc(instr.Binding, ir.DimBuffer)
		s.bufferFormatLoad(dst, rsrc, s.vgprComponents(instr.Srcs[0], 1)[0])
		return
	}
	dim, da := imageDim(instr.Intrinsic, instr.Dim, instr.IsArray)
	rsrc := s.loadImageDesc(instr.Binding, instr.Dim)
	addr := s.imageAddr(instr)
	n := instr.Def.NumComponents
	s.texResult(dst, n, func(def gcn.Definition) {
		mi := s.emitMIMG(gcn.OpImageLoad, def, rsrc, gcn.TempInvalid, gcn.TempInvalid, addr)
		imageFlags(mi, dim, da, instr.Access)
		mi.MIMG.DMask = uint8(1<<n - 1)
	})
}

func (s *selector) visitImageStore(instr *ir.Instr) {
	if instr.Dim == ir.DimBuffer {
		unsupported(instr.Intrinsic, "buffer image store")
	}
	dim, da := imageDim(instr.Intrinsic, instr.Dim, instr.IsArray)
	rsrc := s.loadImageDesc(instr.Binding, instr.Dim)
	addr := s.imageAddr(instr)
	value := instr.Srcs[2]
	data := s.asVGPR(s.getALUSrcN(value, value.Def.NumComponents))
	mi := s.emitMIMG(gcn.OpImageStore, gcn.Definition{}, rsrc, gcn.TempInvalid, data, addr)
	imageFlags(mi, dim, da, instr.Access)
	mi.MIMG.DMask = uint8(1<<value.Def.NumComponents - 1)
	mi.MIMG.DisableWQM = true
	s.prog.NeedsExactExec = true
}

func (s *selector) visitImageAtomic(instr *ir.Instr, op ir.AtomicOp) {
	dim, da := imageDim(instr.Intrinsic, instr.Dim, instr.IsArray)
	rsrc := s.loadImageDesc(instr.Binding, instr.Dim)
	addr := s.imageAddr(instr)
	data := s.atomicData(instr, op, 2)
	def := gcn.Definition{}
	if instr.Def.HasUses() {
		def = gcn.Def(s.temp(instr.Def))
	}
	mi := s.emitMIMG(imageAtomics[op], def, rsrc, gcn.TempInvalid, data, addr)
	imageFlags(mi, dim, da, instr.Access)
	mi.MIMG.GLC = def.IsTemp()
	mi.MIMG.DMask = 1
	if op == ir.AtomicCompSwap {
		mi.MIMG.DMask = 3
	}
	mi.MIMG.DisableWQM = true
	mi.MIMG.Barrier = gcn.BarrierImage | gcn.BarrierAtomic
	s.prog.NeedsExactExec = true
}

// visitImageSize returns the size of level 0 of an image, or the element count of a buffer
// image read from the third dword of its descriptor.
func (s *selector) visitImageSize(instr *ir.Instr) {
	dst := s.temp(instr.Def)
	if instr.Dim == ir.DimBuffer {
		rsrc := s.loadImageDesc(instr.Binding, ir.DimBuffer)
		s.emitSplitVector(rsrc, 4)
		size := s.emitExtractVector(rsrc, 2, gcn.S1)
		s.emitMove(dst, operand(size))
		return
	}
	dim, da := imageDim(instr.Intrinsic, instr.Dim, instr.IsArray)
	rsrc := s.loadImageDesc(instr.Binding, instr.Dim)
	lod := s.vgprComponents(instr.Srcs[0], 1)[0]
	n := instr.Def.NumComponents
	s.texResult(dst, n, func(def gcn.Definition) {
		mi := s.emitMIMG(gcn.OpImageGetResinfo, def, rsrc, gcn.TempInvalid, gcn.TempInvalid, []gcn.Temp{lod})
		mi.MIMG.Dim = dim
		mi.MIMG.DA = da
		mi.MIMG.DMask = uint8(1<<n - 1)
	})
}
