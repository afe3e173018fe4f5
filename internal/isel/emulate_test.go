package isel

import (
	"math"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"
	"tlog.app/go/tlog"

	"github.com/wavesel/wavesel/gcn"
	"github.com/wavesel/wavesel/ir"
)

// lane evaluates straight-line VALU code for a single active lane. Every temp holds its dwords.
type lane map[uint32][]uint32

func (l lane) dwords(o gcn.Operand, n int) []uint32 {
	if o.IsConstant() {
		v := o.Constant64()
		if n == 1 {
			return []uint32{uint32(v)}
		}
		return []uint32{uint32(v), uint32(v >> 32)}
	}
	return l[o.TempID()]
}

func (l lane) u32(o gcn.Operand) uint32 { return l.dwords(o, 1)[0] }

func (l lane) u64(o gcn.Operand) uint64 {
	d := l.dwords(o, 2)
	return uint64(d[0]) | uint64(d[1])<<32
}

func (l lane) f64(instr *gcn.Instruction, i int) float64 {
	f := math.Float64frombits(l.u64(instr.Operands[i]))
	if instr.VOP3.Abs[i] {
		f = math.Abs(f)
	}
	if instr.VOP3.Neg[i] {
		f = -f
	}
	return f
}

func (l lane) set(d gcn.Definition, v ...uint32) { l[d.TempID()] = v }

func (l lane) setBool(d gcn.Definition, v bool) {
	if v {
		l.set(d, 1)
	} else {
		l.set(d, 0)
	}
}

func (l lane) run(t *testing.T, instrs []*gcn.Instruction) {
	for _, instr := range instrs {
		ops, def := instr.Operands, instr.Definitions[0]
		switch instr.Opcode {
		case gcn.OpPParallelcopy, gcn.OpVMovB32:
			l.set(def, l.dwords(ops[0], ops[0].Size())...)
		case gcn.OpPCreateVector:
			var v []uint32
			for _, o := range ops {
				size := 1
				if o.IsTemp() {
					size = o.Size()
				}
				v = append(v, l.dwords(o, size)...)
			}
			l.set(def, v...)
		case gcn.OpPSplitVector:
			src := l.dwords(ops[0], ops[0].Size())
			for _, d := range instr.Definitions {
				l.set(d, src[:d.Size()]...)
				src = src[d.Size():]
			}
		case gcn.OpPExtractVector:
			idx := int(ops[1].Constant())
			size := def.Size()
			l.set(def, l.dwords(ops[0], ops[0].Size())[idx*size:(idx+1)*size]...)
		case gcn.OpVBfeU32:
			off, width := l.u32(ops[1])&31, l.u32(ops[2])&31
			l.set(def, l.u32(ops[0])>>off&(1<<width-1))
		case gcn.OpVSubU32, gcn.OpVSubCoU32:
			l.set(def, l.u32(ops[0])-l.u32(ops[1]))
		case gcn.OpVSubrevU32, gcn.OpVSubrevCoU32:
			l.set(def, l.u32(ops[1])-l.u32(ops[0]))
		case gcn.OpVLshrB64:
			v := l.u64(ops[0]) >> (l.u32(ops[1]) & 63)
			l.set(def, uint32(v), uint32(v>>32))
		case gcn.OpVNotB32:
			l.set(def, ^l.u32(ops[0]))
		case gcn.OpVAndB32:
			l.set(def, l.u32(ops[0])&l.u32(ops[1]))
		case gcn.OpVBfiB32:
			m := l.u32(ops[0])
			l.set(def, m&l.u32(ops[1])|^m&l.u32(ops[2]))
		case gcn.OpSBrevB32:
			l.set(def, bits.Reverse32(l.u32(ops[0])))
		case gcn.OpVCmpGtI32:
			l.setBool(def, int32(l.u32(ops[0])) > int32(l.u32(ops[1])))
		case gcn.OpVCmpLtI32:
			l.setBool(def, int32(l.u32(ops[0])) < int32(l.u32(ops[1])))
		case gcn.OpVCmpGtF64:
			l.setBool(def, l.f64(instr, 0) > l.f64(instr, 1))
		case gcn.OpVCmpLtF64:
			l.setBool(def, l.f64(instr, 0) < l.f64(instr, 1))
		case gcn.OpVCndmaskB32:
			v := l.u32(ops[0])
			if l.u32(ops[2])&1 != 0 {
				v = l.u32(ops[1])
			}
			l.set(def, v)
		case gcn.OpVAddF64:
			v := math.Float64bits(l.f64(instr, 0) + l.f64(instr, 1))
			l.set(def, uint32(v), uint32(v>>32))
		default:
			t.Fatalf("no evaluation for %s", instr)
		}
	}
}

func TestEmulateF64Rounding(t *testing.T) {
	inputs := []float64{
		0, math.Copysign(0, -1), 0.25, -0.25, 0.5, -0.5, 1, -1, 1.5, -1.5, 2.5, -2.5, 3.5,
		0.49999999999999994, -0.49999999999999994, 123456.789, -123456.789,
		1<<52 - 0.5, -(1<<52 - 0.5), 1<<52 - 1, 1<<52 - 1.5, 1 << 52, -(1 << 52), 1<<52 + 1, 1e300, -1e300, 5e-324, -5e-324,
		math.Inf(1), math.Inf(-1), math.NaN(),
	}
	for _, tc := range []struct {
		name string
		emit func(s *selector, dst, src gcn.Temp)
		exp  func(float64) float64
	}{
		{name: "trunc", emit: func(s *selector, dst, src gcn.Temp) { s.emitTruncF64(gcn.Def(dst), src) }, exp: math.Trunc},
		{name: "floor", emit: (*selector).emitFloorF64, exp: math.Floor},
		{name: "ceil", emit: (*selector).emitCeilF64, exp: math.Ceil},
		{name: "roundeven", emit: (*selector).emitRoundEvenF64, exp: math.RoundToEven},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := gcn.NewProgram(gcn.GFX6, 64, gcn.HWStageCS)
			s := newSelector(p, &Options{GfxLevel: gcn.GFX6, WaveSize: 64}, &ir.Shader{Stage: ir.StageCompute}, nil, tlog.Span{})
			blk := p.CreateBlock()
			s.setBlock(blk)
			src, dst := p.NewTemp(gcn.V2), p.NewTemp(gcn.V2)
			tc.emit(s, dst, src)

			for _, x := range inputs {
				raw := math.Float64bits(x)
				l := lane{src.ID(): {uint32(raw), uint32(raw >> 32)}}
				l.run(t, blk.Instructions)
				got := math.Float64frombits(uint64(l[dst.ID()][0]) | uint64(l[dst.ID()][1])<<32)
				exp := tc.exp(x)
				if math.IsNaN(exp) {
					require.True(t, math.IsNaN(got), "%v", x)
					continue
				}
				require.Equal(t, math.Float64bits(exp), math.Float64bits(got), "%v: expected %v, got %v", x, exp, got)
			}
		})
	}
}

func TestVectorMemoization(t *testing.T) {
	p := gcn.NewProgram(gcn.GFX9, 64, gcn.HWStageCS)
	s := newSelector(p, &Options{GfxLevel: gcn.GFX9, WaveSize: 64}, &ir.Shader{Stage: ir.StageCompute}, nil, tlog.Span{})
	blk := p.CreateBlock()
	s.setBlock(blk)

	vec := p.NewTemp(gcn.NewRegClass(gcn.RegTypeVGPR, 3))
	s.emitSplitVector(vec, 3)
	require.Len(t, blk.Instructions, 1)
	s.emitSplitVector(vec, 3)
	require.Len(t, blk.Instructions, 1)

	e1 := s.emitExtractVector(vec, 1, gcn.V1)
	require.Equal(t, e1, s.emitExtractVector(vec, 1, gcn.V1))
	require.Equal(t, s.allocatedVec[vec.ID()][1], e1)
	require.Len(t, blk.Instructions, 1)

	a, b := s.b.VMov(gcn.OperandConst(1)), s.b.VMov(gcn.OperandConst(2))
	pair := p.NewTemp(gcn.V2)
	s.createVector(pair, a, b)
	n := len(blk.Instructions)
	require.Equal(t, b, s.emitExtractVector(pair, 1, gcn.V1))
	lo, hi := s.split2(pair)
	require.Equal(t, a, lo)
	require.Equal(t, b, hi)
	require.Len(t, blk.Instructions, n)

	// A scalar element of a vgpr vector is read back, not split again.
	uni := s.emitExtractVector(pair, 0, gcn.S1)
	require.Equal(t, gcn.S1, uni.RegClass())
	require.Equal(t, gcn.OpPAsUniform, blk.Instructions[len(blk.Instructions)-1].Opcode)
}
