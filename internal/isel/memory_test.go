package isel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"tlog.app/go/tlog"

	"github.com/wavesel/wavesel/gcn"
	"github.com/wavesel/wavesel/ir"
)

// addedOffset returns the constant part of the address o, following the moves and additions
// that built it from an input register.
func addedOffset(blk *gcn.Block, o gcn.Operand) uint32 {
	if o.IsConstant() {
		return o.Constant()
	}
	if !o.IsTemp() {
		return 0
	}
	for _, instr := range blk.Instructions {
		if len(instr.Definitions) == 0 || instr.Definitions[0].Temp() != o.Temp() {
			continue
		}
		switch name := instr.Opcode.String(); {
		case name == "s_mov_b32", name == "v_mov_b32", name == "p_parallelcopy", name == "p_create_vector":
			return addedOffset(blk, instr.Operands[0])
		case name == "s_add_u32", strings.HasPrefix(name, "v_add_") && !strings.HasPrefix(name, "v_addc"):
			return addedOffset(blk, instr.Operands[0]) + addedOffset(blk, instr.Operands[1])
		}
		return 0
	}
	return 0
}

func TestSelect_OffsetOverflow(t *testing.T) {
	for _, tc := range []struct {
		name string
		gfx  gcn.GfxLevel
		emit func(s *selector) gcn.Opcode
		// offset returns the register and immediate parts of the address of instr.
		offset   func(instr *gcn.Instruction) (gcn.Operand, uint32)
		expected uint32
	}{
		{
			name: "smem gfx7",
			gfx:  gcn.GFX7,
			emit: func(s *selector) gcn.Opcode {
				s.emitSMEMLoad(s.prog.NewTemp(gcn.S2), false, gcn.TempInvalid, 0x404, s.prog.NewTemp(gcn.S1), memFlags{})
				return gcn.OpSLoadDword
			},
			offset:   smemOffset,
			expected: 0x404,
		},
		{
			name: "smem gfx7 register offset",
			gfx:  gcn.GFX7,
			emit: func(s *selector) gcn.Opcode {
				s.emitSMEMLoad(s.prog.NewTemp(gcn.S2), false, s.prog.NewTemp(gcn.S1), 0x10, s.prog.NewTemp(gcn.S1), memFlags{})
				return gcn.OpSLoadDword
			},
			offset:   smemOffset,
			expected: 0x10,
		},
		{
			name: "smem gfx9",
			gfx:  gcn.GFX9,
			emit: func(s *selector) gcn.Opcode {
				s.emitSMEMLoad(s.prog.NewTemp(gcn.S4), true, gcn.TempInvalid, 0x100008, s.prog.NewTemp(gcn.S2), memFlags{})
				return gcn.OpSBufferLoadDwordx2
			},
			offset:   smemOffset,
			expected: 0x100008,
		},
		{
			name: "mubuf constant",
			gfx:  gcn.GFX9,
			emit: func(s *selector) gcn.Opcode {
				s.emitLoad(s.bufferAccess(s.prog.NewTemp(gcn.S4), gcn.TempInvalid, 0x1004, 4, 4, 4, memFlags{}), s.prog.NewTemp(gcn.V1))
				return gcn.OpBufferLoadDword
			},
			offset:   mubufOffset,
			expected: 0x1004,
		},
		{
			name: "mubuf vgpr offset",
			gfx:  gcn.GFX8,
			emit: func(s *selector) gcn.Opcode {
				s.emitLoad(s.bufferAccess(s.prog.NewTemp(gcn.S4), s.prog.NewTemp(gcn.V1), 0x2008, 8, 4, 4, memFlags{}), s.prog.NewTemp(gcn.V2))
				return gcn.OpBufferLoadDwordx2
			},
			offset:   mubufOffset,
			expected: 0x2008,
		},
		{
			name: "ds",
			gfx:  gcn.GFX9,
			emit: func(s *selector) gcn.Opcode {
				s.emitLoad(s.sharedAccess(s.prog.NewTemp(gcn.V1), 0x10004, 4, 4, 4), s.prog.NewTemp(gcn.V1))
				return gcn.OpDsReadB32
			},
			offset:   dsOffset,
			expected: 0x10004,
		},
		{
			name: "ds pair",
			gfx:  gcn.GFX9,
			emit: func(s *selector) gcn.Opcode {
				s.emitLoad(s.sharedAccess(s.prog.NewTemp(gcn.V1), 0x1000, 8, 4, 4), s.prog.NewTemp(gcn.V2))
				return gcn.OpDsRead2B32
			},
			offset:   dsOffset,
			expected: 0x1000,
		},
		{
			name: "flat",
			gfx:  gcn.GFX8,
			emit: func(s *selector) gcn.Opcode {
				s.emitLoad(s.globalAccess(s.prog.NewTemp(gcn.V2), 0x10, 4, 4, 4, memFlags{}), s.prog.NewTemp(gcn.V1))
				return gcn.OpFlatLoadDword
			},
			offset:   globalOffset,
			expected: 0x10,
		},
		{
			name: "global",
			gfx:  gcn.GFX10,
			emit: func(s *selector) gcn.Opcode {
				s.emitLoad(s.globalAccess(s.prog.NewTemp(gcn.V2), 0x1804, 4, 4, 4, memFlags{}), s.prog.NewTemp(gcn.V1))
				return gcn.OpGlobalLoadDword
			},
			offset:   globalOffset,
			expected: 0x1804,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := gcn.NewProgram(tc.gfx, 64, gcn.HWStageCS)
			s := newSelector(p, &Options{GfxLevel: tc.gfx, WaveSize: 64}, &ir.Shader{Stage: ir.StageCompute}, nil, tlog.Span{})
			blk := p.CreateBlock()
			s.setBlock(blk)

			op := tc.emit(s)
			var access *gcn.Instruction
			for _, instr := range blk.Instructions {
				if instr.Opcode == op {
					require.Nil(t, access, "more than one %s", op)
					access = instr
				}
			}
			require.NotNil(t, access, "no %s in\n%s", op, p.Format())

			reg, imm := tc.offset(access)
			require.Equal(t, tc.expected, addedOffset(blk, reg)+imm, p.Format())
		})
	}
}

func smemOffset(instr *gcn.Instruction) (gcn.Operand, uint32) {
	return instr.Operands[1], 0
}

func mubufOffset(instr *gcn.Instruction) (gcn.Operand, uint32) {
	reg := instr.Operands[1]
	if !instr.Mem.Offen {
		reg = instr.Operands[2]
	}
	return reg, uint32(instr.Mem.Offset)
}

func dsOffset(instr *gcn.Instruction) (gcn.Operand, uint32) {
	if instr.Opcode == gcn.OpDsRead2B32 {
		return instr.Operands[0], uint32(instr.Mem.Offset0) * 4
	}
	return instr.Operands[0], uint32(instr.Mem.Offset)
}

func globalOffset(instr *gcn.Instruction) (gcn.Operand, uint32) {
	return instr.Operands[0], uint32(instr.Mem.Offset)
}
