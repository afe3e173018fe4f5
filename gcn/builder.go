package gcn

import (
	"fmt"

	"github.com/wavesel/wavesel/internal/iselapi"
)

// Builder appends instructions to a block of a Program.
type Builder struct {
	Program *Program
	block   *Block
}

// NewBuilder returns a Builder appending to blk.
func NewBuilder(p *Program, blk *Block) *Builder {
	return &Builder{Program: p, block: blk}
}

// Block returns the block instructions are appended to.
func (b *Builder) Block() *Block { return b.block }

// Reset makes the Builder append to blk.
func (b *Builder) Reset(blk *Block) { b.block = blk }

// LaneMask returns the class of a per-lane boolean.
func (b *Builder) LaneMask() RegClass { return b.Program.LaneMask }

// Tmp allocates a Temp of the given class.
func (b *Builder) Tmp(rc RegClass) Temp { return b.Program.NewTemp(rc) }

// Def returns a Definition of a fresh Temp.
func (b *Builder) Def(rc RegClass) Definition { return Def(b.Program.NewTemp(rc)) }

// DefFixed returns a Definition of a fresh Temp fixed to reg.
func (b *Builder) DefFixed(rc RegClass, reg PhysReg) Definition {
	return Def(b.Program.NewTemp(rc)).Fixed(reg)
}

// SCCDef returns a Definition of a fresh s1 Temp fixed to scc.
func (b *Builder) SCCDef() Definition { return b.DefFixed(S1, SCC) }

// OperandSCC returns an Operand reading t from scc.
func OperandSCC(t Temp) Operand { return OperandTemp(t).Fixed(SCC) }

// Exec returns an Operand reading the execution mask.
func (b *Builder) Exec() Operand { return OperandReg(Exec, b.Program.LaneMask) }

// ExecDef returns a Definition writing the execution mask.
func (b *Builder) ExecDef() Definition { return DefReg(Exec, b.Program.LaneMask) }

var waveOps = map[Opcode]Opcode{
	OpSMovB64:          OpSMovB32,
	OpSAndB64:          OpSAndB32,
	OpSAndn2B64:        OpSAndn2B32,
	OpSOrB64:           OpSOrB32,
	OpSOrn2B64:         OpSOrn2B32,
	OpSXorB64:          OpSXorB32,
	OpSXnorB64:         OpSXnorB32,
	OpSNotB64:          OpSNotB32,
	OpSWqmB64:          OpSWqmB32,
	OpSBcnt1I32B64:     OpSBcnt1I32B32,
	OpSCselectB64:      OpSCselectB32,
	OpSBitcmp1B64:      OpSBitcmp1B32,
	OpSBitcmp0B64:      OpSBitcmp0B32,
	OpSFf1I32B64:       OpSFf1I32B32,
	OpSFlbitI32B64:     OpSFlbitI32B32,
	OpSAndSaveexecB64:  OpSAndSaveexecB32,
	OpSOrSaveexecB64:   OpSOrSaveexecB32,
	OpSLshlB64:         OpSLshlB32,
	OpSLshrB64:         OpSLshrB32,
	OpSBfmB64:          OpSBfmB32,
	OpSCmpLgU64:        OpSCmpLgU32,
	OpSCmpEqU64:        OpSCmpEqU32,
	OpVMbcntHiU32B32:   OpVMbcntLoU32B32,
}

// LaneOp returns the wave32 form of a 64-bit lane-mask opcode when the program runs in wave32.
func (b *Builder) LaneOp(op64 Opcode) Opcode {
	if b.Program.WaveSize == 64 {
		return op64
	}
	op32, ok := waveOps[op64]
	if !ok {
		panic("BUG: " + op64.String() + " has no wave32 form")
	}
	return op32
}

// Create allocates an instruction with the given arity without inserting it.
func (b *Builder) Create(op Opcode, f Format, numOps, numDefs int) *Instruction {
	f.CheckArity(numOps, numDefs)
	instr := b.Program.newInstruction()
	instr.Opcode = op
	instr.Format = f
	instr.Operands = make([]Operand, numOps)
	instr.Definitions = make([]Definition, numDefs)
	return instr
}

// Insert appends instr to the current block.
func (b *Builder) Insert(instr *Instruction) *Instruction {
	if iselapi.ValidationEnabled {
		b.validate(instr)
	}
	b.block.Instructions = append(b.block.Instructions, instr)
	return instr
}

// InsertPhi inserts a phi after the phis already at the start of the current block.
func (b *Builder) InsertPhi(instr *Instruction) *Instruction {
	if !instr.IsPhi() {
		panic("BUG: InsertPhi called with " + instr.Opcode.String())
	}
	if iselapi.ValidationEnabled {
		b.validate(instr)
	}
	instrs := b.block.Instructions
	at := 0
	for at < len(instrs) && instrs[at].IsPhi() {
		at++
	}
	instrs = append(instrs, nil)
	copy(instrs[at+1:], instrs[at:])
	instrs[at] = instr
	b.block.Instructions = instrs
	return instr
}

func (b *Builder) validate(instr *Instruction) {
	instr.Format.CheckArity(len(instr.Operands), len(instr.Definitions))
	for i, o := range instr.Operands {
		if o.IsTemp() {
			if rc := b.Program.TempRegClass(o.TempID()); rc != o.RegClass() {
				panic(fmt.Sprintf("BUG: %s operand %d is %s but %%%d was allocated as %s", instr.Opcode, i, o.RegClass(), o.TempID(), rc))
			}
		}
	}
	for i, d := range instr.Definitions {
		if d.IsTemp() {
			if rc := b.Program.TempRegClass(d.TempID()); rc != d.RegClass() {
				panic(fmt.Sprintf("BUG: %s definition %d is %s but %%%d was allocated as %s", instr.Opcode, i, d.RegClass(), d.TempID(), rc))
			}
		}
	}
}

// InstrFormat builds and inserts an instruction with an explicit format.
func (b *Builder) InstrFormat(op Opcode, f Format, defs []Definition, ops []Operand) *Instruction {
	instr := b.Create(op, f, len(ops), len(defs))
	copy(instr.Operands, ops)
	copy(instr.Definitions, defs)
	return b.Insert(instr)
}

// Instr builds and inserts an instruction in the default format of op.
func (b *Builder) Instr(op Opcode, defs []Definition, ops ...Operand) *Instruction {
	return b.InstrFormat(op, op.Format(), defs, ops)
}

// Pseudo inserts a pseudo instruction.
func (b *Builder) Pseudo(op Opcode, defs []Definition, ops ...Operand) *Instruction {
	if !op.Format().IsPseudo() {
		panic("BUG: " + op.String() + " is not a pseudo instruction")
	}
	return b.Instr(op, defs, ops...)
}

func (b *Builder) withSCC(op Opcode, dst Definition) []Definition {
	if op.WritesSCC() {
		return []Definition{dst, b.SCCDef()}
	}
	return []Definition{dst}
}

// SOP1 inserts a SOP1 instruction, adding the scc clobber when op writes it.
func (b *Builder) SOP1(op Opcode, dst Definition, src ...Operand) *Instruction {
	return b.InstrFormat(op, FormatSOP1, b.withSCC(op, dst), src)
}

// SOP2 inserts a SOP2 instruction, adding the scc clobber when op writes it.
func (b *Builder) SOP2(op Opcode, dst Definition, srcs ...Operand) *Instruction {
	return b.InstrFormat(op, FormatSOP2, b.withSCC(op, dst), srcs)
}

// SOPC inserts a scalar comparison writing a fresh s1 in scc.
func (b *Builder) SOPC(op Opcode, src0, src1 Operand) *Instruction {
	return b.InstrFormat(op, FormatSOPC, []Definition{b.SCCDef()}, []Operand{src0, src1})
}

// SOPK inserts a SOPK instruction.
func (b *Builder) SOPK(op Opcode, dst Definition, imm uint16) *Instruction {
	instr := b.Create(op, FormatSOPK, 0, 1)
	instr.Definitions[0] = dst
	instr.Imm = uint32(imm)
	return b.Insert(instr)
}

// SOPP inserts a SOPP instruction.
func (b *Builder) SOPP(op Opcode, imm uint32, ops ...Operand) *Instruction {
	instr := b.Create(op, FormatSOPP, len(ops), 0)
	copy(instr.Operands, ops)
	instr.Imm = imm
	return b.Insert(instr)
}

// VOP1 inserts a VOP1 instruction.
func (b *Builder) VOP1(op Opcode, dst Definition, src Operand) *Instruction {
	return b.InstrFormat(op, FormatVOP1, []Definition{dst}, []Operand{src})
}

// VOP2 inserts a VOP2 instruction. A lane-mask carry-out hinted to vcc is added when op writes
// one. Opcodes reading a lane mask take it as the third operand.
func (b *Builder) VOP2(op Opcode, dst Definition, src0, src1 Operand, extra ...Operand) *Instruction {
	defs := []Definition{dst}
	if op.HasCarryOut() {
		defs = append(defs, b.Def(b.Program.LaneMask).Hint(VCC))
	}
	ops := append([]Operand{src0, src1}, extra...)
	if len(extra) > 0 && !op.ReadsVCC() {
		panic("BUG: " + op.String() + " takes two operands")
	}
	for i := range extra {
		if extra[i].IsTemp() {
			extra[i] = extra[i].Fixed(VCC)
			ops[2+i] = extra[i]
		}
	}
	return b.InstrFormat(op, FormatVOP2, defs, ops)
}

// VOP3 inserts op in the VOP3 encoding.
func (b *Builder) VOP3(op Opcode, dst Definition, srcs ...Operand) *Instruction {
	return b.VOP3Defs(op, []Definition{dst}, srcs...)
}

// VOP3Defs inserts op in the VOP3 encoding with explicit definitions.
func (b *Builder) VOP3Defs(op Opcode, defs []Definition, srcs ...Operand) *Instruction {
	if !op.CanUseVOP3(b.Program.GfxLevel) {
		panic("BUG: " + op.String() + " has no VOP3 encoding")
	}
	f := op.Format()
	if !f.Has(FormatVOP3) {
		f = f.AsVOP3()
	}
	return b.InstrFormat(op, f, defs, srcs)
}

// VOPC inserts a vector comparison. The lane-mask result is hinted to vcc.
func (b *Builder) VOPC(op Opcode, dst Definition, src0, src1 Operand) *Instruction {
	return b.InstrFormat(op, FormatVOPC, []Definition{dst.Hint(VCC)}, []Operand{src0, src1})
}

// VOP1DPP inserts a VOP1 instruction reading its source through a DPP lane pattern.
func (b *Builder) VOP1DPP(op Opcode, dst Definition, src Operand, ctrl DPPCtrl, rowMask, bankMask uint8, boundCtrl bool) *Instruction {
	instr := b.Create(op, FormatVOP1|FormatDPP, 1, 1)
	instr.Definitions[0], instr.Operands[0] = dst, src
	instr.DPP = DPPInfo{Ctrl: ctrl, RowMask: rowMask, BankMask: bankMask, BoundCtrl: boundCtrl}
	return b.Insert(instr)
}

// VOP2DPP inserts a VOP2 instruction reading its first source through a DPP lane pattern.
func (b *Builder) VOP2DPP(op Opcode, dst Definition, src0, src1 Operand, ctrl DPPCtrl, rowMask, bankMask uint8, boundCtrl bool) *Instruction {
	instr := b.Create(op, FormatVOP2|FormatDPP, 2, 1)
	instr.Definitions[0] = dst
	instr.Operands[0], instr.Operands[1] = src0, src1
	instr.DPP = DPPInfo{Ctrl: ctrl, RowMask: rowMask, BankMask: bankMask, BoundCtrl: boundCtrl}
	return b.Insert(instr)
}

// VINTRP inserts an interpolation instruction.
func (b *Builder) VINTRP(op Opcode, dst Definition, attribute, component uint8, srcs ...Operand) *Instruction {
	instr := b.Create(op, FormatVINTRP, len(srcs), 1)
	instr.Definitions[0] = dst
	copy(instr.Operands, srcs)
	instr.Interp = InterpInfo{Attribute: attribute, Component: component}
	return b.Insert(instr)
}

// Copy inserts a parallel copy of src into dst.
func (b *Builder) Copy(dst Definition, src Operand) *Instruction {
	return b.Pseudo(OpPParallelcopy, []Definition{dst}, src)
}

// CopyTmp copies src into a fresh Temp of class rc.
func (b *Builder) CopyTmp(src Operand, rc RegClass) Temp {
	return b.Copy(b.Def(rc), src).Result()
}

// AsUniform reads src from the first active lane into an sgpr of the same size.
func (b *Builder) AsUniform(src Operand) Temp {
	if src.RegClass().Type() == RegTypeSGPR {
		return b.CopyTmp(src, src.RegClass())
	}
	return b.Pseudo(OpPAsUniform, []Definition{b.Def(NewRegClass(RegTypeSGPR, src.Size()))}, src).Result()
}

// CreateVector concatenates ops into dst.
func (b *Builder) CreateVector(dst Definition, ops ...Operand) *Instruction {
	bytes := 0
	for _, o := range ops {
		bytes += o.Bytes()
	}
	if bytes != dst.RegClass().Bytes() {
		panic(fmt.Sprintf("BUG: p_create_vector of %d bytes into %s", bytes, dst.RegClass()))
	}
	return b.Pseudo(OpPCreateVector, []Definition{dst}, ops...)
}

// SplitVector splits src into defs.
func (b *Builder) SplitVector(defs []Definition, src Operand) *Instruction {
	bytes := 0
	for _, d := range defs {
		bytes += d.RegClass().Bytes()
	}
	if bytes != src.Bytes() {
		panic(fmt.Sprintf("BUG: p_split_vector of %s into %d bytes", src.RegClass(), bytes))
	}
	return b.Pseudo(OpPSplitVector, defs, src)
}

// ExtractVector extracts the idx-th element of size dst from src.
func (b *Builder) ExtractVector(dst Definition, src Operand, idx uint32) *Instruction {
	return b.Pseudo(OpPExtractVector, []Definition{dst}, src, OperandConst(idx))
}

// Branch inserts a pseudo branch. Conditional branches take the condition as the only operand.
func (b *Builder) Branch(op Opcode, taken, fall int, cond ...Operand) *Instruction {
	instr := b.Create(op, FormatPseudoBranch, len(cond), 0)
	copy(instr.Operands, cond)
	instr.Targets = [2]int{taken, fall}
	return b.Insert(instr)
}

// Barrier inserts a memory barrier pseudo instruction.
func (b *Builder) Barrier(op Opcode) *Instruction {
	return b.Insert(b.Create(op, FormatPseudoBarrier, 0, 0))
}

// VMov copies src into a fresh v1.
func (b *Builder) VMov(src Operand) Temp {
	return b.VOP1(OpVMovB32, b.Def(V1), src).Result()
}

// AsVGPR returns src as a vgpr Temp of the same size, copying when it is scalar or constant.
func (b *Builder) AsVGPR(src Operand) Temp {
	if src.IsTemp() && src.RegClass().Type() == RegTypeVGPR {
		return src.Temp()
	}
	return b.CopyTmp(src, src.RegClass().AsVGPR())
}

// VAdd32 inserts a 32-bit vector add. The carry-out is only produced when asked for or when the
// generation has no carry-less add.
func (b *Builder) VAdd32(dst Definition, src0, src1 Operand, carryOut bool) *Instruction {
	if src1.RegClass().Type() != RegTypeVGPR || !src1.IsTemp() {
		src0, src1 = src1, src0
	}
	if src1.RegClass().Type() != RegTypeVGPR || !src1.IsTemp() {
		src1 = OperandTemp(b.AsVGPR(src1))
	}
	if b.Program.GfxLevel >= GFX9 && !carryOut {
		return b.VOP2(OpVAddU32, dst, src0, src1)
	}
	return b.VOP2(OpVAddCoU32, dst, src0, src1)
}

// VSub32 inserts a 32-bit vector subtraction src0 - src1.
func (b *Builder) VSub32(dst Definition, src0, src1 Operand, carryOut bool) *Instruction {
	useCarry := b.Program.GfxLevel < GFX9 || carryOut
	if src1.RegClass().Type() != RegTypeVGPR || !src1.IsTemp() {
		if src0.IsTemp() && src0.RegClass().Type() == RegTypeVGPR {
			op := OpVSubrevU32
			if useCarry {
				op = OpVSubrevCoU32
			}
			return b.VOP2(op, dst, src1, src0)
		}
		src1 = OperandTemp(b.AsVGPR(src1))
	}
	op := OpVSubU32
	if useCarry {
		op = OpVSubCoU32
	}
	return b.VOP2(op, dst, src0, src1)
}
