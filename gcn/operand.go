package gcn

import (
	"fmt"
	"strings"
)

type operandKind byte

const (
	operandKindTemp operandKind = iota
	operandKindConstant
	operandKindUndefined
)

// Operand is a use of a Temp, a constant, or an undefined value of some class.
type Operand struct {
	kind     operandKind
	temp     Temp
	constant uint64
	reg      PhysReg
	fixed    bool
	lateKill bool
	killHint bool
}

// OperandTemp returns an Operand reading t.
func OperandTemp(t Temp) Operand {
	if !t.Valid() {
		return OperandUndef(t.RegClass())
	}
	return Operand{kind: operandKindTemp, temp: t}
}

// OperandConst returns a 32-bit constant.
func OperandConst(v uint32) Operand {
	return Operand{kind: operandKindConstant, temp: NewTemp(0, S1), constant: uint64(v)}
}

// OperandConst64 returns a 64-bit constant.
func OperandConst64(v uint64) Operand {
	return Operand{kind: operandKindConstant, temp: NewTemp(0, S2), constant: v}
}

// OperandConstSized returns a constant occupying the given number of bytes (1, 2, 4 or 8).
func OperandConstSized(v uint64, bytes int) Operand {
	switch bytes {
	case 1:
		return Operand{kind: operandKindConstant, temp: NewTemp(0, V1B), constant: v & 0xff}
	case 2:
		return Operand{kind: operandKindConstant, temp: NewTemp(0, V2B), constant: v & 0xffff}
	case 4:
		return OperandConst(uint32(v))
	case 8:
		return OperandConst64(v)
	default:
		panic(fmt.Sprintf("BUG: invalid constant size %d", bytes))
	}
}

// OperandUndef returns an undefined Operand of the given class.
func OperandUndef(rc RegClass) Operand {
	return Operand{kind: operandKindUndefined, temp: NewTemp(0, rc)}
}

// OperandReg returns an Operand reading a physical register that has no Temp, such as exec or m0.
func OperandReg(reg PhysReg, rc RegClass) Operand {
	return Operand{kind: operandKindTemp, temp: NewTemp(0, rc), reg: reg, fixed: true}
}

// IsTemp reports whether the Operand reads a Temp.
func (o Operand) IsTemp() bool { return o.kind == operandKindTemp && o.temp.Valid() }

// IsConstant reports whether the Operand is a constant.
func (o Operand) IsConstant() bool { return o.kind == operandKindConstant }

// IsUndefined reports whether the Operand is undefined.
func (o Operand) IsUndefined() bool { return o.kind == operandKindUndefined }

// Temp returns the Temp, which is invalid for constants and undefined operands.
func (o Operand) Temp() Temp {
	if o.kind != operandKindTemp {
		return NewTemp(0, o.temp.RegClass())
	}
	return o.temp
}

// TempID returns the id of the Temp, zero if none.
func (o Operand) TempID() uint32 { return o.Temp().ID() }

// RegClass returns the register class of the Operand.
func (o Operand) RegClass() RegClass { return o.temp.RegClass() }

// Size returns the size in dwords.
func (o Operand) Size() int { return o.temp.RegClass().Size() }

// Bytes returns the size in bytes.
func (o Operand) Bytes() int { return o.temp.RegClass().Bytes() }

// Constant returns the low 32 bits of a constant.
func (o Operand) Constant() uint32 { return uint32(o.constant) }

// Constant64 returns the constant value.
func (o Operand) Constant64() uint64 { return o.constant }

// ConstantEquals reports whether o is the constant v.
func (o Operand) ConstantEquals(v uint64) bool { return o.IsConstant() && o.constant == v }

// IsFixed reports whether the Operand must be placed in a specific register.
func (o Operand) IsFixed() bool { return o.fixed }

// PhysReg returns the fixed register.
func (o Operand) PhysReg() PhysReg { return o.reg }

// Fixed returns a copy of o fixed to reg.
func (o Operand) Fixed(reg PhysReg) Operand {
	o.fixed, o.reg = true, reg
	return o
}

// LateKill returns a copy of o that stays live until after the definitions are written.
func (o Operand) LateKill() Operand {
	o.lateKill = true
	return o
}

// IsLateKill reports whether the Operand is late-kill.
func (o Operand) IsLateKill() bool { return o.lateKill }

// KillHint returns a copy of o marked as the last use of its Temp.
func (o Operand) KillHint() Operand {
	o.killHint = true
	return o
}

// IsKillHint reports whether the Operand is marked as a last use.
func (o Operand) IsKillHint() bool { return o.killHint }

// IsLiteral reports whether the constant cannot be encoded inline and needs a literal dword.
func (o Operand) IsLiteral() bool {
	if !o.IsConstant() {
		return false
	}
	v := o.constant
	if o.Bytes() == 8 {
		return !inlineConstant64(v)
	}
	return !inlineConstant32(uint32(v))
}

func inlineConstant32(v uint32) bool {
	if int32(v) >= -16 && int32(v) <= 64 {
		return true
	}
	switch v {
	case 0x3f000000, 0xbf000000, 0x3f800000, 0xbf800000,
		0x40000000, 0xc0000000, 0x40800000, 0xc0800000, 0x3e22f983:
		return true
	}
	return false
}

func inlineConstant64(v uint64) bool {
	if int64(v) >= -16 && int64(v) <= 64 {
		return true
	}
	switch v {
	case 0x3fe0000000000000, 0xbfe0000000000000, 0x3ff0000000000000, 0xbff0000000000000,
		0x4000000000000000, 0xc000000000000000, 0x4010000000000000, 0xc010000000000000:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (o Operand) String() string {
	var sb strings.Builder
	switch {
	case o.IsConstant():
		if o.Bytes() == 8 {
			fmt.Fprintf(&sb, "0x%x", o.constant)
		} else if o.constant <= 64 {
			fmt.Fprintf(&sb, "%d", o.constant)
		} else {
			fmt.Fprintf(&sb, "0x%x", o.constant)
		}
		if o.Bytes() < 4 {
			fmt.Fprintf(&sb, ":%s", o.RegClass())
		}
		return sb.String()
	case o.IsUndefined():
		return "undef:" + o.RegClass().String()
	case o.IsTemp():
		sb.WriteString(o.temp.String())
	default:
		sb.WriteString(o.RegClass().String())
	}
	if o.fixed {
		sb.WriteString(":")
		sb.WriteString(o.reg.String())
	}
	if o.lateKill {
		sb.WriteString("(latekill)")
	}
	return sb.String()
}

// Definition is the write of an instruction.
type Definition struct {
	temp    Temp
	reg     PhysReg
	fixed   bool
	hint    bool
	precise bool
}

// Def returns a Definition writing t.
func Def(t Temp) Definition { return Definition{temp: t} }

// DefReg returns a Definition of a physical register with no Temp, such as a clobbered scc.
func DefReg(reg PhysReg, rc RegClass) Definition {
	return Definition{temp: NewTemp(0, rc), reg: reg, fixed: true}
}

// Temp returns the written Temp.
func (d Definition) Temp() Temp { return d.temp }

// TempID returns the id of the written Temp.
func (d Definition) TempID() uint32 { return d.temp.ID() }

// IsTemp reports whether the Definition writes a Temp.
func (d Definition) IsTemp() bool { return d.temp.Valid() }

// RegClass returns the class of the written value.
func (d Definition) RegClass() RegClass { return d.temp.RegClass() }

// Size returns the size in dwords.
func (d Definition) Size() int { return d.temp.Size() }

// Fixed returns a copy of d fixed to reg.
func (d Definition) Fixed(reg PhysReg) Definition {
	d.fixed, d.reg = true, reg
	return d
}

// Hint returns a copy of d with an allocation hint.
func (d Definition) Hint(reg PhysReg) Definition {
	d.hint, d.reg = true, reg
	return d
}

// Precise returns a copy of d that later passes must not reassociate.
func (d Definition) Precise() Definition {
	d.precise = true
	return d
}

// IsFixed reports whether the Definition is fixed to a register.
func (d Definition) IsFixed() bool { return d.fixed }

// HasHint reports whether the Definition carries an allocation hint.
func (d Definition) HasHint() bool { return d.hint }

// IsPrecise reports whether the Definition is precise.
func (d Definition) IsPrecise() bool { return d.precise }

// PhysReg returns the fixed or hinted register.
func (d Definition) PhysReg() PhysReg { return d.reg }

// String implements fmt.Stringer.
func (d Definition) String() string {
	var s string
	if d.IsTemp() {
		s = d.temp.String()
	} else {
		s = d.RegClass().String()
	}
	switch {
	case d.fixed:
		s += ":" + d.reg.String()
	case d.hint:
		s += "(" + d.reg.String() + ")"
	}
	return s
}
