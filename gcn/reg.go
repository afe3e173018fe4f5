package gcn

import (
	"fmt"
	"strconv"
)

// RegType is the register file a value lives in.
type RegType byte

const (
	RegTypeSGPR RegType = iota
	RegTypeVGPR
)

// String implements fmt.Stringer.
func (r RegType) String() string {
	switch r {
	case RegTypeSGPR:
		return "sgpr"
	case RegTypeVGPR:
		return "vgpr"
	default:
		panic(int(r))
	}
}

// RegClass describes the bank and size of a value.
//
// The lower five bits hold the size: in dwords for ordinary classes and in bytes for
// sub-dword classes. Scalar classes are always linear.
type RegClass uint8

const (
	regClassSizeMask  RegClass = 0x1f
	regClassVGPRBit   RegClass = 1 << 5
	regClassLinearBit RegClass = 1 << 6
	regClassSubdword  RegClass = 1 << 7
)

const (
	RegClassInvalid RegClass = 0

	S1  RegClass = 1
	S2  RegClass = 2
	S3  RegClass = 3
	S4  RegClass = 4
	S6  RegClass = 6
	S8  RegClass = 8
	S16 RegClass = 16

	V1 RegClass = regClassVGPRBit | 1
	V2 RegClass = regClassVGPRBit | 2
	V3 RegClass = regClassVGPRBit | 3
	V4 RegClass = regClassVGPRBit | 4
	V5 RegClass = regClassVGPRBit | 5
	V6 RegClass = regClassVGPRBit | 6
	V7 RegClass = regClassVGPRBit | 7
	V8 RegClass = regClassVGPRBit | 8

	V1B RegClass = regClassVGPRBit | regClassSubdword | 1
	V2B RegClass = regClassVGPRBit | regClassSubdword | 2
	V3B RegClass = regClassVGPRBit | regClassSubdword | 3
	V6B RegClass = regClassVGPRBit | regClassSubdword | 6

	LinearV1 RegClass = regClassLinearBit | V1
	LinearV2 RegClass = regClassLinearBit | V2
)

// NewRegClass returns the class of the given type and dword size.
func NewRegClass(t RegType, size int) RegClass {
	if size <= 0 || size > int(regClassSizeMask) {
		panic(fmt.Sprintf("BUG: invalid register class size %d", size))
	}
	if t == RegTypeVGPR {
		return regClassVGPRBit | RegClass(size)
	}
	return RegClass(size)
}

// NewSubdwordRegClass returns the vgpr class holding the given number of bytes.
// Sizes that are a multiple of four produce an ordinary dword class.
func NewSubdwordRegClass(bytes int) RegClass {
	if bytes%4 == 0 {
		return NewRegClass(RegTypeVGPR, bytes/4)
	}
	return regClassVGPRBit | regClassSubdword | RegClass(bytes)
}

// Type returns the register file.
func (rc RegClass) Type() RegType {
	if rc&regClassVGPRBit != 0 {
		return RegTypeVGPR
	}
	return RegTypeSGPR
}

// IsSubdword reports whether the class is measured in bytes.
func (rc RegClass) IsSubdword() bool { return rc&regClassSubdword != 0 }

// IsLinear reports whether the value is live across the linear CFG. Scalar values always are.
func (rc RegClass) IsLinear() bool {
	return rc.Type() == RegTypeSGPR || rc&regClassLinearBit != 0
}

// Bytes returns the size in bytes.
func (rc RegClass) Bytes() int {
	if rc.IsSubdword() {
		return int(rc & regClassSizeMask)
	}
	return int(rc&regClassSizeMask) * 4
}

// Size returns the number of dwords the class occupies, rounding sub-dword classes up.
func (rc RegClass) Size() int {
	if rc.IsSubdword() {
		return (rc.Bytes() + 3) / 4
	}
	return int(rc & regClassSizeMask)
}

// AsLinear returns the linear form of a vgpr class.
func (rc RegClass) AsLinear() RegClass {
	if rc.Type() == RegTypeSGPR {
		return rc
	}
	return rc | regClassLinearBit
}

// AsVGPR returns the vgpr class of the same byte size.
func (rc RegClass) AsVGPR() RegClass {
	return NewSubdwordRegClass(rc.Bytes())
}

// String implements fmt.Stringer.
func (rc RegClass) String() string {
	if rc == RegClassInvalid {
		return "invalid"
	}
	var prefix string
	switch {
	case rc.Type() == RegTypeSGPR:
		prefix = "s"
	case rc&regClassLinearBit != 0:
		prefix = "lv"
	default:
		prefix = "v"
	}
	if rc.IsSubdword() {
		return "v" + strconv.Itoa(rc.Bytes()) + "b"
	}
	return prefix + strconv.Itoa(rc.Size())
}

// Temp is an SSA value of the target program. The lower 32 bits hold the id and the
// next 8 bits the register class. The zero id is never allocated, so the zero Temp is invalid.
type Temp uint64

// TempInvalid is the Temp that no definition produces.
const TempInvalid Temp = 0

// NewTemp returns the Temp with the given id and class.
func NewTemp(id uint32, rc RegClass) Temp {
	return Temp(id) | Temp(rc)<<32
}

// ID returns the id.
func (t Temp) ID() uint32 { return uint32(t) }

// RegClass returns the register class.
func (t Temp) RegClass() RegClass { return RegClass(t >> 32) }

// Type returns the register file.
func (t Temp) Type() RegType { return t.RegClass().Type() }

// Size returns the size in dwords.
func (t Temp) Size() int { return t.RegClass().Size() }

// Bytes returns the size in bytes.
func (t Temp) Bytes() int { return t.RegClass().Bytes() }

// Valid reports whether the Temp refers to a definition.
func (t Temp) Valid() bool { return t.ID() != 0 }

// String implements fmt.Stringer.
func (t Temp) String() string {
	return fmt.Sprintf("%%%d:%s", t.ID(), t.RegClass())
}

// PhysReg is a physical register number. SGPRs and special registers use
// 0 to 255, VGPRs start at 256.
type PhysReg uint16

const (
	VCC    PhysReg = 106
	VCCHi  PhysReg = 107
	M0     PhysReg = 124
	Exec   PhysReg = 126
	ExecHi PhysReg = 127
	SCC    PhysReg = 253
	VGPR0  PhysReg = 256
)

// SGPR returns the n-th scalar register.
func SGPR(n int) PhysReg { return PhysReg(n) }

// VGPR returns the n-th vector register.
func VGPR(n int) PhysReg { return VGPR0 + PhysReg(n) }

// String implements fmt.Stringer.
func (r PhysReg) String() string {
	switch r {
	case VCC:
		return "vcc"
	case VCCHi:
		return "vcc_hi"
	case M0:
		return "m0"
	case Exec:
		return "exec"
	case ExecHi:
		return "exec_hi"
	case SCC:
		return "scc"
	}
	if r >= VGPR0 {
		return "v" + strconv.Itoa(int(r-VGPR0))
	}
	return "s" + strconv.Itoa(int(r))
}
