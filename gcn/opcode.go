package gcn

import (
	"fmt"
	"strings"
)

type opcodeFlag uint8

const (
	flagWritesSCC opcodeFlag = 1 << iota
	flagReadsSCC
	flagCarryOut
	flagReadsVCC
	flagNoVOP3
	flagAtomic
)

type opcodeInfo struct {
	name   string
	format Format
	flags  opcodeFlag
}

var opcodesByName = func() map[string]Opcode {
	ret := make(map[string]Opcode, opcodeEnd)
	for op := OpInvalid + 1; op < opcodeEnd; op++ {
		ret[opcodeInfos[op].name] = op
	}
	return ret
}()

// OpcodeByName returns the opcode with the given mnemonic.
func OpcodeByName(name string) (Opcode, bool) {
	op, ok := opcodesByName[name]
	return op, ok
}

// String implements fmt.Stringer.
func (op Opcode) String() string {
	if op >= opcodeEnd {
		return fmt.Sprintf("opcode(%d)", uint16(op))
	}
	return opcodeInfos[op].name
}

// Format returns the default encoding of the opcode.
func (op Opcode) Format() Format { return opcodeInfos[op].format }

// WritesSCC reports whether the opcode clobbers scc.
func (op Opcode) WritesSCC() bool { return opcodeInfos[op].flags&flagWritesSCC != 0 }

// ReadsSCC reports whether the opcode reads scc.
func (op Opcode) ReadsSCC() bool { return opcodeInfos[op].flags&flagReadsSCC != 0 }

// HasCarryOut reports whether the VOP2 opcode writes a lane-mask carry.
func (op Opcode) HasCarryOut() bool { return opcodeInfos[op].flags&flagCarryOut != 0 }

// ReadsVCC reports whether the VOP2 opcode reads a lane mask in its VOP2 form.
func (op Opcode) ReadsVCC() bool { return opcodeInfos[op].flags&flagReadsVCC != 0 }

// IsAtomic reports whether the opcode is a read-modify-write memory operation.
func (op Opcode) IsAtomic() bool { return opcodeInfos[op].flags&flagAtomic != 0 }

// CanUseVOP3 reports whether op may be promoted to the VOP3 encoding on gfx.
func (op Opcode) CanUseVOP3(gfx GfxLevel) bool {
	f := op.Format()
	if f.Has(FormatVOP3) {
		return true
	}
	if f&(FormatVOP1|FormatVOP2|FormatVOPC) == 0 || opcodeInfos[op].flags&flagNoVOP3 != 0 {
		return false
	}
	// The VOP3 forms of the lane-access VOP1 opcodes take an sgpr lane select which
	// readfirstlane does not have.
	if op == OpVReadfirstlaneB32 && gfx < GFX10 {
		return false
	}
	return true
}

// IsCompare reports whether op is a vector comparison.
func (op Opcode) IsCompare() bool { return op.Format().Has(FormatVOPC) }

// SwappedCompare returns the comparison that gives the same result when both operands are
// exchanged: lt becomes gt and le becomes ge, symmetric relations map to themselves.
// The second result is false for opcodes that cannot be mirrored.
func (op Opcode) SwappedCompare() (Opcode, bool) {
	if !op.IsCompare() {
		return OpInvalid, false
	}
	name := op.String()
	rest := strings.TrimPrefix(name, "v_cmp_")
	i := strings.IndexByte(rest, '_')
	if i < 0 {
		return OpInvalid, false
	}
	cond, typ := rest[:i], rest[i:]
	switch cond {
	case "eq", "lg", "neq", "o", "u":
		return op, true
	case "lt":
		cond = "gt"
	case "gt":
		cond = "lt"
	case "le":
		cond = "ge"
	case "ge":
		cond = "le"
	default:
		return OpInvalid, false
	}
	swapped, ok := opcodesByName["v_cmp_"+cond+typ]
	return swapped, ok
}
