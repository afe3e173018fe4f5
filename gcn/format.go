package gcn

import (
	"strconv"
	"strings"
)

// Format is the encoding family of an instruction. The low byte holds the base
// format and the upper bits mark VALU encodings, which can be combined.
type Format uint16

const (
	FormatPseudo Format = iota
	FormatSOP1
	FormatSOP2
	FormatSOPK
	FormatSOPP
	FormatSOPC
	FormatSMEM
	FormatDS
	FormatMTBUF
	FormatMUBUF
	FormatMIMG
	FormatEXP
	FormatFLAT
	FormatGLOBAL
	FormatSCRATCH
	FormatPseudoBranch
	FormatPseudoBarrier
	FormatPseudoReduction
	FormatVOP3P
	formatBaseEnd
)

const (
	FormatVOP1   Format = 1 << 8
	FormatVOP2   Format = 1 << 9
	FormatVOPC   Format = 1 << 10
	FormatVOP3   Format = 1 << 11
	FormatVINTRP Format = 1 << 12
	FormatDPP    Format = 1 << 13
	FormatSDWA   Format = 1 << 14

	formatVALUMask = FormatVOP1 | FormatVOP2 | FormatVOPC | FormatVOP3 | FormatVINTRP | FormatDPP | FormatSDWA
)

var formatNames = [...]string{
	FormatPseudo:          "PSEUDO",
	FormatSOP1:            "SOP1",
	FormatSOP2:            "SOP2",
	FormatSOPK:            "SOPK",
	FormatSOPP:            "SOPP",
	FormatSOPC:            "SOPC",
	FormatSMEM:            "SMEM",
	FormatDS:              "DS",
	FormatMTBUF:           "MTBUF",
	FormatMUBUF:           "MUBUF",
	FormatMIMG:            "MIMG",
	FormatEXP:             "EXP",
	FormatFLAT:            "FLAT",
	FormatGLOBAL:          "GLOBAL",
	FormatSCRATCH:         "SCRATCH",
	FormatPseudoBranch:    "PSEUDO_BRANCH",
	FormatPseudoBarrier:   "PSEUDO_BARRIER",
	FormatPseudoReduction: "PSEUDO_REDUCTION",
	FormatVOP3P:           "VOP3P",
}

// Base returns the format with the VALU encoding bits cleared.
func (f Format) Base() Format { return f &^ formatVALUMask }

// Has reports whether every bit of flag is set.
func (f Format) Has(flag Format) bool { return f&flag == flag }

// IsVALU reports whether the format is a vector ALU encoding.
func (f Format) IsVALU() bool { return f&formatVALUMask != 0 || f == FormatVOP3P }

// IsSALU reports whether the format is a scalar ALU encoding.
func (f Format) IsSALU() bool {
	switch f {
	case FormatSOP1, FormatSOP2, FormatSOPK, FormatSOPP, FormatSOPC:
		return true
	}
	return false
}

// IsVMEM reports whether the format accesses memory through the vector memory path.
func (f Format) IsVMEM() bool {
	switch f.Base() {
	case FormatMTBUF, FormatMUBUF, FormatMIMG:
		return true
	}
	return false
}

// IsFlatLike reports whether the format is FLAT, GLOBAL or SCRATCH.
func (f Format) IsFlatLike() bool {
	switch f.Base() {
	case FormatFLAT, FormatGLOBAL, FormatSCRATCH:
		return true
	}
	return false
}

// IsPseudo reports whether the instruction is lowered by a later pass.
func (f Format) IsPseudo() bool {
	switch f {
	case FormatPseudo, FormatPseudoBranch, FormatPseudoBarrier, FormatPseudoReduction:
		return true
	}
	return false
}

// AsVOP3 converts a VOP1, VOP2 or VOPC format into its VOP3 encoding.
func (f Format) AsVOP3() Format {
	if f&(FormatVOP1|FormatVOP2|FormatVOPC) == 0 {
		panic("BUG: " + f.String() + " has no VOP3 encoding")
	}
	return f | FormatVOP3
}

// String implements fmt.Stringer.
func (f Format) String() string {
	var parts []string
	if base := f.Base(); base != FormatPseudo || f&formatVALUMask == 0 {
		if int(base) < len(formatNames) {
			parts = append(parts, formatNames[base])
		} else {
			parts = append(parts, "?")
		}
	}
	for _, v := range []struct {
		flag Format
		name string
	}{
		{FormatVOP1, "VOP1"}, {FormatVOP2, "VOP2"}, {FormatVOPC, "VOPC"}, {FormatVOP3, "VOP3"},
		{FormatVINTRP, "VINTRP"}, {FormatDPP, "DPP"}, {FormatSDWA, "SDWA"},
	} {
		if f&v.flag != 0 {
			parts = append(parts, v.name)
		}
	}
	return strings.Join(parts, "|")
}

type arity struct {
	minOps, maxOps, minDefs, maxDefs int
}

const variadic = 1 << 10

// formatArity is the operand and definition count accepted for each base format.
var formatArity = [formatBaseEnd]arity{
	FormatPseudo:          {0, variadic, 0, variadic},
	FormatSOP1:            {0, 2, 0, 3},
	FormatSOP2:            {2, 3, 1, 2},
	FormatSOPK:            {0, 2, 0, 2},
	FormatSOPP:            {0, 2, 0, 1},
	FormatSOPC:            {2, 2, 1, 1},
	FormatSMEM:            {1, 4, 0, 1},
	FormatDS:              {1, 4, 0, 1},
	FormatMTBUF:           {3, 4, 0, 1},
	FormatMUBUF:           {3, 4, 0, 1},
	FormatMIMG:            {3, 16, 0, 1},
	FormatEXP:             {4, 4, 0, 0},
	FormatFLAT:            {2, 3, 0, 1},
	FormatGLOBAL:          {2, 3, 0, 1},
	FormatSCRATCH:         {2, 3, 0, 1},
	FormatPseudoBranch:    {0, 1, 0, 1},
	FormatPseudoBarrier:   {0, 0, 0, 0},
	FormatPseudoReduction: {3, 3, 5, 5},
	FormatVOP3P:           {2, 3, 1, 1},
}

var valuArity = arity{0, 4, 0, 2}

// CheckArity panics when numOps or numDefs is outside of what f accepts.
func (f Format) CheckArity(numOps, numDefs int) {
	if !f.arityOK(numOps, numDefs) {
		panic("BUG: invalid arity for " + f.String() + ": " + strconv.Itoa(numOps) + " operands, " + strconv.Itoa(numDefs) + " definitions")
	}
}

func (f Format) arityOK(numOps, numDefs int) bool {
	a := valuArity
	if f&formatVALUMask == 0 {
		a = formatArity[f.Base()]
	} else if f.Has(FormatVOPC) && !f.Has(FormatVOP3) {
		a = arity{2, 2, 1, 2}
	}
	return numOps >= a.minOps && numOps <= a.maxOps && numDefs >= a.minDefs && numDefs <= a.maxDefs
}
