package gcn

import (
	"fmt"
	"strings"
)

// BarrierKind is the set of memory the access participates in for ordering purposes.
type BarrierKind uint8

const (
	BarrierBuffer BarrierKind = 1 << iota
	BarrierImage
	BarrierAtomic
	BarrierShared
	BarrierGSData
)

// MemInfo holds the fields of the memory formats.
type MemInfo struct {
	// Offset is the immediate offset. DS instructions with two addresses use Offset0 and Offset1.
	Offset           int32
	Offset0, Offset1 uint8
	Offen, Idxen     bool
	Addr64           bool
	GLC, DLC, SLC    bool
	// CanReorder is set when the access has no ordering constraint against other accesses.
	CanReorder bool
	// DisableWQM keeps the store from running in helper lanes.
	DisableWQM bool
	Barrier    BarrierKind
	GDS        bool
}

// ImageDim is the dimensionality of an image access.
type ImageDim uint8

const (
	ImageDim1D ImageDim = iota
	ImageDim2D
	ImageDim3D
	ImageDimCube
	ImageDim1DArray
	ImageDim2DArray
	ImageDim2DMSAA
	ImageDim2DArrayMSAA
)

var imageDimNames = [...]string{"1d", "2d", "3d", "cube", "1darray", "2darray", "2dmsaa", "2darraymsaa"}

// String implements fmt.Stringer.
func (d ImageDim) String() string { return imageDimNames[d] }

// MIMGInfo holds the fields of the image format.
type MIMGInfo struct {
	Dim   ImageDim
	DMask uint8
	// DA is set for arrays and cube maps.
	DA, Unrm, D16 bool
	GLC, SLC     bool
	DisableWQM   bool
	Barrier      BarrierKind
}

// VOP3Mods holds the source and output modifiers of VOP3 instructions.
type VOP3Mods struct {
	Neg, Abs [3]bool
	Clamp    bool
	OMod     uint8
	OpSel    uint8
}

// DPPCtrl is the lane pattern of a data-parallel-primitive read.
type DPPCtrl uint16

// DPPQuadPerm returns the control selecting lanes a, b, c, d of every quad.
func DPPQuadPerm(a, b, c, d uint8) DPPCtrl {
	return DPPCtrl(a&3 | (b&3)<<2 | (c&3)<<4 | (d&3)<<6)
}

// DPPInfo holds the fields of the DPP encoding.
type DPPInfo struct {
	Ctrl      DPPCtrl
	RowMask   uint8
	BankMask  uint8
	BoundCtrl bool
}

// ExpInfo holds the fields of the export format.
type ExpInfo struct {
	Target      uint8
	EnabledMask uint8
	Compressed  bool
	Done        bool
	ValidMask   bool
}

// Export targets.
const (
	ExpTargetMRT0  uint8 = 0
	ExpTargetMRTZ  uint8 = 8
	ExpTargetNull  uint8 = 9
	ExpTargetPos0  uint8 = 12
	ExpTargetParam uint8 = 32
)

// ReduceOp is the combining operation of a wave reduction.
type ReduceOp uint8

const (
	ReduceIAdd8 ReduceOp = iota
	ReduceIAdd16
	ReduceIAdd32
	ReduceIAdd64
	ReduceIMul8
	ReduceIMul16
	ReduceIMul32
	ReduceIMul64
	ReduceFAdd16
	ReduceFAdd32
	ReduceFAdd64
	ReduceFMul16
	ReduceFMul32
	ReduceFMul64
	ReduceIMin8
	ReduceIMin16
	ReduceIMin32
	ReduceIMin64
	ReduceIMax8
	ReduceIMax16
	ReduceIMax32
	ReduceIMax64
	ReduceUMin8
	ReduceUMin16
	ReduceUMin32
	ReduceUMin64
	ReduceUMax8
	ReduceUMax16
	ReduceUMax32
	ReduceUMax64
	ReduceFMin16
	ReduceFMin32
	ReduceFMin64
	ReduceFMax16
	ReduceFMax32
	ReduceFMax64
	ReduceIAnd8
	ReduceIAnd16
	ReduceIAnd32
	ReduceIAnd64
	ReduceIOr8
	ReduceIOr16
	ReduceIOr32
	ReduceIOr64
	ReduceIXor8
	ReduceIXor16
	ReduceIXor32
	ReduceIXor64
	reduceOpEnd
)

var reduceOpBases = [...]string{"iadd", "imul", "fadd", "fmul", "imin", "imax", "umin", "umax", "fmin", "fmax", "iand", "ior", "ixor"}

// String implements fmt.Stringer.
func (r ReduceOp) String() string {
	switch {
	case r < ReduceFAdd16:
		return fmt.Sprintf("%s%d", reduceOpBases[r/4], 8<<(r%4))
	case r < ReduceIMin8:
		r -= ReduceFAdd16
		return fmt.Sprintf("%s%d", reduceOpBases[2+r/3], 16<<(r%3))
	case r < ReduceFMin16:
		r -= ReduceIMin8
		return fmt.Sprintf("%s%d", reduceOpBases[4+r/4], 8<<(r%4))
	case r < ReduceIAnd8:
		r -= ReduceFMin16
		return fmt.Sprintf("%s%d", reduceOpBases[8+r/3], 16<<(r%3))
	case r < reduceOpEnd:
		r -= ReduceIAnd8
		return fmt.Sprintf("%s%d", reduceOpBases[10+r/4], 8<<(r%4))
	}
	return fmt.Sprintf("reduce(%d)", uint8(r))
}

// ReduceInfo holds the fields of the reduction pseudo format.
type ReduceInfo struct {
	Op          ReduceOp
	ClusterSize int
}

// InterpInfo holds the fields of the VINTRP format.
type InterpInfo struct {
	Attribute, Component uint8
}

// Instruction is a single target instruction. Fields outside of the ones the
// Format uses are left zero.
type Instruction struct {
	Opcode      Opcode
	Format      Format
	Operands    []Operand
	Definitions []Definition

	// Imm is the 16-bit immediate of SOPK and SOPP instructions.
	Imm uint32
	// Targets are the block indices of a pseudo branch: the taken target and the fallthrough.
	Targets [2]int

	Mem    MemInfo
	MIMG   MIMGInfo
	VOP3   VOP3Mods
	DPP    DPPInfo
	Exp    ExpInfo
	Reduce ReduceInfo
	Interp InterpInfo
}

// Result returns the Temp written by the first definition.
func (i *Instruction) Result() Temp {
	if len(i.Definitions) == 0 {
		panic("BUG: " + i.Opcode.String() + " has no definitions")
	}
	return i.Definitions[0].Temp()
}

// IsPhi reports whether i is a logical or linear phi.
func (i *Instruction) IsPhi() bool { return i.Opcode == OpPPhi || i.Opcode == OpPLinearPhi }

// String returns the textual form of the instruction.
func (i *Instruction) String() string {
	var sb strings.Builder
	for j, d := range i.Definitions {
		if j > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(d.String())
	}
	if len(i.Definitions) > 0 {
		sb.WriteString(" = ")
	}
	sb.WriteString(i.Opcode.String())
	for j, o := range i.Operands {
		if j > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte(' ')
		if i.Format&(FormatVOP3|FormatVOP3P) != 0 && j < 3 {
			if i.VOP3.Neg[j] {
				sb.WriteByte('-')
			}
			if i.VOP3.Abs[j] {
				sb.WriteString("|" + o.String() + "|")
				continue
			}
		}
		sb.WriteString(o.String())
	}
	i.formatModifiers(&sb)
	return sb.String()
}

func (i *Instruction) formatModifiers(sb *strings.Builder) {
	switch base := i.Format.Base(); {
	case base == FormatPseudoBranch:
		fmt.Fprintf(sb, " BB%d", i.Targets[0])
		if i.Opcode != OpPBranch {
			fmt.Fprintf(sb, ", BB%d", i.Targets[1])
		}
	case base == FormatPseudoReduction:
		fmt.Fprintf(sb, " op:%s", i.Reduce.Op)
		if i.Reduce.ClusterSize != 0 {
			fmt.Fprintf(sb, " cluster_size:%d", i.Reduce.ClusterSize)
		}
	case base == FormatSOPK, base == FormatSOPP:
		if i.Imm != 0 {
			fmt.Fprintf(sb, " imm:%d", i.Imm)
		}
	case base == FormatDS:
		if i.Mem.Offset0 != 0 || i.Mem.Offset1 != 0 {
			fmt.Fprintf(sb, " offset0:%d offset1:%d", i.Mem.Offset0, i.Mem.Offset1)
		} else if i.Mem.Offset != 0 {
			fmt.Fprintf(sb, " offset:%d", i.Mem.Offset)
		}
		if i.Mem.GDS {
			sb.WriteString(" gds")
		}
	case base == FormatSMEM, base == FormatMUBUF, base == FormatMTBUF, i.Format.IsFlatLike():
		if i.Mem.Offset != 0 {
			fmt.Fprintf(sb, " offset:%d", i.Mem.Offset)
		}
		for _, f := range []struct {
			set  bool
			name string
		}{
			{i.Mem.Offen, "offen"}, {i.Mem.Idxen, "idxen"}, {i.Mem.Addr64, "addr64"},
			{i.Mem.GLC, "glc"}, {i.Mem.DLC, "dlc"}, {i.Mem.SLC, "slc"}, {i.Mem.DisableWQM, "disable_wqm"},
		} {
			if f.set {
				sb.WriteString(" " + f.name)
			}
		}
	case base == FormatMIMG:
		fmt.Fprintf(sb, " %s dmask:0x%x", i.MIMG.Dim, i.MIMG.DMask)
		if i.MIMG.DA {
			sb.WriteString(" da")
		}
		if i.MIMG.GLC {
			sb.WriteString(" glc")
		}
		if i.MIMG.D16 {
			sb.WriteString(" d16")
		}
	case base == FormatEXP:
		fmt.Fprintf(sb, " target:%d en:0x%x", i.Exp.Target, i.Exp.EnabledMask)
		if i.Exp.Compressed {
			sb.WriteString(" compr")
		}
		if i.Exp.Done {
			sb.WriteString(" done")
		}
		if i.Exp.ValidMask {
			sb.WriteString(" vm")
		}
	}
	if i.Format.Has(FormatDPP) {
		fmt.Fprintf(sb, " dpp_ctrl:0x%x row_mask:0x%x bank_mask:0x%x", uint16(i.DPP.Ctrl), i.DPP.RowMask, i.DPP.BankMask)
		if i.DPP.BoundCtrl {
			sb.WriteString(" bound_ctrl")
		}
	}
	if i.Format.Has(FormatVINTRP) {
		fmt.Fprintf(sb, " attr%d.%c", i.Interp.Attribute, "xyzw"[i.Interp.Component&3])
	}
	if i.Format.Has(FormatVOP3) && i.VOP3.Clamp {
		sb.WriteString(" clamp")
	}
}
