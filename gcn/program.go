package gcn

import (
	"fmt"
	"strings"

	"github.com/wavesel/wavesel/internal/iselapi"
)

// GfxLevel is the hardware generation.
type GfxLevel uint8

const (
	GFX6 GfxLevel = iota + 6
	GFX7
	GFX8
	GFX9
	GFX10
	GFX10_3
)

// String implements fmt.Stringer.
func (g GfxLevel) String() string {
	switch g {
	case GFX6, GFX7, GFX8, GFX9, GFX10:
		return fmt.Sprintf("gfx%d", uint8(g))
	case GFX10_3:
		return "gfx10.3"
	default:
		return fmt.Sprintf("gfx(%d)", uint8(g))
	}
}

// ParseGfxLevel parses the String form of a GfxLevel.
func ParseGfxLevel(s string) (GfxLevel, bool) {
	for g := GFX6; g <= GFX10_3; g++ {
		if g.String() == s {
			return g, true
		}
	}
	return 0, false
}

// HWStage is the hardware shader stage a program runs as.
type HWStage uint8

const (
	HWStageVS HWStage = iota
	HWStageLS
	HWStageHS
	HWStageES
	HWStageGS
	HWStageFS
	HWStageCS
)

// String implements fmt.Stringer.
func (s HWStage) String() string {
	return [...]string{"vs", "ls", "hs", "es", "gs", "fs", "cs"}[s]
}

// BlockKind is a set of flags describing the role of a block in the CFG.
type BlockKind uint32

const (
	BlockKindUniform BlockKind = 1 << iota
	BlockKindTopLevel
	BlockKindLoopPreheader
	BlockKindLoopHeader
	BlockKindLoopExit
	BlockKindContinue
	BlockKindBreak
	BlockKindContinueOrBreak
	BlockKindDiscard
	BlockKindBranch
	BlockKindMerge
	BlockKindInvert
	BlockKindUsesDiscardIf
	BlockKindNeedsLowering
	BlockKindExportEnd
)

var blockKindNames = [...]string{
	"uniform", "top-level", "loop-preheader", "loop-header", "loop-exit", "continue", "break",
	"continue-or-break", "discard", "branch", "merge", "invert", "uses-discard-if",
	"needs-lowering", "export-end",
}

// String implements fmt.Stringer.
func (k BlockKind) String() string {
	var names []string
	for i, n := range blockKindNames {
		if k&(1<<i) != 0 {
			names = append(names, n)
		}
	}
	return strings.Join(names, ", ")
}

// Block is a basic block of the target program. Blocks reference each other by index.
type Block struct {
	Index         int
	Kind          BlockKind
	LoopNestDepth int
	Instructions  []*Instruction

	LogicalPreds, LinearPreds []int
	LogicalSuccs, LinearSuccs []int
}

// Has reports whether every flag of kind is set on the block.
func (b *Block) Has(kind BlockKind) bool { return b.Kind&kind == kind }

// FloatMode is the floating-point execution mode of the shader.
type FloatMode struct {
	// PreserveDenorm32 keeps 32-bit denormals, otherwise they are flushed.
	PreserveDenorm32 bool
	// PreserveDenorm1664 keeps 16-bit and 64-bit denormals.
	PreserveDenorm1664 bool
}

// Config holds resource requirements discovered while lowering.
type Config struct {
	// NumSharedVGPRs is the number of VGPRs shared between the two halves of a wave64 on GFX10.
	NumSharedVGPRs int
	// VGPRLimit is the number of VGPRs the register allocator may use.
	VGPRLimit int
	// SGPRLimit is the number of SGPRs the register allocator may use.
	SGPRLimit int
	// ScratchBytesPerWave is the private memory requested by the shader.
	ScratchBytesPerWave int
	// LDSBytes is the shared memory used by the workgroup.
	LDSBytes int
}

// Program is the output of instruction selection.
type Program struct {
	GfxLevel GfxLevel
	WaveSize int
	LaneMask RegClass
	Stage    HWStage
	// NumStages is the number of API stages merged into this program.
	NumStages int

	FloatMode     FloatMode
	WorkgroupSize int
	Config        Config

	NeedsExactExec bool
	NeedsWQM       bool
	NeedsVCC       bool
	UsesDiscard    bool

	blocks  iselapi.Arena[Block]
	instrs  iselapi.Arena[Instruction]
	tempRCs []RegClass
}

// NewProgram returns an empty program for the given generation and wave size.
func NewProgram(gfx GfxLevel, waveSize int, stage HWStage) *Program {
	p := &Program{
		GfxLevel:  gfx,
		WaveSize:  waveSize,
		Stage:     stage,
		NumStages: 1,
		blocks:    iselapi.NewArena[Block](),
		instrs:    iselapi.NewArena[Instruction](),
		// Id zero is the invalid Temp.
		tempRCs: []RegClass{RegClassInvalid},
	}
	switch waveSize {
	case 32:
		p.LaneMask = S1
	case 64:
		p.LaneMask = S2
	default:
		panic(fmt.Sprintf("BUG: invalid wave size %d", waveSize))
	}
	p.Config.VGPRLimit = 256
	p.Config.SGPRLimit = 104
	if gfx >= GFX10 {
		p.Config.SGPRLimit = 106
	}
	return p
}

// NewTemp allocates a fresh Temp of the given class.
func (p *Program) NewTemp(rc RegClass) Temp {
	if rc == RegClassInvalid {
		panic("BUG: allocating a Temp of invalid class")
	}
	p.tempRCs = append(p.tempRCs, rc)
	return NewTemp(uint32(len(p.tempRCs)-1), rc)
}

// PeekNextTempID returns the id the next NewTemp will use.
func (p *Program) PeekNextTempID() uint32 { return uint32(len(p.tempRCs)) }

// NumTemps returns the number of allocated ids, including the invalid id zero.
func (p *Program) NumTemps() int { return len(p.tempRCs) }

// TempRegClass returns the class the Temp with the given id was allocated with.
func (p *Program) TempRegClass(id uint32) RegClass {
	if int(id) >= len(p.tempRCs) {
		return RegClassInvalid
	}
	return p.tempRCs[id]
}

// CreateBlock appends a new empty block and returns it.
func (p *Program) CreateBlock() *Block {
	b, idx := p.blocks.Allocate()
	b.Index = idx
	return b
}

// NumBlocks returns the number of blocks.
func (p *Program) NumBlocks() int { return p.blocks.Len() }

// Block returns the block with the given index.
func (p *Program) Block(i int) *Block { return p.blocks.View(i) }

// Blocks returns every block in index order.
func (p *Program) Blocks() []*Block {
	ret := make([]*Block, p.blocks.Len())
	for i := range ret {
		ret[i] = p.blocks.View(i)
	}
	return ret
}

// newInstruction returns a zeroed instruction owned by the program.
func (p *Program) newInstruction() *Instruction {
	instr, _ := p.instrs.Allocate()
	return instr
}

// ComputeSuccessors derives every successor list from the predecessor lists.
func (p *Program) ComputeSuccessors() {
	n := p.NumBlocks()
	for i := 0; i < n; i++ {
		b := p.Block(i)
		b.LogicalSuccs = b.LogicalSuccs[:0]
		b.LinearSuccs = b.LinearSuccs[:0]
	}
	for i := 0; i < n; i++ {
		b := p.Block(i)
		for _, pred := range b.LogicalPreds {
			pb := p.Block(pred)
			pb.LogicalSuccs = append(pb.LogicalSuccs, i)
		}
		for _, pred := range b.LinearPreds {
			pb := p.Block(pred)
			pb.LinearSuccs = append(pb.LinearSuccs, i)
		}
	}
}

// Format returns a textual dump of the program.
func (p *Program) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s wave%d %s\n", p.GfxLevel, p.WaveSize, p.Stage)
	for i := 0; i < p.NumBlocks(); i++ {
		b := p.Block(i)
		fmt.Fprintf(&sb, "BB%d", b.Index)
		if b.Kind != 0 {
			fmt.Fprintf(&sb, " (%s)", b.Kind)
		}
		fmt.Fprintf(&sb, " depth=%d\n", b.LoopNestDepth)
		fmt.Fprintf(&sb, "  /* logical preds: %s, linear preds: %s */\n", formatIndices(b.LogicalPreds), formatIndices(b.LinearPreds))
		for _, instr := range b.Instructions {
			sb.WriteString("  ")
			sb.WriteString(instr.String())
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func formatIndices(idx []int) string {
	strs := make([]string, len(idx))
	for i, v := range idx {
		strs[i] = fmt.Sprintf("BB%d", v)
	}
	return "[" + strings.Join(strs, " ") + "]"
}
