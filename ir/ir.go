// Package ir is the SSA shader representation consumed by instruction selection.
//
// A Shader is a structured control-flow tree of Nodes. Blocks hold instructions, If and Loop
// nodes hold nested lists. Every list starts and ends with a Block, so control-flow nodes are
// always separated by a block. Builder maintains that shape.
package ir

// Stage is the API shader stage.
type Stage uint8

const (
	StageVertex Stage = iota
	StageTessCtrl
	StageTessEval
	StageGeometry
	StageFragment
	StageCompute
)

// String implements fmt.Stringer.
func (s Stage) String() string {
	return [...]string{"vertex", "tess_ctrl", "tess_eval", "geometry", "fragment", "compute"}[s]
}

// Def is an SSA value. It has NumComponents components of BitSize bits each.
// One-bit values are booleans.
type Def struct {
	Index         int
	NumComponents int
	BitSize       int
	// Divergent is set when the value may differ between the invocations of a wave.
	Divergent bool
	Parent    *Instr

	uses   []*Instr
	ifUses []*If
}

// Uses returns the instructions reading the value.
func (d *Def) Uses() []*Instr { return d.uses }

// IfUses returns the if-statements branching on the value.
func (d *Def) IfUses() []*If { return d.ifUses }

// HasUses reports whether anything reads the value.
func (d *Def) HasUses() bool { return len(d.uses) > 0 || len(d.ifUses) > 0 }

// Src is a use of a Def. ALU sources select components through Swizzle.
type Src struct {
	Def     *Def
	Swizzle [4]uint8
}

// SrcOf returns a Src reading d with the identity swizzle.
func SrcOf(d *Def) Src { return Src{Def: d, Swizzle: [4]uint8{0, 1, 2, 3}} }

// Comp returns a Src reading component c of d.
func Comp(d *Def, c int) Src { return Src{Def: d, Swizzle: [4]uint8{uint8(c), uint8(c), uint8(c), uint8(c)}} }

// InstrType is the kind of an instruction.
type InstrType uint8

const (
	InstrALU InstrType = iota
	InstrIntrinsic
	InstrTex
	InstrLoadConst
	InstrUndef
	InstrPhi
	InstrJump
)

// String implements fmt.Stringer.
func (t InstrType) String() string {
	return [...]string{"alu", "intrinsic", "tex", "load_const", "undef", "phi", "jump"}[t]
}

// JumpType is the kind of a jump.
type JumpType uint8

const (
	JumpBreak JumpType = iota
	JumpContinue
)

// Access is the set of qualifiers of a memory access.
type Access uint8

const (
	AccessCoherent Access = 1 << iota
	AccessVolatile
	AccessRestrict
	AccessNonWriteable
	AccessNonReadable
)

// CanReorder reports whether the access may move past other memory accesses.
func (a Access) CanReorder() bool {
	return a&AccessVolatile == 0 && a&(AccessRestrict|AccessNonWriteable) == AccessRestrict|AccessNonWriteable
}

// MemoryModes is the set of memory a barrier orders.
type MemoryModes uint8

const (
	ModeBuffer MemoryModes = 1 << iota
	ModeImage
	ModeShared
	ModeGlobal
)

// Binding identifies a descriptor.
type Binding struct {
	Set, Binding int
}

// ImageDim is the dimensionality of a texture or image.
type ImageDim uint8

const (
	Dim1D ImageDim = iota
	Dim2D
	Dim3D
	DimCube
	DimMS
	DimBuffer
)

// PhiSrc is the value a phi takes when control arrives from Pred.
type PhiSrc struct {
	Pred *Block
	Src  Src
}

// Instr is an instruction. Fields irrelevant to Type stay zero.
type Instr struct {
	Type  InstrType
	Block *Block
	Def   *Def
	Srcs  []Src

	ALU       ALUOp
	Intrinsic Intrinsic
	Jump      JumpType
	// Values are the per-component constants of a load_const.
	Values []uint64
	Phi    []PhiSrc
	Tex    *TexInfo

	// Intrinsic indices.
	Base        int
	Range       int
	Component   int
	WriteMask   uint8
	AlignMul    int
	AlignOffset int
	Access      Access
	Binding     Binding
	MemoryModes MemoryModes
	ReduceOp    ALUOp
	ClusterSize int
	Dim         ImageDim
	IsArray     bool
}

// Align returns the alignment of the access in bytes.
func (i *Instr) Align() int {
	if i.AlignMul == 0 {
		if i.Def != nil && i.Def.BitSize >= 8 {
			return i.Def.BitSize / 8
		}
		return 4
	}
	if i.AlignOffset == 0 {
		return i.AlignMul
	}
	return i.AlignOffset & -i.AlignOffset
}

// TexOp is the operation of a texture instruction.
type TexOp uint8

const (
	TexOpTex TexOp = iota
	TexOpTxb
	TexOpTxl
	TexOpTxd
	TexOpTxf
	TexOpTxfMS
	TexOpTxs
	TexOpLod
	TexOpTg4
)

var texOpNames = [...]string{"tex", "txb", "txl", "txd", "txf", "txf_ms", "txs", "lod", "tg4"}

// String implements fmt.Stringer.
func (op TexOp) String() string {
	if int(op) < len(texOpNames) {
		return texOpNames[op]
	}
	return "tex(?)"
}

// TexSrcType is the role of a texture instruction source.
type TexSrcType uint8

const (
	TexSrcCoord TexSrcType = iota
	TexSrcBias
	TexSrcLod
	TexSrcComparator
	TexSrcOffset
	TexSrcDdx
	TexSrcDdy
	TexSrcMSIndex
)

// TexInfo holds the fields of a texture instruction.
type TexInfo struct {
	Op       TexOp
	IsShadow bool
	Texture  Binding
	Sampler  Binding
	// SrcTypes is parallel to the Srcs of the instruction.
	SrcTypes []TexSrcType
	// Component is the gathered component of tg4.
	Component int
}

// SrcIndex returns the index of the source of type t, or -1.
func (t *TexInfo) SrcIndex(typ TexSrcType) int {
	for i, st := range t.SrcTypes {
		if st == typ {
			return i
		}
	}
	return -1
}

// Node is an element of a control-flow list: *Block, *If or *Loop.
type Node interface {
	isNode()
}

// Block is a basic block.
type Block struct {
	Index  int
	Instrs []*Instr
	Preds  []*Block
	Succs  [2]*Block
}

// If is a structured two-way branch.
type If struct {
	Condition Src
	Then      []Node
	Else      []Node
}

// Loop is a structured loop. Its body repeats until a break is taken.
type Loop struct {
	Body []Node
}

func (*Block) isNode() {}
func (*If) isNode()    {}
func (*Loop) isNode()  {}

// FirstBlock returns the first block of a control-flow list.
func FirstBlock(list []Node) *Block { return list[0].(*Block) }

// LastBlock returns the last block of a control-flow list.
func LastBlock(list []Node) *Block { return list[len(list)-1].(*Block) }

// EndsWithJump reports whether the block ends with a break or continue.
func (b *Block) EndsWithJump() bool {
	return len(b.Instrs) > 0 && b.Instrs[len(b.Instrs)-1].Type == InstrJump
}

// FloatControls selects the denormal behavior of the shader.
type FloatControls struct {
	PreserveDenorm32   bool
	PreserveDenorm1664 bool
}

// Shader is a single API stage.
type Shader struct {
	Name  string
	Stage Stage
	Body  []Node

	NumDefs   int
	NumBlocks int

	WorkgroupSize [3]int
	SharedBytes   int
	ScratchBytes  int
	FloatControls FloatControls
	// NumOutputs is the number of output slots written with store_output.
	NumOutputs int
}

// Blocks returns every block in index order.
func (s *Shader) Blocks() []*Block {
	ret := make([]*Block, 0, s.NumBlocks)
	var walk func(list []Node)
	walk = func(list []Node) {
		for _, n := range list {
			switch n := n.(type) {
			case *Block:
				ret = append(ret, n)
			case *If:
				walk(n.Then)
				walk(n.Else)
			case *Loop:
				walk(n.Body)
			}
		}
	}
	walk(s.Body)
	return ret
}
