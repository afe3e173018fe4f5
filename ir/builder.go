package ir

import (
	"fmt"
	"math"
	"sort"
)

// Builder constructs a Shader. Instructions are appended to the current block; PushIf,
// PushElse, PopIf, PushLoop and PopLoop open and close structured control flow.
type Builder struct {
	shader *Shader
	// lists is the stack of control-flow lists being appended to.
	lists   []*[]Node
	cfStack []Node
	numDefs int
}

// NewBuilder returns a Builder for a shader of the given stage.
func NewBuilder(name string, stage Stage) *Builder {
	b := &Builder{shader: &Shader{Name: name, Stage: stage, WorkgroupSize: [3]int{1, 1, 1}}}
	b.shader.Body = []Node{&Block{}}
	b.lists = []*[]Node{&b.shader.Body}
	return b
}

// Shader returns the shader under construction.
func (b *Builder) Shader() *Shader { return b.shader }

// CurrentBlock returns the block instructions are appended to.
func (b *Builder) CurrentBlock() *Block {
	list := *b.lists[len(b.lists)-1]
	return list[len(list)-1].(*Block)
}

func (b *Builder) newDef(numComponents, bitSize int) *Def {
	d := &Def{Index: b.numDefs, NumComponents: numComponents, BitSize: bitSize}
	b.numDefs++
	return d
}

func (b *Builder) insert(instr *Instr) *Instr {
	blk := b.CurrentBlock()
	if blk.EndsWithJump() {
		panic(fmt.Sprintf("BUG: appending to block %p after a jump", blk))
	}
	instr.Block = blk
	if instr.Def != nil {
		instr.Def.Parent = instr
	}
	blk.Instrs = append(blk.Instrs, instr)
	return instr
}

// Imm returns a load_const of the given bit size with one component per value.
func (b *Builder) Imm(bitSize int, values ...uint64) *Def {
	vals := append([]uint64(nil), values...)
	return b.insert(&Instr{Type: InstrLoadConst, Def: b.newDef(len(vals), bitSize), Values: vals}).Def
}

// Imm32 returns a 32-bit scalar constant.
func (b *Builder) Imm32(v uint32) *Def { return b.Imm(32, uint64(v)) }

// ImmF32 returns a 32-bit float constant.
func (b *Builder) ImmF32(v float32) *Def { return b.Imm(32, uint64(math.Float32bits(v))) }

// ImmF64 returns a 64-bit float constant.
func (b *Builder) ImmF64(v float64) *Def { return b.Imm(64, math.Float64bits(v)) }

// ImmBool returns a boolean constant.
func (b *Builder) ImmBool(v bool) *Def {
	if v {
		return b.Imm(1, 1)
	}
	return b.Imm(1, 0)
}

// Undef returns an undefined value.
func (b *Builder) Undef(numComponents, bitSize int) *Def {
	return b.insert(&Instr{Type: InstrUndef, Def: b.newDef(numComponents, bitSize)}).Def
}

// ALU appends a scalar ALU instruction reading the first component of each source.
func (b *Builder) ALU(op ALUOp, srcs ...*Def) *Def {
	s := make([]Src, len(srcs))
	for i, d := range srcs {
		s[i] = SrcOf(d)
	}
	return b.ALUSrc(op, s...)
}

// ALUSrc appends an ALU instruction with explicit swizzles.
func (b *Builder) ALUSrc(op ALUOp, srcs ...Src) *Def {
	info := aluOpInfos[op]
	if len(srcs) != info.numInputs {
		panic(fmt.Sprintf("BUG: %s takes %d sources, got %d", op, info.numInputs, len(srcs)))
	}
	bits := info.outBits
	switch bits {
	case sameAsSrc0:
		bits = srcs[0].Def.BitSize
	case sameAsSrc1:
		bits = srcs[1].Def.BitSize
	}
	comps := 1
	if op.IsVec() {
		comps = len(srcs)
	}
	return b.insert(&Instr{Type: InstrALU, ALU: op, Def: b.newDef(comps, bits), Srcs: srcs}).Def
}

// Vec builds a vector from scalar values.
func (b *Builder) Vec(srcs ...*Def) *Def {
	if len(srcs) == 1 {
		return b.ALU(OpMov, srcs[0])
	}
	return b.ALU(OpVec2+ALUOp(len(srcs)-2), srcs...)
}

// Channel extracts component c of d.
func (b *Builder) Channel(d *Def, c int) *Def {
	return b.ALUSrc(OpMov, Comp(d, c))
}

// Intrinsic appends an intrinsic. Callers set the indices on the returned instruction.
// numComponents and bitSize are ignored for intrinsics without a result.
func (b *Builder) Intrinsic(op Intrinsic, numComponents, bitSize int, srcs ...*Def) *Instr {
	if len(srcs) != op.NumSrcs() {
		panic(fmt.Sprintf("BUG: %s takes %d sources, got %d", op, op.NumSrcs(), len(srcs)))
	}
	instr := &Instr{Type: InstrIntrinsic, Intrinsic: op, Srcs: make([]Src, len(srcs))}
	for i, d := range srcs {
		instr.Srcs[i] = SrcOf(d)
	}
	if op.HasDest() {
		instr.Def = b.newDef(numComponents, bitSize)
	}
	return b.insert(instr)
}

// Tex appends a texture instruction. srcTypes is parallel to srcs.
func (b *Builder) Tex(info TexInfo, dim ImageDim, isArray bool, numComponents, bitSize int, srcTypes []TexSrcType, srcs ...*Def) *Instr {
	if len(srcTypes) != len(srcs) {
		panic("BUG: texture source types and sources differ in length")
	}
	info.SrcTypes = append([]TexSrcType(nil), srcTypes...)
	instr := &Instr{Type: InstrTex, Tex: &info, Dim: dim, IsArray: isArray, Srcs: make([]Src, len(srcs))}
	for i, d := range srcs {
		instr.Srcs[i] = SrcOf(d)
	}
	instr.Def = b.newDef(numComponents, bitSize)
	return b.insert(instr)
}

// Phi appends a phi. Phis must precede every other instruction of their block.
func (b *Builder) Phi(numComponents, bitSize int) *Instr {
	for _, instr := range b.CurrentBlock().Instrs {
		if instr.Type != InstrPhi {
			panic("BUG: phi after a non-phi instruction")
		}
	}
	return b.insert(&Instr{Type: InstrPhi, Def: b.newDef(numComponents, bitSize)})
}

// AddPhiSrc adds the value phi takes when entered from pred.
func (b *Builder) AddPhiSrc(phi *Instr, pred *Block, src *Def) {
	phi.Phi = append(phi.Phi, PhiSrc{Pred: pred, Src: SrcOf(src)})
}

// PushIf opens an if-statement on cond and starts its then-list.
func (b *Builder) PushIf(cond *Def) *If {
	n := &If{Condition: SrcOf(cond), Then: []Node{&Block{}}, Else: []Node{&Block{}}}
	list := b.lists[len(b.lists)-1]
	*list = append(*list, n)
	b.cfStack = append(b.cfStack, n)
	b.lists = append(b.lists, &n.Then)
	return n
}

// PushElse ends the then-list of the innermost if-statement and starts its else-list.
func (b *Builder) PushElse() {
	n, ok := b.cfStack[len(b.cfStack)-1].(*If)
	if !ok {
		panic("BUG: PushElse outside of an if-statement")
	}
	b.lists[len(b.lists)-1] = &n.Else
}

// PopIf closes the innermost if-statement.
func (b *Builder) PopIf() {
	if _, ok := b.cfStack[len(b.cfStack)-1].(*If); !ok {
		panic("BUG: PopIf outside of an if-statement")
	}
	b.popCF()
}

// PushLoop opens a loop.
func (b *Builder) PushLoop() *Loop {
	n := &Loop{Body: []Node{&Block{}}}
	list := b.lists[len(b.lists)-1]
	*list = append(*list, n)
	b.cfStack = append(b.cfStack, n)
	b.lists = append(b.lists, &n.Body)
	return n
}

// PopLoop closes the innermost loop.
func (b *Builder) PopLoop() {
	if _, ok := b.cfStack[len(b.cfStack)-1].(*Loop); !ok {
		panic("BUG: PopLoop outside of a loop")
	}
	b.popCF()
}

func (b *Builder) popCF() {
	b.cfStack = b.cfStack[:len(b.cfStack)-1]
	b.lists = b.lists[:len(b.lists)-1]
	list := b.lists[len(b.lists)-1]
	*list = append(*list, &Block{})
}

func (b *Builder) inLoop() bool {
	for _, n := range b.cfStack {
		if _, ok := n.(*Loop); ok {
			return true
		}
	}
	return false
}

// Break ends the current block with a break out of the innermost loop.
func (b *Builder) Break() {
	if !b.inLoop() {
		panic("BUG: break outside of a loop")
	}
	b.insert(&Instr{Type: InstrJump, Jump: JumpBreak})
}

// Continue ends the current block with a jump to the start of the innermost loop.
func (b *Builder) Continue() {
	if !b.inLoop() {
		panic("BUG: continue outside of a loop")
	}
	b.insert(&Instr{Type: InstrJump, Jump: JumpContinue})
}

// Finish numbers the blocks, links predecessors and successors, and records uses.
func (b *Builder) Finish() *Shader {
	if len(b.cfStack) != 0 {
		panic("BUG: Finish with open control flow")
	}
	s := b.shader
	blocks := s.Blocks()
	for i, blk := range blocks {
		blk.Index = i
		blk.Preds = blk.Preds[:0]
		blk.Succs = [2]*Block{}
	}
	s.NumBlocks = len(blocks)
	s.NumDefs = b.numDefs
	linkList(s.Body, nil, nil, nil)
	for _, blk := range blocks {
		for _, succ := range blk.Succs {
			if succ != nil {
				succ.Preds = append(succ.Preds, blk)
			}
		}
	}
	for _, blk := range blocks {
		sort.Slice(blk.Preds, func(i, j int) bool { return blk.Preds[i].Index < blk.Preds[j].Index })
	}
	recordUses(s)
	return s
}

// linkList sets the successors of every block of list. next is the block control reaches
// after the list, header and exit are those of the innermost loop.
func linkList(list []Node, next, header, exit *Block) {
	for i, n := range list {
		switch n := n.(type) {
		case *Block:
			if n.EndsWithJump() {
				switch n.Instrs[len(n.Instrs)-1].Jump {
				case JumpBreak:
					n.Succs[0] = exit
				case JumpContinue:
					n.Succs[0] = header
				}
				continue
			}
			if i+1 == len(list) {
				n.Succs[0] = next
				continue
			}
			switch following := list[i+1].(type) {
			case *If:
				n.Succs[0] = FirstBlock(following.Then)
				n.Succs[1] = FirstBlock(following.Else)
			case *Loop:
				n.Succs[0] = FirstBlock(following.Body)
			default:
				panic("BUG: two consecutive blocks")
			}
		case *If:
			after := list[i+1].(*Block)
			linkList(n.Then, after, header, exit)
			linkList(n.Else, after, header, exit)
		case *Loop:
			loopHeader := FirstBlock(n.Body)
			linkList(n.Body, loopHeader, loopHeader, list[i+1].(*Block))
		}
	}
}

func recordUses(s *Shader) {
	blocks := s.Blocks()
	for _, blk := range blocks {
		for _, instr := range blk.Instrs {
			if instr.Def != nil {
				instr.Def.uses, instr.Def.ifUses = nil, nil
			}
		}
	}
	var walk func(list []Node)
	walk = func(list []Node) {
		for _, n := range list {
			switch n := n.(type) {
			case *Block:
				for _, instr := range n.Instrs {
					instr.Block = n
					for _, src := range instr.Srcs {
						src.Def.uses = append(src.Def.uses, instr)
					}
					for _, p := range instr.Phi {
						p.Src.Def.uses = append(p.Src.Def.uses, instr)
					}
				}
			case *If:
				n.Condition.Def.ifUses = append(n.Condition.Def.ifUses, n)
				walk(n.Then)
				walk(n.Else)
			case *Loop:
				walk(n.Body)
			}
		}
	}
	walk(s.Body)
}
