// Package isel lowers ir shaders to gcn programs.
//
// One selector lowers one shader stage. Merged stages share the Program, the shader arguments and
// the current block, and get a fresh selector each. Every IR value is assigned a Temp up front
// (see regclass.go), so phis and forward references resolve without a fixup pass.
package isel

import (
	"strconv"

	"tlog.app/go/tlog"

	"github.com/wavesel/wavesel/gcn"
	"github.com/wavesel/wavesel/internal/iselapi"
	"github.com/wavesel/wavesel/ir"
)

// Options control a lowering.
type Options struct {
	GfxLevel gcn.GfxLevel
	WaveSize int
	// FlushDenorm32 and FlushDenorm1664 flush denormals even when a shader asks to keep them.
	FlushDenorm32   bool
	FlushDenorm1664 bool
	// WorkgroupSize overrides the size declared by compute shaders when non-zero.
	WorkgroupSize int
	// Divergence runs the divergence analysis. When false, the Divergent flags set on the input
	// are trusted.
	Divergence bool
	// Validate checks the CFG invariants of the result.
	Validate bool
}

// loopInfo is the innermost loop being lowered.
type loopInfo struct {
	header int
	exit   *pendingBlock
	// irHeader is the first IR block of the body. Its phis wait in phis until every
	// back-edge is known.
	irHeader *ir.Block
	phis     []*ir.Instr
	// hasDivergentContinue is set once a continue under divergent control flow was lowered.
	// Breaks after it can no longer leave the loop uniformly.
	hasDivergentContinue bool
	// hasDivergentBranch is set when the current block was entered after a divergent jump, so
	// it has no logical edge to its successor.
	hasDivergentBranch bool
}

// cfInfo is the control-flow state of a lowering.
type cfInfo struct {
	parentLoop        loopInfo
	parentIfDivergent bool
	// hasBranch is set when the current list ended with a uniform jump. Nothing after it in the
	// list is reachable.
	hasBranch bool
	// execPotentiallyEmpty* are set when the execution mask may be empty at the end of a loop
	// iteration, so the back-edge has to test for it.
	execPotentiallyEmptyDiscard    bool
	execPotentiallyEmptyBreak      bool
	execPotentiallyEmptyBreakDepth int
	loopNestDepth                  int
}

const noBreakDepth = 1 << 16

// pendingJump is a branch target slot to patch once its block gets an index.
type pendingJump struct {
	instr *gcn.Instruction
	slot  int
}

// pendingBlock is a block whose predecessors are collected before it is inserted, such as the
// exit of a loop or the join of an if-statement.
type pendingBlock struct {
	gcn.Block
	jumps []pendingJump
}

func newPendingBlock(depth int, kind gcn.BlockKind) *pendingBlock {
	return &pendingBlock{Block: gcn.Block{Index: -1, LoopNestDepth: depth, Kind: kind}}
}

// target records that slot of the branch br jumps to the block.
func (pb *pendingBlock) target(br *gcn.Instruction, slot int) {
	pb.jumps = append(pb.jumps, pendingJump{instr: br, slot: slot})
}

// selector holds the state of the lowering of one shader stage.
type selector struct {
	prog   *gcn.Program
	opts   *Options
	shader *ir.Shader
	stage  ir.Stage
	tr     tlog.Span

	block *gcn.Block
	b     *gcn.Builder

	// temps maps ir.Def.Index to the Temp holding the value.
	temps []gcn.Temp
	// allocatedVec maps the id of a vector Temp to its components, so extracting a
	// component does not split the vector again.
	allocatedVec map[uint32][]gcn.Temp
	// irToBlock maps ir.Block.Index to the index of the last gcn block of that IR block, the
	// one its successors are entered from.
	irToBlock []int
	cf        cfInfo

	args *shaderArgs
	// outputs collects store_output values per slot until the exports at the end of the stage.
	outputs    map[int]*[4]gcn.Operand
	outputMask map[int]uint8
	// stageIndex is the position of the stage in a merged program. prevOutputs is the number
	// of output slots the previous stage wrote to LDS.
	stageIndex  int
	prevOutputs int
	// ioBase is where the outputs passed between merged stages start in LDS, after the shared
	// memory of the shaders.
	ioBase int
	// irBlock is the IR block being lowered.
	irBlock *ir.Block
}

func newSelector(prog *gcn.Program, opts *Options, shader *ir.Shader, args *shaderArgs, tr tlog.Span) *selector {
	s := &selector{
		prog:         prog,
		opts:         opts,
		shader:       shader,
		stage:        shader.Stage,
		tr:           tr,
		temps:        make([]gcn.Temp, shader.NumDefs),
		allocatedVec: map[uint32][]gcn.Temp{},
		irToBlock:    make([]int, shader.NumBlocks),
		args:         args,
		outputs:      map[int]*[4]gcn.Operand{},
		outputMask:   map[int]uint8{},
	}
	for i := range s.irToBlock {
		s.irToBlock[i] = -1
	}
	s.cf.execPotentiallyEmptyBreakDepth = noBreakDepth
	s.b = gcn.NewBuilder(prog, nil)
	return s
}

func (s *selector) setBlock(blk *gcn.Block) {
	s.block = blk
	s.b.Reset(blk)
}

// createBlock appends a block at the current loop depth.
func (s *selector) createBlock() *gcn.Block {
	blk := s.prog.CreateBlock()
	blk.LoopNestDepth = s.cf.loopNestDepth
	if s.tr.If(iselapi.TopicCF) {
		s.tr.Printw("create block", "bb", blk.Index, "depth", blk.LoopNestDepth)
	}
	return blk
}

// insertPending gives pb an index and patches the branches targeting it.
func (s *selector) insertPending(pb *pendingBlock) *gcn.Block {
	blk := s.prog.CreateBlock()
	idx := blk.Index
	*blk = pb.Block
	blk.Index = idx
	for _, j := range pb.jumps {
		j.instr.Targets[j.slot] = idx
	}
	pb.jumps = nil
	if s.tr.If(iselapi.TopicCF) {
		s.tr.Printw("insert block", "bb", idx, "kind", blk.Kind, "logical_preds", blk.LogicalPreds, "linear_preds", blk.LinearPreds)
	}
	return blk
}

func addLogicalEdge(pred int, succ *gcn.Block) {
	succ.LogicalPreds = append(succ.LogicalPreds, pred)
}

func addLinearEdge(pred int, succ *gcn.Block) {
	succ.LinearPreds = append(succ.LinearPreds, pred)
}

func addEdge(pred int, succ *gcn.Block) {
	addLogicalEdge(pred, succ)
	addLinearEdge(pred, succ)
}

func (s *selector) appendLogicalStart() {
	s.b.Pseudo(gcn.OpPLogicalStart, nil)
}

func (s *selector) appendLogicalEnd() {
	s.b.Pseudo(gcn.OpPLogicalEnd, nil)
}

// branch ends the current block with an unconditional jump to an inserted block.
func (s *selector) branch(to *gcn.Block) *gcn.Instruction {
	return s.b.Branch(gcn.OpPBranch, to.Index, -1)
}

// branchPending ends the current block with an unconditional jump to a block not inserted yet.
func (s *selector) branchPending(to *pendingBlock) *gcn.Instruction {
	br := s.b.Branch(gcn.OpPBranch, -1, -1)
	to.target(br, 0)
	return br
}

// temp returns the Temp of an IR value.
func (s *selector) temp(d *ir.Def) gcn.Temp {
	t := s.temps[d.Index]
	if !t.Valid() {
		panic("BUG: value without a register class: " + strconv.Itoa(d.Index))
	}
	return t
}
