// Package divergence marks the values of a shader that may differ between the invocations of a
// wave.
//
// The analysis is conservative: a value is only reported uniform when every invocation that
// computes it is guaranteed to compute the same result. Over-marking costs vector registers,
// under-marking would make scalar code read per-lane data, so every unknown case is divergent.
package divergence

import (
	"context"

	"tlog.app/go/tlog"

	"github.com/wavesel/wavesel/internal/iselapi"
	"github.com/wavesel/wavesel/ir"
)

// Result summarizes the control flow the analysis found divergent.
type Result struct {
	DivergentIfs   map[*ir.If]bool
	DivergentLoops map[*ir.Loop]bool
	NumDivergent   int
}

type analysis struct {
	waveSize int
	changed  bool
	res      Result

	// mergeOf maps the block after an if-statement to the if-statement.
	mergeOf map[*ir.Block]*ir.If
	// headerOf and exitOf map the first block of a loop body and the block after the loop.
	headerOf map[*ir.Block]*ir.Loop
	exitOf   map[*ir.Block]*ir.Loop
	// loopOf maps every block to its innermost loop, nil at the top level.
	loopOf map[*ir.Block]*ir.Loop
}

// Analyze sets Def.Divergent on every value of s.
func Analyze(ctx context.Context, s *ir.Shader, waveSize int) Result {
	a := &analysis{
		waveSize: waveSize,
		res:      Result{DivergentIfs: map[*ir.If]bool{}, DivergentLoops: map[*ir.Loop]bool{}},
		mergeOf:  map[*ir.Block]*ir.If{},
		headerOf: map[*ir.Block]*ir.Loop{},
		exitOf:   map[*ir.Block]*ir.Loop{},
		loopOf:   map[*ir.Block]*ir.Loop{},
	}
	a.collect(s.Body, nil)
	for _, blk := range s.Blocks() {
		for _, instr := range blk.Instrs {
			if instr.Def != nil {
				instr.Def.Divergent = false
			}
		}
	}

	for a.changed = true; a.changed; {
		a.changed = false
		a.visitList(s.Body, nil, false)
		a.markLoopExitUses(s)
	}

	tr := tlog.SpanFromContext(ctx)
	for _, blk := range s.Blocks() {
		for _, instr := range blk.Instrs {
			if instr.Def != nil && instr.Def.Divergent {
				a.res.NumDivergent++
				if iselapi.PrintDivergence || tr.If(iselapi.TopicDivergence) {
					tr.Printw("divergent", "def", instr.Def.Index, "block", blk.Index)
				}
			}
		}
	}
	return a.res
}

func (a *analysis) collect(list []ir.Node, loop *ir.Loop) {
	for i, n := range list {
		switch n := n.(type) {
		case *ir.Block:
			a.loopOf[n] = loop
		case *ir.If:
			a.mergeOf[list[i+1].(*ir.Block)] = n
			a.collect(n.Then, loop)
			a.collect(n.Else, loop)
		case *ir.Loop:
			a.headerOf[ir.FirstBlock(n.Body)] = n
			a.exitOf[list[i+1].(*ir.Block)] = n
			a.collect(n.Body, n)
		}
	}
}

func (a *analysis) set(d *ir.Def) {
	if !d.Divergent {
		d.Divergent = true
		a.changed = true
	}
}

// visitList walks list. loop is the innermost loop and divergentCF is set when an if-statement
// between loop and list branches on a divergent condition.
func (a *analysis) visitList(list []ir.Node, loop *ir.Loop, divergentCF bool) {
	for _, n := range list {
		switch n := n.(type) {
		case *ir.Block:
			for _, instr := range n.Instrs {
				a.visitInstr(instr, loop, divergentCF)
			}
		case *ir.If:
			div := n.Condition.Def.Divergent
			if div {
				a.res.DivergentIfs[n] = true
			}
			a.visitList(n.Then, loop, divergentCF || div)
			a.visitList(n.Else, loop, divergentCF || div)
		case *ir.Loop:
			a.visitList(n.Body, n, false)
		}
	}
}

func (a *analysis) visitInstr(instr *ir.Instr, loop *ir.Loop, divergentCF bool) {
	switch instr.Type {
	case ir.InstrJump:
		if divergentCF && loop != nil && !a.res.DivergentLoops[loop] {
			a.res.DivergentLoops[loop] = true
			a.changed = true
		}
		return
	case ir.InstrLoadConst, ir.InstrUndef:
		return
	case ir.InstrPhi:
		if a.phiIsDivergent(instr) {
			a.set(instr.Def)
		}
		return
	case ir.InstrALU:
		if instr.ALU.IsDerivative() || anySrcDivergent(instr) {
			a.set(instr.Def)
		}
		return
	case ir.InstrTex:
		if anySrcDivergent(instr) {
			a.set(instr.Def)
		}
		return
	}

	if instr.Def == nil {
		return
	}
	if a.intrinsicIsDivergent(instr) {
		a.set(instr.Def)
	}
}

func anySrcDivergent(instr *ir.Instr) bool {
	for _, src := range instr.Srcs {
		if src.Def.Divergent {
			return true
		}
	}
	return false
}

func (a *analysis) intrinsicIsDivergent(instr *ir.Instr) bool {
	if _, ok := instr.Intrinsic.Atomic(); ok {
		return true
	}
	switch instr.Intrinsic {
	case ir.IntrinsicLoadLocalInvocationID, ir.IntrinsicLoadLocalInvocationIndex,
		ir.IntrinsicLoadSubgroupInvocation, ir.IntrinsicLoadVertexID, ir.IntrinsicLoadInstanceID,
		ir.IntrinsicLoadFragCoord, ir.IntrinsicLoadFrontFace, ir.IntrinsicLoadSampleID,
		ir.IntrinsicLoadHelperInvocation, ir.IntrinsicLoadInput, ir.IntrinsicLoadBarycentricPixel,
		ir.IntrinsicLoadInterpolatedInput, ir.IntrinsicInclusiveScan, ir.IntrinsicExclusiveScan,
		ir.IntrinsicElect, ir.IntrinsicShuffle, ir.IntrinsicLoadScratch:
		return true
	case ir.IntrinsicLoadWorkgroupID, ir.IntrinsicLoadNumWorkgroups, ir.IntrinsicLoadSubgroupSize,
		ir.IntrinsicBallot, ir.IntrinsicVoteAny, ir.IntrinsicVoteAll, ir.IntrinsicFirstInvocation,
		ir.IntrinsicReadInvocation, ir.IntrinsicReadFirstInvocation, ir.IntrinsicImageSize:
		return false
	case ir.IntrinsicReduce:
		if instr.ClusterSize == 0 || instr.ClusterSize >= a.waveSize {
			return false
		}
		return anySrcDivergent(instr)
	case ir.IntrinsicQuadBroadcast:
		// The lane index picks within each quad, so different quads still read different lanes.
		return anySrcDivergent(instr)
	case ir.IntrinsicLoadSSBO:
		return anySrcDivergent(instr) || instr.Access&(ir.AccessVolatile|ir.AccessCoherent) != 0
	default:
		return anySrcDivergent(instr)
	}
}

func (a *analysis) phiIsDivergent(phi *ir.Instr) bool {
	for _, src := range phi.Phi {
		if src.Src.Def.Divergent {
			return true
		}
	}
	blk := phi.Block
	if n, ok := a.mergeOf[blk]; ok && n.Condition.Def.Divergent {
		return true
	}
	if l, ok := a.headerOf[blk]; ok && a.res.DivergentLoops[l] {
		return true
	}
	if l, ok := a.exitOf[blk]; ok && a.res.DivergentLoops[l] {
		return true
	}
	return false
}

// markLoopExitUses makes values defined in a divergent loop divergent when they are used after
// it, because invocations leave the loop in different iterations.
func (a *analysis) markLoopExitUses(s *ir.Shader) {
	for _, blk := range s.Blocks() {
		loop := a.loopOf[blk]
		if loop == nil {
			continue
		}
		for _, instr := range blk.Instrs {
			if instr.Def == nil || instr.Def.Divergent {
				continue
			}
			for _, use := range instr.Def.Uses() {
				if a.usedOutside(use.Block, blk) {
					a.set(instr.Def)
					break
				}
			}
		}
	}
}

// usedOutside reports whether useBlk lies outside a divergent loop that contains defBlk.
func (a *analysis) usedOutside(useBlk, defBlk *ir.Block) bool {
	for l := a.loopOf[defBlk]; l != nil; l = a.parentLoop(l) {
		if !a.res.DivergentLoops[l] {
			continue
		}
		if !a.inLoop(useBlk, l) {
			return true
		}
	}
	return false
}

func (a *analysis) inLoop(blk *ir.Block, l *ir.Loop) bool {
	for cur := a.loopOf[blk]; cur != nil; cur = a.parentLoop(cur) {
		if cur == l {
			return true
		}
	}
	return false
}

func (a *analysis) parentLoop(l *ir.Loop) *ir.Loop {
	// The parent of a loop is the innermost loop of the block preceding it.
	for exit, el := range a.exitOf {
		if el == l {
			return a.loopOf[exit]
		}
	}
	return nil
}
