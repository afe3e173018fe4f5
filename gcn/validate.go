package gcn

import (
	"sort"

	"tlog.app/go/errors"
)

// Validate checks the structural invariants of a lowered program:
//   - successor and predecessor lists agree in both CFGs,
//   - neither CFG has a critical edge,
//   - every block is reachable in the linear CFG,
//   - linear back-edges target a loop header that dominates the edge source,
//   - phis sit at the start of a block with one operand per predecessor,
//   - a block with linear successors ends with a branch to exactly those blocks,
//   - every instruction has an arity its format accepts.
func (p *Program) Validate() error {
	n := p.NumBlocks()
	if n == 0 {
		return errors.New("program has no blocks")
	}
	for i := 0; i < n; i++ {
		b := p.Block(i)
		if err := p.validateEdges(b, true); err != nil {
			return err
		}
		if err := p.validateEdges(b, false); err != nil {
			return err
		}
		if err := p.validateInstructions(b); err != nil {
			return errors.Wrap(err, "BB%d", b.Index)
		}
	}

	rpo := p.linearReversePostOrder()
	if len(rpo) != n {
		for i := 0; i < n; i++ {
			if !contains(rpo, i) {
				return errors.New("BB%d is unreachable in the linear CFG", i)
			}
		}
	}
	doms := calculateDominators(p, rpo)
	for _, b := range p.Blocks() {
		for _, succ := range b.LinearSuccs {
			if succ > b.Index {
				continue
			}
			header := p.Block(succ)
			if !header.Has(BlockKindLoopHeader) {
				return errors.New("back-edge BB%d -> BB%d does not target a loop header", b.Index, succ)
			}
			if !dominates(doms, succ, b.Index) {
				return errors.New("loop header BB%d does not dominate BB%d", succ, b.Index)
			}
		}
	}
	return nil
}

func (p *Program) validateEdges(b *Block, logical bool) error {
	name := "linear"
	preds, succs := b.LinearPreds, b.LinearSuccs
	if logical {
		name = "logical"
		preds, succs = b.LogicalPreds, b.LogicalSuccs
	}
	for _, s := range succs {
		sb := p.Block(s)
		sPreds := sb.LinearPreds
		if logical {
			sPreds = sb.LogicalPreds
		}
		if !contains(sPreds, b.Index) {
			return errors.New("%s edge BB%d -> BB%d is missing from the predecessors", name, b.Index, s)
		}
		if len(succs) > 1 && len(sPreds) > 1 {
			return errors.New("critical %s edge BB%d -> BB%d", name, b.Index, s)
		}
	}
	for _, pr := range preds {
		pb := p.Block(pr)
		pSuccs := pb.LinearSuccs
		if logical {
			pSuccs = pb.LogicalSuccs
		}
		if !contains(pSuccs, b.Index) {
			return errors.New("%s edge BB%d -> BB%d is missing from the successors", name, pr, b.Index)
		}
	}
	return nil
}

func (p *Program) validateInstructions(b *Block) error {
	seenNonPhi := false
	for idx, instr := range b.Instructions {
		if !instr.Format.arityOK(len(instr.Operands), len(instr.Definitions)) {
			return errors.New("%s has invalid arity for %s", instr.Opcode, instr.Format)
		}
		for _, d := range instr.Definitions {
			if d.IsTemp() && p.TempRegClass(d.TempID()) != d.RegClass() {
				return errors.New("%s defines %s with a mismatching class", instr.Opcode, d.Temp())
			}
		}
		for _, o := range instr.Operands {
			if o.IsTemp() && p.TempRegClass(o.TempID()) != o.RegClass() {
				return errors.New("%s reads %s with a mismatching class", instr.Opcode, o.Temp())
			}
		}
		switch {
		case instr.Opcode == OpPPhi:
			if seenNonPhi {
				return errors.New("phi after a non-phi instruction")
			}
			if len(instr.Operands) != len(b.LogicalPreds) {
				return errors.New("p_phi has %d operands for %d logical predecessors", len(instr.Operands), len(b.LogicalPreds))
			}
		case instr.Opcode == OpPLinearPhi:
			if seenNonPhi {
				return errors.New("phi after a non-phi instruction")
			}
			if len(instr.Operands) != len(b.LinearPreds) {
				return errors.New("p_linear_phi has %d operands for %d linear predecessors", len(instr.Operands), len(b.LinearPreds))
			}
		default:
			seenNonPhi = true
		}
		if instr.Format == FormatPseudoBranch && idx != len(b.Instructions)-1 {
			return errors.New("%s is not the last instruction", instr.Opcode)
		}
	}

	if len(b.LinearSuccs) == 0 {
		return nil
	}
	if len(b.Instructions) == 0 {
		return errors.New("block with successors has no branch")
	}
	last := b.Instructions[len(b.Instructions)-1]
	if last.Format != FormatPseudoBranch {
		return errors.New("block with successors ends with %s", last.Opcode)
	}
	var targets []int
	if last.Opcode == OpPBranch {
		targets = []int{last.Targets[0]}
	} else {
		targets = []int{last.Targets[0], last.Targets[1]}
	}
	succs := append([]int(nil), b.LinearSuccs...)
	sort.Ints(succs)
	sort.Ints(targets)
	if len(targets) == 2 && targets[0] == targets[1] {
		targets = targets[:1]
	}
	if !equalInts(succs, targets) {
		return errors.New("%s targets %v but the linear successors are %v", last.Opcode, targets, succs)
	}
	return nil
}

// linearReversePostOrder returns the blocks reachable from the entry in reverse postorder.
func (p *Program) linearReversePostOrder() []int {
	const unseen, seen, done = 0, 1, 2
	state := make([]byte, p.NumBlocks())
	postOrder := make([]int, 0, p.NumBlocks())
	stack := []int{0}
	state[0] = seen
	for len(stack) > 0 {
		tail := len(stack) - 1
		blk := stack[tail]
		stack = stack[:tail]
		switch state[blk] {
		case seen:
			// Revisit once every successor has been popped.
			stack = append(stack, blk)
			succs := p.Block(blk).LinearSuccs
			for i := len(succs) - 1; i >= 0; i-- {
				if s := succs[i]; state[s] == unseen {
					state[s] = seen
					stack = append(stack, s)
				}
			}
			state[blk] = done
		case done:
			postOrder = append(postOrder, blk)
		}
	}
	for i := len(postOrder)/2 - 1; i >= 0; i-- {
		j := len(postOrder) - 1 - i
		postOrder[i], postOrder[j] = postOrder[j], postOrder[i]
	}
	return postOrder
}

// calculateDominators computes the immediate dominator of every reachable block of the linear CFG
// with the algorithm of "A Simple, Fast Dominance Algorithm" by Cooper, Harvey and Kennedy.
// Unreachable blocks get -1.
func calculateDominators(p *Program, rpo []int) []int {
	order := make([]int, p.NumBlocks())
	doms := make([]int, p.NumBlocks())
	for i := range doms {
		doms[i], order[i] = -1, -1
	}
	for i, blk := range rpo {
		order[blk] = i
	}
	entry := rpo[0]
	doms[entry] = entry

	changed := true
	for changed {
		changed = false
		for _, blk := range rpo[1:] {
			u := -1
			for _, pred := range p.Block(blk).LinearPreds {
				// Skip predecessors that have not been processed yet, as in nested loops.
				if doms[pred] == -1 {
					continue
				}
				if u == -1 {
					u = pred
				} else {
					u = intersect(doms, order, u, pred)
				}
			}
			if doms[blk] != u {
				doms[blk] = u
				changed = true
			}
		}
	}
	return doms
}

func intersect(doms, order []int, blk1, blk2 int) int {
	finger1, finger2 := blk1, blk2
	for finger1 != finger2 {
		for order[finger1] > order[finger2] {
			finger1 = doms[finger1]
		}
		for order[finger2] > order[finger1] {
			finger2 = doms[finger2]
		}
	}
	return finger1
}

// dominates reports whether a dominates b.
func dominates(doms []int, a, b int) bool {
	for {
		if a == b {
			return true
		}
		next := doms[b]
		if next == b || next == -1 {
			return false
		}
		b = next
	}
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
