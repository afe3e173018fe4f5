package gcn

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newDiamond returns BB0 -> {BB1, BB2} -> BB3 with branches in place.
func newDiamond(t *testing.T) *Program {
	p := NewProgram(GFX9, 64, HWStageCS)
	blocks := []*Block{p.CreateBlock(), p.CreateBlock(), p.CreateBlock(), p.CreateBlock()}
	for _, e := range [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}} {
		blocks[e[1]].LogicalPreds = append(blocks[e[1]].LogicalPreds, e[0])
		blocks[e[1]].LinearPreds = append(blocks[e[1]].LinearPreds, e[0])
	}
	b := NewBuilder(p, blocks[0])
	cond := b.SOPC(OpSCmpEqU32, OperandConst(1), OperandConst(2)).Result()
	b.Branch(OpPCbranchZ, 2, 1, OperandSCC(cond))
	b.Reset(blocks[1])
	b.Branch(OpPBranch, 3, 3)
	b.Reset(blocks[2])
	b.Branch(OpPBranch, 3, 3)
	b.Reset(blocks[3])
	b.SOPP(OpSEndpgm, 0)
	p.ComputeSuccessors()
	require.NoError(t, p.Validate())
	return p
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(p *Program)
		expErr string
	}{
		{
			name: "critical edge",
			mutate: func(p *Program) {
				// BB0 -> BB3 directly, while BB3 already has two predecessors.
				p.Block(3).LinearPreds = append(p.Block(3).LinearPreds, 0)
				p.ComputeSuccessors()
			},
			expErr: "critical linear edge BB0 -> BB3",
		},
		{
			name: "unreachable",
			mutate: func(p *Program) {
				p.Block(2).LinearPreds = nil
				p.Block(2).LogicalPreds = nil
				p.Block(0).Instructions[len(p.Block(0).Instructions)-1].Opcode = OpPBranch
				p.Block(0).Instructions[len(p.Block(0).Instructions)-1].Targets = [2]int{1, 1}
				p.ComputeSuccessors()
			},
			expErr: "BB2 is unreachable",
		},
		{
			name: "phi operand count",
			mutate: func(p *Program) {
				b := NewBuilder(p, p.Block(3))
				phi := b.Create(OpPPhi, FormatPseudo, 1, 1)
				phi.Definitions[0] = b.Def(V1)
				phi.Operands[0] = OperandUndef(V1)
				b.InsertPhi(phi)
			},
			expErr: "p_phi has 1 operands for 2 logical predecessors",
		},
		{
			name: "branch mismatch",
			mutate: func(p *Program) {
				p.Block(1).Instructions[0].Targets = [2]int{2, 2}
			},
			expErr: "p_branch targets [2] but the linear successors are [3]",
		},
		{
			name: "missing branch",
			mutate: func(p *Program) {
				p.Block(2).Instructions = nil
			},
			expErr: "block with successors has no branch",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := newDiamond(t)
			tc.mutate(p)
			err := p.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.expErr)
		})
	}
}

// buildCFG returns a program with n blocks connected by edges in both CFGs, each block ending
// with the branch its successors need.
func buildCFG(t *testing.T, n int, headers []int, edges [][2]int) *Program {
	p := NewProgram(GFX9, 64, HWStageCS)
	for i := 0; i < n; i++ {
		p.CreateBlock()
	}
	for _, h := range headers {
		p.Block(h).Kind |= BlockKindLoopHeader
	}
	for _, e := range edges {
		to := p.Block(e[1])
		to.LogicalPreds = append(to.LogicalPreds, e[0])
		to.LinearPreds = append(to.LinearPreds, e[0])
	}
	p.ComputeSuccessors()
	for _, blk := range p.Blocks() {
		b := NewBuilder(p, blk)
		switch succs := blk.LinearSuccs; len(succs) {
		case 0:
			b.SOPP(OpSEndpgm, 0)
		case 1:
			b.Branch(OpPBranch, succs[0], succs[0])
		case 2:
			b.Branch(OpPCbranchZ, succs[0], succs[1], OperandConst(0))
		default:
			t.Fatalf("BB%d has %d successors", blk.Index, len(succs))
		}
	}
	return p
}

func TestValidate_BackEdges(t *testing.T) {
	for _, tc := range []struct {
		name    string
		n       int
		headers []int
		edges   [][2]int
		expErr  string
	}{
		{
			name:    "loop",
			n:       4,
			headers: []int{1},
			edges:   [][2]int{{0, 1}, {1, 2}, {2, 1}, {2, 3}},
			// BB2 branches back and out, BB1 has two predecessors.
			expErr: "critical logical edge BB2 -> BB1",
		},
		{
			name:    "loop with continue block",
			n:       5,
			headers: []int{1},
			edges:   [][2]int{{0, 1}, {1, 2}, {2, 3}, {2, 4}, {3, 1}},
		},
		{
			name:   "back-edge to non header",
			n:      3,
			edges:  [][2]int{{0, 1}, {1, 2}, {2, 1}},
			expErr: "back-edge BB2 -> BB1 does not target a loop header",
		},
		{
			name:    "header does not dominate",
			n:       5,
			headers: []int{3},
			edges:   [][2]int{{0, 1}, {0, 2}, {1, 3}, {3, 4}, {2, 4}, {4, 3}},
			expErr:  "loop header BB3 does not dominate BB4",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := buildCFG(t, tc.n, tc.headers, tc.edges)
			err := p.Validate()
			if tc.expErr == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.expErr)
			}
		})
	}
}

func TestValidate_Loop(t *testing.T) {
	p := NewProgram(GFX9, 64, HWStageCS)
	pre, header, exit := p.CreateBlock(), p.CreateBlock(), p.CreateBlock()
	header.Kind |= BlockKindLoopHeader
	header.LinearPreds = []int{pre.Index, header.Index}
	header.LogicalPreds = []int{pre.Index, header.Index}
	exit.LinearPreds = []int{header.Index}
	exit.LogicalPreds = []int{header.Index}
	p.ComputeSuccessors()
	// A self loop is a critical edge: the header has two predecessors and two successors.
	require.Error(t, p.Validate())

	b := NewBuilder(p, pre)
	b.Branch(OpPBranch, header.Index, header.Index)
	require.Error(t, p.Validate())
}

func TestProgram_Dominators(t *testing.T) {
	p := newDiamond(t)
	rpo := p.linearReversePostOrder()
	require.Equal(t, []int{0, 2, 1, 3}, rpo)
	doms := calculateDominators(p, rpo)
	require.Equal(t, []int{0, 0, 0, 0}, doms)
	require.True(t, dominates(doms, 0, 3))
	require.False(t, dominates(doms, 1, 3))
}

func TestProgram_Format(t *testing.T) {
	p := newDiamond(t)
	p.Block(0).Kind = BlockKindTopLevel | BlockKindUniform
	require.Equal(t, `gfx9 wave64 cs
BB0 (uniform, top-level) depth=0
  /* logical preds: [], linear preds: [] */
  %1:s1:scc = s_cmp_eq_u32 1, 2
  p_cbranch_z %1:s1:scc BB2, BB1
BB1 depth=0
  /* logical preds: [BB0], linear preds: [BB0] */
  p_branch BB3
BB2 depth=0
  /* logical preds: [BB0], linear preds: [BB0] */
  p_branch BB3
BB3 depth=0
  /* logical preds: [BB1 BB2], linear preds: [BB1 BB2] */
  s_endpgm
`, p.Format())
}
