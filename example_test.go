package wavesel_test

import (
	"context"
	"fmt"
	"log"

	"github.com/wavesel/wavesel"
	"github.com/wavesel/wavesel/gcn"
	"github.com/wavesel/wavesel/ir"
)

// This is a basic example of lowering a compute shader that doubles a push constant into a
// storage buffer.
func Example() {
	b := ir.NewBuilder("double", ir.StageCompute)
	ld := b.Intrinsic(ir.IntrinsicLoadPushConstant, 1, 32, b.Imm32(0))
	ld.AlignMul = 4
	st := b.Intrinsic(ir.IntrinsicStoreSSBO, 0, 0, b.ALU(ir.OpIAdd, ld.Def, ld.Def), b.Imm32(0))
	st.AlignMul = 4

	c := wavesel.NewCompiler(wavesel.NewCompilerConfig().WithGfxLevel(gcn.GFX10))
	p, err := c.Compile(context.Background(), b.Finish())
	if err != nil {
		log.Panicln(err)
	}
	fmt.Println(p.Stage, p.NumBlocks())
	// Output: cs 1
}
