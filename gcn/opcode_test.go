package gcn

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpcode_Table(t *testing.T) {
	for op := OpInvalid + 1; op < opcodeEnd; op++ {
		require.NotEmpty(t, op.String())
		got, ok := OpcodeByName(op.String())
		require.True(t, ok, op.String())
		require.Equal(t, op, got)
	}
}

func TestOpcode_SwappedCompare(t *testing.T) {
	for _, tc := range []struct {
		op, exp Opcode
	}{
		{op: OpVCmpLtF32, exp: OpVCmpGtF32},
		{op: OpVCmpGtF32, exp: OpVCmpLtF32},
		{op: OpVCmpLeI32, exp: OpVCmpGeI32},
		{op: OpVCmpGeU64, exp: OpVCmpLeU64},
		{op: OpVCmpEqF64, exp: OpVCmpEqF64},
		{op: OpVCmpLgI32, exp: OpVCmpLgI32},
		{op: OpVCmpNeqF16, exp: OpVCmpNeqF16},
	} {
		t.Run(tc.op.String(), func(t *testing.T) {
			actual, ok := tc.op.SwappedCompare()
			require.True(t, ok)
			require.Equal(t, tc.exp, actual)
		})
	}
	_, ok := OpVCmpNltF32.SwappedCompare()
	require.False(t, ok)
	_, ok = OpVAddF32.SwappedCompare()
	require.False(t, ok)
}

func TestOpcode_Flags(t *testing.T) {
	require.True(t, OpSAndB64.WritesSCC())
	require.False(t, OpSMovB32.WritesSCC())
	require.True(t, OpSCselectB32.ReadsSCC())
	require.True(t, OpVAddCoU32.HasCarryOut())
	require.False(t, OpVAddU32.HasCarryOut())
	require.True(t, OpBufferAtomicAdd.IsAtomic())
	require.True(t, OpVAddF32.CanUseVOP3(GFX6))
	require.False(t, OpVMadakF32.CanUseVOP3(GFX9))
	require.False(t, OpSAddU32.CanUseVOP3(GFX9))
	require.True(t, OpVFmaF32.CanUseVOP3(GFX6))
}

func TestFormat(t *testing.T) {
	require.Equal(t, "VOP2", FormatVOP2.String())
	require.Equal(t, "VOP2|VOP3", FormatVOP2.AsVOP3().String())
	require.Equal(t, "VOP1|DPP", (FormatVOP1 | FormatDPP).String())
	require.Equal(t, "MUBUF", FormatMUBUF.String())
	require.True(t, FormatVOPC.IsVALU())
	require.True(t, FormatSOP2.IsSALU())
	require.True(t, FormatGLOBAL.IsFlatLike())
	require.True(t, FormatMIMG.IsVMEM())
	require.Panics(t, func() { FormatSOP1.AsVOP3() })
	require.Panics(t, func() { FormatSOPC.CheckArity(1, 1) })
	require.NotPanics(t, func() { FormatPseudoReduction.CheckArity(3, 5) })
	require.Panics(t, func() { FormatPseudoReduction.CheckArity(3, 4) })
}
