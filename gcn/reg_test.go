package gcn

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegClass(t *testing.T) {
	for _, tc := range []struct {
		rc       RegClass
		typ      RegType
		size     int
		bytes    int
		linear   bool
		subdword bool
		str      string
	}{
		{rc: S1, typ: RegTypeSGPR, size: 1, bytes: 4, linear: true, str: "s1"},
		{rc: S2, typ: RegTypeSGPR, size: 2, bytes: 8, linear: true, str: "s2"},
		{rc: S16, typ: RegTypeSGPR, size: 16, bytes: 64, linear: true, str: "s16"},
		{rc: V1, typ: RegTypeVGPR, size: 1, bytes: 4, str: "v1"},
		{rc: V4, typ: RegTypeVGPR, size: 4, bytes: 16, str: "v4"},
		{rc: V1B, typ: RegTypeVGPR, size: 1, bytes: 1, subdword: true, str: "v1b"},
		{rc: V6B, typ: RegTypeVGPR, size: 2, bytes: 6, subdword: true, str: "v6b"},
		{rc: LinearV1, typ: RegTypeVGPR, size: 1, bytes: 4, linear: true, str: "lv1"},
	} {
		t.Run(tc.str, func(t *testing.T) {
			require.Equal(t, tc.typ, tc.rc.Type())
			require.Equal(t, tc.size, tc.rc.Size())
			require.Equal(t, tc.bytes, tc.rc.Bytes())
			require.Equal(t, tc.linear, tc.rc.IsLinear())
			require.Equal(t, tc.subdword, tc.rc.IsSubdword())
			require.Equal(t, tc.str, tc.rc.String())
		})
	}
}

func TestRegClass_Conversions(t *testing.T) {
	require.Equal(t, V2, NewRegClass(RegTypeVGPR, 2))
	require.Equal(t, S4, NewRegClass(RegTypeSGPR, 4))
	require.Equal(t, V2B, NewSubdwordRegClass(2))
	require.Equal(t, V2, NewSubdwordRegClass(8))
	require.Equal(t, V3, S3.AsVGPR())
	require.Equal(t, LinearV2, V2.AsLinear())
	require.Equal(t, S2, S2.AsLinear())
	require.Panics(t, func() { NewRegClass(RegTypeSGPR, 0) })
}

func TestTemp(t *testing.T) {
	tmp := NewTemp(42, V3)
	require.Equal(t, uint32(42), tmp.ID())
	require.Equal(t, V3, tmp.RegClass())
	require.Equal(t, RegTypeVGPR, tmp.Type())
	require.Equal(t, 3, tmp.Size())
	require.True(t, tmp.Valid())
	require.Equal(t, "%42:v3", tmp.String())
	require.False(t, TempInvalid.Valid())
}

func TestPhysReg_String(t *testing.T) {
	for _, tc := range []struct {
		reg PhysReg
		exp string
	}{
		{reg: VCC, exp: "vcc"},
		{reg: M0, exp: "m0"},
		{reg: Exec, exp: "exec"},
		{reg: SCC, exp: "scc"},
		{reg: SGPR(5), exp: "s5"},
		{reg: VGPR(0), exp: "v0"},
		{reg: VGPR(17), exp: "v17"},
	} {
		require.Equal(t, tc.exp, tc.reg.String())
	}
}

func TestOperand(t *testing.T) {
	tmp := NewTemp(7, S2)
	for _, tc := range []struct {
		name  string
		op    Operand
		exp   string
		isTmp bool
		rc    RegClass
	}{
		{name: "temp", op: OperandTemp(tmp), exp: "%7:s2", isTmp: true, rc: S2},
		{name: "fixed", op: OperandTemp(tmp).Fixed(VCC), exp: "%7:s2:vcc", isTmp: true, rc: S2},
		{name: "const", op: OperandConst(3), exp: "3", rc: S1},
		{name: "literal", op: OperandConst(0x3fc00000), exp: "0x3fc00000", rc: S1},
		{name: "const64", op: OperandConst64(1), exp: "0x1", rc: S2},
		{name: "undef", op: OperandUndef(V2), exp: "undef:v2", rc: V2},
		{name: "exec", op: OperandReg(Exec, S2), exp: "s2:exec", rc: S2},
		{name: "invalid temp", op: OperandTemp(NewTemp(0, V1)), exp: "undef:v1", rc: V1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.exp, tc.op.String())
			require.Equal(t, tc.isTmp, tc.op.IsTemp())
			require.Equal(t, tc.rc, tc.op.RegClass())
		})
	}
}

func TestOperand_IsLiteral(t *testing.T) {
	require.False(t, OperandConst(64).IsLiteral())
	require.True(t, OperandConst(65).IsLiteral())
	require.False(t, OperandConst(0xfffffff0).IsLiteral())
	require.False(t, OperandConst(0x3f800000).IsLiteral())
	require.True(t, OperandConst(0x7f800000).IsLiteral())
	require.False(t, OperandConst64(0x3ff0000000000000).IsLiteral())
	require.False(t, OperandTemp(NewTemp(1, S1)).IsLiteral())
}

func TestDefinition(t *testing.T) {
	d := Def(NewTemp(3, S2))
	require.Equal(t, "%3:s2", d.String())
	require.Equal(t, "%3:s2(vcc)", d.Hint(VCC).String())
	require.Equal(t, "%3:s2:vcc", d.Fixed(VCC).String())
	require.Equal(t, "s1:scc", DefReg(SCC, S1).String())
	require.False(t, DefReg(SCC, S1).IsTemp())
}
