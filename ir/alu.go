package ir

// ALUOp is the operation of an ALU instruction.
type ALUOp uint8

const (
	OpMov ALUOp = iota
	OpVec2
	OpVec3
	OpVec4

	OpIAdd
	OpISub
	OpIMul
	OpINeg
	OpIAbs
	OpISign
	OpIMin
	OpIMax
	OpUMin
	OpUMax
	OpIAnd
	OpIOr
	OpIXor
	OpINot
	OpIShl
	OpIShr
	OpUShr
	OpUMulHigh
	OpIMulHigh
	OpUBitfieldExtract
	OpIBitfieldExtract
	OpBitfieldInsert
	OpBitfieldReverse
	OpBitCount
	OpFindLSB
	OpUFindMSB
	OpIFindMSB

	OpFAdd
	OpFSub
	OpFMul
	OpFFma
	OpFNeg
	OpFAbs
	OpFMin
	OpFMax
	OpFSat
	OpFRcp
	OpFRsq
	OpFSqrt
	OpFExp2
	OpFLog2
	OpFSin
	OpFCos
	OpFFloor
	OpFCeil
	OpFTrunc
	OpFRoundEven
	OpFFract
	OpFSign
	OpFLdexp

	OpFLt
	OpFGe
	OpFEq
	OpFNeu
	OpILt
	OpIGe
	OpIEq
	OpINe
	OpULt
	OpUGe

	OpBCsel
	OpB2F32
	OpB2I32
	OpI2B1

	OpF2I32
	OpF2U32
	OpI2F32
	OpU2F32
	OpF2F16
	OpF2F32
	OpF2F64
	OpI2F64
	OpU2F64
	OpI2I8
	OpI2I16
	OpI2I32
	OpI2I64
	OpU2U8
	OpU2U16
	OpU2U32
	OpU2U64

	OpPackHalf2x16
	OpPack64_2x32Split
	OpUnpack64_2x32SplitX
	OpUnpack64_2x32SplitY

	OpFddx
	OpFddy
	OpFddxFine
	OpFddyFine
	OpFddxCoarse
	OpFddyCoarse

	aluOpEnd
)

const (
	// sameAsSrc0 sizes the result like the first source.
	sameAsSrc0 = 0
	// sameAsSrc1 sizes the result like the second source.
	sameAsSrc1 = -1
)

type aluOpInfo struct {
	name      string
	numInputs int
	outBits   int
}

var aluOpInfos = [aluOpEnd]aluOpInfo{
	OpMov:  {"mov", 1, sameAsSrc0},
	OpVec2: {"vec2", 2, sameAsSrc0},
	OpVec3: {"vec3", 3, sameAsSrc0},
	OpVec4: {"vec4", 4, sameAsSrc0},

	OpIAdd:             {"iadd", 2, sameAsSrc0},
	OpISub:             {"isub", 2, sameAsSrc0},
	OpIMul:             {"imul", 2, sameAsSrc0},
	OpINeg:             {"ineg", 1, sameAsSrc0},
	OpIAbs:             {"iabs", 1, sameAsSrc0},
	OpISign:            {"isign", 1, sameAsSrc0},
	OpIMin:             {"imin", 2, sameAsSrc0},
	OpIMax:             {"imax", 2, sameAsSrc0},
	OpUMin:             {"umin", 2, sameAsSrc0},
	OpUMax:             {"umax", 2, sameAsSrc0},
	OpIAnd:             {"iand", 2, sameAsSrc0},
	OpIOr:              {"ior", 2, sameAsSrc0},
	OpIXor:             {"ixor", 2, sameAsSrc0},
	OpINot:             {"inot", 1, sameAsSrc0},
	OpIShl:             {"ishl", 2, sameAsSrc0},
	OpIShr:             {"ishr", 2, sameAsSrc0},
	OpUShr:             {"ushr", 2, sameAsSrc0},
	OpUMulHigh:         {"umul_high", 2, sameAsSrc0},
	OpIMulHigh:         {"imul_high", 2, sameAsSrc0},
	OpUBitfieldExtract: {"ubitfield_extract", 3, sameAsSrc0},
	OpIBitfieldExtract: {"ibitfield_extract", 3, sameAsSrc0},
	OpBitfieldInsert:   {"bitfield_insert", 4, sameAsSrc0},
	OpBitfieldReverse:  {"bitfield_reverse", 1, sameAsSrc0},
	OpBitCount:         {"bit_count", 1, 32},
	OpFindLSB:          {"find_lsb", 1, 32},
	OpUFindMSB:         {"ufind_msb", 1, 32},
	OpIFindMSB:         {"ifind_msb", 1, 32},

	OpFAdd:       {"fadd", 2, sameAsSrc0},
	OpFSub:       {"fsub", 2, sameAsSrc0},
	OpFMul:       {"fmul", 2, sameAsSrc0},
	OpFFma:       {"ffma", 3, sameAsSrc0},
	OpFNeg:       {"fneg", 1, sameAsSrc0},
	OpFAbs:       {"fabs", 1, sameAsSrc0},
	OpFMin:       {"fmin", 2, sameAsSrc0},
	OpFMax:       {"fmax", 2, sameAsSrc0},
	OpFSat:       {"fsat", 1, sameAsSrc0},
	OpFRcp:       {"frcp", 1, sameAsSrc0},
	OpFRsq:       {"frsq", 1, sameAsSrc0},
	OpFSqrt:      {"fsqrt", 1, sameAsSrc0},
	OpFExp2:      {"fexp2", 1, sameAsSrc0},
	OpFLog2:      {"flog2", 1, sameAsSrc0},
	OpFSin:       {"fsin", 1, sameAsSrc0},
	OpFCos:       {"fcos", 1, sameAsSrc0},
	OpFFloor:     {"ffloor", 1, sameAsSrc0},
	OpFCeil:      {"fceil", 1, sameAsSrc0},
	OpFTrunc:     {"ftrunc", 1, sameAsSrc0},
	OpFRoundEven: {"fround_even", 1, sameAsSrc0},
	OpFFract:     {"ffract", 1, sameAsSrc0},
	OpFSign:      {"fsign", 1, sameAsSrc0},
	OpFLdexp:     {"fldexp", 2, sameAsSrc0},

	OpFLt:  {"flt", 2, 1},
	OpFGe:  {"fge", 2, 1},
	OpFEq:  {"feq", 2, 1},
	OpFNeu: {"fneu", 2, 1},
	OpILt:  {"ilt", 2, 1},
	OpIGe:  {"ige", 2, 1},
	OpIEq:  {"ieq", 2, 1},
	OpINe:  {"ine", 2, 1},
	OpULt:  {"ult", 2, 1},
	OpUGe:  {"uge", 2, 1},

	OpBCsel: {"bcsel", 3, sameAsSrc1},
	OpB2F32: {"b2f32", 1, 32},
	OpB2I32: {"b2i32", 1, 32},
	OpI2B1:  {"i2b1", 1, 1},

	OpF2I32: {"f2i32", 1, 32},
	OpF2U32: {"f2u32", 1, 32},
	OpI2F32: {"i2f32", 1, 32},
	OpU2F32: {"u2f32", 1, 32},
	OpF2F16: {"f2f16", 1, 16},
	OpF2F32: {"f2f32", 1, 32},
	OpF2F64: {"f2f64", 1, 64},
	OpI2F64: {"i2f64", 1, 64},
	OpU2F64: {"u2f64", 1, 64},
	OpI2I8:  {"i2i8", 1, 8},
	OpI2I16: {"i2i16", 1, 16},
	OpI2I32: {"i2i32", 1, 32},
	OpI2I64: {"i2i64", 1, 64},
	OpU2U8:  {"u2u8", 1, 8},
	OpU2U16: {"u2u16", 1, 16},
	OpU2U32: {"u2u32", 1, 32},
	OpU2U64: {"u2u64", 1, 64},

	OpPackHalf2x16:        {"pack_half_2x16", 1, 32},
	OpPack64_2x32Split:    {"pack_64_2x32_split", 2, 64},
	OpUnpack64_2x32SplitX: {"unpack_64_2x32_split_x", 1, 32},
	OpUnpack64_2x32SplitY: {"unpack_64_2x32_split_y", 1, 32},

	OpFddx:       {"fddx", 1, sameAsSrc0},
	OpFddy:       {"fddy", 1, sameAsSrc0},
	OpFddxFine:   {"fddx_fine", 1, sameAsSrc0},
	OpFddyFine:   {"fddy_fine", 1, sameAsSrc0},
	OpFddxCoarse: {"fddx_coarse", 1, sameAsSrc0},
	OpFddyCoarse: {"fddy_coarse", 1, sameAsSrc0},
}

// String implements fmt.Stringer.
func (op ALUOp) String() string {
	if op >= aluOpEnd {
		return "alu(?)"
	}
	return aluOpInfos[op].name
}

// NumInputs returns the number of sources the operation takes.
func (op ALUOp) NumInputs() int { return aluOpInfos[op].numInputs }

// IsVec reports whether op builds a vector from scalar sources.
func (op ALUOp) IsVec() bool { return op >= OpVec2 && op <= OpVec4 }

// IsDerivative reports whether op reads neighboring lanes of a quad.
func (op ALUOp) IsDerivative() bool { return op >= OpFddx && op <= OpFddyCoarse }

// IsFloat reports whether op computes a floating-point result from floating-point sources.
func (op ALUOp) IsFloat() bool {
	return (op >= OpFAdd && op <= OpFLdexp) || op.IsDerivative()
}
