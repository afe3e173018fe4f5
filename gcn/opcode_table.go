package gcn

// Opcode is a target instruction opcode.
type Opcode uint16

const (
	OpInvalid Opcode = iota
	OpPParallelcopy
	OpPStartpgm
	OpPPhi
	OpPLinearPhi
	OpPCreateVector
	OpPExtractVector
	OpPSplitVector
	OpPAsUniform
	OpPUnitTest
	OpPLogicalStart
	OpPLogicalEnd
	OpPDiscardIf
	OpPDemoteToHelper
	OpPIsHelper
	OpPWqm
	OpPBpermute
	OpPExitEarlyIf
	OpPInitScratch
	OpPBranch
	OpPCbranchZ
	OpPCbranchNz
	OpPMemoryBarrierCommon
	OpPMemoryBarrierAtomic
	OpPMemoryBarrierBuffer
	OpPMemoryBarrierImage
	OpPMemoryBarrierShared
	OpPMemoryBarrierGsData
	OpPMemoryBarrierGsSendmsg
	OpPReduce
	OpPInclusiveScan
	OpPExclusiveScan
	OpSMovB32
	OpSMovB64
	OpSBrevB32
	OpSFf1I32B32
	OpSFf1I32B64
	OpSFlbitI32B32
	OpSFlbitI32B64
	OpSFlbitI32
	OpSSextI32I8
	OpSSextI32I16
	OpSGetpcB64
	OpSNotB32
	OpSNotB64
	OpSWqmB32
	OpSWqmB64
	OpSBcnt1I32B32
	OpSBcnt1I32B64
	OpSAndSaveexecB32
	OpSAndSaveexecB64
	OpSOrSaveexecB32
	OpSOrSaveexecB64
	OpSAbsI32
	OpSAddU32
	OpSSubU32
	OpSAddI32
	OpSSubI32
	OpSAddcU32
	OpSSubbU32
	OpSMinI32
	OpSMinU32
	OpSMaxI32
	OpSMaxU32
	OpSAndB32
	OpSAndB64
	OpSOrB32
	OpSOrB64
	OpSXorB32
	OpSXorB64
	OpSAndn2B32
	OpSAndn2B64
	OpSOrn2B32
	OpSOrn2B64
	OpSXnorB32
	OpSXnorB64
	OpSLshlB32
	OpSLshlB64
	OpSLshrB32
	OpSLshrB64
	OpSAshrI32
	OpSAshrI64
	OpSBfeU32
	OpSBfeI32
	OpSBfeU64
	OpSBfeI64
	OpSAbsdiffI32
	OpSCselectB32
	OpSCselectB64
	OpSBfmB32
	OpSBfmB64
	OpSMulI32
	OpSPackLlB32B16
	OpSMulHiU32
	OpSMulHiI32
	OpSMovkI32
	OpSCmpEqI32
	OpSCmpLgI32
	OpSCmpGtI32
	OpSCmpGeI32
	OpSCmpLtI32
	OpSCmpLeI32
	OpSCmpEqU32
	OpSCmpLgU32
	OpSCmpGtU32
	OpSCmpGeU32
	OpSCmpLtU32
	OpSCmpLeU32
	OpSCmpEqU64
	OpSCmpLgU64
	OpSBitcmp1B32
	OpSBitcmp1B64
	OpSBitcmp0B32
	OpSBitcmp0B64
	OpSEndpgm
	OpSBarrier
	OpSSendmsg
	OpSWaitcnt
	OpSNop
	OpSLoadDword
	OpSLoadDwordx2
	OpSLoadDwordx4
	OpSLoadDwordx8
	OpSLoadDwordx16
	OpSBufferLoadDword
	OpSBufferLoadDwordx2
	OpSBufferLoadDwordx4
	OpSBufferLoadDwordx8
	OpSBufferLoadDwordx16
	OpVNop
	OpVMovB32
	OpVReadfirstlaneB32
	OpVCvtF32I32
	OpVCvtF32U32
	OpVCvtI32F32
	OpVCvtU32F32
	OpVCvtF16F32
	OpVCvtF32F16
	OpVCvtF64F32
	OpVCvtF32F64
	OpVCvtF64I32
	OpVCvtF64U32
	OpVCvtI32F64
	OpVCvtU32F64
	OpVCvtF16U16
	OpVCvtF16I16
	OpVCvtU16F16
	OpVCvtI16F16
	OpVCvtF32Ubyte0
	OpVFractF16
	OpVTruncF16
	OpVCeilF16
	OpVRndneF16
	OpVFloorF16
	OpVRcpF16
	OpVRsqF16
	OpVSqrtF16
	OpVFractF32
	OpVTruncF32
	OpVCeilF32
	OpVRndneF32
	OpVFloorF32
	OpVRcpF32
	OpVRsqF32
	OpVSqrtF32
	OpVFractF64
	OpVTruncF64
	OpVCeilF64
	OpVRndneF64
	OpVFloorF64
	OpVRcpF64
	OpVRsqF64
	OpVSqrtF64
	OpVExpF32
	OpVLogF32
	OpVSinF32
	OpVCosF32
	OpVExpF16
	OpVLogF16
	OpVSinF16
	OpVCosF16
	OpVNotB32
	OpVBfrevB32
	OpVFfbhU32
	OpVFfblB32
	OpVFfbhI32
	OpVCndmaskB32
	OpVAddF32
	OpVSubF32
	OpVSubrevF32
	OpVMulF32
	OpVMinF32
	OpVMaxF32
	OpVAddF16
	OpVSubF16
	OpVMulF16
	OpVMinF16
	OpVMaxF16
	OpVAddU32
	OpVSubU32
	OpVSubrevU32
	OpVAddU16
	OpVSubU16
	OpVMulLoU16
	OpVMulU32U24
	OpVMulI32I24
	OpVMinI32
	OpVMaxI32
	OpVMinU32
	OpVMaxU32
	OpVMinI16
	OpVMaxI16
	OpVMinU16
	OpVMaxU16
	OpVLshrrevB32
	OpVAshrrevI32
	OpVLshlrevB32
	OpVLshlrevB16
	OpVLshrrevB16
	OpVAshrrevI16
	OpVAndB32
	OpVOrB32
	OpVXorB32
	OpVMacF32
	OpVLdexpF16
	OpVCvtPkrtzF16F32
	OpVAddCoU32
	OpVSubCoU32
	OpVSubrevCoU32
	OpVAddcCoU32
	OpVSubbCoU32
	OpVMadakF32
	OpVMadmkF32
	OpVMadF32
	OpVFmaF32
	OpVFmaF64
	OpVAddF64
	OpVMulF64
	OpVMinF64
	OpVMaxF64
	OpVLdexpF64
	OpVLdexpF32
	OpVMulLoU32
	OpVMulHiU32
	OpVMulHiI32
	OpVBfeU32
	OpVBfeI32
	OpVBfiB32
	OpVAlignbitB32
	OpVLshlrevB64
	OpVLshrrevB64
	OpVAshrrevI64
	OpVLshlB64
	OpVLshrB64
	OpVAshrI64
	OpVMed3F32
	OpVMed3I32
	OpVMed3U32
	OpVReadlaneB32
	OpVWritelaneB32
	OpVMbcntLoU32B32
	OpVMbcntHiU32B32
	OpVBcntU32B32
	OpVBfmB32
	OpVAdd3U32
	OpVLshlAddU32
	OpVPermB32
	OpVMadU32U24
	OpVPackB32F16
	OpVCvtPkU16U32
	OpVAddCoU32E64
	OpVInterpP1F32
	OpVInterpP2F32
	OpVInterpMovF32
	OpVCmpLtF16
	OpVCmpEqF16
	OpVCmpLeF16
	OpVCmpGtF16
	OpVCmpLgF16
	OpVCmpGeF16
	OpVCmpOF16
	OpVCmpUF16
	OpVCmpNeqF16
	OpVCmpNltF16
	OpVCmpNgeF16
	OpVCmpLtF32
	OpVCmpEqF32
	OpVCmpLeF32
	OpVCmpGtF32
	OpVCmpLgF32
	OpVCmpGeF32
	OpVCmpOF32
	OpVCmpUF32
	OpVCmpNeqF32
	OpVCmpNltF32
	OpVCmpNgeF32
	OpVCmpLtF64
	OpVCmpEqF64
	OpVCmpLeF64
	OpVCmpGtF64
	OpVCmpLgF64
	OpVCmpGeF64
	OpVCmpOF64
	OpVCmpUF64
	OpVCmpNeqF64
	OpVCmpNltF64
	OpVCmpNgeF64
	OpVCmpLtI16
	OpVCmpEqI16
	OpVCmpLeI16
	OpVCmpGtI16
	OpVCmpLgI16
	OpVCmpGeI16
	OpVCmpLtU16
	OpVCmpEqU16
	OpVCmpLeU16
	OpVCmpGtU16
	OpVCmpLgU16
	OpVCmpGeU16
	OpVCmpLtI32
	OpVCmpEqI32
	OpVCmpLeI32
	OpVCmpGtI32
	OpVCmpLgI32
	OpVCmpGeI32
	OpVCmpLtU32
	OpVCmpEqU32
	OpVCmpLeU32
	OpVCmpGtU32
	OpVCmpLgU32
	OpVCmpGeU32
	OpVCmpLtI64
	OpVCmpEqI64
	OpVCmpLeI64
	OpVCmpGtI64
	OpVCmpLgI64
	OpVCmpGeI64
	OpVCmpLtU64
	OpVCmpEqU64
	OpVCmpLeU64
	OpVCmpGtU64
	OpVCmpLgU64
	OpVCmpGeU64
	OpVCmpClassF32
	OpVCmpClassF64
	OpDsReadB32
	OpDsReadB64
	OpDsReadB96
	OpDsReadB128
	OpDsRead2B32
	OpDsRead2B64
	OpDsReadU8
	OpDsReadU16
	OpDsWriteB32
	OpDsWriteB64
	OpDsWriteB96
	OpDsWriteB128
	OpDsWrite2B32
	OpDsWrite2B64
	OpDsWriteB8
	OpDsWriteB16
	OpDsSwizzleB32
	OpDsBpermuteB32
	OpDsAddU32
	OpDsAddRtnU32
	OpDsMinI32
	OpDsMinRtnI32
	OpDsMaxI32
	OpDsMaxRtnI32
	OpDsMinU32
	OpDsMinRtnU32
	OpDsMaxU32
	OpDsMaxRtnU32
	OpDsAndB32
	OpDsAndRtnB32
	OpDsOrB32
	OpDsOrRtnB32
	OpDsXorB32
	OpDsXorRtnB32
	OpDsWrxchgRtnB32
	OpDsCmpstB32
	OpDsCmpstRtnB32
	OpDsAddU64
	OpDsAddRtnU64
	OpDsMinI64
	OpDsMinRtnI64
	OpDsMaxI64
	OpDsMaxRtnI64
	OpDsMinU64
	OpDsMinRtnU64
	OpDsMaxU64
	OpDsMaxRtnU64
	OpDsAndB64
	OpDsAndRtnB64
	OpDsOrB64
	OpDsOrRtnB64
	OpDsXorB64
	OpDsXorRtnB64
	OpDsWrxchgRtnB64
	OpDsCmpstB64
	OpDsCmpstRtnB64
	OpBufferLoadUbyte
	OpBufferLoadUshort
	OpBufferLoadDword
	OpBufferLoadDwordx2
	OpBufferLoadDwordx3
	OpBufferLoadDwordx4
	OpBufferStoreByte
	OpBufferStoreShort
	OpBufferStoreDword
	OpBufferStoreDwordx2
	OpBufferStoreDwordx3
	OpBufferStoreDwordx4
	OpBufferLoadFormatXyzw
	OpBufferAtomicAdd
	OpBufferAtomicSmin
	OpBufferAtomicUmin
	OpBufferAtomicSmax
	OpBufferAtomicUmax
	OpBufferAtomicAnd
	OpBufferAtomicOr
	OpBufferAtomicXor
	OpBufferAtomicSwap
	OpBufferAtomicCmpswap
	OpBufferAtomicAddX2
	OpBufferAtomicSminX2
	OpBufferAtomicUminX2
	OpBufferAtomicSmaxX2
	OpBufferAtomicUmaxX2
	OpBufferAtomicAndX2
	OpBufferAtomicOrX2
	OpBufferAtomicXorX2
	OpBufferAtomicSwapX2
	OpBufferAtomicCmpswapX2
	OpGlobalLoadUbyte
	OpGlobalLoadUshort
	OpGlobalLoadDword
	OpGlobalLoadDwordx2
	OpGlobalLoadDwordx3
	OpGlobalLoadDwordx4
	OpGlobalStoreByte
	OpGlobalStoreShort
	OpGlobalStoreDword
	OpGlobalStoreDwordx2
	OpGlobalStoreDwordx3
	OpGlobalStoreDwordx4
	OpGlobalAtomicAdd
	OpGlobalAtomicSmin
	OpGlobalAtomicUmin
	OpGlobalAtomicSmax
	OpGlobalAtomicUmax
	OpGlobalAtomicAnd
	OpGlobalAtomicOr
	OpGlobalAtomicXor
	OpGlobalAtomicSwap
	OpGlobalAtomicCmpswap
	OpGlobalAtomicAddX2
	OpGlobalAtomicSminX2
	OpGlobalAtomicUminX2
	OpGlobalAtomicSmaxX2
	OpGlobalAtomicUmaxX2
	OpGlobalAtomicAndX2
	OpGlobalAtomicOrX2
	OpGlobalAtomicXorX2
	OpGlobalAtomicSwapX2
	OpGlobalAtomicCmpswapX2
	OpFlatLoadUbyte
	OpFlatLoadUshort
	OpFlatLoadDword
	OpFlatLoadDwordx2
	OpFlatLoadDwordx3
	OpFlatLoadDwordx4
	OpFlatStoreByte
	OpFlatStoreShort
	OpFlatStoreDword
	OpFlatStoreDwordx2
	OpFlatStoreDwordx3
	OpFlatStoreDwordx4
	OpFlatAtomicAdd
	OpFlatAtomicSmin
	OpFlatAtomicUmin
	OpFlatAtomicSmax
	OpFlatAtomicUmax
	OpFlatAtomicAnd
	OpFlatAtomicOr
	OpFlatAtomicXor
	OpFlatAtomicSwap
	OpFlatAtomicCmpswap
	OpFlatAtomicAddX2
	OpFlatAtomicSminX2
	OpFlatAtomicUminX2
	OpFlatAtomicSmaxX2
	OpFlatAtomicUmaxX2
	OpFlatAtomicAndX2
	OpFlatAtomicOrX2
	OpFlatAtomicXorX2
	OpFlatAtomicSwapX2
	OpFlatAtomicCmpswapX2
	OpScratchLoadDword
	OpScratchLoadDwordx2
	OpScratchLoadDwordx3
	OpScratchLoadDwordx4
	OpScratchStoreDword
	OpScratchStoreDwordx2
	OpScratchStoreDwordx3
	OpScratchStoreDwordx4
	OpImageSample
	OpImageSampleB
	OpImageSampleL
	OpImageSampleD
	OpImageSampleLz
	OpImageSampleC
	OpImageSampleCB
	OpImageSampleCL
	OpImageSampleCD
	OpImageSampleCLz
	OpImageGather4
	OpImageGather4Lz
	OpImageGather4C
	OpImageGather4CLz
	OpImageSampleO
	OpImageSampleBO
	OpImageSampleLO
	OpImageSampleDO
	OpImageSampleLzO
	OpImageSampleCO
	OpImageSampleCBO
	OpImageSampleCLO
	OpImageSampleCDO
	OpImageSampleCLzO
	OpImageGather4O
	OpImageGather4LzO
	OpImageGather4CO
	OpImageGather4CLzO
	OpImageLoad
	OpImageLoadMip
	OpImageStore
	OpImageStoreMip
	OpImageGetResinfo
	OpImageGetLod
	OpImageAtomicAdd
	OpImageAtomicSmin
	OpImageAtomicUmin
	OpImageAtomicSmax
	OpImageAtomicUmax
	OpImageAtomicAnd
	OpImageAtomicOr
	OpImageAtomicXor
	OpImageAtomicSwap
	OpImageAtomicCmpswap
	OpExp
	opcodeEnd
)

var opcodeInfos = [opcodeEnd]opcodeInfo{
	OpInvalid:                 {"invalid", FormatPseudo, 0},
	OpPParallelcopy:           {"p_parallelcopy", FormatPseudo, 0},
	OpPStartpgm:               {"p_startpgm", FormatPseudo, 0},
	OpPPhi:                    {"p_phi", FormatPseudo, 0},
	OpPLinearPhi:              {"p_linear_phi", FormatPseudo, 0},
	OpPCreateVector:           {"p_create_vector", FormatPseudo, 0},
	OpPExtractVector:          {"p_extract_vector", FormatPseudo, 0},
	OpPSplitVector:            {"p_split_vector", FormatPseudo, 0},
	OpPAsUniform:              {"p_as_uniform", FormatPseudo, 0},
	OpPUnitTest:               {"p_unit_test", FormatPseudo, 0},
	OpPLogicalStart:           {"p_logical_start", FormatPseudo, 0},
	OpPLogicalEnd:             {"p_logical_end", FormatPseudo, 0},
	OpPDiscardIf:              {"p_discard_if", FormatPseudo, 0},
	OpPDemoteToHelper:         {"p_demote_to_helper", FormatPseudo, 0},
	OpPIsHelper:               {"p_is_helper", FormatPseudo, 0},
	OpPWqm:                    {"p_wqm", FormatPseudo, 0},
	OpPBpermute:               {"p_bpermute", FormatPseudo, 0},
	OpPExitEarlyIf:            {"p_exit_early_if", FormatPseudo, 0},
	OpPInitScratch:            {"p_init_scratch", FormatPseudo, 0},
	OpPBranch:                 {"p_branch", FormatPseudoBranch, 0},
	OpPCbranchZ:               {"p_cbranch_z", FormatPseudoBranch, 0},
	OpPCbranchNz:              {"p_cbranch_nz", FormatPseudoBranch, 0},
	OpPMemoryBarrierCommon:    {"p_memory_barrier_common", FormatPseudoBarrier, 0},
	OpPMemoryBarrierAtomic:    {"p_memory_barrier_atomic", FormatPseudoBarrier, 0},
	OpPMemoryBarrierBuffer:    {"p_memory_barrier_buffer", FormatPseudoBarrier, 0},
	OpPMemoryBarrierImage:     {"p_memory_barrier_image", FormatPseudoBarrier, 0},
	OpPMemoryBarrierShared:    {"p_memory_barrier_shared", FormatPseudoBarrier, 0},
	OpPMemoryBarrierGsData:    {"p_memory_barrier_gs_data", FormatPseudoBarrier, 0},
	OpPMemoryBarrierGsSendmsg: {"p_memory_barrier_gs_sendmsg", FormatPseudoBarrier, 0},
	OpPReduce:                 {"p_reduce", FormatPseudoReduction, 0},
	OpPInclusiveScan:          {"p_inclusive_scan", FormatPseudoReduction, 0},
	OpPExclusiveScan:          {"p_exclusive_scan", FormatPseudoReduction, 0},
	OpSMovB32:                 {"s_mov_b32", FormatSOP1, 0},
	OpSMovB64:                 {"s_mov_b64", FormatSOP1, 0},
	OpSBrevB32:                {"s_brev_b32", FormatSOP1, 0},
	OpSFf1I32B32:              {"s_ff1_i32_b32", FormatSOP1, 0},
	OpSFf1I32B64:              {"s_ff1_i32_b64", FormatSOP1, 0},
	OpSFlbitI32B32:            {"s_flbit_i32_b32", FormatSOP1, 0},
	OpSFlbitI32B64:            {"s_flbit_i32_b64", FormatSOP1, 0},
	OpSFlbitI32:               {"s_flbit_i32", FormatSOP1, 0},
	OpSSextI32I8:              {"s_sext_i32_i8", FormatSOP1, 0},
	OpSSextI32I16:             {"s_sext_i32_i16", FormatSOP1, 0},
	OpSGetpcB64:               {"s_getpc_b64", FormatSOP1, 0},
	OpSNotB32:                 {"s_not_b32", FormatSOP1, flagWritesSCC},
	OpSNotB64:                 {"s_not_b64", FormatSOP1, flagWritesSCC},
	OpSWqmB32:                 {"s_wqm_b32", FormatSOP1, flagWritesSCC},
	OpSWqmB64:                 {"s_wqm_b64", FormatSOP1, flagWritesSCC},
	OpSBcnt1I32B32:            {"s_bcnt1_i32_b32", FormatSOP1, flagWritesSCC},
	OpSBcnt1I32B64:            {"s_bcnt1_i32_b64", FormatSOP1, flagWritesSCC},
	OpSAndSaveexecB32:         {"s_and_saveexec_b32", FormatSOP1, flagWritesSCC},
	OpSAndSaveexecB64:         {"s_and_saveexec_b64", FormatSOP1, flagWritesSCC},
	OpSOrSaveexecB32:          {"s_or_saveexec_b32", FormatSOP1, flagWritesSCC},
	OpSOrSaveexecB64:          {"s_or_saveexec_b64", FormatSOP1, flagWritesSCC},
	OpSAbsI32:                 {"s_abs_i32", FormatSOP1, flagWritesSCC},
	OpSAddU32:                 {"s_add_u32", FormatSOP2, flagWritesSCC},
	OpSSubU32:                 {"s_sub_u32", FormatSOP2, flagWritesSCC},
	OpSAddI32:                 {"s_add_i32", FormatSOP2, flagWritesSCC},
	OpSSubI32:                 {"s_sub_i32", FormatSOP2, flagWritesSCC},
	OpSAddcU32:                {"s_addc_u32", FormatSOP2, flagWritesSCC},
	OpSSubbU32:                {"s_subb_u32", FormatSOP2, flagWritesSCC},
	OpSMinI32:                 {"s_min_i32", FormatSOP2, flagWritesSCC},
	OpSMinU32:                 {"s_min_u32", FormatSOP2, flagWritesSCC},
	OpSMaxI32:                 {"s_max_i32", FormatSOP2, flagWritesSCC},
	OpSMaxU32:                 {"s_max_u32", FormatSOP2, flagWritesSCC},
	OpSAndB32:                 {"s_and_b32", FormatSOP2, flagWritesSCC},
	OpSAndB64:                 {"s_and_b64", FormatSOP2, flagWritesSCC},
	OpSOrB32:                  {"s_or_b32", FormatSOP2, flagWritesSCC},
	OpSOrB64:                  {"s_or_b64", FormatSOP2, flagWritesSCC},
	OpSXorB32:                 {"s_xor_b32", FormatSOP2, flagWritesSCC},
	OpSXorB64:                 {"s_xor_b64", FormatSOP2, flagWritesSCC},
	OpSAndn2B32:               {"s_andn2_b32", FormatSOP2, flagWritesSCC},
	OpSAndn2B64:               {"s_andn2_b64", FormatSOP2, flagWritesSCC},
	OpSOrn2B32:                {"s_orn2_b32", FormatSOP2, flagWritesSCC},
	OpSOrn2B64:                {"s_orn2_b64", FormatSOP2, flagWritesSCC},
	OpSXnorB32:                {"s_xnor_b32", FormatSOP2, flagWritesSCC},
	OpSXnorB64:                {"s_xnor_b64", FormatSOP2, flagWritesSCC},
	OpSLshlB32:                {"s_lshl_b32", FormatSOP2, flagWritesSCC},
	OpSLshlB64:                {"s_lshl_b64", FormatSOP2, flagWritesSCC},
	OpSLshrB32:                {"s_lshr_b32", FormatSOP2, flagWritesSCC},
	OpSLshrB64:                {"s_lshr_b64", FormatSOP2, flagWritesSCC},
	OpSAshrI32:                {"s_ashr_i32", FormatSOP2, flagWritesSCC},
	OpSAshrI64:                {"s_ashr_i64", FormatSOP2, flagWritesSCC},
	OpSBfeU32:                 {"s_bfe_u32", FormatSOP2, flagWritesSCC},
	OpSBfeI32:                 {"s_bfe_i32", FormatSOP2, flagWritesSCC},
	OpSBfeU64:                 {"s_bfe_u64", FormatSOP2, flagWritesSCC},
	OpSBfeI64:                 {"s_bfe_i64", FormatSOP2, flagWritesSCC},
	OpSAbsdiffI32:             {"s_absdiff_i32", FormatSOP2, flagWritesSCC},
	OpSCselectB32:             {"s_cselect_b32", FormatSOP2, flagReadsSCC},
	OpSCselectB64:             {"s_cselect_b64", FormatSOP2, flagReadsSCC},
	OpSBfmB32:                 {"s_bfm_b32", FormatSOP2, 0},
	OpSBfmB64:                 {"s_bfm_b64", FormatSOP2, 0},
	OpSMulI32:                 {"s_mul_i32", FormatSOP2, 0},
	OpSPackLlB32B16:           {"s_pack_ll_b32_b16", FormatSOP2, 0},
	OpSMulHiU32:               {"s_mul_hi_u32", FormatSOP2, 0},
	OpSMulHiI32:               {"s_mul_hi_i32", FormatSOP2, 0},
	OpSMovkI32:                {"s_movk_i32", FormatSOPK, 0},
	OpSCmpEqI32:               {"s_cmp_eq_i32", FormatSOPC, 0},
	OpSCmpLgI32:               {"s_cmp_lg_i32", FormatSOPC, 0},
	OpSCmpGtI32:               {"s_cmp_gt_i32", FormatSOPC, 0},
	OpSCmpGeI32:               {"s_cmp_ge_i32", FormatSOPC, 0},
	OpSCmpLtI32:               {"s_cmp_lt_i32", FormatSOPC, 0},
	OpSCmpLeI32:               {"s_cmp_le_i32", FormatSOPC, 0},
	OpSCmpEqU32:               {"s_cmp_eq_u32", FormatSOPC, 0},
	OpSCmpLgU32:               {"s_cmp_lg_u32", FormatSOPC, 0},
	OpSCmpGtU32:               {"s_cmp_gt_u32", FormatSOPC, 0},
	OpSCmpGeU32:               {"s_cmp_ge_u32", FormatSOPC, 0},
	OpSCmpLtU32:               {"s_cmp_lt_u32", FormatSOPC, 0},
	OpSCmpLeU32:               {"s_cmp_le_u32", FormatSOPC, 0},
	OpSCmpEqU64:               {"s_cmp_eq_u64", FormatSOPC, 0},
	OpSCmpLgU64:               {"s_cmp_lg_u64", FormatSOPC, 0},
	OpSBitcmp1B32:             {"s_bitcmp1_b32", FormatSOPC, 0},
	OpSBitcmp1B64:             {"s_bitcmp1_b64", FormatSOPC, 0},
	OpSBitcmp0B32:             {"s_bitcmp0_b32", FormatSOPC, 0},
	OpSBitcmp0B64:             {"s_bitcmp0_b64", FormatSOPC, 0},
	OpSEndpgm:                 {"s_endpgm", FormatSOPP, 0},
	OpSBarrier:                {"s_barrier", FormatSOPP, 0},
	OpSSendmsg:                {"s_sendmsg", FormatSOPP, 0},
	OpSWaitcnt:                {"s_waitcnt", FormatSOPP, 0},
	OpSNop:                    {"s_nop", FormatSOPP, 0},
	OpSLoadDword:              {"s_load_dword", FormatSMEM, 0},
	OpSLoadDwordx2:            {"s_load_dwordx2", FormatSMEM, 0},
	OpSLoadDwordx4:            {"s_load_dwordx4", FormatSMEM, 0},
	OpSLoadDwordx8:            {"s_load_dwordx8", FormatSMEM, 0},
	OpSLoadDwordx16:           {"s_load_dwordx16", FormatSMEM, 0},
	OpSBufferLoadDword:        {"s_buffer_load_dword", FormatSMEM, 0},
	OpSBufferLoadDwordx2:      {"s_buffer_load_dwordx2", FormatSMEM, 0},
	OpSBufferLoadDwordx4:      {"s_buffer_load_dwordx4", FormatSMEM, 0},
	OpSBufferLoadDwordx8:      {"s_buffer_load_dwordx8", FormatSMEM, 0},
	OpSBufferLoadDwordx16:     {"s_buffer_load_dwordx16", FormatSMEM, 0},
	OpVNop:                    {"v_nop", FormatVOP1, 0},
	OpVMovB32:                 {"v_mov_b32", FormatVOP1, 0},
	OpVReadfirstlaneB32:       {"v_readfirstlane_b32", FormatVOP1, 0},
	OpVCvtF32I32:              {"v_cvt_f32_i32", FormatVOP1, 0},
	OpVCvtF32U32:              {"v_cvt_f32_u32", FormatVOP1, 0},
	OpVCvtI32F32:              {"v_cvt_i32_f32", FormatVOP1, 0},
	OpVCvtU32F32:              {"v_cvt_u32_f32", FormatVOP1, 0},
	OpVCvtF16F32:              {"v_cvt_f16_f32", FormatVOP1, 0},
	OpVCvtF32F16:              {"v_cvt_f32_f16", FormatVOP1, 0},
	OpVCvtF64F32:              {"v_cvt_f64_f32", FormatVOP1, 0},
	OpVCvtF32F64:              {"v_cvt_f32_f64", FormatVOP1, 0},
	OpVCvtF64I32:              {"v_cvt_f64_i32", FormatVOP1, 0},
	OpVCvtF64U32:              {"v_cvt_f64_u32", FormatVOP1, 0},
	OpVCvtI32F64:              {"v_cvt_i32_f64", FormatVOP1, 0},
	OpVCvtU32F64:              {"v_cvt_u32_f64", FormatVOP1, 0},
	OpVCvtF16U16:              {"v_cvt_f16_u16", FormatVOP1, 0},
	OpVCvtF16I16:              {"v_cvt_f16_i16", FormatVOP1, 0},
	OpVCvtU16F16:              {"v_cvt_u16_f16", FormatVOP1, 0},
	OpVCvtI16F16:              {"v_cvt_i16_f16", FormatVOP1, 0},
	OpVCvtF32Ubyte0:           {"v_cvt_f32_ubyte0", FormatVOP1, 0},
	OpVFractF16:               {"v_fract_f16", FormatVOP1, 0},
	OpVTruncF16:               {"v_trunc_f16", FormatVOP1, 0},
	OpVCeilF16:                {"v_ceil_f16", FormatVOP1, 0},
	OpVRndneF16:               {"v_rndne_f16", FormatVOP1, 0},
	OpVFloorF16:               {"v_floor_f16", FormatVOP1, 0},
	OpVRcpF16:                 {"v_rcp_f16", FormatVOP1, 0},
	OpVRsqF16:                 {"v_rsq_f16", FormatVOP1, 0},
	OpVSqrtF16:                {"v_sqrt_f16", FormatVOP1, 0},
	OpVFractF32:               {"v_fract_f32", FormatVOP1, 0},
	OpVTruncF32:               {"v_trunc_f32", FormatVOP1, 0},
	OpVCeilF32:                {"v_ceil_f32", FormatVOP1, 0},
	OpVRndneF32:               {"v_rndne_f32", FormatVOP1, 0},
	OpVFloorF32:               {"v_floor_f32", FormatVOP1, 0},
	OpVRcpF32:                 {"v_rcp_f32", FormatVOP1, 0},
	OpVRsqF32:                 {"v_rsq_f32", FormatVOP1, 0},
	OpVSqrtF32:                {"v_sqrt_f32", FormatVOP1, 0},
	OpVFractF64:               {"v_fract_f64", FormatVOP1, 0},
	OpVTruncF64:               {"v_trunc_f64", FormatVOP1, 0},
	OpVCeilF64:                {"v_ceil_f64", FormatVOP1, 0},
	OpVRndneF64:               {"v_rndne_f64", FormatVOP1, 0},
	OpVFloorF64:               {"v_floor_f64", FormatVOP1, 0},
	OpVRcpF64:                 {"v_rcp_f64", FormatVOP1, 0},
	OpVRsqF64:                 {"v_rsq_f64", FormatVOP1, 0},
	OpVSqrtF64:                {"v_sqrt_f64", FormatVOP1, 0},
	OpVExpF32:                 {"v_exp_f32", FormatVOP1, 0},
	OpVLogF32:                 {"v_log_f32", FormatVOP1, 0},
	OpVSinF32:                 {"v_sin_f32", FormatVOP1, 0},
	OpVCosF32:                 {"v_cos_f32", FormatVOP1, 0},
	OpVExpF16:                 {"v_exp_f16", FormatVOP1, 0},
	OpVLogF16:                 {"v_log_f16", FormatVOP1, 0},
	OpVSinF16:                 {"v_sin_f16", FormatVOP1, 0},
	OpVCosF16:                 {"v_cos_f16", FormatVOP1, 0},
	OpVNotB32:                 {"v_not_b32", FormatVOP1, 0},
	OpVBfrevB32:               {"v_bfrev_b32", FormatVOP1, 0},
	OpVFfbhU32:                {"v_ffbh_u32", FormatVOP1, 0},
	OpVFfblB32:                {"v_ffbl_b32", FormatVOP1, 0},
	OpVFfbhI32:                {"v_ffbh_i32", FormatVOP1, 0},
	OpVCndmaskB32:             {"v_cndmask_b32", FormatVOP2, flagReadsVCC},
	OpVAddF32:                 {"v_add_f32", FormatVOP2, 0},
	OpVSubF32:                 {"v_sub_f32", FormatVOP2, 0},
	OpVSubrevF32:              {"v_subrev_f32", FormatVOP2, 0},
	OpVMulF32:                 {"v_mul_f32", FormatVOP2, 0},
	OpVMinF32:                 {"v_min_f32", FormatVOP2, 0},
	OpVMaxF32:                 {"v_max_f32", FormatVOP2, 0},
	OpVAddF16:                 {"v_add_f16", FormatVOP2, 0},
	OpVSubF16:                 {"v_sub_f16", FormatVOP2, 0},
	OpVMulF16:                 {"v_mul_f16", FormatVOP2, 0},
	OpVMinF16:                 {"v_min_f16", FormatVOP2, 0},
	OpVMaxF16:                 {"v_max_f16", FormatVOP2, 0},
	OpVAddU32:                 {"v_add_u32", FormatVOP2, 0},
	OpVSubU32:                 {"v_sub_u32", FormatVOP2, 0},
	OpVSubrevU32:              {"v_subrev_u32", FormatVOP2, 0},
	OpVAddU16:                 {"v_add_u16", FormatVOP2, 0},
	OpVSubU16:                 {"v_sub_u16", FormatVOP2, 0},
	OpVMulLoU16:               {"v_mul_lo_u16", FormatVOP2, 0},
	OpVMulU32U24:              {"v_mul_u32_u24", FormatVOP2, 0},
	OpVMulI32I24:              {"v_mul_i32_i24", FormatVOP2, 0},
	OpVMinI32:                 {"v_min_i32", FormatVOP2, 0},
	OpVMaxI32:                 {"v_max_i32", FormatVOP2, 0},
	OpVMinU32:                 {"v_min_u32", FormatVOP2, 0},
	OpVMaxU32:                 {"v_max_u32", FormatVOP2, 0},
	OpVMinI16:                 {"v_min_i16", FormatVOP2, 0},
	OpVMaxI16:                 {"v_max_i16", FormatVOP2, 0},
	OpVMinU16:                 {"v_min_u16", FormatVOP2, 0},
	OpVMaxU16:                 {"v_max_u16", FormatVOP2, 0},
	OpVLshrrevB32:             {"v_lshrrev_b32", FormatVOP2, 0},
	OpVAshrrevI32:             {"v_ashrrev_i32", FormatVOP2, 0},
	OpVLshlrevB32:             {"v_lshlrev_b32", FormatVOP2, 0},
	OpVLshlrevB16:             {"v_lshlrev_b16", FormatVOP2, 0},
	OpVLshrrevB16:             {"v_lshrrev_b16", FormatVOP2, 0},
	OpVAshrrevI16:             {"v_ashrrev_i16", FormatVOP2, 0},
	OpVAndB32:                 {"v_and_b32", FormatVOP2, 0},
	OpVOrB32:                  {"v_or_b32", FormatVOP2, 0},
	OpVXorB32:                 {"v_xor_b32", FormatVOP2, 0},
	OpVMacF32:                 {"v_mac_f32", FormatVOP2, 0},
	OpVLdexpF16:               {"v_ldexp_f16", FormatVOP2, 0},
	OpVCvtPkrtzF16F32:         {"v_cvt_pkrtz_f16_f32", FormatVOP2, 0},
	OpVAddCoU32:               {"v_add_co_u32", FormatVOP2, flagCarryOut},
	OpVSubCoU32:               {"v_sub_co_u32", FormatVOP2, flagCarryOut},
	OpVSubrevCoU32:            {"v_subrev_co_u32", FormatVOP2, flagCarryOut},
	OpVAddcCoU32:              {"v_addc_co_u32", FormatVOP2, flagCarryOut | flagReadsVCC},
	OpVSubbCoU32:              {"v_subb_co_u32", FormatVOP2, flagCarryOut | flagReadsVCC},
	OpVMadakF32:               {"v_madak_f32", FormatVOP2, flagNoVOP3},
	OpVMadmkF32:               {"v_madmk_f32", FormatVOP2, flagNoVOP3},
	OpVMadF32:                 {"v_mad_f32", FormatVOP3, 0},
	OpVFmaF32:                 {"v_fma_f32", FormatVOP3, 0},
	OpVFmaF64:                 {"v_fma_f64", FormatVOP3, 0},
	OpVAddF64:                 {"v_add_f64", FormatVOP3, 0},
	OpVMulF64:                 {"v_mul_f64", FormatVOP3, 0},
	OpVMinF64:                 {"v_min_f64", FormatVOP3, 0},
	OpVMaxF64:                 {"v_max_f64", FormatVOP3, 0},
	OpVLdexpF64:               {"v_ldexp_f64", FormatVOP3, 0},
	OpVLdexpF32:               {"v_ldexp_f32", FormatVOP3, 0},
	OpVMulLoU32:               {"v_mul_lo_u32", FormatVOP3, 0},
	OpVMulHiU32:               {"v_mul_hi_u32", FormatVOP3, 0},
	OpVMulHiI32:               {"v_mul_hi_i32", FormatVOP3, 0},
	OpVBfeU32:                 {"v_bfe_u32", FormatVOP3, 0},
	OpVBfeI32:                 {"v_bfe_i32", FormatVOP3, 0},
	OpVBfiB32:                 {"v_bfi_b32", FormatVOP3, 0},
	OpVAlignbitB32:            {"v_alignbit_b32", FormatVOP3, 0},
	OpVLshlrevB64:             {"v_lshlrev_b64", FormatVOP3, 0},
	OpVLshrrevB64:             {"v_lshrrev_b64", FormatVOP3, 0},
	OpVAshrrevI64:             {"v_ashrrev_i64", FormatVOP3, 0},
	OpVLshlB64:                {"v_lshl_b64", FormatVOP3, 0},
	OpVLshrB64:                {"v_lshr_b64", FormatVOP3, 0},
	OpVAshrI64:                {"v_ashr_i64", FormatVOP3, 0},
	OpVMed3F32:                {"v_med3_f32", FormatVOP3, 0},
	OpVMed3I32:                {"v_med3_i32", FormatVOP3, 0},
	OpVMed3U32:                {"v_med3_u32", FormatVOP3, 0},
	OpVReadlaneB32:            {"v_readlane_b32", FormatVOP3, 0},
	OpVWritelaneB32:           {"v_writelane_b32", FormatVOP3, 0},
	OpVMbcntLoU32B32:          {"v_mbcnt_lo_u32_b32", FormatVOP3, 0},
	OpVMbcntHiU32B32:          {"v_mbcnt_hi_u32_b32", FormatVOP3, 0},
	OpVBcntU32B32:             {"v_bcnt_u32_b32", FormatVOP3, 0},
	OpVBfmB32:                 {"v_bfm_b32", FormatVOP3, 0},
	OpVAdd3U32:                {"v_add3_u32", FormatVOP3, 0},
	OpVLshlAddU32:             {"v_lshl_add_u32", FormatVOP3, 0},
	OpVPermB32:                {"v_perm_b32", FormatVOP3, 0},
	OpVMadU32U24:              {"v_mad_u32_u24", FormatVOP3, 0},
	OpVPackB32F16:             {"v_pack_b32_f16", FormatVOP3, 0},
	OpVCvtPkU16U32:            {"v_cvt_pk_u16_u32", FormatVOP3, 0},
	OpVAddCoU32E64:            {"v_add_co_u32_e64", FormatVOP3, 0},
	OpVInterpP1F32:            {"v_interp_p1_f32", FormatVINTRP, 0},
	OpVInterpP2F32:            {"v_interp_p2_f32", FormatVINTRP, 0},
	OpVInterpMovF32:           {"v_interp_mov_f32", FormatVINTRP, 0},
	OpVCmpLtF16:               {"v_cmp_lt_f16", FormatVOPC, 0},
	OpVCmpEqF16:               {"v_cmp_eq_f16", FormatVOPC, 0},
	OpVCmpLeF16:               {"v_cmp_le_f16", FormatVOPC, 0},
	OpVCmpGtF16:               {"v_cmp_gt_f16", FormatVOPC, 0},
	OpVCmpLgF16:               {"v_cmp_lg_f16", FormatVOPC, 0},
	OpVCmpGeF16:               {"v_cmp_ge_f16", FormatVOPC, 0},
	OpVCmpOF16:                {"v_cmp_o_f16", FormatVOPC, 0},
	OpVCmpUF16:                {"v_cmp_u_f16", FormatVOPC, 0},
	OpVCmpNeqF16:              {"v_cmp_neq_f16", FormatVOPC, 0},
	OpVCmpNltF16:              {"v_cmp_nlt_f16", FormatVOPC, 0},
	OpVCmpNgeF16:              {"v_cmp_nge_f16", FormatVOPC, 0},
	OpVCmpLtF32:               {"v_cmp_lt_f32", FormatVOPC, 0},
	OpVCmpEqF32:               {"v_cmp_eq_f32", FormatVOPC, 0},
	OpVCmpLeF32:               {"v_cmp_le_f32", FormatVOPC, 0},
	OpVCmpGtF32:               {"v_cmp_gt_f32", FormatVOPC, 0},
	OpVCmpLgF32:               {"v_cmp_lg_f32", FormatVOPC, 0},
	OpVCmpGeF32:               {"v_cmp_ge_f32", FormatVOPC, 0},
	OpVCmpOF32:                {"v_cmp_o_f32", FormatVOPC, 0},
	OpVCmpUF32:                {"v_cmp_u_f32", FormatVOPC, 0},
	OpVCmpNeqF32:              {"v_cmp_neq_f32", FormatVOPC, 0},
	OpVCmpNltF32:              {"v_cmp_nlt_f32", FormatVOPC, 0},
	OpVCmpNgeF32:              {"v_cmp_nge_f32", FormatVOPC, 0},
	OpVCmpLtF64:               {"v_cmp_lt_f64", FormatVOPC, 0},
	OpVCmpEqF64:               {"v_cmp_eq_f64", FormatVOPC, 0},
	OpVCmpLeF64:               {"v_cmp_le_f64", FormatVOPC, 0},
	OpVCmpGtF64:               {"v_cmp_gt_f64", FormatVOPC, 0},
	OpVCmpLgF64:               {"v_cmp_lg_f64", FormatVOPC, 0},
	OpVCmpGeF64:               {"v_cmp_ge_f64", FormatVOPC, 0},
	OpVCmpOF64:                {"v_cmp_o_f64", FormatVOPC, 0},
	OpVCmpUF64:                {"v_cmp_u_f64", FormatVOPC, 0},
	OpVCmpNeqF64:              {"v_cmp_neq_f64", FormatVOPC, 0},
	OpVCmpNltF64:              {"v_cmp_nlt_f64", FormatVOPC, 0},
	OpVCmpNgeF64:              {"v_cmp_nge_f64", FormatVOPC, 0},
	OpVCmpLtI16:               {"v_cmp_lt_i16", FormatVOPC, 0},
	OpVCmpEqI16:               {"v_cmp_eq_i16", FormatVOPC, 0},
	OpVCmpLeI16:               {"v_cmp_le_i16", FormatVOPC, 0},
	OpVCmpGtI16:               {"v_cmp_gt_i16", FormatVOPC, 0},
	OpVCmpLgI16:               {"v_cmp_lg_i16", FormatVOPC, 0},
	OpVCmpGeI16:               {"v_cmp_ge_i16", FormatVOPC, 0},
	OpVCmpLtU16:               {"v_cmp_lt_u16", FormatVOPC, 0},
	OpVCmpEqU16:               {"v_cmp_eq_u16", FormatVOPC, 0},
	OpVCmpLeU16:               {"v_cmp_le_u16", FormatVOPC, 0},
	OpVCmpGtU16:               {"v_cmp_gt_u16", FormatVOPC, 0},
	OpVCmpLgU16:               {"v_cmp_lg_u16", FormatVOPC, 0},
	OpVCmpGeU16:               {"v_cmp_ge_u16", FormatVOPC, 0},
	OpVCmpLtI32:               {"v_cmp_lt_i32", FormatVOPC, 0},
	OpVCmpEqI32:               {"v_cmp_eq_i32", FormatVOPC, 0},
	OpVCmpLeI32:               {"v_cmp_le_i32", FormatVOPC, 0},
	OpVCmpGtI32:               {"v_cmp_gt_i32", FormatVOPC, 0},
	OpVCmpLgI32:               {"v_cmp_lg_i32", FormatVOPC, 0},
	OpVCmpGeI32:               {"v_cmp_ge_i32", FormatVOPC, 0},
	OpVCmpLtU32:               {"v_cmp_lt_u32", FormatVOPC, 0},
	OpVCmpEqU32:               {"v_cmp_eq_u32", FormatVOPC, 0},
	OpVCmpLeU32:               {"v_cmp_le_u32", FormatVOPC, 0},
	OpVCmpGtU32:               {"v_cmp_gt_u32", FormatVOPC, 0},
	OpVCmpLgU32:               {"v_cmp_lg_u32", FormatVOPC, 0},
	OpVCmpGeU32:               {"v_cmp_ge_u32", FormatVOPC, 0},
	OpVCmpLtI64:               {"v_cmp_lt_i64", FormatVOPC, 0},
	OpVCmpEqI64:               {"v_cmp_eq_i64", FormatVOPC, 0},
	OpVCmpLeI64:               {"v_cmp_le_i64", FormatVOPC, 0},
	OpVCmpGtI64:               {"v_cmp_gt_i64", FormatVOPC, 0},
	OpVCmpLgI64:               {"v_cmp_lg_i64", FormatVOPC, 0},
	OpVCmpGeI64:               {"v_cmp_ge_i64", FormatVOPC, 0},
	OpVCmpLtU64:               {"v_cmp_lt_u64", FormatVOPC, 0},
	OpVCmpEqU64:               {"v_cmp_eq_u64", FormatVOPC, 0},
	OpVCmpLeU64:               {"v_cmp_le_u64", FormatVOPC, 0},
	OpVCmpGtU64:               {"v_cmp_gt_u64", FormatVOPC, 0},
	OpVCmpLgU64:               {"v_cmp_lg_u64", FormatVOPC, 0},
	OpVCmpGeU64:               {"v_cmp_ge_u64", FormatVOPC, 0},
	OpVCmpClassF32:            {"v_cmp_class_f32", FormatVOPC, 0},
	OpVCmpClassF64:            {"v_cmp_class_f64", FormatVOPC, 0},
	OpDsReadB32:               {"ds_read_b32", FormatDS, 0},
	OpDsReadB64:               {"ds_read_b64", FormatDS, 0},
	OpDsReadB96:               {"ds_read_b96", FormatDS, 0},
	OpDsReadB128:              {"ds_read_b128", FormatDS, 0},
	OpDsRead2B32:              {"ds_read2_b32", FormatDS, 0},
	OpDsRead2B64:              {"ds_read2_b64", FormatDS, 0},
	OpDsReadU8:                {"ds_read_u8", FormatDS, 0},
	OpDsReadU16:               {"ds_read_u16", FormatDS, 0},
	OpDsWriteB32:              {"ds_write_b32", FormatDS, 0},
	OpDsWriteB64:              {"ds_write_b64", FormatDS, 0},
	OpDsWriteB96:              {"ds_write_b96", FormatDS, 0},
	OpDsWriteB128:             {"ds_write_b128", FormatDS, 0},
	OpDsWrite2B32:             {"ds_write2_b32", FormatDS, 0},
	OpDsWrite2B64:             {"ds_write2_b64", FormatDS, 0},
	OpDsWriteB8:               {"ds_write_b8", FormatDS, 0},
	OpDsWriteB16:              {"ds_write_b16", FormatDS, 0},
	OpDsSwizzleB32:            {"ds_swizzle_b32", FormatDS, 0},
	OpDsBpermuteB32:           {"ds_bpermute_b32", FormatDS, 0},
	OpDsAddU32:                {"ds_add_u32", FormatDS, flagAtomic},
	OpDsAddRtnU32:             {"ds_add_rtn_u32", FormatDS, flagAtomic},
	OpDsMinI32:                {"ds_min_i32", FormatDS, flagAtomic},
	OpDsMinRtnI32:             {"ds_min_rtn_i32", FormatDS, flagAtomic},
	OpDsMaxI32:                {"ds_max_i32", FormatDS, flagAtomic},
	OpDsMaxRtnI32:             {"ds_max_rtn_i32", FormatDS, flagAtomic},
	OpDsMinU32:                {"ds_min_u32", FormatDS, flagAtomic},
	OpDsMinRtnU32:             {"ds_min_rtn_u32", FormatDS, flagAtomic},
	OpDsMaxU32:                {"ds_max_u32", FormatDS, flagAtomic},
	OpDsMaxRtnU32:             {"ds_max_rtn_u32", FormatDS, flagAtomic},
	OpDsAndB32:                {"ds_and_b32", FormatDS, flagAtomic},
	OpDsAndRtnB32:             {"ds_and_rtn_b32", FormatDS, flagAtomic},
	OpDsOrB32:                 {"ds_or_b32", FormatDS, flagAtomic},
	OpDsOrRtnB32:              {"ds_or_rtn_b32", FormatDS, flagAtomic},
	OpDsXorB32:                {"ds_xor_b32", FormatDS, flagAtomic},
	OpDsXorRtnB32:             {"ds_xor_rtn_b32", FormatDS, flagAtomic},
	OpDsWrxchgRtnB32:          {"ds_wrxchg_rtn_b32", FormatDS, flagAtomic},
	OpDsCmpstB32:              {"ds_cmpst_b32", FormatDS, flagAtomic},
	OpDsCmpstRtnB32:           {"ds_cmpst_rtn_b32", FormatDS, flagAtomic},
	OpDsAddU64:                {"ds_add_u64", FormatDS, flagAtomic},
	OpDsAddRtnU64:             {"ds_add_rtn_u64", FormatDS, flagAtomic},
	OpDsMinI64:                {"ds_min_i64", FormatDS, flagAtomic},
	OpDsMinRtnI64:             {"ds_min_rtn_i64", FormatDS, flagAtomic},
	OpDsMaxI64:                {"ds_max_i64", FormatDS, flagAtomic},
	OpDsMaxRtnI64:             {"ds_max_rtn_i64", FormatDS, flagAtomic},
	OpDsMinU64:                {"ds_min_u64", FormatDS, flagAtomic},
	OpDsMinRtnU64:             {"ds_min_rtn_u64", FormatDS, flagAtomic},
	OpDsMaxU64:                {"ds_max_u64", FormatDS, flagAtomic},
	OpDsMaxRtnU64:             {"ds_max_rtn_u64", FormatDS, flagAtomic},
	OpDsAndB64:                {"ds_and_b64", FormatDS, flagAtomic},
	OpDsAndRtnB64:             {"ds_and_rtn_b64", FormatDS, flagAtomic},
	OpDsOrB64:                 {"ds_or_b64", FormatDS, flagAtomic},
	OpDsOrRtnB64:              {"ds_or_rtn_b64", FormatDS, flagAtomic},
	OpDsXorB64:                {"ds_xor_b64", FormatDS, flagAtomic},
	OpDsXorRtnB64:             {"ds_xor_rtn_b64", FormatDS, flagAtomic},
	OpDsWrxchgRtnB64:          {"ds_wrxchg_rtn_b64", FormatDS, flagAtomic},
	OpDsCmpstB64:              {"ds_cmpst_b64", FormatDS, flagAtomic},
	OpDsCmpstRtnB64:           {"ds_cmpst_rtn_b64", FormatDS, flagAtomic},
	OpBufferLoadUbyte:         {"buffer_load_ubyte", FormatMUBUF, 0},
	OpBufferLoadUshort:        {"buffer_load_ushort", FormatMUBUF, 0},
	OpBufferLoadDword:         {"buffer_load_dword", FormatMUBUF, 0},
	OpBufferLoadDwordx2:       {"buffer_load_dwordx2", FormatMUBUF, 0},
	OpBufferLoadDwordx3:       {"buffer_load_dwordx3", FormatMUBUF, 0},
	OpBufferLoadDwordx4:       {"buffer_load_dwordx4", FormatMUBUF, 0},
	OpBufferStoreByte:         {"buffer_store_byte", FormatMUBUF, 0},
	OpBufferStoreShort:        {"buffer_store_short", FormatMUBUF, 0},
	OpBufferStoreDword:        {"buffer_store_dword", FormatMUBUF, 0},
	OpBufferStoreDwordx2:      {"buffer_store_dwordx2", FormatMUBUF, 0},
	OpBufferStoreDwordx3:      {"buffer_store_dwordx3", FormatMUBUF, 0},
	OpBufferStoreDwordx4:      {"buffer_store_dwordx4", FormatMUBUF, 0},
	OpBufferLoadFormatXyzw:    {"buffer_load_format_xyzw", FormatMUBUF, 0},
	OpBufferAtomicAdd:         {"buffer_atomic_add", FormatMUBUF, flagAtomic},
	OpBufferAtomicSmin:        {"buffer_atomic_smin", FormatMUBUF, flagAtomic},
	OpBufferAtomicUmin:        {"buffer_atomic_umin", FormatMUBUF, flagAtomic},
	OpBufferAtomicSmax:        {"buffer_atomic_smax", FormatMUBUF, flagAtomic},
	OpBufferAtomicUmax:        {"buffer_atomic_umax", FormatMUBUF, flagAtomic},
	OpBufferAtomicAnd:         {"buffer_atomic_and", FormatMUBUF, flagAtomic},
	OpBufferAtomicOr:          {"buffer_atomic_or", FormatMUBUF, flagAtomic},
	OpBufferAtomicXor:         {"buffer_atomic_xor", FormatMUBUF, flagAtomic},
	OpBufferAtomicSwap:        {"buffer_atomic_swap", FormatMUBUF, flagAtomic},
	OpBufferAtomicCmpswap:     {"buffer_atomic_cmpswap", FormatMUBUF, flagAtomic},
	OpBufferAtomicAddX2:       {"buffer_atomic_add_x2", FormatMUBUF, flagAtomic},
	OpBufferAtomicSminX2:      {"buffer_atomic_smin_x2", FormatMUBUF, flagAtomic},
	OpBufferAtomicUminX2:      {"buffer_atomic_umin_x2", FormatMUBUF, flagAtomic},
	OpBufferAtomicSmaxX2:      {"buffer_atomic_smax_x2", FormatMUBUF, flagAtomic},
	OpBufferAtomicUmaxX2:      {"buffer_atomic_umax_x2", FormatMUBUF, flagAtomic},
	OpBufferAtomicAndX2:       {"buffer_atomic_and_x2", FormatMUBUF, flagAtomic},
	OpBufferAtomicOrX2:        {"buffer_atomic_or_x2", FormatMUBUF, flagAtomic},
	OpBufferAtomicXorX2:       {"buffer_atomic_xor_x2", FormatMUBUF, flagAtomic},
	OpBufferAtomicSwapX2:      {"buffer_atomic_swap_x2", FormatMUBUF, flagAtomic},
	OpBufferAtomicCmpswapX2:   {"buffer_atomic_cmpswap_x2", FormatMUBUF, flagAtomic},
	OpGlobalLoadUbyte:         {"global_load_ubyte", FormatGLOBAL, 0},
	OpGlobalLoadUshort:        {"global_load_ushort", FormatGLOBAL, 0},
	OpGlobalLoadDword:         {"global_load_dword", FormatGLOBAL, 0},
	OpGlobalLoadDwordx2:       {"global_load_dwordx2", FormatGLOBAL, 0},
	OpGlobalLoadDwordx3:       {"global_load_dwordx3", FormatGLOBAL, 0},
	OpGlobalLoadDwordx4:       {"global_load_dwordx4", FormatGLOBAL, 0},
	OpGlobalStoreByte:         {"global_store_byte", FormatGLOBAL, 0},
	OpGlobalStoreShort:        {"global_store_short", FormatGLOBAL, 0},
	OpGlobalStoreDword:        {"global_store_dword", FormatGLOBAL, 0},
	OpGlobalStoreDwordx2:      {"global_store_dwordx2", FormatGLOBAL, 0},
	OpGlobalStoreDwordx3:      {"global_store_dwordx3", FormatGLOBAL, 0},
	OpGlobalStoreDwordx4:      {"global_store_dwordx4", FormatGLOBAL, 0},
	OpGlobalAtomicAdd:         {"global_atomic_add", FormatGLOBAL, flagAtomic},
	OpGlobalAtomicSmin:        {"global_atomic_smin", FormatGLOBAL, flagAtomic},
	OpGlobalAtomicUmin:        {"global_atomic_umin", FormatGLOBAL, flagAtomic},
	OpGlobalAtomicSmax:        {"global_atomic_smax", FormatGLOBAL, flagAtomic},
	OpGlobalAtomicUmax:        {"global_atomic_umax", FormatGLOBAL, flagAtomic},
	OpGlobalAtomicAnd:         {"global_atomic_and", FormatGLOBAL, flagAtomic},
	OpGlobalAtomicOr:          {"global_atomic_or", FormatGLOBAL, flagAtomic},
	OpGlobalAtomicXor:         {"global_atomic_xor", FormatGLOBAL, flagAtomic},
	OpGlobalAtomicSwap:        {"global_atomic_swap", FormatGLOBAL, flagAtomic},
	OpGlobalAtomicCmpswap:     {"global_atomic_cmpswap", FormatGLOBAL, flagAtomic},
	OpGlobalAtomicAddX2:       {"global_atomic_add_x2", FormatGLOBAL, flagAtomic},
	OpGlobalAtomicSminX2:      {"global_atomic_smin_x2", FormatGLOBAL, flagAtomic},
	OpGlobalAtomicUminX2:      {"global_atomic_umin_x2", FormatGLOBAL, flagAtomic},
	OpGlobalAtomicSmaxX2:      {"global_atomic_smax_x2", FormatGLOBAL, flagAtomic},
	OpGlobalAtomicUmaxX2:      {"global_atomic_umax_x2", FormatGLOBAL, flagAtomic},
	OpGlobalAtomicAndX2:       {"global_atomic_and_x2", FormatGLOBAL, flagAtomic},
	OpGlobalAtomicOrX2:        {"global_atomic_or_x2", FormatGLOBAL, flagAtomic},
	OpGlobalAtomicXorX2:       {"global_atomic_xor_x2", FormatGLOBAL, flagAtomic},
	OpGlobalAtomicSwapX2:      {"global_atomic_swap_x2", FormatGLOBAL, flagAtomic},
	OpGlobalAtomicCmpswapX2:   {"global_atomic_cmpswap_x2", FormatGLOBAL, flagAtomic},
	OpFlatLoadUbyte:           {"flat_load_ubyte", FormatFLAT, 0},
	OpFlatLoadUshort:          {"flat_load_ushort", FormatFLAT, 0},
	OpFlatLoadDword:           {"flat_load_dword", FormatFLAT, 0},
	OpFlatLoadDwordx2:         {"flat_load_dwordx2", FormatFLAT, 0},
	OpFlatLoadDwordx3:         {"flat_load_dwordx3", FormatFLAT, 0},
	OpFlatLoadDwordx4:         {"flat_load_dwordx4", FormatFLAT, 0},
	OpFlatStoreByte:           {"flat_store_byte", FormatFLAT, 0},
	OpFlatStoreShort:          {"flat_store_short", FormatFLAT, 0},
	OpFlatStoreDword:          {"flat_store_dword", FormatFLAT, 0},
	OpFlatStoreDwordx2:        {"flat_store_dwordx2", FormatFLAT, 0},
	OpFlatStoreDwordx3:        {"flat_store_dwordx3", FormatFLAT, 0},
	OpFlatStoreDwordx4:        {"flat_store_dwordx4", FormatFLAT, 0},
	OpFlatAtomicAdd:           {"flat_atomic_add", FormatFLAT, flagAtomic},
	OpFlatAtomicSmin:          {"flat_atomic_smin", FormatFLAT, flagAtomic},
	OpFlatAtomicUmin:          {"flat_atomic_umin", FormatFLAT, flagAtomic},
	OpFlatAtomicSmax:          {"flat_atomic_smax", FormatFLAT, flagAtomic},
	OpFlatAtomicUmax:          {"flat_atomic_umax", FormatFLAT, flagAtomic},
	OpFlatAtomicAnd:           {"flat_atomic_and", FormatFLAT, flagAtomic},
	OpFlatAtomicOr:            {"flat_atomic_or", FormatFLAT, flagAtomic},
	OpFlatAtomicXor:           {"flat_atomic_xor", FormatFLAT, flagAtomic},
	OpFlatAtomicSwap:          {"flat_atomic_swap", FormatFLAT, flagAtomic},
	OpFlatAtomicCmpswap:       {"flat_atomic_cmpswap", FormatFLAT, flagAtomic},
	OpFlatAtomicAddX2:         {"flat_atomic_add_x2", FormatFLAT, flagAtomic},
	OpFlatAtomicSminX2:        {"flat_atomic_smin_x2", FormatFLAT, flagAtomic},
	OpFlatAtomicUminX2:        {"flat_atomic_umin_x2", FormatFLAT, flagAtomic},
	OpFlatAtomicSmaxX2:        {"flat_atomic_smax_x2", FormatFLAT, flagAtomic},
	OpFlatAtomicUmaxX2:        {"flat_atomic_umax_x2", FormatFLAT, flagAtomic},
	OpFlatAtomicAndX2:         {"flat_atomic_and_x2", FormatFLAT, flagAtomic},
	OpFlatAtomicOrX2:          {"flat_atomic_or_x2", FormatFLAT, flagAtomic},
	OpFlatAtomicXorX2:         {"flat_atomic_xor_x2", FormatFLAT, flagAtomic},
	OpFlatAtomicSwapX2:        {"flat_atomic_swap_x2", FormatFLAT, flagAtomic},
	OpFlatAtomicCmpswapX2:     {"flat_atomic_cmpswap_x2", FormatFLAT, flagAtomic},
	OpScratchLoadDword:        {"scratch_load_dword", FormatSCRATCH, 0},
	OpScratchLoadDwordx2:      {"scratch_load_dwordx2", FormatSCRATCH, 0},
	OpScratchLoadDwordx3:      {"scratch_load_dwordx3", FormatSCRATCH, 0},
	OpScratchLoadDwordx4:      {"scratch_load_dwordx4", FormatSCRATCH, 0},
	OpScratchStoreDword:       {"scratch_store_dword", FormatSCRATCH, 0},
	OpScratchStoreDwordx2:     {"scratch_store_dwordx2", FormatSCRATCH, 0},
	OpScratchStoreDwordx3:     {"scratch_store_dwordx3", FormatSCRATCH, 0},
	OpScratchStoreDwordx4:     {"scratch_store_dwordx4", FormatSCRATCH, 0},
	OpImageSample:             {"image_sample", FormatMIMG, 0},
	OpImageSampleB:            {"image_sample_b", FormatMIMG, 0},
	OpImageSampleL:            {"image_sample_l", FormatMIMG, 0},
	OpImageSampleD:            {"image_sample_d", FormatMIMG, 0},
	OpImageSampleLz:           {"image_sample_lz", FormatMIMG, 0},
	OpImageSampleC:            {"image_sample_c", FormatMIMG, 0},
	OpImageSampleCB:           {"image_sample_c_b", FormatMIMG, 0},
	OpImageSampleCL:           {"image_sample_c_l", FormatMIMG, 0},
	OpImageSampleCD:           {"image_sample_c_d", FormatMIMG, 0},
	OpImageSampleCLz:          {"image_sample_c_lz", FormatMIMG, 0},
	OpImageGather4:            {"image_gather4", FormatMIMG, 0},
	OpImageGather4Lz:          {"image_gather4_lz", FormatMIMG, 0},
	OpImageGather4C:           {"image_gather4_c", FormatMIMG, 0},
	OpImageGather4CLz:         {"image_gather4_c_lz", FormatMIMG, 0},
	OpImageSampleO:            {"image_sample_o", FormatMIMG, 0},
	OpImageSampleBO:           {"image_sample_b_o", FormatMIMG, 0},
	OpImageSampleLO:           {"image_sample_l_o", FormatMIMG, 0},
	OpImageSampleDO:           {"image_sample_d_o", FormatMIMG, 0},
	OpImageSampleLzO:          {"image_sample_lz_o", FormatMIMG, 0},
	OpImageSampleCO:           {"image_sample_c_o", FormatMIMG, 0},
	OpImageSampleCBO:          {"image_sample_c_b_o", FormatMIMG, 0},
	OpImageSampleCLO:          {"image_sample_c_l_o", FormatMIMG, 0},
	OpImageSampleCDO:          {"image_sample_c_d_o", FormatMIMG, 0},
	OpImageSampleCLzO:         {"image_sample_c_lz_o", FormatMIMG, 0},
	OpImageGather4O:           {"image_gather4_o", FormatMIMG, 0},
	OpImageGather4LzO:         {"image_gather4_lz_o", FormatMIMG, 0},
	OpImageGather4CO:          {"image_gather4_c_o", FormatMIMG, 0},
	OpImageGather4CLzO:        {"image_gather4_c_lz_o", FormatMIMG, 0},
	OpImageLoad:               {"image_load", FormatMIMG, 0},
	OpImageLoadMip:            {"image_load_mip", FormatMIMG, 0},
	OpImageStore:              {"image_store", FormatMIMG, 0},
	OpImageStoreMip:           {"image_store_mip", FormatMIMG, 0},
	OpImageGetResinfo:         {"image_get_resinfo", FormatMIMG, 0},
	OpImageGetLod:             {"image_get_lod", FormatMIMG, 0},
	OpImageAtomicAdd:          {"image_atomic_add", FormatMIMG, flagAtomic},
	OpImageAtomicSmin:         {"image_atomic_smin", FormatMIMG, flagAtomic},
	OpImageAtomicUmin:         {"image_atomic_umin", FormatMIMG, flagAtomic},
	OpImageAtomicSmax:         {"image_atomic_smax", FormatMIMG, flagAtomic},
	OpImageAtomicUmax:         {"image_atomic_umax", FormatMIMG, flagAtomic},
	OpImageAtomicAnd:          {"image_atomic_and", FormatMIMG, flagAtomic},
	OpImageAtomicOr:           {"image_atomic_or", FormatMIMG, flagAtomic},
	OpImageAtomicXor:          {"image_atomic_xor", FormatMIMG, flagAtomic},
	OpImageAtomicSwap:         {"image_atomic_swap", FormatMIMG, flagAtomic},
	OpImageAtomicCmpswap:      {"image_atomic_cmpswap", FormatMIMG, flagAtomic},
	OpExp:                     {"exp", FormatEXP, 0},
}
