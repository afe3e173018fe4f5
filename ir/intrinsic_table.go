package ir

// Intrinsic is the operation of an intrinsic instruction.
//
// Source order:
//   - loads: the byte offset, or the 64-bit address for global memory
//   - stores: the value, then the offset or address
//   - atomics: the offset or address, then the data. comp_swap takes the offset, the
//     compared value and the new value.
//   - image intrinsics: the coordinates and the sample index, then the data as for atomics.
//     image_size takes the level of detail.
//   - load_interpolated_input: the barycentrics from load_barycentric_pixel
//   - read_invocation, shuffle and quad_broadcast: the value, then the lane
//
// Descriptors are named by Binding. Inputs and outputs use Base for the location and
// Component for the first component.
type Intrinsic uint8

const (
	IntrinsicLoadSSBO Intrinsic = iota
	IntrinsicStoreSSBO
	IntrinsicSSBOAtomicAdd
	IntrinsicSSBOAtomicIMin
	IntrinsicSSBOAtomicUMin
	IntrinsicSSBOAtomicIMax
	IntrinsicSSBOAtomicUMax
	IntrinsicSSBOAtomicAnd
	IntrinsicSSBOAtomicOr
	IntrinsicSSBOAtomicXor
	IntrinsicSSBOAtomicExchange
	IntrinsicSSBOAtomicCompSwap
	IntrinsicLoadUBO
	IntrinsicLoadPushConstant
	IntrinsicLoadShared
	IntrinsicStoreShared
	IntrinsicSharedAtomicAdd
	IntrinsicSharedAtomicIMin
	IntrinsicSharedAtomicUMin
	IntrinsicSharedAtomicIMax
	IntrinsicSharedAtomicUMax
	IntrinsicSharedAtomicAnd
	IntrinsicSharedAtomicOr
	IntrinsicSharedAtomicXor
	IntrinsicSharedAtomicExchange
	IntrinsicSharedAtomicCompSwap
	IntrinsicLoadGlobal
	IntrinsicStoreGlobal
	IntrinsicGlobalAtomicAdd
	IntrinsicGlobalAtomicIMin
	IntrinsicGlobalAtomicUMin
	IntrinsicGlobalAtomicIMax
	IntrinsicGlobalAtomicUMax
	IntrinsicGlobalAtomicAnd
	IntrinsicGlobalAtomicOr
	IntrinsicGlobalAtomicXor
	IntrinsicGlobalAtomicExchange
	IntrinsicGlobalAtomicCompSwap
	IntrinsicLoadScratch
	IntrinsicStoreScratch
	IntrinsicImageLoad
	IntrinsicImageStore
	IntrinsicImageAtomicAdd
	IntrinsicImageAtomicIMin
	IntrinsicImageAtomicUMin
	IntrinsicImageAtomicIMax
	IntrinsicImageAtomicUMax
	IntrinsicImageAtomicAnd
	IntrinsicImageAtomicOr
	IntrinsicImageAtomicXor
	IntrinsicImageAtomicExchange
	IntrinsicImageAtomicCompSwap
	IntrinsicImageSize
	IntrinsicControlBarrier
	IntrinsicMemoryBarrier
	IntrinsicMemoryBarrierBuffer
	IntrinsicMemoryBarrierImage
	IntrinsicMemoryBarrierShared
	IntrinsicGroupMemoryBarrier
	IntrinsicDiscard
	IntrinsicDiscardIf
	IntrinsicLoadLocalInvocationID
	IntrinsicLoadWorkgroupID
	IntrinsicLoadLocalInvocationIndex
	IntrinsicLoadNumWorkgroups
	IntrinsicLoadSubgroupInvocation
	IntrinsicLoadSubgroupSize
	IntrinsicLoadVertexID
	IntrinsicLoadInstanceID
	IntrinsicLoadFragCoord
	IntrinsicLoadFrontFace
	IntrinsicLoadSampleID
	IntrinsicLoadHelperInvocation
	IntrinsicLoadInput
	IntrinsicLoadBarycentricPixel
	IntrinsicLoadInterpolatedInput
	IntrinsicStoreOutput
	IntrinsicReduce
	IntrinsicInclusiveScan
	IntrinsicExclusiveScan
	IntrinsicBallot
	IntrinsicVoteAny
	IntrinsicVoteAll
	IntrinsicElect
	IntrinsicFirstInvocation
	IntrinsicReadInvocation
	IntrinsicReadFirstInvocation
	IntrinsicShuffle
	IntrinsicQuadBroadcast
	IntrinsicQuadSwapHorizontal
	IntrinsicQuadSwapVertical
	IntrinsicQuadSwapDiagonal
	intrinsicEnd
)

type intrinsicInfo struct {
	name    string
	numSrcs int
	hasDest bool
}

var intrinsicInfos = [intrinsicEnd]intrinsicInfo{
	IntrinsicLoadSSBO:                 {"load_ssbo", 1, true},
	IntrinsicStoreSSBO:                {"store_ssbo", 2, false},
	IntrinsicSSBOAtomicAdd:            {"ssbo_atomic_add", 2, true},
	IntrinsicSSBOAtomicIMin:           {"ssbo_atomic_imin", 2, true},
	IntrinsicSSBOAtomicUMin:           {"ssbo_atomic_umin", 2, true},
	IntrinsicSSBOAtomicIMax:           {"ssbo_atomic_imax", 2, true},
	IntrinsicSSBOAtomicUMax:           {"ssbo_atomic_umax", 2, true},
	IntrinsicSSBOAtomicAnd:            {"ssbo_atomic_and", 2, true},
	IntrinsicSSBOAtomicOr:             {"ssbo_atomic_or", 2, true},
	IntrinsicSSBOAtomicXor:            {"ssbo_atomic_xor", 2, true},
	IntrinsicSSBOAtomicExchange:       {"ssbo_atomic_exchange", 2, true},
	IntrinsicSSBOAtomicCompSwap:       {"ssbo_atomic_comp_swap", 3, true},
	IntrinsicLoadUBO:                  {"load_ubo", 1, true},
	IntrinsicLoadPushConstant:         {"load_push_constant", 1, true},
	IntrinsicLoadShared:               {"load_shared", 1, true},
	IntrinsicStoreShared:              {"store_shared", 2, false},
	IntrinsicSharedAtomicAdd:          {"shared_atomic_add", 2, true},
	IntrinsicSharedAtomicIMin:         {"shared_atomic_imin", 2, true},
	IntrinsicSharedAtomicUMin:         {"shared_atomic_umin", 2, true},
	IntrinsicSharedAtomicIMax:         {"shared_atomic_imax", 2, true},
	IntrinsicSharedAtomicUMax:         {"shared_atomic_umax", 2, true},
	IntrinsicSharedAtomicAnd:          {"shared_atomic_and", 2, true},
	IntrinsicSharedAtomicOr:           {"shared_atomic_or", 2, true},
	IntrinsicSharedAtomicXor:          {"shared_atomic_xor", 2, true},
	IntrinsicSharedAtomicExchange:     {"shared_atomic_exchange", 2, true},
	IntrinsicSharedAtomicCompSwap:     {"shared_atomic_comp_swap", 3, true},
	IntrinsicLoadGlobal:               {"load_global", 1, true},
	IntrinsicStoreGlobal:              {"store_global", 2, false},
	IntrinsicGlobalAtomicAdd:          {"global_atomic_add", 2, true},
	IntrinsicGlobalAtomicIMin:         {"global_atomic_imin", 2, true},
	IntrinsicGlobalAtomicUMin:         {"global_atomic_umin", 2, true},
	IntrinsicGlobalAtomicIMax:         {"global_atomic_imax", 2, true},
	IntrinsicGlobalAtomicUMax:         {"global_atomic_umax", 2, true},
	IntrinsicGlobalAtomicAnd:          {"global_atomic_and", 2, true},
	IntrinsicGlobalAtomicOr:           {"global_atomic_or", 2, true},
	IntrinsicGlobalAtomicXor:          {"global_atomic_xor", 2, true},
	IntrinsicGlobalAtomicExchange:     {"global_atomic_exchange", 2, true},
	IntrinsicGlobalAtomicCompSwap:     {"global_atomic_comp_swap", 3, true},
	IntrinsicLoadScratch:              {"load_scratch", 1, true},
	IntrinsicStoreScratch:             {"store_scratch", 2, false},
	IntrinsicImageLoad:                {"image_load", 2, true},
	IntrinsicImageStore:               {"image_store", 3, false},
	IntrinsicImageAtomicAdd:           {"image_atomic_add", 3, true},
	IntrinsicImageAtomicIMin:          {"image_atomic_imin", 3, true},
	IntrinsicImageAtomicUMin:          {"image_atomic_umin", 3, true},
	IntrinsicImageAtomicIMax:          {"image_atomic_imax", 3, true},
	IntrinsicImageAtomicUMax:          {"image_atomic_umax", 3, true},
	IntrinsicImageAtomicAnd:           {"image_atomic_and", 3, true},
	IntrinsicImageAtomicOr:            {"image_atomic_or", 3, true},
	IntrinsicImageAtomicXor:           {"image_atomic_xor", 3, true},
	IntrinsicImageAtomicExchange:      {"image_atomic_exchange", 3, true},
	IntrinsicImageAtomicCompSwap:      {"image_atomic_comp_swap", 4, true},
	IntrinsicImageSize:                {"image_size", 1, true},
	IntrinsicControlBarrier:           {"control_barrier", 0, false},
	IntrinsicMemoryBarrier:            {"memory_barrier", 0, false},
	IntrinsicMemoryBarrierBuffer:      {"memory_barrier_buffer", 0, false},
	IntrinsicMemoryBarrierImage:       {"memory_barrier_image", 0, false},
	IntrinsicMemoryBarrierShared:      {"memory_barrier_shared", 0, false},
	IntrinsicGroupMemoryBarrier:       {"group_memory_barrier", 0, false},
	IntrinsicDiscard:                  {"discard", 0, false},
	IntrinsicDiscardIf:                {"discard_if", 1, false},
	IntrinsicLoadLocalInvocationID:    {"load_local_invocation_id", 0, true},
	IntrinsicLoadWorkgroupID:          {"load_workgroup_id", 0, true},
	IntrinsicLoadLocalInvocationIndex: {"load_local_invocation_index", 0, true},
	IntrinsicLoadNumWorkgroups:        {"load_num_workgroups", 0, true},
	IntrinsicLoadSubgroupInvocation:   {"load_subgroup_invocation", 0, true},
	IntrinsicLoadSubgroupSize:         {"load_subgroup_size", 0, true},
	IntrinsicLoadVertexID:             {"load_vertex_id", 0, true},
	IntrinsicLoadInstanceID:           {"load_instance_id", 0, true},
	IntrinsicLoadFragCoord:            {"load_frag_coord", 0, true},
	IntrinsicLoadFrontFace:            {"load_front_face", 0, true},
	IntrinsicLoadSampleID:             {"load_sample_id", 0, true},
	IntrinsicLoadHelperInvocation:     {"load_helper_invocation", 0, true},
	IntrinsicLoadInput:                {"load_input", 0, true},
	IntrinsicLoadBarycentricPixel:     {"load_barycentric_pixel", 0, true},
	IntrinsicLoadInterpolatedInput:    {"load_interpolated_input", 1, true},
	IntrinsicStoreOutput:              {"store_output", 1, false},
	IntrinsicReduce:                   {"reduce", 1, true},
	IntrinsicInclusiveScan:            {"inclusive_scan", 1, true},
	IntrinsicExclusiveScan:            {"exclusive_scan", 1, true},
	IntrinsicBallot:                   {"ballot", 1, true},
	IntrinsicVoteAny:                  {"vote_any", 1, true},
	IntrinsicVoteAll:                  {"vote_all", 1, true},
	IntrinsicElect:                    {"elect", 0, true},
	IntrinsicFirstInvocation:          {"first_invocation", 0, true},
	IntrinsicReadInvocation:           {"read_invocation", 2, true},
	IntrinsicReadFirstInvocation:      {"read_first_invocation", 1, true},
	IntrinsicShuffle:                  {"shuffle", 2, true},
	IntrinsicQuadBroadcast:            {"quad_broadcast", 2, true},
	IntrinsicQuadSwapHorizontal:       {"quad_swap_horizontal", 1, true},
	IntrinsicQuadSwapVertical:         {"quad_swap_vertical", 1, true},
	IntrinsicQuadSwapDiagonal:         {"quad_swap_diagonal", 1, true},
}
