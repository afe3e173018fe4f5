package ir

// String implements fmt.Stringer.
func (i Intrinsic) String() string {
	if i >= intrinsicEnd {
		return "intrinsic(?)"
	}
	return intrinsicInfos[i].name
}

// NumSrcs returns the number of sources the intrinsic takes.
func (i Intrinsic) NumSrcs() int { return intrinsicInfos[i].numSrcs }

// HasDest reports whether the intrinsic produces a value.
func (i Intrinsic) HasDest() bool { return intrinsicInfos[i].hasDest }

// AtomicOp is the read-modify-write operation of an atomic intrinsic.
type AtomicOp uint8

const (
	AtomicAdd AtomicOp = iota
	AtomicIMin
	AtomicUMin
	AtomicIMax
	AtomicUMax
	AtomicAnd
	AtomicOr
	AtomicXor
	AtomicExchange
	AtomicCompSwap
)

// atomicGroups lists the first intrinsic of each contiguous group of atomics.
var atomicGroups = [...]Intrinsic{
	IntrinsicSSBOAtomicAdd,
	IntrinsicSharedAtomicAdd,
	IntrinsicGlobalAtomicAdd,
	IntrinsicImageAtomicAdd,
}

// Atomic returns the operation of an atomic intrinsic.
func (i Intrinsic) Atomic() (AtomicOp, bool) {
	for _, first := range atomicGroups {
		if i >= first && i <= first+Intrinsic(AtomicCompSwap) {
			return AtomicOp(i - first), true
		}
	}
	return 0, false
}
