package iselapi

// These consts are used in various places of the selector. Keeping them in one
// place makes it quick to flip debugging on without hunting for the gates.

// ----- Output prints -----
// These consts must be disabled by default. Enable them only when debugging.

const (
	PrintProgram    = false
	PrintDivergence = false
)

// ----- Validations -----
// These consts must be enabled by default until the selector has been fuzzed long enough.

const (
	// ValidationEnabled makes the builder check operand register classes against
	// the program's temp table on every insertion.
	ValidationEnabled = true
)

// ----- Log topics -----
// Topics accepted by tlog verbosity filters, e.g. `-v=isel_cf,isel_phi`.

const (
	TopicCF         = "isel_cf"
	TopicPhi        = "isel_phi"
	TopicMem        = "isel_mem"
	TopicDump       = "isel_dump"
	TopicDivergence = "divergence"
)
