package detection

// Result is the outcome of a single detection.
type Result int

const (
	// Void means the input stroke was degenerate.
	Void Result = -2
	// Undetermined means no single detection ran yet.
	Undetermined Result = -1
	// OK means a final segment was found.
	OK Result = 0

	PrelimNoDetection Result = 1
	PrelimTooFew      Result = 2

	InitialNoDetection      Result = 11
	InitialTooFew           Result = 12
	InitialTooSparse        Result = 13
	InitialCloseOrientation Result = 15

	FinalNoDetection Result = 21
	FinalTooFew      Result = 22
	FinalTooSparse   Result = 23
	FinalTooSmall    Result = 24
)

var resultNames = map[Result]string{
	Void:                    "VOID",
	Undetermined:            "UNDETERMINED",
	OK:                      "OK",
	PrelimNoDetection:       "PRELIM_NO_DETECTION",
	PrelimTooFew:            "PRELIM_TOO_FEW",
	InitialNoDetection:      "INITIAL_NO_DETECTION",
	InitialTooFew:           "INITIAL_TOO_FEW",
	InitialTooSparse:        "INITIAL_TOO_SPARSE",
	InitialCloseOrientation: "INITIAL_CLOSE_ORIENTATION",
	FinalNoDetection:        "FINAL_NO_DETECTION",
	FinalTooFew:             "FINAL_TOO_FEW",
	FinalTooSparse:          "FINAL_TOO_SPARSE",
	FinalTooSmall:           "FINAL_TOO_SMALL",
}

func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return "UNKNOWN"
}

// Stage returns the detection step that produced r, or -1 for results not
// tied to a step.
func (r Result) Stage() Step {
	switch {
	case r == OK || (r >= FinalNoDetection && r <= FinalTooSmall):
		return StepFinal
	case r >= InitialNoDetection && r <= InitialCloseOrientation:
		return StepInitial
	case r == PrelimNoDetection || r == PrelimTooFew:
		return StepPrelim
	}
	return -1
}

// Step names one of the three detection passes.
type Step int

const (
	StepFinal   Step = 0
	StepInitial Step = 1
	StepPrelim  Step = 2
)

func (s Step) String() string {
	switch s {
	case StepFinal:
		return "final"
	case StepInitial:
		return "initial"
	case StepPrelim:
		return "prelim"
	}
	return "none"
}
