package utils

const (
	// ProgramName is "sbhasm"
	ProgramName = "sbhasm"

	// ProgramVersion is the version of the sbhasm binary
	ProgramVersion = "1.0.0"

	// ProgramURL is the repository for the sbhasm source code
	ProgramURL = "http://github.com/sbhtools/sbhasm"
)
