package errors

type ExitCode int

const (
	// The selected configuration could not be found or parsed
	ConfigFailureExitCode ExitCode = 70

	// Command line flags were out of range
	BadFlagsExitCode = 71

	// The simulation stopped before all offers were handled
	SimulationFailureExitCode = 80

	// Jobs were lost or dispatched twice during a simulation
	AccountingFailureExitCode = 81
)
