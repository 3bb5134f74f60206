// Package courier defines the courier services integrated with the back
// office and the service messages they produce. Courier ids match the
// identifiers used by the external order system; ServiceMessage is the
// classified unit of courier communication the exception workflow consumes.
package courier
