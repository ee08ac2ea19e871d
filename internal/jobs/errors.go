package jobs

import "errors"

// ErrUnknownJob is returned when a job id is not known to the manager.
var ErrUnknownJob = errors.New("jobs: unknown job id")
