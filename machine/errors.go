package machine

import "errors"

var (
	// errLabelNotFound is returned by a branch or jump whose target label
	// is absent from the program's label map.
	errLabelNotFound = errors.New("label does not exist")

	// errSegmentationFault names an out-of-range memory access. No run
	// loop returns it: such an access panics with a slice-index error.
	errSegmentationFault = errors.New("segmentation fault")
)
