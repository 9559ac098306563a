package mesh

import "errors"

// ErrMeshBuildAborted is returned when a chunk's state (or a neighbor's)
// leaves Active mid-build; the caller reschedules (spec.md §4.I).
var ErrMeshBuildAborted = errors.New("mesh: build aborted, chunk state changed")
