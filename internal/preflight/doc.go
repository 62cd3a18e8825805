// Package preflight verifies the environment before batch work starts:
// external binaries, directory access, free disk space, and metadata API
// reachability. The status command renders these results; the convert and
// trailers commands run the subset they depend on.
package preflight
