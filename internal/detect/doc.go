// Package detect classifies the version control system governing a directory.
//
// The detector walks parent directories upward from a starting point and stops
// at the first level carrying Git or JJ metadata; a level carrying both is
// reported as colocated. The package also ships the detect command, which
// exposes the classification purely through its exit code.
package detect
