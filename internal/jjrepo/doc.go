// Package jjrepo reads JJ working copy status by shelling out to the jj executable.
//
// A single templated jj log invocation yields the change identifier, bookmark
// placement, and the conflict, divergence, and description flags the prompt
// pipeline consumes.
package jjrepo
