// Package gitrepo reads Git working tree status through go-git.
//
// StatusReader produces the raw facts the prompt pipeline consumes: branch or
// detached head, full head hash, per-file state counts, and upstream
// ahead/behind divergence. Repositories without commits are still reported
// with a placeholder head identifier.
package gitrepo
