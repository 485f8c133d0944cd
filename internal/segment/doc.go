// Package segment normalizes repository status and renders the prompt segment.
//
// Raw backend status records become a closed tagged StatusSnapshot variant the
// PromptRenderer formats with the fixed `on <symbol><name> (<id>) [<flags>]`
// template. Display switches resolve from CLI flags and namespaced environment
// variables with flag precedence; the presence of a suppression variable
// disables its section regardless of value. The Service orchestrates the whole
// pipeline and converts every failure into absent output.
package segment
