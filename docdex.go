// Package docdex provides a local, two-tier documentation index with a
// staged retrieval workflow. It segments markdown trees into line-exact
// sections, summarizes them through a pluggable backend, and serves
// queries by reading only small, precisely-bounded slices of text
// instead of whole files.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., fs/, gemini/, openai/).
package docdex
