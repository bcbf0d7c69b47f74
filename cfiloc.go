// Package cfiloc locates text inside EPUB books and expresses each match as an
// EPUB CFI range.
//
// A book is first decomposed into ordered paragraphs, each tagged with the
// CFI path of its text node. Searching normalizes away whitespace, finds the
// first occurrence of the query and maps it back to paragraph offsets, which
// are then compressed into a single epubcfi(common,start,end) descriptor.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, epub/, node/).
package cfiloc
