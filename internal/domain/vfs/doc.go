// Package vfs implements the virtual file system shown by File Explorer.
//
// Records are a flat list linked by ParentID and persisted as one JSON
// document. Children are never stored on the folder; an index from parent
// id to ordered child ids is rebuilt after every mutation, so lookups do
// not scan the list.
//
// Mutations work on a copy of the list, persist it, and only then swap it
// in: a failed write leaves memory and storage in agreement.
//
// Invariants:
//   - a single root folder with id "root" and no parent always exists
//   - every other record's parent exists and is a folder
//   - no folder is its own ancestor
//   - deleting a folder removes every descendant
package vfs
