// Package treefile reads tree versions from YAML fixture files.
//
// A file is a stream of YAML documents separated by "---". Each document is
// one complete tree version:
//
//	root: 1
//	focus: 3
//	nodes:
//	  - {id: 1, role: window, name: Main, children: [2]}
//	  - {id: 2, role: presentation, children: [3]}
//	  - {id: 3, role: button, name: OK, invisible: true}
//
// root defaults to the first node's id. Roles use the names understood by
// types.ParseRole. Unknown fields are rejected.
package treefile
