// Package syncer ties the manifest source, the local installation source and the
// installer to the pure registry model.
//
// A Session takes one consistent snapshot of local state per reconciliation and
// never re-queries it mid-computation. Statuses it returns are advisory: the
// installer remains the authority on what is installed.
package syncer
