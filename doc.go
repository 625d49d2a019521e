// Package hisab keeps the books of a small trading business: income and expense
// transactions per account, dollar lots bought and sold for Taka, personal dollar
// usage, shop orders, and a vault of credentials.
//
// The state is six collections held by a Controller. Every mutation updates the
// in-memory state first, then persists the whole changed collection through a
// Syncer, without blocking the caller. Metrics like balances and dollar profit are
// always derived from the collections, never stored.
//
// The cloud package provides the Syncer of a remote state store, the server
// package the store itself, and the cmd package the hisab command line.
package hisab
