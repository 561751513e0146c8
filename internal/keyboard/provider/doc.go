// Package provider resolves, for one cursor position, which layout skeleton
// the keyboard shows and which characters are legal.
//
// Both resolutions are chains of rules evaluated in order; the first rule
// that matches produces the result and the last entry of each chain is a
// catch-all. The chains read from the registry and never modify it.
package provider
