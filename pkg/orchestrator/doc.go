// Package orchestrator wires one widget instance: the input state holder, the
// submission controller, the endpoint contract and the renderer registry. It
// is the single entry point the HTTP and terminal front ends build on.
package orchestrator
