// Package registry provides a generic, thread-safe name -> item registry.
// limo keeps its order-file dialects in one: the built-ins are registered at
// startup and dialects declared in the user config are layered on top with
// Replace.
package registry
