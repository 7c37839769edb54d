// Package dispatcher routes toolbar commands to handlers and coordinates execution.
//
// The dispatcher is the hub between the toolbar and the text buffer. It receives
// command descriptors, snapshots the buffer's cursor and selection into an
// ExecutionContext, and routes the command to a handler by the namespace prefix
// of its action name.
//
// # Architecture
//
// Routing is two-tier:
//
//  1. Namespace Router: "markdown.heading" is routed to the handler registered
//     for the "markdown" namespace.
//
//  2. Handler Registry: exact action names mapped to handlers, sorted by
//     priority. Consulted when no namespace handler accepts the action.
//
// # Handler Execution
//
// When a command is dispatched:
//
//  1. An ExecutionContext is built from the current buffer state
//  2. Pre-dispatch hooks run in priority order (any may cancel)
//  3. The router finds the handler
//  4. The handler runs, with panic recovery unless disabled
//  5. Post-dispatch hooks run
//  6. Metrics are recorded (if enabled)
//
// Dispatch is synchronous; the buffer reflects the mutation when Dispatch returns.
//
// # Usage
//
//	d := dispatcher.NewWithDefaults()
//	d.SetBuffer(doc)
//	d.RegisterNamespace(command.Namespace, markdown.NewHandler())
//	d.RegisterPreHook(dispatcher.NewReadOnlyHook())
//
//	result := d.Dispatch(command.Heading{Level: 2})
package dispatcher
