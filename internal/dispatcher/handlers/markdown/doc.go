// Package markdown provides the toolbar command handlers that turn command
// descriptors into Markdown edits on a text buffer.
//
// Every handler reads the cursor and selection captured in the
// ExecutionContext, applies its mutation through the TextBuffer capability,
// and leaves the cursor at the point where the user is expected to continue
// typing. Results record the applied edits and the final cursor.
//
// # Inline Operations
//
// The InlineHandler type edits in place:
//   - markdown.heading: prefix the cursor's line with 1-6 "#" and a space
//   - markdown.wrap: surround the selection with a modifier such as "**"
//   - markdown.list: prefix every selected line
//   - markdown.link: replace the selection with [text](url)
//   - markdown.image: insert ![text](url) at the cursor
//   - markdown.token: insert a normalized emoji or icon shortcode
//
// # Block Operations
//
// The BlockHandler type inserts standalone blocks separated from the
// surrounding text:
//   - markdown.horizontalRule: ---
//   - markdown.codeBlock: a bare fence around the selection
//   - markdown.fencedBlock: a language fence (katex, mermaid) around the
//     selection or a sample body
//   - markdown.table: a sample table
//
// At column 0 a block is written as "\n" + block + "\n". Anywhere else the
// cursor first moves to the end of its line and the block is written as
// "\n\n" + block + "\n".
//
// # Contract Violations
//
// A heading level outside 1..6 panics. The dispatcher recovers the panic
// into an error result.
package markdown
