// Package command defines the descriptors toolbar controls carry.
//
// A descriptor names which Markdown transformation to run and holds its
// static parameters. Each descriptor reports the dispatcher action it routes
// to and validates its own parameters, so misconfigured controls are caught
// when the toolbar is built rather than when a control is clicked.
//
// # Descriptors
//
//   - Heading: "#" × level + " " at the start of the cursor row
//   - InlineWrap: modifier + selection + modifier
//   - HorizontalRule: a "---" block
//   - ListPrefix: prefix at the start of every selected row
//   - Link, Image: [text](url) and ![text](url)
//   - CodeBlock: a bare fence around the selection
//   - FencedBlock: a language-tagged fence (math, diagrams)
//   - Table: a sample table block
//   - Token: a normalized inline token (emoji, icons)
package command
