// Package render and its subpackages turn an annotated tree plus a collapse
// state into concrete output.
//
// Each renderer is a pure consumer of the model: it queries the collapse
// state per container and the tagged value per node, and produces its whole
// output in one pass. There is no incremental or diffed rendering; callers
// re-render after every state change.
//
// Subpackages:
//   - text: styled terminal output (lipgloss)
//   - html: nested-list HTML where node paths double as DOM ids
//   - dot: Graphviz DOT, SVG, and PNG export
package render
