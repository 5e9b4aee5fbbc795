package spread

// JSXQueries matches spread attributes in JSX: <Root {...other} />.
//
// Only valid for grammars with JSX support (JavaScript and TSX).
//
// Captures:
//   - @spread.element - The spread_element inside the attribute expression
const JSXQueries = `
(jsx_expression
  (spread_element) @spread.element
)
`
