package conformance

// Queries matches describeConformance(...) calls in component test files.
//
// Works for the JavaScript, TypeScript and TSX grammars since it only uses
// node types shared by all three.
//
// Captures:
//   - @conformance.function - The callee identifier
//   - @conformance.arguments - The argument list (element, options factory)
const Queries = `
(call_expression
  function: (identifier) @conformance.function
  arguments: (arguments) @conformance.arguments
  (#eq? @conformance.function "describeConformance")
) @conformance.call
`
