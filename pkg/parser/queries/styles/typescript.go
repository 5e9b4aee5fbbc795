package styles

// TSQueries matches interface declarations in TypeScript sources.
//
// The styles reader keeps only the `<Name>Classes` and `<Name>Slots`
// interfaces; filtering happens in Go so the same compiled query serves
// every component.
//
// Captures:
//   - @interface.name - The interface identifier
//   - @interface.body - The interface body (property_signature members)
const TSQueries = `
; interface ButtonClasses { root: string; }
(interface_declaration
  name: (_) @interface.name
  body: (_) @interface.body
) @interface.definition
`
