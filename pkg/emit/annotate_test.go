package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/propdoc/pkg/parser"
	"github.com/gnana997/propdoc/pkg/util"
)

func newTestAnnotator(t *testing.T) *Annotator {
	t.Helper()
	pm := parser.NewParserManager(util.DiscardLogger())
	t.Cleanup(func() { pm.Close() })
	return NewAnnotator(pm)
}

const badgeDeclaration = `import * as React from 'react';

export interface BadgeProps {
  max?: number;
}

declare const Badge: React.FC<BadgeProps>;

export default Badge;
`

const badgeComment = `/**
 *
 * Demos:
 *
 * - [Badge](https://mui.com/material-ui/react-badge/)
 *
 * API:
 *
 * - [Badge API](https://mui.com/material-ui/api/badge/)
 */`

func TestAnnotateInsertsBeforeDeclaration(t *testing.T) {
	a := newTestAnnotator(t)

	out, err := a.Annotate("Badge.d.ts", []byte(badgeDeclaration), "Badge", badgeComment)
	require.NoError(t, err)
	assert.Contains(t, string(out), badgeComment+"\ndeclare const Badge")
	assert.Contains(t, string(out), "export interface BadgeProps")
}

func TestAnnotateIsIdempotent(t *testing.T) {
	a := newTestAnnotator(t)

	once, err := a.Annotate("Badge.d.ts", []byte(badgeDeclaration), "Badge", badgeComment)
	require.NoError(t, err)
	twice, err := a.Annotate("Badge.d.ts", once, "Badge", badgeComment)
	require.NoError(t, err)
	assert.Equal(t, string(once), string(twice))
}

func TestAnnotateReplacesExistingBlock(t *testing.T) {
	a := newTestAnnotator(t)
	src := `// eslint-disable-next-line
/**
 * Old docs.
 */
export default function Chip(props: ChipProps): React.JSX.Element;
`
	out, err := a.Annotate("Chip.d.ts", []byte(src), "Chip", "/**\n * New docs.\n */")
	require.NoError(t, err)
	assert.Equal(t, `// eslint-disable-next-line
/**
 * New docs.
 */
export default function Chip(props: ChipProps): React.JSX.Element;
`, string(out))
}

func TestAnnotateTSXComponent(t *testing.T) {
	a := newTestAnnotator(t)
	src := `import * as React from 'react';

const Card = React.forwardRef<HTMLDivElement, CardProps>(function Card(props, ref) {
  return <div ref={ref} {...props} />;
});

export default Card;
`
	out, err := a.Annotate("Card.tsx", []byte(src), "Card", "/** Card. */")
	require.NoError(t, err)
	assert.Contains(t, string(out), "/** Card. */\nconst Card = React.forwardRef")
}

func TestAnnotateErrors(t *testing.T) {
	a := newTestAnnotator(t)

	_, err := a.Annotate("Empty.d.ts", []byte("export interface EmptyProps {}\n"), "Empty", "/** x */")
	var notFound *AnnotationTargetNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Empty", notFound.Component)

	src := `/** First. */
/** Second. */
declare const Badge: React.FC;
export default Badge;
`
	_, err = a.Annotate("Badge.d.ts", []byte(src), "Badge", "/** x */")
	var multiple *MultipleJsdocBlocksError
	require.ErrorAs(t, err, &multiple)
	assert.Equal(t, 2, multiple.Count)
}
