package docgen

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/propdoc/pkg/parser"
	"github.com/gnana997/propdoc/pkg/parser/queries"
	"github.com/gnana997/propdoc/pkg/util"
)

func newTestParser(t *testing.T) *TreeSitterParser {
	t.Helper()
	pm := parser.NewParserManager(util.DiscardLogger())
	qm := queries.NewQueryManager(pm, util.DiscardLogger())
	t.Cleanup(func() {
		qm.Close()
		pm.Close()
	})
	return NewParser(pm, qm, util.DiscardLogger())
}

const badgeSource = `import * as React from 'react';
import PropTypes from 'prop-types';
import { chainPropTypes } from '@mui/utils';

/**
 * The Badge shows a count.
 */
const Badge = React.forwardRef(function Badge(inProps, ref) {
  const props = useDefaultProps({ props: inProps, name: 'MuiBadge' });
  const {
    color = 'primary',
    max = 99,
    invisible: invisibleProp = false,
    children,
    ...other
  } = props;
  return <span ref={ref} {...other}>{children}</span>;
});

Badge.propTypes /* remove-proptypes */ = {
  // ┌────────────────────────────── Warning ──────────────────────────────┐
  /**
   * The content rendered within the badge.
   */
  children: PropTypes.node,
  /**
   * The color of the component.
   * @default 'primary'
   */
  color: PropTypes.oneOf(['primary', 'secondary']).isRequired,
  /**
   * If ` + "`true`" + `, the badge is invisible.
   * @default false
   */
  invisible: PropTypes.bool,
  /**
   * Max count to show.
   * @default 99
   */
  max: PropTypes.number,
  /**
   * The variant.
   */
  variant: PropTypes.oneOfType([PropTypes.oneOf(['dot', 'standard']), PropTypes.string]),
  sx: PropTypes.oneOfType([
    PropTypes.arrayOf(PropTypes.oneOfType([PropTypes.func, PropTypes.object, PropTypes.bool])),
    PropTypes.func,
    PropTypes.object,
  ]),
  /**
   * Props for each slot.
   */
  slotProps: PropTypes.shape({
    /**
     * Root props.
     */
    root: PropTypes.oneOfType([PropTypes.func, PropTypes.object]),
  }),
  component: chainPropTypes(PropTypes.elementType, (props) => null),
};

export default Badge;
`

func TestParseForwardRefComponent(t *testing.T) {
	p := newTestParser(t)

	r, err := p.Parse([]byte(badgeSource), "Badge.js", Options{})
	require.NoError(t, err)

	assert.Equal(t, "Badge", r.DisplayName)
	assert.Equal(t, "The Badge shows a count.", r.Description)
	assert.Equal(t, "MuiBadge", r.MuiName)
	require.NotNil(t, r.Spread)
	assert.True(t, *r.Spread)
	assert.Len(t, r.Props, 8)

	color := r.Props["color"]
	require.NotNil(t, color)
	assert.True(t, color.Required)
	assert.Equal(t, "enum", color.Type.Name)
	assert.Equal(t, "PropTypes.oneOf(['primary', 'secondary'])", color.Type.Raw)
	assert.Equal(t, []any{
		RawEnumValue{Value: "'primary'"},
		RawEnumValue{Value: "'secondary'"},
	}, color.Type.Value)
	require.NotNil(t, color.DefaultValue)
	assert.Equal(t, "'primary'", color.DefaultValue.Value)
	require.NotNil(t, color.Description)
	assert.Equal(t, "The color of the component.\n@default 'primary'", *color.Description)

	assert.Equal(t, "false", r.Props["invisible"].DefaultValue.Value, "renamed destructuring keeps the prop name")
	assert.Equal(t, "99", r.Props["max"].DefaultValue.Value)
	assert.Nil(t, r.Props["children"].DefaultValue)
	assert.Nil(t, r.Props["sx"].Description, "no doc comment")

	variant := r.Props["variant"].Type
	assert.Equal(t, "union", variant.Name)
	members, ok := variant.Value.([]any)
	require.True(t, ok)
	require.Len(t, members, 2)
	assert.Equal(t, "enum", members[0].(*RawType).Name)
	assert.Equal(t, "string", members[1].(*RawType).Name)

	sx := r.Props["sx"].Type.Value.([]any)
	arrayOf := sx[0].(*RawType)
	assert.Equal(t, "arrayOf", arrayOf.Name)
	assert.Equal(t, "union", arrayOf.Value.(*RawType).Name)

	shape := r.Props["slotProps"].Type
	assert.Equal(t, "shape", shape.Name)
	fields := shape.Value.(map[string]any)
	root := fields["root"].(*RawType)
	assert.Equal(t, "union", root.Name)
	assert.Equal(t, "Root props.", root.Description)

	component := r.Props["component"].Type
	assert.Equal(t, "custom", component.Name)
	assert.Equal(t, "chainPropTypes(PropTypes.elementType, (props) => null)", component.Raw)
}

func TestParseFunctionDeclarationWithDefaultProps(t *testing.T) {
	p := newTestParser(t)
	src := `export default function Chip(props) {
  const { size = 'medium', label } = props;
  return <div className={size}>{label}</div>;
}

Chip.propTypes = {
  label: PropTypes.node,
  size: PropTypes.string,
  variant: PropTypes.string,
  legacy: PropTypes.future,
};

Chip.defaultProps = {
  size: 'small',
  variant: 'filled',
};
`
	r, err := p.Parse([]byte(src), "Chip.js", Options{})
	require.NoError(t, err)

	assert.Equal(t, "Chip", r.DisplayName)
	assert.Empty(t, r.MuiName)
	require.NotNil(t, r.Spread)
	assert.False(t, *r.Spread)
	assert.Equal(t, "'medium'", r.Props["size"].DefaultValue.Value, "destructuring wins over defaultProps")
	assert.Equal(t, "'filled'", r.Props["variant"].DefaultValue.Value)
	assert.Equal(t, "future", r.Props["legacy"].Type.Name, "unknown PropTypes members are kept for the normalizer")
}

func TestParseTSX(t *testing.T) {
	p := newTestParser(t)
	src := `/**
 * Demos:
 *
 * - [Card](https://mui.com/joy-ui/react-card/)
 */
const Card = React.forwardRef(function Card(inProps: CardProps, ref: React.Ref<HTMLDivElement>) {
  return <div ref={ref} {...inProps} />;
}) as OverridableComponent<CardTypeMap>;

Card.propTypes /* remove-proptypes */ = {
  /**
   * The size of the component.
   * @default 'md'
   */
  size: PropTypes.oneOfType([PropTypes.oneOf(['sm', 'md']), PropTypes.string]),
} as any;

export default Card;
`
	r, err := p.Parse([]byte(src), "Card.tsx", Options{})
	require.NoError(t, err)

	assert.Equal(t, "Card", r.DisplayName)
	assert.Equal(t, "Demos:\n\n- [Card](https://mui.com/joy-ui/react-card/)", r.Description)
	require.Contains(t, r.Props, "size")
	assert.Equal(t, "union", r.Props["size"].Type.Name)
	require.NotNil(t, r.Spread)
	assert.True(t, *r.Spread)
}

func TestFactoryFinder(t *testing.T) {
	p := newTestParser(t)
	src := `const Box = createBox({ defaultClassName: 'MuiBox-root' });

Box.propTypes = {
  /**
   * @ignore
   */
  children: PropTypes.node,
};

export default Box;
`
	r, err := p.Parse([]byte(src), "Box.js", Options{Finder: FactoryFinder("Box")})
	require.NoError(t, err)
	assert.Equal(t, "Box", r.DisplayName)
	assert.Nil(t, r.Spread, "factories have no render function")
	assert.Contains(t, r.Props, "children")

	_, err = p.Parse([]byte(src), "Box.js", Options{Finder: FactoryFinder("Grid")})
	assert.True(t, errors.Is(err, ErrNoDefinition))
}

func TestParseNoDefinition(t *testing.T) {
	p := newTestParser(t)
	_, err := p.Parse([]byte("export const answer = 42;\n"), "answer.js", Options{})
	assert.True(t, errors.Is(err, ErrNoDefinition))
}

func TestUnwrap(t *testing.T) {
	p := newTestParser(t)

	u, ok := p.Unwrap("chainPropTypes(PropTypes.node.isRequired, (props) => null)")
	require.True(t, ok)
	assert.Equal(t, "chainPropTypes", u.Wrapper)
	assert.Equal(t, "node", u.Base.Name)
	assert.True(t, u.Base.Required)

	u, ok = p.Unwrap("deprecatedPropType(PropTypes.bool, 'Use `open` instead.').isRequired")
	require.True(t, ok)
	assert.Equal(t, "deprecatedPropType", u.Wrapper)
	assert.Equal(t, "bool", u.Base.Name)
	assert.Equal(t, []string{"Use `open` instead."}, u.Args)

	_, ok = p.Unwrap("PropTypes.bool")
	assert.False(t, ok)
	_, ok = p.Unwrap("elementTypeAcceptingRef")
	assert.False(t, ok)
}

func TestUnwrapReadsBaseExpression(t *testing.T) {
	p := newTestParser(t)

	u, ok := p.Unwrap("chainPropTypes(PropTypes.arrayOf(PropTypes.string).isRequired, validator)")
	require.True(t, ok)
	assert.Equal(t, "arrayOf", u.Base.Name)
	assert.True(t, u.Base.Required)
	assert.Equal(t, "string", u.Base.Value.(*RawType).Name)

	u, ok = p.Unwrap("deprecatedPropType(PropTypes.oneOf(sizes), 'Use size.')")
	require.True(t, ok)
	assert.Equal(t, "enum", u.Base.Name)
	assert.True(t, u.Base.Computed)
	assert.Equal(t, "sizes", u.Base.Value)
}

func TestLoadJSONAndJSONParser(t *testing.T) {
	dir := t.TempDir()
	doc := `{
  "displayName": "Avatar",
  "description": "",
  "props": {
    "variant": {
      "type": {"name": "enum", "value": [{"value": "'circular'", "computed": false}]},
      "required": false,
      "description": "The shape.\n@default 'circular'",
      "defaultValue": {"value": "'circular'", "computed": false}
    }
  }
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Avatar.json"), []byte(doc), 0o644))

	r, err := JSONParser{Dir: dir}.Parse(nil, "src/Avatar/Avatar.js", Options{})
	require.NoError(t, err)
	assert.Equal(t, "Avatar", r.DisplayName)
	variant := r.Props["variant"]
	require.NotNil(t, variant)
	values := variant.Type.Value.([]any)
	assert.Equal(t, "'circular'", values[0].(map[string]any)["value"])
	assert.Equal(t, "'circular'", variant.DefaultValue.Value)

	_, err = JSONParser{Dir: dir}.Parse(nil, "src/Badge/Badge.js", Options{})
	assert.True(t, errors.Is(err, ErrNoDefinition))
}
