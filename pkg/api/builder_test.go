package api

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/propdoc/pkg/demos"
	"github.com/gnana997/propdoc/pkg/describe"
	"github.com/gnana997/propdoc/pkg/docgen"
	"github.com/gnana997/propdoc/pkg/markdown"
	"github.com/gnana997/propdoc/pkg/parser"
	"github.com/gnana997/propdoc/pkg/parser/queries"
	"github.com/gnana997/propdoc/pkg/project"
	"github.com/gnana997/propdoc/pkg/styles"
	"github.com/gnana997/propdoc/pkg/testinfo"
	"github.com/gnana997/propdoc/pkg/util"
)

const badgeSource = `import * as React from 'react';
import PropTypes from 'prop-types';

/**
 * Badges show a count.
 *
 * Demos:
 *
 * - [Badge](https://mui.com/material-ui/react-badge/)
 *
 * API:
 *
 * - [Badge API](https://mui.com/material-ui/api/badge/)
 */
const Badge = React.forwardRef(function Badge(inProps, ref) {
  const props = useDefaultProps({ props: inProps, name: 'MuiBadge' });
  const { max = 99, children, ...other } = props;
  return <span ref={ref} {...other}>{children}</span>;
});

Badge.propTypes = {
  /**
   * The content of the badge.
   */
  children: PropTypes.node,
  /**
   * Override or extend the styles applied to the component.
   */
  classes: PropTypes.object,
  /**
   * The color of the badge.
   */
  color: PropTypes.oneOf(['red', 'blue']).isRequired,
  /**
   * Max count to show.
   * @default 99
   */
  max: PropTypes.number,
  /**
   * Callback fired when the badge is dismissed.
   * @param {React.SyntheticEvent} event The event source of the callback.
   */
  onClose: PropTypes.func,
  /**
   * Where the badge is anchored.
   */
  anchor: PropTypes.string.isRequired,
  /**
   * @ignore
   */
  internal: PropTypes.bool,
  /**
   * The system prop.
   */
  sx: PropTypes.object,
};

export default Badge;
`

const badgeClasses = `export interface BadgeClasses {
  /** Styles applied to the root element. */
  root: string;
  /** Styles applied to the badge ` + "`span`" + ` element. */
  badge: string;
  /** State class applied to the root element if ` + "`invisible={true}`" + `. */
  invisible: string;
}
`

const badgeTest = `import * as React from 'react';
import Badge, { badgeClasses as classes } from '@mui/material/Badge';
import describeConformance from '../../test/describeConformance';

describe('<Badge />', () => {
  describeConformance(<Badge color="red" anchor="top" />, () => ({
    classes,
    inheritComponent: 'ButtonBase',
    refInstanceof: window.HTMLSpanElement,
    muiName: 'MuiBadge',
    skip: ['propsSpread', 'componentsProp'],
  }));
});
`

const chipSource = `import PropTypes from 'prop-types';

const Chip = function Chip(props) {
  const { label, ...other } = props;
  return <div {...other}>{label}</div>;
};

Chip.propTypes = {
  /**
   * The label.
   */
  label: PropTypes.node,
};

export default Chip;
`

const brokenChipSource = `import PropTypes from 'prop-types';

const Chip = function Chip(props) {
  return <div />;
};

Chip.propTypes = {
  /**
   * The label.
   */
  label: PropTypes.node,
  /**
   * The avatar.
   */
  avatar: PropTypes.avatarish,
  size: PropTypes.string,
};

export default Chip;
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

type fixture struct {
	project *project.Project
	builder *Builder
}

func newFixture(t *testing.T, pages []demos.Page, configure func(*project.Config)) *fixture {
	t.Helper()
	cfg := project.DefaultConfig()
	cfg.Root = t.TempDir()
	if configure != nil {
		configure(&cfg)
	}
	p, err := project.New(cfg, util.DiscardLogger())
	require.NoError(t, err)

	logger := util.DiscardLogger()
	pm := parser.NewParserManager(logger)
	qm := queries.NewQueryManager(pm, logger)
	t.Cleanup(func() {
		qm.Close()
		pm.Close()
	})
	dg := docgen.NewParser(pm, qm, logger)

	b := NewBuilder(p, Deps{
		Docgen:    dg,
		Unwrapper: dg,
		Tests:     testinfo.NewParser(pm, qm, logger),
		Demos:     demos.NewIndex(pages),
		Styles:    styles.NewParser(pm, qm, logger),
		Markdown:  markdown.New(),
	}, logger)
	return &fixture{project: p, builder: b}
}

func (f *fixture) write(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(f.project.Root(), rel)
	writeFile(t, path, content)
	return path
}

var badgeDemo = demos.Page{Title: "Badge", Pathname: "/material-ui/react-badge/", Components: []string{"Badge"}}

func TestGenerateComponentAPI(t *testing.T) {
	f := newFixture(t, []demos.Page{badgeDemo}, nil)
	path := f.write(t, "src/Badge/Badge.js", badgeSource)
	f.write(t, "src/Badge/badgeClasses.ts", badgeClasses)
	f.write(t, "src/Badge/Badge.test.js", badgeTest)

	api, err := f.builder.GenerateComponentAPI(context.Background(), f.project.Component(path))
	require.NoError(t, err)

	assert.Equal(t, "Badge", api.Name)
	assert.Equal(t, "src/Badge/Badge.js", api.Filename)
	assert.Equal(t, "Badges show a count.", api.Description, "generated trailers are stripped")
	assert.Equal(t, "MuiBadge", api.MuiName)
	assert.Equal(t, "/material-ui/api/badge/", api.APIPathname)
	assert.Equal(t, []string{
		"import Badge from '@mui/material/Badge';",
		"import { Badge } from '@mui/material';",
	}, api.Imports)
	assert.Equal(t, []demos.Demo{{Title: "Badge", Pathname: "/material-ui/react-badge/"}}, api.Demos)

	require.NotNil(t, api.Inheritance)
	assert.Equal(t, project.Inheritance{Component: "ButtonBase", Pathname: "/material-ui/api/button-base/"}, *api.Inheritance)
	require.NotNil(t, api.ForwardsRefTo)
	assert.Equal(t, "HTMLSpanElement", *api.ForwardsRefTo)
	assert.Equal(t, util.TriFalse, api.Spread, "the test file overrides the spread detected in source")
	assert.Equal(t, util.TriTrue, api.ThemeDefaultProps)

	assert.Equal(t, []string{"anchor", "color", "children", "classes", "max", "onClose", "sx"}, api.Props.Names())

	color, ok := api.Props.Get("color")
	require.True(t, ok)
	assert.Equal(t, PropEntry{Type: PropType{Name: "enum", Description: "'red' | 'blue'"}, Required: true}, color)

	children, _ := api.Props.Get("children")
	assert.Equal(t, PropType{Name: "node"}, children.Type, "plain names carry no description")

	max, _ := api.Props.Get("max")
	assert.Equal(t, "99", max.Default)

	onClose, _ := api.Props.Get("onClose")
	require.NotNil(t, onClose.Signature)
	assert.Equal(t, "function(event: React.SyntheticEvent) => void", onClose.Signature.Type)
	assert.Equal(t, []string{"event"}, onClose.Signature.DescribedArgs)

	classes, _ := api.Props.Get("classes")
	assert.Equal(t, map[string]bool{InfoCSSAPI: true}, classes.AdditionalInfo)
	sx, _ := api.Props.Get("sx")
	assert.Equal(t, map[string]bool{InfoSx: true}, sx.AdditionalInfo)

	require.Len(t, api.Classes, 3)
	assert.Equal(t, "MuiBadge-root", api.Classes[0].ClassName)
	assert.Equal(t, "MuiBadge-invisible", api.Classes[2].ClassName)

	tr := api.Translation
	assert.Equal(t, "<p>Badges show a count.</p>", tr.ComponentDescription)
	assert.Equal(t, "<p>The color of the badge.</p>", tr.PropDescriptions["color"].Description)
	assert.Equal(t, map[string]string{"event": "The event source of the callback."}, tr.PropDescriptions["onClose"].TypeDescriptions)
	assert.NotContains(t, tr.PropDescriptions, "internal")
	assert.Equal(t, ClassDescription{Description: "Styles applied to the root element."}, tr.ClassDescriptions["root"])
	assert.Equal(t, ClassDescription{
		Description: "Styles applied to {{nodeName}}.",
		NodeName:    "the badge <code>span</code> element",
	}, tr.ClassDescriptions["badge"])
	assert.Equal(t, ClassDescription{
		Description: "State class applied to {{nodeName}} if {{conditions}}.",
		Conditions:  "<code>invisible={true}</code>",
	}, tr.ClassDescriptions["invisible"])
}

func TestGenerateComponentAPIWithoutTestFile(t *testing.T) {
	chipDemo := demos.Page{Title: "Chip", Pathname: "/material-ui/react-chip/", Components: []string{"Chip"}}
	f := newFixture(t, []demos.Page{chipDemo}, nil)
	path := f.write(t, "src/Chip/Chip.js", chipSource)

	api, err := f.builder.GenerateComponentAPI(context.Background(), f.project.Component(path))
	require.NoError(t, err)

	assert.Equal(t, util.TriTrue, api.Spread, "spread falls back to the source")
	assert.Equal(t, util.TriUnset, api.ThemeDefaultProps)
	assert.Nil(t, api.ForwardsRefTo)
	assert.Nil(t, api.Inheritance)
	assert.Equal(t, "MuiChip", api.MuiName)
	assert.NotNil(t, api.Classes)
	assert.Empty(t, api.Classes)
}

func TestGenerateComponentAPIMissingDemo(t *testing.T) {
	f := newFixture(t, nil, nil)
	path := f.write(t, "src/Chip/Chip.js", chipSource)

	api, err := f.builder.GenerateComponentAPI(context.Background(), f.project.Component(path))
	assert.Nil(t, api)

	var missing *MissingDemoError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Chip", missing.Component)
	assert.Contains(t, err.Error(), `"Chip"`)
	assert.True(t, IsComponentError(err))

	f = newFixture(t, nil, func(cfg *project.Config) { cfg.SkipDemoCheck = []string{"Chip"} })
	path = f.write(t, "src/Chip/Chip.js", chipSource)
	_, err = f.builder.GenerateComponentAPI(context.Background(), f.project.Component(path))
	assert.NoError(t, err)
}

func TestGenerateComponentAPIAggregatesPropErrors(t *testing.T) {
	chipDemo := demos.Page{Title: "Chip", Pathname: "/material-ui/react-chip/", Components: []string{"Chip"}}
	f := newFixture(t, []demos.Page{chipDemo}, nil)
	path := f.write(t, "src/Chip/Chip.js", brokenChipSource)

	api, err := f.builder.GenerateComponentAPI(context.Background(), f.project.Component(path))
	assert.Nil(t, api, "valid props are not emitted when any prop fails")

	var aggregated *AggregatedPropError
	require.ErrorAs(t, err, &aggregated)
	assert.Equal(t, "Chip", aggregated.Component)
	assert.Equal(t, []string{"avatar", "size"}, aggregated.Props())
	assert.Contains(t, err.Error(), "avatar")
	assert.Contains(t, err.Error(), "size")

	var unsupported *describe.UnsupportedPropTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "avatar", unsupported.Prop)
	var missing *describe.MissingDescriptionError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "size", missing.Prop)
}

const buttonSource = `import PropTypes from 'prop-types';
import chainPropTypes from '../utils/chainPropTypes';

const Button = function Button(props) {
  const {
    anchorOrigin = {
      vertical: 'top',
      horizontal: 'right',
    },
    children,
    ...other
  } = props;
  return <button {...other}>{children}</button>;
};

Button.propTypes = {
  /**
   * The anchor of the button.
   * @default {
   *   vertical: 'top',
   *   horizontal: 'right',
   * }
   */
  anchorOrigin: PropTypes.shape({
    horizontal: PropTypes.oneOf(['left', 'right']).isRequired,
    vertical: PropTypes.oneOf(['bottom', 'top']).isRequired,
  }),
  /**
   * The content of the button.
   */
  children: chainPropTypes(PropTypes.node, (props) => null),
};

export default Button;
`

func TestGenerateComponentAPIChainedAndMultilineDefault(t *testing.T) {
	buttonDemo := demos.Page{Title: "Button", Pathname: "/material-ui/react-button/", Components: []string{"Button"}}
	f := newFixture(t, []demos.Page{buttonDemo}, nil)
	path := f.write(t, "src/Button/Button.js", buttonSource)

	api, err := f.builder.GenerateComponentAPI(context.Background(), f.project.Component(path))
	require.NoError(t, err, "a default wrapped over several lines matches its @default")

	children, ok := api.Props.Get("children")
	require.True(t, ok)
	assert.Equal(t, PropType{Name: "node"}, children.Type, "the chain wrapper does not show in the type")
	assert.False(t, children.Required)

	anchor, ok := api.Props.Get("anchorOrigin")
	require.True(t, ok)
	assert.Equal(t, "shape", anchor.Type.Name)
	assert.Contains(t, anchor.Default, "vertical: 'top'")
}

func TestGenerateComponentAPISystemFallback(t *testing.T) {
	chipDemo := demos.Page{Title: "Chip", Pathname: "/system/react-chip/", Components: []string{"Chip"}}
	f := newFixture(t, []demos.Page{chipDemo}, func(cfg *project.Config) {
		cfg.SystemComponents = []string{"Chip"}
	})
	path := f.write(t, "src/Chip/Chip.js", chipSource)

	c := f.project.Component(path)
	require.True(t, c.IsSystem)
	api, err := f.builder.GenerateComponentAPI(context.Background(), c)
	require.NoError(t, err, "no create<Name> factory falls back to default detection")
	assert.Equal(t, []string{"label"}, api.Props.Names())
}

func TestGenerateComponentAPICancelled(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.builder.GenerateComponentAPI(ctx, project.Component{Name: "Chip"})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestAdditionalInfoJoy(t *testing.T) {
	f := newFixture(t, nil, func(cfg *project.Config) { cfg.ProductID = "joy-ui" })
	c := project.Component{Name: "Chip"}

	assert.Equal(t, map[string]bool{InfoJoyColor: true}, f.builder.additionalInfo("color", c))
	assert.Equal(t, map[string]bool{InfoJoySize: true}, f.builder.additionalInfo("size", c))
	assert.Equal(t, map[string]bool{InfoJoyVariant: true}, f.builder.additionalInfo("variant", c))
	assert.Equal(t, map[string]bool{InfoSlotsAPI: true}, f.builder.additionalInfo("slots", c))
	assert.Nil(t, f.builder.additionalInfo("slots", project.Component{Name: "Box", IsSystem: true}))

	material := newFixture(t, nil, nil)
	assert.Nil(t, material.builder.additionalInfo("color", c))
}

func TestSortRows(t *testing.T) {
	row := func(name string, required bool) propRow {
		return propRow{prop: &describe.Prop{Name: name}, required: required}
	}
	rows := []propRow{row("size", false), row("color", true), row("anchor", false), row("children", true)}
	sortRows(rows)

	var names []string
	for _, r := range rows {
		names = append(names, r.prop.Name)
	}
	assert.Equal(t, []string{"children", "color", "anchor", "size"}, names)
}

func TestStripTrailers(t *testing.T) {
	cases := map[string]string{
		"Badges show a count.": "Badges show a count.",
		"Badges.\n\nDemos:\n\n- [Badge](/x)\n\nAPI:\n\n- [Badge API](/y)": "Badges.",
		"Badges.\n\nAPI:\n\n- [Badge API](/y)":                            "Badges.",
		"Demos:\n\n- [Badge](/x)":                                         "",
		"":                                                                "",
	}
	for in, want := range cases {
		assert.Equal(t, want, StripTrailers(in), in)
	}
}
