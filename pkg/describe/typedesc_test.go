package describe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func simple(name string) *TypeDescriptor {
	return &TypeDescriptor{Name: name, Kind: KindSimple}
}

func TestRenderTypeAliasNotNeeded(t *testing.T) {
	text, needed := RenderType(simple("bool"))
	assert.Equal(t, "bool", text)
	assert.False(t, needed)
}

func TestRenderTypeUnionDedup(t *testing.T) {
	union := &TypeDescriptor{Name: "union", Kind: KindUnion, Members: []*TypeDescriptor{simple("string"), simple("string")}}
	text, needed := RenderType(union)
	assert.Equal(t, "string", text)
	assert.True(t, needed)

	union.Members = append(union.Members, &TypeDescriptor{Name: "arrayOf", Kind: KindArrayOf, Elem: simple("number")})
	text, _ = RenderType(union)
	assert.Equal(t, "string | Array<number>", text)
}

func TestRenderTypeKinds(t *testing.T) {
	cases := []struct {
		name string
		typ  *TypeDescriptor
		want string
	}{
		{"enum", &TypeDescriptor{Name: "enum", Kind: KindEnum, Values: []string{`"small"`, "'large'", "42", "true"}}, "'small' | 'large' | 42 | true"},
		{"computed enum", &TypeDescriptor{Name: "enum", Kind: KindEnum, ComputedEnum: true, Raw: "sizes"}, "sizes"},
		{"objectOf", &TypeDescriptor{Name: "objectOf", Kind: KindObjectOf, Elem: simple("string")}, "{ [key: string]: string }"},
		{"instanceOf", &TypeDescriptor{Name: "instanceOf", Kind: KindInstanceOf, Instance: "Element"}, "Element"},
		{"instanceOf typeof", &TypeDescriptor{Name: "instanceOf", Kind: KindInstanceOf, Instance: "typeof Element === 'undefined' ? Object : Element"}, "Element"},
		{"ref", &TypeDescriptor{Name: "custom", Kind: KindCustom, Raw: "refType"}, "ref"},
		{"html element", &TypeDescriptor{Name: "custom", Kind: KindCustom, Raw: "HTMLElementType"}, "HTML element"},
		{"any", &TypeDescriptor{Name: "custom", Kind: KindCustom, Raw: "() => null"}, "any"},
		{"element required", &TypeDescriptor{Name: "custom", Kind: KindCustom, Raw: "elementAcceptingRef.isRequired"}, "element"},
		{"raw", &TypeDescriptor{Name: "custom", Kind: KindCustom, Raw: "integerPropType"}, "integerPropType"},
		{"computed shape", &TypeDescriptor{Name: "shape", Kind: KindShape}, "object"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text, _ := RenderType(tc.typ)
			assert.Equal(t, tc.want, text)
		})
	}
}

func TestRenderTypeShapeDepthCap(t *testing.T) {
	leaf := simple("string")
	nested := leaf
	for i := 0; i < 6; i++ {
		nested = &TypeDescriptor{Name: "shape", Kind: KindShape, Fields: []Field{{Name: "n", Type: nested}}}
	}
	text, _ := RenderType(nested)
	assert.Equal(t, "{ n?: { n?: { n?: { n?: object } } } }", text)
}
