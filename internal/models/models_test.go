package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Native(t *testing.T) {
	v := Object(
		M("n", Null()),
		M("b", Bool(true)),
		M("s", String("x")),
		M("i", Int(3)),
		M("f", Float64(1.5)),
		M("list", Array(Int(1), Object())),
	)

	assert.Equal(t, map[string]any{
		"n":    nil,
		"b":    true,
		"s":    "x",
		"i":    int64(3),
		"f":    1.5,
		"list": []any{int64(1), map[string]any{}},
	}, v.Native())
	assert.Equal(t, []string{"n", "b", "s", "i", "f", "list"}, v.Keys())
	assert.Equal(t, 6, v.Len())

	got, ok := v.Get("i")
	require.True(t, ok)
	assert.Equal(t, Int(3), got)

	_, ok = v.Get("missing")
	assert.False(t, ok)
}

func TestValue_Containers(t *testing.T) {
	assert.True(t, Array().IsContainer())
	assert.True(t, Object().IsContainer())
	assert.False(t, String("").IsContainer())
	assert.Equal(t, 0, Int(5).Len())
	assert.Equal(t, []any{}, Array().Native())
	assert.Equal(t, "object", ObjectValue.String())
}

func TestTypeKind_String(t *testing.T) {
	assert.Equal(t, "Integer", TypeKind{Kind: Integer}.String())
	assert.Equal(t, "ObjectRef(RootA)", TypeKind{Kind: ObjectRef, Ref: "RootA"}.String())
	assert.Equal(t, "ListOfObjectRef(RootB)", TypeKind{Kind: ListOfObjectRef, Ref: "RootB"}.String())
	assert.Equal(t, "ListOfScalar(Integer)", TypeKind{Kind: ListOfScalar, Element: ElementInteger}.String())
	assert.Equal(t, "ListOfScalar(Unknown)", TypeKind{Kind: ListOfScalar, Element: ElementUnknown}.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

func TestTypeKind_Default(t *testing.T) {
	assert.Nil(t, TypeKind{Kind: Nullable}.Default())
	assert.Equal(t, false, TypeKind{Kind: Boolean}.Default())
	assert.Equal(t, "", TypeKind{Kind: Text}.Default())
	assert.Equal(t, int64(0), TypeKind{Kind: Integer}.Default())
	assert.Equal(t, float64(0), TypeKind{Kind: Float}.Default())
	assert.Equal(t, []map[string]any{}, TypeKind{Kind: ListOfObjectRef}.Default())
	assert.Equal(t, []any{}, TypeKind{Kind: ListOfScalar}.Default())
}

func TestTypeKind_Predicates(t *testing.T) {
	assert.True(t, TypeKind{Kind: ObjectRef}.IsRef())
	assert.True(t, TypeKind{Kind: ListOfObjectRef}.IsRef())
	assert.False(t, TypeKind{Kind: ListOfScalar}.IsRef())
}

func TestMeta_Validate(t *testing.T) {
	assert.NoError(t, Meta{Name: "Root", Namespace: "app"}.Validate())
	assert.Error(t, Meta{Namespace: "app"}.Validate())
	assert.Error(t, Meta{Name: "Root"}.Validate())
}

func TestTypeSchema_Walk(t *testing.T) {
	leaf := &TypeSchema{Name: "RootLeaf"}
	a := &TypeSchema{Name: "RootA", Fields: []Field{
		{Name: "leaf", Kind: TypeKind{Kind: ObjectRef, Ref: "RootLeaf"}, Schema: leaf},
	}}
	b := &TypeSchema{Name: "RootB"}
	root := &TypeSchema{Name: "Root", Fields: []Field{
		{Name: "a", Kind: TypeKind{Kind: ObjectRef, Ref: "RootA"}, Schema: a},
		{Name: "n", Kind: TypeKind{Kind: Integer}},
		{Name: "b", Kind: TypeKind{Kind: ListOfObjectRef, Ref: "RootB"}, Schema: b},
	}}

	var order []string
	require.NoError(t, root.Walk(func(s *TypeSchema) error {
		order = append(order, s.Name)
		return nil
	}))
	assert.Equal(t, []string{"RootLeaf", "RootA", "RootB", "Root"}, order)
	assert.True(t, root.HasListOfObjects())
	assert.False(t, a.HasListOfObjects())

	f, ok := root.Field("n")
	require.True(t, ok)
	assert.Equal(t, Integer, f.Kind.Kind)
}
