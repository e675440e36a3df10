package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/modelgen/internal/errors"
	"github.com/mcncl/modelgen/internal/models"
)

func TestParse_SimpleObject(t *testing.T) {
	value, err := Parse(strings.NewReader(`{"name": "John Doe", "age": 30, "isStudent": false, "city": null, "score": 9.5}`))
	require.NoError(t, err)

	expected := models.Object(
		models.M("name", models.String("John Doe")),
		models.M("age", models.Int(30)),
		models.M("isStudent", models.Bool(false)),
		models.M("city", models.Null()),
		models.M("score", models.Float64(9.5)),
	)
	assert.Equal(t, expected, value)
}

func TestParse_PreservesKeyOrder(t *testing.T) {
	value, err := Parse(strings.NewReader(`{"zeta": 1, "alpha": 2, "mid": {"y": 1, "b": 2}}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, value.Keys())
	mid, ok := value.Get("mid")
	require.True(t, ok)
	assert.Equal(t, []string{"y", "b"}, mid.Keys())
}

func TestParse_DuplicateKeyKeepsFirstPositionLastValue(t *testing.T) {
	value, err := Parse(strings.NewReader(`{"a": 1, "b": 2, "a": "x"}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, value.Keys())
	a, _ := value.Get("a")
	assert.Equal(t, models.String("x"), a)
}

func TestParse_Numbers(t *testing.T) {
	tests := []struct {
		input    string
		expected models.Value
	}{
		{`0`, models.Int(0)},
		{`-42`, models.Int(-42)},
		{`1.0`, models.Float64(1.0)},
		{`3.14`, models.Float64(3.14)},
		{`1e3`, models.Float64(1000)},
		{`9223372036854775808`, models.Float64(9223372036854775808)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			value, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestParse_ArraysAndNesting(t *testing.T) {
	value, err := Parse(strings.NewReader(`{"items": [{"x": 1}, [], "s", null, true], "empty": {}}`))
	require.NoError(t, err)

	expected := models.Object(
		models.M("items", models.Array(
			models.Object(models.M("x", models.Int(1))),
			models.Array(),
			models.String("s"),
			models.Null(),
			models.Bool(true),
		)),
		models.M("empty", models.Object()),
	)
	assert.Equal(t, expected, value)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target error
	}{
		{"empty", "", errors.ErrEmptyInput},
		{"whitespace", "   \n", errors.ErrEmptyInput},
		{"unterminated object", `{"a": 1`, errors.ErrInvalidJSON},
		{"missing value", `{"a": }`, errors.ErrInvalidJSON},
		{"multiple values", `{"a": 1} {"b": 2}`, errors.ErrMultipleJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestParseString_Empty(t *testing.T) {
	_, err := ParseString("  ")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrEmptyInput)
	assert.ErrorIs(t, err, &errors.AppError{Type: errors.ErrorTypeInput})
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "payload.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"id": 7}`), 0o644))

		value, err := ParseFile(path)
		require.NoError(t, err)
		assert.Equal(t, models.Object(models.M("id", models.Int(7))), value)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ParseFile(filepath.Join(dir, "nope.json"))
		assert.ErrorIs(t, err, errors.ErrFileNotFound)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.json")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		_, err := ParseFile(path)
		assert.ErrorIs(t, err, errors.ErrFileEmpty)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := ParseFile(" ")
		assert.ErrorIs(t, err, errors.ErrInvalidFilePath)
	})
}
