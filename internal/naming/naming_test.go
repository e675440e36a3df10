package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"foo", "foo"},
		{"fooBar", "fooBar"},
		{"FooBar", "FooBar"},
		{"foo_bar", "fooBar"},
		{"foo-bar", "fooBar"},
		{"foo bar", "fooBar"},
		{"FOO_BAR_BAZ", "fooBarBaz"},
		{"user-ID", "userId"},
		{"a__b", "aB"},
		{"_id", "Id"},
		{"x_1st", "x1st"},
		{"top_10k", "top10k"},
		{"a_ßx", "aßx"},
		{"a_ÄBC", "aÄbc"},
		{"a_b\tc", "aB\tC"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Fold(tt.input))
		})
	}
}

func TestIdentifier(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"name", "name"},
		{"first_name", "firstName"},
		{"First Name", "firstName"},
		{"FirstName", "firstName"},
		{"HTTP_STATUS", "httpStatus"},
		{"URLPath", "URLPath"},
		{"ID", "iD"},
		{"IDs", "IDs"},
		{"_id", "id"},
		{"created-at", "createdAt"},
		{"ÄBC_x", "ÄbcX"},
		{"item_2nd_value", "item2ndValue"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Identifier(tt.input))
		})
	}
}

func TestIdentifier_Idempotent(t *testing.T) {
	inputs := []string{
		"name", "first_name", "First Name", "FirstName", "HTTP_STATUS",
		"URLPath", "ID", "_id", "a-b-c", "x", "already_Camel_case", "ABC",
	}

	for _, input := range inputs {
		once := Identifier(input)
		assert.Equal(t, once, Identifier(once), "input %q", input)
	}
}

func TestIdentifier_Collision(t *testing.T) {
	assert.Equal(t, Identifier("foo_bar"), Identifier("fooBar"))
	assert.Equal(t, TypeName("Root", Identifier("foo_bar")), TypeName("Root", Identifier("fooBar")))
}

func TestUpperFirst(t *testing.T) {
	assert.Equal(t, "Items", UpperFirst("items"))
	assert.Equal(t, "URL", UpperFirst("URL"))
	assert.Equal(t, "", UpperFirst(""))
	assert.Equal(t, "1x", UpperFirst("1x"))
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		root       string
		identifier string
		expected   string
	}{
		{"Root", "a", "RootA"},
		{"Root", "items", "RootItems"},
		{"Root", "fooBar", "RootFooBar"},
		{"User", "URLPath", "UserURLPath"},
		{"my_root", "a", "myRoota"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, TypeName(tt.root, tt.identifier))
		})
	}
}
