package jsonpath

import (
	"testing"

	"github.com/wesleyorama2/apitopy/dot"
)

func TestExtract(t *testing.T) {
	json := `{
		"name": "John Doe",
		"age": 30,
		"address": {
			"street": "123 Main St",
			"city": "Anytown"
		},
		"phones": [
			{"type": "home", "number": "555-1234"},
			{"type": "work", "number": "555-5678"}
		],
		"active": true,
		"scores": [10, 20, 30, 40],
		"metadata": null,
		"a.b": "dotted"
	}`

	tests := []struct {
		name          string
		path          string
		expected      string
		expectedError bool
	}{
		{name: "Simple property", path: "$.name", expected: "John Doe"},
		{name: "Numeric property", path: "$.age", expected: "30"},
		{name: "Boolean property", path: "$.active", expected: "true"},
		{name: "Nested property", path: "$.address.city", expected: "Anytown"},
		{name: "Array element", path: "$.scores[1]", expected: "20"},
		{name: "Object in array", path: "$.phones[0].number", expected: "555-1234"},
		{name: "Last array element", path: "$.scores[3]", expected: "40"},
		{name: "Wildcard", path: "$.phones[*].type", expected: `["home","work"]`},
		{name: "Quoted key with dot", path: "$['a.b']", expected: "dotted"},
		{name: "Bare path", path: "address.street", expected: "123 Main St"},
		{name: "Null value", path: "$.metadata", expected: "null"},
		{name: "Non-existent property", path: "$.nonexistent", expectedError: true},
		{name: "Non-existent nested property", path: "$.address.country", expectedError: true},
		{name: "Array index out of bounds", path: "$.scores[10]", expectedError: true},
		{name: "Empty path", path: "", expectedError: true},
		{name: "Unterminated bracket", path: "$.scores[1", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Extract(json, tt.path)

			if tt.expectedError && err == nil {
				t.Errorf("Expected error, got nil")
			}
			if !tt.expectedError && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
			if !tt.expectedError && result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}

	if _, err := Extract("", "$.name"); err == nil {
		t.Errorf("Expected error for empty JSON, got nil")
	}
	if _, err := Extract("{", "$.name"); err == nil {
		t.Errorf("Expected error for invalid JSON, got nil")
	}
}

func TestLookup(t *testing.T) {
	v := dot.MustParse(`[{"email": "ada@example.com"}]`)

	email, err := Lookup(v, "$[0].email")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if email.String() != "ada@example.com" {
		t.Errorf("Lookup() = %q, want ada@example.com", email.String())
	}

	root, err := Lookup(v, "$")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if !root.IsArray() {
		t.Errorf("Expected $ to return the whole document")
	}

	if _, err := Lookup(nil, "$"); err == nil {
		t.Errorf("Expected error for nil document")
	}
}

func TestExtractMultiple(t *testing.T) {
	json := `{
		"user": {"name": "John Doe", "email": "john@example.com"},
		"status": "active",
		"items": [{"id": 1, "name": "Item 1"}]
	}`

	results, err := ExtractMultiple(json, map[string]string{
		"name":   "$.user.name",
		"status": "$.status",
		"item":   "$.items[0].name",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expected := map[string]string{"name": "John Doe", "status": "active", "item": "Item 1"}
	for name, want := range expected {
		if results[name] != want {
			t.Errorf("Expected %s=%q, got %q", name, want, results[name])
		}
	}

	results, err = ExtractMultiple(json, map[string]string{
		"name":    "$.user.name",
		"country": "$.user.address.country",
	})
	if err == nil {
		t.Errorf("Expected error for missing path")
	}
	if results["name"] != "John Doe" {
		t.Errorf("Expected partial results to be kept")
	}

	if _, err := ExtractMultiple(json, map[string]string{}); err == nil {
		t.Errorf("Expected error for empty paths")
	}
	if _, err := ExtractMultiple("", map[string]string{"name": "$.name"}); err == nil {
		t.Errorf("Expected error for empty JSON")
	}
}

func TestToGjsonPath(t *testing.T) {
	tests := []struct {
		jsonPath  string
		gjsonPath string
	}{
		{"$.name", "name"},
		{"$['name']", "name"},
		{`$["name"]`, "name"},
		{"$.user.name", "user.name"},
		{"$.items[0]", "items.0"},
		{"$.items[0].name", "items.0.name"},
		{"$.deeply.nested[0].array[1].value", "deeply.nested.0.array.1.value"},
		{"$.items[*].id", "items.#.id"},
		{"$['a.b']", `a\.b`},
		{"$", "@this"},
		{"$[0]", "0"},
		{"$[0].name", "0.name"},
		{"user.name", "user.name"},
	}

	for _, tt := range tests {
		t.Run(tt.jsonPath, func(t *testing.T) {
			result, err := ToGjsonPath(tt.jsonPath)
			if err != nil {
				t.Fatalf("ToGjsonPath(%q) error = %v", tt.jsonPath, err)
			}
			if result != tt.gjsonPath {
				t.Errorf("ToGjsonPath(%q) = %q, want %q", tt.jsonPath, result, tt.gjsonPath)
			}
		})
	}
}
