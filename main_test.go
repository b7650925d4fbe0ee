/* main_test.go
 * Contains unit tests for the helpers in utils.go
 */

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// region convertStrToBool tests

func TestConvertStrToBool(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"true", true},
		{"false", false},
		{"TRUE", true},
		{"FALSE", false},
		{"TrUe", true},
		{"  true  ", true},
		{"\tfalse\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := convertStrToBool(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertStrToBool_Invalid(t *testing.T) {
	for _, input := range []string{"yes", "", "1", "   ", "truee"} {
		_, err := convertStrToBool(input)
		assert.Error(t, err, "input %q", input)
	}

	_, err := convertStrToBool("on")
	assert.EqualError(t, err, `invalid boolean string "on"`)
}

// endregion

// region documentSource tests

func TestDocumentSource(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		dir  string
		doc  string
	}{
		{"bare name", "sweet_sixteen", "", "sweet_sixteen"},
		{"file in directory", "data/sweet_sixteen.xml", "data", "sweet_sixteen"},
		{"file in working directory", "results.xml", ".", "results"},
		{"directory without extension", "data/final", "data", "final"},
		{"surrounding whitespace", "  final  ", "", "final"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, doc := documentSource(tt.arg)
			assert.Equal(t, tt.dir, dir)
			assert.Equal(t, tt.doc, doc)
		})
	}
}

// endregion
