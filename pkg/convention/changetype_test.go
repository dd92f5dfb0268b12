package convention

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeTypes_Order(t *testing.T) {
	assert.Equal(t, []ChangeType{Fix, Improvement, Refactor, Migration, OpenUpgrade}, ChangeTypes())
}

func TestChangeTypes_ReturnsCopy(t *testing.T) {
	types := ChangeTypes()
	types[0] = "XXX"
	assert.Equal(t, Fix, ChangeTypes()[0])
}

func TestChangeType_IsValid(t *testing.T) {
	for _, c := range ChangeTypes() {
		assert.True(t, c.IsValid(), c.String())
	}
	assert.False(t, ChangeType("FEAT").IsValid())
	assert.False(t, ChangeType("fix").IsValid())
	assert.False(t, ChangeType("").IsValid())
}

func TestChangeType_CodesUniqueUpperCase(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range ChangeTypes() {
		code := c.Code()
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
		assert.Regexp(t, `^[A-Z]+$`, code)
	}
}

func TestParseChangeType(t *testing.T) {
	tests := []struct {
		input   string
		want    ChangeType
		wantErr bool
	}{
		{input: "FIX", want: Fix},
		{input: "imp", want: Improvement},
		{input: " REF ", want: Refactor},
		{input: "improvement", want: Improvement},
		{input: "migration", want: Migration},
		{input: "OpenUpgrade", want: OpenUpgrade},
		{input: "ou", want: OpenUpgrade},
		{input: "feat", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseChangeType(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChangeType_Label(t *testing.T) {
	assert.Equal(t, "fix: A bug fix.", Fix.Label())
	assert.Equal(t, "Open Upgrade Scripts", OpenUpgrade.Label())
	assert.Equal(t, "BOGUS", ChangeType("BOGUS").Label())
}
