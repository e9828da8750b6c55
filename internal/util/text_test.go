package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotedField(t *testing.T) {
	line := `<a href="https://wiki.test/w/Bronze_axe?action=raw" title="Bronze axe">Bronze axe</a>`
	url, ok := QuotedField(line, 1)
	require.True(t, ok)
	assert.Equal(t, "https://wiki.test/w/Bronze_axe?action=raw", url)

	name, ok := QuotedField(line, 3)
	require.True(t, ok)
	assert.Equal(t, "Bronze axe", name)

	_, ok = QuotedField(`no quotes here`, 1)
	assert.False(t, ok)
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "", "b", ""}, SplitLines("a\r\n\nb\n"))
}

func TestParseInt(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "plain", input: "3222", want: 3222},
		{name: "negative", input: "-2", want: -2},
		{name: "spaces", input: " 5", wantErr: true},
		{name: "overflow", input: "99999999999999999999999", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseInt(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHasBrace(t *testing.T) {
	assert.True(t, HasBrace("{{ItemSpawnLine|1,2}}"))
	assert.True(t, HasBrace("|1,2}}"))
	assert.False(t, HasBrace("|1,2|"))
}

func TestSplitTokens(t *testing.T) {
	assert.Equal(t, []string{"5569", "5570", "5571"}, SplitTokens("5569,5570,5571"))
	assert.Equal(t, []string{"Bronze axe"}, SplitTokens("Bronze axe"))
}
