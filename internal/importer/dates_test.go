package importer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexDate_StringForms(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string // YYYY-MM-DD, or "" for nil
	}{
		{"iso with time and zone", `"2025-03-15T09:30:00Z"`, "2025-03-15"},
		{"iso with time no zone", `"2025-03-15T09:30:00"`, "2025-03-15"},
		{"date only", `"2025-03-15"`, "2025-03-15"},
		{"slash separated", `"2025/03/15"`, "2025-03-15"},
		{"null", `null`, ""},
		{"empty string", `""`, ""},
		{"garbage", `"not a date"`, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var d FlexDate
			require.NoError(t, json.Unmarshal([]byte(tc.input), &d))
			if tc.want == "" {
				assert.Nil(t, d.Time())
				return
			}
			require.NotNil(t, d.Time())
			assert.Equal(t, tc.want, d.Time().Format("2006-01-02"))
		})
	}
}

func TestFlexDate_NumericEpoch(t *testing.T) {
	var seconds FlexDate
	require.NoError(t, json.Unmarshal([]byte("1742000400"), &seconds))
	require.NotNil(t, seconds.Time())
	assert.Equal(t, 2025, seconds.Time().Year())

	var millis FlexDate
	require.NoError(t, json.Unmarshal([]byte("1742000400000"), &millis))
	require.NotNil(t, millis.Time())
	assert.Equal(t, seconds.Time().Unix(), millis.Time().Unix())
}

func TestParseDate_UnparsableReturnsNil(t *testing.T) {
	assert.Nil(t, ParseDate(""))
	assert.Nil(t, ParseDate("   "))
	assert.Nil(t, ParseDate("yesterday"))
}
