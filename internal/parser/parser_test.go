package parser

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt(t *testing.T) {
	tests := []struct {
		in   any
		want int
	}{
		{nil, 0},
		{true, 1},
		{false, 0},
		{float64(3), 3},
		{float64(3.9), 3},
		{float64(-2.5), -2},
		{json.Number("9007199254740993"), 9007199254740993},
		{json.Number("2.7"), 2},
		{json.Number("1e400"), 0},
		{"104", 104},
		{" 7 ", 7},
		{"12abc", 12},
		{"abc", 0},
		{"1e2", 100},
		{"-5", -5},
		{"", 0},
		{[]any{1}, 0},
		{map[string]any{}, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Int(tt.in), "Int(%#v)", tt.in)
	}
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "Shopping", SanitizeName(`  "Shopping"  `))
	assert.Equal(t, "scriptalert(1)/script", SanitizeName(`<script>alert(1)</script>`))
	assert.Equal(t, "Tom  Jerry", SanitizeName("Tom & Jerry"))
	assert.Equal(t, "its", SanitizeName("it's"))
	assert.Equal(t, "", SanitizeName("   "))
}

func TestParseBodyFields(t *testing.T) {
	body, err := ParseBody(strings.NewReader(`{"action":"sort","sort":"102","hide":true,"name":"x"}`))
	require.NoError(t, err)

	assert.Equal(t, "sort", body.String("action"))
	assert.Equal(t, 102, body.Int("sort"))
	assert.Equal(t, 1, body.Int("hide"))
	assert.Equal(t, 0, body.Int("publish"))
	assert.Equal(t, "", body.String("missing"))

	body, err = ParseBodyBytes([]byte(`{"name":9007199254740993,"ratio":1.50}`))
	require.NoError(t, err)
	assert.Equal(t, "9007199254740993", body.String("name"))
	assert.Equal(t, "1.5", body.String("ratio"))
	assert.True(t, body.Has("name"))
	assert.False(t, body.Has("publish"))
}

func TestParseBodyEmptyAndNonObject(t *testing.T) {
	body, err := ParseBodyBytes(nil)
	require.NoError(t, err)
	assert.Equal(t, "", body.String("action"))

	body, err = ParseBodyBytes([]byte(`[1,2,3]`))
	require.NoError(t, err)
	assert.Nil(t, body.Order("order"))
}

func TestParseBodyInvalidJSON(t *testing.T) {
	_, err := ParseBodyBytes([]byte(`{"action":`))
	require.Error(t, err)
}

func TestOrder(t *testing.T) {
	tests := []struct {
		name string
		body string
		want map[int]int64
	}{
		{"array", `{"order":[5,3]}`, map[int]int64{0: 5, 1: 3}},
		{"object", `{"order":{"0":5,"1":"3"}}`, map[int]int64{0: 5, 1: 3}},
		{"ids beyond float precision", `{"order":[9007199254740993,2]}`, map[int]int64{0: 9007199254740993, 1: 2}},
		{"string", `{"order":"5,3"}`, nil},
		{"number", `{"order":5}`, nil},
		{"null", `{"order":null}`, nil},
		{"missing", `{}`, nil},
		{"non-integer key", `{"order":{"a":5}}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := ParseBodyBytes([]byte(tt.body))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, body.Order("order")); diff != "" {
				t.Errorf("Order() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseTitle(t *testing.T) {
	got := ParseTitle("Buy milk #home,food #urgent +high")

	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, []string{"home", "food", "urgent"}, got.Tags)
	assert.Equal(t, 3, got.Priority)
	assert.Empty(t, got.Errors)
}

func TestParseTitleInvalidPriority(t *testing.T) {
	got := ParseTitle("Call Bob +someday")

	assert.Equal(t, "Call Bob", got.Title)
	assert.Equal(t, 0, got.Priority)
	require.Len(t, got.Errors, 1)
	assert.Contains(t, got.Errors[0], "someday")
}

func TestParseTitleKeepsInnerPlus(t *testing.T) {
	got := ParseTitle("Learn C++ basics")

	assert.Equal(t, "Learn C++ basics", got.Title)
	assert.Equal(t, 0, got.Priority)
}
