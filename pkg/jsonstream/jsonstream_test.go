package jsonstream_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worldable/worlddb/pkg/jsonstream"
)

func collect(t *testing.T, input string) []string {
	t.Helper()
	var res []string
	err := jsonstream.EachObject(
		strings.NewReader(input),
		func(obj []byte) error {
			res = append(res, string(obj))
			return nil
		})
	require.NoError(t, err)
	return res
}

func TestEachObject(t *testing.T) {
	tests := []struct {
		msg   string
		input string
		want  []string
	}{
		{
			msg:   "empty array",
			input: `[]`,
			want:  nil,
		},
		{
			msg:   "single flat object",
			input: `[{"name":"Lagos"}]`,
			want:  []string{`{"name":"Lagos"}`},
		},
		{
			msg:   "multiple objects with whitespace",
			input: "[\n  {\"name\":\"Lagos\"},\n\t{\"name\":\"Abuja\"} ,{\"name\":\"Kano\"}\n]",
			want: []string{
				`{"name":"Lagos"}`,
				`{"name":"Abuja"}`,
				`{"name":"Kano"}`,
			},
		},
		{
			msg:   "nested objects stay attached to their record",
			input: `[{"name":"NG","translations":{"fr":"Nigéria","de":"Nigeria"}}]`,
			want: []string{
				`{"name":"NG","translations":{"fr":"Nigéria","de":"Nigeria"}}`,
			},
		},
		{
			msg:   "nested arrays inside records survive",
			input: `[{"name":"NG","timezones":[{"zone":"Africa/Lagos"}]},{"name":"GH"}]`,
			want: []string{
				`{"name":"NG","timezones":[{"zone":"Africa/Lagos"}]}`,
				`{"name":"GH"}`,
			},
		},
		{
			msg:   "braces inside string values do not corrupt depth",
			input: `[{"name":"{weird} place"},{"name":"also } odd {"}]`,
			want: []string{
				`{"name":"{weird} place"}`,
				`{"name":"also } odd {"}`,
			},
		},
		{
			msg:   "escaped quotes inside strings",
			input: `[{"name":"He said \"hi\" {once}"}]`,
			want:  []string{`{"name":"He said \"hi\" {once}"}`},
		},
		{
			msg:   "leading noise before the array is skipped",
			input: "  \n[{\"name\":\"X\"}]",
			want:  []string{`{"name":"X"}`},
		},
		{
			msg:   "bytes after the closing bracket are ignored",
			input: `[{"name":"X"}] trailing garbage {"name":"Y"}`,
			want:  []string{`{"name":"X"}`},
		},
	}

	for _, v := range tests {
		got := collect(t, v.input)
		assert.Equal(t, v.want, got, v.msg)

		// Every emitted slice must be independently decodable.
		for _, raw := range got {
			var m map[string]any
			assert.NoError(t, json.Unmarshal([]byte(raw), &m), v.msg)
		}
	}
}

func TestEachObjectOrderAndCount(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < 1000; i++ {
		if i > 0 {
			sb.WriteString(" , ")
		}
		sb.WriteString(`{"id":`)
		sb.WriteString(string(rune('0' + i%10)))
		sb.WriteString(`,"name":"rec"}`)
	}
	sb.WriteString("]")

	count := 0
	err := jsonstream.EachObject(
		strings.NewReader(sb.String()),
		func(obj []byte) error {
			count++
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, 1000, count)
}

func TestEachObjectCallbackError(t *testing.T) {
	boom := errors.New("boom")
	err := jsonstream.EachObject(
		strings.NewReader(`[{"name":"a"},{"name":"b"}]`),
		func(obj []byte) error { return boom },
	)
	assert.ErrorIs(t, err, boom)
}

func TestEachObjectStop(t *testing.T) {
	seen := 0
	err := jsonstream.EachObject(
		strings.NewReader(`[{"name":"a"},{"name":"b"},{"name":"c"}]`),
		func(obj []byte) error {
			seen++
			if seen == 2 {
				return jsonstream.ErrStop
			}
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, 2, seen)
}

func TestEachObjectBufferReuse(t *testing.T) {
	// The callback slice is reused between records; a copy taken during
	// the call must still be stable afterwards.
	var copies [][]byte
	err := jsonstream.EachObject(
		strings.NewReader(`[{"name":"first"},{"name":"second-longer"}]`),
		func(obj []byte) error {
			c := make([]byte, len(obj))
			copy(c, obj)
			copies = append(copies, c)
			return nil
		})
	require.NoError(t, err)
	require.Len(t, copies, 2)
	assert.Equal(t, `{"name":"first"}`, string(copies[0]))
	assert.Equal(t, `{"name":"second-longer"}`, string(copies[1]))
}
