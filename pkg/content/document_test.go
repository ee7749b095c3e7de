package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testSnippet = &CodeSnippet{Lines: []CodeLine{
		{Segments: []CodeSegment{
			{Text: "const", Kind: HighlightKeyword},
			{Text: " x = ", Kind: HighlightPlain},
			{Text: "1", Kind: HighlightValue},
		}},
		{Segments: []CodeSegment{}},
		{Segments: []CodeSegment{
			{Text: "// ship it", Kind: HighlightComment},
			{Text: "deploy()", Kind: HighlightFunction},
		}},
	}}
	testCard = &ImageCard{Emoji: "🔥", Title: "Prod on fire", Variant: "orange"}
)

func TestRoundTrip(t *testing.T) {
	for _, v := range []Variant{testSnippet, testCard} {
		t.Run(string(v.Type()), func(t *testing.T) {
			got, err := Decode(Encode(v), v.Type())
			require.NoError(t, err)
			assert.Equal(t, v, got)

			raw, err := Marshal(v)
			require.NoError(t, err)
			got, err = Unmarshal(raw, v.Type())
			require.NoError(t, err)
			assert.Equal(t, v, got)
		})
	}
}

func TestEncode(t *testing.T) {
	t.Run("should keep fixed keys and order", func(t *testing.T) {
		raw, err := Marshal(&CodeSnippet{Lines: []CodeLine{{Segments: []CodeSegment{
			{Text: "b", Kind: HighlightPlain},
			{Text: "a", Kind: HighlightKeyword},
		}}}})
		require.NoError(t, err)
		assert.JSONEq(t,
			`{"lines":[{"segments":[{"text":"b","type":"plain"},{"text":"a","type":"keyword"}]}]}`,
			string(raw))
	})

	t.Run("should encode image card", func(t *testing.T) {
		raw, err := Marshal(testCard)
		require.NoError(t, err)
		assert.JSONEq(t, `{"emoji":"🔥","title":"Prod on fire","variant":"orange"}`, string(raw))
	})

	t.Run("should encode nil slices as empty arrays", func(t *testing.T) {
		raw, err := Marshal(&CodeSnippet{})
		require.NoError(t, err)
		assert.JSONEq(t, `{"lines":[]}`, string(raw))
	})

	t.Run("should encode nil variant to nil", func(t *testing.T) {
		assert.Nil(t, Encode(nil))
		assert.Nil(t, Encode((*ImageCard)(nil)))
		raw, err := Marshal(nil)
		assert.NoError(t, err)
		assert.Nil(t, raw)
	})
}

func TestDecodeAbsent(t *testing.T) {
	for _, raw := range []string{"", "null", "  "} {
		v, err := Unmarshal([]byte(raw), TypeCode)
		assert.NoError(t, err)
		assert.Nil(t, v)
	}

	v, err := Decode(nil, TypeImage)
	assert.NoError(t, err)
	assert.Nil(t, v)
}

func TestDecodeMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		typ  Type
		path string
	}{
		{"missing lines", `{"emoji":"x","title":"y","variant":"z"}`, TypeCode, "lines"},
		{"lines not array", `{"lines":{}}`, TypeCode, "lines"},
		{"line not object", `{"lines":[1]}`, TypeCode, "lines[0]"},
		{"segments not array", `{"lines":[{"segments":"x"}]}`, TypeCode, "lines[0].segments"},
		{"segment text missing", `{"lines":[{"segments":[{"type":"plain"}]}]}`, TypeCode, "lines[0].segments[0].text"},
		{"segment text wrong type", `{"lines":[{"segments":[{"text":5,"type":"plain"}]}]}`, TypeCode, "lines[0].segments[0].text"},
		{"unknown highlight", `{"lines":[{"segments":[{"text":"x","type":"bold"}]}]}`, TypeCode, "lines[0].segments[0].type"},
		{"image missing title", `{"emoji":"x","variant":"z"}`, TypeImage, "title"},
		{"image from snippet", `{"lines":[]}`, TypeImage, "emoji"},
		{"not an object", `[1,2]`, TypeImage, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tc.raw), tc.typ)
			require.Error(t, err)
			assert.True(t, IsMalformed(err))
			mErr := err.(*MalformedContentError)
			assert.Equal(t, tc.typ, mErr.Type)
			assert.Equal(t, tc.path, mErr.Path)
		})
	}

	t.Run("should reject invalid JSON", func(t *testing.T) {
		_, err := Unmarshal([]byte(`{"lines":`), TypeCode)
		assert.True(t, IsMalformed(err))
	})

	t.Run("should reject unknown content type", func(t *testing.T) {
		_, err := Decode(Document{"lines": []interface{}{}}, Type("video"))
		assert.True(t, IsMalformed(err))
	})
}

func TestParse(t *testing.T) {
	typ, err := ParseType("image")
	assert.NoError(t, err)
	assert.Equal(t, TypeImage, typ)

	_, err = ParseType("video")
	assert.Error(t, err)

	var h Highlight
	assert.NoError(t, h.UnmarshalText([]byte("comment")))
	assert.Equal(t, HighlightComment, h)
	assert.Error(t, h.UnmarshalText([]byte("italic")))
}
