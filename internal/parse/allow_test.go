package parse

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFormats(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{"allow.json", `["$num$センチ", "ハマり"]`, []string{"$num$センチ", "ハマり"}},
		{"allow.json", `{"allow": ["ハマり"]}`, []string{"ハマり"}},
		{"dict.json", `{"words": ["ハマり"]}`, []string{"ハマり"}},
		{"allow.yaml", "allow:\n  - $num$センチ\n  - ハマり\n", []string{"$num$センチ", "ハマり"}},
		{"allow.yml", "- ハマり\n", []string{"ハマり"}},
		{"allow.toml", "allow = [\"ハマり\", \"二クロム酸\"]\n", []string{"ハマり", "二クロム酸"}},
		{"allow.txt", "# units\n$num$センチ\n\n  ハマり  \n", []string{"$num$センチ", "ハマり"}},
		{"allow.json", `{"allow": []}`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.data, func(t *testing.T) {
			got, err := Decode([]byte(tt.data), tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeRejectsNonStrings(t *testing.T) {
	cases := map[string]string{
		"allow.json": `["ok", 3]`,
		"allow.yaml": "allow:\n  - ok\n  - {a: b}\n",
		"allow.toml": "allow = [1, 2]\n",
	}
	for name, data := range cases {
		_, err := Decode([]byte(data), name)
		assert.ErrorIs(t, err, ErrInvalidAllow, name)
	}

	_, err := Decode([]byte(`{"other": []}`), "allow.json")
	assert.ErrorIs(t, err, ErrInvalidAllow)

	_, err = Decode([]byte(`{`), "allow.json")
	assert.Error(t, err)
}

func TestJSON(t *testing.T) {
	got, err := JSON(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = JSON(json.RawMessage(`null`))
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = JSON(json.RawMessage(`[]`))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err = JSON(json.RawMessage(`"recommend"`))
	assert.ErrorIs(t, err, ErrInvalidAllow)

	_, err = JSON(json.RawMessage(`["recommend", true]`))
	assert.ErrorIs(t, err, ErrInvalidAllow)
}
