package xsd_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midbel/fpmlchat/xsd"
)

func TestWriteFileGolden(t *testing.T) {
	const base = "testdata/confirmation"

	list, err := xsd.Flatten(filepath.Join(base, "fpml-main.xsd"), base)
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "output", "json", "fpml-schema.json")
	require.NoError(t, xsd.WriteFile(file, list))

	got, err := os.ReadFile(file)
	require.NoError(t, err)
	want, err := os.ReadFile("testdata/fpml-schema.json")
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestWriteFileIdempotent(t *testing.T) {
	const base = "testdata/confirmation"

	dir := t.TempDir()
	var outputs [][]byte
	for i := 0; i < 2; i++ {
		list, err := xsd.Flatten(filepath.Join(base, "fpml-main.xsd"), base)
		require.NoError(t, err)

		file := filepath.Join(dir, "fpml-schema.json")
		require.NoError(t, xsd.WriteFile(file, list))

		data, err := os.ReadFile(file)
		require.NoError(t, err)
		outputs = append(outputs, data)
	}
	assert.Equal(t, outputs[0], outputs[1])

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestEncodeEscape(t *testing.T) {
	list := []xsd.Element{
		{
			Name:          "note",
			Type:          "xs:string",
			Documentation: "say \"hi\"\n\tC:\\fpml\x01",
		},
	}
	var buf bytes.Buffer
	require.NoError(t, xsd.Encode(&buf, list))

	out := buf.String()
	assert.Contains(t, out, `"documentation": "say \"hi\"\n\tC:\\fpml\u0001"`)
	assert.Contains(t, out, `"children": []`)
	assert.True(t, strings.HasSuffix(out, "]\n"))

	back, err := xsd.Decode(&buf)
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.Equal(t, list[0].Documentation, back[0].Documentation)
}

func TestEncodeMarkup(t *testing.T) {
	list := []xsd.Element{
		{
			Name:          "note",
			Type:          "xs:string",
			Mandatory:     true,
			Documentation: "a < b && c > d",
			Children: []xsd.Element{
				{
					Name:          "item",
					Type:          "Item",
					Documentation: "<i>item</i>",
					Children:      []xsd.Element{},
				},
			},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, xsd.Encode(&buf, list))
	assert.Contains(t, buf.String(), `"documentation": "a < b && c > d"`)

	var std bytes.Buffer
	enc := json.NewEncoder(&std)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	require.NoError(t, enc.Encode(list))
	assert.Equal(t, std.String(), buf.String())
}

func TestEncodeEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, xsd.Encode(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestCompactWriter(t *testing.T) {
	list := []xsd.Element{
		{
			Name:          "party",
			Type:          "Party",
			Mandatory:     true,
			Documentation: "-",
			Attributes:    xsd.Attributes{{Name: "id", Type: "xs:ID"}},
		},
	}
	var buf bytes.Buffer
	ws := xsd.NewWriter(&buf)
	ws.Compact = true
	require.NoError(t, ws.Write(list))

	want := `[{"name":"party","type":"Party","mandatory":true,"documentation":"-","attributes":{"id":"xs:ID"},"children":[]}]`
	assert.Equal(t, want, buf.String())
}

func TestReadFile(t *testing.T) {
	list, err := xsd.ReadFile("testdata/fpml-schema.json")
	require.NoError(t, err)
	require.Len(t, list, 5)

	trade := list[0]
	assert.Equal(t, "trade", trade.Name)
	want := xsd.Attributes{
		{Name: "id", Type: "xsd:ID"},
		{Name: "href", Type: "string"},
	}
	assert.Equal(t, want, trade.Attributes)
	assert.Equal(t, "unbounded", trade.Children[0].Children[0].MaxOccurs)

	tradeId := trade.Children[1]
	assert.Equal(t, "tradeId", tradeId.Name)
	assert.False(t, tradeId.Mandatory)
	assert.NotNil(t, tradeId.Children)

	var buf bytes.Buffer
	require.NoError(t, xsd.Encode(&buf, list))
	golden, err := os.ReadFile("testdata/fpml-schema.json")
	require.NoError(t, err)
	assert.Equal(t, string(golden), buf.String())
}

func TestReadFileMissing(t *testing.T) {
	_, err := xsd.ReadFile(filepath.Join(t.TempDir(), "none.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
