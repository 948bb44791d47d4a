package csvparser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/order-line-cleaner/internal/config"
	"github.com/ginjaninja78/order-line-cleaner/internal/testutil"
	"github.com/ginjaninja78/order-line-cleaner/internal/types"
)

func defaultSettings() config.InputSettings {
	return config.Default().Input
}

func writeFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestParse_RoundTrip(t *testing.T) {
	rec := testutil.ValidRecord()
	path := testutil.WriteCSV(t, t.TempDir(), "orders.csv", types.OrderLineFields, []types.Record{rec, rec})

	ds, err := Parse(path, defaultSettings())
	require.NoError(t, err)

	assert.Equal(t, path, ds.Source)
	assert.Equal(t, types.OrderLineFields, ds.Header)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, rec, ds.Records[0])
	assert.Equal(t, []int{2, 3}, ds.RowNumbers)
}

func TestParseReader_EmptyCellsAreNull(t *testing.T) {
	input := "a,b,c\n1,,3\n,,\n"

	ds, err := ParseReader(strings.NewReader(input), defaultSettings())
	require.NoError(t, err)

	require.Equal(t, 2, ds.Len())
	assert.Equal(t, types.Record{"a": "1", "c": "3"}, ds.Records[0])
	assert.Equal(t, types.Record{}, ds.Records[1])
}

func TestParseReader_BlankLinesSkipped(t *testing.T) {
	input := "a,b\n1,2\n\n3,4\n"

	ds, err := ParseReader(strings.NewReader(input), defaultSettings())
	require.NoError(t, err)

	require.Equal(t, 2, ds.Len())
	assert.Equal(t, []int{2, 4}, ds.RowNumbers)
}

func TestParseReader_ShortRowPadded(t *testing.T) {
	ds, err := ParseReader(strings.NewReader("a,b,c\n1\n"), defaultSettings())
	require.NoError(t, err)

	assert.Equal(t, types.Record{"a": "1"}, ds.Records[0])
}

func TestParseReader_WideRowRejected(t *testing.T) {
	_, err := ParseReader(strings.NewReader("a,b\n1,2,3\n"), defaultSettings())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseReader_ValuesNotTrimmed(t *testing.T) {
	ds, err := ParseReader(strings.NewReader("a,b\n  x , y\n"), defaultSettings())
	require.NoError(t, err)

	assert.Equal(t, "  x ", ds.Records[0]["a"])
	assert.Equal(t, " y", ds.Records[0]["b"])
}

func TestParseReader_QuotedFields(t *testing.T) {
	input := "a,b\n\"hello, world\",\"line1\nline2\"\n"

	ds, err := ParseReader(strings.NewReader(input), defaultSettings())
	require.NoError(t, err)

	assert.Equal(t, "hello, world", ds.Records[0]["a"])
	assert.Equal(t, "line1\nline2", ds.Records[0]["b"])
}

func TestParseReader_Delimiter(t *testing.T) {
	settings := defaultSettings()
	settings.Delimiter = "semicolon"

	ds, err := ParseReader(strings.NewReader("a;b\n1;2\n"), settings)
	require.NoError(t, err)

	assert.Equal(t, types.Record{"a": "1", "b": "2"}, ds.Records[0])
}

func TestParseReader_StripsBOM(t *testing.T) {
	input := "\xEF\xBB\xBForder_id,sku\nx,y\n"

	ds, err := ParseReader(strings.NewReader(input), defaultSettings())
	require.NoError(t, err)

	assert.Equal(t, []string{"order_id", "sku"}, ds.Header)
}

func TestParseReader_Latin1(t *testing.T) {
	settings := defaultSettings()
	settings.Encoding = "iso-8859-1"

	// "Camión" with ó as the single byte 0xF3.
	input := "title\nCami\xF3n\n"

	ds, err := ParseReader(strings.NewReader(input), settings)
	require.NoError(t, err)

	assert.Equal(t, "Camión", ds.Records[0]["title"])
}

func TestParseReader_EncodingAliases(t *testing.T) {
	// "Camión" with ó as the single byte 0xF3 in both single-byte charsets.
	for _, enc := range []string{"latin1", "cp1252"} {
		t.Run(enc, func(t *testing.T) {
			settings := defaultSettings()
			settings.Encoding = enc

			ds, err := ParseReader(strings.NewReader("title\nCami\xF3n\n"), settings)
			require.NoError(t, err)
			assert.Equal(t, "Camión", ds.Records[0]["title"])
		})
	}
}

func TestParseReader_UnsupportedEncoding(t *testing.T) {
	settings := defaultSettings()
	settings.Encoding = "ebcdic"

	_, err := ParseReader(strings.NewReader("a\n1\n"), settings)
	assert.Error(t, err)
}

func TestParseReader_HeaderProblems(t *testing.T) {
	_, err := ParseReader(strings.NewReader(""), defaultSettings())
	assert.EqualError(t, err, "CSV file is empty")

	_, err = ParseReader(strings.NewReader("a,b,a\n1,2,3\n"), defaultSettings())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column "a"`)

	ds, err := ParseReader(strings.NewReader(" a ,\n1,2\n"), defaultSettings())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "Column_2"}, ds.Header)
}

func TestParse_MissingColumns(t *testing.T) {
	path := writeFile(t, []byte("order_id,sku\nx,y\n"))

	_, err := Parse(path, defaultSettings())
	require.Error(t, err)

	var schemaErr *types.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Contains(t, schemaErr.Missing, types.FieldPurchasedAt)
	assert.NotContains(t, schemaErr.Missing, types.FieldSKU)
}

func TestParse_MissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.csv"), defaultSettings())
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
