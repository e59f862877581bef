package csvfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dverho/innkeep/internal/adapter/repository/csvfile"
)

func TestEncodeLine_QuotesEveryField(t *testing.T) {
	line := csvfile.EncodeLine([]string{"R101", "STANDARD", "75.00", "Standard single bed"})
	assert.Equal(t, `"R101","STANDARD","75.00","Standard single bed"`, line)
}

func TestEncodeLine_DoublesEmbeddedQuotes(t *testing.T) {
	line := csvfile.EncodeLine([]string{`say "hi"`, ""})
	assert.Equal(t, `"say ""hi""",""`, line)
}

func TestRoundTrip(t *testing.T) {
	cases := [][]string{
		{"plain"},
		{"a", "b", "c"},
		{""},
		{"", "", ""},
		{"with,comma", "with\"quote", `"already quoted"`},
		{`comma, quote " and ""double"" quotes`},
		{"trailing space ", " leading space"},
	}

	for _, fields := range cases {
		got, err := csvfile.DecodeLine(csvfile.EncodeLine(fields))
		require.NoError(t, err, "fields %q", fields)
		assert.Equal(t, fields, got)
	}
}

func TestDecodeLine_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty line":                "",
		"unquoted field":            `R101,"STANDARD"`,
		"unterminated quoted field": `"R101","STANDARD`,
		"odd number of quotes":      `"R101","STAND"ARD"`,
		"junk between fields":       `"R101" "STANDARD"`,
		"missing opening quote":     `"R101",STANDARD"`,
	}

	for name, line := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := csvfile.DecodeLine(line)
			var fe *csvfile.FormatError
			assert.ErrorAs(t, err, &fe)
		})
	}
}
