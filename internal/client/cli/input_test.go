package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/dmitrijs2005/petcheck/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.Error(t, err)
}

func TestGetSpecies(t *testing.T) {
	tests := []struct {
		input   string
		want    models.Species
		wantErr bool
	}{
		{input: "cat\n", want: models.SpeciesCat},
		{input: "Chien\n", want: models.SpeciesDog},
		{input: "3\n", want: models.SpeciesRabbit},
		{input: "4\n", want: models.SpeciesOther},
		{input: "0\n", wantErr: true},
		{input: "9\n", wantErr: true},
		{input: "dragon\n", wantErr: true},
		{input: "\n", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(strings.TrimSpace(tc.input), func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetSpecies(rdr(tc.input), &out)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Contains(t, out.String(), "1) 🐕 dog")
		})
	}
}
