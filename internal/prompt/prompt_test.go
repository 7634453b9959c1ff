package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eugenenazirov/roman-numerals/internal/numeral"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{
			name:  "converts year",
			input: "1994\n",
			want:  "Enter number: Roman Numeral: MCMXCIV\n",
		},
		{
			name:  "surrounding whitespace",
			input: "  \n\t42  \n",
			want:  "Enter number: Roman Numeral: XLII\n",
		},
		{
			name:  "only first token is used",
			input: "3999 12",
			want:  "Enter number: Roman Numeral: MMMCMXCIX\n",
		},
		{
			name:  "explicit plus sign",
			input: "+9",
			want:  "Enter number: Roman Numeral: IX\n",
		},
		{
			name:    "not a number",
			input:   "abc\n",
			want:    "Enter number: ",
			wantErr: ErrInvalidInput,
		},
		{
			name:    "decimal",
			input:   "3.5\n",
			want:    "Enter number: ",
			wantErr: ErrInvalidInput,
		},
		{
			name:    "empty input",
			input:   "",
			want:    "Enter number: ",
			wantErr: ErrInvalidInput,
		},
		{
			name:    "oversized number",
			input:   strings.Repeat("9", 70000),
			want:    "Enter number: ",
			wantErr: ErrInvalidInput,
		},
		{
			name:    "oversized text",
			input:   strings.Repeat("x", 70000),
			want:    "Enter number: ",
			wantErr: ErrInvalidInput,
		},
		{
			name:    "zero",
			input:   "0\n",
			want:    "Enter number: ",
			wantErr: numeral.ErrOutOfRange,
		},
		{
			name:    "negative",
			input:   "-5\n",
			want:    "Enter number: ",
			wantErr: numeral.ErrOutOfRange,
		},
		{
			name:    "above range",
			input:   "4000\n",
			want:    "Enter number: ",
			wantErr: numeral.ErrOutOfRange,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			err := Run(strings.NewReader(tc.input), &out, numeral.New())

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.want, out.String())
		})
	}
}

func TestRun_WriteFailure(t *testing.T) {
	t.Parallel()

	err := Run(strings.NewReader("1"), failingWriter{}, numeral.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write prompt")
}

func TestReadInt_ErrorNamesToken(t *testing.T) {
	t.Parallel()

	_, err := ReadInt(strings.NewReader("twelve"))
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), `"twelve"`)
}
