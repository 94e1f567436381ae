package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "whole rupees", input: "200", want: 20000},
		{name: "two decimal places", input: "200.00", want: 20000},
		{name: "paise precision", input: "0.01", want: 1},
		{name: "large amount", input: "1234567.89", want: 123456789},
		{name: "zero", input: "0", wantErr: true},
		{name: "zero with decimals", input: "0.00", wantErr: true},
		{name: "negative", input: "-5.00", wantErr: true},
		{name: "sub-paise precision", input: "1.005", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "scientific float artifact", input: "0.1000000000000000055511", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAmount(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "300.00", FormatAmount(30000))
	assert.Equal(t, "0.01", FormatAmount(1))
	assert.Equal(t, "0.00", FormatAmount(0))
	assert.Equal(t, "1234567.89", FormatAmount(123456789))
}

func TestParseFormatRoundTrip(t *testing.T) {
	minor, err := ParseAmount("500.00")
	require.NoError(t, err)
	assert.Equal(t, "500.00", FormatAmount(minor))
}
