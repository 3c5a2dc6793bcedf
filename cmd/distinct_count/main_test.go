package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		text      string
		timestamp int64
		value     string
	}{
		{"10 alice", 10, "alice"},
		{"-3 bob", -3, "bob"},
		{"  7   carol  ", 7, "carol"},
		{"1 two words", 1, "two words"},
	}
	for _, tt := range tests {
		timestamp, value, err := parseLine(tt.text)
		require.NoError(t, err, tt.text)
		require.Equal(t, tt.timestamp, timestamp, tt.text)
		require.Equal(t, tt.value, value, tt.text)
	}
}

func TestParseLine_Invalid(t *testing.T) {
	for _, text := range []string{"42", "42   ", "", "x value", "1.5 value"} {
		_, _, err := parseLine(text)
		require.Error(t, err, "%q", text)
	}
}
