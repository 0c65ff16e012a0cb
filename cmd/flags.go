package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/achilleasa/whitted/types"
)

// Parse a comma-separated list of n numbers.
func parseFloatList(value string, n int) ([]float32, error) {
	tokens := strings.Split(value, ",")
	if len(tokens) != n {
		return nil, fmt.Errorf("expected %d comma-separated values; got %q", n, value)
	}

	out := make([]float32, n)
	for index, token := range tokens {
		v, err := strconv.ParseFloat(strings.TrimSpace(token), 32)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q in %q", token, value)
		}
		out[index] = float32(v)
	}
	return out, nil
}

// Parse a color in "r,g,b" format.
func parseColor(value string) (types.Color, error) {
	v, err := parseFloatList(value, 3)
	if err != nil {
		return types.Black, err
	}
	return types.RGB(v[0], v[1], v[2]), nil
}

// Parse a probe location in "row,col" format.
func parseProbe(value string) (row, col uint32, err error) {
	tokens := strings.Split(value, ",")
	if len(tokens) != 2 {
		return 0, 0, fmt.Errorf("expected probe location in row,col format; got %q", value)
	}

	var coords [2]uint64
	for index, token := range tokens {
		if coords[index], err = strconv.ParseUint(strings.TrimSpace(token), 10, 32); err != nil {
			return 0, 0, fmt.Errorf("invalid probe coordinate %q", token)
		}
	}
	return uint32(coords[0]), uint32(coords[1]), nil
}
