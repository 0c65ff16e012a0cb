package cmd

import (
	"testing"

	"github.com/achilleasa/whitted/types"
)

func TestParseColor(t *testing.T) {
	type spec struct {
		in     string
		exp    types.Color
		expErr bool
	}
	specs := []spec{
		{"0.1,0.2,0.3", types.RGB(0.1, 0.2, 0.3), false},
		{" 1, 0 ,0.5", types.RGB(1, 0, 0.5), false},
		{"1,2", types.Black, true},
		{"1,2,x", types.Black, true},
		{"", types.Black, true},
	}

	for index, s := range specs {
		got, err := parseColor(s.in)
		if s.expErr != (err != nil) {
			t.Fatalf("[spec %d] expected error to be %t; got %v", index, s.expErr, err)
		}
		if got != s.exp {
			t.Fatalf("[spec %d] expected color %v; got %v", index, s.exp, got)
		}
	}
}

func TestParseProbe(t *testing.T) {
	type spec struct {
		in       string
		row, col uint32
		expErr   bool
	}
	specs := []spec{
		{"10,20", 10, 20, false},
		{"0, 7", 0, 7, false},
		{"-1,2", 0, 0, true},
		{"1", 0, 0, true},
		{"1,2,3", 0, 0, true},
	}

	for index, s := range specs {
		row, col, err := parseProbe(s.in)
		if s.expErr != (err != nil) {
			t.Fatalf("[spec %d] expected error to be %t; got %v", index, s.expErr, err)
		}
		if row != s.row || col != s.col {
			t.Fatalf("[spec %d] expected (%d, %d); got (%d, %d)", index, s.row, s.col, row, col)
		}
	}
}
