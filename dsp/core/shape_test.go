package core

import (
	"errors"
	"testing"
)

func TestCloneDoesNotAlias(t *testing.T) {
	src := []float64{1, 2, 3}
	out := Clone(src)
	out[0] = 42

	if src[0] != 1 {
		t.Fatalf("src[0] = %v, want 1", src[0])
	}
	if Clone(nil) != nil {
		t.Fatal("Clone(nil) should be nil")
	}
}

func TestCloneRows(t *testing.T) {
	src := [][]float64{{1, 2}, {3, 4}, {5}}
	out := CloneRows(src)
	out[1][0] = 99

	if src[1][0] != 3 {
		t.Fatalf("src[1][0] = %v, want 3", src[1][0])
	}
	if len(out[2]) != 1 || out[2][0] != 5 {
		t.Fatalf("unexpected last row: %#v", out[2])
	}

	// Appending to one row must not clobber the next.
	out[0] = append(out[0], 7)
	if out[1][0] != 99 {
		t.Fatalf("append leaked into next row: %#v", out)
	}
}

func TestRowLength(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]float64
		want    int
		wantErr error
	}{
		{name: "empty", rows: nil, want: 0},
		{name: "uniform", rows: [][]float64{{1, 2, 3}, {4, 5, 6}}, want: 3},
		{name: "ragged", rows: [][]float64{{1, 2}, {3}}, wantErr: ErrRaggedRow},
		{name: "empty row", rows: [][]float64{{}, {}}, wantErr: ErrEmptyRow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RowLength(tt.rows)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("RowLength() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAppendRowsAndConcat(t *testing.T) {
	a := [][]float64{{1}, {2}}
	b := [][]float64{{3}}
	out := AppendRows(a, b)
	if len(out) != 3 || out[2][0] != 3 {
		t.Fatalf("AppendRows = %#v", out)
	}
	out[0][0] = 10
	if a[0][0] != 1 {
		t.Fatal("AppendRows aliased dst")
	}

	v := Concat([]float64{1, 2}, []float64{3})
	if len(v) != 3 || v[2] != 3 {
		t.Fatalf("Concat = %#v", v)
	}
}
