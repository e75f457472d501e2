package validation_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/jrazmi/todolist/sdk/validation"
)

func TestParseLaxBool(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
		err  bool
	}{
		{raw: `true`, want: true},
		{raw: `false`, want: false},
		{raw: `1`, want: true},
		{raw: `0`, want: false},
		{raw: `1.0`, want: true},
		{raw: `"true"`, want: true},
		{raw: `"YES"`, want: true},
		{raw: `"on"`, want: true},
		{raw: `"t"`, want: true},
		{raw: `"0"`, want: false},
		{raw: `"Off"`, want: false},
		{raw: `"no"`, want: false},
		{raw: `2`, err: true},
		{raw: `"maybe"`, err: true},
		{raw: `""`, err: true},
		{raw: `[]`, err: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := validation.ParseLaxBool(json.RawMessage(tt.raw))
			if tt.err {
				if !errors.Is(err, validation.ErrNotBool) {
					t.Fatalf("err = %v, want ErrNotBool", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLaxBool: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeBools(t *testing.T) {
	out, err := validation.NormalizeBools([]byte(`{"title":"a","done":"yes"}`), "done")
	if err != nil {
		t.Fatalf("NormalizeBools: %v", err)
	}

	var doc struct {
		Title string `json:"title"`
		Done  bool   `json:"done"`
	}
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("unmarshal %s: %v", out, err)
	}
	if doc.Title != "a" || !doc.Done {
		t.Errorf("got %+v", doc)
	}

	in := []byte(`{"done":null}`)
	if out, err := validation.NormalizeBools(in, "done"); err != nil || string(out) != string(in) {
		t.Errorf("null rewritten: %s, %v", out, err)
	}

	_, err = validation.NormalizeBools([]byte(`{"done":"maybe"}`), "done")
	var fe validation.FieldErrors
	if !errors.As(err, &fe) || fe[0].Field != "done" {
		t.Errorf("err = %v, want field error on done", err)
	}
}
