package usecase

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseWeekSpec(t *testing.T) {
	t.Parallel()

	cases := []struct {
		spec string
		want []int
	}{
		{"11", []int{11}},
		{"8-10", []int{8, 9, 10}},
		{"8,9,11-13", []int{8, 9, 11, 12, 13}},
		{"13-15,9,1", []int{1, 9, 13, 14, 15}},
		{"4,4,3-5", []int{3, 4, 5}},
		{" 7 , 9 ", []int{7, 9}},
		{"", nil},
		{"   ", nil},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.spec, func(t *testing.T) {
			t.Parallel()

			got, err := ParseWeekSpec(tc.spec)
			if err != nil {
				t.Fatalf("ParseWeekSpec(%q): %v", tc.spec, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ParseWeekSpec(%q): got %v, want %v", tc.spec, got, tc.want)
			}
		})
	}
}

func TestParseWeekSpec_RejectsMalformedTokens(t *testing.T) {
	t.Parallel()

	for _, spec := range []string{"abc", "8-", "-9", "8,,10", "10-8", "0", "3;5"} {
		spec := spec
		t.Run(spec, func(t *testing.T) {
			t.Parallel()

			if _, err := ParseWeekSpec(spec); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("ParseWeekSpec(%q): got %v, want ErrInvalidInput", spec, err)
			}
		})
	}
}
