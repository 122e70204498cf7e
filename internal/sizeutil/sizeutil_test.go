package sizeutil

import "testing"

func TestHumanize(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0B"},
		{1023, "1023B"},
		{1024, "1.00KB"},
		{10240, "10.0KB"},
		{102400, "100KB"},
		{1024000, "1000KB"},
		{987654321, "941MB"},
		{987654321 * 100000, "89.8TB"},
	}
	for _, c := range cases {
		if got := Humanize(c.in); got != c.want {
			t.Fatalf("Humanize(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}
