package money

import "testing"

func TestMajor(t *testing.T) {
	tests := []struct {
		minor int64
		want  string
	}{
		{minor: 0, want: "0.00"},
		{minor: 5, want: "0.05"},
		{minor: 99, want: "0.99"},
		{minor: 1500, want: "15.00"},
		{minor: 123456, want: "1234.56"},
		{minor: -250, want: "-2.50"},
	}

	for _, tt := range tests {
		if got := Major(tt.minor); got != tt.want {
			t.Fatalf("Major(%d) = %q, want %q", tt.minor, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	if got := Format(5000, "MDL"); got != "50.00 MDL" {
		t.Fatalf("unexpected formatting %q", got)
	}
}
