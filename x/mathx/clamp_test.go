package mathx

import "testing"

func TestClamp(t *testing.T) {
	if Clamp(-90.0, 0, 180) != 0 {
		t.Fatal("below range")
	}
	if Clamp(270.0, 0, 180) != 180 {
		t.Fatal("above range")
	}
	if Clamp(5, 10, 0) != 5 {
		t.Fatal("swapped bounds")
	}
}

func TestBetween(t *testing.T) {
	cases := []struct {
		v    int64
		want bool
	}{
		{499, false}, {500, true}, {1500, true}, {2500, true}, {2501, false},
	}
	for _, tc := range cases {
		if got := Between(tc.v, 500, 2500); got != tc.want {
			t.Errorf("Between(%d) = %v", tc.v, got)
		}
	}
	if !Between(3, 5, 1) {
		t.Fatal("order-insensitive bounds")
	}
}
