package usecase

import "testing"

func TestCanAccept(t *testing.T) {
	cases := []struct {
		inFlight int
		want     bool
	}{
		{0, true},
		{4, true},
		{5, false},
		{6, false},
	}
	for _, c := range cases {
		if got := CanAccept(c.inFlight); got != c.want {
			t.Errorf("CanAccept(%d): expected %v, got %v", c.inFlight, c.want, got)
		}
	}
}
