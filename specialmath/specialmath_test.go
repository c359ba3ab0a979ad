package specialmath_test

import (
	"math"
	"testing"

	"github.com/scintillometry/weif/specialmath"
)

func TestJincPi(t *testing.T) {
	const eps = 1e-9
	cases := []struct {
		x, want float64
	}{
		{0.0, 1.0},
		{0.1, 0.99875052072483995088407208329032034367448},
		{0.5, 0.96907383069949554553581830456612656320181},
		{1.0, 0.88010117148986703191936440743782982625493},
		{2.0, 0.57672480775687338720244824226913708691982},
		{10.0, 0.0086945492337722873339497536051718576612593},
		{20.0, 0.0066833124175850045578992974193646719982977},
	}
	for _, c := range cases {
		if got := specialmath.JincPi(c.x); math.Abs(got-c.want) > eps {
			t.Errorf("JincPi(%v) = %v, want %v", c.x, got, c.want)
		}
	}
	if got := specialmath.JincPi(math.Inf(1)); got != 0 {
		t.Errorf("JincPi(+Inf) = %v, want 0", got)
	}
}

func TestSincPiSpecialValues(t *testing.T) {
	if got := specialmath.SincPi(0); math.Abs(got-1) > 1e-12 {
		t.Errorf("SincPi(0) = %v, want 1", got)
	}
	if got := specialmath.SincPi(math.Pi); math.Abs(got) > 1e-12 {
		t.Errorf("SincPi(π) = %v, want 0", got)
	}
}

func TestZincPiAtZero(t *testing.T) {
	if got := specialmath.ZincPi(0); got != 1 {
		t.Errorf("ZincPi(0) = %v, want 1", got)
	}
}
