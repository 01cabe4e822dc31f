package analysis

import (
	"math"
	"testing"

	"github.com/avane-k/physim/internal/integrators"
	"github.com/avane-k/physim/internal/models"
	"github.com/avane-k/physim/internal/ode"
)

func TestFFTPureTone(t *testing.T) {
	n := 256
	cycles := 8
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * float64(cycles) * float64(i) / float64(n))
	}

	ps := PowerSpectrum(data)

	maxIdx := 0
	for i := range ps {
		if ps[i] > ps[maxIdx] {
			maxIdx = i
		}
	}
	if maxIdx != cycles {
		t.Errorf("expected peak at bin %d, got %d", cycles, maxIdx)
	}
}

func TestPad(t *testing.T) {
	padded := Pad(make([]float64, 300))
	if len(padded) != 512 {
		t.Errorf("expected padding to 512, got %d", len(padded))
	}

	padded = Pad(make([]float64, 256))
	if len(padded) != 256 {
		t.Errorf("power of 2 input should be unchanged, got %d", len(padded))
	}
}

func TestDominantFrequency(t *testing.T) {
	ps := []float64{100, 0, 0, 5, 0} // ignore DC bin
	freq := DominantFrequency(ps, 10.0)
	if math.Abs(freq-0.3) > 1e-12 {
		t.Errorf("expected 0.3 hz, got %f", freq)
	}
}

// Padding stretches the sampled window, so the duration handed to
// DominantFrequency must cover the padded length or every readout
// comes out high by the pad ratio.
func TestDominantFrequencyOfPaddedTone(t *testing.T) {
	const (
		dt       = 0.01
		duration = 30.0
		toneHz   = 1.0
	)
	n := int(duration/dt) + 1 // 3001 samples, pads to 4096
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * toneHz * float64(i) * dt)
	}

	padded := Pad(data)
	ps := PowerSpectrum(padded)

	freq := DominantFrequency(ps, float64(len(padded))*dt)
	binWidth := 1.0 / (float64(len(padded)) * dt)
	if math.Abs(freq-toneHz) > binWidth {
		t.Errorf("expected %.2f hz within one bin (%.4f), got %f", toneHz, binWidth, freq)
	}
}

func TestLyapunovPositiveForChaoticPendulum(t *testing.T) {
	if testing.Short() {
		t.Skip("long-running trajectory divergence estimate")
	}

	dp := models.NewDoublePendulum()
	x0 := ode.State{3 * math.Pi / 7, 0, 3 * math.Pi / 4, 0}

	lambda := LyapunovExponent(dp, integrators.NewRK4(), x0, 0.01, 30.0, 1e-8)
	if lambda <= 0 {
		t.Errorf("expected positive exponent in chaotic regime, got %f", lambda)
	}
}

func TestPhaseFromStates(t *testing.T) {
	states := []ode.State{{1, 2, 3, 4}, {5, 6, 7, 8}}

	p := PhaseFromStates(states, 0, 2)
	if p == nil {
		t.Fatal("expected portrait")
	}
	if p.Points[1].X != 5 || p.Points[1].Y != 7 {
		t.Errorf("unexpected projection: %+v", p.Points[1])
	}

	if PhaseFromStates(states, 0, 9) != nil {
		t.Error("out of range index should return nil")
	}

	ascii := p.ASCII(40, 10)
	if ascii == "" {
		t.Error("expected non-empty plot")
	}
}
