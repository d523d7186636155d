package domain_test

import (
	"errors"
	"testing"

	"innertone/internal/modules/ambient/domain"
	apperrors "innertone/internal/platform/errors"
)

func TestLookupKnownAndUnknownScenes(t *testing.T) {
	t.Parallel()
	for _, id := range []domain.SceneID{domain.Forest, domain.Ocean, domain.Rain, domain.Birds} {
		scene, err := domain.Lookup(id)
		if err != nil {
			t.Fatalf("lookup %s: %v", id, err)
		}
		if len(scene.Generators) != 3 {
			t.Fatalf("%s: expected 3 generators, got %d", id, len(scene.Generators))
		}
	}
	if _, err := domain.Lookup("thunder"); !errors.Is(err, apperrors.ErrUnknownScene) {
		t.Fatalf("expected unknown scene error, got %v", err)
	}
}

func TestRainLayersRiseInBandAndFallInGain(t *testing.T) {
	t.Parallel()
	scene, err := domain.Lookup(domain.Rain)
	if err != nil {
		t.Fatalf("lookup rain: %v", err)
	}
	if len(scene.Events) != 0 {
		t.Fatalf("rain has no periodic events")
	}
	var prev domain.NoiseBand
	for i, g := range scene.Generators {
		band, ok := g.(domain.NoiseBand)
		if !ok {
			t.Fatalf("rain generator %d is not a noise band", i)
		}
		if i > 0 && (band.Low <= prev.Low || band.Gain >= prev.Gain) {
			t.Fatalf("layer %d breaks ordering: %+v after %+v", i, band, prev)
		}
		prev = band
	}
}

func TestVolumeClamping(t *testing.T) {
	t.Parallel()
	cases := map[int]float64{-5: 0, 0: 0, 50: 0.5, 100: 1, 250: 1}
	for in, want := range cases {
		if got := domain.Gain(in); got != want {
			t.Fatalf("gain(%d) = %f, want %f", in, got, want)
		}
	}
}
