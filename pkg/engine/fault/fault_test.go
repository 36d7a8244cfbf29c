package fault

import (
	"testing"

	"github.com/pkg/errors"
)

func TestClassification(t *testing.T) {
	cfg := Configf("bad shape %q", "blob")
	disc := Disconnectedf("%d regions", 2)

	if !IsConfiguration(cfg) || IsDisconnected(cfg) {
		t.Errorf("Configf error classified wrong: %v", cfg)
	}
	if !IsDisconnected(disc) || IsConfiguration(disc) {
		t.Errorf("Disconnectedf error classified wrong: %v", disc)
	}
	if !IsConfiguration(errors.Wrap(cfg, "step")) {
		t.Errorf("wrapped configuration error lost its class")
	}
	if got, want := cfg.Error(), `bad shape "blob": configuration error`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
