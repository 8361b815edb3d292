package meter

import "github.com/veldt-io/fingov"

// NoopMeter discards all events.
type NoopMeter struct{}

var _ fingov.Meter = (*NoopMeter)(nil)

func (m *NoopMeter) OnFetch(fingov.FetchEvent)       {}
func (m *NoopMeter) OnEmission(fingov.EmissionEvent) {}
