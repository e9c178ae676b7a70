package telemetry

import (
	"fmt"

	"github.com/grafana/pyroscope-go"

	"github.com/travelxplore/site/internal/config"
)

// InitProfiling starts continuous profiling when enabled. The returned stop
// function is always safe to call.
func InitProfiling(cfg config.ProfilingConfig, serviceName string) (func(), error) {
	if !cfg.Enabled {
		return func() {}, nil
	}

	p, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: serviceName,
		ServerAddress:   cfg.Endpoint,
		Tags:            map[string]string{"service": serviceName},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("telemetry.InitProfiling: %w", err)
	}
	return func() { _ = p.Stop() }, nil
}
