// Package prereq decides whether a command is allowed to run at all.
//
// The host is probed once per process for the binaries and services the tool
// depends on; the resulting registry is a read-only snapshot handed to the
// gate that every command dispatch passes through. Container liveness is
// deliberately NOT part of this snapshot: containers flip state far more
// often than installed binaries, so in-container operations re-probe freshly
// instead of trusting a cached answer.
package prereq

import (
	"os/exec"
	"time"

	"setup-magento/internal/runner"
)

// Kind partitions prerequisites into installed binaries and running services.
type Kind int

const (
	KindBinary Kind = iota
	KindService
)

// String returns the user-facing name of the kind.
func (k Kind) String() string {
	if k == KindService {
		return "service"
	}
	return "binary"
}

// Prerequisite is one named external dependency of the tool.
// Status is computed once when the registry is built and read-only afterwards.
type Prerequisite struct {
	Name      string
	Kind      Kind
	Mandatory bool
	Status    bool
}

// Declaration names the registry entries a command depends on. Commands with
// an empty declaration always run.
type Declaration struct {
	Binaries []string
	Services []string
}

// Empty reports whether the declaration names no prerequisites at all.
func (d Declaration) Empty() bool {
	return len(d.Binaries) == 0 && len(d.Services) == 0
}

// serviceProbeTimeout bounds the per-service reachability probe so building
// the registry stays fast even with an unresponsive docker daemon.
const serviceProbeTimeout = 10 * time.Second

// Registry is the process-wide snapshot of prerequisite state. Build it once
// at startup (or lazily on first gated dispatch) and pass it by handle; it is
// never refreshed mid-run even if the environment changes underneath it.
type Registry struct {
	binaries map[string]Prerequisite
	services map[string]Prerequisite
}

// NewRegistry probes the host and returns the snapshot.
//
// Binaries are resolved through PATH lookup; the docker service is considered
// running when `docker info` answers within the probe timeout.
func NewRegistry(run runner.Runner) *Registry {
	reg := &Registry{
		binaries: make(map[string]Prerequisite),
		services: make(map[string]Prerequisite),
	}

	for _, b := range []struct {
		name      string
		mandatory bool
	}{
		{"docker", true},
		{"docker-compose", true},
		{"composer", true},
		{"git", false},
		{"mutagen", false},
	} {
		_, err := exec.LookPath(b.name)
		reg.binaries[b.name] = Prerequisite{
			Name:      b.name,
			Kind:      KindBinary,
			Mandatory: b.mandatory,
			Status:    err == nil,
		}
	}

	res := run.Run([]string{"docker", "info"}, runner.Options{
		Timeout: serviceProbeTimeout,
		Capture: true,
	})
	reg.services["docker"] = Prerequisite{
		Name:      "docker",
		Kind:      KindService,
		Mandatory: true,
		Status:    res.Succeeded(),
	}

	return reg
}

// Binaries returns the binary prerequisites keyed by name.
func (r *Registry) Binaries() map[string]Prerequisite {
	return r.binaries
}

// Services returns the service prerequisites keyed by name.
func (r *Registry) Services() map[string]Prerequisite {
	return r.services
}
