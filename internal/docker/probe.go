package docker

import (
	"strings"

	"setup-magento/internal/logger"
	"setup-magento/internal/runner"
)

// IsUp reports whether the named container is currently running.
//
// Two subprocess queries are composed: the compose-scoped lookup resolves the
// container ID(s) of the service, and docker's own system-wide running list
// is the authoritative liveness signal. The indirection matters because
// compose-scoped listing alone does not reliably exclude stopped or exited
// containers across compose versions; the container counts as up only when a
// compose-reported ID appears in docker's running list.
//
// When the probe subprocess cannot run at all there is no environment to
// speak of, and NotDefinedError is returned instead of false.
func (c *Compose) IsUp(container string) (bool, error) {
	res := c.run.Run([]string{"docker-compose", "ps", "-q", container}, runner.Options{
		Timeout: probeTimeout,
		Capture: true,
		Env:     c.env(),
	})
	if res.CouldNotStart() {
		return false, &NotDefinedError{}
	}
	if !res.Succeeded() || res.Output() == "" {
		logger.Debug("[DEBUG] Probe: no container ID for service %s\n", container)
		return false, nil
	}
	ids := strings.Fields(res.Output())

	running := c.run.Run([]string{"docker", "ps", "-q", "--no-trunc"}, runner.Options{
		Timeout: probeTimeout,
		Capture: true,
		Env:     c.env(),
	})
	if running.CouldNotStart() {
		return false, &NotDefinedError{}
	}
	if !running.Succeeded() {
		return false, nil
	}

	live := make(map[string]bool)
	for _, id := range strings.Fields(running.Output()) {
		live[id] = true
	}
	for _, id := range ids {
		if live[id] {
			logger.Debug("[DEBUG] Probe: %s is up (%s)\n", container, id)
			return true, nil
		}
	}
	return false, nil
}
