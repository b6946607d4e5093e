// Package docker drives the Docker Compose environment: probing container
// liveness, running commands inside containers, attaching interactive shells,
// and the compose lifecycle verbs.
//
// Liveness is always probed fresh, immediately before the operation that
// needs it. The prerequisite registry snapshot is good enough for "is docker
// installed" but not for "is the php container up right now".
package docker

import (
	"time"

	"setup-magento/internal/runner"
)

// Logical container names, mapped one-to-one onto compose service names.
const (
	ContainerPHP           = "php"
	ContainerMySQL         = "mysql"
	ContainerNginx         = "nginx"
	ContainerRedis         = "redis"
	ContainerElasticsearch = "elasticsearch"
)

// appUser is the user/group pair commands in the php container run as.
// Running as root there would leave root-owned artifacts in the synced
// source tree.
const appUser = "www-data:www-data"

// Per-class timeouts. Probes must be fast because callers probe before every
// container-scoped operation; in-container execs cover long-running Magento
// migrations and imports.
const (
	probeTimeout     = 10 * time.Second
	restartTimeout   = 60 * time.Second
	execTimeout      = 600 * time.Second
	lifecycleTimeout = 30 * time.Minute
	importTimeout    = 60 * time.Minute
)

// Compose wraps the docker-compose project of one Magento environment.
type Compose struct {
	run     runner.Runner
	project string
}

// New returns a Compose handle for the named compose project.
func New(run runner.Runner, project string) *Compose {
	return &Compose{run: run, project: project}
}

// env returns the fixed set of variables injected into every subprocess that
// touches docker or docker-compose.
func (c *Compose) env() []string {
	vars := []string{
		"COMPOSE_INTERACTIVE_NO_CLI=1",
		"COMPOSE_HTTP_TIMEOUT=200",
	}
	if c.project != "" {
		vars = append(vars, "COMPOSE_PROJECT_NAME="+c.project)
	}
	return vars
}

// Build builds the compose images, streaming output to the terminal.
func (c *Compose) Build() runner.Result {
	return c.run.Run([]string{"docker-compose", "build"}, runner.Options{
		Timeout: lifecycleTimeout,
		Env:     c.env(),
	})
}

// Up starts the environment detached.
func (c *Compose) Up() runner.Result {
	return c.run.Run([]string{"docker-compose", "up", "-d"}, runner.Options{
		Timeout: lifecycleTimeout,
		Env:     c.env(),
	})
}

// Stop stops the environment without removing containers.
func (c *Compose) Stop() runner.Result {
	return c.run.Run([]string{"docker-compose", "stop"}, runner.Options{
		Timeout: lifecycleTimeout,
		Env:     c.env(),
	})
}

// Restart restarts one container (or the whole environment when container is
// empty) and reports whether the restart verb itself completed. There is
// deliberately no liveness precheck: restart is defined for both up and down
// containers.
func (c *Compose) Restart(container string) bool {
	argv := []string{"docker-compose", "restart"}
	if container != "" {
		argv = append(argv, container)
	}
	res := c.run.Run(argv, runner.Options{
		Timeout: restartTimeout,
		Capture: true,
		Env:     c.env(),
	})
	return res.Succeeded()
}

// execArgv assembles the non-interactive in-container invocation. The php
// container gets the app user override; everything else runs as the image
// default user.
func (c *Compose) execArgv(container, command string) []string {
	argv := []string{"docker-compose", "exec", "-T"}
	if container == ContainerPHP {
		argv = append(argv, "-u", appUser)
	}
	return append(argv, container, "sh", "-c", command)
}
