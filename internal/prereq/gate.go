package prereq

import (
	"fmt"
	"strings"

	"setup-magento/internal/logger"
)

// Source is the registry contract the gate reads. Tests substitute a fixed
// map pair; production hands in *Registry.
type Source interface {
	Binaries() map[string]Prerequisite
	Services() map[string]Prerequisite
}

// UndefinedPrerequisiteError reports a command declaring a prerequisite name
// the registry does not track. This is a programming error in the command's
// wiring, never an environment condition, and must surface immediately.
type UndefinedPrerequisiteError struct {
	Kind  Kind
	Names []string
}

func (e *UndefinedPrerequisiteError) Error() string {
	return fmt.Sprintf("unknown %s prerequisite declared: %s", e.Kind, strings.Join(e.Names, ", "))
}

// NotReadyError reports a declared-mandatory prerequisite that is unsatisfied
// at dispatch time. It is fatal for the current command invocation only; the
// message names the remedy.
type NotReadyError struct {
	Name string
	Kind Kind
}

func (e *NotReadyError) Error() string {
	if e.Kind == KindService {
		return fmt.Sprintf("%s is not running, the environment must be started.", e.Name)
	}
	return fmt.Sprintf("%s is necessary to use this command, please install it.", e.Name)
}

// Gate intercepts command dispatch and verifies the command's declared
// prerequisites against the registry snapshot. It never mutates the registry.
type Gate struct {
	reg Source
}

// NewGate returns a gate reading from the given registry.
func NewGate(reg Source) *Gate {
	return &Gate{reg: reg}
}

// Check validates the declaration and returns the first violation found.
//
// Per kind, two passes run in order:
//  1. consistency: every declared name must exist in the registry; unknown
//     names abort with UndefinedPrerequisiteError listing all of them
//  2. satisfaction: declared names are walked in declaration order and the
//     first mandatory unsatisfied one aborts with NotReadyError
//     (short-circuit, no batch report); unsatisfied optional ones only warn
//
// An empty declaration passes without touching the registry.
func (g *Gate) Check(d Declaration) error {
	if err := g.checkKind(KindBinary, d.Binaries, g.reg.Binaries()); err != nil {
		return err
	}
	return g.checkKind(KindService, d.Services, g.reg.Services())
}

func (g *Gate) checkKind(kind Kind, declared []string, known map[string]Prerequisite) error {
	if len(declared) == 0 {
		return nil
	}

	var unknown []string
	for _, name := range declared {
		if _, ok := known[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return &UndefinedPrerequisiteError{Kind: kind, Names: unknown}
	}

	for _, name := range declared {
		p := known[name]
		if p.Status {
			continue
		}
		if p.Mandatory {
			return &NotReadyError{Name: p.Name, Kind: p.Kind}
		}
		logger.Warn("[WARN] Optional %s %s is not available.\n", p.Kind, p.Name)
	}
	return nil
}
