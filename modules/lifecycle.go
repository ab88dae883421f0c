package modules

import (
	"errors"
	"fmt"

	"github.com/tevino/abool"

	"github.com/safebeam/randbase/log"
)

var (
	startComplete       = abool.NewBool(false)
	startCompleteSignal = make(chan struct{})
)

// StartCompleted returns whether starting has completed.
func StartCompleted() bool {
	return startComplete.IsSet()
}

// WaitForStartCompletion returns as soon as starting has completed.
func WaitForStartCompletion() <-chan struct{} {
	return startCompleteSignal
}

func (m *Module) readyToStart() bool {
	if m.Started.IsSet() {
		return false
	}
	for _, dep := range m.depModules {
		if !dep.Started.IsSet() {
			return false
		}
	}
	return true
}

// Start prepares and starts all modules in dependency order.
func Start() error {
	modulesLock.Lock()
	defer modulesLock.Unlock()

	if err := initDependencies(); err != nil {
		return err
	}

	// prep modules
	for _, m := range modules {
		if m.Prepped.SetToIf(false, true) {
			if err := m.prep(); err != nil {
				if errors.Is(err, ErrCleanExit) {
					return err
				}
				return fmt.Errorf("failed to prep module %s: %w", m.Name, err)
			}
		}
	}

	// start logging
	if err := log.Start(); err != nil {
		return fmt.Errorf("failed to start logging: %w", err)
	}

	// start modules
	started := 0
	for started < len(modules) {
		progressed := false
		for _, m := range modules {
			if m.readyToStart() {
				if err := m.start(); err != nil {
					return fmt.Errorf("failed to start module %s: %w", m.Name, err)
				}
				m.Started.Set()
				log.Infof("modules: started %s", m.Name)
				started++
				progressed = true
			}
		}
		if !progressed {
			return fmt.Errorf("modules: dependency loop detected, cannot start all modules")
		}
	}

	log.Infof("modules: started %d modules", len(modules))
	if startComplete.SetToIf(false, true) {
		close(startCompleteSignal)
	}
	return nil
}

// Shutdown stops all modules in reverse dependency order.
func Shutdown() error {
	modulesLock.Lock()
	defer modulesLock.Unlock()

	var lastErr error
	stopped := 0
	for stopped < len(modules) {
		progressed := false
		for _, m := range modules {
			if m.Stopped.IsSet() {
				continue
			}
			// modules that never started are stopped right away
			if !m.Started.IsSet() {
				m.Stopped.Set()
				stopped++
				progressed = true
				continue
			}
			if m.readyToStop() {
				if err := m.stop(); err != nil {
					log.Errorf("modules: failed to stop %s: %s", m.Name, err)
					lastErr = err
				}
				m.Stopped.Set()
				stopped++
				progressed = true
			}
		}
		if !progressed {
			return fmt.Errorf("modules: dependency loop detected, cannot stop all modules")
		}
	}

	log.Shutdown()
	return lastErr
}

func (m *Module) readyToStop() bool {
	if !m.Started.IsSet() || m.Stopped.IsSet() {
		return false
	}
	// all modules that depend on this module must be stopped first
	for _, other := range modules {
		if other.Stopped.IsSet() || !other.Started.IsSet() {
			continue
		}
		for _, dep := range other.depModules {
			if dep == m {
				return false
			}
		}
	}
	return true
}
