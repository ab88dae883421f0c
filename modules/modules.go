// Package modules provides a very light module system for registering
// components with prep/start/stop lifecycle functions and starting them in
// dependency order.
package modules

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tevino/abool"
)

var (
	modulesLock sync.Mutex
	modules     = make(map[string]*Module)

	// ErrCleanExit is returned by Start() when the program is interrupted
	// before starting.
	ErrCleanExit = errors.New("clean exit requested")
)

// Module represents a module.
type Module struct {
	Name string

	// lifecycle mgmt
	Prepped *abool.AtomicBool
	Started *abool.AtomicBool
	Stopped *abool.AtomicBool

	// lifecycle callback functions
	prep  func() error
	start func() error
	stop  func() error

	// dependency mgmt
	depNames   []string
	depModules []*Module
}

func dummyAction() error {
	return nil
}

// Register registers a new module. The control functions `prep`, `start` and
// `stop` are optional.
func Register(name string, prep, start, stop func() error, dependencies ...string) *Module {
	newModule := &Module{
		Name:     name,
		Prepped:  abool.NewBool(false),
		Started:  abool.NewBool(false),
		Stopped:  abool.NewBool(false),
		prep:     prep,
		start:    start,
		stop:     stop,
		depNames: dependencies,
	}

	// replace nil arguments with dummy action
	if newModule.prep == nil {
		newModule.prep = dummyAction
	}
	if newModule.start == nil {
		newModule.start = dummyAction
	}
	if newModule.stop == nil {
		newModule.stop = dummyAction
	}

	modulesLock.Lock()
	defer modulesLock.Unlock()
	modules[name] = newModule
	return newModule
}

func initDependencies() error {
	for _, m := range modules {
		m.depModules = make([]*Module, 0, len(m.depNames))
		for _, depName := range m.depNames {
			depModule, ok := modules[depName]
			if !ok {
				return fmt.Errorf("module %s declares unregistered dependency %s", m.Name, depName)
			}
			m.depModules = append(m.depModules, depModule)
		}
	}
	return nil
}
