package injector

import (
	"github.com/df07/go-optics-bench/pkg/bench"
	"github.com/df07/go-optics-bench/pkg/log"
)

// App is the object graph the command line works with
type App struct {
	Logger log.Logger
	Bench  *bench.Bench
}
