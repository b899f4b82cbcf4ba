package opts

import (
	"io"

	"github.com/walteh/reserialize/pkg/config"
	"github.com/walteh/reserialize/pkg/log"
)

// RunOpts contains the resolved options of one reserialize run
type RunOpts struct {
	Config *config.Config
	Logger *log.Logger
	Stdout io.Writer
}
