// Package autoload initializes the global logger from LOGGER_* env vars
// as a side effect of being imported.
package autoload

import (
	configx "github.com/kchia/paperflow-ai/pkg/config"
	logx "github.com/kchia/paperflow-ai/pkg/logger"
)

func init() {
	cfg := configx.MustNew[logx.Config]("LOGGER")
	logx.Init(*cfg)
}
