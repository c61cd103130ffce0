// Package autoload initializes the global logger from the environment on
// import, mirroring the blank-import pattern used in main.
package autoload

import (
	configx "github.com/naruebet/shopchat/pkg/config"
	logx "github.com/naruebet/shopchat/pkg/logger"
)

func init() {
	logx.Init(*configx.MustNew[logx.Config]("LOG"))
}
