package app

import (
	"os"
	"time"

	"github.com/vietour/internal/config"
	"github.com/vietour/internal/logger"

	"go.uber.org/zap"
)

// 运行模式：单进程跑全部，或拆成 API 与队列 Worker 两个进程
const (
	ModeAll    = "all"
	ModeAPI    = "api"
	ModeWorker = "worker"
)

// Options 进程启动参数
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Mode            string
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = logger.S()
	}
	if o.ShutdownTimeout <= 0 {
		o.ShutdownTimeout = 10 * time.Second
	}
	if o.Mode == "" {
		o.Mode = ModeAll
	}
	return o
}
