package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"

	"github.com/vietour/internal/config"
	"github.com/vietour/internal/provider"
	"github.com/vietour/internal/router"
	"github.com/vietour/internal/worker"
)

// Run 进程入口：按运行模式装配 API 与队列 Worker，托管到整体退出
func Run(opts Options) error {
	opts = opts.withDefaults()
	if opts.Config == nil {
		return errors.New("app: config is required")
	}

	services, err := assembleServices(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if len(opts.Signals) > 0 {
		var cancel context.CancelFunc
		ctx, cancel = signal.NotifyContext(ctx, opts.Signals...)
		defer cancel()
	}

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start", "addr", addr, "mode", opts.Mode)

	return NewRunner(opts.Logger, services...).Run(ctx, opts.ShutdownTimeout)
}

func assembleServices(cfg *config.Config, mode string) ([]Service, error) {
	container := provider.NewContainer(cfg)

	var services []Service
	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		services = append(services, NewHTTPService(cfg.Server.Host+":"+cfg.Server.Port, engine))
	}
	if mode == ModeAll || mode == ModeWorker {
		consumer := worker.NewConsumer(container)
		workerService, err := worker.NewService(&cfg.Queue, consumer)
		if err != nil {
			return nil, err
		}
		services = append(services, workerService)
	}
	if len(services) == 0 {
		return nil, fmt.Errorf("app: unknown run mode %q", mode)
	}
	return services, nil
}
