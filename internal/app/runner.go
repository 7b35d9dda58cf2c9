package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Service 可托管的长驻服务。Start 阻塞运行直到出错或被 Stop 终止。
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Runner 并发启动一组服务，任一服务退出或上下文取消时整体停机
type Runner struct {
	services []Service
	log      *zap.SugaredLogger
}

// NewRunner 创建运行器
func NewRunner(log *zap.SugaredLogger, services ...Service) *Runner {
	return &Runner{services: services, log: log}
}

// Run 启动全部服务并等待退出，停机时按超时逐个 Stop
func (r *Runner) Run(ctx context.Context, stopTimeout time.Duration) error {
	if r == nil || len(r.services) == 0 {
		return errors.New("app: nothing to run")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, len(r.services))
	for _, svc := range r.services {
		go r.startOne(ctx, svc, errCh)
	}

	var runErr error
	select {
	case <-ctx.Done():
		runErr = ctx.Err()
	case err := <-errCh:
		runErr = err
	}
	cancel()

	r.stopAll(stopTimeout)

	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

func (r *Runner) startOne(ctx context.Context, svc Service, errCh chan<- error) {
	if svc == nil {
		errCh <- errors.New("app: nil service")
		return
	}
	r.infow("service_start", "service", svc.Name())
	errCh <- svc.Start(ctx)
	r.infow("service_exit", "service", svc.Name())
}

func (r *Runner) stopAll(timeout time.Duration) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	stopCtx, stopCancel := context.WithTimeout(context.Background(), timeout)
	defer stopCancel()

	for _, svc := range r.services {
		if svc == nil {
			continue
		}
		if err := svc.Stop(stopCtx); err != nil {
			if r.log != nil {
				r.log.Errorw("service_stop_failed", "service", svc.Name(), "error", err)
			}
		}
	}
}

func (r *Runner) infow(msg string, kv ...interface{}) {
	if r.log != nil {
		r.log.Infow(msg, kv...)
	}
}
