package task

import (
	"context"
	"time"

	"github.com/haierkeys/page-revision-service/internal/app"
	"github.com/haierkeys/page-revision-service/pkg/logger"
	"github.com/haierkeys/page-revision-service/pkg/util"

	"go.uber.org/zap"
)

// RetentionSweepTask 定期扫描所有页面并裁剪超出保留上限的差异
// 兜底保证即使写入路径的裁剪被绕过，历史数量也不会无限增长
type RetentionSweepTask struct {
	app      *app.App
	interval time.Duration
}

// Name 返回任务名称
func (t *RetentionSweepTask) Name() string {
	return "RetentionSweep"
}

// LoopInterval 返回执行间隔
func (t *RetentionSweepTask) LoopInterval() time.Duration {
	return t.interval
}

// IsStartupRun 启动后立即执行一次
func (t *RetentionSweepTask) IsStartupRun() bool {
	return true
}

// Run 扫描存在差异的页面，逐页面提交裁剪任务到工作池
func (t *RetentionSweepTask) Run(ctx context.Context) error {
	lg := t.app.Logger()
	svc := t.app.PageDiffService

	recordIDs, err := svc.ListRecordIDs(ctx)
	if err != nil {
		lg.Error("task log",
			zap.String("task", t.Name()),
			zap.String("reason", "failed to list record ids"),
			zap.String("msg", "failed"),
			zap.Error(err))
		return err
	}

	for _, recordID := range recordIDs {
		rid := recordID
		serr := t.app.SubmitTask(ctx, func(taskCtx context.Context) error {
			pruned, perr := svc.EnforceRetention(taskCtx, rid)
			if perr != nil {
				lg.Error("task log",
					zap.String("task", "RetentionSweep"),
					zap.String(logger.FieldRecordID, rid),
					zap.String("reason", "enforce retention failed"),
					zap.String("msg", "failed"),
					zap.Error(perr))
				return perr
			}
			if pruned > 0 {
				lg.Info("task log",
					zap.String("task", "RetentionSweep"),
					zap.String(logger.FieldRecordID, rid),
					zap.Int64("prunedCount", pruned),
					zap.String("msg", "success"))
			}
			return nil
		})
		if serr != nil {
			lg.Warn("task log",
				zap.String("task", t.Name()),
				zap.String(logger.FieldRecordID, rid),
				zap.String("reason", "submit failed"),
				zap.Error(serr))
		}
	}

	return nil
}

// NewRetentionSweepTask 创建保留裁剪任务，未配置扫描间隔时任务关闭
func NewRetentionSweepTask(a *app.App) (Task, error) {
	cfg := a.Config()
	if cfg.App.RetentionSweepInterval == "" {
		return nil, nil
	}

	interval, err := util.ParseDuration(cfg.App.RetentionSweepInterval)
	if err != nil {
		return nil, err
	}
	if interval <= 0 {
		return nil, nil
	}

	return &RetentionSweepTask{app: a, interval: interval}, nil
}

func init() {
	Register(NewRetentionSweepTask)
}
