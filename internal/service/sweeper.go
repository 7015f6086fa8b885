package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"printshop-api/internal/core/storage"
	"printshop-api/internal/domain"
)

// Sweeper 清理超过保留期仍未购买的设计稿
type Sweeper struct {
	base
	store   domain.Store
	objects storage.ObjectStore
	opt     FileOptions
	now     func() time.Time
}

type SweepReport struct {
	Scanned int `json:"scanned"`
	Deleted int `json:"deleted"`
	Failed  int `json:"failed"`
}

// Sweep 每次只处理一批，失败项留给下一次
func (s *Sweeper) Sweep(ctx context.Context) (SweepReport, error) {
	var rep SweepReport
	before := s.now().Add(-s.opt.Retention)
	files, err := s.store.Files().ListUnpurchasedBefore(ctx, before, s.opt.SweepBatch)
	if err != nil {
		s.log.Error("list stale files failed", zap.Error(err))
		return rep, err
	}
	rep.Scanned = len(files)
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		if err := s.objects.Delete(ctx, f.Key); err != nil {
			rep.Failed++
			filesSwept.WithLabelValues("failed").Inc()
			s.log.Warn("delete object failed", zap.String("file_id", f.ID), zap.String("key", f.Key), zap.Error(err))
			continue
		}
		if err := s.store.Files().Delete(ctx, f.ID); err != nil {
			rep.Failed++
			filesSwept.WithLabelValues("failed").Inc()
			s.log.Warn("delete file row failed", zap.String("file_id", f.ID), zap.Error(err))
			continue
		}
		rep.Deleted++
		filesSwept.WithLabelValues("deleted").Inc()
	}
	s.log.Info("file sweep finished",
		zap.Time("before", before),
		zap.Int("scanned", rep.Scanned),
		zap.Int("deleted", rep.Deleted),
		zap.Int("failed", rep.Failed))
	return rep, nil
}
