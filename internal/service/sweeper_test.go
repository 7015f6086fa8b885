package service

import (
	"time"

	"printshop-api/internal/domain"
	"printshop-api/pkg/utils"
)

func (s *ServiceSuite) seedFile(p *domain.Product, age time.Duration, purchased bool) *domain.File {
	obj, err := s.objects.Put(s.ctx, "art.pdf", "application/pdf", upload("x").Body, 1)
	s.Require().NoError(err)
	f := &domain.File{
		ID:          utils.NewID(),
		UserID:      p.UserID,
		ProductID:   p.ID,
		Key:         obj.Key,
		Size:        obj.Size,
		IsPurchased: purchased,
		CreatedAt:   s.now.Add(-age),
	}
	s.Require().NoError(s.store.Files().Create(s.ctx, f))
	return f
}

func (s *ServiceSuite) TestSweepDeletesStaleUnpurchasedFiles() {
	c := s.category()
	p := s.product(s.alice, c.ID, 10, 1)

	stale := s.seedFile(p, 48*time.Hour, false)
	broken := s.seedFile(p, 30*time.Hour, false)
	bought := s.seedFile(p, 48*time.Hour, true)
	fresh := s.seedFile(p, time.Hour, false)
	s.objects.failDelete[broken.Key] = true

	rep, err := s.svc.Sweeper.Sweep(s.ctx)
	s.Require().NoError(err)
	s.Equal(SweepReport{Scanned: 2, Deleted: 1, Failed: 1}, rep)

	exists := func(id string) bool {
		f, err := s.store.Files().FindByID(s.ctx, id)
		s.Require().NoError(err)
		return f != nil
	}
	s.False(exists(stale.ID))
	s.True(exists(broken.ID))
	s.True(exists(bought.ID))
	s.True(exists(fresh.ID))
	_, ok := s.objects.Open(stale.Key)
	s.False(ok)
	s.Equal(3, s.objects.Len())

	// 故障恢复后下一轮补删
	delete(s.objects.failDelete, broken.Key)
	rep, err = s.svc.Sweeper.Sweep(s.ctx)
	s.Require().NoError(err)
	s.Equal(SweepReport{Scanned: 1, Deleted: 1}, rep)
}
