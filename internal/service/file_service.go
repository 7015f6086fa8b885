package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"printshop-api/internal/core/apperr"
	"printshop-api/internal/core/storage"
	"printshop-api/internal/domain"
	"printshop-api/internal/policy"
	"printshop-api/pkg/utils"
)

type FileService struct {
	base
	store   domain.Store
	objects storage.ObjectStore
	opt     FileOptions
}

type UpdateFileInput struct {
	DisplayName *string `json:"displayName" binding:"omitempty,max=255"`
	IsPurchased *bool   `json:"isPurchased"`
}

// FileView 带临时下载链接
type FileView struct {
	domain.File
	URL string `json:"url"`
}

func checkUpload(up Upload, limit int64) error {
	if up.Body == nil || up.Size <= 0 {
		return apperr.BadRequest("file is required")
	}
	if limit > 0 && up.Size > limit {
		return apperr.BadRequest(fmt.Sprintf("file exceeds %d MB limit", limit>>20))
	}
	return nil
}

func newFileRow(obj storage.Object, name string, p *domain.Product) *domain.File {
	return &domain.File{
		ID:          utils.NewID(),
		UserID:      p.UserID,
		ProductID:   p.ID,
		CategoryID:  p.CategoryID,
		Key:         obj.Key,
		Type:        obj.Type,
		Size:        obj.Size,
		DisplayName: strings.TrimSpace(name),
	}
}

func (s *FileService) product(ctx context.Context, a policy.Actor, productID string, act policy.Action) (*domain.Product, error) {
	p, err := s.store.Products().FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	owner := ""
	if p != nil {
		owner = p.UserID
	}
	if err := policy.Check(a, target(policy.KindProduct, p != nil, owner), act); err != nil {
		return nil, err
	}
	return p, nil
}

// Upload 对象先落存储再写行；写行失败回删对象。categoryId 为空时沿用商品分类
func (s *FileService) Upload(ctx context.Context, a policy.Actor, productID, categoryID string, up Upload) (f *domain.File, err error) {
	defer s.track("file.upload", a, productID, &err, "failed to upload file")

	p, err := s.product(ctx, a, productID, policy.ActionUpdate)
	if err != nil {
		return nil, err
	}
	if err := policy.CheckMutable(policy.KindProduct, p.IsPurchased); err != nil {
		return nil, err
	}
	if err := checkUpload(up, s.opt.MaxUploadBytes); err != nil {
		return nil, err
	}
	if categoryID == "" {
		categoryID = p.CategoryID
	} else if categoryID != p.CategoryID {
		c, err := s.store.Categories().FindByID(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, apperr.NotFound("category not found")
		}
	}
	obj, err := s.objects.Put(ctx, up.Name, up.ContentType, up.Body, up.Size)
	if err != nil {
		return nil, err
	}
	f = newFileRow(obj, up.Name, p)
	f.CategoryID = categoryID
	if err := s.store.Files().Create(ctx, f); err != nil {
		if derr := s.objects.Delete(context.WithoutCancel(ctx), obj.Key); derr != nil {
			s.log.Error("orphan object after failed file insert", zap.String("key", obj.Key), zap.Error(derr))
		}
		return nil, err
	}
	return f, nil
}

func (s *FileService) ListByProduct(ctx context.Context, a policy.Actor, productID string) (out []FileView, err error) {
	defer s.track("file.list_by_product", a, productID, &err, "failed to list files")

	if _, err := s.product(ctx, a, productID, policy.ActionRead); err != nil {
		return nil, err
	}
	files, err := s.store.Files().ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out = make([]FileView, 0, len(files))
	for _, f := range files {
		u, err := s.objects.PresignGet(ctx, f.Key, s.opt.PresignTTL)
		if err != nil {
			return nil, err
		}
		out = append(out, FileView{File: f, URL: u})
	}
	return out, nil
}

func (s *FileService) load(ctx context.Context, a policy.Actor, id string, act policy.Action) (*domain.File, error) {
	f, err := s.store.Files().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	owner := ""
	if f != nil {
		owner = f.UserID
	}
	if err := policy.Check(a, target(policy.KindFile, f != nil, owner), act); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *FileService) Update(ctx context.Context, a policy.Actor, id string, in UpdateFileInput) (f *domain.File, err error) {
	defer s.track("file.update", a, id, &err, "failed to update file")

	f, err = s.load(ctx, a, id, policy.ActionUpdate)
	if err != nil {
		return nil, err
	}
	if err := policy.CheckMutable(policy.KindFile, f.IsPurchased); err != nil {
		return nil, err
	}
	if in.DisplayName != nil {
		f.DisplayName = strings.TrimSpace(*in.DisplayName)
	}
	if in.IsPurchased != nil {
		f.IsPurchased = *in.IsPurchased
	}
	if err := s.store.Files().Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Delete 先删对象再删行；对象删除失败则保留行
func (s *FileService) Delete(ctx context.Context, a policy.Actor, id string) (err error) {
	defer s.track("file.delete", a, id, &err, "failed to delete file")

	f, err := s.load(ctx, a, id, policy.ActionDelete)
	if err != nil {
		return err
	}
	if err := policy.CheckMutable(policy.KindFile, f.IsPurchased); err != nil {
		return err
	}
	if err := s.objects.Delete(ctx, f.Key); err != nil {
		return err
	}
	return s.store.Files().Delete(ctx, id)
}
