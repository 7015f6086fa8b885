package service

import (
	"context"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"printshop-api/internal/core/apperr"
	"printshop-api/internal/core/storage"
	"printshop-api/internal/domain"
	"printshop-api/internal/policy"
	"printshop-api/pkg/utils"
)

// Upload 一个待写入对象存储的文件
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

type ProductService struct {
	base
	store     domain.Store
	objects   storage.ObjectStore
	maxUpload int64
}

type CreateProductInput struct {
	CategoryID   string          `json:"categoryId" binding:"required"`
	Size         string          `json:"size" binding:"required,max=64"`
	Material     string          `json:"material" binding:"required,max=64"`
	Shape        string          `json:"shape" binding:"required,max=64"`
	PrintingSide string          `json:"printingSide" binding:"required,max=64"`
	ParcelColor  []string        `json:"parcelColor"`
	InkColor     []string        `json:"inkColor"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Amount       int             `json:"amount" binding:"required,min=1"`
	Note         string          `json:"note" binding:"omitempty,max=1024"`
}

type UpdateProductInput struct {
	CategoryID   *string          `json:"categoryId"`
	Size         *string          `json:"size" binding:"omitempty,max=64"`
	Material     *string          `json:"material" binding:"omitempty,max=64"`
	Shape        *string          `json:"shape" binding:"omitempty,max=64"`
	PrintingSide *string          `json:"printingSide" binding:"omitempty,max=64"`
	ParcelColor  *[]string        `json:"parcelColor"`
	InkColor     *[]string        `json:"inkColor"`
	UnitPrice    *decimal.Decimal `json:"unitPrice"`
	Amount       *int             `json:"amount" binding:"omitempty,min=1"`
	Note         *string          `json:"note" binding:"omitempty,max=1024"`
}

// ProductWithFile CreateWithFile 的结果
type ProductWithFile struct {
	Product *domain.Product `json:"product"`
	File    *domain.File    `json:"file"`
}

func validPricing(price decimal.Decimal, amount int) error {
	if price.IsNegative() {
		return apperr.BadRequest("unitPrice must not be negative")
	}
	if !domain.FitsMoney(price, domain.PriceDigits) {
		return apperr.BadRequest("unitPrice must have at most 2 decimal places and 10 integer digits")
	}
	if amount < 1 {
		return apperr.BadRequest("amount must be at least 1")
	}
	if !domain.FitsMoney(domain.LineTotal(price, amount), domain.TotalDigits) {
		return apperr.BadRequest("subTotal exceeds the maximum amount")
	}
	return nil
}

func (s *ProductService) build(ctx context.Context, a policy.Actor, in CreateProductInput) (*domain.Product, error) {
	if err := policy.Check(a, policy.Collection(policy.KindProduct), policy.ActionCreate); err != nil {
		return nil, err
	}
	if err := validPricing(in.UnitPrice, in.Amount); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.CategoryID) == "" {
		return nil, apperr.BadRequest("categoryId is required")
	}
	c, err := s.store.Categories().FindByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("category not found")
	}
	p := &domain.Product{
		ID:           utils.NewID(),
		UserID:       a.ID,
		CategoryID:   c.ID,
		Size:         in.Size,
		Material:     in.Material,
		Shape:        in.Shape,
		PrintingSide: in.PrintingSide,
		ParcelColor:  in.ParcelColor,
		InkColor:     in.InkColor,
		UnitPrice:    in.UnitPrice.Round(domain.MoneyScale),
		Amount:       in.Amount,
		Note:         in.Note,
	}
	p.Recalculate()
	return p, nil
}

func (s *ProductService) Create(ctx context.Context, a policy.Actor, in CreateProductInput) (p *domain.Product, err error) {
	defer s.track("product.create", a, in.CategoryID, &err, "failed to create product")

	p, err = s.build(ctx, a, in)
	if err != nil {
		return nil, err
	}
	if err := s.store.Products().Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// CreateWithFile 先上传对象，再在同一事务内写 product 与 file；事务失败则删除已上传对象
func (s *ProductService) CreateWithFile(ctx context.Context, a policy.Actor, in CreateProductInput, up Upload) (out *ProductWithFile, err error) {
	defer s.track("product.create_with_file", a, in.CategoryID, &err, "failed to create product")

	p, err := s.build(ctx, a, in)
	if err != nil {
		return nil, err
	}
	if err := checkUpload(up, s.maxUpload); err != nil {
		return nil, err
	}
	obj, err := s.objects.Put(ctx, up.Name, up.ContentType, up.Body, up.Size)
	if err != nil {
		return nil, err
	}
	f := newFileRow(obj, up.Name, p)

	err = s.store.Tx(ctx, func(tx domain.Store) error {
		if err := tx.Products().Create(ctx, p); err != nil {
			return err
		}
		return tx.Files().Create(ctx, f)
	})
	if err != nil {
		if derr := s.objects.Delete(context.WithoutCancel(ctx), obj.Key); derr != nil {
			s.log.Error("orphan object after failed product insert", zap.String("key", obj.Key), zap.Error(derr))
		}
		return nil, err
	}
	return &ProductWithFile{Product: p, File: f}, nil
}

func (s *ProductService) list(ctx context.Context, f domain.Filter, q PageQuery) (Page[domain.Product], error) {
	if err := q.Validate(); err != nil {
		return Page[domain.Product]{}, err
	}
	items, total, err := s.store.Products().List(ctx, f, q.Offset(), q.Limit)
	if err != nil {
		return Page[domain.Product]{}, err
	}
	return NewPage(items, total, q), nil
}

func (s *ProductService) List(ctx context.Context, a policy.Actor, q PageQuery) (p Page[domain.Product], err error) {
	defer s.track("product.list", a, "", &err, "failed to list products")
	if err := policy.Check(a, policy.Collection(policy.KindProduct), policy.ActionList); err != nil {
		return p, err
	}
	return s.list(ctx, domain.Filter{OwnerID: policy.RowOwner(a)}, q)
}

func (s *ProductService) ListByUser(ctx context.Context, a policy.Actor, userID string, q PageQuery) (p Page[domain.Product], err error) {
	defer s.track("product.list_by_user", a, userID, &err, "failed to list products")
	if err := policy.Check(a, policy.Owned(policy.KindProduct, userID), policy.ActionList); err != nil {
		return p, err
	}
	return s.list(ctx, domain.Filter{OwnerID: userID}, q)
}

func (s *ProductService) ListByCategory(ctx context.Context, a policy.Actor, categoryID string, q PageQuery) (p Page[domain.Product], err error) {
	defer s.track("product.list_by_category", a, categoryID, &err, "failed to list products")

	c, err := s.store.Categories().FindByID(ctx, categoryID)
	if err != nil {
		return p, err
	}
	if err := policy.Check(a, target(policy.KindCategory, c != nil, ""), policy.ActionRead); err != nil {
		return p, err
	}
	return s.list(ctx, domain.Filter{OwnerID: policy.RowOwner(a), CategoryID: categoryID}, q)
}

func (s *ProductService) load(ctx context.Context, a policy.Actor, id string, act policy.Action) (*domain.Product, error) {
	p, err := s.store.Products().FindByID(ctx, id)
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

func (s *ProductService) Get(ctx context.Context, a policy.Actor, id string) (p *domain.Product, err error) {
	defer s.track("product.get", a, id, &err, "failed to get product")
	return s.load(ctx, a, id, policy.ActionRead)
}

// Update 部分更新；SubTotal 按合并后的 UnitPrice/Amount 重算
func (s *ProductService) Update(ctx context.Context, a policy.Actor, id string, in UpdateProductInput) (p *domain.Product, err error) {
	defer s.track("product.update", a, id, &err, "failed to update product")

	p, err = s.load(ctx, a, id, policy.ActionUpdate)
	if err != nil {
		return nil, err
	}
	if err := policy.CheckMutable(policy.KindProduct, p.IsPurchased); err != nil {
		return nil, err
	}
	if in.CategoryID != nil && *in.CategoryID != p.CategoryID {
		c, err := s.store.Categories().FindByID(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, apperr.NotFound("category not found")
		}
		p.CategoryID = c.ID
		p.Category = c
	}
	setStr := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setStr(&p.Size, in.Size)
	setStr(&p.Material, in.Material)
	setStr(&p.Shape, in.Shape)
	setStr(&p.PrintingSide, in.PrintingSide)
	setStr(&p.Note, in.Note)
	if in.ParcelColor != nil {
		p.ParcelColor = *in.ParcelColor
	}
	if in.InkColor != nil {
		p.InkColor = *in.InkColor
	}
	if in.UnitPrice != nil {
		p.UnitPrice = *in.UnitPrice
	}
	if in.Amount != nil {
		p.Amount = *in.Amount
	}
	if err := validPricing(p.UnitPrice, p.Amount); err != nil {
		return nil, err
	}
	p.UnitPrice = p.UnitPrice.Round(domain.MoneyScale)
	p.Recalculate()
	if err := s.store.Products().Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, a policy.Actor, id string) (err error) {
	defer s.track("product.delete", a, id, &err, "failed to delete product")

	p, err := s.load(ctx, a, id, policy.ActionDelete)
	if err != nil {
		return err
	}
	if err := policy.CheckMutable(policy.KindProduct, p.IsPurchased); err != nil {
		return err
	}
	return s.store.Products().Delete(ctx, id)
}
