package service

import (
	"context"

	"printshop-api/internal/core/apperr"
	"printshop-api/internal/domain"
	"printshop-api/internal/policy"
	"printshop-api/pkg/utils"
)

type AddressService struct {
	base
	store domain.Store
}

type CreateAddressInput struct {
	ReceiverName string `json:"receiverName" binding:"required,max=128"`
	Address      string `json:"address" binding:"required,max=512"`
	Phone        string `json:"phone" binding:"required,max=32"`
	SubDistrict  string `json:"subDistrict" binding:"omitempty,max=128"`
	District     string `json:"district" binding:"omitempty,max=128"`
	Province     string `json:"province" binding:"omitempty,max=128"`
	Country      string `json:"country" binding:"required,max=64"`
	PostalCode   string `json:"postalCode" binding:"required,max=16"`
	TaxPayerID   string `json:"taxPayerId" binding:"omitempty,max=32"`
	TaxPayerName string `json:"taxPayerName" binding:"omitempty,max=128"`
}

type UpdateAddressInput struct {
	ReceiverName *string `json:"receiverName" binding:"omitempty,max=128"`
	Address      *string `json:"address" binding:"omitempty,max=512"`
	Phone        *string `json:"phone" binding:"omitempty,max=32"`
	SubDistrict  *string `json:"subDistrict" binding:"omitempty,max=128"`
	District     *string `json:"district" binding:"omitempty,max=128"`
	Province     *string `json:"province" binding:"omitempty,max=128"`
	Country      *string `json:"country" binding:"omitempty,max=64"`
	PostalCode   *string `json:"postalCode" binding:"omitempty,max=16"`
	TaxPayerID   *string `json:"taxPayerId" binding:"omitempty,max=32"`
	TaxPayerName *string `json:"taxPayerName" binding:"omitempty,max=128"`
}

// Create 为调用者本人创建地址；每个用户至多一条
func (s *AddressService) Create(ctx context.Context, a policy.Actor, in CreateAddressInput) (addr *domain.Address, err error) {
	defer s.track("address.create", a, a.ID, &err, "failed to create address")

	if err := policy.Check(a, policy.Owned(policy.KindAddress, a.ID), policy.ActionCreate); err != nil {
		return nil, err
	}
	existing, err := s.store.Addresses().FindByUserID(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("address already exists for this user")
	}
	addr = &domain.Address{
		ID:           utils.NewID(),
		UserID:       a.ID,
		ReceiverName: in.ReceiverName,
		Address:      in.Address,
		Phone:        in.Phone,
		SubDistrict:  in.SubDistrict,
		District:     in.District,
		Province:     in.Province,
		Country:      in.Country,
		PostalCode:   in.PostalCode,
		TaxPayerID:   in.TaxPayerID,
		TaxPayerName: in.TaxPayerName,
	}
	if err := s.store.Addresses().Create(ctx, addr); err != nil {
		if apperr.IsDuplicate(err) {
			return nil, apperr.Conflict("address already exists for this user")
		}
		return nil, err
	}
	return addr, nil
}

// load 用户存在 → 归属 → 地址存在，依次报错
func (s *AddressService) load(ctx context.Context, a policy.Actor, userID string, act policy.Action) (*domain.Address, error) {
	u, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		if err := policy.Check(a, policy.Missing(policy.KindUser), act); err != nil {
			return nil, err
		}
	}
	if err := policy.Check(a, policy.Owned(policy.KindAddress, userID), act); err != nil {
		return nil, err
	}
	addr, err := s.store.Addresses().FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if addr == nil {
		return nil, apperr.NotFound("address not found")
	}
	return addr, nil
}

func (s *AddressService) Get(ctx context.Context, a policy.Actor, userID string) (addr *domain.Address, err error) {
	defer s.track("address.get", a, userID, &err, "failed to get address")
	return s.load(ctx, a, userID, policy.ActionRead)
}

func (s *AddressService) Update(ctx context.Context, a policy.Actor, userID string, in UpdateAddressInput) (addr *domain.Address, err error) {
	defer s.track("address.update", a, userID, &err, "failed to update address")

	addr, err = s.load(ctx, a, userID, policy.ActionUpdate)
	if err != nil {
		return nil, err
	}
	merge := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	merge(&addr.ReceiverName, in.ReceiverName)
	merge(&addr.Address, in.Address)
	merge(&addr.Phone, in.Phone)
	merge(&addr.SubDistrict, in.SubDistrict)
	merge(&addr.District, in.District)
	merge(&addr.Province, in.Province)
	merge(&addr.Country, in.Country)
	merge(&addr.PostalCode, in.PostalCode)
	merge(&addr.TaxPayerID, in.TaxPayerID)
	merge(&addr.TaxPayerName, in.TaxPayerName)
	if err := s.store.Addresses().Update(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}

func (s *AddressService) Delete(ctx context.Context, a policy.Actor, userID string) (err error) {
	defer s.track("address.delete", a, userID, &err, "failed to delete address")
	if _, err := s.load(ctx, a, userID, policy.ActionDelete); err != nil {
		return err
	}
	return s.store.Addresses().DeleteByUserID(ctx, userID)
}
