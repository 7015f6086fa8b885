package service

import "printshop-api/internal/core/apperr"

func (s *ServiceSuite) TestAddressAccess() {
	in := CreateAddressInput{ReceiverName: "Alice", Address: "1 Main St", Phone: "0800000000", Country: "TH", PostalCode: "10110"}
	addr, err := s.svc.Addresses.Create(s.ctx, s.alice, in)
	s.Require().NoError(err)
	s.Equal(s.alice.ID, addr.UserID)

	_, err = s.svc.Addresses.Create(s.ctx, s.alice, in)
	s.Equal(apperr.KindConflict, s.kind(err))

	got, err := s.svc.Addresses.Get(s.ctx, s.alice, s.alice.ID)
	s.Require().NoError(err)
	s.Equal(addr.ID, got.ID)

	_, err = s.svc.Addresses.Get(s.ctx, s.bob, s.alice.ID)
	s.Equal(apperr.KindForbidden, s.kind(err))
	_, err = s.svc.Addresses.Get(s.ctx, s.bob, s.bob.ID)
	s.Equal(apperr.KindNotFound, s.kind(err))
	_, err = s.svc.Addresses.Get(s.ctx, s.admin, "missing")
	s.Equal(apperr.KindNotFound, s.kind(err))

	_, err = s.svc.Addresses.Get(s.ctx, s.admin, s.alice.ID)
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestAddressUpdateDelete() {
	in := CreateAddressInput{ReceiverName: "Alice", Address: "1 Main St", Phone: "0800000000", Country: "TH", PostalCode: "10110"}
	_, err := s.svc.Addresses.Create(s.ctx, s.alice, in)
	s.Require().NoError(err)

	street := "2 Side St"
	got, err := s.svc.Addresses.Update(s.ctx, s.alice, s.alice.ID, UpdateAddressInput{Address: &street})
	s.Require().NoError(err)
	s.Equal("2 Side St", got.Address)
	s.Equal("Alice", got.ReceiverName)

	_, err = s.svc.Addresses.Update(s.ctx, s.bob, s.alice.ID, UpdateAddressInput{Address: &street})
	s.Equal(apperr.KindForbidden, s.kind(err))

	s.Require().NoError(s.svc.Addresses.Delete(s.ctx, s.alice, s.alice.ID))
	s.Equal(apperr.KindNotFound, s.kind(s.svc.Addresses.Delete(s.ctx, s.alice, s.alice.ID)))
}
