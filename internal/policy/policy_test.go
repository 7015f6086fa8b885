package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop-api/internal/core/apperr"
)

var (
	admin = Actor{ID: "admin-1", Role: RoleAdmin}
	alice = Actor{ID: "alice", Role: RoleUser}
	bob   = Actor{ID: "bob", Role: RoleUser}
)

var ownedKinds = []Kind{KindUser, KindAddress, KindProduct, KindFile, KindOrder, KindCart, KindPayment}

func TestOwnedResourcesUpdateDelete(t *testing.T) {
	for _, k := range ownedKinds {
		for _, act := range []Action{ActionRead, ActionUpdate, ActionDelete} {
			cases := []struct {
				name  string
				actor Actor
				allow bool
			}{
				{"admin", admin, true},
				{"owner", alice, true},
				{"stranger", bob, false},
			}
			for _, tc := range cases {
				t.Run(k.String()+"/"+act.String()+"/"+tc.name, func(t *testing.T) {
					d := Evaluate(tc.actor, Owned(k, alice.ID), act)
					assert.Equal(t, tc.allow, d.Allowed)
					if !tc.allow {
						assert.Equal(t, apperr.KindForbidden, d.Denial.Kind)
						assert.Equal(t, "not authorized to access this resource", d.Denial.Reason)
					}
				})
			}
		}
	}
}

func TestCategoryRules(t *testing.T) {
	cases := []struct {
		actor Actor
		act   Action
		allow bool
	}{
		{alice, ActionRead, true},
		{alice, ActionList, true},
		{alice, ActionCreate, false},
		{alice, ActionUpdate, false},
		{alice, ActionDelete, false},
		{admin, ActionCreate, true},
		{admin, ActionUpdate, true},
		{admin, ActionDelete, true},
		{admin, ActionRead, true},
	}
	for _, tc := range cases {
		t.Run(string(tc.actor.Role)+"/"+tc.act.String(), func(t *testing.T) {
			err := Check(tc.actor, Collection(KindCategory), tc.act)
			if tc.allow {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
			assert.Equal(t, "not authorized", err.Error())
		})
	}
}

func TestMissingResourceReportsNotFoundFirst(t *testing.T) {
	for _, actor := range []Actor{admin, alice, bob} {
		for _, act := range []Action{ActionRead, ActionUpdate, ActionDelete} {
			err := Check(actor, Missing(KindProduct), act)
			require.Error(t, err)
			assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err), "actor=%s act=%s", actor.ID, act)
		}
	}
}

func TestAnonymousActorIsUnauthorized(t *testing.T) {
	for _, a := range []Actor{{}, {ID: "x"}, {ID: "x", Role: "ROOT"}} {
		err := Check(a, Owned(KindOrder, "x"), ActionRead)
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	}
	// 未登录优先于不存在
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(Check(Actor{}, Missing(KindOrder), ActionRead)))
}

func TestCollectionLevelActions(t *testing.T) {
	assert.NoError(t, Check(alice, Collection(KindProduct), ActionCreate))
	assert.NoError(t, Check(alice, Collection(KindOrder), ActionList))
	assert.NoError(t, Check(admin, Collection(KindUser), ActionList))

	err := Check(alice, Collection(KindUser), ActionList)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	err = Check(alice, Collection(KindProduct), ActionDelete)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestCheckMutable(t *testing.T) {
	assert.NoError(t, CheckMutable(KindProduct, false))
	err := CheckMutable(KindFile, true)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestRowOwner(t *testing.T) {
	assert.Equal(t, "", RowOwner(admin))
	assert.Equal(t, "alice", RowOwner(alice))
}
