// Package policy 集中的访问控制决策：谁可以对哪条记录做什么。
//
// 所有 service 在修改数据前先确认记录存在，再调用 Check；列表接口不做 allow/deny，
// 而是用 RowOwner 把过滤条件注入查询。
package policy

import (
	"printshop-api/internal/core/apperr"
)

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

func (r Role) Valid() bool { return r == RoleAdmin || r == RoleUser }

// Actor 当前调用者（显式传入每个 service 方法）
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

type Action int

const (
	ActionRead Action = iota
	ActionList
	ActionCreate
	ActionUpdate
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionRead:
		return "read"
	case ActionList:
		return "list"
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	}
	return "unknown"
}

func (a Action) mutates() bool {
	return a == ActionCreate || a == ActionUpdate || a == ActionDelete
}

type Kind int

const (
	KindUser Kind = iota
	KindAddress
	KindCategory
	KindProduct
	KindFile
	KindOrder
	KindCart
	KindPayment
)

func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindAddress:
		return "address"
	case KindCategory:
		return "category"
	case KindProduct:
		return "product"
	case KindFile:
		return "file"
	case KindOrder:
		return "order"
	case KindCart:
		return "cart"
	case KindPayment:
		return "payment"
	}
	return "resource"
}

type kindRule struct {
	owned     bool // 有 owner 字段（userId）
	adminList bool // 集合级 list 仅管理员
}

var rules = map[Kind]kindRule{
	KindUser:     {owned: true, adminList: true},
	KindAddress:  {owned: true},
	KindCategory: {owned: false},
	KindProduct:  {owned: true},
	KindFile:     {owned: true},
	KindOrder:    {owned: true},
	KindCart:     {owned: true},
	KindPayment:  {owned: true},
}

// Resource 被访问对象的描述。OwnerID 为空表示集合级操作（create/list）。
type Resource struct {
	Kind    Kind
	OwnerID string
	Missing bool
}

func Owned(k Kind, ownerID string) Resource { return Resource{Kind: k, OwnerID: ownerID} }
func Collection(k Kind) Resource            { return Resource{Kind: k} }
func Missing(k Kind) Resource               { return Resource{Kind: k, Missing: true} }

type Denial struct {
	Kind   apperr.Kind
	Reason string
}

type Decision struct {
	Allowed bool
	Denial  Denial
}

func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return apperr.New(d.Denial.Kind, d.Denial.Reason)
}

var allow = Decision{Allowed: true}

func deny(k apperr.Kind, reason string) Decision {
	return Decision{Denial: Denial{Kind: k, Reason: reason}}
}

// Evaluate 纯函数，按顺序匹配，先命中先返回
func Evaluate(a Actor, r Resource, act Action) Decision {
	if a.ID == "" || !a.Role.Valid() {
		return deny(apperr.KindUnauthorized, "unauthorized")
	}
	// 存在性优先于归属：不存在的记录对任何人都报 not found
	if r.Missing {
		return deny(apperr.KindNotFound, r.Kind.String()+" not found")
	}
	if a.IsAdmin() {
		return allow
	}
	rule, ok := rules[r.Kind]
	if !ok {
		return deny(apperr.KindForbidden, "not authorized")
	}
	if !rule.owned {
		if act.mutates() {
			return deny(apperr.KindForbidden, "not authorized")
		}
		return allow
	}
	if r.OwnerID == "" {
		switch act {
		case ActionCreate:
			return allow
		case ActionList:
			if rule.adminList {
				return deny(apperr.KindForbidden, "not authorized to access this resource")
			}
			return allow
		}
		return deny(apperr.KindForbidden, "not authorized to access this resource")
	}
	if r.OwnerID == a.ID {
		return allow
	}
	return deny(apperr.KindForbidden, "not authorized to access this resource")
}

func Check(a Actor, r Resource, act Action) error { return Evaluate(a, r, act).Err() }

// CheckMutable 已购买的 product/file 不可再修改，与角色无关；须在授权通过后调用
func CheckMutable(k Kind, purchased bool) error {
	if purchased {
		return apperr.Conflict(k.String() + " is already purchased and can no longer be modified")
	}
	return nil
}

// RowOwner 列表的行级过滤：管理员返回 ""（不过滤），其他人只看自己的
func RowOwner(a Actor) string {
	if a.IsAdmin() {
		return ""
	}
	return a.ID
}
