package router

import (
	"fmt"
	"sort"

	"github.com/gin-gonic/gin"
)

// APIModule / AdminModule 模块可实现其一或两者
type APIModule interface{ MountAPI(*gin.RouterGroup) }
type AdminModule interface{ MountAdmin(*gin.RouterGroup) }

// 实现 Priority 可控制挂载顺序（越小越先），默认 100
type prioritizer interface{ Priority() int }

const defaultPriority = 100

// Registry 由 main 组装后交给 engine
type Registry struct {
	apiMods   []APIModule
	adminMods []AdminModule
}

func NewRegistry(mods ...any) *Registry {
	r := &Registry{}
	r.Register(mods...)
	return r
}

// Register 按接口分发；两个接口都没实现视为装配错误
func (r *Registry) Register(mods ...any) {
	for _, mod := range mods {
		api, isAPI := mod.(APIModule)
		admin, isAdmin := mod.(AdminModule)
		if !isAPI && !isAdmin {
			panic(fmt.Sprintf("router: %T mounts nothing", mod))
		}
		if isAPI {
			r.apiMods = append(r.apiMods, api)
		}
		if isAdmin {
			r.adminMods = append(r.adminMods, admin)
		}
	}
}

func (r *Registry) MountAPI(api *gin.RouterGroup) {
	for _, m := range byPriority(r.apiMods) {
		m.MountAPI(api)
	}
}

func (r *Registry) MountAdmin(admin *gin.RouterGroup) {
	for _, m := range byPriority(r.adminMods) {
		m.MountAdmin(admin)
	}
}

// byPriority 稳定排序，同优先级保持注册顺序
func byPriority[M any](mods []M) []M {
	out := append([]M(nil), mods...)
	sort.SliceStable(out, func(i, j int) bool { return priorityOf(out[i]) < priorityOf(out[j]) })
	return out
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return defaultPriority
}
