package router

import "github.com/gin-gonic/gin"

// Module registers one feature's routes under the /api group.
type Module interface {
	Register(rg *gin.RouterGroup)
}

// ModuleFunc lets a plain function serve as a Module.
type ModuleFunc func(rg *gin.RouterGroup)

func (f ModuleFunc) Register(rg *gin.RouterGroup) { f(rg) }
