package i

import "github.com/gin-gonic/gin"

// Controller registers its routes on the router. Public routes are served to anyone,
// protected ones only behind the authorization middleware.
type Controller interface {
	RegisterPublic(public *gin.RouterGroup)
	RegisterProtected(protected *gin.RouterGroup)
}
