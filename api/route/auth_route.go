package route

import (
	"time"

	"github.com/Super-Badmen-Viper/PitchPlease/api/controller"
	"github.com/Super-Badmen-Viper/PitchPlease/bootstrap"
	"github.com/Super-Badmen-Viper/PitchPlease/usecase"
	"github.com/gin-gonic/gin"
)

func NewAuthRouter(env *bootstrap.Env, timeout time.Duration, repos *Repositories, group *gin.RouterGroup) {
	authUsecase := usecase.NewAuthUsecase(repos.User, env.AccessTokenSecret, env.AccessTokenExpiryHour, timeout)
	authCtrl := controller.NewAuthController(authUsecase)

	group.POST("/auth/signup", authCtrl.Signup)
	group.POST("/auth/login", authCtrl.Login)
}

func NewUserRouter(env *bootstrap.Env, timeout time.Duration, repos *Repositories, group *gin.RouterGroup) {
	authUsecase := usecase.NewAuthUsecase(repos.User, env.AccessTokenSecret, env.AccessTokenExpiryHour, timeout)
	authCtrl := controller.NewAuthController(authUsecase)

	group.GET("/users/me", authCtrl.Me)
	group.GET("/users", authCtrl.ListUsers)
}
