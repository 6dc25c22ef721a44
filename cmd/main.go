package main

import (
	"time"

	"github.com/Super-Badmen-Viper/PitchPlease/api/route"
	"github.com/Super-Badmen-Viper/PitchPlease/bootstrap"
	"github.com/gin-gonic/gin"
)

func main() {
	app := bootstrap.App()

	env := app.Env

	defer app.CloseDBConnection()

	timeout := time.Duration(env.ContextTimeout) * time.Second

	engine := gin.Default()

	route.Setup(env, timeout, app, engine)

	err := engine.Run(env.ServerAddress)
	if err != nil {
		return
	}
}
