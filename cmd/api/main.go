package main

import (
	"github.com/gin-gonic/gin"

	"storefront-backend/internal/shared/utils"
)

func main() {
	if utils.GetEnvVariable("APP_ENV", "development") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	Serve()
}
