package server

import (
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
)

// Start serves the router. Inside Lambda the router is bridged through the
// API Gateway proxy adapter, anywhere else it binds addr directly.
func Start(router *gin.Engine, addr string) error {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		adapter := ginadapter.New(router)
		lambda.Start(adapter.ProxyWithContext)
		return nil
	}
	return router.Run(addr)
}
