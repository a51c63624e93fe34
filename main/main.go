package main

import (
	"simplechat"
	"simplechat/relay"

	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	r := relay.New(simplechat.LoadConfig())
	lambda.Start(r.Handle)
}
