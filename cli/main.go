package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"simplechat"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

func main() {
	// Parse command line arguments
	messagePtr := flag.String("message", "", "The message to send to the chat relay")
	functionPtr := flag.String("function", "simplechat", "Name of the deployed Lambda function")
	historyPtr := flag.String("history", "", "Path to a JSON file holding the conversation history")
	verbose := flag.Bool("verbose", false, "Show the updated conversation history")
	flag.Parse()

	if *messagePtr == "" {
		log.Fatalf("message parameter is required")
	}

	var history []json.RawMessage
	if *historyPtr != "" {
		data, err := os.ReadFile(*historyPtr)
		if err != nil {
			log.Fatalf("failed to read history file, %v", err)
		}
		if err := json.Unmarshal(data, &history); err != nil {
			log.Fatalf("failed to parse history file, %v", err)
		}
	}

	// Load the AWS configuration
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	// Create a Lambda client
	client := lambda.NewFromConfig(cfg)

	// The function is deployed behind API Gateway, so the payload is a
	// proxy event wrapping the chat body.
	body, err := json.Marshal(simplechat.ChatRequest{
		Message:             *messagePtr,
		ConversationHistory: history,
	})
	if err != nil {
		log.Fatalf("failed to marshal request body, %v", err)
	}
	payloadBytes, err := json.Marshal(events.APIGatewayProxyRequest{
		HTTPMethod: "POST",
		Path:       "/chat",
		Body:       string(body),
	})
	if err != nil {
		log.Fatalf("failed to marshal payload, %v", err)
	}

	// Invoke the Lambda function
	result, err := client.Invoke(context.TODO(), &lambda.InvokeInput{
		FunctionName: aws.String(*functionPtr),
		Payload:      payloadBytes,
	})
	if err != nil {
		log.Fatalf("failed to invoke lambda function, %v", err)
	}

	// Check for function error
	if result.FunctionError != nil {
		log.Fatalf("lambda function returned an error: %s", aws.ToString(result.FunctionError))
	}

	var envelope events.APIGatewayProxyResponse
	if err := json.Unmarshal(result.Payload, &envelope); err != nil {
		log.Fatalf("failed to unmarshal response payload, %v", err)
	}

	if envelope.StatusCode != 200 {
		var failed simplechat.ChatFailure
		_ = json.Unmarshal([]byte(envelope.Body), &failed)
		log.Fatalf("relay returned status %d: %s", envelope.StatusCode, failed.Error)
	}

	var answer simplechat.ChatSuccess
	if err := json.Unmarshal([]byte(envelope.Body), &answer); err != nil {
		log.Fatalf("failed to unmarshal response body, %v", err)
	}

	fmt.Println("Answer:", answer.Response)

	if *verbose {
		fmt.Println("\n The following conversation history was returned \n ============")
		for i, turn := range answer.ConversationHistory {
			fmt.Printf("Turn %d: %s\n", i, string(turn))
		}
	}
}
