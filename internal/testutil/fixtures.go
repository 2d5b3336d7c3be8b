// Package testutil provides shared testing utilities and fixtures
package testutil

// Toast SMS API response bodies used across test files
const (
	// MessageResponse is a successful get-message body
	MessageResponse = `{"header":{"isSuccessful":true,"resultCode":0,"resultMessage":"SUCCESS"},` +
		`"body":{"data":{"requestId":"20230101REQ","recipientSeq":1,"recipientNo":"01000000000",` +
		`"body":"hello","msgStatus":"3","msgStatusName":"delivered"}}}`

	// AuthErrorResponse is returned when the secret key does not match
	AuthErrorResponse = `{"header":{"isSuccessful":false,"resultCode":-1,"resultMessage":"invalid secret key"}}`

	// NotFoundResponse is returned for an unknown request id
	NotFoundResponse = `{"header":{"isSuccessful":false,"resultCode":-9,"resultMessage":"request not found"}}`
)

// Test credentials accepted by NewToastTestServer
const (
	TestAppKey    = "test-app-key"
	TestSecretKey = "test-secret-key"
	TestRequestID = "20230101REQ"
)

// MinimalOpenAPIDoc is a small OpenAPI 3 document for parser tests
const MinimalOpenAPIDoc = `openapi: 3.0.3
info:
  title: Fixture API
  version: 1.0.0
paths:
  /messages/{requestId}:
    get:
      operationId: Messages.Get
      parameters:
        - name: requestId
          in: path
          required: true
          schema:
            type: string
      responses:
        "200":
          description: OK
`
