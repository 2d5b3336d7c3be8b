// Package http provides the transports shared by the relay.
//
// Client sends upstream requests. URLs with the lambda scheme are invoked
// directly through the Lambda API instead of over the network:
//
//	lambda://<function-name>/<path>?<query-params>
//
// The request is converted to an API Gateway v2 HTTP proxy event and the
// function's proxy response is converted back to an *http.Response, so a
// stub of the SMS API can run as a Lambda function next to the relay.
//
// LambdaHandler goes the other way: it lets the relay's own http.Handler
// run inside the Lambda runtime behind API Gateway or a Function URL.
package http
