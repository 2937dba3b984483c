// Package api handles incoming HTTP requests, request validation, and
// response formatting for the member, cart, and product endpoints. It acts
// as an adapter between external clients and the internal application
// services, translating HTTP concerns to business operations and mapping
// service errors to safe, uniform JSON error responses.
package api
