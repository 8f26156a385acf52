// Package handlers implements HTTP handlers for the pricing analysis API.
//
// Request/response contracts are declared with Huma operation types so
// validation and OpenAPI generation come for free; handlers stay focused
// on translating between HTTP and the pipeline service.
package handlers
