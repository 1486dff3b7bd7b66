// Package types defines the wire types for the gateway's HTTP surface.
//
// Inbound payloads cross a strict parse-then-validate boundary: the raw JSON
// body is unmarshaled into ChatRequest and then Validate is called, producing
// either a normalized request or a typed ValidationError. Handlers never
// operate on untyped maps past that boundary.
//
// Error responses share a single shape:
//
//	{
//	  "error": "Rate limit exceeded. Please try again later.",
//	  "retry_after": 60
//	}
//
// The optional details and retry_after fields are omitted when unset.
package types
