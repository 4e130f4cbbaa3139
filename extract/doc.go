// Package extract turns free text into validated, strongly-typed records.
//
// An Extractor binds an llm.Provider to a JSON Schema generated by reflection
// from its type parameter. Each Extract call is one stateless request/response
// round trip: the input text is sent to the backend together with the schema
// and a fixed extraction instruction, the reply is validated against the
// schema and unmarshalled into the target type. Attributes the text does not
// state come back nil; that is a valid result, not an error.
//
//	extractor, err := extract.New[extract.Person](provider)
//	person, err := extractor.Extract(ctx, reviewText)
//
// Extractors hold no mutable state and are safe for concurrent use.
package extract
