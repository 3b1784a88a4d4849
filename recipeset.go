// Package recipeset builds a labeled training set for ingredient extraction.
// It fetches recipe pages, trims the markup around the "Ingredients" heading,
// asks a language model for the ingredient list, and appends prompt/response
// records to two append-only JSON-lines files.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, openai/, gemini/).
package recipeset
