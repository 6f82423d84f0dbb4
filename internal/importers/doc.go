// Package importers decodes user-supplied quote files.
//
// Every importer returns the complete batch or an error wrapping
// quotes.ErrMalformedPayload. A partially valid file is never imported
// in part.
package importers
