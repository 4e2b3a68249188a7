// Package messages holds the message table used to render validation
// failures. Built-in tables exist for Japanese (the default) and English;
// caller overrides merge over them key by key and any key missing from the
// overrides keeps its built-in text. Lookups for unknown keys, such as an
// `emesseN` custom key nobody supplied, fall back to a generic message instead
// of failing.
package messages
