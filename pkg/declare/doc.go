// Package declare loads form declarations: JSON or YAML documents holding a
// `forms` map, and OpenAPI request bodies annotated with the
// `x-formvalidate` extension.
package declare
