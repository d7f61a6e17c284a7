// Package promptvault provides a versioned registry of parameterized text templates.
// Templates carry {name} placeholders, a dotted version string and a type tag that
// selects the concrete variant when records are decoded. Variants are Go types that
// embed Template and declare extra fields with `prompt:"name"` struct tags.
//
// Records are stored by a Vault (localvault, embedvault; cachevault and otelvault wrap either) under
// <root>/<name>/<version>.<ext>, encoded as JSON or YAML.
package promptvault
