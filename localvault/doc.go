// Package localvault provides a filesystem vault that stores each template version
// as {root}/{name}/{version}.{yaml|json}. Use New to create a Vault; Save never
// overwrites an existing version (it bumps once and retries), Load resolves the
// latest version when none is given.
package localvault
