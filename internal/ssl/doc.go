// Package ssl obtains Let's Encrypt certificates through the certbot
// nginx plugin. Issuance is best effort: callers are expected to treat
// failures as warnings and surface the manual command instead of
// aborting the provisioning run.
package ssl
