// Package config holds the settings for the single site npmginx
// provisions.
//
// The defaults in Default are the source of truth. An optional YAML
// file at /etc/npmginx.yaml can redirect paths (web root, nginx
// directories, instruction file) for non-standard hosts, and the
// CERTBOT_EMAIL environment variable — optionally supplied through a
// .env file — carries the Let's Encrypt notification address. There
// is deliberately no support for provisioning more than one domain.
package config
