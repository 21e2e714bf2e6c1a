// Package cli implements the npmginx command.
//
// There is a single root command that runs the whole provisioning
// pipeline in order: packages, nginx service, Node.js runtime gate,
// web root, virtual host, certificate, operator instructions. All
// external collaborators (settings, privileges, stdin, command
// execution, certbot) sit behind the Dependencies struct so tests can
// run the full pipeline against mocks.
package cli
