// Package file persists the login session as a TOML file in the config
// directory and watches it for changes made by other docdesk processes.
package file
