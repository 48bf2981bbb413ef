// Package config manages user-level settings stored at
// ~/.cleanlinkrsp/config.yaml. Settings can also be supplied through
// CLEANLINKRSP_* environment variables, which take precedence over the file.
// Recognized keys are the default group order, a default layout file and
// verbose logging.
package config
