// Package debug holds the build-tag controlled debug switch.
package debug
