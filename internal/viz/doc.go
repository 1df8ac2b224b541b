// Package viz renders trajectories and CLI output for the terminal.
package viz
