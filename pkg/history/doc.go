// Package history keeps the submissions recorded during a session. Each
// submission pairs a snapshot of the form config with the values filled in
// against it; the two halves are updated independently.
package history
