// Package stress drives an arena from many goroutines and verifies the blocks it hands out.
package stress
