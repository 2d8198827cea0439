// Package urls provides centralized constants for the links the application
// shows or copies.
//
// Usage:
//
//	import "github.com/muurk/tablekit/internal/urls"
//
//	fmt.Printf("For more information, see: %s\n", urls.AvailabilityGuide)
package urls
