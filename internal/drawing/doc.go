// Package drawing holds the annotation scene graph: the Surface that owns a
// base image, the containers drawn on top of it and the adorners used to move
// and resize them.
//
// All methods are expected to run on the goroutine that owns the Surface.
// Invalidation requests are reported to a listener so a host event loop can
// coalesce repaints.
package drawing
