// Package geometry holds the rectangle and point primitives shared by every
// template resolver: ray/rectangle intersection for connectors, percentage to
// pixel mapping, and the row/column distribution used by grid templates. All
// functions are pure and allocate only their return values.
package geometry
