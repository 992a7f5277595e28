// Package render turns a state snapshot into a View and defines the Renderer
// contract implemented by the HTML and terminal front ends. The price line is
// only present once a prediction has been received and always carries two
// decimal places.
package render
