// Package html renders preview plans as an HTML form laid out on a 12-column
// grid. Labels and options are stripped of markup with bluemonday and theme
// tokens are exposed as CSS custom properties.
package html
