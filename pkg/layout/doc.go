// Package layout defines the form layout tree consumed by the builder,
// validator, preview renderers and submission history. A FormConfig owns an
// ordered list of sections, each section owns ordered rows, and each row owns
// ordered fields. Field sizes map onto a fixed 12-column row grid (sm/md/lg/xl
// span 4/6/8/12 columns, or 33/50/66/100 percent of the row width). All types
// are plain values with JSON, YAML and msgpack tags so a tree can cross the
// session persistence boundary and come back identical.
package layout
