// Package export turns a form layout and a set of submitted values into an
// ordered document and writes it as plain text or HTML. The document mirrors
// the printed layout: sections in order, rows as 12-column lines, and every
// field as a label over its value.
package export
