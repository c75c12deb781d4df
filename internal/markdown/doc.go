// Package markdown reads recipe sources: it discovers files on disk, splits
// the YAML preamble from the body and parses the body with goldmark into the
// closed document tree consumed by the extractors.
package markdown
