// Package sanitizer turns untrusted markup into plain text for email bodies.
//
// StripHTML removes every tag using a bluemonday strict policy, decodes
// entities and collapses whitespace. Preview shortens the result to a fixed
// number of runes. Output is plain text and must still be escaped by the
// template that embeds it.
package sanitizer
