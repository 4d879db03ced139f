// Package markdown renders page content to sanitized HTML.
//
// Content bodies are markdown with optional YAML front matter:
//
//	---
//	title: About us
//	---
//	# About
//
//	We build things.
//
// Parse splits the front matter from the body. A Converter turns the body
// into HTML: tabs are expanded to four spaces, goldmark renders the
// document, and a bluemonday policy strips everything outside the allowed
// element set.
//
//	conv := markdown.New()
//	html, err := conv.Convert(body)
//
// The zero configuration allows headings, paragraphs, lists, links, images,
// code, blockquotes and tables. Use WithPolicy to replace the policy.
package markdown
