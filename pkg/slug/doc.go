// Package slug turns titles into URL path segments.
//
//	slug.Make("Hello, World!")            // "hello-world"
//	slug.Make("Café & Restaurant")        // "cafe-restaurant"
//	slug.Make("Über Größe")               // "uber-grosse"
//	slug.Make("Fish & Chips", slug.CustomReplace(map[string]string{"&": "and"}))
//	                                      // "fish-and-chips"
//	slug.Make("A very long title", slug.MaxLength(6))
//	                                      // "a-very"
//
// Diacritics are removed after canonical decomposition, a few Latin
// letters without a decomposition are transliterated, and every other run
// of characters that is not an ASCII letter or digit becomes one separator.
package slug
