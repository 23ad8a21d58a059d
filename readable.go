// Package readable extracts the primary readable content of HTML documents:
// title, byline, main body and lead image, without navigation, ads or
// other boilerplate.
//
// A document is parsed into a Tree, cleaned, scored, and the best scoring
// subtree is turned into an Article. This package contains the domain
// types and interfaces following Ben Johnson's Standard Package Layout.
// The extraction engine lives in extract/; adapters live in subdirectories
// named after their primary dependency (e.g., goquery/, sqlite/, bluemonday/).
package readable
