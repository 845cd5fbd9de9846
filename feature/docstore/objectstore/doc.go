// Package objectstore keeps documents as JSON objects in an S3-compatible bucket.
//
// Each document lives at "<collection>/<id>.json" and is encoded the way the
// Firestore REST API encodes documents:
//
//	{"name": "products/op-1", "fields": {"price": {"integerValue": "7"}}}
//
// Field types the codec does not know are kept verbatim, so merging into a
// document never drops them. Merges read the current object, overlay the new
// fields and write it back; concurrent writers to the same document are not
// coordinated.
package objectstore
