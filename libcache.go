// Package libcache resolves Robot Framework keyword libraries by name,
// generates libdoc XML for each of them and keeps the results in an on-disk
// cache that is invalidated by source modification times.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, etree/, python/).
package libcache
