// Package configfile loads and saves config documents on disk, choosing the
// codec from the file extension.
package configfile
