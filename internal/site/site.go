// Package site defines the generated-file model shared by the archive
// packager and the publisher: every export output is a flat list of files
// with POSIX-style relative paths.
package site

import "sort"

// File is one generated output file. Text files (HTML/CSS/JS/README) set
// Binary to false; fetched image blobs set it to true. Publishing targets
// may use the flag to skip binary payloads.
type File struct {
	Path   string
	Data   []byte
	Binary bool
}

// TextFile builds a UTF-8 text file entry.
func TextFile(path, content string) File {
	return File{Path: path, Data: []byte(content)}
}

// BinaryFile builds a binary blob entry.
func BinaryFile(path string, data []byte) File {
	return File{Path: path, Data: data, Binary: true}
}

// SortByPath orders files lexicographically by path. Packaging sorts its
// input so archives are reproducible regardless of how the file list was
// assembled.
func SortByPath(files []File) {
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
}
