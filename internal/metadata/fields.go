// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package metadata

// Field is a document information entry the editor knows how to set.
// The name doubles as the metadata file key and the PDF Info dictionary key.
type Field string

const (
	Title    Field = "Title"
	Author   Field = "Author"
	Subject  Field = "Subject"
	Creator  Field = "Creator"
	Producer Field = "Producer"
	Keywords Field = "Keywords"
)

// Fields lists the recognized fields in display order
var Fields = []Field{Title, Author, Subject, Creator, Producer, Keywords}

// IsKnown reports whether name is one of the recognized fields
func IsKnown(name string) bool {
	for _, f := range Fields {
		if string(f) == name {
			return true
		}
	}
	return false
}

// Mapping holds the values to write, keyed by field
type Mapping map[Field]string

// Sorted returns the fields present in m in display order
func (m Mapping) Sorted() []Field {
	out := make([]Field, 0, len(m))
	for _, f := range Fields {
		if _, ok := m[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Clone returns an independent copy of m
func (m Mapping) Clone() Mapping {
	out := make(Mapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
