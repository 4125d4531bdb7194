package png

import (
	"io"

	"xdao.co/pngstash/chunk"
)

// Writer streams a container file to w without holding it in memory.
type Writer struct {
	w io.Writer
}

// NewWriter writes the file signature to w eagerly and returns a Writer
// ready for chunks.
func NewWriter(w io.Writer) (*Writer, error) {
	if _, err := w.Write(signature[:]); err != nil {
		return nil, err
	}
	return &Writer{w: w}, nil
}

// WriteChunk appends one chunk to the stream.
func (w *Writer) WriteChunk(c *chunk.Chunk) error {
	_, err := c.WriteTo(w.w)
	return err
}

// WriteFile appends every chunk of f to the stream. Combined with
// NewWriter this streams the same bytes f.Bytes() would build.
func (w *Writer) WriteFile(f *File) error {
	for _, c := range f.chunks {
		if err := w.WriteChunk(c); err != nil {
			return err
		}
	}
	return nil
}
