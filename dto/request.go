package dto

// ExtractionRequest represents one boleto document to process. It is
// created per call and consumed once; the pipeline never retains it.
type ExtractionRequest struct {
	Data     []byte
	FileKind FileKind
	Filename string
}

// Validate performs basic validation on the request
func (r *ExtractionRequest) Validate() error {
	if len(r.Data) == 0 {
		return ErrEmptyDocument
	}
	if r.FileKind == "" {
		return ErrMissingFileKind
	}
	return nil
}
